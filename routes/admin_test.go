package routes

import (
	"net/http"
	"testing"

	"github.com/kataras/iris/v12/middleware/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"feedback-board-server/models"
	"feedback-board-server/utils"
)

func setupPayload(email string) map[string]interface{} {
	return map[string]interface{}{
		"email":    email,
		"name":     "Admin",
		"password": "adminsecret",
	}
}

func TestSetupBootstrapPolicy(t *testing.T) {
	app, _ := newTestApp(t)

	// first admin: open bootstrap
	resp := doRequest(t, app, request{method: http.MethodPost, path: "/api/admin/setup", body: setupPayload("root@example.com")})
	require.Equal(t, http.StatusCreated, resp.Code)

	// second admin without elevation: rejected
	resp = doRequest(t, app, request{method: http.MethodPost, path: "/api/admin/setup", body: setupPayload("second@example.com")})
	require.Equal(t, http.StatusBadRequest, resp.Code)
	var body struct {
		Error string `json:"error"`
	}
	decodeBody(t, resp, &body)
	assert.Equal(t, "already_initialized", body.Error)

	// with the setup token: allowed
	resp = doRequest(t, app, request{
		method:  http.MethodPost,
		path:    "/api/admin/setup",
		body:    setupPayload("second@example.com"),
		headers: map[string]string{"X-Setup-Token": testSetupToken},
	})
	require.Equal(t, http.StatusCreated, resp.Code)

	// with a wrong token: rejected
	resp = doRequest(t, app, request{
		method:  http.MethodPost,
		path:    "/api/admin/setup",
		body:    setupPayload("third@example.com"),
		headers: map[string]string{"X-Setup-Token": "wrong"},
	})
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestSetupWithAdminSession(t *testing.T) {
	app, server := newTestApp(t)
	token := createAdmin(t, server, "root@example.com", "adminsecret")

	resp := doRequest(t, app, request{
		method:  http.MethodPost,
		path:    "/api/admin/setup",
		body:    setupPayload("second@example.com"),
		session: token,
	})
	require.Equal(t, http.StatusCreated, resp.Code)

	user, exists, err := server.Store.Users().FindByEmail("second@example.com")
	require.NoError(t, err)
	require.True(t, exists)
	assert.True(t, user.IsAdmin)
}

func TestLogin(t *testing.T) {
	app, server := newTestApp(t)
	createAdmin(t, server, "root@example.com", "adminsecret")

	resp := doRequest(t, app, request{
		method: http.MethodPost,
		path:   "/api/admin/login",
		body:   map[string]interface{}{"email": "root@example.com", "password": "adminsecret"},
	})
	require.Equal(t, http.StatusOK, resp.Code)

	cookies := resp.Result().Cookies()
	var session *http.Cookie
	for _, c := range cookies {
		if c.Name == utils.SessionCookie {
			session = c
		}
	}
	require.NotNil(t, session, "login must set the session cookie")
	assert.NotEmpty(t, session.Value)
	assert.True(t, session.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, session.SameSite)

	// the issued cookie is accepted on a guarded route
	me := doRequest(t, app, request{method: http.MethodGet, path: "/api/admin/me", session: session.Value})
	assert.Equal(t, http.StatusOK, me.Code)
}

func TestLoginRejections(t *testing.T) {
	app, server := newTestApp(t)
	createAdmin(t, server, "root@example.com", "adminsecret")

	// plain user, even with the right password, cannot log in
	resp := doRequest(t, app, request{
		method: http.MethodPost,
		path:   "/api/users/register",
		body:   map[string]interface{}{"email": "user@example.com", "name": "User", "password": "usersecret"},
	})
	require.Equal(t, http.StatusCreated, resp.Code)

	cases := []map[string]interface{}{
		{"email": "root@example.com", "password": "wrong-password"},
		{"email": "nobody@example.com", "password": "adminsecret"},
		{"email": "user@example.com", "password": "usersecret"},
	}
	for _, payload := range cases {
		resp := doRequest(t, app, request{method: http.MethodPost, path: "/api/admin/login", body: payload})
		assert.Equalf(t, http.StatusUnauthorized, resp.Code, "payload %v", payload)
	}
}

func TestAdminGuard(t *testing.T) {
	app, server := newTestApp(t)
	fb := seedFeedback(t, server, 3, "guard me", models.CategoryGeneral, models.StatusOpen)

	update := map[string]interface{}{"status": models.StatusReviewed}
	path := "/api/feedback/1"
	_ = fb

	// no session
	resp := doRequest(t, app, request{method: http.MethodPut, path: path, body: update})
	assert.Equal(t, http.StatusUnauthorized, resp.Code)

	// forged token signed with a different secret
	forged := jwt.NewSigner(jwt.HS256, "other-secret", 0)
	forgedToken, err := forged.Sign(utils.AdminSession{ID: 1, IsAdmin: true})
	require.NoError(t, err)
	resp = doRequest(t, app, request{method: http.MethodPut, path: path, body: update, session: string(forgedToken)})
	assert.Equal(t, http.StatusUnauthorized, resp.Code)

	// valid session
	token := createAdmin(t, server, "root@example.com", "adminsecret")
	resp = doRequest(t, app, request{method: http.MethodPut, path: path, body: update, session: token})
	assert.Equal(t, http.StatusOK, resp.Code)
}

func TestLogoutRevokesSession(t *testing.T) {
	app, server := newTestApp(t)
	token := createAdmin(t, server, "root@example.com", "adminsecret")

	resp := doRequest(t, app, request{method: http.MethodGet, path: "/api/admin/me", session: token})
	require.Equal(t, http.StatusOK, resp.Code)

	resp = doRequest(t, app, request{method: http.MethodPost, path: "/api/admin/logout", session: token})
	require.Equal(t, http.StatusOK, resp.Code)

	// the same signed token is dead once off the allowlist
	resp = doRequest(t, app, request{method: http.MethodGet, path: "/api/admin/me", session: token})
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestStats(t *testing.T) {
	app, server := newTestApp(t)
	token := createAdmin(t, server, "root@example.com", "adminsecret")

	seedFeedback(t, server, 4, "a", models.CategoryBug, models.StatusOpen)
	seedFeedback(t, server, 2, "b", models.CategoryBug, models.StatusClosed)
	seedFeedback(t, server, 5, "c", models.CategoryUI, models.StatusOpen)

	resp := doRequest(t, app, request{method: http.MethodGet, path: "/api/admin/stats", session: token})
	require.Equal(t, http.StatusOK, resp.Code)

	var body struct {
		Data struct {
			Total      int64            `json:"total"`
			ByStatus   map[string]int64 `json:"by_status"`
			ByCategory map[string]int64 `json:"by_category"`
		} `json:"data"`
	}
	decodeBody(t, resp, &body)
	assert.EqualValues(t, 3, body.Data.Total)
	assert.EqualValues(t, 2, body.Data.ByStatus[models.StatusOpen])
	assert.EqualValues(t, 1, body.Data.ByStatus[models.StatusClosed])
	assert.EqualValues(t, 2, body.Data.ByCategory[models.CategoryBug])
	assert.EqualValues(t, 1, body.Data.ByCategory[models.CategoryUI])
}

func TestActivityRecordsAuditEntries(t *testing.T) {
	app, server := newTestApp(t)
	token := createAdmin(t, server, "root@example.com", "adminsecret")
	seedFeedback(t, server, 4, "audited", models.CategoryGeneral, models.StatusOpen)

	resp := doRequest(t, app, request{
		method:  http.MethodPut,
		path:    "/api/feedback/1",
		body:    map[string]interface{}{"status": models.StatusReviewed},
		session: token,
	})
	require.Equal(t, http.StatusOK, resp.Code)

	resp = doRequest(t, app, request{method: http.MethodGet, path: "/api/admin/activity", session: token})
	require.Equal(t, http.StatusOK, resp.Code)

	var body struct {
		Data []models.AuditLog `json:"data"`
	}
	decodeBody(t, resp, &body)
	require.NotEmpty(t, body.Data)
	assert.Equal(t, "feedback.update", body.Data[0].Action)
	assert.Equal(t, "feedback", body.Data[0].ResourceType)
	assert.NotZero(t, body.Data[0].AdminUserID)
}
