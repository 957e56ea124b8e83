package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/kataras/iris/v12"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"

	"feedback-board-server/models"
	"feedback-board-server/storage"
	"feedback-board-server/utils"
)

const testSetupToken = "test-setup-token"

// newTestApp builds an Iris app with the full route surface over a
// throwaway sqlite store and an in-memory session allowlist.
func newTestApp(t *testing.T) (*iris.Application, *Server) {
	t.Helper()

	logger := log.New()
	logger.SetOutput(io.Discard)

	store, err := storage.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), logger)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	sessions := utils.NewSessions("testsecret", storage.NewMemorySessions())
	server := NewServer(store, sessions, testSetupToken, logger)

	app := iris.New()
	app.Validator = validator.New()
	server.Attach(app)
	require.NoError(t, app.Build())

	return app, server
}

// createAdmin seeds an admin user directly and returns a live session token.
func createAdmin(t *testing.T, server *Server, email, password string) string {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	require.NoError(t, err)

	admin := models.User{
		Email:    email,
		Name:     "Test Admin",
		IsAdmin:  true,
		Password: string(hash),
	}
	require.NoError(t, server.Store.Users().Insert(&admin))

	token, err := server.Sessions.Issue(context.Background(), &admin)
	require.NoError(t, err)
	return token
}

// seedFeedback inserts a feedback record straight through the store.
func seedFeedback(t *testing.T, server *Server, rating int, comment, category, status string) *models.Feedback {
	t.Helper()

	fb := &models.Feedback{
		UserID:    "1",
		UserName:  "Seed User",
		UserEmail: "seed@example.com",
		Rating:    rating,
		Comment:   comment,
		Category:  category,
		Status:    status,
	}
	require.NoError(t, server.Store.Feedback().Insert(fb))
	return fb
}

type request struct {
	method  string
	path    string
	body    interface{}
	session string
	headers map[string]string
}

func doRequest(t *testing.T, app *iris.Application, r request) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if r.body != nil {
		payload, err := json.Marshal(r.body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(r.method, r.path, reader)
	if r.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if r.session != "" {
		req.AddCookie(&http.Cookie{Name: utils.SessionCookie, Value: r.session})
	}
	for k, v := range r.headers {
		req.Header.Set(k, v)
	}

	resp := httptest.NewRecorder()
	app.ServeHTTP(resp, req)
	return resp
}

func decodeBody(t *testing.T, resp *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), out))
}
