package utils

import (
	"context"
	"strings"
	"time"

	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"

	"feedback-board-server/models"
	"feedback-board-server/storage"
)

// SessionCookie is the admin session cookie name.
const SessionCookie = "admin_session"

const sessionTTL = 12 * time.Hour

// AdminSession is the claims payload of a signed session token.
type AdminSession struct {
	ID      uint   `json:"id"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"isAdmin"`
}

// Sessions issues and verifies signed admin session tokens. A token is valid
// only while its signature checks out AND it is still present in the
// server-side allowlist, so logout and restarts actually revoke access.
type Sessions struct {
	signer   *jwt.Signer
	verifier *jwt.Verifier
	store    storage.SessionStore
}

func NewSessions(secret string, store storage.SessionStore) *Sessions {
	return &Sessions{
		signer:   jwt.NewSigner(jwt.HS256, secret, sessionTTL),
		verifier: jwt.NewVerifier(jwt.HS256, []byte(secret)),
		store:    store,
	}
}

// Issue signs a session token for the user and allowlists it.
func (s *Sessions) Issue(ctx context.Context, user *models.User) (string, error) {
	claims := AdminSession{
		ID:      user.ID,
		Email:   user.Email,
		IsAdmin: user.IsAdmin,
	}

	token, err := s.signer.Sign(claims)
	if err != nil {
		return "", err
	}

	// Allowlist entry outlives the token slightly so verification never
	// races expiry the wrong way round.
	if err := s.store.Put(ctx, string(token), sessionTTL+5*time.Minute); err != nil {
		return "", err
	}

	return string(token), nil
}

func (s *Sessions) Revoke(ctx context.Context, token string) error {
	return s.store.Revoke(ctx, token)
}

// FromRequest extracts and verifies the session token from the request
// cookie (or a bearer header). It returns the claims, the raw token, and
// whether the session is valid.
func (s *Sessions) FromRequest(ctx iris.Context) (*AdminSession, string, bool) {
	raw := requestToken(ctx)
	if raw == "" {
		return nil, "", false
	}

	verified, err := s.verifier.VerifyToken([]byte(raw))
	if err != nil {
		return nil, "", false
	}

	ok, err := s.store.Exists(ctx.Request().Context(), raw)
	if err != nil || !ok {
		return nil, "", false
	}

	var claims AdminSession
	if err := verified.Claims(&claims); err != nil {
		return nil, "", false
	}

	return &claims, raw, true
}

func requestToken(ctx iris.Context) string {
	if cookie := ctx.GetCookie(SessionCookie); cookie != "" {
		return cookie
	}
	header := ctx.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}
