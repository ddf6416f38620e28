package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"yatube/internal/common"
	userPort "yatube/internal/ports/user"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type staticSessions struct {
	tokens map[string]string
	users  map[string]bool
	err    error
}

func (s staticSessions) ParseToken(token string) (string, error) {
	if id, ok := s.tokens[token]; ok {
		return id, nil
	}
	return "", errors.New("bad token")
}

func (s staticSessions) GetByID(_ context.Context, id string) (*userPort.UserDTO, error) {
	if s.err != nil {
		return nil, s.err
	}
	if !s.users[id] {
		return nil, common.ErrNotFound
	}
	return &userPort.UserDTO{ID: id}, nil
}

func testSessions() staticSessions {
	return staticSessions{
		tokens: map[string]string{"good": "user-1", "stale": "user-deleted"},
		users:  map[string]bool{"user-1": true},
	}
}

func newEngine() *gin.Engine {
	return newEngineWith(testSessions())
}

func newEngineWith(sessions SessionResolver) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Recovery(zap.NewNop()), JWTAuthMiddleware(sessions))
	r.GET("/whoami/", func(c *gin.Context) { c.String(http.StatusOK, UserID(c)) })
	r.GET("/private/", LoginRequired(), func(c *gin.Context) { c.String(http.StatusOK, "secret") })
	r.GET("/boom/", func(c *gin.Context) { panic("boom") })
	return r
}

func TestJWTAuthMiddleware(t *testing.T) {
	r := newEngine()

	tests := []struct {
		name   string
		setup  func(*http.Request)
		expect string
	}{
		{"anonymous", func(*http.Request) {}, ""},
		{"cookie", func(req *http.Request) { req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "good"}) }, "user-1"},
		{"bearer", func(req *http.Request) { req.Header.Set("Authorization", "Bearer good") }, "user-1"},
		{"invalid token", func(req *http.Request) { req.Header.Set("Authorization", "Bearer forged") }, ""},
		{"token of deleted user", func(req *http.Request) { req.Header.Set("Authorization", "Bearer stale") }, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/whoami/", nil)
			tt.setup(req)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.expect, w.Body.String())
		})
	}
}

func TestJWTAuthMiddlewareTreatsLookupFailureAsAnonymous(t *testing.T) {
	sessions := testSessions()
	sessions.err = errors.New("db down")
	r := newEngineWith(sessions)

	req := httptest.NewRequest(http.MethodGet, "/private/", nil)
	req.Header.Set("Authorization", "Bearer good")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusFound, w.Code)
}

func TestLoginRequiredRedirects(t *testing.T) {
	r := newEngine()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/private/?page=2", nil))
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/auth/login/?next=%2Fprivate%2F%3Fpage%3D2", w.Header().Get("Location"))

	req := httptest.NewRequest(http.MethodGet, "/private/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "good"})
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "secret", w.Body.String())
}

func TestRecovery(t *testing.T) {
	r := newEngine()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom/", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, w.Body.String())
}
