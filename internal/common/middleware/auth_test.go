package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	apperrors "channel-stats-backend/internal/common/errors"
)

type fakeAuthService struct {
	login      string
	resolveErr error
}

func (f *fakeAuthService) Login(context.Context, string, string) (string, error) {
	return "", errors.New("not used")
}

func (f *fakeAuthService) Resolve(context.Context, string) (string, error) {
	if f.resolveErr != nil {
		return "", f.resolveErr
	}
	return f.login, nil
}

func (f *fakeAuthService) Logout(context.Context, string) error {
	return nil
}

func newAuthRouter(svc *fakeAuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/whoami", SessionAuth(svc, "session"), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"login": GetLogin(c)})
	})
	return router
}

func doRequest(router *gin.Engine, path string, withCookie bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if withCookie {
		req.AddCookie(&http.Cookie{Name: "session", Value: "token-1"})
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestSessionAuthMissingCookie(t *testing.T) {
	router := newAuthRouter(&fakeAuthService{login: "u@example.com"})

	rec := doRequest(router, "/whoami", false)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSessionAuthExpiredSession(t *testing.T) {
	svc := &fakeAuthService{resolveErr: apperrors.New(apperrors.ErrCodeSessionExpired, "session expired")}
	router := newAuthRouter(svc)

	rec := doRequest(router, "/whoami", true)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// Недоступный Redis не должен выглядеть как протухшая сессия.
func TestSessionAuthInfrastructureFailure(t *testing.T) {
	svc := &fakeAuthService{resolveErr: apperrors.NewCacheError("get session", errors.New("connection refused"))}
	router := newAuthRouter(svc)

	rec := doRequest(router, "/whoami", true)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestSessionAuthLoginMismatch(t *testing.T) {
	router := newAuthRouter(&fakeAuthService{login: "u@example.com"})

	rec := doRequest(router, "/whoami?login=other@example.com", true)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestSessionAuthInjectsLogin(t *testing.T) {
	router := newAuthRouter(&fakeAuthService{login: "u@example.com"})

	rec := doRequest(router, "/whoami?login=u@example.com", true)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "u@example.com")
}
