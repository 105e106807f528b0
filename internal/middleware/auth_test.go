package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jcastell/wellness-backend/internal/logger"
	"github.com/jcastell/wellness-backend/internal/requestdata"
	"github.com/jcastell/wellness-backend/internal/services"
	"github.com/jcastell/wellness-backend/internal/types"
)

// stubAuthService accepts exactly one token and binds a fixed identity.
type stubAuthService struct {
	token string
	rd    *requestdata.RequestData
}

func (s *stubAuthService) Register(ctx context.Context, input services.RegisterInput) (*types.User, error) {
	return nil, nil
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (string, error) {
	return s.token, nil
}

func (s *stubAuthService) ContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	if tokenString != s.token {
		return ctx, services.ErrUnauthorized
	}
	return requestdata.WithRequestData(ctx, s.rd), nil
}

func (s *stubAuthService) AccessTTL() time.Duration { return time.Hour }

func newAuthedRouter(t *testing.T, svc services.AuthService) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("failed to build test logger: %v", err)
	}
	am := NewAuthMiddleware(log, svc)

	r := gin.New()
	protected := r.Group("", am.RequireAuth())
	protected.GET("/me", func(c *gin.Context) {
		rd := requestdata.GetRequestData(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{"user_id": rd.UserID.String()})
	})
	admin := r.Group("", am.RequireAuth(), am.RequireAdmin())
	admin.GET("/admin", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func TestRequireAuth(t *testing.T) {
	userID := uuid.New()
	svc := &stubAuthService{
		token: "good-token",
		rd:    &requestdata.RequestData{UserID: userID, Role: types.RoleUser},
	}
	r := newAuthedRouter(t, svc)

	cases := []struct {
		name       string
		header     string
		query      string
		wantStatus int
	}{
		{name: "missing_token", wantStatus: http.StatusUnauthorized},
		{name: "bad_token", header: "Bearer nope", wantStatus: http.StatusUnauthorized},
		{name: "malformed_header", header: "good-token", wantStatus: http.StatusUnauthorized},
		{name: "bearer_header", header: "Bearer good-token", wantStatus: http.StatusOK},
		{name: "query_token", query: "?token=good-token", wantStatus: http.StatusOK},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/me"+tc.query, nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			r.ServeHTTP(w, req)
			if w.Code != tc.wantStatus {
				t.Fatalf("expected %d, got %d: %s", tc.wantStatus, w.Code, w.Body.String())
			}
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	user := &stubAuthService{
		token: "user-token",
		rd:    &requestdata.RequestData{UserID: uuid.New(), Role: types.RoleUser},
	}
	r := newAuthedRouter(t, user)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer user-token")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-admin, got %d", w.Code)
	}

	admin := &stubAuthService{
		token: "admin-token",
		rd:    &requestdata.RequestData{UserID: uuid.New(), Role: types.RoleAdmin},
	}
	r = newAuthedRouter(t, admin)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer admin-token")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin, got %d: %s", w.Code, w.Body.String())
	}
}
