package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gasanadj/demo-rise360-backend/internal/auth"
)

func testRouter(tokens *auth.TokenManager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	m := NewAuthMiddleware(tokens)

	r := gin.New()
	r.GET("/me", m.RequireAuth(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": GetUserID(c), "role": GetRole(c)})
	})
	r.POST("/sell", m.RequireAuth(), m.RequireRole("seller"), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func doRequest(r *gin.Engine, method, path, token string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestRequireAuthValidToken(t *testing.T) {
	tokens := auth.NewTokenManager("test-secret", "rise360-test", time.Hour)
	r := testRouter(tokens)

	token, err := tokens.Generate("u1", "buyer")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	w := doRequest(r, http.MethodGet, "/me", token)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}
}

func TestRequireAuthMissingHeader(t *testing.T) {
	tokens := auth.NewTokenManager("test-secret", "rise360-test", time.Hour)
	r := testRouter(tokens)

	w := doRequest(r, http.MethodGet, "/me", "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestRequireAuthExpiredToken(t *testing.T) {
	expired := auth.NewTokenManager("test-secret", "rise360-test", -time.Minute)
	verifier := auth.NewTokenManager("test-secret", "rise360-test", time.Hour)
	r := testRouter(verifier)

	token, err := expired.Generate("u1", "buyer")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	w := doRequest(r, http.MethodGet, "/me", token)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestRequireRole(t *testing.T) {
	tokens := auth.NewTokenManager("test-secret", "rise360-test", time.Hour)
	r := testRouter(tokens)

	sellerToken, _ := tokens.Generate("u1", "seller")
	buyerToken, _ := tokens.Generate("u2", "buyer")

	if w := doRequest(r, http.MethodPost, "/sell", sellerToken); w.Code != http.StatusOK {
		t.Errorf("seller got %d, want 200", w.Code)
	}
	if w := doRequest(r, http.MethodPost, "/sell", buyerToken); w.Code != http.StatusForbidden {
		t.Errorf("buyer got %d, want 403", w.Code)
	}
}
