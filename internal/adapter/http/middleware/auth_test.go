package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func newProtectedRouter(secret string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/v1/orders", AdminAuth(secret), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func TestAdminAuth(t *testing.T) {
	t.Run("matching secret passes", func(t *testing.T) {
		r := newProtectedRouter("s3cret")
		req := httptest.NewRequest(http.MethodGet, "/v1/orders", nil)
		req.Header.Set(HeaderAdminSecret, "s3cret")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("wrong secret is rejected", func(t *testing.T) {
		r := newProtectedRouter("s3cret")
		req := httptest.NewRequest(http.MethodGet, "/v1/orders", nil)
		req.Header.Set(HeaderAdminSecret, "nope")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
	})

	t.Run("missing header is rejected", func(t *testing.T) {
		r := newProtectedRouter("s3cret")
		req := httptest.NewRequest(http.MethodGet, "/v1/orders", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
	})

	t.Run("unconfigured secret locks everyone out", func(t *testing.T) {
		r := newProtectedRouter("")
		req := httptest.NewRequest(http.MethodGet, "/v1/orders", nil)
		req.Header.Set(HeaderAdminSecret, "")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
	})
}

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	t.Run("generates an id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Header().Get(HeaderRequestID) == "" {
			t.Fatalf("expected a generated request id")
		}
	})

	t.Run("honors a caller-supplied id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set(HeaderRequestID, "req-42")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if got := w.Header().Get(HeaderRequestID); got != "req-42" {
			t.Fatalf("expected req-42, got %s", got)
		}
	})
}
