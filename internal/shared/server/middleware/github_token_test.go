package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func tokenEchoRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(GitHubToken())
	r.GET("/echo", func(c *gin.Context) {
		c.String(http.StatusOK, GitHubTokenFromContext(c))
	})
	return r
}

func TestGitHubTokenBearer(t *testing.T) {
	r := tokenEchoRouter()
	req := httptest.NewRequest(http.MethodGet, "/echo", nil)
	req.Header.Set("Authorization", "Bearer ghp_abc123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Body.String() != "ghp_abc123" {
		t.Fatalf("token = %q, want ghp_abc123", w.Body.String())
	}
}

func TestGitHubTokenSchemeVariants(t *testing.T) {
	cases := map[string]string{
		"token ghp_xyz":  "ghp_xyz",
		"bearer ghp_low": "ghp_low",
		"Basic dXNlcg==": "",
	}
	for header, want := range cases {
		r := tokenEchoRouter()
		req := httptest.NewRequest(http.MethodGet, "/echo", nil)
		req.Header.Set("Authorization", header)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Body.String() != want {
			t.Errorf("header %q: token = %q, want %q", header, w.Body.String(), want)
		}
	}
}

func TestGitHubTokenHeaderFallback(t *testing.T) {
	r := tokenEchoRouter()
	req := httptest.NewRequest(http.MethodGet, "/echo", nil)
	req.Header.Set("X-Github-Token", "ghp_fallback")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Body.String() != "ghp_fallback" {
		t.Fatalf("token = %q, want ghp_fallback", w.Body.String())
	}
}

func TestGitHubTokenAbsent(t *testing.T) {
	r := tokenEchoRouter()
	req := httptest.NewRequest(http.MethodGet, "/echo", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if w.Body.String() != "" {
		t.Fatalf("token = %q, want empty", w.Body.String())
	}
}
