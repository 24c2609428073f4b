package githubclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func testClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewClient("", nil)
	c.baseURL = srv.URL
	c.sleep = func(context.Context, time.Duration) error { return nil }
	return c
}

func TestClientRepoInfo(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/repos/acme/payments" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.Header.Get("Accept"); got != "application/vnd.github+json" {
			t.Errorf("accept = %q", got)
		}
		w.Header().Set("X-RateLimit-Limit", "5000")
		w.Header().Set("X-RateLimit-Remaining", "4999")
		w.Write([]byte(`{"name":"payments","full_name":"acme/payments","default_branch":"main","language":"Java"}`))
	}))

	info, err := c.RepoInfo(context.Background(), "acme", "payments")
	if err != nil {
		t.Fatal(err)
	}
	if info.FullName != "acme/payments" || info.DefaultBranch != "main" || info.Language != "Java" {
		t.Fatalf("info = %+v", info)
	}
	if !c.Tracker().Authenticated() {
		t.Fatal("tracker should have recorded the authenticated budget")
	}
}

func TestClientErrorMapping(t *testing.T) {
	cases := []struct {
		status int
		want   error
	}{
		{http.StatusNotFound, ErrNotFound},
		{http.StatusUnauthorized, ErrUnauthorized},
	}
	for _, tc := range cases {
		c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tc.status)
		}))
		_, err := c.RepoInfo(context.Background(), "acme", "payments")
		if !errors.Is(err, tc.want) {
			t.Errorf("status %d err = %v, want %v", tc.status, err, tc.want)
		}
	}
}

func TestClientRateLimitRetryThenFail(t *testing.T) {
	calls := 0
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("X-RateLimit-Limit", "60")
		w.Header().Set("X-RateLimit-Remaining", "10")
		w.WriteHeader(http.StatusForbidden)
	}))

	_, err := c.RepoInfo(context.Background(), "acme", "payments")
	if !errors.Is(err, ErrRateLimited) {
		t.Fatalf("err = %v, want ErrRateLimited", err)
	}
	if calls != maxAttempts {
		t.Fatalf("calls = %d, want %d", calls, maxAttempts)
	}
}

func TestClientExhaustedBudgetShortCircuits(t *testing.T) {
	calls := 0
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("X-RateLimit-Limit", "60")
		w.Header().Set("X-RateLimit-Remaining", "0")
		w.Header().Set("X-RateLimit-Reset", "99999999999")
		w.WriteHeader(http.StatusForbidden)
	}))

	_, err := c.RepoInfo(context.Background(), "acme", "payments")
	if !errors.Is(err, ErrRateLimited) {
		t.Fatalf("err = %v, want ErrRateLimited", err)
	}
	if calls != 1 {
		t.Fatalf("calls = %d, want 1 (budget exhausted, no point retrying)", calls)
	}
}

func TestClientListRepositories(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/user/repos" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.Write([]byte(`[{"name":"a","full_name":"me/a"},{"name":"b","full_name":"me/b"}]`))
	}))

	repos, err := c.ListRepositories(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(repos) != 2 || repos[1].FullName != "me/b" {
		t.Fatalf("repos = %+v", repos)
	}
}
