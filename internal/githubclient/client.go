package githubclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/oauth2"
)

const defaultBaseURL = "https://api.github.com"

const maxAttempts = 3

var (
	ErrNotFound     = errors.New("repository not found")
	ErrUnauthorized = errors.New("github token rejected")
	ErrRateLimited  = errors.New("github rate limit exceeded")
)

// RepoInfo is the subset of repository metadata the analyzer cares about.
type RepoInfo struct {
	Name          string `json:"name"`
	FullName      string `json:"full_name"`
	DefaultBranch string `json:"default_branch"`
	Language      string `json:"language"`
	Description   string `json:"description"`
	HTMLURL       string `json:"html_url"`
	Private       bool   `json:"private"`
}

// User is the authenticated GitHub account.
type User struct {
	Login     string `json:"login"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatar_url"`
}

// Client talks to the GitHub REST API. An empty token yields unauthenticated
// requests, which still work for public repositories at a much smaller rate
// budget.
type Client struct {
	httpClient *http.Client
	baseURL    string
	tracker    *RateLimitTracker

	// sleep is swapped out in tests.
	sleep func(context.Context, time.Duration) error
}

// NewClient builds a Client for the given token.
func NewClient(token string, tracker *RateLimitTracker) *Client {
	httpClient := &http.Client{Timeout: 15 * time.Second}
	if token != "" {
		src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		httpClient = oauth2.NewClient(context.Background(), src)
		httpClient.Timeout = 15 * time.Second
	}
	if tracker == nil {
		tracker = NewRateLimitTracker()
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    defaultBaseURL,
		tracker:    tracker,
		sleep:      sleepCtx,
	}
}

// Tracker exposes the rate limit state observed by this client.
func (c *Client) Tracker() *RateLimitTracker { return c.tracker }

// RepoInfo fetches metadata for one repository.
func (c *Client) RepoInfo(ctx context.Context, owner, repo string) (RepoInfo, error) {
	var info RepoInfo
	err := c.getJSON(ctx, fmt.Sprintf("/repos/%s/%s", owner, repo), &info)
	return info, err
}

// AuthenticatedUser fetches the account behind the client's token.
func (c *Client) AuthenticatedUser(ctx context.Context) (User, error) {
	var user User
	err := c.getJSON(ctx, "/user", &user)
	return user, err
}

// ListRepositories lists repositories accessible to the token.
func (c *Client) ListRepositories(ctx context.Context) ([]RepoInfo, error) {
	repos := []RepoInfo{}
	err := c.getJSON(ctx, "/user/repos?per_page=100&sort=updated", &repos)
	return repos, err
}

// getJSON performs a GET with rate limit awareness and bounded retries on
// secondary rate limit responses.
func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if attempt > 0 {
			if err := c.sleep(ctx, backoffDelay(attempt-1)); err != nil {
				return err
			}
		}
		if wait := c.tracker.WaitTime(EndpointCore, time.Now()); wait > 0 {
			return fmt.Errorf("%w: retry after %s", ErrRateLimited, wait.Round(time.Second))
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
		if err != nil {
			return err
		}
		req.Header.Set("Accept", "application/vnd.github+json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return err
		}
		c.tracker.UpdateFromHeaders(resp.Header, EndpointCore)

		switch {
		case resp.StatusCode == http.StatusOK:
			err := json.NewDecoder(resp.Body).Decode(out)
			resp.Body.Close()
			return err
		case resp.StatusCode == http.StatusNotFound:
			resp.Body.Close()
			return ErrNotFound
		case resp.StatusCode == http.StatusUnauthorized:
			resp.Body.Close()
			return ErrUnauthorized
		case resp.StatusCode == http.StatusForbidden || resp.StatusCode == http.StatusTooManyRequests:
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			lastErr = ErrRateLimited
			// Retry only if the budget recovered; a hard limit exits above on
			// the next iteration's WaitTime check.
			continue
		default:
			body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
			resp.Body.Close()
			return fmt.Errorf("github api status %d: %s", resp.StatusCode, string(body))
		}
	}
	return lastErr
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
