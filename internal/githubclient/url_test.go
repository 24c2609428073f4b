package githubclient

import (
	"errors"
	"testing"
)

func TestParseRepoURL(t *testing.T) {
	cases := []struct {
		input string
		owner string
		repo  string
	}{
		{"https://github.com/acme/payments", "acme", "payments"},
		{"https://github.com/acme/payments.git", "acme", "payments"},
		{"https://github.com/acme/payments/", "acme", "payments"},
		{"git@github.com:acme/payments.git", "acme", "payments"},
		{"acme/payments", "acme", "payments"},
		{"https://github.enterprise.example/acme/payments", "acme", "payments"},
	}
	for _, tc := range cases {
		owner, repo, err := ParseRepoURL(tc.input)
		if err != nil {
			t.Errorf("ParseRepoURL(%q) error: %v", tc.input, err)
			continue
		}
		if owner != tc.owner || repo != tc.repo {
			t.Errorf("ParseRepoURL(%q) = %q/%q, want %q/%q", tc.input, owner, repo, tc.owner, tc.repo)
		}
	}
}

func TestParseRepoURLInvalid(t *testing.T) {
	for _, input := range []string{"", "   ", "acme", "https://github.com/", "git@github.com", "/acme//"} {
		if _, _, err := ParseRepoURL(input); !errors.Is(err, ErrInvalidRepoURL) {
			t.Errorf("ParseRepoURL(%q) err = %v, want ErrInvalidRepoURL", input, err)
		}
	}
}

func TestCloneURL(t *testing.T) {
	if got := CloneURL("acme", "payments"); got != "https://github.com/acme/payments.git" {
		t.Fatalf("CloneURL = %q", got)
	}
}
