package util

import "testing"

func TestHashPrincipal(t *testing.T) {
	token := "ghp_secret"
	got := HashPrincipal(token)
	if got != HashPrincipal(token) {
		t.Fatalf("expected stable hash, got %s", got)
	}
	if got == token {
		t.Fatalf("expected hash to differ from input")
	}
	if len(got) != 64 {
		t.Fatalf("expected 64 hex characters, got %d", len(got))
	}
}

func TestSanitizeDirName(t *testing.T) {
	cases := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "payments", want: "payments"},
		{in: "acme/payments", want: "acme_payments"},
		{in: "a*b", want: "a_b"},
		{in: "../etc", wantErr: true},
		{in: "   ", wantErr: true},
	}
	for _, tc := range cases {
		got, err := SanitizeDirName(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("SanitizeDirName(%q): expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("SanitizeDirName(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("SanitizeDirName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
