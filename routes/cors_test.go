package routes

import (
	"errors"
	"testing"
)

func TestEvaluateOrigin(t *testing.T) {
	cases := []struct {
		origin  string
		allowed bool
	}{
		{"", true},
		{"http://localhost:3000", true},
		{"https://localhost", true},
		{"http://127.0.0.1:5173", true},
		{"https://my-site.netlify.app", true},
		// Substring match, not host match.
		{"https://evil.com/localhost", true},
		{"https://localhost.evil.com", true},
		{"https://netlify.app.attacker.io", true},
		{"http://127.0.0.1.nip.io", true},
		{"https://example.com", false},
		{"null", false},
		{"http://LOCALHOST:3000", false},
		{"https://netlify.com", false},
	}
	for _, tc := range cases {
		d := EvaluateOrigin(tc.origin)
		if d.Allowed != tc.allowed {
			t.Fatalf("EvaluateOrigin(%q).Allowed = %v, want %v", tc.origin, d.Allowed, tc.allowed)
		}
		if tc.allowed && d.Err != nil {
			t.Fatalf("EvaluateOrigin(%q) returned error on allow: %v", tc.origin, d.Err)
		}
		if !tc.allowed && !errors.Is(d.Err, ErrPolicyViolation) {
			t.Fatalf("EvaluateOrigin(%q) expected ErrPolicyViolation, got %v", tc.origin, d.Err)
		}
	}
}

func TestAllowOriginWrapsViolation(t *testing.T) {
	allowed, err := allowOrigin("https://example.com")
	if allowed {
		t.Fatalf("expected deny")
	}
	if !errors.Is(err, ErrPolicyViolation) {
		t.Fatalf("expected wrapped ErrPolicyViolation, got %v", err)
	}

	allowed, err = allowOrigin("http://localhost:3000")
	if !allowed || err != nil {
		t.Fatalf("expected allow, got %v %v", allowed, err)
	}
}
