package utils

import "testing"

func TestOriginPolicyAllows(t *testing.T) {
	policy := NewOriginPolicy([]string{"https://films.example/", "*.cdn.example", "  "})

	tests := []struct {
		origin  string
		allowed bool
	}{
		// local network
		{"http://localhost", true},
		{"https://localhost:3000", true},
		{"http://192.168.1.1:7777", true},
		{"http://10.0.0.1", true},
		{"http://172.31.255.255:443", true},
		{"http://127.0.0.1:3000", true},
		{"http://169.254.1.1", true},
		{"http://[::1]:3000", true},
		{"http://mynas.local:7777", true},
		{"http://mediaserver:7777", true},

		// configured
		{"https://films.example", true},
		{"https://FILMS.example", true},
		{"http://films.example", false},
		{"https://eu.cdn.example", true},
		{"https://cdn.example.evil.com", false},

		// public
		{"http://example.com", false},
		{"http://image.tmdb.org.evil.com", false},
		{"http://8.8.8.8", false},

		// empty/invalid
		{"", false},
		{"not-a-url", false},
	}

	for _, tt := range tests {
		if got := policy.Allows(tt.origin); got != tt.allowed {
			t.Errorf("Allows(%q) = %v, want %v", tt.origin, got, tt.allowed)
		}
	}
}

func TestNilOriginPolicyOnlyAllowsLocal(t *testing.T) {
	var policy *OriginPolicy
	if !policy.Allows("http://localhost:3000") {
		t.Fatal("expected localhost to be allowed")
	}
	if policy.Allows("https://films.example") {
		t.Fatal("expected public origin to be rejected")
	}
}
