package middleware

import (
	"testing"
)

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/health", "/health"},
		{"/api/accounts", "/api/accounts"},
		{"/api/accounts/", "/api/accounts/"},
		{"/api/accounts/transfer", "/api/accounts/transfer"},
		{"/api/accounts/deposit", "/api/accounts/deposit"},
		{"/api/accounts/withdraw", "/api/accounts/withdraw"},
		{"/api/accounts/01HZXYZABC", "/api/accounts/:id"},
		{"/api/accounts/01HZXYZABC/transactions", "/api/accounts/:id/transactions"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := normalizePath(tt.path); got != tt.want {
				t.Fatalf("normalizePath(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}
