package httpmetrics_test

import (
	"testing"

	"github.com/asafonov/blog-backend/internal/common/httpmetrics"
)

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		name string
		path string
		want string
	}{
		{"empty", "", "/"},
		{"root", "/", "/"},
		{"static", "/posts", "/posts"},
		{"uuid segment", "/posts/6ba7b810-9dad-11d1-80b4-00c04fd430c8", "/posts/{id}"},
		{"numeric segment", "/posts/42", "/posts/{id}"},
		{"mixed segment kept", "/posts/abc123", "/posts/abc123"},
		{"register", "/register", "/register"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := httpmetrics.NormalizePath(tt.path); got != tt.want {
				t.Errorf("NormalizePath(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}
