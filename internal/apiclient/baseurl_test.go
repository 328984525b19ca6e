package apiclient

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveBaseURL(t *testing.T) {
	tests := []struct {
		name string
		opts BaseURLOptions
		want string
	}{
		{"configured trailing slash", BaseURLOptions{Configured: "https://api.example.com/"}, "https://api.example.com"},
		{"only one slash removed", BaseURLOptions{Configured: "https://api.example.com//"}, "https://api.example.com/"},
		{"configured trimmed", BaseURLOptions{Configured: "  https://api.example.com  ", Development: true}, "https://api.example.com"},
		{"blank configured in development", BaseURLOptions{Configured: "   ", Development: true, Origin: "https://portal.example.com"}, DefaultBaseURL},
		{"origin in production", BaseURLOptions{Origin: "https://portal.example.com"}, "https://portal.example.com"},
		{"nothing at all", BaseURLOptions{}, DefaultBaseURL},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveBaseURL(tt.opts))
		})
	}
}
