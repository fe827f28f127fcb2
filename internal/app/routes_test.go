package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrefixPattern(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		basePath string
		pattern  string
		want     string
	}{
		{
			name:    "empty base leaves pattern alone",
			pattern: "POST /game",
			want:    "POST /game",
		},
		{
			name:     "base prefixes after the method",
			basePath: "/api",
			pattern:  "POST /game",
			want:     "POST /api/game",
		},
		{
			name:     "surrounding slashes are normalized",
			basePath: "api/v1/",
			pattern:  "GET /game/{id}",
			want:     "GET /api/v1/game/{id}",
		},
		{
			name:     "methodless pattern",
			basePath: "/api",
			pattern:  "/game/{id}/connect",
			want:     "/api/game/{id}/connect",
		},
		{
			name:     "bare slash base is empty",
			basePath: "/",
			pattern:  "GET /status",
			want:     "GET /status",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, prefixPattern(tt.basePath, tt.pattern))
		})
	}
}
