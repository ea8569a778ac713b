package confine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEscapeRelative(t *testing.T) {
	assert.Equal(t, "/", EscapeRelative("/"))
	assert.Equal(t, "/a/b", EscapeRelative("/a/b"))
	assert.Equal(t, "/100%25", EscapeRelative("/100%"))
	assert.Equal(t, "/a%2520b/c%20d", EscapeRelative("/a%20b/c d"))
	assert.Equal(t, "/a%3Fb%23c.md", EscapeRelative("/a?b#c.md"))
}

func TestRelativize(t *testing.T) {
	tests := []struct {
		name string
		path string
		root string
		want string
	}{
		{"nested", "/srv/www/a/b", "/srv/www", "/a/b"},
		{"root itself", "/srv/www", "/srv/www", "/"},
		{"root with trailing separator", "/srv/www/a", "/srv/www/", "/a"},
		{"path with trailing separator", "/srv/www/", "/srv/www", "/"},
		{"doubled separators", "/srv/www//a///b", "/srv/www", "/a/b"},
		{"filesystem root", "/etc/hosts", "/", "/etc/hosts"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Relativize(tt.path, tt.root)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRelativize_NotUnderRoot(t *testing.T) {
	for _, path := range []string{
		"/srv",
		"/srv/wwwroot/a",
		"/etc/passwd",
		"/srv/www/../other",
		"relative/path",
	} {
		_, err := Relativize(path, "/srv/www")
		assert.ErrorIs(t, err, ErrNotUnderRoot, path)
	}
}
