package confine

import (
	"net/url"
	"path/filepath"
	"strings"
)

// Relativize maps an absolute path under root to its root-relative web path.
// The result always starts with exactly one "/" and uses "/" as separator;
// the root itself maps to "/". Paths outside the root fail with ErrNotUnderRoot.
func Relativize(path, root string) (string, error) {
	cleanRoot := filepath.Clean(root)
	cleanPath := filepath.Clean(path)

	if cleanPath == cleanRoot {
		return "/", nil
	}

	prefix := cleanRoot
	if !strings.HasSuffix(prefix, string(filepath.Separator)) {
		prefix += string(filepath.Separator)
	}
	if !strings.HasPrefix(cleanPath, prefix) {
		return "", ErrNotUnderRoot
	}

	rest := filepath.ToSlash(strings.TrimPrefix(cleanPath, prefix))
	if rest == "" {
		return "/", nil
	}
	return "/" + rest, nil
}

// EscapeRelative percent-escapes every segment of a web path returned by
// Relativize so that ResolveURLPath maps it back to the same directory.
func EscapeRelative(rel string) string {
	parts := strings.Split(rel, "/")
	for i, part := range parts {
		parts[i] = url.PathEscape(part)
	}
	return strings.Join(parts, "/")
}
