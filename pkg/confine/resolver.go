package confine

import (
	"fmt"
	"path/filepath"
	"strings"
)

// ConfinedPath is an absolute filesystem path that is the root or one of its descendants.
// It can only be built by a Resolver, so holding one is proof of containment.
type ConfinedPath struct {
	root string
	rel  []string
}

// String returns the absolute filesystem path
func (p ConfinedPath) String() string {
	if len(p.rel) == 0 {
		return p.root
	}
	return filepath.Join(append([]string{p.root}, p.rel...)...)
}

// Root returns the confinement root this path was resolved against
func (p ConfinedPath) Root() string {
	return p.root
}

// Components returns a copy of the path components below the root
func (p ConfinedPath) Components() []string {
	return append([]string(nil), p.rel...)
}

// IsRoot reports whether the path designates the root itself
func (p ConfinedPath) IsRoot() bool {
	return len(p.rel) == 0
}

// Relative returns the root-relative web path, e.g. "/a/b" or "/" for the root
func (p ConfinedPath) Relative() string {
	return "/" + strings.Join(p.rel, "/")
}

// Resolver turns untrusted URL segments into paths confined under a fixed root
type Resolver struct {
	root string
}

// NewResolver creates a resolver for the given absolute root
func NewResolver(root string) (*Resolver, error) {
	if root == "" {
		return nil, fmt.Errorf("root directory is not specified")
	}
	if !filepath.IsAbs(root) {
		return nil, fmt.Errorf("root directory %q must be absolute", root)
	}
	return &Resolver{root: filepath.Clean(root)}, nil
}

// Root returns the ConfinedPath of the root itself
func (r *Resolver) Root() ConfinedPath {
	return ConfinedPath{root: r.root}
}

// RootDir returns the cleaned absolute root directory
func (r *Resolver) RootDir() string {
	return r.root
}

// Resolve decodes and validates raw, percent-encoded segments and folds them into a
// path under the root. A ".." segment pops the last component; popping past the
// root is a no-op. Any rejected segment fails the whole resolution. No filesystem
// access happens here.
func (r *Resolver) Resolve(segments []string) (ConfinedPath, error) {
	rel := make([]string, 0, len(segments))
	for _, raw := range segments {
		decoded, err := DecodeSegment(raw)
		if err != nil {
			return ConfinedPath{}, err
		}

		action, err := ValidateSegment(decoded)
		if err != nil {
			return ConfinedPath{}, err
		}

		switch action {
		case ActionPush:
			rel = append(rel, decoded)
		case ActionPop:
			if len(rel) > 0 {
				rel = rel[:len(rel)-1]
			}
		}
	}
	return ConfinedPath{root: r.root, rel: rel}, nil
}

// ResolveURLPath splits an escaped URL path and resolves its segments
func (r *Resolver) ResolveURLPath(escaped string) (ConfinedPath, error) {
	return r.Resolve(SplitPath(escaped))
}

// SplitPath splits an escaped URL path ("/a/b%20c") into its raw segments.
// Empty segments are kept; the resolver skips them.
func SplitPath(escaped string) []string {
	escaped = strings.TrimPrefix(escaped, "/")
	if escaped == "" {
		return nil
	}
	return strings.Split(escaped, "/")
}
