package models

import "fmt"

// EntryKind classifies a directory child
type EntryKind int

const (
	// KindFile is a regular file or any other non-directory entry
	KindFile EntryKind = iota
	// KindDirectory is a directory
	KindDirectory
	// KindSymlink is a symbolic link, reported without following it
	KindSymlink
)

// String returns the lowercase name of the kind
func (k EntryKind) String() string {
	switch k {
	case KindDirectory:
		return "directory"
	case KindSymlink:
		return "symlink"
	default:
		return "file"
	}
}

// MarshalText lets the kind serialize as its name in JSON
func (k EntryKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText parses a kind name produced by MarshalText
func (k *EntryKind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "file":
		*k = KindFile
	case "directory":
		*k = KindDirectory
	case "symlink":
		*k = KindSymlink
	default:
		return fmt.Errorf("unknown entry kind %q", text)
	}
	return nil
}

// ListingEntry represents one child of a listed directory.
// The JSON field names are consumed by templates and API clients and must stay stable.
type ListingEntry struct {
	Name      string    `json:"name"`
	Size      string    `json:"size"`
	FileType  string    `json:"file_type"`
	MTime     string    `json:"mtime"`
	IsDir     bool      `json:"is_dir"`
	IsSymlink bool      `json:"is_symlink"`
	Path      string    `json:"path"`
	Ext       string    `json:"ext"`
	Kind      EntryKind `json:"kind"`
}

// Crumb is one step of the breadcrumb trail shown above a listing
type Crumb struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// ListingContext is the render-ready representation of a directory
type ListingContext struct {
	Path    string         `json:"path"`
	Parent  string         `json:"parent,omitempty"`
	Crumbs  []Crumb        `json:"crumbs"`
	Items   []ListingEntry `json:"items"`
	Dropped int            `json:"dropped"`
}

// ErrorResponse is returned for failed requests when JSON is negotiated
type ErrorResponse struct {
	Error string `json:"error"`
	Path  string `json:"path"`
}
