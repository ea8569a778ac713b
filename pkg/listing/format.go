package listing

import (
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

const (
	// DirectorySize is displayed instead of a byte count for directories
	DirectorySize = "-"
	// TimeLayout renders modification times as day/month/year and 24h hour/minute
	TimeLayout = "02/01/2006 15h04"
)

// Extension returns the extension of a file name without the dot.
// Dotfiles such as ".bashrc" have no extension.
func Extension(name string) string {
	i := strings.LastIndexByte(name, '.')
	if i <= 0 {
		return ""
	}
	return name[i+1:]
}

// FormatSize renders a byte count for display
func FormatSize(size int64) string {
	if size < 0 {
		size = 0
	}
	return humanize.Bytes(uint64(size))
}

// FormatTime renders a modification time in UTC
func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}
