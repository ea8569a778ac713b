package listing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestExtension(t *testing.T) {
	tests := map[string]string{
		"photo.JPG":      "JPG",
		"archive.tar.gz": "gz",
		"README":         "",
		".bashrc":        "",
		".config.yml":    "yml",
		"trailing.":      "",
	}
	for name, want := range tests {
		assert.Equal(t, want, Extension(name), name)
	}
}

func TestMIMEType(t *testing.T) {
	assert.Equal(t, "image/jpeg", MIMEType("photo.JPG"))
	assert.Equal(t, "application/gzip", MIMEType("archive.tar.gz"))
	assert.Equal(t, "video/x-matroska", MIMEType("movie.mkv"))
	assert.Equal(t, UnknownMIMEType, MIMEType("README"))
	assert.Equal(t, UnknownMIMEType, MIMEType("file.unknownext"))
}

func TestTopLevelType(t *testing.T) {
	assert.Equal(t, "image", TopLevelType("image/png"))
	assert.Equal(t, "application", TopLevelType(UnknownMIMEType))
	assert.Equal(t, "application", TopLevelType(""))
}

func TestFormatSize(t *testing.T) {
	assert.Equal(t, "0 B", FormatSize(0))
	assert.Equal(t, "2.0 kB", FormatSize(2048))
	assert.Equal(t, "1.5 MB", FormatSize(1_500_000))
	assert.Equal(t, "0 B", FormatSize(-1))
}

func TestFormatTime(t *testing.T) {
	ts := time.Date(2023, time.December, 31, 23, 59, 0, 0, time.FixedZone("CET", 3600))
	assert.Equal(t, "31/12/2023 22h59", FormatTime(ts))
}
