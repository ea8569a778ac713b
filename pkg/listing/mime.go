package listing

import "strings"

const (
	// UnknownMIMEType is used when the extension is not in the table
	UnknownMIMEType = "application/unknown"
	// DirectoryFileType is the file type reported for directories
	DirectoryFileType = "directory"
)

var mimeTypes = map[string]string{
	// text
	"txt":  "text/plain",
	"log":  "text/plain",
	"md":   "text/markdown",
	"csv":  "text/csv",
	"tsv":  "text/tab-separated-values",
	"html": "text/html",
	"htm":  "text/html",
	"css":  "text/css",
	"xml":  "text/xml",
	"ini":  "text/plain",
	"conf": "text/plain",
	"c":    "text/x-c",
	"h":    "text/x-c",
	"cpp":  "text/x-c",
	"go":   "text/x-go",
	"rs":   "text/x-rust",
	"py":   "text/x-python",
	"java": "text/x-java-source",
	"sh":   "application/x-sh",
	"rtf":  "application/rtf",
	"ics":  "text/calendar",
	"vcf":  "text/vcard",

	// images
	"png":  "image/png",
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"gif":  "image/gif",
	"bmp":  "image/bmp",
	"webp": "image/webp",
	"svg":  "image/svg+xml",
	"ico":  "image/x-icon",
	"tif":  "image/tiff",
	"tiff": "image/tiff",
	"heic": "image/heic",
	"avif": "image/avif",

	// audio
	"mp3":  "audio/mpeg",
	"wav":  "audio/wav",
	"ogg":  "audio/ogg",
	"oga":  "audio/ogg",
	"flac": "audio/flac",
	"aac":  "audio/aac",
	"m4a":  "audio/mp4",
	"opus": "audio/opus",
	"mid":  "audio/midi",
	"midi": "audio/midi",

	// video
	"mp4":  "video/mp4",
	"m4v":  "video/mp4",
	"mkv":  "video/x-matroska",
	"webm": "video/webm",
	"avi":  "video/x-msvideo",
	"mov":  "video/quicktime",
	"wmv":  "video/x-ms-wmv",
	"flv":  "video/x-flv",
	"mpeg": "video/mpeg",
	"mpg":  "video/mpeg",
	"ogv":  "video/ogg",

	// fonts
	"ttf":   "font/ttf",
	"otf":   "font/otf",
	"woff":  "font/woff",
	"woff2": "font/woff2",

	// documents and archives
	"pdf":  "application/pdf",
	"json": "application/json",
	"js":   "application/javascript",
	"wasm": "application/wasm",
	"yaml": "application/yaml",
	"yml":  "application/yaml",
	"toml": "application/toml",
	"doc":  "application/msword",
	"docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"xls":  "application/vnd.ms-excel",
	"xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	"ppt":  "application/vnd.ms-powerpoint",
	"pptx": "application/vnd.openxmlformats-officedocument.presentationml.presentation",
	"odt":  "application/vnd.oasis.opendocument.text",
	"ods":  "application/vnd.oasis.opendocument.spreadsheet",
	"epub": "application/epub+zip",
	"zip":  "application/zip",
	"gz":   "application/gzip",
	"tgz":  "application/gzip",
	"bz2":  "application/x-bzip2",
	"xz":   "application/x-xz",
	"zst":  "application/zstd",
	"tar":  "application/x-tar",
	"7z":   "application/x-7z-compressed",
	"rar":  "application/vnd.rar",
	"iso":  "application/x-iso9660-image",
	"deb":  "application/vnd.debian.binary-package",
	"rpm":  "application/x-rpm",
	"exe":  "application/vnd.microsoft.portable-executable",
	"bin":  "application/octet-stream",
}

// MIMEType returns the MIME type for a file name based on its extension,
// or UnknownMIMEType when the extension is missing or not recognized.
func MIMEType(name string) string {
	ext := strings.ToLower(Extension(name))
	if ext == "" {
		return UnknownMIMEType
	}
	if t, ok := mimeTypes[ext]; ok {
		return t
	}
	return UnknownMIMEType
}

// TopLevelType returns the part of a MIME type before the slash ("image" for "image/png")
func TopLevelType(mimeType string) string {
	if i := strings.IndexByte(mimeType, '/'); i > 0 {
		return mimeType[:i]
	}
	return TopLevelType(UnknownMIMEType)
}
