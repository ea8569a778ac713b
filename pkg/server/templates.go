package server

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/denysvitali/filebrowser-go/pkg/confine"
)

const staticPrefix = "/_static"

//go:embed templates/*.html
var templatesFS embed.FS

//go:embed static
var staticFS embed.FS

var templateFuncs = template.FuncMap{
	"href":   confine.EscapeRelative,
	"static": func(name string) string { return staticPrefix + "/" + name },
	"icon":   icon,
}

func loadTemplates() (*template.Template, error) {
	return template.New("").Funcs(templateFuncs).ParseFS(templatesFS, "templates/*.html")
}

func staticFileSystem() http.FileSystem {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}

func icon(fileType string, isSymlink bool) string {
	if isSymlink {
		return "🔗"
	}
	switch fileType {
	case "directory":
		return "📁"
	case "image":
		return "🖼"
	case "audio":
		return "🎵"
	case "video":
		return "🎬"
	case "text":
		return "📄"
	case "font":
		return "🔤"
	default:
		return "📦"
	}
}
