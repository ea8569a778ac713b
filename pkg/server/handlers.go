package server

import (
	"errors"
	"fmt"
	"mime"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/denysvitali/filebrowser-go/internal/models"
	"github.com/denysvitali/filebrowser-go/pkg/confine"
	"github.com/denysvitali/filebrowser-go/pkg/listing"
	"github.com/denysvitali/filebrowser-go/pkg/telemetry"
)

// errorPage is the data handed to the error.html template
type errorPage struct {
	Status     int
	StatusText string
	Message    string
	Path       string
}

// handleAlive handles health check requests
func (s *Server) handleAlive(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// handleServerInfo reports uptime and usage of the served filesystem
func (s *Server) handleServerInfo(c *gin.Context) {
	c.JSON(http.StatusOK, models.ServerInfoResponse{
		Root:      s.resolver.RootDir(),
		StartTime: s.startTime,
		Uptime:    time.Since(s.startTime).Seconds(),
		Stats:     s.sysinfo.Collect(),
	})
}

// handleBrowse resolves the request path under the root and either lists it or
// streams the file it designates. A non-empty "action" query parameter forces a listing.
func (s *Server) handleBrowse(c *gin.Context) {
	if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
		s.renderError(c, http.StatusMethodNotAllowed, errors.New("only GET and HEAD are supported"))
		return
	}

	ctx, span := s.tracer.Start(c.Request.Context(), "handle_browse")
	defer span.End()

	target, err := s.resolver.ResolveURLPath(c.Request.URL.EscapedPath())
	if err != nil {
		span.RecordError(err)
		s.renderError(c, http.StatusBadRequest, err)
		return
	}
	span.SetAttributes(attribute.String("browse.path", target.Relative()))

	if c.Query("action") == "" {
		info, err := os.Stat(target.String())
		if err != nil {
			span.RecordError(err)
			s.renderError(c, http.StatusNotFound, err)
			return
		}
		if !info.IsDir() {
			s.serveFile(c, target, info)
			return
		}
	}

	listingCtx, err := s.assembler.Assemble(ctx, target)
	if err != nil {
		span.RecordError(err)
		s.renderError(c, statusForError(err), err)
		return
	}

	if listingCtx.Dropped > 0 {
		telemetry.ReportEvent(ctx, s.logger, "entries_dropped", map[string]interface{}{
			"dir":     listingCtx.Path,
			"dropped": listingCtx.Dropped,
		})
	}

	s.respond(c, http.StatusOK, "index.html", listingCtx, listingCtx)
}

// serveFile streams a regular file, honoring Range and conditional requests
func (s *Server) serveFile(c *gin.Context, target confine.ConfinedPath, info os.FileInfo) {
	// FIFOs and devices would block on open
	if !info.Mode().IsRegular() {
		s.renderError(c, http.StatusNotFound, fmt.Errorf("%s is not a regular file", target.Relative()))
		return
	}

	f, err := os.Open(target.String())
	if err != nil {
		s.renderError(c, http.StatusNotFound, err)
		return
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			s.logger.Warnf("Failed to close file %s: %v", target, closeErr)
		}
	}()

	name := info.Name()
	if mimeType := listing.MIMEType(name); mimeType != listing.UnknownMIMEType {
		c.Header("Content-Type", mimeType)
	}
	if c.Query("download") != "" {
		c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": name}))
	}

	http.ServeContent(c.Writer, c.Request, name, info.ModTime(), f)
}

// statusForError maps core errors to HTTP status codes
func statusForError(err error) int {
	switch {
	case errors.Is(err, confine.ErrInvalidPath):
		return http.StatusBadRequest
	case errors.Is(err, confine.ErrNotUnderRoot):
		return http.StatusNotFound
	case errors.Is(err, listing.ErrEnumerationFailed):
		return http.StatusBadRequest
	case errors.Is(err, os.ErrNotExist):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) renderError(c *gin.Context, status int, err error) {
	path := c.Request.URL.Path
	s.logger.WithFields(logrus.Fields{
		"path":       path,
		"status":     status,
		"request_id": c.GetString("request_id"),
	}).WithError(err).Debug("Request failed")

	message := http.StatusText(status)
	switch {
	case errors.Is(err, confine.ErrInvalidPath):
		message = err.Error()
	case status == http.StatusNotFound:
		message = fmt.Sprintf("Nothing was found at %s", path)
	}

	page := errorPage{
		Status:     status,
		StatusText: http.StatusText(status),
		Message:    message,
		Path:       path,
	}
	s.respond(c, status, "error.html", page, models.ErrorResponse{Error: message, Path: path})
}

// respond renders HTML or JSON depending on the "format" query parameter and the Accept header
func (s *Server) respond(c *gin.Context, status int, htmlName string, htmlData, jsonData interface{}) {
	if c.Query("format") == "json" {
		c.JSON(status, jsonData)
		return
	}
	c.Negotiate(status, gin.Negotiate{
		Offered:  []string{gin.MIMEHTML, gin.MIMEJSON},
		HTMLName: htmlName,
		HTMLData: htmlData,
		JSONData: jsonData,
	})
}
