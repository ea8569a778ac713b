package server_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/denysvitali/filebrowser-go/internal/models"
	"github.com/denysvitali/filebrowser-go/pkg/config"
	"github.com/denysvitali/filebrowser-go/pkg/server"
)

func setupTestServer(t *testing.T) (*server.Server, string) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "docs", "old notes"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "docs", "readme.txt"), []byte("hello from the docs"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "docs", "old notes", "a?b#c.md"), []byte("# odd"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "photo.png"), []byte("\x89PNG"), 0644))

	cfg := &config.Config{
		Server: config.ServerConfig{
			Port:        8080,
			Root:        root,
			CORSOrigins: []string{"*"},
			ShowHidden:  true,
		},
		Telemetry: config.TelemetryConfig{
			Enabled: false,
		},
	}
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	srv, err := server.New(cfg, logger)
	require.NoError(t, err, "Failed to create server")
	return srv, root
}

func doRequest(srv *server.Server, method, target string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rr := httptest.NewRecorder()
	srv.Engine().ServeHTTP(rr, req)
	return rr
}

func decodeListing(t *testing.T, rr *httptest.ResponseRecorder) models.ListingContext {
	var ctx models.ListingContext
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &ctx), rr.Body.String())
	return ctx
}

func itemNames(ctx models.ListingContext) []string {
	names := make([]string, 0, len(ctx.Items))
	for _, item := range ctx.Items {
		names = append(names, item.Name)
	}
	return names
}

func TestHandleAlive_Success(t *testing.T) {
	srv, _ := setupTestServer(t)

	rr := doRequest(srv, http.MethodGet, "/alive", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
}

func TestHandleServerInfo_Success(t *testing.T) {
	srv, root := setupTestServer(t)

	rr := doRequest(srv, http.MethodGet, "/server_info", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp models.ServerInfoResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, filepath.Clean(root), resp.Root)
	assert.GreaterOrEqual(t, resp.Uptime, 0.0)
}

func TestBrowse_RootHTML(t *testing.T) {
	srv, _ := setupTestServer(t)

	rr := doRequest(srv, http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "text/html")

	body := rr.Body.String()
	assert.Contains(t, body, "Index of /")
	assert.Contains(t, body, `href="/docs"`)
	assert.Contains(t, body, "photo.png")
	assert.Contains(t, body, "/_static/style.css")
}

func TestBrowse_RootJSON(t *testing.T) {
	srv, _ := setupTestServer(t)

	rr := doRequest(srv, http.MethodGet, "/?format=json", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	ctx := decodeListing(t, rr)
	assert.Equal(t, "/", ctx.Path)
	assert.ElementsMatch(t, []string{"docs", "photo.png"}, itemNames(ctx))
}

func TestBrowse_SubdirectoryAcceptJSON(t *testing.T) {
	srv, _ := setupTestServer(t)

	rr := doRequest(srv, http.MethodGet, "/docs", map[string]string{"Accept": "application/json"})
	require.Equal(t, http.StatusOK, rr.Code)

	ctx := decodeListing(t, rr)
	assert.Equal(t, "/docs", ctx.Path)
	assert.Equal(t, "/", ctx.Parent)
	assert.ElementsMatch(t, []string{"old notes", "readme.txt"}, itemNames(ctx))
	for _, item := range ctx.Items {
		assert.True(t, strings.HasPrefix(item.Path, "/docs/"), item.Path)
	}
}

func TestBrowse_EncodedSegments(t *testing.T) {
	srv, _ := setupTestServer(t)

	rr := doRequest(srv, http.MethodGet, "/docs/old%20notes?format=json", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	ctx := decodeListing(t, rr)
	assert.Equal(t, "/docs/old notes", ctx.Path)
	require.Len(t, ctx.Items, 1)
	assert.Equal(t, "a?b#c.md", ctx.Items[0].Name)

	rr = doRequest(srv, http.MethodGet, "/docs/old%20notes/a%3Fb%23c.md", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "# odd", rr.Body.String())
}

func TestBrowse_HTMLLinksAreEscaped(t *testing.T) {
	srv, _ := setupTestServer(t)

	rr := doRequest(srv, http.MethodGet, "/docs/old%20notes", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `href="/docs/old%20notes/a%3Fb%23c.md"`)
}

func TestBrowse_PercentNamesRoundTrip(t *testing.T) {
	srv, root := setupTestServer(t)
	require.NoError(t, os.MkdirAll(filepath.Join(root, "100%", "a%20b"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "100%", "a%20b", "x.txt"), []byte("percent"), 0644))

	rr := doRequest(srv, http.MethodGet, "/100%25?format=json", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	ctx := decodeListing(t, rr)
	assert.Equal(t, "/100%", ctx.Path)
	require.Len(t, ctx.Items, 1)
	assert.Equal(t, "/100%/a%20b", ctx.Items[0].Path)

	rr = doRequest(srv, http.MethodGet, "/100%25", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `href="/100%25/a%2520b"`)

	rr = doRequest(srv, http.MethodGet, "/100%25/a%2520b/x.txt", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "percent", rr.Body.String())
}

func TestBrowse_DownloadFile(t *testing.T) {
	srv, _ := setupTestServer(t)

	rr := doRequest(srv, http.MethodGet, "/docs/readme.txt", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "hello from the docs", rr.Body.String())
	assert.Equal(t, "text/plain", rr.Header().Get("Content-Type"))
	assert.Empty(t, rr.Header().Get("Content-Disposition"))
}

func TestBrowse_DownloadAttachment(t *testing.T) {
	srv, _ := setupTestServer(t)

	rr := doRequest(srv, http.MethodGet, "/photo.png?download=1", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "image/png", rr.Header().Get("Content-Type"))
	assert.Equal(t, "attachment; filename=photo.png", rr.Header().Get("Content-Disposition"))
}

func TestBrowse_RangeRequest(t *testing.T) {
	srv, _ := setupTestServer(t)

	rr := doRequest(srv, http.MethodGet, "/docs/readme.txt", map[string]string{"Range": "bytes=0-4"})
	assert.Equal(t, http.StatusPartialContent, rr.Code)
	assert.Equal(t, "hello", rr.Body.String())
}

func TestBrowse_ForcedListingOfFileFails(t *testing.T) {
	srv, _ := setupTestServer(t)

	rr := doRequest(srv, http.MethodGet, "/docs/readme.txt?action=list&format=json", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestBrowse_ForcedListingOfDirectory(t *testing.T) {
	srv, _ := setupTestServer(t)

	rr := doRequest(srv, http.MethodGet, "/docs?action=list&format=json", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "/docs", decodeListing(t, rr).Path)
}

func TestBrowse_ParentSegmentsStayInsideRoot(t *testing.T) {
	srv, _ := setupTestServer(t)

	rr := doRequest(srv, http.MethodGet, "/docs/../../../../docs?format=json", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "/docs", decodeListing(t, rr).Path)

	rr = doRequest(srv, http.MethodGet, "/../../../../etc/passwd", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.NotContains(t, rr.Body.String(), "root:")
}

func TestBrowse_InvalidSegments(t *testing.T) {
	srv, _ := setupTestServer(t)

	for _, target := range []string{
		"/foo%3Cbar",
		"/docs/foo:",
		"/*foo",
		"/docs/a%2Fb",
		"/docs/..%2F..%2Fetc",
	} {
		rr := doRequest(srv, http.MethodGet, target, map[string]string{"Accept": "application/json"})
		assert.Equal(t, http.StatusBadRequest, rr.Code, target)

		var resp models.ErrorResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp), target)
		assert.Contains(t, resp.Error, "invalid path", target)
	}
}

func TestBrowse_NotFound(t *testing.T) {
	srv, _ := setupTestServer(t)

	rr := doRequest(srv, http.MethodGet, "/missing.txt", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "404 Not Found")
	assert.Contains(t, rr.Body.String(), "/missing.txt")
}

func TestBrowse_MethodNotAllowed(t *testing.T) {
	srv, _ := setupTestServer(t)

	rr := doRequest(srv, http.MethodPost, "/docs", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestStaticAssets(t *testing.T) {
	srv, _ := setupTestServer(t)

	rr := doRequest(srv, http.MethodGet, "/_static/style.css", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "table.listing")
}

func TestMiddleware_RequestIDAndCORS(t *testing.T) {
	srv, _ := setupTestServer(t)

	rr := doRequest(srv, http.MethodGet, "/alive", map[string]string{"Origin": "https://other.test"})
	assert.NotEmpty(t, rr.Header().Get("X-Request-ID"))
	assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))

	rr = doRequest(srv, http.MethodGet, "/alive", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, rr.Header().Get("Access-Control-Allow-Origin"))

	rr = doRequest(srv, http.MethodGet, "/alive", map[string]string{"X-Request-ID": "abc-123"})
	assert.Equal(t, "abc-123", rr.Header().Get("X-Request-ID"))
}
