package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agentdir/domain/catalog"
	"agentdir/infrastructure/config"
	"agentdir/infrastructure/di"
	"agentdir/interfaces/http/rest"
	"agentdir/interfaces/http/rest/handlers"
)

const adminSecret = "integration-admin-secret"

// startServer wires the full dependency graph the same way main does, against
// a sqlite overlay and a file seed in a temp directory.
func startServer(t *testing.T) *httptest.Server {
	t.Helper()

	dir := t.TempDir()
	seedPath := filepath.Join(dir, "navigation.json")
	require.NoError(t, os.WriteFile(seedPath, []byte(`{"items":[],"lastUpdated":"2024-01-01T00:00:00Z"}`), 0o600))

	cfg := &config.Config{
		ServerAddress:      ":0",
		Environment:        "production",
		StoreDriver:        config.StoreDriverSQLite,
		StorePath:          filepath.Join(dir, "overlay.db"),
		SeedPath:           seedPath,
		AdminSecret:        adminSecret,
		JWTSecret:          "integration-signing-secret",
		JWTIssuer:          "agentdir",
		SessionTTL:         time.Hour,
		LoginRatePerMinute: 100,
		EnableMetrics:      true,
	}
	require.NoError(t, cfg.Validate())

	container, err := di.NewContainer(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { container.Close() })

	srv := httptest.NewServer(rest.NewRouter(container).Setup())
	t.Cleanup(srv.Close)
	return srv
}

func login(t *testing.T, srv *httptest.Server) string {
	t.Helper()
	resp, err := http.Post(srv.URL+"/api/v1/auth/login", "application/json",
		strings.NewReader(fmt.Sprintf(`{"secret":%q}`, adminSecret)))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body handlers.LoginResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body.Token
}

func send(t *testing.T, srv *httptest.Server, method, path, token string, body io.Reader, contentType string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, srv.URL+path, body)
	require.NoError(t, err)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func TestCatalogLifecycle(t *testing.T) {
	srv := startServer(t)
	token := login(t, srv)

	// Create an agent through the admin surface.
	createBody := `{
		"name": "Echo",
		"website": "https://echo.example.com",
		"description": "A conversational assistant.",
		"category": ["chatbots"],
		"isOpenSource": true
	}`
	resp := send(t, srv, http.MethodPost, "/api/v1/agents", token, strings.NewReader(createBody), "application/json")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created handlers.ItemsResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	resp.Body.Close()
	require.Len(t, created.Items, 1)
	agentID := created.Items[0].ID

	// Export resolves the overlay-backed catalog.
	resp = send(t, srv, http.MethodGet, "/api/v1/catalog/export", "", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, `attachment; filename="navigation.json"`, resp.Header.Get("Content-Disposition"))
	exported, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)

	var exportedCatalog catalog.Catalog
	require.NoError(t, json.Unmarshal(exported, &exportedCatalog))
	require.Len(t, exportedCatalog.Items, 1)
	assert.Equal(t, agentID, exportedCatalog.Items[0].ID)

	// Delete the agent, then import the exported snapshot to restore it.
	resp = send(t, srv, http.MethodDelete, "/api/v1/agents/"+agentID, token, nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "navigation.json")
	require.NoError(t, err)
	_, err = part.Write(exported)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	resp = send(t, srv, http.MethodPost, "/api/v1/catalog/import", token, &buf, mw.FormDataContentType())
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// The restored agent is visible on the public surface.
	resp = send(t, srv, http.MethodGet, "/api/v1/agents", "", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var listed catalog.Catalog
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&listed))
	resp.Body.Close()
	require.Len(t, listed.Items, 1)
	assert.Equal(t, agentID, listed.Items[0].ID)

	// Metrics endpoint is exposed when enabled.
	resp = send(t, srv, http.MethodGet, "/metrics", "", nil, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

func TestMutationRequiresLiveSession(t *testing.T) {
	srv := startServer(t)

	resp := send(t, srv, http.MethodPost, "/api/v1/agents", "", strings.NewReader(`{}`), "application/json")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestLoginRateLimit(t *testing.T) {
	dir := t.TempDir()
	seedPath := filepath.Join(dir, "navigation.json")
	require.NoError(t, os.WriteFile(seedPath, []byte(`{"items":[],"lastUpdated":"2024-01-01T00:00:00Z"}`), 0o600))

	cfg := &config.Config{
		Environment:        "production",
		StoreDriver:        config.StoreDriverFile,
		StorePath:          filepath.Join(dir, "overlay.json"),
		SeedPath:           seedPath,
		AdminSecret:        adminSecret,
		JWTSecret:          "integration-signing-secret",
		JWTIssuer:          "agentdir",
		SessionTTL:         time.Hour,
		LoginRatePerMinute: 2,
	}
	container, err := di.NewContainer(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { container.Close() })

	srv := httptest.NewServer(rest.NewRouter(container).Setup())
	t.Cleanup(srv.Close)

	statuses := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		resp, err := http.Post(srv.URL+"/api/v1/auth/login", "application/json",
			strings.NewReader(`{"secret":"wrong"}`))
		require.NoError(t, err)
		statuses = append(statuses, resp.StatusCode)
		resp.Body.Close()
	}

	assert.Equal(t, http.StatusUnauthorized, statuses[0])
	assert.Equal(t, http.StatusUnauthorized, statuses[1])
	assert.Equal(t, http.StatusTooManyRequests, statuses[2])
}
