package seed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileSourceFetch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "navigation.json")
	want := []byte(`{"items":[],"lastUpdated":"2024-01-01T00:00:00Z"}`)
	require.NoError(t, os.WriteFile(path, want, 0o600))

	doc, err := NewFileSource(path).Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, want, doc)
}

func TestFileSourceMissingFile(t *testing.T) {
	_, err := NewFileSource(filepath.Join(t.TempDir(), "missing.json")).Fetch(context.Background())
	assert.Error(t, err)
}

func TestHTTPSourceFetch(t *testing.T) {
	want := []byte(`{"items":[],"lastUpdated":"2024-01-01T00:00:00Z"}`)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(want)
	}))
	defer srv.Close()

	doc, err := NewHTTPSource(srv.URL).Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, want, doc)
}

func TestHTTPSourceNonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	_, err := NewHTTPSource(srv.URL).Fetch(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}
