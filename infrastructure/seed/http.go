package seed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// HTTPSource fetches the seed dataset from a static URL.
type HTTPSource struct {
	url    string
	client *http.Client
}

// NewHTTPSource creates a seed source over the given URL.
func NewHTTPSource(url string) *HTTPSource {
	return &HTTPSource{
		url: url,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Fetch retrieves the seed document. Any non-success status is a fetch
// failure.
func (s *HTTPSource) Fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build seed request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch seed dataset: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("fetch seed dataset: unexpected status %d", resp.StatusCode)
	}

	doc, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read seed response: %w", err)
	}
	return doc, nil
}
