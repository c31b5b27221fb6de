package blob

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// HTTPStore fetches blobs relative to a base URL.
type HTTPStore struct {
	baseURL    string
	httpClient *http.Client
}

// NewHTTPStore builds an HTTP-backed store.
func NewHTTPStore(baseURL string, timeout time.Duration) *HTTPStore {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPStore{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Open issues a GET for baseURL/name and hands back the body.
func (s *HTTPStore) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	endpoint := s.baseURL + "/" + url.PathEscape(strings.TrimLeft(name, "/"))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build blob request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("blob request failed: %w", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		resp.Body.Close()
		return nil, fmt.Errorf("%s: %w", name, ErrNotFound)
	}
	if resp.StatusCode >= 300 {
		defer resp.Body.Close()
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return nil, fmt.Errorf("blob request error: status=%d body=%s", resp.StatusCode, string(payload))
	}
	return resp.Body, nil
}
