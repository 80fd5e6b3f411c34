package sources

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"fediblock-sync/feature/blocklist/models"
)

// maxListSize caps how much of a URL-hosted blocklist is read (1 GiB).
const maxListSize = 1 << 30

// Loader fetches blocklist sources over HTTP or from the local filesystem.
type Loader struct {
	httpClient *http.Client
}

// NewLoader creates a Loader with a bounded HTTP timeout.
func NewLoader() *Loader {
	return &Loader{
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// SetHTTPClient sets a custom HTTP client (useful for testing).
func (l *Loader) SetHTTPClient(client *http.Client) {
	l.httpClient = client
}

// Load reads one source. Anything starting with http:// or https:// is
// fetched over the network; everything else is treated as a local file
// path.
func (l *Loader) Load(ctx context.Context, src string) (models.SourceList, error) {
	if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
		return l.fetchURL(ctx, src)
	}
	return l.readFile(src)
}

func (l *Loader) fetchURL(ctx context.Context, url string) (models.SourceList, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return models.SourceList{}, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return models.SourceList{}, fmt.Errorf("fetch blocklist %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return models.SourceList{}, fmt.Errorf("fetch blocklist %s: status %d: %s", url, resp.StatusCode, string(body))
	}

	return ReadCSV(io.LimitReader(resp.Body, maxListSize), url)
}

func (l *Loader) readFile(path string) (models.SourceList, error) {
	f, err := os.Open(path)
	if err != nil {
		return models.SourceList{}, fmt.Errorf("open blocklist %s: %w", path, err)
	}
	defer f.Close()

	return ReadCSV(f, path)
}
