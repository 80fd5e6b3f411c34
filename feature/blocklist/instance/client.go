package instance

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"fediblock-sync/feature/blocklist/models"
)

const apiPath = "/api/v1/admin/domain_blocks"

// HTTPDoer abstracts the HTTP transport so tests can substitute it.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client talks to one instance's admin domain-block API.
type Client struct {
	host       string
	baseURL    string
	token      string
	httpClient HTTPDoer
}

// NewClient creates a client for the given instance host, authenticating
// with the given bearer token.
func NewClient(host, token string) *Client {
	return &Client{
		host:    host,
		baseURL: "https://" + host,
		token:   token,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// Host returns the instance host this client targets.
func (c *Client) Host() string {
	return c.host
}

// SetBaseURL overrides the https://host base URL (useful for testing).
func (c *Client) SetBaseURL(u string) {
	c.baseURL = strings.TrimRight(u, "/")
}

// SetHTTPClient sets a custom HTTP client (useful for testing).
func (c *Client) SetHTTPClient(client HTTPDoer) {
	c.httpClient = client
}

// domainBlock is the wire shape of one block record.
type domainBlock struct {
	ID             string          `json:"id,omitempty"`
	Domain         string          `json:"domain"`
	Severity       models.Severity `json:"severity"`
	PublicComment  string          `json:"public_comment"`
	PrivateComment string          `json:"private_comment"`
	RejectMedia    bool            `json:"reject_media"`
	RejectReports  bool            `json:"reject_reports"`
	Obfuscate      bool            `json:"obfuscate"`
}

func (b domainBlock) toEntry() models.BlockEntry {
	return models.BlockEntry{
		Domain:         b.Domain,
		Severity:       b.Severity,
		PublicComment:  b.PublicComment,
		PrivateComment: b.PrivateComment,
		RejectMedia:    models.Bool(b.RejectMedia),
		RejectReports:  models.Bool(b.RejectReports),
		Obfuscate:      models.Bool(b.Obfuscate),
		RemoteID:       b.ID,
	}
}

func toWire(e models.BlockEntry) domainBlock {
	return domainBlock{
		Domain:         e.Domain,
		Severity:       e.Severity,
		PublicComment:  e.PublicComment,
		PrivateComment: e.PrivateComment,
		RejectMedia:    models.BoolValue(e.RejectMedia, false),
		RejectReports:  models.BoolValue(e.RejectReports, false),
		Obfuscate:      models.BoolValue(e.Obfuscate, false),
	}
}

// FetchBlocks retrieves the complete block list, following pagination until
// no next-page cursor remains. The result is keyed by domain with RemoteID
// populated on every entry.
func (c *Client) FetchBlocks(ctx context.Context) (map[string]models.BlockEntry, error) {
	blocks := make(map[string]models.BlockEntry)

	url := c.baseURL + apiPath
	for url != "" {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+c.token)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("fetch domain blocks from %s: %w", c.host, err)
		}
		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("read response from %s: %w", c.host, err)
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, &FetchError{Host: c.host, StatusCode: resp.StatusCode, Body: string(body)}
		}

		var page []domainBlock
		if err := json.Unmarshal(body, &page); err != nil {
			return nil, fmt.Errorf("decode domain blocks from %s: %w", c.host, err)
		}
		for _, b := range page {
			blocks[b.Domain] = b.toEntry()
		}

		url = nextPageURL(resp.Header.Get("Link"))
	}

	return blocks, nil
}

// CreateBlock adds a new domain block to the instance.
func (c *Client) CreateBlock(ctx context.Context, entry models.BlockEntry) error {
	return c.write(ctx, http.MethodPost, c.baseURL+apiPath, entry)
}

// UpdateBlock updates the existing block identified by entry.RemoteID.
func (c *Client) UpdateBlock(ctx context.Context, entry models.BlockEntry) error {
	if entry.RemoteID == "" {
		return fmt.Errorf("update domain block %q on %s: no remote id", entry.Domain, c.host)
	}
	return c.write(ctx, http.MethodPut, c.baseURL+apiPath+"/"+entry.RemoteID, entry)
}

// DeleteBlock removes the block with the given remote id. A 404 means the
// block is already gone; deleted reports whether the instance actually
// removed anything.
func (c *Client) DeleteBlock(ctx context.Context, id string) (deleted bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+apiPath+"/"+id, nil)
	if err != nil {
		return false, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("delete domain block %s on %s: %w", id, c.host, err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return false, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return false, &WriteError{Host: c.host, Domain: id, StatusCode: resp.StatusCode, Body: string(body)}
	}
	return true, nil
}

func (c *Client) write(ctx context.Context, method, url string, entry models.BlockEntry) error {
	payload, err := json.Marshal(toWire(entry))
	if err != nil {
		return fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("write domain block %q to %s: %w", entry.Domain, c.host, err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &WriteError{Host: c.host, Domain: entry.Domain, StatusCode: resp.StatusCode, Body: string(body)}
	}
	return nil
}
