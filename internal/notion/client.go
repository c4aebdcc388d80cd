// Package notion talks to the Notion REST API: database queries, block
// children and page property updates. Responses are decoded into the block
// model used by the renderer.
package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/lballo/Site-laura-4/internal/blocks"
	"github.com/lballo/Site-laura-4/internal/logging"
	"github.com/lballo/Site-laura-4/pkg/interfaces"
)

const (
	DefaultBaseURL  = "https://api.notion.com/v1"
	DefaultVersion  = "2022-06-28"
	DefaultTimeout  = 30 * time.Second
	DefaultPageSize = 100
)

// ErrMissingAPIKey is returned by New when no integration token is configured.
var ErrMissingAPIKey = errors.New("notion: api key required")

// Config configures a Client.
type Config struct {
	APIKey   string
	BaseURL  string
	Version  string
	Timeout  time.Duration
	PageSize int
}

// APIError is a non-2xx response from the API.
type APIError struct {
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("notion: http %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("notion: http %d %s: %s", e.Status, e.Code, e.Message)
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient overrides the transport.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithLogger sets the client logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(c *Client) {
		c.logger = logging.Ensure(logger)
	}
}

// Client is a minimal Notion API client. It is safe for concurrent use.
type Client struct {
	cfg    Config
	http   *http.Client
	logger interfaces.Logger
}

// New validates cfg, applies defaults and returns a Client.
func New(cfg Config, opts ...Option) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrMissingAPIKey
	}
	if strings.TrimSpace(cfg.BaseURL) == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if strings.TrimSpace(cfg.Version) == "" {
		cfg.Version = DefaultVersion
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.PageSize <= 0 || cfg.PageSize > DefaultPageSize {
		cfg.PageSize = DefaultPageSize
	}

	c := &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: cfg.Timeout},
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c, nil
}

type listResponse struct {
	Results    []json.RawMessage `json:"results"`
	HasMore    bool              `json:"has_more"`
	NextCursor *string           `json:"next_cursor"`
}

// QueryDatabase returns every page of databaseID matching filter, following
// pagination cursors until the result set is exhausted. A nil filter matches
// all pages.
func (c *Client) QueryDatabase(ctx context.Context, databaseID string, filter any) ([]Page, error) {
	endpoint := "/databases/" + url.PathEscape(databaseID) + "/query"

	var pages []Page
	var cursor string
	for {
		payload := map[string]any{}
		if filter != nil {
			payload["filter"] = filter
		}
		if cursor != "" {
			payload["start_cursor"] = cursor
		}

		var resp listResponse
		if err := c.do(ctx, http.MethodPost, endpoint, nil, payload, &resp); err != nil {
			return nil, fmt.Errorf("notion: query database %s: %w", databaseID, err)
		}
		for _, raw := range resp.Results {
			var page Page
			if err := json.Unmarshal(raw, &page); err != nil {
				return nil, fmt.Errorf("notion: decode page: %w", err)
			}
			pages = append(pages, page)
		}

		next, more := nextCursor(resp)
		if !more {
			break
		}
		cursor = next
	}

	c.logger.Debug("notion.database.queried", "database_id", databaseID, "pages", len(pages))
	return pages, nil
}

// Children returns every child block of blockID in order, following
// pagination cursors. A page id is accepted as blockID and yields the page's
// top-level blocks.
func (c *Client) Children(ctx context.Context, blockID string) ([]blocks.Block, error) {
	endpoint := "/blocks/" + url.PathEscape(blockID) + "/children"

	var out []blocks.Block
	var cursor string
	for {
		query := url.Values{}
		query.Set("page_size", strconv.Itoa(c.cfg.PageSize))
		if cursor != "" {
			query.Set("start_cursor", cursor)
		}

		var resp listResponse
		if err := c.do(ctx, http.MethodGet, endpoint, query, nil, &resp); err != nil {
			return nil, fmt.Errorf("notion: list children of %s: %w", blockID, err)
		}
		for _, raw := range resp.Results {
			block, err := DecodeBlock(raw)
			if err != nil {
				return nil, err
			}
			out = append(out, block)
		}

		next, more := nextCursor(resp)
		if !more {
			break
		}
		cursor = next
	}

	c.logger.Debug("notion.children.fetched", "block_id", blockID, "blocks", len(out))
	return out, nil
}

// UpdatePage patches the properties of pageID.
func (c *Client) UpdatePage(ctx context.Context, pageID string, properties map[string]any) error {
	endpoint := "/pages/" + url.PathEscape(pageID)
	payload := map[string]any{"properties": properties}
	if err := c.do(ctx, http.MethodPatch, endpoint, nil, payload, nil); err != nil {
		return fmt.Errorf("notion: update page %s: %w", pageID, err)
	}
	return nil
}

func nextCursor(resp listResponse) (string, bool) {
	if !resp.HasMore || resp.NextCursor == nil || *resp.NextCursor == "" {
		return "", false
	}
	return *resp.NextCursor, true
}

func (c *Client) do(ctx context.Context, method, endpoint string, query url.Values, payload any, out any) error {
	if ctx == nil {
		ctx = context.Background()
	}

	target := c.cfg.BaseURL + endpoint
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var body io.Reader
	if payload != nil {
		buf, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Notion-Version", c.cfg.Version)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{Status: resp.StatusCode}
		if len(raw) > 0 && json.Unmarshal(raw, apiErr) == nil {
			apiErr.Status = resp.StatusCode
		}
		if apiErr.Message == "" {
			apiErr.Message = strings.TrimSpace(string(raw))
		}
		c.logger.Warn("notion.request.failed", "method", method, "endpoint", endpoint, "status", resp.StatusCode, "code", apiErr.Code)
		return apiErr
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
