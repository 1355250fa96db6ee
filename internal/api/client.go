package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/lox/notion-ingest/internal/config"
	"github.com/lox/notion-ingest/internal/notion"
)

const (
	defaultBaseURL      = "https://api.notion.com/v1"
	defaultNotionAPIRev = "2022-06-28"

	// Notion caps children listings at 100 results per request.
	listPageSize = 100
)

// Client talks to the official Notion REST API. It exposes exactly the four
// read operations the pipeline depends on, one page of results at a time;
// cursor-following lives in the Fetcher.
type Client struct {
	httpClient    *http.Client
	baseURL       string
	notionVersion string
	token         string
	log           zerolog.Logger
}

var _ notion.Source = (*Client)(nil)

// APIError is a non-2xx response from the Notion API.
type APIError struct {
	Method  string
	Path    string
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("notion API %s %s failed (%d): %s", e.Method, e.Path, e.Status, e.Message)
}

// NotFound reports whether the error means the target id is invalid or the
// integration cannot see it, as opposed to a transient failure.
func (e *APIError) NotFound() bool {
	if e.Status == http.StatusNotFound || e.Code == "object_not_found" {
		return true
	}
	return e.Code == "validation_error" && strings.Contains(e.Message, "valid uuid")
}

func NewClient(cfg config.APIConfig, token string, log zerolog.Logger) (*Client, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, notion.ErrMissingToken
	}

	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	baseURL = strings.TrimRight(baseURL, "/")

	notionVersion := strings.TrimSpace(cfg.NotionVersion)
	if notionVersion == "" {
		notionVersion = defaultNotionAPIRev
	}

	return &Client{
		httpClient:    &http.Client{Timeout: 20 * time.Second},
		baseURL:       baseURL,
		notionVersion: notionVersion,
		token:         token,
		log:           log,
	}, nil
}

// ListBlockChildren fetches one page of a block's direct children.
func (c *Client) ListBlockChildren(ctx context.Context, blockID, cursor string) (*notion.BlockPage, error) {
	blockID = strings.TrimSpace(blockID)
	if blockID == "" {
		return nil, fmt.Errorf("block ID is required")
	}

	path := "/blocks/" + blockID + "/children?page_size=" + fmt.Sprint(listPageSize)
	if cursor != "" {
		path += "&start_cursor=" + url.QueryEscape(cursor)
	}

	var out listResponse
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}

	page := &notion.BlockPage{HasMore: out.HasMore, NextCursor: out.NextCursor}
	for _, raw := range out.Results {
		page.Results = append(page.Results, decodeBlock(raw))
	}
	return page, nil
}

// QueryDatabase fetches one page of a database's page listing.
func (c *Client) QueryDatabase(ctx context.Context, databaseID, cursor string) (*notion.PageList, error) {
	databaseID = strings.TrimSpace(databaseID)
	if databaseID == "" {
		return nil, fmt.Errorf("database ID is required")
	}

	body := map[string]any{}
	if cursor != "" {
		body["start_cursor"] = cursor
	}

	var out listResponse
	if err := c.doJSON(ctx, http.MethodPost, "/databases/"+databaseID+"/query", body, &out); err != nil {
		return nil, err
	}

	list := &notion.PageList{HasMore: out.HasMore, NextCursor: out.NextCursor}
	for _, raw := range out.Results {
		list.Results = append(list.Results, decodePage(raw))
	}
	return list, nil
}

// GetDatabase fetches a database's title and property schema.
func (c *Client) GetDatabase(ctx context.Context, databaseID string) (*notion.Database, error) {
	databaseID = strings.TrimSpace(databaseID)
	if databaseID == "" {
		return nil, fmt.Errorf("database ID is required")
	}

	var raw json.RawMessage
	if err := c.doJSON(ctx, http.MethodGet, "/databases/"+databaseID, nil, &raw); err != nil {
		return nil, notFoundOr(err, databaseID)
	}
	return decodeDatabase(raw), nil
}

// GetPage fetches a page's descriptive metadata. An invalid or inaccessible
// id surfaces as *notion.NotFoundError.
func (c *Client) GetPage(ctx context.Context, pageID string) (*notion.Page, error) {
	pageID = strings.TrimSpace(pageID)
	if pageID == "" {
		return nil, fmt.Errorf("page ID is required")
	}

	var raw json.RawMessage
	if err := c.doJSON(ctx, http.MethodGet, "/pages/"+pageID, nil, &raw); err != nil {
		return nil, notFoundOr(err, pageID)
	}
	return decodePage(raw), nil
}

// notFoundOr converts an APIError that means "bad id" into the domain's
// NotFoundError so callers can isolate invalid roots from transient failures.
func notFoundOr(err error, id string) error {
	if apiErr, ok := err.(*APIError); ok && apiErr.NotFound() {
		return &notion.NotFoundError{ID: id, Msg: apiErr.Message}
	}
	return err
}

type listResponse struct {
	Results    []json.RawMessage `json:"results"`
	HasMore    bool              `json:"has_more"`
	NextCursor string            `json:"next_cursor"`
}

func (c *Client) doJSON(ctx context.Context, method, path string, payload any, out any) error {
	var bodyReader io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		bodyReader = bytes.NewReader(data)
	}

	contentType := ""
	if payload != nil {
		contentType = "application/json"
	}
	return c.doRequest(ctx, method, path, bodyReader, contentType, out)
}

func (c *Client) doRequest(ctx context.Context, method, path string, body io.Reader, contentType string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("accept", "application/json")
	req.Header.Set("authorization", "Bearer "+c.token)
	req.Header.Set("notion-version", c.notionVersion)
	if contentType != "" {
		req.Header.Set("content-type", contentType)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	c.log.Debug().
		Str("method", method).
		Str("path", req.URL.Path).
		Int("status", resp.StatusCode).
		Int("bytes", len(respBody)).
		Msg("notion API request")

	if resp.StatusCode >= 400 {
		apiErr := &APIError{
			Method: method,
			Path:   req.URL.Path,
			Status: resp.StatusCode,
		}
		var errResp struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		}
		if err := json.Unmarshal(respBody, &errResp); err == nil {
			apiErr.Code = strings.TrimSpace(errResp.Code)
			apiErr.Message = strings.TrimSpace(errResp.Message)
		}
		if apiErr.Message == "" {
			apiErr.Message = strings.TrimSpace(string(respBody))
		}
		if apiErr.Message == "" {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}
		return apiErr
	}

	if out == nil || len(respBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("parse notion API response for %s %s: %w", method, path, err)
	}
	return nil
}
