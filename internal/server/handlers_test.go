package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/notion-ingest/internal/config"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestEngine(cfg config.Config) *gin.Engine {
	engine := gin.New()
	engine.Use(corsMiddleware())

	s := &Server{cfg: cfg, log: zerolog.Nop()}
	s.registerRoutes(engine)
	return engine
}

func doRequest(engine *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestRootRoute(t *testing.T) {
	engine := newTestEngine(config.Default())

	w := doRequest(engine, http.MethodGet, "/", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `"hello world"`, w.Body.String())
}

func TestHealthRoute(t *testing.T) {
	engine := newTestEngine(config.Default())

	w := doRequest(engine, http.MethodGet, "/healthz", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ok")
}

func TestCORSHeadersAndPreflight(t *testing.T) {
	engine := newTestEngine(config.Default())

	w := doRequest(engine, http.MethodGet, "/", "")
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))

	w = doRequest(engine, http.MethodOptions, "/notion_content", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestContentRejectsMalformedBody(t *testing.T) {
	engine := newTestEngine(config.Default())

	w := doRequest(engine, http.MethodPost, "/notion_content", "{not json")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid request body")
}

func TestContentRequiresCredential(t *testing.T) {
	var hits atomic.Int64
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer upstream.Close()

	cfg := config.Default()
	cfg.API.BaseURL = upstream.URL
	cfg.API.Token = ""
	engine := newTestEngine(cfg)

	w := doRequest(engine, http.MethodPost, "/notion_content", `{"page_ids": ["11111111-2222-4333-8444-555555555555"]}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "token")
	assert.Equal(t, int64(0), hits.Load(), "credential check must happen before any upstream request")
}

func TestContentUsesConfiguredTokenWhenBodyOmitsIt(t *testing.T) {
	var gotAuth atomic.Value
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth.Store(r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "11111111-2222-4333-8444-555555555555",
			"properties": {"Name": {"type": "title", "title": [{"plain_text": "Configured"}]}}
		}`))
	}))
	defer upstream.Close()

	cfg := config.Default()
	cfg.API.BaseURL = upstream.URL
	cfg.API.Token = "configured-token"
	cfg.Fetch.RequestDelay = 0
	engine := newTestEngine(cfg)

	w := doRequest(engine, http.MethodPost, "/notion_content", `{"page_ids": ["11111111-2222-4333-8444-555555555555"]}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Bearer configured-token", gotAuth.Load())
}

func TestContentReturnsCombinedText(t *testing.T) {
	const pageID = "11111111-2222-4333-8444-555555555555"

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.URL.Path == "/pages/"+pageID:
			_, _ = w.Write([]byte(`{
				"id": "` + pageID + `",
				"properties": {"Name": {"type": "title", "title": [{"plain_text": "My Page"}]}}
			}`))
		case strings.HasPrefix(r.URL.Path, "/blocks/"+pageID+"/children"):
			_, _ = w.Write([]byte(`{
				"results": [
					{"id": "b1", "type": "paragraph", "has_children": false, "paragraph": {"rich_text": [{"plain_text": "hello"}]}}
				],
				"has_more": false
			}`))
		default:
			_, _ = w.Write([]byte(`{"results": [], "has_more": false}`))
		}
	}))
	defer upstream.Close()

	cfg := config.Default()
	cfg.API.BaseURL = upstream.URL
	cfg.Fetch.RequestDelay = 0
	engine := newTestEngine(cfg)

	body := `{"notion_api_key": "body-token", "page_ids": ["` + pageID + `"]}`
	w := doRequest(engine, http.MethodPost, "/notion_content", body)

	require.Equal(t, http.StatusOK, w.Code)

	var resp ContentResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "My Page\n\nhello", resp.Text)
	assert.Empty(t, resp.Failures)
}

func TestContentReportsRootFailures(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"object":"error","code":"object_not_found","message":"Could not find page."}`))
	}))
	defer upstream.Close()

	cfg := config.Default()
	cfg.API.BaseURL = upstream.URL
	cfg.Fetch.RequestDelay = 0
	engine := newTestEngine(cfg)

	body := `{"notion_api_key": "body-token", "page_ids": ["11111111-2222-4333-8444-555555555555", "garbage-id"]}`
	w := doRequest(engine, http.MethodPost, "/notion_content", body)

	require.Equal(t, http.StatusOK, w.Code)

	var resp ContentResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "No content found or processed.", resp.Text)
	require.Len(t, resp.Failures, 2)
	assert.Contains(t, resp.Failures[0], "page")
	assert.Contains(t, resp.Failures[1], "garbage-id")
}
