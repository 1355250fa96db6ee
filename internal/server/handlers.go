package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lox/notion-ingest/internal/api"
	"github.com/lox/notion-ingest/internal/ingest"
	"github.com/lox/notion-ingest/internal/notion"
)

// ContentRequest is the body of POST /notion_content. The API key is
// optional when the server itself is configured with one.
type ContentRequest struct {
	NotionAPIKey string   `json:"notion_api_key"`
	DatabaseIDs  []string `json:"database_ids"`
	PageIDs      []string `json:"page_ids"`
}

// ContentResponse carries the combined flattened text and, when some roots
// could not be processed, the per-root failure messages.
type ContentResponse struct {
	Text     string   `json:"text"`
	Failures []string `json:"failures,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) registerRoutes(engine *gin.Engine) {
	engine.GET("/", s.handleRoot)
	engine.GET("/healthz", s.handleHealth)
	engine.POST("/notion_content", s.handleContent)
}

func (s *Server) handleRoot(c *gin.Context) {
	c.JSON(http.StatusOK, "hello world")
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleContent(c *gin.Context) {
	var req ContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})
		return
	}

	// Credential check happens before any network activity.
	token := req.NotionAPIKey
	if token == "" {
		token = s.cfg.API.Token
	}
	client, err := api.NewClient(s.cfg.API, token, s.log)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	fetcher := notion.NewFetcher(client, notion.NewIntervalPacer(s.cfg.Fetch.RequestDelay), s.log)
	result := ingest.New(fetcher, s.log).Run(c.Request.Context(), req.DatabaseIDs, req.PageIDs)

	resp := ContentResponse{Text: result.CombinedText()}
	for _, failure := range result.Failures {
		resp.Failures = append(resp.Failures, failure.String())
	}
	c.JSON(http.StatusOK, resp)
}
