package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"searchagent/agent"
)

// queryRequest is the shared request body for all pipeline endpoints.
type queryRequest struct {
	Query string `json:"query" binding:"required"`
}

// RegisterSearchRoutes registers the pipeline endpoints.
func RegisterSearchRoutes(r *gin.Engine, a *agent.Agent) {
	g := r.Group("/api")
	g.POST("/search", handleSearch(a))
	g.POST("/scrape", handleScrape(a))
	g.POST("/analyze", handleAnalyze(a))
	g.POST("/news", handleNews(a))
	g.POST("/query/analysis", handleQueryAnalysis(a))
}

// handleSearch runs the provider chain without fetching page content.
func handleSearch(a *agent.Agent) gin.HandlerFunc {
	return func(c *gin.Context) {
		req, ok := bindQuery(c)
		if !ok {
			return
		}
		resp, err := a.Search(c.Request.Context(), req.Query)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}

// handleScrape searches and extracts readable content from the top results.
func handleScrape(a *agent.Agent) gin.HandlerFunc {
	return func(c *gin.Context) {
		req, ok := bindQuery(c)
		if !ok {
			return
		}
		resp, err := a.Scrape(c.Request.Context(), req.Query)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}

// handleAnalyze runs the full pipeline including synthesis.
func handleAnalyze(a *agent.Agent) gin.HandlerFunc {
	return func(c *gin.Context) {
		req, ok := bindQuery(c)
		if !ok {
			return
		}
		resp, err := a.Analyze(c.Request.Context(), req.Query)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}

// handleNews runs the news fallback chain.
func handleNews(a *agent.Agent) gin.HandlerFunc {
	return func(c *gin.Context) {
		req, ok := bindQuery(c)
		if !ok {
			return
		}
		resp, err := a.News(c.Request.Context(), req.Query)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}

// handleQueryAnalysis classifies a query without searching.
func handleQueryAnalysis(a *agent.Agent) gin.HandlerFunc {
	return func(c *gin.Context) {
		req, ok := bindQuery(c)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, a.AnalyzeQuery(req.Query))
	}
}

func bindQuery(c *gin.Context) (queryRequest, bool) {
	var req queryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query is required"})
		return req, false
	}
	return req, true
}

func respondError(c *gin.Context, err error) {
	if errors.Is(err, agent.ErrEmptyQuery) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	log.Printf("Request failed: %v", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "pipeline failure"})
}
