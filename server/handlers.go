package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	facsearch "github.com/poiesic/facsearch"
	"github.com/poiesic/facsearch/core"
	"github.com/poiesic/facsearch/storage"
)

const defaultTopK = 10

// searchRequest is the body of POST /api/search and /api/compare.
// use_hybrid defaults to true when omitted, top_k to 10.
type searchRequest struct {
	Query     string `json:"query"`
	TopK      int    `json:"top_k"`
	UseHybrid *bool  `json:"use_hybrid"`
}

func (r *searchRequest) fillDefaults() (topK int, useHybrid bool) {
	topK = r.TopK
	if topK == 0 {
		topK = defaultTopK
	}
	useHybrid = true
	if r.UseHybrid != nil {
		useHybrid = *r.UseHybrid
	}
	return topK, useHybrid
}

func (s *Server) handleHealth(c *gin.Context) {
	if !s.engine.Ready() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "building"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleSearch(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	topK, useHybrid := req.fillDefaults()

	started := time.Now()
	results, err := s.engine.Search(c.Request.Context(), req.Query, topK, useHybrid)
	if err != nil {
		if errors.Is(err, core.ErrEmptyCorpus) {
			c.JSON(http.StatusOK, gin.H{
				"query":   req.Query,
				"results": []resultView{},
				"count":   0,
				"no_data": true,
			})
			return
		}
		s.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"query":          req.Query,
		"results":        renderResults(results),
		"count":          len(results),
		"search_time_ms": time.Since(started).Milliseconds(),
	})
}

func (s *Server) handleCompare(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	topK, _ := req.fillDefaults()

	started := time.Now()
	cmp, err := s.engine.Compare(c.Request.Context(), req.Query, topK)
	if err != nil {
		if errors.Is(err, core.ErrEmptyCorpus) {
			c.JSON(http.StatusOK, gin.H{
				"query":   req.Query,
				"no_data": true,
			})
			return
		}
		s.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"query":          req.Query,
		"hybrid":         renderResults(cmp.Hybrid),
		"semantic_only":  renderResults(cmp.SemanticOnly),
		"search_time_ms": time.Since(started).Milliseconds(),
	})
}

func (s *Server) handleStats(c *gin.Context) {
	stats, err := s.engine.Stats()
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (s *Server) handleFaculty(c *gin.Context) {
	record, err := s.engine.Record(c.Param("name"))
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, renderRecord(record))
}

// renderError maps engine sentinel errors to HTTP statuses.
func (s *Server) renderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, core.ErrEmptyQuery), errors.Is(err, core.ErrInvalidTopK):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, storage.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, facsearch.ErrEngineNotReady):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	case errors.Is(err, core.ErrEmbeddingUnavailable):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	default:
		s.logger.Error("request failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
