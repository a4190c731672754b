package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/obriclabs/corpgraph/internal/graph"
	"github.com/obriclabs/corpgraph/internal/platform/logger"
	"github.com/obriclabs/corpgraph/internal/platform/openai"
)

// entityHint carries the caller-supplied identity hints shared by most
// tool payloads. Resolution priority lives in graph.EntityRef.
type entityHint struct {
	ID        string `json:"id"`
	Ticker    string `json:"ticker"`
	ShortName string `json:"short_name"`
	LegalName string `json:"legal_name"`
}

func (h entityHint) ref() graph.EntityRef {
	return graph.EntityRef{
		ID:        h.ID,
		Ticker:    h.Ticker,
		ShortName: h.ShortName,
		LegalName: h.LegalName,
	}
}

type EntityHandler struct {
	log      *logger.Logger
	engine   *graph.EntityEngine
	embedder openai.Embedder
}

func NewEntityHandler(engine *graph.EntityEngine, embedder openai.Embedder, log *logger.Logger) *EntityHandler {
	return &EntityHandler{log: log.With("handler", "Entity"), engine: engine, embedder: embedder}
}

func (h *EntityHandler) FindEntity(c *gin.Context) {
	var body struct {
		entityHint
		Limit int `json:"limit"`
	}
	if !bindJSON(c, &body) {
		return
	}
	results, err := h.engine.FindEntity(c.Request.Context(), body.ref(), body.Limit)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(results), "results": results})
}

func (h *EntityHandler) SearchEntities(c *gin.Context) {
	var body struct {
		Query string `json:"query"`
		Limit int    `json:"limit"`
	}
	if !bindJSON(c, &body) {
		return
	}
	results, err := h.engine.SearchEntities(c.Request.Context(), body.Query, body.Limit)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(results), "results": results})
}

func (h *EntityHandler) FindEntitiesByRelationshipText(c *gin.Context) {
	var body struct {
		Query     string `json:"query"`
		Direction string `json:"direction"`
		Limit     int    `json:"limit"`
	}
	if !bindJSON(c, &body) {
		return
	}
	results, err := h.engine.FindEntitiesByRelationshipText(c.Request.Context(), body.Query, graph.Direction(body.Direction), body.Limit)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(results), "results": results})
}

func (h *EntityHandler) FindEntitiesByRelationshipEmbedding(c *gin.Context) {
	var body struct {
		Embedding []float32 `json:"embedding"`
		Threshold *float64  `json:"threshold"`
		Direction string    `json:"direction"`
		Limit     int       `json:"limit"`
	}
	if !bindJSON(c, &body) {
		return
	}
	threshold := 0.7
	if body.Threshold != nil {
		threshold = *body.Threshold
	}
	results, err := h.engine.FindEntitiesByRelationshipEmbedding(c.Request.Context(), body.Embedding, threshold, graph.Direction(body.Direction), body.Limit)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(results), "results": results})
}

// SearchEntitiesBySemantics embeds the query text and runs the cosine
// similarity search with the resulting vector.
func (h *EntityHandler) SearchEntitiesBySemantics(c *gin.Context) {
	var body struct {
		Query     string   `json:"query"`
		Threshold *float64 `json:"threshold"`
		Direction string   `json:"direction"`
		Limit     int      `json:"limit"`
	}
	if !bindJSON(c, &body) {
		return
	}
	query := strings.TrimSpace(body.Query)
	if query == "" {
		respondError(c, h.log, &graph.InvalidArgumentError{Reason: "query must be a non-empty string"})
		return
	}
	vector, err := h.embedder.Embed(c.Request.Context(), query)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	threshold := 0.7
	if body.Threshold != nil {
		threshold = *body.Threshold
	}
	results, err := h.engine.FindEntitiesByRelationshipEmbedding(c.Request.Context(), vector, threshold, graph.Direction(body.Direction), body.Limit)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(results), "results": results})
}
