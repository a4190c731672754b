package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/obriclabs/corpgraph/internal/graph"
	"github.com/obriclabs/corpgraph/internal/platform/logger"
)

type RelationshipHandler struct {
	log    *logger.Logger
	engine *graph.RelationshipEngine
}

func NewRelationshipHandler(engine *graph.RelationshipEngine, log *logger.Logger) *RelationshipHandler {
	return &RelationshipHandler{log: log.With("handler", "Relationship"), engine: engine}
}

func (h *RelationshipHandler) FindRelationshipDetails(c *gin.Context) {
	var body struct {
		entityPairHint
		Limit int `json:"limit"`
	}
	if !bindJSON(c, &body) {
		return
	}
	ref1, ref2 := body.refs()
	results, err := h.engine.FindRelationshipDetails(c.Request.Context(), ref1, ref2, body.Limit)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(results), "results": results})
}

func (h *RelationshipHandler) FindGovernmentAwards(c *gin.Context) {
	var body struct {
		entityHint
		Limit int `json:"limit"`
	}
	if !bindJSON(c, &body) {
		return
	}
	results, err := h.engine.FindGovernmentAwards(c.Request.Context(), body.ref(), body.Limit)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(results), "results": results})
}

func (h *RelationshipHandler) FindRecentInsiderActivities(c *gin.Context) {
	var body struct {
		entityHint
		StartDate *string `json:"start_date"`
		Limit     int     `json:"limit"`
	}
	if !bindJSON(c, &body) {
		return
	}
	results, err := h.engine.FindRecentInsiderActivities(c.Request.Context(), body.ref(), body.StartDate, body.Limit)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(results), "results": results})
}
