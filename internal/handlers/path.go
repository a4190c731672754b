package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/obriclabs/corpgraph/internal/graph"
	"github.com/obriclabs/corpgraph/internal/platform/logger"
)

// entityPairHint names the endpoints of a path query. Each side takes
// the same identity hints as a single-entity lookup.
type entityPairHint struct {
	ID1        string `json:"id1"`
	Ticker1    string `json:"ticker1"`
	ShortName1 string `json:"short_name1"`
	LegalName1 string `json:"legal_name1"`
	ID2        string `json:"id2"`
	Ticker2    string `json:"ticker2"`
	ShortName2 string `json:"short_name2"`
	LegalName2 string `json:"legal_name2"`
}

func (h entityPairHint) refs() (graph.EntityRef, graph.EntityRef) {
	ref1 := graph.EntityRef{ID: h.ID1, Ticker: h.Ticker1, ShortName: h.ShortName1, LegalName: h.LegalName1}
	ref2 := graph.EntityRef{ID: h.ID2, Ticker: h.Ticker2, ShortName: h.ShortName2, LegalName: h.LegalName2}
	return ref1, ref2
}

type PathHandler struct {
	log           *logger.Logger
	paths         *graph.PathEngine
	neighbourhood *graph.NeighbourhoodEngine
}

func NewPathHandler(paths *graph.PathEngine, neighbourhood *graph.NeighbourhoodEngine, log *logger.Logger) *PathHandler {
	return &PathHandler{log: log.With("handler", "Path"), paths: paths, neighbourhood: neighbourhood}
}

// directedOrDefault fills in the historical default for tools that only
// accept a concrete orientation.
func directedOrDefault(s string) graph.Direction {
	if s == "" {
		return graph.DirectionOutbound
	}
	return graph.Direction(s)
}

func (h *PathHandler) FindRelatedEntities(c *gin.Context) {
	var body struct {
		entityHint
		MinTier   int    `json:"min_tier"`
		MaxTier   *int   `json:"max_tier"`
		Direction string `json:"direction"`
		Limit     int    `json:"limit"`
	}
	if !bindJSON(c, &body) {
		return
	}
	maxTier := 2
	if body.MaxTier != nil {
		maxTier = *body.MaxTier
	}
	results, err := h.neighbourhood.FindConnectedEntities(c.Request.Context(), body.ref(), body.MinTier, maxTier, graph.Direction(body.Direction), body.Limit)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":     len(results),
		"min_tier":  body.MinTier,
		"max_tier":  maxTier,
		"direction": body.Direction,
		"results":   results,
	})
}

func (h *PathHandler) FindTierEntities(c *gin.Context) {
	var body struct {
		entityHint
		Tier      *int   `json:"tier"`
		Direction string `json:"direction"`
		Limit     int    `json:"limit"`
	}
	if !bindJSON(c, &body) {
		return
	}
	tier := 1
	if body.Tier != nil {
		tier = *body.Tier
	}
	direction := directedOrDefault(body.Direction)
	results, err := h.neighbourhood.FindTierEntities(c.Request.Context(), body.ref(), tier, direction, body.Limit)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":     len(results),
		"tier":      tier,
		"direction": string(direction),
		"results":   results,
	})
}

func (h *PathHandler) HasDirectedPath(c *gin.Context) {
	var body struct {
		entityPairHint
		Direction string `json:"direction"`
		MaxTier   *int   `json:"max_tier"`
	}
	if !bindJSON(c, &body) {
		return
	}
	maxTier := 3
	if body.MaxTier != nil {
		maxTier = *body.MaxTier
	}
	ref1, ref2 := body.refs()
	direction := directedOrDefault(body.Direction)
	hasPath, err := h.paths.PathExists(c.Request.Context(), ref1, ref2, direction, maxTier)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"has_path":  hasPath,
		"direction": string(direction),
		"tier":      maxTier,
	})
}

func (h *PathHandler) FindDirectedPaths(c *gin.Context) {
	var body struct {
		entityPairHint
		Direction string `json:"direction"`
		MaxTier   *int   `json:"max_tier"`
	}
	if !bindJSON(c, &body) {
		return
	}
	maxTier := 3
	if body.MaxTier != nil {
		maxTier = *body.MaxTier
	}
	ref1, ref2 := body.refs()
	direction := directedOrDefault(body.Direction)
	paths, err := h.paths.EnumeratePaths(c.Request.Context(), ref1, ref2, direction, maxTier)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":     len(paths),
		"direction": string(direction),
		"tier":      maxTier,
		"paths":     paths,
	})
}

func (h *PathHandler) FindDirectedPathsWithRelationshipDetails(c *gin.Context) {
	var body struct {
		entityPairHint
		Direction string `json:"direction"`
		MaxTier   *int   `json:"max_tier"`
	}
	if !bindJSON(c, &body) {
		return
	}
	maxTier := 3
	if body.MaxTier != nil {
		maxTier = *body.MaxTier
	}
	ref1, ref2 := body.refs()
	direction := directedOrDefault(body.Direction)
	paths, err := h.paths.EnumeratePathsWithRelationships(c.Request.Context(), ref1, ref2, direction, maxTier)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":     len(paths),
		"direction": string(direction),
		"tier":      maxTier,
		"paths":     paths,
	})
}

func (h *PathHandler) FindPathsBetween(c *gin.Context) {
	var body struct {
		entityPairHint
		Direction string `json:"direction"`
		MaxTier   *int   `json:"max_tier"`
		MaxPaths  *int   `json:"max_paths"`
	}
	if !bindJSON(c, &body) {
		return
	}
	maxTier := 3
	if body.MaxTier != nil {
		maxTier = *body.MaxTier
	}
	maxPaths := 25
	if body.MaxPaths != nil {
		maxPaths = *body.MaxPaths
	}
	ref1, ref2 := body.refs()
	paths, err := h.paths.FindPathsBetween(c.Request.Context(), ref1, ref2, graph.Direction(body.Direction), maxTier, maxPaths)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":     len(paths),
		"direction": body.Direction,
		"tier":      maxTier,
		"paths":     paths,
	})
}
