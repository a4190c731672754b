package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/obriclabs/corpgraph/internal/graph"
	"github.com/obriclabs/corpgraph/internal/platform/logger"
)

type PersonHandler struct {
	log    *logger.Logger
	engine *graph.PersonEngine
}

func NewPersonHandler(engine *graph.PersonEngine, log *logger.Logger) *PersonHandler {
	return &PersonHandler{log: log.With("handler", "Person"), engine: engine}
}

func (h *PersonHandler) QueryPerson(c *gin.Context) {
	var body struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Limit int    `json:"limit"`
	}
	if !bindJSON(c, &body) {
		return
	}
	results, err := h.engine.QueryPerson(c.Request.Context(), body.ID, body.Name, body.Limit)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(results), "results": results})
}

func (h *PersonHandler) FindPeopleByEntity(c *gin.Context) {
	var body struct {
		entityHint
		Limit int `json:"limit"`
	}
	if !bindJSON(c, &body) {
		return
	}
	results, err := h.engine.FindPeopleByEntity(c.Request.Context(), body.ref(), body.Limit)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(results), "results": results})
}

func (h *PersonHandler) FindPersonEntityRelationships(c *gin.Context) {
	var body struct {
		entityHint
		PersonID   string  `json:"person_id"`
		PersonName string  `json:"person_name"`
		Address    string  `json:"address"`
		SecCIK     string  `json:"sec_cik"`
		StartDate  *string `json:"start_date"`
		Limit      int     `json:"limit"`
	}
	if !bindJSON(c, &body) {
		return
	}
	personRef := graph.PersonRef{
		ID:      body.PersonID,
		Name:    body.PersonName,
		Address: body.Address,
		SecCIK:  body.SecCIK,
	}
	results, err := h.engine.FindPersonEntityRelationships(c.Request.Context(), body.ref(), personRef, body.StartDate, body.Limit)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(results), "results": results})
}
