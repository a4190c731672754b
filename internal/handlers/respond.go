package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/obriclabs/corpgraph/internal/graph"
	"github.com/obriclabs/corpgraph/internal/platform/logger"
	"github.com/obriclabs/corpgraph/internal/platform/neo4jdb"
)

func HealthCheck(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

// respondError maps the error taxonomy onto HTTP statuses: bad input is
// the caller's fault, an unreachable store is a dependency outage, and
// everything else is an internal failure surfaced verbatim.
func respondError(c *gin.Context, log *logger.Logger, err error) {
	var connErr *neo4jdb.ConnectionError
	switch {
	case graph.IsInvalidArgument(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &connErr):
		log.Error("graph store unreachable", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	default:
		log.Error("tool call failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func bindJSON(c *gin.Context, out any) bool {
	if err := c.ShouldBindJSON(out); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return false
	}
	return true
}
