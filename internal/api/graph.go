package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/schemascout/schemascout/internal/models"
)

// GraphHandler serves schema graph endpoints.
type GraphHandler struct {
	graph GraphExplorer
	log   *logrus.Logger
}

// NewGraphHandler creates a GraphHandler with the given graph service and logger.
func NewGraphHandler(graph GraphExplorer, log *logrus.Logger) *GraphHandler {
	return &GraphHandler{graph: graph, log: log}
}

// respondGraphError maps graph sentinel errors to HTTP statuses. Returns
// false when the error was not a recognized sentinel.
func respondGraphError(c *gin.Context, err error) bool {
	switch {
	case errors.Is(err, models.ErrGraphNotReady):
		respondError(c, http.StatusServiceUnavailable, ErrCodeNotReady, "schema graph not ready")
	case errors.Is(err, models.ErrTableNotFound):
		respondError(c, http.StatusNotFound, ErrCodeNotFound, "table not found")
	case errors.Is(err, models.ErrNoPath):
		respondError(c, http.StatusNotFound, ErrCodeNotFound, "no path found")
	default:
		return false
	}

	return true
}

// Neighbors handles GET /api/v1/graph/neighbors/:table.
func (h *GraphHandler) Neighbors(c *gin.Context) {
	table := c.Param("table")
	if err := validateTableName(table); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())

		return
	}

	k := parseInt(c.DefaultQuery("k", "2"), 2)
	if k > 5 {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "k must be <= 5")

		return
	}

	bidirectional := parseBool(c.DefaultQuery("bidirectional", "true"), true)
	fanout := parseInt(c.DefaultQuery("fanout", "10"), 10)

	levels, err := h.graph.KHopNeighbors(table, k, bidirectional, fanout)
	if err != nil {
		if respondGraphError(c, err) {
			return
		}

		h.log.WithError(err).Error("k-hop traversal")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	total := 0
	for _, ns := range levels {
		total += len(ns)
	}

	c.JSON(http.StatusOK, gin.H{
		"start_table":        table,
		"k":                  k,
		"bidirectional":      bidirectional,
		"total_found":        total,
		"neighbors_by_level": levels,
	})
}

// Path handles GET /api/v1/graph/path/:from/:to.
func (h *GraphHandler) Path(c *gin.Context) {
	from := c.Param("from")
	to := c.Param("to")

	if err := validateTableName(from); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid from: "+err.Error())

		return
	}

	if err := validateTableName(to); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid to: "+err.Error())

		return
	}

	maxDepth := parseInt(c.DefaultQuery("max_depth", "3"), 3)
	if maxDepth > 10 {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "max_depth must be <= 10")

		return
	}

	path, err := h.graph.PathBetween(from, to, maxDepth)
	if err != nil {
		if respondGraphError(c, err) {
			return
		}

		h.log.WithError(err).Error("finding path")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	c.JSON(http.StatusOK, gin.H{
		"from":   from,
		"to":     to,
		"length": len(path),
		"path":   path,
	})
}

// Connected handles GET /api/v1/graph/connected/:table.
func (h *GraphHandler) Connected(c *gin.Context) {
	table := c.Param("table")
	if err := validateTableName(table); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())

		return
	}

	tables, err := h.graph.ConnectedTables(table)
	if err != nil {
		if respondGraphError(c, err) {
			return
		}

		h.log.WithError(err).Error("listing connected tables")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	c.JSON(http.StatusOK, gin.H{
		"table":            table,
		"connected_tables": tables,
		"count":            len(tables),
	})
}

// TableInfo handles GET /api/v1/graph/tables/:table.
func (h *GraphHandler) TableInfo(c *gin.Context) {
	table := c.Param("table")
	if err := validateTableName(table); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())

		return
	}

	info, err := h.graph.TableInfo(table)
	if err != nil {
		if respondGraphError(c, err) {
			return
		}

		h.log.WithError(err).Error("getting table info")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	c.JSON(http.StatusOK, info)
}

// Relationships handles GET /api/v1/graph/relationships.
func (h *GraphHandler) Relationships(c *gin.Context) {
	rels, err := h.graph.Relationships()
	if err != nil {
		if respondGraphError(c, err) {
			return
		}

		h.log.WithError(err).Error("listing relationships")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	c.JSON(http.StatusOK, gin.H{
		"relationships": rels,
		"count":         len(rels),
	})
}

// relationshipsAmongRequest is the payload for the subset relationships endpoint.
type relationshipsAmongRequest struct {
	Tables          []string `json:"tables"`
	IncludeInferred bool     `json:"include_inferred,omitempty"`
}

// RelationshipsAmong handles POST /api/v1/graph/relationships/among.
func (h *GraphHandler) RelationshipsAmong(c *gin.Context) {
	var req relationshipsAmongRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid JSON payload")

		return
	}

	if len(req.Tables) == 0 {
		respondError(c, http.StatusBadRequest, ErrCodeValidationError, models.ErrMissingTables.Error())

		return
	}

	for _, t := range req.Tables {
		if err := validateTableName(t); err != nil {
			respondError(c, http.StatusBadRequest, ErrCodeValidationError, err.Error())

			return
		}
	}

	rels, err := h.graph.RelationshipsAmong(req.Tables, req.IncludeInferred)
	if err != nil {
		if respondGraphError(c, err) {
			return
		}

		h.log.WithError(err).Error("listing relationships among tables")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tables":        req.Tables,
		"relationships": rels,
		"count":         len(rels),
	})
}

// Stats handles GET /api/v1/graph/stats.
func (h *GraphHandler) Stats(c *gin.Context) {
	c.JSON(http.StatusOK, h.graph.Stats())
}

// Rebuild handles POST /api/v1/graph/rebuild.
func (h *GraphHandler) Rebuild(c *gin.Context) {
	if err := h.graph.Rebuild(c.Request.Context()); err != nil {
		h.log.WithError(err).Error("rebuilding graph")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "graph rebuild failed")

		return
	}

	stats := h.graph.Stats()
	h.log.WithFields(logrus.Fields{
		"tables":        stats.TablesCount,
		"relationships": stats.RelationshipsCount,
		"version":       stats.Version,
	}).Info("graph rebuilt")

	c.JSON(http.StatusOK, gin.H{
		"status":  "rebuilt",
		"version": stats.Version,
		"stats":   stats,
	})
}
