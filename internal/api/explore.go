package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/schemascout/schemascout/internal/models"
)

// ExploreHandler serves the ranked neighborhood exploration endpoint.
type ExploreHandler struct {
	graph GraphExplorer
	log   *logrus.Logger
}

// NewExploreHandler creates an ExploreHandler with the given graph service and logger.
func NewExploreHandler(graph GraphExplorer, log *logrus.Logger) *ExploreHandler {
	return &ExploreHandler{graph: graph, log: log}
}

// Explore handles POST /api/v1/explore. It runs a K-hop traversal from
// the start table and ranks the discovered tables against the free-text
// query.
func (h *ExploreHandler) Explore(c *gin.Context) {
	var req models.ExploreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid JSON payload")

		return
	}

	if err := req.Validate(); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeValidationError, err.Error())

		return
	}

	result, err := h.graph.Explore(req.StartTable, req.Query, req.K, req.MaxTables)
	if err != nil {
		if respondGraphError(c, err) {
			return
		}

		h.log.WithError(err).Error("exploring neighborhood")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	c.JSON(http.StatusOK, result)
}
