package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/schemascout/schemascout/internal/models"
)

// QueryHandler serves the structured query endpoint.
type QueryHandler struct {
	queries QueryRunner
	log     *logrus.Logger
}

// NewQueryHandler creates a QueryHandler with the given query service and logger.
func NewQueryHandler(queries QueryRunner, log *logrus.Logger) *QueryHandler {
	return &QueryHandler{queries: queries, log: log}
}

// Execute handles POST /api/v1/query. It assembles a SELECT from the
// request fragments and runs it against the target database.
func (h *QueryHandler) Execute(c *gin.Context) {
	var req models.QueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid JSON payload")

		return
	}

	if err := req.Validate(); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeValidationError, err.Error())

		return
	}

	result, err := h.queries.BuildAndExecute(c.Request.Context(), &req)
	if err != nil {
		h.log.WithError(err).WithField("tables", req.Tables).Error("executing query")
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "query execution failed: "+err.Error())

		return
	}

	c.JSON(http.StatusOK, result)
}
