package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/schemascout/schemascout/internal/models"
)

// MappingHandler serves term-mapping endpoints.
type MappingHandler struct {
	mappings MappingManager
	log      *logrus.Logger
}

// NewMappingHandler creates a MappingHandler with the given mapping service and logger.
func NewMappingHandler(mappings MappingManager, log *logrus.Logger) *MappingHandler {
	return &MappingHandler{mappings: mappings, log: log}
}

// Create handles POST /api/v1/mappings.
func (h *MappingHandler) Create(c *gin.Context) {
	var req models.CreateMappingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid JSON payload")

		return
	}

	if err := req.Validate(); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeValidationError, err.Error())

		return
	}

	mapping, err := h.mappings.Learn(c.Request.Context(), req)
	if err != nil {
		h.log.WithError(err).WithField("term", req.Term).Error("storing term mapping")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	c.JSON(http.StatusCreated, mapping)
}

// List handles GET /api/v1/mappings.
func (h *MappingHandler) List(c *gin.Context) {
	limit := parseInt(c.DefaultQuery("limit", "100"), 100)
	offset := parseOffset(c.Query("offset"))

	mappings, err := h.mappings.List(c.Request.Context(), limit, offset)
	if err != nil {
		h.log.WithError(err).Error("listing term mappings")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	c.JSON(http.StatusOK, gin.H{
		"mappings": mappings,
		"count":    len(mappings),
		"limit":    limit,
		"offset":   offset,
	})
}

// Get handles GET /api/v1/mappings/:term.
func (h *MappingHandler) Get(c *gin.Context) {
	term := c.Param("term")
	if term == "" || len(term) > 255 {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid term")

		return
	}

	mappings, err := h.mappings.Lookup(c.Request.Context(), term)
	if err != nil {
		h.log.WithError(err).WithField("term", term).Error("looking up term mappings")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	if len(mappings) == 0 {
		respondError(c, http.StatusNotFound, ErrCodeNotFound, "no mappings for term")

		return
	}

	c.JSON(http.StatusOK, gin.H{
		"term":     term,
		"mappings": mappings,
	})
}

// Delete handles DELETE /api/v1/mappings/:term.
func (h *MappingHandler) Delete(c *gin.Context) {
	term := c.Param("term")
	if term == "" || len(term) > 255 {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid term")

		return
	}

	deleted, err := h.mappings.Forget(c.Request.Context(), term)
	if err != nil {
		h.log.WithError(err).WithField("term", term).Error("deleting term mappings")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	if deleted == 0 {
		respondError(c, http.StatusNotFound, ErrCodeNotFound, "no mappings for term")

		return
	}

	c.JSON(http.StatusOK, gin.H{
		"term":    term,
		"deleted": deleted,
	})
}
