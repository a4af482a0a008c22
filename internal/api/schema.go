package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// maxSampleRows caps the number of sample rows returned per table.
const maxSampleRows = 50

// SchemaHandler serves catalog inspection endpoints.
type SchemaHandler struct {
	schema SchemaProvider
	log    *logrus.Logger
}

// NewSchemaHandler creates a SchemaHandler with the given schema service and logger.
func NewSchemaHandler(schema SchemaProvider, log *logrus.Logger) *SchemaHandler {
	return &SchemaHandler{schema: schema, log: log}
}

// Tables handles GET /api/v1/schema/tables.
func (h *SchemaHandler) Tables(c *gin.Context) {
	includeRowCounts := parseBool(c.DefaultQuery("include_row_counts", "false"), false)

	list, err := h.schema.Tables(c.Request.Context(), includeRowCounts)
	if err != nil {
		h.log.WithError(err).Error("listing tables")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	c.JSON(http.StatusOK, list)
}

// TableDetail handles GET /api/v1/schema/tables/:table.
func (h *SchemaHandler) TableDetail(c *gin.Context) {
	table := c.Param("table")
	if err := validateTableName(table); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())

		return
	}

	sampleRows := 0
	if s := c.Query("sample_rows"); s != "" {
		sampleRows = parseInt(s, 0)
		if sampleRows > maxSampleRows {
			sampleRows = maxSampleRows
		}
	}

	detail, err := h.schema.TableDetail(c.Request.Context(), table, sampleRows)
	if err != nil {
		h.log.WithError(err).WithField("table", table).Error("getting table detail")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	if len(detail.Columns) == 0 {
		respondError(c, http.StatusNotFound, ErrCodeNotFound, "table not found")

		return
	}

	c.JSON(http.StatusOK, detail)
}
