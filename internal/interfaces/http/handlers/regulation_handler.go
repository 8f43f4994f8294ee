package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bizcomply/bizcomply/internal/application/dto"
	appservice "github.com/bizcomply/bizcomply/internal/application/service"
	apperrors "github.com/bizcomply/bizcomply/pkg/errors"
)

// RegulationHandler serves the read-only regulation corpus endpoints.
type RegulationHandler struct {
	regulations *appservice.RegulationAppService
}

// NewRegulationHandler creates the regulation handler.
func NewRegulationHandler(regulations *appservice.RegulationAppService) *RegulationHandler {
	return &RegulationHandler{regulations: regulations}
}

// List returns a filtered, sorted page of regulations.
// GET /api/v1/regulations
func (h *RegulationHandler) List(c *gin.Context) {
	var query dto.RegulationListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondError(c, apperrors.NewValidationf("invalid query parameters: %v", err))
		return
	}

	regs, total, err := h.regulations.List(c.Request.Context(), query.ToFilter())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.RegulationListResponse{
		Regulations: dto.NewRegulationResponses(regs),
		Pagination:  dto.Pagination{Page: query.Page, Limit: query.Limit, Total: total},
	})
}

// Get loads one regulation with its penalties and requirements.
// GET /api/v1/regulations/:id
func (h *RegulationHandler) Get(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}

	reg, err := h.regulations.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewRegulationResponse(reg))
}

// Categories returns the category breakdown of the corpus.
// GET /api/v1/regulations/meta/categories
func (h *RegulationHandler) Categories(c *gin.Context) {
	categories, err := h.regulations.Categories(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// Jurisdictions returns the jurisdiction breakdown of the corpus.
// GET /api/v1/regulations/meta/jurisdictions
func (h *RegulationHandler) Jurisdictions(c *gin.Context) {
	jurisdictions, err := h.regulations.Jurisdictions(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"jurisdictions": jurisdictions})
}

// Overview returns the corpus statistics.
// GET /api/v1/regulations/stats/overview
func (h *RegulationHandler) Overview(c *gin.Context) {
	overview, err := h.regulations.Overview(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, overview)
}
