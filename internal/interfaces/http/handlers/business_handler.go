package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bizcomply/bizcomply/internal/application/dto"
	appservice "github.com/bizcomply/bizcomply/internal/application/service"
	"github.com/bizcomply/bizcomply/internal/domain/repository"
	apperrors "github.com/bizcomply/bizcomply/pkg/errors"
)

// BusinessHandler serves the business CRUD endpoints.
type BusinessHandler struct {
	businesses *appservice.BusinessAppService
}

// NewBusinessHandler creates the business handler.
func NewBusinessHandler(businesses *appservice.BusinessAppService) *BusinessHandler {
	return &BusinessHandler{businesses: businesses}
}

// Create stores a new business profile.
// POST /api/v1/businesses
func (h *BusinessHandler) Create(c *gin.Context) {
	var req dto.BusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.NewValidationf("invalid request body: %v", err))
		return
	}

	profile := req.ToModel()
	if err := h.businesses.Create(c.Request.Context(), profile); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewBusinessResponse(profile))
}

// Get loads one business.
// GET /api/v1/businesses/:id
func (h *BusinessHandler) Get(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}

	profile, err := h.businesses.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewBusinessResponse(profile))
}

// Update replaces a stored business profile.
// PUT /api/v1/businesses/:id
func (h *BusinessHandler) Update(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}

	var req dto.BusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.NewValidationf("invalid request body: %v", err))
		return
	}

	profile := req.ToModel()
	profile.ID = id
	if err := h.businesses.Update(c.Request.Context(), profile); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewBusinessResponse(profile))
}

// Delete removes a stored business.
// DELETE /api/v1/businesses/:id
func (h *BusinessHandler) Delete(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.businesses.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// List returns a filtered page of businesses.
// GET /api/v1/businesses
func (h *BusinessHandler) List(c *gin.Context) {
	var query dto.BusinessListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondError(c, apperrors.NewValidationf("invalid query parameters: %v", err))
		return
	}

	businesses, total, err := h.businesses.List(c.Request.Context(), repository.BusinessFilter{
		Industry: query.Industry,
		Size:     query.Size,
		County:   query.County,
		Page:     query.Page,
		Limit:    query.Limit,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]*dto.BusinessResponse, len(businesses))
	for i, b := range businesses {
		responses[i] = dto.NewBusinessResponse(b)
	}
	c.JSON(http.StatusOK, dto.BusinessListResponse{
		Businesses: responses,
		Pagination: dto.Pagination{Page: query.Page, Limit: query.Limit, Total: total},
	})
}

// Overview returns the aggregate business statistics.
// GET /api/v1/businesses/stats/overview
func (h *BusinessHandler) Overview(c *gin.Context) {
	overview, err := h.businesses.Overview(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, overview)
}
