package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bizcomply/bizcomply/internal/application/dto"
	appservice "github.com/bizcomply/bizcomply/internal/application/service"
	apperrors "github.com/bizcomply/bizcomply/pkg/errors"
)

// ComplianceHandler serves the compliance check endpoints.
type ComplianceHandler struct {
	compliance *appservice.ComplianceAppService
}

// NewComplianceHandler creates the compliance handler.
func NewComplianceHandler(compliance *appservice.ComplianceAppService) *ComplianceHandler {
	return &ComplianceHandler{compliance: compliance}
}

// Check runs an ad-hoc compliance evaluation for the posted profile.
// POST /api/v1/compliance/check
func (h *ComplianceHandler) Check(c *gin.Context) {
	var req dto.ComplianceCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.NewValidationf("invalid request body: %v", err))
		return
	}

	profile := req.ToModel()
	profile.ID = req.BusinessID

	result, err := h.compliance.Check(c.Request.Context(), profile)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewComplianceCheckResponse(result))
}

// CheckAndSave evaluates a stored business and persists the outcome.
// POST /api/v1/compliance/:businessId/save
func (h *ComplianceHandler) CheckAndSave(c *gin.Context) {
	businessID, err := pathID(c, "businessId")
	if err != nil {
		respondError(c, err)
		return
	}

	result, record, err := h.compliance.CheckAndSave(c.Request.Context(), businessID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"result": dto.NewComplianceCheckResponse(result),
		"record": dto.NewComplianceRecordResponse(record),
	})
}

// History lists a business's stored check outcomes, newest first.
// GET /api/v1/compliance/:businessId/history
func (h *ComplianceHandler) History(c *gin.Context) {
	businessID, err := pathID(c, "businessId")
	if err != nil {
		respondError(c, err)
		return
	}

	records, err := h.compliance.History(c.Request.Context(), businessID)
	if err != nil {
		respondError(c, err)
		return
	}

	history := make([]*dto.ComplianceRecordResponse, len(records))
	for i, record := range records {
		history[i] = dto.NewComplianceRecordResponse(record)
	}
	c.JSON(http.StatusOK, dto.ComplianceHistoryResponse{
		BusinessID: businessID,
		History:    history,
	})
}

// Latest returns a business's most recent stored check outcome.
// GET /api/v1/compliance/:businessId/latest
func (h *ComplianceHandler) Latest(c *gin.Context) {
	businessID, err := pathID(c, "businessId")
	if err != nil {
		respondError(c, err)
		return
	}

	record, err := h.compliance.Latest(c.Request.Context(), businessID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewComplianceRecordResponse(record))
}

// AppliedRegulations lists the regulations linked to a business by saved
// checks.
// GET /api/v1/compliance/:businessId/regulations
func (h *ComplianceHandler) AppliedRegulations(c *gin.Context) {
	businessID, err := pathID(c, "businessId")
	if err != nil {
		respondError(c, err)
		return
	}

	regs, err := h.compliance.AppliedRegulations(c.Request.Context(), businessID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"businessId":  businessID,
		"regulations": dto.NewRegulationResponses(regs),
	})
}
