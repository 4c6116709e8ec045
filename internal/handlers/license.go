// internal/handlers/license.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/javajoker/medialicense-backend/internal/models"
	"github.com/javajoker/medialicense-backend/internal/services"
	"github.com/javajoker/medialicense-backend/internal/utils"
)

type LicenseHandler struct {
	licenseService *services.LicenseService
}

func NewLicenseHandler(licenseService *services.LicenseService) *LicenseHandler {
	return &LicenseHandler{
		licenseService: licenseService,
	}
}

// POST /licenses
func (h *LicenseHandler) Create(c *gin.Context) {
	var req services.CreateLicenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	license, err := h.licenseService.Create(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{"license": license})
}

// GET /licenses
func (h *LicenseHandler) List(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	licenses, total, err := h.licenseService.FindAll(c.Request.Context(), params)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(licenses, total, params))
}

// GET /licenses/status/:status
func (h *LicenseHandler) ListByStatus(c *gin.Context) {
	status, ok := models.ParseLicensingStatus(c.Param("status"))
	if !ok {
		utils.BadRequestResponse(c, "Invalid status parameter", gin.H{"allowed": models.AllStatuses})
		return
	}

	licenses, err := h.licenseService.FindByStatus(c.Request.Context(), status)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"licenses": licenses})
}

// GET /licenses/:id
func (h *LicenseHandler) Get(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	license, err := h.licenseService.FindOne(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"license": license})
}

// GET /tracks/:id/license
func (h *LicenseHandler) GetByTrack(c *gin.Context) {
	trackID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	license, err := h.licenseService.FindByTrack(c.Request.Context(), trackID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"license": license})
}

// PUT /licenses/:id
func (h *LicenseHandler) Update(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req services.UpdateLicenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	license, err := h.licenseService.Update(c.Request.Context(), id, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"license": license})
}

// PATCH /licenses/:id/status
func (h *LicenseHandler) UpdateStatus(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req services.UpdateLicenseStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	license, err := h.licenseService.UpdateStatus(c.Request.Context(), id, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"license": license})
}

// DELETE /licenses/:id
func (h *LicenseHandler) Delete(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	if err := h.licenseService.Remove(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.NoContentResponse(c)
}

// GET /licenses/workflow/summary
func (h *LicenseHandler) WorkflowSummary(c *gin.Context) {
	summary, err := h.licenseService.GetWorkflowSummary(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"summary": summary})
}
