package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/discount-label-api/internal/application/service"
	"github.com/sangkips/discount-label-api/internal/presentation/http/dto/request"
	"github.com/sangkips/discount-label-api/internal/presentation/http/dto/response"
)

// SettingsHandler handles settings-related HTTP requests
type SettingsHandler struct {
	settingsService *service.SettingsService
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(settingsService *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// GetSettings returns the station flags and the active discount
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	settings, err := h.settingsService.GetSettings(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Settings retrieved successfully", settings)
}

// UpdateDiscount sets the discount applied to the next scans
func (h *SettingsHandler) UpdateDiscount(c *gin.Context) {
	var req request.UpdateDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	settings, err := h.settingsService.UpdateDiscount(c.Request.Context(), &service.UpdateDiscountInput{
		Discount: req.Discount,
		Outlet:   req.Outlet,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Discount updated successfully", settings)
}
