package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/discount-label-api/internal/application/service"
)

// HealthHandler reports service liveness and printer reachability
type HealthHandler struct {
	name           string
	printerService *service.PrinterService
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(name string, printerService *service.PrinterService) *HealthHandler {
	return &HealthHandler{name: name, printerService: printerService}
}

// Health handles GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	status := h.printerService.GetStatus()
	c.JSON(200, gin.H{
		"status":            "ok",
		"service":           h.name,
		"printer_type":      status.Type,
		"printer_connected": status.Connected,
	})
}
