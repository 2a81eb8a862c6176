package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/discount-label-api/internal/application/service"
	"github.com/sangkips/discount-label-api/internal/presentation/http/dto/request"
	"github.com/sangkips/discount-label-api/internal/presentation/http/dto/response"
	"github.com/sangkips/discount-label-api/pkg/pagination"
)

// ScanHandler handles scan-related HTTP requests
type ScanHandler struct {
	scanService *service.ScanService
}

// NewScanHandler creates a new scan handler
func NewScanHandler(scanService *service.ScanService) *ScanHandler {
	return &ScanHandler{scanService: scanService}
}

// Scan handles a scanned product code
func (h *ScanHandler) Scan(c *gin.Context) {
	var req request.ScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	view, err := h.scanService.Scan(c.Request.Context(), &service.ScanInput{
		Code:           req.Code,
		Discount:       req.Discount,
		Outlet:         req.Outlet,
		OperatorName:   GetUsername(c),
		OperatorOutlet: GetOperatorOutlet(c),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Product scanned successfully", view)
}

// List handles listing the scan history
func (h *ScanHandler) List(c *gin.Context) {
	params := pagination.Default()
	if err := c.ShouldBindQuery(params); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.scanService.ListScans(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Scans retrieved successfully", result)
}

// Latest returns the most recent scan, or null when the history is empty
func (h *ScanHandler) Latest(c *gin.Context) {
	view, err := h.scanService.LatestScan(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Latest scan retrieved successfully", view)
}

// Get handles getting a scan by ID
func (h *ScanHandler) Get(c *gin.Context) {
	id, err := paramID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	view, err := h.scanService.GetScan(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Scan retrieved successfully", view)
}

// Delete handles deleting a scan
func (h *ScanHandler) Delete(c *gin.Context) {
	id, err := paramID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.scanService.DeleteScan(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Scan deleted successfully", nil)
}

// Clear handles clearing the whole scan history
func (h *ScanHandler) Clear(c *gin.Context) {
	n, err := h.scanService.ClearHistory(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Scan history cleared", gin.H{"deleted": n})
}
