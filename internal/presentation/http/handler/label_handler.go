package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/discount-label-api/internal/application/service"
	"github.com/sangkips/discount-label-api/internal/presentation/http/dto/request"
	"github.com/sangkips/discount-label-api/internal/presentation/http/dto/response"
	"github.com/sangkips/discount-label-api/pkg/utils"
)

const (
	defaultBarcodeWidth  = 400
	defaultBarcodeHeight = 100
	maxBarcodeSide       = 2000
)

// LabelHandler serves label previews and renderings
type LabelHandler struct {
	labelService *service.LabelService
}

// NewLabelHandler creates a new label handler
func NewLabelHandler(labelService *service.LabelService) *LabelHandler {
	return &LabelHandler{labelService: labelService}
}

// Preview builds the label for an ad-hoc code without storing a scan
func (h *LabelHandler) Preview(c *gin.Context) {
	var req request.PreviewLabelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	p := h.labelService.Preview(&service.PreviewInput{
		Code:     req.Code,
		Discount: req.Discount,
		Payload:  req.Payload,
	})
	response.OK(c, "Label preview generated", p)
}

// PreviewScan returns the label preview of a stored scan
func (h *LabelHandler) PreviewScan(c *gin.Context) {
	id, err := paramID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	p, err := h.labelService.PreviewScan(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Label preview generated", p)
}

// BarcodePNG renders the barcode of a stored scan as a PNG image
func (h *LabelHandler) BarcodePNG(c *gin.Context) {
	id, err := paramID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	width := queryInt(c, "width", defaultBarcodeWidth)
	height := queryInt(c, "height", defaultBarcodeHeight)

	img, err := h.labelService.BarcodePNG(c.Request.Context(), id, width, height)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.File(c, "image/png", "", img)
}

// SheetPDF renders the selected scans, or the whole history, as a PDF
func (h *LabelHandler) SheetPDF(c *gin.Context) {
	ids, err := utils.ParseUUIDList(c.Query("ids"))
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	pdf, err := h.labelService.SheetPDF(c.Request.Context(), ids)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.File(c, "application/pdf", "labels.pdf", pdf)
}

// queryInt reads a positive integer query parameter, falling back to def
// when it is missing or out of range.
func queryInt(c *gin.Context, key string, def int) int {
	n, err := strconv.Atoi(c.Query(key))
	if err != nil || n <= 0 || n > maxBarcodeSide {
		return def
	}
	return n
}
