package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/discount-label-api/internal/application/service"
	"github.com/sangkips/discount-label-api/internal/presentation/http/dto/request"
	"github.com/sangkips/discount-label-api/internal/presentation/http/dto/response"
	"github.com/sangkips/discount-label-api/pkg/printer"
)

// PrinterHandler handles printer-related HTTP requests.
type PrinterHandler struct {
	printerService *service.PrinterService
}

// NewPrinterHandler creates a new printer handler.
func NewPrinterHandler(printerService *service.PrinterService) *PrinterHandler {
	return &PrinterHandler{printerService: printerService}
}

// GetStatus returns the current printer connection status.
func (h *PrinterHandler) GetStatus(c *gin.Context) {
	status := h.printerService.GetStatus()
	response.OK(c, "Printer status retrieved", status)
}

// Ports lists the serial ports a printer can be bound to.
func (h *PrinterHandler) Ports(c *gin.Context) {
	ports, err := h.printerService.Ports()
	if err != nil {
		response.InternalServerError(c, "Failed to list serial ports: "+err.Error())
		return
	}
	response.OK(c, "Serial ports retrieved", ports)
}

// Connect attaches the printer described by the request.
func (h *PrinterHandler) Connect(c *gin.Context) {
	var req request.ConnectPrinterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	status, err := h.printerService.Connect(c.Request.Context(), printer.Config{
		Type:       req.Type,
		SerialPort: req.SerialPort,
		BaudRate:   req.BaudRate,
		USBPath:    req.USBPath,
		Address:    req.Address,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Printer connected", status)
}

// Disconnect detaches the printer.
func (h *PrinterHandler) Disconnect(c *gin.Context) {
	status, err := h.printerService.Disconnect(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Printer disconnected", status)
}

// TestPrint sends a sample label to the printer.
func (h *PrinterHandler) TestPrint(c *gin.Context) {
	payload, err := h.printerService.TestPrint()
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Test label sent to printer", gin.H{
		"label": payload,
	})
}

// Print prints the requested scans, or the whole history when no ids are
// given.
func (h *PrinterHandler) Print(c *gin.Context) {
	var req request.PrintLabelsRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BadRequest(c, "Invalid request: "+err.Error())
			return
		}
	}

	ids := make([]uuid.UUID, 0, len(req.IDs))
	for _, s := range req.IDs {
		id, err := uuid.Parse(s)
		if err != nil {
			response.BadRequest(c, "Invalid ID format")
			return
		}
		ids = append(ids, id)
	}

	out, err := h.printerService.PrintScans(c.Request.Context(), ids)
	respondPrint(c, out, err)
}

// PrintOne prints the label of a single scan.
func (h *PrinterHandler) PrintOne(c *gin.Context) {
	id, err := paramID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	out, err := h.printerService.PrintScan(c.Request.Context(), id)
	respondPrint(c, out, err)
}

func respondPrint(c *gin.Context, out *service.PrintOutcome, err error) {
	if err != nil {
		response.Error(c, err)
		return
	}
	if out.Partial {
		response.MultiStatus(c, out.Message, out)
		return
	}
	response.OK(c, out.Message, out)
}
