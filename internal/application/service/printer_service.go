package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/discount-label-api/internal/domain/repository"
	"github.com/sangkips/discount-label-api/pkg/apperror"
	"github.com/sangkips/discount-label-api/pkg/label"
	"github.com/sangkips/discount-label-api/pkg/printer"
)

// Messages returned with print results
const (
	msgNothingToPrint = "Tidak ada label untuk dicetak"
	msgPrinted        = "Semua label berhasil dicetak"
	msgPartial        = "Sebagian label gagal dicetak"
	msgPrintFailed    = "Gagal mencetak label"
)

// PrinterOpener opens a printer from its configuration
type PrinterOpener func(cfg printer.Config) (printer.Printer, error)

// PrinterService drives the label printer attached to the station.
type PrinterService struct {
	conn     *printer.Connection
	scanRepo repository.ScanRepository
	settings *SettingsService
	open     PrinterOpener
}

// NewPrinterService creates a new printer service.
func NewPrinterService(
	conn *printer.Connection,
	scanRepo repository.ScanRepository,
	settings *SettingsService,
	open PrinterOpener,
) *PrinterService {
	if open == nil {
		open = printer.NewPrinterFromConfig
	}
	return &PrinterService{
		conn:     conn,
		scanRepo: scanRepo,
		settings: settings,
		open:     open,
	}
}

// PrinterStatus returns the current printer status information.
type PrinterStatus struct {
	Configured bool           `json:"configured"`
	Connected  bool           `json:"connected"`
	Type       string         `json:"type"`
	Config     printer.Config `json:"config"`
}

// PrintOutcome reports a print run. FailedIndex is set when a label failed.
type PrintOutcome struct {
	Total       int    `json:"total"`
	Printed     int    `json:"printed"`
	Partial     bool   `json:"partial"`
	FailedIndex *int   `json:"failed_index,omitempty"`
	FailedCode  string `json:"failed_code,omitempty"`
	Message     string `json:"message"`
	Warning     string `json:"warning,omitempty"`
}

// GetStatus returns printer connection status.
func (s *PrinterService) GetStatus() *PrinterStatus {
	cfg := s.conn.Config()
	return &PrinterStatus{
		Configured: s.conn.Configured(),
		Connected:  s.conn.IsConnected(),
		Type:       cfg.Type,
		Config:     cfg,
	}
}

// Ports lists the serial ports a Bluetooth or USB-serial printer can be
// bound to.
func (s *PrinterService) Ports() ([]string, error) {
	ports, err := printer.ListSerialPorts()
	if err != nil {
		return nil, err
	}
	if ports == nil {
		ports = []string{}
	}
	return ports, nil
}

// Connect switches the station to the printer described by cfg and
// remembers it across restarts.
func (s *PrinterService) Connect(ctx context.Context, cfg printer.Config) (*PrinterStatus, error) {
	p, err := s.open(cfg)
	if err != nil {
		return nil, apperror.NewBadRequestError(err.Error())
	}
	if err := s.conn.Replace(p, cfg); err != nil {
		log.Printf("Warning: closing previous printer: %v", err)
	}
	if err := s.settings.SavePrinter(ctx, &cfg); err != nil {
		return nil, err
	}

	log.Printf("Printer connected: type=%s", cfg.Type)
	return s.GetStatus(), nil
}

// Disconnect detaches the printer and clears the saved configuration.
func (s *PrinterService) Disconnect(ctx context.Context) (*PrinterStatus, error) {
	if err := s.conn.Disconnect(); err != nil {
		log.Printf("Warning: closing printer: %v", err)
	}
	if err := s.settings.SavePrinter(ctx, nil); err != nil {
		return nil, err
	}
	return s.GetStatus(), nil
}

// Restore reconnects the printer saved by a previous Connect. It is a
// no-op when nothing was saved.
func (s *PrinterService) Restore(ctx context.Context) error {
	cfg, err := s.settings.SavedPrinter(ctx)
	if err != nil || cfg == nil {
		return err
	}
	p, err := s.open(*cfg)
	if err != nil {
		return fmt.Errorf("restore printer: %w", err)
	}
	return s.conn.Replace(p, *cfg)
}

// SampleScan is the label printed by TestPrint.
func SampleScan() label.Scan {
	return label.Scan{
		Code:     "1234567890123",
		Discount: "10",
		Payload: map[string]any{
			"name_product":      "TES PRINTER",
			"code_barcode_lama": "1234567890123",
			"harga_awal":        10000,
			"harga_discount":    9000,
			"qty":               1,
			"uomsales":          "PCS",
		},
		ScannedAt: time.Now(),
	}
}

// TestPrint prints the sample label and returns its payload.
func (s *PrinterService) TestPrint() (*label.Payload, error) {
	if !s.conn.IsConnected() {
		return nil, apperror.ErrPrinterNotConnected
	}

	scan := SampleScan()
	payload := label.Build(scan)
	if err := label.PrintOne(scan, s.conn); err != nil {
		log.Printf("Printer error (test print): %v", err)
		return &payload, apperror.NewPrintError(fmt.Sprintf("%s: %v", msgPrintFailed, err))
	}
	return &payload, nil
}

// PrintScan prints the label of one stored scan.
func (s *PrinterService) PrintScan(ctx context.Context, id uuid.UUID) (*PrintOutcome, error) {
	rec, err := s.scanRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, apperror.NewNotFoundError("Scan")
	}
	return s.PrintScans(ctx, []uuid.UUID{rec.ID})
}

// PrintScans prints the given scans, or the whole history when ids is
// empty, in scan order. The printer is held for the whole run so labels
// of concurrent requests never interleave.
func (s *PrinterService) PrintScans(ctx context.Context, ids []uuid.UUID) (*PrintOutcome, error) {
	records, err := loadRecords(ctx, s.scanRepo, ids)
	if err != nil {
		return nil, err
	}

	scans := make([]label.Scan, 0, len(records))
	for i := range records {
		scan, err := records[i].ToScan()
		if err != nil {
			return nil, err
		}
		scans = append(scans, scan)
	}

	if len(scans) > 0 && !s.conn.IsConnected() {
		return nil, apperror.ErrPrinterNotConnected
	}

	var res label.Result
	err = s.conn.Exclusive(func(p printer.Printer) error {
		var err error
		res, err = label.PrintAll(scans, p)
		return err
	})
	return outcome(res, err)
}

// outcome turns a print run into the response. Nothing to print and a
// partial run are not errors; a run that printed nothing is.
func outcome(res label.Result, err error) (*PrintOutcome, error) {
	out := &PrintOutcome{Total: res.Total, Printed: res.Printed}

	switch {
	case err == nil:
		out.Message = msgPrinted
		return out, nil
	case errors.Is(err, label.ErrNothingToPrint):
		out.Message = msgNothingToPrint
		return out, nil
	}

	var pe *label.PrintError
	if !errors.As(err, &pe) {
		return nil, err
	}
	log.Printf("Printer error (label %d of %d, code %s): %v", pe.Index+1, pe.Total, pe.Code, pe.Err)

	idx := pe.Index
	out.FailedIndex = &idx
	out.FailedCode = pe.Code
	if errors.Is(pe.Err, printer.ErrNotConnected) && !pe.Partial() {
		return nil, apperror.ErrPrinterNotConnected
	}
	if pe.Partial() {
		out.Partial = true
		out.Message = msgPartial
		out.Warning = fmt.Sprintf("%d dari %d label tercetak, label ke-%d gagal: %v", pe.Index, pe.Total, pe.Index+1, pe.Err)
		return out, nil
	}
	return nil, apperror.NewPrintError(fmt.Sprintf("%s: %v", msgPrintFailed, pe.Err))
}
