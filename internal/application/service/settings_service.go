package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/sangkips/discount-label-api/internal/config"
	"github.com/sangkips/discount-label-api/internal/domain/entity"
	"github.com/sangkips/discount-label-api/internal/domain/repository"
	"github.com/sangkips/discount-label-api/pkg/apperror"
	"github.com/sangkips/discount-label-api/pkg/printer"
)

// LabelSettings is the state of the label station as shown to operators.
type LabelSettings struct {
	PrinterConfigured  bool            `json:"printer_configured"`
	DiscountConfigured bool            `json:"discount_configured"`
	ActiveDiscount     string          `json:"active_discount"`
	Outlet             string          `json:"outlet"`
	Printer            *printer.Config `json:"printer,omitempty"`
}

// SettingsService handles the station settings stored as JSON values
type SettingsService struct {
	settingsRepo repository.SettingsRepository
	defaults     config.DiscountConfig
}

// NewSettingsService creates a new settings service
func NewSettingsService(settingsRepo repository.SettingsRepository, defaults config.DiscountConfig) *SettingsService {
	return &SettingsService{
		settingsRepo: settingsRepo,
		defaults:     defaults,
	}
}

// GetSettings returns the stored settings. Unset discount and outlet fall
// back to the configured defaults.
func (s *SettingsService) GetSettings(ctx context.Context) (*LabelSettings, error) {
	out := &LabelSettings{
		ActiveDiscount: s.defaults.DefaultPercent,
		Outlet:         s.defaults.DefaultOutlet,
	}

	fields := []struct {
		key string
		dst any
	}{
		{entity.SettingPrinterConfigured, &out.PrinterConfigured},
		{entity.SettingDiscountConfigured, &out.DiscountConfigured},
		{entity.SettingActiveDiscount, &out.ActiveDiscount},
		{entity.SettingOutlet, &out.Outlet},
		{entity.SettingPrinter, &out.Printer},
	}
	for _, f := range fields {
		if _, err := s.getJSON(ctx, f.key, f.dst); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// UpdateDiscountInput represents the input for changing the active discount
type UpdateDiscountInput struct {
	Discount string
	Outlet   string
}

// UpdateDiscount stores the discount used for the following scans and marks
// the discount as configured. An empty outlet keeps the current one.
func (s *SettingsService) UpdateDiscount(ctx context.Context, input *UpdateDiscountInput) (*LabelSettings, error) {
	discount := strings.TrimSpace(input.Discount)
	pct, err := strconv.ParseFloat(discount, 64)
	if err != nil || pct < 0 || pct > 100 {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "discount", Message: "Diskon harus berupa angka 0 sampai 100"},
		})
	}

	if err := s.setJSON(ctx, entity.SettingActiveDiscount, discount); err != nil {
		return nil, err
	}
	if outlet := strings.TrimSpace(input.Outlet); outlet != "" {
		if err := s.setJSON(ctx, entity.SettingOutlet, outlet); err != nil {
			return nil, err
		}
	}
	if err := s.setJSON(ctx, entity.SettingDiscountConfigured, true); err != nil {
		return nil, err
	}

	return s.GetSettings(ctx)
}

// SavePrinter records the printer the station is connected to. A nil cfg
// clears it and marks the printer as not configured.
func (s *SettingsService) SavePrinter(ctx context.Context, cfg *printer.Config) error {
	if err := s.setJSON(ctx, entity.SettingPrinter, cfg); err != nil {
		return err
	}
	return s.setJSON(ctx, entity.SettingPrinterConfigured, cfg != nil && cfg.Type != printer.TypeNone)
}

// SavedPrinter returns the printer stored by SavePrinter, or nil.
func (s *SettingsService) SavedPrinter(ctx context.Context) (*printer.Config, error) {
	var cfg *printer.Config
	if _, err := s.getJSON(ctx, entity.SettingPrinter, &cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (s *SettingsService) getJSON(ctx context.Context, key string, dst any) (bool, error) {
	setting, err := s.settingsRepo.Get(ctx, key)
	if err != nil {
		return false, err
	}
	if setting == nil {
		return false, nil
	}
	if err := json.Unmarshal([]byte(setting.Value), dst); err != nil {
		return false, fmt.Errorf("setting %s: %w", key, err)
	}
	return true, nil
}

func (s *SettingsService) setJSON(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("setting %s: %w", key, err)
	}
	return s.settingsRepo.Set(ctx, key, string(raw))
}
