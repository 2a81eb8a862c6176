package entity

import "time"

// Setting keys
const (
	SettingPrinterConfigured  = "printer_configured"
	SettingDiscountConfigured = "discount_configured"
	SettingActiveDiscount     = "active_discount"
	SettingOutlet             = "outlet"
	SettingPrinter            = "printer"
)

// Setting is a single key/value pair. Value is JSON encoded.
type Setting struct {
	Key       string    `gorm:"primaryKey;size:64" json:"key" db:"key"`
	Value     string    `gorm:"type:text;not null" json:"value" db:"value"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at" db:"updated_at"`
}

// TableName returns the table name for the Setting model
func (Setting) TableName() string {
	return "settings"
}
