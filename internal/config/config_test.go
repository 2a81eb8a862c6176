package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "./labels.db?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on", cfg.Database.SQLiteDSN())
	assert.Equal(t, "none", cfg.Printer.Type)
	assert.Equal(t, 9600, cfg.Printer.BaudRate)
	assert.Equal(t, 15*time.Second, cfg.Catalog.Timeout)
	assert.Equal(t, "2018", cfg.Discount.DefaultOutlet)
	assert.Equal(t, "0", cfg.Discount.DefaultPercent)
	assert.Equal(t, 12*time.Hour, cfg.JWT.ExpiryHours)
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_NAME", "labels")
	t.Setenv("PRINTER_TYPE", "serial")
	t.Setenv("PRINTER_SERIAL_PORT", "COM5")
	t.Setenv("PRINTER_BAUD_RATE", "115200")
	t.Setenv("CATALOG_BASE_URL", "http://catalog.local")
	t.Setenv("CATALOG_TIMEOUT_SECONDS", "3")
	t.Setenv("DISCOUNT_DEFAULT_OUTLET", "SZ01")

	cfg := Load()

	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Contains(t, cfg.Database.DSN(), "host=db.internal")
	assert.Contains(t, cfg.Database.DSN(), "dbname=labels")
	assert.Equal(t, PrinterConfig{Type: "serial", SerialPort: "COM5", BaudRate: 115200, USBPath: "/dev/usb/lp0"}, cfg.Printer)
	assert.Equal(t, "http://catalog.local", cfg.Catalog.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.Catalog.Timeout)
	assert.Equal(t, "SZ01", cfg.Discount.DefaultOutlet)
}
