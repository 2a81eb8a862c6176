package request

// ConnectPrinterRequest is the request body for attaching a printer.
type ConnectPrinterRequest struct {
	Type       string `json:"type" binding:"required,oneof=serial usb network none"`
	SerialPort string `json:"serial_port"`
	BaudRate   int    `json:"baud_rate" binding:"omitempty,min=1200"`
	USBPath    string `json:"usb_path"`
	Address    string `json:"address"`
}

// PrintLabelsRequest selects the scans to print. An empty list prints
// the whole history.
type PrintLabelsRequest struct {
	IDs []string `json:"ids" binding:"omitempty,dive,uuid"`
}
