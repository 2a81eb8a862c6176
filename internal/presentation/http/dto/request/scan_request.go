package request

// ScanRequest is the request body for a scanned or typed product code.
type ScanRequest struct {
	Code     string `json:"code" binding:"required"`
	Discount string `json:"discount"`
	Outlet   string `json:"outlet"`
}

// PreviewLabelRequest describes a label to preview without storing it.
type PreviewLabelRequest struct {
	Code     string         `json:"code" binding:"required"`
	Discount string         `json:"discount"`
	Payload  map[string]any `json:"payload"`
}

// UpdateDiscountRequest sets the active discount and outlet.
type UpdateDiscountRequest struct {
	Discount string `json:"discount" binding:"required"`
	Outlet   string `json:"outlet"`
}
