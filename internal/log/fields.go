package log

// Common field names for structured logging
const (
	FieldComponent  = "component"
	FieldRequestID  = "request_id"
	FieldClientIP   = "client_ip"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldError      = "error"
	FieldFile       = "file"
	FieldRow        = "row"
	FieldVendor     = "vendor"
	FieldCategory   = "category"
	FieldCount      = "count"
	FieldMonth      = "month"
	FieldAmount     = "amount"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentHTTP    = "http"
	ComponentIngest  = "ingest"
	ComponentTagging = "tagging"
	ComponentDataset = "dataset"
	ComponentReport  = "report"
	ComponentImport  = "import"
	ComponentCache   = "cache"
)
