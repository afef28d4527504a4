package log

// Common field names for structured logging
const (
	FieldComponent  = "component"
	FieldRequestID  = "request_id"
	FieldClientIP   = "client_ip"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldQuery      = "query"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldUserAgent  = "user_agent"
	FieldSuccess    = "success"
	FieldError      = "error"
	FieldOperation  = "operation"
	FieldTxID       = "transaction_id"
	FieldTxType     = "transaction_type"
	FieldCategory   = "category"
	FieldAmount     = "amount"
	FieldDocumentID = "document_id"
	FieldCount      = "count"
)

// Components defines standard component names
const (
	ComponentApp       = "app"
	ComponentHTTP      = "http"
	ComponentTracker   = "tracker"
	ComponentStorage   = "storage"
	ComponentSync      = "sync"
	ComponentRemote    = "remote"
	ComponentRateLimit = "rate_limit"
	ComponentSecurity  = "security"
)

// Operations defines standard operation names
const (
	OpCreate   = "create"
	OpDelete   = "delete"
	OpToggle   = "toggle"
	OpList     = "list"
	OpImport   = "import"
	OpExport   = "export"
	OpPush     = "push"
	OpPull     = "pull"
	OpConnect  = "connect"
	OpStartup  = "startup"
	OpShutdown = "shutdown"
)
