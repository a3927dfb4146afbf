package log

const (
	// Request
	FieldRequestID = "request_id"
	FieldMethod    = "method"
	FieldPath      = "path"
	FieldStatus    = "status"
	FieldLatency   = "latency_ms"
	FieldClientIP  = "client_ip"

	// Actor (matches internal/middleware/auth.go keys)
	FieldUserID   = "user_id"
	FieldUserName = "user_name"
	FieldRole     = "role"

	// Domain
	FieldProductID = "product_id"
	FieldOrderID   = "order_id"
	FieldClientID  = "client_id"

	// Service
	FieldService = "service"

	// Log type (for audit log)
	FieldLogType = "log_type"
	LogTypeAudit = "audit"
)
