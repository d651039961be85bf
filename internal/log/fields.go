package log

// Common field names for structured logging
const (
	FieldComponent = "component"
	FieldError     = "error"
	FieldOperation = "operation"
	FieldUserID    = "user_id"
	FieldMonth     = "month"
	FieldAmount    = "so_tien"
	FieldCategory  = "danh_muc"
	FieldKeyword   = "tu_khoa"
	FieldEventType = "event_type"
	FieldSuccess   = "success"
)

// Components defines standard component names
const (
	ComponentApp      = "app"
	ComponentTelegram = "telegram"
	ComponentRouter   = "router"
	ComponentStorage  = "storage"
	ComponentAMQP     = "amqp"
	ComponentWorker   = "worker"
	ComponentChart    = "chart"
)
