package logger

const (
	Debug   = "debug"
	Info    = "info"
	Warning = "warning"
	Error   = "error"
)

// Config controls log level and the fields attached to every entry.
type Config struct {
	// Level is one of debug, info, warning, error. Anything else means info.
	Level string `yaml:"level" env:"LOG_LEVEL"`

	// ServiceName is emitted as the "service" field.
	ServiceName string `yaml:"service_name" env:"SERVICE_NAME"`

	// EnableTracing adds trace_id and span_id to the WithContext variants.
	EnableTracing bool `yaml:"enable_tracing" env:"LOG_ENABLE_TRACING"`
}
