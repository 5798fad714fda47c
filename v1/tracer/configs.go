package tracer

// Config controls the tracer provider.
type Config struct {
	ServiceName string `yaml:"service_name" env:"SERVICE_NAME"`

	// AppEnv is recorded as deployment.environment.
	AppEnv string `yaml:"app_env" env:"APP_ENV"`

	// EnableExport sends spans to the OTLP endpoint configured through the
	// standard OTEL_EXPORTER_OTLP_* variables.
	EnableExport bool `yaml:"enable_export" env:"OTEL_EXPORT_ENABLED"`
}
