package catalog

// Config tunes the upsert path.
type Config struct {
	// BulkThreshold is the minimum number of products that share the request's
	// group before they are written with one multi-row upsert. Zero disables
	// the bulk path.
	BulkThreshold int `yaml:"bulk_threshold" env:"CATALOG_BULK_THRESHOLD"`

	// AutoMigrate creates or updates the catalog tables on startup.
	AutoMigrate bool `yaml:"auto_migrate" env:"CATALOG_AUTO_MIGRATE"`
}

func DefaultConfig() Config {
	return Config{BulkThreshold: 10, AutoMigrate: true}
}
