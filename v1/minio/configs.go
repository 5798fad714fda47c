package minio

// Config defines the object storage settings for published feed files.
type Config struct {
	Connection ConnectionConfig `yaml:"connection"`
}

type ConnectionConfig struct {
	// Endpoint is host:port without scheme, e.g. "minio:9000".
	Endpoint        string `yaml:"endpoint" env:"MINIO_ENDPOINT"`
	AccessKeyID     string `yaml:"access_key_id" env:"MINIO_ACCESS_KEY"`
	SecretAccessKey string `yaml:"secret_access_key" env:"MINIO_SECRET_KEY"`
	UseSSL          bool   `yaml:"use_ssl" env:"MINIO_USE_SSL"`
	Region          string `yaml:"region" env:"MINIO_REGION"`

	// BucketName holds the feeds, one prefix per organization.
	BucketName string `yaml:"bucket_name" env:"MINIO_FEED_BUCKET"`

	// AccessBucketCreation creates BucketName at startup when missing.
	AccessBucketCreation bool `yaml:"access_bucket_creation" env:"MINIO_CREATE_BUCKET"`
}

func DefaultConfig() Config {
	return Config{
		Connection: ConnectionConfig{
			Endpoint:   "localhost:9000",
			BucketName: "feeds",
		},
	}
}
