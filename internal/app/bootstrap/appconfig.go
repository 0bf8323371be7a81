// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds the Medisow admin settings. Values come from
// MEDISOW_* environment variables, config files or flags (see LoadConfig).
// Framework settings such as ports and log level live in WAFFLE's CoreConfig.
type AppConfig struct {
	// Document store: "mongo" or "bolt".
	StorageBackend string
	BoltPath       string

	MongoURI         string
	MongoDatabase    string
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// Image storage: "local" or "s3".
	BlobBackend   string
	BlobLocalPath string
	BlobPublicURL string // base URL images are served from
	S3Region      string
	S3Bucket      string
	S3Prefix      string

	// Push messaging. Left empty, sends are logged as failed.
	FCMProjectID       string
	FCMCredentialsFile string

	// NotificationRateLimit caps sends per client per minute; 0 disables.
	NotificationRateLimit int

	// StrictDomainIDs rejects sub-category parents without a known id prefix.
	StrictDomainIDs bool
	// BackfillConcurrency caps parallel name lookups.
	BackfillConcurrency int

	Timeouts TimeoutConfig
}

// TimeoutConfig bounds the work of one request per operation class.
type TimeoutConfig struct {
	Short  time.Duration
	Medium time.Duration
	Long   time.Duration
	Batch  time.Duration
}
