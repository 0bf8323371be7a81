// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"time"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

const defaultBlobPublicURL = "http://localhost:8080/files"

// EnvPrefix prefixes every app environment variable.
const EnvPrefix = "MEDISOW"

// Backend names.
const (
	BackendMongo = "mongo"
	BackendBolt  = "bolt"
	BlobLocal    = "local"
	BlobS3       = "s3"
)

// appConfigKeys are read from config files (mongo_uri), environment
// variables (MEDISOW_MONGO_URI) and flags (--mongo_uri).
var appConfigKeys = []config.AppKey{
	{Name: "storage_backend", Default: BackendMongo, Desc: "Document store: 'mongo' or 'bolt'"},
	{Name: "bolt_path", Default: "./data/medisow.db", Desc: "bbolt database file (bolt backend)"},

	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "medisow", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size"},
	{Name: "mongo_min_pool_size", Default: 5, Desc: "MongoDB min connection pool size"},

	{Name: "blob_backend", Default: BlobLocal, Desc: "Image storage: 'local' or 's3'"},
	{Name: "blob_local_path", Default: "./uploads", Desc: "Directory for locally stored images"},
	{Name: "blob_public_url", Default: defaultBlobPublicURL, Desc: "Base URL images are served from"},
	{Name: "s3_region", Default: "", Desc: "AWS region for S3"},
	{Name: "s3_bucket", Default: "", Desc: "S3 bucket name"},
	{Name: "s3_prefix", Default: "", Desc: "S3 key prefix"},

	{Name: "fcm_project_id", Default: "", Desc: "Firebase project id for push messages"},
	{Name: "fcm_credentials_file", Default: "", Desc: "Service account JSON (blank uses default credentials)"},

	{Name: "notification_rate_limit", Default: 10, Desc: "Push sends per client per minute (0 disables)"},

	{Name: "strict_domain_ids", Default: false, Desc: "Reject sub-category parents without a known id prefix"},
	{Name: "backfill_concurrency", Default: 8, Desc: "Parallel name lookups during backfill"},

	{Name: "timeout_short", Default: "5s", Desc: "Single-document operations"},
	{Name: "timeout_medium", Default: "15s", Desc: "List and search operations"},
	{Name: "timeout_long", Default: "60s", Desc: "Uploads and push sends"},
	{Name: "timeout_batch", Default: "10m", Desc: "Backfill runs"},
}

// LoadConfig loads WAFFLE core config and the app config.
// Precedence is flags > env > files > defaults.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, EnvPrefix, appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}
	return coreCfg, AppConfigFrom(appValues), nil
}

// Values is the typed lookup AppConfigFrom reads keys through. WAFFLE's
// loaded app values satisfy it; the CLI adapts viper to it.
type Values interface {
	String(key string) string
	Int(key string) int
	Bool(key string) bool
	Duration(key string, def time.Duration) time.Duration
}

// Keys returns the app config keys with their defaults.
func Keys() []config.AppKey {
	return appConfigKeys
}

// AppConfigFrom maps loaded key values onto AppConfig.
func AppConfigFrom(vals Values) AppConfig {
	return AppConfig{
		StorageBackend: vals.String("storage_backend"),
		BoltPath:       vals.String("bolt_path"),

		MongoURI:         vals.String("mongo_uri"),
		MongoDatabase:    vals.String("mongo_database"),
		MongoMaxPoolSize: uint64(vals.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(vals.Int("mongo_min_pool_size")),

		BlobBackend:   vals.String("blob_backend"),
		BlobLocalPath: vals.String("blob_local_path"),
		BlobPublicURL: vals.String("blob_public_url"),
		S3Region:      vals.String("s3_region"),
		S3Bucket:      vals.String("s3_bucket"),
		S3Prefix:      vals.String("s3_prefix"),

		FCMProjectID:       vals.String("fcm_project_id"),
		FCMCredentialsFile: vals.String("fcm_credentials_file"),

		NotificationRateLimit: vals.Int("notification_rate_limit"),

		StrictDomainIDs:     vals.Bool("strict_domain_ids"),
		BackfillConcurrency: vals.Int("backfill_concurrency"),

		Timeouts: TimeoutConfig{
			Short:  vals.Duration("timeout_short", 5*time.Second),
			Medium: vals.Duration("timeout_medium", 15*time.Second),
			Long:   vals.Duration("timeout_long", 60*time.Second),
			Batch:  vals.Duration("timeout_batch", 10*time.Minute),
		},
	}
}

// ValidateConfig rejects settings that would fail later at connect time.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	return Validate(appCfg, logger)
}

// Validate checks appCfg on its own. The CLI calls it directly.
func Validate(appCfg AppConfig, logger *zap.Logger) error {
	switch appCfg.StorageBackend {
	case BackendMongo:
		if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
			logger.Error("invalid MongoDB URI", zap.Error(err))
			return fmt.Errorf("invalid MongoDB URI: %w", err)
		}
		if appCfg.MongoDatabase == "" {
			return fmt.Errorf("mongo_database is required")
		}
	case BackendBolt:
		if appCfg.BoltPath == "" {
			return fmt.Errorf("bolt_path is required for the bolt backend")
		}
	default:
		return fmt.Errorf("unknown storage_backend %q (want %q or %q)", appCfg.StorageBackend, BackendMongo, BackendBolt)
	}

	switch appCfg.BlobBackend {
	case BlobLocal:
		if appCfg.BlobLocalPath == "" || appCfg.BlobPublicURL == "" {
			return fmt.Errorf("blob_local_path and blob_public_url are required for local image storage")
		}
	case BlobS3:
		if appCfg.S3Region == "" || appCfg.S3Bucket == "" {
			return fmt.Errorf("s3_region and s3_bucket are required for s3 image storage")
		}
	default:
		return fmt.Errorf("unknown blob_backend %q (want %q or %q)", appCfg.BlobBackend, BlobLocal, BlobS3)
	}

	if appCfg.FCMProjectID == "" {
		logger.Warn("fcm_project_id not set; push notifications are disabled")
	}
	return nil
}
