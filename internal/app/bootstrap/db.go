// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dalemusser/waffle/config"
	"github.com/medisow/medisowadmin/internal/app/store/docstore/boltstore"
	"github.com/medisow/medisowadmin/internal/app/store/docstore/mongostore"
	voucherstore "github.com/medisow/medisowadmin/internal/app/store/vouchers"
	"github.com/medisow/medisowadmin/internal/app/system/indexes"
	"github.com/medisow/medisowadmin/internal/app/system/validators"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// ConnectDB opens the configured document store.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	return OpenDocStore(ctx, appCfg, logger)
}

// OpenDocStore opens the configured backend. The CLI uses it too.
func OpenDocStore(ctx context.Context, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	switch appCfg.StorageBackend {
	case BackendBolt:
		if dir := filepath.Dir(appCfg.BoltPath); dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return DBDeps{}, fmt.Errorf("create bolt directory: %w", err)
			}
		}
		s, err := boltstore.Open(appCfg.BoltPath,
			boltstore.WithUnique(voucherstore.Collection, "code"))
		if err != nil {
			return DBDeps{}, err
		}
		logger.Info("opened bolt document store", zap.String("path", appCfg.BoltPath))
		return DBDeps{Backend: BackendBolt, Docs: s, Background: NewBackground()}, nil

	case BackendMongo:
		opts := options.Client().
			ApplyURI(appCfg.MongoURI).
			SetMaxPoolSize(appCfg.MongoMaxPoolSize).
			SetMinPoolSize(appCfg.MongoMinPoolSize)
		client, err := mongo.Connect(ctx, opts)
		if err != nil {
			return DBDeps{}, fmt.Errorf("mongo connect: %w", err)
		}
		if err := client.Ping(ctx, readpref.Primary()); err != nil {
			_ = client.Disconnect(context.Background())
			return DBDeps{}, fmt.Errorf("mongo ping: %w", err)
		}
		db := client.Database(appCfg.MongoDatabase)
		logger.Info("connected to MongoDB",
			zap.String("database", appCfg.MongoDatabase),
			zap.Uint64("max_pool", appCfg.MongoMaxPoolSize))
		return DBDeps{
			Backend:       BackendMongo,
			Docs:          mongostore.New(db),
			MongoClient:   client,
			MongoDatabase: db,
			Background:    NewBackground(),
		}, nil
	}
	return DBDeps{}, fmt.Errorf("unknown storage_backend %q", appCfg.StorageBackend)
}

// EnsureSchema reconciles Mongo indexes and collection validators. The
// bolt backend enforces voucher code uniqueness itself.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if deps.MongoDatabase == nil {
		return nil
	}
	if err := indexes.EnsureAll(ctx, deps.MongoDatabase); err != nil {
		logger.Error("ensure indexes failed", zap.Error(err))
		return err
	}
	if err := validators.EnsureAll(ctx, deps.MongoDatabase); err != nil {
		logger.Error("ensure validators failed", zap.Error(err))
		return err
	}
	logger.Info("schema ensured")
	return nil
}
