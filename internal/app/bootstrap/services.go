// internal/app/bootstrap/services.go
package bootstrap

import (
	"context"
	"fmt"
	"time"

	categorystore "github.com/medisow/medisowadmin/internal/app/store/categories"
	"github.com/medisow/medisowadmin/internal/app/store/docstore"
	donorstore "github.com/medisow/medisowadmin/internal/app/store/donors"
	"github.com/medisow/medisowadmin/internal/app/store/itemnames"
	labreportstore "github.com/medisow/medisowadmin/internal/app/store/labreports"
	medicinestore "github.com/medisow/medisowadmin/internal/app/store/medicines"
	notificationstore "github.com/medisow/medisowadmin/internal/app/store/notifications"
	prescriptionstore "github.com/medisow/medisowadmin/internal/app/store/prescriptions"
	subcategorystore "github.com/medisow/medisowadmin/internal/app/store/subcategories"
	userstore "github.com/medisow/medisowadmin/internal/app/store/users"
	voucherstore "github.com/medisow/medisowadmin/internal/app/store/vouchers"
	"github.com/medisow/medisowadmin/internal/app/system/blob"
	"github.com/medisow/medisowadmin/internal/app/system/push"
	"github.com/medisow/medisowadmin/internal/app/system/ratelimit"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// Services is every repository and outbound client the handlers use.
type Services struct {
	Categories    *categorystore.Store
	SubCategories *subcategorystore.Store
	Medicines     *medicinestore.Store
	Prescriptions *prescriptionstore.Store
	LabReports    *labreportstore.Store
	Donors        *donorstore.Store
	Users         *userstore.Store
	Vouchers      *voucherstore.Store
	Notifications *push.Dispatcher
	Blobs         blob.Store
	// SendLimiter throttles push sends; nil means unlimited.
	SendLimiter *ratelimit.Limiter
}

// NewStores builds the repositories over ds. Blobs and sender may be nil
// for callers that never upload or push; uploads then return
// blob.ErrNotConfigured and sends are logged as failed.
func NewStores(ds docstore.Store, blobs blob.Store, sender push.Sender, appCfg AppConfig, logger *zap.Logger) *Services {
	cats := categorystore.New(ds)
	subs := subcategorystore.New(ds, cats, subcategorystore.Options{
		StrictDomainIDs: appCfg.StrictDomainIDs,
		Concurrency:     appCfg.BackfillConcurrency,
	})
	names := itemnames.New(cats, subs, appCfg.BackfillConcurrency)
	return &Services{
		Categories:    cats,
		SubCategories: subs,
		Medicines:     medicinestore.New(ds, names),
		Prescriptions: prescriptionstore.New(ds, names),
		LabReports:    labreportstore.New(ds, names),
		Donors:        donorstore.New(ds),
		Users:         userstore.New(ds),
		Vouchers:      voucherstore.New(ds, blobs, logger),
		Notifications: push.NewDispatcher(sender, notificationstore.New(ds), logger),
		Blobs:         blobs,
	}
}

// NewServices builds the outbound clients from config, then the stores.
func NewServices(ctx context.Context, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (*Services, error) {
	blobs, err := newBlobStore(ctx, appCfg)
	if err != nil {
		return nil, err
	}
	sender, err := newSender(ctx, appCfg, logger)
	if err != nil {
		return nil, err
	}
	svc := NewStores(deps.Docs, blobs, sender, appCfg, logger)
	if appCfg.NotificationRateLimit > 0 {
		svc.SendLimiter = ratelimit.New(appCfg.NotificationRateLimit, time.Minute)
		// Expired windows are also reset on the next Allow, so without a
		// Background the limiter only keeps stale keys longer.
		if deps.Background != nil {
			deps.Background.Go(svc.SendLimiter.RunSweeper)
		}
	}
	return svc, nil
}

func newBlobStore(ctx context.Context, appCfg AppConfig) (blob.Store, error) {
	switch appCfg.BlobBackend {
	case BlobS3:
		return blob.NewS3(ctx, blob.S3Config{
			Region:    appCfg.S3Region,
			Bucket:    appCfg.S3Bucket,
			Prefix:    appCfg.S3Prefix,
			PublicURL: s3PublicURL(appCfg),
		})
	case BlobLocal:
		return blob.NewLocal(afero.NewOsFs(), appCfg.BlobLocalPath, appCfg.BlobPublicURL), nil
	}
	return nil, fmt.Errorf("unknown blob_backend %q", appCfg.BlobBackend)
}

// s3PublicURL keeps the bucket endpoint unless a CDN URL was configured
// in place of the local default.
func s3PublicURL(appCfg AppConfig) string {
	if appCfg.BlobPublicURL == "" || appCfg.BlobPublicURL == defaultBlobPublicURL {
		return ""
	}
	return appCfg.BlobPublicURL
}

func newSender(ctx context.Context, appCfg AppConfig, logger *zap.Logger) (push.Sender, error) {
	if appCfg.FCMProjectID == "" {
		return push.Disabled{}, nil
	}
	fcm, err := push.NewFCM(ctx, appCfg.FCMProjectID, appCfg.FCMCredentialsFile)
	if err != nil {
		return nil, fmt.Errorf("push: %w", err)
	}
	logger.Info("push messaging enabled", zap.String("project", appCfg.FCMProjectID))
	return fcm, nil
}
