// internal/app/bootstrap/routes.go
package bootstrap

import (
	"context"
	"net/http"

	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	categoriesfeature "github.com/medisow/medisowadmin/internal/app/features/categories"
	donorsfeature "github.com/medisow/medisowadmin/internal/app/features/donors"
	errorsfeature "github.com/medisow/medisowadmin/internal/app/features/errors"
	healthfeature "github.com/medisow/medisowadmin/internal/app/features/health"
	labreportsfeature "github.com/medisow/medisowadmin/internal/app/features/labreports"
	medicinesfeature "github.com/medisow/medisowadmin/internal/app/features/medicines"
	notificationsfeature "github.com/medisow/medisowadmin/internal/app/features/notifications"
	prescriptionsfeature "github.com/medisow/medisowadmin/internal/app/features/prescriptions"
	subcategoriesfeature "github.com/medisow/medisowadmin/internal/app/features/subcategories"
	uploadsfeature "github.com/medisow/medisowadmin/internal/app/features/uploads"
	usersfeature "github.com/medisow/medisowadmin/internal/app/features/users"
	vouchersfeature "github.com/medisow/medisowadmin/internal/app/features/vouchers"
	"github.com/medisow/medisowadmin/internal/app/system/ratelimit"
	"go.uber.org/zap"
)

// BuildHandler builds the services and mounts every feature router.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	svc, err := NewServices(context.Background(), appCfg, deps, logger)
	if err != nil {
		logger.Error("service init failed", zap.Error(err))
		return nil, err
	}
	r := NewRouter(svc, deps.Docs, deps.Backend, logger)

	// Locally stored images are served by the app itself.
	if appCfg.BlobBackend == BlobLocal {
		r.Handle("/files/*", fileserver.Handler("/files", appCfg.BlobLocalPath))
	}
	return r, nil
}

// NewRouter mounts the JSON API over svc.
func NewRouter(svc *Services, db healthfeature.Pinger, backend string, logger *zap.Logger) chi.Router {
	errLog := errorsfeature.NewErrorLogger(logger)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Mount("/health", healthfeature.Routes(healthfeature.NewHandler(db, backend, logger)))

	// Categories and their nested sub-categories share one router.
	subHandler := subcategoriesfeature.NewHandler(svc.SubCategories, errLog, logger)
	catHandler := categoriesfeature.NewHandler(svc.Categories, errLog, logger)
	r.Mount("/categories", categoriesfeature.Routes(catHandler, subHandler.Nested))
	r.Mount("/subcategories", subcategoriesfeature.Routes(subHandler))

	// Items
	r.Mount("/medicines", medicinesfeature.Routes(medicinesfeature.NewHandler(svc.Medicines, errLog, logger)))
	r.Mount("/prescriptions", prescriptionsfeature.Routes(prescriptionsfeature.NewHandler(svc.Prescriptions, errLog, logger)))
	r.Mount("/lab-reports", labreportsfeature.Routes(labreportsfeature.NewHandler(svc.LabReports, errLog, logger)))

	r.Mount("/donors", donorsfeature.Routes(donorsfeature.NewHandler(svc.Donors, errLog, logger)))
	r.Mount("/users", usersfeature.Routes(usersfeature.NewHandler(svc.Users, svc.Vouchers, errLog, logger)))
	r.Mount("/vouchers", vouchersfeature.Routes(vouchersfeature.NewHandler(svc.Vouchers, errLog, logger)))
	var sendMW []func(http.Handler) http.Handler
	if svc.SendLimiter != nil {
		sendMW = append(sendMW, ratelimit.Middleware(svc.SendLimiter, logger))
	}
	r.Mount("/notifications", notificationsfeature.Routes(notificationsfeature.NewHandler(svc.Notifications, errLog, logger), sendMW...))
	r.Mount("/uploads", uploadsfeature.Routes(uploadsfeature.NewHandler(svc.Blobs, errLog, logger)))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		errLog.NotFound(w, "route", r.URL.Path)
	})
	return r
}
