package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/harborlabs/fleetdocs/internal/api/handlers"
	"github.com/harborlabs/fleetdocs/internal/api/middleware"
	"github.com/harborlabs/fleetdocs/internal/audit"
	"github.com/harborlabs/fleetdocs/internal/auth"
	"github.com/harborlabs/fleetdocs/internal/certificate"
	"github.com/harborlabs/fleetdocs/internal/config"
	"github.com/harborlabs/fleetdocs/internal/extraction"
	"github.com/harborlabs/fleetdocs/internal/fingerprint"
	"github.com/harborlabs/fleetdocs/internal/fleet"
	"github.com/harborlabs/fleetdocs/internal/quality"
	"github.com/harborlabs/fleetdocs/internal/queue"
	"github.com/harborlabs/fleetdocs/internal/storage"
)

type Router struct {
	mux   *chi.Mux
	db    *pgxpool.Pool
	redis *redis.Client
	cfg   *config.Config
	jwt   *auth.JWTMiddleware
}

func NewRouter(db *pgxpool.Pool, rdb *redis.Client, cfg *config.Config) *Router {
	return &Router{
		mux:   chi.NewRouter(),
		db:    db,
		redis: rdb,
		cfg:   cfg,
		jwt:   auth.NewJWTMiddleware(cfg.Auth.JWTSecret),
	}
}

func (rt *Router) Setup() http.Handler {
	r := rt.mux

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logging)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS([]string{"*"}))

	rl := middleware.NewRateLimiter(100, 200)
	r.Use(rl.Limit)

	// Health endpoints (no auth)
	health := handlers.NewHealthHandler(rt.db, rt.redis)
	r.Get("/healthz", health.Healthz)
	r.Get("/readyz", health.Readyz)

	// Initialize services
	store := storage.NewDriveWebhook(rt.cfg.Storage.WebhookURL, rt.cfg.Storage.AuthToken, rt.cfg.Storage.RootFolder)
	auditSvc := audit.NewService(rt.db)
	fleetSvc := fleet.NewService(rt.db, auditSvc)
	queueClient := queue.NewClient(rt.cfg.Redis)

	analyzer := extraction.NewGateway(rt.cfg.Extraction)
	matcher := fingerprint.NewMatcher(rt.cfg.Fingerprint)
	gate := quality.NewGate(rt.cfg.Extraction.MinTextLength, rt.cfg.Extraction.MinCriticalFields)

	var pending *certificate.PendingStore
	if rt.redis != nil {
		pending = certificate.NewPendingStore(rt.redis)
	}
	certSvc := certificate.NewService(
		certificate.NewPgRepository(rt.db),
		analyzer, matcher, gate, store, auditSvc, pending,
	)

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(rt.jwt.Authenticate)

		certH := handlers.NewCertificateHandler(certSvc)
		r.Route("/certificates", func(r chi.Router) {
			r.Post("/multi-upload", certH.MultiUpload)
			r.Post("/process-with-resolution", certH.Resolve)
			r.Post("/backfill-ship-info", certH.BackfillShipInfo)
			r.Get("/", certH.List)
			r.Get("/{id}", certH.Get)
			r.Delete("/{id}", certH.Delete)
		})

		companyH := handlers.NewCompanyHandler(fleetSvc)
		r.Route("/companies", func(r chi.Router) {
			r.Post("/", companyH.Create)
			r.Get("/", companyH.List)
			r.Get("/{id}", companyH.Get)
			r.Delete("/{id}", companyH.Delete)
		})

		shipH := handlers.NewShipHandler(fleetSvc)
		r.Route("/ships", func(r chi.Router) {
			r.Post("/", shipH.Create)
			r.Get("/", shipH.List)
			r.Get("/{id}", shipH.Get)
			r.Delete("/{id}", shipH.Delete)
		})

		crewH := handlers.NewCrewHandler(fleetSvc)
		r.Route("/crew", func(r chi.Router) {
			r.Post("/", crewH.Create)
			r.Get("/", crewH.List)
			r.Get("/{id}", crewH.Get)
			r.Delete("/{id}", crewH.Delete)
		})

		adminH := handlers.NewAdminHandler(auditSvc, queueClient)
		r.Route("/admin", func(r chi.Router) {
			r.Get("/audit", adminH.AuditLogs)
			r.Post("/backfill", adminH.EnqueueBackfill)
		})
	})

	return r
}
