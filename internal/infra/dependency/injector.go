// Package dependency provides dependency injection for the application.
package dependency

import (
	"context"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"github.com/anbu-gynaecare/webapp/config"
	"github.com/anbu-gynaecare/webapp/internal/application/adapter"
	"github.com/anbu-gynaecare/webapp/internal/application/async"
	"github.com/anbu-gynaecare/webapp/internal/application/usecase/auth"
	"github.com/anbu-gynaecare/webapp/internal/application/usecase/calendar"
	"github.com/anbu-gynaecare/webapp/internal/application/usecase/cart"
	"github.com/anbu-gynaecare/webapp/internal/application/usecase/dashboard"
	"github.com/anbu-gynaecare/webapp/internal/application/usecase/session"
	"github.com/anbu-gynaecare/webapp/internal/application/usecase/user"
	"github.com/anbu-gynaecare/webapp/internal/infra/server/router"
	"github.com/anbu-gynaecare/webapp/internal/integration/adapters"
	"github.com/anbu-gynaecare/webapp/internal/integration/apiclient"
	"github.com/anbu-gynaecare/webapp/internal/integration/entrypoint/controller"
	"github.com/anbu-gynaecare/webapp/internal/integration/entrypoint/middleware"
	"github.com/anbu-gynaecare/webapp/internal/integration/persistence"
)

// HealthCheckers are the dependency checks reported by /health.
// A nil Cache means the in-process cache is in use.
type HealthCheckers struct {
	Database controller.HealthChecker
	Cache    controller.HealthChecker
}

// Injector holds all application dependencies.
type Injector struct {
	Config      *config.Config
	DB          *gorm.DB
	Router      *router.Router
	Sessions    adapter.SessionRepository
	Registry    *session.Registry
	Cache       adapter.Cache
	RateLimiter *middleware.RateLimiter
}

// NewInjector creates a new dependency injector with all dependencies wired.
func NewInjector(cfg *config.Config, db *gorm.DB, cache adapter.Cache, checks HealthCheckers) *Injector {
	// Create repositories
	sessionRepo := persistence.NewSessionRepository(db)
	draftRepo := persistence.NewOnboardingDraftRepository(db)

	// Create adapters/services
	tokenSource := adapters.NewSessionTokenSource(sessionRepo)
	tokenInspector := adapters.NewTokenInspector()
	client := apiclient.NewClient(cfg.API.BaseURL, cfg.API.Timeout, tokenSource)

	authService := apiclient.NewAuthService(client)
	userService := apiclient.NewUserService(client, cache, cfg.Cache.UserTTL)
	cycleService := apiclient.NewCycleService(client)
	logService := apiclient.NewLogService(client, cache, cfg.Cache.LogsTTL)
	predictionService := apiclient.NewPredictionService(client, cache, cfg.Cache.PredictionsTTL)
	productService := apiclient.NewProductService(client, cache, cfg.Cache.ProductsTTL)

	// Per-session state
	services := session.Services{
		Logs:        logService,
		Predictions: predictionService,
		Products:    productService,
		Cycles:      cycleService,
		Drafts:      draftRepo,
		Fetch: async.FetcherOptions{
			Immediate:  true,
			Retry:      cfg.Fetch.Retry,
			RetryDelay: cfg.Fetch.RetryDelay,
		},
		PageSize:       cfg.Fetch.PageSize,
		SearchDebounce: cfg.Fetch.SearchDebounce,
	}
	registry := session.NewRegistry(services.NewState)

	// Create auth use cases
	caches := auth.SessionCaches{
		User:        userService,
		Logs:        logService,
		Predictions: predictionService,
		States:      registry,
	}
	authState := auth.NewAuthState(sessionRepo)
	registerUseCase := auth.NewRegisterUserUseCase(authService, sessionRepo, tokenInspector, caches, cfg.Session.TTL)
	loginUseCase := auth.NewLoginUserUseCase(authService, sessionRepo, tokenInspector, caches, cfg.Session.TTL)
	logoutUseCase := auth.NewLogoutUserUseCase(sessionRepo, caches)

	// Create stateless use cases
	getProfileUseCase := user.NewGetProfileUseCase(userService)
	getSummaryUseCase := dashboard.NewGetSummaryUseCase(userService, logService, predictionService)
	calendarBuilder := calendar.NewBuilder(logService, predictionService)
	addProductUseCase := cart.NewAddProductUseCase(productService)

	// Create controllers
	controllers := router.Controllers{
		Health:     controller.NewHealthController(checks.Database, checks.Cache),
		Auth:       controller.NewAuthController(registerUseCase, loginUseCase, logoutUseCase, authState),
		User:       controller.NewUserController(getProfileUseCase),
		Tracking:   controller.NewTrackingController(registry),
		Onboarding: controller.NewOnboardingController(registry),
		Dashboard:  controller.NewDashboardController(getSummaryUseCase, calendarBuilder),
		Product:    controller.NewProductController(registry),
		Cart:       controller.NewCartController(registry, addProductUseCase),
	}

	// Create middleware
	sessionMiddleware := middleware.NewSessionMiddleware(sessionRepo, middleware.SessionOptions{
		CookieName: cfg.Session.CookieName,
		Secure:     cfg.Session.CookieSecure,
		MaxAge:     cfg.Session.TTL,
	})
	loginRateLimiter := middleware.NewRateLimiter(cfg.Session.LoginRateLimit, cfg.Session.LoginRateWindow)
	if cfg.Server.Environment == "test" || cfg.Server.Environment == "e2e" {
		loginRateLimiter.Disable()
	}

	r := router.NewRouter(controllers, sessionMiddleware, authState, loginRateLimiter)

	return &Injector{
		Config:      cfg,
		DB:          db,
		Router:      r,
		Sessions:    sessionRepo,
		Registry:    registry,
		Cache:       cache,
		RateLimiter: loginRateLimiter,
	}
}

// expiringCache is implemented by caches that need their stale entries swept.
type expiringCache interface {
	Cleanup() int
}

// Sweep drops idle sessions, idle in-memory session state, expired cache
// entries and ended rate-limit windows.
func (i *Injector) Sweep(ctx context.Context, now time.Time) {
	removed, err := i.Sessions.DeleteIdleBefore(ctx, now.Add(-i.Config.Session.TTL))
	if err != nil {
		slog.ErrorContext(ctx, "Failed to delete idle sessions", "error", err)
	}

	evicted := i.Registry.EvictIdle(now.Add(-i.Config.Session.StateIdle))

	expired := 0
	if c, ok := i.Cache.(expiringCache); ok {
		expired = c.Cleanup()
	}

	windows := i.RateLimiter.Cleanup()

	slog.DebugContext(ctx, "Session sweep finished",
		"sessions_deleted", removed,
		"states_evicted", evicted,
		"cache_entries_expired", expired,
		"rate_windows_dropped", windows,
	)
}
