// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/anbu-gynaecare/webapp/internal/integration/entrypoint/controller"
	"github.com/anbu-gynaecare/webapp/internal/integration/entrypoint/middleware"
)

// Controllers groups the HTTP handlers served by the router.
type Controllers struct {
	Health     *controller.HealthController
	Auth       *controller.AuthController
	User       *controller.UserController
	Tracking   *controller.TrackingController
	Onboarding *controller.OnboardingController
	Dashboard  *controller.DashboardController
	Product    *controller.ProductController
	Cart       *controller.CartController
}

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine           *gin.Engine
	controllers      Controllers
	sessions         *middleware.SessionMiddleware
	requireAuth      gin.HandlerFunc
	loginRateLimiter *middleware.RateLimiter
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	controllers Controllers,
	sessions *middleware.SessionMiddleware,
	auth middleware.AuthChecker,
	loginRateLimiter *middleware.RateLimiter,
) *Router {
	return &Router{
		controllers:      controllers,
		sessions:         sessions,
		requireAuth:      middleware.RequireAuth(auth),
		loginRateLimiter: loginRateLimiter,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	switch environment {
	case "production":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	}

	r.engine = gin.New()
	r.engine.Use(gin.Recovery())
	if environment != "test" {
		r.engine.Use(gin.Logger())
	}

	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.controllers.Health.Check)
}

func (r *Router) setupAPIRoutes() {
	c := r.controllers
	limit := r.loginRateLimiter.Middleware()

	api := r.engine.Group("/api")
	api.Use(r.sessions.Handle())

	auth := api.Group("/auth")
	{
		auth.POST("/register", limit, c.Auth.Register)
		auth.POST("/login", limit, c.Auth.Login)
		auth.POST("/logout", c.Auth.Logout)
		auth.GET("/session", c.Auth.Session)
		auth.POST("/password/validate", c.Auth.ValidatePassword)
	}

	// The shop is browsable without an account.
	products := api.Group("/products")
	{
		products.GET("", c.Product.List)
		products.POST("/refresh", r.requireAuth, c.Product.Refresh)
		products.GET("/search", c.Product.SearchResults)
		products.POST("/search", c.Product.Search)
		products.POST("", r.requireAuth, c.Product.Create)
	}

	cart := api.Group("/cart")
	{
		cart.GET("", c.Cart.Get)
		cart.DELETE("", c.Cart.Clear)
		cart.POST("/items", c.Cart.AddItem)
		cart.PATCH("/items/:id", c.Cart.UpdateItem)
		cart.DELETE("/items/:id", c.Cart.RemoveItem)
	}

	private := api.Group("")
	private.Use(r.requireAuth)
	{
		private.GET("/me", c.User.Me)

		private.GET("/onboarding/draft", c.Onboarding.GetDraft)
		private.PUT("/onboarding/draft", c.Onboarding.SaveDraft)
		private.DELETE("/onboarding/draft", c.Onboarding.DiscardDraft)
		private.POST("/onboarding/submit", c.Onboarding.Submit)

		private.GET("/logs", c.Tracking.ListLogs)
		private.GET("/logs/month", c.Tracking.MonthlyLogs)
		private.GET("/logs/pages", c.Tracking.LogPages)
		private.POST("/logs", c.Tracking.CreateLog)
		private.POST("/logs/refresh", c.Tracking.RefreshLogs)

		private.GET("/predictions/latest", c.Tracking.LatestPrediction)
		private.POST("/predictions/refresh", c.Tracking.RefreshPrediction)

		private.GET("/calendar", c.Dashboard.GetCalendar)
		private.GET("/dashboard", c.Dashboard.GetSummary)
	}
}
