package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // Echo web framework for routing
	"github.com/redis/go-redis/v9"

	"github.com/impressmydate/backend/internal/config"
	"github.com/impressmydate/backend/internal/handler"
	"github.com/impressmydate/backend/internal/middleware"
)

// Handlers bundles every handler the router mounts.  Constructed once in
// main and passed here so route registration stays in one place.
type Handlers struct {
	Auth      *handler.AuthHandler
	Plan      *handler.PlanHandler
	Itinerary *handler.ItineraryHandler
	Profile   *handler.ProfileHandler
}

// RegisterRoutes registers routes that do not require authentication.
// Currently only the health check; load balancers probe it.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAPI mounts the whole API surface.  Unauthenticated operations
// live under /v1/auth and /v1/shared; everything else sits behind the JWT
// middleware under /v1.  When a Redis client is available the protected
// group also gets a token-bucket rate limit, and the public share view gets
// a response cache.
func RegisterAPI(e *echo.Echo, h Handlers, jwtSecret string, rdb *redis.Client) {
	// Token issuance and exchange. No session needed for these.
	g := e.Group("/v1/auth")
	g.POST("/register", h.Auth.Register)
	g.POST("/login", h.Auth.Login)
	g.POST("/refresh", h.Auth.Refresh)
	g.POST("/refresh-access", h.Auth.RefreshAccess)
	g.POST("/logout", h.Auth.Logout)

	// Public share view. The share token in the URL is the capability, so
	// no JWT applies. Cached when Redis is up: shared itineraries are
	// immutable snapshots, so stale reads are harmless.
	if rdb != nil {
		e.GET("/v1/shared/:token", h.Itinerary.Shared,
			middleware.NewRedisCache(config.LoadCacheConfig(), rdb))
	} else {
		e.GET("/v1/shared/:token", h.Itinerary.Shared)
	}

	// Everything below requires a valid access token.
	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	if rdb != nil {
		auth.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	}

	auth.GET("/me", h.Auth.Me)

	// Planning session flow: start, pick restaurant, pick activities,
	// confirm into an itinerary or reset.
	auth.POST("/plan", h.Plan.Start)
	auth.GET("/plan/:id", h.Plan.GetState)
	auth.POST("/plan/:id/restaurant", h.Plan.SelectRestaurant)
	auth.POST("/plan/:id/activities", h.Plan.SelectActivities)
	auth.POST("/plan/:id/confirm", h.Plan.Confirm)
	auth.DELETE("/plan/:id", h.Plan.Reset)

	// Saved itineraries.
	auth.GET("/itineraries", h.Itinerary.List)
	auth.GET("/itineraries/:id", h.Itinerary.Get)
	auth.POST("/itineraries/:id/feedback", h.Itinerary.Feedback)

	// Preferences.
	auth.GET("/profile", h.Profile.Get)
	auth.PUT("/profile", h.Profile.Put)
}
