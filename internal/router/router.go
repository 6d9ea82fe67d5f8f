// Package router wires HTTP routes to their handlers and middleware.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/asmamiga/tourism-website-sub001/internal/config"
	"github.com/asmamiga/tourism-website-sub001/internal/handler"
	"github.com/asmamiga/tourism-website-sub001/internal/middleware"
)

// Deps carries everything the router needs. Redis may be nil; the
// rate-limit and cache middleware degrade to pass-throughs without it.
type Deps struct {
	Cfg          config.Config
	RateLimit    config.RateLimitConfig
	Cache        config.CacheConfig
	Redis        *redis.Client
	Auth         *handler.AuthHandler
	Availability *handler.AvailabilityHandler
	Reservations *handler.ReservationHandler
	Resources    *handler.ResourceHandler
}

// Register mounts all routes on the Echo instance.
//
// Public:     health check, register/login, availability probe.
// Customer+:  reservation creation and lifecycle (any authenticated
//             role; per-reservation permissions live in the ledger).
// Owner:      resource and capacity-unit management.
func Register(e *echo.Echo, d Deps) {
	e.GET("/healthz", handler.Health)

	limit := middleware.RateLimit(d.RateLimit, d.Redis)

	auth := e.Group("/v1/auth", limit)
	auth.POST("/register", d.Auth.Register)
	auth.POST("/login", d.Auth.Login)

	// Availability is public so guests can browse before registering.
	e.GET("/v1/resources/:id/availability", d.Availability.Check,
		limit, middleware.CacheAvailability(d.Cache, d.Redis))

	// Everything below requires a valid access token.
	v1 := e.Group("/v1", middleware.JWTAuth(d.Cfg.JWTSecret), limit)
	v1.GET("/me", d.Auth.Me)

	v1.POST("/resources/:id/reservations", d.Reservations.Create)
	v1.GET("/my-reservations", d.Reservations.ListMine)
	v1.GET("/reservations/:id", d.Reservations.Get)
	v1.POST("/reservations/:id/status", d.Reservations.UpdateStatus)
	v1.POST("/reservations/:id/payment", d.Reservations.UpdatePayment)
	v1.DELETE("/reservations/:id", d.Reservations.Cancel)

	owner := v1.Group("", middleware.RequireRole("OWNER", "ADMIN"))
	owner.POST("/resources", d.Resources.Create)
	owner.GET("/resources", d.Resources.ListMine)
	owner.PATCH("/resources/:id/active", d.Resources.SetActive)
	owner.POST("/resources/:id/units", d.Resources.CreateUnits)
	owner.GET("/resources/:id/units", d.Resources.ListUnits)
	owner.GET("/resources/:id/reservations", d.Resources.ListReservations)
}
