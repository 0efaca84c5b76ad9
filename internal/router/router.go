// Package router defines how HTTP routes are registered for the API.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/ticketline/ticket-shop/internal/handler"
)

// Handlers bundles everything the router wires up.
type Handlers struct {
	Ticket  *handler.TicketHandler
	Booking *handler.BookingHandler
	Event   *handler.EventHandler
	User    *handler.UserHandler
}

// RegisterRoutes registers all API routes on the provided Echo instance.
// cache is applied to the read-only catalog groups, limit to the booking
// endpoint; either may be nil to skip.
func RegisterRoutes(e *echo.Echo, h Handlers, cache, limit echo.MiddlewareFunc) {
	// Liveness probe for load balancers and monitoring.
	e.GET("/healthz", handler.Health)

	api := e.Group("/api/v1")

	tickets := api.Group("/ticket")
	if cache != nil {
		tickets.Use(cache)
	}
	tickets.GET("", h.Ticket.List)
	tickets.GET("/:id", h.Ticket.GetByID)

	events := api.Group("/event")
	if cache != nil {
		events.Use(cache)
	}
	events.GET("", h.Event.List)
	events.GET("/:id", h.Event.GetByID)

	users := api.Group("/user")
	users.GET("", h.User.List)
	users.GET("/:id", h.User.GetByID)

	// The purchase endpoint is never cached; inventory answers must come
	// from the database.
	booking := api.Group("/user/ticket")
	if limit != nil {
		booking.Use(limit)
	}
	booking.POST("", h.Booking.Create)
}
