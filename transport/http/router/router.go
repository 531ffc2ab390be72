package router

import (
	"github.com/go-chi/chi/v5"

	"travelbook/internal/handlers/auth"
	"travelbook/internal/handlers/booking"
	"travelbook/internal/handlers/service"
	"travelbook/transport/http/middleware"
)

type DomainHandlers struct {
	Auth    auth.Handler
	Service service.Handler
	Booking booking.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
	AuthMiddleware middleware.Auth
}

// SetupRoutes mounts the API under /api. The catalog is public, bookings and
// the profile require a verified token.
func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/api", func(routerGroup chi.Router) {
		r.DomainHandlers.Service.Router(routerGroup)

		routerGroup.Group(func(authed chi.Router) {
			authed.Use(r.AuthMiddleware.Auth)

			r.DomainHandlers.Auth.Router(authed)
			r.DomainHandlers.Booking.Router(authed)
		})
	})
}

func New(domainHandlers DomainHandlers, authMiddleware middleware.Auth) Router {
	return Router{
		DomainHandlers: domainHandlers,
		AuthMiddleware: authMiddleware,
	}
}
