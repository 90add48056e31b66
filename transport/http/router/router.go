package router

import (
	"staybook/internal/handlers/auth"
	"staybook/internal/handlers/comment"
	"staybook/internal/handlers/favorite"
	"staybook/internal/handlers/listing"
	"staybook/internal/handlers/metric"
	"staybook/internal/handlers/reservation"
	"staybook/internal/handlers/user"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Auth        auth.Handler
	User        user.Handler
	Listing     listing.Handler
	Reservation reservation.Handler
	Comment     comment.Handler
	Favorite    favorite.Handler
	Metric      metric.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

// SetupRoutes mounts every domain under /v1. Handlers sharing a prefix
// register on the same sub-router so chi sees a single mount per path.
func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.User.Router(routerGroup)
		r.DomainHandlers.Favorite.Router(routerGroup)
		r.DomainHandlers.Comment.Router(routerGroup)
		r.DomainHandlers.Metric.Router(routerGroup)

		routerGroup.Route("/listings", func(listings chi.Router) {
			r.DomainHandlers.Listing.Router(listings)
			r.DomainHandlers.Comment.ListingRouter(listings)
			r.DomainHandlers.Reservation.ListingRouter(listings)
			r.DomainHandlers.Metric.ListingRouter(listings)
		})

		routerGroup.Route("/reservations", func(reservations chi.Router) {
			r.DomainHandlers.Reservation.Router(reservations)
			r.DomainHandlers.Comment.ReservationRouter(reservations)
		})
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
