package wire

import (
	"planetarium-booking/internal/adaptor"
	"planetarium-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// wirePlanetarium configures the catalog (read for everyone, write for staff)
// and the per-user reservation routes. A nil cache passes requests through.
func wirePlanetarium(
	r chi.Router,
	handler *adaptor.Handler,
	auth middleware.Authenticator,
	cache *middleware.CatalogCache,
	log *zap.Logger,
) {
	r.Route("/api/planetarium", func(r chi.Router) {
		r.Use(middleware.Auth(auth, log))

		// ==================== CATALOG ROUTES ====================
		r.Group(func(r chi.Router) {
			r.Use(middleware.AdminOrReadOnly(log))
			r.Use(cache.Middleware)

			r.Route("/show_themes", func(r chi.Router) {
				h := handler.ShowTheme
				r.Get("/", h.GetShowThemes)
				r.Post("/", h.CreateShowTheme)
				r.Get("/{id}", h.GetShowThemeByID)
				r.Put("/{id}", h.UpdateShowTheme)
				r.Patch("/{id}", h.PatchShowTheme)
				r.Delete("/{id}", h.DeleteShowTheme)
			})

			r.Route("/planetarium_domes", func(r chi.Router) {
				h := handler.PlanetariumDome
				r.Get("/", h.GetPlanetariumDomes)
				r.Post("/", h.CreatePlanetariumDome)
				r.Get("/{id}", h.GetPlanetariumDomeByID)
				r.Put("/{id}", h.UpdatePlanetariumDome)
				r.Patch("/{id}", h.PatchPlanetariumDome)
				r.Delete("/{id}", h.DeletePlanetariumDome)
			})

			r.Route("/astronomy_show", func(r chi.Router) {
				h := handler.AstronomyShow
				r.Get("/", h.GetAstronomyShows)
				r.Post("/", h.CreateAstronomyShow)
				r.Get("/{id}", h.GetAstronomyShowByID)
				r.Put("/{id}", h.UpdateAstronomyShow)
				r.Patch("/{id}", h.PatchAstronomyShow)
				r.Delete("/{id}", h.DeleteAstronomyShow)
				r.With(middleware.Admin(log)).Post("/{id}/upload-image", h.UploadImage)
			})

			r.Route("/show_sessions", func(r chi.Router) {
				h := handler.ShowSession
				r.Get("/", h.GetShowSessions)
				r.Post("/", h.CreateShowSession)
				r.Get("/{id}", h.GetShowSessionByID)
				r.Put("/{id}", h.UpdateShowSession)
				r.Patch("/{id}", h.PatchShowSession)
				r.Delete("/{id}", h.DeleteShowSession)
			})
		})

		// ==================== RESERVATION ROUTES (own only) ====================
		r.Route("/reservations", func(r chi.Router) {
			h := handler.Reservation
			r.Use(cache.InvalidateOnWrite)
			r.Get("/", h.GetReservations)
			r.Post("/", h.CreateReservation)
			r.Get("/{id}", h.GetReservationByID)
			r.Delete("/{id}", h.DeleteReservation)
		})
	})
}
