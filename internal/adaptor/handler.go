package adaptor

import (
	"planetarium-booking/internal/usecase"
	"planetarium-booking/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	User            *UserHandler
	ShowTheme       *ShowThemeHandler
	PlanetariumDome *PlanetariumDomeHandler
	AstronomyShow   *AstronomyShowHandler
	ShowSession     *ShowSessionHandler
	Reservation     *ReservationHandler
}

func NewHandler(service *usecase.Service, config *utils.Config, log *zap.Logger) *Handler {
	return &Handler{
		User:            NewUserHandler(service.Auth, service.User, log),
		ShowTheme:       NewShowThemeHandler(service.ShowTheme, log),
		PlanetariumDome: NewPlanetariumDomeHandler(service.PlanetariumDome, log),
		AstronomyShow:   NewAstronomyShowHandler(service.AstronomyShow, config.App.MaxUploadMB, log),
		ShowSession:     NewShowSessionHandler(service.ShowSession, config.Pagination, log),
		Reservation:     NewReservationHandler(service.Reservation, config.Pagination, log),
	}
}
