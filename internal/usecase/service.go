package usecase

import (
	"planetarium-booking/internal/data/repository"
	"planetarium-booking/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth            AuthService
	User            UserService
	ShowTheme       ShowThemeService
	PlanetariumDome PlanetariumDomeService
	AstronomyShow   AstronomyShowService
	ShowSession     ShowSessionService
	Reservation     ReservationService
}

func NewService(repo *repository.Repository, images ImageStore, config *utils.Config, log *zap.Logger) *Service {
	tokens := utils.NewTokenManager(config.JWT)

	return &Service{
		Auth:            NewAuthService(repo.User, tokens, config, log),
		User:            NewUserService(repo.User, log),
		ShowTheme:       NewShowThemeService(repo.ShowTheme, log),
		PlanetariumDome: NewPlanetariumDomeService(repo.PlanetariumDome, log),
		AstronomyShow:   NewAstronomyShowService(repo, images, config.App.MediaURL, log),
		ShowSession:     NewShowSessionService(repo, config.App.MediaURL, log),
		Reservation:     NewReservationService(repo, log),
	}
}
