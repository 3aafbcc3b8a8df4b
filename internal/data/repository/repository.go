package repository

import (
	"planetarium-booking/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User            UserRepository
	ShowTheme       ShowThemeRepository
	PlanetariumDome PlanetariumDomeRepository
	AstronomyShow   AstronomyShowRepository
	ShowSession     ShowSessionRepository
	Reservation     ReservationRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:            NewUserRepository(db, log),
		ShowTheme:       NewShowThemeRepository(db, log),
		PlanetariumDome: NewPlanetariumDomeRepository(db, log),
		AstronomyShow:   NewAstronomyShowRepository(db, log),
		ShowSession:     NewShowSessionRepository(db, log),
		Reservation:     NewReservationRepository(db, log),
	}
}
