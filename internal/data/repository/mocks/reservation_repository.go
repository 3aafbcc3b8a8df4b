package mocks

import (
	"context"

	"planetarium-booking/internal/data/entity"

	"github.com/stretchr/testify/mock"
)

type ReservationRepository struct {
	mock.Mock
}

func NewReservationRepository(t testingT) *ReservationRepository {
	m := &ReservationRepository{}
	register(&m.Mock, t)
	return m
}

func (m *ReservationRepository) CreateWithTickets(ctx context.Context, reservation *entity.Reservation) error {
	return m.Called(ctx, reservation).Error(0)
}

func (m *ReservationRepository) FindByIDForUser(ctx context.Context, id, userID int64) (*entity.Reservation, error) {
	args := m.Called(ctx, id, userID)
	return ret[*entity.Reservation](args, 0), args.Error(1)
}

func (m *ReservationRepository) FindAllByUser(ctx context.Context, userID int64, limit, offset int) ([]entity.Reservation, error) {
	args := m.Called(ctx, userID, limit, offset)
	return ret[[]entity.Reservation](args, 0), args.Error(1)
}

func (m *ReservationRepository) CountByUser(ctx context.Context, userID int64) (int64, error) {
	args := m.Called(ctx, userID)
	return ret[int64](args, 0), args.Error(1)
}

func (m *ReservationRepository) DeleteForUser(ctx context.Context, id, userID int64) error {
	return m.Called(ctx, id, userID).Error(0)
}
