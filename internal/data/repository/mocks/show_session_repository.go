package mocks

import (
	"context"

	"planetarium-booking/internal/data/entity"

	"github.com/stretchr/testify/mock"
)

type ShowSessionRepository struct {
	mock.Mock
}

func NewShowSessionRepository(t testingT) *ShowSessionRepository {
	m := &ShowSessionRepository{}
	register(&m.Mock, t)
	return m
}

func (m *ShowSessionRepository) Create(ctx context.Context, session *entity.ShowSession) error {
	return m.Called(ctx, session).Error(0)
}

func (m *ShowSessionRepository) FindByID(ctx context.Context, id int64) (*entity.ShowSession, error) {
	args := m.Called(ctx, id)
	return ret[*entity.ShowSession](args, 0), args.Error(1)
}

func (m *ShowSessionRepository) FindSummaryByID(ctx context.Context, id int64) (*entity.ShowSessionSummary, error) {
	args := m.Called(ctx, id)
	return ret[*entity.ShowSessionSummary](args, 0), args.Error(1)
}

func (m *ShowSessionRepository) FindAll(ctx context.Context, filter entity.ShowSessionFilter, limit, offset int) ([]entity.ShowSessionSummary, error) {
	args := m.Called(ctx, filter, limit, offset)
	return ret[[]entity.ShowSessionSummary](args, 0), args.Error(1)
}

func (m *ShowSessionRepository) CountAll(ctx context.Context, filter entity.ShowSessionFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return ret[int64](args, 0), args.Error(1)
}

func (m *ShowSessionRepository) FindDomes(ctx context.Context, sessionIDs []int64) (map[int64]entity.PlanetariumDome, error) {
	args := m.Called(ctx, sessionIDs)
	return ret[map[int64]entity.PlanetariumDome](args, 0), args.Error(1)
}

func (m *ShowSessionRepository) TakenPlaces(ctx context.Context, sessionID int64) ([]entity.Place, error) {
	args := m.Called(ctx, sessionID)
	return ret[[]entity.Place](args, 0), args.Error(1)
}

func (m *ShowSessionRepository) Update(ctx context.Context, session *entity.ShowSession) error {
	return m.Called(ctx, session).Error(0)
}

func (m *ShowSessionRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}
