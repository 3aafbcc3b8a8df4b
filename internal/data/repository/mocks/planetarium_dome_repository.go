package mocks

import (
	"context"

	"planetarium-booking/internal/data/entity"

	"github.com/stretchr/testify/mock"
)

type PlanetariumDomeRepository struct {
	mock.Mock
}

func NewPlanetariumDomeRepository(t testingT) *PlanetariumDomeRepository {
	m := &PlanetariumDomeRepository{}
	register(&m.Mock, t)
	return m
}

func (m *PlanetariumDomeRepository) Create(ctx context.Context, dome *entity.PlanetariumDome) error {
	return m.Called(ctx, dome).Error(0)
}

func (m *PlanetariumDomeRepository) FindByID(ctx context.Context, id int64) (*entity.PlanetariumDome, error) {
	args := m.Called(ctx, id)
	return ret[*entity.PlanetariumDome](args, 0), args.Error(1)
}

func (m *PlanetariumDomeRepository) FindAll(ctx context.Context) ([]entity.PlanetariumDome, error) {
	args := m.Called(ctx)
	return ret[[]entity.PlanetariumDome](args, 0), args.Error(1)
}

func (m *PlanetariumDomeRepository) Update(ctx context.Context, dome *entity.PlanetariumDome) error {
	return m.Called(ctx, dome).Error(0)
}

func (m *PlanetariumDomeRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}
