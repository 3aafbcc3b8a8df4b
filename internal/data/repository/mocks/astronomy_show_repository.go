package mocks

import (
	"context"

	"planetarium-booking/internal/data/entity"

	"github.com/stretchr/testify/mock"
)

type AstronomyShowRepository struct {
	mock.Mock
}

func NewAstronomyShowRepository(t testingT) *AstronomyShowRepository {
	m := &AstronomyShowRepository{}
	register(&m.Mock, t)
	return m
}

func (m *AstronomyShowRepository) Create(ctx context.Context, show *entity.AstronomyShow) error {
	return m.Called(ctx, show).Error(0)
}

func (m *AstronomyShowRepository) FindByID(ctx context.Context, id int64) (*entity.AstronomyShow, error) {
	args := m.Called(ctx, id)
	return ret[*entity.AstronomyShow](args, 0), args.Error(1)
}

func (m *AstronomyShowRepository) FindAll(ctx context.Context, filter entity.AstronomyShowFilter) ([]entity.AstronomyShow, error) {
	args := m.Called(ctx, filter)
	return ret[[]entity.AstronomyShow](args, 0), args.Error(1)
}

func (m *AstronomyShowRepository) Update(ctx context.Context, show *entity.AstronomyShow) error {
	return m.Called(ctx, show).Error(0)
}

func (m *AstronomyShowRepository) UpdateImage(ctx context.Context, id int64, image string) error {
	return m.Called(ctx, id, image).Error(0)
}

func (m *AstronomyShowRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}
