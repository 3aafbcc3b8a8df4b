package mocks

import (
	"context"

	"planetarium-booking/internal/data/entity"

	"github.com/stretchr/testify/mock"
)

type ShowThemeRepository struct {
	mock.Mock
}

func NewShowThemeRepository(t testingT) *ShowThemeRepository {
	m := &ShowThemeRepository{}
	register(&m.Mock, t)
	return m
}

func (m *ShowThemeRepository) Create(ctx context.Context, theme *entity.ShowTheme) error {
	return m.Called(ctx, theme).Error(0)
}

func (m *ShowThemeRepository) FindByID(ctx context.Context, id int64) (*entity.ShowTheme, error) {
	args := m.Called(ctx, id)
	return ret[*entity.ShowTheme](args, 0), args.Error(1)
}

func (m *ShowThemeRepository) FindByIDs(ctx context.Context, ids []int64) ([]entity.ShowTheme, error) {
	args := m.Called(ctx, ids)
	return ret[[]entity.ShowTheme](args, 0), args.Error(1)
}

func (m *ShowThemeRepository) FindAll(ctx context.Context) ([]entity.ShowTheme, error) {
	args := m.Called(ctx)
	return ret[[]entity.ShowTheme](args, 0), args.Error(1)
}

func (m *ShowThemeRepository) Update(ctx context.Context, theme *entity.ShowTheme) error {
	return m.Called(ctx, theme).Error(0)
}

func (m *ShowThemeRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}
