package usecase

import (
	"context"
	"fmt"

	"planetarium-booking/internal/data/entity"
	"planetarium-booking/internal/data/repository"
	"planetarium-booking/internal/dto/request"
	"planetarium-booking/internal/dto/response"
	"planetarium-booking/pkg/utils"

	"go.uber.org/zap"
)

type ShowThemeService interface {
	GetShowThemes(ctx context.Context) ([]response.ShowThemeResponse, error)
	GetShowThemeByID(ctx context.Context, id int64) (*response.ShowThemeResponse, error)

	CreateShowTheme(ctx context.Context, req *request.ShowThemeRequest) (*response.ShowThemeResponse, error)
	UpdateShowTheme(ctx context.Context, id int64, req *request.ShowThemeRequest) (*response.ShowThemeResponse, error)
	PatchShowTheme(ctx context.Context, id int64, req *request.ShowThemeUpdateRequest) (*response.ShowThemeResponse, error)
	DeleteShowTheme(ctx context.Context, id int64) error
}

type showThemeService struct {
	themeRepo repository.ShowThemeRepository
	log       *zap.Logger
}

func NewShowThemeService(themeRepo repository.ShowThemeRepository, log *zap.Logger) ShowThemeService {
	return &showThemeService{
		themeRepo: themeRepo,
		log:       log.With(zap.String("service", "show_theme")),
	}
}

func (s *showThemeService) GetShowThemes(ctx context.Context) ([]response.ShowThemeResponse, error) {
	themes, err := s.themeRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("get show themes: %w", err)
	}

	result := make([]response.ShowThemeResponse, len(themes))
	for i, theme := range themes {
		result[i] = response.ShowThemeToResponse(theme)
	}
	return result, nil
}

func (s *showThemeService) GetShowThemeByID(ctx context.Context, id int64) (*response.ShowThemeResponse, error) {
	theme, err := s.themeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get show theme: %w", err)
	}
	if theme == nil {
		return nil, notFound("show theme", id)
	}

	resp := response.ShowThemeToResponse(*theme)
	return &resp, nil
}

func (s *showThemeService) CreateShowTheme(ctx context.Context, req *request.ShowThemeRequest) (*response.ShowThemeResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, newValidationError("invalid show theme", errs)
	}

	theme := &entity.ShowTheme{Name: req.Name}
	if err := s.themeRepo.Create(ctx, theme); err != nil {
		return nil, s.writeError(err, 0)
	}

	s.log.Info("Show theme created", zap.Int64("show_theme_id", theme.ID), zap.String("name", theme.Name))

	resp := response.ShowThemeToResponse(*theme)
	return &resp, nil
}

func (s *showThemeService) UpdateShowTheme(ctx context.Context, id int64, req *request.ShowThemeRequest) (*response.ShowThemeResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, newValidationError("invalid show theme", errs)
	}

	theme := &entity.ShowTheme{Base: entity.Base{ID: id}, Name: req.Name}
	if err := s.themeRepo.Update(ctx, theme); err != nil {
		return nil, s.writeError(err, id)
	}

	resp := response.ShowThemeToResponse(*theme)
	return &resp, nil
}

func (s *showThemeService) PatchShowTheme(ctx context.Context, id int64, req *request.ShowThemeUpdateRequest) (*response.ShowThemeResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, newValidationError("invalid show theme", errs)
	}

	theme, err := s.themeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get show theme: %w", err)
	}
	if theme == nil {
		return nil, notFound("show theme", id)
	}

	if req.Name != nil {
		theme.Name = *req.Name
	}

	if err := s.themeRepo.Update(ctx, theme); err != nil {
		return nil, s.writeError(err, id)
	}

	resp := response.ShowThemeToResponse(*theme)
	return &resp, nil
}

func (s *showThemeService) DeleteShowTheme(ctx context.Context, id int64) error {
	if err := s.themeRepo.Delete(ctx, id); err != nil {
		return fromRepository(err, "show theme", id)
	}
	return nil
}

func (s *showThemeService) writeError(err error, id int64) error {
	if errorsIsDuplicate(err) {
		return newValidationError("invalid show theme", map[string]string{"name": "Show theme with this name already exists"})
	}
	return fromRepository(err, "show theme", id)
}
