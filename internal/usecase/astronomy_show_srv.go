package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"planetarium-booking/internal/data/entity"
	"planetarium-booking/internal/data/repository"
	"planetarium-booking/internal/dto/request"
	"planetarium-booking/internal/dto/response"
	"planetarium-booking/pkg/storage"
	"planetarium-booking/pkg/utils"

	"go.uber.org/zap"
)

const astronomyShowImageDir = "uploads/astronomy_shows"

// ImageStore persists uploaded images and returns their path relative to the media root.
type ImageStore interface {
	Save(src io.Reader, dir, name string) (string, error)
	Remove(rel string) error
}

type AstronomyShowService interface {
	GetAstronomyShows(ctx context.Context, filter entity.AstronomyShowFilter) ([]response.AstronomyShowResponse, error)
	GetAstronomyShowByID(ctx context.Context, id int64) (*response.AstronomyShowDetailResponse, error)

	CreateAstronomyShow(ctx context.Context, req *request.AstronomyShowRequest) (*response.AstronomyShowDetailResponse, error)
	UpdateAstronomyShow(ctx context.Context, id int64, req *request.AstronomyShowRequest) (*response.AstronomyShowDetailResponse, error)
	PatchAstronomyShow(ctx context.Context, id int64, req *request.AstronomyShowUpdateRequest) (*response.AstronomyShowDetailResponse, error)
	DeleteAstronomyShow(ctx context.Context, id int64) error
	UploadImage(ctx context.Context, id int64, src io.Reader) (*response.AstronomyShowImageResponse, error)
}

type astronomyShowService struct {
	repo     *repository.Repository
	images   ImageStore
	mediaURL string
	log      *zap.Logger
}

func NewAstronomyShowService(repo *repository.Repository, images ImageStore, mediaURL string, log *zap.Logger) AstronomyShowService {
	return &astronomyShowService{
		repo:     repo,
		images:   images,
		mediaURL: mediaURL,
		log:      log.With(zap.String("service", "astronomy_show")),
	}
}

func (s *astronomyShowService) GetAstronomyShows(ctx context.Context, filter entity.AstronomyShowFilter) ([]response.AstronomyShowResponse, error) {
	shows, err := s.repo.AstronomyShow.FindAll(ctx, filter)
	if err != nil {
		s.log.Error("Failed to get astronomy shows",
			zap.Error(err),
			zap.String("title", filter.Title),
			zap.Int64s("show_themes", filter.ThemeIDs),
		)
		return nil, fmt.Errorf("get astronomy shows: %w", err)
	}

	result := make([]response.AstronomyShowResponse, len(shows))
	for i, show := range shows {
		result[i] = response.AstronomyShowToResponse(show, s.mediaURL)
	}
	return result, nil
}

func (s *astronomyShowService) GetAstronomyShowByID(ctx context.Context, id int64) (*response.AstronomyShowDetailResponse, error) {
	show, err := s.findShow(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := response.AstronomyShowToDetailResponse(*show, s.mediaURL)
	return &resp, nil
}

func (s *astronomyShowService) CreateAstronomyShow(ctx context.Context, req *request.AstronomyShowRequest) (*response.AstronomyShowDetailResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, newValidationError("invalid astronomy show", errs)
	}

	themes, err := s.resolveThemes(ctx, req.ShowThemes)
	if err != nil {
		return nil, err
	}

	show := &entity.AstronomyShow{
		Title:       req.Title,
		Description: req.Description,
		Themes:      themes,
	}
	if err := s.repo.AstronomyShow.Create(ctx, show); err != nil {
		return nil, s.writeError(err, 0)
	}

	s.log.Info("Astronomy show created", zap.Int64("astronomy_show_id", show.ID), zap.String("title", show.Title))

	resp := response.AstronomyShowToDetailResponse(*show, s.mediaURL)
	return &resp, nil
}

func (s *astronomyShowService) UpdateAstronomyShow(ctx context.Context, id int64, req *request.AstronomyShowRequest) (*response.AstronomyShowDetailResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, newValidationError("invalid astronomy show", errs)
	}

	show, err := s.findShow(ctx, id)
	if err != nil {
		return nil, err
	}

	themes, err := s.resolveThemes(ctx, req.ShowThemes)
	if err != nil {
		return nil, err
	}

	show.Title = req.Title
	show.Description = req.Description
	show.Themes = themes

	return s.save(ctx, show)
}

func (s *astronomyShowService) PatchAstronomyShow(ctx context.Context, id int64, req *request.AstronomyShowUpdateRequest) (*response.AstronomyShowDetailResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, newValidationError("invalid astronomy show", errs)
	}

	show, err := s.findShow(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		show.Title = *req.Title
	}
	if req.Description != nil {
		show.Description = *req.Description
	}
	if req.ShowThemes != nil {
		themes, err := s.resolveThemes(ctx, *req.ShowThemes)
		if err != nil {
			return nil, err
		}
		show.Themes = themes
	}

	return s.save(ctx, show)
}

func (s *astronomyShowService) save(ctx context.Context, show *entity.AstronomyShow) (*response.AstronomyShowDetailResponse, error) {
	if err := s.repo.AstronomyShow.Update(ctx, show); err != nil {
		return nil, s.writeError(err, show.ID)
	}

	resp := response.AstronomyShowToDetailResponse(*show, s.mediaURL)
	return &resp, nil
}

func (s *astronomyShowService) DeleteAstronomyShow(ctx context.Context, id int64) error {
	show, err := s.findShow(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.AstronomyShow.Delete(ctx, id); err != nil {
		return fromRepository(err, "astronomy show", id)
	}

	if show.Image != nil {
		if err := s.images.Remove(*show.Image); err != nil {
			s.log.Warn("Failed to remove show image", zap.Error(err), zap.Int64("astronomy_show_id", id))
		}
	}
	return nil
}

func (s *astronomyShowService) UploadImage(ctx context.Context, id int64, src io.Reader) (*response.AstronomyShowImageResponse, error) {
	show, err := s.findShow(ctx, id)
	if err != nil {
		return nil, err
	}

	rel, err := s.images.Save(src, astronomyShowImageDir, show.Title)
	if errors.Is(err, storage.ErrInvalidImage) {
		return nil, newValidationError("invalid image", map[string]string{
			"image": "Upload a valid image. The file you uploaded was either not an image or a corrupted image.",
		})
	}
	if err != nil {
		s.log.Error("Failed to store show image", zap.Error(err), zap.Int64("astronomy_show_id", id))
		return nil, fmt.Errorf("store image: %w", err)
	}

	if err := s.repo.AstronomyShow.UpdateImage(ctx, id, rel); err != nil {
		if rmErr := s.images.Remove(rel); rmErr != nil {
			s.log.Warn("Failed to remove orphaned show image",
				zap.Error(rmErr),
				zap.Int64("astronomy_show_id", id),
				zap.String("image", rel),
			)
		}
		return nil, fromRepository(err, "astronomy show", id)
	}

	if show.Image != nil && *show.Image != rel {
		if err := s.images.Remove(*show.Image); err != nil {
			s.log.Warn("Failed to remove previous show image", zap.Error(err), zap.Int64("astronomy_show_id", id))
		}
	}

	s.log.Info("Astronomy show image uploaded", zap.Int64("astronomy_show_id", id), zap.String("image", rel))

	return &response.AstronomyShowImageResponse{
		ID:    id,
		Image: response.ImageURL(s.mediaURL, &rel),
	}, nil
}

func (s *astronomyShowService) findShow(ctx context.Context, id int64) (*entity.AstronomyShow, error) {
	show, err := s.repo.AstronomyShow.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get astronomy show: %w", err)
	}
	if show == nil {
		return nil, notFound("astronomy show", id)
	}
	return show, nil
}

// resolveThemes loads the referenced themes; any unknown id is a validation error.
func (s *astronomyShowService) resolveThemes(ctx context.Context, ids []int64) ([]entity.ShowTheme, error) {
	if len(ids) == 0 {
		return []entity.ShowTheme{}, nil
	}

	themes, err := s.repo.ShowTheme.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load show themes: %w", err)
	}

	if len(themes) != len(ids) {
		found := make(map[int64]bool, len(themes))
		for _, theme := range themes {
			found[theme.ID] = true
		}
		missing := []string{}
		for _, id := range ids {
			if !found[id] {
				missing = append(missing, strconv.FormatInt(id, 10))
			}
		}
		sort.Strings(missing)
		return nil, newValidationError("invalid astronomy show", map[string]string{
			"show_themes": "Unknown show theme ids: " + strings.Join(missing, ", "),
		})
	}

	return themes, nil
}

func (s *astronomyShowService) writeError(err error, id int64) error {
	if errorsIsInvalidReference(err) {
		return newValidationError("invalid astronomy show", map[string]string{
			"show_themes": "One of the show themes no longer exists",
		})
	}
	return fromRepository(err, "astronomy show", id)
}
