package usecase

import (
	"context"
	"errors"
	"fmt"

	"planetarium-booking/internal/data/entity"
	"planetarium-booking/internal/data/repository"
	"planetarium-booking/internal/dto/request"
	"planetarium-booking/internal/dto/response"
	"planetarium-booking/pkg/utils"

	"go.uber.org/zap"
)

type PlanetariumDomeService interface {
	GetPlanetariumDomes(ctx context.Context) ([]response.PlanetariumDomeResponse, error)
	GetPlanetariumDomeByID(ctx context.Context, id int64) (*response.PlanetariumDomeResponse, error)

	CreatePlanetariumDome(ctx context.Context, req *request.PlanetariumDomeRequest) (*response.PlanetariumDomeResponse, error)
	UpdatePlanetariumDome(ctx context.Context, id int64, req *request.PlanetariumDomeRequest) (*response.PlanetariumDomeResponse, error)
	PatchPlanetariumDome(ctx context.Context, id int64, req *request.PlanetariumDomeUpdateRequest) (*response.PlanetariumDomeResponse, error)
	DeletePlanetariumDome(ctx context.Context, id int64) error
}

type planetariumDomeService struct {
	domeRepo repository.PlanetariumDomeRepository
	log      *zap.Logger
}

func NewPlanetariumDomeService(domeRepo repository.PlanetariumDomeRepository, log *zap.Logger) PlanetariumDomeService {
	return &planetariumDomeService{
		domeRepo: domeRepo,
		log:      log.With(zap.String("service", "planetarium_dome")),
	}
}

func (s *planetariumDomeService) GetPlanetariumDomes(ctx context.Context) ([]response.PlanetariumDomeResponse, error) {
	domes, err := s.domeRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("get planetarium domes: %w", err)
	}

	result := make([]response.PlanetariumDomeResponse, len(domes))
	for i, dome := range domes {
		result[i] = response.PlanetariumDomeToResponse(dome)
	}
	return result, nil
}

func (s *planetariumDomeService) GetPlanetariumDomeByID(ctx context.Context, id int64) (*response.PlanetariumDomeResponse, error) {
	dome, err := s.findDome(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := response.PlanetariumDomeToResponse(*dome)
	return &resp, nil
}

func (s *planetariumDomeService) CreatePlanetariumDome(ctx context.Context, req *request.PlanetariumDomeRequest) (*response.PlanetariumDomeResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, newValidationError("invalid planetarium dome", errs)
	}

	dome := &entity.PlanetariumDome{
		Name:       req.Name,
		Rows:       req.Rows,
		SeatsInRow: req.SeatsInRow,
	}
	if err := s.domeRepo.Create(ctx, dome); err != nil {
		return nil, fmt.Errorf("create planetarium dome: %w", err)
	}

	s.log.Info("Planetarium dome created",
		zap.Int64("dome_id", dome.ID),
		zap.Int("capacity", dome.Capacity()),
	)

	resp := response.PlanetariumDomeToResponse(*dome)
	return &resp, nil
}

func (s *planetariumDomeService) UpdatePlanetariumDome(ctx context.Context, id int64, req *request.PlanetariumDomeRequest) (*response.PlanetariumDomeResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, newValidationError("invalid planetarium dome", errs)
	}

	dome, err := s.findDome(ctx, id)
	if err != nil {
		return nil, err
	}

	dome.Name = req.Name
	dome.Rows = req.Rows
	dome.SeatsInRow = req.SeatsInRow

	return s.save(ctx, dome)
}

func (s *planetariumDomeService) PatchPlanetariumDome(ctx context.Context, id int64, req *request.PlanetariumDomeUpdateRequest) (*response.PlanetariumDomeResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, newValidationError("invalid planetarium dome", errs)
	}

	dome, err := s.findDome(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		dome.Name = *req.Name
	}
	if req.Rows != nil {
		dome.Rows = *req.Rows
	}
	if req.SeatsInRow != nil {
		dome.SeatsInRow = *req.SeatsInRow
	}

	return s.save(ctx, dome)
}

// save refuses to shrink the grid below seats that were already sold.
func (s *planetariumDomeService) save(ctx context.Context, dome *entity.PlanetariumDome) (*response.PlanetariumDomeResponse, error) {
	err := s.domeRepo.Update(ctx, dome)
	if errors.Is(err, repository.ErrOutsideGrid) {
		s.log.Warn("Dome resize rejected", zap.Int64("dome_id", dome.ID), zap.Error(err))
		return nil, conflict(fmt.Sprintf("sold tickets lie outside a %dx%d grid", dome.Rows, dome.SeatsInRow))
	}
	if err != nil {
		return nil, fromRepository(err, "planetarium dome", dome.ID)
	}

	resp := response.PlanetariumDomeToResponse(*dome)
	return &resp, nil
}

func (s *planetariumDomeService) DeletePlanetariumDome(ctx context.Context, id int64) error {
	if err := s.domeRepo.Delete(ctx, id); err != nil {
		return fromRepository(err, "planetarium dome", id)
	}
	return nil
}

func (s *planetariumDomeService) findDome(ctx context.Context, id int64) (*entity.PlanetariumDome, error) {
	dome, err := s.domeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get planetarium dome: %w", err)
	}
	if dome == nil {
		return nil, notFound("planetarium dome", id)
	}
	return dome, nil
}
