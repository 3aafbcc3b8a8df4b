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

type ShowSessionService interface {
	GetShowSessions(ctx context.Context, filter entity.ShowSessionFilter, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ShowSessionListResponse], error)
	GetShowSessionByID(ctx context.Context, id int64) (*response.ShowSessionDetailResponse, error)

	CreateShowSession(ctx context.Context, req *request.ShowSessionRequest) (*response.ShowSessionResponse, error)
	UpdateShowSession(ctx context.Context, id int64, req *request.ShowSessionRequest) (*response.ShowSessionResponse, error)
	PatchShowSession(ctx context.Context, id int64, req *request.ShowSessionUpdateRequest) (*response.ShowSessionResponse, error)
	DeleteShowSession(ctx context.Context, id int64) error
}

type showSessionService struct {
	repo     *repository.Repository
	mediaURL string
	log      *zap.Logger
}

func NewShowSessionService(repo *repository.Repository, mediaURL string, log *zap.Logger) ShowSessionService {
	return &showSessionService{
		repo:     repo,
		mediaURL: mediaURL,
		log:      log.With(zap.String("service", "show_session")),
	}
}

func (s *showSessionService) GetShowSessions(ctx context.Context, filter entity.ShowSessionFilter, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ShowSessionListResponse], error) {
	limit := req.Limit()
	offset := req.Offset()

	sessions, err := s.repo.ShowSession.FindAll(ctx, filter, limit, offset)
	if err != nil {
		s.log.Error("Failed to get show sessions", zap.Error(err), zap.Int("page", req.Page))
		return nil, fmt.Errorf("get show sessions: %w", err)
	}

	total, err := s.repo.ShowSession.CountAll(ctx, filter)
	if err != nil {
		s.log.Error("Failed to count show sessions", zap.Error(err))
		return nil, fmt.Errorf("count show sessions: %w", err)
	}

	result := make([]response.ShowSessionListResponse, len(sessions))
	for i, session := range sessions {
		result[i] = response.ShowSessionToListResponse(session)
	}

	return response.NewPaginatedResponse(result, req.Page, limit, total), nil
}

func (s *showSessionService) GetShowSessionByID(ctx context.Context, id int64) (*response.ShowSessionDetailResponse, error) {
	session, err := s.findSession(ctx, id)
	if err != nil {
		return nil, err
	}

	show, err := s.repo.AstronomyShow.FindByID(ctx, session.AstronomyShowID)
	if err != nil {
		return nil, fmt.Errorf("get astronomy show of session %d: %w", id, err)
	}
	dome, err := s.repo.PlanetariumDome.FindByID(ctx, session.PlanetariumDomeID)
	if err != nil {
		return nil, fmt.Errorf("get dome of session %d: %w", id, err)
	}
	if show == nil || dome == nil {
		// removed between the two reads
		return nil, notFound("show session", id)
	}

	taken, err := s.repo.ShowSession.TakenPlaces(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get taken places of session %d: %w", id, err)
	}

	resp := response.ShowSessionToDetailResponse(*session, *show, *dome, taken, s.mediaURL)
	return &resp, nil
}

func (s *showSessionService) CreateShowSession(ctx context.Context, req *request.ShowSessionRequest) (*response.ShowSessionResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, newValidationError("invalid show session", errs)
	}

	session := &entity.ShowSession{
		ShowTime:          req.ShowTime,
		AstronomyShowID:   req.AstronomyShow,
		PlanetariumDomeID: req.PlanetariumDome,
	}
	if err := s.checkReferences(ctx, session, nil); err != nil {
		return nil, err
	}

	if err := s.repo.ShowSession.Create(ctx, session); err != nil {
		return nil, s.writeError(err, 0)
	}

	s.log.Info("Show session created",
		zap.Int64("show_session_id", session.ID),
		zap.Time("show_time", session.ShowTime),
	)

	resp := response.ShowSessionToResponse(*session)
	return &resp, nil
}

func (s *showSessionService) UpdateShowSession(ctx context.Context, id int64, req *request.ShowSessionRequest) (*response.ShowSessionResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, newValidationError("invalid show session", errs)
	}

	session, err := s.findSession(ctx, id)
	if err != nil {
		return nil, err
	}
	previousDome := session.PlanetariumDomeID

	session.ShowTime = req.ShowTime
	session.AstronomyShowID = req.AstronomyShow
	session.PlanetariumDomeID = req.PlanetariumDome

	return s.save(ctx, session, previousDome)
}

func (s *showSessionService) PatchShowSession(ctx context.Context, id int64, req *request.ShowSessionUpdateRequest) (*response.ShowSessionResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, newValidationError("invalid show session", errs)
	}

	session, err := s.findSession(ctx, id)
	if err != nil {
		return nil, err
	}
	previousDome := session.PlanetariumDomeID

	if req.ShowTime != nil {
		session.ShowTime = *req.ShowTime
	}
	if req.AstronomyShow != nil {
		session.AstronomyShowID = *req.AstronomyShow
	}
	if req.PlanetariumDome != nil {
		session.PlanetariumDomeID = *req.PlanetariumDome
	}

	return s.save(ctx, session, previousDome)
}

func (s *showSessionService) save(ctx context.Context, session *entity.ShowSession, previousDome int64) (*response.ShowSessionResponse, error) {
	var moved *int64
	if session.PlanetariumDomeID != previousDome {
		moved = &session.ID
	}
	if err := s.checkReferences(ctx, session, moved); err != nil {
		return nil, err
	}

	if err := s.repo.ShowSession.Update(ctx, session); err != nil {
		return nil, s.writeError(err, session.ID)
	}

	resp := response.ShowSessionToResponse(*session)
	return &resp, nil
}

// checkReferences verifies the show and dome exist. When the session moves to
// another dome its sold seats must still fit the new grid.
func (s *showSessionService) checkReferences(ctx context.Context, session *entity.ShowSession, moved *int64) error {
	errs := map[string]string{}

	show, err := s.repo.AstronomyShow.FindByID(ctx, session.AstronomyShowID)
	if err != nil {
		return fmt.Errorf("check astronomy show: %w", err)
	}
	if show == nil {
		errs["astronomy_show"] = fmt.Sprintf("Astronomy show %d does not exist", session.AstronomyShowID)
	}

	dome, err := s.repo.PlanetariumDome.FindByID(ctx, session.PlanetariumDomeID)
	if err != nil {
		return fmt.Errorf("check planetarium dome: %w", err)
	}
	if dome == nil {
		errs["planetarium_dome"] = fmt.Sprintf("Planetarium dome %d does not exist", session.PlanetariumDomeID)
	}

	if len(errs) > 0 {
		return newValidationError("invalid show session", errs)
	}

	if moved != nil {
		taken, err := s.repo.ShowSession.TakenPlaces(ctx, *moved)
		if err != nil {
			return fmt.Errorf("check taken places: %w", err)
		}
		for _, place := range taken {
			if !dome.Contains(place.Row, place.Seat) {
				return conflict(fmt.Sprintf("sold seat row %d seat %d does not exist in dome %d", place.Row, place.Seat, dome.ID))
			}
		}
	}

	return nil
}

func (s *showSessionService) DeleteShowSession(ctx context.Context, id int64) error {
	if err := s.repo.ShowSession.Delete(ctx, id); err != nil {
		return fromRepository(err, "show session", id)
	}
	return nil
}

func (s *showSessionService) findSession(ctx context.Context, id int64) (*entity.ShowSession, error) {
	session, err := s.repo.ShowSession.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get show session: %w", err)
	}
	if session == nil {
		return nil, notFound("show session", id)
	}
	return session, nil
}

func (s *showSessionService) writeError(err error, id int64) error {
	if errors.Is(err, repository.ErrOutsideGrid) {
		return conflict(fmt.Sprintf("sold seats of show session %d do not fit the new dome", id))
	}
	if errorsIsInvalidReference(err) {
		return newValidationError("invalid show session", map[string]string{
			"astronomy_show": "Referenced astronomy show or planetarium dome no longer exists",
		})
	}
	return fromRepository(err, "show session", id)
}
