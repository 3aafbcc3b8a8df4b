package usecase

import (
	"context"
	"errors"
	"fmt"

	"planetarium-booking/internal/data/entity"
	"planetarium-booking/internal/data/repository"
	"planetarium-booking/internal/dto/request"
	"planetarium-booking/internal/dto/response"
	"planetarium-booking/pkg/metrics"
	"planetarium-booking/pkg/utils"

	"go.uber.org/zap"
)

type ReservationService interface {
	GetReservations(ctx context.Context, userID int64, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ReservationResponse], error)
	GetReservationByID(ctx context.Context, userID, id int64) (*response.ReservationResponse, error)
	CreateReservation(ctx context.Context, userID int64, req *request.ReservationRequest) (*response.ReservationResponse, error)
	DeleteReservation(ctx context.Context, userID, id int64) error
}

type reservationService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewReservationService(repo *repository.Repository, log *zap.Logger) ReservationService {
	return &reservationService{
		repo: repo,
		log:  log.With(zap.String("service", "reservation")),
	}
}

func (s *reservationService) GetReservations(ctx context.Context, userID int64, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ReservationResponse], error) {
	limit := req.Limit()
	offset := req.Offset()

	reservations, err := s.repo.Reservation.FindAllByUser(ctx, userID, limit, offset)
	if err != nil {
		s.log.Error("Failed to get reservations", zap.Error(err), zap.Int64("user_id", userID))
		return nil, fmt.Errorf("get reservations: %w", err)
	}

	total, err := s.repo.Reservation.CountByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("count reservations: %w", err)
	}

	result := make([]response.ReservationResponse, len(reservations))
	for i, reservation := range reservations {
		result[i] = response.ReservationToResponse(reservation)
	}

	return response.NewPaginatedResponse(result, req.Page, limit, total), nil
}

func (s *reservationService) GetReservationByID(ctx context.Context, userID, id int64) (*response.ReservationResponse, error) {
	reservation, err := s.repo.Reservation.FindByIDForUser(ctx, id, userID)
	if err != nil {
		return nil, fmt.Errorf("get reservation: %w", err)
	}
	if reservation == nil {
		return nil, notFound("reservation", id)
	}

	resp := response.ReservationToResponse(*reservation)
	return &resp, nil
}

// CreateReservation books every requested seat or none of them.
func (s *reservationService) CreateReservation(ctx context.Context, userID int64, req *request.ReservationRequest) (*response.ReservationResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, newValidationError("invalid reservation", errs)
	}

	if err := s.validateSeats(ctx, req.Tickets); err != nil {
		return nil, err
	}

	reservation := &entity.Reservation{
		UserID:  userID,
		Tickets: make([]entity.Ticket, len(req.Tickets)),
	}
	for i, t := range req.Tickets {
		reservation.Tickets[i] = entity.Ticket{
			Row:           t.Row,
			Seat:          t.Seat,
			ShowSessionID: t.ShowSession,
		}
	}

	err := s.repo.Reservation.CreateWithTickets(ctx, reservation)
	switch {
	case errors.Is(err, repository.ErrDuplicate):
		metrics.SeatConflicts.Inc()
		return nil, conflict("one of the selected seats is already taken")
	case errors.Is(err, repository.ErrOutsideGrid):
		return nil, conflict("one of the selected seats no longer exists in the dome")
	case errors.Is(err, repository.ErrInvalidReference):
		return nil, newValidationError("invalid reservation", map[string]string{
			"tickets": "Referenced show session no longer exists",
		})
	case err != nil:
		s.log.Error("Failed to create reservation", zap.Error(err), zap.Int64("user_id", userID))
		return nil, fmt.Errorf("create reservation: %w", err)
	}

	metrics.ReservationsCreated.Inc()
	metrics.TicketsSold.Add(float64(len(reservation.Tickets)))

	s.log.Info("Reservation created",
		zap.Int64("reservation_id", reservation.ID),
		zap.Int64("user_id", userID),
		zap.Int("tickets", len(reservation.Tickets)),
	)

	// reload for the nested session summaries
	created, err := s.repo.Reservation.FindByIDForUser(ctx, reservation.ID, userID)
	if err != nil || created == nil {
		if err != nil {
			s.log.Warn("Failed to reload reservation", zap.Error(err), zap.Int64("reservation_id", reservation.ID))
		}
		created = reservation
	}

	resp := response.ReservationToResponse(*created)
	return &resp, nil
}

// validateSeats rejects unknown sessions, seats outside the dome grid and
// the same seat requested twice.
func (s *reservationService) validateSeats(ctx context.Context, tickets []request.TicketRequest) error {
	sessionIDs := make([]int64, 0, len(tickets))
	seen := map[int64]bool{}
	for _, t := range tickets {
		if !seen[t.ShowSession] {
			seen[t.ShowSession] = true
			sessionIDs = append(sessionIDs, t.ShowSession)
		}
	}

	domes, err := s.repo.ShowSession.FindDomes(ctx, sessionIDs)
	if err != nil {
		return fmt.Errorf("load session domes: %w", err)
	}

	type key struct {
		session int64
		row     int
		seat    int
	}
	requested := make(map[key]int, len(tickets))
	errs := map[string]string{}

	for i, t := range tickets {
		field := fmt.Sprintf("tickets[%d]", i)

		dome, ok := domes[t.ShowSession]
		if !ok {
			errs[field+".show_session"] = fmt.Sprintf("Show session %d does not exist", t.ShowSession)
			continue
		}
		if t.Row < 1 || t.Row > dome.Rows {
			errs[field+".row"] = fmt.Sprintf("Row must be in range [1, %d]", dome.Rows)
		}
		if t.Seat < 1 || t.Seat > dome.SeatsInRow {
			errs[field+".seat"] = fmt.Sprintf("Seat must be in range [1, %d]", dome.SeatsInRow)
		}

		k := key{t.ShowSession, t.Row, t.Seat}
		if first, dup := requested[k]; dup {
			errs[field] = fmt.Sprintf("Same seat as tickets[%d]", first)
			continue
		}
		requested[k] = i
	}

	if len(errs) > 0 {
		return newValidationError("invalid reservation", errs)
	}
	return nil
}

func (s *reservationService) DeleteReservation(ctx context.Context, userID, id int64) error {
	if err := s.repo.Reservation.DeleteForUser(ctx, id, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound("reservation", id)
		}
		return fmt.Errorf("delete reservation: %w", err)
	}

	s.log.Info("Reservation deleted", zap.Int64("reservation_id", id), zap.Int64("user_id", userID))
	return nil
}
