package usecase

import (
	"context"
	"fmt"
	"testing"
	"time"

	"planetarium-booking/internal/data/entity"
	"planetarium-booking/internal/data/repository"
	"planetarium-booking/internal/dto/request"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var blueDome = entity.PlanetariumDome{Base: entity.Base{ID: 6}, Name: "Blue", Rows: 10, SeatsInRow: 9}

func TestReservationService_CreateReservation(t *testing.T) {
	repo, m := newRepoMocks(t)
	svc := NewReservationService(repo, zap.NewNop())
	ctx := context.Background()
	showTime := time.Date(2026, 3, 5, 19, 30, 0, 0, time.UTC)

	m.session.On("FindDomes", ctx, []int64{3}).
		Return(map[int64]entity.PlanetariumDome{3: blueDome}, nil)
	m.reservation.On("CreateWithTickets", ctx, mock.MatchedBy(func(r *entity.Reservation) bool {
		return r.UserID == 7 && len(r.Tickets) == 2
	})).Run(func(args mock.Arguments) {
		r := args.Get(1).(*entity.Reservation)
		r.ID = 11
	}).Return(nil)
	m.reservation.On("FindByIDForUser", ctx, int64(11), int64(7)).Return(&entity.Reservation{
		BaseSimple: entity.BaseSimple{ID: 11},
		UserID:     7,
		Tickets: []entity.Ticket{
			{
				Base: entity.Base{ID: 100}, Row: 1, Seat: 2, ShowSessionID: 3, ReservationID: 11,
				Session: &entity.ShowSessionSummary{
					ShowSession: entity.ShowSession{Base: entity.Base{ID: 3}, ShowTime: showTime, AstronomyShowID: 5, PlanetariumDomeID: 6},
					ShowTitle:   "Black Holes",
					Dome:        blueDome,
				},
			},
			{Base: entity.Base{ID: 101}, Row: 1, Seat: 3, ShowSessionID: 3, ReservationID: 11},
		},
	}, nil)

	resp, err := svc.CreateReservation(ctx, 7, &request.ReservationRequest{Tickets: []request.TicketRequest{
		{Row: 1, Seat: 2, ShowSession: 3},
		{Row: 1, Seat: 3, ShowSession: 3},
	}})
	require.NoError(t, err)

	assert.Equal(t, int64(11), resp.ID)
	require.Len(t, resp.Tickets, 2)
	assert.Equal(t, int64(3), resp.Tickets[0].ShowSession.ID)
	assert.Equal(t, int64(3), resp.Tickets[1].ShowSession.ID)
}

func TestReservationService_CreateReservation_InvalidSeats(t *testing.T) {
	tests := []struct {
		name    string
		tickets []request.TicketRequest
		field   string
	}{
		{
			name:    "row outside the dome",
			tickets: []request.TicketRequest{{Row: 11, Seat: 1, ShowSession: 3}},
			field:   "tickets[0].row",
		},
		{
			name:    "seat outside the dome",
			tickets: []request.TicketRequest{{Row: 1, Seat: 10, ShowSession: 3}},
			field:   "tickets[0].seat",
		},
		{
			name: "same seat twice",
			tickets: []request.TicketRequest{
				{Row: 2, Seat: 2, ShowSession: 3},
				{Row: 2, Seat: 2, ShowSession: 3},
			},
			field: "tickets[1]",
		},
		{
			name:    "unknown session",
			tickets: []request.TicketRequest{{Row: 1, Seat: 1, ShowSession: 99}},
			field:   "tickets[0].show_session",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, m := newRepoMocks(t)
			svc := NewReservationService(repo, zap.NewNop())
			ctx := context.Background()

			m.session.On("FindDomes", ctx, mock.Anything).
				Return(map[int64]entity.PlanetariumDome{3: blueDome}, nil)

			_, err := svc.CreateReservation(ctx, 7, &request.ReservationRequest{Tickets: tt.tickets})

			verr := asValidationError(t, err)
			assert.Contains(t, verr.Fields, tt.field)
			m.reservation.AssertNotCalled(t, "CreateWithTickets", mock.Anything, mock.Anything)
		})
	}
}

func TestReservationService_CreateReservation_EmptyTickets(t *testing.T) {
	repo, _ := newRepoMocks(t)
	svc := NewReservationService(repo, zap.NewNop())

	_, err := svc.CreateReservation(context.Background(), 7, &request.ReservationRequest{})

	verr := asValidationError(t, err)
	assert.Contains(t, verr.Fields, "tickets")
}

func TestReservationService_CreateReservation_SeatTaken(t *testing.T) {
	repo, m := newRepoMocks(t)
	svc := NewReservationService(repo, zap.NewNop())
	ctx := context.Background()

	m.session.On("FindDomes", ctx, []int64{3}).
		Return(map[int64]entity.PlanetariumDome{3: blueDome}, nil)
	m.reservation.On("CreateWithTickets", ctx, mock.Anything).
		Return(fmt.Errorf("create ticket: %w", repository.ErrDuplicate))

	_, err := svc.CreateReservation(ctx, 7, &request.ReservationRequest{Tickets: []request.TicketRequest{
		{Row: 1, Seat: 1, ShowSession: 3},
	}})

	assert.ErrorIs(t, err, ErrConflict)
}

func TestReservationService_CreateReservation_DomeShrankConcurrently(t *testing.T) {
	repo, m := newRepoMocks(t)
	svc := NewReservationService(repo, zap.NewNop())
	ctx := context.Background()

	m.session.On("FindDomes", ctx, []int64{3}).
		Return(map[int64]entity.PlanetariumDome{3: blueDome}, nil)
	m.reservation.On("CreateWithTickets", ctx, mock.Anything).
		Return(fmt.Errorf("row 10 seat 9 of show session 3: %w", repository.ErrOutsideGrid))

	_, err := svc.CreateReservation(ctx, 7, &request.ReservationRequest{Tickets: []request.TicketRequest{
		{Row: 10, Seat: 9, ShowSession: 3},
	}})

	assert.ErrorIs(t, err, ErrConflict)
}

func TestReservationService_GetReservations(t *testing.T) {
	repo, m := newRepoMocks(t)
	svc := NewReservationService(repo, zap.NewNop())
	ctx := context.Background()

	m.reservation.On("FindAllByUser", ctx, int64(7), 5, 5).
		Return([]entity.Reservation{{BaseSimple: entity.BaseSimple{ID: 2}, UserID: 7}}, nil)
	m.reservation.On("CountByUser", ctx, int64(7)).Return(int64(6), nil)

	page, err := svc.GetReservations(ctx, 7, &request.PaginatedRequest{Page: 2, PerPage: 5})
	require.NoError(t, err)

	assert.Len(t, page.Data, 1)
	assert.Equal(t, int64(6), page.Pagination.Total)
	assert.Equal(t, 2, page.Pagination.TotalPages)
	assert.Empty(t, page.Data[0].Tickets)
}

func TestReservationService_OtherUsersReservationIsNotFound(t *testing.T) {
	repo, m := newRepoMocks(t)
	svc := NewReservationService(repo, zap.NewNop())
	ctx := context.Background()

	m.reservation.On("FindByIDForUser", ctx, int64(11), int64(8)).Return(nil, nil)
	m.reservation.On("DeleteForUser", ctx, int64(11), int64(8)).
		Return(fmt.Errorf("delete: %w", repository.ErrNotFound))

	_, err := svc.GetReservationByID(ctx, 8, 11)
	assert.ErrorIs(t, err, ErrNotFound)

	err = svc.DeleteReservation(ctx, 8, 11)
	assert.ErrorIs(t, err, ErrNotFound)
}
