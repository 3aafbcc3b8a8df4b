package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"planetarium-booking/internal/data/entity"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newMockPool(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

func TestReservationRepository_CreateWithTickets(t *testing.T) {
	mock := newMockPool(t)
	repo := NewReservationRepository(mock, zap.NewNop())
	created := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FOR SHARE")).
		WithArgs([]int64{3}).
		WillReturnRows(pgxmock.NewRows([]string{"id", "rows", "seats_in_row"}).AddRow(int64(3), 10, 9))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO reservations (user_id)")).
		WithArgs(int64(7)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(int64(11), created))
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO tickets ("row", seat, show_session_id, reservation_id)`)).
		WithArgs(1, 2, int64(3), int64(11)).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(100)))
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO tickets ("row", seat, show_session_id, reservation_id)`)).
		WithArgs(1, 3, int64(3), int64(11)).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(101)))
	mock.ExpectCommit()

	reservation := &entity.Reservation{
		UserID: 7,
		Tickets: []entity.Ticket{
			{Row: 1, Seat: 2, ShowSessionID: 3},
			{Row: 1, Seat: 3, ShowSessionID: 3},
		},
	}
	require.NoError(t, repo.CreateWithTickets(context.Background(), reservation))

	assert.Equal(t, int64(11), reservation.ID)
	assert.Equal(t, created, reservation.CreatedAt)
	assert.Equal(t, int64(100), reservation.Tickets[0].ID)
	assert.Equal(t, int64(101), reservation.Tickets[1].ID)
	assert.Equal(t, int64(11), reservation.Tickets[1].ReservationID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReservationRepository_CreateWithTickets_SeatTaken(t *testing.T) {
	mock := newMockPool(t)
	repo := NewReservationRepository(mock, zap.NewNop())

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FOR SHARE")).
		WithArgs([]int64{3}).
		WillReturnRows(pgxmock.NewRows([]string{"id", "rows", "seats_in_row"}).AddRow(int64(3), 10, 9))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO reservations (user_id)")).
		WithArgs(int64(7)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(int64(11), time.Now()))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO tickets")).
		WithArgs(4, 4, int64(3), int64(11)).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "tickets_session_row_seat_key"})
	mock.ExpectRollback()

	reservation := &entity.Reservation{
		UserID:  7,
		Tickets: []entity.Ticket{{Row: 4, Seat: 4, ShowSessionID: 3}},
	}
	err := repo.CreateWithTickets(context.Background(), reservation)

	assert.ErrorIs(t, err, ErrDuplicate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReservationRepository_CreateWithTickets_LockedGrid(t *testing.T) {
	tests := []struct {
		name    string
		tickets []entity.Ticket
		wantErr error
	}{
		{
			name:    "dome shrank after validation",
			tickets: []entity.Ticket{{Row: 1, Seat: 1, ShowSessionID: 3}, {Row: 10, Seat: 9, ShowSessionID: 3}},
			wantErr: ErrOutsideGrid,
		},
		{
			name:    "session removed after validation",
			tickets: []entity.Ticket{{Row: 1, Seat: 1, ShowSessionID: 4}},
			wantErr: ErrInvalidReference,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := newMockPool(t)
			repo := NewReservationRepository(mock, zap.NewNop())

			ids := []int64{tt.tickets[0].ShowSessionID}
			mock.ExpectBegin()
			mock.ExpectQuery(regexp.QuoteMeta("FOR SHARE")).
				WithArgs(ids).
				WillReturnRows(pgxmock.NewRows([]string{"id", "rows", "seats_in_row"}).AddRow(int64(3), 5, 9))
			mock.ExpectRollback()

			err := repo.CreateWithTickets(context.Background(), &entity.Reservation{UserID: 7, Tickets: tt.tickets})

			assert.ErrorIs(t, err, tt.wantErr)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestReservationRepository_CreateWithTickets_Empty(t *testing.T) {
	mock := newMockPool(t)
	repo := NewReservationRepository(mock, zap.NewNop())

	err := repo.CreateWithTickets(context.Background(), &entity.Reservation{UserID: 1})
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReservationRepository_FindByIDForUser(t *testing.T) {
	mock := newMockPool(t)
	repo := NewReservationRepository(mock, zap.NewNop())
	created := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	showTime := time.Date(2026, 3, 5, 19, 30, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("FROM reservations")).
		WithArgs(int64(11), int64(7)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "user_id", "created_at"}).AddRow(int64(11), int64(7), created))
	mock.ExpectQuery(regexp.QuoteMeta("WHERE t.reservation_id = ANY($1)")).
		WithArgs([]int64{11}).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "row", "seat", "show_session_id", "reservation_id",
			"show_time", "astronomy_show_id", "planetarium_dome_id",
			"title", "name", "rows", "seats_in_row",
		}).AddRow(int64(100), 1, 2, int64(3), int64(11), showTime, int64(5), int64(6), "Black Holes", "Blue", 10, 9))

	reservation, err := repo.FindByIDForUser(context.Background(), 11, 7)
	require.NoError(t, err)
	require.NotNil(t, reservation)
	require.Len(t, reservation.Tickets, 1)

	ticket := reservation.Tickets[0]
	require.NotNil(t, ticket.Session)
	assert.Equal(t, int64(3), ticket.Session.ID)
	assert.Equal(t, "Black Holes", ticket.Session.ShowTitle)
	assert.Equal(t, int64(6), ticket.Session.Dome.ID)
	assert.Equal(t, 90, ticket.Session.Dome.Capacity())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReservationRepository_FindByIDForUser_OtherUser(t *testing.T) {
	mock := newMockPool(t)
	repo := NewReservationRepository(mock, zap.NewNop())

	mock.ExpectQuery(regexp.QuoteMeta("FROM reservations")).
		WithArgs(int64(11), int64(8)).
		WillReturnError(pgx.ErrNoRows)

	reservation, err := repo.FindByIDForUser(context.Background(), 11, 8)
	assert.NoError(t, err)
	assert.Nil(t, reservation)
}

func TestReservationRepository_DeleteForUser_NotFound(t *testing.T) {
	mock := newMockPool(t)
	repo := NewReservationRepository(mock, zap.NewNop())

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM reservations WHERE id = $1 AND user_id = $2")).
		WithArgs(int64(11), int64(8)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := repo.DeleteForUser(context.Background(), 11, 8)
	assert.ErrorIs(t, err, ErrNotFound)
}
