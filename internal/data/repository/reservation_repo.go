package repository

import (
	"context"
	"errors"
	"fmt"

	"planetarium-booking/internal/data/entity"
	"planetarium-booking/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ReservationRepository interface {
	CreateWithTickets(ctx context.Context, reservation *entity.Reservation) error
	FindByIDForUser(ctx context.Context, id, userID int64) (*entity.Reservation, error)
	FindAllByUser(ctx context.Context, userID int64, limit, offset int) ([]entity.Reservation, error)
	CountByUser(ctx context.Context, userID int64) (int64, error)
	DeleteForUser(ctx context.Context, id, userID int64) error
}

type reservationRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewReservationRepository(db database.PgxIface, log *zap.Logger) ReservationRepository {
	return &reservationRepository{
		db:  db,
		log: log.With(zap.String("repository", "reservation")),
	}
}

// CreateWithTickets inserts the reservation and every ticket in one transaction.
// A seat that is already sold aborts the whole batch with ErrDuplicate.
func (r *reservationRepository) CreateWithTickets(ctx context.Context, reservation *entity.Reservation) error {
	if len(reservation.Tickets) == 0 {
		return errors.New("reservation without tickets")
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		r.log.Error("Failed to begin reservation transaction", zap.Error(err))
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := r.lockGrids(ctx, tx, reservation.Tickets); err != nil {
		return err
	}

	insertReservation := `
		INSERT INTO reservations (user_id)
		VALUES ($1)
		RETURNING id, created_at
	`
	err = tx.QueryRow(ctx, insertReservation, reservation.UserID).Scan(&reservation.ID, &reservation.CreatedAt)
	if err != nil {
		r.log.Error("Failed to create reservation", zap.Error(err), zap.Int64("user_id", reservation.UserID))
		return fmt.Errorf("create reservation for user %d: %w", reservation.UserID, mapWriteError(err))
	}

	insertTicket := `
		INSERT INTO tickets ("row", seat, show_session_id, reservation_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	for i := range reservation.Tickets {
		ticket := &reservation.Tickets[i]
		ticket.ReservationID = reservation.ID

		err := tx.QueryRow(ctx, insertTicket, ticket.Row, ticket.Seat, ticket.ShowSessionID, ticket.ReservationID).Scan(&ticket.ID)
		if err != nil {
			mapped := mapWriteError(err)
			if errors.Is(mapped, ErrDuplicate) {
				r.log.Warn("Seat already taken",
					zap.Int64("show_session_id", ticket.ShowSessionID),
					zap.Int("row", ticket.Row),
					zap.Int("seat", ticket.Seat),
				)
			} else {
				r.log.Error("Failed to create ticket", zap.Error(err), zap.Int64("reservation_id", reservation.ID))
			}
			return fmt.Errorf("create ticket row %d seat %d for session %d: %w",
				ticket.Row, ticket.Seat, ticket.ShowSessionID, mapped)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		r.log.Error("Failed to commit reservation", zap.Error(err), zap.Int64("reservation_id", reservation.ID))
		return fmt.Errorf("commit reservation %d: %w", reservation.ID, mapWriteError(err))
	}

	r.log.Info("Reservation created",
		zap.Int64("reservation_id", reservation.ID),
		zap.Int64("user_id", reservation.UserID),
		zap.Int("tickets", len(reservation.Tickets)),
	)
	return nil
}

// lockGrids share-locks the sessions and domes of the batch and checks every seat
// against the locked grid. A concurrent dome resize waits for this transaction.
func (r *reservationRepository) lockGrids(ctx context.Context, tx pgx.Tx, tickets []entity.Ticket) error {
	sessionIDs := make([]int64, 0, len(tickets))
	seen := make(map[int64]bool, len(tickets))
	for _, ticket := range tickets {
		if !seen[ticket.ShowSessionID] {
			seen[ticket.ShowSessionID] = true
			sessionIDs = append(sessionIDs, ticket.ShowSessionID)
		}
	}

	query := `
		SELECT ss.id, d.rows, d.seats_in_row
		FROM show_sessions ss
		INNER JOIN planetarium_domes d ON d.id = ss.planetarium_dome_id
		WHERE ss.id = ANY($1)
		FOR SHARE
	`
	rows, err := tx.Query(ctx, query, sessionIDs)
	if err != nil {
		r.log.Error("Failed to lock session domes", zap.Error(err), zap.Int64s("show_session_ids", sessionIDs))
		return fmt.Errorf("lock domes of show sessions: %w", err)
	}
	grids := make(map[int64]entity.PlanetariumDome, len(sessionIDs))
	for rows.Next() {
		var sessionID int64
		var dome entity.PlanetariumDome
		if err := rows.Scan(&sessionID, &dome.Rows, &dome.SeatsInRow); err != nil {
			rows.Close()
			return fmt.Errorf("scan session dome row: %w", err)
		}
		grids[sessionID] = dome
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate session dome rows: %w", err)
	}

	for _, ticket := range tickets {
		dome, ok := grids[ticket.ShowSessionID]
		if !ok {
			return fmt.Errorf("show session %d: %w", ticket.ShowSessionID, ErrInvalidReference)
		}
		if !dome.Contains(ticket.Row, ticket.Seat) {
			r.log.Warn("Seat outside locked dome grid",
				zap.Int64("show_session_id", ticket.ShowSessionID),
				zap.Int("row", ticket.Row),
				zap.Int("seat", ticket.Seat),
			)
			return fmt.Errorf("row %d seat %d of show session %d: %w",
				ticket.Row, ticket.Seat, ticket.ShowSessionID, ErrOutsideGrid)
		}
	}

	return nil
}

func (r *reservationRepository) FindByIDForUser(ctx context.Context, id, userID int64) (*entity.Reservation, error) {
	query := `
		SELECT id, user_id, created_at
		FROM reservations
		WHERE id = $1 AND user_id = $2
	`

	var reservation entity.Reservation
	err := r.db.QueryRow(ctx, query, id, userID).Scan(&reservation.ID, &reservation.UserID, &reservation.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find reservation", zap.Error(err), zap.Int64("reservation_id", id))
		return nil, fmt.Errorf("find reservation %d: %w", id, err)
	}

	tickets, err := r.ticketsByReservation(ctx, []int64{id})
	if err != nil {
		return nil, err
	}
	reservation.Tickets = tickets[id]

	return &reservation, nil
}

func (r *reservationRepository) FindAllByUser(ctx context.Context, userID int64, limit, offset int) ([]entity.Reservation, error) {
	query := `
		SELECT id, user_id, created_at
		FROM reservations
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		r.log.Error("Failed to list reservations", zap.Error(err), zap.Int64("user_id", userID))
		return nil, fmt.Errorf("list reservations of user %d: %w", userID, err)
	}
	defer rows.Close()

	reservations := []entity.Reservation{}
	ids := []int64{}
	for rows.Next() {
		var reservation entity.Reservation
		if err := rows.Scan(&reservation.ID, &reservation.UserID, &reservation.CreatedAt); err != nil {
			r.log.Error("Failed to scan reservation row", zap.Error(err))
			return nil, fmt.Errorf("scan reservation row: %w", err)
		}
		reservations = append(reservations, reservation)
		ids = append(ids, reservation.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reservation rows: %w", err)
	}
	rows.Close()

	if len(ids) == 0 {
		return reservations, nil
	}

	tickets, err := r.ticketsByReservation(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range reservations {
		reservations[i].Tickets = tickets[reservations[i].ID]
	}

	return reservations, nil
}

func (r *reservationRepository) CountByUser(ctx context.Context, userID int64) (int64, error) {
	query := `SELECT COUNT(*) FROM reservations WHERE user_id = $1`

	var total int64
	if err := r.db.QueryRow(ctx, query, userID).Scan(&total); err != nil {
		r.log.Error("Failed to count reservations", zap.Error(err), zap.Int64("user_id", userID))
		return 0, fmt.Errorf("count reservations of user %d: %w", userID, err)
	}

	return total, nil
}

// DeleteForUser removes the reservation; its tickets go with it through ON DELETE CASCADE.
func (r *reservationRepository) DeleteForUser(ctx context.Context, id, userID int64) error {
	query := `DELETE FROM reservations WHERE id = $1 AND user_id = $2`

	result, err := r.db.Exec(ctx, query, id, userID)
	if err != nil {
		r.log.Error("Failed to delete reservation", zap.Error(err), zap.Int64("reservation_id", id))
		return fmt.Errorf("delete reservation %d: %w", id, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("delete reservation %d: %w", id, ErrNotFound)
	}

	r.log.Info("Reservation deleted", zap.Int64("reservation_id", id), zap.Int64("user_id", userID))
	return nil
}

// ticketsByReservation loads tickets of several reservations together with their session summary.
func (r *reservationRepository) ticketsByReservation(ctx context.Context, reservationIDs []int64) (map[int64][]entity.Ticket, error) {
	query := `
		SELECT t.id, t."row", t.seat, t.show_session_id, t.reservation_id,
		       ss.show_time, ss.astronomy_show_id, ss.planetarium_dome_id,
		       s.title, d.name, d.rows, d.seats_in_row
		FROM tickets t
		INNER JOIN show_sessions ss ON ss.id = t.show_session_id
		INNER JOIN astronomy_shows s ON s.id = ss.astronomy_show_id
		INNER JOIN planetarium_domes d ON d.id = ss.planetarium_dome_id
		WHERE t.reservation_id = ANY($1)
		ORDER BY t.reservation_id, t.id
	`

	rows, err := r.db.Query(ctx, query, reservationIDs)
	if err != nil {
		r.log.Error("Failed to load reservation tickets", zap.Error(err))
		return nil, fmt.Errorf("load tickets of reservations: %w", err)
	}
	defer rows.Close()

	result := make(map[int64][]entity.Ticket, len(reservationIDs))
	for rows.Next() {
		var ticket entity.Ticket
		session := &entity.ShowSessionSummary{}
		err := rows.Scan(
			&ticket.ID,
			&ticket.Row,
			&ticket.Seat,
			&ticket.ShowSessionID,
			&ticket.ReservationID,
			&session.ShowTime,
			&session.AstronomyShowID,
			&session.PlanetariumDomeID,
			&session.ShowTitle,
			&session.Dome.Name,
			&session.Dome.Rows,
			&session.Dome.SeatsInRow,
		)
		if err != nil {
			return nil, fmt.Errorf("scan ticket row: %w", err)
		}
		session.ID = ticket.ShowSessionID
		session.Dome.ID = session.PlanetariumDomeID
		ticket.Session = session
		result[ticket.ReservationID] = append(result[ticket.ReservationID], ticket)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ticket rows: %w", err)
	}

	return result, nil
}
