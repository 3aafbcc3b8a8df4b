package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"planetarium-booking/internal/data/entity"
	"planetarium-booking/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ShowSessionRepository interface {
	Create(ctx context.Context, session *entity.ShowSession) error
	FindByID(ctx context.Context, id int64) (*entity.ShowSession, error)
	FindSummaryByID(ctx context.Context, id int64) (*entity.ShowSessionSummary, error)
	FindAll(ctx context.Context, filter entity.ShowSessionFilter, limit, offset int) ([]entity.ShowSessionSummary, error)
	CountAll(ctx context.Context, filter entity.ShowSessionFilter) (int64, error)
	FindDomes(ctx context.Context, sessionIDs []int64) (map[int64]entity.PlanetariumDome, error)
	TakenPlaces(ctx context.Context, sessionID int64) ([]entity.Place, error)
	Update(ctx context.Context, session *entity.ShowSession) error
	Delete(ctx context.Context, id int64) error
}

type showSessionRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewShowSessionRepository(db database.PgxIface, log *zap.Logger) ShowSessionRepository {
	return &showSessionRepository{
		db:  db,
		log: log.With(zap.String("repository", "show_session")),
	}
}

// summary columns shared by list and detail; tickets are counted, never loaded
const showSessionSummarySelect = `
	SELECT ss.id, ss.show_time, ss.astronomy_show_id, ss.planetarium_dome_id,
	       s.title, d.id, d.name, d.rows, d.seats_in_row, COUNT(t.id) AS tickets_sold
	FROM show_sessions ss
	INNER JOIN astronomy_shows s ON s.id = ss.astronomy_show_id
	INNER JOIN planetarium_domes d ON d.id = ss.planetarium_dome_id
	LEFT JOIN tickets t ON t.show_session_id = ss.id
`

const showSessionSummaryGroupBy = ` GROUP BY ss.id, s.id, d.id`

func (r *showSessionRepository) Create(ctx context.Context, session *entity.ShowSession) error {
	query := `
		INSERT INTO show_sessions (show_time, astronomy_show_id, planetarium_dome_id)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query, session.ShowTime, session.AstronomyShowID, session.PlanetariumDomeID).Scan(&session.ID)
	if err != nil {
		r.log.Error("Failed to create show session",
			zap.Error(err),
			zap.Int64("astronomy_show_id", session.AstronomyShowID),
			zap.Int64("dome_id", session.PlanetariumDomeID),
		)
		return fmt.Errorf("create show session: %w", mapWriteError(err))
	}

	return nil
}

func (r *showSessionRepository) FindByID(ctx context.Context, id int64) (*entity.ShowSession, error) {
	query := `
		SELECT id, show_time, astronomy_show_id, planetarium_dome_id
		FROM show_sessions
		WHERE id = $1
	`

	var session entity.ShowSession
	err := r.db.QueryRow(ctx, query, id).Scan(
		&session.ID,
		&session.ShowTime,
		&session.AstronomyShowID,
		&session.PlanetariumDomeID,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find show session by ID", zap.Error(err), zap.Int64("show_session_id", id))
		return nil, fmt.Errorf("find show session by ID %d: %w", id, err)
	}

	return &session, nil
}

func (r *showSessionRepository) FindSummaryByID(ctx context.Context, id int64) (*entity.ShowSessionSummary, error) {
	query := showSessionSummarySelect + ` WHERE ss.id = $1` + showSessionSummaryGroupBy

	summary, err := scanSessionSummary(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find show session summary", zap.Error(err), zap.Int64("show_session_id", id))
		return nil, fmt.Errorf("find show session summary %d: %w", id, err)
	}

	return summary, nil
}

// buildShowSessionWhere turns the filter into a WHERE clause whose placeholders start at $1.
func buildShowSessionWhere(filter entity.ShowSessionFilter) (string, []any) {
	var whereBuilder strings.Builder
	whereBuilder.WriteString(" WHERE 1=1")

	args := []any{}
	argCount := 1

	if filter.Date != nil {
		whereBuilder.WriteString(fmt.Sprintf(" AND (ss.show_time AT TIME ZONE 'UTC')::date = $%d::date", argCount))
		args = append(args, filter.Date.UTC().Format("2006-01-02"))
		argCount++
	}

	if len(filter.AstronomyShowIDs) > 0 {
		whereBuilder.WriteString(fmt.Sprintf(" AND ss.astronomy_show_id = ANY($%d)", argCount))
		args = append(args, filter.AstronomyShowIDs)
		argCount++
	}

	if len(filter.DomeIDs) > 0 {
		whereBuilder.WriteString(fmt.Sprintf(" AND ss.planetarium_dome_id = ANY($%d)", argCount))
		args = append(args, filter.DomeIDs)
		argCount++
	}

	return whereBuilder.String(), args
}

// FindAll returns one page of sessions with availability computed in the same query.
func (r *showSessionRepository) FindAll(ctx context.Context, filter entity.ShowSessionFilter, limit, offset int) ([]entity.ShowSessionSummary, error) {
	where, args := buildShowSessionWhere(filter)
	argCount := len(args) + 1

	query := showSessionSummarySelect + where + showSessionSummaryGroupBy +
		fmt.Sprintf(" ORDER BY ss.show_time, ss.id LIMIT $%d OFFSET $%d", argCount, argCount+1)
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to list show sessions", zap.Error(err))
		return nil, fmt.Errorf("list show sessions: %w", err)
	}
	defer rows.Close()

	sessions := []entity.ShowSessionSummary{}
	for rows.Next() {
		summary, err := scanSessionSummary(rows)
		if err != nil {
			r.log.Error("Failed to scan show session row", zap.Error(err))
			return nil, fmt.Errorf("scan show session row: %w", err)
		}
		sessions = append(sessions, *summary)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate show session rows: %w", err)
	}

	return sessions, nil
}

func (r *showSessionRepository) CountAll(ctx context.Context, filter entity.ShowSessionFilter) (int64, error) {
	where, args := buildShowSessionWhere(filter)
	query := `SELECT COUNT(*) FROM show_sessions ss` + where

	var total int64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		r.log.Error("Failed to count show sessions", zap.Error(err))
		return 0, fmt.Errorf("count show sessions: %w", err)
	}

	return total, nil
}

// FindDomes maps each existing session id to its dome. Unknown ids are absent from the result.
func (r *showSessionRepository) FindDomes(ctx context.Context, sessionIDs []int64) (map[int64]entity.PlanetariumDome, error) {
	result := make(map[int64]entity.PlanetariumDome, len(sessionIDs))
	if len(sessionIDs) == 0 {
		return result, nil
	}

	query := `
		SELECT ss.id, d.id, d.name, d.rows, d.seats_in_row
		FROM show_sessions ss
		INNER JOIN planetarium_domes d ON d.id = ss.planetarium_dome_id
		WHERE ss.id = ANY($1)
	`

	rows, err := r.db.Query(ctx, query, sessionIDs)
	if err != nil {
		r.log.Error("Failed to load session domes", zap.Error(err), zap.Int64s("show_session_ids", sessionIDs))
		return nil, fmt.Errorf("load domes of show sessions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var sessionID int64
		var dome entity.PlanetariumDome
		if err := rows.Scan(&sessionID, &dome.ID, &dome.Name, &dome.Rows, &dome.SeatsInRow); err != nil {
			return nil, fmt.Errorf("scan session dome row: %w", err)
		}
		result[sessionID] = dome
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate session dome rows: %w", err)
	}

	return result, nil
}

func (r *showSessionRepository) TakenPlaces(ctx context.Context, sessionID int64) ([]entity.Place, error) {
	query := `
		SELECT "row", seat
		FROM tickets
		WHERE show_session_id = $1
		ORDER BY "row", seat
	`

	rows, err := r.db.Query(ctx, query, sessionID)
	if err != nil {
		r.log.Error("Failed to load taken places", zap.Error(err), zap.Int64("show_session_id", sessionID))
		return nil, fmt.Errorf("load taken places of show session %d: %w", sessionID, err)
	}
	defer rows.Close()

	places := []entity.Place{}
	for rows.Next() {
		var place entity.Place
		if err := rows.Scan(&place.Row, &place.Seat); err != nil {
			return nil, fmt.Errorf("scan taken place: %w", err)
		}
		places = append(places, place)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate taken places: %w", err)
	}

	return places, nil
}

// Update rewrites the session and, inside the same transaction, checks its sold
// seats against the share-locked grid of the target dome.
func (r *showSessionRepository) Update(ctx context.Context, session *entity.ShowSession) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		UPDATE show_sessions
		SET show_time = $2, astronomy_show_id = $3, planetarium_dome_id = $4
		WHERE id = $1
	`

	result, err := tx.Exec(ctx, query, session.ID, session.ShowTime, session.AstronomyShowID, session.PlanetariumDomeID)
	if err != nil {
		r.log.Error("Failed to update show session", zap.Error(err), zap.Int64("show_session_id", session.ID))
		return fmt.Errorf("update show session %d: %w", session.ID, mapWriteError(err))
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("update show session %d: %w", session.ID, ErrNotFound)
	}

	outsideQuery := `
		WITH dome AS (
			SELECT rows, seats_in_row FROM planetarium_domes WHERE id = $2 FOR SHARE
		)
		SELECT COUNT(t.id)
		FROM tickets t, dome
		WHERE t.show_session_id = $1 AND (t."row" > dome.rows OR t.seat > dome.seats_in_row)
	`
	var outside int64
	if err := tx.QueryRow(ctx, outsideQuery, session.ID, session.PlanetariumDomeID).Scan(&outside); err != nil {
		r.log.Error("Failed to check sold seats of show session", zap.Error(err), zap.Int64("show_session_id", session.ID))
		return fmt.Errorf("check sold seats of show session %d: %w", session.ID, err)
	}
	if outside > 0 {
		return fmt.Errorf("%d sold tickets of show session %d: %w", outside, session.ID, ErrOutsideGrid)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit show session %d: %w", session.ID, err)
	}

	return nil
}

func (r *showSessionRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM show_sessions WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete show session", zap.Error(err), zap.Int64("show_session_id", id))
		return fmt.Errorf("delete show session %d: %w", id, mapDeleteError(err))
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("delete show session %d: %w", id, ErrNotFound)
	}

	r.log.Info("Show session deleted", zap.Int64("show_session_id", id))
	return nil
}

func scanSessionSummary(row pgx.Row) (*entity.ShowSessionSummary, error) {
	var summary entity.ShowSessionSummary
	var sold int64
	err := row.Scan(
		&summary.ID,
		&summary.ShowTime,
		&summary.AstronomyShowID,
		&summary.PlanetariumDomeID,
		&summary.ShowTitle,
		&summary.Dome.ID,
		&summary.Dome.Name,
		&summary.Dome.Rows,
		&summary.Dome.SeatsInRow,
		&sold,
	)
	if err != nil {
		return nil, err
	}
	summary.TicketsSold = int(sold)
	return &summary, nil
}
