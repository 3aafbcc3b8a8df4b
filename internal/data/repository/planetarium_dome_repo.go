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

type PlanetariumDomeRepository interface {
	Create(ctx context.Context, dome *entity.PlanetariumDome) error
	FindByID(ctx context.Context, id int64) (*entity.PlanetariumDome, error)
	FindAll(ctx context.Context) ([]entity.PlanetariumDome, error)
	Update(ctx context.Context, dome *entity.PlanetariumDome) error
	Delete(ctx context.Context, id int64) error
}

type planetariumDomeRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewPlanetariumDomeRepository(db database.PgxIface, log *zap.Logger) PlanetariumDomeRepository {
	return &planetariumDomeRepository{
		db:  db,
		log: log.With(zap.String("repository", "planetarium_dome")),
	}
}

func (r *planetariumDomeRepository) Create(ctx context.Context, dome *entity.PlanetariumDome) error {
	query := `
		INSERT INTO planetarium_domes (name, rows, seats_in_row)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query, dome.Name, dome.Rows, dome.SeatsInRow).Scan(&dome.ID)
	if err != nil {
		r.log.Error("Failed to create planetarium dome",
			zap.Error(err),
			zap.String("name", dome.Name),
			zap.Int("rows", dome.Rows),
			zap.Int("seats_in_row", dome.SeatsInRow),
		)
		return fmt.Errorf("create planetarium dome %q: %w", dome.Name, mapWriteError(err))
	}

	return nil
}

func (r *planetariumDomeRepository) FindByID(ctx context.Context, id int64) (*entity.PlanetariumDome, error) {
	query := `SELECT id, name, rows, seats_in_row FROM planetarium_domes WHERE id = $1`

	var dome entity.PlanetariumDome
	err := r.db.QueryRow(ctx, query, id).Scan(&dome.ID, &dome.Name, &dome.Rows, &dome.SeatsInRow)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find planetarium dome by ID", zap.Error(err), zap.Int64("dome_id", id))
		return nil, fmt.Errorf("find planetarium dome by ID %d: %w", id, err)
	}

	return &dome, nil
}

func (r *planetariumDomeRepository) FindAll(ctx context.Context) ([]entity.PlanetariumDome, error) {
	query := `SELECT id, name, rows, seats_in_row FROM planetarium_domes ORDER BY id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to list planetarium domes", zap.Error(err))
		return nil, fmt.Errorf("list planetarium domes: %w", err)
	}
	defer rows.Close()

	domes := []entity.PlanetariumDome{}
	for rows.Next() {
		var dome entity.PlanetariumDome
		if err := rows.Scan(&dome.ID, &dome.Name, &dome.Rows, &dome.SeatsInRow); err != nil {
			r.log.Error("Failed to scan planetarium dome row", zap.Error(err))
			return nil, fmt.Errorf("scan planetarium dome row: %w", err)
		}
		domes = append(domes, dome)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate planetarium dome rows: %w", err)
	}

	return domes, nil
}

// Update locks the dome row, then refuses with ErrOutsideGrid when a sold ticket
// would fall outside the new grid. Reservations hold a share lock on the same row.
func (r *planetariumDomeRepository) Update(ctx context.Context, dome *entity.PlanetariumDome) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var id int64
	err = tx.QueryRow(ctx, `SELECT id FROM planetarium_domes WHERE id = $1 FOR UPDATE`, dome.ID).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("update planetarium dome %d: %w", dome.ID, ErrNotFound)
	}
	if err != nil {
		r.log.Error("Failed to lock planetarium dome", zap.Error(err), zap.Int64("dome_id", dome.ID))
		return fmt.Errorf("lock planetarium dome %d: %w", dome.ID, err)
	}

	outsideQuery := `
		SELECT COUNT(t.id)
		FROM tickets t
		INNER JOIN show_sessions ss ON ss.id = t.show_session_id
		WHERE ss.planetarium_dome_id = $1 AND (t."row" > $2 OR t.seat > $3)
	`
	var outside int64
	if err := tx.QueryRow(ctx, outsideQuery, dome.ID, dome.Rows, dome.SeatsInRow).Scan(&outside); err != nil {
		r.log.Error("Failed to count tickets outside dome grid", zap.Error(err), zap.Int64("dome_id", dome.ID))
		return fmt.Errorf("count tickets outside grid of dome %d: %w", dome.ID, err)
	}
	if outside > 0 {
		return fmt.Errorf("%d sold tickets of dome %d: %w", outside, dome.ID, ErrOutsideGrid)
	}

	query := `
		UPDATE planetarium_domes
		SET name = $2, rows = $3, seats_in_row = $4
		WHERE id = $1
	`
	if _, err := tx.Exec(ctx, query, dome.ID, dome.Name, dome.Rows, dome.SeatsInRow); err != nil {
		r.log.Error("Failed to update planetarium dome", zap.Error(err), zap.Int64("dome_id", dome.ID))
		return fmt.Errorf("update planetarium dome %d: %w", dome.ID, mapWriteError(err))
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit planetarium dome %d: %w", dome.ID, err)
	}

	return nil
}

func (r *planetariumDomeRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM planetarium_domes WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete planetarium dome", zap.Error(err), zap.Int64("dome_id", id))
		return fmt.Errorf("delete planetarium dome %d: %w", id, mapDeleteError(err))
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("delete planetarium dome %d: %w", id, ErrNotFound)
	}

	r.log.Info("Planetarium dome deleted", zap.Int64("dome_id", id))
	return nil
}
