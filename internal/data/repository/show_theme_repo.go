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

type ShowThemeRepository interface {
	Create(ctx context.Context, theme *entity.ShowTheme) error
	FindByID(ctx context.Context, id int64) (*entity.ShowTheme, error)
	FindByIDs(ctx context.Context, ids []int64) ([]entity.ShowTheme, error)
	FindAll(ctx context.Context) ([]entity.ShowTheme, error)
	Update(ctx context.Context, theme *entity.ShowTheme) error
	Delete(ctx context.Context, id int64) error
}

type showThemeRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewShowThemeRepository(db database.PgxIface, log *zap.Logger) ShowThemeRepository {
	return &showThemeRepository{
		db:  db,
		log: log.With(zap.String("repository", "show_theme")),
	}
}

func (r *showThemeRepository) Create(ctx context.Context, theme *entity.ShowTheme) error {
	query := `INSERT INTO show_themes (name) VALUES ($1) RETURNING id`

	if err := r.db.QueryRow(ctx, query, theme.Name).Scan(&theme.ID); err != nil {
		r.log.Error("Failed to create show theme", zap.Error(err), zap.String("name", theme.Name))
		return fmt.Errorf("create show theme %q: %w", theme.Name, mapWriteError(err))
	}

	return nil
}

func (r *showThemeRepository) FindByID(ctx context.Context, id int64) (*entity.ShowTheme, error) {
	query := `SELECT id, name FROM show_themes WHERE id = $1`

	var theme entity.ShowTheme
	err := r.db.QueryRow(ctx, query, id).Scan(&theme.ID, &theme.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find show theme by ID", zap.Error(err), zap.Int64("show_theme_id", id))
		return nil, fmt.Errorf("find show theme by ID %d: %w", id, err)
	}

	return &theme, nil
}

// FindByIDs returns the existing themes among ids, ordered by id.
func (r *showThemeRepository) FindByIDs(ctx context.Context, ids []int64) ([]entity.ShowTheme, error) {
	if len(ids) == 0 {
		return []entity.ShowTheme{}, nil
	}

	query := `SELECT id, name FROM show_themes WHERE id = ANY($1) ORDER BY id`

	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		r.log.Error("Failed to find show themes by IDs", zap.Error(err), zap.Int64s("ids", ids))
		return nil, fmt.Errorf("find show themes by IDs: %w", err)
	}
	defer rows.Close()

	return scanThemes(rows)
}

func (r *showThemeRepository) FindAll(ctx context.Context) ([]entity.ShowTheme, error) {
	query := `SELECT id, name FROM show_themes ORDER BY id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to list show themes", zap.Error(err))
		return nil, fmt.Errorf("list show themes: %w", err)
	}
	defer rows.Close()

	return scanThemes(rows)
}

func (r *showThemeRepository) Update(ctx context.Context, theme *entity.ShowTheme) error {
	query := `UPDATE show_themes SET name = $2 WHERE id = $1`

	result, err := r.db.Exec(ctx, query, theme.ID, theme.Name)
	if err != nil {
		r.log.Error("Failed to update show theme", zap.Error(err), zap.Int64("show_theme_id", theme.ID))
		return fmt.Errorf("update show theme %d: %w", theme.ID, mapWriteError(err))
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("update show theme %d: %w", theme.ID, ErrNotFound)
	}

	return nil
}

func (r *showThemeRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM show_themes WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete show theme", zap.Error(err), zap.Int64("show_theme_id", id))
		return fmt.Errorf("delete show theme %d: %w", id, mapDeleteError(err))
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("delete show theme %d: %w", id, ErrNotFound)
	}

	r.log.Info("Show theme deleted", zap.Int64("show_theme_id", id))
	return nil
}

func scanThemes(rows pgx.Rows) ([]entity.ShowTheme, error) {
	themes := []entity.ShowTheme{}
	for rows.Next() {
		var theme entity.ShowTheme
		if err := rows.Scan(&theme.ID, &theme.Name); err != nil {
			return nil, fmt.Errorf("scan show theme row: %w", err)
		}
		themes = append(themes, theme)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate show theme rows: %w", err)
	}
	return themes, nil
}
