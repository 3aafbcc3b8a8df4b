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

type AstronomyShowRepository interface {
	Create(ctx context.Context, show *entity.AstronomyShow) error
	FindByID(ctx context.Context, id int64) (*entity.AstronomyShow, error)
	FindAll(ctx context.Context, filter entity.AstronomyShowFilter) ([]entity.AstronomyShow, error)
	Update(ctx context.Context, show *entity.AstronomyShow) error
	UpdateImage(ctx context.Context, id int64, image string) error
	Delete(ctx context.Context, id int64) error
}

type astronomyShowRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewAstronomyShowRepository(db database.PgxIface, log *zap.Logger) AstronomyShowRepository {
	return &astronomyShowRepository{
		db:  db,
		log: log.With(zap.String("repository", "astronomy_show")),
	}
}

// Create inserts the show and its theme links in one transaction.
func (r *astronomyShowRepository) Create(ctx context.Context, show *entity.AstronomyShow) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO astronomy_shows (title, description, image)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	if err := tx.QueryRow(ctx, query, show.Title, show.Description, show.Image).Scan(&show.ID); err != nil {
		r.log.Error("Failed to create astronomy show", zap.Error(err), zap.String("title", show.Title))
		return fmt.Errorf("create astronomy show %q: %w", show.Title, mapWriteError(err))
	}

	if err := r.linkThemes(ctx, tx, show.ID, themeIDs(show.Themes)); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit astronomy show %d: %w", show.ID, err)
	}

	return nil
}

func (r *astronomyShowRepository) FindByID(ctx context.Context, id int64) (*entity.AstronomyShow, error) {
	query := `SELECT id, title, description, image FROM astronomy_shows WHERE id = $1`

	var show entity.AstronomyShow
	err := r.db.QueryRow(ctx, query, id).Scan(&show.ID, &show.Title, &show.Description, &show.Image)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find astronomy show by ID", zap.Error(err), zap.Int64("astronomy_show_id", id))
		return nil, fmt.Errorf("find astronomy show by ID %d: %w", id, err)
	}

	themes, err := r.themesByShow(ctx, []int64{id})
	if err != nil {
		return nil, err
	}
	show.Themes = themes[id]
	if show.Themes == nil {
		show.Themes = []entity.ShowTheme{}
	}

	return &show, nil
}

// buildAstronomyShowQuery turns the filter into the list query and its arguments.
func buildAstronomyShowQuery(filter entity.AstronomyShowFilter) (string, []any) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`
		SELECT s.id, s.title, s.description, s.image
		FROM astronomy_shows s
		WHERE 1=1
	`)

	args := []any{}
	argCount := 1

	if filter.Title != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND strpos(s.title, $%d) > 0", argCount))
		args = append(args, filter.Title)
		argCount++
	}

	if len(filter.ThemeIDs) > 0 {
		queryBuilder.WriteString(fmt.Sprintf(
			" AND EXISTS (SELECT 1 FROM astronomy_show_themes ast WHERE ast.astronomy_show_id = s.id AND ast.show_theme_id = ANY($%d))",
			argCount,
		))
		args = append(args, filter.ThemeIDs)
		argCount++
	}

	queryBuilder.WriteString(" ORDER BY s.id")

	return queryBuilder.String(), args
}

func (r *astronomyShowRepository) FindAll(ctx context.Context, filter entity.AstronomyShowFilter) ([]entity.AstronomyShow, error) {
	query, args := buildAstronomyShowQuery(filter)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to list astronomy shows", zap.Error(err))
		return nil, fmt.Errorf("list astronomy shows: %w", err)
	}
	defer rows.Close()

	shows := []entity.AstronomyShow{}
	ids := []int64{}
	for rows.Next() {
		var show entity.AstronomyShow
		if err := rows.Scan(&show.ID, &show.Title, &show.Description, &show.Image); err != nil {
			r.log.Error("Failed to scan astronomy show row", zap.Error(err))
			return nil, fmt.Errorf("scan astronomy show row: %w", err)
		}
		shows = append(shows, show)
		ids = append(ids, show.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate astronomy show rows: %w", err)
	}
	rows.Close()

	if len(shows) == 0 {
		return shows, nil
	}

	themes, err := r.themesByShow(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range shows {
		shows[i].Themes = themes[shows[i].ID]
		if shows[i].Themes == nil {
			shows[i].Themes = []entity.ShowTheme{}
		}
	}

	return shows, nil
}

// Update rewrites the show row and replaces its theme links.
func (r *astronomyShowRepository) Update(ctx context.Context, show *entity.AstronomyShow) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	// image is owned by UpdateImage
	query := `
		UPDATE astronomy_shows
		SET title = $2, description = $3
		WHERE id = $1
	`
	result, err := tx.Exec(ctx, query, show.ID, show.Title, show.Description)
	if err != nil {
		r.log.Error("Failed to update astronomy show", zap.Error(err), zap.Int64("astronomy_show_id", show.ID))
		return fmt.Errorf("update astronomy show %d: %w", show.ID, mapWriteError(err))
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("update astronomy show %d: %w", show.ID, ErrNotFound)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM astronomy_show_themes WHERE astronomy_show_id = $1`, show.ID); err != nil {
		return fmt.Errorf("clear themes of astronomy show %d: %w", show.ID, err)
	}

	if err := r.linkThemes(ctx, tx, show.ID, themeIDs(show.Themes)); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit astronomy show %d: %w", show.ID, err)
	}

	return nil
}

func (r *astronomyShowRepository) UpdateImage(ctx context.Context, id int64, image string) error {
	query := `UPDATE astronomy_shows SET image = $2 WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id, image)
	if err != nil {
		r.log.Error("Failed to update astronomy show image", zap.Error(err), zap.Int64("astronomy_show_id", id))
		return fmt.Errorf("update image of astronomy show %d: %w", id, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("update image of astronomy show %d: %w", id, ErrNotFound)
	}

	return nil
}

func (r *astronomyShowRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM astronomy_shows WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete astronomy show", zap.Error(err), zap.Int64("astronomy_show_id", id))
		return fmt.Errorf("delete astronomy show %d: %w", id, mapDeleteError(err))
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("delete astronomy show %d: %w", id, ErrNotFound)
	}

	r.log.Info("Astronomy show deleted", zap.Int64("astronomy_show_id", id))
	return nil
}

func (r *astronomyShowRepository) linkThemes(ctx context.Context, tx pgx.Tx, showID int64, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}

	query := `
		INSERT INTO astronomy_show_themes (astronomy_show_id, show_theme_id)
		SELECT $1, unnest($2::bigint[])
		ON CONFLICT DO NOTHING
	`
	if _, err := tx.Exec(ctx, query, showID, ids); err != nil {
		r.log.Error("Failed to link show themes",
			zap.Error(err),
			zap.Int64("astronomy_show_id", showID),
			zap.Int64s("show_theme_ids", ids),
		)
		return fmt.Errorf("link themes to astronomy show %d: %w", showID, mapWriteError(err))
	}

	return nil
}

// themesByShow loads the themes of several shows with a single join.
func (r *astronomyShowRepository) themesByShow(ctx context.Context, showIDs []int64) (map[int64][]entity.ShowTheme, error) {
	query := `
		SELECT ast.astronomy_show_id, t.id, t.name
		FROM astronomy_show_themes ast
		INNER JOIN show_themes t ON t.id = ast.show_theme_id
		WHERE ast.astronomy_show_id = ANY($1)
		ORDER BY t.id
	`

	rows, err := r.db.Query(ctx, query, showIDs)
	if err != nil {
		r.log.Error("Failed to load show themes", zap.Error(err))
		return nil, fmt.Errorf("load themes of astronomy shows: %w", err)
	}
	defer rows.Close()

	result := make(map[int64][]entity.ShowTheme, len(showIDs))
	for rows.Next() {
		var showID int64
		var theme entity.ShowTheme
		if err := rows.Scan(&showID, &theme.ID, &theme.Name); err != nil {
			return nil, fmt.Errorf("scan show theme link: %w", err)
		}
		result[showID] = append(result[showID], theme)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate show theme links: %w", err)
	}

	return result, nil
}

func themeIDs(themes []entity.ShowTheme) []int64 {
	ids := make([]int64, 0, len(themes))
	for _, t := range themes {
		ids = append(ids, t.ID)
	}
	return ids
}
