package repository

import (
	"context"
	"regexp"
	"testing"

	"planetarium-booking/internal/data/entity"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestBuildAstronomyShowQuery(t *testing.T) {
	query, args := buildAstronomyShowQuery(entity.AstronomyShowFilter{})
	assert.NotContains(t, query, "strpos")
	assert.NotContains(t, query, "EXISTS")
	assert.Empty(t, args)

	query, args = buildAstronomyShowQuery(entity.AstronomyShowFilter{Title: "Moon", ThemeIDs: []int64{2, 3}})
	assert.Contains(t, query, "strpos(s.title, $1) > 0")
	assert.Contains(t, query, "ast.show_theme_id = ANY($2)")
	assert.Equal(t, []any{"Moon", []int64{2, 3}}, args)

	_, args = buildAstronomyShowQuery(entity.AstronomyShowFilter{ThemeIDs: []int64{4}})
	assert.Equal(t, []any{[]int64{4}}, args)
}

func TestAstronomyShowRepository_Create(t *testing.T) {
	mock := newMockPool(t)
	repo := NewAstronomyShowRepository(mock, zap.NewNop())

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO astronomy_shows (title, description, image)")).
		WithArgs("Black Holes", "Deep space", (*string)(nil)).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(5)))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO astronomy_show_themes")).
		WithArgs(int64(5), []int64{1, 2}).
		WillReturnResult(pgxmock.NewResult("INSERT", 2))
	mock.ExpectCommit()

	show := &entity.AstronomyShow{
		Title:       "Black Holes",
		Description: "Deep space",
		Themes:      []entity.ShowTheme{{Base: entity.Base{ID: 1}}, {Base: entity.Base{ID: 2}}},
	}
	require.NoError(t, repo.Create(context.Background(), show))

	assert.Equal(t, int64(5), show.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAstronomyShowRepository_FindAll_WithThemes(t *testing.T) {
	mock := newMockPool(t)
	repo := NewAstronomyShowRepository(mock, zap.NewNop())
	image := "uploads/astronomy_shows/moon.jpg"

	mock.ExpectQuery(regexp.QuoteMeta("FROM astronomy_shows s")).
		WithArgs("Moon").
		WillReturnRows(pgxmock.NewRows([]string{"id", "title", "description", "image"}).
			AddRow(int64(1), "Moon", "Craters", &image).
			AddRow(int64(2), "Full Moon", "Tides", nil))
	mock.ExpectQuery(regexp.QuoteMeta("WHERE ast.astronomy_show_id = ANY($1)")).
		WithArgs([]int64{1, 2}).
		WillReturnRows(pgxmock.NewRows([]string{"astronomy_show_id", "id", "name"}).
			AddRow(int64(1), int64(3), "Lunar"))

	shows, err := repo.FindAll(context.Background(), entity.AstronomyShowFilter{Title: "Moon"})
	require.NoError(t, err)
	require.Len(t, shows, 2)

	assert.Equal(t, []string{"Lunar"}, shows[0].ThemeNames())
	require.NotNil(t, shows[0].Image)
	assert.Equal(t, image, *shows[0].Image)
	assert.Nil(t, shows[1].Image)
	assert.Empty(t, shows[1].ThemeNames())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAstronomyShowRepository_Delete_Referenced(t *testing.T) {
	mock := newMockPool(t)
	repo := NewAstronomyShowRepository(mock, zap.NewNop())

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM astronomy_shows WHERE id = $1")).
		WithArgs(int64(5)).
		WillReturnError(&pgconn.PgError{Code: "23503"})

	err := repo.Delete(context.Background(), 5)
	assert.ErrorIs(t, err, ErrReferenced)
}

func TestAstronomyShowRepository_Update_LeavesImage(t *testing.T) {
	mock := newMockPool(t)
	repo := NewAstronomyShowRepository(mock, zap.NewNop())
	stale := "uploads/astronomy_shows/old.png"

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE astronomy_shows\s+SET title = \$2, description = \$3\s+WHERE id = \$1`).
		WithArgs(int64(5), "Black Holes", "Event horizons").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM astronomy_show_themes")).
		WithArgs(int64(5)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO astronomy_show_themes")).
		WithArgs(int64(5), []int64{3}).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	show := &entity.AstronomyShow{
		Base:        entity.Base{ID: 5},
		Title:       "Black Holes",
		Description: "Event horizons",
		Image:       &stale,
		Themes:      []entity.ShowTheme{{Base: entity.Base{ID: 3}}},
	}
	require.NoError(t, repo.Update(context.Background(), show))
	assert.NoError(t, mock.ExpectationsWereMet())
}
