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

func TestShowSessionService_GetShowSessions_Availability(t *testing.T) {
	repo, m := newRepoMocks(t)
	svc := NewShowSessionService(repo, "/media/", zap.NewNop())
	ctx := context.Background()
	showTime := time.Date(2026, 3, 5, 19, 30, 0, 0, time.UTC)
	filter := entity.ShowSessionFilter{DomeIDs: []int64{6}}

	m.session.On("FindAll", ctx, filter, 5, 0).Return([]entity.ShowSessionSummary{{
		ShowSession: entity.ShowSession{Base: entity.Base{ID: 3}, ShowTime: showTime, AstronomyShowID: 5, PlanetariumDomeID: 6},
		ShowTitle:   "Black Holes",
		Dome:        blueDome,
		TicketsSold: 1,
	}}, nil)
	m.session.On("CountAll", ctx, filter).Return(int64(1), nil)

	page, err := svc.GetShowSessions(ctx, filter, &request.PaginatedRequest{Page: 1, PerPage: 5})
	require.NoError(t, err)
	require.Len(t, page.Data, 1)

	session := page.Data[0]
	assert.Equal(t, "Black Holes", session.AstronomyShowTitle)
	assert.Equal(t, "Blue", session.PlanetariumDomeName)
	assert.Equal(t, 90, session.PlanetariumDomeCapacity)
	assert.Equal(t, 89, session.TicketsAvailable)
	assert.Equal(t, 1, page.Pagination.TotalPages)
}

func TestShowSessionService_GetShowSessionByID(t *testing.T) {
	repo, m := newRepoMocks(t)
	svc := NewShowSessionService(repo, "/media/", zap.NewNop())
	ctx := context.Background()
	image := "uploads/astronomy_shows/black-holes.jpg"

	m.session.On("FindByID", ctx, int64(3)).Return(&entity.ShowSession{
		Base: entity.Base{ID: 3}, AstronomyShowID: 5, PlanetariumDomeID: 6,
	}, nil)
	m.show.On("FindByID", ctx, int64(5)).Return(&entity.AstronomyShow{
		Base: entity.Base{ID: 5}, Title: "Black Holes", Image: &image,
		Themes: []entity.ShowTheme{{Base: entity.Base{ID: 1}, Name: "Gravity"}},
	}, nil)
	m.dome.On("FindByID", ctx, int64(6)).Return(&blueDome, nil)
	m.session.On("TakenPlaces", ctx, int64(3)).Return([]entity.Place{{Row: 1, Seat: 2}}, nil)

	detail, err := svc.GetShowSessionByID(ctx, 3)
	require.NoError(t, err)

	assert.Equal(t, "Black Holes", detail.AstronomyShow.Title)
	assert.Equal(t, []string{"Gravity"}, detail.AstronomyShow.ShowThemes)
	require.NotNil(t, detail.AstronomyShow.Image)
	assert.Equal(t, "/media/"+image, *detail.AstronomyShow.Image)
	assert.Equal(t, 90, detail.PlanetariumDome.Capacity)
	assert.Len(t, detail.TakenPlaces, 1)
}

func TestShowSessionService_GetShowSessionByID_Missing(t *testing.T) {
	repo, m := newRepoMocks(t)
	svc := NewShowSessionService(repo, "/media/", zap.NewNop())

	m.session.On("FindByID", mock.Anything, int64(3)).Return(nil, nil)

	_, err := svc.GetShowSessionByID(context.Background(), 3)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestShowSessionService_CreateShowSession_UnknownReferences(t *testing.T) {
	repo, m := newRepoMocks(t)
	svc := NewShowSessionService(repo, "/media/", zap.NewNop())
	ctx := context.Background()

	m.show.On("FindByID", ctx, int64(5)).Return(nil, nil)
	m.dome.On("FindByID", ctx, int64(6)).Return(nil, nil)

	_, err := svc.CreateShowSession(ctx, &request.ShowSessionRequest{
		ShowTime:        time.Now(),
		AstronomyShow:   5,
		PlanetariumDome: 6,
	})

	verr := asValidationError(t, err)
	assert.Contains(t, verr.Fields, "astronomy_show")
	assert.Contains(t, verr.Fields, "planetarium_dome")
	m.session.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestShowSessionService_PatchShowSession_MoveToSmallerDome(t *testing.T) {
	repo, m := newRepoMocks(t)
	svc := NewShowSessionService(repo, "/media/", zap.NewNop())
	ctx := context.Background()
	smallDome := entity.PlanetariumDome{Base: entity.Base{ID: 8}, Name: "Small", Rows: 3, SeatsInRow: 3}

	m.session.On("FindByID", ctx, int64(3)).Return(&entity.ShowSession{
		Base: entity.Base{ID: 3}, AstronomyShowID: 5, PlanetariumDomeID: 6,
	}, nil)
	m.show.On("FindByID", ctx, int64(5)).Return(&entity.AstronomyShow{Base: entity.Base{ID: 5}}, nil)
	m.dome.On("FindByID", ctx, int64(8)).Return(&smallDome, nil)
	m.session.On("TakenPlaces", ctx, int64(3)).Return([]entity.Place{{Row: 1, Seat: 1}, {Row: 7, Seat: 2}}, nil)

	newDome := int64(8)
	_, err := svc.PatchShowSession(ctx, 3, &request.ShowSessionUpdateRequest{PlanetariumDome: &newDome})

	assert.ErrorIs(t, err, ErrConflict)
	m.session.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestShowSessionService_PatchShowSession_TimeOnly(t *testing.T) {
	repo, m := newRepoMocks(t)
	svc := NewShowSessionService(repo, "/media/", zap.NewNop())
	ctx := context.Background()
	newTime := time.Date(2026, 4, 1, 20, 0, 0, 0, time.UTC)

	m.session.On("FindByID", ctx, int64(3)).Return(&entity.ShowSession{
		Base: entity.Base{ID: 3}, AstronomyShowID: 5, PlanetariumDomeID: 6,
	}, nil)
	m.show.On("FindByID", ctx, int64(5)).Return(&entity.AstronomyShow{Base: entity.Base{ID: 5}}, nil)
	m.dome.On("FindByID", ctx, int64(6)).Return(&blueDome, nil)
	m.session.On("Update", ctx, mock.MatchedBy(func(s *entity.ShowSession) bool {
		return s.ShowTime.Equal(newTime) && s.PlanetariumDomeID == 6
	})).Return(nil)

	resp, err := svc.PatchShowSession(ctx, 3, &request.ShowSessionUpdateRequest{ShowTime: &newTime})
	require.NoError(t, err)
	assert.Equal(t, newTime, resp.ShowTime)
	m.session.AssertNotCalled(t, "TakenPlaces", mock.Anything, mock.Anything)
}

func TestShowSessionService_PatchShowSession_SeatSoldDuringMove(t *testing.T) {
	repo, m := newRepoMocks(t)
	svc := NewShowSessionService(repo, "/media/", zap.NewNop())
	ctx := context.Background()
	smallDome := entity.PlanetariumDome{Base: entity.Base{ID: 8}, Name: "Small", Rows: 3, SeatsInRow: 3}

	m.session.On("FindByID", ctx, int64(3)).Return(&entity.ShowSession{
		Base: entity.Base{ID: 3}, AstronomyShowID: 5, PlanetariumDomeID: 6,
	}, nil)
	m.show.On("FindByID", ctx, int64(5)).Return(&entity.AstronomyShow{Base: entity.Base{ID: 5}}, nil)
	m.dome.On("FindByID", ctx, int64(8)).Return(&smallDome, nil)
	m.session.On("TakenPlaces", ctx, int64(3)).Return([]entity.Place{{Row: 1, Seat: 1}}, nil)
	// a seat outside the small grid was sold between the check and the write
	m.session.On("Update", ctx, mock.Anything).
		Return(fmt.Errorf("1 sold tickets of show session 3: %w", repository.ErrOutsideGrid))

	newDome := int64(8)
	_, err := svc.PatchShowSession(ctx, 3, &request.ShowSessionUpdateRequest{PlanetariumDome: &newDome})

	assert.ErrorIs(t, err, ErrConflict)
}
