package response

import (
	"time"

	"planetarium-booking/internal/data/entity"
)

// ShowSessionResponse echoes a written session.
type ShowSessionResponse struct {
	ID              int64     `json:"id"`
	ShowTime        time.Time `json:"show_time"`
	AstronomyShow   int64     `json:"astronomy_show"`
	PlanetariumDome int64     `json:"planetarium_dome"`
}

type ShowSessionListResponse struct {
	ID                      int64     `json:"id"`
	ShowTime                time.Time `json:"show_time"`
	AstronomyShowTitle      string    `json:"astronomy_show_title"`
	PlanetariumDomeName     string    `json:"planetarium_dome_name"`
	PlanetariumDomeCapacity int       `json:"planetarium_dome_capacity"`
	TicketsAvailable        int       `json:"tickets_available"`
}

type PlaceResponse struct {
	Row  int `json:"row"`
	Seat int `json:"seat"`
}

type ShowSessionDetailResponse struct {
	ID              int64                   `json:"id"`
	ShowTime        time.Time               `json:"show_time"`
	AstronomyShow   AstronomyShowResponse   `json:"astronomy_show"`
	PlanetariumDome PlanetariumDomeResponse `json:"planetarium_dome"`
	TakenPlaces     []PlaceResponse         `json:"taken_places"`
}

func ShowSessionToResponse(session entity.ShowSession) ShowSessionResponse {
	return ShowSessionResponse{
		ID:              session.ID,
		ShowTime:        session.ShowTime,
		AstronomyShow:   session.AstronomyShowID,
		PlanetariumDome: session.PlanetariumDomeID,
	}
}

func ShowSessionToListResponse(summary entity.ShowSessionSummary) ShowSessionListResponse {
	return ShowSessionListResponse{
		ID:                      summary.ID,
		ShowTime:                summary.ShowTime,
		AstronomyShowTitle:      summary.ShowTitle,
		PlanetariumDomeName:     summary.Dome.Name,
		PlanetariumDomeCapacity: summary.Dome.Capacity(),
		TicketsAvailable:        summary.TicketsAvailable(),
	}
}

func ShowSessionToDetailResponse(session entity.ShowSession, show entity.AstronomyShow, dome entity.PlanetariumDome, taken []entity.Place, mediaURL string) ShowSessionDetailResponse {
	places := make([]PlaceResponse, len(taken))
	for i, p := range taken {
		places[i] = PlaceResponse{Row: p.Row, Seat: p.Seat}
	}

	return ShowSessionDetailResponse{
		ID:              session.ID,
		ShowTime:        session.ShowTime,
		AstronomyShow:   AstronomyShowToResponse(show, mediaURL),
		PlanetariumDome: PlanetariumDomeToResponse(dome),
		TakenPlaces:     places,
	}
}
