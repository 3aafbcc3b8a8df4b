package response

import (
	"planetarium-booking/internal/data/entity"
	"planetarium-booking/pkg/utils"
)

type ShowThemeResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type PlanetariumDomeResponse struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Rows       int    `json:"rows"`
	SeatsInRow int    `json:"seats_in_row"`
	Capacity   int    `json:"capacity"`
}

// AstronomyShowResponse is the list shape: theme names only.
type AstronomyShowResponse struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Image       *string  `json:"image"`
	ShowThemes  []string `json:"show_themes"`
}

type AstronomyShowDetailResponse struct {
	ID          int64               `json:"id"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Image       *string             `json:"image"`
	ShowThemes  []ShowThemeResponse `json:"show_themes"`
}

type AstronomyShowImageResponse struct {
	ID    int64   `json:"id"`
	Image *string `json:"image"`
}

func ShowThemeToResponse(theme entity.ShowTheme) ShowThemeResponse {
	return ShowThemeResponse{ID: theme.ID, Name: theme.Name}
}

func PlanetariumDomeToResponse(dome entity.PlanetariumDome) PlanetariumDomeResponse {
	return PlanetariumDomeResponse{
		ID:         dome.ID,
		Name:       dome.Name,
		Rows:       dome.Rows,
		SeatsInRow: dome.SeatsInRow,
		Capacity:   dome.Capacity(),
	}
}

// ImageURL turns a stored media path into the public URL, nil stays nil.
func ImageURL(mediaURL string, image *string) *string {
	if image == nil || *image == "" {
		return nil
	}
	url := utils.JoinURL(mediaURL, *image)
	return &url
}

func AstronomyShowToResponse(show entity.AstronomyShow, mediaURL string) AstronomyShowResponse {
	return AstronomyShowResponse{
		ID:          show.ID,
		Title:       show.Title,
		Description: show.Description,
		Image:       ImageURL(mediaURL, show.Image),
		ShowThemes:  show.ThemeNames(),
	}
}

func AstronomyShowToDetailResponse(show entity.AstronomyShow, mediaURL string) AstronomyShowDetailResponse {
	themes := make([]ShowThemeResponse, len(show.Themes))
	for i, theme := range show.Themes {
		themes[i] = ShowThemeToResponse(theme)
	}

	return AstronomyShowDetailResponse{
		ID:          show.ID,
		Title:       show.Title,
		Description: show.Description,
		Image:       ImageURL(mediaURL, show.Image),
		ShowThemes:  themes,
	}
}
