package request

import (
	"net/url"

	"planetarium-booking/internal/data/entity"
	"planetarium-booking/pkg/utils"
)

type AstronomyShowRequest struct {
	Title       string  `json:"title" validate:"required,min=1,max=255"`
	Description string  `json:"description"`
	ShowThemes  []int64 `json:"show_themes" validate:"unique,dive,gt=0"`
}

type AstronomyShowUpdateRequest struct {
	Title       *string  `json:"title,omitempty" validate:"omitempty,min=1,max=255"`
	Description *string  `json:"description,omitempty"`
	ShowThemes  *[]int64 `json:"show_themes,omitempty" validate:"omitempty,unique,dive,gt=0"`
}

// ParseAstronomyShowFilter reads ?title= and ?show-themes=1,2 from the query string.
func ParseAstronomyShowFilter(query url.Values) (entity.AstronomyShowFilter, map[string]string) {
	filter := entity.AstronomyShowFilter{Title: query.Get("title")}
	errs := map[string]string{}

	themeIDs, err := utils.ParseIDList(query.Get("show-themes"))
	if err != nil {
		errs["show-themes"] = "Must be a comma separated list of ids"
	}
	filter.ThemeIDs = themeIDs

	if len(errs) > 0 {
		return filter, errs
	}
	return filter, nil
}
