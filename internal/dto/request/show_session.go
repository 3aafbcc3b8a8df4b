package request

import (
	"net/url"
	"time"

	"planetarium-booking/internal/data/entity"
	"planetarium-booking/pkg/utils"
)

type ShowSessionRequest struct {
	ShowTime        time.Time `json:"show_time" validate:"required"`
	AstronomyShow   int64     `json:"astronomy_show" validate:"required,gt=0"`
	PlanetariumDome int64     `json:"planetarium_dome" validate:"required,gt=0"`
}

type ShowSessionUpdateRequest struct {
	ShowTime        *time.Time `json:"show_time,omitempty"`
	AstronomyShow   *int64     `json:"astronomy_show,omitempty" validate:"omitempty,gt=0"`
	PlanetariumDome *int64     `json:"planetarium_dome,omitempty" validate:"omitempty,gt=0"`
}

// ParseShowSessionFilter reads ?date=YYYY-MM-DD, ?astronomy-show= and ?planetarium-dome=.
func ParseShowSessionFilter(query url.Values) (entity.ShowSessionFilter, map[string]string) {
	var filter entity.ShowSessionFilter
	errs := map[string]string{}

	if raw := query.Get("date"); raw != "" {
		date, err := time.Parse("2006-01-02", raw)
		if err != nil {
			errs["date"] = "Must be a date in YYYY-MM-DD format"
		} else {
			filter.Date = &date
		}
	}

	showIDs, err := utils.ParseIDList(query.Get("astronomy-show"))
	if err != nil {
		errs["astronomy-show"] = "Must be a comma separated list of ids"
	}
	filter.AstronomyShowIDs = showIDs

	domeIDs, err := utils.ParseIDList(query.Get("planetarium-dome"))
	if err != nil {
		errs["planetarium-dome"] = "Must be a comma separated list of ids"
	}
	filter.DomeIDs = domeIDs

	if len(errs) > 0 {
		return filter, errs
	}
	return filter, nil
}
