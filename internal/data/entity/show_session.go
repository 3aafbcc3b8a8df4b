package entity

import "time"

type ShowSession struct {
	Base
	ShowTime          time.Time `db:"show_time"`
	AstronomyShowID   int64     `db:"astronomy_show_id"`
	PlanetariumDomeID int64     `db:"planetarium_dome_id"`
}

// ShowSessionSummary is a session row joined with its show, dome and sold ticket count.
type ShowSessionSummary struct {
	ShowSession
	ShowTitle   string
	Dome        PlanetariumDome
	TicketsSold int
}

func (s ShowSessionSummary) TicketsAvailable() int {
	return TicketsAvailable(s.Dome, s.TicketsSold)
}

func TicketsAvailable(dome PlanetariumDome, sold int) int {
	return dome.Capacity() - sold
}

// ShowSessionFilter: zero values add no condition. Date is compared as a UTC calendar day.
type ShowSessionFilter struct {
	Date             *time.Time
	AstronomyShowIDs []int64
	DomeIDs          []int64
}

type Place struct {
	Row  int `db:"row"`
	Seat int `db:"seat"`
}
