package response

import (
	"time"

	"planetarium-booking/internal/data/entity"
)

type TicketSessionResponse struct {
	ID                      int64     `json:"id"`
	ShowTime                time.Time `json:"show_time"`
	AstronomyShowTitle      string    `json:"astronomy_show_title"`
	PlanetariumDomeName     string    `json:"planetarium_dome_name"`
	PlanetariumDomeCapacity int       `json:"planetarium_dome_capacity"`
}

type TicketResponse struct {
	ID          int64                 `json:"id"`
	Row         int                   `json:"row"`
	Seat        int                   `json:"seat"`
	ShowSession TicketSessionResponse `json:"show_session"`
}

type ReservationResponse struct {
	ID        int64            `json:"id"`
	CreatedAt time.Time        `json:"created_at"`
	Tickets   []TicketResponse `json:"tickets"`
}

func TicketToResponse(ticket entity.Ticket) TicketResponse {
	resp := TicketResponse{
		ID:          ticket.ID,
		Row:         ticket.Row,
		Seat:        ticket.Seat,
		ShowSession: TicketSessionResponse{ID: ticket.ShowSessionID},
	}

	if ticket.Session == nil {
		return resp
	}

	resp.ShowSession = TicketSessionResponse{
		ID:                      ticket.Session.ID,
		ShowTime:                ticket.Session.ShowTime,
		AstronomyShowTitle:      ticket.Session.ShowTitle,
		PlanetariumDomeName:     ticket.Session.Dome.Name,
		PlanetariumDomeCapacity: ticket.Session.Dome.Capacity(),
	}
	return resp
}

func ReservationToResponse(reservation entity.Reservation) ReservationResponse {
	tickets := make([]TicketResponse, len(reservation.Tickets))
	for i, ticket := range reservation.Tickets {
		tickets[i] = TicketToResponse(ticket)
	}

	return ReservationResponse{
		ID:        reservation.ID,
		CreatedAt: reservation.CreatedAt,
		Tickets:   tickets,
	}
}
