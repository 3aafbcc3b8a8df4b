package request

type TicketRequest struct {
	Row         int   `json:"row" validate:"required,gt=0"`
	Seat        int   `json:"seat" validate:"required,gt=0"`
	ShowSession int64 `json:"show_session" validate:"required,gt=0"`
}

type ReservationRequest struct {
	Tickets []TicketRequest `json:"tickets" validate:"required,min=1,max=100,dive"`
}
