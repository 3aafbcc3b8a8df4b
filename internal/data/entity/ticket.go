package entity

type Ticket struct {
	Base
	Row           int   `db:"row"`
	Seat          int   `db:"seat"`
	ShowSessionID int64 `db:"show_session_id"`
	ReservationID int64 `db:"reservation_id"`

	// filled by reservation listings
	Session *ShowSessionSummary `db:"-"`
}

func (t Ticket) Place() Place {
	return Place{Row: t.Row, Seat: t.Seat}
}
