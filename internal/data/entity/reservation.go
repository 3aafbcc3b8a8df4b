package entity

type Reservation struct {
	BaseSimple
	UserID  int64    `db:"user_id"`
	Tickets []Ticket `db:"-"`
}
