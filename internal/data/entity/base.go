package entity

import (
	"time"
)

type Base struct {
	ID int64 `db:"id"`
}

type BaseSimple struct {
	ID        int64     `db:"id"`
	CreatedAt time.Time `db:"created_at"`
}
