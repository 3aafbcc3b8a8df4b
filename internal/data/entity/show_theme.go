package entity

type ShowTheme struct {
	Base
	Name string `db:"name"`
}
