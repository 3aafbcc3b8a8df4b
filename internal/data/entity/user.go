package entity

type User struct {
	BaseSimple
	Email        string `db:"email"`
	PasswordHash string `db:"password"`
	IsStaff      bool   `db:"is_staff"`
}
