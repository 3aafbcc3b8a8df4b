package repository

import (
	"context"
	"errors"
	"fmt"

	"planetarium-booking/internal/data/entity"
	"planetarium-booking/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByID(ctx context.Context, id int64) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	SetStaff(ctx context.Context, id int64, isStaff bool) error
}

type userRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewUserRepository(db database.PgxIface, log *zap.Logger) UserRepository {
	return &userRepository{
		db:  db,
		log: log.With(zap.String("repository", "user")),
	}
}

// Create inserts a new user record into the database
func (ur *userRepository) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (email, password, is_staff)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	err := ur.db.QueryRow(ctx, query, user.Email, user.PasswordHash, user.IsStaff).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		ur.log.Error("Failed to create user", zap.Error(err), zap.String("email", user.Email))
		return fmt.Errorf("create user %s: %w", user.Email, mapWriteError(err))
	}

	return nil
}

func (ur *userRepository) FindByID(ctx context.Context, id int64) (*entity.User, error) {
	query := `
		SELECT id, email, password, is_staff, created_at
		FROM users
		WHERE id = $1
	`

	return ur.findOne(ctx, query, id)
}

func (ur *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	query := `
		SELECT id, email, password, is_staff, created_at
		FROM users
		WHERE lower(email) = lower($1)
	`

	return ur.findOne(ctx, query, email)
}

func (ur *userRepository) SetStaff(ctx context.Context, id int64, isStaff bool) error {
	result, err := ur.db.Exec(ctx, `UPDATE users SET is_staff = $2 WHERE id = $1`, id, isStaff)
	if err != nil {
		ur.log.Error("Failed to update staff flag", zap.Error(err), zap.Int64("user_id", id))
		return fmt.Errorf("set staff flag of user %d: %w", id, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("set staff flag of user %d: %w", id, ErrNotFound)
	}
	return nil
}

func (ur *userRepository) findOne(ctx context.Context, query string, arg any) (*entity.User, error) {
	var user entity.User
	err := ur.db.QueryRow(ctx, query, arg).Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.IsStaff,
		&user.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		ur.log.Error("Failed to find user", zap.Error(err))
		return nil, fmt.Errorf("find user: %w", err)
	}

	return &user, nil
}
