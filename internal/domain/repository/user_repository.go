package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"authd/internal/common"
	"authd/internal/domain/model"
	"authd/internal/platform/database"

	"github.com/jackc/pgx/v5/pgconn"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	FindByID(ctx context.Context, id int64) (*model.User, error)
	FindAll(ctx context.Context) ([]model.User, error)
}

type pgUserRepository struct {
	db database.DBTX
}

func NewPgUserRepository(db database.DBTX) UserRepository {
	return &pgUserRepository{db: db}
}

// Create inserts the user and fills in the server-assigned ID. A duplicate
// username maps to common.ErrConflict, whether it came from a plain retry or
// from losing a concurrent-creation race.
func (r *pgUserRepository) Create(ctx context.Context, user *model.User) error {
	query := `INSERT INTO users (username, password, role, fullname, created, updated)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	err := r.db.QueryRowContext(ctx, query,
		user.Username, user.Password, user.Role, user.Fullname, user.Created, user.Updated,
	).Scan(&user.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("user with given username already exists: %w", common.ErrConflict)
		}
		return fmt.Errorf("pgUserRepository.Create: %w", err)
	}
	return nil
}

func (r *pgUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	query := `SELECT id, username, password, role, fullname, created, updated
	          FROM users WHERE username = $1`
	user := &model.User{}
	err := r.db.QueryRowContext(ctx, query, username).Scan(
		&user.ID, &user.Username, &user.Password, &user.Role, &user.Fullname, &user.Created, &user.Updated,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgUserRepository.FindByUsername: %w", err)
	}
	return user, nil
}

func (r *pgUserRepository) FindByID(ctx context.Context, id int64) (*model.User, error) {
	query := `SELECT id, username, password, role, fullname, created, updated
	          FROM users WHERE id = $1`
	user := &model.User{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&user.ID, &user.Username, &user.Password, &user.Role, &user.Fullname, &user.Created, &user.Updated,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgUserRepository.FindByID: %w", err)
	}
	return user, nil
}

func (r *pgUserRepository) FindAll(ctx context.Context) ([]model.User, error) {
	query := `SELECT id, username, password, role, fullname, created, updated
	          FROM users ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("pgUserRepository.FindAll: %w", err)
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		var user model.User
		if err := rows.Scan(
			&user.ID, &user.Username, &user.Password, &user.Role, &user.Fullname, &user.Created, &user.Updated,
		); err != nil {
			return nil, fmt.Errorf("pgUserRepository.FindAll: %w", err)
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique constraint violation
		return true
	}
	// The in-memory driver used by the test suite reports constraint
	// violations as text only.
	return strings.Contains(err.Error(), "UNIQUE constraint")
}
