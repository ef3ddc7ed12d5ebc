package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"authd/internal/common"
	"authd/internal/domain/model"
	"authd/internal/platform/database"

	"github.com/google/uuid"
)

type TokenRepository interface {
	Create(ctx context.Context, token *model.Token) error
	// FindUserByTokenID resolves the owning account through the token in a
	// single joined query. Tokens never expire, so this is a pure lookup.
	FindUserByTokenID(ctx context.Context, id uuid.UUID) (*model.User, error)
	FindByUserID(ctx context.Context, userID int64) ([]model.Token, error)
}

type pgTokenRepository struct {
	db database.DBTX
}

func NewPgTokenRepository(db database.DBTX) TokenRepository {
	return &pgTokenRepository{db: db}
}

func (r *pgTokenRepository) Create(ctx context.Context, token *model.Token) error {
	query := `INSERT INTO user_tokens (id, user_id, created, updated)
	          VALUES ($1, $2, $3, $4)`
	_, err := r.db.ExecContext(ctx, query, token.ID, token.UserID, token.Created, token.Updated)
	if err != nil {
		return fmt.Errorf("pgTokenRepository.Create: %w", err)
	}
	return nil
}

func (r *pgTokenRepository) FindUserByTokenID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	query := `SELECT u.id, u.username, u.password, u.role, u.fullname, u.created, u.updated
	          FROM users u JOIN user_tokens t ON t.user_id = u.id
	          WHERE t.id = $1`
	user := &model.User{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&user.ID, &user.Username, &user.Password, &user.Role, &user.Fullname, &user.Created, &user.Updated,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgTokenRepository.FindUserByTokenID: %w", err)
	}
	return user, nil
}

func (r *pgTokenRepository) FindByUserID(ctx context.Context, userID int64) ([]model.Token, error) {
	query := `SELECT id, user_id, created, updated
	          FROM user_tokens WHERE user_id = $1 ORDER BY created`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("pgTokenRepository.FindByUserID: %w", err)
	}
	defer rows.Close()

	var tokens []model.Token
	for rows.Next() {
		var t model.Token
		if err := rows.Scan(&t.ID, &t.UserID, &t.Created, &t.Updated); err != nil {
			return nil, fmt.Errorf("pgTokenRepository.FindByUserID: %w", err)
		}
		tokens = append(tokens, t)
	}
	return tokens, rows.Err()
}
