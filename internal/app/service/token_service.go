package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"authd/internal/common"
	"authd/internal/domain/model"
	"authd/internal/domain/repository"
	"authd/internal/platform/logging"

	"github.com/google/uuid"
)

type TokenService struct {
	db  *sql.DB
	log logging.Logger
}

func NewTokenService(db *sql.DB, log logging.Logger) *TokenService {
	return &TokenService{db: db, log: log}
}

// Create issues a new token owned by the given account.
func (s *TokenService) Create(ctx context.Context, userID int64) (*model.Token, error) {
	token := model.NewToken(userID, time.Now().UTC())
	if err := repository.NewPgTokenRepository(s.db).Create(ctx, token); err != nil {
		return nil, fmt.Errorf("failed to create token: %w", err)
	}
	s.log.Info(ctx, "token issued", "user_id", userID, "token_id", token.ID)
	return token, nil
}

// ListForUser returns only the tokens owned by the given account; there is
// no lookup path that crosses account boundaries.
func (s *TokenService) ListForUser(ctx context.Context, userID int64) ([]model.Token, error) {
	tokens, err := repository.NewPgTokenRepository(s.db).FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tokens: %w", err)
	}
	return tokens, nil
}

// Resolve maps a token identity to the owning account. Tokens never expire,
// so resolution is a pure lookup with no state mutation. Returns (nil, nil)
// when no matching token exists.
func (s *TokenService) Resolve(ctx context.Context, tokenID uuid.UUID) (*model.User, error) {
	user, err := repository.NewPgTokenRepository(s.db).FindUserByTokenID(ctx, tokenID)
	if errors.Is(err, common.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve token: %w", err)
	}
	return user, nil
}
