package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"authd/internal/common"
	"authd/internal/common/security"
	"authd/internal/domain/model"
	"authd/internal/domain/repository"
	"authd/internal/platform/database"
	"authd/internal/platform/logging"

	"github.com/google/uuid"
)

// invalidCredentials is the single error for both unknown-user and
// wrong-password, so login responses never reveal which factor failed.
var invalidCredentials = common.BadRequestf("Invalid username/password")

type AuthService struct {
	db     *sql.DB
	hasher *security.Hasher
	expiry time.Duration
	log    logging.Logger
}

func NewAuthService(db *sql.DB, hasher *security.Hasher, expiry time.Duration, log logging.Logger) *AuthService {
	return &AuthService{db: db, hasher: hasher, expiry: expiry, log: log}
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login verifies the credentials and creates a fresh session for the
// account. Expired sessions are opportunistically pruned inside the same
// transaction that persists the new session.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*model.User, uuid.UUID, error) {
	if req.Username == "" || req.Password == "" {
		return nil, uuid.Nil, common.Validationf("username and password must not be empty")
	}

	user, err := repository.NewPgUserRepository(s.db).FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			s.log.Info(ctx, "login failed", "username", req.Username)
			return nil, uuid.Nil, invalidCredentials
		}
		return nil, uuid.Nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !s.hasher.Verify(req.Password, user.Password) {
		s.log.Info(ctx, "login failed", "username", req.Username)
		return nil, uuid.Nil, invalidCredentials
	}

	now := time.Now().UTC()
	session := model.NewSession(user.ID, now)

	err = database.WithTxRetry(ctx, s.db, func(ctx context.Context, tx database.DBTX) error {
		repo := repository.NewPgSessionRepository(tx)
		if err := repo.Create(ctx, session); err != nil {
			return err
		}
		if _, err := repo.DeleteExpired(ctx, now.Add(-s.expiry)); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, uuid.Nil, fmt.Errorf("failed to create session: %w", err)
	}

	s.log.Info(ctx, "login succeeded", "user_id", user.ID, "session_id", session.ID)
	return user, session.ID, nil
}
