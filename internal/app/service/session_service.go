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
	"authd/internal/platform/database"
	"authd/internal/platform/logging"

	"github.com/google/uuid"
)

type SessionService struct {
	db      *sql.DB
	expiry  time.Duration
	renewal time.Duration
	log     logging.Logger
}

func NewSessionService(db *sql.DB, expiry, renewal time.Duration, log logging.Logger) *SessionService {
	return &SessionService{db: db, expiry: expiry, renewal: renewal, log: log}
}

// Resolve maps a session identity to the owning account, applying the
// sliding-expiry policy. The read, the expiry prune and the throttled
// renewal all run in one transaction, so a concurrent prune and renewal on
// the same session cannot interleave into a half-applied state. Returns
// (nil, nil) when no valid identity exists; that is not an error.
func (s *SessionService) Resolve(ctx context.Context, sessionID uuid.UUID) (*model.User, error) {
	now := time.Now().UTC()

	var user *model.User
	err := database.WithTxRetry(ctx, s.db, func(ctx context.Context, tx database.DBTX) error {
		user = nil
		repo := repository.NewPgSessionRepository(tx)

		u, updated, err := repo.FindUserBySessionID(ctx, sessionID)
		if errors.Is(err, common.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		age := now.Sub(updated.UTC())
		if age > s.expiry {
			// Lazy pruning: the expired resolution attempt sweeps every
			// expired session, not just this one.
			n, err := repo.DeleteExpired(ctx, now.Add(-s.expiry))
			if err != nil {
				return err
			}
			s.log.Info(ctx, "expired session resolved, pruned", "deleted", n)
			return nil
		}

		if age >= s.renewal {
			// Throttled renewal: at most one timestamp write per renewal
			// interval. A lost update here means the row was pruned or
			// renewed concurrently; either outcome is consistent.
			if _, err := repo.Renew(ctx, sessionID, updated, now); err != nil {
				return err
			}
		}

		user = u
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to resolve session: %w", err)
	}
	return user, nil
}

// Prune deletes every session whose updated timestamp fell out of the expiry
// window. Idempotent; returns the number of rows removed.
func (s *SessionService) Prune(ctx context.Context) (int64, error) {
	cutoff := time.Now().UTC().Add(-s.expiry)

	var deleted int64
	err := database.WithTxRetry(ctx, s.db, func(ctx context.Context, tx database.DBTX) error {
		n, err := repository.NewPgSessionRepository(tx).DeleteExpired(ctx, cutoff)
		deleted = n
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("failed to prune sessions: %w", err)
	}
	return deleted, nil
}

// ListForUser returns the session summaries owned by the given account.
func (s *SessionService) ListForUser(ctx context.Context, userID int64) ([]model.Session, error) {
	sessions, err := repository.NewPgSessionRepository(s.db).FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	return sessions, nil
}
