package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"authd/internal/common"
	"authd/internal/domain/model"
	"authd/internal/platform/database"

	"github.com/google/uuid"
)

type SessionRepository interface {
	Create(ctx context.Context, session *model.Session) error
	// FindUserBySessionID resolves the owning account and the session's
	// updated timestamp in a single joined query, so the authorization
	// decision observes one consistent snapshot.
	FindUserBySessionID(ctx context.Context, id uuid.UUID) (*model.User, time.Time, error)
	// Renew advances updated from prev to now. The prev guard makes the
	// write conditional: if a concurrent prune deleted the row (or a
	// concurrent renewal already advanced it), zero rows match and the
	// update silently loses.
	Renew(ctx context.Context, id uuid.UUID, prev, now time.Time) (bool, error)
	DeleteExpired(ctx context.Context, cutoff time.Time) (int64, error)
	FindByUserID(ctx context.Context, userID int64) ([]model.Session, error)
}

type pgSessionRepository struct {
	db database.DBTX
}

func NewPgSessionRepository(db database.DBTX) SessionRepository {
	return &pgSessionRepository{db: db}
}

func (r *pgSessionRepository) Create(ctx context.Context, session *model.Session) error {
	query := `INSERT INTO user_sessions (id, user_id, created, updated)
	          VALUES ($1, $2, $3, $4)`
	_, err := r.db.ExecContext(ctx, query, session.ID, session.UserID, session.Created, session.Updated)
	if err != nil {
		return fmt.Errorf("pgSessionRepository.Create: %w", err)
	}
	return nil
}

func (r *pgSessionRepository) FindUserBySessionID(ctx context.Context, id uuid.UUID) (*model.User, time.Time, error) {
	query := `SELECT u.id, u.username, u.password, u.role, u.fullname, u.created, u.updated, s.updated
	          FROM users u JOIN user_sessions s ON s.user_id = u.id
	          WHERE s.id = $1`
	user := &model.User{}
	var sessionUpdated time.Time
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&user.ID, &user.Username, &user.Password, &user.Role, &user.Fullname,
		&user.Created, &user.Updated, &sessionUpdated,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, time.Time{}, common.ErrNotFound
		}
		return nil, time.Time{}, fmt.Errorf("pgSessionRepository.FindUserBySessionID: %w", err)
	}
	return user, sessionUpdated, nil
}

func (r *pgSessionRepository) Renew(ctx context.Context, id uuid.UUID, prev, now time.Time) (bool, error) {
	query := `UPDATE user_sessions SET updated = $3 WHERE id = $1 AND updated = $2`
	res, err := r.db.ExecContext(ctx, query, id, prev, now)
	if err != nil {
		return false, fmt.Errorf("pgSessionRepository.Renew: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("pgSessionRepository.Renew: %w", err)
	}
	return n > 0, nil
}

func (r *pgSessionRepository) DeleteExpired(ctx context.Context, cutoff time.Time) (int64, error) {
	query := `DELETE FROM user_sessions WHERE updated < $1`
	res, err := r.db.ExecContext(ctx, query, cutoff)
	if err != nil {
		return 0, fmt.Errorf("pgSessionRepository.DeleteExpired: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("pgSessionRepository.DeleteExpired: %w", err)
	}
	return n, nil
}

func (r *pgSessionRepository) FindByUserID(ctx context.Context, userID int64) ([]model.Session, error) {
	query := `SELECT id, user_id, created, updated
	          FROM user_sessions WHERE user_id = $1 ORDER BY created`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("pgSessionRepository.FindByUserID: %w", err)
	}
	defer rows.Close()

	var sessions []model.Session
	for rows.Next() {
		var s model.Session
		if err := rows.Scan(&s.ID, &s.UserID, &s.Created, &s.Updated); err != nil {
			return nil, fmt.Errorf("pgSessionRepository.FindByUserID: %w", err)
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}
