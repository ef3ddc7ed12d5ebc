package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"authd/internal/common"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func newSessionRepoWithMock(t *testing.T) (SessionRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPgSessionRepository(db), mock
}

func TestSessionRenew_GuardedByPreviousTimestamp(t *testing.T) {
	repo, mock := newSessionRepoWithMock(t)

	id := uuid.New()
	prev := time.Now().UTC().Add(-48 * time.Hour)
	now := time.Now().UTC()

	mock.ExpectExec(`UPDATE user_sessions SET updated = \$3 WHERE id = \$1 AND updated = \$2`).
		WithArgs(id, prev, now).
		WillReturnResult(sqlmock.NewResult(0, 1))

	renewed, err := repo.Renew(context.Background(), id, prev, now)
	require.NoError(t, err)
	require.True(t, renewed)
}

func TestSessionRenew_LostRaceAffectsNoRows(t *testing.T) {
	repo, mock := newSessionRepoWithMock(t)

	id := uuid.New()
	prev := time.Now().UTC().Add(-48 * time.Hour)
	now := time.Now().UTC()

	// A concurrent prune (or renewal) already removed/advanced the row:
	// the guarded update silently loses instead of resurrecting it.
	mock.ExpectExec(`UPDATE user_sessions`).
		WithArgs(id, prev, now).
		WillReturnResult(sqlmock.NewResult(0, 0))

	renewed, err := repo.Renew(context.Background(), id, prev, now)
	require.NoError(t, err)
	require.False(t, renewed)
}

func TestSessionDeleteExpired_ReturnsCount(t *testing.T) {
	repo, mock := newSessionRepoWithMock(t)

	cutoff := time.Now().UTC().Add(-90 * 24 * time.Hour)
	mock.ExpectExec(`DELETE FROM user_sessions WHERE updated < \$1`).
		WithArgs(cutoff).
		WillReturnResult(sqlmock.NewResult(0, 3))

	n, err := repo.DeleteExpired(context.Background(), cutoff)
	require.NoError(t, err)
	require.Equal(t, int64(3), n)
}

func TestSessionFindUserBySessionID_SingleJoinedQuery(t *testing.T) {
	repo, mock := newSessionRepoWithMock(t)

	id := uuid.New()
	now := time.Now().UTC()
	updated := now.Add(-time.Hour)
	rows := sqlmock.NewRows([]string{"id", "username", "password", "role", "fullname", "created", "updated", "s_updated"}).
		AddRow(int64(1), "alice", "hash", "user", "Alice A", now, now, updated)

	mock.ExpectQuery(`SELECT .+ FROM users u JOIN user_sessions s ON s\.user_id = u\.id`).
		WithArgs(id).
		WillReturnRows(rows)

	user, sessionUpdated, err := repo.FindUserBySessionID(context.Background(), id)
	require.NoError(t, err)
	require.Equal(t, "alice", user.Username)
	require.True(t, sessionUpdated.Equal(updated))
}

func TestSessionFindUserBySessionID_NotFound(t *testing.T) {
	repo, mock := newSessionRepoWithMock(t)

	mock.ExpectQuery(`SELECT .+ FROM users u JOIN user_sessions`).
		WillReturnError(sql.ErrNoRows)

	_, _, err := repo.FindUserBySessionID(context.Background(), uuid.New())
	require.ErrorIs(t, err, common.ErrNotFound)
}
