package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"authd/internal/common"
	"authd/internal/domain/model"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

func newUserRepoWithMock(t *testing.T) (UserRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPgUserRepository(db), mock, db
}

func TestUserCreate_AssignsID(t *testing.T) {
	repo, mock, _ := newUserRepoWithMock(t)

	now := time.Now().UTC()
	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("alice", "hash", model.RoleUser, "Alice A", now, now).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))

	user := &model.User{Username: "alice", Password: "hash", Role: model.RoleUser, Fullname: "Alice A", Created: now, Updated: now}
	require.NoError(t, repo.Create(context.Background(), user))
	require.Equal(t, int64(7), user.ID)
}

func TestUserCreate_UniqueViolationMapsToConflict(t *testing.T) {
	repo, mock, _ := newUserRepoWithMock(t)

	mock.ExpectQuery(`INSERT INTO users`).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	err := repo.Create(context.Background(), &model.User{Username: "alice"})
	require.ErrorIs(t, err, common.ErrConflict)
}

func TestUserFindByUsername_NotFound(t *testing.T) {
	repo, mock, _ := newUserRepoWithMock(t)

	mock.ExpectQuery(`SELECT .+ FROM users WHERE username`).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByUsername(context.Background(), "ghost")
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestUserFindAll_OrderedByID(t *testing.T) {
	repo, mock, _ := newUserRepoWithMock(t)

	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{"id", "username", "password", "role", "fullname", "created", "updated"}).
		AddRow(int64(1), "admin", "h1", model.RoleAdmin, "Admin", now, now).
		AddRow(int64(2), "user", "h2", model.RoleUser, "User", now, now)
	mock.ExpectQuery(`SELECT .+ FROM users ORDER BY id`).WillReturnRows(rows)

	users, err := repo.FindAll(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	require.Equal(t, "admin", users[0].Username)
	require.Equal(t, "user", users[1].Username)
}
