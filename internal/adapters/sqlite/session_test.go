package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bft-labs/distclient/internal/domain"
)

func TestSessionRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	repo, err := Open(ctx, dir, "user_prefs")
	require.NoError(t, err)
	defer repo.Close()

	s, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.True(t, s.IsEmpty())

	want := domain.Session{Token: "tok", IsLoggedIn: true}
	require.NoError(t, repo.Save(ctx, want))
	require.NoError(t, repo.Save(ctx, want))

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	require.NoError(t, repo.Save(ctx, domain.Session{}))
	got, err = repo.Load(ctx)
	require.NoError(t, err)
	assert.True(t, got.IsEmpty())
}

func TestSessionRepository_PersistsAcrossOpen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	first, err := Open(ctx, dir, "user_prefs")
	require.NoError(t, err)
	require.NoError(t, first.Save(ctx, domain.Session{Token: "tok", IsLoggedIn: true}))
	require.NoError(t, first.Close())

	second, err := Open(ctx, dir, "user_prefs")
	require.NoError(t, err)
	defer second.Close()

	got, err := second.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok", got.Token)

	other, err := Open(ctx, dir, "another")
	require.NoError(t, err)
	defer other.Close()
	got, err = other.Load(ctx)
	require.NoError(t, err)
	assert.True(t, got.IsEmpty())
}

func TestSessionRepository_SaveRollsBackOnFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO preferences").
		WithArgs("user_prefs", "token", "tok").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO preferences").
		WithArgs("user_prefs", "is_logged_in", "true").
		WillReturnError(errors.New("disk I/O error"))
	mock.ExpectRollback()

	repo := NewSessionRepository(db, "user_prefs")
	err = repo.Save(context.Background(), domain.Session{Token: "tok", IsLoggedIn: true})
	assert.EqualError(t, err, "disk I/O error")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepository_LoadQueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT key, value FROM preferences").
		WillReturnError(errors.New("database is locked"))

	repo := NewSessionRepository(db, "user_prefs")
	_, err = repo.Load(context.Background())
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepository_LoadBadFlag(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT key, value FROM preferences").
		WillReturnRows(sqlmock.NewRows([]string{"key", "value"}).
			AddRow("token", "tok").
			AddRow("is_logged_in", "maybe"))

	repo := NewSessionRepository(db, "user_prefs")
	_, err = repo.Load(context.Background())
	assert.ErrorContains(t, err, "is_logged_in")
}
