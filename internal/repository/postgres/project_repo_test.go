package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"

	"github.com/rechunk/rechunk/internal/errs"
	"github.com/rechunk/rechunk/internal/model"
)

func newDB(t *testing.T) (*DB, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	return &DB{Pool: mock}, mock
}

func TestProjectRepo_Create_OK(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewProjectRepo(db)

	now := time.Now()
	p := &model.Project{
		ID:         "proj-1",
		ReadKey:    "read-abc",
		WriteKey:   "write-def",
		PublicKey:  "PUB",
		PrivateKey: "PRIV",
	}

	mock.ExpectQuery(`INSERT INTO projects`).
		WithArgs("proj-1", "read-abc", "write-def", "PUB", "PRIV").
		WillReturnRows(pgxmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

	require.NoError(t, r.Create(context.Background(), p))
	require.Equal(t, now, p.CreatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProjectRepo_GetByID_OK(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewProjectRepo(db)

	now := time.Now()
	mock.ExpectQuery(`SELECT id, read_key, write_key, public_key, private_key, created_at, updated_at`).
		WithArgs("proj-1").
		WillReturnRows(pgxmock.NewRows(
			[]string{"id", "read_key", "write_key", "public_key", "private_key", "created_at", "updated_at"},
		).AddRow("proj-1", "read-abc", "write-def", "PUB", "PRIV", now, now))

	p, err := r.GetByID(context.Background(), "proj-1")
	require.NoError(t, err)
	require.Equal(t, "proj-1", p.ID)
	require.Equal(t, "write-def", p.WriteKey)
	require.Equal(t, "PRIV", p.PrivateKey)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProjectRepo_GetByID_NotFound(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewProjectRepo(db)

	mock.ExpectQuery(`SELECT id, read_key, write_key`).
		WithArgs("missing").
		WillReturnError(errors.New("no rows in result set"))

	_, err := r.GetByID(context.Background(), "missing")
	require.Error(t, err)
}

func TestProjectRepo_GetByID_MapsNoRows(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewProjectRepo(db)

	mock.ExpectQuery(`SELECT id, read_key, write_key`).
		WithArgs("missing").
		WillReturnRows(pgxmock.NewRows(
			[]string{"id", "read_key", "write_key", "public_key", "private_key", "created_at", "updated_at"},
		))

	_, err := r.GetByID(context.Background(), "missing")
	require.ErrorIs(t, err, errs.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
