package repository

import (
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"atelier/internal/models"
)

func newHostRepo(t *testing.T) (*HostSQLite, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return NewHostSQLite(db), mock
}

func TestHostCreate(t *testing.T) {
	created := time.Date(2026, 10, 16, 17, 30, 0, 0, time.UTC)
	host := models.Host{Username: "riley", PasswordHash: "h123", CreatedAt: created}

	tests := []struct {
		name    string
		result  func(*sqlmock.ExpectedExec)
		wantID  int
		wantErr error
		errText string
	}{
		{
			name:   "inserted",
			result: func(e *sqlmock.ExpectedExec) { e.WillReturnResult(sqlmock.NewResult(42, 1)) },
			wantID: 42,
		},
		{
			name: "username taken",
			result: func(e *sqlmock.ExpectedExec) {
				e.WillReturnError(errors.New("constraint failed: UNIQUE constraint failed: hosts.username (2067)"))
			},
			wantErr: ErrHostExists,
		},
		{
			name:    "exec error",
			result:  func(e *sqlmock.ExpectedExec) { e.WillReturnError(errors.New("disk I/O error")) },
			errText: "insert host",
		},
		{
			name: "no last insert id",
			result: func(e *sqlmock.ExpectedExec) {
				e.WillReturnResult(sqlmock.NewErrorResult(errors.New("no last id")))
			},
			errText: "get last insert id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newHostRepo(t)
			tt.result(mock.ExpectExec(regexp.QuoteMeta(insertHostSQL)).
				WithArgs("riley", "h123", "2026-10-16 17:30:00.000"))

			id, err := repo.Create(ctx(t), host)

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Zero(t, id)
			case tt.errText != "":
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errText)
				assert.Zero(t, id)
			default:
				require.NoError(t, err)
				assert.Equal(t, tt.wantID, id)
			}
		})
	}
}

func TestHostGetByUsername(t *testing.T) {
	created := time.Date(2026, 10, 16, 17, 30, 0, 0, time.UTC)
	columns := []string{"id", "username", "password_hash", "created_at"}

	t.Run("found", func(t *testing.T) {
		repo, mock := newHostRepo(t)
		mock.ExpectQuery(regexp.QuoteMeta(selectHostByUsernameSQL)).WithArgs("riley").
			WillReturnRows(sqlmock.NewRows(columns).AddRow(7, "Riley", "h123", created))

		h, err := repo.GetByUsername(ctx(t), "riley")

		require.NoError(t, err)
		assert.Equal(t, models.Host{ID: 7, Username: "Riley", PasswordHash: "h123", CreatedAt: created}, h)
	})

	t.Run("missing", func(t *testing.T) {
		repo, mock := newHostRepo(t)
		mock.ExpectQuery(regexp.QuoteMeta(selectHostByUsernameSQL)).WithArgs("ghost").
			WillReturnError(sql.ErrNoRows)

		_, err := repo.GetByUsername(ctx(t), "ghost")

		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("query error", func(t *testing.T) {
		repo, mock := newHostRepo(t)
		mock.ExpectQuery(regexp.QuoteMeta(selectHostByUsernameSQL)).WithArgs("sam").
			WillReturnError(errors.New("database is locked"))

		_, err := repo.GetByUsername(ctx(t), "sam")

		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrNotFound)
		assert.Contains(t, err.Error(), "select host")
	})
}
