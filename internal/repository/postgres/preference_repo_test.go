package postgres

import (
	"context"
	"database/sql"
	"testing"

	"bugninjaplatform/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func TestPreferenceRepository_Get(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		want    string
		wantErr error
	}{
		{
			name: "found",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT value\s+FROM dashboard_preferences\s+WHERE key = \$1`).
					WithArgs("selectedProjectId").
					WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow("p1"))
			},
			want: "p1",
		},
		{
			name: "unset",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT value`).
					WithArgs("selectedProjectId").
					WillReturnError(sql.ErrNoRows)
			},
			wantErr: domain.ErrNotFound,
		},
		{
			name: "db error",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT value`).
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: sql.ErrConnDone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewPreferenceRepository(db)
			got, err := repo.Get(ctx, "selectedProjectId")
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPreferenceRepository_Set(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`INSERT INTO dashboard_preferences \(key, value, updated_at\)`).
		WithArgs("selectedProjectId", "p2").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = NewPreferenceRepository(db).Set(context.Background(), "selectedProjectId", "p2")
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPreferenceRepository_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`DELETE FROM dashboard_preferences WHERE key = \$1`).
		WithArgs("selectedProjectId").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = NewPreferenceRepository(db).Delete(context.Background(), "selectedProjectId")
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureSchema(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS dashboard_preferences`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, EnsureSchema(context.Background(), db))
	require.NoError(t, mock.ExpectationsWereMet())
}
