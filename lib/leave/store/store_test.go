package store

import (
	"testing"
	"time"

	"employee-management-backend/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockStore(t *testing.T) (Provider, sqlmock.Sqlmock) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	return NewInstance(db), mock
}

func TestDecide(t *testing.T) {
	updMap := map[string]interface{}{
		"status":        models.LeaveApproved,
		"decided_by_id": "mgr1",
		"decided_at":    time.Date(2025, 6, 10, 10, 0, 0, 0, time.UTC),
	}
	t.Run("заявка на согласовании", func(t *testing.T) {
		store, mock := newMockStore(t)
		mock.ExpectExec(`UPDATE "leaves" SET .* WHERE id = \$\d+ AND status = \$\d+`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		ok, err := store.Decide("leave1", updMap)
		require.NoError(t, err)
		require.True(t, ok)
		require.NoError(t, mock.ExpectationsWereMet())
	})
	t.Run("статус уже изменен", func(t *testing.T) {
		store, mock := newMockStore(t)
		mock.ExpectExec(`UPDATE "leaves" SET .* WHERE id = \$\d+ AND status = \$\d+`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		ok, err := store.Decide("leave1", updMap)
		require.NoError(t, err)
		require.False(t, ok)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGetByIDNotFound(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectQuery(`SELECT \* FROM "leaves" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	rec, err := store.GetByID("missing")
	require.NoError(t, err)
	require.Nil(t, rec)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateEmptyMap(t *testing.T) {
	store, mock := newMockStore(t)
	require.NoError(t, store.Update("leave1", nil))
	require.NoError(t, mock.ExpectationsWereMet())
}
