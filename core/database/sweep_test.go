package database

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type sweepRow struct {
	ID string
}

func (sweepRow) TableName() string { return "Sweep_Rows" }

func newMockGorm(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 db,
		PreferSimpleProtocol: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	return gdb, mock
}

func TestDeleteNotIn(t *testing.T) {
	gdb, mock := newMockGorm(t)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "Sweep_Rows" WHERE "id" NOT IN \(\$1,\$2\)`).
		WithArgs("a", "b").
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectCommit()

	deleted, err := DeleteNotIn(context.Background(), gdb, &sweepRow{}, "id", []string{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteNotInEmptyKeysWipesTable(t *testing.T) {
	gdb, mock := newMockGorm(t)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "Sweep_Rows"`).
		WillReturnResult(sqlmock.NewResult(0, 7))
	mock.ExpectCommit()

	deleted, err := DeleteNotIn(context.Background(), gdb, &sweepRow{}, "id", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(7), deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}
