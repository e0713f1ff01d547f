package sequence

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

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
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

func TestReserveFirstBlock(t *testing.T) {
	gdb, mock := newMockDB(t)

	mock.ExpectQuery(`INSERT INTO "Sequences"`).
		WithArgs("project_status", DefaultStart, int64(3), int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"next_value"}).AddRow(DefaultStart + 3))

	first, err := New(gdb).Reserve(context.Background(), "project_status", 3)
	require.NoError(t, err)
	assert.Equal(t, DefaultStart, first)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReserveSubsequentBlock(t *testing.T) {
	gdb, mock := newMockDB(t)

	mock.ExpectQuery(`INSERT INTO "Sequences"`).
		WithArgs("project_status", DefaultStart, int64(5), int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"next_value"}).AddRow(DefaultStart + 10))

	first, err := New(gdb).Reserve(context.Background(), "project_status", 5)
	require.NoError(t, err)
	assert.Equal(t, DefaultStart+5, first)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReserveRejectsNonPositiveBlock(t *testing.T) {
	gdb, _ := newMockDB(t)

	_, err := New(gdb).Reserve(context.Background(), "project_status", 0)
	assert.Error(t, err)
}
