package statuses

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/marvalsa/Integration-Web-Site/core/crm"
	"github.com/marvalsa/Integration-Web-Site/core/sequence"
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

func TestNaturalKeyTrimsName(t *testing.T) {
	s := New(nil, nil, zap.NewNop())
	assert.Equal(t, "En construcción", s.NaturalKey(crm.Record{"Estado": "  En construcción "}))
}

func TestUpsertSkipsKnownStatus(t *testing.T) {
	gdb, mock := newMockDB(t)
	s := New(gdb, sequence.New(gdb), zap.NewNop())

	mock.ExpectQuery(`SELECT \* FROM "Project_Status" WHERE name = \$1`).
		WithArgs("Lanzamiento", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow("1000000000000000001", "Lanzamiento"))

	rec := crm.Record{"Estado": "Lanzamiento"}
	require.NoError(t, s.Upsert(context.Background(), rec, nil))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertInsertsNewStatusWithMintedID(t *testing.T) {
	gdb, mock := newMockDB(t)
	s := New(gdb, sequence.New(gdb), zap.NewNop())

	mock.ExpectQuery(`SELECT \* FROM "Project_Status" WHERE name = \$1`).
		WithArgs("Preventa", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))
	mock.ExpectQuery(`INSERT INTO "Sequences"`).
		WithArgs(SequenceName, sequence.DefaultStart, int64(1), int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"next_value"}).AddRow(sequence.DefaultStart + 1))
	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "Project_Status"`).
		WithArgs("1000000000000000001", "Preventa").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	rec := crm.Record{"Estado": "Preventa"}
	require.NoError(t, s.Upsert(context.Background(), rec, nil))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSweepDeletesByName(t *testing.T) {
	gdb, mock := newMockDB(t)
	s := New(gdb, nil, zap.NewNop())

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "Project_Status" WHERE "name" NOT IN`).
		WithArgs("Lanzamiento", "Preventa").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	deleted, err := s.Sweep(context.Background(), []string{"Lanzamiento", "Preventa"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}
