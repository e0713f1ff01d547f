package projects

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/marvalsa/Integration-Web-Site/core/crm"
	"github.com/marvalsa/Integration-Web-Site/core/reconcile"
	"github.com/marvalsa/Integration-Web-Site/core/report"
)

func TestSyncTypologiesSkipsIneligible(t *testing.T) {
	gdb, mock := newMockDB(t)
	s := New(gdb, &fakeAPI{}, reconcile.Config{Workers: 2}, zap.NewNop())

	// Only the typology with available units reaches the database.
	mock.ExpectQuery(`SELECT \* FROM "Typologies" WHERE project_id = \$1 AND name = \$2`).
		WithArgs("p1", "Tipo A", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "Typologies"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "Projects" SET`).
		WithArgs(18, 5000000, "p1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	typs := []crm.Record{
		{"id": "t1", "Nombre": "Tipo A", "Und_Disponibles": "3", "Plazo_en_meses": "18", "Cuota_inicial1": "5000000"},
		{"id": "t2", "Nombre": "Tipo B", "Und_Disponibles": "0"},
		{"id": "t3", "Und_Disponibles": "5"}, // no name
	}
	rep := report.New(Task)
	require.NoError(t, s.syncTypologies(context.Background(), "p1", typs, rep))

	assert.Equal(t, 0, rep.Metrics.Failed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSyncTypologiesResetsAggregatesWhenNoneEligible(t *testing.T) {
	gdb, mock := newMockDB(t)
	s := New(gdb, &fakeAPI{}, reconcile.Config{Workers: 2}, zap.NewNop())

	// No typology to write, but the parent aggregates still reset so a
	// sold-out project does not keep last run's figures.
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "Projects" SET`).
		WithArgs(0, 0, "p1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	typs := []crm.Record{
		{"id": "t1", "Nombre": "Tipo A", "Und_Disponibles": "0", "Plazo_en_meses": "18"},
	}
	rep := report.New(Task)
	require.NoError(t, s.syncTypologies(context.Background(), "p1", typs, rep))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateAggregatesMinOverEligible(t *testing.T) {
	gdb, mock := newMockDB(t)
	s := New(gdb, &fakeAPI{}, reconcile.Config{Workers: 2}, zap.NewNop())

	// Minimum over the carried values only: the zero deposit on Tipo B is
	// "not set", not "free".
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "Projects" SET "delivery_time"=\$1,"deposit"=\$2 WHERE hc = \$3`).
		WithArgs(12, 18000000, "p1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	typs := []crm.Record{
		{"id": "t1", "Nombre": "Tipo A", "Plazo_en_meses": "18", "Cuota_inicial1": "18000000"},
		{"id": "t2", "Nombre": "Tipo B", "Plazo_en_meses": "12", "Cuota_inicial1": "0"},
	}
	require.NoError(t, s.updateAggregates(context.Background(), "p1", typs))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSyncTypologiesChildFailureRecordedNotFatal(t *testing.T) {
	gdb, mock := newMockDB(t)
	s := New(gdb, &fakeAPI{}, reconcile.Config{Workers: 2}, zap.NewNop())

	mock.ExpectQuery(`SELECT \* FROM "Typologies"`).
		WillReturnError(assertableErr("connection reset"))

	typs := []crm.Record{
		{"id": "t1", "Nombre": "Tipo A", "Und_Disponibles": "3"},
	}
	rep := report.New(Task)
	require.NoError(t, s.syncTypologies(context.Background(), "p1", typs, rep))

	assert.Equal(t, 1, rep.Metrics.Failed)
	require.Len(t, rep.Errors, 1)
	assert.Contains(t, rep.Errors[0].Reference, "Tipología 'Tipo A'")
}

func TestTypologyRowMapping(t *testing.T) {
	rec := crm.Record{
		"id":               "t1",
		"Nombre":           "Tipo A",
		"Descripci_n":      "Dos alcobas",
		"Precio_desde":     "185000000",
		"Precio_hasta":     "210000000",
		"Habitaciones":     "2",
		"Ba_os":            "2",
		"Area_construida":  "54.3",
		"Area_privada":     "49.8",
		"Separacion":       "2000000",
		"Cuota_inicial1":   "18000000",
		"Plazo_en_meses":   "18",
		"Und_Disponibles":  "7",
	}
	row := typologyRow("p1", rec)

	assert.Equal(t, "t1", row.ID)
	assert.Equal(t, "p1", row.ProjectID)
	assert.Equal(t, "Dos alcobas", row.Description)
	assert.Equal(t, 185000000, row.PriceFrom)
	assert.Equal(t, 54.3, row.BuiltArea)
	assert.Equal(t, 7, row.AvailableCount)
	assert.Equal(t, "[]", row.Gallery)
	assert.Nil(t, row.Plans)
}

type assertableErr string

func (e assertableErr) Error() string { return string(e) }
