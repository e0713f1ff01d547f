package database

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func TestConnect(t *testing.T) {
	t.Run("Invalid Connection", func(t *testing.T) {
		cfg := Config{
			Host:     "localhost",
			Port:     9999, // Unused port
			User:     "postgres",
			Password: "wrongpassword",
			Name:     "integracion",
			SSLMode:  "disable",
		}

		// Connect should fail (timeout or refused). We expect an error.
		db, err := Connect(cfg)
		assert.Error(t, err)
		assert.Nil(t, db)
	})
}

func TestPing(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 db,
		PreferSimpleProtocol: true,
	}), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	now := time.Now()
	mock.ExpectQuery("SELECT NOW()").WillReturnRows(
		sqlmock.NewRows([]string{"now"}).AddRow(now))

	got, err := Ping(context.Background(), gormDB)
	assert.NoError(t, err)
	assert.WithinDuration(t, now, got, time.Second)
	assert.NoError(t, mock.ExpectationsWereMet())
}
