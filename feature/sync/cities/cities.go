package cities

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/marvalsa/Integration-Web-Site/core/crm"
	"github.com/marvalsa/Integration-Web-Site/core/database"
	"github.com/marvalsa/Integration-Web-Site/core/report"
	"github.com/marvalsa/Integration-Web-Site/core/utils"
	"github.com/marvalsa/Integration-Web-Site/feature/sync/models"
)

// Task is the report name for the cities sync.
const Task = "Sincronización de Ciudades"

// Select pulls the city lookup off every commercial project. The same city
// appears once per project, so heavy deduplication is expected.
const Select = `SELECT Ciudad.Name, Ciudad.id FROM Proyectos_Comerciales WHERE Ciudad is not null`

// Strategy mirrors the distinct city lookups into the "Cities" table.
type Strategy struct {
	db     *gorm.DB
	logger *zap.Logger
}

func New(db *gorm.DB, logger *zap.Logger) *Strategy {
	return &Strategy{db: db, logger: logger}
}

func (s *Strategy) Task() string { return Task }

func (s *Strategy) NaturalKey(rec crm.Record) string {
	return rec.String("Ciudad.id")
}

func (s *Strategy) Reference(rec crm.Record) string {
	return "Ciudad ID: " + rec.String("Ciudad.id")
}

func (s *Strategy) Upsert(ctx context.Context, rec crm.Record, _ *report.Report) error {
	name := utils.CityName(rec.String("Ciudad.Name"))
	if name == "" {
		return fmt.Errorf("nombre de ciudad vacío después de limpiar: %q", rec.String("Ciudad.Name"))
	}

	city := models.City{
		ID:       rec.String("Ciudad.id"),
		Name:     name,
		IsPublic: false,
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "is_public"}),
	}).Create(&city).Error
}

func (s *Strategy) Sweep(ctx context.Context, active []string) (int64, error) {
	return database.DeleteNotIn(ctx, s.db, &models.City{}, "id", active)
}
