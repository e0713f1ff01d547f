package attributes

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/marvalsa/Integration-Web-Site/core/crm"
	"github.com/marvalsa/Integration-Web-Site/core/database"
	"github.com/marvalsa/Integration-Web-Site/core/report"
	"github.com/marvalsa/Integration-Web-Site/feature/sync/models"
)

// Task is the report name for the attribute sync.
const Task = "Sincronización de Atributos de Proyecto"

// Select pulls attribute parameters. The source keeps several parameter
// kinds in one module; only Tipo = 'Atributo' rows are attributes.
const Select = `select id, Nombre_atributo, Icon_cdn_google FROM Parametros WHERE (((Tipo = 'Atributo') and Nombre_atributo is not null) and Icon_cdn_google is not null)`

// Strategy mirrors attribute parameters into the "Project_Attributes" table.
type Strategy struct {
	db     *gorm.DB
	logger *zap.Logger
}

func New(db *gorm.DB, logger *zap.Logger) *Strategy {
	return &Strategy{db: db, logger: logger}
}

func (s *Strategy) Task() string { return Task }

func (s *Strategy) NaturalKey(rec crm.Record) string {
	return rec.ID()
}

func (s *Strategy) Reference(rec crm.Record) string {
	return "Atributo ID: " + rec.ID()
}

func (s *Strategy) Upsert(ctx context.Context, rec crm.Record, _ *report.Report) error {
	if rec.ID() == "" || rec.String("Nombre_atributo") == "" || rec.String("Icon_cdn_google") == "" {
		return fmt.Errorf("atributo inválido omitido (falta id, nombre o icono)")
	}

	attr := models.Attribute{
		ID:   rec.ID(),
		Name: rec.String("Nombre_atributo"),
		Icon: strings.ToLower(rec.String("Icon_cdn_google")),
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "icon"}),
	}).Create(&attr).Error
}

func (s *Strategy) Sweep(ctx context.Context, active []string) (int64, error) {
	return database.DeleteNotIn(ctx, s.db, &models.Attribute{}, "id", active)
}
