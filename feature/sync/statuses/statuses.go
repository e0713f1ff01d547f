package statuses

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/marvalsa/Integration-Web-Site/core/crm"
	"github.com/marvalsa/Integration-Web-Site/core/database"
	"github.com/marvalsa/Integration-Web-Site/core/report"
	"github.com/marvalsa/Integration-Web-Site/core/sequence"
	"github.com/marvalsa/Integration-Web-Site/feature/sync/models"
)

// Task is the report name for the project status sync.
const Task = "Sincronización de Estados de Proyecto"

// Select pulls the status picklist value off every commercial project.
const Select = `SELECT Estado FROM Proyectos_Comerciales WHERE Estado is not null`

// SequenceName is the row in the sequence table statuses draw ids from.
const SequenceName = "project_status"

// Strategy mirrors the distinct status names into the "Project_Status"
// table. The CRM has no id for a picklist value, so the name is the key and
// new rows get locally minted identifiers.
type Strategy struct {
	db     *gorm.DB
	seq    *sequence.Allocator
	logger *zap.Logger
}

func New(db *gorm.DB, seq *sequence.Allocator, logger *zap.Logger) *Strategy {
	return &Strategy{db: db, seq: seq, logger: logger}
}

func (s *Strategy) Task() string { return Task }

func (s *Strategy) NaturalKey(rec crm.Record) string {
	return strings.TrimSpace(rec.String("Estado"))
}

func (s *Strategy) Reference(rec crm.Record) string {
	return fmt.Sprintf("Estado: '%s'", s.NaturalKey(rec))
}

// Upsert inserts the status if its name is unknown. Existing rows are left
// untouched: the name is the identity, so there is nothing to update.
func (s *Strategy) Upsert(ctx context.Context, rec crm.Record, _ *report.Report) error {
	name := s.NaturalKey(rec)

	var existing models.ProjectStatus
	err := s.db.WithContext(ctx).Where("name = ?", name).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("consultar estado existente: %w", err)
	}

	id, err := s.seq.Reserve(ctx, SequenceName, 1)
	if err != nil {
		return err
	}
	row := models.ProjectStatus{ID: strconv.FormatInt(id, 10), Name: name}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("insertar estado: %w", err)
	}
	s.logger.Info("project status inserted",
		zap.String("name", name), zap.String("id", row.ID))
	return nil
}

func (s *Strategy) Sweep(ctx context.Context, active []string) (int64, error) {
	return database.DeleteNotIn(ctx, s.db, &models.ProjectStatus{}, "name", active)
}
