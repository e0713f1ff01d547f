package projects

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/marvalsa/Integration-Web-Site/core/crm"
	"github.com/marvalsa/Integration-Web-Site/core/report"
	"github.com/marvalsa/Integration-Web-Site/feature/sync/models"
)

// syncTypologies writes the project's eligible typologies and then folds
// their aggregates back onto the parent row. Child failures are recorded on
// the shared report but never fail the parent: the project row is already
// written and must survive.
func (s *Strategy) syncTypologies(ctx context.Context, hc string, typs []crm.Record, rep *report.Report) error {
	eligible := make([]crm.Record, 0, len(typs))
	for _, t := range typs {
		if t.ID() == "" || t.String("Nombre") == "" {
			continue
		}
		if t.Int("Und_Disponibles") < 1 {
			s.logger.Debug("typology skipped, no available units",
				zap.String("hc", hc), zap.String("name", t.String("Nombre")))
			continue
		}
		eligible = append(eligible, t)
	}

	for _, t := range eligible {
		if err := s.upsertTypology(ctx, hc, t); err != nil {
			if rep != nil {
				rep.Failure(
					fmt.Sprintf("Tipología '%s' (Proyecto HC: %s)", t.String("Nombre"), hc),
					err.Error(),
				)
			}
		}
	}

	if err := s.updateAggregates(ctx, hc, eligible); err != nil {
		s.logger.Warn("project aggregate update failed",
			zap.String("hc", hc), zap.Error(err))
	}
	return nil
}

// upsertTypology writes one typology addressed by (project_id, name). The
// table has no unique constraint on that pair, so the write is a lookup
// followed by an update or insert rather than ON CONFLICT.
func (s *Strategy) upsertTypology(ctx context.Context, hc string, t crm.Record) error {
	row := typologyRow(hc, t)

	var existing models.Typology
	err := s.db.WithContext(ctx).
		Where("project_id = ? AND name = ?", hc, row.Name).
		First(&existing).Error
	switch {
	case err == nil:
		return s.updateTypology(ctx, hc, row)
	case errors.Is(err, gorm.ErrRecordNotFound):
		return s.db.WithContext(ctx).Create(row).Error
	default:
		return fmt.Errorf("consultar tipología existente: %w", err)
	}
}

func (s *Strategy) updateTypology(ctx context.Context, hc string, row *models.Typology) error {
	const table = "Typologies"
	updates := map[string]any{
		"id":              row.ID,
		"description":     row.Description,
		"price_from":      row.PriceFrom,
		"price_up":        row.PriceUp,
		"rooms":           row.Rooms,
		"bathrooms":       row.Bathrooms,
		"built_area":      row.BuiltArea,
		"private_area":    row.PrivateArea,
		"min_separation":  row.MinSeparation,
		"min_deposit":     row.MinDeposit,
		"delivery_time":   row.DeliveryTime,
		"available_count": row.AvailableCount,
		"gallery":         gorm.Expr(`CASE WHEN jsonb_typeof("Typologies"."gallery") = 'array' AND jsonb_array_length("Typologies"."gallery") > 0 THEN "Typologies"."gallery" ELSE ?::jsonb END`, row.Gallery),
		"plans":           gorm.Expr(`CASE WHEN "Typologies"."plans" IS NOT NULL THEN "Typologies"."plans" ELSE ? END`, row.Plans),
	}
	return s.db.WithContext(ctx).Model(&models.Typology{}).
		Where("project_id = ? AND name = ?", hc, row.Name).
		Updates(updates).Error
}

// updateAggregates folds the minimum delivery time and deposit over the
// eligible typologies back onto the parent project. Zero means the typology
// does not carry the value and is excluded from the minimum. When no
// typology is eligible both columns reset to zero so a project whose units
// sold out stops advertising last run's figures.
func (s *Strategy) updateAggregates(ctx context.Context, hc string, typs []crm.Record) error {
	minDelivery, minDeposit := 0, 0
	for _, t := range typs {
		if v := t.Int("Plazo_en_meses"); v > 0 && (minDelivery == 0 || v < minDelivery) {
			minDelivery = v
		}
		if v := t.Int("Cuota_inicial1"); v > 0 && (minDeposit == 0 || v < minDeposit) {
			minDeposit = v
		}
	}

	return s.db.WithContext(ctx).Model(&models.Project{}).
		Where("hc = ?", hc).
		Updates(map[string]any{
			"delivery_time": minDelivery,
			"deposit":       minDeposit,
		}).Error
}

func typologyRow(hc string, t crm.Record) *models.Typology {
	return &models.Typology{
		ID:             t.ID(),
		ProjectID:      hc,
		Name:           t.String("Nombre"),
		Description:    t.String("Descripci_n"),
		PriceFrom:      t.Int("Precio_desde"),
		PriceUp:        t.Int("Precio_hasta"),
		Rooms:          t.Int("Habitaciones"),
		Bathrooms:      t.Int("Ba_os"),
		BuiltArea:      t.Float("Area_construida"),
		PrivateArea:    t.Float("Area_privada"),
		MinSeparation:  t.Int("Separacion"),
		MinDeposit:     t.Int("Cuota_inicial1"),
		DeliveryTime:   t.Int("Plazo_en_meses"),
		AvailableCount: t.Int("Und_Disponibles"),
		Gallery:        "[]",
		Plans:          nil,
	}
}
