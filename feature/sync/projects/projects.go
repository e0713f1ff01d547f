package projects

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/marvalsa/Integration-Web-Site/core/crm"
	"github.com/marvalsa/Integration-Web-Site/core/database"
	"github.com/marvalsa/Integration-Web-Site/core/reconcile"
	"github.com/marvalsa/Integration-Web-Site/core/report"
	"github.com/marvalsa/Integration-Web-Site/core/utils"
	"github.com/marvalsa/Integration-Web-Site/feature/sync/models"
)

// Task is the report name for the combined project and typology sync.
const Task = "Sincronización de Proyectos y Tipologías"

// Select pulls every commercial project that has its full display data set.
const Select = `SELECT id, Name, Slogan, Direccion, Descripcion_corta, Descripcion_larga, SIG, Sala_de_ventas.Name, Cantidad_SMMLV, Descripcion_descuento, Precios_desde, Precios_hasta, Tipo_de_proyecto, Mega_Proyecto.id, Estado, Proyecto_destacado, Area_construida_desde, Area_construida_hasta, Habitaciones, Ba_os, Latitud, Longitud, Ciudad.Name, Sala_de_ventas.id, Slug, Precio_en_SMMLV, bonus_ref FROM Proyectos_Comerciales WHERE (((((((((((((((((((((id is not null) and Name is not null) and Slogan is not null) and Direccion is not null) and Descripcion_corta is not null) and Sala_de_ventas.Name is not null) and Cantidad_SMMLV is not null) and Precios_desde is not null) and Precios_hasta is not null) and Tipo_de_proyecto is not null) and Estado is not null) and Proyecto_destacado is not null) and Area_construida_desde is not null) and Area_construida_hasta is not null) and Habitaciones is not null) and Ba_os is not null) and Latitud is not null) and Longitud is not null) and Sala_de_ventas.id is not null) and Slug is not null) and Precio_en_SMMLV is not null)`

const (
	typologiesModule = "Tipologias"
	attributesModule = "Atributos"
	salesRoomsModule = "Salas_de_venta"
	projectsModule   = "Proyectos_Comerciales"

	// relatedListField is the multi-lookup on a project's detail record that
	// links it to other commercial projects.
	relatedListField = "Proyectos_comerciales_relacionados"
)

// API is the slice of the CRM client this strategy needs.
type API interface {
	Search(ctx context.Context, module, criteria string) ([]crm.Record, error)
	Get(ctx context.Context, module, id string) (crm.Record, error)
}

// Strategy mirrors commercial projects into "Projects" and their typologies
// into "Typologies" as one parent/child pass.
//
// Typologies have no pageable listing of their own; they are only reachable
// through their parent. The prepare phase therefore fetches every parent's
// typologies up front so that the child active set is complete before any
// write or delete happens.
type Strategy struct {
	db          *gorm.DB
	api         API
	workers     int
	wipeOnEmpty bool
	logger      *zap.Logger

	mu          sync.Mutex
	typologies  map[string][]crm.Record
	childActive []string
}

func New(db *gorm.DB, api API, cfg reconcile.Config, logger *zap.Logger) *Strategy {
	workers := cfg.Workers
	if workers <= 0 {
		workers = 4
	}
	return &Strategy{
		db:          db,
		api:         api,
		workers:     workers,
		wipeOnEmpty: cfg.WipeOnEmpty,
		logger:      logger,
		typologies:  make(map[string][]crm.Record),
	}
}

func (s *Strategy) Task() string { return Task }

func (s *Strategy) NaturalKey(rec crm.Record) string {
	return rec.ID()
}

func (s *Strategy) Reference(rec crm.Record) string {
	return "Proyecto HC: " + rec.ID()
}

// Prepare fetches every parent's typologies concurrently and freezes the
// child active set. Any fetch failure aborts the run: sweeping children
// against a partial set would delete live rows.
func (s *Strategy) Prepare(ctx context.Context, recs []crm.Record, _ *report.Report) error {
	s.mu.Lock()
	s.typologies = make(map[string][]crm.Record, len(recs))
	s.childActive = s.childActive[:0]
	s.mu.Unlock()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	for _, rec := range recs {
		hc := rec.ID()
		if hc == "" {
			continue
		}
		g.Go(func() error {
			typs, err := s.api.Search(gctx, typologiesModule, "Parent_Id.id:equals:"+hc)
			if err != nil {
				return fmt.Errorf("tipologías del proyecto %s: %w", hc, err)
			}
			s.mu.Lock()
			s.typologies[hc] = typs
			for _, t := range typs {
				if id := t.ID(); id != "" {
					s.childActive = append(s.childActive, id)
				}
			}
			s.mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	s.logger.Info("typologies collected",
		zap.Int("projects", len(recs)),
		zap.Int("typologies", len(s.childActive)))
	return nil
}

func (s *Strategy) Upsert(ctx context.Context, rec crm.Record, rep *report.Report) error {
	hc := rec.ID()
	if hc == "" {
		return errors.New("proyecto sin id")
	}

	details, err := s.fetchDetails(ctx, rec)
	if err != nil {
		return err
	}

	row := s.buildRow(ctx, rec, details)
	if err := s.upsertRow(ctx, row); err != nil {
		return err
	}

	s.mu.Lock()
	typs := s.typologies[hc]
	s.mu.Unlock()
	return s.syncTypologies(ctx, hc, typs, rep)
}

// Sweep removes obsolete typologies first, then obsolete projects, and
// reports the combined count. The child set was frozen during prepare. An
// empty child set is gated by the same wipe policy as the parent: without
// wipe_on_empty a typology sweep that would empty the table is skipped, so
// a CRM outage that blanks every typology search cannot clear the mirror.
func (s *Strategy) Sweep(ctx context.Context, active []string) (int64, error) {
	s.mu.Lock()
	childActive := append([]string(nil), s.childActive...)
	s.mu.Unlock()

	var deletedTyps int64
	if len(childActive) == 0 && !s.wipeOnEmpty {
		s.logger.Warn("no active typologies upstream, child sweep skipped")
	} else {
		var err error
		deletedTyps, err = database.DeleteNotIn(ctx, s.db, &models.Typology{}, "id", childActive)
		if err != nil {
			return 0, fmt.Errorf("barrido de tipologías: %w", err)
		}
		if len(childActive) == 0 && deletedTyps > 0 {
			s.logger.Warn("no active typologies upstream, table wiped",
				zap.Int64("deleted", deletedTyps))
		}
	}

	deletedProjects, err := database.DeleteNotIn(ctx, s.db, &models.Project{}, "hc", active)
	if err != nil {
		return deletedTyps, fmt.Errorf("barrido de proyectos: %w", err)
	}
	return deletedTyps + deletedProjects, nil
}

// details carries the per-project sub-resources fetched before the write.
type details struct {
	salesRoom    crm.Record
	attributeIDs []string
	relatedIDs   []string
}

// fetchDetails resolves the three CRM sub-resources concurrently. Attribute
// failures fail the record; the sales room and related list degrade to empty
// because their data is cosmetic.
func (s *Strategy) fetchDetails(ctx context.Context, rec crm.Record) (*details, error) {
	hc := rec.ID()
	var d details

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		roomID := rec.String("Sala_de_ventas.id")
		if roomID == "" {
			return nil
		}
		room, err := s.api.Get(gctx, salesRoomsModule, roomID)
		if err != nil {
			s.logger.Warn("sales room fetch failed",
				zap.String("hc", hc), zap.Error(err))
			return nil
		}
		d.salesRoom = room
		return nil
	})

	g.Go(func() error {
		recs, err := s.api.Search(gctx, attributesModule, "Parent_Id.id:equals:"+hc)
		if err != nil {
			return fmt.Errorf("obtener atributos: %w", err)
		}
		ids := make([]string, 0, len(recs))
		for _, r := range recs {
			if child := r.Child("Atributo"); child != nil {
				if id := child.ID(); id != "" {
					ids = append(ids, id)
				}
			}
		}
		d.attributeIDs = ids
		return nil
	})

	g.Go(func() error {
		detail, err := s.api.Get(gctx, projectsModule, hc)
		if err != nil || detail == nil {
			return nil
		}
		for _, rel := range detail.List(relatedListField) {
			for _, v := range rel {
				child, ok := v.(map[string]any)
				if !ok {
					continue
				}
				r := crm.Record(child)
				if r.Has("id") && r.Has("name") {
					d.relatedIDs = append(d.relatedIDs, r.ID())
				}
			}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if d.attributeIDs == nil {
		d.attributeIDs = []string{}
	}
	if d.relatedIDs == nil {
		d.relatedIDs = []string{}
	}
	return &d, nil
}

// buildRow maps the CRM record onto the Projects row.
func (s *Strategy) buildRow(ctx context.Context, rec crm.Record, d *details) *models.Project {
	attributesJSON, _ := json.Marshal(d.attributeIDs)
	relatedJSON, _ := json.Marshal(d.relatedIDs)

	// The SMMLV flag gates the salary count: projects priced in pesos carry
	// a zero count regardless of what the CRM field says.
	salaryCount := 0
	if rec.Bool("Precio_en_SMMLV") {
		salaryCount = rec.Int("Cantidad_SMMLV")
	}

	row := &models.Project{
		HC:                 rec.ID(),
		Name:               utils.TitleCase(rec.String("Name")),
		Slug:               rec.String("Slug"),
		Slogan:             rec.String("Slogan"),
		Address:            rec.String("Direccion"),
		City:               utils.CityName(rec.String("Ciudad.Name")),
		SmallDescription:   rec.String("Descripcion_corta"),
		LongDescription:    rec.String("Descripcion_larga"),
		SIC:                rec.String("SIG"),
		SalaryMinimumCount: salaryCount,
		PriceFromGeneral:   rec.Int("Precios_desde"),
		PriceUpGeneral:     rec.Int("Precios_hasta"),
		Attributes:         string(attributesJSON),
		Gallery:            "[]",
		UrbanPlans:         "[]",
		WorkProgressImages: "[]",
		Type:               rec.String("Tipo_de_proyecto"),
		Status:             s.statusJSON(ctx, rec.String("Estado")),
		Highlighted:        rec.Bool("Proyecto_destacado"),
		BuiltArea:          rec.Float("Area_construida_desde"),
		PrivateArea:        rec.Float("Area_construida_hasta"),
		Rooms:              rec.MaxInt("Habitaciones"),
		Bathrooms:          rec.MaxInt("Ba_os"),
		RelationProjects:   string(relatedJSON),
		Latitude:           strconv.FormatFloat(rec.Float("Latitud"), 'f', -1, 64),
		Longitude:          strconv.FormatFloat(rec.Float("Longitud"), 'f', -1, 64),
		SalesRoomLatitude:  "0",
		SalesRoomLongitude: "0",
	}

	if v := rec.String("Descripcion_descuento"); v != "" {
		row.DiscountDescription = &v
	}
	if v := rec.String("bonus_ref"); v != "" {
		row.BonusRef = &v
	}
	if v := rec.String("Mega_Proyecto.id"); v != "" {
		row.MegaProjectID = &v
	}

	if d.salesRoom != nil {
		row.SalesRoomAddress = d.salesRoom.String("Direccion")
		row.SalesRoomScheduleAttention = d.salesRoom.String("Horario")
		row.SalesRoomLatitude = strconv.FormatFloat(d.salesRoom.Float("Latitud_SV"), 'f', -1, 64)
		row.SalesRoomLongitude = strconv.FormatFloat(d.salesRoom.Float("Longitud_SV"), 'f', -1, 64)
	}
	return row
}

func (s *Strategy) upsertRow(ctx context.Context, row *models.Project) error {
	const table = "Projects"
	updates := clause.AssignmentColumns([]string{
		"name", "slug", "slogan", "address", "city",
		"small_description", "long_description", "sic",
		"sales_room_address", "sales_room_schedule_attention",
		"sales_room_latitude", "sales_room_longitude",
		"salary_minimum_count", "discount_description", "bonus_ref",
		"price_from_general", "price_up_general", "attributes",
		"type", "status", "highlighted",
		"built_area", "private_area", "rooms", "bathrooms",
		"relation_projects", "latitude", "longitude", "mega_project_id",
	})
	updates = append(updates,
		models.PreserveNotNull(table, "seo_title"),
		models.PreserveNotNull(table, "seo_meta_description"),
		models.PreserveJSONArray(table, "gallery"),
		models.PreserveJSONArray(table, "urban_plans"),
		models.PreserveJSONArray(table, "work_progress_images"),
		models.PreserveNotNull(table, "tour_360"),
		models.PreserveNotNull(table, "is_public"),
	)

	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "hc"}},
		DoUpdates: updates,
	}).Create(row).Error
}

// statusJSON resolves the status name to its local row and wraps the id in
// the jsonb array shape the site reads. Unknown statuses are stored as an
// empty array rather than failing the record.
func (s *Strategy) statusJSON(ctx context.Context, name string) string {
	if name == "" {
		return "[]"
	}
	var row models.ProjectStatus
	err := s.db.WithContext(ctx).
		Where("LOWER(name) = LOWER(?)", name).
		First(&row).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Warn("status lookup failed", zap.String("status", name), zap.Error(err))
		}
		return "[]"
	}
	b, _ := json.Marshal([]string{row.ID})
	return string(b)
}
