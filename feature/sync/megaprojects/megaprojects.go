package megaprojects

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/marvalsa/Integration-Web-Site/core/crm"
	"github.com/marvalsa/Integration-Web-Site/core/database"
	"github.com/marvalsa/Integration-Web-Site/core/report"
	"github.com/marvalsa/Integration-Web-Site/core/utils"
	"github.com/marvalsa/Integration-Web-Site/feature/sync/models"
)

// Task is the report name for the mega project sync.
const Task = "Sincronización de Mega Proyectos"

// Select pulls commercial mega projects. Rows missing any required display
// field are filtered at the source.
const Select = `SELECT id, Name, Direccion_MP, Slogan_comercial, Descripcion, Record_Image, Latitud_MP, Longitud_MP FROM Mega_Proyectos WHERE (((((((Mega_proyecto_comercial = true) and Name is not null) and Direccion_MP is not null) and Slogan_comercial is not null) and Descripcion is not null ) and Latitud_MP is not null) and Longitud_MP is not null)`

// attributesModule is the CRM junction module linking attributes to a mega
// project.
const attributesModule = "Atributos_Mega_Proyecto"

// Searcher is the slice of the CRM client this strategy needs.
type Searcher interface {
	Search(ctx context.Context, module, criteria string) ([]crm.Record, error)
}

// Strategy mirrors commercial mega projects into the "Mega_Projects" table.
type Strategy struct {
	db     *gorm.DB
	api    Searcher
	logger *zap.Logger
}

func New(db *gorm.DB, api Searcher, logger *zap.Logger) *Strategy {
	return &Strategy{db: db, api: api, logger: logger}
}

func (s *Strategy) Task() string { return Task }

func (s *Strategy) NaturalKey(rec crm.Record) string {
	return rec.ID()
}

func (s *Strategy) Reference(rec crm.Record) string {
	return "Mega Proyecto ID: " + rec.ID()
}

func (s *Strategy) Upsert(ctx context.Context, rec crm.Record, _ *report.Report) error {
	id := rec.ID()
	if id == "" {
		return fmt.Errorf("mega proyecto sin id")
	}

	attributeIDs, err := s.fetchAttributeIDs(ctx, id)
	if err != nil {
		return fmt.Errorf("obtener atributos: %w", err)
	}
	attributesJSON, _ := json.Marshal(attributeIDs)

	row := models.MegaProject{
		ID:          id,
		Slug:        utils.Slugify(rec.String("Name")),
		Name:        utils.TitleCase(rec.String("Name")),
		Address:     rec.String("Direccion_MP"),
		Slogan:      rec.String("Slogan_comercial"),
		Description: rec.String("Descripcion"),
		Attributes:  string(attributesJSON),
		Gallery:     galleryJSON(rec.String("Record_Image")),
		Latitude:    strconv.FormatFloat(rec.Float("Latitud_MP"), 'f', -1, 64),
		Longitude:   strconv.FormatFloat(rec.Float("Longitud_MP"), 'f', -1, 64),
	}

	const table = "Mega_Projects"
	updates := clause.AssignmentColumns([]string{
		"slug", "name", "address", "slogan", "description",
		"attributes", "latitude", "longitude",
	})
	updates = append(updates,
		models.PreserveNotNull(table, "seo_title"),
		models.PreserveNotNull(table, "seo_meta_description"),
		models.PreserveJSONArray(table, "gallery"),
		models.PreserveNotNull(table, "is_public"),
	)

	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: updates,
	}).Create(&row).Error
}

func (s *Strategy) Sweep(ctx context.Context, active []string) (int64, error) {
	return database.DeleteNotIn(ctx, s.db, &models.MegaProject{}, "id", active)
}

// fetchAttributeIDs resolves the attribute ids linked to the mega project.
// A missing junction list is a normal condition and yields an empty slice.
func (s *Strategy) fetchAttributeIDs(ctx context.Context, parentID string) ([]string, error) {
	recs, err := s.api.Search(ctx, attributesModule, "Parent_Id.id:equals:"+parentID)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(recs))
	for _, r := range recs {
		if child := r.Child("Atributo"); child != nil {
			if id := child.ID(); id != "" {
				ids = append(ids, id)
			}
		}
	}
	return ids, nil
}

// galleryJSON wraps the record image into the jsonb gallery shape. The CRM
// only carries one image per mega project.
func galleryJSON(image string) string {
	if image == "" {
		return "[]"
	}
	b, _ := json.Marshal([]models.GalleryItem{{ID: image, URL: image}})
	return string(b)
}
