package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm/clause"
)

func TestPreserveNotNullSQL(t *testing.T) {
	a := PreserveNotNull("Projects", "seo_title")

	assert.Equal(t, "seo_title", a.Column.Name)
	expr, ok := a.Value.(clause.Expr)
	if assert.True(t, ok) {
		assert.Equal(t,
			`CASE WHEN "Projects"."seo_title" IS NOT NULL THEN "Projects"."seo_title" ELSE EXCLUDED."seo_title" END`,
			expr.SQL)
	}
}

func TestPreserveJSONArraySQL(t *testing.T) {
	a := PreserveJSONArray("Typologies", "gallery")

	expr, ok := a.Value.(clause.Expr)
	if assert.True(t, ok) {
		assert.Equal(t,
			`CASE WHEN jsonb_typeof("Typologies"."gallery") = 'array' AND jsonb_array_length("Typologies"."gallery") > 0 THEN "Typologies"."gallery" ELSE EXCLUDED."gallery" END`,
			expr.SQL)
	}
}

func TestTableNames(t *testing.T) {
	assert.Equal(t, "Cities", City{}.TableName())
	assert.Equal(t, "Project_Status", ProjectStatus{}.TableName())
	assert.Equal(t, "Project_Attributes", Attribute{}.TableName())
	assert.Equal(t, "Mega_Projects", MegaProject{}.TableName())
	assert.Equal(t, "Projects", Project{}.TableName())
	assert.Equal(t, "Typologies", Typology{}.TableName())
}
