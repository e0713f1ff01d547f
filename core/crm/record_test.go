package crm

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordKeyNormalization(t *testing.T) {
	// The same key may arrive as a number on one page and a string on another;
	// both must normalize to the same canonical form.
	asNumber := Record{"id": json.Number("4876427000001")}
	asString := Record{"id": "4876427000001"}
	assert.Equal(t, asNumber.ID(), asString.ID())
}

func TestRecordAccessors(t *testing.T) {
	rec := Record{
		"Name":          "altos del mar",
		"Precios_desde": json.Number("250000000"),
		"Latitud":       "4.598",
		"Destacado":     true,
		"Rota":          "no-es-numero",
	}

	assert.Equal(t, "altos del mar", rec.String("Name"))
	assert.Equal(t, 250000000, rec.Int("Precios_desde"))
	assert.Equal(t, 4.598, rec.Float("Latitud"))
	assert.True(t, rec.Bool("Destacado"))

	// Unparseable and absent values are zero, never an error.
	assert.Equal(t, 0, rec.Int("Rota"))
	assert.Equal(t, 0.0, rec.Float("Rota"))
	assert.Equal(t, "", rec.String("Missing"))
	assert.False(t, rec.Has("Missing"))
}

func TestRecordChildAndList(t *testing.T) {
	raw := `{
		"id": "1",
		"Atributo": {"id": "77", "name": "Piscina"},
		"Relacionados": [
			{"Proyecto": {"id": "5", "name": "Otro"}},
			"not-an-object"
		]
	}`
	var rec Record
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()
	require.NoError(t, dec.Decode(&rec))

	child := rec.Child("Atributo")
	require.NotNil(t, child)
	assert.Equal(t, "77", child.ID())
	assert.Nil(t, rec.Child("id"))

	list := rec.List("Relacionados")
	require.Len(t, list, 1)
	assert.Equal(t, "5", list[0].Child("Proyecto").ID())
}

func TestRecordMaxInt(t *testing.T) {
	rec := Record{
		"Habitaciones": []any{"2", "3", json.Number("5")},
		"Ba_os":        json.Number("2"),
		"Vacio":        []any{"x"},
	}
	assert.Equal(t, 5, rec.MaxInt("Habitaciones"))
	assert.Equal(t, 2, rec.MaxInt("Ba_os"))
	assert.Equal(t, 0, rec.MaxInt("Vacio"))
	assert.Equal(t, 0, rec.MaxInt("Missing"))
}
