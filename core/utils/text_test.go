package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Reserva de Mallorca", "reserva-de-mallorca"},
		{"  Parque  Central 2 ", "parque-central-2"},
		{"Alameda del Río!", "alameda-del-r-o"},
		{"", ""},
		{"---", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Slugify(tt.in), "input %q", tt.in)
	}
}

func TestTitleCase(t *testing.T) {
	assert.Equal(t, "Reserva De Mallorca", TitleCase("RESERVA DE MALLORCA"))
	assert.Equal(t, "Parque Central", TitleCase("parque central"))
	assert.Equal(t, "", TitleCase(""))
	assert.Equal(t, "A  B", TitleCase("a  b"))
}

func TestCityName(t *testing.T) {
	assert.Equal(t, "Barranquilla", CityName("BARRANQUILLA/Atlántico"))
	assert.Equal(t, "Soledad", CityName("  soledad  "))
	assert.Equal(t, "", CityName("/Atlántico"))
}
