package catalogxml_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/kombaos/inventario-api/internal/infrastructure/catalogxml"
)

func TestParse_UTF8(t *testing.T) {
	src := `<?xml version="1.0" encoding="UTF-8"?>
<catalogo>
  <material nombre=" Algodón Pima " unidad="kg" proveedor="Textiles Andinos" origen="Perú"
            certificado="true" costoCentavos="120000" moneda="PEN"/>
  <material nombre="Botones de coco" unidad="unidad"/>
</catalogo>`

	entries, err := catalogxml.Parse(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, entries, 2)

	first := entries[0]
	assert.Equal(t, 1, first.Line)
	assert.Equal(t, "Algodón Pima", first.Request.Name)
	assert.Equal(t, "kg", first.Request.Unit)
	assert.Equal(t, "Perú", first.Request.Origin)
	assert.True(t, first.Request.Certified)
	require.NotNil(t, first.Request.CostCents)
	assert.Equal(t, int64(120000), *first.Request.CostCents)
	require.NotNil(t, first.Request.Currency)
	assert.Equal(t, "PEN", *first.Request.Currency)

	second := entries[1]
	assert.Equal(t, 2, second.Line)
	assert.False(t, second.Request.Certified)
	assert.Nil(t, second.Request.CostCents)
	assert.Nil(t, second.Request.Currency)
}

func TestParse_ISO88591(t *testing.T) {
	utf8Src := `<?xml version="1.0" encoding="ISO-8859-1"?>
<catalogo><material nombre="Cáñamo" unidad="kg" origen="Colombia"/></catalogo>`
	latin1, err := charmap.ISO8859_1.NewEncoder().String(utf8Src)
	require.NoError(t, err)

	entries, err := catalogxml.Parse(bytes.NewReader([]byte(latin1)))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Cáñamo", entries[0].Request.Name)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"documento vacío", ``},
		{"certificado inválido", `<catalogo><material nombre="A" unidad="kg" certificado="quizá"/></catalogo>`},
		{"costo inválido", `<catalogo><material nombre="A" unidad="kg" costoCentavos="12,5"/></catalogo>`},
		{"codificación desconocida", `<?xml version="1.0" encoding="EBCDIC"?><catalogo/>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := catalogxml.Parse(strings.NewReader(tt.src))
			assert.Error(t, err)
		})
	}
}
