// Package catalogxml lee catálogos de materiales en XML (UTF-8 o ISO-8859-1).
//
// Formato esperado:
//
//	<catalogo>
//	  <material nombre="Algodón" unidad="kg" proveedor="..." origen="..."
//	            certificado="true" costoCentavos="120000" moneda="COP"/>
//	</catalogo>
package catalogxml

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/kombaos/inventario-api/internal/application/dto"
)

// Entry una fila del catálogo ya convertida al request de creación.
// Line es la posición (1-based) del elemento <material> dentro del catálogo.
type Entry struct {
	Line    int
	Request dto.CreateMaterialRequest
}

// Parse lee el catálogo completo. Un atributo mal formado (certificado, costoCentavos)
// devuelve error indicando el elemento; la validación de negocio queda para el caso de uso.
func Parse(r io.Reader) ([]Entry, error) {
	doc := etree.NewDocument()
	doc.ReadSettings.CharsetReader = charsetReader
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("leer catálogo: %w", err)
	}

	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("leer catálogo: documento vacío")
	}

	elements := root.SelectElements("material")
	entries := make([]Entry, 0, len(elements))
	for i, el := range elements {
		req := dto.CreateMaterialRequest{
			Name:     strings.TrimSpace(el.SelectAttrValue("nombre", "")),
			Unit:     strings.TrimSpace(el.SelectAttrValue("unidad", "")),
			Supplier: strings.TrimSpace(el.SelectAttrValue("proveedor", "")),
			Origin:   strings.TrimSpace(el.SelectAttrValue("origen", "")),
		}
		if v := strings.TrimSpace(el.SelectAttrValue("certificado", "")); v != "" {
			certified, err := strconv.ParseBool(v)
			if err != nil {
				return nil, fmt.Errorf("material #%d: certificado %q inválido", i+1, v)
			}
			req.Certified = certified
		}
		if v := strings.TrimSpace(el.SelectAttrValue("costoCentavos", "")); v != "" {
			cents, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("material #%d: costoCentavos %q inválido", i+1, v)
			}
			req.CostCents = &cents
		}
		if v := strings.TrimSpace(el.SelectAttrValue("moneda", "")); v != "" {
			req.Currency = &v
		}
		entries = append(entries, Entry{Line: i + 1, Request: req})
	}
	return entries, nil
}

func charsetReader(label string, input io.Reader) (io.Reader, error) {
	switch strings.ToUpper(strings.TrimSpace(label)) {
	case "", "UTF-8", "UTF8":
		return input, nil
	case "ISO-8859-1", "ISO8859-1", "LATIN1":
		return transform.NewReader(input, charmap.ISO8859_1.NewDecoder()), nil
	case "WINDOWS-1252", "CP1252":
		return transform.NewReader(input, charmap.Windows1252.NewDecoder()), nil
	}
	return nil, fmt.Errorf("codificación %q no soportada", label)
}
