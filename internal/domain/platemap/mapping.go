package platemap

import (
	"strings"

	"github.com/jhoicas/BateCarga-api/internal/domain"
	"github.com/jhoicas/BateCarga-api/internal/domain/entity"
	"github.com/jhoicas/BateCarga-api/pkg/nfe"
)

// Outcome resultado de un intento de lectura estructurada de la planilla.
type Outcome int

const (
	Parsed Outcome = iota
	NeedsFallback
	Failed
)

func (o Outcome) String() string {
	switch o {
	case Parsed:
		return "parsed"
	case NeedsFallback:
		return "needs_fallback"
	default:
		return "failed"
	}
}

// GridResult filas leídas (la primera es el encabezado) o el error del intento.
type GridResult struct {
	Outcome Outcome
	Rows    [][]string
	Err     error
}

// BuildMapping resuelve columnas sobre rows[0] y recorre las filas de datos.
// Se omiten filas sin número o sin placa; con números repetidos gana la última fila.
func BuildMapping(rows [][]string, rules []ColumnRule) (entity.PlateMapping, error) {
	if len(rows) == 0 {
		return nil, domain.ErrEmptyMapping
	}
	cols, err := ResolveColumns(rows[0], rules)
	if err != nil {
		return nil, err
	}

	mapping := make(entity.PlateMapping)
	for _, row := range rows[1:] {
		number := strings.TrimSpace(cell(row, cols.InvoiceNumber))
		plate := strings.TrimSpace(cell(row, cols.Plate))
		if number == "" || plate == "" {
			continue
		}
		key := nfe.NormalizeInvoiceNumber(number)
		if key == "" {
			continue
		}
		mapping[key] = strings.ToUpper(plate)
	}
	if len(mapping) == 0 {
		return nil, domain.ErrEmptyMapping
	}
	return mapping, nil
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

// Apply asigna la placa a cada nota cuyo número normalizado esté en el mapeo;
// las demás conservan la placa que ya tenían. Devuelve cuántas notas recibieron placa.
func Apply(groups []entity.ShipmentGroup, mapping entity.PlateMapping) int {
	if len(mapping) == 0 {
		return 0
	}
	applied := 0
	for g := range groups {
		for i := range groups[g].Invoices {
			inv := &groups[g].Invoices[i]
			if plate, ok := mapping[nfe.NormalizeInvoiceNumber(inv.Number)]; ok {
				inv.Plate = plate
				applied++
			}
		}
	}
	return applied
}
