package export

import (
	"strings"

	"github.com/jhoicas/BateCarga-api/internal/application/batecarga"
	"github.com/jhoicas/BateCarga-api/internal/domain/entity"
)

var _ batecarga.ReportExporter = (*CSVExporter)(nil)

// CSVExporter genera el CSV con BOM y separador ";" que abre directo en Excel pt-BR.
type CSVExporter struct{}

// NewCSVExporter construye el exportador CSV.
func NewCSVExporter() *CSVExporter { return &CSVExporter{} }

func (e *CSVExporter) Format() string      { return "csv" }
func (e *CSVExporter) Extension() string   { return ".csv" }
func (e *CSVExporter) ContentType() string { return "text/csv; charset=utf-8" }

// Export escribe el encabezado tal cual y cada valor entre comillas, con comillas internas
// duplicadas y saltos de línea reemplazados por espacio. Los números salen con 4 decimales y coma.
func (e *CSVExporter) Export(groups []entity.ShipmentGroup, opts batecarga.ExportOptions) ([]byte, error) {
	var b strings.Builder
	b.WriteString("\ufeff")
	b.WriteString(strings.Join(Columns(opts.NoteLabel), ";"))
	b.WriteByte('\n')

	for _, r := range rows(groups) {
		for i, c := range r {
			if i > 0 {
				b.WriteByte(';')
			}
			b.WriteString(quote(csvValue(c)))
		}
		b.WriteByte('\n')
	}
	return []byte(b.String()), nil
}

func csvValue(c cell) string {
	if c.numeric {
		return strings.Replace(c.num.StringFixed(4), ".", ",", 1)
	}
	return c.text
}

var newlines = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

func quote(s string) string {
	s = newlines.Replace(s)
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
