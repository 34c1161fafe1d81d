package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/BateCarga-api/internal/application/batecarga"
	"github.com/jhoicas/BateCarga-api/internal/domain/entity"
)

var _ batecarga.ReportExporter = (*XLSXExporter)(nil)

// SheetName hoja única del libro exportado.
const SheetName = "Conferencia"

// XLSXExporter genera el libro Excel con las mismas columnas del CSV; los números van como celdas numéricas.
type XLSXExporter struct{}

// NewXLSXExporter construye el exportador XLSX.
func NewXLSXExporter() *XLSXExporter { return &XLSXExporter{} }

func (e *XLSXExporter) Format() string    { return "xlsx" }
func (e *XLSXExporter) Extension() string { return ".xlsx" }
func (e *XLSXExporter) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// Export arma el libro en memoria y devuelve sus bytes.
func (e *XLSXExporter) Export(groups []entity.ShipmentGroup, opts batecarga.ExportOptions) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return nil, fmt.Errorf("xlsx: renombrar hoja: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"1E40AF"}},
	})
	if err != nil {
		return nil, fmt.Errorf("xlsx: estilo encabezado: %w", err)
	}
	numFmt := "#,##0.0000"
	numberStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &numFmt})
	if err != nil {
		return nil, fmt.Errorf("xlsx: estilo numérico: %w", err)
	}

	columns := Columns(opts.NoteLabel)
	header := make([]interface{}, len(columns))
	for i, c := range columns {
		header[i] = c
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return nil, fmt.Errorf("xlsx: encabezado: %w", err)
	}
	if err := f.SetRowStyle(SheetName, 1, 1, headerStyle); err != nil {
		return nil, fmt.Errorf("xlsx: estilo encabezado: %w", err)
	}

	for i, r := range rows(groups) {
		rowNum := i + 2
		values := make([]interface{}, len(r))
		for j, c := range r {
			if c.numeric {
				values[j] = c.num.InexactFloat64()
			} else {
				values[j] = c.text
			}
		}
		start, err := excelize.CoordinatesToCellName(1, rowNum)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(SheetName, start, &values); err != nil {
			return nil, fmt.Errorf("xlsx: fila %d: %w", rowNum, err)
		}
		for j, c := range r {
			if !c.numeric {
				continue
			}
			ref, err := excelize.CoordinatesToCellName(j+1, rowNum)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellStyle(SheetName, ref, ref, numberStyle); err != nil {
				return nil, fmt.Errorf("xlsx: estilo %s: %w", ref, err)
			}
		}
	}

	last, err := excelize.ColumnNumberToName(len(columns))
	if err != nil {
		return nil, err
	}
	if err := f.SetColWidth(SheetName, "A", last, 16); err != nil {
		return nil, fmt.Errorf("xlsx: ancho de columnas: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx: escribir libro: %w", err)
	}
	return buf.Bytes(), nil
}
