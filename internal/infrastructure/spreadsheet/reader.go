// Package spreadsheet lee la planilla logística de placas (.xlsx, .xls o .csv) como una grilla de texto.
package spreadsheet

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/shakinm/xlsReader/xls"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/BateCarga-api/internal/domain"
	"github.com/jhoicas/BateCarga-api/internal/domain/platemap"
)

var (
	errNoDataRows = errors.New("Planilha lida, mas sem dados na Linha 2.")
	errTextNoData = errors.New("Leitura de texto não encontrou dados.")
)

const utf8BOM = "\ufeff"

// Reader implementa la lectura estructurada por extensión y la lectura de texto de respaldo.
type Reader struct{}

// NewReader construye el lector de planillas.
func NewReader() *Reader {
	return &Reader{}
}

// ReadStructured lee el archivo según su extensión (en minúsculas, con punto).
// Un .xlsx dañado es Failed; .xls y .csv dañados o sin filas de datos son NeedsFallback.
func (r *Reader) ReadStructured(ext string, content []byte) platemap.GridResult {
	switch ext {
	case ".xlsx":
		rows, err := readXLSX(content)
		if err != nil {
			return platemap.GridResult{Outcome: platemap.Failed, Err: fmt.Errorf("ler xlsx: %w", err)}
		}
		if len(rows) <= 1 {
			return platemap.GridResult{Outcome: platemap.Failed, Err: errNoDataRows}
		}
		return platemap.GridResult{Outcome: platemap.Parsed, Rows: rows}
	case ".xls":
		rows, err := readXLS(content)
		if err == nil && len(rows) <= 1 {
			err = errNoDataRows
		}
		if err != nil {
			return platemap.GridResult{Outcome: platemap.NeedsFallback, Err: fmt.Errorf("ler xls: %w", err)}
		}
		return platemap.GridResult{Outcome: platemap.Parsed, Rows: rows}
	case ".csv":
		rows, err := readDelimited(decodeLegacy(content))
		if err == nil && len(rows) <= 1 {
			err = errNoDataRows
		}
		if err != nil {
			return platemap.GridResult{Outcome: platemap.NeedsFallback, Err: fmt.Errorf("ler csv: %w", err)}
		}
		return platemap.GridResult{Outcome: platemap.Parsed, Rows: rows}
	default:
		return platemap.GridResult{Outcome: platemap.Failed, Err: fmt.Errorf("%w: %s", domain.ErrUnsupportedExtension, ext)}
	}
}

// ReadText interpreta el contenido como texto UTF-8 delimitado. Es el respaldo de .xls y .csv
// que en realidad son exportaciones en texto con otra extensión.
func (r *Reader) ReadText(content []byte) platemap.GridResult {
	text := strings.ToValidUTF8(string(content), string(utf8.RuneError))
	rows, err := readDelimited(text)
	if err != nil {
		return platemap.GridResult{Outcome: platemap.Failed, Err: fmt.Errorf("ler texto: %w", err)}
	}
	if len(rows) <= 1 {
		return platemap.GridResult{Outcome: platemap.Failed, Err: errTextNoData}
	}
	return platemap.GridResult{Outcome: platemap.Parsed, Rows: rows}
}

func readXLSX(content []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errNoDataRows
	}
	return f.GetRows(sheets[0])
}

// readXLS usa xlsReader para BIFF8; si falla, prueba con excelize por si es un .xlsx renombrado.
func readXLS(content []byte) ([][]string, error) {
	rows, err := parseBIFF(content)
	if err != nil {
		if xlsxRows, errX := readXLSX(content); errX == nil {
			return xlsxRows, nil
		}
		return nil, err
	}
	return rows, nil
}

// parseBIFF lee la primera hoja; xlsReader puede entrar en pánico con archivos truncados.
func parseBIFF(content []byte) (rows [][]string, err error) {
	defer func() {
		if p := recover(); p != nil {
			rows, err = nil, fmt.Errorf("xls ilegível: %v", p)
		}
	}()

	workbook, err := xls.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, err
	}
	sheets := workbook.GetSheets()
	if len(sheets) == 0 {
		return nil, errNoDataRows
	}
	for _, row := range sheets[0].GetRows() {
		var cols []string
		for _, cell := range row.GetCols() {
			cols = append(cols, cell.GetString())
		}
		rows = append(rows, cols)
	}
	return rows, nil
}

// decodeLegacy devuelve el contenido como texto; bytes que no son UTF-8 válido se leen como Windows-1252.
func decodeLegacy(content []byte) string {
	if utf8.Valid(content) {
		return string(content)
	}
	out, err := io.ReadAll(transform.NewReader(bytes.NewReader(content), charmap.Windows1252.NewDecoder()))
	if err != nil {
		return string(content)
	}
	return string(out)
}

// readDelimited detecta el separador en la primera línea (; , o tabulación) y lee todas las filas.
func readDelimited(text string) ([][]string, error) {
	text = strings.TrimPrefix(text, utf8BOM)
	r := csv.NewReader(strings.NewReader(text))
	r.Comma = sniffDelimiter(text)
	r.LazyQuotes = true
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	return r.ReadAll()
}

func sniffDelimiter(text string) rune {
	line := text
	if i := strings.IndexAny(text, "\r\n"); i >= 0 {
		line = text[:i]
	}
	best, bestCount := ',', strings.Count(line, ",")
	for _, d := range []rune{';', '\t'} {
		if n := strings.Count(line, string(d)); n > bestCount {
			best, bestCount = d, n
		}
	}
	return best
}
