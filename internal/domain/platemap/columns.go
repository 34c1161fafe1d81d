// Package platemap resuelve columnas de la planilla logística y arma el mapeo nota -> placa.
package platemap

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/BateCarga-api/internal/domain"
)

// Field columna lógica de la planilla.
type Field string

const (
	FieldPlate         Field = "placa"
	FieldInvoiceNumber Field = "nNF"
)

// ColumnRule describe cómo se reconoce una columna: por palabras clave sobre el encabezado
// normalizado o, si nada coincide, por posición cuando el encabezado crudo contiene FallbackKeyword.
type ColumnRule struct {
	Field           Field
	Keywords        []string
	FallbackIndex   int
	FallbackKeyword string
}

// DefaultRules tabla de reglas de la planilla de placas.
var DefaultRules = []ColumnRule{
	{Field: FieldPlate, Keywords: []string{"PLACA", "VEICULO"}, FallbackIndex: 0, FallbackKeyword: "PLACA"},
	{Field: FieldInvoiceNumber, Keywords: []string{"NUMERO NF", "N NOTA", "NNF", "NF"}, FallbackIndex: 1, FallbackKeyword: "NF"},
}

// ResolvedColumns índices de columna ya resueltos.
type ResolvedColumns struct {
	Plate         int
	InvoiceNumber int
}

var (
	nonHeaderChars = regexp.MustCompile(`[^A-Z0-9\s]`)
	spaces         = regexp.MustCompile(`\s+`)
)

// NormalizeHeader pasa a mayúsculas, quita acentos y comillas, descarta todo lo que no sea
// letra, dígito o espacio y colapsa los espacios.
func NormalizeHeader(h string) string {
	t := transform.Chain(norm.NFD, transform.RemoveFunc(func(r rune) bool {
		return unicode.Is(unicode.Mn, r)
	}))
	s, _, err := transform.String(t, h)
	if err != nil {
		s = h
	}
	s = strings.ToUpper(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, `"`, "")
	s = nonHeaderChars.ReplaceAllString(s, "")
	s = spaces.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// ResolveColumns evalúa la tabla de reglas una sola vez sobre la fila de encabezados.
// Si alguna columna no se encuentra devuelve *domain.ColumnsNotFoundError con los encabezados leídos.
func ResolveColumns(headers []string, rules []ColumnRule) (ResolvedColumns, error) {
	normalized := make([]string, len(headers))
	for i, h := range headers {
		normalized[i] = NormalizeHeader(h)
	}

	found := make(map[Field]int, len(rules))
	for _, rule := range rules {
		if idx := matchKeywords(normalized, rule.Keywords); idx >= 0 {
			found[rule.Field] = idx
			continue
		}
		if rule.FallbackIndex < len(headers) &&
			strings.Contains(strings.ToUpper(headers[rule.FallbackIndex]), rule.FallbackKeyword) {
			found[rule.Field] = rule.FallbackIndex
		}
	}

	plate, okPlate := found[FieldPlate]
	number, okNumber := found[FieldInvoiceNumber]
	if !okPlate || !okNumber {
		return ResolvedColumns{}, &domain.ColumnsNotFoundError{Headers: append([]string(nil), headers...)}
	}
	return ResolvedColumns{Plate: plate, InvoiceNumber: number}, nil
}

// matchKeywords devuelve el primer encabezado que contiene alguna palabra clave.
func matchKeywords(headers, keywords []string) int {
	for i, h := range headers {
		for _, k := range keywords {
			if strings.Contains(h, k) {
				return i
			}
		}
	}
	return -1
}
