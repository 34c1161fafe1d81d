// Package nfe reúne utilidades de normalización para datos de la NF-e (Nota Fiscal eletrônica brasileña).
package nfe

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	isoDatePrefix = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})`)
	leadingNumber = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?`)
)

// NormalizeInvoiceNumber deja solo los dígitos del número de nota.
// Es la única implementación de la clave de unión entre planilla de placas y notas:
// "000123", "123" y "NF-00.0123" normalizan a valores comparables solo si coinciden dígito a dígito.
func NormalizeInvoiceNumber(v string) string {
	var b strings.Builder
	b.Grow(len(v))
	for _, r := range v {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FormatIssueDate toma los primeros 10 caracteres de dhEmi (YYYY-MM-DD...) y los
// devuelve como DD/MM/YYYY. Vacío queda vacío; si no hay fecha ISO se devuelve el prefijo tal cual.
func FormatIssueDate(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if len(raw) > 10 {
		raw = raw[:10]
	}
	m := isoDatePrefix.FindStringSubmatch(raw)
	if m == nil {
		return raw
	}
	return m[3] + "/" + m[2] + "/" + m[1]
}

// ParseDecimal interpreta texto numérico de forma permisiva: la primera coma pasa a
// punto decimal y se lee solo el número inicial ("10un" es 10, "1.234,56" es 1.234).
// Vacío o sin número inicial devuelve cero.
func ParseDecimal(raw string) decimal.Decimal {
	s := strings.Replace(strings.TrimSpace(raw), ",", ".", 1)
	num := leadingNumber.FindString(s)
	if num == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(strings.TrimPrefix(strings.TrimSuffix(num, "."), "+"))
	if err != nil {
		return decimal.Zero
	}
	return d
}
