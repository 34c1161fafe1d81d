package nfe_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/BateCarga-api/pkg/nfe"
)

func TestNormalizeInvoiceNumber(t *testing.T) {
	cases := map[string]string{
		"000123":      "000123",
		"NF-00.0123":  "000123",
		"  12 34 ":    "1234",
		"abc":         "",
		"":            "",
		"١٢٣ 45":      "45", // dígitos no ASCII se descartan
	}
	for in, want := range cases {
		assert.Equal(t, want, nfe.NormalizeInvoiceNumber(in), "entrada %q", in)
	}
}

func TestNormalizeInvoiceNumber_Idempotente(t *testing.T) {
	for _, in := range []string{"NF 0001-23", "99", "x"} {
		once := nfe.NormalizeInvoiceNumber(in)
		assert.Equal(t, once, nfe.NormalizeInvoiceNumber(once))
	}
}

func TestFormatIssueDate(t *testing.T) {
	assert.Equal(t, "07/10/2024", nfe.FormatIssueDate("2024-10-07T10:20:30-03:00"))
	assert.Equal(t, "07/10/2024", nfe.FormatIssueDate("2024-10-07"))
	assert.Equal(t, "", nfe.FormatIssueDate(""))
	assert.Equal(t, "07/10/2024", nfe.FormatIssueDate("07/10/2024"), "sin formato ISO se conserva")
}

func TestParseDecimal(t *testing.T) {
	assert.True(t, decimal.RequireFromString("10.5").Equal(nfe.ParseDecimal("10,5")))
	assert.True(t, decimal.RequireFromString("3.1416").Equal(nfe.ParseDecimal(" 3.1416 ")))
	assert.True(t, nfe.ParseDecimal("").IsZero())
	assert.True(t, nfe.ParseDecimal("abc").IsZero())
}

func TestParseDecimal_LeeSoloElNumeroInicial(t *testing.T) {
	cases := map[string]string{
		"10un":     "10",
		"1.234,56": "1.234",
		"12,5 cx":  "12.5",
		"7.":       "7",
		"+3":       "3",
		"-2,25":    "-2.25",
		".5kg":     "0.5",
	}
	for raw, want := range cases {
		assert.True(t, decimal.RequireFromString(want).Equal(nfe.ParseDecimal(raw)), "entrada %q", raw)
	}
	assert.True(t, nfe.ParseDecimal("un10").IsZero())
	assert.True(t, nfe.ParseDecimal(",").IsZero())
}
