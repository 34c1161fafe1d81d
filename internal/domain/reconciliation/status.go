// Package reconciliation compara la cantidad conferida por el operador contra la cantidad del XML.
package reconciliation

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/BateCarga-api/internal/domain/entity"
	"github.com/jhoicas/BateCarga-api/pkg/nfe"
)

// ParseQuantity interpreta una cantidad digitada (coma o punto decimal); inválido o vacío es cero.
func ParseQuantity(raw string) decimal.Decimal {
	return nfe.ParseDecimal(raw)
}

// DeriveStatus calcula el estado de conferencia:
//   - conferida == esperada y esperada > 0 -> OK
//   - conferida == 0 o texto vacío         -> sin estado
//   - cualquier otro caso                  -> Divergente
func DeriveStatus(expected decimal.Decimal, checkedRaw string) entity.ReconciliationStatus {
	checked := ParseQuantity(checkedRaw)
	if checked.Equal(expected) && expected.IsPositive() {
		return entity.ReconciliationMatched
	}
	if checked.IsZero() || strings.TrimSpace(checkedRaw) == "" {
		return entity.ReconciliationUnset
	}
	return entity.ReconciliationDivergent
}

// Apply registra la cantidad conferida en el ítem y recalcula solo su estado.
func Apply(item *entity.LineItem, checkedRaw string) {
	item.CheckedQuantity = checkedRaw
	item.Status = DeriveStatus(item.ExpectedQuantity, checkedRaw)
}
