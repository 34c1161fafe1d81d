// Package export genera el reporte de conferencia de carga en CSV, XLSX y PDF.
package export

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/BateCarga-api/internal/domain/entity"
)

// DefaultNoteLabel encabezado por defecto de la columna de observación.
const DefaultNoteLabel = "Observacao"

// Columns encabezados del reporte, en orden.
func Columns(noteLabel string) []string {
	if noteLabel == "" {
		noteLabel = DefaultNoteLabel
	}
	return []string{
		"Grupo_Emitente", "Cidade", "nNF", "dhEmi", "Placa_Veiculo", "Transportadora",
		"PesoB_Nota_Total", "QVol", "vNF_Nota_Total",
		"cProd", "xProd", "Qtd_Item_XML",
		"PesoB_Item", "PesoL_Item",
		"Unidade_Com", "Valor_Total_Item",
		"Qtd_Conferida", "Status_Conferencia", "Qtde_Aux",
		noteLabel,
	}
}

// cell valor de una celda: texto o número.
type cell struct {
	text    string
	num     decimal.Decimal
	numeric bool
}

func textCell(s string) cell { return cell{text: s} }

func numCell(d decimal.Decimal) cell { return cell{num: d, numeric: true} }

// optionalNum deja la celda vacía cuando el valor es cero (campo ausente en el XML).
func optionalNum(d decimal.Decimal) cell {
	if d.IsZero() {
		return textCell("")
	}
	return numCell(d)
}

// numericText trata como número un texto que completo es numérico (coma o punto decimal).
func numericText(s string) cell {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return textCell(s)
	}
	d, err := decimal.NewFromString(strings.Replace(trimmed, ",", ".", 1))
	if err != nil {
		return textCell(s)
	}
	return numCell(d)
}

// rows aplana grupo -> nota -> ítem en filas del reporte.
func rows(groups []entity.ShipmentGroup) [][]cell {
	var out [][]cell
	for _, g := range groups {
		for _, inv := range g.Invoices {
			for _, it := range inv.Items {
				out = append(out, []cell{
					textCell(g.IssuerTradeName),
					textCell(g.City),
					textCell(inv.Number),
					textCell(inv.IssueDate),
					textCell(inv.Plate),
					textCell(inv.CarrierName),
					optionalNum(inv.GrossWeight),
					optionalNum(inv.VolumeCount),
					optionalNum(inv.TotalValue),
					textCell(it.ProductCode),
					textCell(it.ProductDescription),
					numericText(it.ExpectedQuantityText),
					numCell(it.GrossWeightItem),
					numCell(it.NetWeightItem),
					textCell(it.UnitOfMeasure),
					optionalNum(it.TotalValue),
					numericText(it.CheckedQuantity),
					textCell(string(it.Status)),
					numericText(it.SupplementaryNote),
					textCell(inv.Observation),
				})
			}
		}
	}
	return out
}
