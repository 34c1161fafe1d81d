package entity

import "github.com/shopspring/decimal"

// Estados de conferencia de un ítem.
const (
	ReconciliationUnset     ReconciliationStatus = ""
	ReconciliationMatched   ReconciliationStatus = "OK"
	ReconciliationDivergent ReconciliationStatus = "Divergente"
)

// ReconciliationStatus resultado de comparar cantidad conferida contra la del XML.
type ReconciliationStatus string

// LineItem representa un <det> de la NF-e.
type LineItem struct {
	ProductCode          string
	ProductDescription   string
	UnitOfMeasure        string
	ExpectedQuantityText string // qCom tal cual vino en el XML
	ExpectedQuantity     decimal.Decimal
	UnitPrice            decimal.Decimal
	TotalValue           decimal.Decimal
	SupplementaryNote    string // infAdProd
	GrossWeightItem      decimal.Decimal
	NetWeightItem        decimal.Decimal
	CheckedQuantity      string // lo que digita el operador
	Status               ReconciliationStatus
}

// Invoice representa una NF-e ya extraída.
type Invoice struct {
	Number           string // nNF impreso, sin normalizar
	AccessKey        string // chNFe (protNFe), opcional
	IssueDate        string // DD/MM/YYYY
	IssuerName       string
	IssuerTradeName  string
	DestinationName  string
	DestinationCity  string
	DestinationState string
	CarrierName      string
	VolumeCount      decimal.Decimal
	GrossWeight      decimal.Decimal
	NetWeight        decimal.Decimal
	TotalValue       decimal.Decimal
	Items            []LineItem
	Plate            string
	Observation      string
	Open             bool
	SourceFile       string
}

// ItemCount cantidad de ítems de la nota.
func (i *Invoice) ItemCount() int { return len(i.Items) }
