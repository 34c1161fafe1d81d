package entity

import "github.com/shopspring/decimal"

// GroupTotals acumulados de un grupo; se actualizan en cada nota agregada.
type GroupTotals struct {
	GrossWeight  decimal.Decimal
	VolumeCount  decimal.Decimal
	Value        decimal.Decimal
	InvoiceCount int
	ItemCount    int
}

// ShipmentGroup agrupa las notas de un mismo emisor (nombre fantasía) hacia una misma ciudad.
type ShipmentGroup struct {
	Key             string
	IssuerTradeName string
	IssuerName      string
	City            string
	State           string
	Invoices        []Invoice
	Totals          GroupTotals
	Open            bool
}

// PlateMapping número de nota normalizado -> placa del vehículo.
type PlateMapping map[string]string
