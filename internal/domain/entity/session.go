package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Session es el conjunto de trabajo de un operador: grupos, mapeo de placas y avisos del último lote.
type Session struct {
	ID            string
	OperatorID    string
	Groups        []ShipmentGroup
	PlateMapping  PlateMapping
	XMLFileNames  []string
	PlateFileName string
	Notices       []string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// InvoiceCount total de notas en el conjunto de trabajo.
func (s *Session) InvoiceCount() int {
	n := 0
	for i := range s.Groups {
		n += len(s.Groups[i].Invoices)
	}
	return n
}

// ItemCount total de ítems en el conjunto de trabajo.
func (s *Session) ItemCount() int {
	n := 0
	for i := range s.Groups {
		n += s.Groups[i].Totals.ItemCount
	}
	return n
}

// TotalValue suma de vNF de todos los grupos.
func (s *Session) TotalValue() decimal.Decimal {
	total := decimal.Zero
	for i := range s.Groups {
		total = total.Add(s.Groups[i].Totals.Value)
	}
	return total
}

// Reset descarta grupos, mapeo, nombres de archivos y avisos.
func (s *Session) Reset() {
	s.Groups = nil
	s.PlateMapping = nil
	s.XMLFileNames = nil
	s.PlateFileName = ""
	s.Notices = nil
}

// SessionSummary datos de listado de una sesión, sin grupos.
type SessionSummary struct {
	ID           string
	OperatorID   string
	InvoiceCount int
	ItemCount    int
	TotalValue   decimal.Decimal
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Summary arma el resumen de la sesión.
func (s *Session) Summary() SessionSummary {
	return SessionSummary{
		ID:           s.ID,
		OperatorID:   s.OperatorID,
		InvoiceCount: s.InvoiceCount(),
		ItemCount:    s.ItemCount(),
		TotalValue:   s.TotalValue(),
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}
