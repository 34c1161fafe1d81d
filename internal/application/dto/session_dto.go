package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ── Requests ──────────────────────────────────────────────────────────────────

// SetCheckedQuantityRequest body para PUT .../items/:i.
// La cantidad se guarda como texto: acepta coma o punto decimal.
type SetCheckedQuantityRequest struct {
	CheckedQuantity string `json:"checked_quantity"`
}

// SetObservationRequest body para PUT .../observation.
type SetObservationRequest struct {
	Observation string `json:"observation"`
}

// ── Working set ───────────────────────────────────────────────────────────────

// ItemResponse ítem (det) con su estado de conferencia.
type ItemResponse struct {
	Index              int             `json:"index"`
	ProductCode        string          `json:"product_code"`
	ProductDescription string          `json:"product_description"`
	UnitOfMeasure      string          `json:"unit_of_measure"`
	ExpectedQuantity   decimal.Decimal `json:"expected_quantity"`
	UnitPrice          decimal.Decimal `json:"unit_price"`
	TotalValue         decimal.Decimal `json:"total_value"`
	GrossWeight        decimal.Decimal `json:"gross_weight"`
	NetWeight          decimal.Decimal `json:"net_weight"`
	SupplementaryNote  string          `json:"supplementary_note,omitempty"` // infAdProd
	CheckedQuantity    string          `json:"checked_quantity"`
	Status             string          `json:"status"` // "" | OK | Divergente
}

// InvoiceResponse nota dentro de un grupo.
type InvoiceResponse struct {
	Index            int             `json:"index"`
	Number           string          `json:"number"`
	AccessKey        string          `json:"access_key,omitempty"`
	IssueDate        string          `json:"issue_date"`
	IssuerName       string          `json:"issuer_name"`
	DestinationName  string          `json:"destination_name"`
	DestinationCity  string          `json:"destination_city"`
	DestinationState string          `json:"destination_state"`
	CarrierName      string          `json:"carrier_name"`
	VolumeCount      decimal.Decimal `json:"volume_count"`
	GrossWeight      decimal.Decimal `json:"gross_weight"`
	NetWeight        decimal.Decimal `json:"net_weight"`
	TotalValue       decimal.Decimal `json:"total_value"`
	Plate            string          `json:"plate"`
	Observation      string          `json:"observation"`
	Open             bool            `json:"open"`
	SourceFile       string          `json:"source_file,omitempty"`
	Items            []ItemResponse  `json:"items"`
}

// GroupTotalsResponse acumulados del grupo.
type GroupTotalsResponse struct {
	GrossWeight  decimal.Decimal `json:"gross_weight"`
	VolumeCount  decimal.Decimal `json:"volume_count"`
	Value        decimal.Decimal `json:"value"`
	InvoiceCount int             `json:"invoice_count"`
	ItemCount    int             `json:"item_count"`
}

// GroupResponse grupo emisor + ciudad.
type GroupResponse struct {
	Index           int                 `json:"index"`
	Key             string              `json:"key"`
	IssuerTradeName string              `json:"issuer_trade_name"`
	IssuerName      string              `json:"issuer_name"`
	City            string              `json:"city"`
	State           string              `json:"state"`
	Open            bool                `json:"open"`
	Totals          GroupTotalsResponse `json:"totals"`
	Invoices        []InvoiceResponse   `json:"invoices"`
}

// SessionResponse conjunto de trabajo completo para GET /api/sessions/:id.
type SessionResponse struct {
	ID            string          `json:"id"`
	OperatorID    string          `json:"operator_id,omitempty"`
	InvoiceCount  int             `json:"invoice_count"`
	ItemCount     int             `json:"item_count"`
	TotalValue    decimal.Decimal `json:"total_value"`
	XMLFiles      []string        `json:"xml_files"`
	PlateFile     string          `json:"plate_file,omitempty"`
	MappedNumbers int             `json:"mapped_numbers"` // entradas del mapeo de placas vigente
	Notices       []string        `json:"notices"`
	Groups        []GroupResponse `json:"groups"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// SessionSummaryResponse fila del listado de sesiones.
type SessionSummaryResponse struct {
	ID           string          `json:"id"`
	OperatorID   string          `json:"operator_id,omitempty"`
	InvoiceCount int             `json:"invoice_count"`
	ItemCount    int             `json:"item_count"`
	TotalValue   decimal.Decimal `json:"total_value"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// SessionListResponse respuesta de GET /api/sessions.
type SessionListResponse struct {
	Items []SessionSummaryResponse `json:"items"`
}

// ── Resultados de carga ───────────────────────────────────────────────────────

// IngestResponse resultado de POST .../invoices.
type IngestResponse struct {
	Session   SessionResponse `json:"session"`
	Accepted  int             `json:"accepted"`  // notas con ítems que entraron en grupos
	Discarded int             `json:"discarded"` // notas leídas sin ítems
	Errors    []string        `json:"errors"`    // "Erro em <archivo>: <causa>"
}

// PlateUploadResponse resultado de POST .../plates.
type PlateUploadResponse struct {
	Session      SessionResponse `json:"session"`
	Entries      int             `json:"entries"`       // números distintos en la planilla
	Applied      int             `json:"applied"`       // notas que recibieron placa
	UsedFallback bool            `json:"used_fallback"` // se recurrió a la lectura en texto
}

// ExportFile reporte generado listo para descargar.
type ExportFile struct {
	FileName    string
	ContentType string
	Content     []byte
}
