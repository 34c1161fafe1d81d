package batecarga

import (
	"time"

	"github.com/jhoicas/BateCarga-api/internal/domain/entity"
	"github.com/jhoicas/BateCarga-api/internal/domain/platemap"
)

// InvoiceExtractor convierte un archivo XML en una nota. Debe ser seguro para uso concurrente.
type InvoiceExtractor interface {
	Extract(name string, content []byte) (*entity.Invoice, error)
}

// GridReader lee la planilla de placas. ReadStructured decide por extensión;
// ReadText es el respaldo en texto plano para extensiones que lo admiten.
type GridReader interface {
	ReadStructured(ext string, content []byte) platemap.GridResult
	ReadText(content []byte) platemap.GridResult
}

// ExportOptions parámetros comunes a todos los formatos de exportación.
type ExportOptions struct {
	NoteLabel   string // encabezado de la columna de observación (Observacao, Romaneio)
	GeneratedAt time.Time
}

// ReportExporter genera el reporte de conferencia en un formato concreto.
type ReportExporter interface {
	Format() string
	Extension() string
	ContentType() string
	Export(groups []entity.ShipmentGroup, opts ExportOptions) ([]byte, error)
}
