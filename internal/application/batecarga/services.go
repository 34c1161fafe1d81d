package batecarga

import (
	"github.com/jhoicas/BateCarga-api/internal/domain/repository"
	"github.com/jhoicas/BateCarga-api/pkg/logger"
)

// Options parámetros de armado de los casos de uso.
type Options struct {
	Workers   int    // archivos XML leídos en paralelo
	NoteLabel string // encabezado de la columna de observación en la exportación
	Clock     Clock
	Logger    *logger.Logger
}

// Services casos de uso que comparten el mismo SessionGuard.
type Services struct {
	Sessions  *SessionUseCase
	Ingest    *IngestUseCase
	Plates    *PlateUseCase
	Reconcile *ReconcileUseCase
	Export    *ExportUseCase
}

// NewServices arma todos los casos de uso sobre un repositorio de sesiones.
func NewServices(repo repository.SessionRepository, extractor InvoiceExtractor, reader GridReader, opts Options, exporters ...ReportExporter) *Services {
	guard := NewSessionGuard(repo, opts.Clock)
	return &Services{
		Sessions:  NewSessionUseCase(guard),
		Ingest:    NewIngestUseCase(guard, extractor, opts.Workers, opts.Logger),
		Plates:    NewPlateUseCase(guard, reader, opts.Logger),
		Reconcile: NewReconcileUseCase(guard),
		Export:    NewExportUseCase(guard, opts.NoteLabel, exporters...),
	}
}
