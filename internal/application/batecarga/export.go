package batecarga

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/jhoicas/BateCarga-api/internal/application/dto"
	"github.com/jhoicas/BateCarga-api/internal/domain"
)

// ExportFilePrefix prefijo del nombre del archivo descargado.
const ExportFilePrefix = "bate_carga_export_"

// ExportUseCase genera el reporte de conferencia en el formato pedido.
type ExportUseCase struct {
	guard     *SessionGuard
	exporters map[string]ReportExporter
	noteLabel string
}

// NewExportUseCase registra los exportadores por su Format().
func NewExportUseCase(guard *SessionGuard, noteLabel string, exporters ...ReportExporter) *ExportUseCase {
	reg := make(map[string]ReportExporter, len(exporters))
	for _, e := range exporters {
		reg[strings.ToLower(e.Format())] = e
	}
	return &ExportUseCase{guard: guard, exporters: reg, noteLabel: noteLabel}
}

// Formats formatos registrados, ordenados.
func (uc *ExportUseCase) Formats() []string {
	out := make([]string, 0, len(uc.exporters))
	for f := range uc.exporters {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// Export genera el archivo. Sin notas en la sesión devuelve domain.ErrNothingToExport.
func (uc *ExportUseCase) Export(ctx context.Context, sessionID, operatorID, format string) (*dto.ExportFile, error) {
	if format == "" {
		format = "csv"
	}
	exporter, ok := uc.exporters[strings.ToLower(format)]
	if !ok {
		return nil, fmt.Errorf("%w: formato %q (use %s)", domain.ErrInvalidInput, format, strings.Join(uc.Formats(), ", "))
	}

	unlock := uc.guard.lock(sessionID)
	s, err := uc.guard.load(ctx, sessionID, operatorID)
	unlock()
	if err != nil {
		return nil, err
	}
	if s.InvoiceCount() == 0 {
		return nil, domain.ErrNothingToExport
	}

	now := uc.guard.now()
	content, err := exporter.Export(s.Groups, ExportOptions{NoteLabel: uc.noteLabel, GeneratedAt: now})
	if err != nil {
		return nil, fmt.Errorf("exportar %s: %w", exporter.Format(), err)
	}
	return &dto.ExportFile{
		FileName:    fmt.Sprintf("%s%d%s", ExportFilePrefix, now.UnixMilli(), exporter.Extension()),
		ContentType: exporter.ContentType(),
		Content:     content,
	}, nil
}
