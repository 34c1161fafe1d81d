package batecarga

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/BateCarga-api/internal/application/dto"
	"github.com/jhoicas/BateCarga-api/internal/domain"
	"github.com/jhoicas/BateCarga-api/internal/domain/entity"
	"github.com/jhoicas/BateCarga-api/internal/domain/platemap"
	"github.com/jhoicas/BateCarga-api/internal/domain/shipment"
	"github.com/jhoicas/BateCarga-api/pkg/logger"
)

// IngestUseCase lee un lote de XML en paralelo y reemplaza el conjunto de trabajo de la sesión.
type IngestUseCase struct {
	guard     *SessionGuard
	extractor InvoiceExtractor
	workers   int
	log       *logger.Logger
}

// NewIngestUseCase construye el caso de uso. workers <= 0 procesa un archivo a la vez.
func NewIngestUseCase(guard *SessionGuard, extractor InvoiceExtractor, workers int, log *logger.Logger) *IngestUseCase {
	if workers <= 0 {
		workers = 1
	}
	if log == nil {
		log = logger.Nop()
	}
	return &IngestUseCase{guard: guard, extractor: extractor, workers: workers, log: log.Named("ingest")}
}

type parsed struct {
	invoice *entity.Invoice
	err     error
}

// Ingest procesa todos los archivos, espera a que terminen y agrupa en el orden de envío.
// Los errores por archivo se acumulan sin cortar el lote. Si ninguna nota trae ítems
// la sesión queda vacía y se devuelve domain.ErrNoItemsFound unido a los errores por archivo.
func (uc *IngestUseCase) Ingest(ctx context.Context, sessionID, operatorID string, files []dto.UploadedFile) (*dto.IngestResponse, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: nenhum arquivo XML enviado", domain.ErrInvalidInput)
	}

	unlock := uc.guard.lock(sessionID)
	defer unlock()

	sess, err := uc.guard.load(ctx, sessionID, operatorID)
	if err != nil {
		return nil, err
	}

	results, err := uc.parseAll(ctx, files)
	if err != nil {
		return nil, err
	}

	var (
		invoices  []entity.Invoice
		failures  []error
		discarded int
	)
	for i, r := range results {
		if r.err != nil {
			failures = append(failures, asFileError(files[i].Name, r.err))
			continue
		}
		if len(r.invoice.Items) == 0 {
			discarded++
			continue
		}
		invoices = append(invoices, *r.invoice)
	}

	groups := shipment.Group(invoices)
	applied := platemap.Apply(groups, sess.PlateMapping)

	names := make([]string, 0, len(files))
	for _, f := range files {
		names = append(names, f.Name)
	}
	sess.Groups = groups
	sess.XMLFileNames = names
	sess.Notices = nil
	if len(failures) > 0 {
		sess.Notices = append(sess.Notices, errors.Join(failures...).Error())
	}
	if len(groups) == 0 {
		sess.Notices = append(sess.Notices, domain.ErrNoItemsFound.Error())
	}

	if err := uc.guard.save(ctx, sess); err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("session_id", sess.ID).
		Int("files", len(files)).
		Int("accepted", len(invoices)).
		Int("discarded", discarded).
		Int("failed", len(failures)).
		Int("plates_applied", applied).
		Msg("lote XML procesado")

	if len(groups) == 0 {
		return nil, errors.Join(append(failures, domain.ErrNoItemsFound)...)
	}

	messages := make([]string, 0, len(failures))
	for _, f := range failures {
		messages = append(messages, f.Error())
	}
	return &dto.IngestResponse{
		Session:   *toSessionResponse(sess),
		Accepted:  len(invoices),
		Discarded: discarded,
		Errors:    messages,
	}, nil
}

// parseAll reserva una posición por archivo y devuelve los resultados en el orden recibido.
// Solo la cancelación del contexto corta el lote.
func (uc *IngestUseCase) parseAll(ctx context.Context, files []dto.UploadedFile) ([]parsed, error) {
	results := make([]parsed, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(uc.workers)
	for i := range files {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			inv, err := uc.extractor.Extract(files[i].Name, files[i].Content)
			if err != nil {
				uc.log.Warn().Str("file", files[i].Name).Err(err).Msg("XML rechazado")
			}
			results[i] = parsed{invoice: inv, err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func asFileError(name string, err error) error {
	var fe *domain.FileError
	if errors.As(err, &fe) {
		return err
	}
	return &domain.FileError{Name: name, Err: err}
}
