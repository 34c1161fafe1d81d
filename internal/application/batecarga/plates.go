package batecarga

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/jhoicas/BateCarga-api/internal/application/dto"
	"github.com/jhoicas/BateCarga-api/internal/domain"
	"github.com/jhoicas/BateCarga-api/internal/domain/entity"
	"github.com/jhoicas/BateCarga-api/internal/domain/platemap"
	"github.com/jhoicas/BateCarga-api/pkg/logger"
)

// Extensiones aceptadas para la planilla de placas.
var plateExtensions = map[string]bool{".xlsx": true, ".xls": true, ".csv": true}

// PlateUseCase carga la planilla NF -> placa y la aplica a las notas de la sesión.
type PlateUseCase struct {
	guard  *SessionGuard
	reader GridReader
	rules  []platemap.ColumnRule
	log    *logger.Logger
}

// NewPlateUseCase construye el caso de uso con las reglas de columnas por defecto.
func NewPlateUseCase(guard *SessionGuard, reader GridReader, log *logger.Logger) *PlateUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &PlateUseCase{guard: guard, reader: reader, rules: platemap.DefaultRules, log: log.Named("plates")}
}

// Load lee la planilla y reemplaza el mapeo de la sesión.
// Requiere al menos una nota cargada. Si la lectura o el mapeo fallan,
// el mapeo queda vacío, las placas ya asignadas no cambian y el aviso queda en la sesión.
func (uc *PlateUseCase) Load(ctx context.Context, sessionID, operatorID string, file dto.UploadedFile) (*dto.PlateUploadResponse, error) {
	unlock := uc.guard.lock(sessionID)
	defer unlock()

	sess, err := uc.guard.load(ctx, sessionID, operatorID)
	if err != nil {
		return nil, err
	}
	if sess.InvoiceCount() == 0 {
		return nil, fmt.Errorf("%w: carregue os XMLs antes da planilha de placas", domain.ErrPreconditionFailed)
	}

	mapping, usedFallback, err := uc.read(file)
	if err != nil {
		sess.PlateMapping = entity.PlateMapping{}
		sess.Notices = []string{err.Error()}
		if saveErr := uc.guard.save(ctx, sess); saveErr != nil {
			return nil, saveErr
		}
		uc.log.Warn().Str("session_id", sess.ID).Str("file", file.Name).Err(err).Msg("planilha de placas rejeitada")
		return nil, err
	}

	applied := platemap.Apply(sess.Groups, mapping)
	sess.PlateMapping = mapping
	sess.PlateFileName = file.Name
	sess.Notices = nil
	if err := uc.guard.save(ctx, sess); err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("session_id", sess.ID).
		Str("file", file.Name).
		Int("entries", len(mapping)).
		Int("applied", applied).
		Bool("fallback", usedFallback).
		Msg("planilha de placas aplicada")

	return &dto.PlateUploadResponse{
		Session:      *toSessionResponse(sess),
		Entries:      len(mapping),
		Applied:      applied,
		UsedFallback: usedFallback,
	}, nil
}

// read intenta la lectura estructurada y, si el lector lo pide, una única lectura en texto.
func (uc *PlateUseCase) read(file dto.UploadedFile) (entity.PlateMapping, bool, error) {
	ext := strings.ToLower(filepath.Ext(file.Name))
	if !plateExtensions[ext] {
		return nil, false, fmt.Errorf("%w: %q", domain.ErrUnsupportedExtension, ext)
	}

	res := uc.reader.ReadStructured(ext, file.Content)
	usedFallback := false
	if res.Outcome == platemap.NeedsFallback {
		uc.log.Debug().Str("file", file.Name).AnErr("cause", res.Err).Msg("leitura estruturada falhou, tentando texto")
		res = uc.reader.ReadText(file.Content)
		usedFallback = true
	}
	if res.Outcome != platemap.Parsed {
		if res.Err == nil {
			res.Err = fmt.Errorf("%w: planilha ilegível", domain.ErrEmptyMapping)
		}
		return nil, usedFallback, res.Err
	}

	mapping, err := platemap.BuildMapping(res.Rows, uc.rules)
	if err != nil {
		return nil, usedFallback, err
	}
	return mapping, usedFallback, nil
}
