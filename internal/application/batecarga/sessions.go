// Package batecarga contiene los casos de uso de la conferencia de carga:
// sesiones, carga de XML, planilla de placas, conferencia y exportación.
package batecarga

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/BateCarga-api/internal/application/dto"
	"github.com/jhoicas/BateCarga-api/internal/domain"
	"github.com/jhoicas/BateCarga-api/internal/domain/entity"
	"github.com/jhoicas/BateCarga-api/internal/domain/repository"
)

// Clock permite fijar la hora en tests.
type Clock func() time.Time

// SessionGuard serializa las mutaciones de cada sesión y valida el dueño.
// Todos los casos de uso que modifican una sesión deben compartir la misma instancia.
type SessionGuard struct {
	repo repository.SessionRepository
	now  Clock

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewSessionGuard construye el guard. now nil usa time.Now.
func NewSessionGuard(repo repository.SessionRepository, now Clock) *SessionGuard {
	if now == nil {
		now = time.Now
	}
	return &SessionGuard{repo: repo, now: now, locks: make(map[string]*sync.Mutex)}
}

// lock toma el mutex de la sesión y devuelve la función que lo libera.
// La clave se copia: el id puede venir de un buffer de request que fiber reutiliza.
func (g *SessionGuard) lock(id string) func() {
	g.mu.Lock()
	m, ok := g.locks[id]
	if !ok {
		m = &sync.Mutex{}
		g.locks[strings.Clone(id)] = m
	}
	g.mu.Unlock()
	m.Lock()
	return m.Unlock
}

func (g *SessionGuard) forget(id string) {
	g.mu.Lock()
	delete(g.locks, id)
	g.mu.Unlock()
}

// tracked indica si hay un mutex registrado para la sesión.
func (g *SessionGuard) tracked(id string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, ok := g.locks[id]
	return ok
}

// load lee la sesión y verifica que pertenezca al operador.
// operatorID vacío (autenticación desactivada) no restringe.
// Un id inexistente no deja mutex registrado.
func (g *SessionGuard) load(ctx context.Context, id, operatorID string) (*entity.Session, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: id de sesión requerido", domain.ErrInvalidInput)
	}
	s, err := g.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		g.forget(id)
		return nil, fmt.Errorf("sesión %s: %w", id, domain.ErrNotFound)
	}
	if operatorID != "" && s.OperatorID != operatorID {
		return nil, domain.ErrForbidden
	}
	return s, nil
}

func (g *SessionGuard) save(ctx context.Context, s *entity.Session) error {
	s.UpdatedAt = g.now()
	return g.repo.Save(ctx, s)
}

// update ejecuta fn con la sesión bloqueada y persiste el resultado si fn no falla.
func (g *SessionGuard) update(ctx context.Context, id, operatorID string, fn func(*entity.Session) error) (*entity.Session, error) {
	unlock := g.lock(id)
	defer unlock()

	s, err := g.load(ctx, id, operatorID)
	if err != nil {
		return nil, err
	}
	if err := fn(s); err != nil {
		return nil, err
	}
	if err := g.save(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

// SessionUseCase alta, consulta, listado, reset y baja de sesiones.
type SessionUseCase struct {
	guard *SessionGuard
}

// NewSessionUseCase construye el caso de uso.
func NewSessionUseCase(guard *SessionGuard) *SessionUseCase {
	return &SessionUseCase{guard: guard}
}

// Create abre una sesión vacía para el operador.
func (uc *SessionUseCase) Create(ctx context.Context, operatorID string) (*dto.SessionResponse, error) {
	now := uc.guard.now()
	s := &entity.Session{
		ID:         uuid.New().String(),
		OperatorID: operatorID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.guard.repo.Create(ctx, s); err != nil {
		return nil, err
	}
	return toSessionResponse(s), nil
}

// Get devuelve el conjunto de trabajo de la sesión.
func (uc *SessionUseCase) Get(ctx context.Context, id, operatorID string) (*dto.SessionResponse, error) {
	s, err := uc.guard.load(ctx, id, operatorID)
	if err != nil {
		return nil, err
	}
	return toSessionResponse(s), nil
}

// List devuelve las sesiones del operador, más recientes primero.
func (uc *SessionUseCase) List(ctx context.Context, operatorID string) (*dto.SessionListResponse, error) {
	list, err := uc.guard.repo.ListByOperator(ctx, operatorID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SessionSummaryResponse, 0, len(list))
	for _, s := range list {
		items = append(items, toSummaryResponse(s))
	}
	return &dto.SessionListResponse{Items: items}, nil
}

// Reset descarta grupos, mapeo de placas y avisos; la sesión sigue existiendo.
func (uc *SessionUseCase) Reset(ctx context.Context, id, operatorID string) (*dto.SessionResponse, error) {
	s, err := uc.guard.update(ctx, id, operatorID, func(s *entity.Session) error {
		s.Reset()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toSessionResponse(s), nil
}

// Delete elimina la sesión.
func (uc *SessionUseCase) Delete(ctx context.Context, id, operatorID string) error {
	unlock := uc.guard.lock(id)
	defer unlock()

	if _, err := uc.guard.load(ctx, id, operatorID); err != nil {
		return err
	}
	if err := uc.guard.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.guard.forget(id)
	return nil
}
