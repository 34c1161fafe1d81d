// Package memory guarda sesiones en memoria del proceso; es el almacenamiento por defecto y el de la CLI.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/jhoicas/BateCarga-api/internal/domain"
	"github.com/jhoicas/BateCarga-api/internal/domain/entity"
	"github.com/jhoicas/BateCarga-api/internal/domain/repository"
	"github.com/jhoicas/BateCarga-api/internal/infrastructure/sessioncodec"
)

var _ repository.SessionRepository = (*SessionRepository)(nil)

// SessionRepository guarda cada sesión serializada, así cada lectura entrega una copia independiente.
type SessionRepository struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewSessionRepository construye el repositorio vacío.
func NewSessionRepository() *SessionRepository {
	return &SessionRepository{data: make(map[string][]byte)}
}

func (r *SessionRepository) Create(ctx context.Context, s *entity.Session) error {
	b, err := sessioncodec.Encode(s)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.data[s.ID]; exists {
		return domain.ErrDuplicate
	}
	r.data[s.ID] = b
	return nil
}

func (r *SessionRepository) GetByID(ctx context.Context, id string) (*entity.Session, error) {
	r.mu.RLock()
	b, ok := r.data[id]
	r.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	return sessioncodec.Decode(b)
}

func (r *SessionRepository) Save(ctx context.Context, s *entity.Session) error {
	b, err := sessioncodec.Encode(s)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[s.ID]; !ok {
		return domain.ErrNotFound
	}
	r.data[s.ID] = b
	return nil
}

func (r *SessionRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.data, id)
	return nil
}

func (r *SessionRepository) ListByOperator(ctx context.Context, operatorID string) ([]entity.SessionSummary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []entity.SessionSummary
	for _, b := range r.data {
		s, err := sessioncodec.Decode(b)
		if err != nil {
			return nil, err
		}
		if s.OperatorID == operatorID {
			out = append(out, s.Summary())
		}
	}
	sortRecentFirst(out)
	return out, nil
}

func sortRecentFirst(list []entity.SessionSummary) {
	sort.Slice(list, func(i, j int) bool { return list[i].UpdatedAt.After(list[j].UpdatedAt) })
}
