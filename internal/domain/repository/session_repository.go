package repository

import (
	"context"

	"github.com/jhoicas/BateCarga-api/internal/domain/entity"
)

// SessionRepository define el puerto de persistencia de las sesiones de conferencia.
// Get devuelve (nil, nil) si la sesión no existe. Las implementaciones entregan copias:
// modificar la sesión devuelta no afecta lo guardado hasta llamar a Save.
type SessionRepository interface {
	Create(ctx context.Context, s *entity.Session) error
	GetByID(ctx context.Context, id string) (*entity.Session, error)
	Save(ctx context.Context, s *entity.Session) error
	Delete(ctx context.Context, id string) error
	// ListByOperator resume las sesiones de un operador, la más reciente primero.
	ListByOperator(ctx context.Context, operatorID string) ([]entity.SessionSummary, error)
}
