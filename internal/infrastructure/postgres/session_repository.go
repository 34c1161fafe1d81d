package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/BateCarga-api/internal/domain"
	"github.com/jhoicas/BateCarga-api/internal/domain/entity"
	"github.com/jhoicas/BateCarga-api/internal/domain/repository"
	"github.com/jhoicas/BateCarga-api/internal/infrastructure/sessioncodec"
)

var _ repository.SessionRepository = (*SessionRepo)(nil)

// SessionRepo guarda la sesión como JSONB más columnas resumen para consultas operativas.
type SessionRepo struct {
	q Querier
}

// NewSessionRepository construye el adaptador de persistencia para sesiones.
func NewSessionRepository(q Querier) *SessionRepo {
	return &SessionRepo{q: q}
}

// Create persiste una sesión nueva.
func (r *SessionRepo) Create(ctx context.Context, s *entity.Session) error {
	payload, err := sessioncodec.Encode(s)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO bate_carga_sessions (id, operator_id, payload, invoice_count, item_count, total_value, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err = r.q.Exec(ctx, query,
		s.ID, s.OperatorID, payload, s.InvoiceCount(), s.ItemCount(), s.TotalValue(),
		s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

// GetByID obtiene una sesión; (nil, nil) si no existe.
func (r *SessionRepo) GetByID(ctx context.Context, id string) (*entity.Session, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, nil
	}
	var payload []byte
	err := r.q.QueryRow(ctx, `SELECT payload FROM bate_carga_sessions WHERE id = $1`, id).Scan(&payload)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get session: %w", err)
	}
	return sessioncodec.Decode(payload)
}

// Save reemplaza el documento y recalcula las columnas resumen.
func (r *SessionRepo) Save(ctx context.Context, s *entity.Session) error {
	payload, err := sessioncodec.Encode(s)
	if err != nil {
		return err
	}
	query := `
		UPDATE bate_carga_sessions
		SET operator_id = $2, payload = $3, invoice_count = $4, item_count = $5, total_value = $6, updated_at = $7
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		s.ID, s.OperatorID, payload, s.InvoiceCount(), s.ItemCount(), s.TotalValue(), s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina la sesión si existe.
func (r *SessionRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM bate_carga_sessions WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// ListByOperator devuelve el resumen de las sesiones del operador, la más reciente primero.
func (r *SessionRepo) ListByOperator(ctx context.Context, operatorID string) ([]entity.SessionSummary, error) {
	query := `
		SELECT id, operator_id, invoice_count, item_count, total_value, created_at, updated_at
		FROM bate_carga_sessions WHERE operator_id = $1
		ORDER BY updated_at DESC`
	rows, err := r.q.Query(ctx, query, operatorID)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var out []entity.SessionSummary
	for rows.Next() {
		var s entity.SessionSummary
		if err := rows.Scan(&s.ID, &s.OperatorID, &s.InvoiceCount, &s.ItemCount, &s.TotalValue, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
