package batecarga

import (
	"context"
	"fmt"

	"github.com/jhoicas/BateCarga-api/internal/application/dto"
	"github.com/jhoicas/BateCarga-api/internal/domain"
	"github.com/jhoicas/BateCarga-api/internal/domain/entity"
	"github.com/jhoicas/BateCarga-api/internal/domain/reconciliation"
)

// Position ubica un grupo, una nota dentro del grupo y un ítem dentro de la nota (índices desde 0).
type Position struct {
	Group   int
	Invoice int
	Item    int
}

// ReconcileUseCase ediciones del operador sobre el conjunto de trabajo.
type ReconcileUseCase struct {
	guard *SessionGuard
}

// NewReconcileUseCase construye el caso de uso.
func NewReconcileUseCase(guard *SessionGuard) *ReconcileUseCase {
	return &ReconcileUseCase{guard: guard}
}

// SetCheckedQuantity guarda la cantidad conferida y recalcula el estado de ese ítem.
func (uc *ReconcileUseCase) SetCheckedQuantity(ctx context.Context, sessionID, operatorID string, pos Position, value string) (*dto.ItemResponse, error) {
	var out dto.ItemResponse
	_, err := uc.guard.update(ctx, sessionID, operatorID, func(s *entity.Session) error {
		inv, err := invoiceAt(s, pos)
		if err != nil {
			return err
		}
		if pos.Item < 0 || pos.Item >= len(inv.Items) {
			return fmt.Errorf("item %d: %w", pos.Item, domain.ErrNotFound)
		}
		item := &inv.Items[pos.Item]
		reconciliation.Apply(item, value)
		out = toInvoiceResponse(pos.Invoice, *inv).Items[pos.Item]
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// SetObservation guarda el texto libre de la nota (observación o romaneio).
func (uc *ReconcileUseCase) SetObservation(ctx context.Context, sessionID, operatorID string, pos Position, text string) (*dto.InvoiceResponse, error) {
	var out dto.InvoiceResponse
	_, err := uc.guard.update(ctx, sessionID, operatorID, func(s *entity.Session) error {
		inv, err := invoiceAt(s, pos)
		if err != nil {
			return err
		}
		inv.Observation = text
		out = toInvoiceResponse(pos.Invoice, *inv)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ToggleGroup alterna la expansión del grupo y devuelve el nuevo valor.
func (uc *ReconcileUseCase) ToggleGroup(ctx context.Context, sessionID, operatorID string, group int) (bool, error) {
	var open bool
	_, err := uc.guard.update(ctx, sessionID, operatorID, func(s *entity.Session) error {
		g, err := groupAt(s, group)
		if err != nil {
			return err
		}
		g.Open = !g.Open
		open = g.Open
		return nil
	})
	return open, err
}

// ToggleInvoice alterna la expansión de la nota y devuelve el nuevo valor.
func (uc *ReconcileUseCase) ToggleInvoice(ctx context.Context, sessionID, operatorID string, pos Position) (bool, error) {
	var open bool
	_, err := uc.guard.update(ctx, sessionID, operatorID, func(s *entity.Session) error {
		inv, err := invoiceAt(s, pos)
		if err != nil {
			return err
		}
		inv.Open = !inv.Open
		open = inv.Open
		return nil
	})
	return open, err
}

func groupAt(s *entity.Session, group int) (*entity.ShipmentGroup, error) {
	if group < 0 || group >= len(s.Groups) {
		return nil, fmt.Errorf("grupo %d: %w", group, domain.ErrNotFound)
	}
	return &s.Groups[group], nil
}

func invoiceAt(s *entity.Session, pos Position) (*entity.Invoice, error) {
	g, err := groupAt(s, pos.Group)
	if err != nil {
		return nil, err
	}
	if pos.Invoice < 0 || pos.Invoice >= len(g.Invoices) {
		return nil, fmt.Errorf("nota %d: %w", pos.Invoice, domain.ErrNotFound)
	}
	return &g.Invoices[pos.Invoice], nil
}
