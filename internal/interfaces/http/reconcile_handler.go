package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/BateCarga-api/internal/application/batecarga"
	"github.com/jhoicas/BateCarga-api/internal/application/dto"
)

// ReconcileHandler ediciones de conferencia sobre grupos, notas e ítems (índices desde 0).
type ReconcileHandler struct {
	uc *batecarga.ReconcileUseCase
}

// NewReconcileHandler construye el handler.
func NewReconcileHandler(uc *batecarga.ReconcileUseCase) *ReconcileHandler {
	return &ReconcileHandler{uc: uc}
}

// position lee :g, :n e :i de la ruta; los que no están quedan en 0.
func position(c *fiber.Ctx, withInvoice, withItem bool) (batecarga.Position, bool) {
	var pos batecarga.Position
	var err error
	if pos.Group, err = c.ParamsInt("g"); err != nil {
		return pos, false
	}
	if withInvoice {
		if pos.Invoice, err = c.ParamsInt("n"); err != nil {
			return pos, false
		}
	}
	if withItem {
		if pos.Item, err = c.ParamsInt("i"); err != nil {
			return pos, false
		}
	}
	return pos, true
}

// SetCheckedQuantity godoc
// @Summary      Registrar cantidad conferida de un ítem
// @Tags         reconciliation
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la sesión"
// @Param        g     path  int     true  "Índice del grupo"
// @Param        n     path  int     true  "Índice de la nota"
// @Param        i     path  int     true  "Índice del ítem"
// @Param        body  body  dto.SetCheckedQuantityRequest  true  "Cantidad"
// @Success      200  {object}  dto.ItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sessions/{id}/groups/{g}/invoices/{n}/items/{i} [put]
func (h *ReconcileHandler) SetCheckedQuantity(c *fiber.Ctx) error {
	pos, ok := position(c, true, true)
	if !ok {
		return badRequest(c, "VALIDATION", "índices inválidos")
	}
	var in dto.SetCheckedQuantityRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.SetCheckedQuantity(c.Context(), c.Params("id"), GetOperatorID(c), pos, in.CheckedQuantity)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// SetObservation godoc
// @Summary      Registrar observación (romaneio) de una nota
// @Tags         reconciliation
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la sesión"
// @Param        g     path  int     true  "Índice del grupo"
// @Param        n     path  int     true  "Índice de la nota"
// @Param        body  body  dto.SetObservationRequest  true  "Observación"
// @Success      200  {object}  dto.InvoiceResponse
// @Router       /api/sessions/{id}/groups/{g}/invoices/{n}/observation [put]
func (h *ReconcileHandler) SetObservation(c *fiber.Ctx) error {
	pos, ok := position(c, true, false)
	if !ok {
		return badRequest(c, "VALIDATION", "índices inválidos")
	}
	var in dto.SetObservationRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.SetObservation(c.Context(), c.Params("id"), GetOperatorID(c), pos, in.Observation)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ToggleGroup godoc
// @Summary      Expandir o contraer un grupo
// @Tags         reconciliation
// @Security     Bearer
// @Produce      json
// @Router       /api/sessions/{id}/groups/{g}/toggle [post]
func (h *ReconcileHandler) ToggleGroup(c *fiber.Ctx) error {
	pos, ok := position(c, false, false)
	if !ok {
		return badRequest(c, "VALIDATION", "índices inválidos")
	}
	open, err := h.uc.ToggleGroup(c.Context(), c.Params("id"), GetOperatorID(c), pos.Group)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"open": open})
}

// ToggleInvoice godoc
// @Summary      Expandir o contraer una nota
// @Tags         reconciliation
// @Security     Bearer
// @Produce      json
// @Router       /api/sessions/{id}/groups/{g}/invoices/{n}/toggle [post]
func (h *ReconcileHandler) ToggleInvoice(c *fiber.Ctx) error {
	pos, ok := position(c, true, false)
	if !ok {
		return badRequest(c, "VALIDATION", "índices inválidos")
	}
	open, err := h.uc.ToggleInvoice(c.Context(), c.Params("id"), GetOperatorID(c), pos)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"open": open})
}
