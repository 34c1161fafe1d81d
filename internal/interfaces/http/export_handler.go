package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/BateCarga-api/internal/application/batecarga"
)

// ExportHandler descarga del reporte de conferencia.
type ExportHandler struct {
	uc *batecarga.ExportUseCase
}

// NewExportHandler construye el handler.
func NewExportHandler(uc *batecarga.ExportUseCase) *ExportHandler {
	return &ExportHandler{uc: uc}
}

// Export godoc
// @Summary      Exportar la conferencia
// @Tags         export
// @Security     Bearer
// @Produce      text/csv
// @Produce      application/pdf
// @Param        id      path   string  true   "ID de la sesión"
// @Param        format  query  string  false  "csv | xlsx | pdf"  default(csv)
// @Success      200
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/sessions/{id}/export [get]
func (h *ExportHandler) Export(c *fiber.Ctx) error {
	out, err := h.uc.Export(c.Context(), c.Params("id"), GetOperatorID(c), c.Query("format", "csv"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, out.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, out.FileName))
	return c.Send(out.Content)
}
