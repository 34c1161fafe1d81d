package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/BateCarga-api/internal/application/batecarga"
	"github.com/jhoicas/BateCarga-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	SessionUC   *batecarga.SessionUseCase
	IngestUC    *batecarga.IngestUseCase
	PlateUC     *batecarga.PlateUseCase
	ReconcileUC *batecarga.ReconcileUseCase
	ExportUC    *batecarga.ExportUseCase
	JWTSecret   string // vacío: autenticación desactivada
	Logger      *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	if deps.Logger != nil {
		app.Use(RequestLogger(deps.Logger))
	}

	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))

	sessionHandler := NewSessionHandler(deps.SessionUC)
	uploadHandler := NewUploadHandler(deps.IngestUC, deps.PlateUC)
	reconcileHandler := NewReconcileHandler(deps.ReconcileUC)
	exportHandler := NewExportHandler(deps.ExportUC)

	sessions := api.Group("/sessions")
	sessions.Post("/", sessionHandler.Create)
	sessions.Get("/", sessionHandler.List)
	sessions.Get("/:id", sessionHandler.GetByID)
	sessions.Delete("/:id", RequireRole(RoleSupervisor), sessionHandler.Delete)
	sessions.Post("/:id/reset", sessionHandler.Reset)

	// Cargas
	sessions.Post("/:id/invoices", uploadHandler.UploadInvoices)
	sessions.Post("/:id/plates", uploadHandler.UploadPlates)

	// Conferencia
	sessions.Put("/:id/groups/:g/invoices/:n/items/:i", reconcileHandler.SetCheckedQuantity)
	sessions.Put("/:id/groups/:g/invoices/:n/observation", reconcileHandler.SetObservation)
	sessions.Post("/:id/groups/:g/toggle", reconcileHandler.ToggleGroup)
	sessions.Post("/:id/groups/:g/invoices/:n/toggle", reconcileHandler.ToggleInvoice)

	sessions.Get("/:id/export", exportHandler.Export)
}
