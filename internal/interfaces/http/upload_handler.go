package http

import (
	"io"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/BateCarga-api/internal/application/batecarga"
	"github.com/jhoicas/BateCarga-api/internal/application/dto"
)

// Campos multipart.
const (
	FieldXMLFiles  = "xmlFiles"
	FieldPlateFile = "plateFile"
)

// UploadHandler recibe el lote de XML y la planilla de placas.
type UploadHandler struct {
	ingest *batecarga.IngestUseCase
	plates *batecarga.PlateUseCase
}

// NewUploadHandler construye el handler.
func NewUploadHandler(ingest *batecarga.IngestUseCase, plates *batecarga.PlateUseCase) *UploadHandler {
	return &UploadHandler{ingest: ingest, plates: plates}
}

// UploadInvoices godoc
// @Summary      Cargar lote de NF-e (reemplaza el conjunto de trabajo)
// @Tags         uploads
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        id        path      string  true  "ID de la sesión"
// @Param        xmlFiles  formData  file    true  "Archivos XML"
// @Success      200  {object}  dto.IngestResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/sessions/{id}/invoices [post]
func (h *UploadHandler) UploadInvoices(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return badRequest(c, "INVALID_BODY", "se espera multipart/form-data")
	}
	headers := append(form.File[FieldXMLFiles], form.File[FieldXMLFiles+"[]"]...)
	if len(headers) == 0 {
		return badRequest(c, "VALIDATION", FieldXMLFiles+" es requerido")
	}
	files := make([]dto.UploadedFile, 0, len(headers))
	for _, fh := range headers {
		f, err := readPart(fh)
		if err != nil {
			return badRequest(c, "INVALID_BODY", "no se pudo leer "+fh.Filename)
		}
		files = append(files, f)
	}

	out, err := h.ingest.Ingest(c.Context(), c.Params("id"), GetOperatorID(c), files)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UploadPlates godoc
// @Summary      Cargar planilla NF -> placa (.xlsx, .xls, .csv)
// @Tags         uploads
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        id         path      string  true  "ID de la sesión"
// @Param        plateFile  formData  file    true  "Planilla"
// @Success      200  {object}  dto.PlateUploadResponse
// @Failure      412  {object}  dto.ErrorResponse
// @Failure      415  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/sessions/{id}/plates [post]
func (h *UploadHandler) UploadPlates(c *fiber.Ctx) error {
	fh, err := c.FormFile(FieldPlateFile)
	if err != nil {
		return badRequest(c, "VALIDATION", FieldPlateFile+" es requerido")
	}
	f, err := readPart(fh)
	if err != nil {
		return badRequest(c, "INVALID_BODY", "no se pudo leer "+fh.Filename)
	}

	out, err := h.plates.Load(c.Context(), c.Params("id"), GetOperatorID(c), f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

func readPart(fh *multipart.FileHeader) (dto.UploadedFile, error) {
	r, err := fh.Open()
	if err != nil {
		return dto.UploadedFile{}, err
	}
	defer r.Close()
	content, err := io.ReadAll(r)
	if err != nil {
		return dto.UploadedFile{}, err
	}
	return dto.UploadedFile{Name: fh.Filename, Content: content}, nil
}
