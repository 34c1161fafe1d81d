package http_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/BateCarga-api/internal/application/batecarga"
	"github.com/jhoicas/BateCarga-api/internal/application/dto"
	"github.com/jhoicas/BateCarga-api/internal/infrastructure/export"
	"github.com/jhoicas/BateCarga-api/internal/infrastructure/memory"
	infranfe "github.com/jhoicas/BateCarga-api/internal/infrastructure/nfe"
	"github.com/jhoicas/BateCarga-api/internal/infrastructure/spreadsheet"
	apphttp "github.com/jhoicas/BateCarga-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/BateCarga-api/pkg/jwt"
	"github.com/jhoicas/BateCarga-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

func buildAPI(secret string) *fiber.App {
	guard := batecarga.NewSessionGuard(memory.NewSessionRepository(), func() time.Time {
		return time.Date(2024, 10, 7, 12, 0, 0, 0, time.UTC)
	})
	log := logger.Nop()
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		SessionUC:   batecarga.NewSessionUseCase(guard),
		IngestUC:    batecarga.NewIngestUseCase(guard, infranfe.NewExtractor(), 2, log),
		PlateUC:     batecarga.NewPlateUseCase(guard, spreadsheet.NewReader(), log),
		ReconcileUC: batecarga.NewReconcileUseCase(guard),
		ExportUC:    batecarga.NewExportUseCase(guard, export.DefaultNoteLabel, export.NewCSVExporter()),
		JWTSecret:   secret,
		Logger:      log,
	})
	return app
}

func invoiceXML(number, qty string) string {
	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<nfeProc xmlns="http://www.portalfiscal.inf.br/nfe"><NFe><infNFe>
<ide><nNF>%s</nNF><dhEmi>2024-10-07T08:00:00-03:00</dhEmi></ide>
<emit><xNome>ACME LTDA</xNome><xFant>ACME</xFant></emit>
<dest><enderDest><xMun>Campinas</xMun><UF>SP</UF></enderDest></dest>
<det nItem="1"><prod><cProd>P1</cProd><xProd>ARROZ</xProd><qCom>%s</qCom></prod></det>
<total><ICMSTot><vNF>10.00</vNF></ICMSTot></total>
</infNFe></NFe></nfeProc>`, number, qty)
}

// multipartBody arma un formulario con los archivos bajo el campo indicado.
func multipartBody(t *testing.T, field string, files map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for name, content := range files {
		part, err := w.CreateFormFile(field, name)
		require.NoError(t, err)
		_, err = io.WriteString(part, content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func send(t *testing.T, app *fiber.App, method, path string, body io.Reader, contentType string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func createSession(t *testing.T, app *fiber.App) string {
	t.Helper()
	resp := send(t, app, http.MethodPost, "/api/sessions", nil, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return decode[dto.SessionResponse](t, resp).ID
}

// ──────────────────────────────────────────────────────────────────────────────
// Flujo completo
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_FlujoCargaConferenciaExportacion(t *testing.T) {
	app := buildAPI("")
	id := createSession(t, app)
	base := "/api/sessions/" + id

	body, ct := multipartBody(t, apphttp.FieldXMLFiles, map[string]string{"a.xml": invoiceXML("501", "3")})
	resp := send(t, app, http.MethodPost, base+"/invoices", body, ct)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	ingest := decode[dto.IngestResponse](t, resp)
	require.Len(t, ingest.Session.Groups, 1)
	assert.Equal(t, "ACME||Campinas", ingest.Session.Groups[0].Key)

	body, ct = multipartBody(t, apphttp.FieldPlateFile, map[string]string{"placas.csv": "Placa;NF\nabc1d23;501\n"})
	resp = send(t, app, http.MethodPost, base+"/plates", body, ct)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	plates := decode[dto.PlateUploadResponse](t, resp)
	assert.Equal(t, "ABC1D23", plates.Session.Groups[0].Invoices[0].Plate)

	resp = send(t, app, http.MethodPut, base+"/groups/0/invoices/0/items/0",
		strings.NewReader(`{"checked_quantity":"3"}`), fiber.MIMEApplicationJSON)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "OK", decode[dto.ItemResponse](t, resp).Status)

	resp = send(t, app, http.MethodPut, base+"/groups/0/invoices/0/observation",
		strings.NewReader(`{"observation":"doca 2"}`), fiber.MIMEApplicationJSON)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = send(t, app, http.MethodPost, base+"/groups/0/toggle", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, false, decode[map[string]bool](t, resp)["open"])

	resp = send(t, app, http.MethodGet, base+"/export?format=csv", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "bate_carga_export_")
	raw, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"ABC1D23"`)
	assert.Contains(t, string(raw), `"OK"`)
	assert.Contains(t, string(raw), `"doca 2"`)
}

// ──────────────────────────────────────────────────────────────────────────────
// Mapeo de errores
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_ErroresDeDominio(t *testing.T) {
	app := buildAPI("")
	id := createSession(t, app)
	base := "/api/sessions/" + id

	body, ct := multipartBody(t, apphttp.FieldPlateFile, map[string]string{"placas.csv": "Placa;NF\nA;1\n"})
	resp := send(t, app, http.MethodPost, base+"/plates", body, ct)
	assert.Equal(t, http.StatusPreconditionFailed, resp.StatusCode)
	assert.Equal(t, "PRECONDITION_FAILED", decode[dto.ErrorResponse](t, resp).Code)

	resp = send(t, app, http.MethodGet, base+"/export", nil, "")
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	errBody := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "NOTHING_TO_EXPORT", errBody.Code)
	assert.Equal(t, "Nenhum dado para exportar.", errBody.Message)

	body, ct = multipartBody(t, apphttp.FieldXMLFiles, map[string]string{"roto.xml": "<NFe><ide"})
	resp = send(t, app, http.MethodPost, base+"/invoices", body, ct)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	errBody = decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "NO_ITEMS_FOUND", errBody.Code)
	assert.Contains(t, errBody.Message, "Erro em roto.xml")
	assert.Contains(t, errBody.Message, "Nenhum item válido encontrado.")

	body, ct = multipartBody(t, apphttp.FieldXMLFiles, map[string]string{"a.xml": invoiceXML("1", "1")})
	resp = send(t, app, http.MethodPost, base+"/invoices", body, ct)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	body, ct = multipartBody(t, apphttp.FieldPlateFile, map[string]string{"placas.pdf": "x"})
	resp = send(t, app, http.MethodPost, base+"/plates", body, ct)
	assert.Equal(t, http.StatusUnsupportedMediaType, resp.StatusCode)
	resp.Body.Close()

	resp = send(t, app, http.MethodPost, base+"/groups/7/toggle", nil, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	resp = send(t, app, http.MethodPost, base+"/groups/x/toggle", nil, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = send(t, app, http.MethodGet, "/api/sessions/no-existe", nil, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestAPI_ConAuth_SesionDeOtroOperador(t *testing.T) {
	app := buildAPI(testJWTSecret)

	req := httptest.NewRequest(http.MethodPost, "/api/sessions", nil)
	req.Header.Set("Authorization", tokenForRole(t, apphttp.RoleConferente))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[dto.SessionResponse](t, resp)
	assert.Equal(t, testOperatorID, created.OperatorID)

	other, err := pkgjwt.Generate(testJWTSecret, "otro-operador", apphttp.RoleSupervisor, testIssuer, testExpMin)
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodGet, "/api/sessions/"+created.ID, nil)
	req.Header.Set("Authorization", "Bearer "+other)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	req = httptest.NewRequest(http.MethodDelete, "/api/sessions/"+created.ID, nil)
	req.Header.Set("Authorization", tokenForRole(t, apphttp.RoleConferente))
	resp2, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp2.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp2.StatusCode, "conferente no elimina sesiones")
}
