package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Cotizador-api/internal/application/analytics"
	"github.com/jhoicas/Cotizador-api/internal/application/auth"
	"github.com/jhoicas/Cotizador-api/internal/application/dto"
	"github.com/jhoicas/Cotizador-api/internal/application/inquiry"
	"github.com/jhoicas/Cotizador-api/internal/application/project"
	"github.com/jhoicas/Cotizador-api/internal/application/usecase"
	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
	"github.com/jhoicas/Cotizador-api/internal/domain/pricing"
	"github.com/jhoicas/Cotizador-api/internal/infrastructure/excel"
	"github.com/jhoicas/Cotizador-api/internal/infrastructure/memory"
	"github.com/jhoicas/Cotizador-api/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/Cotizador-api/internal/interfaces/http"
)

const testPassword = "secreto123"

// newAPI levanta la API completa sobre el backend en memoria con usuarios, catálogo y configuración.
func newAPI(t *testing.T) *fiber.App {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	repos := store.Repos()
	users := store.Users()
	tx := memory.NewTxRunner(store)
	blacklist := memory.NewTokenBlacklist()
	d := decimal.RequireFromString

	hash, err := usecase.HashPassword(testPassword)
	require.NoError(t, err)
	for _, u := range []entity.User{
		{ID: "adm-1", Username: "admin", Role: entity.RoleAdmin},
		{ID: "sm-1", Username: "gerente", Role: entity.RoleSalesManager},
		{ID: "emp-1", Username: "vendedor", Role: entity.RoleEmployee},
	} {
		u := u
		u.PasswordHash, u.IsActive = hash, true
		require.NoError(t, users.Create(ctx, &u))
	}
	require.NoError(t, repos.Categories.Create(ctx, &entity.Category{ID: "cat-1", Name: "VRF"}))
	require.NoError(t, repos.Devices.Create(ctx, &entity.Device{
		ID: "dev-1", CategoryID: "cat-1", ModelName: "VRF-500",
		FactoryPrice: d("50000"), Length: d("4.5"), Weight: d("2000"), IsActive: true,
	}))
	require.NoError(t, repos.Settings.Create(ctx, &entity.PricingSettings{
		ID: "set-1", IsActive: true,
		DiscountMultiplier: d("0.38"), FreightPerMeter: d("1000"),
		CustomsNumerator: d("350000"), CustomsDenominator: d("150000"),
		WarrantyRate: d("0.05"), CommissionFactor: d("0.95"), OfficeFactor: d("0.95"), ProfitFactor: d("0.65"),
		RoundingMode: pricing.RoundingCeil, RoundingStep: d("10"),
	}))

	inquiryUC := inquiry.NewInquiryUseCase(tx, repos.Projects, repos.Inquiries)
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:     auth.NewAuthUseCase(users, blacklist, auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: 30, Issuer: testIssuer}),
		UserUC:     usecase.NewUserUseCase(users),
		CategoryUC: usecase.NewCategoryUseCase(repos.Categories),
		DeviceUC:   usecase.NewDeviceUseCase(repos.Devices, repos.Categories),
		SettingsUC: usecase.NewSettingsUseCase(tx, repos.Settings, repos.Devices),
		ProjectUC:  project.NewProjectUseCase(tx, repos.Projects, repos.History, repos.Comments, repos.Inquiries),
		InquiryUC:  inquiryUC,
		DocumentUC: inquiry.NewDocumentUseCase(inquiryUC, excel.NewInquiryExporter(), pdf.NewMarotoPDFGenerator("test"), nil,
			inquiry.CurrencyLabels{Primary: "EUR", Secondary: "IRR"}),
		Dashboard: analytics.NewDashboardUseCase(store.Analytics()),
		Blacklist: blacklist,
		JWTSecret: testJWTSecret,
	})
	return app
}

func call(t *testing.T, app *fiber.App, method, path, token string, body any) (int, map[string]any) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	out := map[string]any{}
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return resp.StatusCode, out
}

func login(t *testing.T, app *fiber.App, username string) string {
	t.Helper()
	status, body := call(t, app, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Username: username, Password: testPassword})
	require.Equal(t, http.StatusOK, status, body)
	return body["token"].(string)
}

func TestAPI_QuoteFlow(t *testing.T) {
	app := newAPI(t)
	emp := login(t, app, "vendedor")
	sm := login(t, app, "gerente")
	adm := login(t, app, "admin")

	lat, lng := 35.7, 51.4
	status, body := call(t, app, http.MethodPost, "/api/projects", emp, dto.CreateProjectRequest{
		ProjectName: "Hospital Central", EmployerName: "Ministerio", ProjectType: "healthcare",
		AddressText: "Calle 1", Latitude: &lat, Longitude: &lng,
	})
	require.Equal(t, http.StatusCreated, status, body)
	projectID := body["id"].(string)
	assert.Equal(t, "pending_approval", body["status"])

	// Proyecto pendiente: el employee no puede cotizar.
	quote := dto.CreateInquiryRequest{DeviceID: "dev-1", Quantity: 1}
	status, body = call(t, app, http.MethodPost, "/api/projects/"+projectID+"/inquiries", emp, quote)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "PROJECT_NOT_APPROVED", body["code"])

	// Rechazo sin nota → 400; aprobación del gerente → 200.
	status, _ = call(t, app, http.MethodPost, "/api/projects/"+projectID+"/reject", sm, dto.DecisionRequest{})
	assert.Equal(t, http.StatusBadRequest, status)
	status, body = call(t, app, http.MethodPost, "/api/projects/"+projectID+"/approve", sm, nil)
	require.Equal(t, http.StatusOK, status, body)
	assert.Equal(t, "approved", body["status"])

	status, body = call(t, app, http.MethodPost, "/api/projects/"+projectID+"/inquiries", emp, quote)
	require.Equal(t, http.StatusCreated, status, body)
	inquiryID := body["id"].(string)
	assert.Equal(t, "49640", body["sell_price_eur"])
	assert.NotContains(t, body, "factory_pricelist_eur")
	assert.NotContains(t, body, "calculation_breakdown")

	// El admin ve costo y desglose de la misma cotización.
	status, body = call(t, app, http.MethodGet, "/api/inquiries/"+inquiryID, adm, nil)
	require.Equal(t, http.StatusOK, status, body)
	assert.Equal(t, "50000", body["factory_pricelist_eur"])
	breakdown, ok := body["calculation_breakdown"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "49640", breakdown["sell_price_eur"])
	assert.Equal(t, "19000", breakdown["company_price_eur"])

	// Sólo el admin decide cotizaciones.
	status, _ = call(t, app, http.MethodPost, "/api/inquiries/"+inquiryID+"/approve", emp, nil)
	assert.Equal(t, http.StatusForbidden, status)
	status, body = call(t, app, http.MethodPost, "/api/inquiries/"+inquiryID+"/approve", adm, nil)
	require.Equal(t, http.StatusOK, status, body)
	assert.Equal(t, "approved", body["status"])
	assert.Equal(t, "49640", body["sell_price_eur"])
}

func TestAPI_DocumentsAndLogout(t *testing.T) {
	app := newAPI(t)
	emp := login(t, app, "vendedor")
	sm := login(t, app, "gerente")

	lat, lng := 1.0, 2.0
	_, body := call(t, app, http.MethodPost, "/api/projects", emp, dto.CreateProjectRequest{
		ProjectName: "Oficinas", ProjectType: "commercial", AddressText: "Calle 2", Latitude: &lat, Longitude: &lng,
	})
	projectID := body["id"].(string)
	status, _ := call(t, app, http.MethodPost, "/api/projects/"+projectID+"/approve", sm, nil)
	require.Equal(t, http.StatusOK, status)
	_, body = call(t, app, http.MethodPost, "/api/projects/"+projectID+"/inquiries", emp, dto.CreateInquiryRequest{DeviceID: "dev-1", Quantity: 2})
	inquiryID := body["id"].(string)

	req := httptest.NewRequest(http.MethodGet, "/api/inquiries/"+inquiryID+"/pdf", nil)
	req.Header.Set("Authorization", "Bearer "+emp)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))

	req = httptest.NewRequest(http.MethodGet, "/api/projects/"+projectID+"/inquiries/export", nil)
	req.Header.Set("Authorization", "Bearer "+emp)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "cotizaciones-"+projectID+".xlsx")

	// Sin almacén de documentos configurado el archivo no es posible.
	status, body = call(t, app, http.MethodPost, "/api/inquiries/"+inquiryID+"/pdf/archive", emp, nil)
	assert.Equal(t, http.StatusConflict, status, body)

	status, _ = call(t, app, http.MethodPost, "/api/auth/logout", emp, nil)
	require.Equal(t, http.StatusNoContent, status)
	status, body = call(t, app, http.MethodGet, "/api/auth/me", emp, nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "REVOKED_TOKEN", body["code"])
}

func TestAPI_AdminRoutes(t *testing.T) {
	app := newAPI(t)
	emp := login(t, app, "vendedor")
	adm := login(t, app, "admin")

	status, _ := call(t, app, http.MethodGet, "/api/settings", emp, nil)
	assert.Equal(t, http.StatusForbidden, status)
	status, body := call(t, app, http.MethodGet, "/api/settings", adm, nil)
	require.Equal(t, http.StatusOK, status, body)

	status, body = call(t, app, http.MethodPost, "/api/pricing/simulate", adm, dto.SimulateRequest{DeviceID: "dev-1"})
	require.Equal(t, http.StatusOK, status, body)
	assert.Equal(t, "49640", body["sell_price_eur"])

	zero := decimal.Zero
	status, body = call(t, app, http.MethodPut, "/api/settings", adm, dto.UpdateSettingsRequest{OfficeFactor: &zero})
	assert.Equal(t, http.StatusUnprocessableEntity, status, body)

	// Búsqueda de equipos: el employee no recibe costos.
	req := httptest.NewRequest(http.MethodGet, "/api/devices?query=vrf", nil)
	req.Header.Set("Authorization", "Bearer "+emp)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var devices []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&devices))
	require.Len(t, devices, 1)
	assert.NotContains(t, devices[0], "factory_pricelist_eur")

}

func TestAPI_ProjectStats(t *testing.T) {
	app := newAPI(t)
	emp := login(t, app, "vendedor")
	sm := login(t, app, "gerente")

	lat, lng := 35.7, 51.4
	ids := make([]string, 0, 2)
	for _, name := range []string{"Torre A", "Torre B"} {
		status, body := call(t, app, http.MethodPost, "/api/projects", emp, dto.CreateProjectRequest{
			ProjectName: name, EmployerName: "Ministerio", ProjectType: "commercial",
			AddressText: "Calle 1", Latitude: &lat, Longitude: &lng,
		})
		require.Equal(t, http.StatusCreated, status, body)
		ids = append(ids, body["id"].(string))
	}
	status, body := call(t, app, http.MethodPost, "/api/projects/"+ids[0]+"/approve", sm, nil)
	require.Equal(t, http.StatusOK, status, body)

	status, body = call(t, app, http.MethodGet, "/api/projects/stats", emp, nil)
	require.Equal(t, http.StatusOK, status, body)
	assert.Equal(t, float64(2), body["total"])
	assert.Equal(t, float64(1), body["pending_approval"])
	assert.Equal(t, float64(1), body["approved"])
	assert.Equal(t, float64(0), body["rejected"])
	byStatus, ok := body["by_status"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(0), byStatus["won"])

	status, _ = call(t, app, http.MethodGet, "/api/projects/stats", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}
