package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/internal/application/inventory"
	"github.com/jhoicas/estoque-api/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/estoque-api/internal/interfaces/http"
)

// testAPI router completo sobre el store en memoria.
type testAPI struct {
	app   *fiber.App
	token string
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	store := memory.NewStore()
	repos := store.Repos()
	settings := inventory.Settings{Logger: zerolog.Nop()}

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		Supplies:  inventory.NewSupplyUseCase(store, repos.Supplies, settings),
		Ledger:    inventory.NewRegisterMovementUseCase(store, settings),
		Queries:   inventory.NewStockQueryUseCase(repos.Movements, repos.TruckStock, settings),
		Alerts:    inventory.NewAlertUseCase(repos.Supplies, settings),
		Reconcile: inventory.NewReconcileUseCase(repos.Supplies, repos.Movements, repos.TruckStock, settings),
		Vehicles:  inventory.NewVehicleUseCase(repos.Vehicles, settings),
		JWTSecret: testJWTSecret,
		Logger:    zerolog.Nop(),
	})
	return &testAPI{app: app, token: bearer(t, "")}
}

// do envía body como JSON (o crudo si es []byte) y devuelve status y cuerpo.
func (a *testAPI) do(t *testing.T, method, path string, body any) (int, []byte) {
	t.Helper()
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case []byte:
		reader = bytes.NewReader(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Authorization", a.token)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := a.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, out
}

func decodeInto[T any](t *testing.T, raw []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v), string(raw))
	return v
}

func (a *testAPI) createSupply(t *testing.T, name string, min, initial int64) dto.SupplyResponse {
	t.Helper()
	status, raw := a.do(t, http.MethodPost, "/api/stock/supplies", dto.CreateSupplyRequest{
		Name:            name,
		Category:        "PPE",
		MinQuantity:     decimal.NewFromInt(min),
		InitialQuantity: decimal.NewFromInt(initial),
	})
	require.Equal(t, http.StatusCreated, status, string(raw))
	return decodeInto[dto.SupplyResponse](t, raw)
}

func TestAPI_SinToken_Retorna401(t *testing.T) {
	api := newTestAPI(t)
	req := httptest.NewRequest(http.MethodGet, "/api/stock/supplies", nil)
	resp, err := api.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAPI_MovimientosYAlertas(t *testing.T) {
	api := newTestAPI(t)
	s := api.createSupply(t, "Luvas", 5, 10)
	assert.True(t, s.Quantity.Equal(decimal.NewFromInt(10)))
	assert.Equal(t, "OK", s.StockLevel)

	status, raw := api.do(t, http.MethodPost, "/api/stock/movements", map[string]any{
		"supply_id": s.ID, "type": "SAIDA", "quantity": 7,
	})
	require.Equal(t, http.StatusCreated, status, string(raw))
	mov := decodeInto[dto.MovementResponse](t, raw)
	assert.True(t, mov.QuantityBefore.Equal(decimal.NewFromInt(10)))
	assert.True(t, mov.QuantityAfter.Equal(decimal.NewFromInt(3)))
	assert.Equal(t, testUserID, mov.CreatedBy)

	status, raw = api.do(t, http.MethodGet, "/api/stock/supplies/"+s.ID, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "LOW", decodeInto[dto.SupplyResponse](t, raw).StockLevel)

	status, raw = api.do(t, http.MethodGet, "/api/stock/alerts/low-stock", nil)
	require.Equal(t, http.StatusOK, status)
	alerts := decodeInto[[]dto.StockAlertResponse](t, raw)
	require.Len(t, alerts, 1)
	assert.Equal(t, s.ID, alerts[0].SupplyID)

	status, raw = api.do(t, http.MethodPost, "/api/stock/movements", map[string]any{
		"supply_id": s.ID, "type": "SAIDA", "quantity": 5,
	})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "INSUFFICIENT_STOCK", decodeInto[dto.ErrorResponse](t, raw).Code)

	status, raw = api.do(t, http.MethodPost, "/api/stock/movements", map[string]any{
		"supply_id": s.ID, "type": "AJUSTE", "target_quantity": 8,
	})
	require.Equal(t, http.StatusCreated, status, string(raw))
	assert.True(t, decodeInto[dto.MovementResponse](t, raw).QuantityAfter.Equal(decimal.NewFromInt(8)))

	status, raw = api.do(t, http.MethodGet, "/api/stock/movements?supply_id="+s.ID, nil)
	require.Equal(t, http.StatusOK, status)
	page := decodeInto[dto.MovementListResponse](t, raw)
	require.Len(t, page.Items, 2)
	assert.Empty(t, page.NextCursor)

	status, _ = api.do(t, http.MethodGet, "/api/stock/movements/"+mov.ID, nil)
	assert.Equal(t, http.StatusOK, status)
}

func TestAPI_Errores(t *testing.T) {
	api := newTestAPI(t)
	s := api.createSupply(t, "Seringa", 0, 4)

	status, raw := api.do(t, http.MethodPut, "/api/stock/supplies/"+s.ID, map[string]any{"quantity": 99})
	assert.Equal(t, http.StatusBadRequest, status)
	errBody := decodeInto[dto.ErrorResponse](t, raw)
	assert.Equal(t, "VALIDATION", errBody.Code)
	assert.Equal(t, "quantity", errBody.Field)

	status, raw = api.do(t, http.MethodPost, "/api/stock/movements", []byte(`{"supply_id":`))
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "body", decodeInto[dto.ErrorResponse](t, raw).Field)

	status, _ = api.do(t, http.MethodPost, "/api/stock/movements", map[string]any{
		"supply_id": s.ID, "type": "SAIDA", "quantity": 0,
	})
	assert.Equal(t, http.StatusBadRequest, status)

	status, raw = api.do(t, http.MethodGet, "/api/stock/supplies/no-existe", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", decodeInto[dto.ErrorResponse](t, raw).Code)

	status, _ = api.do(t, http.MethodGet, "/api/stock/alerts/expiring?horizon_days=abc", nil)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = api.do(t, http.MethodGet, "/api/stock/supplies?active=talvez", nil)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = api.do(t, http.MethodPost, "/api/stock/movements", map[string]any{
		"supply_id": s.ID, "type": "ENTRADA", "quantity": 1,
	})
	require.Equal(t, http.StatusCreated, status)
	status, raw = api.do(t, http.MethodDelete, "/api/stock/supplies/"+s.ID, nil)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "CONFLICT", decodeInto[dto.ErrorResponse](t, raw).Code)

	status, raw = api.do(t, http.MethodPost, "/api/stock/supplies/"+s.ID+"/deactivate", nil)
	require.Equal(t, http.StatusOK, status)
	assert.False(t, decodeInto[dto.SupplyResponse](t, raw).Active)

	other := api.createSupply(t, "Gaze", 0, 0)
	status, _ = api.do(t, http.MethodDelete, "/api/stock/supplies/"+other.ID, nil)
	assert.Equal(t, http.StatusNoContent, status)
}

func TestAPI_TransferenciaConsumoYReconciliacion(t *testing.T) {
	api := newTestAPI(t)
	s := api.createSupply(t, "Máscara", 2, 10)

	status, raw := api.do(t, http.MethodPost, "/api/vehicles", dto.CreateVehicleRequest{Plate: "abc1d23"})
	require.Equal(t, http.StatusCreated, status, string(raw))
	v := decodeInto[dto.VehicleResponse](t, raw)
	assert.Equal(t, "ABC1D23", v.Plate)

	status, _ = api.do(t, http.MethodPost, "/api/vehicles", dto.CreateVehicleRequest{Plate: "ABC1D23"})
	assert.Equal(t, http.StatusConflict, status)

	status, raw = api.do(t, http.MethodPost, "/api/stock/transfers", map[string]any{
		"supply_id": s.ID, "vehicle_id": v.ID, "quantity": 4, "direction": "TO_VEHICLE",
	})
	require.Equal(t, http.StatusCreated, status, string(raw))

	status, raw = api.do(t, http.MethodPost, "/api/stock/consumptions", map[string]any{
		"campaign_id": "campanha-1", "supply_id": s.ID, "vehicle_id": v.ID, "quantity": 5,
	})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "INSUFFICIENT_STOCK", decodeInto[dto.ErrorResponse](t, raw).Code)

	status, raw = api.do(t, http.MethodPost, "/api/stock/consumptions", map[string]any{
		"campaign_id": "campanha-1", "supply_id": s.ID, "vehicle_id": v.ID, "quantity": 3,
	})
	require.Equal(t, http.StatusCreated, status, string(raw))

	status, raw = api.do(t, http.MethodGet, "/api/stock/trucks/"+v.ID, nil)
	require.Equal(t, http.StatusOK, status)
	truck := decodeInto[dto.TruckStockResponse](t, raw)
	require.Len(t, truck.Items, 1)
	assert.True(t, truck.Items[0].Quantity.Equal(decimal.NewFromInt(1)))

	status, raw = api.do(t, http.MethodGet, "/api/stock/supplies/"+s.ID, nil)
	require.Equal(t, http.StatusOK, status)
	assert.True(t, decodeInto[dto.SupplyResponse](t, raw).Quantity.Equal(decimal.NewFromInt(6)))

	status, raw = api.do(t, http.MethodGet, "/api/stock/reconciliation/"+s.ID, nil)
	require.Equal(t, http.StatusOK, status)
	assert.True(t, decodeInto[dto.ReconciliationResponse](t, raw).Consistent)

	status, raw = api.do(t, http.MethodGet, "/api/vehicles", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, decodeInto[[]dto.VehicleResponse](t, raw), 1)
}
