package order

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"sabores/internal/config"
	"sabores/internal/dto"
)

func testConfig(t *testing.T) *config.Config {
	return &config.Config{
		Database: config.DatabaseConfig{Driver: "postgres"},
		Fallback: config.FallbackConfig{FilePath: filepath.Join(t.TempDir(), "orders.json"), Capacity: 100},
		Webhook:  config.WebhookConfig{Timeout: time.Second},
		Store:    config.StoreConfig{Name: "Sabores de Zissou", PixKey: "11981047422"},
	}
}

const validOrder = `{
	"product_id": "p-1",
	"product_name": "Torta de Limão",
	"customer_name": "Carla",
	"customer_address": "Rua Augusta, 500",
	"customer_whatsapp": "(11) 97777-6666"
}`

func submit(t *testing.T, ctrl interface {
	Submit(http.ResponseWriter, *http.Request)
}, body string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	ctrl.Submit(rec, httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(body)))
	return rec
}

func TestModule_SubmitWithoutRemoteLandsLocallyAndIsListed(t *testing.T) {
	ctrl := NewModule(nil, testConfig(t), zap.NewNop())

	rec := submit(t, ctrl, validOrder)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created dto.SubmitOrderResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.NotEmpty(t, created.OrderID)
	assert.Equal(t, "memory+file", created.SavedIn)
	assert.False(t, created.WebhookSent)

	listRec := httptest.NewRecorder()
	ctrl.List(listRec, httptest.NewRequest(http.MethodGet, "/api/orders", nil))
	require.Equal(t, http.StatusOK, listRec.Code)

	var listed dto.ListOrdersResponse
	require.NoError(t, json.Unmarshal(listRec.Body.Bytes(), &listed))
	assert.Equal(t, "local-backup", listed.Source)
	require.Len(t, listed.Orders, 1)
	assert.Equal(t, created.OrderID, listed.Orders[0].ID)
	assert.Equal(t, "pix", string(listed.Orders[0].PaymentMethod))
}

func TestModule_MissingCustomerNameAddsNothing(t *testing.T) {
	ctrl := NewModule(nil, testConfig(t), zap.NewNop())

	rec := submit(t, ctrl, `{"product_id":"p-1","customer_address":"Rua 1","customer_whatsapp":"119"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	listRec := httptest.NewRecorder()
	ctrl.List(listRec, httptest.NewRequest(http.MethodGet, "/api/orders", nil))

	var listed dto.ListOrdersResponse
	require.NoError(t, json.Unmarshal(listRec.Body.Bytes(), &listed))
	assert.Empty(t, listed.Orders)
}

func TestModule_OrdersSurviveRestart(t *testing.T) {
	cfg := testConfig(t)

	first := NewModule(nil, cfg, zap.NewNop())
	require.Equal(t, http.StatusCreated, submit(t, first, validOrder).Code)

	restarted := NewModule(nil, cfg, zap.NewNop())
	listRec := httptest.NewRecorder()
	restarted.List(listRec, httptest.NewRequest(http.MethodGet, "/api/orders", nil))

	var listed dto.ListOrdersResponse
	require.NoError(t, json.Unmarshal(listRec.Body.Bytes(), &listed))
	require.Len(t, listed.Orders, 1)
	assert.Equal(t, "Carla", listed.Orders[0].CustomerName)
}
