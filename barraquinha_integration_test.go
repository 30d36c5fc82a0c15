package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/andrelmbraga/barraquinha/models"
	"github.com/andrelmbraga/barraquinha/router"
	"github.com/andrelmbraga/barraquinha/utils"
)

func TestMain(m *testing.M) {
	utils.InitLogger()
	os.Exit(m.Run())
}

// TestEndToEndOrderFlow cobre o fluxo principal da barraca:
// 1. Cliente monta pedido de 2 linhas (R$ 34,00) pelo cardápio
// 2. Pedido nasce aguardando pagamento
// 3. Equipe avança o status até pronto; fila do barman reflete cada passo
// 4. Entregue some da fila e dos filtros de ativos
func TestEndToEndOrderFlow(t *testing.T) {
	t.Setenv("ADMIN_PASSWORD", "segredo123")

	db := setupIntegrationDB(t)
	r := router.SetupRouter(db)
	token := loginAdmin(t, r)

	// Pedido de 2 linhas: 2x caipirinha (13) + 1x batida (8) = 34
	payload := map[string]interface{}{
		"client_name": "João Silva",
		"items": []map[string]interface{}{
			{"menu_item_id": 1, "quantity": 2, "unit_price": 13.0},
			{"menu_item_id": 2, "quantity": 1, "unit_price": 8.0},
		},
	}
	resp := request(t, r, "POST", "/orders", payload, "")
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	order := body["data"].(map[string]interface{})
	orderID := int(order["id"].(float64))
	assert.Equal(t, "awaiting_payment", order["status"])
	assert.InDelta(t, 34.0, order["total"].(float64), 0.001)

	// Ficha entregue -> entra na fila de espera do barman
	setStatus(t, r, token, orderID, "voucher_delivered")
	assert.Contains(t, queueIDs(t, r, token), orderID)

	// Pronto -> sai da fila (só espera e preparo aparecem)
	setStatus(t, r, token, orderID, "ready")
	assert.NotContains(t, queueIDs(t, r, token), orderID)

	// Entregue -> fora da fila e fora dos pedidos ativos
	setStatus(t, r, token, orderID, "delivered")
	assert.NotContains(t, queueIDs(t, r, token), orderID)

	resp = request(t, r, "GET", "/admin/orders?active=true", nil, token)
	require.Equal(t, http.StatusOK, resp.Code)
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	for _, entry := range body["data"].([]interface{}) {
		assert.NotEqual(t, float64(orderID), entry.(map[string]interface{})["id"])
	}
}

// TestEndToEndUnavailableItemRejection: pedido com item inativo é recusado
// inteiro com o motivo; reenvio sem a linha problemática passa.
func TestEndToEndUnavailableItemRejection(t *testing.T) {
	t.Setenv("ADMIN_PASSWORD", "segredo123")

	db := setupIntegrationDB(t)
	r := router.SetupRouter(db)

	require.NoError(t, db.Model(&models.MenuItem{}).Where("id = ?", 2).Update("active", false).Error)

	payload := map[string]interface{}{
		"client_name": "Maria",
		"items": []map[string]interface{}{
			{"menu_item_id": 1, "quantity": 1, "unit_price": 13.0},
			{"menu_item_id": 2, "quantity": 1, "unit_price": 8.0},
		},
	}
	resp := request(t, r, "POST", "/orders", payload, "")
	require.Equal(t, http.StatusConflict, resp.Code, resp.Body.String())

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	rejected := body["data"].(map[string]interface{})["unavailable_items"].([]interface{})
	require.Len(t, rejected, 1)
	assert.Equal(t, "inactive", rejected[0].(map[string]interface{})["reason"])

	var count int64
	db.Model(&models.Order{}).Count(&count)
	assert.Zero(t, count, "rejeição é atômica, nada gravado")

	payload["items"] = []map[string]interface{}{
		{"menu_item_id": 1, "quantity": 1, "unit_price": 13.0},
	}
	resp = request(t, r, "POST", "/orders", payload, "")
	assert.Equal(t, http.StatusCreated, resp.Code)
}

func setupIntegrationDB(t *testing.T) *gorm.DB {
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open("file:integration_"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.Category{},
		&models.MenuItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.OrderEvent{},
	))

	category := models.Category{Name: "Drinks", DisplayOrder: 1, Active: true, Visible: true}
	require.NoError(t, db.Create(&category).Error)
	require.NoError(t, db.Create(&models.MenuItem{
		CategoryID: &category.ID, Name: "Caipirinha", Price: 13, Active: true, Available: true,
	}).Error)
	require.NoError(t, db.Create(&models.MenuItem{
		CategoryID: &category.ID, Name: "Batida de coco", Price: 8, Active: true, Available: true,
	}).Error)
	return db
}

func request(t *testing.T, r *gin.Engine, method, url string, payload interface{}, token string) *httptest.ResponseRecorder {
	var body *bytes.Buffer
	if payload != nil {
		payloadBytes, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewBuffer(payloadBytes)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, url, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func loginAdmin(t *testing.T, r *gin.Engine) string {
	resp := request(t, r, "POST", "/admin/login", map[string]string{"password": "segredo123"}, "")
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	return body["data"].(map[string]interface{})["token"].(string)
}

func setStatus(t *testing.T, r *gin.Engine, token string, orderID int, status string) {
	resp := request(t, r, "PATCH", fmt.Sprintf("/admin/orders/%d/status", orderID),
		map[string]string{"status": status}, token)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
}

func queueIDs(t *testing.T, r *gin.Engine, token string) []int {
	resp := request(t, r, "GET", "/barman/orders", nil, token)
	require.Equal(t, http.StatusOK, resp.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))

	ids := []int{}
	if data, ok := body["data"].([]interface{}); ok {
		for _, entry := range data {
			ids = append(ids, int(entry.(map[string]interface{})["id"].(float64)))
		}
	}
	return ids
}
