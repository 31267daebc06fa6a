package handler_test

import (
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func billRequest(inventoryID uint) gin.H {
	return gin.H{
		"customer": gin.H{
			"name":         "Asha",
			"phone_number": "9000000001",
		},
		"items": []gin.H{
			{
				"inventory_id": inventoryID,
				"item_name":    "Soap",
				"quantity":     2,
				"unit_price":   100,
			},
		},
		"payment_method": "Cash",
	}
}

func TestCreateBillEndpoint(t *testing.T) {
	r, db := setupServer(t)
	token := newTenant(t, r, db, "9876543210")
	id := createItem(t, r, token, "Soap", 100, 10)

	w := doJSON(t, r, http.MethodPost, "/api/bills", billRequest(id), token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	body := decodeBody(t, w)
	assert.Equal(t, true, body["success"])
	data := body["data"].(map[string]interface{})

	url, ok := data["whatsappUrl"].(string)
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(url, "https://api.whatsapp.com/send?text="))

	bill := data["bill"].(map[string]interface{})
	assert.Equal(t, float64(236), bill["total_amount"])
	assert.Equal(t, float64(18), bill["cgst"])
	assert.Equal(t, float64(18), bill["sgst"])
	customer := bill["customer"].(map[string]interface{})
	assert.Equal(t, "Asha", customer["name"])

	// Stock was debited.
	w = doJSON(t, r, http.MethodGet, itemPath(id), nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	item := decodeBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, float64(8), item["quantity"])
}

func TestCreateBillValidation(t *testing.T) {
	r, db := setupServer(t)
	token := newTenant(t, r, db, "9876543210")

	w := doJSON(t, r, http.MethodPost, "/api/bills", gin.H{
		"payment_method": "Cash",
	}, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateBillInsufficientStock(t *testing.T) {
	r, db := setupServer(t)
	token := newTenant(t, r, db, "9876543210")
	id := createItem(t, r, token, "Soap", 100, 1)

	w := doJSON(t, r, http.MethodPost, "/api/bills", billRequest(id), token)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())
	assert.Contains(t, decodeBody(t, w)["message"], "insufficient quantity")

	// Inventory unchanged.
	w = doJSON(t, r, http.MethodGet, itemPath(id), nil, token)
	item := decodeBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, float64(1), item["quantity"])
}

func TestCreateBillUnknownInventory(t *testing.T) {
	r, db := setupServer(t)
	token := newTenant(t, r, db, "9876543210")

	w := doJSON(t, r, http.MethodPost, "/api/bills", billRequest(9999), token)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())
	assert.Contains(t, decodeBody(t, w)["message"], "not found")
}

func TestListAndGetBills(t *testing.T) {
	r, db := setupServer(t)
	token := newTenant(t, r, db, "9876543210")
	id := createItem(t, r, token, "Soap", 100, 10)

	w := doJSON(t, r, http.MethodPost, "/api/bills", billRequest(id), token)
	require.Equal(t, http.StatusCreated, w.Code)
	created := decodeBody(t, w)["data"].(map[string]interface{})["bill"].(map[string]interface{})
	billID := uint(created["id"].(float64))

	w = doJSON(t, r, http.MethodGet, "/api/bills", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	bills := decodeBody(t, w)["data"].([]interface{})
	require.Len(t, bills, 1)

	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/bills/%d", billID), nil, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	bill := decodeBody(t, w)["data"].(map[string]interface{})
	items := bill["items"].([]interface{})
	require.Len(t, items, 1)
	assert.Equal(t, "Soap", items[0].(map[string]interface{})["item_name"])

	w = doJSON(t, r, http.MethodGet, "/api/bills/9999", nil, token)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDownloadBillPDF(t *testing.T) {
	r, db := setupServer(t)
	token := newTenant(t, r, db, "9876543210")
	id := createItem(t, r, token, "Soap", 100, 10)

	w := doJSON(t, r, http.MethodPost, "/api/bills", billRequest(id), token)
	require.Equal(t, http.StatusCreated, w.Code)
	created := decodeBody(t, w)["data"].(map[string]interface{})["bill"].(map[string]interface{})
	billID := uint(created["id"].(float64))

	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/bills/download/%d", billID), nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	require.Greater(t, w.Body.Len(), 4)
	assert.Equal(t, "%PDF", w.Body.String()[:4])
}

func TestBillTenantIsolation(t *testing.T) {
	r, db := setupServer(t)
	tokenA := newTenant(t, r, db, "9876543210")
	tokenB := newTenant(t, r, db, "9876543211")
	id := createItem(t, r, tokenA, "Soap", 100, 10)

	w := doJSON(t, r, http.MethodPost, "/api/bills", billRequest(id), tokenA)
	require.Equal(t, http.StatusCreated, w.Code)
	created := decodeBody(t, w)["data"].(map[string]interface{})["bill"].(map[string]interface{})
	billID := uint(created["id"].(float64))

	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/bills/%d", billID), nil, tokenB)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/bills", nil, tokenB)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decodeBody(t, w)["data"])
}
