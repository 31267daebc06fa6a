package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/kartavya2004/retail-billing/config"
	"github.com/kartavya2004/retail-billing/internal/billing"
	"github.com/kartavya2004/retail-billing/internal/handler"
	"github.com/kartavya2004/retail-billing/internal/invoice"
	"github.com/kartavya2004/retail-billing/internal/middleware"
	"github.com/kartavya2004/retail-billing/internal/models"
	"github.com/kartavya2004/retail-billing/internal/otp"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	config.AppConfig = &config.Config{
		Server: config.ServerConfig{
			Port:               "3000",
			JWTSecret:          "handler-test-secret",
			JWTExpirationHours: 24,
			OTPExpiryMinutes:   10,
		},
		Billing: config.BillingConfig{
			GSTRate:          0.09,
			PDFRenderTimeout: 5,
		},
	}
	os.Exit(m.Run())
}

// setupServer wires the same routes as cmd/server against an in-memory DB.
func setupServer(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// A pooled second connection would see its own empty in-memory DB.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.Enterprise{},
		&models.Customer{},
		&models.InventoryItem{},
		&models.Bill{},
	))

	r := gin.New()

	authHandler := &handler.AuthHandler{DB: db, Sender: otp.ConsoleSender{}}
	authRoutes := r.Group("/api/auth")
	{
		authRoutes.POST("/register", authHandler.Register)
		authRoutes.POST("/verify-otp", authHandler.VerifyOTP)
		authRoutes.POST("/resend-otp", authHandler.ResendOTP)
		authRoutes.POST("/login", authHandler.Login)
	}

	inventoryHandler := &handler.InventoryHandler{DB: db}
	invRoutes := r.Group("/api/inventory")
	invRoutes.Use(middleware.AuthMiddleware())
	{
		invRoutes.GET("", inventoryHandler.List)
		invRoutes.GET("/:id", inventoryHandler.Get)
		invRoutes.POST("", inventoryHandler.Create)
		invRoutes.PUT("/:id", inventoryHandler.Update)
		invRoutes.PATCH("/:id/quantity", inventoryHandler.AdjustQuantity)
		invRoutes.DELETE("/:id", inventoryHandler.Delete)
	}

	billsHandler := &handler.BillsHandler{
		DB:       db,
		Engine:   billing.NewEngine(db, config.AppConfig.Billing.GSTRate),
		Renderer: invoice.NewPDFRenderer(),
	}
	billRoutes := r.Group("/api/bills")
	billRoutes.Use(middleware.AuthMiddleware())
	{
		billRoutes.GET("", billsHandler.List)
		billRoutes.GET("/:id", billsHandler.Get)
		billRoutes.POST("", billsHandler.Create)
		billRoutes.GET("/download/:id", billsHandler.Download)
	}

	customersHandler := &handler.CustomersHandler{DB: db}
	customerRoutes := r.Group("/api/customers")
	customerRoutes.Use(middleware.AuthMiddleware())
	{
		customerRoutes.GET("", customersHandler.List)
		customerRoutes.GET("/phone/:phoneNumber", customersHandler.GetByPhone)
		customerRoutes.POST("", customersHandler.Create)
		customerRoutes.PUT("/:id", customersHandler.Update)
	}

	return r, db
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
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
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), "body: %s", w.Body.String())
	return out
}

// newTenant registers and verifies an enterprise, returning its token.
func newTenant(t *testing.T, r *gin.Engine, db *gorm.DB, phone string) string {
	t.Helper()

	w := doJSON(t, r, http.MethodPost, "/api/auth/register", gin.H{
		"enterprise_name": "Sharma General Stores",
		"owner_name":      "Ravi Sharma",
		"phone_number":    phone,
		"address":         "12 MG Road, Pune",
		"password":        "s3cret-pass",
	}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var ent models.Enterprise
	require.NoError(t, db.Order("id desc").First(&ent).Error)

	w = doJSON(t, r, http.MethodPost, "/api/auth/verify-otp", gin.H{
		"phone_number": phone,
		"otp":          ent.OTP,
	}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	body := decodeBody(t, w)
	token, ok := body["token"].(string)
	require.True(t, ok, "missing token in %v", body)
	return token
}

// createItem seeds a catalog item through the API and returns its id.
func createItem(t *testing.T, r *gin.Engine, token, name string, price float64, quantity int) uint {
	t.Helper()

	w := doJSON(t, r, http.MethodPost, "/api/inventory", gin.H{
		"item_name": name,
		"price":     price,
		"quantity":  quantity,
	}, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	body := decodeBody(t, w)
	data := body["data"].(map[string]interface{})
	return uint(data["id"].(float64))
}

func itemPath(id uint) string {
	return fmt.Sprintf("/api/inventory/%d", id)
}
