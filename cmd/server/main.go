package main

import (
	"time"

	"github.com/kartavya2004/retail-billing/config"
	"github.com/kartavya2004/retail-billing/internal/billing"
	"github.com/kartavya2004/retail-billing/internal/handler"
	"github.com/kartavya2004/retail-billing/internal/invoice"
	"github.com/kartavya2004/retail-billing/internal/middleware"
	"github.com/kartavya2004/retail-billing/internal/models"
	"github.com/kartavya2004/retail-billing/internal/otp"
	"github.com/kartavya2004/retail-billing/pkg/database"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	config.LoadConfig()
	database.Connect()

	logrus.Info("running migrations")
	err := database.DB.AutoMigrate(
		&models.Enterprise{},
		&models.Customer{},
		&models.InventoryItem{},
		&models.Bill{},
	)
	if err != nil {
		logrus.WithError(err).Fatal("migration failed")
	}
	logrus.Info("migrations completed")

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RequestID())

	authHandler := &handler.AuthHandler{DB: database.DB, Sender: otp.ConsoleSender{}}
	authRoutes := r.Group("/api/auth")
	{
		authRoutes.POST("/register", authHandler.Register)
		authRoutes.POST("/verify-otp", authHandler.VerifyOTP)
		authRoutes.POST("/resend-otp", authHandler.ResendOTP)
		authRoutes.POST("/login", authHandler.Login)
	}

	inventoryHandler := &handler.InventoryHandler{DB: database.DB}
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
		DB:       database.DB,
		Engine:   billing.NewEngine(database.DB, config.AppConfig.Billing.GSTRate),
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

	customersHandler := &handler.CustomersHandler{DB: database.DB}
	customerRoutes := r.Group("/api/customers")
	customerRoutes.Use(middleware.AuthMiddleware())
	{
		customerRoutes.GET("", customersHandler.List)
		customerRoutes.GET("/phone/:phoneNumber", customersHandler.GetByPhone)
		customerRoutes.POST("", customersHandler.Create)
		customerRoutes.PUT("/:id", customersHandler.Update)
	}

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	port := config.AppConfig.Server.Port
	logrus.WithField("port", port).Info("server starting")
	if err := r.Run(":" + port); err != nil {
		logrus.WithError(err).Fatal("failed to run server")
	}
}
