package main

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/shoplink/shoplink-api/config"
	"github.com/shoplink/shoplink-api/controllers"
	"github.com/shoplink/shoplink-api/middleware"
	"github.com/shoplink/shoplink-api/models"
	"github.com/shoplink/shoplink-api/services"
	"gorm.io/gorm"
)

func main() {
	// Basic logging
	log.Println("Starting ShopLink API server...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto-migrate database models
	db := config.GetDB()
	if err := db.AutoMigrate(
		&models.Owner{},
		&models.NotificationSetting{},
		&models.Customer{},
		&models.Category{},
		&models.Shop{},
		&models.ShopPhoto{},
		&models.ShopView{},
		&models.Conversation{},
		&models.Message{},
		&models.Rating{},
	); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed successfully")

	if err := seedCategories(db); err != nil {
		log.Fatalf("Failed to seed categories: %v", err)
	}

	// Initialize file storage for chat attachments
	if _, err := services.InitFileStorage(cfg); err != nil {
		log.Fatalf("Failed to initialize file storage: %v", err)
	}

	router := setupRouter()

	// Start server
	addr := ":" + cfg.Port
	log.Printf("Server is running on http://localhost%s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// setupRouter creates the Gin engine and registers all routes
func setupRouter() *gin.Engine {
	router := gin.Default()
	router.Use(cors.Default())
	router.Use(middleware.RequestID())

	// Health check endpoint
	router.GET("/health", healthCheck)

	// Authentication
	auth := router.Group("/auth")
	{
		auth.POST("/register-owner", controllers.RegisterOwner)
		auth.POST("/register-user", controllers.RegisterCustomer)
		auth.POST("/login", controllers.Login)
	}

	// Categories
	router.GET("/categories", controllers.ListCategories)

	// Shops
	shops := router.Group("/shops")
	{
		shops.GET("/nearby", controllers.NearbyShops)
		shops.POST("/profile", controllers.CreateShopProfile)
		shops.PUT("/profile", controllers.UpdateShopProfile)
		shops.GET("/profile", controllers.GetShopProfile)
		shops.GET("/:id", controllers.GetShop)
	}

	// Conversations and messages
	chats := router.Group("/chats")
	{
		chats.GET("", controllers.ListConversations)
		chats.POST("", controllers.CreateConversation)
		chats.GET("/messages", controllers.ListMessages)
		chats.POST("/messages", controllers.SendMessage)
		chats.PUT("/messages", controllers.MarkMessagesRead)
	}

	// Ratings
	router.POST("/ratings", controllers.SubmitRating)
	router.GET("/ratings", controllers.ListRatings)

	// Dashboards
	router.GET("/dashboard", controllers.OwnerDashboard)
	user := router.Group("/user")
	{
		user.GET("/dashboard", controllers.CustomerDashboard)
		user.PUT("/dashboard", controllers.UpdateDashboardPreferences)
		user.DELETE("/dashboard", controllers.ClearCustomerData)
		user.GET("/update-profile", controllers.GetCustomerProfile)
		user.PUT("/update-profile", controllers.UpdateCustomerProfile)
	}

	// Chat attachments stored on local disk
	router.GET("/uploads/chat-files/:filename", controllers.ServeChatFile)

	return router
}

// healthCheck handles the health check endpoint including a database ping
func healthCheck(c *gin.Context) {
	dbStatus := "connected"
	healthy := true

	db := config.GetDB()
	if db == nil {
		dbStatus = "not connected"
		healthy = false
	} else if sqlDB, err := db.DB(); err != nil || sqlDB.Ping() != nil {
		dbStatus = "unreachable"
		healthy = false
	}

	code := http.StatusOK
	status := "healthy"
	if !healthy {
		code = http.StatusServiceUnavailable
		status = "unhealthy"
	}

	c.JSON(code, gin.H{
		"success":   healthy,
		"status":    status,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"database":  dbStatus,
	})
}

// seedCategories inserts the default category list on first boot. An
// existing (possibly customized) list is left untouched.
func seedCategories(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Category{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	defaults := []string{
		"Grocery", "Bakery", "Pharmacy", "Electronics", "Clothing",
		"Restaurant", "Salon", "Hardware", "Stationery", "Mobile & Accessories",
	}
	categories := make([]models.Category, 0, len(defaults))
	for i, name := range defaults {
		categories = append(categories, models.Category{
			CategoryName: name,
			DisplayOrder: i + 1,
			IsActive:     true,
		})
	}
	if err := db.Create(&categories).Error; err != nil {
		return err
	}
	log.Printf("Seeded %d default categories", len(categories))
	return nil
}
