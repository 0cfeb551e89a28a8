package main

import (
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/SodaPop-byte/Casa-Orencia-App/internal/handler"
	"github.com/SodaPop-byte/Casa-Orencia-App/internal/imagehost"
	"github.com/SodaPop-byte/Casa-Orencia-App/internal/middleware"
	"github.com/SodaPop-byte/Casa-Orencia-App/internal/model"
	"github.com/SodaPop-byte/Casa-Orencia-App/internal/repository"
	"github.com/SodaPop-byte/Casa-Orencia-App/internal/service"
	"github.com/SodaPop-byte/Casa-Orencia-App/internal/ws"
	"github.com/SodaPop-byte/Casa-Orencia-App/pkg/database"
	"github.com/SodaPop-byte/Casa-Orencia-App/pkg/jwt"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
)

// chatFrame is the inbound websocket payload for chat sends. Sender
// identity is NOT part of it: the relay stamps it from the session.
type chatFrame struct {
	RecipientEmail string `json:"recipientEmail"`
	Text           string `json:"text"`
}

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// 2. Setup Database
	db := database.ConnectDB()
	db.AutoMigrate(&model.User{}, &model.Product{}, &model.Order{})

	// 3. Seed default admin user
	seedAdmin(repository.NewUserRepo(db))

	// 4. Setup WebSocket Hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 5. Dependency Injection (Wiring Layers)
	productRepo := repository.NewProductRepo(db)
	orderRepo := repository.NewOrderRepo(db)
	userRepo := repository.NewUserRepo(db)
	images := imagehost.FromEnv()

	restockOnCancel := os.Getenv("RESTOCK_ON_CANCEL") == "true"

	catalogService := service.NewCatalogService(productRepo, db, wsHub, images)
	orderService := service.NewOrderService(orderRepo, productRepo, db, wsHub, restockOnCancel)
	dashService := service.NewDashboardService(orderRepo)
	authService := service.NewAuthService(userRepo)

	productHandler := handler.NewProductHandler(catalogService)
	orderHandler := handler.NewOrderHandler(orderService)
	dashHandler := handler.NewDashboardHandler(dashService)
	authHandler := handler.NewAuthHandler(authService)

	// 6. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "Casa Orencia API v1.0",
	})

	// Middleware
	app.Use(logger.New())  // Logging request
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS

	// 7. Routes
	api := app.Group("/api/v1")

	// ============ PUBLIC ROUTES ============
	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)

	// Catalog browsing is public
	api.Get("/products", productHandler.GetProducts)

	// ============ PROTECTED ROUTES ============
	protected := api.Group("", middleware.RequireAuth())

	// Catalog management (admin)
	protected.Post("/products", middleware.RequireAdmin(), productHandler.CreateProduct)
	protected.Put("/products/:id", middleware.RequireAdmin(), productHandler.UpdateProduct)
	protected.Delete("/products/:id", middleware.RequireAdmin(), productHandler.DeleteProduct)

	// Orders
	protected.Post("/orders", orderHandler.PlaceOrder)
	protected.Get("/orders/myorders", orderHandler.GetMyOrders)
	protected.Get("/orders", middleware.RequireAdmin(), orderHandler.GetAllOrders)
	protected.Put("/orders/:id/status", middleware.RequireAdmin(), orderHandler.UpdateStatus)

	// Dashboard (admin)
	protected.Get("/dashboard/stats", middleware.RequireAdmin(), dashHandler.GetStats)

	// WebSocket Route. Browser websockets cannot send headers, so the
	// token rides the query string.
	app.Use("/ws", func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return c.SendStatus(fiber.StatusUpgradeRequired)
		}
		claims, err := jwt.ValidateToken(c.Query("token"))
		if err != nil {
			return c.SendStatus(fiber.StatusUnauthorized)
		}
		c.Locals("ws_email", claims.Email)
		c.Locals("ws_role", claims.Role)
		return c.Next()
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		client := &ws.Client{
			Conn:  c,
			Email: c.Locals("ws_email").(string),
			Role:  c.Locals("ws_role").(string),
		}
		wsHub.Register <- client
		defer func() { wsHub.Unregister <- client }()

		for {
			_, raw, err := c.ReadMessage()
			if err != nil {
				break
			}
			var frame chatFrame
			if err := json.Unmarshal(raw, &frame); err != nil || frame.Text == "" {
				continue
			}
			if frame.RecipientEmail == "" {
				frame.RecipientEmail = adminChatEmail()
			}
			wsHub.RelayChat(client, frame.RecipientEmail, frame.Text)
		}
	}))

	// 8. Graceful Shutdown
	go func() {
		port := os.Getenv("PORT")
		if port == "" {
			port = "4000"
		}
		if err := app.Listen(":" + port); err != nil {
			log.Panic(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}

// adminChatEmail is the fixed counterpart address for reseller chat.
func adminChatEmail() string {
	if v := os.Getenv("ADMIN_CHAT_EMAIL"); v != "" {
		return v
	}
	return "admin@test.com"
}

// seedAdmin creates the default admin user if it doesn't exist
func seedAdmin(userRepo repository.UserRepository) {
	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		email = adminChatEmail()
	}

	if _, err := userRepo.FindByEmail(email); err == nil {
		return
	}

	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "admin123"
	}

	admin := &model.User{
		Name:  "Casa Orencia",
		Email: email,
		Role:  model.RoleAdmin,
	}
	if err := admin.SetPassword(password); err != nil {
		log.Printf("Warning: Failed to hash admin password: %v", err)
		return
	}
	if err := userRepo.Create(admin); err != nil {
		log.Printf("Warning: Failed to create admin user: %v", err)
		return
	}
	log.Printf("Admin user created: %s", email)
}
