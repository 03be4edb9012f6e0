package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"go-eternos-store/internal/handler"
	"go-eternos-store/internal/middleware"
	"go-eternos-store/internal/model"
	"go-eternos-store/internal/repository"
	"go-eternos-store/internal/service"
	"go-eternos-store/internal/ws"
	"go-eternos-store/pkg/database"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// 2. Setup Database
	db := database.ConnectDB()
	if err := db.AutoMigrate(&model.User{}, &model.Product{}, &model.CartItem{}, &model.Sale{}, &model.Order{}); err != nil {
		log.Fatal("Failed to migrate schema: ", err)
	}

	// 3. Seed default admin user
	seedAdmin(db)

	// 4. Setup WebSocket Hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 5. Dependency Injection (Wiring Layers)
	userRepo := repository.NewUserRepo(db)
	productRepo := repository.NewProductRepo(db)
	cartRepo := repository.NewCartRepo(db)
	saleRepo := repository.NewSaleRepo(db)
	orderRepo := repository.NewOrderRepo(db)

	exportPath := os.Getenv("EXPORT_PATH")
	if exportPath == "" {
		exportPath = "eternos_data.xlsx"
	}
	exporter := service.NewExportService(userRepo, productRepo, saleRepo, orderRepo, exportPath)
	exporter.Start()

	authService := service.NewAuthService(userRepo, exporter)
	catalogService := service.NewCatalogService(productRepo, exporter, wsHub)
	cartService := service.NewCartService(cartRepo, productRepo)
	saleService := service.NewSaleService(saleRepo, productRepo, db, exporter, wsHub)
	orderService := service.NewOrderService(orderRepo, cartRepo, productRepo, db, exporter, wsHub)
	receiptService := service.NewReceiptService(saleRepo)
	dashService := service.NewDashboardService(db, saleRepo, orderRepo)

	authHandler := handler.NewAuthHandler(authService)
	productHandler := handler.NewProductHandler(catalogService)
	cartHandler := handler.NewCartHandler(cartService)
	orderHandler := handler.NewOrderHandler(orderService)
	saleHandler := handler.NewSaleHandler(saleService, receiptService)
	dashHandler := handler.NewDashboardHandler(dashService)
	exportHandler := handler.NewExportHandler(exporter)

	// 6. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "Eternos Store v1.0",
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
	auth.Post("/reset-password", authHandler.ResetPassword)
	auth.Post("/logout", middleware.RequireAuth(userRepo), authHandler.Logout)

	// Public storefront listing
	api.Get("/shop", productHandler.ListShop)

	// ============ PROTECTED ROUTES ============
	protected := api.Group("", middleware.RequireAuth(userRepo))

	// Cart and checkout (any authenticated user)
	protected.Get("/cart", cartHandler.GetCart)
	protected.Post("/cart/add", cartHandler.AddToCart)
	protected.Delete("/cart/remove/:id", cartHandler.RemoveFromCart)
	protected.Post("/checkout", orderHandler.Checkout)
	protected.Get("/orders", orderHandler.ListMine)

	// ============ ADMIN ROUTES ============
	admin := protected.Group("/admin", middleware.RequireAdmin())

	admin.Get("/dashboard/stats", dashHandler.GetStats)

	admin.Get("/products", productHandler.ListInventory)
	admin.Post("/products", productHandler.Create)
	admin.Put("/products/:id", productHandler.Update)
	admin.Delete("/products/:id", productHandler.Delete)

	admin.Post("/sales", saleHandler.Create)
	admin.Get("/sales", saleHandler.List)
	admin.Get("/sales/:id", saleHandler.Get)
	admin.Get("/receipt/:sale_id", saleHandler.Receipt)

	admin.Get("/export", exportHandler.Download)

	// WebSocket Route (live stock/order events for admin screens)
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		wsHub.Register <- c
		defer func() { wsHub.Unregister <- c }()

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 8. Graceful Shutdown
	go func() {
		port := os.Getenv("PORT")
		if port == "" {
			port = "3000"
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

// seedAdmin creates the default admin account on first startup. Idempotent:
// skipped as soon as any admin row exists.
func seedAdmin(db *gorm.DB) {
	userRepo := repository.NewUserRepo(db)

	count, err := userRepo.CountByRole(model.RoleAdmin)
	if err != nil {
		log.Printf("Warning: failed to check for admin user: %v", err)
		return
	}
	if count > 0 {
		return
	}

	admin := &model.User{
		Username: "admin",
		Email:    "admin@eternos.com",
		Role:     model.RoleAdmin,
	}
	if err := admin.SetPassword("admin123"); err != nil {
		log.Printf("Warning: failed to hash admin password: %v", err)
		return
	}

	if err := userRepo.Create(admin); err != nil {
		log.Printf("Warning: failed to create admin user: %v", err)
	} else {
		log.Println("Admin user created: admin / admin123")
	}
}
