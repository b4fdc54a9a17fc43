package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/adityanarayanofficial/marketplace-platform/internal/api/handlers"
	"github.com/adityanarayanofficial/marketplace-platform/internal/api/middleware"
	"github.com/adityanarayanofficial/marketplace-platform/internal/config"
	"github.com/adityanarayanofficial/marketplace-platform/internal/health"
	"github.com/adityanarayanofficial/marketplace-platform/internal/metrics"
	models "github.com/adityanarayanofficial/marketplace-platform/internal/models"
	repository "github.com/adityanarayanofficial/marketplace-platform/internal/repositories"
	service "github.com/adityanarayanofficial/marketplace-platform/internal/services"
	"github.com/adityanarayanofficial/marketplace-platform/internal/tokens"
	"github.com/adityanarayanofficial/marketplace-platform/internal/utils/response"
	"github.com/adityanarayanofficial/marketplace-platform/internal/worker"
	"github.com/adityanarayanofficial/marketplace-platform/pkg/sendgrid"
)

func main() {

	// Logger setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load config
	cfg := config.MustLoad()
	response.SetDebug(cfg.Debug)

	// Database setup
	repos, err := repository.New(cfg)
	if err != nil {
		slog.Error("❌ Error accessing the database", "error", err.Error())
		os.Exit(1)
	}

	// Redis setup
	redisClient, err := repository.NewRedisClient(cfg)
	if err != nil {
		slog.Error("❌ Error accessing the redis instance", "error", err.Error())
		os.Exit(1)
	}

	defer func() {
		if err := repos.Close(); err != nil {
			slog.Error("⚠️ Error closing database connection", slog.String("error", err.Error()))
		} else {
			slog.Info("✅ Database connection closed")
		}
	}()

	jwtKey := []byte(cfg.Security.JWTKey)
	blacklist := repository.NewTokenBlacklist(redisClient)
	sendGridClient := sendgrid.NewEmailService(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName)
	activationTokens := tokens.NewActivationTokenGenerator([]byte(cfg.Security.ActivationSecret), cfg.Security.ActivationTTL)

	dispatcher := worker.NewDispatcher(sendGridClient, cfg.Worker.QueueSize)
	dispatcher.Start(context.Background(), cfg.Worker.Workers)

	userService := service.NewUserService(repos.User, blacklist, activationTokens, dispatcher,
		jwtKey, cfg.Security.AccessTokenTTL, cfg.Security.RefreshTokenTTL, cfg.BaseURL)
	userHandler := handlers.NewUserHandler(userService)
	categoryService := service.NewCategoryService(repos.Category)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	productService := service.NewProductService(repos.Product, repos.Category)
	productHandler := handlers.NewProductHandler(productService)
	orderService := service.NewOrderService(repos.Order)
	orderHandler := handlers.NewOrderHandler(orderService)
	authMiddleware := middleware.NewAuthMiddleware(jwtKey)

	adminOnly := middleware.RequireRole(models.RoleAdmin)
	adminOrStaff := middleware.RequireRole(models.RoleAdmin, models.RoleStaff)

	healthHandler, err := health.NewHealthHandler(cfg, &health.Endpoints{DB: repos.DB, RedisClient: redisClient})
	if err != nil {
		slog.Error("❌ Error creating the health checks", "error", err.Error())
		os.Exit(1)
	}

	slog.Info("storage initialized", slog.String("env", cfg.Env), slog.String("version", "1.0.0"))

	// Setup router
	routerMux := http.NewServeMux()
	routerMux.HandleFunc("POST /register", userHandler.Register())
	routerMux.HandleFunc("POST /login", userHandler.Login())
	routerMux.HandleFunc("GET /logout", userHandler.Logout())
	routerMux.HandleFunc("GET /activate/{uid}/{token}", userHandler.Activate())

	routerMux.HandleFunc("GET /categories", authMiddleware.Authenticate(categoryHandler.ListCategories()))
	routerMux.HandleFunc("POST /categories", authMiddleware.Authenticate(adminOnly(categoryHandler.CreateCategory())))
	routerMux.HandleFunc("GET /categories/{id}", authMiddleware.Authenticate(adminOnly(categoryHandler.GetCategory())))
	routerMux.HandleFunc("PATCH /categories/{id}", authMiddleware.Authenticate(adminOnly(categoryHandler.UpdateCategory())))
	routerMux.HandleFunc("DELETE /categories/{id}", authMiddleware.Authenticate(adminOnly(categoryHandler.DeleteCategory())))

	routerMux.HandleFunc("GET /products", authMiddleware.Authenticate(productHandler.ListProducts()))
	routerMux.HandleFunc("POST /products", authMiddleware.Authenticate(productHandler.CreateProduct()))
	routerMux.HandleFunc("GET /products/{id}", authMiddleware.Authenticate(productHandler.GetProduct()))
	routerMux.HandleFunc("PATCH /products/{id}", authMiddleware.Authenticate(productHandler.UpdateProduct()))
	routerMux.HandleFunc("DELETE /products/{id}", authMiddleware.Authenticate(productHandler.DeleteProduct()))
	routerMux.HandleFunc("POST /products/{id}/status", authMiddleware.Authenticate(adminOrStaff(productHandler.ApproveProduct())))
	routerMux.HandleFunc("GET /my-products", authMiddleware.Authenticate(productHandler.ListMyProducts()))

	routerMux.HandleFunc("POST /orders/create", authMiddleware.Authenticate(orderHandler.CreateOrder()))
	routerMux.HandleFunc("GET /orders", authMiddleware.Authenticate(orderHandler.ListOrders()))
	routerMux.HandleFunc("GET /orders/{id}", authMiddleware.Authenticate(orderHandler.GetOrder()))

	routerMux.Handle("GET /health", healthHandler.Handler())
	routerMux.Handle("GET /metrics", metrics.Handler())

	// Middleware chaining; metrics sits directly on the mux so it can read
	// the matched path values
	var handler http.Handler = routerMux
	handler = metrics.Middleware(handler)
	handler = middleware.Logging(handler)

	// Setup http server
	server := http.Server{
		Addr:    cfg.Addr,
		Handler: handler,
	}

	slog.Info("🚀 Server is starting...", slog.String("address", cfg.Addr))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() { // Starts the HTTP server in a new goroutine so it doesn't block the main thread.

		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			slog.Error("❌ Failed to start server", slog.Any("error", err.Error()))
		}
	}()

	<-done // blocking, until no signal is added to "done" channel, after the some signal is received the code after this point would be executed

	slog.Warn("🛑 Shutdown signal received. Preparing to stop the server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("⚠️ Server shutdown encountered an issue", slog.String("error", err.Error()))
	} else {
		slog.Info("✅ Server shut down gracefully. All connections closed.")
	}

	if err := dispatcher.Stop(shutdownCtx); err != nil {
		slog.Error("⚠️ Email dispatcher did not drain in time", slog.String("error", err.Error()))
	}

}
