package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"deposito626-api/internal/cache"
	"deposito626-api/internal/cart"
	"deposito626-api/internal/checkout"
	"deposito626-api/internal/config"
	"deposito626-api/internal/gate"
	"deposito626-api/internal/handler"
	"deposito626-api/internal/middleware"
	"deposito626-api/internal/repository"
	"deposito626-api/internal/router"
	"deposito626-api/internal/service"

	_ "github.com/go-sql-driver/mysql"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("Starting Deposito 626 API...")

	// Load configuration
	cfg := config.MustLoad()
	log.Printf("Environment: %s", cfg.App.Environment)

	// Store database (SQLite): catalog, orders, store status, audit log
	storeDB, err := repository.OpenSQLite(cfg.StoreDB.Path)
	if err != nil {
		log.Fatalf("Failed to open store database: %v", err)
	}
	defer storeDB.Close()
	log.Println("SQLite store database initialized")

	productRepo := repository.NewSQLiteProductRepository(storeDB)
	orderRepo := repository.NewSQLiteOrderRepository(storeDB)
	statusRepo := repository.NewSQLiteStoreStatusRepository(storeDB)
	auditRepo := repository.NewSQLiteAuditRepository(storeDB)

	// Verified-members database (MySQL, optional): without it the access
	// gate stays locked and member management is disabled.
	var memberRepo *repository.MySQLMemberRepository
	membersDB, err := sql.Open("mysql", cfg.MembersDB.DSN())
	if err != nil {
		log.Printf("Warning: MySQL connection failed: %v", err)
	} else {
		membersDB.SetMaxOpenConns(10)
		membersDB.SetMaxIdleConns(5)
		membersDB.SetConnMaxLifetime(5 * time.Minute)

		if err := membersDB.Ping(); err != nil {
			log.Printf("Warning: MySQL ping failed: %v", err)
			membersDB.Close()
			membersDB = nil
		} else {
			memberRepo = repository.NewMySQLMemberRepository(membersDB)
			log.Println("MySQL members repository initialized")
		}
	}
	if membersDB != nil {
		defer membersDB.Close()
	}

	// Cache: Redis in production, in-process memory otherwise
	var appCache cache.Cache
	if cfg.Cache.Type == "redis" {
		redisCache, err := cache.NewRedisCache(cache.RedisConfig{
			Addr:     cfg.Cache.RedisAddress(),
			Password: cfg.Cache.RedisPassword,
			DB:       cfg.Cache.RedisDB,
		})
		if err != nil {
			log.Printf("Warning: Redis connection failed, falling back to memory cache: %v", err)
			appCache = cache.NewMemoryCache()
		} else {
			appCache = redisCache
			log.Println("Redis cache initialized")
		}
	} else {
		appCache = cache.NewMemoryCache()
		log.Println("Memory cache initialized")
	}

	// Cart store with file-backed persistence
	persister, err := cart.NewFileStore(cfg.Storefront.CartStateDir)
	if err != nil {
		log.Fatalf("Failed to initialize cart persistence: %v", err)
	}
	cartStore := cart.NewStore(persister)

	// Access gate
	var allowlist gate.Allowlist
	if memberRepo != nil {
		allowlist = memberRepo
	}
	accessGate := gate.New(cartStore, allowlist)

	// Checkout flow
	flow := checkout.NewFlow(checkout.Config{
		Store:     cartStore,
		Clipboard: checkout.SystemClipboard{},
		Opener:    checkout.BrowserOpener{},
		Submitter: orderRepo,
		Countdown: cfg.Storefront.CheckoutCooldown,
	})

	// Services
	catalogService := service.NewCatalogService(productRepo, statusRepo, auditRepo, appCache)
	orderService := service.NewOrderService(orderRepo, auditRepo)
	sessionService := service.NewSessionService(appCache, cfg.App.LoginKey)
	if sessionService == nil {
		log.Println("Warning: LOGIN_KEY not set, admin dashboard disabled")
	}
	uploadService, err := service.NewUploadService(cfg.Uploads.Dir, cfg.Uploads.BaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize uploads: %v", err)
	}

	// Stale pending orders are cancelled on a schedule
	cleanup := service.NewCleanupScheduler(orderRepo, service.CleanupConfig{
		StaleThreshold: cfg.Storefront.StaleOrderAge,
		Interval:       cfg.Storefront.CleanupInterval,
	})
	cleanup.Start()

	// Handlers
	healthHandler := handler.New(cfg.App.Version)
	catalogHandler := handler.NewCatalogHandler(catalogService)
	cartHandler := handler.NewCartHandler(cartStore)
	gateHandler := handler.NewGateHandler(accessGate, cartStore)
	checkoutHandler := handler.NewCheckoutHandler(flow)

	var members handler.MemberAdder
	if memberRepo != nil {
		members = memberRepo
	}
	adminHandler := handler.NewAdminHandler(sessionService, catalogService, orderService, uploadService, auditRepo, members)

	adminAuth := middleware.NewAdminAuth(middleware.AuthConfig{
		Sessions: sessionService,
	})

	// Create router
	r := router.New(router.Config{
		Handler:         healthHandler,
		CatalogHandler:  catalogHandler,
		CartHandler:     cartHandler,
		GateHandler:     gateHandler,
		CheckoutHandler: checkoutHandler,
		AdminHandler:    adminHandler,
		AdminAuth:       adminAuth,
		UploadsDir:      cfg.Uploads.Dir,
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Server listening on %s", cfg.Server.Address())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	cleanup.Stop()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	// Let in-flight order submissions land before closing
	flow.WaitForSubmissions()

	if err := appCache.Close(); err != nil {
		log.Printf("Cache close error: %v", err)
	}

	log.Println("Server stopped")
	fmt.Println("Goodbye!")
}
