package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"

	"github.com/tasnim-mariam/mooncart-api/internal/config"
	"github.com/tasnim-mariam/mooncart-api/internal/handler"
	"github.com/tasnim-mariam/mooncart-api/internal/middleware"
	"github.com/tasnim-mariam/mooncart-api/internal/migrate"
	"github.com/tasnim-mariam/mooncart-api/internal/repository"
	"github.com/tasnim-mariam/mooncart-api/internal/service"
	"github.com/tasnim-mariam/mooncart-api/internal/worker"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// Missing .env is fine in production; env vars win either way.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Error("load config", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// PostgreSQL
	poolCfg, err := pgxpool.ParseConfig(cfg.DB.DSN())
	if err != nil {
		log.Error("parse db config", "error", err)
		os.Exit(1)
	}
	poolCfg.MaxConns = cfg.DB.MaxConns

	dbPool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		log.Error("connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	if err := dbPool.Ping(ctx); err != nil {
		log.Error("ping database", "error", err)
		os.Exit(1)
	}
	log.Info("connected to PostgreSQL")

	if err := migrate.Apply(ctx, dbPool, log); err != nil {
		log.Error("apply migrations", "error", err)
		os.Exit(1)
	}

	// Redis
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Error("connect to Redis", "error", err)
		os.Exit(1)
	}
	log.Info("connected to Redis")

	// RabbitMQ
	amqpConn, err := amqp.Dial(cfg.RabbitMQ.URL)
	if err != nil {
		log.Error("connect to RabbitMQ", "error", err)
		os.Exit(1)
	}
	defer amqpConn.Close()

	amqpCh, err := amqpConn.Channel()
	if err != nil {
		log.Error("open RabbitMQ channel", "error", err)
		os.Exit(1)
	}
	defer amqpCh.Close()

	if err := worker.SetupRabbitMQ(amqpCh); err != nil {
		log.Error("setup RabbitMQ", "error", err)
		os.Exit(1)
	}
	log.Info("connected to RabbitMQ")

	// Repositories
	userRepo := repository.NewUserRepository(dbPool)
	productRepo := repository.NewProductRepository(dbPool)
	categoryRepo := repository.NewCategoryRepository(dbPool)
	cartRepo := repository.NewCartRepository(dbPool)
	orderRepo := repository.NewOrderRepository(dbPool, productRepo)
	addressRepo := repository.NewAddressRepository(dbPool)
	deliveryManRepo := repository.NewDeliveryManRepository(dbPool)
	contactRepo := repository.NewContactRepository(dbPool)
	requestRepo := repository.NewProductRequestRepository(dbPool)

	// Services
	authSvc := service.NewAuthService(userRepo, addressRepo, cfg.JWT.Secret, cfg.JWT.Expiration)
	productSvc := service.NewProductService(productRepo, redisClient)
	categorySvc := service.NewCategoryService(categoryRepo)
	cartSvc := service.NewCartService(cartRepo, productRepo)
	orderSvc := service.NewOrderService(orderRepo, cartRepo, amqpCh, redisClient, log)
	addressSvc := service.NewAddressService(addressRepo)
	deliveryManSvc := service.NewDeliveryManService(deliveryManRepo)
	contactSvc := service.NewContactService(contactRepo)
	requestSvc := service.NewProductRequestService(requestRepo)

	// Handlers
	authH := handler.NewAuthHandler(authSvc)
	productH := handler.NewProductHandler(productSvc)
	categoryH := handler.NewCategoryHandler(categorySvc)
	cartH := handler.NewCartHandler(cartSvc)
	orderH := handler.NewOrderHandler(orderSvc)
	addressH := handler.NewAddressHandler(addressSvc)
	deliveryManH := handler.NewDeliveryManHandler(deliveryManSvc)
	contactH := handler.NewContactHandler(contactSvc)
	requestH := handler.NewProductRequestHandler(requestSvc)
	healthH := handler.NewHealthHandler(dbPool, redisClient, amqpConn)

	// Worker
	orderWorker := worker.NewOrderWorker(amqpCh, orderRepo, redisClient, log)

	// Router
	gin.SetMode(cfg.Server.GinMode)
	router := gin.Default()
	corsCfg := cors.DefaultConfig()
	corsCfg.AllowAllOrigins = true
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	router.Use(cors.New(corsCfg))

	router.GET("/healthz", healthH.Healthz)
	router.GET("/readyz", healthH.Readyz)

	authRequired := middleware.AuthMiddleware(cfg.JWT.Secret)
	adminOnly := middleware.AdminOnly()

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		auth.POST("/register", authH.Register)
		auth.POST("/login", authH.Login)
		auth.GET("/profile", authRequired, authH.Profile)
		auth.PUT("/profile", authRequired, authH.UpdateProfile)

		v1.GET("/users", authRequired, adminOnly, authH.ListUsers)

		products := v1.Group("/products")
		products.GET("", productH.List)
		products.GET("/search", productH.Search)
		products.GET("/category/:slug", productH.ListByCategory)
		products.GET("/:id", productH.GetByID)
		products.POST("", authRequired, adminOnly, productH.Create)
		products.PUT("/:id", authRequired, adminOnly, productH.Update)
		products.DELETE("/:id", authRequired, adminOnly, productH.Delete)

		categories := v1.Group("/categories")
		categories.GET("", categoryH.List)
		categories.GET("/stock", authRequired, adminOnly, categoryH.ListWithStock)
		categories.GET("/:id", categoryH.GetByID)
		categories.POST("", authRequired, adminOnly, categoryH.Create)
		categories.PUT("/:id", authRequired, adminOnly, categoryH.Update)
		categories.DELETE("/:id", authRequired, adminOnly, categoryH.Delete)

		cart := v1.Group("/cart", authRequired)
		cart.GET("", cartH.Get)
		cart.POST("/items", cartH.AddItem)
		cart.PUT("/items", cartH.UpdateItem)
		cart.DELETE("/items/:productId", cartH.RemoveItem)
		cart.DELETE("", cartH.Clear)

		orders := v1.Group("/orders", authRequired)
		orders.POST("", orderH.Create)
		orders.GET("/my", orderH.ListMine)
		orders.GET("", adminOnly, orderH.ListAll)
		orders.GET("/stats", adminOnly, orderH.Stats)
		orders.GET("/:ref", orderH.GetByRef)
		orders.PUT("/:ref/status", adminOnly, orderH.UpdateStatus)

		addresses := v1.Group("/addresses", authRequired)
		addresses.GET("", addressH.List)
		addresses.POST("", addressH.Create)
		addresses.PUT("/:id", addressH.Update)
		addresses.PUT("/:id/default", addressH.SetDefault)
		addresses.DELETE("/:id", addressH.Delete)

		deliveryMen := v1.Group("/delivery-men", authRequired, adminOnly)
		deliveryMen.GET("", deliveryManH.List)
		deliveryMen.GET("/:id", deliveryManH.GetByID)
		deliveryMen.POST("", deliveryManH.Create)
		deliveryMen.PUT("/:id", deliveryManH.Update)
		deliveryMen.DELETE("/:id", deliveryManH.Delete)

		contact := v1.Group("/contact")
		contact.POST("", contactH.Submit)
		contact.GET("", authRequired, adminOnly, contactH.List)
		contact.GET("/:id", authRequired, adminOnly, contactH.GetByID)
		contact.PUT("/:id/read", authRequired, adminOnly, contactH.MarkRead)
		contact.DELETE("/:id", authRequired, adminOnly, contactH.Delete)

		requests := v1.Group("/product-requests")
		requests.POST("", requestH.Submit)
		requests.GET("", authRequired, adminOnly, requestH.List)
		requests.GET("/:id", authRequired, adminOnly, requestH.GetByID)
		requests.PUT("/:id/status", authRequired, adminOnly, requestH.UpdateStatus)
		requests.DELETE("/:id", authRequired, adminOnly, requestH.Delete)
	}

	if err := orderWorker.Start(ctx); err != nil {
		log.Error("start order worker", "error", err)
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info("starting HTTP server", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown", "error", err)
	}

	orderWorker.Stop()
	time.Sleep(500 * time.Millisecond)
	cancel()
	log.Info("server stopped")
}
