package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"reward-center/internal/api/handlers"
	apimiddleware "reward-center/internal/api/middleware"
	"reward-center/internal/config"
	"reward-center/internal/domain"
	"reward-center/internal/infrastructure/engine"
	"reward-center/internal/infrastructure/leader"
	"reward-center/internal/infrastructure/mysql"
	redisinfra "reward-center/internal/infrastructure/redis"
	wsinfra "reward-center/internal/infrastructure/websocket"
	"reward-center/internal/services"
	"reward-center/internal/solana"
	"reward-center/pkg/logger"
	"reward-center/pkg/utils"

	redisClient "github.com/go-redis/redis/v8"
	_ "github.com/go-sql-driver/mysql"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

func main() {
	log := logger.New()
	log.Info("Starting Reward Center Service")

	cfg, err := config.Load()
	if err != nil {
		log.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	// Initialize Redis
	rdb := redisClient.NewClient(&redisClient.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Error("Failed to connect to Redis", "error", err)
		os.Exit(1)
	}
	log.Info("Connected to Redis", "address", cfg.Redis.Address)

	// Initialize MySQL
	db := utils.InitializeMysql(cfg, log, ctx)
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close MySQL connection", "error", err)
		}
	}()
	log.Info("Connected to MySQL")

	// Initialize repositories
	centerRepo := mysql.NewMySQLRewardCenterRepository(db)
	collectionRepo := mysql.NewMySQLCollectionRepository(db)
	listingRepo := mysql.NewMySQLListingRepository(db)
	offerRepo := mysql.NewMySQLOfferRepository(db)
	membershipRepo := mysql.NewMySQLMembershipRepository(db)
	schedulerRepo := mysql.NewMySQLSchedulerRepository(db)

	// Initialize Redis based components
	statsCache := redisinfra.NewRedisStatsCache(rdb)
	eventPublisher := redisinfra.NewEventPublisher(rdb)
	eventSubscriber := redisinfra.NewRedisEventSubscriber(rdb, log)

	// Initialize leader election
	leaderElection := leader.NewRedisLeaderElection(rdb, cfg.Leader.TTL)

	// Initialize the auction engine gateway
	gateway := engine.NewGateway(cfg.Gateway.BaseURL, cfg.Gateway.Timeout, log)

	// Initialize scheduler and services
	scheduler := services.NewCronRewardScheduler(schedulerRepo, listingRepo, centerRepo, eventPublisher, log)

	centerService := services.NewRewardCenterService(centerRepo, collectionRepo, gateway, log)
	listingService := services.NewListingService(centerRepo, collectionRepo, listingRepo, gateway, statsCache, eventPublisher, scheduler, log)
	offerService := services.NewOfferService(centerRepo, collectionRepo, offerRepo, gateway, statsCache, eventPublisher, log)
	membershipService := services.NewMembershipService(membershipRepo, gateway, log)

	reconciler := services.NewReconciler(listingRepo, offerRepo, gateway, statsCache, eventPublisher,
		leaderElection, cfg.Instance.ID, cfg.Reconcile.Interval, log)

	// Initialize WebSocket fan-out
	connManager := wsinfra.NewConnectionManager(log)

	// Initialize auth
	auth := apimiddleware.NewJWTAuth(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	// Initialize Echo
	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(middleware.RequestID())
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: `{"time":"${time_rfc3339}","id":"${id}","remote_ip":"${remote_ip}","host":"${host}","method":"${method}","uri":"${uri}","user_agent":"${user_agent}","status":${status},"error":"${error}","latency":${latency},"latency_human":"${latency_human}","bytes_in":${bytes_in},"bytes_out":${bytes_out}}` + "\n",
	}))
	e.Use(middleware.Recover())

	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{
			echo.GET, echo.HEAD, echo.PUT, echo.PATCH,
			echo.POST, echo.DELETE, echo.OPTIONS,
		},
		AllowHeaders: []string{
			echo.HeaderOrigin,
			echo.HeaderContentType,
			echo.HeaderAccept,
			echo.HeaderAuthorization,
			echo.HeaderXRequestedWith,
			echo.HeaderAccessControlRequestMethod,
			echo.HeaderAccessControlRequestHeaders,
		},
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Initialize handlers
	centerHandler := handlers.NewRewardCenterHandler(centerService, log)
	listingHandler := handlers.NewListingHandler(listingService, log)
	offerHandler := handlers.NewOfferHandler(offerService, log)
	membershipHandler := handlers.NewMembershipHandler(membershipService, log)
	statsHandler := handlers.NewStatsHandler(statsCache, log)
	wsHandler := wsinfra.NewHandler(auth, connManager, log)

	// Token issuance. Wallet ownership is proven out of band.
	e.POST("/api/v1/auth/token", func(c echo.Context) error {
		var req struct {
			Wallet string `json:"wallet"`
		}
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		}
		if _, err := solana.PubkeyFromBase58(req.Wallet); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid wallet address"})
		}
		token, err := auth.IssueToken(req.Wallet)
		if err != nil {
			log.Error("Failed to issue token", "error", err)
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
		}
		return c.JSON(http.StatusOK, map[string]string{"token": token})
	})

	// API routes
	api := e.Group("/api/v1", auth.RequireWallet())
	api.POST("/reward-centers", centerHandler.CreateRewardCenter)
	api.GET("/reward-centers/:auctionHouse", centerHandler.GetRewardCenter)
	api.PUT("/reward-centers/:auctionHouse", centerHandler.EditRewardCenter)
	api.POST("/reward-centers/:auctionHouse/collections", centerHandler.CreateRewardableCollection)
	api.DELETE("/reward-centers/:auctionHouse/collections/:collection", centerHandler.DeleteRewardableCollection)

	api.POST("/listings", listingHandler.CreateListing)
	api.POST("/listings/cancel", listingHandler.CancelListing)

	api.POST("/offers", offerHandler.CreateOffer)
	api.POST("/offers/close", offerHandler.CloseOffer)

	api.POST("/stores", membershipHandler.CreateStore)
	api.POST("/selling-resources", membershipHandler.InitSellingResource)
	api.POST("/markets", membershipHandler.CreateMarket)

	api.GET("/collections/:collection/stats", statsHandler.GetCollectionStats)

	// WebSocket watch endpoint
	e.GET("/ws/collections/:collection", wsHandler.HandleConnection)

	// Health check endpoint
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"status":    "ok",
			"service":   "reward-center",
			"timestamp": time.Now().Format(time.RFC3339),
			"port":      cfg.Server.Port,
			"version":   "1.0.0",
		})
	})

	// Start background services
	go func() {
		if err := scheduler.Start(context.Background()); err != nil {
			log.Error("Failed to start scheduler", "error", err)
		}
	}()
	go func() {
		if err := reconciler.Start(context.Background()); err != nil {
			log.Error("Failed to start reconciler", "error", err)
		}
	}()

	// Bridge marketplace events to connected watchers
	subscriberCtx, stopSubscriber := context.WithCancel(context.Background())
	defer stopSubscriber()
	go func() {
		err := eventSubscriber.SubscribeToMarketplaceEvents(subscriberCtx, func(event *domain.MarketplaceEvent) error {
			return connManager.BroadcastToCollection(event.Collection.String(), event)
		})
		if err != nil && !errors.Is(err, context.Canceled) {
			log.Error("Event subscriber stopped", "error", err)
		}
	}()

	// Try to become leader
	go func() {
		for {
			became, err := leaderElection.BecomeLeader(context.Background(), cfg.Instance.ID)
			if err != nil {
				log.Error("Failed to attempt leadership", "error", err)
				time.Sleep(5 * time.Second)
				continue
			}
			if became {
				log.Info("Became reward center leader", "instance_id", cfg.Instance.ID)
			}
			time.Sleep(10 * time.Second)
		}
	}()

	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Info("Starting reward center server", "address", serverAddr)

	go func() {
		if err := e.Start(serverAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down reward center service...")

	ctx, cancel = context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	stopSubscriber()
	if err := scheduler.Stop(); err != nil {
		log.Error("Failed to stop scheduler", "error", err)
	}
	if err := reconciler.Stop(); err != nil {
		log.Error("Failed to stop reconciler", "error", err)
	}
	if err := leaderElection.ReleaseLeadership(ctx, cfg.Instance.ID); err != nil {
		log.Error("Failed to release leadership", "error", err)
	}

	if err := e.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", "error", err)
	}

	log.Info("Reward center service stopped")
}
