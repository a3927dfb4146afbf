package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/gasanadj/demo-rise360-backend/internal/auth"
	"github.com/gasanadj/demo-rise360-backend/internal/cache"
	"github.com/gasanadj/demo-rise360-backend/internal/config"
	"github.com/gasanadj/demo-rise360-backend/internal/domain"
	"github.com/gasanadj/demo-rise360-backend/internal/handler"
	"github.com/gasanadj/demo-rise360-backend/internal/hub"
	"github.com/gasanadj/demo-rise360-backend/internal/middleware"
	"github.com/gasanadj/demo-rise360-backend/internal/payment"
	"github.com/gasanadj/demo-rise360-backend/internal/repository"
	"github.com/gasanadj/demo-rise360-backend/internal/service"
	"github.com/gasanadj/demo-rise360-backend/pkg/database"
	"github.com/gasanadj/demo-rise360-backend/pkg/log"
	"github.com/gasanadj/demo-rise360-backend/pkg/mail"
	"github.com/gasanadj/demo-rise360-backend/pkg/storage"
)

// historyCacheLimit caps how many chat lines the Redis backlog retains.
const historyCacheLimit = 500

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load configuration: %v", err))
	}

	log.Init(log.Config{
		Level:       cfg.Log.Level,
		ServiceName: "rise360-backend",
	})
	l := log.L()
	l.Info().Int("port", cfg.Server.Port).Msg("starting rise360 backend")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Database
	db, err := database.New(&database.Config{
		Driver:          cfg.Database.Driver,
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		DBName:          cfg.Database.DBName,
		SSLMode:         cfg.Database.SSLMode,
		FilePath:        cfg.Database.FilePath,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	})
	if err != nil {
		l.Fatal().Err(err).Msg("failed to connect to database")
	}
	if err := database.AutoMigrate(db,
		&domain.UserModel{},
		&domain.ProductModel{},
		&domain.ChatMessageModel{},
		&domain.OrderModel{},
	); err != nil {
		l.Fatal().Err(err).Msg("failed to migrate database")
	}

	// Redis
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		cancel()
		l.Fatal().Err(err).Str("address", cfg.Redis.Address).Msg("failed to connect to redis")
	}
	cancel()
	defer rdb.Close()

	// Object storage for product images
	var store storage.Storage
	switch cfg.Storage.Backend {
	case "s3":
		store, err = storage.NewS3Storage(ctx, cfg.Storage.S3)
	default:
		store, err = storage.NewLocalStorage(cfg.Storage.Local)
	}
	if err != nil {
		l.Fatal().Err(err).Str("backend", cfg.Storage.Backend).Msg("failed to initialise storage")
	}

	var mailer mail.Mailer = mail.NoopMailer{}
	if cfg.SMTP.Host != "" {
		mailer, err = mail.NewSMTPMailer(cfg.SMTP)
		if err != nil {
			l.Fatal().Err(err).Msg("failed to initialise mailer")
		}
	} else {
		l.Warn().Msg("no smtp host configured, order confirmation mail disabled")
	}

	// Auth
	tokens := auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.Issuer, time.Duration(cfg.JWT.TTLMinutes)*time.Minute)

	// Repositories and cache
	userRepo := repository.NewGormUserRepository(db)
	productRepo := repository.NewGormProductRepository(db)
	messageRepo := repository.NewGormMessageRepository(db)
	orderRepo := repository.NewGormOrderRepository(db)
	messageCache := cache.NewRedisMessageCache(rdb, time.Duration(cfg.Chat.CacheTTLSeconds)*time.Second, historyCacheLimit)

	// Chat hub
	wsHub := hub.NewHub(cfg.WebSocket)
	go wsHub.Run()

	// Services
	socketAuth := auth.NewSocketAuthenticator(tokens, userRepo)
	chatSvc := service.NewChatService(socketAuth, messageRepo, messageCache, wsHub, cfg.Chat.MaxMessageChars)
	userSvc := service.NewUserService(userRepo, tokens)
	productSvc := service.NewProductService(productRepo, userRepo, store)
	stripeProvider := payment.NewStripeProvider(cfg.Stripe.SecretKey, cfg.Stripe.SuccessURL, cfg.Stripe.CancelURL)
	checkoutSvc := service.NewCheckoutService(productRepo, orderRepo, userRepo, stripeProvider, mailer)

	// HTTP surface
	authMW := middleware.NewAuthMiddleware(tokens)
	router := &handler.Router{
		Users:    handler.NewUserHandler(userSvc),
		Products: handler.NewProductHandler(productSvc),
		Chat:     handler.NewChatHandler(chatSvc),
		Checkout: handler.NewCheckoutHandler(checkoutSvc),
		WS:       handler.NewWSHandler(wsHub, chatSvc, cfg.WebSocket),
		Auth:     authMW,
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(log.GinMiddleware(l))
	router.RegisterRoutes(engine)
	if cfg.Storage.Backend != "s3" {
		engine.Static("/uploads", cfg.Storage.Local.BasePath)
	}

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		l.Info().Str("addr", server.Addr).Msg("http server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		l.Info().Msg("shutting down")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		l.Error().Err(err).Msg("server exited with error")
	}
	l.Info().Msg("rise360 backend stopped")
}
