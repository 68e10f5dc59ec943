package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"mera-bestie/config"
	"mera-bestie/controllers"
	"mera-bestie/database"
	"mera-bestie/database/memory"
	"mera-bestie/middleware"
	"mera-bestie/routes"
	"mera-bestie/services"
	"mera-bestie/session"
	"mera-bestie/utils"
)

// repositories is the set of stores the services are built on.
type repositories struct {
	users      services.UserRepository
	sellers    services.SellerRepository
	products   services.ProductRepository
	carts      services.CartRepository
	orders     services.OrderRepository
	complaints services.ComplaintRepository
	coupons    services.CouponRepository
}

func main() {
	configPath := flag.String("config", "", "path to an optional YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := newLogger(cfg.Log)
	if err != nil {
		panic(fmt.Sprintf("Failed to create logger: %v", err))
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server exited with error", zap.Error(err))
	}
	logger.Info("server stopped")
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx := context.Background()
	var closers []func(context.Context) error

	var repos repositories
	switch cfg.Store.Driver {
	case "mongo":
		mongo, err := db.Connect(ctx, cfg.MongoDB, logger)
		if err != nil {
			return fmt.Errorf("failed to connect to MongoDB: %w", err)
		}
		closers = append(closers, mongo.Close)
		if err := mongo.EnsureIndexes(ctx); err != nil {
			return fmt.Errorf("failed to create indexes: %w", err)
		}
		repos = repositories{
			users:      mongo.Users(),
			sellers:    mongo.Sellers(),
			products:   mongo.Products(),
			carts:      mongo.Carts(),
			orders:     mongo.Orders(),
			complaints: mongo.Complaints(),
			coupons:    mongo.Coupons(),
		}
	default:
		logger.Warn("using in-memory store; data is lost on restart")
		store := memory.New()
		repos = repositories{
			users:      store.Users(),
			sellers:    store.Sellers(),
			products:   store.Products(),
			carts:      store.Carts(),
			orders:     store.Orders(),
			complaints: store.Complaints(),
			coupons:    store.Coupons(),
		}
	}

	var sessionStore session.Store
	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("failed to connect to Redis: %w", err)
		}
		closers = append(closers, func(context.Context) error { return client.Close() })
		sessionStore = session.NewRedisStore(client)
		logger.Info("sessions stored in Redis", zap.String("addr", cfg.Redis.Addr))
	} else {
		logger.Warn("redis.addr not set; sessions kept in process")
		sessionStore = session.NewMemoryStore()
	}
	sessions := session.NewManager(sessionStore, cfg.Session.Secret, cfg.Session.TTL)

	var sender utils.Sender
	if cfg.SMTP.Host != "" {
		mailer, err := utils.NewMailer(cfg.SMTP)
		if err != nil {
			return fmt.Errorf("failed to create mailer: %w", err)
		}
		sender = mailer
	} else {
		logger.Warn("smtp.host not set; emails are logged instead of sent")
		sender = utils.LogSender{Logger: logger}
	}
	notifier := services.NewNotifier(sender, cfg.SMTP.Timeout, cfg.SMTP.BroadcastWorkers, logger)

	ids := utils.RandomIDs{}
	coupons := services.NewCouponService(repos.coupons, repos.users, notifier, cfg.Coupon.DefaultTTL, logger)
	handler := &controllers.Handler{
		Accounts:   services.NewAccountService(repos.users, repos.sellers, ids, logger),
		Carts:      services.NewCartService(repos.carts, repos.products, logger),
		Orders:     services.NewOrderService(repos.users, repos.products, repos.orders, notifier, ids, logger),
		Complaints: services.NewComplaintService(repos.complaints, notifier, ids, logger),
		Coupons:    coupons,
		Products:   services.NewProductService(repos.products, logger),
		Sessions:   sessions,
		Cookie:     cfg.Session,
		Logger:     logger,
	}

	sweeper, err := services.NewCouponSweeper(coupons, cfg.Coupon.SweepSchedule, cfg.MongoDB.QueryTimeout, logger)
	if err != nil {
		return fmt.Errorf("invalid coupon.sweep_schedule: %w", err)
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middlewares.Logger(logger))
	err = routes.SetupRoutes(router, handler, routes.Options{
		CORS:           cfg.CORS,
		LoginLimiter:   middlewares.NewLoginLimiter(cfg.RateLimit.LoginAttempts, cfg.RateLimit.LoginWindow),
		TrustedProxies: cfg.Server.TrustedProxies,
	})
	if err != nil {
		return err
	}
	sweeper.Start()

	srv := &http.Server{
		Addr:    cfg.Server.Addr(),
		Handler: router,
	}

	srvErr := make(chan error, 1)
	go func() {
		logger.Info("server starting", zap.String("address", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			srvErr <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	var runErr error
	select {
	case sig := <-sigCh:
		logger.Info("received shutdown signal", zap.String("signal", sig.String()))
	case runErr = <-srvErr:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", zap.Error(err))
	}
	sweeper.Stop()
	notifier.Wait()
	for i := len(closers) - 1; i >= 0; i-- {
		if err := closers[i](shutdownCtx); err != nil {
			logger.Error("failed to close resource", zap.Error(err))
		}
	}
	return runErr
}

func newLogger(cfg config.LogConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	zc := zap.NewProductionConfig()
	if level == zapcore.DebugLevel {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	if cfg.Encoding != "" {
		zc.Encoding = cfg.Encoding
	}
	return zc.Build()
}
