package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/swiftpay/wallet-backend/internal/api"
	"github.com/swiftpay/wallet-backend/internal/auth"
	"github.com/swiftpay/wallet-backend/internal/config"
	"github.com/swiftpay/wallet-backend/internal/db"
	"github.com/swiftpay/wallet-backend/internal/gateway"
	"github.com/swiftpay/wallet-backend/internal/logger"
	"github.com/swiftpay/wallet-backend/internal/metrics"
	"github.com/swiftpay/wallet-backend/internal/middleware"
	"github.com/swiftpay/wallet-backend/internal/notify"
	"github.com/swiftpay/wallet-backend/internal/otp"
	"github.com/swiftpay/wallet-backend/internal/repository/postgres"
	"github.com/swiftpay/wallet-backend/internal/services"
	"github.com/swiftpay/wallet-backend/internal/worker"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.Env)
	slog.SetDefault(log)

	if err := cfg.Validate(); err != nil {
		log.Error("config", "err", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect", "err", err)
		os.Exit(1)
	}
	defer pool.Close()

	if os.Getenv("APP_MIGRATE") == "true" {
		if err := db.RunMigrations(ctx, pool); err != nil {
			log.Error("migrations", "err", err)
			os.Exit(1)
		}
	}

	repos := postgres.NewRepositories(pool)
	wp := worker.NewPool(4)
	defer wp.Stop()

	var broker notify.Broker = notify.NewMemoryBroker()
	if cfg.RedisAddr != "" {
		rb, err := notify.NewRedisBroker(cfg.RedisAddr)
		if err != nil {
			log.Error("redis connect", "err", err)
			os.Exit(1)
		}
		defer rb.Close()
		broker = rb
	}

	signer := gateway.NewSigner(cfg.MerchantKey, cfg.SaltIndex)
	gw := gateway.NewPhonePe(gateway.PhonePeConfig{
		MerchantID:  cfg.MerchantID,
		PayURL:      cfg.GatewayPayURL,
		StatusURL:   cfg.GatewayStatusURL,
		CallbackURL: cfg.CallbackURL,
	}, signer)

	verifier := otp.NewTwilioVerify(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioVerifySID)
	tm := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, 15*time.Minute, 7*24*time.Hour)

	userSvc := services.NewUserService(repos.Users, verifier, tm)
	balanceSvc := services.NewBalanceService(repos.Balances)
	paySvc := services.NewPaymentService(repos.Transactions, repos.Balances, gw, broker, wp)
	bankSvc := services.NewBankService(repos.BankAccounts, repos.Transactions)

	metrics.Init()
	r := api.NewRouter(api.RouterDeps{
		Cfg:     cfg,
		Auth:    middleware.NewAuthMiddleware(tm),
		UserSvc: userSvc,
		BalSvc:  balanceSvc,
		PaySvc:  paySvc,
		BankSvc: bankSvc,
		Broker:  broker,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("server starting", "port", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server", "err", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}
