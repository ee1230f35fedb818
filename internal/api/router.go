package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/swiftpay/wallet-backend/internal/api/handlers"
	"github.com/swiftpay/wallet-backend/internal/config"
	"github.com/swiftpay/wallet-backend/internal/metrics"
	"github.com/swiftpay/wallet-backend/internal/middleware"
	"github.com/swiftpay/wallet-backend/internal/notify"
	"github.com/swiftpay/wallet-backend/internal/services"
)

type RouterDeps struct {
	Cfg     config.Config
	Auth    *middleware.AuthMiddleware
	UserSvc *services.UserService
	BalSvc  *services.BalanceService
	PaySvc  *services.PaymentService
	BankSvc *services.BankService
	Broker  notify.Broker
}

func NewRouter(d RouterDeps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recover, middleware.HTTPMetrics, middleware.RateLimit(d.Cfg.RateRPS))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	authH := handlers.NewAuthHandler(d.UserSvc)
	payH := handlers.NewPaymentHandler(d.PaySvc, d.BalSvc)
	bankH := handlers.NewBankHandler(d.BankSvc)
	eventsH := handlers.NewEventsHandler(d.Broker)

	// health & metrics
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("ok")) })
	r.Handle("/metrics", metrics.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		// ---------- auth ----------
		r.Post("/auth/send-otp", authH.SendOTP)
		r.Post("/auth/verify-otp", authH.VerifyOTP)
		r.Post("/auth/register", authH.Register)
		r.Post("/auth/login", authH.Login)
		r.Post("/auth/refresh", authH.Refresh)

		// ---------- wallet (authenticated) ----------
		r.Group(func(r chi.Router) {
			r.Use(d.Auth.Auth)
			r.Get("/balance", payH.Balance)
			r.Post("/payment/initiate", payH.Initiate)
			r.Post("/payment/status", payH.Status)
			r.Get("/events", eventsH.Stream)
		})

		// ---------- bank ----------
		r.Group(func(r chi.Router) {
			r.Use(d.Auth.Auth)
			r.Get("/bank/accounts", bankH.ListAccounts)
			r.Post("/bank/accounts", bankH.CreateAccount)
			r.Delete("/bank/accounts/{id}", bankH.DeleteAccount)
			r.Post("/bank/transactions", bankH.AddTransaction)
			r.Post("/bank/add-money", bankH.AddMoney)
			r.Get("/bank/transactions", bankH.History)
		})
	})

	return r
}
