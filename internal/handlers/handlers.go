package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/dmarkhas/walletengine/docs"
	investmenthandlers "github.com/dmarkhas/walletengine/internal/handlers/investments"
	paymenthandlers "github.com/dmarkhas/walletengine/internal/handlers/payments"
	wallethandlers "github.com/dmarkhas/walletengine/internal/handlers/wallets"
	"github.com/dmarkhas/walletengine/internal/service"
)

type PaymentHandler interface {
	Webhook(w http.ResponseWriter, r *http.Request)
}

type WalletHandler interface {
	GetWallets(w http.ResponseWriter, r *http.Request)
	GetBalance(w http.ResponseWriter, r *http.Request)
	GetTransactions(w http.ResponseWriter, r *http.Request)
	Deactivate(w http.ResponseWriter, r *http.Request)
}

type InvestmentHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	GetInvestments(w http.ResponseWriter, r *http.Request)
	Cancel(w http.ResponseWriter, r *http.Request)
	Sweep(w http.ResponseWriter, r *http.Request)
}

type Handlers struct {
	PaymentHandler    PaymentHandler
	WalletHandler     WalletHandler
	InvestmentHandler InvestmentHandler
}

func New(s *service.Services, sweepLimit uint32) *Handlers {
	return &Handlers{
		PaymentHandler:    paymenthandlers.New(s.SettlementService),
		WalletHandler:     wallethandlers.New(s.WalletService),
		InvestmentHandler: investmenthandlers.New(s.InvestmentService, sweepLimit),
	}
}

func (h *Handlers) InitRoutes(r chi.Router) chi.Router {
	r.Use(
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
	)
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("doc.json"),
	))
	r.Route("/api", func(r chi.Router) {
		r.Post("/payments/webhook", h.PaymentHandler.Webhook)
		r.Post("/investments/sweep", h.InvestmentHandler.Sweep)

		r.Route("/users/{userID}", func(r chi.Router) {
			r.Get("/wallets", h.WalletHandler.GetWallets)
			r.Get("/wallets/balance", h.WalletHandler.GetBalance)
			r.Delete("/wallets/{walletID}", h.WalletHandler.Deactivate)
			r.Get("/transactions", h.WalletHandler.GetTransactions)
			r.Route("/investments", func(r chi.Router) {
				r.Post("/", h.InvestmentHandler.Create)
				r.Get("/", h.InvestmentHandler.GetInvestments)
				r.Delete("/{investmentID}", h.InvestmentHandler.Cancel)
			})
		})
	})

	return r
}
