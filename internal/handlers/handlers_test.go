package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"

	"github.com/dmarkhas/walletengine/internal/pg"
	"github.com/dmarkhas/walletengine/internal/repo"
	"github.com/dmarkhas/walletengine/internal/service"
	"github.com/dmarkhas/walletengine/internal/service/settlementservice"
)

func TestNew(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockDB, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockDB.Close()

	services := service.New(repo.New(mockDB), pg.NewMockTXManager(ctrl), settlementservice.NewMockNotifier(ctrl))

	h := New(services, 100)
	assert.NotNil(t, h, "Handlers should not be nil")
	assert.NotNil(t, h.PaymentHandler)
	assert.NotNil(t, h.WalletHandler)
	assert.NotNil(t, h.InvestmentHandler)
}

func TestInitRoutes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockPaymentHandler := NewMockPaymentHandler(ctrl)
	mockWalletHandler := NewMockWalletHandler(ctrl)
	mockInvestmentHandler := NewMockInvestmentHandler(ctrl)

	mockPaymentHandler.EXPECT().Webhook(gomock.Any(), gomock.Any()).AnyTimes()
	mockWalletHandler.EXPECT().GetWallets(gomock.Any(), gomock.Any()).AnyTimes()
	mockWalletHandler.EXPECT().GetBalance(gomock.Any(), gomock.Any()).AnyTimes()
	mockWalletHandler.EXPECT().GetTransactions(gomock.Any(), gomock.Any()).AnyTimes()
	mockWalletHandler.EXPECT().Deactivate(gomock.Any(), gomock.Any()).AnyTimes()
	mockInvestmentHandler.EXPECT().Create(gomock.Any(), gomock.Any()).AnyTimes()
	mockInvestmentHandler.EXPECT().GetInvestments(gomock.Any(), gomock.Any()).AnyTimes()
	mockInvestmentHandler.EXPECT().Cancel(gomock.Any(), gomock.Any()).AnyTimes()
	mockInvestmentHandler.EXPECT().Sweep(gomock.Any(), gomock.Any()).AnyTimes()

	h := &Handlers{
		PaymentHandler:    mockPaymentHandler,
		WalletHandler:     mockWalletHandler,
		InvestmentHandler: mockInvestmentHandler,
	}

	router := chi.NewRouter()
	h.InitRoutes(router)

	tests := []struct {
		method string
		url    string
		status int
	}{
		{"GET", "/swagger/index.html", http.StatusOK},
		{"POST", "/api/payments/webhook", http.StatusOK},
		{"POST", "/api/investments/sweep", http.StatusOK},
		{"GET", "/api/users/10/wallets", http.StatusOK},
		{"GET", "/api/users/10/wallets/balance", http.StatusOK},
		{"DELETE", "/api/users/10/wallets/1", http.StatusOK},
		{"GET", "/api/users/10/transactions", http.StatusOK},
		{"POST", "/api/users/10/investments/", http.StatusOK},
		{"GET", "/api/users/10/investments/", http.StatusOK},
		{"DELETE", "/api/users/10/investments/4f3c1c2e", http.StatusOK},
		{"GET", "/api/payments/webhook", http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.url, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.url, nil)
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
