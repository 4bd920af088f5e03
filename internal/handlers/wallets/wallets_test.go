package wallets

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/dmarkhas/walletengine/internal/domain"
	"github.com/dmarkhas/walletengine/internal/dto"
	walletrepo "github.com/dmarkhas/walletengine/internal/repo/wallet-repo"
)

func NewMock(t *testing.T) (*WalletHandler, *MockService) {
	ctrl := gomock.NewController(t)
	service := NewMockService(ctrl)
	handler := New(service)
	return handler, service
}

func requestWithUserID(method, target, userID string) *http.Request {
	r := httptest.NewRequest(method, target, nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("userID", userID)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestGetWalletsHandler(t *testing.T) {
	handler, service := NewMock(t)

	tests := []struct {
		name         string
		userID       string
		prepareMock  func()
		expectedCode int
		expectedLen  int
	}{
		{
			name:   "Successful retrieval",
			userID: "10",
			prepareMock: func() {
				service.EXPECT().GetWallets(gomock.Any(), 10).Return([]domain.Wallet{
					{ID: 1, UserID: 10, Type: domain.FiatWallet, Currency: "USD", Balance: decimal.RequireFromString("96.80"), Status: domain.WalletActive},
					{ID: 2, UserID: 10, Type: domain.CryptoWallet, Currency: "BTC", Balance: decimal.RequireFromString("0.5"), Status: domain.WalletActive},
				}, nil)
			},
			expectedCode: http.StatusOK,
			expectedLen:  2,
		},
		{
			name:         "Invalid user id",
			userID:       "abc",
			prepareMock:  func() {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:   "Internal server error",
			userID: "10",
			prepareMock: func() {
				service.EXPECT().GetWallets(gomock.Any(), 10).Return(nil, errors.New("database error"))
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			r := requestWithUserID(http.MethodGet, "/api/users/10/wallets", tt.userID)
			w := httptest.NewRecorder()
			handler.GetWallets(w, r)
			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedCode == http.StatusOK {
				var body []dto.WalletResponseDTO
				assert.NoError(t, json.NewDecoder(w.Body).Decode(&body))
				assert.Len(t, body, tt.expectedLen)
			}
		})
	}
}

func TestGetBalanceHandler(t *testing.T) {
	handler, service := NewMock(t)

	tests := []struct {
		name         string
		userID       string
		target       string
		prepareMock  func()
		expectedCode int
	}{
		{
			name:   "Successful retrieval",
			userID: "10",
			target: "/api/users/10/wallets/balance?type=CRYPTO&currency=BTC",
			prepareMock: func() {
				service.EXPECT().GetBalance(gomock.Any(), 10, domain.CryptoWallet, "BTC").Return(&domain.Wallet{
					ID: 2, UserID: 10, Type: domain.CryptoWallet, Currency: "BTC",
					Balance: decimal.RequireFromString("0.5"), Status: domain.WalletActive,
				}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:   "Defaults to fiat wallet type",
			userID: "10",
			target: "/api/users/10/wallets/balance?currency=USD",
			prepareMock: func() {
				service.EXPECT().GetBalance(gomock.Any(), 10, domain.FiatWallet, "USD").Return(&domain.Wallet{
					ID: 1, UserID: 10, Type: domain.FiatWallet, Currency: "USD",
					Balance: decimal.Zero, Status: domain.WalletActive,
				}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:         "Missing currency",
			userID:       "10",
			target:       "/api/users/10/wallets/balance?type=FIAT",
			prepareMock:  func() {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "Invalid user id",
			userID:       "abc",
			target:       "/api/users/abc/wallets/balance?currency=USD",
			prepareMock:  func() {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:   "Internal server error",
			userID: "10",
			target: "/api/users/10/wallets/balance?currency=USD",
			prepareMock: func() {
				service.EXPECT().GetBalance(gomock.Any(), 10, domain.FiatWallet, "USD").Return(nil, errors.New("database error"))
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			r := requestWithUserID(http.MethodGet, tt.target, tt.userID)
			w := httptest.NewRecorder()
			handler.GetBalance(w, r)
			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedCode == http.StatusOK {
				var body dto.WalletResponseDTO
				assert.NoError(t, json.NewDecoder(w.Body).Decode(&body))
				assert.NotZero(t, body.ID)
			}
		})
	}
}

func TestDeactivateHandler(t *testing.T) {
	handler, service := NewMock(t)

	request := func(userID, walletID string) *http.Request {
		r := httptest.NewRequest(http.MethodDelete, "/api/users/"+userID+"/wallets/"+walletID, nil)
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("userID", userID)
		rctx.URLParams.Add("walletID", walletID)
		return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
	}

	tests := []struct {
		name         string
		userID       string
		walletID     string
		prepareMock  func()
		expectedCode int
	}{
		{
			name:     "Successful deactivation",
			userID:   "10",
			walletID: "1",
			prepareMock: func() {
				service.EXPECT().Deactivate(gomock.Any(), 10, 1).Return(nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:         "Invalid user id",
			userID:       "abc",
			walletID:     "1",
			prepareMock:  func() {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "Invalid wallet id",
			userID:       "10",
			walletID:     "0",
			prepareMock:  func() {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:     "Wallet not found",
			userID:   "10",
			walletID: "42",
			prepareMock: func() {
				service.EXPECT().Deactivate(gomock.Any(), 10, 42).Return(walletrepo.ErrWalletNotFound)
			},
			expectedCode: http.StatusNotFound,
		},
		{
			name:     "Internal server error",
			userID:   "10",
			walletID: "1",
			prepareMock: func() {
				service.EXPECT().Deactivate(gomock.Any(), 10, 1).Return(errors.New("database error"))
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			w := httptest.NewRecorder()
			handler.Deactivate(w, request(tt.userID, tt.walletID))
			assert.Equal(t, tt.expectedCode, w.Code)
		})
	}
}

func TestGetTransactionsHandler(t *testing.T) {
	handler, service := NewMock(t)

	tests := []struct {
		name         string
		userID       string
		prepareMock  func()
		expectedCode int
		expectedLen  int
	}{
		{
			name:   "Successful retrieval",
			userID: "10",
			prepareMock: func() {
				service.EXPECT().GetTransactions(gomock.Any(), 10).Return([]domain.Transaction{
					{ID: 17, WalletID: 1, Type: domain.DepositTransaction, Amount: decimal.RequireFromString("96.80"), ReferenceID: "pi_123"},
				}, nil)
			},
			expectedCode: http.StatusOK,
			expectedLen:  1,
		},
		{
			name:         "Invalid user id",
			userID:       "-1",
			prepareMock:  func() {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:   "Internal server error",
			userID: "10",
			prepareMock: func() {
				service.EXPECT().GetTransactions(gomock.Any(), 10).Return(nil, errors.New("database error"))
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			r := requestWithUserID(http.MethodGet, "/api/users/10/transactions", tt.userID)
			w := httptest.NewRecorder()
			handler.GetTransactions(w, r)
			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedCode == http.StatusOK {
				var body []dto.TransactionResponseDTO
				assert.NoError(t, json.NewDecoder(w.Body).Decode(&body))
				assert.Len(t, body, tt.expectedLen)
			}
		})
	}
}
