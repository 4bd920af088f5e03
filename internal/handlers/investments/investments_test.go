package investments

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/dmarkhas/walletengine/internal/domain"
	"github.com/dmarkhas/walletengine/internal/dto"
	investmentrepo "github.com/dmarkhas/walletengine/internal/repo/investment-repo"
	planrepo "github.com/dmarkhas/walletengine/internal/repo/plan-repo"
	"github.com/dmarkhas/walletengine/internal/service/investmentservice"
	"github.com/dmarkhas/walletengine/internal/service/ledgerservice"
)

func NewMock(t *testing.T) (*InvestmentHandler, *MockService) {
	ctrl := gomock.NewController(t)
	service := NewMockService(ctrl)
	handler := New(service, 100)
	return handler, service
}

func requestWithParams(method, target, body string, params map[string]string) *http.Request {
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, target, nil)
	} else {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestCreateHandler(t *testing.T) {
	handler, service := NewMock(t)

	tests := []struct {
		name         string
		userID       string
		body         string
		prepareMock  func()
		expectedCode int
	}{
		{
			name:   "Successful creation",
			userID: "10",
			body:   `{"plan_id":1,"duration_id":2,"amount":"50"}`,
			prepareMock: func() {
				service.EXPECT().Create(gomock.Any(), 10, 1, 2, gomock.Any()).Return(&domain.Investment{
					ID:      "2b1a7f3e-9c41-4e56-b1f0-4f1f2f9d8f11",
					PlanID:  1,
					Amount:  decimal.NewFromInt(50),
					Profit:  decimal.NewFromInt(5),
					Status:  domain.InvestmentActive,
					EndDate: time.Now().Add(24 * time.Hour),
				}, nil)
			},
			expectedCode: http.StatusCreated,
		},
		{
			name:         "Invalid user id",
			userID:       "abc",
			body:         `{"plan_id":1,"duration_id":2,"amount":"50"}`,
			prepareMock:  func() {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "Invalid request body",
			userID:       "10",
			body:         `{"plan_id":`,
			prepareMock:  func() {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "Non-positive amount",
			userID:       "10",
			body:         `{"plan_id":1,"duration_id":2,"amount":"0"}`,
			prepareMock:  func() {},
			expectedCode: http.StatusUnprocessableEntity,
		},
		{
			name:   "Unknown plan",
			userID: "10",
			body:   `{"plan_id":99,"duration_id":2,"amount":"50"}`,
			prepareMock: func() {
				service.EXPECT().Create(gomock.Any(), 10, 99, 2, gomock.Any()).
					Return(nil, planrepo.ErrPlanNotFound)
			},
			expectedCode: http.StatusNotFound,
		},
		{
			name:   "Amount outside plan limits",
			userID: "10",
			body:   `{"plan_id":1,"duration_id":2,"amount":"5"}`,
			prepareMock: func() {
				service.EXPECT().Create(gomock.Any(), 10, 1, 2, gomock.Any()).
					Return(nil, investmentservice.ErrInvalidAmount)
			},
			expectedCode: http.StatusUnprocessableEntity,
		},
		{
			name:   "Duplicate active investment",
			userID: "10",
			body:   `{"plan_id":1,"duration_id":2,"amount":"50"}`,
			prepareMock: func() {
				service.EXPECT().Create(gomock.Any(), 10, 1, 2, gomock.Any()).
					Return(nil, investmentrepo.ErrDuplicateInvestment)
			},
			expectedCode: http.StatusConflict,
		},
		{
			name:   "Insufficient balance",
			userID: "10",
			body:   `{"plan_id":1,"duration_id":2,"amount":"50"}`,
			prepareMock: func() {
				service.EXPECT().Create(gomock.Any(), 10, 1, 2, gomock.Any()).
					Return(nil, ledgerservice.ErrInsufficientFunds)
			},
			expectedCode: http.StatusPaymentRequired,
		},
		{
			name:   "Internal server error",
			userID: "10",
			body:   `{"plan_id":1,"duration_id":2,"amount":"50"}`,
			prepareMock: func() {
				service.EXPECT().Create(gomock.Any(), 10, 1, 2, gomock.Any()).
					Return(nil, errors.New("database error"))
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			r := requestWithParams(http.MethodPost, "/api/users/10/investments", tt.body, map[string]string{"userID": tt.userID})
			w := httptest.NewRecorder()
			handler.Create(w, r)
			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedCode == http.StatusCreated {
				var body dto.InvestmentResponseDTO
				assert.NoError(t, json.NewDecoder(w.Body).Decode(&body))
				assert.Equal(t, "2b1a7f3e-9c41-4e56-b1f0-4f1f2f9d8f11", body.ID)
			}
		})
	}
}

func TestGetInvestmentsHandler(t *testing.T) {
	handler, service := NewMock(t)

	tests := []struct {
		name         string
		userID       string
		prepareMock  func()
		expectedCode int
	}{
		{
			name:   "Successful retrieval",
			userID: "10",
			prepareMock: func() {
				service.EXPECT().GetInvestments(gomock.Any(), 10).Return([]domain.Investment{
					{ID: "inv-1", PlanID: 1, Amount: decimal.NewFromInt(50)},
				}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:         "Invalid user id",
			userID:       "0",
			prepareMock:  func() {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:   "Internal server error",
			userID: "10",
			prepareMock: func() {
				service.EXPECT().GetInvestments(gomock.Any(), 10).Return(nil, errors.New("database error"))
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			r := requestWithParams(http.MethodGet, "/api/users/10/investments", "", map[string]string{"userID": tt.userID})
			w := httptest.NewRecorder()
			handler.GetInvestments(w, r)
			assert.Equal(t, tt.expectedCode, w.Code)
		})
	}
}

func TestCancelHandler(t *testing.T) {
	handler, service := NewMock(t)

	tests := []struct {
		name         string
		prepareMock  func()
		expectedCode int
	}{
		{
			name: "Successful cancellation",
			prepareMock: func() {
				service.EXPECT().Cancel(gomock.Any(), 10, "inv-1").Return(nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "Investment not found",
			prepareMock: func() {
				service.EXPECT().Cancel(gomock.Any(), 10, "inv-1").Return(investmentrepo.ErrInvestmentNotFound)
			},
			expectedCode: http.StatusNotFound,
		},
		{
			name: "Investment already completed",
			prepareMock: func() {
				service.EXPECT().Cancel(gomock.Any(), 10, "inv-1").Return(investmentservice.ErrInvestmentCompleted)
			},
			expectedCode: http.StatusConflict,
		},
		{
			name: "Internal server error",
			prepareMock: func() {
				service.EXPECT().Cancel(gomock.Any(), 10, "inv-1").Return(errors.New("database error"))
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			r := requestWithParams(http.MethodDelete, "/api/users/10/investments/inv-1", "", map[string]string{
				"userID":       "10",
				"investmentID": "inv-1",
			})
			w := httptest.NewRecorder()
			handler.Cancel(w, r)
			assert.Equal(t, tt.expectedCode, w.Code)
		})
	}
}

func TestSweepHandler(t *testing.T) {
	handler, service := NewMock(t)

	t.Run("Successful sweep", func(t *testing.T) {
		service.EXPECT().Sweep(gomock.Any(), uint32(100)).Return(12, 1, nil)

		r := httptest.NewRequest(http.MethodPost, "/api/investments/sweep", nil)
		w := httptest.NewRecorder()
		handler.Sweep(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
		var body dto.SweepResponseDTO
		assert.NoError(t, json.NewDecoder(w.Body).Decode(&body))
		assert.Equal(t, 12, body.Swept)
		assert.Equal(t, 1, body.Failed)
	})

	t.Run("Internal server error", func(t *testing.T) {
		service.EXPECT().Sweep(gomock.Any(), uint32(100)).Return(0, 0, errors.New("database error"))

		r := httptest.NewRequest(http.MethodPost, "/api/investments/sweep", nil)
		w := httptest.NewRecorder()
		handler.Sweep(w, r)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}
