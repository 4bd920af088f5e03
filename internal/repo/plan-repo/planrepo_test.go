package planrepo

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/dmarkhas/walletengine/internal/domain"
)

func NewMock(t *testing.T) (*Repository, pgxmock.PgxPoolIface) {
	mockDB, err := pgxmock.NewPool()
	assert.NoError(t, err)
	repo := New(mockDB)
	defer mockDB.Close()

	return repo, mockDB
}

func TestRepository_GetPlan(t *testing.T) {
	repo, mock := NewMock(t)

	query := regexp.QuoteMeta(`
        SELECT id, name, min_amount, max_amount, profit_percentage, currency, wallet_type, status
        FROM investment_plans
        WHERE id = $1 AND status = 'ACTIVE'`)
	columns := []string{"id", "name", "min_amount", "max_amount", "profit_percentage", "currency", "wallet_type", "status"}

	tests := []struct {
		name      string
		mockSetup func()
		expectErr error
	}{
		{
			name: "Active plan returned",
			mockSetup: func() {
				mock.ExpectQuery(query).
					WithArgs(1).
					WillReturnRows(pgxmock.NewRows(columns).
						AddRow(1, "Starter", domain.ScalarFee(decimal.NewFromInt(10)), domain.ScalarFee(decimal.NewFromInt(1000)),
							5.0, "USD", domain.FiatWallet, "ACTIVE"))
			},
		},
		{
			name: "Missing or inactive plan maps to ErrPlanNotFound",
			mockSetup: func() {
				mock.ExpectQuery(query).
					WithArgs(1).
					WillReturnError(pgx.ErrNoRows)
			},
			expectErr: ErrPlanNotFound,
		},
		{
			name: "Database error",
			mockSetup: func() {
				mock.ExpectQuery(query).
					WithArgs(1).
					WillReturnError(errors.New("database error"))
			},
			expectErr: errors.New("database error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			result, err := repo.GetPlan(context.Background(), 1)

			if tt.expectErr != nil {
				assert.Error(t, err)
				if errors.Is(tt.expectErr, ErrPlanNotFound) {
					assert.ErrorIs(t, err, ErrPlanNotFound)
				}
				assert.Nil(t, result)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, result)
				assert.Equal(t, "Starter", result.Name)
				assert.True(t, result.ProfitPercentage.Equal(decimal.NewFromInt(5)))
			}
		})
	}
}

func TestRepository_GetDuration(t *testing.T) {
	repo, mock := NewMock(t)

	query := regexp.QuoteMeta(`
        SELECT id, plan_id, duration, timeframe
        FROM plan_durations
        WHERE id = $1 AND plan_id = $2`)
	columns := []string{"id", "plan_id", "duration", "timeframe"}

	tests := []struct {
		name      string
		mockSetup func()
		expectErr error
		result    *domain.PlanDuration
	}{
		{
			name: "Duration belonging to plan returned",
			mockSetup: func() {
				mock.ExpectQuery(query).
					WithArgs(2, 1).
					WillReturnRows(pgxmock.NewRows(columns).AddRow(2, 1, 24, domain.TimeframeHour))
			},
			result: &domain.PlanDuration{ID: 2, PlanID: 1, Duration: 24, Timeframe: domain.TimeframeHour},
		},
		{
			name: "Duration of another plan maps to ErrDurationNotFound",
			mockSetup: func() {
				mock.ExpectQuery(query).
					WithArgs(2, 1).
					WillReturnError(pgx.ErrNoRows)
			},
			expectErr: ErrDurationNotFound,
		},
		{
			name: "Database error",
			mockSetup: func() {
				mock.ExpectQuery(query).
					WithArgs(2, 1).
					WillReturnError(errors.New("database error"))
			},
			expectErr: errors.New("database error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			result, err := repo.GetDuration(context.Background(), 2, 1)

			if tt.expectErr != nil {
				assert.Error(t, err)
				assert.Nil(t, result)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.result, result)
			}
		})
	}
}

func TestRepository_GetGatewayByName(t *testing.T) {
	repo, mock := NewMock(t)

	query := regexp.QuoteMeta(`
        SELECT id, name, currencies, fixed_fee, percentage_fee, min_amount, max_amount, status
        FROM gateways
        WHERE name = $1 AND status = 'ACTIVE'`)
	columns := []string{"id", "name", "currencies", "fixed_fee", "percentage_fee", "min_amount", "max_amount", "status"}

	tests := []struct {
		name      string
		mockSetup func()
		expectErr error
	}{
		{
			name: "Active gateway returned",
			mockSetup: func() {
				mock.ExpectQuery(query).
					WithArgs("stripe").
					WillReturnRows(pgxmock.NewRows(columns).
						AddRow(1, "stripe", []string{"USD", "EUR"},
							domain.ScalarFee(decimal.NewFromFloat(0.30)),
							domain.ScalarFee(decimal.NewFromFloat(2.9)),
							domain.ScalarFee(decimal.NewFromInt(1)),
							domain.FeeValue{},
							"ACTIVE"))
			},
		},
		{
			name: "Missing or inactive gateway maps to ErrGatewayNotFound",
			mockSetup: func() {
				mock.ExpectQuery(query).
					WithArgs("stripe").
					WillReturnError(pgx.ErrNoRows)
			},
			expectErr: ErrGatewayNotFound,
		},
		{
			name: "Database error",
			mockSetup: func() {
				mock.ExpectQuery(query).
					WithArgs("stripe").
					WillReturnError(errors.New("database error"))
			},
			expectErr: errors.New("database error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			result, err := repo.GetGatewayByName(context.Background(), "stripe")

			if tt.expectErr != nil {
				assert.Error(t, err)
				if errors.Is(tt.expectErr, ErrGatewayNotFound) {
					assert.ErrorIs(t, err, ErrGatewayNotFound)
				}
				assert.Nil(t, result)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, result)
				assert.Equal(t, "stripe", result.Name)
				assert.True(t, result.SupportsCurrency("USD"))
				assert.False(t, result.SupportsCurrency("NGN"))
			}
		})
	}
}
