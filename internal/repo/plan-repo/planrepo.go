package planrepo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/dmarkhas/walletengine/internal/domain"
	"github.com/dmarkhas/walletengine/internal/pg"
)

var (
	ErrPlanNotFound     = errors.New("investment plan not found")
	ErrDurationNotFound = errors.New("plan duration not found")
	ErrGatewayNotFound  = errors.New("gateway not found")
)

// Repository reads admin-owned configuration: investment plans, their
// durations and gateway fee schedules. The engine never writes these.
type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) GetPlan(ctx context.Context, planID int) (*domain.InvestmentPlan, error) {
	query := `
        SELECT id, name, min_amount, max_amount, profit_percentage, currency, wallet_type, status
        FROM investment_plans
        WHERE id = $1 AND status = 'ACTIVE'
    `
	var plan domain.InvestmentPlan
	err := r.db.QueryRow(ctx, query, planID).Scan(
		&plan.ID, &plan.Name, &plan.MinAmount, &plan.MaxAmount,
		&plan.ProfitPercentage, &plan.Currency, &plan.WalletType, &plan.Status,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrPlanNotFound
	}
	if err != nil {
		zap.L().Error("can't get investment plan", zap.Error(err))
		return nil, err
	}
	return &plan, nil
}

func (r *Repository) GetDuration(ctx context.Context, durationID, planID int) (*domain.PlanDuration, error) {
	query := `
        SELECT id, plan_id, duration, timeframe
        FROM plan_durations
        WHERE id = $1 AND plan_id = $2
    `
	var d domain.PlanDuration
	err := r.db.QueryRow(ctx, query, durationID, planID).Scan(&d.ID, &d.PlanID, &d.Duration, &d.Timeframe)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrDurationNotFound
	}
	if err != nil {
		zap.L().Error("can't get plan duration", zap.Error(err))
		return nil, err
	}
	return &d, nil
}

func (r *Repository) GetGatewayByName(ctx context.Context, name string) (*domain.Gateway, error) {
	query := `
        SELECT id, name, currencies, fixed_fee, percentage_fee, min_amount, max_amount, status
        FROM gateways
        WHERE name = $1 AND status = 'ACTIVE'
    `
	var g domain.Gateway
	err := r.db.QueryRow(ctx, query, name).Scan(
		&g.ID, &g.Name, &g.Currencies, &g.FixedFee, &g.PercentageFee,
		&g.MinAmount, &g.MaxAmount, &g.Status,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrGatewayNotFound
	}
	if err != nil {
		zap.L().Error("can't get gateway", zap.Error(err))
		return nil, err
	}
	return &g, nil
}
