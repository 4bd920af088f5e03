// Package investmentservice owns the investment state machine: ACTIVE to
// COMPLETED on maturity, ACTIVE to hard-deleted on cancellation. All balance
// movement goes through the ledger coordinator.
package investmentservice

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/dmarkhas/walletengine/internal/domain"
	"github.com/dmarkhas/walletengine/internal/fees"
	"github.com/dmarkhas/walletengine/internal/pg"
	investmentrepo "github.com/dmarkhas/walletengine/internal/repo/investment-repo"
	"github.com/dmarkhas/walletengine/internal/service/ledgerservice"
)

type PlanRepo interface {
	GetPlan(ctx context.Context, planID int) (*domain.InvestmentPlan, error)
	GetDuration(ctx context.Context, durationID, planID int) (*domain.PlanDuration, error)
}

type InvestmentRepo interface {
	Create(ctx context.Context, inv *domain.Investment) (*domain.Investment, error)
	GetByID(ctx context.Context, investmentID string) (*domain.Investment, error)
	ListByUser(ctx context.Context, userID int) ([]domain.Investment, error)
	FindMatured(ctx context.Context, now time.Time, limit uint32) ([]domain.Investment, error)
	ClaimCompleted(ctx context.Context, investmentID string, completedAt time.Time) (bool, error)
	DeleteActive(ctx context.Context, investmentID string) (bool, error)
}

type WalletRepo interface {
	FindOrCreate(ctx context.Context, userID int, walletType, currency string) (*domain.Wallet, error)
}

type Ledger interface {
	Post(ctx context.Context, posting ledgerservice.Posting) (*ledgerservice.PostResult, error)
	Reverse(ctx context.Context, referenceID string) error
}

var (
	ErrInvalidAmount       = errors.New("amount outside plan limits")
	ErrInvestmentCompleted = errors.New("investment already completed")
)

// timeframes maps a duration timeframe to its fixed length. MONTH is a fixed
// 30 days, not calendar-aware.
var timeframes = map[string]time.Duration{
	domain.TimeframeHour:  time.Hour,
	domain.TimeframeDay:   24 * time.Hour,
	domain.TimeframeWeek:  7 * 24 * time.Hour,
	domain.TimeframeMonth: 30 * 24 * time.Hour,
}

type Service struct {
	planRepo       PlanRepo
	investmentRepo InvestmentRepo
	walletRepo     WalletRepo
	ledger         Ledger
	txManager      pg.TXManager

	now func() time.Time
}

func New(planRepo PlanRepo, investmentRepo InvestmentRepo, walletRepo WalletRepo, ledger Ledger, txManager pg.TXManager) *Service {
	return &Service{
		planRepo:       planRepo,
		investmentRepo: investmentRepo,
		walletRepo:     walletRepo,
		ledger:         ledger,
		txManager:      txManager,
		now:            time.Now,
	}
}

// Create opens an investment: validates the plan and duration, freezes the
// absolute profit at the plan's current percentage, and debits the wallet
// and inserts the investment row in one atomic unit. Later plan-percentage
// changes never affect an open investment.
func (s *Service) Create(ctx context.Context, userID, planID, durationID int, amount decimal.Decimal) (*domain.Investment, error) {
	plan, err := s.planRepo.GetPlan(ctx, planID)
	if err != nil {
		return nil, err
	}
	duration, err := s.planRepo.GetDuration(ctx, durationID, planID)
	if err != nil {
		return nil, err
	}
	if !fees.WithinLimits(plan.MinAmount, plan.MaxAmount, plan.Currency, amount) {
		return nil, ErrInvalidAmount
	}

	wallet, err := s.walletRepo.FindOrCreate(ctx, userID, plan.WalletType, plan.Currency)
	if err != nil {
		return nil, err
	}

	now := s.now()
	profit := domain.RoundAmount(amount.Mul(plan.ProfitPercentage).Div(decimal.NewFromInt(100)), plan.Currency)
	investment := &domain.Investment{
		ID:         uuid.NewString(),
		UserID:     userID,
		PlanID:     plan.ID,
		DurationID: duration.ID,
		WalletID:   wallet.ID,
		Amount:     amount,
		Profit:     profit,
		Status:     domain.InvestmentActive,
		EndDate:    now.Add(time.Duration(duration.Duration) * timeframes[duration.Timeframe]),
	}

	err = s.txManager.Begin(ctx, func(ctx context.Context) error {
		if _, err := s.investmentRepo.Create(ctx, investment); err != nil {
			return err
		}
		_, err := s.ledger.Post(ctx, ledgerservice.Posting{
			UserID:      userID,
			WalletID:    wallet.ID,
			Amount:      amount.Neg(),
			Fee:         decimal.Zero,
			Type:        domain.InvestmentTransaction,
			ReferenceID: investment.ID,
			Description: "Investment in " + plan.Name,
		})
		return err
	})
	if err != nil {
		zap.L().Error("can't create investment",
			zap.Int("user_id", userID), zap.Int("plan_id", planID), zap.Error(err))
		return nil, err
	}
	return investment, nil
}

func (s *Service) GetInvestments(ctx context.Context, userID int) ([]domain.Investment, error) {
	investments, err := s.investmentRepo.ListByUser(ctx, userID)
	if err != nil {
		zap.L().Error("can't get investments", zap.Error(err))
		return nil, err
	}
	return investments, nil
}

// Matured lists active investments whose end date has passed.
func (s *Service) Matured(ctx context.Context, limit uint32) ([]domain.Investment, error) {
	return s.investmentRepo.FindMatured(ctx, s.now(), limit)
}

// SweepOne pays out a single matured investment. The ACTIVE to COMPLETED
// transition is claimed first; a racing sweeper that finds the row already
// claimed skips it without posting. The ROI posting carries a fresh reference
// so it coexists with the original debit posting.
func (s *Service) SweepOne(ctx context.Context, inv domain.Investment) error {
	return s.txManager.Begin(ctx, func(ctx context.Context) error {
		claimed, err := s.investmentRepo.ClaimCompleted(ctx, inv.ID, s.now())
		if err != nil {
			return err
		}
		if !claimed {
			return nil
		}

		roi := inv.Amount.Add(inv.Profit)
		_, err = s.ledger.Post(ctx, ledgerservice.Posting{
			UserID:      inv.UserID,
			WalletID:    inv.WalletID,
			Amount:      roi,
			Fee:         decimal.Zero,
			Type:        domain.InvestmentROITransaction,
			ReferenceID: uuid.NewString(),
			Description: "Investment ROI payout",
		})
		return err
	})
}

// Sweep processes every matured investment, each in its own atomic unit. One
// investment's failure is logged and does not abort the rest.
func (s *Service) Sweep(ctx context.Context, limit uint32) (swept, failed int, err error) {
	matured, err := s.Matured(ctx, limit)
	if err != nil {
		return 0, 0, err
	}

	for _, inv := range matured {
		if err := s.SweepOne(ctx, inv); err != nil {
			zap.L().Error("can't sweep investment", zap.String("investment_id", inv.ID), zap.Error(err))
			failed++
			continue
		}
		swept++
	}
	return swept, failed, nil
}

// Cancel reverses an active investment: the full principal returns to the
// wallet and the investment row together with its original debit transaction
// are hard-deleted in one atomic unit. No profit is paid. Completed
// investments cannot be cancelled; the status check runs again inside the
// unit via the guarded delete, so a sweeper completing the investment after
// the initial read rolls the whole cancellation back.
func (s *Service) Cancel(ctx context.Context, userID int, investmentID string) error {
	inv, err := s.investmentRepo.GetByID(ctx, investmentID)
	if err != nil {
		return err
	}
	if inv.UserID != userID {
		return investmentrepo.ErrInvestmentNotFound
	}
	if inv.Status == domain.InvestmentCompleted {
		return ErrInvestmentCompleted
	}

	err = s.txManager.Begin(ctx, func(ctx context.Context) error {
		deleted, err := s.investmentRepo.DeleteActive(ctx, inv.ID)
		if err != nil {
			return err
		}
		if !deleted {
			return ErrInvestmentCompleted
		}
		return s.ledger.Reverse(ctx, inv.ID)
	})
	if err != nil {
		zap.L().Error("can't cancel investment", zap.String("investment_id", investmentID), zap.Error(err))
		return err
	}
	return nil
}
