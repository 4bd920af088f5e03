package investmentrepo

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"github.com/dmarkhas/walletengine/internal/domain"
	"github.com/dmarkhas/walletengine/internal/pg"
)

var (
	ErrInvestmentNotFound  = errors.New("investment not found")
	ErrDuplicateInvestment = errors.New("user already has an active investment for this plan")
)

const uniqueViolationCode = "23505"

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

const investmentColumns = `id, user_id, plan_id, duration_id, wallet_id, amount, profit, status, end_date, created_at, completed_at`

func scanInvestment(row pgx.Row) (*domain.Investment, error) {
	var inv domain.Investment
	err := row.Scan(&inv.ID, &inv.UserID, &inv.PlanID, &inv.DurationID, &inv.WalletID,
		&inv.Amount, &inv.Profit, &inv.Status, &inv.EndDate, &inv.CreatedAt, &inv.CompletedAt)
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *Repository) Create(ctx context.Context, inv *domain.Investment) (*domain.Investment, error) {
	query := `
        INSERT INTO investments (id, user_id, plan_id, duration_id, wallet_id, amount, profit, status, end_date)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        RETURNING created_at
    `
	err := r.db.QueryRow(ctx, query,
		inv.ID, inv.UserID, inv.PlanID, inv.DurationID, inv.WalletID,
		inv.Amount, inv.Profit, inv.Status, inv.EndDate,
	).Scan(&inv.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return nil, ErrDuplicateInvestment
		}
		zap.L().Error("can't save investment", zap.Error(err))
		return nil, err
	}
	return inv, nil
}

func (r *Repository) GetByID(ctx context.Context, investmentID string) (*domain.Investment, error) {
	query := `
        SELECT ` + investmentColumns + `
        FROM investments
        WHERE id = $1
    `
	inv, err := scanInvestment(r.db.QueryRow(ctx, query, investmentID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrInvestmentNotFound
	}
	if err != nil {
		zap.L().Error("can't get investment", zap.Error(err))
		return nil, err
	}
	return inv, nil
}

func (r *Repository) ListByUser(ctx context.Context, userID int) ([]domain.Investment, error) {
	query := `
        SELECT ` + investmentColumns + `
        FROM investments
        WHERE user_id = $1
        ORDER BY created_at DESC
    `
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		zap.L().Error("can't list investments", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var investments []domain.Investment
	for rows.Next() {
		inv, err := scanInvestment(rows)
		if err != nil {
			zap.L().Error("can't scan investment row", zap.Error(err))
			return nil, err
		}
		investments = append(investments, *inv)
	}
	return investments, rows.Err()
}

// FindMatured returns active investments whose end date has passed.
func (r *Repository) FindMatured(ctx context.Context, now time.Time, limit uint32) ([]domain.Investment, error) {
	query := `
        SELECT ` + investmentColumns + `
        FROM investments
        WHERE status = 'ACTIVE' AND end_date <= $1
        ORDER BY end_date
        LIMIT $2
    `
	rows, err := r.db.Query(ctx, query, now, limit)
	if err != nil {
		zap.L().Error("can't find matured investments", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var investments []domain.Investment
	for rows.Next() {
		inv, err := scanInvestment(rows)
		if err != nil {
			zap.L().Error("can't scan investment row", zap.Error(err))
			return nil, err
		}
		investments = append(investments, *inv)
	}
	return investments, rows.Err()
}

// ClaimCompleted atomically transitions ACTIVE to COMPLETED. It reports false
// when another worker already claimed the investment, so racing sweepers
// credit the payout at most once.
func (r *Repository) ClaimCompleted(ctx context.Context, investmentID string, completedAt time.Time) (bool, error) {
	query := `
        UPDATE investments
        SET status = 'COMPLETED', completed_at = $2
        WHERE id = $1 AND status = 'ACTIVE'
    `
	tag, err := r.db.Exec(ctx, query, investmentID, completedAt)
	if err != nil {
		zap.L().Error("can't claim investment", zap.Error(err))
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

// DeleteActive removes an investment only while it is still ACTIVE. It
// reports false when the row is gone or a sweeper already completed it, so a
// cancellation racing a payout never both runs.
func (r *Repository) DeleteActive(ctx context.Context, investmentID string) (bool, error) {
	query := `
        DELETE FROM investments
        WHERE id = $1 AND status = 'ACTIVE'
    `
	tag, err := r.db.Exec(ctx, query, investmentID)
	if err != nil {
		zap.L().Error("can't delete investment", zap.Error(err))
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}
