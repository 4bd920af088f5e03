package walletrepo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/dmarkhas/walletengine/internal/domain"
	"github.com/dmarkhas/walletengine/internal/pg"
)

var (
	ErrWalletNotFound      = errors.New("wallet not found")
	ErrInsufficientBalance = errors.New("insufficient balance")
)

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

const walletColumns = `id, user_id, type, currency, balance, in_order, status, version, created_at, updated_at`

func scanWallet(row pgx.Row) (*domain.Wallet, error) {
	var w domain.Wallet
	err := row.Scan(&w.ID, &w.UserID, &w.Type, &w.Currency, &w.Balance, &w.InOrder, &w.Status, &w.Version, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *Repository) GetByID(ctx context.Context, walletID int) (*domain.Wallet, error) {
	query := `
        SELECT ` + walletColumns + `
        FROM wallets
        WHERE id = $1
    `
	wallet, err := scanWallet(r.db.QueryRow(ctx, query, walletID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrWalletNotFound
	}
	if err != nil {
		zap.L().Error("can't get wallet", zap.Error(err))
		return nil, err
	}
	return wallet, nil
}

func (r *Repository) FindByKey(ctx context.Context, userID int, walletType, currency string) (*domain.Wallet, error) {
	query := `
        SELECT ` + walletColumns + `
        FROM wallets
        WHERE user_id = $1 AND type = $2 AND currency = $3
    `
	wallet, err := scanWallet(r.db.QueryRow(ctx, query, userID, walletType, currency))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't find wallet", zap.Error(err))
		return nil, err
	}
	return wallet, nil
}

// FindOrCreate returns the wallet for (user, type, currency), creating it
// with a zero balance on first need. A concurrent creator winning the insert
// is resolved by re-reading the row.
func (r *Repository) FindOrCreate(ctx context.Context, userID int, walletType, currency string) (*domain.Wallet, error) {
	wallet, err := r.FindByKey(ctx, userID, walletType, currency)
	if err != nil {
		return nil, err
	}
	if wallet != nil {
		return wallet, nil
	}

	query := `
        INSERT INTO wallets (user_id, type, currency, balance, in_order, status)
        VALUES ($1, $2, $3, 0, 0, 'ACTIVE')
        ON CONFLICT (user_id, type, currency) DO NOTHING
        RETURNING ` + walletColumns + `
	`
	wallet, err = scanWallet(r.db.QueryRow(ctx, query, userID, walletType, currency))
	if errors.Is(err, pgx.ErrNoRows) {
		return r.FindByKey(ctx, userID, walletType, currency)
	}
	if err != nil {
		zap.L().Error("can't create wallet", zap.Error(err))
		return nil, err
	}
	return wallet, nil
}

func (r *Repository) ListByUser(ctx context.Context, userID int) ([]domain.Wallet, error) {
	query := `
        SELECT ` + walletColumns + `
        FROM wallets
        WHERE user_id = $1
        ORDER BY id
    `
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		zap.L().Error("can't list wallets", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var wallets []domain.Wallet
	for rows.Next() {
		wallet, err := scanWallet(rows)
		if err != nil {
			zap.L().Error("can't scan wallet row", zap.Error(err))
			return nil, err
		}
		wallets = append(wallets, *wallet)
	}
	return wallets, rows.Err()
}

// AdjustBalance applies a signed delta to a wallet balance. The row is locked
// for the remainder of the surrounding transaction so the balance check and
// the write cannot interleave with a concurrent posting against the same
// wallet. The new balance is rounded to the wallet currency's precision and
// must stay non-negative.
func (r *Repository) AdjustBalance(ctx context.Context, walletID int, delta decimal.Decimal) (*domain.Wallet, error) {
	lockQuery := `
        SELECT ` + walletColumns + `
        FROM wallets
        WHERE id = $1
        FOR UPDATE
    `
	wallet, err := scanWallet(r.db.QueryRow(ctx, lockQuery, walletID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrWalletNotFound
	}
	if err != nil {
		zap.L().Error("can't lock wallet", zap.Error(err))
		return nil, err
	}

	newBalance := domain.RoundAmount(wallet.Balance.Add(delta), wallet.Currency)
	if newBalance.IsNegative() {
		return nil, ErrInsufficientBalance
	}

	updateQuery := `
        UPDATE wallets
        SET balance = $1, version = version + 1, updated_at = now()
        WHERE id = $2
        RETURNING version, updated_at
    `
	err = r.db.QueryRow(ctx, updateQuery, newBalance, walletID).Scan(&wallet.Version, &wallet.UpdatedAt)
	if err != nil {
		zap.L().Error("can't update wallet balance", zap.Error(err))
		return nil, err
	}
	wallet.Balance = newBalance
	return wallet, nil
}

// Deactivate marks a wallet inactive. Wallets are never deleted.
func (r *Repository) Deactivate(ctx context.Context, walletID int) error {
	query := `
        UPDATE wallets
        SET status = 'INACTIVE', updated_at = now()
        WHERE id = $1
    `
	tag, err := r.db.Exec(ctx, query, walletID)
	if err != nil {
		zap.L().Error("can't deactivate wallet", zap.Error(err))
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrWalletNotFound
	}
	return nil
}
