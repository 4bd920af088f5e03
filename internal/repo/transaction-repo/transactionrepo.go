package transactionrepo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"github.com/dmarkhas/walletengine/internal/domain"
	"github.com/dmarkhas/walletengine/internal/pg"
)

var (
	// ErrDuplicateReference maps the unique constraint on reference_id.
	// Callers treat it as "this posting already happened", not as a failure.
	ErrDuplicateReference  = errors.New("transaction reference already exists")
	ErrTransactionNotFound = errors.New("transaction not found")
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

const transactionColumns = `id, user_id, wallet_id, type, amount, fee, status, reference_id, description, metadata, created_at`

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var t domain.Transaction
	err := row.Scan(&t.ID, &t.UserID, &t.WalletID, &t.Type, &t.Amount, &t.Fee, &t.Status, &t.ReferenceID, &t.Description, &t.Metadata, &t.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// FindByReferenceID returns nil when no transaction carries the reference.
func (r *Repository) FindByReferenceID(ctx context.Context, referenceID string) (*domain.Transaction, error) {
	query := `
        SELECT ` + transactionColumns + `
        FROM transactions
        WHERE reference_id = $1
    `
	txn, err := scanTransaction(r.db.QueryRow(ctx, query, referenceID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't find transaction by reference", zap.Error(err))
		return nil, err
	}
	return txn, nil
}

func (r *Repository) Create(ctx context.Context, txn *domain.Transaction) (*domain.Transaction, error) {
	query := `
        INSERT INTO transactions (user_id, wallet_id, type, amount, fee, status, reference_id, description, metadata)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        RETURNING id, created_at
    `
	err := r.db.QueryRow(ctx, query,
		txn.UserID, txn.WalletID, txn.Type, txn.Amount, txn.Fee, txn.Status, txn.ReferenceID, txn.Description, txn.Metadata,
	).Scan(&txn.ID, &txn.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return nil, ErrDuplicateReference
		}
		zap.L().Error("can't save transaction", zap.Error(err))
		return nil, err
	}
	return txn, nil
}

func (r *Repository) DeleteByID(ctx context.Context, transactionID int) error {
	query := `
        DELETE FROM transactions
        WHERE id = $1
    `
	tag, err := r.db.Exec(ctx, query, transactionID)
	if err != nil {
		zap.L().Error("can't delete transaction", zap.Error(err))
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrTransactionNotFound
	}
	return nil
}

func (r *Repository) ListByUser(ctx context.Context, userID int) ([]domain.Transaction, error) {
	query := `
        SELECT ` + transactionColumns + `
        FROM transactions
        WHERE user_id = $1
        ORDER BY created_at DESC
    `
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		zap.L().Error("can't list transactions", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var txns []domain.Transaction
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			zap.L().Error("can't scan transaction row", zap.Error(err))
			return nil, err
		}
		txns = append(txns, *txn)
	}
	return txns, rows.Err()
}

// CreateProfit records platform revenue derived from a fee-bearing posting.
// Only the ledger coordinator calls this, always in the same transaction as
// the parent row.
func (r *Repository) CreateProfit(ctx context.Context, profit *domain.AdminProfit) (*domain.AdminProfit, error) {
	query := `
        INSERT INTO admin_profits (transaction_id, amount, currency, type)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at
    `
	err := r.db.QueryRow(ctx, query, profit.TransactionID, profit.Amount, profit.Currency, profit.Type).
		Scan(&profit.ID, &profit.CreatedAt)
	if err != nil {
		zap.L().Error("can't save admin profit", zap.Error(err))
		return nil, err
	}
	return profit, nil
}
