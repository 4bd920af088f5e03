// Package ledgerservice is the only component allowed to change a wallet
// balance. Every posting executes as one atomic unit: balance adjustment,
// transaction record and, for fee-bearing postings, the admin profit record
// all succeed or none do.
package ledgerservice

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/dmarkhas/walletengine/internal/domain"
	"github.com/dmarkhas/walletengine/internal/pg"
	transactionrepo "github.com/dmarkhas/walletengine/internal/repo/transaction-repo"
	walletrepo "github.com/dmarkhas/walletengine/internal/repo/wallet-repo"
)

type WalletRepo interface {
	GetByID(ctx context.Context, walletID int) (*domain.Wallet, error)
	AdjustBalance(ctx context.Context, walletID int, delta decimal.Decimal) (*domain.Wallet, error)
}

type TransactionRepo interface {
	FindByReferenceID(ctx context.Context, referenceID string) (*domain.Transaction, error)
	Create(ctx context.Context, txn *domain.Transaction) (*domain.Transaction, error)
	DeleteByID(ctx context.Context, transactionID int) error
	CreateProfit(ctx context.Context, profit *domain.AdminProfit) (*domain.AdminProfit, error)
}

var (
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrPostingNotFound   = errors.New("posting not found")
)

// Posting describes one requested balance mutation. Amount is signed: a
// deposit carries a positive amount, a debit a negative one. ReferenceID is
// the idempotency key; a replay with a reference that already posted returns
// the original transaction untouched.
type Posting struct {
	UserID      int
	WalletID    int
	Amount      decimal.Decimal
	Fee         decimal.Decimal
	Type        string
	ReferenceID string
	Description string
	Metadata    []byte
}

type PostResult struct {
	Transaction *domain.Transaction
	Wallet      *domain.Wallet
	Replayed    bool
}

type Service struct {
	walletRepo      WalletRepo
	transactionRepo TransactionRepo
	txManager       pg.TXManager
}

func New(walletRepo WalletRepo, transactionRepo TransactionRepo, txManager pg.TXManager) *Service {
	return &Service{
		walletRepo:      walletRepo,
		transactionRepo: transactionRepo,
		txManager:       txManager,
	}
}

// Post applies a posting. Duplicate reference ids are an idempotent no-op
// returning the original transaction, which makes replayed webhooks and
// caller retries safe. Any failure past the dedup check rolls the whole unit
// back: no partial wallet mutation, no orphan transaction or profit record.
func (s *Service) Post(ctx context.Context, posting Posting) (*PostResult, error) {
	var result PostResult
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		existing, err := s.transactionRepo.FindByReferenceID(ctx, posting.ReferenceID)
		if err != nil {
			return err
		}
		if existing != nil {
			wallet, err := s.walletRepo.GetByID(ctx, existing.WalletID)
			if err != nil {
				return err
			}
			result = PostResult{Transaction: existing, Wallet: wallet, Replayed: true}
			return nil
		}

		wallet, err := s.walletRepo.AdjustBalance(ctx, posting.WalletID, posting.Amount)
		if err != nil {
			if errors.Is(err, walletrepo.ErrInsufficientBalance) {
				return ErrInsufficientFunds
			}
			return err
		}

		txn := &domain.Transaction{
			UserID:      posting.UserID,
			WalletID:    posting.WalletID,
			Type:        posting.Type,
			Amount:      posting.Amount,
			Fee:         posting.Fee,
			Status:      domain.TransactionCompleted,
			ReferenceID: posting.ReferenceID,
			Description: posting.Description,
			Metadata:    posting.Metadata,
		}
		txn, err = s.transactionRepo.Create(ctx, txn)
		if err != nil {
			return err
		}

		if posting.Fee.IsPositive() {
			profit := &domain.AdminProfit{
				TransactionID: txn.ID,
				Amount:        posting.Fee,
				Currency:      wallet.Currency,
				Type:          posting.Type,
			}
			if _, err := s.transactionRepo.CreateProfit(ctx, profit); err != nil {
				return err
			}
		}

		result = PostResult{Transaction: txn, Wallet: wallet}
		return nil
	})
	if errors.Is(err, transactionrepo.ErrDuplicateReference) {
		// Lost the reference race to a concurrent poster after the dedup
		// check. The unit rolled back; the winner's transaction is the
		// result.
		return s.replay(ctx, posting.ReferenceID)
	}
	if err != nil {
		zap.L().Error("posting failed", zap.String("reference_id", posting.ReferenceID), zap.Error(err))
		return nil, err
	}
	return &result, nil
}

func (s *Service) replay(ctx context.Context, referenceID string) (*PostResult, error) {
	txn, err := s.transactionRepo.FindByReferenceID(ctx, referenceID)
	if err != nil {
		return nil, err
	}
	if txn == nil {
		return nil, ErrPostingNotFound
	}
	wallet, err := s.walletRepo.GetByID(ctx, txn.WalletID)
	if err != nil {
		return nil, err
	}
	return &PostResult{Transaction: txn, Wallet: wallet, Replayed: true}, nil
}

// FindPosting returns the transaction recorded under a reference id, or nil.
func (s *Service) FindPosting(ctx context.Context, referenceID string) (*domain.Transaction, error) {
	return s.transactionRepo.FindByReferenceID(ctx, referenceID)
}

// Reverse undoes a posting: the wallet gets the posted amount back and the
// transaction row is hard-deleted, so the reversal is a true rollback rather
// than a new forward posting. Joins the caller's transaction when one is
// open.
func (s *Service) Reverse(ctx context.Context, referenceID string) error {
	return s.txManager.Begin(ctx, func(ctx context.Context) error {
		txn, err := s.transactionRepo.FindByReferenceID(ctx, referenceID)
		if err != nil {
			return err
		}
		if txn == nil {
			return ErrPostingNotFound
		}

		if _, err := s.walletRepo.AdjustBalance(ctx, txn.WalletID, txn.Amount.Neg()); err != nil {
			if errors.Is(err, walletrepo.ErrInsufficientBalance) {
				return ErrInsufficientFunds
			}
			return err
		}
		return s.transactionRepo.DeleteByID(ctx, txn.ID)
	})
}
