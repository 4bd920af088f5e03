package walletservice

import (
	"context"

	"go.uber.org/zap"

	"github.com/dmarkhas/walletengine/internal/domain"
	walletrepo "github.com/dmarkhas/walletengine/internal/repo/wallet-repo"
)

type WalletRepo interface {
	FindOrCreate(ctx context.Context, userID int, walletType, currency string) (*domain.Wallet, error)
	GetByID(ctx context.Context, walletID int) (*domain.Wallet, error)
	ListByUser(ctx context.Context, userID int) ([]domain.Wallet, error)
	Deactivate(ctx context.Context, walletID int) error
}

type TransactionRepo interface {
	ListByUser(ctx context.Context, userID int) ([]domain.Transaction, error)
}

type Service struct {
	walletRepo      WalletRepo
	transactionRepo TransactionRepo
}

func New(walletRepo WalletRepo, transactionRepo TransactionRepo) *Service {
	return &Service{
		walletRepo:      walletRepo,
		transactionRepo: transactionRepo,
	}
}

// FindOrCreate lazily provisions the wallet for a (user, type, currency)
// triple on first need.
func (s *Service) FindOrCreate(ctx context.Context, userID int, walletType, currency string) (*domain.Wallet, error) {
	wallet, err := s.walletRepo.FindOrCreate(ctx, userID, walletType, currency)
	if err != nil {
		zap.L().Error("can't find or create wallet", zap.Error(err))
		return nil, err
	}
	return wallet, nil
}

// GetBalance resolves the wallet for the (user, type, currency) triple,
// provisioning it with a zero balance when it does not exist yet.
func (s *Service) GetBalance(ctx context.Context, userID int, walletType, currency string) (*domain.Wallet, error) {
	return s.FindOrCreate(ctx, userID, walletType, currency)
}

func (s *Service) GetWallets(ctx context.Context, userID int) ([]domain.Wallet, error) {
	wallets, err := s.walletRepo.ListByUser(ctx, userID)
	if err != nil {
		zap.L().Error("can't get wallets", zap.Error(err))
		return nil, err
	}
	return wallets, nil
}

func (s *Service) GetTransactions(ctx context.Context, userID int) ([]domain.Transaction, error) {
	txns, err := s.transactionRepo.ListByUser(ctx, userID)
	if err != nil {
		zap.L().Error("can't get transactions", zap.Error(err))
		return nil, err
	}
	return txns, nil
}

// Deactivate retires a wallet. Wallets are never deleted, only flipped to
// INACTIVE; another user's wallet reads as not found.
func (s *Service) Deactivate(ctx context.Context, userID, walletID int) error {
	wallet, err := s.walletRepo.GetByID(ctx, walletID)
	if err != nil {
		return err
	}
	if wallet.UserID != userID {
		return walletrepo.ErrWalletNotFound
	}
	if err := s.walletRepo.Deactivate(ctx, walletID); err != nil {
		zap.L().Error("can't deactivate wallet", zap.Error(err))
		return err
	}
	return nil
}
