// Package settlementservice turns terminal payment-provider confirmations
// into deposit postings. Duplicate confirmations for the same external id are
// replayed idempotently: exactly one transaction, exactly one balance change.
package settlementservice

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/dmarkhas/walletengine/internal/domain"
	"github.com/dmarkhas/walletengine/internal/fees"
	"github.com/dmarkhas/walletengine/internal/service/ledgerservice"
)

type WalletRepo interface {
	FindOrCreate(ctx context.Context, userID int, walletType, currency string) (*domain.Wallet, error)
}

type GatewayRepo interface {
	GetGatewayByName(ctx context.Context, name string) (*domain.Gateway, error)
}

type Ledger interface {
	Post(ctx context.Context, posting ledgerservice.Posting) (*ledgerservice.PostResult, error)
	FindPosting(ctx context.Context, referenceID string) (*domain.Transaction, error)
}

type Notifier interface {
	Notify(ctx context.Context, userID int, txn *domain.Transaction, currency string, newBalance decimal.Decimal) error
}

var (
	ErrInvalidAmount        = errors.New("amount outside gateway limits")
	ErrCurrencyNotSupported = errors.New("currency not supported by gateway")
)

// Settlement result statuses.
const (
	StatusProcessed        = "processed"
	StatusAlreadyProcessed = "already_processed"
	StatusPending          = "pending"
)

// successStates are the provider states treated as terminal success. Anything
// else yields a non-committing pending result: not an error, just "not yet".
var successStates = map[string]struct{}{
	"success":   {},
	"succeeded": {},
	"completed": {},
	"paid":      {},
}

type LineItem struct {
	Description string
	Amount      decimal.Decimal
}

// Confirmation is what the engine requires from any payment provider: a
// terminal state, an amount, a currency and a unique external reference.
type Confirmation struct {
	ExternalID  string
	Status      string
	UserID      int
	Gateway     string
	GrossAmount decimal.Decimal
	Currency    string
	LineItems   []LineItem
}

type Result struct {
	Status      string
	Transaction *domain.Transaction
	NewBalance  decimal.Decimal
}

type Service struct {
	walletRepo  WalletRepo
	gatewayRepo GatewayRepo
	ledger      Ledger
	notifier    Notifier
}

func New(walletRepo WalletRepo, gatewayRepo GatewayRepo, ledger Ledger, notifier Notifier) *Service {
	return &Service{
		walletRepo:  walletRepo,
		gatewayRepo: gatewayRepo,
		ledger:      ledger,
		notifier:    notifier,
	}
}

// Settle processes one provider confirmation. The posting itself is atomic;
// the balance notification afterwards is best effort and never affects the
// result.
func (s *Service) Settle(ctx context.Context, c Confirmation) (*Result, error) {
	if _, ok := successStates[strings.ToLower(c.Status)]; !ok {
		zap.L().Info("confirmation not in terminal success state",
			zap.String("external_id", c.ExternalID), zap.String("status", c.Status))
		return &Result{Status: StatusPending}, nil
	}

	existing, err := s.ledger.FindPosting(ctx, c.ExternalID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		zap.L().Info("confirmation already settled", zap.String("external_id", c.ExternalID))
		return &Result{Status: StatusAlreadyProcessed, Transaction: existing}, nil
	}

	gateway, err := s.gatewayRepo.GetGatewayByName(ctx, c.Gateway)
	if err != nil {
		return nil, err
	}
	if !gateway.SupportsCurrency(c.Currency) {
		return nil, ErrCurrencyNotSupported
	}
	if !fees.WithinLimits(gateway.MinAmount, gateway.MaxAmount, c.Currency, c.GrossAmount) {
		return nil, ErrInvalidAmount
	}

	fee, depositAmount := s.split(gateway, c)

	wallet, err := s.walletRepo.FindOrCreate(ctx, c.UserID, domain.FiatWallet, c.Currency)
	if err != nil {
		return nil, err
	}

	metadata, _ := json.Marshal(map[string]any{
		"gateway":      c.Gateway,
		"gross_amount": c.GrossAmount,
	})
	posted, err := s.ledger.Post(ctx, ledgerservice.Posting{
		UserID:      c.UserID,
		WalletID:    wallet.ID,
		Amount:      depositAmount,
		Fee:         fee,
		Type:        domain.DepositTransaction,
		ReferenceID: c.ExternalID,
		Description: "Deposit via " + c.Gateway,
		Metadata:    metadata,
	})
	if err != nil {
		return nil, err
	}

	result := &Result{
		Status:      StatusProcessed,
		Transaction: posted.Transaction,
		NewBalance:  posted.Wallet.Balance,
	}
	if posted.Replayed {
		result.Status = StatusAlreadyProcessed
		return result, nil
	}

	if err := s.notifier.Notify(ctx, c.UserID, posted.Transaction, c.Currency, posted.Wallet.Balance); err != nil {
		zap.L().Warn("deposit notification failed", zap.String("external_id", c.ExternalID), zap.Error(err))
	}
	return result, nil
}

// split derives the fee and the credited amount. Providers that break the
// charge down supply line items (one of them marked as the fee); otherwise
// the gateway schedule decides and the fee comes out of the gross amount.
func (s *Service) split(gateway *domain.Gateway, c Confirmation) (fee, depositAmount decimal.Decimal) {
	if len(c.LineItems) > 0 {
		for _, item := range c.LineItems {
			if strings.Contains(strings.ToLower(item.Description), "fee") {
				fee = fee.Add(item.Amount)
			} else {
				depositAmount = depositAmount.Add(item.Amount)
			}
		}
		return domain.RoundAmount(fee, c.Currency), domain.RoundAmount(depositAmount, c.Currency)
	}

	quote := fees.QuoteFor(gateway, c.Currency, c.GrossAmount)
	return quote.Total, domain.RoundAmount(c.GrossAmount.Sub(quote.Total), c.Currency)
}
