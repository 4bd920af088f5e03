package service

import (
	"github.com/dmarkhas/walletengine/internal/pg"
	"github.com/dmarkhas/walletengine/internal/repo"
	"github.com/dmarkhas/walletengine/internal/service/investmentservice"
	"github.com/dmarkhas/walletengine/internal/service/ledgerservice"
	"github.com/dmarkhas/walletengine/internal/service/settlementservice"
	"github.com/dmarkhas/walletengine/internal/service/walletservice"
)

type Services struct {
	LedgerService     *ledgerservice.Service
	WalletService     *walletservice.Service
	SettlementService *settlementservice.Service
	InvestmentService *investmentservice.Service
}

func New(repo *repo.Repositories, txManager pg.TXManager, notifier settlementservice.Notifier) *Services {
	ledgerService := ledgerservice.New(repo.WalletRepo, repo.TransactionRepo, txManager)
	walletService := walletservice.New(repo.WalletRepo, repo.TransactionRepo)
	settlementService := settlementservice.New(repo.WalletRepo, repo.PlanRepo, ledgerService, notifier)
	investmentService := investmentservice.New(repo.PlanRepo, repo.InvestmentRepo, repo.WalletRepo, ledgerService, txManager)

	return &Services{
		LedgerService:     ledgerService,
		WalletService:     walletService,
		SettlementService: settlementService,
		InvestmentService: investmentService,
	}
}
