package repo

import (
	"github.com/dmarkhas/walletengine/internal/pg"
	investmentrepo "github.com/dmarkhas/walletengine/internal/repo/investment-repo"
	planrepo "github.com/dmarkhas/walletengine/internal/repo/plan-repo"
	transactionrepo "github.com/dmarkhas/walletengine/internal/repo/transaction-repo"
	walletrepo "github.com/dmarkhas/walletengine/internal/repo/wallet-repo"
)

type Repositories struct {
	WalletRepo      *walletrepo.Repository
	TransactionRepo *transactionrepo.Repository
	PlanRepo        *planrepo.Repository
	InvestmentRepo  *investmentrepo.Repository
}

func New(conn pg.Database) *Repositories {
	return &Repositories{
		WalletRepo:      walletrepo.New(conn),
		TransactionRepo: transactionrepo.New(conn),
		PlanRepo:        planrepo.New(conn),
		InvestmentRepo:  investmentrepo.New(conn),
	}
}
