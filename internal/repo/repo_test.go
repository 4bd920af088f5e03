package repo

import (
	"testing"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"

	investmentrepo "github.com/dmarkhas/walletengine/internal/repo/investment-repo"
	planrepo "github.com/dmarkhas/walletengine/internal/repo/plan-repo"
	transactionrepo "github.com/dmarkhas/walletengine/internal/repo/transaction-repo"
	walletrepo "github.com/dmarkhas/walletengine/internal/repo/wallet-repo"
)

func NewMock(t *testing.T) (*Repositories, pgxmock.PgxPoolIface) {
	mockDB, err := pgxmock.NewPool()
	assert.NoError(t, err)
	repo := New(mockDB)
	defer mockDB.Close()

	return repo, mockDB
}

func TestNew(t *testing.T) {
	repo, mock := NewMock(t)

	assert.NotNil(t, repo.WalletRepo)
	assert.NotNil(t, repo.TransactionRepo)
	assert.NotNil(t, repo.PlanRepo)
	assert.NotNil(t, repo.InvestmentRepo)

	assert.IsType(t, &walletrepo.Repository{}, repo.WalletRepo)
	assert.IsType(t, &transactionrepo.Repository{}, repo.TransactionRepo)
	assert.IsType(t, &planrepo.Repository{}, repo.PlanRepo)
	assert.IsType(t, &investmentrepo.Repository{}, repo.InvestmentRepo)

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unmet expectations: %v", err)
	}
}
