package service

import (
	"testing"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/dmarkhas/walletengine/internal/pg"
	"github.com/dmarkhas/walletengine/internal/repo"
	"github.com/dmarkhas/walletengine/internal/service/settlementservice"
)

func TestNew(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockDB, err := pgxmock.NewPool()
	assert.NoError(t, err)
	defer mockDB.Close()

	repos := repo.New(mockDB)
	txManager := pg.NewMockTXManager(ctrl)
	notifier := settlementservice.NewMockNotifier(ctrl)

	services := New(repos, txManager, notifier)

	assert.NotNil(t, services.LedgerService)
	assert.NotNil(t, services.WalletService)
	assert.NotNil(t, services.SettlementService)
	assert.NotNil(t, services.InvestmentService)
}
