// Package sweeper is the scheduler collaborator for investment maturity: it
// periodically asks the investment service for matured investments and pays
// each one out on a bounded worker pool. One investment failing never stops
// the rest of the batch.
package sweeper

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/dmarkhas/walletengine/internal/config"
	"github.com/dmarkhas/walletengine/internal/domain"
)

type InvestmentService interface {
	Matured(ctx context.Context, limit uint32) ([]domain.Investment, error)
	SweepOne(ctx context.Context, inv domain.Investment) error
}

type Service struct {
	investments InvestmentService
	limit       uint32
	pool        JobPool
	interval    time.Duration

	// inflight tracks investments currently being paid out so one slow
	// payout is not re-dispatched by the next tick.
	inflight sync.Map
}

func New(cfg *config.Config, investments InvestmentService) *Service {
	return &Service{
		investments: investments,
		limit:       cfg.SweepLimit,
		pool:        NewPool(cfg.SweepWorkers),
		interval:    cfg.SweepInterval,
	}
}

func (s *Service) Start(ctx context.Context) {
	zap.L().Info("Maturity sweeper started", zap.Duration("interval", s.interval))
	go s.run(ctx)
}

func (s *Service) run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			zap.L().Info("Context canceled, stopping sweeper")
			return
		case <-ticker.C:
			s.processMatured(ctx)
		}
	}
}

func (s *Service) processMatured(ctx context.Context) {
	matured, err := s.investments.Matured(ctx, s.limit)
	if err != nil {
		zap.L().Error("Failed to fetch matured investments", zap.Error(err))
		return
	}

	var g errgroup.Group
	for _, inv := range matured {
		inv := inv

		if _, loaded := s.inflight.LoadOrStore(inv.ID, struct{}{}); loaded {
			continue
		}

		g.Go(func() error {
			err := s.pool.Submit(ctx, func() error {
				defer s.inflight.Delete(inv.ID)
				return s.investments.SweepOne(ctx, inv)
			})
			if err != nil {
				s.inflight.Delete(inv.ID)
				return err
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		zap.L().Error("Error dispatching matured investments", zap.Error(err))
	}
}
