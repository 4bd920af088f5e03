package sweeper

import (
	"context"

	"go.uber.org/zap"
)

// Job is one unit of sweep work, typically a single investment payout.
type Job func() error

type JobPool interface {
	Submit(ctx context.Context, job Job) error
	Close()
}

type Pool struct {
	jobs chan Job
}

func NewPool(workers int) *Pool {
	p := &Pool{jobs: make(chan Job, workers)}
	for i := 0; i < workers; i++ {
		go p.run()
	}
	return p
}

func (p *Pool) run() {
	for job := range p.jobs {
		if err := job(); err != nil {
			zap.L().Error("Sweep job failed", zap.Error(err))
		}
	}
}

// Submit blocks until a worker slot frees up or ctx is done.
func (p *Pool) Submit(ctx context.Context, job Job) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case p.jobs <- job:
		return nil
	}
}

func (p *Pool) Close() {
	select {
	case <-p.jobs:
	default:
		close(p.jobs)
	}
}
