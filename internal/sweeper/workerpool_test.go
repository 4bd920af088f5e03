package sweeper

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPool(t *testing.T) {
	tests := []struct {
		name           string
		numJobs        int
		numWorkers     int
		expectedErrors int
	}{
		{
			name:           "All jobs execute",
			numJobs:        5,
			numWorkers:     2,
			expectedErrors: 0,
		},
		{
			name:           "Failing job does not block the rest",
			numJobs:        2,
			numWorkers:     2,
			expectedErrors: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pool := NewPool(tt.numWorkers)
			defer pool.Close()

			var mu sync.Mutex
			var executed int
			var failed int
			var wg sync.WaitGroup

			for i := 0; i < tt.numJobs; i++ {
				wg.Add(1)
				job := func(i int) Job {
					return func() error {
						defer wg.Done()
						if i == tt.numJobs-1 && tt.expectedErrors > 0 {
							mu.Lock()
							failed++
							mu.Unlock()
							return assert.AnError
						}
						time.Sleep(50 * time.Millisecond)
						mu.Lock()
						executed++
						mu.Unlock()
						return nil
					}
				}(i)

				err := pool.Submit(context.Background(), job)
				require.NoError(t, err, "failed to submit job to pool")
			}

			wg.Wait()

			assert.Equal(t, tt.numJobs-tt.expectedErrors, executed, "number of executed jobs does not match")
			assert.Equal(t, tt.expectedErrors, failed, "number of failed jobs does not match")
		})
	}
}

func TestPool_SubmitCanceledContext(t *testing.T) {
	pool := NewPool(1)
	defer pool.Close()

	// Occupy the worker and the queue slot so a further Submit has to wait.
	blocker := make(chan struct{})
	require.NoError(t, pool.Submit(context.Background(), func() error {
		<-blocker
		return nil
	}))
	require.NoError(t, pool.Submit(context.Background(), func() error {
		<-blocker
		return nil
	}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := pool.Submit(ctx, func() error { return nil })
	assert.ErrorIs(t, err, context.Canceled)

	close(blocker)
}
