package service

import (
	"context"
	"sync"
)

// forEachBounded runs fn for every index in [0, n) through a worker pool of
// the configured size. Each invocation is independent; fn is responsible for
// its own error degradation, so the fan-out itself never fails.
func (s *AnalyticsService) forEachBounded(ctx context.Context, n int, fn func(ctx context.Context, i int)) {
	workers := s.config.Analytics.FetchConcurrency
	if workers < 1 {
		workers = 1
	}

	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()
			fn(ctx, i)
		}(i)
	}
	wg.Wait()
}
