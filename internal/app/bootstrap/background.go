// internal/app/bootstrap/background.go
package bootstrap

import (
	"context"
	"sync"
)

// Background tracks goroutines started while the handler is built so that
// Shutdown can stop them.
type Background struct {
	mu    sync.Mutex
	stops []context.CancelFunc
	wg    sync.WaitGroup
}

func NewBackground() *Background {
	return &Background{}
}

// Go runs fn in its own goroutine. The context passed to fn ends on Stop.
func (b *Background) Go(fn func(ctx context.Context)) {
	ctx, cancel := context.WithCancel(context.Background())
	b.mu.Lock()
	b.stops = append(b.stops, cancel)
	b.mu.Unlock()

	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		fn(ctx)
	}()
}

// Stop cancels every goroutine started with Go and waits for them to
// return, or for ctx to end.
func (b *Background) Stop(ctx context.Context) error {
	b.mu.Lock()
	stops := b.stops
	b.stops = nil
	b.mu.Unlock()
	for _, cancel := range stops {
		cancel()
	}

	done := make(chan struct{})
	go func() {
		b.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
