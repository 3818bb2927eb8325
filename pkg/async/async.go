package async

import (
	"sync"
	"time"

	"context"
)

// Future represents the result of a supervised background task.
type Future[T any] struct {
	result T
	err    error
	once   sync.Once
	done   chan struct{}
}

// Run executes fn on its own goroutine and returns a Future for its
// completion. The goroutine captures its own result and error; panics
// are not recovered, per the usual Go convention.
//
// A pre-canceled context short-circuits without invoking fn.
func Run[T any](ctx context.Context, fn func(context.Context) (T, error)) *Future[T] {
	f := &Future[T]{done: make(chan struct{})}

	go func() {
		defer close(f.done)

		select {
		case <-ctx.Done():
			f.once.Do(func() { f.err = ctx.Err() })
			return
		default:
		}

		res, err := fn(ctx)
		f.once.Do(func() {
			f.result = res
			f.err = err
		})
	}()

	return f
}

// Await blocks until the task completes and returns its result and error.
func (f *Future[T]) Await() (T, error) {
	<-f.done
	return f.result, f.err
}

// AwaitWithTimeout waits for completion up to the given duration.
// Returns ErrTimeout if the task is still running when it elapses.
func (f *Future[T]) AwaitWithTimeout(timeout time.Duration) (T, error) {
	select {
	case <-f.done:
		return f.result, f.err
	case <-time.After(timeout):
		var zero T
		return zero, ErrTimeout
	}
}

// Done returns a channel closed when the task completes. Useful for
// select-based supervision.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// IsComplete reports completion without blocking.
func (f *Future[T]) IsComplete() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}
