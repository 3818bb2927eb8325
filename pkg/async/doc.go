// Package async provides a small supervised background task primitive.
//
// Run starts a function on its own goroutine and hands back a Future
// carrying its eventual result and error. Callers that must not block on
// the task (startup warm-ups, best-effort maintenance) can ignore the
// future entirely; callers that need the outcome await it, optionally
// with a timeout.
//
//	future := async.Run(ctx, func(ctx context.Context) (int, error) {
//		return expensiveCount(ctx)
//	})
//
//	n, err := future.AwaitWithTimeout(5 * time.Second)
package async
