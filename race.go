package interpose

import (
	"context"
	"time"
)

// RaceHandlers runs both handlers concurrently against the same input. The
// first one to finish wins, success or failure, and the loser's context is
// cancelled so it can release whatever it holds. The result channel is
// buffered, so the losing goroutine never leaks.
func RaceHandlers[In, Out any](a, b Handler[In, Out]) Handler[In, Out] {
	return HandlerFunc[In, Out](func(ctx context.Context, in In) (Out, error) {
		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		type result struct {
			out Out
			err error
		}
		results := make(chan result, 2)
		run := func(h Handler[In, Out]) {
			out, err := h.Handle(ctx, in)
			results <- result{out: out, err: err}
		}
		go run(a)
		go run(b)

		first := <-results
		return first.out, first.err
	})
}

// Race runs the pipeline built by m concurrently with the one built by
// other, both wrapping the same handler; see [RaceHandlers].
func (m Middleware[In, Out]) Race(other Middleware[In, Out]) Middleware[In, Out] {
	return func(h Handler[In, Out]) Handler[In, Out] {
		return RaceHandlers(m(h), other(h))
	}
}

// Delay postpones the wrapped handler by d. Cancelling the context during
// the wait reports the context's error without invoking the handler.
func Delay[In, Out any](d time.Duration) Middleware[In, Out] {
	return func(h Handler[In, Out]) Handler[In, Out] {
		return HandlerFunc[In, Out](func(ctx context.Context, in In) (Out, error) {
			timer := time.NewTimer(d)
			defer timer.Stop()
			select {
			case <-timer.C:
				return h.Handle(ctx, in)
			case <-ctx.Done():
				var zero Out
				return zero, ctx.Err()
			}
		})
	}
}

// Timeout races the wrapped handler against a pipeline that waits for d and
// then produces out. A handler slower than d loses the race, gets its
// context cancelled and its output discarded.
func Timeout[In, Out any](d time.Duration, out Out) Middleware[In, Out] {
	deadline := Delay[In, Out](d).Then(SucceedWith[In, Out](out))
	return func(h Handler[In, Out]) Handler[In, Out] {
		return RaceHandlers(h, deadline(h))
	}
}
