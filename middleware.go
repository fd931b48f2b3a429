// Copyright 2023-2025 Flavio Garcia
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package interpose

import (
	"context"
)

// Middleware represents a function that can wrap a Handler with additional
// functionality. It takes a Handler and returns a new Handler that includes
// the middleware's behavior. Middleware values are immutable and safe to
// share across concurrently handled requests; applying the same middleware
// to the same handler twice yields behaviorally identical handlers.
type Middleware[In, Out any] func(Handler[In, Out]) Handler[In, Out]

// Identity returns the neutral middleware: applying it returns the wrapped
// handler unchanged. It is a two-sided identity for [Middleware.Then] and
// [Chain].
func Identity[In, Out any]() Middleware[In, Out] {
	return func(h Handler[In, Out]) Handler[In, Out] {
		return h
	}
}

// Then sequences m before other. The resulting middleware wraps a handler so
// that m's incoming work runs first on the request path and other sees the
// handler already transformed by it. Then is associative:
// a.Then(b).Then(c) behaves exactly like a.Then(b.Then(c)).
func (m Middleware[In, Out]) Then(other Middleware[In, Out]) Middleware[In, Out] {
	return func(h Handler[In, Out]) Handler[In, Out] {
		return m(other(h))
	}
}

// Chain creates a chain of middleware to wrap around a handler. It applies
// each middleware in the order they are provided, so the first one is the
// outermost wrapper and runs first on the request path, with later ones
// seeing the earlier ones' effects.
func Chain[In, Out any](ms ...Middleware[In, Out]) Middleware[In, Out] {
	return func(h Handler[In, Out]) Handler[In, Out] {
		for i := len(ms) - 1; i >= 0; i-- {
			h = ms[i](h)
		}
		return h
	}
}

// OrElse recovers failures of the pipeline built by m by running the one
// built by other against the same original input. A miss is not a failure
// and is propagated untouched, so routing fallbacks keep working across an
// OrElse boundary.
func (m Middleware[In, Out]) OrElse(other Middleware[In, Out]) Middleware[In, Out] {
	return func(h Handler[In, Out]) Handler[In, Out] {
		primary := m(h)
		fallback := other(h)
		return HandlerFunc[In, Out](func(ctx context.Context, in In) (Out, error) {
			out, err := primary.Handle(ctx, in)
			if err != nil && !IsUnhandled(err) {
				return fallback.Handle(ctx, in)
			}
			return out, err
		})
	}
}

// When applies m only to inputs matching pred, leaving the rest to the bare
// handler. The predicate is evaluated exactly once per request, before any
// incoming work of m.
func (m Middleware[In, Out]) When(pred func(in In) bool) Middleware[In, Out] {
	return m.WhenFunc(func(_ context.Context, in In) (bool, error) {
		return pred(in), nil
	})
}

// WhenFunc is the effectful variant of [Middleware.When]: the predicate may
// suspend on the context and may fail, in which case the failure is reported
// without running either branch.
func (m Middleware[In, Out]) WhenFunc(
	pred func(ctx context.Context, in In) (bool, error)) Middleware[In, Out] {
	return IfThenElseFunc(pred, m, Identity[In, Out]())
}

// IfThenElse chooses between two middlewares based on a predicate over the
// input. There is no implicit identity branch; the caller supplies both.
func IfThenElse[In, Out any](pred func(in In) bool,
	whenTrue, whenFalse Middleware[In, Out]) Middleware[In, Out] {
	return IfThenElseFunc(func(_ context.Context, in In) (bool, error) {
		return pred(in), nil
	}, whenTrue, whenFalse)
}

// IfThenElseFunc chooses between two middlewares based on an effectful
// predicate over the input, evaluated exactly once per request.
func IfThenElseFunc[In, Out any](
	pred func(ctx context.Context, in In) (bool, error),
	whenTrue, whenFalse Middleware[In, Out]) Middleware[In, Out] {
	return func(h Handler[In, Out]) Handler[In, Out] {
		onTrue := whenTrue(h)
		onFalse := whenFalse(h)
		return HandlerFunc[In, Out](func(ctx context.Context, in In) (Out, error) {
			ok, err := pred(ctx, in)
			if err != nil {
				var zero Out
				return zero, err
			}
			if ok {
				return onTrue.Handle(ctx, in)
			}
			return onFalse.Handle(ctx, in)
		})
	}
}

// FailWith returns a constant middleware that ignores the wrapped handler
// and always fails with err.
func FailWith[In, Out any](err error) Middleware[In, Out] {
	return func(Handler[In, Out]) Handler[In, Out] {
		return Fail[In, Out](err)
	}
}

// SucceedWith returns a constant middleware that ignores the wrapped handler
// and always produces out.
func SucceedWith[In, Out any](out Out) Middleware[In, Out] {
	return func(Handler[In, Out]) Handler[In, Out] {
		return Succeed[In, Out](out)
	}
}

// ReplaceWith discards the wrapped handler in favor of h.
func ReplaceWith[In, Out any](h Handler[In, Out]) Middleware[In, Out] {
	return func(Handler[In, Out]) Handler[In, Out] {
		return h
	}
}
