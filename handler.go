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
	"errors"
)

// ErrUnhandled signals that a handler declines to act on an input. It is a
// pass/miss signal, not a failure: fallback constructs such as [FirstOf] move
// on to the next handler when they see it, while real errors stop the scan
// and propagate. The two must never be conflated.
var ErrUnhandled = errors.New("input not handled")

// IsUnhandled reports whether err carries the miss signal, possibly wrapped.
func IsUnhandled(err error) bool {
	return errors.Is(err, ErrUnhandled)
}

// Handler processes an input of type In and produces an output of type Out.
// A handler may fail with an error or decline the input by returning
// [ErrUnhandled]. The context carries request-scoped values, deadlines and
// cancellation; a handler must not retain it beyond the call.
type Handler[In, Out any] interface {
	Handle(ctx context.Context, in In) (Out, error)
}

// HandlerFunc adapts an ordinary function to the Handler interface.
type HandlerFunc[In, Out any] func(ctx context.Context, in In) (Out, error)

// Handle calls f(ctx, in).
func (f HandlerFunc[In, Out]) Handle(ctx context.Context, in In) (Out, error) {
	return f(ctx, in)
}

// Succeed returns a handler that ignores its input and always produces out.
func Succeed[In, Out any](out Out) Handler[In, Out] {
	return HandlerFunc[In, Out](func(context.Context, In) (Out, error) {
		return out, nil
	})
}

// Fail returns a handler that always fails with err.
func Fail[In, Out any](err error) Handler[In, Out] {
	return HandlerFunc[In, Out](func(context.Context, In) (Out, error) {
		var zero Out
		return zero, err
	})
}

// Unhandled returns a handler that declines every input.
func Unhandled[In, Out any]() Handler[In, Out] {
	return Fail[In, Out](ErrUnhandled)
}

// FirstOf tries each handler in order, moving to the next one only when the
// current one declines the input. A failure stops the scan and propagates.
// When every handler declines, so does the composite.
func FirstOf[In, Out any](handlers ...Handler[In, Out]) Handler[In, Out] {
	return HandlerFunc[In, Out](func(ctx context.Context, in In) (Out, error) {
		var zero Out
		for _, h := range handlers {
			out, err := h.Handle(ctx, in)
			if IsUnhandled(err) {
				continue
			}
			return out, err
		}
		return zero, ErrUnhandled
	})
}
