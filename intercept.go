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

// Intercept is the two-phase primitive behind response-aware middleware.
// For each request the incoming phase runs first and captures a state value
// of type S from the input; the wrapped handler is invoked next; the
// outgoing phase then combines the captured state with the handler's output
// to produce the final output.
//
// The state is a local of the composed handler's invocation: it lives for a
// single request and is never visible to another request, so no
// synchronization is needed around it.
type Intercept[S, In, Out any] struct {
	// Incoming runs before the wrapped handler. It may derive a new context
	// for the remaining phases (return ctx unchanged when there is nothing
	// to add). Returning an error skips the handler entirely: ErrUnhandled
	// declines the input, any other error fails the request.
	Incoming func(ctx context.Context, in In) (context.Context, S, error)

	// Outgoing runs after the wrapped handler succeeded. It receives the
	// state captured by Incoming together with the handler's output and
	// produces the final output. Errors here propagate like handler errors.
	// When the handler itself fails or declines, Outgoing never runs.
	Outgoing func(ctx context.Context, state S, out Out) (Out, error)
}

// Apply wraps next with the intercept's two phases. A nil Incoming behaves
// as a no-op capture and a nil Outgoing passes the handler output through.
func (it Intercept[S, In, Out]) Apply(next Handler[In, Out]) Handler[In, Out] {
	return HandlerFunc[In, Out](func(ctx context.Context, in In) (Out, error) {
		var zero Out
		var state S
		if it.Incoming != nil {
			c, s, err := it.Incoming(ctx, in)
			if err != nil {
				return zero, err
			}
			if c != nil {
				ctx = c
			}
			state = s
		}
		out, err := next.Handle(ctx, in)
		if err != nil {
			return zero, err
		}
		if it.Outgoing == nil {
			return out, nil
		}
		return it.Outgoing(ctx, state, out)
	})
}

// Middleware returns the intercept as a composable middleware value.
func (it Intercept[S, In, Out]) Middleware() Middleware[In, Out] {
	return it.Apply
}
