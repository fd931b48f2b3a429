package interpose

import "context"

// Rule pairs a predicate with the handler to run when it matches.
type Rule[In, Out any] struct {
	Match   func(in In) bool
	Handler Handler[In, Out]
}

// Collect builds a partial handler from an ordered rule list. The first rule
// whose predicate matches wins; rules after a matching one are never
// consulted, so a duplicated predicate is dead code and should be caught in
// review, not merged at runtime. When no rule matches, the input is declined
// with [ErrUnhandled], which lets collected handlers chain through [FirstOf].
func Collect[In, Out any](rules ...Rule[In, Out]) Handler[In, Out] {
	return HandlerFunc[In, Out](func(ctx context.Context, in In) (Out, error) {
		for _, rule := range rules {
			if rule.Match(in) {
				return rule.Handler.Handle(ctx, in)
			}
		}
		var zero Out
		return zero, ErrUnhandled
	})
}
