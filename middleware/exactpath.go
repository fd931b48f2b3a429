package middleware

import (
	"context"

	"github.com/candango/interpose"
)

// ExactPath lets only requests for exactly the given path reach the wrapped
// handler. Everything else is declined with the miss signal, so several
// ExactPath pipelines can be combined with [interpose.FirstOf].
func ExactPath(path string) interpose.HTTPMiddleware {
	return func(next interpose.HTTPHandler) interpose.HTTPHandler {
		return interpose.HandlerFunc[*interpose.Request, *interpose.Response](
			func(ctx context.Context, req *interpose.Request) (*interpose.Response, error) {
				if req.Path != path {
					return nil, interpose.ErrUnhandled
				}
				return next.Handle(ctx, req)
			})
	}
}
