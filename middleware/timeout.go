package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/candango/interpose"
)

// Timeout cuts off pipelines that outlive d with a 504 response. It is
// [interpose.Timeout] specialized for HTTP pipelines, minting a fresh
// response per request so outer patches never touch a shared value.
func Timeout(d time.Duration) interpose.HTTPMiddleware {
	cutoff := interpose.ReplaceWith[*interpose.Request, *interpose.Response](
		interpose.HandlerFunc[*interpose.Request, *interpose.Response](
			func(context.Context, *interpose.Request) (*interpose.Response, error) {
				return interpose.TextResponse(http.StatusGatewayTimeout,
					"timeout"), nil
			}))
	deadline := interpose.Delay[*interpose.Request, *interpose.Response](d).
		Then(cutoff)
	return func(h interpose.HTTPHandler) interpose.HTTPHandler {
		return interpose.RaceHandlers(h, deadline(h))
	}
}
