package middleware

import (
	"context"
	"time"

	"github.com/candango/interpose"
	"github.com/candango/interpose/logger"
)

// Logging creates a logging middleware with a custom logger. Severity
// follows the outcome: server errors and failed pipelines log as errors,
// client errors as warnings, everything else as plain info.
func Logging(log logger.Logger) interpose.HTTPMiddleware {
	if log == nil {
		log = &logger.StandardLogger{}
	}
	return func(next interpose.HTTPHandler) interpose.HTTPHandler {
		return interpose.HandlerFunc[*interpose.Request, *interpose.Response](
			func(ctx context.Context, req *interpose.Request) (*interpose.Response, error) {
				start := time.Now()
				resp, err := next.Handle(ctx, req)
				f := "[02/01/2006:03:04:05 07]"
				s := time.Now().Format(f)
				elapsed := time.Since(start).Microseconds()
				switch {
				case interpose.IsUnhandled(err):
					log.Warnf("%s %s miss %s %d", s, req.Method, req.Path,
						elapsed)
				case err != nil:
					log.Errorf("%s %s error %s %v %d", s, req.Method,
						req.Path, err, elapsed)
				case resp.Status >= 500:
					log.Errorf("%s %s %d %s %d", s, req.Method, resp.Status,
						req.Path, elapsed)
				case resp.Status >= 400:
					log.Warnf("%s %s %d %s %d", s, req.Method, resp.Status,
						req.Path, elapsed)
				default:
					log.Printf("%s %s %d %s %d", s, req.Method, resp.Status,
						req.Path, elapsed)
				}
				return resp, err
			})
	}
}
