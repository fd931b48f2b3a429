package middleware

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/candango/interpose"
)

// CORSConfig drives the CORS middleware. The zero value denies every
// cross-origin request.
type CORSConfig struct {
	// AllowedOrigins lists origins allowed to call the handler. The single
	// entry "*" allows any origin.
	AllowedOrigins []string
	// AllowedMethods and AllowedHeaders are advertised on preflight
	// responses.
	AllowedMethods []string
	AllowedHeaders []string
	// AllowCredentials advertises Access-Control-Allow-Credentials.
	AllowCredentials bool
	// MaxAge caps how long a preflight result may be cached.
	MaxAge time.Duration
}

func (c CORSConfig) allowsOrigin(origin string) bool {
	if origin == "" {
		return false
	}
	for _, allowed := range c.AllowedOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}
	return false
}

func (c CORSConfig) allowHeaders(resp *interpose.Response, origin string) {
	resp.Header.Set("Access-Control-Allow-Origin", origin)
	if c.AllowCredentials {
		resp.Header.Set("Access-Control-Allow-Credentials", "true")
	}
}

// CORS layers cross-origin resource sharing onto the wrapped handler.
// Preflight requests are answered directly, without invoking the handler;
// plain requests from an allowed origin get the allow headers patched onto
// whatever the handler produced.
func CORS(cfg CORSConfig) interpose.HTTPMiddleware {
	isPreflight := func(req *interpose.Request) bool {
		return req.Method == http.MethodOptions &&
			req.Header.Get("Access-Control-Request-Method") != ""
	}

	preflight := interpose.ReplaceWith[*interpose.Request, *interpose.Response](
		interpose.HandlerFunc[*interpose.Request, *interpose.Response](
			func(_ context.Context, req *interpose.Request) (*interpose.Response, error) {
				origin := req.Header.Get("Origin")
				if !cfg.allowsOrigin(origin) {
					return interpose.NewResponse(http.StatusForbidden), nil
				}
				resp := interpose.NewResponse(http.StatusNoContent)
				cfg.allowHeaders(resp, origin)
				if len(cfg.AllowedMethods) > 0 {
					resp.Header.Set("Access-Control-Allow-Methods",
						strings.Join(cfg.AllowedMethods, ", "))
				}
				if len(cfg.AllowedHeaders) > 0 {
					resp.Header.Set("Access-Control-Allow-Headers",
						strings.Join(cfg.AllowedHeaders, ", "))
				}
				if cfg.MaxAge > 0 {
					resp.Header.Set("Access-Control-Max-Age",
						strconv.Itoa(int(cfg.MaxAge.Seconds())))
				}
				return resp, nil
			}))

	simple := interpose.InterceptPatch(
		func(_ context.Context, req *interpose.Request) (string, error) {
			return req.Header.Get("Origin"), nil
		},
		func(_ context.Context, origin string, _ *interpose.Response) (interpose.Patch, error) {
			if !cfg.allowsOrigin(origin) {
				return interpose.Empty(), nil
			}
			patch := interpose.SetHeader("Access-Control-Allow-Origin", origin)
			if cfg.AllowCredentials {
				patch = patch.And(interpose.SetHeader(
					"Access-Control-Allow-Credentials", "true"))
			}
			return patch, nil
		},
	)

	return interpose.IfThenElse(isPreflight, preflight, simple)
}
