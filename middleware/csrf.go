package middleware

import (
	"context"
	"crypto/subtle"
	"net/http"

	"github.com/candango/interpose"
	"github.com/candango/interpose/security"
)

const (
	// DefaultCSRFCookie is the cookie the generator sets.
	DefaultCSRFCookie = "csrf-token"
	// DefaultCSRFHeader is the header the validator compares against.
	DefaultCSRFHeader = "X-CSRF-Token"
)

// csrfTokenBytes sizes the random token before hex encoding.
const csrfTokenBytes = 32

// CSRFGenerate attaches a random token cookie to every response. A request
// already carrying the cookie keeps its token, so the generator is
// idempotent across a browsing session.
func CSRFGenerate(cookieName string) interpose.HTTPMiddleware {
	return interpose.InterceptPatch(
		func(_ context.Context, req *interpose.Request) (string, error) {
			if c, err := req.Cookie(cookieName); err == nil {
				return c.Value, nil
			}
			return security.Token(csrfTokenBytes)
		},
		func(_ context.Context, token string, _ *interpose.Response) (interpose.Patch, error) {
			return interpose.AddCookie(&http.Cookie{
				Name:  cookieName,
				Value: token,
				Path:  "/",
			}), nil
		},
	)
}

// CSRFValidate compares the request header token against the request's own
// cookie token and forces a fixed 403 response on mismatch or absence. The
// check happens entirely before the wrapped handler, which never runs for a
// rejected request.
func CSRFValidate(cookieName, headerName string) interpose.HTTPMiddleware {
	pred := func(req *interpose.Request) bool {
		header := req.Header.Get(headerName)
		if header == "" {
			return false
		}
		cookie, err := req.Cookie(cookieName)
		if err != nil {
			return false
		}
		return subtle.ConstantTimeCompare(
			[]byte(header), []byte(cookie.Value)) == 1
	}
	return interpose.IfThenElse(pred, identity(), forbidden())
}
