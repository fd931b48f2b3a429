package middleware

import (
	"context"

	"github.com/candango/interpose"
	"github.com/candango/interpose/security"
)

// SignCookies appends an HMAC signature to the value of every outgoing
// response cookie, so a returning client cannot tamper with them without
// detection. Place it after any middleware that sets cookies, which in a
// [interpose.Chain] means listing it first.
func SignCookies(secret []byte) interpose.HTTPMiddleware {
	it := interpose.Intercept[struct{}, *interpose.Request, *interpose.Response]{
		Outgoing: func(_ context.Context, _ struct{},
			resp *interpose.Response) (*interpose.Response, error) {
			for _, c := range resp.Cookies {
				c.Value = security.Sign(secret, c.Value)
			}
			return resp, nil
		},
	}
	return it.Middleware()
}

// SignedCookie reads a request cookie written through [SignCookies],
// returning its original value. It reports false when the cookie is absent
// or its signature does not verify.
func SignedCookie(secret []byte, req *interpose.Request, name string) (string, bool) {
	c, err := req.Cookie(name)
	if err != nil {
		return "", false
	}
	return security.Verify(secret, c.Value)
}
