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

// Package middleware provides ready-made HTTP middleware built purely on
// the interpose combinators.
package middleware

import (
	"context"
	"crypto/subtle"
	"net/http"

	"github.com/candango/interpose"
)

// Credentials carries the username/password pair extracted from a request's
// Basic authorization header.
type Credentials struct {
	Username string
	Password string
}

func identity() interpose.HTTPMiddleware {
	return interpose.Identity[*interpose.Request, *interpose.Response]()
}

func forbidden() interpose.HTTPMiddleware {
	return interpose.ReplaceWith[*interpose.Request, *interpose.Response](
		interpose.HandlerFunc[*interpose.Request, *interpose.Response](
			func(context.Context, *interpose.Request) (*interpose.Response, error) {
				return interpose.NewResponse(http.StatusForbidden), nil
			}))
}

func forbiddenBasic() interpose.HTTPMiddleware {
	return interpose.ReplaceWith[*interpose.Request, *interpose.Response](
		interpose.HandlerFunc[*interpose.Request, *interpose.Response](
			func(context.Context, *interpose.Request) (*interpose.Response, error) {
				resp := interpose.NewResponse(http.StatusForbidden)
				resp.Header.Set("WWW-Authenticate", "Basic")
				return resp, nil
			}))
}

// BasicAuth gates the wrapped handler behind a fixed username/password
// pair. Requests carrying matching credentials pass through untouched; the
// rest get a fixed 403 response with a WWW-Authenticate header, never an
// error.
func BasicAuth(username, password string) interpose.HTTPMiddleware {
	return BasicAuthFunc(func(_ context.Context, c Credentials) (bool, error) {
		userOk := subtle.ConstantTimeCompare(
			[]byte(c.Username), []byte(username)) == 1
		passOk := subtle.ConstantTimeCompare(
			[]byte(c.Password), []byte(password)) == 1
		return userOk && passOk, nil
	})
}

// BasicAuthFunc gates the wrapped handler behind an effectful credential
// verifier, letting the check hit a database or a remote identity service.
// A verifier error fails the request; a negative verdict and a missing or
// malformed header both produce the fixed 403 response.
func BasicAuthFunc(
	verify func(ctx context.Context, c Credentials) (bool, error)) interpose.HTTPMiddleware {
	pred := func(ctx context.Context, req *interpose.Request) (bool, error) {
		username, password, ok := req.BasicAuth()
		if !ok {
			return false, nil
		}
		return verify(ctx, Credentials{
			Username: username,
			Password: password,
		})
	}
	return interpose.IfThenElseFunc(pred, identity(), forbiddenBasic())
}
