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

package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/candango/interpose"
	"github.com/candango/interpose/session"
)

func newCookie(name string, value string, age time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(age.Seconds()),
		HttpOnly: false,
		Secure:   false,
	}
}

// sessionState correlates the session loaded on the incoming phase with the
// save and cookie work on the outgoing phase of the same request.
type sessionState struct {
	sess  *session.Session
	isNew bool
}

// Sessioned loads the request's session before the wrapped handler runs and
// saves it back afterwards. The handler reaches the session through
// [session.FromContext]. A request without a valid session cookie gets a
// fresh session, delivered as a cookie on the response.
func Sessioned(e *session.StoreEngine) interpose.HTTPMiddleware {
	it := interpose.Intercept[*sessionState, *interpose.Request, *interpose.Response]{
		Incoming: func(ctx context.Context,
			req *interpose.Request) (context.Context, *sessionState, error) {
			state := &sessionState{}
			id := ""
			cookie, err := req.Cookie(e.Properties().Name)
			if err != nil {
				state.isNew = true
			} else {
				id = cookie.Value
				ok, err := e.SessionExists(ctx, id)
				if err != nil {
					return ctx, nil, err
				}
				state.isNew = !ok
			}
			if state.isNew {
				id = e.NewId()
			}

			s, err := e.GetSession(ctx, id)
			if err != nil {
				return ctx, nil, err
			}
			state.sess = &s
			return session.NewContext(ctx, state.sess), state, nil
		},
		Outgoing: func(ctx context.Context, state *sessionState,
			resp *interpose.Response) (*interpose.Response, error) {
			err := e.SaveSession(ctx, state.sess.Id, *state.sess)
			if err != nil {
				return nil, err
			}
			if state.isNew {
				patch := interpose.AddCookie(newCookie(e.Properties().Name,
					state.sess.Id, e.Properties().AgeLimit))
				patch.Apply(resp)
			}
			return resp, nil
		},
	}
	return it.Middleware()
}
