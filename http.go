package interpose

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// HTTPHandler is the Handler instantiation the HTTP middleware library and
// the transport adapter work with.
type HTTPHandler = Handler[*Request, *Response]

// HTTPMiddleware transforms one HTTPHandler into another.
type HTTPMiddleware = Middleware[*Request, *Response]

// InterceptPatch builds an HTTP middleware from the two intercept phases in
// their most common HTTP form: incoming captures a state value from the
// request and outgoing turns that state plus the produced response into a
// [Patch], which is applied before the response leaves the pipeline.
func InterceptPatch[S any](
	incoming func(ctx context.Context, req *Request) (S, error),
	outgoing func(ctx context.Context, state S, resp *Response) (Patch, error),
) HTTPMiddleware {
	it := Intercept[S, *Request, *Response]{}
	if incoming != nil {
		it.Incoming = func(ctx context.Context, req *Request) (context.Context, S, error) {
			state, err := incoming(ctx, req)
			return ctx, state, err
		}
	}
	if outgoing != nil {
		it.Outgoing = func(ctx context.Context, state S, resp *Response) (*Response, error) {
			patch, err := outgoing(ctx, state, resp)
			if err != nil {
				return nil, err
			}
			patch.Apply(resp)
			return resp, nil
		}
	}
	return it.Middleware()
}

// maxBodySize bounds how much of a request body the adapter accepts.
const maxBodySize = 1 << 20

// FromHTTP converts a net/http request into a Request value. The query
// string is parsed into Query, leaving Path bare. A body larger than
// maxBodySize is an error, never a truncated read.
func FromHTTP(r *http.Request) (*Request, error) {
	req := &Request{
		Method:     r.Method,
		Path:       r.URL.Path,
		Query:      r.URL.Query(),
		Header:     r.Header.Clone(),
		RemoteAddr: r.RemoteAddr,
	}
	if req.Header == nil {
		req.Header = http.Header{}
	}
	if r.Body != nil {
		body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize+1))
		if err != nil {
			return nil, fmt.Errorf("error reading request body: %w", err)
		}
		if len(body) > maxBodySize {
			return nil, fmt.Errorf("request body larger than %d bytes",
				maxBodySize)
		}
		req.Body = body
	}
	return req, nil
}

// Adapt exposes a handler as a net/http handler. A declined input maps to
// 404 Not Found and a failure to 500 Internal Server Error; anything finer
// grained belongs to the pipeline itself.
func Adapt(h HTTPHandler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req, err := FromHTTP(r)
		if err != nil {
			http.Error(w, http.StatusText(http.StatusBadRequest),
				http.StatusBadRequest)
			return
		}
		resp, err := h.Handle(r.Context(), req)
		switch {
		case IsUnhandled(err):
			http.NotFound(w, r)
		case err != nil, resp == nil:
			http.Error(w, http.StatusText(http.StatusInternalServerError),
				http.StatusInternalServerError)
		default:
			// The status line is already on the wire if this fails, so
			// there is nothing left to report to the client.
			_ = resp.Write(w)
		}
	})
}
