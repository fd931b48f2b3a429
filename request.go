package interpose

import (
	"net/http"
	"net/url"
)

// Request is the transport-independent view of an incoming HTTP request that
// handlers and middleware operate on. Path carries no query string; the
// parsed query lives in Query. Header and cookie wire parsing is delegated
// to net/http; the request body, when present, has already been read into
// Body by the transport adapter.
type Request struct {
	Method     string
	Path       string
	Query      url.Values
	Header     http.Header
	Body       []byte
	RemoteAddr string
}

// NewRequest creates a request with empty query and header collections.
func NewRequest(method, path string) *Request {
	return &Request{
		Method: method,
		Path:   path,
		Query:  url.Values{},
		Header: http.Header{},
	}
}

// Cookie returns the named cookie sent with the request or
// http.ErrNoCookie when it is absent.
func (r *Request) Cookie(name string) (*http.Cookie, error) {
	hr := http.Request{Header: r.Header}
	return hr.Cookie(name)
}

// AddCookie appends a cookie to the request's Cookie header.
func (r *Request) AddCookie(c *http.Cookie) {
	hr := http.Request{Header: r.Header}
	hr.AddCookie(c)
}

// BasicAuth returns the username and password from the request's
// Authorization header, if the request uses HTTP Basic Authentication.
func (r *Request) BasicAuth() (username, password string, ok bool) {
	hr := http.Request{Header: r.Header}
	return hr.BasicAuth()
}
