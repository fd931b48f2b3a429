package interpose

import "net/http"

// Response is the value handlers produce and patches mutate. It is built in
// memory and only written to the wire by the transport adapter, which is
// what makes deferred patching possible.
type Response struct {
	Status  int
	Header  http.Header
	Cookies []*http.Cookie
	Body    []byte
}

// NewResponse creates a response with the given status and an empty header
// collection.
func NewResponse(status int) *Response {
	return &Response{
		Status: status,
		Header: http.Header{},
	}
}

// TextResponse creates a plain text response.
func TextResponse(status int, body string) *Response {
	resp := NewResponse(status)
	resp.Header.Set("Content-Type", "text/plain; charset=utf-8")
	resp.Body = []byte(body)
	return resp
}

// Cookie returns the first response cookie with the given name, or nil.
func (r *Response) Cookie(name string) *http.Cookie {
	for _, c := range r.Cookies {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Write encodes the response onto a net/http response writer: headers and
// cookies first, then the status line, then the body.
func (r *Response) Write(w http.ResponseWriter) error {
	for k, vs := range r.Header {
		for _, v := range vs {
			w.Header().Add(k, v)
		}
	}
	for _, c := range r.Cookies {
		http.SetCookie(w, c)
	}
	status := r.Status
	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)
	_, err := w.Write(r.Body)
	return err
}
