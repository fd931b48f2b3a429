// Package testrunner facilitates testing of interpose pipelines. A runner
// builds requests fluently, feeds them to a handler and hands the response
// back, without going through a network socket.
package testrunner

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/candango/interpose"
)

// Runner drives an interpose HTTP handler with configurable requests.
//
// It allows for configuring various aspects of the request, such as the
// method, path, headers, cookies, body and URL values.
type Runner struct {
	// t represents the testing instance.
	t *testing.T

	// handler represents the pipeline to be tested.
	handler interpose.HTTPHandler

	// method represents the HTTP method to be tested (e.g., "GET", "POST",
	// etc.).
	method string

	// path represents the path to be tested.
	path string

	// header represents the header of the request.
	header http.Header

	// cookies are attached to the request's Cookie header before the run.
	cookies []*http.Cookie

	// body represents the body of the request.
	body []byte

	// values represents the URL values to be tested.
	values url.Values
}

// NewRunner creates a new Runner, equipped with empty headers and default
// HTTP method as GET. The root path is also set to its default value '/'.
func NewRunner(t *testing.T) *Runner {
	r := &Runner{}
	r.header = http.Header{}
	r.method = http.MethodGet
	r.path = "/"
	r.t = t
	r.values = url.Values{}
	return r
}

// WithHandler sets the pipeline to be executed by the runner.
func (r *Runner) WithHandler(h interpose.HTTPHandler) *Runner {
	r.handler = h
	return r
}

// WithMethod sets the method to be used by the runner.
func (r *Runner) WithMethod(method string) *Runner {
	r.method = strings.ToUpper(method)
	return r
}

// WithPath sets the path to be executed by the runner.
func (r *Runner) WithPath(path string) *Runner {
	r.path = path
	return r
}

// WithHeader adds a key/value pair to be added to the header.
func (r *Runner) WithHeader(key string, value string) *Runner {
	r.header.Add(key, value)
	return r
}

// WithCookie attaches a cookie to the request.
func (r *Runner) WithCookie(c *http.Cookie) *Runner {
	r.cookies = append(r.cookies, c)
	return r
}

// WithBody sets the request body.
func (r *Runner) WithBody(body []byte) *Runner {
	r.body = body
	return r
}

// WithStringBody sets the request body using a string.
func (r *Runner) WithStringBody(stringBody string) *Runner {
	return r.WithBody([]byte(stringBody))
}

// WithJsonBody sets the request body marshalling the given value.
func (r *Runner) WithJsonBody(typedBody any) *Runner {
	marshaled, err := json.Marshal(typedBody)
	if err != nil {
		r.t.Error(err)
		r.t.FailNow()
	}
	return r.WithBody(marshaled)
}

// WithValues sets the url values to be used by the runner.
func (r *Runner) WithValues(values url.Values) *Runner {
	r.values = values
	return r
}

// Run builds the configured request and executes it against the handler,
// returning the response and any pipeline error.
func (r *Runner) Run() (*interpose.Response, error) {
	if r.handler == nil {
		r.t.Error("no handler set on the runner")
		r.t.FailNow()
	}
	req := interpose.NewRequest(r.method, r.path)
	for k, vs := range r.values {
		for _, v := range vs {
			req.Query.Add(k, v)
		}
	}
	for k, vs := range r.header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	for _, c := range r.cookies {
		req.AddCookie(c)
	}
	req.Body = r.body
	return r.handler.Handle(context.Background(), req)
}

// resetMethod resets the HTTP method of the Runner to the specified
// previous method if it is different from the current method.
func (r *Runner) resetMethod(previous string) {
	if previous != r.method {
		r.method = previous
	}
}

// Delete executes the request with the HTTP DELETE method.
//
// It will reset to the previous method in case it wasn't http.MethodDelete.
func (r *Runner) Delete() (*interpose.Response, error) {
	previousMethod := r.method
	r.method = http.MethodDelete
	defer r.resetMethod(previousMethod)
	return r.Run()
}

// Get executes the request with the HTTP GET method.
//
// It will reset to the previous method in case it wasn't http.MethodGet.
func (r *Runner) Get() (*interpose.Response, error) {
	previousMethod := r.method
	r.method = http.MethodGet
	defer r.resetMethod(previousMethod)
	return r.Run()
}

// Head executes the request with the HTTP HEAD method.
//
// It will reset to the previous method in case it wasn't http.MethodHead.
func (r *Runner) Head() (*interpose.Response, error) {
	previousMethod := r.method
	r.method = http.MethodHead
	defer r.resetMethod(previousMethod)
	return r.Run()
}

// Patch executes the request with the HTTP PATCH method.
//
// It will reset to the previous method in case it wasn't http.MethodPatch.
func (r *Runner) Patch() (*interpose.Response, error) {
	previousMethod := r.method
	r.method = http.MethodPatch
	defer r.resetMethod(previousMethod)
	return r.Run()
}

// Post executes the request with the HTTP POST method.
//
// It will reset to the previous method in case it wasn't http.MethodPost.
func (r *Runner) Post() (*interpose.Response, error) {
	previousMethod := r.method
	r.method = http.MethodPost
	defer r.resetMethod(previousMethod)
	return r.Run()
}

// Put executes the request with the HTTP PUT method.
//
// It will reset to the previous method in case it wasn't http.MethodPut.
func (r *Runner) Put() (*interpose.Response, error) {
	previousMethod := r.method
	r.method = http.MethodPut
	defer r.resetMethod(previousMethod)
	return r.Run()
}

// BodyAsString returns the body of a response as string.
func BodyAsString(t *testing.T, res *interpose.Response) string {
	return string(res.Body)
}

// BodyAsJson unmarshals the body of a response to json.
func BodyAsJson(t *testing.T, res *interpose.Response, jsonBody any) {
	err := json.Unmarshal(res.Body, jsonBody)
	if err != nil {
		t.Error(err)
	}
}
