package testrunner

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/go-kit/log"
	"github.com/stretchr/testify/assert"

	"github.com/candango/interpose"
)

type TargetRequest struct {
	Data TargetData `json:"data"`
}

type TargetData struct {
	Id   string `json:"id"`
	Type string `json:"type"`
}

type TargetResponse struct {
	Message string `json:"message"`
}

// TargetHandler routes a few fixed paths, standing in for a real
// application pipeline.
type TargetHandler struct {
	interpose.HTTPHandler
	log.Logger
}

func NewTargetHandler() *TargetHandler {
	return &TargetHandler{
		HTTPHandler: interpose.Collect(
			interpose.Rule[*interpose.Request, *interpose.Response]{
				Match: func(req *interpose.Request) bool {
					return req.Method == http.MethodGet &&
						req.Path == "/get"
				},
				Handler: interpose.HandlerFunc[*interpose.Request, *interpose.Response](getHandler),
			},
			interpose.Rule[*interpose.Request, *interpose.Response]{
				Match: func(req *interpose.Request) bool {
					return req.Method == http.MethodPost &&
						req.Path == "/post"
				},
				Handler: interpose.HandlerFunc[*interpose.Request, *interpose.Response](postHandler),
			},
			interpose.Rule[*interpose.Request, *interpose.Response]{
				Match: func(req *interpose.Request) bool {
					return req.Method == http.MethodPost &&
						req.Path == "/postJson"
				},
				Handler: interpose.HandlerFunc[*interpose.Request, *interpose.Response](postJsonHandler),
			},
		),
	}
}

func jsonResponse(status int, v any) (*interpose.Response, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	res := interpose.NewResponse(status)
	res.Header.Set("Content-Type", "application/json")
	res.Body = data
	return res, nil
}

func getHandler(_ context.Context, req *interpose.Request) (*interpose.Response, error) {
	if req.Query.Get("selector") == "bad" {
		return interpose.NewResponse(http.StatusBadRequest), nil
	}
	return jsonResponse(http.StatusOK, &TargetResponse{Message: "OK"})
}

func postHandler(_ context.Context, req *interpose.Request) (*interpose.Response, error) {
	if string(req.Body) == "bad" {
		return interpose.NewResponse(http.StatusBadRequest), nil
	}
	return jsonResponse(http.StatusOK, &TargetResponse{Message: "OK"})
}

func postJsonHandler(_ context.Context, req *interpose.Request) (*interpose.Response, error) {
	if strings.ToLower(req.Header.Get("Content-Type")) != "application/json" {
		return interpose.NewResponse(http.StatusBadRequest), nil
	}
	body := &TargetRequest{}
	if err := json.Unmarshal(req.Body, body); err != nil {
		return interpose.NewResponse(http.StatusInternalServerError), nil
	}
	return jsonResponse(http.StatusOK, &TargetResponse{
		Message: "id: " + body.Data.Id + ", type: " + body.Data.Type,
	})
}

func TestWithHandler(t *testing.T) {
	runner := NewRunner(t).WithHandler(NewTargetHandler())

	t.Run("Get Request tests", func(t *testing.T) {
		t.Run("Unrouted method misses", func(t *testing.T) {
			_, err := runner.WithPath("/post").Get()
			assert.True(t, interpose.IsUnhandled(err))
		})

		t.Run("Request OK", func(t *testing.T) {
			values := url.Values{}
			values.Add("selector", "ok")
			res, err := runner.WithPath("/get").WithValues(values).Get()
			if err != nil {
				t.Error(err)
			}
			jsonBody := &TargetResponse{}
			BodyAsJson(t, res, jsonBody)
			assert.Equal(t, http.StatusOK, res.Status)
			assert.Equal(t, jsonBody.Message, "OK")
		})

		t.Run("Bad request", func(t *testing.T) {
			values := url.Values{}
			values.Add("selector", "bad")
			res, err := runner.WithPath("/get").WithValues(values).Get()
			if err != nil {
				t.Error(err)
			}
			assert.Equal(t, http.StatusBadRequest, res.Status)
		})
	})

	t.Run("Post Request tests", func(t *testing.T) {
		runner := NewRunner(t).WithHandler(NewTargetHandler()).
			WithPath("/post")

		t.Run("Request OK", func(t *testing.T) {
			res, err := runner.WithStringBody("fine").Post()
			if err != nil {
				t.Error(err)
			}
			assert.Equal(t, http.StatusOK, res.Status)
			assert.Equal(t, runner.method, http.MethodGet,
				"verb helpers restore the previous method")
		})

		t.Run("Bad request", func(t *testing.T) {
			res, err := runner.WithStringBody("bad").Post()
			if err != nil {
				t.Error(err)
			}
			assert.Equal(t, http.StatusBadRequest, res.Status)
		})
	})

	t.Run("Post Json Request tests", func(t *testing.T) {
		runner := NewRunner(t).WithHandler(NewTargetHandler()).
			WithPath("/postJson").
			WithHeader("Content-Type", "application/json")

		t.Run("Request OK", func(t *testing.T) {
			body := &TargetRequest{
				Data: TargetData{Id: "1", Type: "target"},
			}
			res, err := runner.WithJsonBody(body).Post()
			if err != nil {
				t.Error(err)
			}
			jsonBody := &TargetResponse{}
			BodyAsJson(t, res, jsonBody)
			assert.Equal(t, http.StatusOK, res.Status)
			assert.Equal(t, "id: 1, type: target", jsonBody.Message)
		})
	})

	t.Run("Values populate the query, never the path", func(t *testing.T) {
		var got *interpose.Request
		capture := interpose.HandlerFunc[*interpose.Request, *interpose.Response](
			func(_ context.Context, req *interpose.Request) (*interpose.Response, error) {
				got = req
				return interpose.NewResponse(http.StatusOK), nil
			})
		values := url.Values{}
		values.Add("a", "b")
		_, err := NewRunner(t).WithHandler(capture).
			WithPath("/get").WithValues(values).Get()
		assert.NoError(t, err)
		assert.Equal(t, "/get", got.Path)
		assert.Equal(t, "b", got.Query.Get("a"))
	})

	t.Run("Cookies reach the pipeline", func(t *testing.T) {
		seen := ""
		echo := interpose.HandlerFunc[*interpose.Request, *interpose.Response](
			func(_ context.Context, req *interpose.Request) (*interpose.Response, error) {
				if c, err := req.Cookie("flavor"); err == nil {
					seen = c.Value
				}
				return interpose.NewResponse(http.StatusOK), nil
			})
		_, err := NewRunner(t).WithHandler(echo).
			WithCookie(&http.Cookie{Name: "flavor", Value: "lemon"}).Get()
		assert.NoError(t, err)
		assert.Equal(t, "lemon", seen)
	})
}
