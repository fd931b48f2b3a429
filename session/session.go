package session

import (
	"context"
	"encoding/json"
	"errors"
)

// DefaultName is the default name for session cookies.
const DefaultName = "INTERPOSESESSID"

type contextKey string

// sessionKey is the context key for storing the session data.
const sessionKey contextKey = "interpose-session"

// NewContext returns a context carrying the session.
func NewContext(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionKey, s)
}

// FromContext retrieves the session from the context.
func FromContext(ctx context.Context) (*Session, error) {
	s := ctx.Value(sessionKey)
	if s == nil {
		return nil, errors.New("session value not found into the context")
	}
	return s.(*Session), nil
}

// Encoder is an interface for encoding and decoding session data.
type Encoder interface {
	Encode(any) ([]byte, error)
	Decode([]byte, any) error
}

// JsonEncoder implements the Encoder interface using JSON serialization.
type JsonEncoder struct {
}

// Encode serializes the given value into JSON.
func (e *JsonEncoder) Encode(v any) ([]byte, error) {
	return json.Marshal(v)
}

// Decode deserializes the JSON data into the provided value.
func (e *JsonEncoder) Decode(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

// sessionDestroyedError is an error returned when trying to use a destroyed
// session.
var sessionDestroyedError error = errors.New("the session is already " +
	"destroyed, renew the session before using it")

// Session represents a user session with data storage capabilities.
type Session struct {
	Id        string
	Changed   bool
	Data      map[string]any
	Destroyed bool
}

// Clear removes all data from the session and marks it as changed.
func (s *Session) Clear() {
	s.Data = map[string]any{}
	s.Changed = true
}

// Delete removes a key-value pair from the session data.
func (s *Session) Delete(key string) error {
	if s.Destroyed {
		return sessionDestroyedError
	}
	delete(s.Data, key)
	s.Changed = true
	return nil
}

// Destroy clears the session data and marks it as destroyed.
func (s *Session) Destroy() error {
	s.Clear()
	s.Destroyed = true
	return nil
}

// Get retrieves a value from the session by key.
func (s *Session) Get(key string) (any, error) {
	if s.Destroyed {
		return nil, sessionDestroyedError
	}
	data, ok := s.Data[key]
	if !ok {
		return nil, nil
	}
	return data, nil
}

// Has checks if a key exists in the session data.
func (s *Session) Has(key string) (bool, error) {
	if s.Destroyed {
		return false, sessionDestroyedError
	}
	_, ok := s.Data[key]
	return ok, nil
}

// Set adds or updates a key-value pair in the session data.
func (s *Session) Set(key string, value any) error {
	if s.Destroyed {
		return sessionDestroyedError
	}
	s.Data[key] = value
	s.Changed = true
	return nil
}
