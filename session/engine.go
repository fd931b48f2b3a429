package session

import (
	"context"
	"errors"
	"time"

	"github.com/candango/interpose/security"
	"github.com/candango/interpose/store"
)

// EngineProperties contains configuration common to session engines.
type EngineProperties struct {
	AgeLimit time.Duration
	Encoder  Encoder
	Name     string
	// PurgeDuration is the interval between background purge runs. Zero
	// disables the background purger.
	PurgeDuration time.Duration
}

// StoreEngine manages sessions on top of any store.Store backend.
type StoreEngine struct {
	properties *EngineProperties
	store      store.Store
	stopPurge  chan struct{}
}

// Option customizes a StoreEngine during construction.
type Option func(*StoreEngine)

// WithProperties overrides the engine's default properties. Zero fields keep
// their defaults.
func WithProperties(p *EngineProperties) Option {
	return func(e *StoreEngine) {
		if p.AgeLimit != 0 {
			e.properties.AgeLimit = p.AgeLimit
		}
		if p.Encoder != nil {
			e.properties.Encoder = p.Encoder
		}
		if p.Name != "" {
			e.properties.Name = p.Name
		}
		if p.PurgeDuration != 0 {
			e.properties.PurgeDuration = p.PurgeDuration
		}
	}
}

// NewStoreEngine creates a session engine persisting into s.
func NewStoreEngine(s store.Store, opts ...Option) *StoreEngine {
	e := &StoreEngine{
		properties: &EngineProperties{
			AgeLimit:      30 * time.Minute,
			Encoder:       &JsonEncoder{},
			Name:          DefaultName,
			PurgeDuration: 2 * time.Minute,
		},
		store: s,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Properties returns engine configuration and metadata.
func (e *StoreEngine) Properties() *EngineProperties {
	return e.properties
}

// NewId generates a new unique session ID.
func (e *StoreEngine) NewId() string {
	return security.RandomString(64)
}

// Start initializes the underlying store and, when PurgeDuration is set,
// launches the background purger.
func (e *StoreEngine) Start(ctx context.Context) error {
	if err := e.store.Start(ctx); err != nil {
		return err
	}
	if e.properties.PurgeDuration > 0 {
		e.stopPurge = make(chan struct{})
		go e.purgeLoop(e.properties.PurgeDuration)
	}
	return nil
}

func (e *StoreEngine) purgeLoop(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			// Purge errors here are transient; the next tick retries.
			_ = e.store.Purge(context.Background())
		case <-e.stopPurge:
			return
		}
	}
}

// Stop halts the background purger and tears the store down.
func (e *StoreEngine) Stop(ctx context.Context) error {
	if e.stopPurge != nil {
		close(e.stopPurge)
		e.stopPurge = nil
	}
	return e.store.Stop(ctx)
}

// Purge removes expired sessions.
func (e *StoreEngine) Purge(ctx context.Context) error {
	return e.store.Purge(ctx)
}

// SessionExists checks if a session with the given ID exists.
func (e *StoreEngine) SessionExists(ctx context.Context, id string) (bool, error) {
	return e.store.Exists(ctx, id)
}

// GetSession retrieves a session by ID, creating an empty one when the ID is
// unknown. Reading a session touches it, giving sliding expiration.
func (e *StoreEngine) GetSession(ctx context.Context, id string) (Session, error) {
	val, err := e.store.Get(ctx, id)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			return Session{}, err
		}
		s := Session{Id: id, Data: map[string]any{}}
		if err := e.SaveSession(ctx, id, s); err != nil {
			return Session{}, err
		}
		return s, nil
	}

	data := map[string]any{}
	if len(val) > 0 {
		if err := e.properties.Encoder.Decode(val, &data); err != nil {
			return Session{}, err
		}
	}
	if err := e.store.Touch(ctx, id); err != nil {
		return Session{}, err
	}
	return Session{Id: id, Data: data}, nil
}

// SaveSession persists the session data for the given ID.
func (e *StoreEngine) SaveSession(ctx context.Context, id string, s Session) error {
	data, err := e.properties.Encoder.Encode(s.Data)
	if err != nil {
		return err
	}
	return e.store.Set(ctx, id, data)
}
