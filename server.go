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

package interpose

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/candango/interpose/logger"
)

// shutdownTimeout bounds how long a graceful shutdown may take.
const shutdownTimeout = 30 * time.Second

// newSignalChan creates a channel that listens for specified signals or
// default signals if none are provided. It is used internally by
// [GracefulServer.Run].
func newSignalChan(sig ...os.Signal) chan os.Signal {
	if len(sig) == 0 {
		sig = []os.Signal{
			syscall.SIGINT,
			syscall.SIGHUP,
			syscall.SIGQUIT,
			syscall.SIGTERM,
		}
	}
	c := make(chan os.Signal, 1)
	signal.Notify(c, sig...)
	return c
}

// GracefulServer combines an HTTP server with signal-driven graceful
// shutdown handling. It is how a composed pipeline is typically put on the
// wire, but nothing in it depends on the pipeline internals.
type GracefulServer struct {
	Name string
	*http.Server
	Logger logger.Logger
	done   chan struct{}
}

// NewGracefulServer wraps an HTTP server for graceful shutdown.
func NewGracefulServer(srv *http.Server, name string) *GracefulServer {
	return &GracefulServer{
		Name:   name,
		Server: srv,
	}
}

// NewServer builds a graceful server that serves the given pipeline through
// the net/http adapter.
func NewServer(name, addr string, h HTTPHandler) *GracefulServer {
	return NewGracefulServer(&http.Server{
		Addr:    addr,
		Handler: Adapt(h),
	}, name)
}

// Run starts the HTTP server in a goroutine and listens for termination
// signals to gracefully shut it down. It takes optional signals to listen
// for; if none are provided, it uses default signals. The returned channel
// accepts injected signals, which is how tests and embedders trigger a
// shutdown programmatically; Wait blocks until the shutdown completed.
func (s *GracefulServer) Run(sig ...os.Signal) chan os.Signal {
	log := s.Logger
	if log == nil {
		log = &logger.StandardLogger{}
	}
	s.done = make(chan struct{})

	go func() {
		if err := s.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatalf("server %s HTTP ListenAndServe error: %v", s.Name, err)
		}
	}()

	log.Printf("server %s started at %s", s.Name, s.Addr)
	c := newSignalChan(sig...)
	go func() {
		defer close(s.done)
		defer signal.Stop(c)

		received := <-c
		log.Printf("shutting down %s due to signal %s", s.Name, received)

		ctx, cancel := context.WithTimeout(context.Background(),
			shutdownTimeout)
		defer cancel()
		if err := s.Shutdown(ctx); err != nil {
			log.Errorf("server %s shutdown failed: %v", s.Name, err)
			return
		}

		log.Printf("%s shutdown gracefully", s.Name)
	}()

	return c
}

// Wait blocks until a running server finished shutting down.
func (s *GracefulServer) Wait() {
	if s.done != nil {
		<-s.done
	}
}
