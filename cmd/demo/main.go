package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	kitlog "github.com/go-kit/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/candango/interpose"
	"github.com/candango/interpose/logger"
	"github.com/candango/interpose/middleware"
	"github.com/candango/interpose/session"
	"github.com/candango/interpose/store"
)

func main() {
	ctx := context.Background()

	memStore := store.NewMemoryStore()
	engine := session.NewStoreEngine(memStore, session.WithProperties(
		&session.EngineProperties{
			AgeLimit:      1 * time.Hour,
			PurgeDuration: 2 * time.Minute,
		},
	))
	if err := engine.Start(ctx); err != nil {
		panic(err)
	}
	defer engine.Stop(ctx)

	log := logger.NewKitLogger(kitlog.NewLogfmtLogger(os.Stderr))

	hello := interpose.HandlerFunc[*interpose.Request, *interpose.Response](
		func(ctx context.Context, req *interpose.Request) (*interpose.Response, error) {
			sess, err := session.FromContext(ctx)
			if err != nil {
				return nil, err
			}
			count := 0
			if ok, _ := sess.Has("count"); ok {
				cs, err := sess.Get("count")
				if err != nil {
					return nil, err
				}
				count = int(cs.(float64))
			}
			count++
			if err := sess.Set("count", count); err != nil {
				return nil, err
			}
			return interpose.TextResponse(http.StatusOK,
				fmt.Sprintf("hello, visit %d from session %s\n",
					count, sess.Id)), nil
		})

	reg := prometheus.NewRegistry()
	metrics := middleware.NewMetrics(reg)

	pipeline := interpose.Chain(
		middleware.Logging(log),
		middleware.Instrument(metrics),
		middleware.Timeout(5*time.Second),
		middleware.ExactPath("/"),
		middleware.Sessioned(engine),
		middleware.CSRFGenerate(middleware.DefaultCSRFCookie),
	)(hello)

	mux := http.NewServeMux()
	mux.Handle("/", interpose.Adapt(pipeline))
	mux.Handle("/metrics", promhttp.HandlerFor(reg,
		promhttp.HandlerOpts{}))

	gs := interpose.NewGracefulServer(&http.Server{
		Addr:    ":8887",
		Handler: mux,
	}, "demo-server")
	gs.Logger = log
	gs.Run()
	gs.Wait()
}
