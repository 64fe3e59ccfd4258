package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/fwojciec/folio/api"
	"github.com/gin-gonic/gin"
)

// shutdownTimeout bounds how long in-flight requests may finish after the
// server is asked to stop.
const shutdownTimeout = 10 * time.Second

// Run executes the serve command. It blocks until the context is canceled.
func (c *ServeCmd) Run(deps *Dependencies) error {
	gin.SetMode(gin.ReleaseMode)

	srv := &http.Server{
		Addr: c.Addr,
		Handler: api.NewRouter(api.Config{
			Scraper: deps.Scraper,
			Records: deps.Records,
			Metrics: deps.Metrics,
			Logger:  deps.Logger,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	fmt.Fprintf(deps.Stdout, "Listening on %s\n", c.Addr)

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-deps.Ctx.Done():
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(deps.Ctx), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(ctx)
}
