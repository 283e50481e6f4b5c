package stub

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"studyguide/internal/logging"

	"golang.org/x/sync/errgroup"
)

// RunOptions configures Run.
type RunOptions struct {
	// FixturePath, when set, replaces the embedded sample.
	FixturePath string
	// Watch reloads FixturePath on change.
	Watch bool
	// Ready, if set, receives the bound address once listening.
	Ready func(addr string)
}

// Run serves s on addr until ctx is cancelled.
func Run(ctx context.Context, addr string, s *Server, opts RunOptions) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	return Serve(ctx, ln, s, opts)
}

// Serve serves s on ln until ctx is cancelled, then shuts down gracefully.
// The listener is closed on return.
func Serve(ctx context.Context, ln net.Listener, s *Server, opts RunOptions) error {
	if opts.FixturePath != "" {
		data, err := ReadFixture(opts.FixturePath)
		if err != nil {
			ln.Close()
			return err
		}
		if err := s.SetFixture(data); err != nil {
			ln.Close()
			return err
		}
	}

	var fw *FixtureWatcher
	if opts.Watch && opts.FixturePath != "" {
		w, err := NewFixtureWatcher(opts.FixturePath, s)
		if err != nil {
			ln.Close()
			return err
		}
		fw = w
	}

	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logging.Stub("stub backend listening on %s", ln.Addr())
		if opts.Ready != nil {
			opts.Ready(ln.Addr().String())
		}
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("stub server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	if fw != nil {
		g.Go(func() error { return fw.Run(gctx) })
	}

	err := g.Wait()
	logging.Stub("stub backend stopped")
	return err
}
