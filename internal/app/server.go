package app

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"

	"github.com/rafaiieel-ctrl/MiaaulaGalaxy-sub000/internal/transport/middleware"
	"github.com/rafaiieel-ctrl/MiaaulaGalaxy-sub000/internal/transport/rest"
	"github.com/rafaiieel-ctrl/MiaaulaGalaxy-sub000/pkg/ctxutil"
)

// Handler builds the HTTP API over the loaded decks. Requests inherit the
// session id carried by ctx.
func (a *App) Handler(ctx context.Context) http.Handler {
	mux := http.NewServeMux()
	rest.NewHealthHandler(a, BuildVersion()).Register(mux)
	rest.NewStudyHandler(a.Log, a.Study, a, a.Location).Register(mux)

	session, _ := ctxutil.SessionIDFromCtx(ctx)

	return middleware.Chain(
		middleware.RequestID,
		middleware.Session(session),
		middleware.Logger(a.Log),
		middleware.Recovery(a.Log),
	)(mux)
}

// Serve runs the HTTP API on ln until ctx is cancelled, then shuts down
// within the configured timeout.
func (a *App) Serve(ctx context.Context, ln net.Listener) error {
	cfg := a.Config.Server
	srv := &http.Server{
		Handler:      a.Handler(ctx),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	a.Log.InfoContext(ctx, "http server listening", slog.String("addr", ln.Addr().String()))

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.ShutdownTimeout)
		defer cancel()
		a.Log.InfoContext(ctx, "http server shutting down")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
