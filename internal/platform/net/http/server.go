package http

import (
	"context"
	nethttp "net/http"
	"time"

	"easel/internal/platform/config"
	"easel/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

// Server wraps a chi mux in a stdlib http.Server with lifecycle helpers
type Server struct {
	addr  string
	grace time.Duration
	mux   *chi.Mux
	srv   *nethttp.Server
}

// NewServer reads its listen address and timeouts from cfg's view.
// muxOpts receive the raw *chi.Mux for route and middleware mounting
func NewServer(cfg config.Conf, muxOpts ...func(*chi.Mux)) *Server {
	mux := chi.NewRouter()
	for _, fn := range muxOpts {
		fn(mux)
	}

	s := &Server{
		addr:  cfg.MayListenAddr("PORT", ":8480"),
		grace: cfg.MayDuration("SHUTDOWN_GRACE", 10*time.Second),
		mux:   mux,
	}
	s.srv = &nethttp.Server{
		Addr:              s.addr,
		Handler:           mux,
		ReadHeaderTimeout: cfg.MayDuration("READ_HEADER_TIMEOUT", 10*time.Second),
		IdleTimeout:       cfg.MayDuration("IDLE_TIMEOUT", time.Minute),
	}
	return s
}

// Router returns the mounting facade over the mux
func (s *Server) Router() Router { return AdaptChi(s.mux) }

// Addr returns the listen address
func (s *Server) Addr() string { return s.addr }

// Run serves until ctx is canceled or the listener fails. Cancelation
// drains in flight requests for up to the shutdown grace period
func (s *Server) Run(ctx context.Context) error {
	lg := logger.Named("http")
	lg.Info().Str("addr", s.addr).Msg("listening")

	served := make(chan struct{})
	defer close(served)
	go func() {
		select {
		case <-ctx.Done():
			sctx, cancel := context.WithTimeout(context.Background(), s.grace)
			defer cancel()
			if err := s.srv.Shutdown(sctx); err != nil {
				lg.Error().Err(err).Msg("drain failed")
			}
		case <-served:
		}
	}()

	if err := s.srv.ListenAndServe(); err != nethttp.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown stops the server, honoring ctx for the drain
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
