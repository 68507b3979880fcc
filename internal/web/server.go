// Package web serves the estimator as an HTML form and a JSON API.
package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/NihalShah4/cost-of-living-estimator/internal/basket"
	"github.com/NihalShah4/cost-of-living-estimator/internal/estimate"
	"github.com/NihalShah4/cost-of-living-estimator/internal/refdata"

	"github.com/rs/zerolog"
)

// Config controls the server runtime behavior.
type Config struct {
	Addr         string
	DefaultState string
	Basket       basket.Basket
	BaselineUSD  float64 // default basket for /v1/estimate; 0 uses Basket.Monthly()
	Income       IncomeDefaults
	Info         refdata.Info // where the price table came from
	Logger       zerolog.Logger
}

// IncomeDefaults are used when a household request omits income inputs.
type IncomeDefaults struct {
	SavingsRate float64
	TaxRate     float64
	Buffer      float64
}

// Status is served at /v1/status.
type Status struct {
	StartedAt   time.Time `json:"started_at"`
	UptimeSec   int64     `json:"uptime_sec"`
	Requests    int64     `json:"requests"`
	States      int       `json:"states"`
	Categories  int       `json:"categories"`
	RPPSource   string    `json:"rpp_source"`
	RPPFetched  string    `json:"rpp_fetched_at,omitempty"`
	RPPStale    bool      `json:"rpp_stale,omitempty"`
	BasketTotal float64   `json:"basket_monthly"`
}

// Server holds the read-only estimator shared by all requests.
type Server struct {
	cfg       Config
	est       *estimate.Estimator
	startedAt time.Time
	requests  atomic.Int64
}

// New returns a server over est. A nil est uses the built-in tables.
func New(cfg Config, est *estimate.Estimator) *Server {
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:8080"
	}
	if cfg.Basket == (basket.Basket{}) {
		cfg.Basket = basket.Default()
	}
	if est == nil {
		est = estimate.New(nil, nil)
	}
	return &Server{
		cfg:       cfg,
		est:       est,
		startedAt: time.Now(),
	}
}

// Run serves HTTP until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	s.cfg.Logger.Info().
		Str("addr", s.cfg.Addr).
		Str("rpp_source", string(s.cfg.Info.Source)).
		Int("states", s.est.Table().Len()).
		Msg("colest server listening")

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.cfg.Logger.Info().Msg("shutting down")
		return server.Shutdown(shutdownCtx)
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	}
}

func (s *Server) status() Status {
	st := Status{
		StartedAt:   s.startedAt,
		UptimeSec:   int64(time.Since(s.startedAt).Seconds()),
		Requests:    s.requests.Load(),
		States:      s.est.Table().Len(),
		Categories:  len(s.est.Catalog().Categories()),
		RPPSource:   string(s.cfg.Info.Source),
		RPPStale:    s.cfg.Info.Stale,
		BasketTotal: s.baseline(),
	}
	if !s.cfg.Info.FetchedAt.IsZero() {
		st.RPPFetched = s.cfg.Info.FetchedAt.UTC().Format(time.RFC3339)
	}
	return st
}

func (s *Server) baseline() float64 {
	if s.cfg.BaselineUSD > 0 {
		return s.cfg.BaselineUSD
	}
	return s.cfg.Basket.Monthly()
}
