package server

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/preston-bernstein/nba-dashboard-service/internal/app/games"
	"github.com/preston-bernstein/nba-dashboard-service/internal/app/players"
	"github.com/preston-bernstein/nba-dashboard-service/internal/app/teams"
	"github.com/preston-bernstein/nba-dashboard-service/internal/config"
	httpserver "github.com/preston-bernstein/nba-dashboard-service/internal/http"
	"github.com/preston-bernstein/nba-dashboard-service/internal/http/handlers"
	"github.com/preston-bernstein/nba-dashboard-service/internal/logging"
	"github.com/preston-bernstein/nba-dashboard-service/internal/metrics"
	"github.com/preston-bernstein/nba-dashboard-service/internal/proxy"
	"github.com/preston-bernstein/nba-dashboard-service/internal/store"
	"github.com/preston-bernstein/nba-dashboard-service/internal/timeutil"
	"github.com/preston-bernstein/nba-dashboard-service/internal/warmup"
)

var metricsSetup = metrics.Setup

// Server runs one HTTP surface (dashboard API or proxy) plus optional
// metrics export and, for the dashboard, the cache warmer.
type Server struct {
	cfg           config.Config
	logger        *slog.Logger
	metrics       *metrics.Recorder
	session       *store.Session
	httpServer    httpServer
	metricsServer httpServer
	warmer        Warmer
	metricsStop   func(context.Context) error
}

// New constructs the dashboard API server with the configured data source.
func New(cfg config.Config, logger *slog.Logger) *Server {
	return newDashboard(cfg, logger, nil, nil)
}

// newDashboard wires the dashboard. A nil source is built from cfg; a nil
// recorder comes from metrics setup.
func newDashboard(cfg config.Config, logger *slog.Logger, source Source, recorder *metrics.Recorder) *Server {
	recorder, metricsSrv, metricsShutdown := buildMetrics(cfg, logger, recorder)
	if source == nil {
		source = newSourceFactory(logger, recorder).build(cfg)
	}

	session := store.NewSession(recorder)
	loc := timeutil.LoadLocation(cfg.Timezone)
	teamSvc := teams.NewService(source, session.Teams, logger)
	playerSvc := players.NewService(source, session, cfg.Seasons.Stats, logger)
	gameSvc := games.NewService(source, teamSvc, cfg.Seasons.Schedule, loc, logger)

	wrm := warmup.New([]warmup.Step{
		{Name: store.CacheTeams, Load: func(ctx context.Context) error {
			_, err := teamSvc.Teams(ctx)
			return err
		}},
		{Name: store.CachePlayers, Load: func(ctx context.Context) error {
			_, err := playerSvc.Players(ctx)
			return err
		}},
	}, logger, recorder, cfg.WarmupInterval)

	handler := handlers.NewHandler(teamSvc, playerSvc, gameSvc, logger, wrm.Status)
	router := httpserver.NewRouter(handler, httpserver.RouterConfig{
		Logger:     ensureLogger(logger),
		Recorder:   recorder,
		CORSOrigin: cfg.CORSOrigin,
	})

	return &Server{
		cfg:           cfg,
		logger:        logger,
		metrics:       recorder,
		session:       session,
		httpServer:    newNetHTTPServer(cfg.Port, router),
		metricsServer: metricsSrv,
		warmer:        wrm,
		metricsStop:   metricsShutdown,
	}
}

// NewProxy constructs the credential-hiding proxy server.
func NewProxy(cfg config.Config, logger *slog.Logger) *Server {
	return newProxy(cfg, logger, nil, nil)
}

func newProxy(cfg config.Config, logger *slog.Logger, client *http.Client, recorder *metrics.Recorder) *Server {
	if cfg.Upstream.MetricsPort != "" {
		cfg.Metrics.Port = cfg.Upstream.MetricsPort
	}
	recorder, metricsSrv, metricsShutdown := buildMetrics(cfg, logger, recorder)
	if cfg.Upstream.APIKey == "" {
		logging.Warn(logger, "provider api key not set; upstream calls will be rejected")
	}

	upstream := proxy.NewUpstream(proxy.UpstreamConfig{
		ScoresBaseURL: cfg.Upstream.ScoresBaseURL,
		StatsBaseURL:  cfg.Upstream.StatsBaseURL,
		APIKey:        cfg.Upstream.APIKey,
		Timeout:       cfg.Upstream.Timeout,
		MaxAttempts:   cfg.Upstream.MaxAttempts,
		HTTPClient:    client,
		Logger:        logger,
		Recorder:      recorder,
	})
	handler := proxy.NewHandler(upstream, cfg.Upstream.ClientToken, logger)
	router := proxy.NewRouter(handler, ensureLogger(logger), recorder)

	return &Server{
		cfg:           cfg,
		logger:        logger,
		metrics:       recorder,
		httpServer:    newNetHTTPServer(cfg.Upstream.Port, router),
		metricsServer: metricsSrv,
		metricsStop:   metricsShutdown,
	}
}

// newServerWithDeps is used for testing to inject custom components.
func newServerWithDeps(cfg config.Config, logger *slog.Logger, httpSrv httpServer, wrm Warmer) *Server {
	return &Server{
		cfg:        cfg,
		logger:     logger,
		httpServer: httpSrv,
		warmer:     wrm,
	}
}

func ensureLogger(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return logging.NewLogger(logging.Config{})
	}
	return logger
}

// Run starts the servers and warmer, then waits for context cancellation to shut down gracefully.
func (s *Server) Run(ctx context.Context, stop context.CancelFunc) {
	s.startMetrics()
	s.startServer(stop)
	if s.warmer != nil {
		s.warmer.Start(ctx)
	}

	<-ctx.Done()
	logging.Info(s.logger, "shutdown signal received")

	s.gracefulShutdown()
}

func (s *Server) startServer(stop context.CancelFunc) {
	logging.Info(s.logger, "http server starting", slog.String("addr", s.httpServer.Addr()))
	launchServer("http", s.httpServer, s.logger, func(err error) {
		if stop != nil {
			stop()
		}
	})
}

func (s *Server) startMetrics() {
	if s.metricsServer == nil {
		return
	}
	logging.Info(s.logger, "metrics server starting", slog.String("addr", s.metricsServer.Addr()))
	launchServer("metrics", s.metricsServer, s.logger, nil)
}

func (s *Server) gracefulShutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if s.metricsStop != nil {
		if err := s.metricsStop(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics shutdown failed", "error", err)
		}
	}

	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics server shutdown failed", "error", err)
		}
	}

	if s.warmer != nil {
		if err := s.warmer.Stop(shutdownCtx); err != nil {
			logging.Error(s.logger, "failed to stop warmer", err)
		}
	}

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		logging.Error(s.logger, "graceful shutdown failed", err)
	}

	logging.Info(s.logger, "shutdown complete")
}

func buildMetrics(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) (*metrics.Recorder, httpServer, func(context.Context) error) {
	if recorder != nil {
		return recorder, nil, nil
	}

	recCfg := metrics.TelemetryConfig{
		Enabled:      cfg.Metrics.Enabled,
		Port:         cfg.Metrics.Port,
		ServiceName:  cfg.Metrics.ServiceName,
		OtlpEndpoint: cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: cfg.Metrics.OtlpInsecure,
	}

	rec, handler, shutdown, err := metricsSetup(context.Background(), recCfg)
	if err != nil {
		logging.Warn(logger, "metrics setup failed, continuing without telemetry", "err", err)
		return metrics.NewRecorder(), nil, nil
	}

	var metricsSrv httpServer
	if handler != nil && recCfg.Enabled {
		metricsSrv = netHTTPServer{
			srv: &http.Server{
				Addr:              ":" + recCfg.Port,
				Handler:           handler,
				ReadHeaderTimeout: readTimeout,
			},
		}
	}

	return rec, metricsSrv, shutdown
}

func launchServer(name string, srv httpServer, logger *slog.Logger, onError func(error)) {
	go func() {
		logging.Info(logger, "starting "+name+" server", slog.String("addr", srv.Addr()))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Warn(logger, name+" server failed", "error", err)
			if onError != nil {
				onError(err)
			}
		}
	}()
}

// Handler exposes the HTTP handler (useful for tests).
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler()
}
