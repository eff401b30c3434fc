package server

import (
	"log/slog"
	"strings"

	appgames "github.com/preston-bernstein/nba-dashboard-service/internal/app/games"
	appplayers "github.com/preston-bernstein/nba-dashboard-service/internal/app/players"
	appteams "github.com/preston-bernstein/nba-dashboard-service/internal/app/teams"
	"github.com/preston-bernstein/nba-dashboard-service/internal/config"
	"github.com/preston-bernstein/nba-dashboard-service/internal/logging"
	"github.com/preston-bernstein/nba-dashboard-service/internal/metrics"
	"github.com/preston-bernstein/nba-dashboard-service/internal/providers/fixture"
	"github.com/preston-bernstein/nba-dashboard-service/internal/providers/sportsdata"
)

const (
	sourceFixture = "fixture"
	sourceProxy   = "proxy"
)

// Source is every fetch the dashboard services need.
type Source interface {
	appteams.Source
	appplayers.Source
	appgames.Source
}

// sourceFactory picks the raw data source named by DATA_SOURCE.
type sourceFactory struct {
	logger   *slog.Logger
	recorder *metrics.Recorder
}

func newSourceFactory(logger *slog.Logger, recorder *metrics.Recorder) sourceFactory {
	return sourceFactory{logger: logger, recorder: recorder}
}

func (f sourceFactory) build(cfg config.Config) Source {
	switch strings.ToLower(strings.TrimSpace(cfg.DataSource)) {
	case sourceFixture, "":
		return fixture.New()
	case sourceProxy:
		return sportsdata.NewClient(sportsdata.Config{
			ProxyURL: cfg.Proxy.URL,
			Token:    cfg.Proxy.Token,
			Logger:   f.logger,
			Recorder: f.recorder,
		})
	default:
		logging.Warn(f.logger, "unknown data source, falling back to fixture", "data_source", cfg.DataSource)
		return fixture.New()
	}
}
