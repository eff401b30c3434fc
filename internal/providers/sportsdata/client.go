package sportsdata

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/preston-bernstein/nba-dashboard-service/internal/logging"
	"github.com/preston-bernstein/nba-dashboard-service/internal/metrics"
	"github.com/preston-bernstein/nba-dashboard-service/internal/providers"
)

// Config controls how the client reaches the remote proxy.
type Config struct {
	ProxyURL   string
	Token      string
	HTTPClient *http.Client
	Logger     *slog.Logger
	Recorder   *metrics.Recorder
}

// Client fetches raw provider records through the remote proxy.
// It does not cache; callers own caching.
type Client struct {
	proxyURL   string
	token      string
	httpClient httpDoer
	logger     *slog.Logger
	recorder   *metrics.Recorder
}

// NewClient constructs a proxy client with the provided configuration.
func NewClient(cfg Config) *Client {
	return &Client{
		proxyURL:   normalizeProxyURL(cfg.ProxyURL),
		token:      cfg.Token,
		httpClient: resolveHTTPClient(cfg.HTTPClient),
		logger:     cfg.Logger,
		recorder:   cfg.Recorder,
	}
}

// FetchTeams returns every team record.
func (c *Client) FetchTeams(ctx context.Context) ([]Team, error) {
	return fetchJSON[[]Team](ctx, c, EndpointTeams)
}

// FetchPlayers returns every player record, active or not.
func (c *Client) FetchPlayers(ctx context.Context) ([]Player, error) {
	return fetchJSON[[]Player](ctx, c, EndpointPlayers)
}

// FetchPlayerSeasonStats returns season totals for season.
func (c *Client) FetchPlayerSeasonStats(ctx context.Context, season string) ([]PlayerSeasonStats, error) {
	return fetchJSON[[]PlayerSeasonStats](ctx, c, PlayerSeasonStatsEndpoint(season))
}

// FetchSchedule returns the schedule for season.
func (c *Client) FetchSchedule(ctx context.Context, season string) ([]Game, error) {
	return fetchJSON[[]Game](ctx, c, ScheduleEndpoint(season))
}

func fetchJSON[T any](ctx context.Context, c *Client, endpoint string) (T, error) {
	var out T
	start := time.Now()
	err := c.do(ctx, endpoint, &out)
	c.recorder.RecordProviderAttempt(providerName, time.Since(start), err)

	logger := logging.FromContext(ctx, c.logger)
	if err != nil {
		logging.Warn(logger, "proxy fetch failed",
			logging.FieldProvider, providerName,
			logging.FieldEndpoint, endpoint,
			"err", err,
		)
		var zero T
		return zero, err
	}
	logging.Info(logger, "proxy fetch succeeded",
		logging.FieldProvider, providerName,
		logging.FieldEndpoint, endpoint,
		logging.FieldDurationMS, time.Since(start).Milliseconds(),
	)
	return out, nil
}

func (c *Client) do(ctx context.Context, endpoint string, out any) error {
	req, err := c.buildRequest(ctx, endpoint)
	if err != nil {
		return &providers.FetchError{Endpoint: endpoint, Message: "build request", Err: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &providers.NetworkError{Endpoint: endpoint, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))
		return &providers.FetchError{
			Endpoint:   endpoint,
			StatusCode: resp.StatusCode,
			Message:    strings.TrimSpace(string(body)),
		}
	}

	if decodeErr := json.NewDecoder(resp.Body).Decode(out); decodeErr != nil {
		return &providers.FetchError{Endpoint: endpoint, StatusCode: resp.StatusCode, Message: "decode response", Err: decodeErr}
	}
	return nil
}

func (c *Client) buildRequest(ctx context.Context, endpoint string) (*http.Request, error) {
	target := c.proxyURL + "?endpoint=" + url.QueryEscape(endpoint)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}
