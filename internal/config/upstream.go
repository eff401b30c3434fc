package config

import "time"

const (
	envProxyPort        = "PROXY_PORT"
	envAPIKey           = "NBA_DATA_API_KEY"
	envProxyClientToken = "PROXY_CLIENT_TOKEN"
	envScoresBaseURL    = "SPORTSDATA_SCORES_BASE_URL"
	envStatsBaseURL     = "SPORTSDATA_STATS_BASE_URL"
	envUpstreamTimeout  = "UPSTREAM_TIMEOUT"
	envUpstreamRetries  = "UPSTREAM_RETRIES"
	envProxyMetricsPort = "PROXY_METRICS_PORT"

	defaultProxyPort       = "4001"
	defaultScoresBaseURL   = "https://api.sportsdata.io/v3/nba/scores/json"
	defaultStatsBaseURL    = "https://api.sportsdata.io/v3/nba/stats/json"
	defaultUpstreamTimeout = 10 * time.Second
	defaultUpstreamRetries = 3
	defaultProxyMetrics    = "9091"
)

// UpstreamConfig controls how the proxy talks to the sports-data provider.
type UpstreamConfig struct {
	Port          string
	APIKey        string
	ClientToken   string // when set, callers must present it as a bearer token
	ScoresBaseURL string
	StatsBaseURL  string
	Timeout       time.Duration
	MaxAttempts   int
	MetricsPort   string // keeps the proxy's exporter off the dashboard's port
}

func loadUpstream() UpstreamConfig {
	return UpstreamConfig{
		Port:          envOrDefault(envProxyPort, defaultProxyPort),
		APIKey:        envOrDefault(envAPIKey, ""),
		ClientToken:   envOrDefault(envProxyClientToken, ""),
		ScoresBaseURL: envOrDefault(envScoresBaseURL, defaultScoresBaseURL),
		StatsBaseURL:  envOrDefault(envStatsBaseURL, defaultStatsBaseURL),
		Timeout:       durationEnvOrDefault(envUpstreamTimeout, defaultUpstreamTimeout),
		MaxAttempts:   intEnvOrDefault(envUpstreamRetries, defaultUpstreamRetries),
		MetricsPort:   envOrDefault(envProxyMetricsPort, defaultProxyMetrics),
	}
}
