package config

import "time"

const (
	envPort           = "PORT"
	envDataSource     = "DATA_SOURCE"
	envTimezone       = "TIMEZONE"
	envWarmupInterval = "WARMUP_INTERVAL"
	envCORSOrigin     = "CORS_ALLOWED_ORIGIN"
	envSeason         = "SEASON"
	envScheduleSeason = "SCHEDULE_SEASON"
	envMetricsPort    = "METRICS_PORT"
	envMetricsOn      = "METRICS_ENABLED"
	envOtelEndpoint   = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService    = "OTEL_SERVICE_NAME"
	envOtelInsecure   = "OTEL_EXPORTER_OTLP_INSECURE"

	defaultPort       = "4000"
	defaultDataSource = "fixture"
	defaultTimezone   = "America/New_York"
	// Warmup retries only until both caches are populated.
	defaultWarmupInterval = 30 * Duration(time.Second)
	defaultCORSOrigin     = "*"
	defaultSeason         = "2025"
	defaultScheduleSeason = "2025REG"
	defaultMetricsPort    = "9090"
	defaultServiceName    = "nba-dashboard-service"
)
