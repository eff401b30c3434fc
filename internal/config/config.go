package config

// Config holds runtime configuration for the dashboard API and the proxy.
type Config struct {
	Port           string
	DataSource     string
	Timezone       string
	WarmupInterval Duration
	CORSOrigin     string
	Seasons        SeasonConfig
	Proxy          ProxyConfig
	Upstream       UpstreamConfig
	Metrics        MetricsConfig
}

// SeasonConfig names the provider seasons the dashboard reads.
type SeasonConfig struct {
	Stats    string // e.g. 2025, used for PlayerSeasonStats/<season>
	Schedule string // e.g. 2025REG, used for SchedulesBasic/<season>
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	return Config{
		Port:           envOrDefault(envPort, defaultPort),
		DataSource:     envOrDefault(envDataSource, defaultDataSource),
		Timezone:       envOrDefault(envTimezone, defaultTimezone),
		WarmupInterval: durationEnvOrDefault(envWarmupInterval, defaultWarmupInterval),
		CORSOrigin:     envOrDefault(envCORSOrigin, defaultCORSOrigin),
		Seasons: SeasonConfig{
			Stats:    envOrDefault(envSeason, defaultSeason),
			Schedule: envOrDefault(envScheduleSeason, defaultScheduleSeason),
		},
		Proxy:    loadProxy(),
		Upstream: loadUpstream(),
		Metrics:  loadMetrics(),
	}
}
