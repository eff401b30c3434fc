package config

const (
	envProxyURL   = "PROXY_URL"
	envProxyToken = "PROXY_TOKEN"

	defaultProxyURL = "http://localhost:4001/nba-api-proxy"
)

// ProxyConfig controls how the dashboard reaches the credential-hiding proxy.
type ProxyConfig struct {
	URL   string
	Token string
}

func loadProxy() ProxyConfig {
	return ProxyConfig{
		URL:   envOrDefault(envProxyURL, defaultProxyURL),
		Token: envOrDefault(envProxyToken, ""),
	}
}
