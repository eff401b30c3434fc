package middleware

import "net/http"

// CORSConfig describes the cross-origin headers added to every response.
type CORSConfig struct {
	AllowOrigin     string
	AllowMethods    string
	AllowHeaders    string
	PreflightStatus int
}

// CORS adds cross-origin headers and answers OPTIONS preflight requests
// with cfg.PreflightStatus and no body.
func CORS(cfg CORSConfig) func(http.Handler) http.Handler {
	if cfg.AllowOrigin == "" {
		cfg.AllowOrigin = "*"
	}
	if cfg.PreflightStatus == 0 {
		cfg.PreflightStatus = http.StatusNoContent
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set("Access-Control-Allow-Origin", cfg.AllowOrigin)
			if cfg.AllowMethods != "" {
				h.Set("Access-Control-Allow-Methods", cfg.AllowMethods)
			}
			if cfg.AllowHeaders != "" {
				h.Set("Access-Control-Allow-Headers", cfg.AllowHeaders)
			}
			if r.Method == http.MethodOptions {
				w.WriteHeader(cfg.PreflightStatus)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
