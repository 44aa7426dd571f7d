package commands

import (
	"bindays-backend/internal/notify"
	"bindays-backend/lib/configutil"
)

type ServerConfig struct {
	Port int `json:"port"`
}

type Config struct {
	Postcode string `json:"postcode"`
	Uprn     string `json:"uprn"`

	LandingUrl       string `json:"landing_url"`
	TimeoutSeconds   int    `json:"timeout_seconds"`
	CloudflareBypass bool   `json:"cloudflare_bypass"`

	// Database is the sqlite file fetched schedules are stored in, nothing
	// is stored if it is empty.
	Database string            `json:"database"`
	Server   ServerConfig      `json:"server"`
	Smtp     notify.SmtpConfig `json:"smtp"`
}

var defaultConfig = Config{
	TimeoutSeconds: 30,
	Server: ServerConfig{
		Port: 8080,
	},
	Smtp: notify.SmtpConfig{
		Port: 587,
	},
}

// readConfig reads the config at `path` (and its .local override), a
// missing file yields the defaults.
func readConfig(path string) (Config, error) {
	return configutil.ReadConfigOrDefault(path, defaultConfig)
}

// stringFlag returns the flag value if set, otherwise the configured one.
func stringFlag(flag *string, configured string) string {
	if flag != nil && *flag != "" {
		return *flag
	}
	return configured
}
