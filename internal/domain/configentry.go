package domain

import "time"

// ConfigEntry represents one key/value application setting. The value is
// opaque text; interpretation (password, version string, ISO date) is up to
// the reader.
type ConfigEntry struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Well-known config keys
const (
	ConfigKeyPassword   = "app.password"
	ConfigKeyVersion    = "app.version"
	ConfigKeyDeployedAt = "deployed_at"
)
