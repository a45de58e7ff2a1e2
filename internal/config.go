package internal

import (
	"fmt"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/dr-yst/org-x/internal/monitor"
)

// Auth modes.
const (
	AuthModeDisabled = "disabled"
	AuthModeToken    = "token"
)

// Config represents the application configuration.
type Config struct {
	App       ApplicationConfig `yaml:"app"`
	Documents DocumentsConfig   `yaml:"documents"`
	Search    SearchConfig      `yaml:"search"`
	Auth      AuthConfig        `yaml:"auth"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.App.Validate(); err != nil {
		return err
	}
	if err := c.Documents.Validate(); err != nil {
		return err
	}
	if err := c.Search.Validate(); err != nil {
		return err
	}
	return c.Auth.Validate()
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level"`
	HTTP     HTTPConfig `yaml:"http"`
}

// Validate validates the application configuration.
func (c *ApplicationConfig) Validate() error {
	return c.HTTP.Validate()
}

// HTTPConfig holds HTTP server configuration.
type HTTPConfig struct {
	Port int `yaml:"port"`
}

// Address returns HTTP server address.
func (c *HTTPConfig) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Validate validates the HTTP configuration.
func (c *HTTPConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
	)
}

// PathConfig is one monitored file or directory.
type PathConfig struct {
	Path         string `yaml:"path"`
	Type         string `yaml:"type"`
	ParseEnabled bool   `yaml:"parse_enabled"`
}

// Validate validates a monitored path entry.
func (c *PathConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
		validation.Field(&c.Type, validation.Required,
			validation.In(string(monitor.PathTypeFile), string(monitor.PathTypeDirectory))),
	)
}

// Monitored converts this entry to a monitor path.
func (c *PathConfig) Monitored() monitor.MonitoredPath {
	return monitor.MonitoredPath{
		Path:         c.Path,
		Type:         monitor.PathType(c.Type),
		ParseEnabled: c.ParseEnabled,
	}
}

// TodoConfig holds TODO keyword overrides. When both lists are empty,
// in-file #+TODO declarations (or the TODO/DONE defaults) apply instead.
type TodoConfig struct {
	Active []string `yaml:"active"`
	Closed []string `yaml:"closed"`
}

// Empty reports whether no override is configured.
func (c *TodoConfig) Empty() bool {
	return len(c.Active) == 0 && len(c.Closed) == 0
}

// DocumentsConfig holds the monitored paths and parse behavior.
type DocumentsConfig struct {
	Paths            []PathConfig `yaml:"paths"`
	Todo             TodoConfig   `yaml:"todo"`
	CustomProperties []string     `yaml:"custom_properties"`
	DebounceMS       int          `yaml:"debounce_ms"`
}

// Validate validates the documents configuration.
func (c *DocumentsConfig) Validate() error {
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Paths, validation.Required),
		validation.Field(&c.DebounceMS, validation.Min(0)),
	); err != nil {
		return err
	}
	for i := range c.Paths {
		if err := c.Paths[i].Validate(); err != nil {
			return fmt.Errorf("documents: path %d: %w", i, err)
		}
	}
	return nil
}

// Debounce returns the configured debounce window.
func (c *DocumentsConfig) Debounce() time.Duration {
	if c.DebounceMS <= 0 {
		return monitor.DefaultDebounce
	}
	return time.Duration(c.DebounceMS) * time.Millisecond
}

// SearchConfig holds the search index configuration. DSN ":memory:"
// keeps the index purely in-process; an empty DSN disables search.
type SearchConfig struct {
	DSN string `yaml:"dsn"`
}

// Validate validates the search configuration.
func (c *SearchConfig) Validate() error {
	return nil
}

// Enabled reports whether the search index is configured.
func (c *SearchConfig) Enabled() bool {
	return c.DSN != ""
}

// AuthConfig holds authentication configuration.
//
// Mode controls how authentication is enforced:
//   - "disabled" (default): no authentication required, suitable for local use.
//   - "token": Bearer token authentication; Token must be non-empty.
type AuthConfig struct {
	Mode  string `yaml:"mode"`
	Token string `yaml:"token"`
}

// Validate validates the auth configuration.
func (c *AuthConfig) Validate() error {
	// Normalise empty mode to "disabled" for backward compatibility.
	if c.Mode == "" {
		c.Mode = AuthModeDisabled
	}
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Mode, validation.Required, validation.In(AuthModeDisabled, AuthModeToken)),
	); err != nil {
		return err
	}
	if c.Mode == AuthModeToken && c.Token == "" {
		return fmt.Errorf("auth: mode is %q but token is empty", AuthModeToken)
	}
	return nil
}

// AuthEnabled returns true when authentication is active.
func (c *AuthConfig) AuthEnabled() bool {
	return c.Mode == AuthModeToken
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelInfo,
			HTTP: HTTPConfig{
				Port: 8080,
			},
		},
		Documents: DocumentsConfig{
			Paths: []PathConfig{
				{Path: "./org", Type: string(monitor.PathTypeDirectory), ParseEnabled: true},
			},
			DebounceMS: int(monitor.DefaultDebounce / time.Millisecond),
		},
		Search: SearchConfig{
			DSN: ":memory:",
		},
		Auth: AuthConfig{
			Mode: AuthModeDisabled,
		},
	}
}
