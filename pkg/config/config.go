// Package config holds the watcher configuration: defaults, optional YAML
// overrides, and flag-level overrides applied on top by the command layer.
package config

import (
	"net/url"
	"os"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"

	"github.com/nexwatch/nexwatch/pkg/state"
)

// Defaults applied when neither file nor flags say otherwise.
const (
	DefaultServerURL   = "http://localhost:8000"
	DefaultPollSeconds = 5
)

// Config is the full watcher configuration.
type Config struct {
	// ServerURL is the backend REST base URL.
	ServerURL string `yaml:"serverURL"`

	// PushURL is the push channel endpoint. Empty derives it from
	// ServerURL (http -> ws, path /ws).
	PushURL string `yaml:"pushURL"`

	// PollSeconds is the interval between full-state polls.
	PollSeconds int `yaml:"pollSeconds"`

	// LogCapacity bounds the log ring.
	LogCapacity int `yaml:"logCapacity"`

	// Reconnect controls push channel reconnection.
	Reconnect bool `yaml:"reconnect"`

	// LightTheme switches the display to the light palette.
	LightTheme bool `yaml:"lightTheme"`
}

// Default returns the configuration used when no file or flags override it.
func Default() Config {
	return Config{
		ServerURL:   DefaultServerURL,
		PollSeconds: DefaultPollSeconds,
		LogCapacity: state.DefaultLogCapacity,
		Reconnect:   true,
	}
}

// Load reads a YAML file over the defaults. Fields absent from the file keep
// their default values.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrap(err, "reading config file")
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrap(err, "parsing config file")
	}

	return cfg, nil
}

// Normalize fills derived fields and rejects unusable values. Call after all
// overrides are applied.
func (c *Config) Normalize() error {
	c.ServerURL = strings.TrimRight(c.ServerURL, "/")
	if c.ServerURL == "" {
		return errors.New("server URL must not be empty")
	}
	if c.PollSeconds <= 0 {
		return errors.Errorf("poll interval must be positive, got %d", c.PollSeconds)
	}
	if c.LogCapacity <= 0 {
		c.LogCapacity = state.DefaultLogCapacity
	}

	if c.PushURL == "" {
		derived, err := DerivePushURL(c.ServerURL)
		if err != nil {
			return err
		}
		c.PushURL = derived
	}

	return nil
}

// DerivePushURL maps a REST base URL to its push endpoint: the scheme flips
// to ws/wss and the path becomes /ws.
func DerivePushURL(serverURL string) (string, error) {
	u, err := url.Parse(serverURL)
	if err != nil {
		return "", errors.Wrap(err, "parsing server URL")
	}

	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	case "ws", "wss":
	default:
		return "", errors.Errorf("unsupported server URL scheme %q", u.Scheme)
	}

	u.Path = strings.TrimRight(u.Path, "/") + "/ws"
	return u.String(), nil
}
