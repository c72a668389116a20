// Package settings provides the key-value configuration source consumed by
// the request handlers. Values come from environment variables, overlaid on
// an optional TOML settings file. Lookups happen per request; a missing
// required key is a request-level error, never a startup failure.
package settings

import (
	"os"

	"github.com/BurntSushi/toml"

	"protectedstorage/logger"
)

// Provider resolves a configuration key to its value.
type Provider interface {
	Get(key string) (string, bool)
}

type envFileProvider struct {
	file map[string]string
}

// New creates the default provider. The settings file path is taken from the
// PS_CONFIG environment variable and defaults to "settings.toml"; a missing
// file is not an error. Environment variables take precedence over the file.
func New() Provider {
	path := os.Getenv("PS_CONFIG")
	if path == "" {
		path = "settings.toml"
	}

	values := make(map[string]string)
	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, &values); err != nil {
			logger.Get().Error().Err(err).Str("path", path).Msg("Failed to parse settings file")
		} else {
			logger.Get().Info().Str("path", path).Int("keys", len(values)).Msg("Settings file loaded")
		}
	} else {
		logger.Get().Debug().Str("path", path).Msg("No settings file found, using environment variables only")
	}

	return &envFileProvider{file: values}
}

func (p *envFileProvider) Get(key string) (string, bool) {
	if value, ok := os.LookupEnv(key); ok {
		return value, true
	}
	value, ok := p.file[key]
	return value, ok
}

// Static is a fixed map-backed provider, used by tests.
type Static map[string]string

func (s Static) Get(key string) (string, bool) {
	value, ok := s[key]
	return value, ok
}
