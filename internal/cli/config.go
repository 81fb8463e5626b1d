package cli

import (
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/oldglory/pkg/cache"
	"github.com/matzehuels/oldglory/pkg/errors"
	"github.com/matzehuels/oldglory/pkg/pipeline"
)

// Config is the on-disk configuration. Every field has a command-line flag
// counterpart that overrides it.
//
//	width   = 500
//	formats = ["svg", "png"]
//	palette = "official"
//	scale   = 2
//	output  = "flag"
//
//	[cache]
//	dir        = "/var/cache/oldglory"
//	ttl        = "24h"
//	disabled   = false
//	redis_addr = "localhost:6379"
//
//	[serve]
//	addr         = ":8080"
//	read_timeout = "10s"
type Config struct {
	Width   float64     `toml:"width"`
	Formats []string    `toml:"formats"`
	Palette string      `toml:"palette"`
	Scale   float64     `toml:"scale"`
	Output  string      `toml:"output"`
	Cache   CacheConfig `toml:"cache"`
	Serve   ServeConfig `toml:"serve"`
}

// CacheConfig configures the artifact cache.
type CacheConfig struct {
	Dir       string   `toml:"dir"`
	TTL       Duration `toml:"ttl"`
	Disabled  bool     `toml:"disabled"`
	RedisAddr string   `toml:"redis_addr"`
}

// ServeConfig configures the HTTP server.
type ServeConfig struct {
	Addr        string   `toml:"addr"`
	ReadTimeout Duration `toml:"read_timeout"`
}

// Duration is a time.Duration written as a string ("90s", "24h") in TOML.
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText formats the duration.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		Width:   pipeline.DefaultWidth,
		Formats: []string{pipeline.FormatSVG},
		Palette: pipeline.DefaultPalette,
		Scale:   pipeline.DefaultScale,
		Cache: CacheConfig{
			TTL: Duration{cache.TTLArtifact},
		},
		Serve: ServeConfig{
			Addr:        ":8080",
			ReadTimeout: Duration{10 * time.Second},
		},
	}
}

// LoadConfig decodes the TOML file at path over [DefaultConfig]. It returns
// the keys present in the file that no field consumed. When required is
// false a missing file yields the defaults.
func LoadConfig(path string, required bool) (Config, []string, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) && !required {
		return cfg, nil, nil
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return DefaultConfig(), nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "load config %s", path)
	}

	var undecoded []string
	for _, k := range md.Undecoded() {
		undecoded = append(undecoded, k.String())
	}
	return cfg, undecoded, nil
}
