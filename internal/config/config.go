package config

import (
	"os"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"gopkg.in/yaml.v3"
)

const (
	ErrTypeRead    = "config_read"
	ErrTypeDecode  = "config_decode"
	ErrTypeInvalid = "config_invalid"
)

// View distance bounds, in columns.
const (
	MinViewDistance = 1
	MaxViewDistance = 32
)

// Config holds the settings shared by the voxmesh commands. Values come
// from Default, then an optional YAML file, then flags and environment.
type Config struct {
	Store       string `yaml:"store"        cli:""        env:"VOXMESH_STORE"        help:"Path of the SQLite column store."`
	Assets      string `yaml:"assets"       cli:""        env:"VOXMESH_ASSETS"       help:"Assets root holding models/ and blockstates/ JSON files."`
	LogLevel    string `yaml:"log_level"    cli:""        env:"VOXMESH_LOG_LEVEL"    help:"Log level (debug|info|warning|error)."`
	MetricsAddr string `yaml:"metrics_addr" cli:""        env:"VOXMESH_METRICS_ADDR" help:"Listening address for Prometheus metrics. Empty disables it."`
	Window      Window `yaml:"window"       cli:",hidden" env:"-"                    help:"Window configuration."`
	View        View   `yaml:"view"         cli:",hidden" env:"-"                    help:"View configuration."`
}

type Window struct {
	Width  int `yaml:"width"  cli:",hidden" env:"VOXMESH_WINDOW_WIDTH"  help:"Window width in pixels."`
	Height int `yaml:"height" cli:",hidden" env:"VOXMESH_WINDOW_HEIGHT" help:"Window height in pixels."`
}

type View struct {
	// Distance is the radius in columns around the origin that gets loaded.
	Distance int `yaml:"distance" cli:",hidden" env:"VOXMESH_VIEW_DISTANCE" help:"Radius in columns of the loaded area."`
}

// FileEnv names the environment variable holding the path of the YAML
// configuration file.
const FileEnv = "VOXMESH_CONFIG"

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Store:    "data/columns.sqlite",
		Assets:   "assets",
		LogLevel: logs.InfoLevel.String(),
		Window: Window{
			Width:  1280,
			Height: 720,
		},
		View: View{
			Distance: 4,
		},
	}
}

// Load returns the default configuration overridden by the YAML file at
// path.
func Load(path string) (Config, error) {
	conf := Default()
	if err := LoadFile(path, &conf); err != nil {
		return Config{}, err
	}
	return conf, nil
}

// FromEnv returns the default configuration overridden by the YAML file
// named by FileEnv. Without the variable, it returns Default.
func FromEnv() (Config, error) {
	path := os.Getenv(FileEnv)
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}

// LoadFile decodes the YAML file at path over conf. Fields absent from the
// file keep their current value.
func LoadFile(path string, conf *Config) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return errors.New("could not read config file").
			WithType(ErrTypeRead).
			WithTag("path", path).
			Wrap(err)
	}

	if err := yaml.Unmarshal(b, conf); err != nil {
		return errors.New("could not decode config file").
			WithType(ErrTypeDecode).
			WithTag("path", path).
			Wrap(err)
	}
	return nil
}

// Validate checks the configuration and clamps the view distance to
// [MinViewDistance, MaxViewDistance].
func (c *Config) Validate() error {
	if c.Store == "" {
		return errors.New("store path is empty").WithType(ErrTypeInvalid)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return errors.New("invalid window size").
			WithType(ErrTypeInvalid).
			WithTag("width", c.Window.Width).
			WithTag("height", c.Window.Height)
	}

	c.View.Distance = ClampViewDistance(c.View.Distance)
	return nil
}

// ClampViewDistance clamps d to the supported view distance range.
func ClampViewDistance(d int) int {
	if d < MinViewDistance {
		return MinViewDistance
	}
	if d > MaxViewDistance {
		return MaxViewDistance
	}
	return d
}
