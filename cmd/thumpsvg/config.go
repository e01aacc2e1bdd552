package main

import (
	"io"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/putara/thumpsvg"
	"github.com/putara/thumpsvg/renderers"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// Config is the optional YAML configuration file. Zero values keep the
// library defaults.
type Config struct {
	Backend       string `yaml:"backend"`
	Workaround    *bool  `yaml:"workaround"`
	MaxInputSize  int64  `yaml:"max_input_size"`
	MaxOutputSize int64  `yaml:"max_output_size"`
	LogLevel      string `yaml:"log_level"`
}

// LoadConfig reads a configuration file. An empty filename returns the
// default configuration.
func LoadConfig(filename string) (Config, error) {
	config := Config{}
	if filename == "" {
		return config, nil
	}
	content, err := os.ReadFile(filename)
	if err != nil {
		return config, errors.Wrap(err, "config")
	}
	if err := yaml.Unmarshal(content, &config); err != nil {
		return config, errors.Wrapf(err, "config %s", filename)
	}
	return config, nil
}

// Options returns renderer options with the configured overrides applied.
func (c Config) Options(logger *zerolog.Logger) thumpsvg.Options {
	opts := thumpsvg.DefaultOptions()
	if c.Workaround != nil {
		opts.Workaround = *c.Workaround
	}
	if c.MaxInputSize != 0 {
		opts.MaxInputSize = c.MaxInputSize
		opts.Sanitize.MaxInput = c.MaxInputSize
	}
	if c.MaxOutputSize != 0 {
		opts.Sanitize.MaxOutput = c.MaxOutputSize
	}
	opts.Logger = logger
	return opts
}

// Logger returns a console logger writing to w at the configured level, or
// at debug level when verbose is set.
func (c Config) Logger(w io.Writer, verbose bool) (zerolog.Logger, error) {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	} else if c.LogLevel != "" {
		var err error
		if level, err = zerolog.ParseLevel(c.LogLevel); err != nil {
			return zerolog.Nop(), errors.Wrap(err, "log_level")
		}
	}
	writer := zerolog.NewConsoleWriter(func(cw *zerolog.ConsoleWriter) {
		cw.Out = w
		cw.TimeFormat = time.TimeOnly
	})
	return zerolog.New(writer).With().Timestamp().Logger().Level(level), nil
}

// Common holds the flags shared by the rendering commands.
type Common struct {
	Config  string
	Backend string
	Verbose bool
}

// setup loads the configuration and returns a renderer and the logger it
// writes to. A backend flag overrides the configured backend.
func setup(common Common) (*thumpsvg.Renderer, zerolog.Logger, error) {
	config, err := LoadConfig(common.Config)
	if err != nil {
		return nil, zerolog.Nop(), err
	}
	logger, err := config.Logger(os.Stderr, common.Verbose)
	if err != nil {
		return nil, zerolog.Nop(), err
	}

	name := config.Backend
	if common.Backend != "" {
		name = common.Backend
	}
	backend, err := renderers.New(name)
	if err != nil {
		return nil, logger, err
	}
	return thumpsvg.New(backend, config.Options(&logger)), logger, nil
}
