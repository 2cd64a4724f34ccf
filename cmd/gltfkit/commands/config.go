package commands

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gltfkit/gltfkit-go/pkg/accessor"
	"github.com/gltfkit/gltfkit-go/pkg/glb"
)

// DefaultConfigPath is read when no -config flag is given and the file exists.
const DefaultConfigPath = "gltfkit.yaml"

// Config is the gltfkit configuration file.
type Config struct {
	Log        LogConfig        `yaml:"log"`
	Trace      string           `yaml:"trace"`
	Format     FormatConfig     `yaml:"format"`
	Pack       PackConfig       `yaml:"pack"`
	Shell      ShellConfig      `yaml:"shell"`
	Validation ValidationConfig `yaml:"validate"`
}

// LogConfig configures operational logging.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// FormatConfig configures how decoded values are printed.
type FormatConfig struct {
	Precision   int `yaml:"precision"`
	MaxElements int `yaml:"maxElements"`
}

// PackConfig configures pack defaults.
type PackConfig struct {
	EmbedImages  bool `yaml:"embedImages"`
	EmbedShaders bool `yaml:"embedShaders"`
}

// ShellConfig configures the interactive shell.
type ShellConfig struct {
	// State is the file the shell keeps its document and marks in.
	// Empty disables persistence.
	State string `yaml:"state"`
}

// ValidationConfig adjusts the validation rules.
type ValidationConfig struct {
	// Disable lists rule IDs that are not run.
	Disable []string `yaml:"disable"`

	// Severity overrides rule severities by ID: error, warning or info.
	Severity map[string]string `yaml:"severity"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() Config {
	f := accessor.NewFormatter()
	return Config{
		Log:    LogConfig{Level: "info", Format: "text"},
		Format: FormatConfig{Precision: f.Precision, MaxElements: f.MaxElements},
		Pack:   PackConfig{EmbedImages: true, EmbedShaders: true},
	}
}

// LoadConfig reads path over the defaults. A missing file is an error
// unless optional is set.
func LoadConfig(path string, optional bool) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if optional && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks enumerated and numeric settings.
func (c Config) Validate() error {
	if _, err := parseLevel(c.Log.Level); err != nil {
		return err
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log format: %s (must be text or json)", c.Log.Format)
	}
	if c.Format.Precision < 0 || c.Format.Precision > 17 {
		return fmt.Errorf("invalid precision: %d", c.Format.Precision)
	}
	if c.Format.MaxElements < 0 {
		return fmt.Errorf("invalid maxElements: %d", c.Format.MaxElements)
	}
	return nil
}

// Formatter returns an accessor formatter with the configured settings.
func (c Config) Formatter() *accessor.Formatter {
	f := accessor.NewFormatter()
	f.Precision = c.Format.Precision
	f.MaxElements = c.Format.MaxElements
	return f
}

// PackOptions returns the configured pack options.
func (c Config) PackOptions() glb.PackOptions {
	return glb.PackOptions{EmbedImages: c.Pack.EmbedImages, EmbedShaders: c.Pack.EmbedShaders}
}

// NewLogger builds the operational logger writing to w.
func (c Config) NewLogger(w io.Writer) *slog.Logger {
	level, _ := parseLevel(c.Log.Level)
	opts := &slog.HandlerOptions{Level: level}
	if c.Log.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", s)
	}
}
