package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"ctchen222/tictactoe-console/internal/game"
	"ctchen222/tictactoe-console/internal/validator"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

const (
	cfgFile = "tictactoe/config.yaml"

	envLogLevel     = "TICTACTOE_LOG_LEVEL"
	envOTLPEndpoint = "TICTACTOE_OTLP_ENDPOINT"

	// MaxBoardSize bounds board sizes accepted from configuration and commands.
	MaxBoardSize = 26

	// RandomStart picks the starting symbol at random for every game.
	RandomStart = "random"
)

// GameConfig holds the defaults used by init_game.
type GameConfig struct {
	DefaultSize       int    `yaml:"default_size" validate:"min=1,max=26"`
	StartingSymbol    string `yaml:"starting_symbol" validate:"start_symbol"`
	DefaultCrossName  string `yaml:"default_cross_name" validate:"required,max=32"`
	DefaultNoughtName string `yaml:"default_nought_name" validate:"required,max=32"`
}

// RenderConfig controls how the board is drawn.
type RenderConfig struct {
	Padding     int    `yaml:"padding" validate:"min=0,max=8"`
	Color       bool   `yaml:"color"`
	CrossColor  string `yaml:"cross_color" validate:"required_if=Color true"`
	NoughtColor string `yaml:"nought_color" validate:"required_if=Color true"`
}

// LogConfig controls the slog handlers.
type LogConfig struct {
	Level string `yaml:"level" validate:"oneof=debug info warn error"`
}

// TelemetryConfig controls the OpenTelemetry providers.
type TelemetryConfig struct {
	ServiceName  string `yaml:"service_name" validate:"required"`
	OTLPEndpoint string `yaml:"otlp_endpoint" validate:"omitempty,hostname_port"`
	StdoutTraces bool   `yaml:"stdout_traces"`
}

type Config struct {
	Game      GameConfig      `yaml:"game"`
	Render    RenderConfig    `yaml:"render"`
	Log       LogConfig       `yaml:"log"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// Default returns the configuration used when no file is found.
func Default() Config {
	return Config{
		Game: GameConfig{
			DefaultSize:       game.ClassicSize,
			StartingSymbol:    string(game.CrossSquare),
			DefaultCrossName:  "player_2",
			DefaultNoughtName: "player_1",
		},
		Render: RenderConfig{
			Padding:     4,
			Color:       true,
			CrossColor:  "#E06C75",
			NoughtColor: "#61AFEF",
		},
		Log: LogConfig{
			Level: "warn",
		},
		Telemetry: TelemetryConfig{
			ServiceName: "tic-tac-toe",
		},
	}
}

// Load reads the configuration from path. With an empty path the XDG config
// directories are searched for tictactoe/config.yaml; a missing file leaves
// the defaults in place. Environment variables override file values.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		found, err := xdg.SearchConfigFile(cfgFile)
		if err == nil {
			path = found
		}
	}
	if path != "" {
		if err := readCfgFile(path, &cfg); err != nil {
			return nil, err
		}
	}

	if level := os.Getenv(envLogLevel); level != "" {
		cfg.Log.Level = level
	}
	if endpoint := os.Getenv(envOTLPEndpoint); endpoint != "" {
		cfg.Telemetry.OTLPEndpoint = endpoint
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks every section against its tags.
func (c *Config) Validate() error {
	if err := validator.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Starting resolves the configured starting symbol for a new game.
func (c GameConfig) Starting() game.Symbol {
	if c.StartingSymbol == RandomStart {
		return game.RandomSymbol()
	}
	s, err := game.ParseSymbol(c.StartingSymbol)
	if err != nil {
		return game.Cross
	}
	return s
}

func readCfgFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("config file %s not found: %w", path, err)
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}
