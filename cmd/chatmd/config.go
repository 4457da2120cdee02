package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/chatmd"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Config holds all application configuration values.
// It is populated from config files, environment variables, and command-line flags.
type Config struct {
	Store   StoreConfig   `mapstructure:"store"`
	Replay  ReplayConfig  `mapstructure:"replay"`
	Render  RenderConfig  `mapstructure:"render"`
	Markers MarkersConfig `mapstructure:"markers"`
	Log     LogConfig     `mapstructure:"log"`
}

// StoreConfig locates the chat store.
type StoreConfig struct {
	Dir string `mapstructure:"dir"` // Directory holding one JSON file per chat
}

// ReplayConfig paces recorded streams.
type ReplayConfig struct {
	Rate  float64 `mapstructure:"rate"`  // Chunks per second; 0 disables pacing
	Chunk int     `mapstructure:"chunk"` // Runes per chunk for text recordings
}

// RenderConfig controls terminal output.
type RenderConfig struct {
	Width     int    `mapstructure:"width"`      // Wrap width for non-interactive output
	CodeStyle string `mapstructure:"code_style"` // Chroma style name
}

// MarkersConfig names the reasoning delimiters.
type MarkersConfig struct {
	Open  string `mapstructure:"open"`
	Close string `mapstructure:"close"`
}

// LogConfig controls the diagnostic log. The terminal belongs to the TUI, so
// logs only go to a file.
type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// ReasoningMarkers returns the configured reasoning markers.
func (c Config) ReasoningMarkers() chatmd.Markers {
	return chatmd.Markers{Open: c.Markers.Open, Close: c.Markers.Close}
}

func setDefaults(v *viper.Viper) {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	v.SetDefault("store.dir", filepath.Join(home, ".chatmd", "chats"))
	v.SetDefault("replay.rate", 60.0)
	v.SetDefault("replay.chunk", 4)
	v.SetDefault("render.width", 80)
	v.SetDefault("render.code_style", "monokai")
	v.SetDefault("markers.open", chatmd.DefaultOpenMarker)
	v.SetDefault("markers.close", chatmd.DefaultCloseMarker)
	v.SetDefault("log.file", "")
	v.SetDefault("log.level", "info")
}

// loadConfig merges defaults, the config file, environment variables and
// bound flags. An explicit config path must exist; the default locations
// are optional.
func loadConfig(v *viper.Viper, path string) (Config, error) {
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(".chatmd")
		v.SetConfigType("yaml")
		// 1. Current directory (project config)
		v.AddConfigPath(".")
		// 2. Home directory (global config)
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	v.SetEnvPrefix("CHATMD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if cfg.Markers.Open == "" || cfg.Markers.Close == "" {
		return Config{}, fmt.Errorf("markers.open and markers.close must be set: %w", chatmd.ErrValidation)
	}
	if cfg.Replay.Chunk < 1 {
		return Config{}, fmt.Errorf("replay.chunk must be positive: %w", chatmd.ErrValidation)
	}
	return cfg, nil
}

// bindFlags binds persistent flags to viper keys so flags override config
// file and environment values.
func bindFlags(v *viper.Viper, cmd *cobra.Command) {
	// Errors are ignored as the flags are guaranteed to exist.
	_ = v.BindPFlag("store.dir", cmd.PersistentFlags().Lookup("store-dir"))
	_ = v.BindPFlag("render.width", cmd.PersistentFlags().Lookup("width"))
	_ = v.BindPFlag("render.code_style", cmd.PersistentFlags().Lookup("code-style"))
	_ = v.BindPFlag("markers.open", cmd.PersistentFlags().Lookup("open-marker"))
	_ = v.BindPFlag("markers.close", cmd.PersistentFlags().Lookup("close-marker"))
	_ = v.BindPFlag("log.file", cmd.PersistentFlags().Lookup("log-file"))
	_ = v.BindPFlag("log.level", cmd.PersistentFlags().Lookup("log-level"))
}
