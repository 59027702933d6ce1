// Package config loads kotoba's configuration from flags, environment
// variables, an optional YAML file and a .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// EnvPrefix prefixes every environment variable kotoba reads. Sections are
// separated by a double underscore: KOTOBA_DATA__REPO_DIR sets data.repo_dir.
const EnvPrefix = "KOTOBA_"

// Config holds all application configuration.
type Config struct {
	Server ServerConfig `koanf:"server"`
	Data   DataConfig   `koanf:"data"`
	Store  StoreConfig  `koanf:"store"`
	Log    LogConfig    `koanf:"log"`
	Audio  AudioConfig  `koanf:"audio"`
	Study  StudyConfig  `koanf:"study"`
}

// ServerConfig contains the web server settings.
type ServerConfig struct {
	Addr        string   `koanf:"addr" validate:"required,hostname_port"`
	CORSOrigins []string `koanf:"cors_origins" validate:"dive,url"`
}

// DataConfig locates the card data.
type DataConfig struct {
	Path    string `koanf:"path" validate:"required_without=Repo"`
	Repo    string `koanf:"repo"`
	RepoDir string `koanf:"repo_dir" validate:"required_with=Repo"`
	Watch   bool   `koanf:"watch"`
}

// StoreConfig locates the progress database.
type StoreConfig struct {
	Path string `koanf:"path" validate:"required"`
}

// LogConfig controls logging output.
type LogConfig struct {
	Level  string `koanf:"level" validate:"oneof=debug info warn error"`
	Format string `koanf:"format" validate:"oneof=text json"`
}

// AudioConfig controls terminal audio playback.
type AudioConfig struct {
	// Command is the player program and its arguments; the audio path is
	// appended. An empty command disables terminal playback.
	Command string `koanf:"command"`
}

// StudyConfig tunes study sessions.
type StudyConfig struct {
	SwipeThreshold float64 `koanf:"swipe_threshold" validate:"gt=0"`
}

// AudioArgs splits the audio command into program and arguments.
func (a AudioConfig) AudioArgs() []string {
	return strings.Fields(a.Command)
}

// RegisterFlags adds every configuration flag, with its default, to fs.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("config", "", "Path to a YAML config file")
	fs.String("server.addr", "127.0.0.1:8080", "Address the web UI listens on")
	fs.StringSlice("server.cors_origins", nil, "Origins allowed to call the JSON API")
	fs.String("data.path", "cards.json", "Card data file or directory (relative to the repository when data.repo is set)")
	fs.String("data.repo", "", "Git URL of a card data repository")
	fs.String("data.repo_dir", "repos", "Directory git card repositories are checked out into")
	fs.Bool("data.watch", true, "Reload the card data when it changes on disk")
	fs.String("store.path", "kotoba.db", "Path to the SQLite progress database")
	fs.String("log.level", "info", "Log level: debug, info, warn or error")
	fs.String("log.format", "text", "Log format: text or json")
	fs.String("audio.command", "ffplay -nodisp -autoexit -loglevel quiet", "Command used to play audio in the terminal")
	fs.Float64("study.swipe_threshold", 90, "Drag distance in pixels a swipe must exceed")
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Load builds the configuration. Later sources override earlier ones:
// flag defaults, the YAML file, environment variables, then flags set on
// the command line. A .env file in the working directory is applied to
// the environment first.
func Load(fs *pflag.FlagSet) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	k := koanf.New(".")

	path, _ := fs.GetString("config")
	if path == "" {
		path = os.Getenv(EnvPrefix + "CONFIG")
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.ProviderWithValue(EnvPrefix, ".", envValue), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	// Unset flags only contribute their defaults for keys no other source set.
	if err := k.Load(posflag.Provider(fs, ".", k), nil); err != nil {
		return nil, fmt.Errorf("failed to load flags: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// envValue maps KOTOBA_DATA__REPO_DIR to data.repo_dir. List values are
// comma separated.
func envValue(key, value string) (string, any) {
	key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
	key = strings.ReplaceAll(key, "__", ".")
	if key == "server.cors_origins" {
		var origins []string
		for _, o := range strings.Split(value, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		return key, origins
	}
	return key, value
}
