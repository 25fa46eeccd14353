package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/milk9111/spritescene/common"
)

const (
	EnvPrefix  = "SPRITESCENE"
	DotEnvFile = ".env"
)

type Config struct {
	Window      WindowConfig `mapstructure:"window"`
	TPS         int          `mapstructure:"tps"`
	StateDir    string       `mapstructure:"state_dir"`
	SceneFile   string       `mapstructure:"scene_file"`
	Scene       string       `mapstructure:"scene"`
	InitialMenu string       `mapstructure:"initial_menu"`
	Debug       bool         `mapstructure:"debug"`
	Watch       bool         `mapstructure:"watch"`
	Log         LogConfig    `mapstructure:"log"`
}

type WindowConfig struct {
	Width  int    `mapstructure:"width"`
	Height int    `mapstructure:"height"`
	Title  string `mapstructure:"title"`
}

// LogConfig controls the logger. An empty File logs to stdout only.
type LogConfig struct {
	Level      string `mapstructure:"level"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("window.width", common.BaseWidth)
	v.SetDefault("window.height", common.BaseHeight)
	v.SetDefault("window.title", common.Title)
	v.SetDefault("tps", common.TPS)
	v.SetDefault("state_dir", ".")
	v.SetDefault("scene_file", "")
	v.SetDefault("scene", "test")
	v.SetDefault("initial_menu", "")
	v.SetDefault("debug", false)
	v.SetDefault("watch", false)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size_mb", 10)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age_days", 28)
}

// Load reads .env, then the config file, then SPRITESCENE_* environment
// overrides. With an empty path an optional ./config.yaml is used.
func Load(path string) (*Config, error) {
	if err := loadDotEnv(DotEnvFile); err != nil {
		return nil, err
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %q: %w", path, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("config: read config.yaml: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func loadDotEnv(file string) error {
	if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("config: load %q: %w", file, err)
	}
	return nil
}

func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("config: invalid window size %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.TPS <= 0 {
		return fmt.Errorf("config: invalid tps %d", c.TPS)
	}
	if c.Scene == "" {
		return fmt.Errorf("config: empty scene name")
	}
	return nil
}
