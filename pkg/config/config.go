// Package config loads application configuration from a YAML file and
// environment variables. Priority: ENV > YAML > defaults.
package config

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/tianhanzi/tian/pkg/curriculum"
)

// Config is the root application configuration.
type Config struct {
	Data       DataConfig       `yaml:"data"`
	Curriculum CurriculumConfig `yaml:"curriculum"`
	Log        LogConfig        `yaml:"log"`
}

// DataConfig locates the raw input assets and the output database.
type DataConfig struct {
	HSKDir         string `yaml:"hsk_dir"         env:"TIAN_HSK_DIR"         env-default:"data/HSK-3.0"`
	DictionaryPath string `yaml:"dictionary_path" env:"TIAN_DICTIONARY_PATH" env-default:"data/dictionary.json"`
	DBPath         string `yaml:"db_path"         env:"TIAN_DB_PATH"         env-default:"tian.db"`
	OutputDir      string `yaml:"output_dir"      env:"TIAN_OUTPUT_DIR"      env-default:"data"`
}

// CurriculumConfig tunes the level-assignment pipeline.
type CurriculumConfig struct {
	Tiers     []int  `yaml:"tiers"      env:"TIAN_TIERS"      env-default:"1,2,3"`
	MinUnlock int    `yaml:"min_unlock" env:"TIAN_MIN_UNLOCK" env-default:"20"`
	Weighting string `yaml:"weighting"  env:"TIAN_WEIGHTING"  env-default:"tier"`
	Workers   int    `yaml:"workers"    env:"TIAN_WORKERS"    env-default:"4"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `yaml:"level" env:"TIAN_LOG_LEVEL" env-default:"info"`
}

// Load reads configuration from a YAML file and environment variables. The
// file path comes from TIAN_CONFIG (fallback "./config.yaml"); a missing
// default file is fine, config then comes from ENV + defaults only.
func Load() (*Config, error) {
	var cfg Config

	path := os.Getenv("TIAN_CONFIG")
	explicitPath := path != ""
	if !explicitPath {
		path = "./config.yaml"
	}

	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else if explicitPath {
		return nil, fmt.Errorf("config: file %s: %w", path, err)
	} else {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("config: read env: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}

	return &cfg, nil
}

// Validate checks value ranges and enumerations.
func (c *Config) Validate() error {
	if c.Curriculum.MinUnlock < 1 {
		return fmt.Errorf("curriculum.min_unlock must be positive, got %d", c.Curriculum.MinUnlock)
	}
	if c.Curriculum.Workers < 1 {
		return fmt.Errorf("curriculum.workers must be positive, got %d", c.Curriculum.Workers)
	}
	if len(c.Curriculum.Tiers) == 0 {
		return fmt.Errorf("curriculum.tiers must not be empty")
	}
	for _, t := range c.Curriculum.Tiers {
		if t < 1 {
			return fmt.Errorf("curriculum.tiers entries must be positive, got %d", t)
		}
	}
	if _, err := curriculum.ParseWeighting(c.Curriculum.Weighting); err != nil {
		return err
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug/info/warn/error, got %q", c.Log.Level)
	}
	return nil
}
