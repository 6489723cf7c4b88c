package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const envPrefix = "PUNCTUATOR"

type (
	Log struct {
		Level string `mapstructure:"level"`
	}

	Store struct {
		Backend string `mapstructure:"backend"`
	}

	Writer struct {
		BatchSize int `mapstructure:"batch_size"`
		Samples   int `mapstructure:"samples"`
	}

	Talks struct {
		Format string `mapstructure:"format"`
		Strict bool   `mapstructure:"strict"`
	}

	Root struct {
		Log    Log    `mapstructure:"log"`
		Store  Store  `mapstructure:"store"`
		Writer Writer `mapstructure:"writer"`
		Talks  Talks  `mapstructure:"talks"`
	}
)

// New returns a viper instance with defaults and PUNCTUATOR_* env overrides,
// e.g. PUNCTUATOR_WRITER_BATCH_SIZE.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault("log.level", "info")
	v.SetDefault("store.backend", "leveldb")
	v.SetDefault("writer.batch_size", 1000)
	v.SetDefault("writer.samples", 1000)
	v.SetDefault("talks.format", "text")
	v.SetDefault("talks.strict", false)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads path, or config/$CONFIG_ENV/config.yaml when path is empty and
// that file exists, into v and decodes the result.
func Load(v *viper.Viper, path string) (*Root, error) {
	if path == "" {
		env := os.Getenv("CONFIG_ENV")
		if env == "" {
			env = "dev"
		}
		guess := filepath.Join("config", env, "config.yaml")
		if _, err := os.Stat(guess); err == nil {
			path = guess
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	var c Root
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Root) validate() error {
	var errs []error
	if c.Writer.BatchSize <= 0 {
		errs = append(errs, fmt.Errorf("writer.batch_size must be positive, got %d", c.Writer.BatchSize))
	}
	if c.Writer.Samples < 0 {
		errs = append(errs, fmt.Errorf("writer.samples must not be negative, got %d", c.Writer.Samples))
	}
	return errors.Join(errs...)
}
