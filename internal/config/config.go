package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

const MemoryPath = ":memory:"

type Config struct {
	Store   StoreConfig   `yaml:"store" mapstructure:"store"`
	Logging LoggingConfig `yaml:"logging" mapstructure:"logging"`
}

type StoreConfig struct {
	Path          string        `yaml:"path" mapstructure:"path"` // файл SQLite или ":memory:"
	SlowThreshold time.Duration `yaml:"slow_threshold" mapstructure:"slow_threshold"`
}

type LoggingConfig struct {
	Development bool   `yaml:"development" mapstructure:"development"`
	Level       string `yaml:"level" mapstructure:"level"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("store.path", "todo_list.db")
	v.SetDefault("store.slow_threshold", 100*time.Millisecond)
	v.SetDefault("logging.development", false)
	v.SetDefault("logging.level", "warn")
}

// Load: значения по умолчанию < config.yml < переменные TODO_*.
// Пустой path означает необязательный ./config.yml
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("TODO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("не могу прочитать %s: %w", path, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("ошибка парсинга config.yml: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("разбор конфигурации: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.Store.Path) == "" {
		return errors.New("store.path не может быть пустым")
	}
	if c.Store.SlowThreshold < 0 {
		return errors.New("store.slow_threshold не может быть отрицательным")
	}
	if c.Logging.Level != "" {
		if _, err := zapcore.ParseLevel(c.Logging.Level); err != nil {
			return fmt.Errorf("logging.level: %w", err)
		}
	}
	return nil
}

func (c *Config) Ephemeral() bool {
	return c.Store.Path == MemoryPath
}

// YAML отдаёт итоговую конфигурацию в том же виде, что и config.yml
func (c *Config) YAML() ([]byte, error) {
	out, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("сериализация конфигурации: %w", err)
	}
	return out, nil
}
