// Package config загружает конфигурацию сервера из YAML-файла.
package config

import (
	"fmt"
	"os"
	"time"

	yaml "gopkg.in/yaml.v3"
)

// Duration — обёртка time.Duration, разбирающая строки вида "100ms".
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("неверная длительность %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Std возвращает значение как time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Config — полная конфигурация сервера мира.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	World    WorldConfig    `yaml:"world"`
	Autosave AutosaveConfig `yaml:"autosave"`
	Logging  LoggingConfig  `yaml:"logging"`
}

type ServerConfig struct {
	// TickRate — длительность одного кадра игрового цикла.
	TickRate Duration `yaml:"tick_rate"`
}

type WorldConfig struct {
	// Path — директория с файлами мира.
	Path string `yaml:"path"`
	// Name — имя мира (имя файла сохранения).
	Name string `yaml:"name"`
	// Seed — сид генерации; 0 означает случайный.
	Seed int32 `yaml:"seed"`
	// ViewRadius — радиус видимости камеры в мировых единицах.
	ViewRadius float64 `yaml:"view_radius"`
}

type AutosaveConfig struct {
	Enabled  bool          `yaml:"enabled"`
	Interval Duration `yaml:"interval"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // "json" или "console"
}

// Load читает конфигурацию из файла, накладывая её на значения по
// умолчанию. Пустой путь возвращает значения по умолчанию.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("чтение конфигурации %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("разбор конфигурации %s: %w", path, err)
	}
	return cfg, nil
}

// Default возвращает конфигурацию по умолчанию.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			TickRate: Duration(50 * time.Millisecond), // 20 TPS
		},
		World: WorldConfig{
			Path:       "./data",
			Name:       "default",
			Seed:       0,
			ViewRadius: 48,
		},
		Autosave: AutosaveConfig{
			Enabled:  true,
			Interval: Duration(5 * time.Minute),
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
