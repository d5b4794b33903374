// pkg/config/config.go
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Options описывает параметры загрузки конфигурации.
type Options struct {
	Path      string                 // путь к YAML-файлу (опционально)
	EnvPrefix string                 // префикс ENV переменных, например "AUTH"
	Defaults  map[string]interface{} // дефолты до чтения файла и ENV
	Out       interface{}            // указатель на целевую структуру
}

// Load загружает конфиг в opts.Out: defaults + YAML + ENV override.
func Load(opts Options) error {
	if opts.Out == nil {
		return fmt.Errorf("config: Out is required")
	}

	v := viper.New()

	// Шаг 1: зарегистрированные дефолты
	for key, val := range opts.Defaults {
		v.SetDefault(key, val)
	}

	// Шаг 2: environment override
	v.SetEnvPrefix(opts.EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Шаг 3: файл (если задан)
	if opts.Path != "" {
		v.SetConfigFile(opts.Path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("config: read %q: %w", opts.Path, err)
		}
	}

	// Шаг 4: decode
	if err := decode(v.AllSettings(), opts.Out); err != nil {
		return fmt.Errorf("config: decode failed: %w", err)
	}

	return nil
}
