package config

import "github.com/caarlos0/env/v11"

// App holds the server's own knobs, parsed from APP_* env variables.
type App struct {
	Addr           string   `env:"APP_ADDR" envDefault:":8080"`
	BasePath       string   `env:"APP_BASE_PATH" envDefault:""`
	AllowedOrigins []string `env:"APP_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
}

func NewApp() (*App, error) {
	var cfg App
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
