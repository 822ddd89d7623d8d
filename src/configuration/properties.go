package configuration

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v6"
)

type (
	Properties struct {
		LogLevel string `env:"LOG_LEVEL" envDefault:"INFO"`

		Assets AssetsProperties     `envPrefix:"ASSETS_"`
		Auth   AuthProperties       `envPrefix:"AUTH_"`
		S3     S3Properties         `envPrefix:"S3_"`
		Server HttpServerProperties `envPrefix:"HTTP_"`
	}

	AssetsProperties struct {
		ServerURL string        `env:"SERVER_URL,required"`
		AuthToken string        `env:"AUTH_TOKEN"`
		Protocol  string        `env:"PROTOCOL,required"`
		AuthMode  string        `env:"AUTH_MODE"`
		Timeout   time.Duration `env:"TIMEOUT" envDefault:"30s"`
	}

	// AuthProperties configures ID token verification on the gateway write
	// endpoints. An empty Host disables it.
	AuthProperties struct {
		Host string `env:"HOST"`
		ID   string `env:"ID"`
	}

	HttpServerProperties struct {
		Name         string        `env:"NAME" envDefault:"assetmapper"`
		Port         string        `env:"PORT" envDefault:"8088"`
		ReadTimeout  time.Duration `env:"READ_TIMEOUT" envDefault:"5s"`
		AllowOrigins []string      `env:"ALLOW_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`
		Pprof        bool          `env:"PPROF" envDefault:"false"`
	}

	// S3Properties points at the bucket assets are imported from. An empty
	// Host disables importing.
	S3Properties struct {
		Host      string `env:"HOST"`
		AccessKey string `env:"ACCESS_KEY"`
		SecretKey string `env:"SECRET_KEY"`
		Bucket    string `env:"BUCKET" envDefault:"assets"`
		UseSSL    bool   `env:"USE_SSL" envDefault:"true"`
	}
)

func Parse(opts ...env.Options) (*Properties, error) {
	config := &Properties{}

	if err := env.Parse(config, opts...); err != nil {
		return nil, fmt.Errorf("read config error: %w", err)
	}
	return config, nil
}

func ReadProperties() *Properties {
	config, err := Parse()
	if err != nil {
		panic(err)
	}
	return config
}

func (a AuthProperties) Enabled() bool {
	return a.Host != ""
}

func (s S3Properties) Enabled() bool {
	return s.Host != ""
}
