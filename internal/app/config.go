package app

import (
	"github.com/eyetechsecurities/webforms/internal/forms"
	"github.com/eyetechsecurities/webforms/pkg/config"
	"github.com/eyetechsecurities/webforms/pkg/email"
	"github.com/eyetechsecurities/webforms/pkg/email/templates"
	"github.com/eyetechsecurities/webforms/pkg/file"
	"github.com/eyetechsecurities/webforms/pkg/httpserver"
	"github.com/eyetechsecurities/webforms/pkg/invoice"
	"github.com/eyetechsecurities/webforms/pkg/redis"
)

// Config is the full process configuration. It is loaded once at startup
// and handed down; nothing below this package reads the environment.
type Config struct {
	Env         string `env:"APP_ENV" envDefault:"development"`
	ServiceName string `env:"SERVICE_NAME" envDefault:"webforms"`
	LogLevel    string `env:"LOG_LEVEL"`

	Email   email.Config
	Layout  templates.Config
	Invoice invoice.Config
	Storage file.Config
	Forms   forms.Config
	HTTP    httpserver.Config
	Redis   redis.Config
}

// LoadConfig reads Config from the process environment and an optional .env file.
func LoadConfig(opts ...config.Option) (Config, error) {
	return config.Load[Config](opts...)
}
