package forms

import (
	"time"

	"github.com/eyetechsecurities/webforms/pkg/ratelimiter"
)

// Config holds the settings shared by the form handlers.
//
// A zero template ID means the email body is rendered locally with hermes
// instead of by a provider-side template.
type Config struct {
	StaffEmail   string `env:"FORMS_STAFF_EMAIL" envDefault:"eyetechsecurities@gmail.com"`
	BusinessName string `env:"BUSINESS_NAME" envDefault:"EyeTech Securities"`

	InstallationBookingTemplateID int64 `env:"FORMS_INSTALLATION_BOOKING_TEMPLATE_ID"`
	InvoiceTemplateID             int64 `env:"FORMS_INVOICE_TEMPLATE_ID"`
	InstallationInvoiceTemplateID int64 `env:"FORMS_INSTALLATION_INVOICE_TEMPLATE_ID"`

	MaxUploadSize   int64         `env:"FORMS_MAX_UPLOAD_SIZE" envDefault:"5242880"`
	ContactRedirect string        `env:"FORMS_CONTACT_REDIRECT" envDefault:"/thank-you.html"`
	SendTimeout     time.Duration `env:"FORMS_SEND_TIMEOUT" envDefault:"20s"`

	// Throttling is off unless RateLimitBurst is positive. When on, each
	// client IP may submit RateLimitBurst forms at once and one more every
	// RateLimitInterval. Client IPs come from forwarding headers as sent
	// (see clientip.FromRequest), so a client that forges them gets a fresh
	// bucket; enable this only behind a proxy that overwrites those headers.
	RateLimitBurst    int           `env:"FORMS_RATE_LIMIT_BURST" envDefault:"0"`
	RateLimitInterval time.Duration `env:"FORMS_RATE_LIMIT_INTERVAL" envDefault:"1m"`
}

// RateLimit returns the token bucket for submissions and false when
// throttling is off.
func (c Config) RateLimit() (ratelimiter.Config, bool) {
	if c.RateLimitBurst <= 0 || c.RateLimitInterval <= 0 {
		return ratelimiter.Config{}, false
	}
	return ratelimiter.Config{
		Capacity:       c.RateLimitBurst,
		RefillRate:     1,
		RefillInterval: c.RateLimitInterval,
	}, true
}

// DefaultConfig returns the values used when no environment is set.
func DefaultConfig() Config {
	return Config{
		StaffEmail:      "eyetechsecurities@gmail.com",
		BusinessName:    "EyeTech Securities",
		MaxUploadSize:   5 << 20,
		ContactRedirect: "/thank-you.html",
		SendTimeout:     20 * time.Second,

		RateLimitInterval: time.Minute,
	}
}
