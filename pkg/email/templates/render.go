package templates

import (
	"errors"
	"fmt"
	"time"

	"github.com/matcornic/hermes/v2"
)

// ErrRender is returned when an email layout cannot be generated.
var ErrRender = errors.New("email.templates.render_failed")

// Config describes the brand shown in the header and footer of every email.
type Config struct {
	ProductName string `env:"BUSINESS_NAME" envDefault:"EyeTech Securities"`
	ProductLink string `env:"BUSINESS_URL" envDefault:"https://eyetechsecurities.in"`
	LogoURL     string `env:"BUSINESS_LOGO_URL"`
}

// Content is a rendered email body.
type Content struct {
	HTML string
	Text string
}

// Renderer turns hermes emails into HTML and plain-text bodies.
// It is safe for concurrent use.
type Renderer struct {
	h hermes.Hermes
}

// NewRenderer builds a Renderer with the default hermes theme.
func NewRenderer(cfg Config) *Renderer {
	return &Renderer{h: hermes.Hermes{
		Theme: new(hermes.Default),
		Product: hermes.Product{
			Name:      cfg.ProductName,
			Link:      cfg.ProductLink,
			Logo:      cfg.LogoURL,
			Copyright: fmt.Sprintf("Copyright © %d %s. All rights reserved.", time.Now().Year(), cfg.ProductName),
		},
	}}
}

// Render produces both bodies for the email.
func (r *Renderer) Render(e hermes.Email) (Content, error) {
	html, err := r.h.GenerateHTML(e)
	if err != nil {
		return Content{}, errors.Join(ErrRender, err)
	}
	text, err := r.h.GeneratePlainText(e)
	if err != nil {
		return Content{}, errors.Join(ErrRender, err)
	}
	return Content{HTML: html, Text: text}, nil
}

// Entries converts ordered key/value pairs into a hermes dictionary.
// Empty values are shown as "N/A".
func Entries(pairs ...string) []hermes.Entry {
	entries := make([]hermes.Entry, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		value := pairs[i+1]
		if value == "" {
			value = "N/A"
		}
		entries = append(entries, hermes.Entry{Key: pairs[i], Value: value})
	}
	return entries
}
