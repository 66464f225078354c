package email

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

// emailRegex is deliberately loose: something@something.tld.
var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// IsValidAddress reports whether s looks like an email address.
func IsValidAddress(s string) bool {
	return emailRegex.MatchString(s)
}

// EmailSender represents an interface for sending emails.
type EmailSender interface {
	SendEmail(ctx context.Context, params SendEmailParams) error
}

// SendEmailParams represents the parameters for sending an email.
// A message is either plain (Subject plus at least one body) or templated
// (TemplateID with TemplateModel).
type SendEmailParams struct {
	SendTo        string         `json:"send_to"`
	ReplyTo       string         `json:"reply_to,omitempty"`
	Subject       string         `json:"subject"`
	BodyHTML      string         `json:"body_html,omitempty"`
	BodyText      string         `json:"body_text,omitempty"`
	Tag           string         `json:"tag,omitempty"`
	TemplateID    int64          `json:"template_id,omitempty"`
	TemplateModel map[string]any `json:"template_model,omitempty"`
	Attachments   []Attachment   `json:"-"`
}

// Attachment is a file sent along with the email.
type Attachment struct {
	Name        string
	ContentType string
	Data        []byte
}

// IsTemplated reports whether the message is rendered by the provider.
func (p SendEmailParams) IsTemplated() bool {
	return p.TemplateID > 0
}

// Validate checks that the params can be delivered.
func (p SendEmailParams) Validate() error {
	if strings.TrimSpace(p.SendTo) == "" {
		return fmt.Errorf("%w: SendTo is required", ErrInvalidParams)
	}
	if !emailRegex.MatchString(p.SendTo) {
		return fmt.Errorf("%w: SendTo must be a valid email address", ErrInvalidParams)
	}
	if p.ReplyTo != "" && !emailRegex.MatchString(p.ReplyTo) {
		return fmt.Errorf("%w: ReplyTo must be a valid email address", ErrInvalidParams)
	}

	if !p.IsTemplated() {
		if strings.TrimSpace(p.Subject) == "" {
			return fmt.Errorf("%w: Subject is required", ErrInvalidParams)
		}
		if strings.TrimSpace(p.BodyHTML) == "" && strings.TrimSpace(p.BodyText) == "" {
			return fmt.Errorf("%w: BodyHTML or BodyText is required", ErrInvalidParams)
		}
	}

	for i, a := range p.Attachments {
		if strings.TrimSpace(a.Name) == "" {
			return fmt.Errorf("%w: Attachments[%d].Name is required", ErrInvalidParams, i)
		}
		if len(a.Data) == 0 {
			return fmt.Errorf("%w: Attachments[%d] is empty", ErrInvalidParams, i)
		}
	}

	return nil
}
