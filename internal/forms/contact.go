package forms

import (
	"fmt"
	"net/http"

	"github.com/eyetechsecurities/webforms/handler"
	"github.com/eyetechsecurities/webforms/pkg/email"
	"github.com/eyetechsecurities/webforms/pkg/logger"
	"github.com/eyetechsecurities/webforms/pkg/sanitizer"
	"github.com/eyetechsecurities/webforms/pkg/validator"
)

const (
	msgContactIncomplete   = "Please fill out all fields."
	msgContactInvalidEmail = "Please enter a valid email address."
)

// ContactRequest is the website contact form.
type ContactRequest struct {
	Name    string `form:"name"`
	Email   string `form:"email"`
	Phone   string `form:"phone"`
	Message string `form:"message"`
}

// clean strips markup and control characters. The name ends up in the
// subject, so it is also kept to one line.
func (req ContactRequest) clean() ContactRequest {
	return ContactRequest{
		Name:    sanitizer.FormLine(req.Name),
		Email:   sanitizer.SanitizeEmail(sanitizer.StripHTML(req.Email)),
		Phone:   sanitizer.FormLine(req.Phone),
		Message: sanitizer.FormText(req.Message),
	}
}

func (req ContactRequest) validate() error {
	return validator.Apply(
		validator.Required("name", req.Name).WithMessage(msgContactIncomplete),
		validator.Required("email", req.Email).WithMessage(msgContactIncomplete),
		validator.Required("phone", req.Phone).WithMessage(msgContactIncomplete),
		validator.Required("message", req.Message).WithMessage(msgContactIncomplete),
		validator.When(req.Email != "",
			validator.ValidEmail("email", req.Email).WithMessage(msgContactInvalidEmail)),
	)
}

func (req ContactRequest) body() string {
	return fmt.Sprintf("Name: %s\nEmail: %s\nPhone: %s\nMessage:\n%s\n",
		req.Name, req.Email, req.Phone, req.Message)
}

func (s *Service) contact(ctx handler.Context, req ContactRequest) handler.Response {
	req = req.clean()
	if err := req.validate(); err != nil {
		return invalid(err)
	}

	// The visitor is only ever Reply-To; From stays the configured sender.
	err := s.send(ctx, "contact", email.SendEmailParams{
		SendTo:   s.cfg.StaffEmail,
		ReplyTo:  req.Email,
		Subject:  "New Contact Form Submission from " + req.Name,
		BodyText: req.body(),
		Tag:      "contact",
	})
	if err != nil {
		return handler.Public(http.StatusInternalServerError, msgContactFailed, err)
	}

	s.log.InfoContext(ctx, "contact form received",
		logger.Form("contact"),
		"visitor_email", sanitizer.MaskEmail(req.Email),
	)
	return handler.Redirect(s.cfg.ContactRedirect)
}
