package forms

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/matcornic/hermes/v2"

	"github.com/eyetechsecurities/webforms/handler"
	"github.com/eyetechsecurities/webforms/pkg/email"
	"github.com/eyetechsecurities/webforms/pkg/email/templates"
	"github.com/eyetechsecurities/webforms/pkg/invoice"
	"github.com/eyetechsecurities/webforms/pkg/logger"
	"github.com/eyetechsecurities/webforms/pkg/sanitizer"
	"github.com/eyetechsecurities/webforms/pkg/validator"
)

const (
	msgInvalidAmount = "Amount must be a positive number"
	msgInvalidPrice  = "Price must be a number that is not negative"
	msgInvalidCount  = "Number of cameras must be a whole number"
)

// InvoiceRequest is a service visit invoice sent to the customer.
type InvoiceRequest struct {
	ToEmail       string `json:"toEmail"`
	CustomerName  string `json:"customerName"`
	InvoiceNumber string `json:"invoiceNumber"`
	InvoiceDate   string `json:"invoiceDate"`
	Amount        Number `json:"amount"`
	Issue         string `json:"issue"`
	Solution      string `json:"solution"`
}

func (req InvoiceRequest) required() error {
	return validator.Apply(
		validator.Required("toEmail", req.ToEmail),
		validator.Required("customerName", req.CustomerName),
		validator.Required("invoiceNumber", req.InvoiceNumber),
		validator.Required("invoiceDate", req.InvoiceDate),
		validator.Required("amount", req.Amount.String()),
		validator.Required("issue", req.Issue),
		validator.Required("solution", req.Solution),
	)
}

func (req InvoiceRequest) validate() error {
	amount, amountErr := req.Amount.Float()
	return validator.Apply(
		validator.ValidEmail("toEmail", req.ToEmail).WithMessage(msgInvalidEmail),
		validator.SingleLine("invoiceNumber", req.InvoiceNumber),
		validator.ValidNumber("amount", req.Amount.String()).WithMessage(msgInvalidAmount),
		validator.When(amountErr == nil, validator.PositiveAmount("amount", amount).WithMessage(msgInvalidAmount)),
	)
}

func (req InvoiceRequest) invoice() invoice.Invoice {
	return invoice.Invoice{
		Number:       req.InvoiceNumber,
		Date:         req.InvoiceDate,
		CustomerName: sanitizer.FormLine(req.CustomerName),
		Lines: []invoice.Line{{
			Description: "CCTV Service - " + sanitizer.FormLine(req.Issue),
			Amount:      req.Amount.FloatOr(0),
		}},
		Notes: []invoice.Note{{
			Heading: "Solution Provided:",
			Body:    sanitizer.FormText(req.Solution),
		}},
	}
}

func (req InvoiceRequest) model() map[string]any {
	return map[string]any{
		"customerName":  req.CustomerName,
		"invoiceNumber": req.InvoiceNumber,
		"invoiceDate":   req.InvoiceDate,
		"issue":         req.Issue,
		"solution":      req.Solution,
		"amount":        plainAmount(req.Amount.FloatOr(0)),
	}
}

func (s *Service) serviceInvoice(ctx handler.Context, req InvoiceRequest) handler.Response {
	if err := req.required(); err != nil {
		return handler.Public(http.StatusBadRequest, msgMissingFields, err)
	}
	if err := req.validate(); err != nil {
		return invalid(err)
	}

	err := s.sendInvoice(ctx, "invoice", req.ToEmail, req.invoice(), email.SendEmailParams{
		Subject:       fmt.Sprintf("Your Invoice %s from %s", req.InvoiceNumber, s.cfg.BusinessName),
		TemplateID:    s.cfg.InvoiceTemplateID,
		TemplateModel: req.model(),
	}, hermes.Body{
		Name:   sanitizer.FormLine(req.CustomerName),
		Intros: []string{"Thank you for choosing " + s.cfg.BusinessName + ". Your invoice for the service visit is attached."},
		Dictionary: templates.Entries(
			"Invoice Number", req.InvoiceNumber,
			"Invoice Date", req.InvoiceDate,
			"Issue", sanitizer.FormText(req.Issue),
			"Solution", sanitizer.FormText(req.Solution),
			"Amount", invoice.FormatAmount(req.Amount.FloatOr(0)),
		),
	})
	if err != nil {
		return handler.Public(http.StatusInternalServerError, msgInvoiceFailed, err)
	}

	return handler.Message("Invoice email sent successfully")
}

// InstallationInvoiceRequest is an installation invoice sent to the customer.
// Optional fields left blank are printed as N/A.
type InstallationInvoiceRequest struct {
	ToEmail          string `json:"toEmail"`
	CustomerName     string `json:"customerName"`
	InvoiceNumber    string `json:"invoiceNumber"`
	InvoiceDate      string `json:"invoiceDate"`
	NumCameras       Number `json:"numCameras"`
	Price            Number `json:"price"`
	SerialNumber     string `json:"serialNumber"`
	Address          string `json:"address"`
	InstallationType string `json:"installationType"`
	PreferredDate    string `json:"preferredDate"`
	Comments         string `json:"comments"`
}

func (req InstallationInvoiceRequest) required() error {
	return validator.Apply(
		validator.Required("toEmail", req.ToEmail),
		validator.Required("customerName", req.CustomerName),
		validator.Required("invoiceNumber", req.InvoiceNumber),
		validator.Required("invoiceDate", req.InvoiceDate),
	)
}

func (req InstallationInvoiceRequest) validate() error {
	price, priceErr := req.Price.Float()
	cameras, camErr := req.NumCameras.Int()
	return validator.Apply(
		validator.ValidEmail("toEmail", req.ToEmail).WithMessage(msgInvalidEmail),
		validator.SingleLine("invoiceNumber", req.InvoiceNumber),
		validator.When(!req.Price.IsZero(),
			validator.ValidNumber("price", req.Price.String()).WithMessage(msgInvalidPrice)),
		validator.When(priceErr == nil,
			validator.NonNegativeAmount("price", price).WithMessage(msgInvalidPrice)),
		validator.When(!req.NumCameras.IsZero(),
			validator.ValidInteger("numCameras", req.NumCameras.String()).WithMessage(msgInvalidCount)),
		validator.When(camErr == nil,
			validator.MinNum("numCameras", cameras, 0).WithMessage(msgInvalidCount)),
	)
}

// withDefaults fills blank optional text fields with N/A.
func (req InstallationInvoiceRequest) withDefaults() InstallationInvoiceRequest {
	for _, f := range []*string{&req.SerialNumber, &req.Address, &req.InstallationType, &req.PreferredDate, &req.Comments} {
		*f = orDefault(*f, "N/A")
	}
	return req
}

func (req InstallationInvoiceRequest) invoice() invoice.Invoice {
	details := strings.Join([]string{
		"Serial Number: " + sanitizer.FormLine(req.SerialNumber),
		"Address: " + sanitizer.FormLine(req.Address),
		"Preferred Date: " + sanitizer.FormLine(req.PreferredDate),
		"Comments: " + sanitizer.FormText(req.Comments),
	}, "\n")

	return invoice.Invoice{
		Number:       req.InvoiceNumber,
		Date:         req.InvoiceDate,
		CustomerName: sanitizer.FormLine(req.CustomerName),
		Lines: []invoice.Line{{
			Description: fmt.Sprintf("CCTV Installation - %s (%d cameras)",
				sanitizer.FormLine(req.InstallationType), req.NumCameras.IntOr(0)),
			Amount: req.Price.FloatOr(0),
		}},
		Notes: []invoice.Note{{
			Heading: "Installation Details:",
			Body:    details,
		}},
	}
}

func (req InstallationInvoiceRequest) model() map[string]any {
	return map[string]any{
		"customerName":     req.CustomerName,
		"invoiceNumber":    req.InvoiceNumber,
		"invoiceDate":      req.InvoiceDate,
		"installationType": req.InstallationType,
		"numCameras":       req.NumCameras.IntOr(0),
		"price":            plainAmount(req.Price.FloatOr(0)),
		"serialNumber":     req.SerialNumber,
		"address":          req.Address,
		"preferredDate":    req.PreferredDate,
		"comments":         req.Comments,
	}
}

func (s *Service) installationInvoice(ctx handler.Context, req InstallationInvoiceRequest) handler.Response {
	if err := req.required(); err != nil {
		return handler.Public(http.StatusBadRequest, msgMissingFields, err)
	}
	if err := req.validate(); err != nil {
		return invalid(err)
	}
	req = req.withDefaults()

	err := s.sendInvoice(ctx, "installation-invoice", req.ToEmail, req.invoice(), email.SendEmailParams{
		Subject:       fmt.Sprintf("Your Installation Invoice %s from %s", req.InvoiceNumber, s.cfg.BusinessName),
		TemplateID:    s.cfg.InstallationInvoiceTemplateID,
		TemplateModel: req.model(),
	}, hermes.Body{
		Name:   sanitizer.FormLine(req.CustomerName),
		Intros: []string{"Thank you for choosing " + s.cfg.BusinessName + ". Your installation invoice is attached."},
		Dictionary: templates.Entries(
			"Invoice Number", req.InvoiceNumber,
			"Invoice Date", req.InvoiceDate,
			"Installation Type", sanitizer.FormLine(req.InstallationType),
			"Number of Cameras", strconv.Itoa(req.NumCameras.IntOr(0)),
			"Serial Number", sanitizer.FormLine(req.SerialNumber),
			"Address", sanitizer.FormText(req.Address),
			"Preferred Date", sanitizer.FormLine(req.PreferredDate),
			"Comments", sanitizer.FormText(req.Comments),
			"Price", invoice.FormatAmount(req.Price.FloatOr(0)),
		),
	})
	if err != nil {
		return handler.Public(http.StatusInternalServerError, msgInstallationInvoiceFailed, err)
	}

	return handler.Message("Installation invoice email sent successfully")
}

// sendInvoice renders the PDF and mails it to the customer. params carries
// the subject and template; body is the local layout used without a template.
func (s *Service) sendInvoice(
	ctx context.Context,
	form, to string,
	inv invoice.Invoice,
	params email.SendEmailParams,
	body hermes.Body,
) error {
	pdf, err := s.invoices.Render(inv)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUpstream, err)
	}

	params.SendTo = sanitizer.SanitizeEmail(to)
	params.Tag = form
	params.Attachments = []email.Attachment{{
		Name:        invoice.Filename(inv.Number),
		ContentType: "application/pdf",
		Data:        pdf,
	}}

	if !params.IsTemplated() {
		content, err := s.render(hermes.Email{Body: body})
		if err != nil {
			return err
		}
		params.BodyHTML, params.BodyText = content.HTML, content.Text
	}

	if err := s.send(ctx, form, params); err != nil {
		return err
	}

	s.log.InfoContext(ctx, "invoice sent",
		logger.Form(form),
		logger.InvoiceNumber(inv.Number),
		logger.Size(int64(len(pdf))),
	)
	return nil
}

// plainAmount formats v with two decimals and no grouping, for template models.
func plainAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
