package forms

import (
	"net/http"
	"strconv"

	"github.com/matcornic/hermes/v2"

	"github.com/eyetechsecurities/webforms/handler"
	"github.com/eyetechsecurities/webforms/pkg/email"
	"github.com/eyetechsecurities/webforms/pkg/email/templates"
	"github.com/eyetechsecurities/webforms/pkg/formdata"
	"github.com/eyetechsecurities/webforms/pkg/logger"
	"github.com/eyetechsecurities/webforms/pkg/sanitizer"
	"github.com/eyetechsecurities/webforms/pkg/validator"
)

const (
	notProvided = "Not provided"

	msgMissingFields  = "Missing required fields"
	msgInvalidEmail   = "Invalid email address"
	msgInvalidCameras = "Number of cameras must be a positive whole number"
)

// ServiceBookingRequest is the multipart service booking form. Any file
// part is taken as the photo of the issue.
type ServiceBookingRequest struct {
	Name         string         `form:"name"`
	Phone        string         `form:"phone"`
	Email        string         `form:"email"`
	Address      string         `form:"address"`
	CustomerType string         `form:"customerType"`
	Issue        string         `form:"issue"`
	Comments     string         `form:"comments"`
	Photo        *formdata.File `file:"*"`
}

func (req ServiceBookingRequest) hasPhoto() bool {
	// Browsers send an empty file part when no file was chosen.
	return req.Photo != nil && req.Photo.Size() > 0
}

func (s *Service) validateServiceBooking(req ServiceBookingRequest) error {
	var photoSize int64
	if req.hasPhoto() {
		photoSize = req.Photo.Size()
	}

	return validator.Apply(
		validator.Required("name", req.Name).WithMessage("Missing required field: name"),
		validator.Required("phone", req.Phone).WithMessage("Missing required field: phone"),
		validator.Required("address", req.Address).WithMessage("Missing required field: address"),
		validator.Required("customerType", req.CustomerType).WithMessage("Missing required field: customerType"),
		validator.Required("issue", req.Issue).WithMessage("Missing required field: issue"),
		validator.Required("comments", req.Comments).WithMessage("Missing required field: comments"),
		validator.When(req.Email != "",
			validator.ValidEmail("email", req.Email).WithMessage(msgInvalidEmail)),
		validator.When(req.Phone != "",
			validator.Digits("phone", req.Phone, 10).WithMessage("Invalid phone number")),
		validator.MaxNum("photo", photoSize, s.cfg.MaxUploadSize).WithMessage("Photo is too large"),
	)
}

func (s *Service) serviceBooking(ctx handler.Context, req ServiceBookingRequest) handler.Response {
	if err := s.validateServiceBooking(req); err != nil {
		return invalid(err)
	}

	photoURL := ""
	if req.hasPhoto() {
		url, err := s.uploadPhoto(ctx, req.Photo)
		if err != nil {
			return handler.Public(http.StatusInternalServerError, msgServiceBookingFailed, err)
		}
		photoURL = url
	}

	customerEmail := sanitizer.SanitizeEmail(req.Email)
	body := hermes.Body{
		Title:  "New Service Booking Request",
		Intros: []string{"A customer has requested a service visit."},
		Dictionary: templates.Entries(
			"Name", sanitizer.FormLine(req.Name),
			"Phone", req.Phone,
			"Email", orDefault(customerEmail, notProvided),
			"Address", sanitizer.FormText(req.Address),
			"Customer Type", sanitizer.FormLine(req.CustomerType),
			"Issue", sanitizer.FormText(req.Issue),
			"Comments", sanitizer.FormText(req.Comments),
			"Photo", orDefault(photoURL, notProvided),
		),
	}
	if photoURL != "" {
		body.Actions = []hermes.Action{{
			Instructions: "The customer attached a photo of the issue:",
			Button:       hermes.Button{Text: "View Photo", Link: photoURL},
		}}
	}

	content, err := s.render(hermes.Email{Body: body})
	if err != nil {
		return handler.Public(http.StatusInternalServerError, msgServiceBookingFailed, err)
	}

	err = s.send(ctx, "service-booking", email.SendEmailParams{
		SendTo:   s.cfg.StaffEmail,
		ReplyTo:  customerEmail,
		Subject:  "New Service Booking Request",
		BodyHTML: content.HTML,
		BodyText: content.Text,
		Tag:      "service-booking",
	})
	if err != nil {
		return handler.Public(http.StatusInternalServerError, msgServiceBookingFailed, err)
	}

	s.log.InfoContext(ctx, "service booking received",
		logger.Form("service-booking"),
		"customer_phone", sanitizer.MaskPhone(req.Phone),
		"has_photo", photoURL != "",
	)
	return handler.Message("Email sent successfully")
}

// InstallationBookingRequest is the JSON installation booking.
// ToEmail is validated but the email always goes to the staff address.
type InstallationBookingRequest struct {
	ToEmail          string `json:"toEmail"`
	CustomerName     string `json:"customerName"`
	Phone            string `json:"phone"`
	Email            string `json:"email"`
	Address          string `json:"address"`
	InstallationType string `json:"installationType"`
	NumCameras       Number `json:"numCameras"`
	PreferredDate    string `json:"preferredDate"`
	Comments         string `json:"comments"`
}

func (req InstallationBookingRequest) required() error {
	return validator.Apply(
		validator.Required("toEmail", req.ToEmail),
		validator.Required("customerName", req.CustomerName),
		validator.Required("phone", req.Phone),
		validator.Required("email", req.Email),
		validator.Required("address", req.Address),
		validator.Required("installationType", req.InstallationType),
		validator.Required("numCameras", req.NumCameras.String()),
		validator.Required("preferredDate", req.PreferredDate),
		validator.Required("comments", req.Comments),
	)
}

func (req InstallationBookingRequest) validate() error {
	cameras, camErr := req.NumCameras.Int()
	return validator.Apply(
		validator.ValidEmail("toEmail", req.ToEmail).WithMessage(msgInvalidEmail),
		validator.ValidEmail("email", req.Email).WithMessage(msgInvalidEmail),
		validator.ValidInteger("numCameras", req.NumCameras.String()).WithMessage(msgInvalidCameras),
		validator.When(camErr == nil, validator.Positive("numCameras", cameras).WithMessage(msgInvalidCameras)),
	)
}

// model is shared by the provider template and the local layout.
func (req InstallationBookingRequest) model() map[string]any {
	return map[string]any{
		"customerName":     req.CustomerName,
		"phone":            req.Phone,
		"email":            req.Email,
		"address":          req.Address,
		"installationType": req.InstallationType,
		"numCameras":       req.NumCameras.IntOr(0),
		"preferredDate":    orDefault(req.PreferredDate, "N/A"),
		"comments":         orDefault(req.Comments, "None"),
	}
}

func (s *Service) installationBooking(ctx handler.Context, req InstallationBookingRequest) handler.Response {
	if err := req.required(); err != nil {
		return handler.Public(http.StatusBadRequest, msgMissingFields, err)
	}
	if err := req.validate(); err != nil {
		return invalid(err)
	}

	params := email.SendEmailParams{
		SendTo:        s.cfg.StaffEmail,
		ReplyTo:       sanitizer.SanitizeEmail(req.Email),
		Subject:       "New Installation Booking Submission",
		Tag:           "installation-booking",
		TemplateID:    s.cfg.InstallationBookingTemplateID,
		TemplateModel: req.model(),
	}

	if !params.IsTemplated() {
		content, err := s.render(hermes.Email{Body: hermes.Body{
			Title:  "New Installation Booking Submission",
			Intros: []string{"A customer has booked a CCTV installation."},
			Dictionary: templates.Entries(
				"Customer Name", sanitizer.FormLine(req.CustomerName),
				"Phone", sanitizer.FormLine(req.Phone),
				"Email", sanitizer.SanitizeEmail(req.Email),
				"Address", sanitizer.FormText(req.Address),
				"Installation Type", sanitizer.FormLine(req.InstallationType),
				"Number of Cameras", strconv.Itoa(req.NumCameras.IntOr(0)),
				"Preferred Date", sanitizer.FormLine(orDefault(req.PreferredDate, "N/A")),
				"Comments", sanitizer.FormText(orDefault(req.Comments, "None")),
			),
		}})
		if err != nil {
			return handler.Public(http.StatusInternalServerError, msgInstallationBookingFailed, err)
		}
		params.BodyHTML, params.BodyText = content.HTML, content.Text
	}

	if err := s.send(ctx, "installation-booking", params); err != nil {
		return handler.Public(http.StatusInternalServerError, msgInstallationBookingFailed, err)
	}

	return handler.Message("Installation booking email sent successfully")
}

// invalid reports field errors with the first one as the message.
func invalid(err error) *handler.PublicError {
	message := handler.ErrBadRequest.Key
	if first, ok := validator.ExtractValidationErrors(err).First(); ok {
		message = first.Message
	}
	return handler.Public(http.StatusBadRequest, message, err)
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
