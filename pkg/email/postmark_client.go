package email

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/mrz1836/postmark"
)

const defaultAttachmentType = "application/octet-stream"

type postmarkClient struct {
	client *postmark.Client
	config Config
}

// NewPostmarkClient creates a Postmark-backed email sender.
// Both tokens are required for runtime operation.
func NewPostmarkClient(cfg Config) (EmailSender, error) {
	if cfg.PostmarkServerToken == "" {
		return nil, fmt.Errorf("%w: PostmarkServerToken is required", ErrInvalidConfig)
	}
	if cfg.PostmarkAccountToken == "" {
		return nil, fmt.Errorf("%w: PostmarkAccountToken is required", ErrInvalidConfig)
	}
	if cfg.SenderEmail == "" {
		return nil, fmt.Errorf("%w: SenderEmail is required", ErrInvalidConfig)
	}
	if !emailRegex.MatchString(cfg.SenderEmail) {
		return nil, fmt.Errorf("%w: SenderEmail must be a valid email address", ErrInvalidConfig)
	}
	if cfg.SupportEmail == "" {
		return nil, fmt.Errorf("%w: SupportEmail is required", ErrInvalidConfig)
	}
	if !emailRegex.MatchString(cfg.SupportEmail) {
		return nil, fmt.Errorf("%w: SupportEmail must be a valid email address", ErrInvalidConfig)
	}

	return &postmarkClient{
		client: postmark.NewClient(cfg.PostmarkServerToken, cfg.PostmarkAccountToken),
		config: cfg,
	}, nil
}

// MustNewPostmarkClient creates a Postmark client that panics on invalid config.
func MustNewPostmarkClient(cfg Config) EmailSender {
	client, err := NewPostmarkClient(cfg)
	if err != nil {
		panic(err)
	}
	return client
}

// NewSender picks the Postmark client when tokens are set and the DevSender otherwise.
func NewSender(cfg Config) (EmailSender, error) {
	if cfg.UsePostmark() {
		return NewPostmarkClient(cfg)
	}
	return NewDevSender(cfg.DevOutputDir), nil
}

// SendEmail implements EmailSender using Postmark's transactional API.
// Opens are tracked; link tracking is limited to HTML bodies.
func (c *postmarkClient) SendEmail(ctx context.Context, params SendEmailParams) error {
	if err := params.Validate(); err != nil {
		return err
	}

	replyTo := params.ReplyTo
	if replyTo == "" {
		replyTo = c.config.SupportEmail
	}

	var (
		resp postmark.EmailResponse
		err  error
	)
	if params.IsTemplated() {
		resp, err = c.client.SendTemplatedEmail(ctx, postmark.TemplatedEmail{
			TemplateID:    params.TemplateID,
			TemplateModel: templateModel(params),
			From:          c.config.SenderEmail,
			To:            params.SendTo,
			ReplyTo:       replyTo,
			Tag:           params.Tag,
			TrackOpens:    true,
			Attachments:   toPostmarkAttachments(params.Attachments),
		})
	} else {
		resp, err = c.client.SendEmail(ctx, postmark.Email{
			From:        c.config.SenderEmail,
			ReplyTo:     replyTo,
			To:          params.SendTo,
			Subject:     params.Subject,
			Tag:         params.Tag,
			HTMLBody:    params.BodyHTML,
			TextBody:    params.BodyText,
			TrackOpens:  true,
			TrackLinks:  "HtmlOnly",
			Attachments: toPostmarkAttachments(params.Attachments),
		})
	}
	if err != nil {
		return errors.Join(ErrSendFailed, err)
	}
	if resp.ErrorCode > 0 {
		return errors.Join(
			ErrSendFailed,
			fmt.Errorf("postmark error: %d - %s", resp.ErrorCode, resp.Message),
		)
	}
	return nil
}

// templateModel exposes the subject to the template so layouts can use {{subject}}.
func templateModel(params SendEmailParams) map[string]any {
	model := make(map[string]any, len(params.TemplateModel)+1)
	for k, v := range params.TemplateModel {
		model[k] = v
	}
	if _, ok := model["subject"]; !ok && params.Subject != "" {
		model["subject"] = params.Subject
	}
	return model
}

func toPostmarkAttachments(in []Attachment) []postmark.Attachment {
	if len(in) == 0 {
		return nil
	}
	out := make([]postmark.Attachment, 0, len(in))
	for _, a := range in {
		contentType := a.ContentType
		if contentType == "" {
			contentType = defaultAttachmentType
		}
		out = append(out, postmark.Attachment{
			Name:        a.Name,
			Content:     base64.StdEncoding.EncodeToString(a.Data),
			ContentType: contentType,
		})
	}
	return out
}
