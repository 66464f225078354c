// Package email sends transactional emails through a provider-agnostic
// EmailSender interface.
//
// Two implementations are provided:
//   - the Postmark client for production delivery, supporting plain and
//     templated messages with attachments
//   - DevSender for local development, which writes each message to disk
//
// NewSender picks one from Config: Postmark when both tokens are set,
// DevSender otherwise.
//
// # Usage
//
//	sender, err := email.NewSender(cfg)
//	if err != nil {
//		return err
//	}
//
//	err = sender.SendEmail(ctx, email.SendEmailParams{
//		SendTo:   "staff@example.com",
//		ReplyTo:  "customer@example.com",
//		Subject:  "New Service Booking Request",
//		BodyHTML: content.HTML,
//		BodyText: content.Text,
//		Tag:      "service-booking",
//	})
//
// A templated message sets TemplateID and TemplateModel instead of the
// bodies. The subject is added to the model as "subject" unless the model
// already has one:
//
//	err = sender.SendEmail(ctx, email.SendEmailParams{
//		SendTo:        "customer@example.com",
//		TemplateID:    cfg.InvoiceTemplateID,
//		TemplateModel: map[string]any{"invoiceNumber": "INV-7"},
//		Attachments: []email.Attachment{{
//			Name:        "Invoice_INV-7.pdf",
//			ContentType: "application/pdf",
//			Data:        pdf,
//		}},
//	})
//
// # Error Handling
//
//   - ErrInvalidConfig: configuration validation failed
//   - ErrInvalidParams: message validation failed, nothing was sent
//   - ErrSendFailed: the provider rejected the message or was unreachable
//
// The templates subpackage renders HTML and plain-text bodies with hermes.
package email
