// Package forms implements the website form endpoints: service and
// installation bookings, service and installation invoices, and the contact
// form.
//
// Each endpoint binds its request, validates it, talks to the injected
// collaborators (email sender, blob storage, PDF renderer) and replies with a
// small JSON message. The contact form is posted by a plain HTML form and
// answers with text and a redirect instead.
//
// Failures fall into two groups. Malformed bodies and invalid fields are
// 400s whose message names the problem. Provider failures are wrapped with
// ErrUpstream, logged, and reported as a 500 with a fixed message.
//
//	svc := forms.NewService(cfg.Forms, sender, storage, invoices, layouts,
//		forms.WithLogger(log),
//	)
//	router := forms.Router(forms.RouterOptions{Forms: svc, Logger: log})
//
// Nothing is retried and nothing is persisted.
package forms
