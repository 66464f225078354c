// Package handler provides type-safe HTTP request handling.
//
// A HandlerFunc receives a Context and a decoded request value and returns a
// Response. Wrap turns it into an http.HandlerFunc, running the configured
// binders (see pkg/binder) before the handler and the error handler on any
// failure:
//
//	type ContactRequest struct {
//		Name  string `form:"name"`
//		Email string `form:"email"`
//	}
//
//	func submit(ctx handler.Context, req ContactRequest) handler.Response {
//		return handler.Redirect("/thank-you.html")
//	}
//
//	r.Post("/submit-form", handler.Wrap(submit,
//		handler.WithBinder(binder.Form()),
//	))
//
// # Responses
//
//   - Message and JSONError render the {"message"} and {"error", "details"} JSON bodies.
//   - JSON renders any value.
//   - Text renders text/plain.
//   - Redirect and RedirectWithCode issue HTTP redirects.
//
// # Errors
//
// NewErrorHandler logs every error with the request ID and renders only what
// ClassifyError deems safe for the client:
//
//   - *PublicError carries its own status, message and details.
//   - validator.ValidationErrors become 400 with the first message and per-field details.
//   - *formdata.MalformedRequestError and binder errors become 400 (413 for oversize bodies).
//   - HTTPError carries a status and message.
//   - Anything else becomes 500 with a generic message.
//
// A handler may return a *PublicError directly; Wrap hands it to the error handler.
package handler
