// Package templates renders transactional email bodies with hermes.
//
// A Renderer carries the business branding and turns a hermes.Email into an
// HTML body and a plain-text alternative:
//
//	r := templates.NewRenderer(templates.Config{ProductName: "EyeTech Securities"})
//	content, err := r.Render(hermes.Email{Body: hermes.Body{
//		Title:      "New Service Booking Request",
//		Dictionary: templates.Entries("Name", name, "Phone", phone),
//	}})
package templates
