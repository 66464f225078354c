// Package invoice renders single-page A4 PDF invoices with go-pdf/fpdf.
//
// The layout has the business header, an "Invoice" title, number/date/customer
// details, a description and amount table, free-text notes, the total and a
// two-line footer. When the Business has a UPI ID, a payment QR code for the
// total is drawn in the top right corner.
//
//	r := invoice.NewRenderer(cfg.Business())
//	pdf, err := r.Render(invoice.Invoice{
//		Number:       "INV-7",
//		Date:         "05/03/2025",
//		CustomerName: "Ravi Kumar",
//		Lines:        []invoice.Line{{Description: "CCTV Service - No signal", Amount: 1500}},
//		Notes:        []invoice.Note{{Heading: "Solution Provided:", Body: "Replaced BNC connector"}},
//	})
//
// Amounts are printed with FormatAmount, which groups digits the English way.
// Text is translated to cp1252 for the core Helvetica font, so characters
// outside that code page are not printed.
package invoice
