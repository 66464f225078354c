package invoice

import (
	"bytes"
	"errors"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/eyetechsecurities/webforms/pkg/qrcode"
)

// Layout in points on an A4 page with 50pt margins.
const (
	margin       = 50.0
	contentWidth = 500.0
	amountX      = 400.0
	tableTop     = 250.0
	rowHeight    = 20.0
	lineHeight   = 15.0
	qrSize       = 100.0
	qrImageName  = "upi-qr"
)

// Renderer draws invoices as PDF documents. It is safe for concurrent use;
// every Render call builds its own document.
type Renderer struct {
	business    Business
	compress    bool
	paymentQR   bool
	creationNow func() time.Time
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithoutCompression writes uncompressed content streams so text can be
// searched in the raw PDF bytes.
func WithoutCompression() Option {
	return func(r *Renderer) {
		r.compress = false
	}
}

// WithCreationTime fixes the document creation date.
func WithCreationTime(fn func() time.Time) Option {
	return func(r *Renderer) {
		r.creationNow = fn
	}
}

// WithoutPaymentQR disables the UPI code even when the business has a UPI ID.
func WithoutPaymentQR() Option {
	return func(r *Renderer) {
		r.paymentQR = false
	}
}

// NewRenderer returns a Renderer for the given seller.
func NewRenderer(b Business, opts ...Option) *Renderer {
	r := &Renderer{
		business:    b,
		compress:    true,
		paymentQR:   true,
		creationNow: time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render lays out inv on a single A4 page and returns the PDF bytes.
func (r *Renderer) Render(inv Invoice) ([]byte, error) {
	if err := inv.Validate(); err != nil {
		return nil, err
	}

	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(false, margin)
	pdf.SetCompression(r.compress)
	created := r.creationNow()
	pdf.SetCreationDate(created)
	pdf.SetModificationDate(created)
	pdf.SetCatalogSort(true)
	pdf.SetTitle("Invoice "+inv.Number, true)
	pdf.SetAuthor(r.business.Name, true)
	pdf.AddPage()

	tr := pdf.UnicodeTranslatorFromDescriptor("")
	text := func(x, y, w float64, s, align string) {
		pdf.SetXY(x, y)
		pdf.CellFormat(w, lineHeight, tr(s), "", 0, align, false, 0, "")
	}

	// Header
	pdf.SetFont("Helvetica", "B", 20)
	text(margin, 50, 350, r.business.Name, "L")
	pdf.SetFont("Helvetica", "", 10)
	y := 80.0
	for _, line := range r.business.Address {
		text(margin, y, 350, line, "L")
		y += lineHeight
	}
	text(margin, y, 350, "Phone: "+r.business.Phone, "L")
	text(margin, y+lineHeight, 350, "Email: "+r.business.Email, "L")

	if err := r.drawPaymentQR(pdf, inv); err != nil {
		return nil, err
	}

	// Title and details
	pdf.SetFont("Helvetica", "B", 16)
	text(margin, 160, 200, "Invoice", "L")
	pdf.SetFont("Helvetica", "", 10)
	text(margin, 190, contentWidth, "Invoice Number: "+inv.Number, "L")
	text(margin, 205, contentWidth, "Invoice Date: "+inv.Date, "L")
	text(margin, 220, contentWidth, "Customer Name: "+inv.CustomerName, "L")

	// Items
	pdf.SetFont("Helvetica", "B", 10)
	text(margin, tableTop, amountX-margin, "Description", "L")
	text(amountX, tableTop, margin+contentWidth-amountX, "Amount (INR)", "L")
	pdf.SetFont("Helvetica", "", 10)
	y = tableTop
	for _, l := range inv.Lines {
		y += rowHeight
		pdf.SetXY(margin, y)
		pdf.MultiCell(amountX-margin-10, lineHeight, tr(l.Description), "", "L", false)
		next := pdf.GetY()
		text(amountX, y, margin+contentWidth-amountX, FormatAmount(l.Amount), "L")
		if next > y+rowHeight {
			y = next - rowHeight
		}
	}

	// Notes
	y += 40
	for _, n := range inv.Notes {
		text(margin, y, contentWidth, n.Heading, "L")
		pdf.SetXY(margin, y+lineHeight)
		pdf.MultiCell(contentWidth, lineHeight-3, tr(n.Body), "", "L", false)
		y = pdf.GetY() + 10
	}

	// Total
	totalY := max(y+20, tableTop+120)
	pdf.SetFont("Helvetica", "B", 12)
	text(amountX, totalY, margin+contentWidth-amountX, "Total: INR "+FormatAmount(inv.Total()), "L")

	// Footer
	_, pageHeight := pdf.GetPageSize()
	pdf.SetFont("Helvetica", "", 10)
	text(margin, pageHeight-100, contentWidth, "Thank you for choosing "+r.business.Name+"!", "C")
	text(margin, pageHeight-85, contentWidth,
		"For queries, contact us at "+r.business.Email+" or "+r.business.Phone, "C")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, errors.Join(ErrRenderFailed, err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) drawPaymentQR(pdf *fpdf.Fpdf, inv Invoice) error {
	if !r.paymentQR || r.business.UPIID == "" || inv.Total() <= 0 {
		return nil
	}

	png, err := qrcode.GenerateUPI(qrcode.Payment{
		VPA:       r.business.UPIID,
		PayeeName: r.business.Name,
		Amount:    inv.Total(),
		Note:      "Invoice " + inv.Number,
		Reference: inv.Number,
	}, 300)
	if err != nil {
		return errors.Join(ErrRenderFailed, err)
	}

	opts := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader(qrImageName, opts, bytes.NewReader(png))
	x := margin + contentWidth - qrSize
	pdf.ImageOptions(qrImageName, x, 40, qrSize, qrSize, false, opts, 0, "")
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetXY(x, 40+qrSize)
	pdf.CellFormat(qrSize, 10, "Scan to pay with UPI", "", 0, "C", false, 0, "")

	if pdf.Err() {
		return errors.Join(ErrRenderFailed, pdf.Error())
	}
	return nil
}
