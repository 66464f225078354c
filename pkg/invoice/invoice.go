package invoice

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	ErrInvalidInvoice = errors.New("invoice.errors.invalid_invoice")
	ErrRenderFailed   = errors.New("invoice.errors.render_failed")
)

// Business identifies the seller printed in the invoice header and footer.
type Business struct {
	Name    string
	Address []string
	Phone   string
	Email   string
	UPIID   string // optional, enables the payment QR code
}

// Config loads the seller details from the environment.
type Config struct {
	Name         string `env:"BUSINESS_NAME" envDefault:"EyeTech Securities"`
	AddressLine1 string `env:"BUSINESS_ADDRESS_LINE1" envDefault:"No.56/80, 1st Floor, Medavakkam Main Road"`
	AddressLine2 string `env:"BUSINESS_ADDRESS_LINE2" envDefault:"Chennai, Tamil Nadu 600117, India"`
	Phone        string `env:"BUSINESS_PHONE" envDefault:"+91-9962835944"`
	Email        string `env:"BUSINESS_EMAIL" envDefault:"info@eyetechsecurities.in"`
	UPIID        string `env:"INVOICE_UPI_ID"`
}

// Business converts the config into a Business.
func (c Config) Business() Business {
	var address []string
	for _, line := range []string{c.AddressLine1, c.AddressLine2} {
		if line = strings.TrimSpace(line); line != "" {
			address = append(address, line)
		}
	}
	return Business{
		Name:    c.Name,
		Address: address,
		Phone:   c.Phone,
		Email:   c.Email,
		UPIID:   c.UPIID,
	}
}

// Line is a billed item.
type Line struct {
	Description string
	Amount      float64
}

// Note is a labelled block of free text printed below the items.
type Note struct {
	Heading string
	Body    string
}

// Invoice is the document to render.
type Invoice struct {
	Number       string
	Date         string
	CustomerName string
	Lines        []Line
	Notes        []Note
}

// Total sums the line amounts.
func (inv Invoice) Total() float64 {
	var total float64
	for _, l := range inv.Lines {
		total += l.Amount
	}
	return total
}

// Validate checks the fields the layout depends on.
func (inv Invoice) Validate() error {
	switch {
	case strings.TrimSpace(inv.Number) == "":
		return fmt.Errorf("%w: number is required", ErrInvalidInvoice)
	case strings.TrimSpace(inv.CustomerName) == "":
		return fmt.Errorf("%w: customer name is required", ErrInvalidInvoice)
	case len(inv.Lines) == 0:
		return fmt.Errorf("%w: at least one line is required", ErrInvalidInvoice)
	}
	for i, l := range inv.Lines {
		if l.Amount < 0 {
			return fmt.Errorf("%w: line %d has a negative amount", ErrInvalidInvoice, i+1)
		}
	}
	return nil
}

// FormatAmount renders v with two decimals and English digit grouping, e.g. 1,500.00.
func FormatAmount(v float64) string {
	return message.NewPrinter(language.English).Sprintf("%.2f", v)
}

var filenameReplacer = strings.NewReplacer("/", "-", "\\", "-")

// Filename is the attachment name for an invoice number.
// Path separators in the number become dashes.
func Filename(number string) string {
	return "Invoice_" + filenameReplacer.Replace(number) + ".pdf"
}
