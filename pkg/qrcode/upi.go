package qrcode

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

// ErrInvalidVPA is returned when the payee UPI ID is malformed.
var ErrInvalidVPA = errors.New("invalid UPI virtual payment address")

var vpaRegex = regexp.MustCompile(`^[a-zA-Z0-9.\-_]{2,256}@[a-zA-Z]{2,64}$`)

// Payment describes a UPI collect request encoded in a payment QR code.
type Payment struct {
	VPA       string  // payee UPI ID, e.g. eyetech@okaxis
	PayeeName string  // shown by the payer's app
	Amount    float64 // INR, omitted when zero
	Note      string  // transaction note
	Reference string  // merchant reference, e.g. the invoice number
}

// UPIPaymentURI builds a upi://pay deep link that any UPI app can scan.
func UPIPaymentURI(p Payment) (string, error) {
	if !vpaRegex.MatchString(p.VPA) {
		return "", fmt.Errorf("%w: %q", ErrInvalidVPA, p.VPA)
	}

	q := url.Values{}
	q.Set("pa", p.VPA)
	if p.PayeeName != "" {
		q.Set("pn", p.PayeeName)
	}
	if p.Amount > 0 {
		q.Set("am", strconv.FormatFloat(p.Amount, 'f', 2, 64))
	}
	q.Set("cu", "INR")
	if p.Note != "" {
		q.Set("tn", p.Note)
	}
	if p.Reference != "" {
		q.Set("tr", p.Reference)
	}

	// UPI apps expect %20, not '+', for spaces.
	return "upi://pay?" + strings.ReplaceAll(q.Encode(), "+", "%20"), nil
}

// GenerateUPI renders the payment link as a PNG QR code.
func GenerateUPI(p Payment, size int) ([]byte, error) {
	uri, err := UPIPaymentURI(p)
	if err != nil {
		return nil, err
	}
	return PNG(uri, size)
}
