// Package qrcode generates PNG QR codes with github.com/skip2/go-qrcode.
//
// PNG encodes arbitrary content. GenerateUPI builds a UPI payment link and
// encodes that, so an invoice can carry a code the customer scans to pay:
//
//	png, err := qrcode.GenerateUPI(qrcode.Payment{
//		VPA:       "eyetech@okaxis",
//		PayeeName: "EyeTech Securities",
//		Amount:    1500,
//		Reference: "INV-7",
//	}, 200)
package qrcode
