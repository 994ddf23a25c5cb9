package order

import (
	"regexp"
	"strings"
)

// contactNumberPattern accepts a local mobile number (03 followed by nine
// digits) or the international form (+92 followed by ten digits).
var contactNumberPattern = regexp.MustCompile(`^(03\d{9}|\+92\d{10})$`)

// checkPayment enforces the manual confirmation policy and returns the
// details to store on the order.
func checkPayment(method, contactNumber string) (PaymentDetails, error) {
	if PaymentMethod(method) != PaymentWhatsApp {
		return PaymentDetails{}, newError(ErrUnsupportedPaymentMethod, msgPaymentMethod)
	}

	number := strings.TrimSpace(contactNumber)
	if !contactNumberPattern.MatchString(number) {
		return PaymentDetails{}, newError(ErrInvalidContactNumber, msgContactNumber)
	}

	return PaymentDetails{WhatsAppNumber: number}, nil
}
