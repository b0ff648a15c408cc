// Package payment builds the UPI deep link handed to the customer's payment
// app. Constructing the link is the only responsibility here; following it
// is up to the device.
package payment

import (
	"fmt"
	"net/url"
	"strconv"
)

// BuildUPILink formats a upi://pay link with the payee address, display
// name, a two-decimal amount in INR and a transaction note. Every variable
// part is query-escaped, so distinct inputs always produce distinct links.
func BuildUPILink(upiID, payeeName string, amount float64, note string) string {
	return fmt.Sprintf("upi://pay?pa=%s&pn=%s&am=%s&cu=INR&tn=%s",
		url.QueryEscape(upiID),
		url.QueryEscape(payeeName),
		strconv.FormatFloat(amount, 'f', 2, 64),
		url.QueryEscape(note),
	)
}
