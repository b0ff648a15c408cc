package domain

// Settings is the store-level payment configuration. A singleton: exactly
// one record exists at all times, defaulting to empty strings.
type Settings struct {
	UPIID  string `json:"upiId"`
	QRCode string `json:"qrCode"`
}
