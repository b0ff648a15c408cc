package domain

// LocalizedString holds the English and Telugu variants of a display name.
// Both variants are required on catalog records.
type LocalizedString struct {
	EN string `json:"en"`
	TE string `json:"te"`
}

// Complete reports whether both language variants are present.
func (l LocalizedString) Complete() bool {
	return l.EN != "" && l.TE != ""
}
