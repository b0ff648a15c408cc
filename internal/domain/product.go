package domain

type StockStatus string

// Wire values match the original storage format.
const (
	InStock    StockStatus = "In Stock"
	OutOfStock StockStatus = "Out of Stock"
)

func (s StockStatus) Valid() bool {
	return s == InStock || s == OutOfStock
}

// Toggled returns the opposite stock state.
func (s StockStatus) Toggled() StockStatus {
	if s == InStock {
		return OutOfStock
	}
	return InStock
}

type Product struct {
	ID          string          `json:"id"`
	Name        LocalizedString `json:"name"`
	Price       float64         `json:"price"`
	Image       string          `json:"image"`
	CategoryID  string          `json:"categoryId"`
	Size        string          `json:"size,omitempty"`
	StockStatus StockStatus     `json:"stockStatus"`
}

type Category struct {
	ID    string          `json:"id"`
	Name  LocalizedString `json:"name"`
	Image string          `json:"image"`
}
