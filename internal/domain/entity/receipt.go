package entity

// ReceiptHeader holds the temple header printed at the top of a receipt.
type ReceiptHeader struct {
	TempleName string   `json:"temple_name"`
	Address    []string `json:"address,omitempty"`
	Phone      string   `json:"phone,omitempty"`
}

// ReceiptLine is a label/value line on a thermal receipt.
type ReceiptLine struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Receipt is a value object representing a printable thermal receipt.
// It is composed from booking data at print time and never stored.
type Receipt struct {
	Header        ReceiptHeader `json:"header"`
	Title         string        `json:"title"`
	ReceiptNo     string        `json:"receipt_no"`
	Date          string        `json:"date"`
	Lines         []ReceiptLine `json:"lines"`
	Total         string        `json:"total"`
	AmountInWords string        `json:"amount_in_words"`
	Footer        string        `json:"footer,omitempty"`
}
