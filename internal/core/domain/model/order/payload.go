package order

// Payload is one order in the courier bulk-order request.
type Payload struct {
	Invoice          string  `json:"invoice"`
	RecipientName    string  `json:"recipient_name"`
	RecipientAddress string  `json:"recipient_address"`
	RecipientPhone   string  `json:"recipient_phone"`
	CODAmount        string  `json:"cod_amount"`
	Note             *string `json:"note"`
}
