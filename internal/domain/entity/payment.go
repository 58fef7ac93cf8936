package entity

// OrderRequest asks the payment gateway to open an order. Amount is in the
// currency's minor unit (paise for INR).
type OrderRequest struct {
	Amount   int64
	Currency string
	Receipt  string
	Notes    map[string]string
}

// PaymentOrder is an order opened at the payment gateway. Notes echo what was sent
// when the order was created.
type PaymentOrder struct {
	ID       string
	Amount   int64
	Currency string
	Receipt  string
	Status   string
	Notes    map[string]string
}

// PaymentEvidence is what checkout hands back to the client after a successful payment.
type PaymentEvidence struct {
	PaymentID string
	OrderID   string
	Signature string
}

// Present reports whether all evidence fields were supplied.
func (p PaymentEvidence) Present() bool {
	return p.PaymentID != "" && p.OrderID != "" && p.Signature != ""
}
