package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateOrderRequest struct {
	DoctorID uuid.UUID `json:"doctor_id" validate:"required"`
	Date     string    `json:"date" validate:"required,date"`
	Time     string    `json:"time" validate:"required,hhmm"`
}

// OrderResponse is what the client needs to open checkout. Amount is in the
// currency's minor unit.
type OrderResponse struct {
	OrderID       string    `json:"order_id"`
	Amount        int64     `json:"amount"`
	Currency      string    `json:"currency"`
	Receipt       string    `json:"receipt"`
	KeyID         string    `json:"key_id,omitempty"`
	HoldExpiresAt time.Time `json:"hold_expires_at"`
}
