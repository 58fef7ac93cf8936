package usecase

import (
	"context"
	"time"

	"uplift-backend/internal/domain/entity"
	"uplift-backend/internal/domain/repository"
	"uplift-backend/internal/service"

	"github.com/google/uuid"
)

// Clock returns the current instant.
type Clock func() time.Time

var timeNow Clock = time.Now

// PaymentGateway opens checkout orders and verifies the evidence checkout returns.
// FetchOrder returns (nil, nil) when the gateway does not know the order.
type PaymentGateway interface {
	CreateOrder(ctx context.Context, req entity.OrderRequest) (*entity.PaymentOrder, error)
	FetchOrder(ctx context.Context, orderID string) (*entity.PaymentOrder, error)
	VerifySignature(evidence entity.PaymentEvidence) bool
	KeyID() string
}

// AppointmentNotifier queues confirmations. It must not block.
type AppointmentNotifier interface {
	NotifyBooked(notice service.BookingNotice) bool
}

// SlotHolder places short-lived holds on slots during checkout.
type SlotHolder interface {
	Hold(ctx context.Context, slot repository.Slot, owner uuid.UUID) (time.Time, error)
	Release(ctx context.Context, slot repository.Slot, owner uuid.UUID) error
}
