package usecase

import (
	"context"
	"errors"
	"fmt"

	"uplift-backend/internal/delivery/dto"
	"uplift-backend/internal/domain/entity"
	"uplift-backend/internal/domain/repository"
	"uplift-backend/internal/policy"
	"uplift-backend/internal/service"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

var (
	ErrSlotHeld       = errors.New("someone else is checking out this slot, try again shortly")
	ErrPriceNotSet    = errors.New("doctor has not set a consultation price")
	ErrPaymentGateway = errors.New("payment provider is unavailable")
)

var minorUnitsPerMajor = decimal.NewFromInt(100)

// Order notes that tie a checkout order to one slot and patient.
const (
	noteDoctorID  = "doctor_id"
	notePatientID = "patient_id"
	noteDate      = "date"
	noteTime      = "time"
)

// minorUnits converts a price to the currency's minor unit (paise for INR).
func minorUnits(price decimal.Decimal) int64 {
	return price.Mul(minorUnitsPerMajor).Round(0).IntPart()
}

// PaymentUsecase opens checkout orders for a slot. The amount is always derived from
// the doctor's current price, never taken from the client.
type PaymentUsecase interface {
	CreateOrder(ctx context.Context, requester entity.Identity, req *dto.CreateOrderRequest) (*dto.OrderResponse, error)
}

type paymentUsecase struct {
	log       *logrus.Logger
	ledger    repository.SlotLedger
	directory repository.DoctorDirectory
	rules     policy.Rules
	gateway   PaymentGateway
	holds     SlotHolder
	currency  string
	clock     Clock
}

// NewPaymentUsecase wires order creation. holds may be nil, which disables slot holds.
func NewPaymentUsecase(
	log *logrus.Logger,
	ledger repository.SlotLedger,
	directory repository.DoctorDirectory,
	rules policy.Rules,
	gateway PaymentGateway,
	holds SlotHolder,
	currency string,
	clock Clock,
) PaymentUsecase {
	if clock == nil {
		clock = timeNow
	}
	return &paymentUsecase{
		log:       log,
		ledger:    ledger,
		directory: directory,
		rules:     rules,
		gateway:   gateway,
		holds:     holds,
		currency:  currency,
		clock:     clock,
	}
}

func (u *paymentUsecase) CreateOrder(ctx context.Context, requester entity.Identity, req *dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	slot, tod, err := parseSlot(req.DoctorID, req.Date, req.Time)
	if err != nil {
		return nil, err
	}
	now := u.clock()
	if !u.rules.Hours.Contains(tod) {
		return nil, ErrOutsideBusinessHours
	}
	if u.rules.InPast(slot.Date, tod, now) {
		return nil, ErrSlotInPast
	}

	existing, err := u.ledger.FindConflict(ctx, slot)
	if err != nil {
		u.log.Warnf("Failed to check slot before order: %+v", err)
		return nil, infraError("check slot", err)
	}
	if existing != nil {
		return nil, ErrSlotConflict
	}

	doctor, err := u.directory.GetDoctor(ctx, slot.DoctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", slot.DoctorID, err)
		return nil, infraError("find doctor", err)
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}
	if !policy.IsBookable(doctor) {
		return nil, ErrDoctorUnavailable
	}

	amount := minorUnits(doctor.Price)
	if amount <= 0 {
		return nil, ErrPriceNotSet
	}

	holdExpiresAt := now
	if u.holds != nil {
		holdExpiresAt, err = u.holds.Hold(ctx, slot, requester.UserID)
		if err != nil {
			if errors.Is(err, service.ErrSlotHeld) {
				return nil, ErrSlotHeld
			}
			return nil, infraError("hold slot", err)
		}
	}

	order, err := u.gateway.CreateOrder(ctx, entity.OrderRequest{
		Amount:   amount,
		Currency: u.currency,
		Receipt:  fmt.Sprintf("receipt_%d", now.UnixMilli()),
		Notes: map[string]string{
			noteDoctorID:  slot.DoctorID.String(),
			notePatientID: requester.UserID.String(),
			noteDate:      policy.FormatDate(slot.Date),
			noteTime:      slot.Time,
		},
	})
	if err != nil {
		u.log.Warnf("Failed to create payment order: %+v", err)
		if u.holds != nil {
			if releaseErr := u.holds.Release(ctx, slot, requester.UserID); releaseErr != nil {
				u.log.Warnf("Failed to release hold after order failure: %+v", releaseErr)
			}
		}
		return nil, fmt.Errorf("%w: %w", ErrPaymentGateway, err)
	}

	return &dto.OrderResponse{
		OrderID:       order.ID,
		Amount:        order.Amount,
		Currency:      order.Currency,
		Receipt:       order.Receipt,
		KeyID:         u.gateway.KeyID(),
		HoldExpiresAt: holdExpiresAt,
	}, nil
}
