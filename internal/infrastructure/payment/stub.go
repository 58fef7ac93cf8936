package payment

import (
	"context"
	"fmt"
	"maps"
	"sync"

	"uplift-backend/internal/domain/entity"

	"github.com/sirupsen/logrus"
)

// StubGateway stands in for Razorpay when no API keys are configured. Orders are
// synthetic, kept in memory, and every signature is accepted, so it must never run
// in production.
type StubGateway struct {
	log *logrus.Logger

	mu     sync.Mutex
	orders map[string]entity.PaymentOrder
}

func NewStubGateway(log *logrus.Logger) *StubGateway {
	return &StubGateway{log: log, orders: make(map[string]entity.PaymentOrder)}
}

func (g *StubGateway) CreateOrder(ctx context.Context, req entity.OrderRequest) (*entity.PaymentOrder, error) {
	g.log.WithField("receipt", req.Receipt).Warn("Payment gateway not configured, issuing stub order")
	order := entity.PaymentOrder{
		ID:       fmt.Sprintf("order_stub_%s", req.Receipt),
		Amount:   req.Amount,
		Currency: req.Currency,
		Receipt:  req.Receipt,
		Status:   "created",
		Notes:    maps.Clone(req.Notes),
	}

	g.mu.Lock()
	g.orders[order.ID] = order
	g.mu.Unlock()

	return &order, nil
}

func (g *StubGateway) FetchOrder(ctx context.Context, orderID string) (*entity.PaymentOrder, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	order, ok := g.orders[orderID]
	if !ok {
		return nil, nil
	}
	order.Notes = maps.Clone(order.Notes)
	return &order, nil
}

func (g *StubGateway) VerifySignature(evidence entity.PaymentEvidence) bool {
	return true
}

func (g *StubGateway) KeyID() string {
	return ""
}
