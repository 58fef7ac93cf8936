package payment

import (
	"context"
	"fmt"
	"strings"

	"uplift-backend/config"
	"uplift-backend/internal/domain/entity"

	razorpay "github.com/razorpay/razorpay-go"
	"github.com/razorpay/razorpay-go/utils"
	"github.com/sirupsen/logrus"
)

// RazorpayClient opens and looks up orders through the Razorpay SDK and verifies
// checkout signatures.
type RazorpayClient struct {
	client    *razorpay.Client
	keyID     string
	keySecret string
	log       *logrus.Logger
}

func NewRazorpayClient(cfg config.RazorpayConfig, log *logrus.Logger) *RazorpayClient {
	client := razorpay.NewClient(cfg.KeyID, cfg.KeySecret)
	if cfg.BaseURL != "" {
		client.Order.Request.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}
	return &RazorpayClient{
		client:    client,
		keyID:     cfg.KeyID,
		keySecret: cfg.KeySecret,
		log:       log,
	}
}

func (c *RazorpayClient) CreateOrder(ctx context.Context, req entity.OrderRequest) (*entity.PaymentOrder, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data := map[string]interface{}{
		"amount":   req.Amount,
		"currency": req.Currency,
		"receipt":  req.Receipt,
	}
	if len(req.Notes) > 0 {
		data["notes"] = req.Notes
	}

	body, err := c.client.Order.Create(data, nil)
	if err != nil {
		return nil, fmt.Errorf("razorpay: create order: %w", err)
	}

	order := orderFromBody(body)
	c.log.WithFields(logrus.Fields{"order_id": order.ID, "amount": order.Amount}).Debug("Razorpay order created")
	return order, nil
}

// FetchOrder looks an order up by id. Razorpay answers unknown ids with an error, so
// a missing order surfaces as an error rather than (nil, nil).
func (c *RazorpayClient) FetchOrder(ctx context.Context, orderID string) (*entity.PaymentOrder, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	body, err := c.client.Order.Fetch(orderID, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("razorpay: fetch order %s: %w", orderID, err)
	}
	return orderFromBody(body), nil
}

// VerifySignature checks the checkout signature: hex HMAC-SHA256 of "order_id|payment_id"
// keyed with the API secret.
func (c *RazorpayClient) VerifySignature(evidence entity.PaymentEvidence) bool {
	attributes := map[string]interface{}{
		"razorpay_order_id":   evidence.OrderID,
		"razorpay_payment_id": evidence.PaymentID,
	}
	return utils.VerifyPaymentSignature(attributes, evidence.Signature, c.keySecret)
}

func (c *RazorpayClient) KeyID() string {
	return c.keyID
}

func orderFromBody(body map[string]interface{}) *entity.PaymentOrder {
	order := &entity.PaymentOrder{
		ID:       stringField(body, "id"),
		Amount:   int64Field(body, "amount"),
		Currency: stringField(body, "currency"),
		Receipt:  stringField(body, "receipt"),
		Status:   stringField(body, "status"),
	}

	// Razorpay returns notes as an object, or as an empty array when there are none.
	if notes, ok := body["notes"].(map[string]interface{}); ok {
		order.Notes = make(map[string]string, len(notes))
		for k, v := range notes {
			order.Notes[k] = fmt.Sprint(v)
		}
	}
	return order
}

func stringField(body map[string]interface{}, key string) string {
	s, _ := body[key].(string)
	return s
}

func int64Field(body map[string]interface{}, key string) int64 {
	switch v := body[key].(type) {
	case float64:
		return int64(v)
	case int64:
		return v
	case int:
		return int64(v)
	}
	return 0
}
