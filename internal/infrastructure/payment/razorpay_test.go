package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"uplift-backend/config"
	"uplift-backend/internal/domain/entity"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// checkoutSignature is what Razorpay checkout returns for a paid order.
func checkoutSignature(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

type sentOrder struct {
	Amount   int64             `json:"amount"`
	Currency string            `json:"currency"`
	Receipt  string            `json:"receipt"`
	Notes    map[string]string `json:"notes"`
}

func TestRazorpayClient_CreateOrder(t *testing.T) {
	var got sentOrder
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/orders", r.URL.Path)
		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "rzp_test_key", user)
		assert.Equal(t, "secret", pass)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"order_9A33XWu170gUtm","amount":150000,"currency":"INR","receipt":"receipt_1","status":"created","notes":{"doctor_id":"d1"}}`))
	}))
	defer srv.Close()

	log, _ := test.NewNullLogger()
	client := NewRazorpayClient(config.RazorpayConfig{KeyID: "rzp_test_key", KeySecret: "secret", BaseURL: srv.URL + "/"}, log)

	order, err := client.CreateOrder(context.Background(), entity.OrderRequest{
		Amount:   150000,
		Currency: "INR",
		Receipt:  "receipt_1",
		Notes:    map[string]string{"doctor_id": "d1"},
	})
	require.NoError(t, err)
	assert.Equal(t, "order_9A33XWu170gUtm", order.ID)
	assert.Equal(t, int64(150000), order.Amount)
	assert.Equal(t, "created", order.Status)
	assert.Equal(t, "d1", order.Notes["doctor_id"])
	assert.Equal(t, int64(150000), got.Amount)
	assert.Equal(t, "receipt_1", got.Receipt)
	assert.Equal(t, "d1", got.Notes["doctor_id"])
}

func TestRazorpayClient_CreateOrder_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"code":"BAD_REQUEST_ERROR","description":"amount too small"}}`))
	}))
	defer srv.Close()

	log, _ := test.NewNullLogger()
	client := NewRazorpayClient(config.RazorpayConfig{KeyID: "k", KeySecret: "s", BaseURL: srv.URL}, log)

	order, err := client.CreateOrder(context.Background(), entity.OrderRequest{Amount: 1, Currency: "INR", Receipt: "r"})
	require.Error(t, err)
	assert.Nil(t, order)
}

func TestRazorpayClient_CreateOrder_CanceledContext(t *testing.T) {
	log, _ := test.NewNullLogger()
	client := NewRazorpayClient(config.RazorpayConfig{KeyID: "k", KeySecret: "s", BaseURL: "http://127.0.0.1:1"}, log)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.CreateOrder(ctx, entity.OrderRequest{Amount: 100, Currency: "INR", Receipt: "r"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRazorpayClient_FetchOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v1/orders/order_1", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"order_1","amount":50000,"currency":"INR","receipt":"receipt_1","status":"paid","notes":{"doctor_id":"d1","date":"2025-01-20","time":"11:00"}}`))
	}))
	defer srv.Close()

	log, _ := test.NewNullLogger()
	client := NewRazorpayClient(config.RazorpayConfig{KeyID: "k", KeySecret: "s", BaseURL: srv.URL}, log)

	order, err := client.FetchOrder(context.Background(), "order_1")
	require.NoError(t, err)
	assert.Equal(t, int64(50000), order.Amount)
	assert.Equal(t, "paid", order.Status)
	assert.Equal(t, map[string]string{"doctor_id": "d1", "date": "2025-01-20", "time": "11:00"}, order.Notes)
}

func TestRazorpayClient_FetchOrder_EmptyNotes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"order_2","amount":100,"currency":"INR","status":"created","notes":[]}`))
	}))
	defer srv.Close()

	log, _ := test.NewNullLogger()
	client := NewRazorpayClient(config.RazorpayConfig{KeyID: "k", KeySecret: "s", BaseURL: srv.URL}, log)

	order, err := client.FetchOrder(context.Background(), "order_2")
	require.NoError(t, err)
	assert.Empty(t, order.Notes)
}

func TestRazorpayClient_VerifySignature(t *testing.T) {
	log, _ := test.NewNullLogger()
	client := NewRazorpayClient(config.RazorpayConfig{KeyID: "k", KeySecret: "secret"}, log)

	valid := entity.PaymentEvidence{OrderID: "order_1", PaymentID: "pay_1", Signature: checkoutSignature("secret", "order_1", "pay_1")}
	assert.True(t, client.VerifySignature(valid))

	tampered := valid
	tampered.PaymentID = "pay_2"
	assert.False(t, client.VerifySignature(tampered))

	wrongKey := valid
	wrongKey.Signature = checkoutSignature("other", "order_1", "pay_1")
	assert.False(t, client.VerifySignature(wrongKey))
}

func TestStubGateway(t *testing.T) {
	log, _ := test.NewNullLogger()
	gw := NewStubGateway(log)

	order, err := gw.CreateOrder(context.Background(), entity.OrderRequest{
		Amount:   100,
		Currency: "INR",
		Receipt:  "receipt_7",
		Notes:    map[string]string{"time": "11:00"},
	})
	require.NoError(t, err)
	assert.Equal(t, "order_stub_receipt_7", order.ID)
	assert.True(t, gw.VerifySignature(entity.PaymentEvidence{}))

	fetched, err := gw.FetchOrder(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(100), fetched.Amount)
	assert.Equal(t, "11:00", fetched.Notes["time"])

	missing, err := gw.FetchOrder(context.Background(), "order_unknown")
	require.NoError(t, err)
	assert.Nil(t, missing)
}
