package checkout

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/ticketing-storefront/internal/config"
	"github.com/your-org/ticketing-storefront/internal/domain/cart"
	"github.com/your-org/ticketing-storefront/internal/domain/order"
	"github.com/your-org/ticketing-storefront/internal/pkg/upstream"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func testConfig(baseURL string, simulate bool) *config.Config {
	return &config.Config{
		Upstream: config.UpstreamConfig{
			BaseURL:      baseURL,
			AssetBaseURL: baseURL,
			Timeout:      5 * time.Second,
		},
		Checkout: config.CheckoutConfig{
			SimulatePayment: simulate,
			ProcessingDelay: 0,
		},
	}
}

func newTestService(cfg *config.Config) (*Service, *cart.Store, *order.Store) {
	logger := testLogger()
	api := upstream.NewClient(cfg, logger)
	carts := cart.NewStore()
	orders := order.NewStore()
	return NewService(cfg, api, carts, orders, logger), carts, orders
}

func validRequest() *SubmitRequest {
	return &SubmitRequest{
		Name:          "Awa Diop",
		Email:         "awa@example.com",
		Phone:         "+221770000000",
		PaymentMethod: order.PaymentWave,
	}
}

func TestSubmitCreatesOneOrderPerLine(t *testing.T) {
	svc, carts, orders := newTestService(testConfig("http://localhost:0", true))

	carts.Add("client-1", cart.Line{
		EventID: "ev-a", EventTitle: "Event A",
		StandardQuantity: 2, StandardPrice: 1000,
	})
	carts.Add("client-1", cart.Line{
		EventID: "ev-b", EventTitle: "Event B",
		StandardQuantity: 1, StandardPrice: 2000,
		VIPQuantity: 1, VIPPrice: 5000,
	})

	cred := upstream.Credential{ClientID: "client-1", Token: "tok"}
	result, err := svc.Submit(context.Background(), cred, "user-1", validRequest())
	require.NoError(t, err)

	require.Len(t, result.Orders, 2)
	assert.Equal(t, "ev-a", result.Orders[0].EventID)
	assert.Equal(t, int64(2000), result.Orders[0].Total)
	assert.Equal(t, "ev-b", result.Orders[1].EventID)
	assert.Equal(t, int64(7000), result.Orders[1].Total)
	assert.Equal(t, int64(9000), result.Total)
	assert.Equal(t, "/ticket", result.RedirectTo)

	// VIP and standard tiers are split into separate line items
	require.Len(t, result.Orders[1].Items, 2)
	assert.Equal(t, cart.TicketStandard, result.Orders[1].Items[0].Type)
	assert.Equal(t, cart.TicketVIP, result.Orders[1].Items[1].Type)

	// Every generated order is internally consistent
	for i := range result.Orders {
		assert.NoError(t, result.Orders[i].Validate())
	}

	// Cart cleared, orders appended, state completed
	assert.Empty(t, carts.Lines("client-1"))
	assert.Equal(t, 2, orders.Count("client-1"))
	assert.Equal(t, StateCompleted, svc.State("client-1"))
}

func TestSubmitEmptyCart(t *testing.T) {
	svc, _, _ := newTestService(testConfig("http://localhost:0", true))

	cred := upstream.Credential{ClientID: "client-1"}
	_, err := svc.Submit(context.Background(), cred, "user-1", validRequest())
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Equal(t, StateIdle, svc.State("client-1"))
}

func TestSubmitZeroQuantityLinesProduceNoOrder(t *testing.T) {
	svc, carts, orders := newTestService(testConfig("http://localhost:0", true))

	carts.Add("client-1", cart.Line{EventID: "ev-a", StandardQuantity: 0, VIPQuantity: 0})

	cred := upstream.Credential{ClientID: "client-1"}
	_, err := svc.Submit(context.Background(), cred, "user-1", validRequest())
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Equal(t, 0, orders.Count("client-1"))
}

func TestSubmitUnknownPaymentMethod(t *testing.T) {
	svc, carts, _ := newTestService(testConfig("http://localhost:0", true))

	carts.Add("client-1", cart.Line{EventID: "ev-a", StandardQuantity: 1, StandardPrice: 1000})

	req := validRequest()
	req.PaymentMethod = "bitcoin"

	cred := upstream.Credential{ClientID: "client-1"}
	_, err := svc.Submit(context.Background(), cred, "user-1", req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown payment method")

	// Validation failures never touch the cart
	assert.Len(t, carts.Lines("client-1"), 1)
}

func TestSubmitRejectsDuplicateSubmission(t *testing.T) {
	cfg := testConfig("http://localhost:0", true)
	cfg.Checkout.ProcessingDelay = 300 * time.Millisecond
	svc, carts, _ := newTestService(cfg)

	carts.Add("client-1", cart.Line{EventID: "ev-a", StandardQuantity: 1, StandardPrice: 1000})

	cred := upstream.Credential{ClientID: "client-1", Token: "tok"}

	firstDone := make(chan error, 1)
	go func() {
		_, err := svc.Submit(context.Background(), cred, "user-1", validRequest())
		firstDone <- err
	}()

	// Wait until the first submission is in flight
	require.Eventually(t, func() bool {
		return svc.State("client-1") == StateSubmitting
	}, time.Second, 5*time.Millisecond)

	_, err := svc.Submit(context.Background(), cred, "user-1", validRequest())
	assert.ErrorIs(t, err, ErrAlreadySubmitting)

	assert.NoError(t, <-firstDone)
	assert.Equal(t, StateCompleted, svc.State("client-1"))
}

func TestSubmitPaymentFailureLeavesCartIntact(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusPaymentRequired)
		json.NewEncoder(w).Encode(map[string]string{"error": "payment declined"})
	}))
	defer ts.Close()

	svc, carts, orders := newTestService(testConfig(ts.URL, false))

	carts.Add("client-1", cart.Line{EventID: "ev-a", StandardQuantity: 1, StandardPrice: 1000})

	cred := upstream.Credential{ClientID: "client-1", Token: "tok"}
	_, err := svc.Submit(context.Background(), cred, "user-1", validRequest())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "payment failed")

	// Failure is all-or-nothing: cart intact, no orders, state failed
	assert.Len(t, carts.Lines("client-1"), 1)
	assert.Equal(t, 0, orders.Count("client-1"))
	assert.Equal(t, StateFailed, svc.State("client-1"))
}

func TestSubmitRealPaymentReservesAndPurchases(t *testing.T) {
	var reserved, purchased int
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/tickets/reserve":
			reserved++
			json.NewEncoder(w).Encode(map[string]interface{}{
				"reservation": map[string]interface{}{"id": "res-1", "total": 1000},
			})
		case "/tickets/purchase":
			purchased++

			var body struct {
				ReservationID string `json:"reservationId"`
				PaymentMethod string `json:"paymentMethod"`
			}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "res-1", body.ReservationID)
			// Dashed method names are sent snake_case
			assert.Equal(t, "orange_money", body.PaymentMethod)

			w.WriteHeader(http.StatusOK)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer ts.Close()

	svc, carts, orders := newTestService(testConfig(ts.URL, false))

	carts.Add("client-1", cart.Line{EventID: "ev-a", StandardQuantity: 1, StandardPrice: 1000})

	req := validRequest()
	req.PaymentMethod = order.PaymentOrangeMoney

	cred := upstream.Credential{ClientID: "client-1", Token: "tok"}
	result, err := svc.Submit(context.Background(), cred, "user-1", req)
	require.NoError(t, err)

	assert.Equal(t, 1, reserved)
	assert.Equal(t, 1, purchased)
	require.Len(t, result.Orders, 1)
	assert.Equal(t, 1, orders.Count("client-1"))
	assert.Empty(t, carts.Lines("client-1"))
}

func TestStateDefaultsToIdle(t *testing.T) {
	svc, _, _ := newTestService(testConfig("http://localhost:0", true))
	assert.Equal(t, StateIdle, svc.State("never-seen"))
}
