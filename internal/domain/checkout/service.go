// internal/domain/checkout/service.go
package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/ticketing-storefront/internal/config"
	"github.com/your-org/ticketing-storefront/internal/domain/cart"
	"github.com/your-org/ticketing-storefront/internal/domain/order"
	"github.com/your-org/ticketing-storefront/internal/pkg/apperrors"
	"github.com/your-org/ticketing-storefront/internal/pkg/upstream"
)

// State is the checkout flow state for one client session
type State string

const (
	StateIdle       State = "idle"
	StateSubmitting State = "submitting"
	StateCompleted  State = "completed"
	StateFailed     State = "failed"
)

var (
	// ErrEmptyCart is returned when checkout is entered with nothing to buy
	ErrEmptyCart = errors.New("cart is empty")

	// ErrAlreadySubmitting rejects duplicate submission while a checkout
	// for the same client is in flight
	ErrAlreadySubmitting = errors.New("checkout already in progress")
)

// Service drives the checkout flow: Idle -> Submitting -> Completed|Failed.
// On success one order is created per cart line, in cart iteration order,
// and the cart is cleared. On failure the cart is left intact and no orders
// are appended, so a retry sees exactly the state it started from.
type Service struct {
	config *config.Config
	api    *upstream.Client
	carts  *cart.Store
	orders *order.Store
	logger *logrus.Logger

	mu     sync.Mutex
	states map[string]State
}

// NewService creates a new checkout service
func NewService(cfg *config.Config, api *upstream.Client, carts *cart.Store, orders *order.Store, logger *logrus.Logger) *Service {
	return &Service{
		config: cfg,
		api:    api,
		carts:  carts,
		orders: orders,
		logger: logger,
		states: make(map[string]State),
	}
}

// SubmitRequest carries the checkout form data
type SubmitRequest struct {
	Name          string              `json:"name" binding:"required"`
	Email         string              `json:"email" binding:"required,email"`
	Phone         string              `json:"phone" binding:"required"`
	PaymentMethod order.PaymentMethod `json:"payment_method" binding:"required"`
}

// Result is returned on successful checkout
type Result struct {
	Orders     []order.Order `json:"orders"`
	Total      int64         `json:"total"`
	RedirectTo string        `json:"redirect_to"`
}

// State returns the current flow state for a client session
func (s *Service) State(clientID string) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	if state, ok := s.states[clientID]; ok {
		return state
	}
	return StateIdle
}

// Submit runs the checkout for the client session identified by cred
func (s *Service) Submit(ctx context.Context, cred upstream.Credential, userID string, req *SubmitRequest) (*Result, error) {
	clientID := cred.ClientID
	if !req.PaymentMethod.Valid() {
		return nil, fmt.Errorf("%w: unknown payment method %q", apperrors.ErrValidation, req.PaymentMethod)
	}

	lines := s.carts.Lines(clientID)
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	if err := s.begin(clientID); err != nil {
		return nil, err
	}

	orders := s.buildOrders(userID, req.PaymentMethod, lines)
	if len(orders) == 0 {
		s.finish(clientID, StateIdle)
		return nil, ErrEmptyCart
	}

	if err := s.processPayment(ctx, cred, req, lines); err != nil {
		s.finish(clientID, StateFailed)
		return nil, fmt.Errorf("payment failed: %w", err)
	}

	s.orders.Append(clientID, orders...)
	s.carts.Clear(clientID)
	s.finish(clientID, StateCompleted)

	var total int64
	for _, o := range orders {
		total += o.Total
	}

	s.logger.WithFields(logrus.Fields{
		"client_id": clientID,
		"orders":    len(orders),
		"total":     total,
	}).Info("Checkout completed")

	return &Result{
		Orders:     orders,
		Total:      total,
		RedirectTo: "/ticket",
	}, nil
}

// begin transitions the client into Submitting, rejecting a duplicate submit
func (s *Service) begin(clientID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.states[clientID] == StateSubmitting {
		return ErrAlreadySubmitting
	}
	s.states[clientID] = StateSubmitting
	return nil
}

func (s *Service) finish(clientID string, state State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[clientID] = state
}

// buildOrders synthesizes one order per cart line in cart iteration order,
// splitting standard and VIP quantities into separate line items and
// omitting any tier with a zero quantity. A line where both tiers are zero
// produces no order.
func (s *Service) buildOrders(userID string, method order.PaymentMethod, lines []cart.Line) []order.Order {
	now := time.Now().UTC()

	var orders []order.Order
	for _, line := range lines {
		var items []order.LineItem
		if line.StandardQuantity > 0 {
			items = append(items, order.LineItem{
				Type:      cart.TicketStandard,
				Quantity:  line.StandardQuantity,
				UnitPrice: line.StandardPrice,
			})
		}
		if line.VIPQuantity > 0 {
			items = append(items, order.LineItem{
				Type:      cart.TicketVIP,
				Quantity:  line.VIPQuantity,
				UnitPrice: line.VIPPrice,
			})
		}
		if len(items) == 0 {
			continue
		}

		orders = append(orders, order.Order{
			ID:            order.NewOrderID(now),
			UserID:        userID,
			EventID:       line.EventID,
			EventTitle:    line.EventTitle,
			EventDate:     line.EventDate,
			Items:         items,
			Total:         line.Subtotal(),
			PaymentMethod: method,
			Status:        order.StatusCompleted,
			PurchasedAt:   now,
		})
	}
	return orders
}

// processPayment settles the cart. With a configured gateway every line is
// reserved and purchased upstream; any failure aborts the whole submission
// before a single order is appended. In simulate mode the reference behavior
// applies: a fixed processing delay and unconditional completion.
func (s *Service) processPayment(ctx context.Context, cred upstream.Credential, req *SubmitRequest, lines []cart.Line) error {
	if s.config.Checkout.SimulatePayment {
		select {
		case <-time.After(s.config.Checkout.ProcessingDelay):
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	for _, line := range lines {
		reservation, err := s.reserve(ctx, cred, line)
		if err != nil {
			return err
		}
		if err := s.purchase(ctx, cred, reservation, req); err != nil {
			return err
		}
	}

	return nil
}

type reserveTicketLine struct {
	Type     cart.TicketType `json:"type"`
	Quantity int             `json:"quantity"`
}

type reserveRequest struct {
	EventID string              `json:"eventId"`
	Tickets []reserveTicketLine `json:"tickets"`
}

type reserveResponse struct {
	Reservation struct {
		ID        string `json:"id"`
		ExpiresAt string `json:"expiresAt"`
		Total     int64  `json:"total"`
	} `json:"reservation"`
}

func (s *Service) reserve(ctx context.Context, cred upstream.Credential, line cart.Line) (string, error) {
	req := reserveRequest{EventID: line.EventID}
	if line.StandardQuantity > 0 {
		req.Tickets = append(req.Tickets, reserveTicketLine{Type: cart.TicketStandard, Quantity: line.StandardQuantity})
	}
	if line.VIPQuantity > 0 {
		req.Tickets = append(req.Tickets, reserveTicketLine{Type: cart.TicketVIP, Quantity: line.VIPQuantity})
	}

	var resp reserveResponse
	if err := s.api.Post(ctx, cred, "/tickets/reserve", req, &resp); err != nil {
		return "", err
	}
	if resp.Reservation.ID == "" {
		return "", fmt.Errorf("reservation response missing id")
	}
	return resp.Reservation.ID, nil
}

type purchaseRequest struct {
	ReservationID string       `json:"reservationId"`
	PaymentMethod string       `json:"paymentMethod"`
	CustomerInfo  customerInfo `json:"customerInfo"`
}

type customerInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

func (s *Service) purchase(ctx context.Context, cred upstream.Credential, reservationID string, req *SubmitRequest) error {
	// The purchase endpoint expects snake_case payment method names
	method := strings.ReplaceAll(string(req.PaymentMethod), "-", "_")

	return s.api.Post(ctx, cred, "/tickets/purchase", purchaseRequest{
		ReservationID: reservationID,
		PaymentMethod: method,
		CustomerInfo: customerInfo{
			Name:  req.Name,
			Email: req.Email,
			Phone: req.Phone,
		},
	}, nil)
}
