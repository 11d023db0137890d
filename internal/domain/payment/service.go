// internal/domain/payment/service.go
package payment

import (
	"context"

	"github.com/your-org/ticketing-storefront/internal/pkg/upstream"
)

// Service exposes the standalone payment operations of the upstream API.
// The checkout flow drives its own reserve/purchase calls; this service
// covers mobile-money initiation and payment lookups outside checkout.
type Service struct {
	api *upstream.Client
}

// NewService creates a new payment service
func NewService(api *upstream.Client) *Service {
	return &Service{api: api}
}

// InitiateRequest starts a payment for an existing order
type InitiateRequest struct {
	OrderID     string `json:"orderId" binding:"required"`
	Method      string `json:"method" binding:"required"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
}

// Payment is the upstream's view of an in-flight or settled payment
type Payment struct {
	ID         string `json:"paymentId"`
	OrderID    string `json:"orderId"`
	Amount     int64  `json:"amount"`
	Method     string `json:"method"`
	Status     string `json:"status"`
	PaymentURL string `json:"paymentUrl,omitempty"`
	CreatedAt  string `json:"createdAt"`
}

// Initiate starts a payment. Mobile-money methods return a paymentUrl the
// customer must follow to confirm on their handset.
func (s *Service) Initiate(ctx context.Context, cred upstream.Credential, req *InitiateRequest) (*Payment, error) {
	var p Payment
	if err := s.api.Post(ctx, cred, "/payments/initiate", req, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Status fetches the current state of a payment
func (s *Service) Status(ctx context.Context, cred upstream.Credential, paymentID string) (*Payment, error) {
	var p Payment
	if err := s.api.Get(ctx, cred, "/payments/"+paymentID+"/status", nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// History lists the caller's past payments
func (s *Service) History(ctx context.Context, cred upstream.Credential) ([]Payment, error) {
	var resp struct {
		Payments []Payment `json:"payments"`
	}
	if err := s.api.Get(ctx, cred, "/payments/history", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Payments, nil
}
