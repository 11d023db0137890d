// internal/domain/ticket/service.go
package ticket

import (
	"context"
	"net/url"

	"github.com/your-org/ticketing-storefront/internal/pkg/upstream"
)

// Status represents the validity state of an issued ticket
type Status string

const (
	StatusValid     Status = "valid"
	StatusUsed      Status = "used"
	StatusCancelled Status = "cancelled"
)

// Ticket is an issued e-ticket as returned by the upstream API
type Ticket struct {
	ID            string `json:"id"`
	EventID       string `json:"eventId"`
	EventTitle    string `json:"eventTitle"`
	EventDate     string `json:"eventDate"`
	EventLocation string `json:"eventLocation"`
	Type          string `json:"type"`
	Quantity      int    `json:"quantity"`
	Price         int64  `json:"price"`
	QRCode        string `json:"qrCode"`
	PurchaseDate  string `json:"purchaseDate"`
	Status        Status `json:"status"`
}

// Service exposes the ticket wallet backed by the upstream API
type Service struct {
	api *upstream.Client
}

// NewService creates a new ticket service
func NewService(api *upstream.Client) *Service {
	return &Service{api: api}
}

// MyTickets lists the caller's tickets, optionally filtered by
// upcoming/past/cancelled
func (s *Service) MyTickets(ctx context.Context, cred upstream.Credential, status string) ([]Ticket, error) {
	var q url.Values
	if status != "" {
		q = url.Values{}
		q.Set("status", status)
	}

	var resp struct {
		Tickets []Ticket `json:"tickets"`
	}
	if err := s.api.Get(ctx, cred, "/tickets/my-tickets", q, &resp); err != nil {
		return nil, err
	}
	return resp.Tickets, nil
}

// Get fetches a single ticket
func (s *Service) Get(ctx context.Context, cred upstream.Credential, ticketID string) (*Ticket, error) {
	var resp struct {
		Ticket Ticket `json:"ticket"`
	}
	if err := s.api.Get(ctx, cred, "/tickets/"+ticketID, nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Ticket, nil
}

// QRCode fetches the QR payload for a ticket
func (s *Service) QRCode(ctx context.Context, cred upstream.Credential, ticketID string) (string, error) {
	var resp struct {
		QRCode string `json:"qrCode"`
	}
	if err := s.api.Get(ctx, cred, "/tickets/"+ticketID+"/qr", nil, &resp); err != nil {
		return "", err
	}
	return resp.QRCode, nil
}

// Transfer sends a ticket to another account by email
func (s *Service) Transfer(ctx context.Context, cred upstream.Credential, ticketID, recipientEmail string) error {
	body := map[string]string{"recipientEmail": recipientEmail}
	return s.api.Post(ctx, cred, "/tickets/"+ticketID+"/transfer", body, nil)
}

// Cancel voids one of the caller's tickets
func (s *Service) Cancel(ctx context.Context, cred upstream.Credential, ticketID string) error {
	return s.api.Post(ctx, cred, "/tickets/"+ticketID+"/cancel", nil, nil)
}

// ValidationResult is the outcome of validating a ticket at the door
type ValidationResult struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message"`
}

// Validate checks a ticket against the upstream validation endpoint
func (s *Service) Validate(ctx context.Context, cred upstream.Credential, ticketID string) (*ValidationResult, error) {
	var resp ValidationResult
	if err := s.api.Post(ctx, cred, "/tickets/"+ticketID+"/validate", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
