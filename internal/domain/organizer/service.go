// internal/domain/organizer/service.go
package organizer

import (
	"context"
	"encoding/json"
	"io"
	"net/url"

	"github.com/your-org/ticketing-storefront/internal/domain/event"
	"github.com/your-org/ticketing-storefront/internal/domain/ticket"
	"github.com/your-org/ticketing-storefront/internal/pkg/upstream"
)

// Service exposes the organizer console operations backed by the upstream
// API: dashboard figures, event management, door scanning and analytics.
type Service struct {
	api *upstream.Client
}

// NewService creates a new organizer service
func NewService(api *upstream.Client) *Service {
	return &Service{api: api}
}

// DashboardStats is the organizer dashboard summary block
type DashboardStats struct {
	TotalRevenue  int64   `json:"totalRevenue"`
	TotalEvents   int     `json:"totalEvents"`
	TotalTickets  int     `json:"totalTickets"`
	ActiveEvents  int     `json:"activeEvents"`
	RevenueGrowth float64 `json:"revenueGrowth"`
	TicketsSold   struct {
		ThisMonth int `json:"thisMonth"`
		LastMonth int `json:"lastMonth"`
	} `json:"ticketsSold"`
}

// DashboardStats fetches the dashboard summary
func (s *Service) DashboardStats(ctx context.Context, cred upstream.Credential) (*DashboardStats, error) {
	var stats DashboardStats
	if err := s.api.Get(ctx, cred, "/organizer/dashboard/stats", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// MyEvents lists the organizer's own events
func (s *Service) MyEvents(ctx context.Context, cred upstream.Credential) ([]event.Event, error) {
	var resp struct {
		Events []json.RawMessage `json:"events"`
	}
	if err := s.api.Get(ctx, cred, "/organizer/events", nil, &resp); err != nil {
		return nil, err
	}
	return event.MapRawSlice(resp.Events, s.api.AssetURL)
}

// GetEvent fetches one of the organizer's events
func (s *Service) GetEvent(ctx context.Context, cred upstream.Credential, eventID string) (*event.Event, error) {
	var resp struct {
		Event json.RawMessage `json:"event"`
	}
	if err := s.api.Get(ctx, cred, "/organizer/events/"+eventID, nil, &resp); err != nil {
		return nil, err
	}
	return event.MapRaw(resp.Event, s.api.AssetURL)
}

// CreateEvent creates an event through the organizer endpoint
func (s *Service) CreateEvent(ctx context.Context, cred upstream.Credential, req *event.CreateRequest) (*event.Event, error) {
	var resp struct {
		Event json.RawMessage `json:"event"`
	}
	if err := s.api.Post(ctx, cred, "/organizer/events", req, &resp); err != nil {
		return nil, err
	}
	return event.MapRaw(resp.Event, s.api.AssetURL)
}

// UpdateEvent applies a partial update to one of the organizer's events
func (s *Service) UpdateEvent(ctx context.Context, cred upstream.Credential, eventID string, req *event.CreateRequest) (*event.Event, error) {
	var resp struct {
		Event json.RawMessage `json:"event"`
	}
	if err := s.api.Put(ctx, cred, "/organizer/events/"+eventID, req, &resp); err != nil {
		return nil, err
	}
	return event.MapRaw(resp.Event, s.api.AssetURL)
}

// DeleteEvent removes one of the organizer's events
func (s *Service) DeleteEvent(ctx context.Context, cred upstream.Credential, eventID string) error {
	return s.api.Delete(ctx, cred, "/organizer/events/"+eventID, nil)
}

// PublishEvent makes an event publicly visible
func (s *Service) PublishEvent(ctx context.Context, cred upstream.Credential, eventID string) error {
	return s.api.Post(ctx, cred, "/organizer/events/"+eventID+"/publish", nil, nil)
}

// UnpublishEvent hides an event from the public catalog
func (s *Service) UnpublishEvent(ctx context.Context, cred upstream.Credential, eventID string) error {
	return s.api.Post(ctx, cred, "/organizer/events/"+eventID+"/unpublish", nil, nil)
}

// UploadEventImage forwards an event image through the organizer endpoint
func (s *Service) UploadEventImage(ctx context.Context, cred upstream.Credential, filename string, file io.Reader) (string, error) {
	var resp struct {
		ImageURL string `json:"imageUrl"`
	}
	if err := s.api.Upload(ctx, cred, "/organizer/events/upload-image", "image", filename, file, &resp); err != nil {
		return "", err
	}
	return resp.ImageURL, nil
}

// TicketFilters narrows an organizer ticket listing
type TicketFilters struct {
	EventID string
	Status  string
}

// Tickets lists tickets sold across the organizer's events
func (s *Service) Tickets(ctx context.Context, cred upstream.Credential, filters *TicketFilters) ([]ticket.Ticket, error) {
	q := url.Values{}
	if filters != nil {
		if filters.EventID != "" {
			q.Set("eventId", filters.EventID)
		}
		if filters.Status != "" {
			q.Set("status", filters.Status)
		}
	}

	var resp struct {
		Tickets []ticket.Ticket `json:"tickets"`
	}
	if err := s.api.Get(ctx, cred, "/organizer/tickets", q, &resp); err != nil {
		return nil, err
	}
	return resp.Tickets, nil
}

// EventTickets lists tickets for a single event
func (s *Service) EventTickets(ctx context.Context, cred upstream.Credential, eventID string) ([]ticket.Ticket, error) {
	var resp struct {
		Tickets []ticket.Ticket `json:"tickets"`
	}
	if err := s.api.Get(ctx, cred, "/organizer/events/"+eventID+"/tickets", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Tickets, nil
}

// ScanResult is the upstream's verdict on a scanned QR code
type ScanResult struct {
	Valid  bool          `json:"valid"`
	Ticket ticket.Ticket `json:"ticket"`
}

// ScanTicket validates a scanned QR code at the door. The upstream API is
// authoritative; no outcome is decided locally.
func (s *Service) ScanTicket(ctx context.Context, cred upstream.Credential, qrCode string) (*ScanResult, error) {
	body := map[string]string{"qrCode": qrCode}

	var resp ScanResult
	if err := s.api.Post(ctx, cred, "/organizer/tickets/scan", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CancelTicket voids a ticket on behalf of the organizer
func (s *Service) CancelTicket(ctx context.Context, cred upstream.Credential, ticketID string) error {
	return s.api.Put(ctx, cred, "/organizer/tickets/"+ticketID+"/cancel", nil, nil)
}

// SalesData feeds the dashboard sales chart
type SalesData struct {
	Labels []string `json:"labels"`
	Data   []int64  `json:"data"`
}

// SalesData fetches chart data for the given period (day/week/month/year)
func (s *Service) SalesData(ctx context.Context, cred upstream.Credential, period string) (*SalesData, error) {
	q := url.Values{}
	q.Set("period", period)

	var data SalesData
	if err := s.api.Get(ctx, cred, "/organizer/analytics/sales", q, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// EventAnalytics fetches the per-event analytics block
func (s *Service) EventAnalytics(ctx context.Context, cred upstream.Credential, eventID string) (json.RawMessage, error) {
	var data json.RawMessage
	if err := s.api.Get(ctx, cred, "/organizer/analytics/events/"+eventID, nil, &data); err != nil {
		return nil, err
	}
	return data, nil
}

// RevenueAnalytics fetches revenue figures for the given period
func (s *Service) RevenueAnalytics(ctx context.Context, cred upstream.Credential, period string) (json.RawMessage, error) {
	q := url.Values{}
	q.Set("period", period)

	var data json.RawMessage
	if err := s.api.Get(ctx, cred, "/organizer/analytics/revenue", q, &data); err != nil {
		return nil, err
	}
	return data, nil
}

// Attendee is one registered participant of an event
type Attendee struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Phone  string `json:"phone"`
	Ticket string `json:"ticket"`
}

// EventAttendees lists the participants of an event
func (s *Service) EventAttendees(ctx context.Context, cred upstream.Credential, eventID string) ([]Attendee, error) {
	var resp struct {
		Attendees []Attendee `json:"attendees"`
	}
	if err := s.api.Get(ctx, cred, "/organizer/events/"+eventID+"/attendees", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Attendees, nil
}
