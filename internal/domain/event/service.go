// internal/domain/event/service.go
package event

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strconv"

	"github.com/your-org/ticketing-storefront/internal/pkg/upstream"
)

// Service exposes the public event catalog backed by the upstream API
type Service struct {
	api *upstream.Client
}

// NewService creates a new event service
func NewService(api *upstream.Client) *Service {
	return &Service{api: api}
}

// Filters narrows an event listing
type Filters struct {
	Page      int
	Limit     int
	Category  string
	Search    string
	Location  string
	StartDate string
	EndDate   string
	MinPrice  int64
	MaxPrice  int64
	Featured  bool
	Sort      string
}

func (f *Filters) query() url.Values {
	q := url.Values{}
	if f == nil {
		return q
	}
	if f.Page > 0 {
		q.Set("page", strconv.Itoa(f.Page))
	}
	if f.Limit > 0 {
		q.Set("limit", strconv.Itoa(f.Limit))
	}
	if f.Category != "" {
		q.Set("category", f.Category)
	}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	if f.Location != "" {
		q.Set("location", f.Location)
	}
	if f.StartDate != "" {
		q.Set("startDate", f.StartDate)
	}
	if f.EndDate != "" {
		q.Set("endDate", f.EndDate)
	}
	if f.MinPrice > 0 {
		q.Set("minPrice", strconv.FormatInt(f.MinPrice, 10))
	}
	if f.MaxPrice > 0 {
		q.Set("maxPrice", strconv.FormatInt(f.MaxPrice, 10))
	}
	if f.Featured {
		q.Set("featured", "true")
	}
	if f.Sort != "" {
		q.Set("sort", f.Sort)
	}
	return q
}

// List fetches a filtered page of events.
// The upstream wraps the list as either "data" or "events".
func (s *Service) List(ctx context.Context, cred upstream.Credential, filters *Filters) (*ListResult, error) {
	var resp struct {
		Data       []rawEvent `json:"data"`
		Events     []rawEvent `json:"events"`
		Pagination Pagination `json:"pagination"`
	}
	if err := s.api.Get(ctx, cred, "/events", filters.query(), &resp); err != nil {
		return nil, err
	}

	raws := resp.Data
	if len(raws) == 0 {
		raws = resp.Events
	}

	events := make([]Event, 0, len(raws))
	for i := range raws {
		events = append(events, mapEvent(&raws[i], s.api.AssetURL))
	}

	return &ListResult{Events: events, Pagination: resp.Pagination}, nil
}

// Get fetches a single event by id
func (s *Service) Get(ctx context.Context, cred upstream.Credential, id string) (*Event, error) {
	var raw json.RawMessage
	if err := s.api.Get(ctx, cred, "/events/"+id, nil, &raw); err != nil {
		return nil, err
	}

	rawEvt, err := unwrapEvent(raw)
	if err != nil {
		return nil, err
	}

	evt := mapEvent(rawEvt, s.api.AssetURL)
	return &evt, nil
}

// Featured fetches the events highlighted on the home page
func (s *Service) Featured(ctx context.Context, cred upstream.Credential) ([]Event, error) {
	var resp struct {
		Events []rawEvent `json:"events"`
		Data   []rawEvent `json:"data"`
	}
	if err := s.api.Get(ctx, cred, "/events/featured", nil, &resp); err != nil {
		return nil, err
	}

	raws := resp.Events
	if len(raws) == 0 {
		raws = resp.Data
	}

	events := make([]Event, 0, len(raws))
	for i := range raws {
		events = append(events, mapEvent(&raws[i], s.api.AssetURL))
	}
	return events, nil
}

// Categories fetches the list of event categories
func (s *Service) Categories(ctx context.Context, cred upstream.Credential) ([]string, error) {
	var resp struct {
		Categories []string `json:"categories"`
	}
	if err := s.api.Get(ctx, cred, "/events/categories", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Categories, nil
}

// SearchSuggestions fetches typeahead suggestions for a partial query
func (s *Service) SearchSuggestions(ctx context.Context, cred upstream.Credential, query string) ([]string, error) {
	q := url.Values{}
	q.Set("q", query)

	var resp struct {
		Suggestions []string `json:"suggestions"`
	}
	if err := s.api.Get(ctx, cred, "/events/search/suggestions", q, &resp); err != nil {
		return nil, err
	}
	return resp.Suggestions, nil
}

// TicketTier describes one sellable tier on a new event
type TicketTier struct {
	Type        string `json:"type"`
	Price       int64  `json:"price"`
	Quantity    int    `json:"quantity"`
	Description string `json:"description,omitempty"`
}

// CreateRequest carries the data for a new event
type CreateRequest struct {
	Title       string       `json:"title" binding:"required"`
	Description string       `json:"description" binding:"required"`
	Category    string       `json:"category" binding:"required"`
	Date        string       `json:"date" binding:"required"`
	Time        string       `json:"time" binding:"required"`
	Location    string       `json:"location" binding:"required"`
	Image       string       `json:"image,omitempty"`
	Capacity    int          `json:"capacity" binding:"required,min=1"`
	Tickets     []TicketTier `json:"tickets" binding:"required,min=1"`
	Tags        []string     `json:"tags,omitempty"`
}

// Create submits a new event to the upstream API
func (s *Service) Create(ctx context.Context, cred upstream.Credential, req *CreateRequest) (*Event, error) {
	var raw json.RawMessage
	if err := s.api.Post(ctx, cred, "/events", req, &raw); err != nil {
		return nil, err
	}

	rawEvt, err := unwrapEvent(raw)
	if err != nil {
		return nil, err
	}

	evt := mapEvent(rawEvt, s.api.AssetURL)
	return &evt, nil
}

// UploadImage forwards an event image to the upstream API and returns the
// stored image reference
func (s *Service) UploadImage(ctx context.Context, cred upstream.Credential, filename string, file io.Reader) (string, error) {
	var resp struct {
		Filename string `json:"filename"`
		URL      string `json:"url"`
		Image    string `json:"image"`
	}
	if err := s.api.Upload(ctx, cred, "/events/upload-image", "image", filename, file, &resp); err != nil {
		return "", err
	}

	switch {
	case resp.Filename != "":
		return resp.Filename, nil
	case resp.URL != "":
		return resp.URL, nil
	default:
		return resp.Image, nil
	}
}

// unwrapEvent peels the optional {"data": …} envelope off a single event
func unwrapEvent(raw json.RawMessage) (*rawEvent, error) {
	var envelope struct {
		Data *rawEvent `json:"data"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Data != nil {
		return envelope.Data, nil
	}

	var bare rawEvent
	if err := json.Unmarshal(raw, &bare); err != nil {
		return nil, fmt.Errorf("failed to decode event payload: %w", err)
	}
	return &bare, nil
}
