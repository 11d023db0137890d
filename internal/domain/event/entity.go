// internal/domain/event/entity.go
package event

// Status represents the lifecycle state of an event as displayed in the
// storefront. The upstream API uses a wider vocabulary that the mapper
// collapses into these four values.
type Status string

const (
	StatusUpcoming  Status = "upcoming"
	StatusOngoing   Status = "ongoing"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Event is the read-only storefront projection of an upstream event.
// Sold and Capacity are display values; the sold <= capacity invariant is
// enforced upstream.
type Event struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Location    string `json:"location"`
	Category    string `json:"category"`
	Price       int64  `json:"price"`
	VIPPrice    int64  `json:"vip_price,omitempty"`
	Image       string `json:"image"`
	Organizer   string `json:"organizer"`
	Capacity    int    `json:"capacity"`
	Sold        int    `json:"sold"`
	Status      Status `json:"status"`
	Featured    bool   `json:"featured"`
}

// Pagination mirrors the upstream list pagination block
type Pagination struct {
	Page    int  `json:"page"`
	Limit   int  `json:"limit"`
	Total   int  `json:"total"`
	Pages   int  `json:"pages"`
	HasNext bool `json:"hasNext"`
	HasPrev bool `json:"hasPrev"`
}

// ListResult is a page of events with its pagination block
type ListResult struct {
	Events     []Event    `json:"events"`
	Pagination Pagination `json:"pagination"`
}
