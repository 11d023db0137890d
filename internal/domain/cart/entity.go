// internal/domain/cart/entity.go
package cart

// TicketType identifies a ticket tier on an event
type TicketType string

const (
	TicketStandard TicketType = "Standard"
	TicketVIP      TicketType = "VIP"
)

// Valid reports whether the ticket type is one the storefront sells
func (t TicketType) Valid() bool {
	return t == TicketStandard || t == TicketVIP
}

// Line is one event's pending ticket selection awaiting checkout.
// A cart holds at most one line per event; adding the same event again
// merges quantities instead of duplicating the line.
type Line struct {
	EventID          string `json:"event_id"`
	EventTitle       string `json:"event_title"`
	EventDate        string `json:"event_date"`
	EventLocation    string `json:"event_location"`
	EventImage       string `json:"event_image"`
	StandardQuantity int    `json:"standard_quantity"`
	VIPQuantity      int    `json:"vip_quantity"`
	StandardPrice    int64  `json:"standard_price"` // unit price in minor currency units
	VIPPrice         int64  `json:"vip_price"`
}

// Subtotal returns the line total across both ticket tiers
func (l Line) Subtotal() int64 {
	return int64(l.StandardQuantity)*l.StandardPrice + int64(l.VIPQuantity)*l.VIPPrice
}
