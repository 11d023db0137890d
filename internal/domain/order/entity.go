// internal/domain/order/entity.go
package order

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/your-org/ticketing-storefront/internal/domain/cart"
)

// Status represents the status of an order
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
	StatusRefunded  Status = "refunded"
)

// PaymentMethod identifies how an order was paid
type PaymentMethod string

const (
	PaymentCard        PaymentMethod = "card"
	PaymentWave        PaymentMethod = "wave"
	PaymentOrangeMoney PaymentMethod = "orange-money"
	PaymentFreeMoney   PaymentMethod = "free-money"
)

// Valid reports whether the payment method is one the storefront offers
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCard, PaymentWave, PaymentOrangeMoney, PaymentFreeMoney:
		return true
	}
	return false
}

// LineItem is one ticket tier within an order
type LineItem struct {
	Type      cart.TicketType `json:"type"`
	Quantity  int             `json:"quantity"`
	UnitPrice int64           `json:"unit_price"`
}

// Order is an immutable record of a completed ticket purchase for a single
// event. Orders are generated at checkout, one per cart line, and are never
// mutated or deleted after being appended to the order store.
type Order struct {
	ID            string        `json:"id"`
	UserID        string        `json:"user_id"`
	EventID       string        `json:"event_id"`
	EventTitle    string        `json:"event_title"`
	EventDate     string        `json:"event_date"`
	Items         []LineItem    `json:"tickets"`
	Total         int64         `json:"total"`
	PaymentMethod PaymentMethod `json:"payment_method"`
	Status        Status        `json:"status"`
	PurchasedAt   time.Time     `json:"purchase_date"`
}

// NewOrderID generates an opaque client-side order identifier.
// Format: ORD-YYYYMMDD-xxxxxxxx (date plus a random suffix).
func NewOrderID(now time.Time) string {
	return fmt.Sprintf("ORD-%s-%s", now.UTC().Format("20060102"), uuid.NewString()[:8])
}

// Validate checks the order's internal consistency: every line item carries
// a positive quantity and the total equals the sum over line items.
func (o *Order) Validate() error {
	if o.ID == "" {
		return fmt.Errorf("order id is required")
	}
	if len(o.Items) == 0 {
		return fmt.Errorf("order must contain at least one line item")
	}

	var total int64
	for _, item := range o.Items {
		if item.Quantity <= 0 {
			return fmt.Errorf("line item quantity must be positive")
		}
		total += int64(item.Quantity) * item.UnitPrice
	}
	if total != o.Total {
		return fmt.Errorf("order total %d does not match line items sum %d", o.Total, total)
	}

	return nil
}
