// internal/domain/event/mapper.go
package event

import "encoding/json"

// rawEvent matches the event shape the upstream API returns. Prices live
// either in a tickets array (tier order: standard, VIP) or in flat fields,
// and the organizer is either a nested object or a bare string.
type rawEvent struct {
	MongoID     string `json:"_id"`
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Location    string `json:"location"`
	Category    string `json:"category"`
	Price       int64  `json:"price"`
	VIPPrice    int64  `json:"vipPrice"`
	Tickets     []struct {
		Type  string `json:"type"`
		Price int64  `json:"price"`
	} `json:"tickets"`
	Image     string          `json:"image"`
	Organizer json.RawMessage `json:"organizer"`
	Capacity  int             `json:"capacity"`
	Sold      int             `json:"sold"`
	Status    string          `json:"status"`
	Featured  bool            `json:"featured"`
}

// mapEvent translates an upstream event into the storefront projection.
// assetURL absolutizes a relative image path against the asset server.
func mapEvent(raw *rawEvent, assetURL func(string) string) Event {
	id := raw.MongoID
	if id == "" {
		id = raw.ID
	}

	price := raw.Price
	vipPrice := raw.VIPPrice
	if len(raw.Tickets) > 0 {
		price = raw.Tickets[0].Price
	}
	if len(raw.Tickets) > 1 {
		vipPrice = raw.Tickets[1].Price
	}

	return Event{
		ID:          id,
		Title:       raw.Title,
		Description: raw.Description,
		Date:        raw.Date,
		Time:        raw.Time,
		Location:    raw.Location,
		Category:    raw.Category,
		Price:       price,
		VIPPrice:    vipPrice,
		Image:       assetURL(raw.Image),
		Organizer:   organizerName(raw.Organizer),
		Capacity:    raw.Capacity,
		Sold:        raw.Sold,
		Status:      mapStatus(raw.Status),
		Featured:    raw.Featured,
	}
}

// MapRaw decodes a single upstream event object and maps it. Used by the
// organizer console, whose endpoints return the same event shape.
func MapRaw(raw json.RawMessage, assetURL func(string) string) (*Event, error) {
	var re rawEvent
	if err := json.Unmarshal(raw, &re); err != nil {
		return nil, err
	}
	evt := mapEvent(&re, assetURL)
	return &evt, nil
}

// MapRawSlice decodes and maps a list of upstream event objects
func MapRawSlice(raws []json.RawMessage, assetURL func(string) string) ([]Event, error) {
	events := make([]Event, 0, len(raws))
	for _, raw := range raws {
		evt, err := MapRaw(raw, assetURL)
		if err != nil {
			return nil, err
		}
		events = append(events, *evt)
	}
	return events, nil
}

// organizerName extracts the display name from either shape of the
// organizer field
func organizerName(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var name string
	if err := json.Unmarshal(raw, &name); err == nil {
		return name
	}

	var nested struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(raw, &nested); err == nil {
		return nested.Name
	}
	return ""
}

// mapStatus collapses the upstream status vocabulary into the storefront's
func mapStatus(status string) Status {
	switch status {
	case "published", "active":
		return StatusUpcoming
	case "ongoing":
		return StatusOngoing
	case "completed", "ended":
		return StatusCompleted
	case "cancelled":
		return StatusCancelled
	default:
		return StatusUpcoming
	}
}
