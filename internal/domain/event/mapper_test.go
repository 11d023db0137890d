package event

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func passthroughAsset(path string) string {
	if path == "" {
		return ""
	}
	return "http://assets.example.com/" + path
}

func TestMapRawHandlesMongoIDAndTicketTiers(t *testing.T) {
	raw := json.RawMessage(`{
		"_id": "ev-1",
		"title": "Dakar Jazz Night",
		"date": "2026-09-12",
		"location": "Dakar Arena",
		"tickets": [
			{"type": "Standard", "price": 5000},
			{"type": "VIP", "price": 15000}
		],
		"image": "uploads/jazz.png",
		"organizer": {"name": "Sunu Events"},
		"status": "published",
		"featured": true
	}`)

	evt, err := MapRaw(raw, passthroughAsset)
	require.NoError(t, err)

	assert.Equal(t, "ev-1", evt.ID)
	assert.Equal(t, "Dakar Jazz Night", evt.Title)
	assert.Equal(t, int64(5000), evt.Price)
	assert.Equal(t, int64(15000), evt.VIPPrice)
	assert.Equal(t, "http://assets.example.com/uploads/jazz.png", evt.Image)
	assert.Equal(t, "Sunu Events", evt.Organizer)
	assert.Equal(t, StatusUpcoming, evt.Status)
	assert.True(t, evt.Featured)
}

func TestMapRawHandlesFlatShape(t *testing.T) {
	raw := json.RawMessage(`{
		"id": "ev-2",
		"title": "Tech Meetup",
		"price": 0,
		"vipPrice": 2000,
		"organizer": "Community Hub",
		"status": "ended"
	}`)

	evt, err := MapRaw(raw, passthroughAsset)
	require.NoError(t, err)

	assert.Equal(t, "ev-2", evt.ID)
	assert.Equal(t, int64(0), evt.Price)
	assert.Equal(t, int64(2000), evt.VIPPrice)
	assert.Equal(t, "Community Hub", evt.Organizer)
	assert.Equal(t, StatusCompleted, evt.Status)
}

func TestMapRawPrefersMongoIDOverID(t *testing.T) {
	raw := json.RawMessage(`{"_id": "mongo-1", "id": "plain-1", "title": "x"}`)

	evt, err := MapRaw(raw, passthroughAsset)
	require.NoError(t, err)
	assert.Equal(t, "mongo-1", evt.ID)
}

func TestMapRawSlice(t *testing.T) {
	raws := []json.RawMessage{
		json.RawMessage(`{"id": "a", "title": "A"}`),
		json.RawMessage(`{"id": "b", "title": "B"}`),
	}

	events, err := MapRawSlice(raws, passthroughAsset)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "a", events[0].ID)
	assert.Equal(t, "b", events[1].ID)
}

func TestMapRawSlicePropagatesDecodeError(t *testing.T) {
	raws := []json.RawMessage{json.RawMessage(`not json`)}

	_, err := MapRawSlice(raws, passthroughAsset)
	assert.Error(t, err)
}

func TestMapStatus(t *testing.T) {
	tests := []struct {
		upstream string
		want     Status
	}{
		{"published", StatusUpcoming},
		{"active", StatusUpcoming},
		{"ongoing", StatusOngoing},
		{"completed", StatusCompleted},
		{"ended", StatusCompleted},
		{"cancelled", StatusCancelled},
		{"", StatusUpcoming},
		{"weird", StatusUpcoming},
	}

	for _, tt := range tests {
		t.Run(tt.upstream, func(t *testing.T) {
			assert.Equal(t, tt.want, mapStatus(tt.upstream))
		})
	}
}

func TestOrganizerName(t *testing.T) {
	assert.Equal(t, "Sunu Events", organizerName(json.RawMessage(`{"name": "Sunu Events"}`)))
	assert.Equal(t, "Bare Name", organizerName(json.RawMessage(`"Bare Name"`)))
	assert.Equal(t, "", organizerName(nil))
	assert.Equal(t, "", organizerName(json.RawMessage(`{}`)))
}
