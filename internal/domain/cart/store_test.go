package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func line(eventID string, std, vip int) Line {
	return Line{
		EventID:          eventID,
		EventTitle:       "Event " + eventID,
		StandardQuantity: std,
		VIPQuantity:      vip,
		StandardPrice:    1000,
		VIPPrice:         5000,
	}
}

func TestStoreAddMergesQuantitiesPerEvent(t *testing.T) {
	s := NewStore()

	s.Add("client-1", line("ev-1", 2, 0))
	s.Add("client-1", line("ev-1", 1, 3))

	lines := s.Lines("client-1")
	require.Len(t, lines, 1)
	assert.Equal(t, 3, lines[0].StandardQuantity)
	assert.Equal(t, 3, lines[0].VIPQuantity)
}

func TestStoreAddPreservesInsertionOrder(t *testing.T) {
	s := NewStore()

	s.Add("client-1", line("ev-b", 1, 0))
	s.Add("client-1", line("ev-a", 1, 0))
	s.Add("client-1", line("ev-c", 1, 0))

	lines := s.Lines("client-1")
	require.Len(t, lines, 3)
	assert.Equal(t, "ev-b", lines[0].EventID)
	assert.Equal(t, "ev-a", lines[1].EventID)
	assert.Equal(t, "ev-c", lines[2].EventID)
}

func TestStoreTotalMatchesLineSubtotals(t *testing.T) {
	s := NewStore()

	s.Add("client-1", line("ev-1", 2, 0)) // 2 * 1000
	s.Add("client-1", line("ev-2", 1, 1)) // 1000 + 5000

	assert.Equal(t, int64(8000), s.Total("client-1"))

	var sum int64
	for _, l := range s.Lines("client-1") {
		sum += l.Subtotal()
	}
	assert.Equal(t, sum, s.Total("client-1"))
}

func TestStoreRemoveIsIdempotent(t *testing.T) {
	s := NewStore()

	s.Add("client-1", line("ev-1", 1, 0))
	s.Remove("client-1", "ev-1")
	s.Remove("client-1", "ev-1")
	s.Remove("client-1", "ev-missing")

	assert.Empty(t, s.Lines("client-1"))
}

func TestStoreUpdateQuantitySetsExactValue(t *testing.T) {
	s := NewStore()

	s.Add("client-1", line("ev-1", 2, 2))

	s.UpdateQuantity("client-1", "ev-1", TicketStandard, 5)
	s.UpdateQuantity("client-1", "ev-1", TicketVIP, 0)

	lines := s.Lines("client-1")
	require.Len(t, lines, 1)
	assert.Equal(t, 5, lines[0].StandardQuantity)
	assert.Equal(t, 0, lines[0].VIPQuantity)
}

func TestStoreUpdateQuantityAbsentEventIsNoOp(t *testing.T) {
	s := NewStore()

	s.Add("client-1", line("ev-1", 1, 0))
	s.UpdateQuantity("client-1", "ev-missing", TicketStandard, 9)

	lines := s.Lines("client-1")
	require.Len(t, lines, 1)
	assert.Equal(t, 1, lines[0].StandardQuantity)
}

func TestStoreIsolatesClients(t *testing.T) {
	s := NewStore()

	s.Add("client-1", line("ev-1", 1, 0))
	s.Add("client-2", line("ev-2", 2, 0))

	assert.Len(t, s.Lines("client-1"), 1)
	assert.Len(t, s.Lines("client-2"), 1)

	s.Clear("client-1")
	assert.Empty(t, s.Lines("client-1"))
	assert.Len(t, s.Lines("client-2"), 1)
}

func TestStoreLinesReturnsCopy(t *testing.T) {
	s := NewStore()

	s.Add("client-1", line("ev-1", 1, 0))

	lines := s.Lines("client-1")
	lines[0].StandardQuantity = 99

	assert.Equal(t, 1, s.Lines("client-1")[0].StandardQuantity)
}

func TestLineSubtotal(t *testing.T) {
	tests := []struct {
		name string
		line Line
		want int64
	}{
		{"standard only", line("ev", 3, 0), 3000},
		{"vip only", line("ev", 0, 2), 10000},
		{"mixed", line("ev", 2, 1), 7000},
		{"empty", line("ev", 0, 0), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.line.Subtotal())
		})
	}
}

func TestTicketTypeValid(t *testing.T) {
	assert.True(t, TicketStandard.Valid())
	assert.True(t, TicketVIP.Valid())
	assert.False(t, TicketType("premium").Valid())
}
