package notify

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chrisapx/farm-to-table-fav/internal/domain"
)

func TestWhatsappLink_StripsNonDigits(t *testing.T) {
	assert.Equal(t, "https://wa.me/256784964625", WhatsappLink("+256 784-964625"))
	assert.Equal(t, "https://wa.me/0712345678", WhatsappLink("0712345678"))
}

func TestBuildPayload(t *testing.T) {
	orderID := uuid.New()
	order := &domain.Order{
		ID:             orderID,
		CustomerName:   "Jane",
		WhatsappNumber: "0712345678",
		Notes:          "leave at the gate",
		Status:         domain.OrderStatusPending,
		CreatedAt:      time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC),
		Items: []domain.OrderItem{
			{ItemName: "Tomato", Quantity: 2, UnitPrice: 50, Unit: "kg"},
			{ItemName: "Milk", Quantity: 1, UnitPrice: 100, Unit: "litre"},
		},
	}

	data, err := buildPayload(order)
	require.NoError(t, err)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(data, &payload))

	assert.Equal(t, orderID.String(), payload["order_id"])
	assert.Equal(t, "Jane", payload["customer_name"])
	assert.Equal(t, "https://wa.me/0712345678", payload["whatsapp_link"])
	assert.Equal(t, 200.0, payload["total"])
	assert.Equal(t, "2026-08-30T10:00:00Z", payload["created_at"])
	assert.Len(t, payload["items"], 2)
}

func TestBuildPayload_OmitsEmptyNotes(t *testing.T) {
	order := &domain.Order{
		ID:             uuid.New(),
		CustomerName:   "Jane",
		WhatsappNumber: "0712345678",
		Status:         domain.OrderStatusPending,
	}

	data, err := buildPayload(order)
	require.NoError(t, err)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(data, &payload))
	_, present := payload["notes"]
	assert.False(t, present)
}
