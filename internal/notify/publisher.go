// Package notify publishes order-placed events for the WhatsApp outreach bot.
// Publishing is fire and forget: checkout success never depends on the broker.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"

	"github.com/segmentio/kafka-go"

	"github.com/chrisapx/farm-to-table-fav/internal/domain"
)

const Topic = "order-placed"

type Publisher interface {
	OrderPlaced(ctx context.Context, order *domain.Order) error
	Close() error
}

type orderItemPayload struct {
	ItemName  string  `json:"item_name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Unit      string  `json:"unit"`
}

type orderPlacedPayload struct {
	OrderID        string             `json:"order_id"`
	CustomerName   string             `json:"customer_name"`
	WhatsappNumber string             `json:"whatsapp_number"`
	WhatsappLink   string             `json:"whatsapp_link"`
	Notes          string             `json:"notes,omitempty"`
	Total          float64            `json:"total"`
	Items          []orderItemPayload `json:"items"`
	CreatedAt      string             `json:"created_at"`
}

var nonDigits = regexp.MustCompile(`\D`)

// WhatsappLink builds a wa.me chat link from a free-text phone number.
func WhatsappLink(number string) string {
	return fmt.Sprintf("https://wa.me/%s", nonDigits.ReplaceAllString(number, ""))
}

func buildPayload(order *domain.Order) ([]byte, error) {
	items := make([]orderItemPayload, len(order.Items))
	for i, item := range order.Items {
		items[i] = orderItemPayload{
			ItemName:  item.ItemName,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Unit:      item.Unit,
		}
	}

	return json.Marshal(orderPlacedPayload{
		OrderID:        order.ID.String(),
		CustomerName:   order.CustomerName,
		WhatsappNumber: order.WhatsappNumber,
		WhatsappLink:   WhatsappLink(order.WhatsappNumber),
		Notes:          order.Notes,
		Total:          order.Total(),
		Items:          items,
		CreatedAt:      order.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	})
}

type KafkaPublisher struct {
	writer *kafka.Writer
}

func NewKafkaPublisher(brokers ...string) *KafkaPublisher {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  Topic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
	return &KafkaPublisher{writer: w}
}

func (p *KafkaPublisher) OrderPlaced(ctx context.Context, order *domain.Order) error {
	payload, err := buildPayload(order)
	if err != nil {
		return fmt.Errorf("marshal order payload: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(order.ID.String()), // order_id for ordering
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte("order_placed")},
		},
	}

	return p.writer.WriteMessages(ctx, msg)
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NoopPublisher is wired when no brokers are configured.
type NoopPublisher struct{}

func (NoopPublisher) OrderPlaced(context.Context, *domain.Order) error { return nil }
func (NoopPublisher) Close() error                                     { return nil }
