package events

import (
	"context"
	"encoding/json"
	"log"
	"strconv"
	"time"

	"github.com/saludmexfood/saluds-mx-food/models"
	"github.com/segmentio/kafka-go"
)

type OrderEvent struct {
	Type       string             `json:"type"` // "order.created" | "order.status_changed"
	OrderID    uint               `json:"order_id"`
	Status     models.OrderStatus `json:"status"`
	TotalCents int                `json:"total_cents"`
	OccurredAt time.Time          `json:"occurred_at"`
}

// Publisher writes order lifecycle events to Kafka. A nil *Publisher (no
// broker configured) is valid and drops events.
type Publisher struct {
	Writer *kafka.Writer
}

func NewPublisher(writer *kafka.Writer) *Publisher {
	if writer == nil {
		return nil
	}
	return &Publisher{Writer: writer}
}

func (p *Publisher) Publish(ctx context.Context, event OrderEvent) {
	if p == nil || p.Writer == nil {
		return
	}
	payload, _ := json.Marshal(event)
	err := p.Writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(strconv.FormatUint(uint64(event.OrderID), 10)),
		Value: payload,
	})
	if err != nil {
		log.Printf("❌ Failed to publish %s for order %d: %v", event.Type, event.OrderID, err)
	}
}

func (p *Publisher) OrderCreated(ctx context.Context, order models.Order) {
	p.Publish(ctx, OrderEvent{
		Type:       "order.created",
		OrderID:    order.ID,
		Status:     order.Status,
		TotalCents: order.TotalCents,
		OccurredAt: time.Now(),
	})
}

func (p *Publisher) OrderStatusChanged(ctx context.Context, order models.Order) {
	p.Publish(ctx, OrderEvent{
		Type:       "order.status_changed",
		OrderID:    order.ID,
		Status:     order.Status,
		TotalCents: order.TotalCents,
		OccurredAt: time.Now(),
	})
}
