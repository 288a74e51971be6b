package queue

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	EventLeadCreated   = "lead.created"
	EventLeadsImported = "leads.imported"
)

// LeadEventPayload is published whenever the record set changes in a way the
// sales side wants to hear about: a single captured lead or a bulk import.
type LeadEventPayload struct {
	Event string `json:"event"`

	// set for lead.created
	BuyerID      string `json:"buyer_id,omitempty"`
	FullName     string `json:"full_name,omitempty"`
	Email        string `json:"email,omitempty"`
	Phone        string `json:"phone,omitempty"`
	City         string `json:"city,omitempty"`
	PropertyType string `json:"property_type,omitempty"`
	OwnerID      string `json:"owner_id,omitempty"`

	// set for leads.imported
	Inserted int `json:"inserted,omitempty"`
	Rejected int `json:"rejected,omitempty"`
}

type ProducerInterface interface {
	PublishLeadEvent(ctx context.Context, payload LeadEventPayload) error
}

type RabbitMQProducer struct {
	Conn *amqp.Connection
	Ch   *amqp.Channel
}

func NewProducer(conn *amqp.Connection, ch *amqp.Channel) *RabbitMQProducer {
	return &RabbitMQProducer{
		Conn: conn,
		Ch:   ch,
	}
}

func (p *RabbitMQProducer) PublishLeadEvent(ctx context.Context, payload LeadEventPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding lead event: %w", err)
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName,
		RoutingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("publishing lead event: %w", err)
	}
	return nil
}
