package queue

import (
	"encoding/json"
	"log/slog"

	amqp "github.com/rabbitmq/amqp091-go"
)

// NotificationSender is what the worker needs from the mail side.
type NotificationSender interface {
	SendNewLeadAlert(payload LeadEventPayload) error
	SendImportSummary(payload LeadEventPayload) error
}

// Worker consumes lead events and turns them into email notifications. It is
// fully decoupled from the database; everything it needs travels in the payload.
type Worker struct {
	Channel *amqp.Channel
	Mailer  NotificationSender
	Logger  *slog.Logger
}

func NewWorker(ch *amqp.Channel, mailer NotificationSender, logger *slog.Logger) *Worker {
	return &Worker{
		Channel: ch,
		Mailer:  mailer,
		Logger:  logger,
	}
}

func (w *Worker) Start(queueName string) {
	msgs, err := w.Channel.Consume(
		queueName,
		"",    // consumer
		false, // manual ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		w.Logger.Error("failed to register queue consumer", "error", err)
		return
	}

	w.Logger.Info("notification worker waiting for lead events", "queue", queueName)

	for d := range msgs {
		var payload LeadEventPayload
		if err := json.Unmarshal(d.Body, &payload); err != nil {
			w.Logger.Error("discarding malformed lead event", "error", err)
			// malformed message, reject without requeue so the queue keeps moving
			d.Nack(false, false)
			continue
		}

		if err := w.process(payload); err != nil {
			w.Logger.Error("lead event processing failed", "event", payload.Event, "error", err)
			d.Nack(false, false)
			continue
		}
		d.Ack(false)
	}
}

func (w *Worker) process(payload LeadEventPayload) error {
	switch payload.Event {
	case EventLeadCreated:
		w.Logger.Info("new lead captured", "buyer_id", payload.BuyerID, "city", payload.City)
		return w.Mailer.SendNewLeadAlert(payload)
	case EventLeadsImported:
		w.Logger.Info("bulk import finished", "inserted", payload.Inserted, "rejected", payload.Rejected)
		return w.Mailer.SendImportSummary(payload)
	default:
		// unknown event, ack and move on
		w.Logger.Warn("unknown lead event", "event", payload.Event)
		return nil
	}
}
