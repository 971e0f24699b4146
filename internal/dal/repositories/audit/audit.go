package audit

import (
	"context"
	"encoding/json"
	"time"

	"github.com/corray333/backend-labs/grocery/internal/dal/rabbitmq"
	"github.com/corray333/backend-labs/grocery/internal/service/models/order"
	"github.com/corray333/backend-labs/grocery/internal/service/models/orderitem"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/streadway/amqp"
)

// DefaultQueue is the queue order events go to unless configured otherwise.
const DefaultQueue = "grocery.order.placed"

// OrderPlacedEvent is the message body of an order.placed event.
type OrderPlacedEvent struct {
	EventID    string                `json:"eventId"`
	OccurredAt time.Time             `json:"occurredAt"`
	Order      order.Order           `json:"order"`
	OrderItems []orderitem.OrderItem `json:"orderItems"`
}

type broker interface {
	DeclareQueue(cfg rabbitmq.DeclareQueueConfig) (amqp.Queue, error)
	Publish(queue string, msg amqp.Publishing) error
}

// AuditRabbitMQRepository publishes order events to RabbitMQ.
type AuditRabbitMQRepository struct {
	broker broker
	queue  amqp.Queue
	now    func() time.Time
}

// NewAuditRabbitMQRepository declares the queue and returns a publisher bound to it.
func NewAuditRabbitMQRepository(b broker, queueName string) (*AuditRabbitMQRepository, error) {
	if queueName == "" {
		queueName = DefaultQueue
	}

	queue, err := b.DeclareQueue(rabbitmq.DeclareQueueConfig{
		Name:    queueName,
		Durable: true,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to declare queue %s", queueName)
	}

	return &AuditRabbitMQRepository{
		broker: b,
		queue:  queue,
		now:    func() time.Time { return time.Now().UTC() },
	}, nil
}

// LogOrderPlaced publishes one order.placed event.
func (r *AuditRabbitMQRepository) LogOrderPlaced(ctx context.Context, details order.Details) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	event := OrderPlacedEvent{
		EventID:    uuid.NewString(),
		OccurredAt: r.now(),
		Order:      details.Order,
		OrderItems: details.OrderItems,
	}

	body, err := json.Marshal(event)
	if err != nil {
		return errors.Wrap(err, "failed to marshal order event")
	}

	err = r.broker.Publish(r.queue.Name, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    event.EventID,
		Timestamp:    event.OccurredAt,
		Type:         "order.placed",
		Body:         body,
	})

	return errors.Wrap(err, "failed to publish order event")
}

// NopAuditor discards events. It is used when messaging is disabled.
type NopAuditor struct{}

func (NopAuditor) LogOrderPlaced(context.Context, order.Details) error {
	return nil
}
