package audit

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/corray333/backend-labs/grocery/internal/dal/rabbitmq"
	"github.com/corray333/backend-labs/grocery/internal/service/models/order"
	"github.com/corray333/backend-labs/grocery/internal/service/models/orderitem"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type brokerMock struct {
	mock.Mock
}

func (m *brokerMock) DeclareQueue(cfg rabbitmq.DeclareQueueConfig) (amqp.Queue, error) {
	args := m.Called(cfg)
	return args.Get(0).(amqp.Queue), args.Error(1)
}

func (m *brokerMock) Publish(queue string, msg amqp.Publishing) error {
	return m.Called(queue, msg).Error(0)
}

func TestNewAuditRabbitMQRepository_DeclaresDurableQueue(t *testing.T) {
	b := &brokerMock{}
	b.On("DeclareQueue", rabbitmq.DeclareQueueConfig{Name: DefaultQueue, Durable: true}).
		Return(amqp.Queue{Name: DefaultQueue}, nil).Once()

	_, err := NewAuditRabbitMQRepository(b, "")
	require.NoError(t, err)
	b.AssertExpectations(t)
}

func TestNewAuditRabbitMQRepository_DeclareFails(t *testing.T) {
	b := &brokerMock{}
	b.On("DeclareQueue", mock.Anything).Return(amqp.Queue{}, errors.New("channel closed")).Once()

	_, err := NewAuditRabbitMQRepository(b, "orders")
	assert.ErrorContains(t, err, "orders")
}

func TestLogOrderPlaced(t *testing.T) {
	b := &brokerMock{}
	b.On("DeclareQueue", mock.Anything).Return(amqp.Queue{Name: "orders"}, nil).Once()

	var published amqp.Publishing
	b.On("Publish", "orders", mock.Anything).Run(func(args mock.Arguments) {
		published = args.Get(1).(amqp.Publishing)
	}).Return(nil).Once()

	repo, err := NewAuditRabbitMQRepository(b, "orders")
	require.NoError(t, err)
	occurred := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return occurred }

	details := order.Details{
		Order: order.Order{ID: 11, UserID: 2, TotalAmount: decimal.NewFromInt(65), Status: order.StatusPlaced},
		OrderItems: []orderitem.OrderItem{
			{ID: 1, OrderID: 11, ItemID: 1, Quantity: 2, Price: decimal.NewFromInt(10), TotalPrice: decimal.NewFromInt(20)},
		},
	}
	require.NoError(t, repo.LogOrderPlaced(context.Background(), details))
	b.AssertExpectations(t)

	assert.Equal(t, "application/json", published.ContentType)
	assert.Equal(t, amqp.Persistent, published.DeliveryMode)
	assert.Equal(t, "order.placed", published.Type)
	assert.NotEmpty(t, published.MessageId)
	assert.Equal(t, occurred, published.Timestamp)

	var event OrderPlacedEvent
	require.NoError(t, json.Unmarshal(published.Body, &event))
	assert.Equal(t, published.MessageId, event.EventID)
	assert.Equal(t, int64(11), event.Order.ID)
	require.Len(t, event.OrderItems, 1)
	assert.True(t, decimal.NewFromInt(20).Equal(event.OrderItems[0].TotalPrice))
}

func TestLogOrderPlaced_PublishFails(t *testing.T) {
	b := &brokerMock{}
	b.On("DeclareQueue", mock.Anything).Return(amqp.Queue{Name: "orders"}, nil).Once()
	b.On("Publish", "orders", mock.Anything).Return(errors.New("connection lost")).Once()

	repo, err := NewAuditRabbitMQRepository(b, "orders")
	require.NoError(t, err)

	err = repo.LogOrderPlaced(context.Background(), order.Details{})
	assert.ErrorContains(t, err, "connection lost")
}
