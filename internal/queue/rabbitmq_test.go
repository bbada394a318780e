package queue

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"testing"
	"time"

	"github.com/KOFI-GYIMAH/portfolio/internal/models"
	"github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockChannel struct {
	mock.Mock
}

func (m *MockChannel) QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error) {
	called := m.Called(name, durable, autoDelete, exclusive, noWait, args)
	return called.Get(0).(amqp.Queue), called.Error(1)
}

func (m *MockChannel) Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	return m.Called(exchange, key, mandatory, immediate, msg).Error(0)
}

func (m *MockChannel) Close() error {
	return m.Called().Error(0)
}

func TestContactSubmitted_PublishesEvent(t *testing.T) {
	channel := new(MockChannel)
	r := &RabbitMQ{channel: channel}

	created := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	contact := models.Contact{ID: 3, Name: "Jane", Email: "jane@x.com", Subject: "Hi there", Message: "Long enough message", CreatedAt: created}

	var published amqp.Publishing
	channel.On("Publish", "", ContactQueue, false, false, mock.AnythingOfType("amqp.Publishing")).
		Run(func(args mock.Arguments) { published = args.Get(4).(amqp.Publishing) }).
		Return(nil).Once()

	require.NoError(t, r.ContactSubmitted(context.Background(), contact))

	assert.Equal(t, "application/json", published.ContentType)
	assert.Equal(t, amqp.Persistent, published.DeliveryMode)
	assert.Equal(t, EventContactCreate, published.Type)

	var event ContactEvent
	require.NoError(t, json.Unmarshal(published.Body, &event))
	assert.Equal(t, NewContactEvent(contact), event)
	channel.AssertExpectations(t)
}

func TestContactSubmitted_Errors(t *testing.T) {
	channel := new(MockChannel)
	r := &RabbitMQ{channel: channel}

	channel.On("Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(stderrors.New("channel closed")).Once()
	assert.EqualError(t, r.ContactSubmitted(context.Background(), models.Contact{ID: 1}), "channel closed")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, r.ContactSubmitted(ctx, models.Contact{ID: 2}), context.Canceled)
	channel.AssertNumberOfCalls(t, "Publish", 1)
}

func TestDeclare_IsDurable(t *testing.T) {
	channel := new(MockChannel)
	r := &RabbitMQ{channel: channel}

	channel.On("QueueDeclare", ContactQueue, true, false, false, false, amqp.Table(nil)).
		Return(amqp.Queue{Name: ContactQueue}, nil).Once()

	require.NoError(t, r.declare())
	channel.AssertExpectations(t)
}

func TestClose(t *testing.T) {
	channel := new(MockChannel)
	channel.On("Close").Return(nil).Once()

	assert.NoError(t, (&RabbitMQ{channel: channel}).Close())
	assert.NoError(t, NoopNotifier{}.Close())
	assert.NoError(t, NoopNotifier{}.ContactSubmitted(context.Background(), models.Contact{ID: 1}))
}
