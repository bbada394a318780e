package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/KOFI-GYIMAH/portfolio/internal/models"
	"github.com/KOFI-GYIMAH/portfolio/pkg/logger"
	"github.com/streadway/amqp"
)

const (
	ContactQueue       = "contact_notifications"
	EventContactCreate = "contact.submitted"
)

// * ContactEvent is the message body published for every stored contact
type ContactEvent struct {
	Event       string    `json:"event"`
	ContactID   int64     `json:"contact_id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Subject     string    `json:"subject"`
	Message     string    `json:"message"`
	SubmittedAt time.Time `json:"submitted_at"`
}

func NewContactEvent(contact models.Contact) ContactEvent {
	return ContactEvent{
		Event:       EventContactCreate,
		ContactID:   contact.ID,
		Name:        contact.Name,
		Email:       contact.Email,
		Subject:     contact.Subject,
		Message:     contact.Message,
		SubmittedAt: contact.CreatedAt,
	}
}

// * publisher is the part of *amqp.Channel the notifier uses
type publisher interface {
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

type RabbitMQ struct {
	conn    *amqp.Connection
	channel publisher
	mu      sync.Mutex
}

func NewRabbitMQ(url string) (*RabbitMQ, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open rabbitmq channel: %w", err)
	}

	r := &RabbitMQ{conn: conn, channel: channel}
	if err := r.declare(); err != nil {
		r.Close()
		return nil, err
	}

	logger.Info("Connected to RabbitMQ, publishing to %q", ContactQueue)
	return r, nil
}

func (r *RabbitMQ) declare() error {
	_, err := r.channel.QueueDeclare(
		ContactQueue,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("declare queue %s: %w", ContactQueue, err)
	}
	return nil
}

// * ContactSubmitted publishes a persistent contact.submitted message
func (r *RabbitMQ) ContactSubmitted(ctx context.Context, contact models.Contact) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	body, err := json.Marshal(NewContactEvent(contact))
	if err != nil {
		return err
	}

	// * amqp channels are not safe for concurrent publishes
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.channel.Publish(
		"",
		ContactQueue,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Type:         EventContactCreate,
			Timestamp:    time.Now().UTC(),
			Body:         body,
		},
	)
}

func (r *RabbitMQ) Close() error {
	if err := r.channel.Close(); err != nil {
		return err
	}
	if r.conn == nil {
		return nil
	}
	return r.conn.Close()
}

// * NoopNotifier is used when no broker is configured
type NoopNotifier struct{}

func (NoopNotifier) ContactSubmitted(ctx context.Context, contact models.Contact) error {
	logger.Debug("No broker configured, skipping notification for contact %d", contact.ID)
	return nil
}

func (NoopNotifier) Close() error { return nil }
