// Package notifier carries row-level change notifications for the
// registrations table over RabbitMQ. Publishing is best-effort: a broker
// failure is logged and never fails the request that triggered it.
package notifier

import (
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
)

// Change actions.
const (
	ActionInsert = "INSERT"
	ActionUpdate = "UPDATE"
	ActionDelete = "DELETE"
)

// RegistrationChange is the message published for every mutation of a
// registration row.
type RegistrationChange struct {
	Action         string `json:"action"`
	RegistrationID string `json:"registration_id"`
	EventID        string `json:"event_id"`
	PaymentStatus  string `json:"payment_status,omitempty"`
	ActorID        string `json:"actor_id,omitempty"`
}

// Publisher is what services publish through. NoopPublisher satisfies it
// when no broker is configured.
type Publisher interface {
	PublishChange(change RegistrationChange)
}

type NoopPublisher struct{}

func (NoopPublisher) PublishChange(RegistrationChange) {}

type Client struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
	queue    string
}

func NewClient(url, exchange, queue string) (*Client, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		logrus.WithError(err).Error("failed to connect to RabbitMQ")
		return nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		logrus.WithError(err).Error("failed to open RabbitMQ channel")
		return nil, err
	}

	client := &Client{
		conn:     conn,
		channel:  ch,
		exchange: exchange,
		queue:    queue,
	}

	if err := ch.ExchangeDeclare(exchange, "direct", true, false, false, false, nil); err != nil {
		logrus.WithError(err).Error("failed to declare exchange")
		return nil, err
	}

	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		logrus.WithError(err).Error("failed to declare queue")
		return nil, err
	}

	if err := ch.QueueBind(queue, "", exchange, false, nil); err != nil {
		logrus.WithError(err).Error("failed to bind queue")
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"exchange": exchange,
		"queue":    queue,
	}).Info("RabbitMQ initialized")

	return client, nil
}

func (c *Client) Close() {
	if c.channel != nil {
		_ = c.channel.Close()
	}
	if c.conn != nil {
		_ = c.conn.Close()
	}
	logrus.Info("RabbitMQ connection closed")
}

func (c *Client) PublishChange(change RegistrationChange) {
	body, err := json.Marshal(change)
	if err != nil {
		logrus.WithError(err).Error("failed to marshal registration change")
		return
	}

	err = c.channel.Publish(
		c.exchange,
		"",
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
			Timestamp:   time.Now(),
		},
	)
	if err != nil {
		logrus.WithError(err).Error("failed to publish registration change")
		return
	}

	logrus.WithFields(logrus.Fields{
		"action":          change.Action,
		"registration_id": change.RegistrationID,
		"event_id":        change.EventID,
	}).Debug("registration change published")
}

func (c *Client) Consume(handler func([]byte) error) error {
	msgs, err := c.channel.Consume(c.queue, "", false, false, false, false, nil)
	if err != nil {
		logrus.WithError(err).Error("failed to start consuming messages")
		return err
	}

	go func() {
		for d := range msgs {
			if err := handler(d.Body); err != nil {
				logrus.WithError(err).Warn("failed to process registration change")
				_ = d.Nack(false, true)
				continue
			}
			_ = d.Ack(false)
		}
	}()

	logrus.WithField("queue", c.queue).Info("started consuming registration changes")
	return nil
}
