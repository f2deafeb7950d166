/**
 * @description
 * RabbitMQ implementation of the event channel. Messages are published to
 * a topic exchange with the channel name as the routing key; each
 * subscriber group gets a durable queue bound to that routing key, so
 * distinct groups receive independent copies of every message.
 *
 * @dependencies
 * - github.com/rabbitmq/amqp091-go: The Go client for RabbitMQ.
 * - github.com/google/uuid: Message ids stamped on every publish.
 *
 * @notes
 * - Publish returns a bool, not an error: the provisioning flow treats
 *   notification publishing as best-effort, and the broker's acceptance
 *   is the only signal it observes.
 */
package eventbus

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// RabbitBus is a Channel backed by a RabbitMQ topic exchange.
type RabbitBus struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
}

// NewRabbitBus dials RabbitMQ and returns a bus publishing on the named
// topic exchange.
func NewRabbitBus(amqpURL, exchange string) (*RabbitBus, error) {
	cleanURL, err := sanitizeAMQPURL(amqpURL)
	if err != nil {
		return nil, err
	}

	// Bounded dial timeout so startup does not hang indefinitely.
	conn, err := amqp.DialConfig(cleanURL, amqp.Config{Dial: amqp.DefaultDial(10 * time.Second)})
	if err != nil {
		return nil, err
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}

	return &RabbitBus{conn: conn, channel: channel, exchange: exchange}, nil
}

// Publish marshals payload and hands it to the broker on the given
// channel. The boolean result is broker acceptance; a failed publish is
// logged and reported as false, never retried here.
func (b *RabbitBus) Publish(ctx context.Context, channel string, payload any) bool {
	if err := b.declareExchange(); err != nil {
		log.Printf("Error declaring exchange '%s': %v", b.exchange, err)
		return false
	}

	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Error marshaling payload for channel '%s': %v", channel, err)
		return false
	}

	err = b.channel.PublishWithContext(ctx, b.exchange, channel, false, false, amqp.Publishing{
		ContentType: "application/json",
		MessageId:   uuid.NewString(),
		Timestamp:   time.Now().UTC(),
		Body:        body,
	})
	if err != nil {
		log.Printf("Error publishing to channel '%s': %v", channel, err)
		return false
	}

	log.Printf("Published message to exchange '%s' with routing key '%s'", b.exchange, channel)
	return true
}

// Subscribe binds a durable queue named <group>.<channel> to the channel's
// routing key and consumes it on a background goroutine. Setup errors are
// returned synchronously.
func (b *RabbitBus) Subscribe(channel, group string, handler Handler) error {
	if err := b.declareExchange(); err != nil {
		return err
	}

	queueName := group + "." + channel
	queue, err := b.channel.QueueDeclare(
		queueName,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		return err
	}

	if err := b.channel.QueueBind(queue.Name, channel, b.exchange, false, nil); err != nil {
		return err
	}

	deliveries, err := b.channel.Consume(
		queue.Name,
		"",    // consumer tag
		false, // manual acknowledgment
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return err
	}

	go func() {
		for d := range deliveries {
			if handler(d.Body) {
				d.Ack(false)
			} else {
				log.Printf("Handler failed to process message on '%s'. Re-queuing.", channel)
				d.Nack(false, true)
			}
		}
	}()

	log.Printf("Subscribed queue '%s' to channel '%s'", queue.Name, channel)
	return nil
}

// Close releases the channel and connection resources.
func (b *RabbitBus) Close() {
	if b.channel != nil {
		b.channel.Close()
	}
	if b.conn != nil {
		b.conn.Close()
	}
}

func (b *RabbitBus) declareExchange() error {
	return b.channel.ExchangeDeclare(
		b.exchange,
		"topic",
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,
	)
}

func sanitizeAMQPURL(raw string) (string, error) {
	clean := strings.TrimSpace(raw)
	clean = strings.Trim(clean, "\"'")
	idx := strings.Index(strings.ToLower(clean), "amqp")
	if idx > 0 {
		clean = clean[idx:]
	}
	parsed, err := url.Parse(clean)
	if err != nil {
		return "", err
	}
	if parsed.Scheme != "amqp" && parsed.Scheme != "amqps" {
		return "", errors.New("AMQP scheme must be either 'amqp://' or 'amqps://'")
	}
	return clean, nil
}
