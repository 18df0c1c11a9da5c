package rabbitmq

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	amqp "github.com/streadway/amqp"
)

// ProductQueue receives one message per product created through a form.
const ProductQueue = "product_created_queue"

// channel is the part of *amqp.Channel the client uses.
type channel interface {
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// closer is the part of *amqp.Connection the client uses.
type closer interface {
	Close() error
}

// Client holds the RabbitMQ connection and channel.
type Client struct {
	conn    closer
	channel channel
	mu      sync.Mutex
}

// Config holds RabbitMQ connection details.
type Config struct {
	URL string
}

// NewClient connects to RabbitMQ, opens a channel and declares ProductQueue.
func NewClient(cfg Config) (*Client, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	_, err = ch.QueueDeclare(
		ProductQueue, // name
		true,         // durable
		false,        // delete when unused
		false,        // exclusive
		false,        // no-wait
		nil,          // arguments
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare %s: %w", ProductQueue, err)
	}

	log.Printf("RabbitMQ client connected and %s declared.", ProductQueue)

	return &Client{
		conn:    conn,
		channel: ch,
	}, nil
}

// newClientWithChannel builds a client around an already open channel and
// its connection.
func newClientWithChannel(ch channel, conn closer) *Client {
	return &Client{conn: conn, channel: ch}
}

// Close closes the channel before its connection. Both are attempted even
// when the first fails.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var errs []error
	for _, h := range []struct {
		name string
		c    closer
	}{{"channel", c.channel}, {"connection", c.conn}} {
		if h.c == nil {
			continue
		}
		if err := h.c.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close %s: %w", h.name, err))
		}
	}
	c.channel, c.conn = nil, nil
	return errors.Join(errs...)
}

// PublishProductCreated publishes data as a persistent JSON message on
// ProductQueue.
func (c *Client) PublishProductCreated(data map[string]interface{}) error {
	body, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal product event to JSON: %w", err)
	}

	// amqp channels are not safe for concurrent publishing.
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not available")
	}

	err = c.channel.Publish(
		"",           // exchange: default exchange
		ProductQueue, // routing key: the queue name
		false,        // mandatory
		false,        // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
			Type:         "product.created",
		})
	if err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}

	log.Printf(" [x] Sent product created event (%d bytes)", len(body))
	return nil
}
