package amqp

import (
	"context"
	"encoding/json"
	"fmt"

	amqp091 "github.com/rabbitmq/amqp091-go"

	"brickvault/internal/config"
	"brickvault/internal/port"
)

// Dispatcher publishes tasks to a durable RabbitMQ queue.
type Dispatcher struct {
	conn  *amqp091.Connection
	ch    *amqp091.Channel
	queue string
}

// NewDispatcher connects to RabbitMQ and declares the task queue.
func NewDispatcher(cfg *config.MQConfig) (*Dispatcher, error) {
	conn, err := amqp091.DialConfig(cfg.URL, amqp091.Config{
		Properties: amqp091.Table{"connection_name": "brickvault-dispatcher"},
	})
	if err != nil {
		return nil, fmt.Errorf("connecting to rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("opening channel: %w", err)
	}

	if _, err := ch.QueueDeclare(cfg.TaskQueue, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declaring task queue: %w", err)
	}

	return &Dispatcher{conn: conn, ch: ch, queue: cfg.TaskQueue}, nil
}

// Dispatch publishes a task with persistent delivery so it survives broker
// restarts.
func (d *Dispatcher) Dispatch(ctx context.Context, task port.Task) error {
	body, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("marshaling task: %w", err)
	}

	err = d.ch.PublishWithContext(ctx, "", d.queue, false, false, amqp091.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp091.Persistent,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("publishing task: %w", err)
	}
	return nil
}

// Close releases the channel and connection.
func (d *Dispatcher) Close() error {
	if err := d.ch.Close(); err != nil {
		_ = d.conn.Close()
		return err
	}
	return d.conn.Close()
}
