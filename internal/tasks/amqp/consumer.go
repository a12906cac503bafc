package amqp

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	amqp091 "github.com/rabbitmq/amqp091-go"

	"brickvault/internal/config"
	"brickvault/internal/port"
	"brickvault/internal/tasks"
)

// Consumer drains the task queue and applies each task through the
// task runner. Handler failures nack with requeue so cleanup stays
// at-least-once.
type Consumer struct {
	conn   *amqp091.Connection
	ch     *amqp091.Channel
	queue  string
	runner *tasks.Runner
}

// NewConsumer connects to RabbitMQ and binds the shared task queue.
func NewConsumer(cfg *config.MQConfig, runner *tasks.Runner) (*Consumer, error) {
	conn, err := amqp091.DialConfig(cfg.URL, amqp091.Config{
		Properties: amqp091.Table{"connection_name": "brickvault-worker"},
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

	if err := ch.Qos(8, 0, false); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("setting qos: %w", err)
	}

	return &Consumer{conn: conn, ch: ch, queue: cfg.TaskQueue, runner: runner}, nil
}

// Start consumes until ctx is canceled.
func (c *Consumer) Start(ctx context.Context) error {
	deliveries, err := c.ch.Consume(c.queue, "brickvault-worker", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("starting consume: %w", err)
	}

	log.Printf("taskConsumer: started on queue %s", c.queue)

	for {
		select {
		case <-ctx.Done():
			log.Printf("taskConsumer: shutting down")
			return nil
		case d, ok := <-deliveries:
			if !ok {
				return fmt.Errorf("delivery channel closed")
			}
			c.handle(ctx, d)
		}
	}
}

func (c *Consumer) handle(ctx context.Context, d amqp091.Delivery) {
	var task port.Task
	if err := json.Unmarshal(d.Body, &task); err != nil {
		log.Printf("taskConsumer: dropping malformed task: %v", err)
		_ = d.Nack(false, false)
		return
	}

	if err := c.runner.Run(ctx, task); err != nil {
		log.Printf("taskConsumer: task %s failed, requeueing: %v", task.Kind, err)
		_ = d.Nack(false, true)
		return
	}
	_ = d.Ack(false)
}

// Close releases the channel and connection.
func (c *Consumer) Close() error {
	if err := c.ch.Close(); err != nil {
		_ = c.conn.Close()
		return err
	}
	return c.conn.Close()
}
