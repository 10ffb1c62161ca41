// Package worker consumes order events published by the API and keeps the
// cached admin dashboard stats fresh.
package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"

	"github.com/tasnim-mariam/mooncart-api/internal/model"
	"github.com/tasnim-mariam/mooncart-api/internal/repository"
)

const (
	eventQueueName = "order-events"
	dlxExchange    = "order-events.dlx"
	dlqQueueName   = "order-events.dlq"
	idempotencyTTL = 24 * time.Hour

	statsCacheKey = "orders:stats"
	statsCacheTTL = 5 * time.Minute
)

type OrderWorker struct {
	channel     *amqp.Channel
	orderRepo   repository.OrderRepository
	redisClient *redis.Client
	log         *slog.Logger
	done        chan struct{}
}

func NewOrderWorker(
	ch *amqp.Channel,
	orderRepo repository.OrderRepository,
	redisClient *redis.Client,
	log *slog.Logger,
) *OrderWorker {
	return &OrderWorker{
		channel:     ch,
		orderRepo:   orderRepo,
		redisClient: redisClient,
		log:         log,
		done:        make(chan struct{}),
	}
}

// SetupRabbitMQ declares the event queue with its DLX/DLQ pair. Poisoned
// events land in the DLQ instead of recycling forever.
func SetupRabbitMQ(ch *amqp.Channel) error {
	if err := ch.ExchangeDeclare(dlxExchange, "direct", true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare DLX: %w", err)
	}
	if _, err := ch.QueueDeclare(dlqQueueName, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare DLQ: %w", err)
	}
	if err := ch.QueueBind(dlqQueueName, eventQueueName, dlxExchange, false, nil); err != nil {
		return fmt.Errorf("bind DLQ: %w", err)
	}
	if _, err := ch.QueueDeclare(eventQueueName, true, false, false, false, amqp.Table{
		"x-dead-letter-exchange":    dlxExchange,
		"x-dead-letter-routing-key": eventQueueName,
	}); err != nil {
		return fmt.Errorf("declare event queue: %w", err)
	}
	if err := ch.Qos(1, 0, false); err != nil {
		return fmt.Errorf("set QoS: %w", err)
	}
	return nil
}

func (w *OrderWorker) Start(ctx context.Context) error {
	msgs, err := w.channel.Consume(eventQueueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("start consuming: %w", err)
	}

	go func() {
		for {
			select {
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				w.processMessage(ctx, msg)
			case <-w.done:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	w.log.Info("order worker started")
	return nil
}

func (w *OrderWorker) Stop() { close(w.done) }

func (w *OrderWorker) processMessage(ctx context.Context, msg amqp.Delivery) {
	var event model.OrderEvent
	if err := json.Unmarshal(msg.Body, &event); err != nil {
		w.log.Error("unmarshal order event", "error", err)
		_ = msg.Nack(false, false)
		return
	}

	log := w.log.With("event_id", event.EventID, "type", event.Type, "order_number", event.OrderNumber)

	// Publishes are at-least-once; the event id keyed in Redis makes
	// processing effectively-once.
	idempotencyKey := "order_event:" + event.EventID.String()
	exists, err := w.redisClient.Exists(ctx, idempotencyKey).Result()
	if err != nil {
		log.Error("check idempotency key", "error", err)
		_ = msg.Nack(false, true)
		return
	}
	if exists > 0 {
		log.Info("event already processed, skipping")
		_ = msg.Ack(false)
		return
	}

	if err := w.processEvent(ctx, event); err != nil {
		log.Error("process event failed", "error", err)
		_ = msg.Nack(false, false) // → DLQ
		return
	}

	if err := w.redisClient.Set(ctx, idempotencyKey, "1", idempotencyTTL).Err(); err != nil {
		log.Error("set idempotency key", "error", err)
	}

	_ = msg.Ack(false)
	log.Info("event processed")
}

// processEvent recomputes dashboard stats and caches them so admin reads
// stay cheap between order mutations.
func (w *OrderWorker) processEvent(ctx context.Context, event model.OrderEvent) error {
	switch event.Type {
	case model.OrderEventCreated, model.OrderEventStatusChanged:
	default:
		return fmt.Errorf("unknown event type: %s", event.Type)
	}

	stats, err := w.orderRepo.Stats(ctx)
	if err != nil {
		return fmt.Errorf("compute order stats: %w", err)
	}

	body, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("marshal order stats: %w", err)
	}
	if err := w.redisClient.Set(ctx, statsCacheKey, body, statsCacheTTL).Err(); err != nil {
		return fmt.Errorf("cache order stats: %w", err)
	}
	return nil
}
