package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/tasnim-mariam/mooncart-api/internal/dto"
	"github.com/tasnim-mariam/mooncart-api/internal/model"
	"github.com/tasnim-mariam/mooncart-api/internal/pricing"
	"github.com/tasnim-mariam/mooncart-api/internal/repository"
)

var (
	ErrEmptyOrder         = errors.New("order must have at least one item")
	ErrOrderNotFound      = errors.New("order not found")
	ErrInvalidOrderStatus = errors.New("invalid status")
)

const (
	orderEventQueue = "order-events"
	statsCacheKey   = "orders:stats"
)

type OrderService struct {
	orderRepo   repository.OrderRepository
	cartRepo    repository.CartRepository
	amqpCh      *amqp.Channel
	redisClient *redis.Client
	log         *slog.Logger
}

func NewOrderService(orderRepo repository.OrderRepository, cartRepo repository.CartRepository, amqpCh *amqp.Channel, redisClient *redis.Client, log *slog.Logger) *OrderService {
	return &OrderService{orderRepo: orderRepo, cartRepo: cartRepo, amqpCh: amqpCh, redisClient: redisClient, log: log}
}

// newOrderNumber builds "ORD" + date stamp + a high-entropy suffix. The
// original storefront used a 3-digit random suffix; six random hex chars
// make collisions under concurrent checkout a non-issue.
func newOrderNumber(now time.Time) string {
	buf := make([]byte, 3)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand failing means the platform is broken; fall back to
		// the timestamp so checkout still works.
		return fmt.Sprintf("ORD%s-%d", now.Format("20060102"), now.UnixNano()%1000000)
	}
	return fmt.Sprintf("ORD%s-%s", now.Format("20060102"), strings.ToUpper(hex.EncodeToString(buf)))
}

func (s *OrderService) Create(ctx context.Context, userID int64, req dto.CreateOrderRequest) (*model.Order, error) {
	if len(req.Items) == 0 {
		return nil, ErrEmptyOrder
	}

	lines := make([]pricing.Line, 0, len(req.Items))
	items := make([]model.OrderItem, 0, len(req.Items))
	for _, in := range req.Items {
		lines = append(lines, pricing.Line{Price: in.Price, Quantity: in.Quantity})

		name := in.ProductName
		if name == "" {
			name = in.Name
		}
		if name == "" {
			name = "Unknown Product"
		}
		items = append(items, model.OrderItem{
			ProductID:   in.ProductID,
			ProductName: name,
			Price:       in.Price,
			Quantity:    in.Quantity,
			Total:       in.Price.Mul(decimal.NewFromInt(int64(in.Quantity))).Round(2),
		})
	}
	totals := pricing.Calculate(lines)

	paymentMethod := "card"
	if req.PaymentMethod != nil {
		paymentMethod = *req.PaymentMethod
	}

	order := &model.Order{
		OrderNumber:          newOrderNumber(time.Now()),
		UserID:               userID,
		CustomerName:         req.CustomerName,
		Email:                req.Email,
		Phone:                req.Phone,
		Address:              req.Address,
		City:                 req.City,
		ZipCode:              req.ZipCode,
		DeliverySlot:         req.DeliverySlot,
		DeliveryInstructions: req.DeliveryInstructions,
		PaymentMethod:        paymentMethod,
		Subtotal:             totals.Subtotal,
		Tax:                  totals.Tax,
		Shipping:             totals.Shipping,
		Total:                totals.Total,
		Status:               model.OrderStatusPending,
		Items:                items,
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}

	// Checkout consumed the cart; clearing is best-effort.
	if err := s.cartRepo.Clear(ctx, userID); err != nil {
		s.log.Warn("clear cart after order", "user_id", userID, "error", err)
	}

	s.publish(ctx, model.OrderEvent{
		EventID:     uuid.New(),
		Type:        model.OrderEventCreated,
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
		UserID:      order.UserID,
		Status:      order.Status,
	})
	return order, nil
}

func (s *OrderService) GetByRef(ctx context.Context, ref string) (*model.Order, error) {
	order, err := s.orderRepo.GetByRef(ctx, ref)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

func (s *OrderService) ListAll(ctx context.Context, req dto.ListOrdersRequest) ([]model.Order, int, error) {
	status := ""
	if req.Status != nil {
		status = *req.Status
	}
	return s.orderRepo.ListAll(ctx, status, req.Limit, req.Offset)
}

func (s *OrderService) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	return s.orderRepo.ListByUser(ctx, userID)
}

func (s *OrderService) UpdateStatus(ctx context.Context, ref string, req dto.UpdateOrderStatusRequest) error {
	if !model.ValidOrderStatus(req.Status) {
		return ErrInvalidOrderStatus
	}

	upd := repository.StatusUpdate{
		Status:                req.Status,
		DeliveryManID:         req.DeliveryManID,
		EstimatedDeliveryTime: req.EstimatedDeliveryTime,
	}
	if req.Status == model.OrderStatusCancelled {
		upd.CancellationReason = req.CancellationReason
	} else {
		upd.ClearCancellation = true
	}

	ok, err := s.orderRepo.UpdateStatus(ctx, ref, upd)
	if err != nil {
		return err
	}
	if !ok {
		return ErrOrderNotFound
	}

	s.publish(ctx, model.OrderEvent{
		EventID:     uuid.New(),
		Type:        model.OrderEventStatusChanged,
		OrderNumber: ref,
		Status:      req.Status,
	})
	return nil
}

// Stats serves the admin dashboard. The worker refreshes the cached copy on
// every order event; a cache miss falls through to the database.
func (s *OrderService) Stats(ctx context.Context) (*model.OrderStats, error) {
	if s.redisClient != nil {
		cached, err := s.redisClient.Get(ctx, statsCacheKey).Bytes()
		if err == nil {
			var stats model.OrderStats
			if err := json.Unmarshal(cached, &stats); err == nil {
				return &stats, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			s.log.Warn("read stats cache", "error", err)
		}
	}
	return s.orderRepo.Stats(ctx)
}

func (s *OrderService) publish(ctx context.Context, event model.OrderEvent) {
	if s.amqpCh == nil {
		return
	}
	body, err := json.Marshal(event)
	if err != nil {
		return
	}
	err = s.amqpCh.PublishWithContext(ctx, "", orderEventQueue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp.Persistent,
	})
	if err != nil {
		s.log.Warn("publish order event", "type", event.Type, "order_id", event.OrderID, "error", err)
	}
}
