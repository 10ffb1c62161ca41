package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tasnim-mariam/mooncart-api/internal/model"
)

var ErrInsufficientStock = errors.New("insufficient stock")

// StatusUpdate is a partial write against an order's status fields.
// ClearCancellation wipes cancellation_reason when the order leaves the
// cancelled state.
type StatusUpdate struct {
	Status                string
	DeliveryManID         *int64
	EstimatedDeliveryTime *string
	CancellationReason    *string
	ClearCancellation     bool
}

type OrderRepository interface {
	// Create inserts the order, its line items, and the stock decrements as
	// a single transaction; any failure rolls the whole order back.
	Create(ctx context.Context, order *model.Order) error
	GetByRef(ctx context.Context, ref string) (*model.Order, error)
	ListAll(ctx context.Context, status string, limit, offset int) ([]model.Order, int, error)
	ListByUser(ctx context.Context, userID int64) ([]model.Order, error)
	UpdateStatus(ctx context.Context, ref string, upd StatusUpdate) (bool, error)
	Stats(ctx context.Context) (*model.OrderStats, error)
}

type pgOrderRepo struct {
	pool     *pgxpool.Pool
	products ProductRepository
}

func NewOrderRepository(pool *pgxpool.Pool, products ProductRepository) OrderRepository {
	return &pgOrderRepo{pool: pool, products: products}
}

func (r *pgOrderRepo) Create(ctx context.Context, order *model.Order) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `INSERT INTO orders (
				order_number, user_id, customer_name, email, phone,
				address, city, zip_code, delivery_slot, delivery_instructions,
				payment_method, subtotal, tax, shipping, total, status, created_at, updated_at
			  ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,NOW(),NOW())
			  RETURNING id, created_at, updated_at`
	err = tx.QueryRow(ctx, query,
		order.OrderNumber, order.UserID, order.CustomerName, order.Email, order.Phone,
		order.Address, order.City, order.ZipCode, order.DeliverySlot, order.DeliveryInstructions,
		order.PaymentMethod, order.Subtotal, order.Tax, order.Shipping, order.Total, order.Status,
	).Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	for i := range order.Items {
		item := &order.Items[i]
		item.OrderID = order.ID
		err = tx.QueryRow(ctx,
			`INSERT INTO order_items (order_id, product_id, product_name, price, quantity, total)
			 VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
			item.OrderID, item.ProductID, item.ProductName, item.Price, item.Quantity, item.Total,
		).Scan(&item.ID)
		if err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}

		// Stock moves only for items that still resolve to a product row.
		if item.ProductID == nil {
			continue
		}
		if err := r.products.DecrementStock(ctx, tx, *item.ProductID, item.Quantity); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit order: %w", err)
	}
	order.ItemCount = len(order.Items)
	return nil
}

const orderSelect = `
	SELECT o.id, o.order_number, o.user_id, o.customer_name, o.email, o.phone,
	       o.address, o.city, o.zip_code, o.delivery_slot, o.delivery_instructions,
	       o.payment_method, o.subtotal, o.tax, o.shipping, o.total, o.status,
	       o.delivery_man_id, o.cancellation_reason, o.estimated_delivery_time,
	       u.name, u.email, dm.name, dm.phone, dm.profile_image,
	       o.created_at, o.updated_at
	FROM orders o
	LEFT JOIN users u ON o.user_id = u.id
	LEFT JOIN delivery_men dm ON o.delivery_man_id = dm.id`

func scanOrder(row pgx.Row, o *model.Order) error {
	return row.Scan(
		&o.ID, &o.OrderNumber, &o.UserID, &o.CustomerName, &o.Email, &o.Phone,
		&o.Address, &o.City, &o.ZipCode, &o.DeliverySlot, &o.DeliveryInstructions,
		&o.PaymentMethod, &o.Subtotal, &o.Tax, &o.Shipping, &o.Total, &o.Status,
		&o.DeliveryManID, &o.CancellationReason, &o.EstimatedDeliveryTime,
		&o.UserName, &o.UserEmail, &o.DeliveryManName, &o.DeliveryManPhone, &o.DeliveryManImage,
		&o.CreatedAt, &o.UpdatedAt,
	)
}

// refArgs splits an order reference into (order_number, numeric id) so a
// single query can match either.
func refArgs(ref string) (string, int64) {
	id, err := strconv.ParseInt(ref, 10, 64)
	if err != nil {
		id = 0
	}
	return ref, id
}

func (r *pgOrderRepo) GetByRef(ctx context.Context, ref string) (*model.Order, error) {
	number, id := refArgs(ref)
	o := &model.Order{}
	err := scanOrder(r.pool.QueryRow(ctx, orderSelect+` WHERE o.order_number = $1 OR o.id = $2`, number, id), o)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	if err := r.attachItems(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (r *pgOrderRepo) attachItems(ctx context.Context, o *model.Order) error {
	rows, err := r.pool.Query(ctx,
		`SELECT oi.id, oi.order_id, oi.product_id, oi.product_name, oi.price, oi.quantity, oi.total,
		        p.image
		 FROM order_items oi
		 LEFT JOIN products p ON oi.product_id = p.id
		 WHERE oi.order_id = $1`, o.ID)
	if err != nil {
		return fmt.Errorf("get order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item model.OrderItem
		if err := rows.Scan(
			&item.ID, &item.OrderID, &item.ProductID, &item.ProductName,
			&item.Price, &item.Quantity, &item.Total, &item.ProductImage,
		); err != nil {
			return fmt.Errorf("scan order item: %w", err)
		}
		o.Items = append(o.Items, item)
	}
	o.ItemCount = len(o.Items)
	return rows.Err()
}

func (r *pgOrderRepo) ListAll(ctx context.Context, status string, limit, offset int) ([]model.Order, int, error) {
	var total int
	countQ := `SELECT COUNT(*) FROM orders WHERE ($1 = '' OR status = $1)`
	if err := r.pool.QueryRow(ctx, countQ, status).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count orders: %w", err)
	}

	query := orderSelect + ` WHERE ($1 = '' OR o.status = $1)
		ORDER BY o.created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.pool.Query(ctx, query, status, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var orders []model.Order
	for rows.Next() {
		var o model.Order
		if err := scanOrder(rows, &o); err != nil {
			return nil, 0, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	for i := range orders {
		if err := r.attachItems(ctx, &orders[i]); err != nil {
			return nil, 0, err
		}
	}
	return orders, total, nil
}

func (r *pgOrderRepo) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	rows, err := r.pool.Query(ctx, orderSelect+` WHERE o.user_id = $1 ORDER BY o.created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list user orders: %w", err)
	}
	defer rows.Close()

	var orders []model.Order
	for rows.Next() {
		var o model.Order
		if err := scanOrder(rows, &o); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range orders {
		if err := r.attachItems(ctx, &orders[i]); err != nil {
			return nil, err
		}
	}
	return orders, nil
}

func (r *pgOrderRepo) UpdateStatus(ctx context.Context, ref string, upd StatusUpdate) (bool, error) {
	sets := []string{"status = $1", "updated_at = NOW()"}
	args := []any{upd.Status}

	if upd.CancellationReason != nil {
		args = append(args, *upd.CancellationReason)
		sets = append(sets, fmt.Sprintf("cancellation_reason = $%d", len(args)))
	} else if upd.ClearCancellation {
		sets = append(sets, "cancellation_reason = NULL")
	}
	if upd.DeliveryManID != nil {
		args = append(args, *upd.DeliveryManID)
		sets = append(sets, fmt.Sprintf("delivery_man_id = $%d", len(args)))
	}
	if upd.EstimatedDeliveryTime != nil {
		args = append(args, *upd.EstimatedDeliveryTime)
		sets = append(sets, fmt.Sprintf("estimated_delivery_time = $%d", len(args)))
	}

	number, id := refArgs(ref)
	args = append(args, number, id)
	query := fmt.Sprintf("UPDATE orders SET %s WHERE order_number = $%d OR id = $%d",
		strings.Join(sets, ", "), len(args)-1, len(args))

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("update order status: %w", err)
	}
	return ct.RowsAffected() > 0, nil
}

func (r *pgOrderRepo) Stats(ctx context.Context) (*model.OrderStats, error) {
	stats := &model.OrderStats{}

	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*),
		       COALESCE(SUM(total) FILTER (WHERE status != 'cancelled'), 0),
		       COUNT(*) FILTER (WHERE created_at::date = CURRENT_DATE),
		       COALESCE(SUM(total) FILTER (WHERE created_at::date = CURRENT_DATE AND status != 'cancelled'), 0)
		FROM orders`,
	).Scan(&stats.TotalOrders, &stats.TotalRevenue, &stats.TodayOrders, &stats.TodayRevenue)
	if err != nil {
		return nil, fmt.Errorf("order stats: %w", err)
	}

	rows, err := r.pool.Query(ctx, `SELECT status, COUNT(*) FROM orders GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("status breakdown: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var sc model.StatusCount
		if err := rows.Scan(&sc.Status, &sc.Count); err != nil {
			return nil, fmt.Errorf("scan status count: %w", err)
		}
		stats.StatusBreakdown = append(stats.StatusBreakdown, sc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	recent, _, err := r.ListAll(ctx, "", 5, 0)
	if err != nil {
		return nil, fmt.Errorf("recent orders: %w", err)
	}
	stats.RecentOrders = recent
	return stats, nil
}
