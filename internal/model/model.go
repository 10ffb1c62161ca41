package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	Phone     *string   `json:"phone"`
	Role      string    `json:"role"`
	Avatar    *string   `json:"avatar,omitempty"`
	Addresses []Address `json:"addresses,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Category struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Slug         string    `json:"slug"`
	Icon         *string   `json:"icon"`
	Description  *string   `json:"description"`
	ProductCount int       `json:"product_count"`
	TotalStock   int64     `json:"total_stock,omitempty"`
	Products     []Product `json:"products,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

type Product struct {
	ID            int64            `json:"id"`
	Name          string           `json:"name"`
	Slug          string           `json:"slug"`
	Description   *string          `json:"description"`
	Price         decimal.Decimal  `json:"price"`
	OriginalPrice *decimal.Decimal `json:"original_price"`
	Image         *string          `json:"image"`
	CategoryID    *int64           `json:"category_id"`
	Badge         *string          `json:"badge"`
	Stock         int              `json:"stock"`
	IsActive      bool             `json:"is_active"`
	CategoryName  *string          `json:"category_name,omitempty"`
	CategorySlug  *string          `json:"category_slug,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// CartItem carries a denormalized snapshot of the product taken when the
// row was first inserted, so later product edits do not rewrite carts.
// AvailableStock is joined from products at read time and is not stored.
type CartItem struct {
	UserID         int64           `json:"user_id"`
	ProductID      int64           `json:"product_id"`
	ProductName    string          `json:"product_name"`
	Price          decimal.Decimal `json:"price"`
	Image          *string         `json:"image"`
	Category       string          `json:"category"`
	Quantity       int             `json:"quantity"`
	AvailableStock *int            `json:"available_stock"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

type Address struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	Label       string    `json:"label"`
	AddressLine string    `json:"address_line"`
	City        string    `json:"city"`
	ZipCode     *string   `json:"zip_code"`
	Phone       *string   `json:"phone"`
	IsDefault   bool      `json:"is_default"`
	CreatedAt   time.Time `json:"created_at"`
}

type DeliveryMan struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Phone        string    `json:"phone"`
	NID          string    `json:"nid"`
	ProfileImage *string   `json:"profile_image"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}

const (
	OrderStatusPending        = "pending"
	OrderStatusConfirmed      = "confirmed"
	OrderStatusPreparing      = "preparing"
	OrderStatusOutForDelivery = "out_for_delivery"
	OrderStatusDelivered      = "delivered"
	OrderStatusCompleted      = "completed"
	OrderStatusCancelled      = "cancelled"
)

// OrderStatuses is the full lifecycle in transition order, with cancelled
// reachable from any non-terminal state.
var OrderStatuses = []string{
	OrderStatusPending,
	OrderStatusConfirmed,
	OrderStatusPreparing,
	OrderStatusOutForDelivery,
	OrderStatusDelivered,
	OrderStatusCompleted,
	OrderStatusCancelled,
}

func ValidOrderStatus(s string) bool {
	for _, v := range OrderStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// Order denormalizes customer contact and address fields at creation time.
// The UserName/DeliveryMan* display fields are joined at read time.
type Order struct {
	ID                    int64           `json:"id"`
	OrderNumber           string          `json:"order_number"`
	UserID                int64           `json:"user_id"`
	CustomerName          string          `json:"customer_name"`
	Email                 string          `json:"email"`
	Phone                 string          `json:"phone"`
	Address               string          `json:"address"`
	City                  string          `json:"city"`
	ZipCode               *string         `json:"zip_code"`
	DeliverySlot          *string         `json:"delivery_slot"`
	DeliveryInstructions  *string         `json:"delivery_instructions"`
	PaymentMethod         string          `json:"payment_method"`
	Subtotal              decimal.Decimal `json:"subtotal"`
	Tax                   decimal.Decimal `json:"tax"`
	Shipping              decimal.Decimal `json:"shipping"`
	Total                 decimal.Decimal `json:"total"`
	Status                string          `json:"status"`
	DeliveryManID         *int64          `json:"delivery_man_id"`
	CancellationReason    *string         `json:"cancellation_reason"`
	EstimatedDeliveryTime *string         `json:"estimated_delivery_time"`
	Items                 []OrderItem     `json:"items"`
	ItemCount             int             `json:"item_count"`
	UserName              *string         `json:"user_name,omitempty"`
	UserEmail             *string         `json:"user_email,omitempty"`
	DeliveryManName       *string         `json:"delivery_man_name,omitempty"`
	DeliveryManPhone      *string         `json:"delivery_man_phone,omitempty"`
	DeliveryManImage      *string         `json:"delivery_man_image,omitempty"`
	CreatedAt             time.Time       `json:"created_at"`
	UpdatedAt             time.Time       `json:"updated_at"`
}

// OrderItem.ProductID is nullable: an order may reference a product that
// was later deleted. Total is frozen at creation and never recomputed.
type OrderItem struct {
	ID           int64           `json:"id"`
	OrderID      int64           `json:"order_id"`
	ProductID    *int64          `json:"product_id"`
	ProductName  string          `json:"product_name"`
	Price        decimal.Decimal `json:"price"`
	Quantity     int             `json:"quantity"`
	Total        decimal.Decimal `json:"total"`
	ProductImage *string         `json:"product_image,omitempty"`
}

type ContactMessage struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   *string   `json:"subject"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

const (
	RequestStatusPending     = "pending"
	RequestStatusUnderReview = "under_review"
	RequestStatusApproved    = "approved"
	RequestStatusRejected    = "rejected"
)

func ValidRequestStatus(s string) bool {
	switch s {
	case RequestStatusPending, RequestStatusUnderReview, RequestStatusApproved, RequestStatusRejected:
		return true
	}
	return false
}

type ProductRequest struct {
	ID              int64     `json:"id"`
	UserID          *int64    `json:"user_id"`
	ProductName     string    `json:"product_name"`
	Category        *string   `json:"category"`
	Description     *string   `json:"description"`
	Email           *string   `json:"email"`
	Status          string    `json:"status"`
	AdminNotes      *string   `json:"admin_notes"`
	RejectionReason *string   `json:"rejection_reason"`
	DeliveryTime    *string   `json:"delivery_time"`
	DeliveryManID   *int64    `json:"delivery_man_id"`
	CreatedAt       time.Time `json:"created_at"`
}

type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// OrderStats backs the admin dashboard. Revenue excludes cancelled orders.
type OrderStats struct {
	TotalOrders     int             `json:"total_orders"`
	TotalRevenue    decimal.Decimal `json:"total_revenue"`
	TodayOrders     int             `json:"today_orders"`
	TodayRevenue    decimal.Decimal `json:"today_revenue"`
	StatusBreakdown []StatusCount   `json:"status_breakdown"`
	RecentOrders    []Order         `json:"recent_orders"`
}

const (
	OrderEventCreated       = "order.created"
	OrderEventStatusChanged = "order.status_changed"
)

// OrderEvent is published to RabbitMQ when an order is created or its
// status changes. EventID keys worker-side idempotency.
type OrderEvent struct {
	EventID     uuid.UUID `json:"event_id"`
	Type        string    `json:"type"`
	OrderID     int64     `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	UserID      int64     `json:"user_id"`
	Status      string    `json:"status"`
}
