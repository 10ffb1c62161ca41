package dto

import (
	"github.com/shopspring/decimal"

	"github.com/tasnim-mariam/mooncart-api/internal/model"
	"github.com/tasnim-mariam/mooncart-api/internal/pricing"
)

// --- Auth / users ---

type RegisterRequest struct {
	Name     string  `json:"name" binding:"required"`
	Email    string  `json:"email" binding:"required,email"`
	Password string  `json:"password" binding:"required,min=6"`
	Phone    *string `json:"phone"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UpdateProfileRequest struct {
	Name     *string `json:"name"`
	Phone    *string `json:"phone"`
	Password *string `json:"password"`
}

// --- Products ---

type CreateProductRequest struct {
	Name          string           `json:"name" binding:"required"`
	Description   *string          `json:"description"`
	Price         decimal.Decimal  `json:"price" binding:"required"`
	OriginalPrice *decimal.Decimal `json:"original_price"`
	Image         *string          `json:"image"`
	CategoryID    *int64           `json:"category_id"`
	Badge         *string          `json:"badge"`
	Stock         *int             `json:"stock"`
}

type UpdateProductRequest struct {
	Name          *string          `json:"name"`
	Description   *string          `json:"description"`
	Price         *decimal.Decimal `json:"price"`
	OriginalPrice *decimal.Decimal `json:"original_price"`
	Image         *string          `json:"image"`
	CategoryID    *int64           `json:"category_id"`
	Badge         *string          `json:"badge"`
	Stock         *int             `json:"stock"`
	IsActive      *bool            `json:"is_active"`
}

type ListProductsRequest struct {
	Limit  int `form:"limit,default=50" binding:"min=1,max=200"`
	Offset int `form:"offset,default=0" binding:"min=0"`
}

// --- Categories ---

type CreateCategoryRequest struct {
	Name        string  `json:"name" binding:"required"`
	Icon        *string `json:"icon"`
	Description *string `json:"description"`
}

type UpdateCategoryRequest struct {
	Name        *string `json:"name"`
	Icon        *string `json:"icon"`
	Description *string `json:"description"`
}

// --- Cart ---

type AddCartItemRequest struct {
	ProductID int64   `json:"product_id" binding:"required"`
	Quantity  *int    `json:"quantity" binding:"omitempty,min=1"`
	Category  *string `json:"category"`
}

// UpdateCartItemRequest carries either an absolute quantity or a relative
// change; exactly one must be present.
type UpdateCartItemRequest struct {
	ProductID int64 `json:"product_id" binding:"required"`
	Quantity  *int  `json:"quantity"`
	Change    *int  `json:"change"`
}

// CartView is the wholesale cart snapshot returned by every cart
// operation; clients replace local state with it rather than apply deltas.
type CartView struct {
	Items []model.CartItem `json:"items"`
	pricing.Totals
}

// --- Orders ---

type OrderItemInput struct {
	ProductID   *int64          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity" binding:"required,min=1"`
}

type CreateOrderRequest struct {
	CustomerName         string           `json:"customer_name" binding:"required"`
	Email                string           `json:"email" binding:"required,email"`
	Phone                string           `json:"phone" binding:"required"`
	Address              string           `json:"address" binding:"required"`
	City                 string           `json:"city" binding:"required"`
	ZipCode              *string          `json:"zip_code"`
	DeliverySlot         *string          `json:"delivery_slot"`
	DeliveryInstructions *string          `json:"delivery_instructions"`
	PaymentMethod        *string          `json:"payment_method"`
	Items                []OrderItemInput `json:"items" binding:"required"`
}

type UpdateOrderStatusRequest struct {
	Status                string  `json:"status" binding:"required"`
	DeliveryManID         *int64  `json:"delivery_man_id"`
	EstimatedDeliveryTime *string `json:"estimated_delivery_time"`
	CancellationReason    *string `json:"cancellation_reason"`
}

type ListOrdersRequest struct {
	Status *string `form:"status"`
	Limit  int     `form:"limit,default=50" binding:"min=1,max=200"`
	Offset int     `form:"offset,default=0" binding:"min=0"`
}

// --- Addresses ---

type CreateAddressRequest struct {
	Label       *string `json:"label"`
	AddressLine string  `json:"address_line" binding:"required"`
	City        string  `json:"city" binding:"required"`
	ZipCode     *string `json:"zip_code"`
	Phone       *string `json:"phone"`
	IsDefault   bool    `json:"is_default"`
}

type UpdateAddressRequest struct {
	Label       *string `json:"label"`
	AddressLine *string `json:"address_line"`
	City        *string `json:"city"`
	ZipCode     *string `json:"zip_code"`
	Phone       *string `json:"phone"`
}

// --- Delivery men ---

type CreateDeliveryManRequest struct {
	Name         string  `json:"name" binding:"required"`
	Phone        string  `json:"phone" binding:"required"`
	NID          string  `json:"nid" binding:"required"`
	ProfileImage *string `json:"profile_image"`
	IsActive     *bool   `json:"is_active"`
}

type UpdateDeliveryManRequest struct {
	Name         *string `json:"name"`
	Phone        *string `json:"phone"`
	NID          *string `json:"nid"`
	ProfileImage *string `json:"profile_image"`
	IsActive     *bool   `json:"is_active"`
}

// --- Contact ---

type SubmitContactRequest struct {
	Name    string  `json:"name" binding:"required"`
	Email   string  `json:"email" binding:"required,email"`
	Subject *string `json:"subject"`
	Message string  `json:"message" binding:"required"`
}

// --- Product requests ---

type SubmitProductRequest struct {
	UserID      *int64  `json:"user_id"`
	ProductName string  `json:"product_name" binding:"required"`
	Category    *string `json:"category"`
	Description *string `json:"description"`
	Email       *string `json:"email"`
}

type UpdateRequestStatusRequest struct {
	Status          string  `json:"status" binding:"required"`
	AdminNotes      *string `json:"admin_notes"`
	DeliveryTime    *string `json:"delivery_time"`
	DeliveryManID   *int64  `json:"delivery_man_id"`
	RejectionReason *string `json:"rejection_reason"`
}
