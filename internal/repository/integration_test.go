package repository

import (
	"context"
	"strconv"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tasnim-mariam/mooncart-api/internal/model"
)

func seedUser(t *testing.T, email string) *model.User {
	t.Helper()
	user := &model.User{Name: "Test User", Email: email, Password: "hashed", Role: "customer"}
	require.NoError(t, NewUserRepository(testPool).Create(context.Background(), user))
	return user
}

func seedProduct(t *testing.T, name string, price int64, stock int) *model.Product {
	t.Helper()
	product := &model.Product{Name: name, Slug: name, Price: decimal.NewFromInt(price), Stock: stock}
	require.NoError(t, NewProductRepository(testPool).Create(context.Background(), product))
	return product
}

func TestUserRepo_CreateAndGetByEmail(t *testing.T) {
	cleanupTables(t, allTables...)

	repo := NewUserRepository(testPool)
	ctx := context.Background()

	user := seedUser(t, "tasnim@example.com")
	assert.NotZero(t, user.ID)

	found, err := repo.GetByEmail(ctx, "tasnim@example.com")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, user.ID, found.ID)

	missing, err := repo.GetByEmail(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestProductRepo_CRUDAndSoftDelete(t *testing.T) {
	cleanupTables(t, allTables...)

	repo := NewProductRepository(testPool)
	ctx := context.Background()

	product := seedProduct(t, "moon-dust", 120, 10)
	assert.True(t, product.IsActive)

	found, err := repo.GetByID(ctx, product.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.True(t, found.Price.Equal(decimal.NewFromInt(120)))

	found.Stock = 42
	require.NoError(t, repo.Update(ctx, found))

	products, total, err := repo.ListActive(ctx, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, products, 1)
	assert.Equal(t, 42, products[0].Stock)

	require.NoError(t, repo.SoftDelete(ctx, product.ID))

	// Soft-deleted products drop out of listings but stay fetchable by id.
	_, total, err = repo.ListActive(ctx, 10, 0)
	require.NoError(t, err)
	assert.Zero(t, total)

	still, err := repo.GetByID(ctx, product.ID)
	require.NoError(t, err)
	require.NotNil(t, still)
	assert.False(t, still.IsActive)
}

func TestCategoryRepo_ListCountsProducts(t *testing.T) {
	cleanupTables(t, allTables...)

	repo := NewCategoryRepository(testPool)
	productRepo := NewProductRepository(testPool)
	ctx := context.Background()

	category := &model.Category{Name: "Fresh Fruits", Slug: "fresh-fruits"}
	require.NoError(t, repo.Create(ctx, category))

	for _, name := range []string{"mango", "banana"} {
		p := &model.Product{Name: name, Slug: name, Price: decimal.NewFromInt(50), Stock: 5, CategoryID: &category.ID}
		require.NoError(t, productRepo.Create(ctx, p))
	}

	categories, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 1)
	assert.Equal(t, 2, categories[0].ProductCount)

	count, err := repo.CountProducts(ctx, category.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestOrderRepo_CreateDecrementsStock(t *testing.T) {
	cleanupTables(t, allTables...)

	orderRepo := NewOrderRepository(testPool, NewProductRepository(testPool))
	productRepo := NewProductRepository(testPool)
	ctx := context.Background()

	user := seedUser(t, "order@example.com")
	product := seedProduct(t, "moon-rock", 2500, 10)

	order := &model.Order{
		OrderNumber: "ORD20260829-AAAAAA", UserID: user.ID,
		CustomerName: "Tasnim", Email: user.Email, Phone: "01700000000",
		Address: "12 Moon St", City: "Dhaka", PaymentMethod: "card",
		Subtotal: decimal.NewFromInt(5000), Tax: decimal.NewFromInt(500),
		Shipping: decimal.Zero, Total: decimal.NewFromInt(5500),
		Status: model.OrderStatusPending,
		Items: []model.OrderItem{{
			ProductID: &product.ID, ProductName: product.Name,
			Price: product.Price, Quantity: 2, Total: decimal.NewFromInt(5000),
		}},
	}
	require.NoError(t, orderRepo.Create(ctx, order))
	assert.NotZero(t, order.ID)

	left, err := productRepo.GetByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 8, left.Stock)

	byNumber, err := orderRepo.GetByRef(ctx, order.OrderNumber)
	require.NoError(t, err)
	require.NotNil(t, byNumber)
	require.Len(t, byNumber.Items, 1)

	byID, err := orderRepo.GetByRef(ctx, strconv.FormatInt(order.ID, 10))
	require.NoError(t, err)
	require.NotNil(t, byID)
	assert.Equal(t, byNumber.OrderNumber, byID.OrderNumber)
}

func TestOrderRepo_CreateRollsBackOnInsufficientStock(t *testing.T) {
	cleanupTables(t, allTables...)

	orderRepo := NewOrderRepository(testPool, NewProductRepository(testPool))
	productRepo := NewProductRepository(testPool)
	ctx := context.Background()

	user := seedUser(t, "rollback@example.com")
	product := seedProduct(t, "moon-rock", 2500, 1)

	order := &model.Order{
		OrderNumber: "ORD20260829-BBBBBB", UserID: user.ID,
		CustomerName: "Tasnim", Email: user.Email, Phone: "01700000000",
		Address: "12 Moon St", City: "Dhaka", PaymentMethod: "card",
		Subtotal: decimal.NewFromInt(5000), Tax: decimal.NewFromInt(500),
		Shipping: decimal.Zero, Total: decimal.NewFromInt(5500),
		Status: model.OrderStatusPending,
		Items: []model.OrderItem{{
			ProductID: &product.ID, ProductName: product.Name,
			Price: product.Price, Quantity: 2, Total: decimal.NewFromInt(5000),
		}},
	}
	err := orderRepo.Create(ctx, order)
	require.ErrorIs(t, err, ErrInsufficientStock)

	// The whole order rolled back: no row, stock untouched.
	found, err := orderRepo.GetByRef(ctx, order.OrderNumber)
	require.NoError(t, err)
	assert.Nil(t, found)

	left, err := productRepo.GetByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, left.Stock)
}

func TestOrderRepo_UpdateStatus(t *testing.T) {
	cleanupTables(t, allTables...)

	orderRepo := NewOrderRepository(testPool, NewProductRepository(testPool))
	ctx := context.Background()

	user := seedUser(t, "status@example.com")
	order := &model.Order{
		OrderNumber: "ORD20260829-CCCCCC", UserID: user.ID,
		CustomerName: "Tasnim", Email: user.Email, Phone: "01700000000",
		Address: "12 Moon St", City: "Dhaka", PaymentMethod: "card",
		Subtotal: decimal.NewFromInt(100), Tax: decimal.NewFromInt(10),
		Shipping: decimal.NewFromInt(50), Total: decimal.NewFromInt(160),
		Status: model.OrderStatusPending,
	}
	require.NoError(t, orderRepo.Create(ctx, order))

	reason := "changed mind"
	ok, err := orderRepo.UpdateStatus(ctx, order.OrderNumber, StatusUpdate{
		Status: model.OrderStatusCancelled, CancellationReason: &reason,
	})
	require.NoError(t, err)
	assert.True(t, ok)

	found, err := orderRepo.GetByRef(ctx, order.OrderNumber)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusCancelled, found.Status)
	require.NotNil(t, found.CancellationReason)

	ok, err = orderRepo.UpdateStatus(ctx, order.OrderNumber, StatusUpdate{
		Status: model.OrderStatusConfirmed, ClearCancellation: true,
	})
	require.NoError(t, err)
	assert.True(t, ok)

	found, err = orderRepo.GetByRef(ctx, order.OrderNumber)
	require.NoError(t, err)
	assert.Nil(t, found.CancellationReason)

	ok, err = orderRepo.UpdateStatus(ctx, "ORD00000000-000000", StatusUpdate{Status: model.OrderStatusConfirmed})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAddressRepo_DefaultFlips(t *testing.T) {
	cleanupTables(t, allTables...)

	repo := NewAddressRepository(testPool)
	ctx := context.Background()

	user := seedUser(t, "address@example.com")

	first := &model.Address{UserID: user.ID, Label: "Home", AddressLine: "12 Moon St", City: "Dhaka", IsDefault: true}
	require.NoError(t, repo.Create(ctx, first))
	second := &model.Address{UserID: user.ID, Label: "Work", AddressLine: "7 Star Ave", City: "Dhaka"}
	require.NoError(t, repo.Create(ctx, second))

	ok, err := repo.SetDefault(ctx, second.ID, user.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	require.NoError(t, repo.ClearDefaults(ctx, user.ID, second.ID))

	addresses, err := repo.ListByUser(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, addresses, 2)
	assert.Equal(t, second.ID, addresses[0].ID)
	assert.True(t, addresses[0].IsDefault)
	assert.False(t, addresses[1].IsDefault)

	require.NoError(t, repo.Delete(ctx, second.ID))
	require.NoError(t, repo.PromoteLatest(ctx, user.ID))

	addresses, err = repo.ListByUser(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, addresses, 1)
	assert.True(t, addresses[0].IsDefault)
}

func TestContactRepo_UnreadCount(t *testing.T) {
	cleanupTables(t, allTables...)

	repo := NewContactRepository(testPool)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &model.ContactMessage{Name: "A", Email: "a@example.com", Message: "hi"}))
	require.NoError(t, repo.Create(ctx, &model.ContactMessage{Name: "B", Email: "b@example.com", Message: "hello"}))

	messages, err := repo.List(ctx, false)
	require.NoError(t, err)
	require.Len(t, messages, 2)

	require.NoError(t, repo.MarkRead(ctx, messages[0].ID))

	unread, err := repo.UnreadCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, unread)
}

func TestProductRequestRepo_StatusLifecycle(t *testing.T) {
	cleanupTables(t, allTables...)

	repo := NewProductRequestRepository(testPool)
	ctx := context.Background()

	request := &model.ProductRequest{ProductName: "Moon Cheese"}
	require.NoError(t, repo.Create(ctx, request))
	assert.Equal(t, model.RequestStatusPending, request.Status)

	deliveryTime := "3-5 days"
	ok, err := repo.UpdateStatus(ctx, request.ID, RequestStatusUpdate{
		Status: model.RequestStatusApproved, DeliveryTime: &deliveryTime,
	})
	require.NoError(t, err)
	assert.True(t, ok)

	reason := "not sourceable"
	ok, err = repo.UpdateStatus(ctx, request.ID, RequestStatusUpdate{
		Status: model.RequestStatusRejected, Rejection: &reason,
	})
	require.NoError(t, err)
	assert.True(t, ok)

	found, err := repo.GetByID(ctx, request.ID)
	require.NoError(t, err)
	assert.Nil(t, found.DeliveryTime)
	require.NotNil(t, found.RejectionReason)
}
