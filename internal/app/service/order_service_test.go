package service

import (
	"context"
	"testing"

	"github.com/ikkim/storefront-backend/internal/app/model"
	"github.com/ikkim/storefront-backend/internal/app/repository"
	"github.com/ikkim/storefront-backend/internal/checkout"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func orderInput(productID uint) CreateOrderInput {
	return CreateOrderInput{
		ProductID:       productID,
		CustomerName:    "Karim",
		CustomerPhone:   "01811111111",
		CustomerAddress: "Mirpur 10, Dhaka",
		DeliveryArea:    checkout.DeliveryInsideDhaka,
	}
}

func TestOrderService_CreateOrderFromSession(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()
	product := createTestProduct(t, s, "session-order")

	view, err := s.selection.Start(ctx, product.ID)
	require.NoError(t, err)
	_, err = s.selection.SetQuantity(ctx, view.ID, 2)
	require.NoError(t, err)
	_, err = s.selection.AddVariant(ctx, view.ID, "Color", "Gold")
	require.NoError(t, err)

	input := orderInput(0)
	input.SessionID = view.ID
	input.CouponCode = "save100"

	order, err := s.orders.CreateOrder(ctx, input)
	require.NoError(t, err)

	assert.NotZero(t, order.ID)
	assert.Equal(t, product.ID, order.ProductID)
	assert.Equal(t, 2, order.Quantity)
	assert.Equal(t, 1075.0, order.Subtotal)
	assert.Equal(t, 50.0, order.ComboDiscount)
	assert.Equal(t, "SAVE100", order.CouponCode)
	assert.Equal(t, 100.0, order.CouponDiscount)
	assert.Equal(t, 60.0, order.DeliveryCharge)
	assert.Equal(t, 985.0, order.TotalAmount)
	assert.Equal(t, model.OrderStatusPending, order.Status)
	assert.Equal(t, []checkout.VariantLine{{Value: "Gold", Price: 75, Quantity: 1}}, order.Variants.Data()["Color"])

	// the session is consumed by the order
	_, err = s.selection.Get(ctx, view.ID)
	assert.ErrorIs(t, err, ErrSelectionNotFound)
}

func TestOrderService_CreateOrderUsesCurrentCatalog(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()
	product := createTestProduct(t, s, "reprice-order")

	view, err := s.selection.Start(ctx, product.ID)
	require.NoError(t, err)
	_, err = s.selection.AddVariant(ctx, view.ID, "Color", "Gold")
	require.NoError(t, err)

	product.Variants[0].Options[1].Price = 200
	require.NoError(t, s.products.UpdateProduct(product))

	input := orderInput(0)
	input.SessionID = view.ID

	order, err := s.orders.CreateOrder(ctx, input)
	require.NoError(t, err)

	assert.Equal(t, 700.0, order.Subtotal)
	assert.Equal(t, 60.0, order.DeliveryCharge)
	assert.Equal(t, 760.0, order.TotalAmount)
	assert.Equal(t, []checkout.VariantLine{{Value: "Gold", Price: 200, Quantity: 1}}, order.Variants.Data()["Color"])
}

func TestOrderService_CreateOrderInline(t *testing.T) {
	s := setupServices(t)
	product := createTestProduct(t, s, "inline-order")

	input := orderInput(product.ID)
	input.DeliveryArea = checkout.DeliveryOutsideDhaka
	input.Selections = []SelectionInput{{Group: "Color", Value: "Gold", Quantity: intPtr(2)}}
	input.Quantity = intPtr(3)

	order, err := s.orders.CreateOrder(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, 3, order.Quantity)
	assert.Equal(t, 1650.0, order.Subtotal)
	assert.Equal(t, 300.0, order.ComboDiscount)
	assert.Equal(t, 120.0, order.DeliveryCharge)
	assert.Equal(t, 1470.0, order.TotalAmount)

	found, err := s.orders.GetOrder(order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.TotalAmount, found.TotalAmount)
}

func TestOrderService_CreateOrderRejections(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()
	product := createTestProduct(t, s, "rejections")

	otherView, err := s.selection.Start(ctx, createTestProduct(t, s, "other").ID)
	require.NoError(t, err)

	tests := []struct {
		name    string
		mutate  func(in *CreateOrderInput)
		wantErr error
	}{
		{name: "Zero quantity", mutate: func(in *CreateOrderInput) { in.Quantity = intPtr(0) }, wantErr: ErrEmptySelection},
		{name: "Invalid coupon", mutate: func(in *CreateOrderInput) { in.CouponCode = "BOGUS" }, wantErr: ErrInvalidCoupon},
		{name: "Unknown area", mutate: func(in *CreateOrderInput) { in.DeliveryArea = "sylhet" }, wantErr: ErrInvalidDeliveryArea},
		{name: "Missing phone", mutate: func(in *CreateOrderInput) { in.CustomerPhone = " " }, wantErr: ErrInvalidCustomer},
		{name: "Unknown product", mutate: func(in *CreateOrderInput) { in.ProductID = 999 }, wantErr: ErrProductNotFound},
		{name: "Unknown session", mutate: func(in *CreateOrderInput) { in.SessionID = "gone" }, wantErr: ErrSelectionNotFound},
		{name: "Session of another product", mutate: func(in *CreateOrderInput) { in.SessionID = otherView.ID }, wantErr: ErrSelectionProductDiff},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := orderInput(product.ID)
			tt.mutate(&input)

			order, err := s.orders.CreateOrder(ctx, input)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, order)
		})
	}

	orders, err := s.orders.ListOrders(repository.OrderFilter{})
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestOrderService_PreviewOrder(t *testing.T) {
	s := setupServices(t)
	product := createTestProduct(t, s, "preview")

	input := orderInput(product.ID)
	input.Quantity = intPtr(2)
	input.CouponCode = "SAVE100"

	payload, err := s.orders.PreviewOrder(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, 2, payload.Quantity)
	assert.Equal(t, 950.0, payload.ProductTotal)
	assert.Equal(t, 910.0, payload.TotalAmount)

	orders, err := s.orders.ListOrders(repository.OrderFilter{})
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestOrderService_UpdateOrderStatus(t *testing.T) {
	s := setupServices(t)
	product := createTestProduct(t, s, "status")

	input := orderInput(product.ID)
	order, err := s.orders.CreateOrder(context.Background(), input)
	require.NoError(t, err)

	require.NoError(t, s.orders.UpdateOrderStatus(order.ID, model.OrderStatusConfirmed))
	assert.ErrorIs(t, s.orders.UpdateOrderStatus(order.ID, "lost"), ErrInvalidOrderStatus)

	require.NoError(t, s.orders.UpdateOrderStatus(order.ID, model.OrderStatusCancelled))
	assert.ErrorIs(t, s.orders.UpdateOrderStatus(order.ID, model.OrderStatusShipped), ErrInvalidOrderStatus)

	assert.ErrorIs(t, s.orders.UpdateOrderStatus(999, model.OrderStatusShipped), ErrOrderNotFound)

	found, err := s.orders.GetOrder(order.ID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusCancelled, found.Status)
}
