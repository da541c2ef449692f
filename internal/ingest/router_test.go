package ingest

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/storefront-insights/pkg/db/models"
	"github.com/angelmondragon/storefront-insights/pkg/enums"
	"github.com/angelmondragon/storefront-insights/pkg/logger"
)

type fakeWriter struct {
	orders    []models.Order
	items     [][]models.OrderItem
	refunds   []models.Refund
	carts     []models.CartAttempt
	cartItems [][]models.CartAttemptItem
	coupons   []models.Coupon
	products  []models.Product
	customers []models.Customer
	err       error
}

func (f *fakeWriter) UpsertOrder(_ context.Context, order models.Order, items []models.OrderItem) error {
	f.orders = append(f.orders, order)
	f.items = append(f.items, items)
	return f.err
}

func (f *fakeWriter) ApplyRefund(_ context.Context, refund models.Refund) error {
	f.refunds = append(f.refunds, refund)
	return f.err
}

func (f *fakeWriter) UpsertCartAttempt(_ context.Context, attempt models.CartAttempt, items []models.CartAttemptItem) error {
	f.carts = append(f.carts, attempt)
	f.cartItems = append(f.cartItems, items)
	return f.err
}

func (f *fakeWriter) UpsertCoupon(_ context.Context, coupon models.Coupon) error {
	f.coupons = append(f.coupons, coupon)
	return f.err
}

func (f *fakeWriter) UpsertProduct(_ context.Context, product models.Product) error {
	f.products = append(f.products, product)
	return f.err
}

func (f *fakeWriter) UpsertCustomer(_ context.Context, customer models.Customer) error {
	f.customers = append(f.customers, customer)
	return f.err
}

func newTestRouter(t *testing.T, writer Writer) *Router {
	t.Helper()
	router, err := NewRouter(writer, logger.New(logger.Options{ServiceName: "ingest-test"}), nil)
	require.NoError(t, err)
	return router
}

func buildTestEnvelope(t *testing.T, eventType enums.CommerceEventType, payload any) Envelope {
	t.Helper()
	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	return Envelope{
		EventID:    uuid.NewString(),
		EventType:  eventType,
		OccurredAt: time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC),
		Payload:    raw,
	}
}

func TestRouterDispatchesOrderEvents(t *testing.T) {
	writer := &fakeWriter{}
	router := newTestRouter(t, writer)

	orderID := uuid.New()
	env := buildTestEnvelope(t, enums.CommerceEventOrderPaid, OrderEvent{
		OrderID:       orderID,
		Status:        enums.OrderStatusProcessing,
		Currency:      enums.CurrencyUSD,
		PaymentMethod: enums.PaymentMethodCard,
		Total:         decimal.NewFromInt(120),
		Items: []OrderItemPayload{
			{ProductID: uuid.New(), Name: "Mug", Category: "kitchen", Qty: 2, UnitPrice: decimal.NewFromInt(60), LineTotal: decimal.NewFromInt(120)},
		},
	})

	require.NoError(t, router.Handle(context.Background(), env))
	require.Len(t, writer.orders, 1)
	assert.Equal(t, orderID, writer.orders[0].ID)
	assert.Equal(t, enums.OrderStatusProcessing, writer.orders[0].Status)
	assert.Equal(t, env.OccurredAt, writer.orders[0].CreatedAt)
	require.Len(t, writer.items, 1)
	require.Len(t, writer.items[0], 1)
	assert.Equal(t, 2, writer.items[0][0].Qty)
}

func TestRouterDispatchesRefundEvents(t *testing.T) {
	writer := &fakeWriter{}
	router := newTestRouter(t, writer)

	orderID := uuid.New()
	env := buildTestEnvelope(t, enums.CommerceEventOrderRefunded, RefundEvent{
		RefundID: uuid.New(),
		OrderID:  orderID,
		Amount:   decimal.NewFromInt(30),
		Reason:   "damaged",
	})

	require.NoError(t, router.Handle(context.Background(), env))
	require.Len(t, writer.refunds, 1)
	assert.Equal(t, orderID, writer.refunds[0].OrderID)
	assert.True(t, writer.refunds[0].Amount.Equal(decimal.NewFromInt(30)))
}

func TestRouterDispatchesCartEvents(t *testing.T) {
	writer := &fakeWriter{}
	router := newTestRouter(t, writer)

	cartID := uuid.New()
	env := buildTestEnvelope(t, enums.CommerceEventCartCheckedOut, CartEvent{
		CartID:   cartID,
		State:    enums.CartStateOpen,
		Subtotal: decimal.NewFromInt(45),
		Items: []CartItemPayload{
			{ProductID: uuid.New(), Qty: 3, UnitPrice: decimal.NewFromInt(15)},
		},
	})

	require.NoError(t, router.Handle(context.Background(), env))
	require.Len(t, writer.carts, 1)
	assert.Equal(t, cartID, writer.carts[0].ID)
	// last_activity_at falls back to the envelope timestamp when unset.
	assert.Equal(t, env.OccurredAt, writer.carts[0].LastActivityAt)
	require.Len(t, writer.cartItems, 1)
	require.Len(t, writer.cartItems[0], 1)
}

func TestRouterDispatchesCatalogEvents(t *testing.T) {
	writer := &fakeWriter{}
	router := newTestRouter(t, writer)

	coupon := buildTestEnvelope(t, enums.CommerceEventCouponUpdated, CouponEvent{
		CouponID:     uuid.New(),
		Code:         "SPRING10",
		DiscountType: enums.DiscountTypePercentage,
		Amount:       decimal.NewFromInt(10),
	})
	product := buildTestEnvelope(t, enums.CommerceEventProductUpdated, ProductEvent{
		ProductID: uuid.New(),
		Name:      "Mug",
		Type:      enums.ProductTypeSimple,
		Price:     decimal.NewFromInt(15),
	})
	customer := buildTestEnvelope(t, enums.CommerceEventCustomerSignup, CustomerEvent{
		CustomerID:   uuid.New(),
		Email:        "shopper@example.com",
		RegisteredAt: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
	})

	require.NoError(t, router.Handle(context.Background(), coupon))
	require.NoError(t, router.Handle(context.Background(), product))
	require.NoError(t, router.Handle(context.Background(), customer))

	require.Len(t, writer.coupons, 1)
	assert.Equal(t, "SPRING10", writer.coupons[0].Code)
	require.Len(t, writer.products, 1)
	assert.Equal(t, "Mug", writer.products[0].Name)
	require.Len(t, writer.customers, 1)
	assert.Equal(t, "shopper@example.com", writer.customers[0].Email)
}

func TestRouterRejectsUnsupportedEventType(t *testing.T) {
	router := newTestRouter(t, &fakeWriter{})

	env := buildTestEnvelope(t, enums.CommerceEventType("inventory_audited"), map[string]any{})
	err := router.Handle(context.Background(), env)
	require.ErrorIs(t, err, ErrUnsupportedEventType)
}

func TestRouterRejectsEmptyPayload(t *testing.T) {
	router := newTestRouter(t, &fakeWriter{})

	env := Envelope{
		EventID:    uuid.NewString(),
		EventType:  enums.CommerceEventOrderCreated,
		OccurredAt: time.Now().UTC(),
	}
	require.Error(t, router.Handle(context.Background(), env))
}

func TestRouterRejectsMalformedPayload(t *testing.T) {
	writer := &fakeWriter{}
	router := newTestRouter(t, writer)

	env := Envelope{
		EventID:    uuid.NewString(),
		EventType:  enums.CommerceEventOrderCreated,
		OccurredAt: time.Now().UTC(),
		Payload:    json.RawMessage(`{"total":"not-a-number"`),
	}
	require.Error(t, router.Handle(context.Background(), env))
	assert.Empty(t, writer.orders)
}

func TestRouterOverrideReplacesHandler(t *testing.T) {
	custom := &recordingHandler{}
	router, err := NewRouter(&fakeWriter{}, logger.New(logger.Options{ServiceName: "ingest-test"}), map[enums.CommerceEventType]Handler{
		enums.CommerceEventProductUpdated: custom,
	})
	require.NoError(t, err)

	env := buildTestEnvelope(t, enums.CommerceEventProductUpdated, ProductEvent{ProductID: uuid.New(), Name: "Mug"})
	require.NoError(t, router.Handle(context.Background(), env))
	assert.True(t, custom.called)
}

type recordingHandler struct {
	called bool
}

func (h *recordingHandler) Handle(_ context.Context, _ Envelope, _ any) error {
	h.called = true
	return nil
}
