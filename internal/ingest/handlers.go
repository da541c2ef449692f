package ingest

import (
	"context"
	"fmt"

	"github.com/angelmondragon/storefront-insights/pkg/db/models"
	"github.com/angelmondragon/storefront-insights/pkg/logger"
	"github.com/angelmondragon/storefront-insights/pkg/types"
)

type orderHandler struct {
	writer Writer
	logg   *logger.Logger
}

func newOrderHandler(writer Writer, logg *logger.Logger) Handler {
	return &orderHandler{writer: writer, logg: logg}
}

func (h *orderHandler) Handle(ctx context.Context, envelope Envelope, payload any) error {
	event, ok := payload.(*OrderEvent)
	if !ok {
		return fmt.Errorf("invalid payload for %s", envelope.EventType)
	}

	logCtx := h.logg.WithFields(ctx, map[string]any{
		"event_type": envelope.EventType,
		"order_id":   event.OrderID,
		"status":     event.Status,
	})

	order := models.Order{
		ID:            event.OrderID,
		CustomerID:    event.CustomerID,
		Status:        event.Status,
		Currency:      event.Currency,
		PaymentMethod: event.PaymentMethod,
		CountryCode:   event.CountryCode,
		CouponCode:    event.CouponCode,
		Total:         event.Total,
		TaxTotal:      event.TaxTotal,
		ShippingTotal: event.ShippingTotal,
		DiscountTotal: event.DiscountTotal,
		PaidAt:        event.PaidAt,
		CreatedAt:     envelope.OccurredAt,
	}
	items := make([]models.OrderItem, 0, len(event.Items))
	for _, line := range event.Items {
		items = append(items, models.OrderItem{
			ProductID: line.ProductID,
			Name:      line.Name,
			Category:  line.Category,
			Qty:       line.Qty,
			UnitPrice: line.UnitPrice,
			LineTotal: line.LineTotal,
			CreatedAt: envelope.OccurredAt,
		})
	}

	if err := h.writer.UpsertOrder(logCtx, order, items); err != nil {
		h.logg.Error(logCtx, "failed to upsert order", err)
		return err
	}
	h.logg.Info(logCtx, "order snapshot stored")
	return nil
}

type refundHandler struct {
	writer Writer
	logg   *logger.Logger
}

func newRefundHandler(writer Writer, logg *logger.Logger) Handler {
	return &refundHandler{writer: writer, logg: logg}
}

func (h *refundHandler) Handle(ctx context.Context, envelope Envelope, payload any) error {
	event, ok := payload.(*RefundEvent)
	if !ok {
		return fmt.Errorf("invalid payload for %s", envelope.EventType)
	}

	logCtx := h.logg.WithFields(ctx, map[string]any{
		"event_type": envelope.EventType,
		"order_id":   event.OrderID,
		"refund_id":  event.RefundID,
	})

	refund := models.Refund{
		ID:        event.RefundID,
		OrderID:   event.OrderID,
		Amount:    event.Amount,
		Reason:    event.Reason,
		CreatedAt: envelope.OccurredAt,
	}
	if err := h.writer.ApplyRefund(logCtx, refund); err != nil {
		h.logg.Error(logCtx, "failed to apply refund", err)
		return err
	}
	h.logg.Info(logCtx, "refund applied")
	return nil
}

type cartHandler struct {
	writer Writer
	logg   *logger.Logger
}

func newCartHandler(writer Writer, logg *logger.Logger) Handler {
	return &cartHandler{writer: writer, logg: logg}
}

func (h *cartHandler) Handle(ctx context.Context, envelope Envelope, payload any) error {
	event, ok := payload.(*CartEvent)
	if !ok {
		return fmt.Errorf("invalid payload for %s", envelope.EventType)
	}

	logCtx := h.logg.WithFields(ctx, map[string]any{
		"event_type": envelope.EventType,
		"cart_id":    event.CartID,
		"state":      event.State,
	})

	attempt := models.CartAttempt{
		ID:                event.CartID,
		CustomerID:        event.CustomerID,
		State:             event.State,
		Subtotal:          event.Subtotal,
		AppliedCoupons:    types.StringSet(event.AppliedCoupons),
		CheckoutReachedAt: event.CheckoutReachedAt,
		ConvertedOrderID:  event.ConvertedOrderID,
		CreatedAt:         envelope.OccurredAt,
		LastActivityAt:    event.LastActivityAt,
	}
	if attempt.LastActivityAt.IsZero() {
		attempt.LastActivityAt = envelope.OccurredAt
	}
	items := make([]models.CartAttemptItem, 0, len(event.Items))
	for _, line := range event.Items {
		items = append(items, models.CartAttemptItem{
			ProductID: line.ProductID,
			Qty:       line.Qty,
			UnitPrice: line.UnitPrice,
		})
	}

	if err := h.writer.UpsertCartAttempt(logCtx, attempt, items); err != nil {
		h.logg.Error(logCtx, "failed to upsert cart attempt", err)
		return err
	}
	h.logg.Info(logCtx, "cart attempt stored")
	return nil
}

type couponHandler struct {
	writer Writer
	logg   *logger.Logger
}

func newCouponHandler(writer Writer, logg *logger.Logger) Handler {
	return &couponHandler{writer: writer, logg: logg}
}

func (h *couponHandler) Handle(ctx context.Context, envelope Envelope, payload any) error {
	event, ok := payload.(*CouponEvent)
	if !ok {
		return fmt.Errorf("invalid payload for %s", envelope.EventType)
	}

	logCtx := h.logg.WithField(ctx, "coupon_code", event.Code)
	coupon := models.Coupon{
		ID:                  event.CouponID,
		Code:                event.Code,
		DiscountType:        event.DiscountType,
		Amount:              event.Amount,
		UsageCount:          event.UsageCount,
		ExpiresAt:           event.ExpiresAt,
		ProductRestriction:  types.StringSet(event.ProductRestriction),
		CategoryRestriction: types.StringSet(event.CategoryRestriction),
	}
	if err := h.writer.UpsertCoupon(logCtx, coupon); err != nil {
		h.logg.Error(logCtx, "failed to upsert coupon", err)
		return err
	}
	return nil
}

type productHandler struct {
	writer Writer
	logg   *logger.Logger
}

func newProductHandler(writer Writer, logg *logger.Logger) Handler {
	return &productHandler{writer: writer, logg: logg}
}

func (h *productHandler) Handle(ctx context.Context, envelope Envelope, payload any) error {
	event, ok := payload.(*ProductEvent)
	if !ok {
		return fmt.Errorf("invalid payload for %s", envelope.EventType)
	}

	logCtx := h.logg.WithField(ctx, "product_id", event.ProductID)
	product := models.Product{
		ID:            event.ProductID,
		Name:          event.Name,
		Type:          event.Type,
		ParentID:      event.ParentID,
		Price:         event.Price,
		Cost:          event.Cost,
		StockQty:      event.StockQty,
		Categories:    types.StringSet(event.Categories),
		Tags:          types.StringSet(event.Tags),
		ReviewCount:   event.ReviewCount,
		AverageRating: event.AverageRating,
	}
	if err := h.writer.UpsertProduct(logCtx, product); err != nil {
		h.logg.Error(logCtx, "failed to upsert product", err)
		return err
	}
	return nil
}

type customerHandler struct {
	writer Writer
	logg   *logger.Logger
}

func newCustomerHandler(writer Writer, logg *logger.Logger) Handler {
	return &customerHandler{writer: writer, logg: logg}
}

func (h *customerHandler) Handle(ctx context.Context, envelope Envelope, payload any) error {
	event, ok := payload.(*CustomerEvent)
	if !ok {
		return fmt.Errorf("invalid payload for %s", envelope.EventType)
	}

	logCtx := h.logg.WithField(ctx, "customer_id", event.CustomerID)
	customer := models.Customer{
		ID:           event.CustomerID,
		Email:        event.Email,
		RegisteredAt: event.RegisteredAt,
	}
	if customer.RegisteredAt.IsZero() {
		customer.RegisteredAt = envelope.OccurredAt
	}
	if err := h.writer.UpsertCustomer(logCtx, customer); err != nil {
		h.logg.Error(logCtx, "failed to upsert customer", err)
		return err
	}
	return nil
}
