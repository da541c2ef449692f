package ingest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/angelmondragon/storefront-insights/pkg/enums"
	"github.com/angelmondragon/storefront-insights/pkg/logger"
)

var ErrUnsupportedEventType = errors.New("unsupported commerce event type")

// Handler receives an envelope plus a decoded event payload.
type Handler interface {
	Handle(ctx context.Context, envelope Envelope, payload any) error
}

type handlerEntry struct {
	factory func() any
	handler Handler
}

// Router dispatches commerce envelopes to the configured handler per event
// type.
type Router struct {
	handlers map[enums.CommerceEventType]handlerEntry
	logg     *logger.Logger
}

// NewRouter wires the default handlers and allows overrides for specific
// events.
func NewRouter(writer Writer, logg *logger.Logger, overrides map[enums.CommerceEventType]Handler) (*Router, error) {
	if writer == nil {
		return nil, errors.New("writer is required")
	}
	if logg == nil {
		return nil, errors.New("logger is required")
	}

	orderEntry := handlerEntry{
		factory: func() any { return &OrderEvent{} },
		handler: newOrderHandler(writer, logg),
	}
	cartEntry := handlerEntry{
		factory: func() any { return &CartEvent{} },
		handler: newCartHandler(writer, logg),
	}

	entries := map[enums.CommerceEventType]handlerEntry{
		enums.CommerceEventOrderCreated:   orderEntry,
		enums.CommerceEventOrderPaid:      orderEntry,
		enums.CommerceEventOrderCompleted: orderEntry,
		enums.CommerceEventOrderCancelled: orderEntry,
		enums.CommerceEventOrderRefunded: {
			factory: func() any { return &RefundEvent{} },
			handler: newRefundHandler(writer, logg),
		},
		enums.CommerceEventCartUpdated:    cartEntry,
		enums.CommerceEventCartCheckedOut: cartEntry,
		enums.CommerceEventCouponUpdated: {
			factory: func() any { return &CouponEvent{} },
			handler: newCouponHandler(writer, logg),
		},
		enums.CommerceEventProductUpdated: {
			factory: func() any { return &ProductEvent{} },
			handler: newProductHandler(writer, logg),
		},
		enums.CommerceEventCustomerSignup: {
			factory: func() any { return &CustomerEvent{} },
			handler: newCustomerHandler(writer, logg),
		},
	}

	for event, custom := range overrides {
		entry, ok := entries[event]
		if !ok || custom == nil {
			continue
		}
		entry.handler = custom
		entries[event] = entry
	}

	return &Router{
		handlers: entries,
		logg:     logg,
	}, nil
}

// Handle dispatches the incoming envelope to the configured handler.
func (r *Router) Handle(ctx context.Context, envelope Envelope) error {
	entry, ok := r.handlers[envelope.EventType]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnsupportedEventType, envelope.EventType)
	}
	if len(envelope.Payload) == 0 {
		return fmt.Errorf("empty payload for %s", envelope.EventType)
	}
	payload := entry.factory()
	if err := json.Unmarshal(envelope.Payload, payload); err != nil {
		return fmt.Errorf("decode %s payload: %w", envelope.EventType, err)
	}

	return entry.handler.Handle(ctx, envelope, payload)
}
