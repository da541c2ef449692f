package enums

import "fmt"

// CommerceEventType is the canonical event_type for read-model ingestion routing.
type CommerceEventType string

const (
	CommerceEventOrderCreated   CommerceEventType = "order_created"
	CommerceEventOrderPaid      CommerceEventType = "order_paid"
	CommerceEventOrderCompleted CommerceEventType = "order_completed"
	CommerceEventOrderCancelled CommerceEventType = "order_cancelled"
	CommerceEventOrderRefunded  CommerceEventType = "order_refunded"
	CommerceEventCartUpdated    CommerceEventType = "cart_updated"
	CommerceEventCartCheckedOut CommerceEventType = "cart_checked_out"
	CommerceEventCouponUpdated  CommerceEventType = "coupon_updated"
	CommerceEventProductUpdated CommerceEventType = "product_updated"
	CommerceEventCustomerSignup CommerceEventType = "customer_signup"
)

var validCommerceEventTypes = []CommerceEventType{
	CommerceEventOrderCreated,
	CommerceEventOrderPaid,
	CommerceEventOrderCompleted,
	CommerceEventOrderCancelled,
	CommerceEventOrderRefunded,
	CommerceEventCartUpdated,
	CommerceEventCartCheckedOut,
	CommerceEventCouponUpdated,
	CommerceEventProductUpdated,
	CommerceEventCustomerSignup,
}

// IsValid reports whether the value matches the canonical commerce event_type enum.
func (c CommerceEventType) IsValid() bool {
	for _, candidate := range validCommerceEventTypes {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseCommerceEventType converts the raw string to CommerceEventType.
func ParseCommerceEventType(value string) (CommerceEventType, error) {
	for _, candidate := range validCommerceEventTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid commerce event type %q", value)
}
