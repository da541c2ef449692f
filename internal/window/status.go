package window

import (
	"strings"

	"github.com/angelmondragon/storefront-insights/pkg/enums"
)

// StatusFilter resolves logical business states into the concrete status
// vocabularies of the read model. Unknown logical states resolve to nothing.
type StatusFilter struct {
	OrderStatuses []enums.OrderStatus
	CartStates    []enums.CartState
}

// ResolveStatuses maps logical state names ("completed", "paid", "refunded",
// "abandoned", ...) to concrete order statuses and cart states.
func ResolveStatuses(logical ...string) StatusFilter {
	var filter StatusFilter
	for _, state := range logical {
		switch strings.ToLower(strings.TrimSpace(state)) {
		case "completed":
			filter.OrderStatuses = append(filter.OrderStatuses, enums.OrderStatusCompleted)
			filter.CartStates = append(filter.CartStates, enums.CartStateConverted)
		case "paid":
			filter.OrderStatuses = append(filter.OrderStatuses,
				enums.OrderStatusProcessing,
				enums.OrderStatusCompleted,
				enums.OrderStatusRefunded,
			)
		case "refunded":
			filter.OrderStatuses = append(filter.OrderStatuses, enums.OrderStatusRefunded)
		case "pending":
			filter.OrderStatuses = append(filter.OrderStatuses,
				enums.OrderStatusPending,
				enums.OrderStatusOnHold,
			)
		case "failed":
			filter.OrderStatuses = append(filter.OrderStatuses, enums.OrderStatusFailed)
			filter.CartStates = append(filter.CartStates, enums.CartStateFailed)
		case "cancelled":
			filter.OrderStatuses = append(filter.OrderStatuses, enums.OrderStatusCancelled)
		case "abandoned":
			filter.CartStates = append(filter.CartStates, enums.CartStateAbandoned)
		case "open":
			filter.CartStates = append(filter.CartStates, enums.CartStateOpen)
		}
	}
	return filter
}

// IsEmpty reports whether the filter resolves to no concrete statuses.
func (f StatusFilter) IsEmpty() bool {
	return len(f.OrderStatuses) == 0 && len(f.CartStates) == 0
}
