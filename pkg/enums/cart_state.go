package enums

import "fmt"

// CartState is the terminal (or pending) state of a cart attempt. Abandonment
// is the steady state for attempts that never convert, not an error.
type CartState string

const (
	CartStateOpen      CartState = "open"
	CartStateConverted CartState = "converted"
	CartStateAbandoned CartState = "abandoned"
	CartStateFailed    CartState = "failed"
)

var validCartStates = []CartState{
	CartStateOpen,
	CartStateConverted,
	CartStateAbandoned,
	CartStateFailed,
}

// String implements fmt.Stringer.
func (c CartState) String() string {
	return string(c)
}

// IsValid reports whether the value is a known CartState.
func (c CartState) IsValid() bool {
	for _, candidate := range validCartStates {
		if candidate == c {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the state can no longer change.
func (c CartState) IsTerminal() bool {
	return c == CartStateConverted || c == CartStateAbandoned || c == CartStateFailed
}

// ParseCartState converts raw input into a CartState.
func ParseCartState(value string) (CartState, error) {
	for _, candidate := range validCartStates {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid cart state %q", value)
}
