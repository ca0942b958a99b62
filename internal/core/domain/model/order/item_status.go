package order

import (
	"fmt"

	"tableside/internal/pkg/errs"
)

// ItemStatus represents the preparation state of a single order item.
//
// State transitions:
//
//	Ordered ──> InPreparation ──> Ready ──> Delivered
//	   │             │
//	   └─────────────┴──> Cancelled
//
// Backward transitions are always rejected. Delivered and Cancelled are
// terminal. Entering InPreparation stamps the item's preparation start time;
// entering Ready stamps its completion time.
type ItemStatus int

const (
	// ItemUnknown represents an invalid or undefined item status.
	ItemUnknown ItemStatus = iota

	// ItemOrdered is the initial status when the waiter adds the item.
	ItemOrdered

	// ItemInPreparation indicates a cook has started the item.
	ItemInPreparation

	// ItemReady indicates the item is plated and waiting to be served.
	ItemReady

	// ItemDelivered indicates the item has reached the table. Terminal.
	ItemDelivered

	// ItemCancelled indicates the item was struck from the order before it was
	// ready. Terminal.
	ItemCancelled
)

func getItemStatusStrings() map[ItemStatus]string {
	return map[ItemStatus]string{
		ItemUnknown:       "Unknown",
		ItemOrdered:       "Ordered",
		ItemInPreparation: "InPreparation",
		ItemReady:         "Ready",
		ItemDelivered:     "Delivered",
		ItemCancelled:     "Cancelled",
	}
}

func itemTransitions() map[ItemStatus][]ItemStatus {
	return map[ItemStatus][]ItemStatus{
		ItemOrdered:       {ItemInPreparation, ItemCancelled},
		ItemInPreparation: {ItemReady, ItemCancelled},
		ItemReady:         {ItemDelivered},
	}
}

// Validate checks if the ItemStatus value is one of the defined statuses.
func (s ItemStatus) Validate() error {
	switch s {
	case ItemOrdered, ItemInPreparation, ItemReady, ItemDelivered, ItemCancelled:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("order item status",
			fmt.Errorf("%d is not a valid order item status", s))
	}
}

// String returns the human-readable name of the status.
func (s ItemStatus) String() string {
	if str, ok := getItemStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether the status permits no further transitions.
func (s ItemStatus) IsTerminal() bool {
	return s == ItemDelivered || s == ItemCancelled
}

// CanTransitionTo reports whether the item status machine allows moving from
// the current status to next.
func (s ItemStatus) CanTransitionTo(next ItemStatus) bool {
	for _, allowed := range itemTransitions()[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// TransitionTo moves the status to next.
//
// Returns:
//   - (next, nil) when the transition is allowed
//   - (0, *errs.InvalidTransitionError) otherwise
func (s ItemStatus) TransitionTo(next ItemStatus) (ItemStatus, error) {
	if err := next.Validate(); err != nil {
		return 0, err
	}
	if !s.CanTransitionTo(next) {
		return 0, errs.NewInvalidTransitionError("order item", s.String(), next.String())
	}
	return next, nil
}

// ItemStatusFromString parses an item status from its human-readable name.
func ItemStatusFromString(s string) (ItemStatus, error) {
	for status, name := range getItemStatusStrings() {
		if name == s && status != ItemUnknown {
			return status, nil
		}
	}
	return ItemUnknown, errs.NewValueIsInvalidErrorWithCause("order item status",
		fmt.Errorf("%q is not a valid order item status", s))
}
