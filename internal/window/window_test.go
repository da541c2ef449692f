package window

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/storefront-insights/pkg/enums"
)

func TestFromLookback(t *testing.T) {
	now := time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)

	w := FromLookback(now, 7)
	require.False(t, w.IsEmpty())
	assert.Equal(t, now.AddDate(0, 0, -7), w.Start)
	assert.Equal(t, now, w.End)
	assert.Equal(t, 7, w.Days())
}

func TestFromLookbackNonPositiveIsEmpty(t *testing.T) {
	now := time.Now()

	assert.True(t, FromLookback(now, 0).IsEmpty())
	assert.True(t, FromLookback(now, -3).IsEmpty())
	assert.Equal(t, 0, FromLookback(now, -3).Days())
}

func TestFromRangeInvertedIsEmpty(t *testing.T) {
	start := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	assert.True(t, FromRange(start, end).IsEmpty())
	assert.True(t, FromRange(time.Time{}, end).IsEmpty())
	assert.False(t, FromRange(end, start).IsEmpty())
}

func TestContainsHalfOpen(t *testing.T) {
	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 8, 0, 0, 0, 0, time.UTC)
	w := FromRange(start, end)

	assert.True(t, w.Contains(start))
	assert.True(t, w.Contains(start.Add(time.Hour)))
	assert.False(t, w.Contains(end))
	assert.False(t, w.Contains(start.Add(-time.Second)))
}

func TestSplitPartitionsWindow(t *testing.T) {
	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC)
	at := time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC)

	left, right := FromRange(start, end).Split(at)
	require.False(t, left.IsEmpty())
	require.False(t, right.IsEmpty())
	assert.Equal(t, start, left.Start)
	assert.Equal(t, at, left.End)
	assert.Equal(t, at, right.Start)
	assert.Equal(t, end, right.End)
}

func TestSplitOutsideWindowReturnsOriginal(t *testing.T) {
	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC)
	w := FromRange(start, end)

	left, right := w.Split(end.Add(time.Hour))
	assert.Equal(t, w, left)
	assert.True(t, right.IsEmpty())
}

func TestDaysRoundsPartialDaysUp(t *testing.T) {
	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 3, FromRange(start, start.Add(61*time.Hour)).Days())
	assert.Equal(t, 1, FromRange(start, start.Add(time.Hour)).Days())
}

func TestResolveStatuses(t *testing.T) {
	filter := ResolveStatuses("completed", "refunded")

	assert.ElementsMatch(t, []enums.OrderStatus{
		enums.OrderStatusCompleted,
		enums.OrderStatusRefunded,
	}, filter.OrderStatuses)
	assert.ElementsMatch(t, []enums.CartState{enums.CartStateConverted}, filter.CartStates)
}

func TestResolveStatusesUnknownIsEmpty(t *testing.T) {
	filter := ResolveStatuses("shipped", "")

	assert.True(t, filter.IsEmpty())
}

func TestResolveStatusesPaid(t *testing.T) {
	filter := ResolveStatuses("PAID")

	require.Len(t, filter.OrderStatuses, 3)
	for _, status := range filter.OrderStatuses {
		assert.True(t, status.IsPaid())
	}
}
