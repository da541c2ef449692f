package aggregate

import (
	"github.com/shopspring/decimal"
)

// The engine is a pure function over the rows it is given: identical inputs
// always produce identical outputs, and empty inputs produce the documented
// zero values instead of errors.

// Sum reduces rows to the total of the extracted values.
func Sum[T any](rows []T, value func(T) decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, row := range rows {
		total = total.Add(value(row))
	}
	return total
}

// Count returns the number of rows matching the predicate. A nil predicate
// counts every row.
func Count[T any](rows []T, match func(T) bool) int64 {
	if match == nil {
		return int64(len(rows))
	}
	var n int64
	for _, row := range rows {
		if match(row) {
			n++
		}
	}
	return n
}

// CountDistinct returns the number of distinct non-empty keys across rows.
func CountDistinct[T any](rows []T, key func(T) string) int64 {
	seen := make(map[string]struct{}, len(rows))
	for _, row := range rows {
		k := key(row)
		if k == "" {
			continue
		}
		seen[k] = struct{}{}
	}
	return int64(len(seen))
}

// Average returns the mean of the extracted values, or zero for no rows.
func Average[T any](rows []T, value func(T) decimal.Decimal) decimal.Decimal {
	if len(rows) == 0 {
		return decimal.Zero
	}
	return Sum(rows, value).Div(decimal.NewFromInt(int64(len(rows))))
}

// SumBy groups rows by key and sums the extracted value per group. Rows with
// an empty key are skipped.
func SumBy[T any](rows []T, key func(T) string, value func(T) decimal.Decimal) map[string]decimal.Decimal {
	grouped := make(map[string]decimal.Decimal)
	for _, row := range rows {
		k := key(row)
		if k == "" {
			continue
		}
		grouped[k] = grouped[k].Add(value(row))
	}
	return grouped
}

// CountBy groups rows by key and counts rows per group. Rows with an empty
// key are skipped.
func CountBy[T any](rows []T, key func(T) string) map[string]int64 {
	grouped := make(map[string]int64)
	for _, row := range rows {
		k := key(row)
		if k == "" {
			continue
		}
		grouped[k]++
	}
	return grouped
}

// AverageBy groups rows by key and averages the extracted value per group.
func AverageBy[T any](rows []T, key func(T) string, value func(T) decimal.Decimal) map[string]decimal.Decimal {
	sums := make(map[string]decimal.Decimal)
	counts := make(map[string]int64)
	for _, row := range rows {
		k := key(row)
		if k == "" {
			continue
		}
		sums[k] = sums[k].Add(value(row))
		counts[k]++
	}
	averages := make(map[string]decimal.Decimal, len(sums))
	for k, total := range sums {
		averages[k] = total.Div(decimal.NewFromInt(counts[k]))
	}
	return averages
}

// RoundCurrency rounds a monetary amount to two decimal places. Raw counts
// and ratios are left to their own rounding rules.
func RoundCurrency(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(2)
}

// RoundCurrencyMap rounds every value of a grouped currency result.
func RoundCurrencyMap(grouped map[string]decimal.Decimal) map[string]decimal.Decimal {
	rounded := make(map[string]decimal.Decimal, len(grouped))
	for k, v := range grouped {
		rounded[k] = v.Round(2)
	}
	return rounded
}
