package stats

import (
	"math"
	"sort"
)

// minForecastPoints is the smallest series a regression forecast will accept.
// Shorter series return 0.0 rather than extrapolating from noise.
const minForecastPoints = 5

// Point is one observation in an ordered series.
type Point struct {
	X float64
	Y float64
}

// Median returns the middle value of the sequence, averaging the two middle
// values for even lengths. Empty input returns 0.0.
func Median(values []float64) float64 {
	if len(values) == 0 {
		return 0.0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}

// StdDev returns the population standard deviation. Empty input returns 0.0.
func StdDev(values []float64) float64 {
	if len(values) == 0 {
		return 0.0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))

	var variance float64
	for _, v := range values {
		d := v - mean
		variance += d * d
	}
	return math.Sqrt(variance / float64(len(values)))
}

// LinearForecast fits a least-squares line through the series and returns the
// sum of projected y values over the next horizon x-steps. Series shorter than
// five points, a non-positive horizon, or a degenerate x-axis all return 0.0.
func LinearForecast(series []Point, horizon int) float64 {
	if len(series) < minForecastPoints || horizon <= 0 {
		return 0.0
	}

	n := float64(len(series))
	var sumX, sumY, sumXY, sumXX float64
	for _, p := range series {
		sumX += p.X
		sumY += p.Y
		sumXY += p.X * p.Y
		sumXX += p.X * p.X
	}

	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return 0.0
	}
	slope := (n*sumXY - sumX*sumY) / denom
	intercept := (sumY - slope*sumX) / n

	lastX := series[len(series)-1].X
	step := seriesStep(series)

	var total float64
	for i := 1; i <= horizon; i++ {
		total += slope*(lastX+float64(i)*step) + intercept
	}
	return total
}

// seriesStep infers the x spacing from the series, defaulting to 1.
func seriesStep(series []Point) float64 {
	if len(series) < 2 {
		return 1
	}
	step := (series[len(series)-1].X - series[0].X) / float64(len(series)-1)
	if step <= 0 {
		return 1
	}
	return step
}

// Elasticity returns relative quantity change over relative price change.
// Zero baselines and unchanged prices return 0.0 to avoid dividing by zero.
func Elasticity(currentPrice, previousPrice, currentQty, previousQty float64) float64 {
	if previousPrice == 0 || previousQty == 0 || currentPrice == previousPrice {
		return 0.0
	}
	qtyChange := (currentQty - previousQty) / previousQty
	priceChange := (currentPrice - previousPrice) / previousPrice
	return qtyChange / priceChange
}

// SafeRatio divides numerator by denominator, returning 0.0 for a zero
// denominator.
func SafeRatio(numerator, denominator float64) float64 {
	if denominator == 0 {
		return 0.0
	}
	return numerator / denominator
}

// Percent returns part over whole as a 0-100 percentage rounded to two
// decimal places.
func Percent(part, whole float64) float64 {
	return Round2(SafeRatio(part, whole) * 100)
}

// Round2 rounds to two decimal places.
func Round2(value float64) float64 {
	return math.Round(value*100) / 100
}
