package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMedian(t *testing.T) {
	assert.Equal(t, 2.5, Median([]float64{1, 2, 3, 4}))
	assert.Equal(t, 3.0, Median([]float64{1, 3, 5}))
	assert.Equal(t, 0.0, Median(nil))
	assert.Equal(t, 3.0, Median([]float64{5, 1, 3}))
}

func TestMedianDoesNotMutateInput(t *testing.T) {
	values := []float64{5, 1, 3}

	Median(values)

	assert.Equal(t, []float64{5, 1, 3}, values)
}

func TestStdDev(t *testing.T) {
	assert.Equal(t, 0.0, StdDev(nil))
	assert.Equal(t, 0.0, StdDev([]float64{4, 4, 4}))
	assert.InDelta(t, 2.0, StdDev([]float64{2, 4, 4, 4, 5, 5, 7, 9}), 1e-9)
}

func TestSafeRatio(t *testing.T) {
	assert.Equal(t, 0.0, SafeRatio(10, 0))
	assert.Equal(t, 0.0, SafeRatio(-5, 0))
	assert.Equal(t, 2.5, SafeRatio(10, 4))
}

func TestPercent(t *testing.T) {
	assert.Equal(t, 33.33, Percent(1, 3))
	assert.Equal(t, 0.0, Percent(1, 0))
	assert.Equal(t, 40.0, Percent(2, 5))
}

func TestElasticityGuards(t *testing.T) {
	assert.Equal(t, 0.0, Elasticity(10, 10, 100, 80))
	assert.Equal(t, 0.0, Elasticity(10, 0, 100, 80))
	assert.Equal(t, 0.0, Elasticity(10, 8, 100, 0))
}

func TestElasticity(t *testing.T) {
	// price +25%, qty -20% => elasticity -0.8
	assert.InDelta(t, -0.8, Elasticity(12.5, 10, 80, 100), 1e-9)
}

func TestLinearForecastRequiresFivePoints(t *testing.T) {
	series := []Point{{1, 100}, {2, 200}, {3, 300}, {4, 400}}

	assert.Equal(t, 0.0, LinearForecast(series, 7))
	assert.Equal(t, 0.0, LinearForecast(nil, 7))
}

func TestLinearForecastProjectsTrend(t *testing.T) {
	// Perfect line y = 10x: the next 3 points are 60+70+80.
	series := []Point{{1, 10}, {2, 20}, {3, 30}, {4, 40}, {5, 50}}

	assert.InDelta(t, 210.0, LinearForecast(series, 3), 1e-6)
}

func TestLinearForecastFlatSeries(t *testing.T) {
	series := []Point{{1, 5}, {2, 5}, {3, 5}, {4, 5}, {5, 5}}

	assert.InDelta(t, 10.0, LinearForecast(series, 2), 1e-6)
}

func TestLinearForecastZeroHorizon(t *testing.T) {
	series := []Point{{1, 10}, {2, 20}, {3, 30}, {4, 40}, {5, 50}}

	assert.Equal(t, 0.0, LinearForecast(series, 0))
}

func TestLinearForecastDegenerateXAxis(t *testing.T) {
	series := []Point{{2, 10}, {2, 20}, {2, 30}, {2, 40}, {2, 50}}

	assert.Equal(t, 0.0, LinearForecast(series, 3))
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 33.33, Round2(33.3333))
	assert.Equal(t, 33.34, Round2(33.336))
	assert.Equal(t, -2.5, Round2(-2.5))
}
