package funnel

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/storefront-insights/internal/stats"
	"github.com/angelmondragon/storefront-insights/pkg/db/models"
)

// Cohort is one first-purchase-month cohort with retention per subsequent
// month. Retention[0] is always 100 for a non-empty cohort.
type Cohort struct {
	Month     string    `json:"month"`
	Size      int64     `json:"size"`
	Retention []float64 `json:"retention"`
}

// customerOrders indexes paid order timestamps by customer, sorted ascending.
// Guest orders carry no customer and are excluded from cohort math.
func customerOrders(orders []models.Order) map[string][]time.Time {
	byCustomer := make(map[string][]time.Time)
	for _, order := range orders {
		if order.CustomerID == nil || !order.Status.IsPaid() {
			continue
		}
		id := order.CustomerID.String()
		byCustomer[id] = append(byCustomer[id], order.CreatedAt)
	}
	for id := range byCustomer {
		sort.Slice(byCustomer[id], func(i, j int) bool {
			return byCustomer[id][i].Before(byCustomer[id][j])
		})
	}
	return byCustomer
}

// Retention groups customers into cohorts by first-purchase month and reports,
// for each cohort, the fraction still ordering in each of the following
// periods months. Cohorts are returned in chronological order.
func Retention(orders []models.Order, periods int) []Cohort {
	if periods < 1 {
		periods = 1
	}
	byCustomer := customerOrders(orders)
	if len(byCustomer) == 0 {
		return []Cohort{}
	}

	type cohortAgg struct {
		size   int64
		active []map[string]struct{}
	}
	cohorts := make(map[string]*cohortAgg)

	for id, stamps := range byCustomer {
		first := monthOf(stamps[0])
		agg, ok := cohorts[first]
		if !ok {
			agg = &cohortAgg{active: make([]map[string]struct{}, periods)}
			for i := range agg.active {
				agg.active[i] = make(map[string]struct{})
			}
			cohorts[first] = agg
		}
		agg.size++

		firstMonth := monthIndex(stamps[0])
		for _, at := range stamps {
			offset := monthIndex(at) - firstMonth
			if offset >= 0 && offset < periods {
				agg.active[offset][id] = struct{}{}
			}
		}
	}

	months := make([]string, 0, len(cohorts))
	for month := range cohorts {
		months = append(months, month)
	}
	sort.Strings(months)

	out := make([]Cohort, 0, len(months))
	for _, month := range months {
		agg := cohorts[month]
		retention := make([]float64, periods)
		for i := range retention {
			retention[i] = stats.Percent(float64(len(agg.active[i])), float64(agg.size))
		}
		out = append(out, Cohort{Month: month, Size: agg.size, Retention: retention})
	}
	return out
}

// ChurnRate is the fraction of known customers whose most recent paid order
// predates the cutoff, as a 0-100 percentage. Customers with no paid orders
// are not counted either way.
func ChurnRate(orders []models.Order, cutoff time.Time) float64 {
	byCustomer := customerOrders(orders)
	if len(byCustomer) == 0 {
		return 0.0
	}

	var churned int64
	for _, stamps := range byCustomer {
		last := stamps[len(stamps)-1]
		if last.Before(cutoff) {
			churned++
		}
	}
	return stats.Percent(float64(churned), float64(len(byCustomer)))
}

// RFMThresholds are caller-supplied segment boundaries. A customer is
// "active" when recency is at or under MaxRecencyDays, "loyal" when order
// frequency meets MinFrequency, and "big spender" when monetary meets
// MinMonetary.
type RFMThresholds struct {
	MaxRecencyDays int
	MinFrequency   int64
	MinMonetary    decimal.Decimal
}

// RFMScore is one customer's recency/frequency/monetary profile.
type RFMScore struct {
	CustomerID  string          `json:"customer_id"`
	RecencyDays int             `json:"recency_days"`
	Frequency   int64           `json:"frequency"`
	Monetary    decimal.Decimal `json:"monetary"`
	Segment     string          `json:"segment"`
}

// RFM computes per-customer recency, frequency, and monetary value from paid
// orders and assigns a segment using the caller's thresholds. Results are
// sorted by customer id for determinism.
func RFM(orders []models.Order, now time.Time, thresholds RFMThresholds) []RFMScore {
	type agg struct {
		last  time.Time
		count int64
		spend decimal.Decimal
	}
	byCustomer := make(map[string]*agg)
	for _, order := range orders {
		if order.CustomerID == nil || !order.Status.IsPaid() {
			continue
		}
		id := order.CustomerID.String()
		a, ok := byCustomer[id]
		if !ok {
			a = &agg{}
			byCustomer[id] = a
		}
		if order.CreatedAt.After(a.last) {
			a.last = order.CreatedAt
		}
		a.count++
		a.spend = a.spend.Add(order.NetTotal())
	}

	scores := make([]RFMScore, 0, len(byCustomer))
	for id, a := range byCustomer {
		recency := int(now.Sub(a.last).Hours() / 24)
		if recency < 0 {
			recency = 0
		}
		scores = append(scores, RFMScore{
			CustomerID:  id,
			RecencyDays: recency,
			Frequency:   a.count,
			Monetary:    a.spend.Round(2),
			Segment:     segment(recency, a.count, a.spend, thresholds),
		})
	}
	sort.Slice(scores, func(i, j int) bool { return scores[i].CustomerID < scores[j].CustomerID })
	return scores
}

func segment(recencyDays int, frequency int64, monetary decimal.Decimal, t RFMThresholds) string {
	active := t.MaxRecencyDays <= 0 || recencyDays <= t.MaxRecencyDays
	loyal := frequency >= t.MinFrequency
	spender := monetary.GreaterThanOrEqual(t.MinMonetary)

	switch {
	case active && loyal && spender:
		return "champion"
	case active && loyal:
		return "loyal"
	case active && spender:
		return "big_spender"
	case active:
		return "active"
	case loyal || spender:
		return "at_risk"
	default:
		return "lapsed"
	}
}

func monthOf(at time.Time) string {
	return at.UTC().Format("2006-01")
}

func monthIndex(at time.Time) int {
	u := at.UTC()
	return u.Year()*12 + int(u.Month()) - 1
}
