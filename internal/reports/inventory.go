package reports

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"

	"github.com/angelmondragon/storefront-insights/internal/stats"
	"github.com/angelmondragon/storefront-insights/pkg/db/models"
)

// InventoryVelocity is units sold per day per product over the window.
func (s *service) InventoryVelocity(ctx context.Context, q Query) (map[string]float64, error) {
	defer s.observe("inventory_velocity", time.Now())
	w := s.resolveWindow(q)
	if !s.ready(ctx) || w.IsEmpty() {
		return map[string]float64{}, nil
	}

	items, err := s.fetchOrderItems(ctx, "inventory_velocity", completedScope(w))
	if err != nil {
		return nil, err
	}

	days := float64(w.Days())
	sold := soldByProduct(items)
	velocity := make(map[string]float64, len(sold))
	for productID, qty := range sold {
		velocity[productID] = stats.Round2(stats.SafeRatio(float64(qty), days))
	}
	return velocity, nil
}

// SellThroughRate is, per managed-stock product, the share of available units
// sold in the window: sold / (sold + on hand), as a 0-100 percentage.
func (s *service) SellThroughRate(ctx context.Context, q Query) (map[string]float64, error) {
	defer s.observe("sell_through_rate", time.Now())
	w := s.resolveWindow(q)
	if !s.ready(ctx) || w.IsEmpty() {
		return map[string]float64{}, nil
	}

	items, itemsErr := s.store.FindOrderItems(ctx, completedScope(w))
	products, productsErr := s.store.FindProducts(ctx)
	if err := multierr.Combine(itemsErr, productsErr); err != nil {
		return nil, s.dependencyErr("sell_through_rate", err, "querying sell-through inputs")
	}

	sold := soldByProduct(items)
	rates := make(map[string]float64)
	for _, product := range products {
		if !product.StockManaged() {
			continue
		}
		qty := sold[product.ID.String()]
		available := float64(qty) + float64(*product.StockQty)
		rates[product.ID.String()] = stats.Percent(float64(qty), available)
	}
	return rates, nil
}

// PriceElasticity compares each product's average unit price and sales volume
// between the two halves of the window. Products sold in only one half are
// skipped; there is no baseline to compare against.
func (s *service) PriceElasticity(ctx context.Context, q Query) ([]ProductElasticity, error) {
	defer s.observe("price_elasticity", time.Now())
	w := s.resolveWindow(q)
	if !s.ready(ctx) || w.IsEmpty() {
		return []ProductElasticity{}, nil
	}

	mid := w.Start.Add(w.End.Sub(w.Start) / 2)
	earlier, later := w.Split(mid)
	if earlier.IsEmpty() || later.IsEmpty() {
		return []ProductElasticity{}, nil
	}

	orders, ordersErr := s.store.FindOrders(ctx, completedScope(w))
	items, itemsErr := s.store.FindOrderItems(ctx, completedScope(w))
	if err := multierr.Combine(ordersErr, itemsErr); err != nil {
		return nil, s.dependencyErr("price_elasticity", err, "querying elasticity inputs")
	}

	// Halves are keyed on when the order was placed. Item rows are rewritten
	// on every lifecycle event, so their own timestamps track the latest
	// event, not the sale.
	placedAt := make(map[uuid.UUID]time.Time, len(orders))
	for _, order := range orders {
		placedAt[order.ID] = order.CreatedAt
	}

	type half struct {
		qty   int64
		spend float64
	}
	before := make(map[string]*half)
	after := make(map[string]*half)
	for _, item := range items {
		placed, ok := placedAt[item.OrderID]
		if !ok {
			continue
		}
		var bucket map[string]*half
		switch {
		case earlier.Contains(placed):
			bucket = before
		case later.Contains(placed):
			bucket = after
		default:
			continue
		}
		id := item.ProductID.String()
		h, ok := bucket[id]
		if !ok {
			h = &half{}
			bucket[id] = h
		}
		h.qty += int64(item.Qty)
		h.spend += item.UnitPrice.InexactFloat64() * float64(item.Qty)
	}

	var out []ProductElasticity
	for id, prev := range before {
		cur, ok := after[id]
		if !ok || prev.qty == 0 || cur.qty == 0 {
			continue
		}
		prevPrice := prev.spend / float64(prev.qty)
		curPrice := cur.spend / float64(cur.qty)
		out = append(out, ProductElasticity{
			ProductID:  id,
			Elasticity: stats.Round2(stats.Elasticity(curPrice, prevPrice, float64(cur.qty), float64(prev.qty))),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProductID < out[j].ProductID })
	if out == nil {
		out = []ProductElasticity{}
	}
	return out, nil
}

func soldByProduct(items []models.OrderItem) map[string]int64 {
	sold := make(map[string]int64, len(items))
	for _, item := range items {
		sold[item.ProductID.String()] += int64(item.Qty)
	}
	return sold
}
