// Package stock computes per-product stock movements for order lines.
// Functions here are pure; callers validate before applying the result.
package stock

import (
	"sort"

	"github.com/polkiloo/storefront/internal/domain/model"
)

// Delta maps product id to a signed quantity. Positive values are debited from stock,
// negative values are returned to it.
type Delta map[string]int64

// ProductIDs returns the ids in ascending order, which is also the lock order.
func (d Delta) ProductIDs() []string {
	ids := make([]string, 0, len(d))
	for id := range d {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Reserve returns the total quantity to debit for each product referenced by lines.
func Reserve(lines []model.LineItem) Delta {
	delta := make(Delta, len(lines))
	for _, line := range lines {
		delta[line.ProductID] += line.Quantity
	}
	return delta
}

// Diff returns newQty - oldQty for every product present in either set.
// Products whose net movement is zero are omitted.
func Diff(oldLines, newLines []model.LineItem) Delta {
	delta := Reserve(newLines)
	for _, line := range oldLines {
		delta[line.ProductID] -= line.Quantity
	}
	for id, qty := range delta {
		if qty == 0 {
			delete(delta, id)
		}
	}
	return delta
}

// ProductIDs returns the distinct product ids referenced by lines in ascending order.
func ProductIDs(lines ...[]model.LineItem) []string {
	seen := make(map[string]struct{})
	for _, set := range lines {
		for _, line := range set {
			seen[line.ProductID] = struct{}{}
		}
	}
	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
