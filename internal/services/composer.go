package services

import "github.com/Bikutah/ingenieria-3-grupo-2/internal/models"

// Line is one product row of a draft order or reservation menu. UnitPrice is
// the price snapshotted when the product was attached; catalog changes never
// alter existing lines.
type Line struct {
	ProductID uint    `json:"product_id"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

func cloneLines(lines []Line) []Line {
	out := make([]Line, len(lines))
	copy(out, lines)
	return out
}

// AttachOrIncrement adds a product to the draft. A product already present
// gets its quantity bumped by one and keeps its stored price; a new product
// is appended with quantity 1 at the given price. The input is not mutated.
func AttachOrIncrement(lines []Line, productID uint, unitPrice float64) []Line {
	out := cloneLines(lines)
	for i := range out {
		if out[i].ProductID == productID {
			out[i].Quantity++
			return out
		}
	}
	return append(out, Line{ProductID: productID, Quantity: 1, UnitPrice: unitPrice})
}

// SetQuantity replaces a line's quantity, clamping negatives to zero. A zero
// quantity leaves the line in place; SerializableLines drops it at submission
// time. Unknown products are a no-op.
func SetQuantity(lines []Line, productID uint, quantity int) []Line {
	if quantity < 0 {
		quantity = 0
	}
	out := cloneLines(lines)
	for i := range out {
		if out[i].ProductID == productID {
			out[i].Quantity = quantity
			break
		}
	}
	return out
}

// RemoveLine deletes the product's line outright regardless of quantity.
func RemoveLine(lines []Line, productID uint) []Line {
	out := make([]Line, 0, len(lines))
	for _, l := range lines {
		if l.ProductID != productID {
			out = append(out, l)
		}
	}
	return out
}

// MergeReservationMenu folds a reservation's menu lines into the draft. For a
// product already in the draft the quantities add up and the reservation's
// snapshotted price overwrites the draft's, since the menu price is the agreed
// prix-fixe component of the booking. New products are appended as-is. The
// merge is pure and additive: callers must replace the draft with the result
// rather than merge the same menu twice.
func MergeReservationMenu(draft, menu []Line) []Line {
	out := cloneLines(draft)
	for _, m := range menu {
		found := false
		for i := range out {
			if out[i].ProductID == m.ProductID {
				out[i].Quantity += m.Quantity
				out[i].UnitPrice = m.UnitPrice
				found = true
				break
			}
		}
		if !found {
			out = append(out, Line{ProductID: m.ProductID, Quantity: m.Quantity, UnitPrice: m.UnitPrice})
		}
	}
	return out
}

// ComputeTotals derives the order total and the balance left after the
// deposit. Lines with quantity <= 0 do not count. An excess deposit is
// absorbed: remaining never goes negative.
func ComputeTotals(lines []Line, deposit float64) (total, remaining float64) {
	for _, l := range lines {
		if l.Quantity > 0 {
			total += float64(l.Quantity) * l.UnitPrice
		}
	}
	remaining = total - deposit
	if remaining < 0 {
		remaining = 0
	}
	return total, remaining
}

// SerializableLines filters the draft down to the lines worth persisting.
func SerializableLines(lines []Line) []Line {
	out := make([]Line, 0, len(lines))
	for _, l := range lines {
		if l.Quantity > 0 {
			out = append(out, l)
		}
	}
	return out
}

// FromOrderLines converts persisted order lines to draft lines.
func FromOrderLines(lines []models.OrderLine) []Line {
	out := make([]Line, 0, len(lines))
	for _, l := range lines {
		out = append(out, Line{ProductID: l.ProductID, Quantity: l.Quantity, UnitPrice: l.UnitPrice})
	}
	return out
}

// FromMenuLines converts a reservation menu's lines to draft lines.
func FromMenuLines(lines []models.MenuLine) []Line {
	out := make([]Line, 0, len(lines))
	for _, l := range lines {
		out = append(out, Line{ProductID: l.ProductID, Quantity: l.Quantity, UnitPrice: l.UnitPrice})
	}
	return out
}
