package models

import "github.com/shopspring/decimal"

// Cart is owned by the browser session. It is serialized into the session
// cookie as JSON and never persisted server-side; the database only ever sees
// it as part of a placed order.
type Cart struct {
	Lines []CartLine `json:"lines"`
}

// CartLine is one line item, uniquely keyed by (product id, selected size).
// The product fields are a snapshot refreshed on every reconciliation pass.
type CartLine struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Slug      string          `json:"slug"`
	Image     string          `json:"image"`
	Price     decimal.Decimal `json:"price"`
	Size      string          `json:"size"`
	Qty       int             `json:"qty"`
	Stock     int             `json:"stock"`
}

func (l CartLine) Key() string {
	return l.ProductID + "|" + l.Size
}

func (l CartLine) LineTotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Qty)))
}

func (c *Cart) TotalItems() int {
	total := 0
	for _, l := range c.Lines {
		total += l.Qty
	}
	return total
}

func (c *Cart) Subtotal() decimal.Decimal {
	subtotal := decimal.Zero
	for _, l := range c.Lines {
		subtotal = subtotal.Add(l.LineTotal())
	}
	return subtotal
}

// ProductIDs returns the distinct product ids in line order. The cart service
// uses the comma-joined form of this set to decide when reconciliation runs.
func (c *Cart) ProductIDs() []string {
	seen := make(map[string]bool, len(c.Lines))
	var ids []string
	for _, l := range c.Lines {
		if !seen[l.ProductID] {
			seen[l.ProductID] = true
			ids = append(ids, l.ProductID)
		}
	}
	return ids
}
