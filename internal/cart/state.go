package cart

import (
	"slices"

	"github.com/shopspring/decimal"
)

// Item is what a product card hands to the cart. Price is the unit price
// captured at add time and is never refreshed from the catalog.
type Item struct {
	ProductID int64  `json:"productId"`
	Name      string `json:"name"`
	Price     string `json:"price"`
	ImageURL  string `json:"imageUrl"`
}

type LineItem struct {
	Item
	Quantity int `json:"quantity"`
}

// Subtotal returns price × quantity. An unparsable price counts as zero.
func (l LineItem) Subtotal() decimal.Decimal {
	price, err := decimal.NewFromString(l.Price)
	if err != nil {
		return decimal.Zero
	}
	return price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// State is the whole cart as observers see it. Items keeps first-added order
// and holds at most one line per product.
type State struct {
	Items  []LineItem
	IsOpen bool
}

func (s State) clone() State {
	return State{Items: slices.Clone(s.Items), IsOpen: s.IsOpen}
}

// Action is a pure state transition. Reduce must not mutate its input.
type Action interface {
	Reduce(State) State
}

type Add struct {
	Item Item
}

func (a Add) Reduce(s State) State {
	items := slices.Clone(s.Items)
	if i := indexOf(items, a.Item.ProductID); i >= 0 {
		items[i].Quantity++
	} else {
		items = append(items, LineItem{Item: a.Item, Quantity: 1})
	}
	return State{Items: items, IsOpen: s.IsOpen}
}

type Remove struct {
	ProductID int64
}

func (a Remove) Reduce(s State) State {
	items := slices.DeleteFunc(slices.Clone(s.Items), func(l LineItem) bool {
		return l.ProductID == a.ProductID
	})
	return State{Items: items, IsOpen: s.IsOpen}
}

// SetQuantity sets an exact quantity; zero or below removes the line.
type SetQuantity struct {
	ProductID int64
	Quantity  int
}

func (a SetQuantity) Reduce(s State) State {
	if a.Quantity <= 0 {
		return Remove{ProductID: a.ProductID}.Reduce(s)
	}
	items := slices.Clone(s.Items)
	if i := indexOf(items, a.ProductID); i >= 0 {
		items[i].Quantity = a.Quantity
	}
	return State{Items: items, IsOpen: s.IsOpen}
}

type Clear struct{}

func (Clear) Reduce(s State) State {
	return State{Items: []LineItem{}, IsOpen: s.IsOpen}
}

type SetOpen struct {
	Open bool
}

func (a SetOpen) Reduce(s State) State {
	return State{Items: s.Items, IsOpen: a.Open}
}

func Total(items []LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, l := range items {
		total = total.Add(l.Subtotal())
	}
	return total
}

func Count(items []LineItem) int {
	count := 0
	for _, l := range items {
		count += l.Quantity
	}
	return count
}

func indexOf(items []LineItem, productID int64) int {
	return slices.IndexFunc(items, func(l LineItem) bool {
		return l.ProductID == productID
	})
}

// normalize drops lines with a non-positive quantity and merges duplicate
// products into the first occurrence.
func normalize(items []LineItem) []LineItem {
	out := make([]LineItem, 0, len(items))
	for _, l := range items {
		if l.Quantity < 1 {
			continue
		}
		if i := indexOf(out, l.ProductID); i >= 0 {
			out[i].Quantity += l.Quantity
			continue
		}
		out = append(out, l)
	}
	return out
}
