package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fjod/frocone/internal/cart"
	"github.com/fjod/frocone/internal/domain"
	"github.com/shopspring/decimal"
)

func rupees(d decimal.Decimal) string {
	return "₹" + d.StringFixed(2)
}

func price(s string) string {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return s
	}
	return rupees(d)
}

// RenderDrawer draws the cart drawer. A closed drawer renders nothing.
func RenderDrawer(w io.Writer, st cart.State) {
	if !st.IsOpen {
		return
	}
	fmt.Fprintf(w, "Your Cart (%d)\n", cart.Count(st.Items))
	if len(st.Items) == 0 {
		fmt.Fprintln(w, "  Your cart is empty.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, l := range st.Items {
		fmt.Fprintf(tw, "  #%d\t%s\t%s x %d\t%s\n", l.ProductID, l.Name, price(l.Price), l.Quantity, rupees(l.Subtotal()))
	}
	tw.Flush()
	fmt.Fprintf(w, "  Total: %s\n", rupees(cart.Total(st.Items)))
}

func renderMenu(w io.Writer, products []*domain.Product) {
	if len(products) == 0 {
		fmt.Fprintln(w, "No products found.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tPRICE\t")
	for _, p := range products {
		tag := ""
		if p.Badge != nil {
			tag = *p.Badge
		} else if p.IsSpecial {
			tag = "Special"
		} else if p.IsTrending {
			tag = "Trending"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", p.ID, p.Name, p.Category, price(p.Price), tag)
	}
	tw.Flush()
}
