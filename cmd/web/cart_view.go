package main

import (
	"karthikeshrobotics.in/web/internal/cart"
	"karthikeshrobotics.in/web/internal/checkout"
)

// CartView aggregates all data needed for the cart page and fragments.
type CartView struct {
	Lang      string
	CSRFToken string
	Items     []CartLine
	Empty     bool
	Count     int
	Total     int64
	// Message is the order text the checkout redirect will carry.
	Message string
}

// CartLine represents a line item in the cart table.
type CartLine struct {
	ID        string
	Name      string
	Image     string
	Quantity  int
	UnitPrice int64
	LineTotal int64
}

// Dec and Inc are the quantities the minus/plus buttons submit.
func (l CartLine) Dec() int {
	if l.Quantity <= 0 {
		return 0
	}
	return l.Quantity - 1
}

func (l CartLine) Inc() int { return l.Quantity + 1 }

func buildCartView(lang, csrf string, store *cart.Store) CartView {
	items := store.Items()
	view := CartView{
		Lang:      lang,
		CSRFToken: csrf,
		Items:     make([]CartLine, 0, len(items)),
		Empty:     len(items) == 0,
		Total:     store.Total(),
	}
	for _, it := range items {
		view.Count += it.Quantity
		view.Items = append(view.Items, CartLine{
			ID:        it.ID,
			Name:      it.Name,
			Image:     it.Image,
			Quantity:  it.Quantity,
			UnitPrice: it.Price,
			LineTotal: it.LineTotal(),
		})
	}
	if !view.Empty {
		view.Message = checkout.CartMessage(items)
	}
	return view
}
