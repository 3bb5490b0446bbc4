package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"karthikeshrobotics.in/web/internal/cart"
	"karthikeshrobotics.in/web/internal/checkout"
	mw "karthikeshrobotics.in/web/internal/middleware"
	"karthikeshrobotics.in/web/internal/observability"
)

// cartFor returns the shopper's cart without creating one. Visitors that
// never added anything see an empty, unregistered store.
func (s *site) cartFor(r *http.Request) *cart.Store {
	id := mw.GetSession(r).CartID
	if id == "" {
		return cart.NewStore()
	}
	if store, ok := s.carts.Lookup(id); ok {
		return store
	}
	return cart.NewStore()
}

// cartForWrite returns the shopper's cart, assigning a cart id to the
// session on first use.
func (s *site) cartForWrite(r *http.Request) *cart.Store {
	id := mw.GetSession(r).EnsureCartID(cart.NewID)
	return s.carts.Get(id)
}

// CartHandler renders the cart page.
func (s *site) CartHandler(w http.ResponseWriter, r *http.Request) {
	lang := mw.Lang(r)
	title := s.i18nOrDefault(lang, "cart.title", "Shopping Cart")
	desc := s.i18nOrDefault(lang, "cart.description", "Review your courses and check out over WhatsApp.")
	vm := s.basePage(r, title, desc, nil)
	vm.SEO.Robots = "noindex"
	vm.Cart = buildCartView(lang, mw.CSRFToken(r), s.cartFor(r))
	s.renderPage(w, r, "cart", vm)
}

// CartAddHandler adds one unit of a course to the cart. Only priced,
// available courses are purchasable.
func (s *site) CartAddHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		mw.WriteError(w, r, http.StatusBadRequest, "invalid form")
		return
	}
	s.addCourse(w, r, strings.TrimSpace(r.PostFormValue("id")), safeRedirect(r.PostFormValue("redirect"), "/cart"))
}

func (s *site) addCourse(w http.ResponseWriter, r *http.Request, id, redirect string) {
	course, ok := s.catalog.Course(id)
	if !ok {
		mw.WriteError(w, r, http.StatusNotFound, "course not found")
		return
	}
	if course.ComingSoon {
		mw.WriteError(w, r, http.StatusConflict, "course is not open for enrollment yet")
		return
	}
	store := s.cartForWrite(r)
	store.Add(cart.Item{ID: course.ID, Name: course.Title, Price: course.Price, Image: course.Image})

	if mw.IsHTMX(r.Context()) {
		setCartTrigger(w, store.Count())
		lang := mw.Lang(r)
		s.renderTemplate(w, r, "frag_cart_added", map[string]any{
			"Lang":      lang,
			"CartCount": store.Count(),
		})
		return
	}
	http.Redirect(w, r, redirect, http.StatusSeeOther)
}

// CartQuantityHandler sets a line's quantity; zero removes the line.
func (s *site) CartQuantityHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		mw.WriteError(w, r, http.StatusBadRequest, "invalid form")
		return
	}
	n, err := strconv.Atoi(strings.TrimSpace(r.PostFormValue("quantity")))
	if err != nil {
		mw.WriteError(w, r, http.StatusBadRequest, "invalid quantity")
		return
	}
	store := s.cartForWrite(r)
	store.UpdateQuantity(chi.URLParam(r, "id"), n)
	s.cartChanged(w, r, store)
}

// CartRemoveHandler deletes a line regardless of quantity.
func (s *site) CartRemoveHandler(w http.ResponseWriter, r *http.Request) {
	store := s.cartForWrite(r)
	store.Remove(chi.URLParam(r, "id"))
	s.cartChanged(w, r, store)
}

// CartClearHandler empties the cart.
func (s *site) CartClearHandler(w http.ResponseWriter, r *http.Request) {
	store := s.cartForWrite(r)
	store.Clear()
	s.cartChanged(w, r, store)
}

// CartCheckoutHandler redirects to the messaging app with the order text.
// The cart is left as is: no confirmation ever comes back.
func (s *site) CartCheckoutHandler(w http.ResponseWriter, r *http.Request) {
	store := s.cartFor(r)
	target, err := s.checkout.CartURL(store.Items())
	if errors.Is(err, checkout.ErrEmptyCart) {
		http.Redirect(w, r, "/cart", http.StatusSeeOther)
		return
	}
	if err != nil {
		observability.FromContext(r.Context()).Error("checkout link failed", zap.Error(err))
		mw.WriteError(w, r, http.StatusInternalServerError, "checkout unavailable")
		return
	}
	observability.FromContext(r.Context()).Info("checkout redirect",
		zap.Int("lines", store.Len()),
		zap.Int64("total", store.Total()),
	)
	externalRedirect(w, r, target)
}

// cartChanged answers a cart mutation: htmx callers get the refreshed cart
// body, plain form posts are sent back to the cart page.
func (s *site) cartChanged(w http.ResponseWriter, r *http.Request, store *cart.Store) {
	if !mw.IsHTMX(r.Context()) {
		http.Redirect(w, r, "/cart", http.StatusSeeOther)
		return
	}
	setCartTrigger(w, store.Count())
	s.renderTemplate(w, r, "frag_cart_body", buildCartView(mw.Lang(r), mw.CSRFToken(r), store))
}

func setCartTrigger(w http.ResponseWriter, count int) {
	payload := map[string]any{"cart:updated": map[string]int{"count": count}}
	if raw, err := json.Marshal(payload); err == nil {
		w.Header().Set("HX-Trigger", string(raw))
	}
}

// externalRedirect leaves the site: 303 for plain posts, HX-Redirect for htmx.
func externalRedirect(w http.ResponseWriter, r *http.Request, target string) {
	if mw.IsHTMX(r.Context()) {
		w.Header().Set("HX-Redirect", target)
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// safeRedirect only accepts same-site absolute paths.
func safeRedirect(target, fallback string) string {
	target = strings.TrimSpace(target)
	if target == "" || !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") || strings.Contains(target, "\\") {
		return fallback
	}
	return target
}
