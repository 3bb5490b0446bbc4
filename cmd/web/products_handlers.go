package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"karthikeshrobotics.in/web/internal/checkout"
	"karthikeshrobotics.in/web/internal/cms"
	mw "karthikeshrobotics.in/web/internal/middleware"
	"karthikeshrobotics.in/web/internal/notify"
	"karthikeshrobotics.in/web/internal/observability"
	"karthikeshrobotics.in/web/internal/seo"
)

const notifyTimeout = 5 * time.Second

// ProductsHandler renders the product grid.
func (s *site) ProductsHandler(w http.ResponseWriter, r *http.Request) {
	lang := mw.Lang(r)
	title := s.i18nOrDefault(lang, "products.title", "Our Products")
	desc := s.i18nOrDefault(lang, "products.description", "Autonomous mobile robots for education, research and industry.")
	vm := s.basePage(r, title, desc, nil)
	vm.Products = ProductsView{Lang: lang, Items: s.catalog.Products}
	s.renderPage(w, r, "products", vm)
}

// BumpyHandler renders the BUMPY product page with its build steps.
func (s *site) BumpyHandler(w http.ResponseWriter, r *http.Request) {
	lang := mw.Lang(r)
	product, ok := s.catalog.Product("bumpy")
	if !ok {
		s.notFound(w, r)
		return
	}
	page, err := s.content.GetPage(r.Context(), "bumpy", lang)
	if err != nil && !errors.Is(err, cms.ErrNotFound) {
		observability.FromContext(r.Context()).Warn("bumpy content unavailable", zap.Error(err))
	}
	vm := s.basePage(r, product.Name, product.Details, map[string]string{product.ID: product.Name})
	vm.Product = ProductPageView{Lang: lang, Product: product, Page: page}
	vm.SEO.OG.Image = s.assetURL(product.Image)
	vm.SEO.Twitter.Image = vm.SEO.OG.Image
	vm.SEO.AddJSONLD(seo.Product(product.Name, product.Details, vm.SEO.Canonical, vm.SEO.OG.Image, 0))
	s.renderPage(w, r, "bumpy", vm)
}

// CustomRobotHandler renders the custom robot page and its enquiry form.
func (s *site) CustomRobotHandler(w http.ResponseWriter, r *http.Request) {
	s.renderQuote(w, r, http.StatusOK, checkout.QuoteRequest{}, nil)
}

// CustomRobotQuoteHandler validates the enquiry, notifies the team and
// hands the shopper over to the messaging app with the message prefilled.
func (s *site) CustomRobotQuoteHandler(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxQuoteUpload)
	if err := r.ParseMultipartForm(maxQuoteUpload); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		mw.WriteError(w, r, http.StatusBadRequest, "invalid form")
		return
	}
	req := quoteRequestFromForm(r)
	quote, err := s.checkout.QuoteURL(req)
	var invalid checkout.ValidationError
	if errors.As(err, &invalid) {
		s.renderQuote(w, r, http.StatusBadRequest, req, invalid)
		return
	}
	if err != nil {
		observability.FromContext(r.Context()).Error("quote link failed", zap.Error(err))
		mw.WriteError(w, r, http.StatusInternalServerError, "quote unavailable")
		return
	}
	s.deliver(r, quoteNotification(req, quote.Reference))
	externalRedirect(w, r, quote.URL)
}

func (s *site) renderQuote(w http.ResponseWriter, r *http.Request, status int, form checkout.QuoteRequest, errs map[string]string) {
	lang := mw.Lang(r)
	product, ok := s.catalog.Product("customrobot")
	if !ok {
		s.notFound(w, r)
		return
	}
	vm := s.basePage(r, product.Name, product.Details, map[string]string{product.ID: product.Name})
	vm.Quote = QuoteView{
		Lang:      lang,
		CSRFToken: mw.CSRFToken(r),
		Product:   product,
		Form:      form,
		Errors:    errs,
	}
	vm.SEO.OG.Image = s.assetURL(product.Image)
	vm.SEO.Twitter.Image = vm.SEO.OG.Image
	s.renderPageStatus(w, r, status, "customrobot", vm)
}

// deliver sends a form notification. Failures are logged and never shown
// to the visitor.
func (s *site) deliver(r *http.Request, msg notify.Message) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(r.Context()), notifyTimeout)
	defer cancel()
	if err := s.notifier.Notify(ctx, msg); err != nil {
		observability.FromContext(r.Context()).Warn("notification failed",
			zap.String("subject", observability.Sanitize(msg.Subject, 120)),
			zap.Error(err),
		)
	}
}
