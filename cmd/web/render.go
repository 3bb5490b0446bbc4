package main

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"karthikeshrobotics.in/web/internal/format"
	handlersPkg "karthikeshrobotics.in/web/internal/handlers"
	"karthikeshrobotics.in/web/internal/i18n"
	mw "karthikeshrobotics.in/web/internal/middleware"
	"karthikeshrobotics.in/web/internal/nav"
	"karthikeshrobotics.in/web/internal/observability"
	"karthikeshrobotics.in/web/internal/seo"
)

// templateSet holds the shared templates (layouts, partials, fragments) and
// one clone per page so every page can define its own "content" block.
type templateSet struct {
	shared *template.Template
	pages  map[string]*template.Template
}

// views parses templates once, or on every request in dev mode.
type views struct {
	dir     string
	devMode bool
	funcs   template.FuncMap

	mu    sync.RWMutex
	cache *templateSet
}

func newViews(dir string, devMode bool, bundle *i18n.Bundle) (*views, error) {
	v := &views{dir: dir, devMode: devMode, funcs: templateFuncs(bundle)}
	if devMode {
		// surface syntax errors at start-up even when reparsing per request
		if _, err := v.parse(); err != nil {
			return nil, err
		}
		return v, nil
	}
	set, err := v.parse()
	if err != nil {
		return nil, err
	}
	v.cache = set
	return v, nil
}

func templateFuncs(bundle *i18n.Bundle) template.FuncMap {
	return template.FuncMap{
		"now": time.Now,
		"t": func(lang, key string) string {
			if bundle == nil {
				return key
			}
			return bundle.T(lang, key)
		},
		"tf": func(lang, key string, args ...any) string {
			if bundle == nil {
				return fmt.Sprintf(key, args...)
			}
			return bundle.Tf(lang, key, args...)
		},
		"rupees": format.Rupees,
		"price":  format.Price,
		"plural": format.Plural,
		"date":   format.Date,
		"jsonld": func(s string) template.JS { return template.JS(s) },
		"add":    func(a, b int) int { return a + b },
		"field": func(errs map[string]string, name string) string {
			return errs[name]
		},
		"href": func(path string, v url.Values) string {
			if len(v) == 0 {
				return path
			}
			return path + "?" + v.Encode()
		},
		"join": strings.Join,
		"dict": dict,
	}
}

// dict builds a map from alternating keys and values so partials can take
// several named arguments.
func dict(kv ...any) (map[string]any, error) {
	if len(kv)%2 != 0 {
		return nil, fmt.Errorf("dict: odd number of arguments")
	}
	m := make(map[string]any, len(kv)/2)
	for i := 0; i < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			return nil, fmt.Errorf("dict: key %v is not a string", kv[i])
		}
		m[key] = kv[i+1]
	}
	return m, nil
}

func (v *views) parse() (*templateSet, error) {
	var shared, pages []string
	if err := filepath.WalkDir(v.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".tmpl") {
			return nil
		}
		rel, _ := filepath.Rel(v.dir, path)
		if strings.HasPrefix(filepath.ToSlash(rel), "pages/") {
			pages = append(pages, path)
		} else {
			shared = append(shared, path)
		}
		return nil
	}); err != nil {
		return nil, err
	}
	if len(shared) == 0 || len(pages) == 0 {
		return nil, fmt.Errorf("no templates found under %s", v.dir)
	}
	root, err := template.New("_root").Funcs(v.funcs).ParseFiles(shared...)
	if err != nil {
		return nil, err
	}
	set := &templateSet{shared: root, pages: map[string]*template.Template{}}
	for _, p := range pages {
		clone, err := root.Clone()
		if err != nil {
			return nil, err
		}
		if _, err := clone.ParseFiles(p); err != nil {
			return nil, err
		}
		name := strings.TrimSuffix(filepath.Base(p), ".tmpl")
		set.pages[name] = clone
	}
	return set, nil
}

func (v *views) current() (*templateSet, error) {
	if v.devMode {
		return v.parse()
	}
	v.mu.RLock()
	defer v.mu.RUnlock()
	if v.cache == nil {
		return nil, fmt.Errorf("templates not initialized")
	}
	return v.cache, nil
}

// renderPage executes the base layout for page name with status 200.
func (s *site) renderPage(w http.ResponseWriter, r *http.Request, name string, vm handlersPkg.PageData) {
	s.renderPageStatus(w, r, http.StatusOK, name, vm)
}

func (s *site) renderPageStatus(w http.ResponseWriter, r *http.Request, status int, name string, vm handlersPkg.PageData) {
	set, err := s.views.current()
	if err != nil {
		s.serverError(w, r, fmt.Errorf("template parse: %w", err))
		return
	}
	t, ok := set.pages[name]
	if !ok {
		s.serverError(w, r, fmt.Errorf("unknown page template %q", name))
		return
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "base", vm); err != nil {
		s.serverError(w, r, fmt.Errorf("render %s: %w", name, err))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// renderTemplate executes a shared fragment template.
func (s *site) renderTemplate(w http.ResponseWriter, r *http.Request, name string, data any) {
	s.renderTemplateStatus(w, r, http.StatusOK, name, data)
}

func (s *site) renderTemplateStatus(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	set, err := s.views.current()
	if err != nil {
		s.serverError(w, r, fmt.Errorf("template parse: %w", err))
		return
	}
	var buf bytes.Buffer
	if err := set.shared.ExecuteTemplate(&buf, name, data); err != nil {
		s.serverError(w, r, fmt.Errorf("render %s: %w", name, err))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (s *site) serverError(w http.ResponseWriter, r *http.Request, err error) {
	observability.FromContext(r.Context()).Error("render failed", zap.Error(err))
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

// i18nOrDefault returns the translation of key or def when the key is missing.
func (s *site) i18nOrDefault(lang, key, def string) string {
	if s.bundle == nil {
		return def
	}
	if v := s.bundle.T(lang, key); v != key {
		return v
	}
	return def
}

// absoluteURL resolves the request path against the configured public base URL.
func (s *site) absoluteURL(r *http.Request) string {
	return s.cfg.Site.BaseURL + r.URL.EscapedPath()
}

func (s *site) assetURL(p string) string {
	if p == "" || strings.HasPrefix(p, "http://") || strings.HasPrefix(p, "https://") {
		return p
	}
	return s.cfg.Site.BaseURL + p
}

// basePage builds the layout fields shared by every page.
func (s *site) basePage(r *http.Request, title, description string, crumbLabels map[string]string) handlersPkg.PageData {
	lang := mw.Lang(r)
	store := s.cartFor(r)
	vm := handlersPkg.PageData{
		Title:       title,
		Lang:        lang,
		Path:        r.URL.Path,
		Nav:         nav.Build(r.URL.Path),
		Breadcrumbs: nav.Breadcrumbs(r.URL.Path, crumbLabels),
		Analytics:   handlersPkg.Analytics{GA4MeasurementID: s.cfg.Site.GA4ID, Debug: s.cfg.Server.DevMode},
		Shell: handlersPkg.Shell{
			SiteName:      s.cfg.Site.Name,
			SplashDelayMS: s.cfg.Timers.SplashDelay.Milliseconds(),
			PopupDelayMS:  s.cfg.Timers.PopupDelay.Milliseconds(),
			CartCount:     store.Count(),
			CSRFToken:     mw.CSRFToken(r),
			WhatsAppURL:   s.checkout.ChatURL(),
			CommunityURL:  s.checkout.CommunityURL(),
			Year:          time.Now().Year(),
		},
	}
	if w, ok := s.popupWorkshop(); ok {
		vm.Shell.ShowPopup = true
		vm.Popup = w
	}
	vm.SEO = seo.NewMeta(s.cfg.Site.Name, title, description, s.absoluteURL(r), s.assetURL("/assets/og-default.png"))
	if len(vm.Breadcrumbs) > 1 {
		items := make([]seo.BreadcrumbItem, 0, len(vm.Breadcrumbs))
		for _, c := range vm.Breadcrumbs {
			name := c.Label
			if c.LabelKey != "" {
				name = s.i18nOrDefault(lang, c.LabelKey, c.Label)
			}
			items = append(items, seo.BreadcrumbItem{Name: name, Item: s.cfg.Site.BaseURL + c.Href})
		}
		vm.SEO.AddJSONLD(seo.BreadcrumbList(items))
	}
	return vm
}

// NotFoundView is the payload of the not-found page.
type NotFoundView struct {
	Path      string
	Heading   string
	BackHref  string
	BackLabel string
}

// notFound renders the generic not-found view with status 404.
func (s *site) notFound(w http.ResponseWriter, r *http.Request) {
	lang := mw.Lang(r)
	s.renderNotFound(w, r, NotFoundView{
		Heading:   s.i18nOrDefault(lang, "notfound.title", "Page not found"),
		BackHref:  "/",
		BackLabel: s.i18nOrDefault(lang, "notfound.back", "Back to Home"),
	})
}

func (s *site) renderNotFound(w http.ResponseWriter, r *http.Request, view NotFoundView) {
	lang := mw.Lang(r)
	view.Path = r.URL.Path
	vm := s.basePage(r, view.Heading, s.i18nOrDefault(lang, "notfound.description", "The page you are looking for does not exist."), nil)
	vm.SEO.Robots = "noindex"
	vm.NotFound = view
	s.renderPageStatus(w, r, http.StatusNotFound, "notfound", vm)
}

// NotFoundHandler answers unmatched routes.
func (s *site) NotFoundHandler(w http.ResponseWriter, r *http.Request) {
	s.notFound(w, r)
}
