package middleware

import (
	"context"
	"net/http"
	"strings"

	"karthikeshrobotics.in/web/internal/i18n"
)

const defaultLang = "en"

// Locale resolves the preferred language and stores it in the session and
// the `hl` cookie. Unsupported languages resolve to the bundle fallback.
func Locale(bundle *i18n.Bundle) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), ctxKeyLocaleFB, bundle.Fallback())
			r = r.WithContext(ctx)
			s := GetSession(r)
			if q := strings.TrimSpace(r.URL.Query().Get("hl")); q != "" {
				lang := bundle.Resolve(q)
				if s.Locale != lang {
					s.Locale = lang
					s.MarkDirty()
				}
				http.SetCookie(w, &http.Cookie{Name: "hl", Value: lang, Path: "/", SameSite: http.SameSiteLaxMode})
			} else if s.Locale == "" {
				if c, err := r.Cookie("hl"); err == nil && c.Value != "" {
					s.Locale = bundle.Resolve(c.Value)
				} else {
					s.Locale = bundle.Resolve(r.Header.Get("Accept-Language"))
				}
				s.MarkDirty()
			}
			if s.Locale != "" {
				w.Header().Set("Content-Language", s.Locale)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Lang returns the current language from the session, the bundle fallback,
// or "en".
func Lang(r *http.Request) string {
	if s := GetSession(r); s != nil && s.Locale != "" {
		return s.Locale
	}
	if v := r.Context().Value(ctxKeyLocaleFB); v != nil {
		if fb, ok := v.(string); ok && fb != "" {
			return fb
		}
	}
	return defaultLang
}
