package middleware

import (
	"context"
	"net/http"
)

// HTMX marks requests coming from htmx so handlers can answer with fragments.
// Boosted navigations still receive full pages.
func HTMX(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		info := HTMXInfo{
			Target:  r.Header.Get("HX-Target"),
			Trigger: r.Header.Get("HX-Trigger"),
			Boosted: r.Header.Get("HX-Boosted") == "true",
		}
		is := r.Header.Get("HX-Request") == "true" && !info.Boosted
		ctx := WithHTMX(r.Context(), is)
		ctx = context.WithValue(ctx, ctxKeyHTMXInfo, info)
		w.Header().Add("Vary", "HX-Request")
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
