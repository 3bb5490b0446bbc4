package middleware

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"karthikeshrobotics.in/web/internal/i18n"
)

func chain(h http.Handler, mws ...func(http.Handler) http.Handler) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

func cookieNamed(rr *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rr.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestSessionPersistsCartID(t *testing.T) {
	sessions := NewSessions("test-secret", false, zap.NewNop())
	var seen string
	h := sessions.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s := GetSession(r)
		seen = s.EnsureCartID(func() string { return "cart-1" })
		_, _ = w.Write([]byte("ok"))
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, "cart-1", seen)
	cookie := cookieNamed(rr, sessionCookieName)
	require.NotNil(t, cookie)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	rr = httptest.NewRecorder()
	h2 := sessions.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetSession(r).CartID
	}))
	h2.ServeHTTP(rr, req)
	require.Equal(t, "cart-1", seen)
	require.Nil(t, cookieNamed(rr, sessionCookieName), "unchanged session is not rewritten")
}

func TestSessionRejectsTamperedCookie(t *testing.T) {
	signer := NewSessions("one", false, nil)
	other := NewSessions("two", false, nil)

	rr := httptest.NewRecorder()
	signer.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		GetSession(r).CartID = "mine"
		GetSession(r).MarkDirty()
	})).ServeHTTP(rr, httptest.NewRequest(http.MethodHead, "/", nil))
	cookie := cookieNamed(rr, sessionCookieName)
	require.NotNil(t, cookie)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	var cartID string
	other.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cartID = GetSession(r).CartID
	})).ServeHTTP(httptest.NewRecorder(), req)
	require.Empty(t, cartID)
}

func TestCSRFAcceptsFormFieldAndHeader(t *testing.T) {
	sessions := NewSessions("secret", false, nil)
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNoContent) })
	h := chain(ok, sessions.Middleware, HTMX, CSRF(false))

	// first GET issues session + csrf cookies
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	sess := cookieNamed(rr, sessionCookieName)
	csrf := cookieNamed(rr, csrfCookieName)
	require.NotNil(t, sess)
	require.NotNil(t, csrf)

	form := url.Values{CSRFField: {csrf.Value}}
	req := httptest.NewRequest(http.MethodPost, "/cart/clear", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(sess)
	req.AddCookie(csrf)
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	require.Equal(t, http.StatusNoContent, rr.Code)

	req = httptest.NewRequest(http.MethodPost, "/cart/clear", nil)
	req.Header.Set(CSRFHeader, csrf.Value)
	req.Header.Set("HX-Request", "true")
	req.AddCookie(sess)
	req.AddCookie(csrf)
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	require.Equal(t, http.StatusNoContent, rr.Code)

	req = httptest.NewRequest(http.MethodPost, "/cart/clear", nil)
	req.Header.Set("HX-Request", "true")
	req.AddCookie(sess)
	req.AddCookie(csrf)
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	require.Equal(t, http.StatusForbidden, rr.Code)
	require.Contains(t, rr.Header().Get("Content-Type"), "application/json")
}

func TestCSRFCapsMultipartBody(t *testing.T) {
	sessions := NewSessions("secret", false, nil)
	called := false
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		require.Equal(t, "Arun", r.PostFormValue("name"))
		w.WriteHeader(http.StatusNoContent)
	})
	h := chain(ok, sessions.Middleware, HTMX, CSRF(false))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	sess := cookieNamed(rr, sessionCookieName)
	csrf := cookieNamed(rr, csrfCookieName)

	upload := func(size int) *http.Request {
		var body bytes.Buffer
		mp := multipart.NewWriter(&body)
		require.NoError(t, mp.WriteField(CSRFField, csrf.Value))
		require.NoError(t, mp.WriteField("name", "Arun"))
		part, err := mp.CreateFormFile("referencePhoto", "robot.jpg")
		require.NoError(t, err)
		_, err = part.Write(bytes.Repeat([]byte{0xff}, size))
		require.NoError(t, err)
		require.NoError(t, mp.Close())
		req := httptest.NewRequest(http.MethodPost, "/products/customrobot/quote", &body)
		req.Header.Set("Content-Type", mp.FormDataContentType())
		req.AddCookie(sess)
		req.AddCookie(csrf)
		return req
	}

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, upload(1<<10))
	require.Equal(t, http.StatusNoContent, rr.Code)
	require.True(t, called)

	called = false
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, upload(MaxFormBytes+1<<20))
	require.Equal(t, http.StatusBadRequest, rr.Code)
	require.False(t, called)
}

func TestHTMXIgnoresBoostedNavigation(t *testing.T) {
	var isHTMX bool
	h := HTMX(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		isHTMX = IsHTMX(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/achievements", nil)
	req.Header.Set("HX-Request", "true")
	h.ServeHTTP(httptest.NewRecorder(), req)
	require.True(t, isHTMX)

	req.Header.Set("HX-Boosted", "true")
	h.ServeHTTP(httptest.NewRecorder(), req)
	require.False(t, isHTMX)
}

func TestLocaleResolution(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "en.json"), []byte(`{}`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ta.json"), []byte(`{}`), 0o644))
	bundle, err := i18n.Load(dir, "en", []string{"ta"})
	require.NoError(t, err)

	sessions := NewSessions("secret", false, nil)
	var lang string
	h := chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lang = Lang(r)
	}), sessions.Middleware, Locale(bundle))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Language", "ta-IN,ta;q=0.9,en;q=0.5")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	require.Equal(t, "ta", lang)
	require.Equal(t, "ta", rr.Header().Get("Content-Language"))

	req = httptest.NewRequest(http.MethodGet, "/?hl=xx", nil)
	h.ServeHTTP(httptest.NewRecorder(), req)
	require.Equal(t, "en", lang)
}

func TestLoggerRecordsStatus(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	h := chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}), Logger(zap.New(core)))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/missing", nil))
	entries := logs.All()
	require.Len(t, entries, 1)
	require.Equal(t, "request completed", entries[0].Message)
	require.EqualValues(t, http.StatusNotFound, entries[0].ContextMap()["status"])
	require.Equal(t, "/missing", entries[0].ContextMap()["path"])
}

func TestRecovererAnswers500(t *testing.T) {
	h := Recoverer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestAssetsWithCacheETag(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "css"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "css", "app.css"), []byte("body{}"), 0o644))
	h := AssetsWithCache("/assets/", dir)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/assets/css/app.css", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	etag := rr.Header().Get("ETag")
	require.NotEmpty(t, etag)

	req := httptest.NewRequest(http.MethodGet, "/assets/css/app.css", nil)
	req.Header.Set("If-None-Match", etag)
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	require.Equal(t, http.StatusNotModified, rr.Code)
}
