package main

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"karthikeshrobotics.in/web/internal/config"
	mw "karthikeshrobotics.in/web/internal/middleware"
	"karthikeshrobotics.in/web/internal/notify"
)

type recordingNotifier struct {
	mu   sync.Mutex
	msgs []notify.Message
}

func (n *recordingNotifier) Notify(_ context.Context, msg notify.Message) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.msgs = append(n.msgs, msg)
	return nil
}

func (n *recordingNotifier) messages() []notify.Message {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]notify.Message(nil), n.msgs...)
}

// testBrowser drives the router in-process and keeps cookies between calls.
type testBrowser struct {
	t        *testing.T
	site     *site
	handler  http.Handler
	cookies  map[string]*http.Cookie
	notifier *recordingNotifier
}

func testConfig(t *testing.T) config.Config {
	t.Helper()
	cfg, err := config.Load(
		config.WithoutSystemEnv(),
		config.WithEnvFiles(),
		config.WithEnvMap(map[string]string{
			"KKR_WEB_TEMPLATES_DIR":  "../../templates",
			"KKR_WEB_LOCALES_DIR":    "../../locales",
			"KKR_WEB_CONTENT_DIR":    "../../content",
			"KKR_WEB_PUBLIC_DIR":     "../../public",
			"KKR_WEB_DATA_DIR":       t.TempDir(),
			"KKR_WEB_SESSION_SECRET": "test-session-secret",
		}),
	)
	require.NoError(t, err)
	return cfg
}

func newTestBrowser(t *testing.T) *testBrowser {
	t.Helper()
	s, err := newSite(testConfig(t), zap.NewNop())
	require.NoError(t, err)
	rec := &recordingNotifier{}
	s.notifier = rec
	return &testBrowser{
		t:        t,
		site:     s,
		handler:  s.routes(),
		cookies:  map[string]*http.Cookie{},
		notifier: rec,
	}
}

func (b *testBrowser) do(req *http.Request) *httptest.ResponseRecorder {
	b.t.Helper()
	for _, c := range b.cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	b.handler.ServeHTTP(rec, req)
	for _, c := range rec.Result().Cookies() {
		b.cookies[c.Name] = c
	}
	return rec
}

func (b *testBrowser) get(path string) *httptest.ResponseRecorder {
	return b.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (b *testBrowser) htmxGet(path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("HX-Request", "true")
	return b.do(req)
}

// csrf returns the token a page would have embedded, visiting the home page
// first when no session exists yet.
func (b *testBrowser) csrf() string {
	b.t.Helper()
	if c, ok := b.cookies["csrf_token"]; ok {
		return c.Value
	}
	rec := b.get("/healthz")
	require.Equal(b.t, http.StatusOK, rec.Code)
	c, ok := b.cookies["csrf_token"]
	require.True(b.t, ok, "csrf cookie not issued")
	return c.Value
}

func (b *testBrowser) postRequest(path string, form url.Values) *http.Request {
	b.t.Helper()
	if form == nil {
		form = url.Values{}
	}
	form.Set("_csrf", b.csrf())
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func (b *testBrowser) post(path string, form url.Values) *httptest.ResponseRecorder {
	return b.do(b.postRequest(path, form))
}

func (b *testBrowser) htmxPost(path string, form url.Values) *httptest.ResponseRecorder {
	req := b.postRequest(path, form)
	req.Header.Set("HX-Request", "true")
	return b.do(req)
}

func parseDoc(t *testing.T, rec *httptest.ResponseRecorder) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	return doc
}

func TestHealthz(t *testing.T) {
	b := newTestBrowser(t)
	rec := b.get("/healthz")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "ok", rec.Body.String())
}

func TestHomeRendersShell(t *testing.T) {
	b := newTestBrowser(t)
	rec := b.get("/")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Header().Get("Content-Type"), "text/html")

	doc := parseDoc(t, rec)
	body := doc.Find("body")
	require.Equal(t, "2000", body.AttrOr("data-splash-ms", ""))
	require.Equal(t, "3000", body.AttrOr("data-popup-ms", ""))
	require.Equal(t, 1, doc.Find("#splash").Length())
	require.Equal(t, "0", doc.Find("#cart-count").AttrOr("data-count", ""))
	require.Equal(t, 1, doc.Find("#workshop-popup").Length())
	require.Contains(t, doc.Find("title").Text(), "Karthikesh Robotics")
	require.Positive(t, doc.Find(`script[type="application/ld+json"]`).Length())
}

func TestSearchTextIsEscaped(t *testing.T) {
	b := newTestBrowser(t)
	rec := b.get("/achievements?q=" + url.QueryEscape("<script>alert(1)</script>"))
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotContains(t, rec.Body.String(), "<script>alert(1)</script>")
}

func TestUnknownRoutesRenderNotFound(t *testing.T) {
	b := newTestBrowser(t)
	for _, path := range []string{"/does-not-exist", "/courses/unknown", "/workshop/unknown"} {
		rec := b.get(path)
		require.Equal(t, http.StatusNotFound, rec.Code, path)
		doc := parseDoc(t, rec)
		require.Equal(t, "noindex", doc.Find(`meta[name="robots"]`).AttrOr("content", ""), path)
	}

	rec := b.get("/courses/unknown")
	require.Contains(t, rec.Body.String(), "Course not found")
	require.Contains(t, rec.Body.String(), "Back to Courses")

	rec = b.get("/workshop/unknown")
	require.Contains(t, rec.Body.String(), "Workshop not found")
}

func TestContentPages(t *testing.T) {
	b := newTestBrowser(t)

	rec := b.get("/about")
	require.Equal(t, http.StatusOK, rec.Code)
	doc := parseDoc(t, rec)
	require.Contains(t, doc.Find("h1").First().Text(), "About Karthikesh Robotics")
	require.Contains(t, rec.Body.String(), "Mission")

	for _, path := range []string{"/services", "/careers"} {
		require.Equal(t, http.StatusOK, b.get(path).Code, path)
	}
}

func TestCartLifecycle(t *testing.T) {
	b := newTestBrowser(t)

	rec := b.get("/cart")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 1, parseDoc(t, rec).Find(`[data-empty="cart"]`).Length())

	rec = b.post("/cart/items", url.Values{"id": {"ros2-beginner"}})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/cart", rec.Header().Get("Location"))

	rec = b.post("/cart/items", url.Values{"id": {"ros2-beginner"}})
	require.Equal(t, http.StatusSeeOther, rec.Code)

	doc := parseDoc(t, b.get("/cart"))
	line := doc.Find(`[data-item="ros2-beginner"]`)
	require.Equal(t, 1, line.Length())
	require.Equal(t, "2", line.AttrOr("data-quantity", ""))
	require.Equal(t, "5998", doc.Find(".cart-total").AttrOr("data-total", ""))
	require.Equal(t, "2", doc.Find("#cart-count").AttrOr("data-count", ""))

	rec = b.htmxPost("/cart/items/ros2-beginner/quantity", url.Values{"quantity": {"1"}})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Header().Get("HX-Trigger"), `"cart:updated":{"count":1}`)
	frag := parseDoc(t, rec)
	require.Equal(t, "1", frag.Find(`[data-item="ros2-beginner"]`).AttrOr("data-quantity", ""))
	require.Equal(t, "true", frag.Find("#cart-count").AttrOr("hx-swap-oob", ""))

	rec = b.htmxPost("/cart/items/ros2-beginner/quantity", url.Values{"quantity": {"0"}})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 1, parseDoc(t, rec).Find(`[data-empty="cart"]`).Length())
}

func TestCartRemoveAndClear(t *testing.T) {
	b := newTestBrowser(t)
	b.post("/cart/items", url.Values{"id": {"ros2-beginner"}})

	rec := b.post("/cart/items/ros2-beginner/remove", nil)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, 1, parseDoc(t, b.get("/cart")).Find(`[data-empty="cart"]`).Length())

	b.post("/cart/items", url.Values{"id": {"ros2-beginner"}})
	rec = b.htmxPost("/cart/clear", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 1, parseDoc(t, rec).Find(`[data-empty="cart"]`).Length())
	require.Equal(t, "0", parseDoc(t, rec).Find("#cart-count").AttrOr("data-count", ""))
}

func TestCartRejectsBadInput(t *testing.T) {
	b := newTestBrowser(t)

	rec := b.post("/cart/items", url.Values{"id": {"no-such-course"}})
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = b.post("/cart/items", url.Values{"id": {"advanced-robotics"}})
	require.Equal(t, http.StatusConflict, rec.Code)

	rec = b.post("/cart/items/ros2-beginner/quantity", url.Values{"quantity": {"many"}})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCartAddRequiresCSRF(t *testing.T) {
	b := newTestBrowser(t)
	b.csrf()

	req := httptest.NewRequest(http.MethodPost, "/cart/items", strings.NewReader("id=ros2-beginner"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := b.do(req)
	require.Equal(t, http.StatusForbidden, rec.Code)

	require.Equal(t, 1, parseDoc(t, b.get("/cart")).Find(`[data-empty="cart"]`).Length())
}

func TestCheckoutRedirectsToMessagingApp(t *testing.T) {
	b := newTestBrowser(t)

	rec := b.post("/cart/checkout", nil)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/cart", rec.Header().Get("Location"))

	b.post("/cart/items", url.Values{"id": {"ros2-beginner"}})
	rec = b.post("/cart/checkout", nil)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	loc := rec.Header().Get("Location")
	require.True(t, strings.HasPrefix(loc, "https://wa.me/918608354107?text="), loc)
	require.Contains(t, loc, "Hi%20team%20KKR%20I%20need%20ROS2%20for%20Beginners%20(1)%20to%20buy")

	// no confirmation ever comes back, so the cart stays as it was
	doc := parseDoc(t, b.get("/cart"))
	require.Equal(t, 1, doc.Find(`[data-item="ros2-beginner"]`).Length())

	rec = b.htmxPost("/cart/checkout", nil)
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Equal(t, loc, rec.Header().Get("HX-Redirect"))
}

func TestCoursesListAndEnroll(t *testing.T) {
	b := newTestBrowser(t)

	doc := parseDoc(t, b.get("/courses"))
	require.Equal(t, 1, doc.Find(`[data-course="ros2-beginner"]`).Length())
	require.Equal(t, 1, doc.Find(`[data-course="advanced-robotics"][data-coming-soon]`).Length())

	rec := b.get("/courses?category=Beginner")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 0, parseDoc(t, rec).Find(`[data-course="advanced-robotics"]`).Length())

	rec = b.get("/courses/ros2-beginner")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "ROS2 for Beginners")

	rec = b.post("/courses/ros2-beginner/enroll", nil)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/courses/ros2-beginner?added=1", rec.Header().Get("Location"))

	rec = b.htmxPost("/courses/ros2-beginner/enroll", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "2", parseDoc(t, rec).Find("#cart-count").AttrOr("data-count", ""))

	rec = b.post("/courses/advanced-robotics/enroll", nil)
	require.Equal(t, http.StatusConflict, rec.Code)
}

func TestAchievementsFilteringAndPaging(t *testing.T) {
	b := newTestBrowser(t)
	total := len(b.site.catalog.Achievements)
	pageSize := b.site.cfg.Site.PageSize

	doc := parseDoc(t, b.get("/achievements"))
	list := doc.Find("#achievements-list")
	require.Equal(t, strconv.Itoa(total), list.AttrOr("data-total", ""))
	require.Equal(t, strconv.Itoa(min(pageSize, total)), list.AttrOr("data-visible", ""))
	require.Equal(t, min(pageSize, total), doc.Find("[data-achievement]").Length())

	doc = parseDoc(t, b.get("/achievements?visible="+strconv.Itoa(2*pageSize)))
	require.Equal(t, min(2*pageSize, total), doc.Find("[data-achievement]").Length())

	doc = parseDoc(t, b.get("/achievements?year=2024"))
	year := 0
	for _, a := range b.site.catalog.Achievements {
		if a.Year == 2024 {
			year++
		}
	}
	require.Equal(t, strconv.Itoa(year), doc.Find("#achievements-list").AttrOr("data-total", ""))

	doc = parseDoc(t, b.get("/achievements?category=ROS"))
	doc.Find("[data-achievement]").Each(func(_ int, s *goquery.Selection) {
		require.Equal(t, "ROS", strings.TrimSpace(s.Find(".pill").Text()))
	})

	doc = parseDoc(t, b.get("/achievements?q=zzz-no-such-thing"))
	require.Equal(t, 1, doc.Find(`[data-empty="achievements"]`).Length())
}

func TestAchievementsFragmentPushesURL(t *testing.T) {
	b := newTestBrowser(t)

	rec := b.htmxGet("/achievements/list?year=2024&visible=12")
	require.Equal(t, http.StatusOK, rec.Code)
	push := rec.Header().Get("HX-Push-Url")
	require.True(t, strings.HasPrefix(push, "/achievements?"), push)
	require.Contains(t, push, "year=2024")
	require.Contains(t, push, "visible=12")

	doc := parseDoc(t, rec)
	require.Equal(t, 0, doc.Find("html body main").Length())
	require.Equal(t, 1, doc.Find("#achievements-list").Length())
}

func TestWorkshopsTabs(t *testing.T) {
	b := newTestBrowser(t)

	doc := parseDoc(t, b.get("/workshops"))
	require.Equal(t, "upcoming", doc.Find("#workshops-list").AttrOr("data-tab", ""))
	require.Equal(t, 1, doc.Find(`[data-workshop="ros2-basics-roadmap"]`).Length())

	rec := b.htmxGet("/workshops/list?tab=previous")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "/workshops?tab=previous", rec.Header().Get("HX-Push-Url"))
	frag := parseDoc(t, rec)
	require.Equal(t, 1, frag.Find(`[data-workshop="ros2-urdf-slam"]`).Length())
	require.Equal(t, 0, frag.Find(`[data-workshop="ros2-basics-roadmap"]`).Length())

	rec = b.get("/workshops?tab=bogus")
	require.Equal(t, "upcoming", parseDoc(t, rec).Find("#workshops-list").AttrOr("data-tab", ""))

	rec = b.get("/workshop/ros2-basics-roadmap")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "unstop.com")
}

func TestProductPages(t *testing.T) {
	b := newTestBrowser(t)
	for _, path := range []string{"/products", "/products/bumpy", "/products/customrobot"} {
		require.Equal(t, http.StatusOK, b.get(path).Code, path)
	}
}

func TestCustomRobotQuote(t *testing.T) {
	b := newTestBrowser(t)

	rec := b.post("/products/customrobot/quote", url.Values{"name": {"Priya"}})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	doc := parseDoc(t, rec)
	require.Equal(t, 1, doc.Find(`[data-error="email"]`).Length())
	require.Equal(t, 1, doc.Find(`[data-error="robotTitle"]`).Length())
	require.Equal(t, "Priya", doc.Find(`input[name="name"]`).AttrOr("value", ""))
	require.Empty(t, b.notifier.messages())

	rec = b.post("/products/customrobot/quote", url.Values{
		"name":           {"Priya"},
		"mobile":         {"+91 98765 43210"},
		"email":          {"priya@example.com"},
		"robotTitle":     {"Warehouse AMR"},
		"specifications": {"50kg payload, lidar SLAM"},
	})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	loc, err := url.Parse(rec.Header().Get("Location"))
	require.NoError(t, err)
	require.Equal(t, "wa.me", loc.Host)
	require.Contains(t, loc.Query().Get("text"), "Warehouse AMR")

	msgs := b.notifier.messages()
	require.Len(t, msgs, 1)
	require.Equal(t, "priya@example.com", msgs[0].ReplyTo)
}

func TestCustomRobotQuoteUploadLimit(t *testing.T) {
	b := newTestBrowser(t)

	quote := func(photo int) *httptest.ResponseRecorder {
		var body bytes.Buffer
		mp := multipart.NewWriter(&body)
		fields := map[string]string{
			"_csrf":          b.csrf(),
			"name":           "Priya",
			"mobile":         "+91 98765 43210",
			"email":          "priya@example.com",
			"robotTitle":     "Warehouse AMR",
			"specifications": "50kg payload, lidar SLAM",
		}
		for k, v := range fields {
			require.NoError(t, mp.WriteField(k, v))
		}
		part, err := mp.CreateFormFile("referencePhoto", "amr.jpg")
		require.NoError(t, err)
		_, err = part.Write(bytes.Repeat([]byte{0xd8}, photo))
		require.NoError(t, err)
		require.NoError(t, mp.Close())
		req := httptest.NewRequest(http.MethodPost, "/products/customrobot/quote", &body)
		req.Header.Set("Content-Type", mp.FormDataContentType())
		return b.do(req)
	}

	rec := quote(20 << 20)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Empty(t, b.notifier.messages())

	rec = quote(mw.MaxFormBytes / 2)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Len(t, b.notifier.messages(), 1)
}

func TestCommunityJoin(t *testing.T) {
	b := newTestBrowser(t)

	rec := b.post("/community/join", url.Values{"name": {"Arun"}, "interest": {"space"}})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	doc := parseDoc(t, rec)
	require.Equal(t, 1, doc.Find(`[data-error="interest"]`).Length())
	require.Equal(t, 1, doc.Find(`[data-error="whatsapp"]`).Length())

	form := url.Values{
		"name":       {"Arun"},
		"email":      {"arun@example.com"},
		"whatsapp":   {"9876543210"},
		"interest":   {"ros2"},
		"experience": {"beginner"},
		"message":    {"Want to learn Nav2"},
	}
	rec = b.htmxPost("/community/join", url.Values{"name": {"Arun"}})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 1, parseDoc(t, rec).Find(`[data-error="email"]`).Length())

	rec = b.post("/community/join", form)
	require.Equal(t, http.StatusOK, rec.Code)
	invite := b.site.checkout.CommunityURL()
	require.Equal(t, "2; url="+invite, rec.Header().Get("Refresh"))
	doc = parseDoc(t, rec)
	require.Equal(t, invite, doc.Find("[data-redirect-url]").AttrOr("data-redirect-url", ""))
	require.Contains(t, rec.Body.String(), "Welcome to the Community!")
	require.Len(t, b.notifier.messages(), 1)
}

func TestContactForm(t *testing.T) {
	b := newTestBrowser(t)

	rec := b.get("/contact")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "karthikeshrobotics@gmail.com")

	rec = b.post("/contact", url.Values{"name": {"Meena"}})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, 1, parseDoc(t, rec).Find(`[data-error="message"]`).Length())

	rec = b.htmxPost("/contact", url.Values{
		"name":    {"Meena"},
		"email":   {"meena@example.com"},
		"message": {"Can you run a workshop at our college?"},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	doc := parseDoc(t, rec)
	require.Equal(t, 1, doc.Find("[data-sent]").Length())
	require.Equal(t, "", doc.Find(`input[name="name"]`).AttrOr("value", ""))

	msgs := b.notifier.messages()
	require.Len(t, msgs, 1)
	require.Contains(t, msgs[0].Subject, "Meena")
}

func TestAssetsServedWithCacheHeaders(t *testing.T) {
	b := newTestBrowser(t)
	rec := b.get("/assets/js/app.js")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotEmpty(t, rec.Header().Get("ETag"))
	require.Contains(t, rec.Header().Get("Cache-Control"), "max-age")
}

func TestCatalogCheckCommand(t *testing.T) {
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"catalog", "check", "--data", t.TempDir()})
	require.NoError(t, cmd.Execute())
	require.Contains(t, out.String(), "catalog ok:")
}
