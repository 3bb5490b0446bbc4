package cms

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

// Page is a static content page (about, services, careers, build guides)
// sourced from the CMS or local markdown.
type Page struct {
	Slug      string
	Lang      string
	Title     string
	Summary   string
	Body      string // markdown source
	HTML      template.HTML
	Hero      string
	UpdatedAt time.Time
	Banner    *Banner
	SEO       SEO
}

// SEO holds optional metadata overrides for static pages.
type SEO struct {
	Title       string
	Description string
	OGImage     string
}

// Banner models an optional call-to-action displayed above the body.
type Banner struct {
	Variant  string
	Title    string
	Message  string
	LinkText string
	LinkURL  string
}

type frontMatter struct {
	Title     string             `yaml:"title"`
	Summary   string             `yaml:"summary"`
	Lang      string             `yaml:"lang"`
	Hero      string             `yaml:"hero"`
	UpdatedAt string             `yaml:"updated_at"`
	SEO       frontMatterSEO     `yaml:"seo"`
	Banner    *frontMatterBanner `yaml:"banner"`
}

type frontMatterSEO struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	OGImage     string `yaml:"og_image"`
}

type frontMatterBanner struct {
	Variant  string `yaml:"variant"`
	Title    string `yaml:"title"`
	Message  string `yaml:"message"`
	LinkText string `yaml:"link_text"`
	LinkURL  string `yaml:"link_url"`
}

const (
	defaultContentDir = "content"
	pagesKind         = "pages"
)

var (
	pageCache = struct {
		mu    sync.RWMutex
		items map[string]pageCacheEntry
	}{
		items: map[string]pageCacheEntry{},
	}
	pageCacheTTL = time.Minute * 5
)

type pageCacheEntry struct {
	page    Page
	expires time.Time
}

// SetCacheDuration allows overriding the in-memory cache duration (primarily for tests).
func SetCacheDuration(d time.Duration) {
	if d <= 0 {
		d = time.Minute
	}
	pageCache.mu.Lock()
	pageCacheTTL = d
	pageCache.items = map[string]pageCacheEntry{}
	pageCache.mu.Unlock()
}

// SetContentDir configures the directory holding <dir>/pages/<lang>/<slug>.md.
func (c *Client) SetContentDir(dir string) {
	if c == nil {
		return
	}
	dir = strings.TrimSpace(dir)
	if dir == "" {
		dir = defaultContentDir
	}
	c.contentDir = dir
}

// ContentDir returns the configured content directory.
func (c *Client) ContentDir() string {
	if c == nil || strings.TrimSpace(c.contentDir) == "" {
		return defaultContentDir
	}
	return c.contentDir
}

// GetPage fetches a rendered page, trying the remote CMS, then local markdown,
// then the built-in copy.
func (c *Client) GetPage(ctx context.Context, slug, lang string) (Page, error) {
	slug = sanitizeSlug(slug)
	if slug == "" {
		return Page{}, ErrNotFound
	}
	lang = normalizeLang(lang)

	cacheKey := c.ContentDir() + "|" + lang + "|" + slug
	if page, ok := cachedPage(cacheKey); ok {
		return page, nil
	}

	page, err := c.fetchPage(ctx, slug, lang)
	if err != nil {
		return Page{}, err
	}
	if err := render(&page); err != nil {
		return Page{}, err
	}
	storePage(cacheKey, page)
	return clonePage(page), nil
}

func (c *Client) fetchPage(ctx context.Context, slug, lang string) (Page, error) {
	if c != nil && c.baseURL != "" {
		page, err := c.fetchPageRemote(ctx, slug, lang)
		if err == nil {
			return page, nil
		}
		// remote failures fall through to local content
	}
	page, err := localPage(c.ContentDir(), slug, lang)
	if err == nil {
		return page, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return Page{}, err
	}
	return fallbackPage(slug, lang)
}

func (c *Client) fetchPageRemote(ctx context.Context, slug, lang string) (Page, error) {
	endpoint, err := url.JoinPath(c.baseURL, "content", pagesKind, slug)
	if err != nil {
		return Page{}, err
	}
	if c.http == nil {
		c.http = &http.Client{Timeout: 5 * time.Second}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Page{}, err
	}
	q := req.URL.Query()
	q.Set("lang", lang)
	req.URL.RawQuery = q.Encode()
	req.Header.Set("Accept", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return Page{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return Page{}, ErrNotFound
	}
	if resp.StatusCode >= 400 {
		return Page{}, fmt.Errorf("cms: page remote status %d", resp.StatusCode)
	}

	var payload struct {
		Slug      string    `json:"slug"`
		Lang      string    `json:"lang"`
		Title     string    `json:"title"`
		Summary   string    `json:"summary"`
		Body      string    `json:"body"`
		Hero      string    `json:"hero"`
		UpdatedAt time.Time `json:"updated_at"`
		SEO       struct {
			Title       string `json:"title"`
			Description string `json:"description"`
			OGImage     string `json:"og_image"`
		} `json:"seo"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Page{}, err
	}
	if strings.TrimSpace(payload.Body) == "" {
		return Page{}, fmt.Errorf("cms: empty body for %s", slug)
	}
	return Page{
		Slug:      firstNonEmpty(payload.Slug, slug),
		Lang:      firstNonEmpty(payload.Lang, lang),
		Title:     payload.Title,
		Summary:   payload.Summary,
		Body:      payload.Body,
		Hero:      payload.Hero,
		UpdatedAt: payload.UpdatedAt,
		SEO: SEO{
			Title:       payload.SEO.Title,
			Description: payload.SEO.Description,
			OGImage:     payload.SEO.OGImage,
		},
	}, nil
}

func localPage(contentDir, slug, lang string) (Page, error) {
	priority := []string{lang}
	if lang != "en" {
		priority = append(priority, "en")
	}
	for _, candidate := range priority {
		page, err := readMarkdown(contentDir, slug, candidate)
		if err == nil {
			return page, nil
		}
		if errors.Is(err, ErrNotFound) {
			continue
		}
		return Page{}, err
	}
	return Page{}, ErrNotFound
}

func readMarkdown(contentDir, slug, lang string) (Page, error) {
	file := filepath.Join(contentDir, pagesKind, lang, slug+".md")
	data, err := os.ReadFile(file)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Page{}, ErrNotFound
		}
		return Page{}, err
	}
	page, err := parseMarkdown(slug, lang, string(data))
	if err != nil {
		return Page{}, fmt.Errorf("cms: %s: %w", file, err)
	}
	if page.UpdatedAt.IsZero() {
		if info, statErr := os.Stat(file); statErr == nil {
			page.UpdatedAt = info.ModTime()
		}
	}
	return page, nil
}

func parseMarkdown(slug, lang, raw string) (Page, error) {
	fm, body := splitFrontMatter(raw)
	front := frontMatter{}
	if strings.TrimSpace(fm) != "" {
		if err := yaml.Unmarshal([]byte(fm), &front); err != nil {
			return Page{}, fmt.Errorf("parse front matter: %w", err)
		}
	}
	page := Page{
		Slug:      slug,
		Lang:      firstNonEmpty(strings.TrimSpace(front.Lang), lang),
		Title:     strings.TrimSpace(front.Title),
		Summary:   strings.TrimSpace(front.Summary),
		Body:      body,
		Hero:      strings.TrimSpace(front.Hero),
		UpdatedAt: parseContentDate(front.UpdatedAt),
		SEO: SEO{
			Title:       strings.TrimSpace(front.SEO.Title),
			Description: strings.TrimSpace(front.SEO.Description),
			OGImage:     strings.TrimSpace(front.SEO.OGImage),
		},
	}
	if front.Banner != nil {
		page.Banner = &Banner{
			Variant:  strings.TrimSpace(front.Banner.Variant),
			Title:    strings.TrimSpace(front.Banner.Title),
			Message:  strings.TrimSpace(front.Banner.Message),
			LinkText: strings.TrimSpace(front.Banner.LinkText),
			LinkURL:  strings.TrimSpace(front.Banner.LinkURL),
		}
	}
	if page.Title == "" {
		page.Title = prettifySlug(slug)
	}
	return page, nil
}

func splitFrontMatter(input string) (string, string) {
	input = strings.TrimLeft(input, "\ufeff")
	lines := strings.Split(input, "\n")
	if len(lines) == 0 {
		return "", ""
	}
	if strings.TrimSpace(lines[0]) != "---" {
		return "", input
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			fm := strings.Join(lines[1:i], "\n")
			body := strings.Join(lines[i+1:], "\n")
			return fm, strings.TrimLeft(body, "\n\r")
		}
	}
	return "", input
}

func parseContentDate(v string) time.Time {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}
	}
	layouts := []string{
		time.RFC3339,
		"2006-01-02",
		"2006/01/02",
		"2006-1-2",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t
		}
	}
	return time.Time{}
}

func prettifySlug(slug string) string {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return slug
	}
	parts := strings.Split(slug, "-")
	for i, part := range parts {
		if part == "" {
			continue
		}
		runes := []rune(part)
		runes[0] = asciiUpper(runes[0])
		parts[i] = string(runes)
	}
	return strings.Join(parts, " ")
}

func sanitizeSlug(slug string) string {
	slug = strings.TrimSpace(strings.ToLower(slug))
	slug = strings.Trim(slug, "/")
	if slug == "" {
		return ""
	}
	if strings.Contains(slug, "..") {
		return ""
	}
	if strings.ContainsAny(slug, `/\`) {
		return ""
	}
	return slug
}

func normalizeLang(lang string) string {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if lang == "" {
		return "en"
	}
	return lang
}

func cachedPage(key string) (Page, bool) {
	now := time.Now()
	pageCache.mu.RLock()
	entry, ok := pageCache.items[key]
	pageCache.mu.RUnlock()
	if !ok || now.After(entry.expires) {
		return Page{}, false
	}
	return clonePage(entry.page), true
}

func storePage(key string, page Page) {
	pageCache.mu.Lock()
	defer pageCache.mu.Unlock()
	pageCache.items[key] = pageCacheEntry{
		page:    clonePage(page),
		expires: time.Now().Add(pageCacheTTL),
	}
}

func clonePage(src Page) Page {
	cp := src
	if src.Banner != nil {
		b := *src.Banner
		cp.Banner = &b
	}
	return cp
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func asciiUpper(r rune) rune {
	if r >= 'a' && r <= 'z' {
		return r - ('a' - 'A')
	}
	return r
}
