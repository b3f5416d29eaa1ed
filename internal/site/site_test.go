package site

import (
	"bytes"
	"context"
	"encoding/json"
	"html/template"
	"image/png"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Zachkp/neon-portfolio/internal/backdrop"
	"github.com/Zachkp/neon-portfolio/internal/contact"
	"github.com/Zachkp/neon-portfolio/internal/content"
	"github.com/Zachkp/neon-portfolio/internal/prefs"
	"github.com/Zachkp/neon-portfolio/internal/storage"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeVisits struct {
	mu     sync.Mutex
	visits []storage.Visit
}

func (f *fakeVisits) RecordVisit(_ context.Context, v storage.Visit) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.visits = append(f.visits, v)
	return nil
}

func (f *fakeVisits) paths() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for _, v := range f.visits {
		out = append(out, v.Path)
	}
	return out
}

func newTestServer(t *testing.T, opts Options) (*Server, *gin.Engine, *fakeVisits) {
	t.Helper()
	visits := &fakeVisits{}
	svc := contact.NewService(contact.SimulatedSender{}, nil, zap.NewNop())
	s, err := New(content.NewStore(content.Default()), svc, visits, zap.NewNop(), opts)
	require.NoError(t, err)
	return s, s.Engine(), visits
}

func do(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func postForm(path string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestPage_SectionOrderAndLazyPlaceholders(t *testing.T) {
	_, r, _ := newTestServer(t, Options{})

	rec := do(r, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()

	last := -1
	for _, sec := range content.Sections {
		idx := strings.Index(body, `id="`+sec.ID+`"`)
		require.GreaterOrEqual(t, idx, 0, sec.ID)
		assert.Greater(t, idx, last, "section %s out of order", sec.ID)
		last = idx
	}
	assert.Contains(t, body, `hx-get="/sections/projects"`)
	assert.Contains(t, body, `class="theme-dark"`)
	assert.Contains(t, body, "/backdrop/particles-dark.png")
	assert.NotContains(t, body, "Terminal Mail", "projects are lazy")
}

func TestPage_StaticModeInlinesEverything(t *testing.T) {
	_, r, _ := newTestServer(t, Options{StaticMode: true, ContactDelay: 1500 * time.Millisecond})

	body := do(r, httptest.NewRequest(http.MethodGet, "/", nil)).Body.String()
	assert.NotContains(t, body, "hx-get=")
	assert.Contains(t, body, "Terminal Mail")
	assert.Contains(t, body, `data-simulate-ms="1500"`)
	assert.Contains(t, body, `data-static="true"`)
}

func TestPage_UsesThemeCookie(t *testing.T) {
	_, r, _ := newTestServer(t, Options{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "theme", Value: "cyberpunk"})
	body := do(r, req).Body.String()
	assert.Contains(t, body, `class="theme-cyberpunk"`)
	assert.Contains(t, body, "/backdrop/waves-cyberpunk.png")
	assert.Contains(t, body, `data-next="dark"`)
}

func TestSectionFragment(t *testing.T) {
	_, r, _ := newTestServer(t, Options{})

	rec := do(r, httptest.NewRequest(http.MethodGet, "/sections/projects", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Terminal Mail")
	assert.Contains(t, rec.Body.String(), `x-data="{ tab: 0 }"`)

	rec = do(r, httptest.NewRequest(http.MethodGet, "/sections/skills?tab=99", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `x-data="{ tab: 2 }"`, "tab clamps to last group")

	rec = do(r, httptest.NewRequest(http.MethodGet, "/sections/blog", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "blog")
}

func TestSectionFragment_ErrorBoundary(t *testing.T) {
	s, r, _ := newTestServer(t, Options{})
	broken := template.Must(s.tmpl.Clone())
	template.Must(broken.New("section-skills").Parse(`{{template "does-not-exist" .}}`))
	s.tmpl = broken

	rec := do(r, httptest.NewRequest(http.MethodGet, "/sections/skills", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "could not be loaded")
	assert.Contains(t, rec.Body.String(), `id="skills"`)

	// The rest of the page is unaffected in static rendering.
	s.opts.StaticMode = true
	page, err := s.RenderPage()
	require.NoError(t, err)
	assert.Contains(t, string(page), "could not be loaded")
	assert.Contains(t, string(page), "Terminal Mail")
}

func TestContact(t *testing.T) {
	_, r, _ := newTestServer(t, Options{})

	t.Run("success", func(t *testing.T) {
		rec := do(r, postForm("/contact", url.Values{
			"fullName": {"Ada"},
			"email":    {"ada@example.com"},
			"message":  {"Loved the terminal projects!"},
		}))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Thank you for your message")
	})

	t.Run("validation errors re-render the form", func(t *testing.T) {
		rec := do(r, postForm("/contact", url.Values{
			"fullName": {"Ada"},
			"email":    {"not-an-email"},
			"message":  {"hi"},
		}))
		require.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, "valid email address")
		assert.Contains(t, body, "at least 10")
		assert.Contains(t, body, `value="Ada"`)
	})

	t.Run("honeypot looks like success", func(t *testing.T) {
		rec := do(r, postForm("/contact", url.Values{"website": {"http://spam.example"}}))
		assert.Contains(t, rec.Body.String(), "Thank you for your message")
	})
}

func TestThemeToggle(t *testing.T) {
	_, r, _ := newTestServer(t, Options{})

	rec := do(r, postForm("/prefs/theme", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var res struct {
		Theme     string            `json:"theme"`
		Next      string            `json:"next"`
		Backdrops map[string]string `json:"backdrops"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, "light", res.Theme)
	assert.Equal(t, "cyberpunk", res.Next)
	assert.Equal(t, "/backdrop/morph-light.png", res.Backdrops["morph"])

	var themeCookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == "theme" {
			themeCookie = c
		}
	}
	require.NotNil(t, themeCookie)
	assert.Equal(t, "light", themeCookie.Value)

	rec = do(r, postForm("/prefs/theme", url.Values{"theme": {"cyberpunk"}}))
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, "cyberpunk", res.Theme)

	rec = do(r, postForm("/prefs/theme", url.Values{"theme": {"sepia"}}))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAudioToggle(t *testing.T) {
	_, r, _ := newTestServer(t, Options{})

	rec := do(r, postForm("/prefs/audio", url.Values{"action": {"play"}}))
	require.Equal(t, http.StatusOK, rec.Code)
	var a prefs.Audio
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &a))
	assert.Equal(t, prefs.Audio{Muted: false, Playing: true}, a)

	req := postForm("/prefs/audio", url.Values{"action": {"mute"}})
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	rec = do(r, req)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &a))
	assert.Equal(t, prefs.Audio{Muted: true, Playing: false}, a)

	rec = do(r, postForm("/prefs/audio", url.Values{"action": {"louder"}}))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAudioErrorReport(t *testing.T) {
	_, r, _ := newTestServer(t, Options{})
	req := httptest.NewRequest(http.MethodPost, "/prefs/audio/error", strings.NewReader(`{"message":"NotAllowedError","source":"/images/ambient.mp3"}`))
	req.Header.Set("Content-Type", "application/json")
	assert.Equal(t, http.StatusNoContent, do(r, req).Code)

	// Garbage is still accepted and logged.
	req = httptest.NewRequest(http.MethodPost, "/prefs/audio/error", strings.NewReader(`{`))
	assert.Equal(t, http.StatusNoContent, do(r, req).Code)
}

func TestBackdrop(t *testing.T) {
	_, r, _ := newTestServer(t, Options{})

	rec := do(r, httptest.NewRequest(http.MethodGet, "/backdrop/particles-cyberpunk.png?w=96&h=64&seed=3&count=20", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Cache-Control"), "max-age")
	img, err := png.Decode(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, 96, img.Bounds().Dx())

	assert.Equal(t, http.StatusNotFound, do(r, httptest.NewRequest(http.MethodGet, "/backdrop/tunnel-dark.png", nil)).Code)
	assert.Equal(t, http.StatusNotFound, do(r, httptest.NewRequest(http.MethodGet, "/backdrop/waves-sepia.png", nil)).Code)
	assert.Equal(t, http.StatusBadRequest, do(r, httptest.NewRequest(http.MethodGet, "/backdrop/waves-dark.png?seed=x", nil)).Code)
}

func TestParseBackdropFile(t *testing.T) {
	scene, theme, err := ParseBackdropFile("morph-light.png")
	require.NoError(t, err)
	assert.Equal(t, backdrop.SceneMorph, scene)
	assert.Equal(t, prefs.ThemeLight, theme)

	for _, bad := range []string{"morph-light", "morph.png", "blob-dark.png", "morph-sepia.png"} {
		_, _, err := ParseBackdropFile(bad)
		assert.Error(t, err, bad)
	}
	assert.Equal(t, "waves-dark.png", BackdropFile(backdrop.SceneWaves, prefs.ThemeDark))
}

func TestStaticAssetsAndHealth(t *testing.T) {
	_, r, _ := newTestServer(t, Options{})

	rec := do(r, httptest.NewRequest(http.MethodGet, "/static/css/site.css", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), ".theme-cyberpunk")

	rec = do(r, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(r, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "/nope")
}

func TestVisitTracking(t *testing.T) {
	_, r, visits := newTestServer(t, Options{})

	do(r, httptest.NewRequest(http.MethodGet, "/", nil))
	do(r, httptest.NewRequest(http.MethodGet, "/static/css/site.css", nil))
	do(r, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	do(r, httptest.NewRequest(http.MethodGet, "/missing", nil))
	dnt := httptest.NewRequest(http.MethodGet, "/", nil)
	dnt.Header.Set("DNT", "1")
	do(r, dnt)

	assert.Eventually(t, func() bool { return len(visits.paths()) == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, []string{"/"}, visits.paths())
}

func TestVisitTracking_PageLoadCountsOnce(t *testing.T) {
	s, r, visits := newTestServer(t, Options{})

	do(r, httptest.NewRequest(http.MethodGet, "/", nil))
	for _, sec := range content.Sections {
		if !sec.Lazy {
			continue
		}
		req := httptest.NewRequest(http.MethodGet, "/sections/"+sec.ID, nil)
		req.Header.Set("HX-Request", "true")
		require.Equal(t, http.StatusOK, do(r, req).Code, sec.ID)
	}
	direct := httptest.NewRequest(http.MethodGet, "/sections/about", nil)
	do(r, direct)

	s.WaitVisits()
	assert.Equal(t, []string{"/"}, visits.paths())
}

type slowVisits struct {
	fakeVisits
	delay time.Duration
}

func (f *slowVisits) RecordVisit(ctx context.Context, v storage.Visit) error {
	time.Sleep(f.delay)
	return f.fakeVisits.RecordVisit(ctx, v)
}

func TestWaitVisits_DrainsBackgroundWrites(t *testing.T) {
	visits := &slowVisits{delay: 50 * time.Millisecond}
	svc := contact.NewService(contact.SimulatedSender{}, nil, zap.NewNop())
	s, err := New(content.NewStore(content.Default()), svc, visits, zap.NewNop(), Options{})
	require.NoError(t, err)
	r := s.Engine()

	do(r, httptest.NewRequest(http.MethodGet, "/", nil))
	do(r, httptest.NewRequest(http.MethodGet, "/", nil))

	s.WaitVisits()
	assert.Len(t, visits.paths(), 2)
}

func TestPage_LazySectionsCarryFallback(t *testing.T) {
	_, r, _ := newTestServer(t, Options{})

	body := do(r, httptest.NewRequest(http.MethodGet, "/", nil)).Body.String()
	for _, sec := range content.Sections {
		if !sec.Lazy {
			continue
		}
		start := strings.Index(body, `<section id="`+sec.ID+`" class="section section-lazy"`)
		require.GreaterOrEqual(t, start, 0, sec.ID)
		end := strings.Index(body[start:], "</template>")
		require.Greater(t, end, 0, sec.ID)
		placeholder := body[start : start+end]
		assert.Contains(t, placeholder, `<template class="lazy-fallback">`, sec.ID)
		assert.Contains(t, placeholder, "could not be loaded", sec.ID)
		assert.Contains(t, placeholder, `class="section section-fallback"`, sec.ID)
	}

	js, err := fs.ReadFile(Assets(), "js/site.js")
	require.NoError(t, err)
	assert.Contains(t, string(js), "htmx:responseError")
	assert.Contains(t, string(js), "htmx:sendError")
	assert.Contains(t, string(js), "template.lazy-fallback")
}

func TestRenderSection(t *testing.T) {
	s, _, _ := newTestServer(t, Options{})
	out, err := s.RenderSection("education")
	require.NoError(t, err)
	assert.Contains(t, string(out), "Western Governors University")

	_, err = s.RenderSection("blog")
	assert.ErrorIs(t, err, ErrSectionNotFound)
}
