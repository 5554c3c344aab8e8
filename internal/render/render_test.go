package render_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/Builder-Lawyers/site-builder/internal/domain/consts"
	"github.com/Builder-Lawyers/site-builder/internal/domain/entity"
	"github.com/Builder-Lawyers/site-builder/internal/domain/pagedata"
	"github.com/Builder-Lawyers/site-builder/internal/render"
	"github.com/stretchr/testify/require"
)

const everySection = `{
	"seo": {"title": "Bright Dental", "description": "Family dentistry", "ogImage": "https://cdn.test/og.png"},
	"sections": [
		{"id": "hero", "type": "hero", "headline": "Smiles for everyone", "subheadline": "Since 1998", "ctaText": "Book", "ctaHref": "/contact", "imageUrl": "https://cdn.test/hero.jpg"},
		{"id": "services", "type": "services", "title": "Services", "items": [{"title": "Cleaning", "description": "Twice a year", "price": "$80", "icon": "🦷"}]},
		{"id": "text", "type": "richtext", "title": "Our story", "body": "First paragraph.\n\nSecond paragraph."},
		{"id": "values", "type": "values", "title": "Values", "items": [{"title": "Care"}]},
		{"id": "card", "type": "contact_card", "title": "Reach us", "phone": "+1 (555) 0100", "email": "hi@bright.test", "address": "12 Main St"},
		{"id": "backed", "type": "backed_by", "title": "Backed by", "items": [{"name": "Dental Assoc", "logoUrl": "https://cdn.test/da.png", "href": "https://da.test"}]},
		{"id": "uses", "type": "use_cases", "title": "Who we help", "items": [{"title": "Kids"}]},
		{"id": "gallery", "type": "gallery", "title": "Office", "images": [{"url": "https://cdn.test/1.jpg", "alt": "Lobby", "caption": "Our lobby"}]},
		{"id": "quotes", "type": "testimonials", "title": "Reviews", "items": [{"quote": "Painless!", "author": "Sam", "role": "Patient"}]},
		{"id": "faq", "type": "faq", "title": "FAQ", "items": [{"question": "Insurance?", "answer": "Most plans."}]},
		{"id": "team", "type": "team", "title": "Team", "members": [{"name": "Dr. Ana", "role": "Dentist"}]},
		{"id": "stats", "type": "stats", "items": [{"value": "25", "label": "Years"}]},
		{"id": "process", "type": "process", "title": "How it works", "steps": [{"title": "Book"}, {"title": "Visit"}]},
		{"id": "features", "type": "features", "title": "Why us", "items": [{"title": "Open late"}]},
		{"id": "cta", "type": "cta_banner", "headline": "Ready?", "ctaText": "Call", "ctaHref": "tel:+15550100"},
		{"id": "logos", "type": "logo_cloud", "title": "Insurers", "logos": [{"name": "Acme Insurance"}]},
		{"id": "map", "type": "map", "title": "Find us", "address": "12 Main St"},
		{"id": "hours", "type": "hours", "title": "Hours", "entries": [{"day": "Mon", "hours": "9-5"}], "note": "Closed holidays"},
		{"id": "banner", "type": "contact_banner", "headline": "Questions?", "email": "hi@bright.test"}
	]
}`

func fixture(t *testing.T, raw string) (*entity.Site, *entity.BusinessProfile, *entity.Page) {
	t.Helper()
	data, err := pagedata.Parse([]byte(raw))
	require.NoError(t, err)
	site := &entity.Site{Slug: "bright-dental", Template: "classic"}
	profile := &entity.BusinessProfile{
		Name:    "Bright Dental",
		Phone:   "+1 555 0100",
		Email:   "hi@bright.test",
		Socials: map[string]string{"instagram": "https://instagram.com/bright", "evil": "javascript:alert(1)"},
	}
	page := &entity.Page{Key: consts.PageKeyHome, Title: "Home", Data: data, Status: consts.PageStatusPublished}
	return site, profile, page
}

func newRenderer(t *testing.T) *render.Renderer {
	t.Helper()
	r, err := render.New()
	require.NoError(t, err)
	return r
}

func TestSixThemes(t *testing.T) {
	r := newRenderer(t)
	var keys []string
	for _, th := range r.Themes() {
		keys = append(keys, th.Key)
	}
	require.Equal(t, []string{"classic", "modern", "bold", "minimal", "elegant", "vibrant"}, keys)
}

func TestEveryThemeRendersEverySection(t *testing.T) {
	r := newRenderer(t)
	site, profile, page := fixture(t, everySection)
	nav := []render.NavItem{{Title: "Home", Href: "/", Active: true}, {Title: "About", Href: "/about"}}

	for _, th := range r.Themes() {
		t.Run(th.Key, func(t *testing.T) {
			var buf bytes.Buffer
			err := r.Render(&buf, render.RenderInput{Template: th.Key, Site: site, Profile: profile, Page: page, Nav: nav})
			require.NoError(t, err)

			html := buf.String()
			require.True(t, strings.HasPrefix(html, "<!DOCTYPE html>"))
			require.Contains(t, html, "<title>Bright Dental</title>")
			require.Contains(t, html, "theme-"+th.Key)
			for _, s := range page.Data.Sections {
				require.Contains(t, html, `id="`+s.ID+`"`, "section %s missing", s.Type)
			}
			require.Contains(t, html, "Smiles for everyone")
			require.Contains(t, html, `src="https://cdn.test/da.png" alt="Dental Assoc"`)
			require.Contains(t, html, `href="tel:+15550100"`)
			require.Contains(t, html, `href="mailto:hi@bright.test"`)
			require.Contains(t, html, "https://instagram.com/bright")
			require.NotContains(t, html, "javascript:")
			require.Contains(t, html, `aria-current="page"`)
		})
	}
}

func TestThemeOverridesChangeMarkup(t *testing.T) {
	r := newRenderer(t)
	site, profile, page := fixture(t, everySection)

	out := func(key string) string {
		var buf bytes.Buffer
		require.NoError(t, r.Render(&buf, render.RenderInput{Template: key, Site: site, Profile: profile, Page: page}))
		return buf.String()
	}

	require.Contains(t, out("bold"), `class="section hero hero-fullbleed"`)
	require.Contains(t, out("modern"), `class="section hero hero-split"`)
	require.Contains(t, out("vibrant"), `class="section hero hero-gradient"`)
	require.Contains(t, out("elegant"), `class="section testimonials testimonials-elegant"`)
	require.Contains(t, out("minimal"), `<dl class="service-list">`)
	require.Contains(t, out("classic"), `<section id="hero" class="section hero">`)
}

func TestUnknownTemplateFallsBackToClassic(t *testing.T) {
	r := newRenderer(t)
	site, profile, page := fixture(t, everySection)

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, render.RenderInput{Template: "neon", Site: site, Profile: profile, Page: page}))
	require.Contains(t, buf.String(), "theme-classic")
	require.Equal(t, "classic", r.Resolve("neon").Key)
	require.False(t, r.HasTheme("neon"))
}

func TestContentIsEscapedAndUnsafeLinksDropped(t *testing.T) {
	r := newRenderer(t)
	site, profile, page := fixture(t, `{
		"seo": {"title": "<script>alert(1)</script>"},
		"sections": [
			{"type": "hero", "headline": "<img src=x onerror=alert(1)>", "ctaText": "Click", "ctaHref": "javascript:alert(1)"},
			{"type": "gallery", "images": [{"url": "data:image/png;base64,AAAA"}, {"url": "//evil.example/x.png"}]}
		]
	}`)

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, render.RenderInput{Site: site, Profile: profile, Page: page}))
	html := buf.String()

	require.NotContains(t, html, "<script>alert(1)</script>")
	require.Contains(t, html, "&lt;script&gt;")
	require.NotContains(t, html, "<img src=x")
	require.NotContains(t, html, "javascript:")
	require.NotContains(t, html, "data:image")
	require.NotContains(t, html, "evil.example")
	require.NotContains(t, html, ">Click<")
}

func TestPreviewIsMarkedNoIndex(t *testing.T) {
	r := newRenderer(t)
	site, profile, page := fixture(t, `{"sections": [{"type": "richtext", "body": "draft"}]}`)
	page.Status = consts.PageStatusDraft

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, render.RenderInput{Site: site, Profile: profile, Page: page, Preview: true, Mode: "preview"}))
	require.Contains(t, buf.String(), `<meta name="robots" content="noindex">`)
	require.Contains(t, buf.String(), "preview-bar")
	// no seo title: page title plus business name
	require.Contains(t, buf.String(), "<title>Home | Bright Dental</title>")
}

func TestSafeURL(t *testing.T) {
	cases := map[string]bool{
		"https://example.com/a":  true,
		"http://example.com":     true,
		"mailto:a@b.test":        true,
		"tel:+123":               true,
		"/contact":               true,
		"#services":              true,
		"about":                  true,
		"":                       true,
		"javascript:alert(1)":    false,
		"JaVaScRiPt:alert(1)":    false,
		"data:text/html,hi":      false,
		"vbscript:x":             false,
		"//evil.example":         false,
		"/\\evil.example":        false,
		"\\\\evil.example":       false,
		"\\/evil.example":        false,
		"https://":               false,
		"https://ok.test/\nbad":  false,
		"ftp://files.example/x":  false,
	}
	for raw, want := range cases {
		_, ok := render.SafeURL(raw)
		require.Equal(t, want, ok, raw)
	}
}
