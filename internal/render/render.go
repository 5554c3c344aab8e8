// Package render turns a page document into a complete themed HTML page.
//
// All themes share the templates under templates/; a theme may replace any
// named block by defining it again under templates/themes/<key>/.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"sort"
	"time"

	"github.com/Builder-Lawyers/site-builder/internal/domain/entity"
	"github.com/Builder-Lawyers/site-builder/internal/domain/pagedata"
	"github.com/Builder-Lawyers/site-builder/internal/infra/metrics"
)

//go:embed themes.yaml templates
var files embed.FS

type NavItem struct {
	Title  string
	Href   string
	Active bool
}

type RenderInput struct {
	Template string
	Site     *entity.Site
	Profile  *entity.BusinessProfile
	Page     *entity.Page
	Nav      []NavItem
	LogoURL  string
	// Preview marks drafts rendered for the owner.
	Preview bool
	// Mode labels the render in metrics: public, preview or snapshot.
	Mode string
}

type Social struct {
	Name string
	URL  template.URL
}

type pageView struct {
	Theme       Theme
	CSS         template.CSS
	Title       string
	Description string
	OGImage     string
	Business    *entity.BusinessProfile
	LogoURL     string
	Nav         []NavItem
	Socials     []Social
	Sections    []pagedata.Section
	Preview     bool
	PageStatus  string
	Year        int
}

type sectionView struct {
	ID       string
	Type     pagedata.SectionType
	Body     pagedata.Body
	Business *entity.BusinessProfile
}

type themeSet struct {
	theme Theme
	css   template.CSS
	tpl   *template.Template
}

type Renderer struct {
	themes       map[string]*themeSet
	order        []string
	defaultTheme string
}

func New() (*Renderer, error) {
	raw, err := files.ReadFile("themes.yaml")
	if err != nil {
		return nil, err
	}
	m, err := parseManifest(raw)
	if err != nil {
		return nil, err
	}
	baseCSS, err := files.ReadFile("templates/base.css")
	if err != nil {
		return nil, err
	}

	// section is rebound per theme below; this one only lets parsing succeed
	base, err := template.New("").Funcs(funcMap(nil)).
		ParseFS(files, "templates/*.html", "templates/sections/*.html")
	if err != nil {
		return nil, fmt.Errorf("err parsing templates, %w", err)
	}
	for _, t := range pagedata.Types() {
		if base.Lookup("section-"+string(t)) == nil {
			return nil, fmt.Errorf("no template for section type %q", t)
		}
	}

	r := &Renderer{themes: map[string]*themeSet{}, defaultTheme: m.Default}
	for _, theme := range m.Themes {
		tpl, err := base.Clone()
		if err != nil {
			return nil, err
		}
		overrides, err := fs.Glob(files, "templates/themes/"+theme.Key+"/*.html")
		if err != nil {
			return nil, err
		}
		if len(overrides) > 0 {
			if tpl, err = tpl.ParseFS(files, overrides...); err != nil {
				return nil, fmt.Errorf("err parsing %s overrides, %w", theme.Key, err)
			}
		}
		set := &themeSet{theme: theme, css: theme.css(string(baseCSS)), tpl: tpl}
		set.tpl.Funcs(funcMap(set))
		r.themes[theme.Key] = set
		r.order = append(r.order, theme.Key)
	}
	return r, nil
}

// Themes lists the available themes in manifest order.
func (r *Renderer) Themes() []Theme {
	out := make([]Theme, 0, len(r.order))
	for _, key := range r.order {
		out = append(out, r.themes[key].theme)
	}
	return out
}

func (r *Renderer) HasTheme(key string) bool {
	_, ok := r.themes[key]
	return ok
}

// Resolve returns the theme for key, falling back to the default theme.
func (r *Renderer) Resolve(key string) Theme {
	return r.set(key).theme
}

func (r *Renderer) set(key string) *themeSet {
	if set, ok := r.themes[key]; ok {
		return set
	}
	return r.themes[r.defaultTheme]
}

// Render writes the full HTML document for in.Page. Nothing is written to w
// when rendering fails.
func (r *Renderer) Render(w io.Writer, in RenderInput) error {
	if in.Page == nil {
		return fmt.Errorf("nothing to render")
	}
	key := in.Template
	if key == "" && in.Site != nil {
		key = in.Site.Template
	}
	set := r.set(key)

	profile := &entity.BusinessProfile{}
	if in.Profile != nil {
		copied := *in.Profile
		profile = &copied
	}
	if profile.Name == "" && in.Site != nil {
		profile.Name = in.Site.Slug
	}

	view := pageView{
		Theme:       set.theme,
		CSS:         set.css,
		Title:       pageTitle(in.Page, profile),
		Description: in.Page.Data.SEO.Description,
		OGImage:     in.Page.Data.SEO.OGImage,
		Business:    profile,
		LogoURL:     in.LogoURL,
		Nav:         in.Nav,
		Socials:     socials(profile.Socials),
		Sections:    in.Page.Data.Sections,
		Preview:     in.Preview,
		PageStatus:  string(in.Page.Status),
		Year:        time.Now().Year(),
	}

	var buf bytes.Buffer
	if err := set.tpl.ExecuteTemplate(&buf, "page", view); err != nil {
		return fmt.Errorf("err rendering page %s with %s, %w", in.Page.Key, set.theme.Key, err)
	}
	mode := in.Mode
	if mode == "" {
		mode = "public"
	}
	metrics.PagesRenderedTotal.WithLabelValues(set.theme.Key, mode).Inc()
	_, err := buf.WriteTo(w)
	return err
}

func (s *themeSet) renderSection(sec pagedata.Section, business *entity.BusinessProfile) (template.HTML, error) {
	var buf bytes.Buffer
	err := s.tpl.ExecuteTemplate(&buf, "section-"+string(sec.Type), sectionView{
		ID:       sec.ID,
		Type:     sec.Type,
		Body:     sec.Body,
		Business: business,
	})
	if err != nil {
		return "", err
	}
	// already escaped by the section template
	return template.HTML(buf.String()), nil
}

func pageTitle(page *entity.Page, profile *entity.BusinessProfile) string {
	switch {
	case page.Data.SEO.Title != "":
		return page.Data.SEO.Title
	case page.Title != "" && profile.Name != "":
		return page.Title + " | " + profile.Name
	case page.Title != "":
		return page.Title
	}
	return profile.Name
}

func socials(bag map[string]string) []Social {
	out := make([]Social, 0, len(bag))
	for name, link := range bag {
		u, ok := SafeURL(link)
		if !ok || u == "" {
			continue
		}
		out = append(out, Social{Name: socialLabel(name), URL: u})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
