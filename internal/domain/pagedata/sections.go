package pagedata

import "fmt"

// Shared item records.

type TitledItem struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (i *TitledItem) decode(r *reader) {
	i.Title = r.str("title")
	i.Description = r.str("description")
}

type LinkedLogo struct {
	Name     string `json:"name"`
	ImageURL string `json:"imageUrl"`
	Href     string `json:"href"`
}

func (l *LinkedLogo) decode(r *reader) {
	l.Name = r.str("name")
	l.ImageURL = r.str("imageUrl")
	l.Href = r.str("href")
}

// Backer is a backed_by entry. Its image field is logoUrl, unlike LinkedLogo.
type Backer struct {
	Name    string `json:"name"`
	LogoURL string `json:"logoUrl"`
	Href    string `json:"href"`
}

func (b *Backer) decode(r *reader) {
	b.Name = r.str("name")
	b.LogoURL = r.str("logoUrl")
	b.Href = r.str("href")
}

// missingCollector accumulates blank required fields.
type missingCollector []string

func (m *missingCollector) need(field, value string) {
	if value == "" {
		*m = append(*m, field)
	}
}

func (m *missingCollector) needAt(list string, i int, field, value string) {
	m.need(fmt.Sprintf("%s[%d].%s", list, i, field), value)
}

type Hero struct {
	Headline    string `json:"headline"`
	Subheadline string `json:"subheadline"`
	CTAText     string `json:"ctaText"`
	CTAHref     string `json:"ctaHref"`
	ImageURL    string `json:"imageUrl"`
}

func (*Hero) SectionType() SectionType { return TypeHero }

func (h *Hero) decode(r *reader) {
	h.Headline = r.str("headline")
	h.Subheadline = r.str("subheadline")
	h.CTAText = r.str("ctaText")
	h.CTAHref = r.str("ctaHref")
	h.ImageURL = r.str("imageUrl")
}

func (h *Hero) missing() []string {
	var m missingCollector
	m.need("headline", h.Headline)
	if h.CTAText != "" {
		m.need("ctaHref", h.CTAHref)
	}
	return m
}

type ServiceItem struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Price       string `json:"price"`
	Icon        string `json:"icon"`
}

func (i *ServiceItem) decode(r *reader) {
	i.Title = r.str("title")
	i.Description = r.str("description")
	i.Price = r.str("price")
	i.Icon = r.str("icon")
}

type Services struct {
	Title string        `json:"title"`
	Intro string        `json:"intro"`
	Items []ServiceItem `json:"items"`
}

func (*Services) SectionType() SectionType { return TypeServices }

func (s *Services) decode(r *reader) {
	s.Title = r.str("title")
	s.Intro = r.str("intro")
	s.Items = list[ServiceItem](r, "items")
}

func (s *Services) missing() []string {
	var m missingCollector
	for i, it := range s.Items {
		m.needAt("items", i, "title", it.Title)
	}
	return m
}

type RichText struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

func (*RichText) SectionType() SectionType { return TypeRichText }

func (t *RichText) decode(r *reader) {
	t.Title = r.str("title")
	t.Body = r.str("body")
}

func (t *RichText) missing() []string {
	var m missingCollector
	m.need("body", t.Body)
	return m
}

type Values struct {
	Title string       `json:"title"`
	Items []TitledItem `json:"items"`
}

func (*Values) SectionType() SectionType { return TypeValues }

func (v *Values) decode(r *reader) {
	v.Title = r.str("title")
	v.Items = list[TitledItem](r, "items")
}

func (v *Values) missing() []string {
	var m missingCollector
	for i, it := range v.Items {
		m.needAt("items", i, "title", it.Title)
	}
	return m
}

type ContactCard struct {
	Title   string `json:"title"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
	Note    string `json:"note"`
}

func (*ContactCard) SectionType() SectionType { return TypeContactCard }

func (c *ContactCard) decode(r *reader) {
	c.Title = r.str("title")
	c.Phone = r.str("phone")
	c.Email = r.str("email")
	c.Address = r.str("address")
	c.Note = r.str("note")
}

func (c *ContactCard) missing() []string {
	if c.Phone == "" && c.Email == "" && c.Address == "" {
		return []string{"phone|email|address"}
	}
	return nil
}

type BackedBy struct {
	Title string   `json:"title"`
	Items []Backer `json:"items"`
}

func (*BackedBy) SectionType() SectionType { return TypeBackedBy }

func (b *BackedBy) decode(r *reader) {
	b.Title = r.str("title")
	b.Items = list[Backer](r, "items")
}

func (b *BackedBy) missing() []string {
	var m missingCollector
	for i, it := range b.Items {
		m.needAt("items", i, "name", it.Name)
	}
	return m
}

type UseCases struct {
	Title string       `json:"title"`
	Items []TitledItem `json:"items"`
}

func (*UseCases) SectionType() SectionType { return TypeUseCases }

func (u *UseCases) decode(r *reader) {
	u.Title = r.str("title")
	u.Items = list[TitledItem](r, "items")
}

func (u *UseCases) missing() []string {
	var m missingCollector
	for i, it := range u.Items {
		m.needAt("items", i, "title", it.Title)
	}
	return m
}

type GalleryImage struct {
	URL     string `json:"url"`
	Alt     string `json:"alt"`
	Caption string `json:"caption"`
}

func (g *GalleryImage) decode(r *reader) {
	g.URL = r.str("url")
	g.Alt = r.str("alt")
	g.Caption = r.str("caption")
}

type Gallery struct {
	Title  string         `json:"title"`
	Images []GalleryImage `json:"images"`
}

func (*Gallery) SectionType() SectionType { return TypeGallery }

func (g *Gallery) decode(r *reader) {
	g.Title = r.str("title")
	g.Images = list[GalleryImage](r, "images")
}

func (g *Gallery) missing() []string {
	var m missingCollector
	for i, img := range g.Images {
		m.needAt("images", i, "url", img.URL)
	}
	return m
}

type Testimonial struct {
	Quote  string `json:"quote"`
	Author string `json:"author"`
	Role   string `json:"role"`
}

func (t *Testimonial) decode(r *reader) {
	t.Quote = r.str("quote")
	t.Author = r.str("author")
	t.Role = r.str("role")
}

type Testimonials struct {
	Title string        `json:"title"`
	Items []Testimonial `json:"items"`
}

func (*Testimonials) SectionType() SectionType { return TypeTestimonials }

func (t *Testimonials) decode(r *reader) {
	t.Title = r.str("title")
	t.Items = list[Testimonial](r, "items")
}

func (t *Testimonials) missing() []string {
	var m missingCollector
	for i, it := range t.Items {
		m.needAt("items", i, "quote", it.Quote)
		m.needAt("items", i, "author", it.Author)
	}
	return m
}

type QA struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

func (q *QA) decode(r *reader) {
	q.Question = r.str("question")
	q.Answer = r.str("answer")
}

type FAQ struct {
	Title string `json:"title"`
	Items []QA   `json:"items"`
}

func (*FAQ) SectionType() SectionType { return TypeFAQ }

func (f *FAQ) decode(r *reader) {
	f.Title = r.str("title")
	f.Items = list[QA](r, "items")
}

func (f *FAQ) missing() []string {
	var m missingCollector
	for i, it := range f.Items {
		m.needAt("items", i, "question", it.Question)
		m.needAt("items", i, "answer", it.Answer)
	}
	return m
}

type Member struct {
	Name     string `json:"name"`
	Role     string `json:"role"`
	Bio      string `json:"bio"`
	PhotoURL string `json:"photoUrl"`
}

func (mb *Member) decode(r *reader) {
	mb.Name = r.str("name")
	mb.Role = r.str("role")
	mb.Bio = r.str("bio")
	mb.PhotoURL = r.str("photoUrl")
}

type Team struct {
	Title   string   `json:"title"`
	Members []Member `json:"members"`
}

func (*Team) SectionType() SectionType { return TypeTeam }

func (t *Team) decode(r *reader) {
	t.Title = r.str("title")
	t.Members = list[Member](r, "members")
}

func (t *Team) missing() []string {
	var m missingCollector
	for i, mb := range t.Members {
		m.needAt("members", i, "name", mb.Name)
	}
	return m
}

type Stat struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

func (s *Stat) decode(r *reader) {
	s.Value = r.str("value")
	s.Label = r.str("label")
}

type Stats struct {
	Title string `json:"title"`
	Items []Stat `json:"items"`
}

func (*Stats) SectionType() SectionType { return TypeStats }

func (s *Stats) decode(r *reader) {
	s.Title = r.str("title")
	s.Items = list[Stat](r, "items")
}

func (s *Stats) missing() []string {
	var m missingCollector
	for i, it := range s.Items {
		m.needAt("items", i, "value", it.Value)
		m.needAt("items", i, "label", it.Label)
	}
	return m
}

type Process struct {
	Title string       `json:"title"`
	Steps []TitledItem `json:"steps"`
}

func (*Process) SectionType() SectionType { return TypeProcess }

func (p *Process) decode(r *reader) {
	p.Title = r.str("title")
	p.Steps = list[TitledItem](r, "steps")
}

func (p *Process) missing() []string {
	var m missingCollector
	for i, st := range p.Steps {
		m.needAt("steps", i, "title", st.Title)
	}
	return m
}

type Feature struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

func (f *Feature) decode(r *reader) {
	f.Title = r.str("title")
	f.Description = r.str("description")
	f.Icon = r.str("icon")
}

type Features struct {
	Title string    `json:"title"`
	Items []Feature `json:"items"`
}

func (*Features) SectionType() SectionType { return TypeFeatures }

func (f *Features) decode(r *reader) {
	f.Title = r.str("title")
	f.Items = list[Feature](r, "items")
}

func (f *Features) missing() []string {
	var m missingCollector
	for i, it := range f.Items {
		m.needAt("items", i, "title", it.Title)
	}
	return m
}

type CTABanner struct {
	Headline string `json:"headline"`
	Body     string `json:"body"`
	CTAText  string `json:"ctaText"`
	CTAHref  string `json:"ctaHref"`
}

func (*CTABanner) SectionType() SectionType { return TypeCTABanner }

func (c *CTABanner) decode(r *reader) {
	c.Headline = r.str("headline")
	c.Body = r.str("body")
	c.CTAText = r.str("ctaText")
	c.CTAHref = r.str("ctaHref")
}

func (c *CTABanner) missing() []string {
	var m missingCollector
	m.need("headline", c.Headline)
	m.need("ctaText", c.CTAText)
	m.need("ctaHref", c.CTAHref)
	return m
}

type LogoCloud struct {
	Title string       `json:"title"`
	Logos []LinkedLogo `json:"logos"`
}

func (*LogoCloud) SectionType() SectionType { return TypeLogoCloud }

func (l *LogoCloud) decode(r *reader) {
	l.Title = r.str("title")
	l.Logos = list[LinkedLogo](r, "logos")
}

func (l *LogoCloud) missing() []string {
	var m missingCollector
	for i, lg := range l.Logos {
		m.needAt("logos", i, "imageUrl", lg.ImageURL)
	}
	return m
}

type Map struct {
	Title    string `json:"title"`
	Address  string `json:"address"`
	EmbedURL string `json:"embedUrl"`
}

func (*Map) SectionType() SectionType { return TypeMap }

func (mp *Map) decode(r *reader) {
	mp.Title = r.str("title")
	mp.Address = r.str("address")
	mp.EmbedURL = r.str("embedUrl")
}

func (mp *Map) missing() []string {
	var m missingCollector
	m.need("address", mp.Address)
	return m
}

type OpeningHours struct {
	Day   string `json:"day"`
	Hours string `json:"hours"`
}

func (o *OpeningHours) decode(r *reader) {
	o.Day = r.str("day")
	o.Hours = r.str("hours")
}

type Hours struct {
	Title   string         `json:"title"`
	Entries []OpeningHours `json:"entries"`
	Note    string         `json:"note"`
}

func (*Hours) SectionType() SectionType { return TypeHours }

func (h *Hours) decode(r *reader) {
	h.Title = r.str("title")
	h.Entries = list[OpeningHours](r, "entries")
	h.Note = r.str("note")
}

func (h *Hours) missing() []string {
	var m missingCollector
	for i, e := range h.Entries {
		m.needAt("entries", i, "day", e.Day)
		m.needAt("entries", i, "hours", e.Hours)
	}
	return m
}

type ContactBanner struct {
	Headline string `json:"headline"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	CTAText  string `json:"ctaText"`
	CTAHref  string `json:"ctaHref"`
}

func (*ContactBanner) SectionType() SectionType { return TypeContactBanner }

func (c *ContactBanner) decode(r *reader) {
	c.Headline = r.str("headline")
	c.Phone = r.str("phone")
	c.Email = r.str("email")
	c.CTAText = r.str("ctaText")
	c.CTAHref = r.str("ctaHref")
}

func (c *ContactBanner) missing() []string {
	var m missingCollector
	m.need("headline", c.Headline)
	if c.CTAText != "" {
		m.need("ctaHref", c.CTAHref)
	}
	return m
}
