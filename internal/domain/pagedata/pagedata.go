// Package pagedata defines the structured content document stored per page:
// SEO fields plus an ordered list of sections, each one of a fixed set of
// variants with its own field contract.
//
// Documents arrive as arbitrary JSON (admin editors, AI output, database rows)
// and go through Parse, which checks every field's type, fills defaults, drops
// unknown fields, and reports every problem it finds at once.
package pagedata

import (
	"encoding/json"
	"fmt"
)

type SectionType string

const (
	TypeHero          SectionType = "hero"
	TypeServices      SectionType = "services"
	TypeRichText      SectionType = "richtext"
	TypeValues        SectionType = "values"
	TypeContactCard   SectionType = "contact_card"
	TypeBackedBy      SectionType = "backed_by"
	TypeUseCases      SectionType = "use_cases"
	TypeGallery       SectionType = "gallery"
	TypeTestimonials  SectionType = "testimonials"
	TypeFAQ           SectionType = "faq"
	TypeTeam          SectionType = "team"
	TypeStats         SectionType = "stats"
	TypeProcess       SectionType = "process"
	TypeFeatures      SectionType = "features"
	TypeCTABanner     SectionType = "cta_banner"
	TypeLogoCloud     SectionType = "logo_cloud"
	TypeMap           SectionType = "map"
	TypeHours         SectionType = "hours"
	TypeContactBanner SectionType = "contact_banner"
)

// registry maps every known section type to a constructor of its empty body.
// Order matters for Types().
var registry = []struct {
	t   SectionType
	new func() Body
}{
	{TypeHero, func() Body { return &Hero{} }},
	{TypeServices, func() Body { return &Services{} }},
	{TypeRichText, func() Body { return &RichText{} }},
	{TypeValues, func() Body { return &Values{} }},
	{TypeContactCard, func() Body { return &ContactCard{} }},
	{TypeBackedBy, func() Body { return &BackedBy{} }},
	{TypeUseCases, func() Body { return &UseCases{} }},
	{TypeGallery, func() Body { return &Gallery{} }},
	{TypeTestimonials, func() Body { return &Testimonials{} }},
	{TypeFAQ, func() Body { return &FAQ{} }},
	{TypeTeam, func() Body { return &Team{} }},
	{TypeStats, func() Body { return &Stats{} }},
	{TypeProcess, func() Body { return &Process{} }},
	{TypeFeatures, func() Body { return &Features{} }},
	{TypeCTABanner, func() Body { return &CTABanner{} }},
	{TypeLogoCloud, func() Body { return &LogoCloud{} }},
	{TypeMap, func() Body { return &Map{} }},
	{TypeHours, func() Body { return &Hours{} }},
	{TypeContactBanner, func() Body { return &ContactBanner{} }},
}

// Types returns every known section type in a stable order.
func Types() []SectionType {
	out := make([]SectionType, 0, len(registry))
	for _, r := range registry {
		out = append(out, r.t)
	}
	return out
}

func (t SectionType) Known() bool {
	return newBody(t) != nil
}

func newBody(t SectionType) Body {
	for _, r := range registry {
		if r.t == t {
			return r.new()
		}
	}
	return nil
}

// Body is one section variant. Implementations are the structs in sections.go.
type Body interface {
	SectionType() SectionType
	decode(r *reader)
	// missing lists the fields that must be filled in before publishing,
	// relative to the section (e.g. "items[1].answer").
	missing() []string
}

type SEO struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	OGImage     string `json:"ogImage"`
}

type Section struct {
	ID   string
	Type SectionType
	Body Body
}

type PageData struct {
	SEO      SEO       `json:"seo"`
	Sections []Section `json:"sections"`
}

func (s Section) MarshalJSON() ([]byte, error) {
	if s.Body == nil {
		return nil, fmt.Errorf("section %q has no body", s.ID)
	}
	raw, err := json.Marshal(s.Body)
	if err != nil {
		return nil, err
	}
	fields := map[string]json.RawMessage{}
	if err = json.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}
	id, _ := json.Marshal(s.ID)
	typ, _ := json.Marshal(s.Body.SectionType())
	fields["id"] = id
	fields["type"] = typ
	return json.Marshal(fields)
}

func (p PageData) MarshalJSON() ([]byte, error) {
	sections := p.Sections
	if sections == nil {
		sections = []Section{}
	}
	return json.Marshal(struct {
		SEO      SEO       `json:"seo"`
		Sections []Section `json:"sections"`
	}{p.SEO, sections})
}

// UnmarshalJSON runs the full Parse pipeline, so decoding into a PageData
// never yields an unchecked document.
func (p *PageData) UnmarshalJSON(data []byte) error {
	parsed, err := Parse(data)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// Section returns the section with the given id.
func (p PageData) Section(id string) (Section, bool) {
	for _, s := range p.Sections {
		if s.ID == id {
			return s, true
		}
	}
	return Section{}, false
}
