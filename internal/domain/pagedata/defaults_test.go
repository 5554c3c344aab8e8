package pagedata_test

import (
	"encoding/json"
	"testing"

	"github.com/Builder-Lawyers/site-builder/internal/domain/consts"
	"github.com/Builder-Lawyers/site-builder/internal/domain/pagedata"
	"github.com/stretchr/testify/require"
)

var fullProfile = pagedata.Profile{
	Name:        "Bright Dental",
	Tagline:     "Family dentistry in the heart of town",
	Description: "We have been caring for smiles since 1998.",
	Phone:       "+1 555 0100",
	Email:       "hello@brightdental.test",
	Address:     "12 Main St, Springfield",
}

func TestDefaultCorePagesArePublishableWithFullProfile(t *testing.T) {
	for _, key := range consts.CorePages {
		doc := pagedata.Default(key, "", fullProfile)
		require.NoError(t, doc.CheckPublishable(), "page %s", key)

		// defaults survive a round trip through the validator untouched
		raw, err := json.Marshal(doc)
		require.NoError(t, err)
		parsed, err := pagedata.Parse(raw)
		require.NoError(t, err)
		require.Equal(t, doc, parsed)
	}
}

func TestDefaultHomeIsSeededFromProfile(t *testing.T) {
	doc := pagedata.Default(consts.PageKeyHome, "", fullProfile)

	require.Equal(t, "Bright Dental", doc.SEO.Title)
	hero, ok := doc.Sections[0].Body.(*pagedata.Hero)
	require.True(t, ok)
	require.Equal(t, "Bright Dental", hero.Headline)
	require.Equal(t, "Family dentistry in the heart of town", hero.Subheadline)
}

func TestDefaultContactNeedsContactDetailsToPublish(t *testing.T) {
	doc := pagedata.Default(consts.PageKeyContact, "", pagedata.Profile{Name: "No Details Ltd"})

	err := doc.CheckPublishable()
	require.ElementsMatch(t, []string{
		"sections[0].phone|email|address: required for publishing",
		"sections[2].address: required for publishing",
	}, issuesOf(t, err))
}

func TestDefaultExtraPageUsesTitle(t *testing.T) {
	doc := pagedata.Default(consts.PageKey("pricing-plans"), "", fullProfile)
	require.Equal(t, "Pricing Plans | Bright Dental", doc.SEO.Title)

	text, ok := doc.Sections[0].Body.(*pagedata.RichText)
	require.True(t, ok)
	require.Equal(t, "Pricing Plans", text.Title)

	doc = pagedata.Default(consts.PageKey("careers"), "Join us", fullProfile)
	require.Equal(t, "Join us | Bright Dental", doc.SEO.Title)
}

func TestNewSectionRejectsUnknownType(t *testing.T) {
	_, err := pagedata.NewSection("marquee")
	require.EqualError(t, err, `unknown section type "marquee"`)
}

func TestCheckPublishableReportsBlankRequiredFields(t *testing.T) {
	raw := `{
		"seo": {"title": ""},
		"sections": [
			{"id": "h", "type": "hero", "ctaText": "Book"},
			{"id": "f", "type": "faq", "items": [{"question": "Open late?"}]},
			{"id": "t", "type": "testimonials", "items": [{"quote": "Great"}]},
			{"id": "c", "type": "cta_banner", "headline": "Go"},
			{"id": "g", "type": "gallery", "images": [{"alt": "no url"}]},
			{"id": "r", "type": "richtext", "title": "Only a title"}
		]
	}`
	doc, err := pagedata.Parse([]byte(raw))
	require.NoError(t, err)

	require.ElementsMatch(t, []string{
		"seo.title: required for publishing",
		"sections[0].headline: required for publishing",
		"sections[0].ctaHref: required for publishing",
		"sections[1].items[0].answer: required for publishing",
		"sections[2].items[0].author: required for publishing",
		"sections[3].ctaText: required for publishing",
		"sections[3].ctaHref: required for publishing",
		"sections[4].images[0].url: required for publishing",
		"sections[5].body: required for publishing",
	}, issuesOf(t, doc.CheckPublishable()))
}
