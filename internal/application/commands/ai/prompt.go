package ai

import (
	"fmt"
	"strings"

	"github.com/Builder-Lawyers/site-builder/internal/domain/entity"
)

const contract = `Reply with one JSON object and nothing else:
{"seo":{"title":string,"description":string,"ogImage":string},"sections":[section,...]}
Every section is {"type":<type>, ...fields}. Known types and their fields:
- hero: headline, subheadline, ctaText, ctaHref, imageUrl
- services: title, intro, items[{title, description, price, icon}]
- richtext: title, body
- values: title, items[{title, description}]
- contact_card: title, phone, email, address, note
- backed_by: title, items[{name, logoUrl, href}]
- use_cases: title, items[{title, description}]
- gallery: title, images[{url, alt, caption}]
- testimonials: title, items[{quote, author, role}]
- faq: title, items[{question, answer}]
- team: title, members[{name, role, bio, photoUrl}]
- stats: title, items[{value, label}]
- process: title, steps[{title, description}]
- features: title, items[{title, description, icon}]
- cta_banner: headline, body, ctaText, ctaHref
- logo_cloud: title, logos[{name, imageUrl, href}]
- map: title, address, embedUrl
- hours: title, entries[{day, hours}], note
- contact_banner: headline, phone, email, ctaText, ctaHref
All field values are strings. Leave image and embed URLs empty unless the brief gives one.
Links are relative paths ("/contact"), https URLs, mailto: or tel: links.
Write plain text, no Markdown or HTML. Use only facts from the business details and the brief.`

func systemPrompt() string {
	return "You write website copy for small businesses. " + contract
}

func userPrompt(profile *entity.BusinessProfile, pageKey, brief string) string {
	var b strings.Builder
	b.WriteString("Business details:\n")
	field := func(name, value string) {
		if value != "" {
			fmt.Fprintf(&b, "- %s: %s\n", name, value)
		}
	}
	field("name", profile.Name)
	field("tagline", profile.Tagline)
	field("description", profile.Description)
	field("industry", profile.Industry)
	field("city", profile.City)
	field("phone", profile.Phone)
	field("email", profile.Email)
	field("address", profile.Address)
	if pageKey != "" {
		fmt.Fprintf(&b, "\nWrite the %q page.\n", pageKey)
	}
	fmt.Fprintf(&b, "\nBrief:\n%s\n", brief)
	return b.String()
}
