package pagedata

import (
	"fmt"
	"strings"

	"github.com/Builder-Lawyers/site-builder/internal/domain/consts"
)

// Profile is the business information used to seed default content.
type Profile struct {
	Name        string
	Tagline     string
	Description string
	Phone       string
	Email       string
	Address     string
}

// NewSection returns a section of type t with placeholder content.
func NewSection(t SectionType) (Section, error) {
	body := placeholder(t)
	if body == nil {
		return Section{}, fmt.Errorf("unknown section type %q", t)
	}
	return Section{ID: NewID(t), Type: t, Body: body}, nil
}

func section(b Body) Section {
	return Section{ID: NewID(b.SectionType()), Type: b.SectionType(), Body: b}
}

// Default builds the starting document for a page. Core pages get a layout
// suited to their purpose; any other key gets a single text section.
func Default(key consts.PageKey, title string, p Profile) PageData {
	name := orDefault(p.Name, "Your business")
	switch key {
	case consts.PageKeyHome:
		return PageData{
			SEO: SEO{Title: name, Description: p.Tagline},
			Sections: []Section{
				section(&Hero{
					Headline:    name,
					Subheadline: orDefault(p.Tagline, "Welcome to "+name),
					CTAText:     "Contact us",
					CTAHref:     "/contact",
				}),
				section(placeholder(TypeServices)),
				section(&CTABanner{
					Headline: "Ready to get started?",
					Body:     "Get in touch and we'll get back to you within one business day.",
					CTAText:  "Get in touch",
					CTAHref:  "/contact",
				}),
			},
		}
	case consts.PageKeyAbout:
		return PageData{
			SEO: SEO{Title: "About | " + name, Description: p.Tagline},
			Sections: []Section{
				section(&RichText{
					Title: "About " + name,
					Body:  orDefault(p.Description, "Tell your visitors who you are and what makes you different."),
				}),
				section(placeholder(TypeValues)),
			},
		}
	case consts.PageKeyContact:
		return PageData{
			SEO: SEO{Title: "Contact | " + name, Description: "Get in touch with " + name},
			Sections: []Section{
				section(&ContactCard{Title: "Contact us", Phone: p.Phone, Email: p.Email, Address: p.Address}),
				section(placeholder(TypeHours)),
				section(&Map{Title: "Find us", Address: p.Address}),
			},
		}
	}
	title = orDefault(title, titleFromKey(string(key)))
	return PageData{
		SEO: SEO{Title: title + " | " + name},
		Sections: []Section{
			section(&RichText{Title: title, Body: "Write something about " + strings.ToLower(title) + "."}),
		},
	}
}

func placeholder(t SectionType) Body {
	switch t {
	case TypeHero:
		return &Hero{Headline: "Your headline here", Subheadline: "A short sentence about what you do.", CTAText: "Contact us", CTAHref: "/contact"}
	case TypeServices:
		return &Services{Title: "Our services", Items: []ServiceItem{
			{Title: "Service one", Description: "Describe this service."},
			{Title: "Service two", Description: "Describe this service."},
			{Title: "Service three", Description: "Describe this service."},
		}}
	case TypeRichText:
		return &RichText{Title: "Heading", Body: "Write your text here."}
	case TypeValues:
		return &Values{Title: "Our values", Items: []TitledItem{
			{Title: "Quality", Description: "We take pride in our work."},
			{Title: "Honesty", Description: "Clear prices, no surprises."},
			{Title: "Care", Description: "Every customer matters."},
		}}
	case TypeContactCard:
		return &ContactCard{Title: "Contact us"}
	case TypeBackedBy:
		return &BackedBy{Title: "Backed by", Items: []Backer{}}
	case TypeUseCases:
		return &UseCases{Title: "Who we help", Items: []TitledItem{{Title: "Use case", Description: "Describe a typical customer."}}}
	case TypeGallery:
		return &Gallery{Title: "Gallery", Images: []GalleryImage{}}
	case TypeTestimonials:
		return &Testimonials{Title: "What our customers say", Items: []Testimonial{}}
	case TypeFAQ:
		return &FAQ{Title: "Frequently asked questions", Items: []QA{{Question: "Your question?", Answer: "Your answer."}}}
	case TypeTeam:
		return &Team{Title: "Meet the team", Members: []Member{}}
	case TypeStats:
		return &Stats{Title: "", Items: []Stat{{Value: "10+", Label: "Years in business"}}}
	case TypeProcess:
		return &Process{Title: "How it works", Steps: []TitledItem{
			{Title: "Get in touch", Description: "Tell us what you need."},
			{Title: "Get a quote", Description: "We send a clear, fixed price."},
			{Title: "We deliver", Description: "On time, every time."},
		}}
	case TypeFeatures:
		return &Features{Title: "Why choose us", Items: []Feature{{Title: "Feature", Description: "Describe a feature."}}}
	case TypeCTABanner:
		return &CTABanner{Headline: "Ready to get started?", CTAText: "Contact us", CTAHref: "/contact"}
	case TypeLogoCloud:
		return &LogoCloud{Title: "Trusted by", Logos: []LinkedLogo{}}
	case TypeMap:
		return &Map{Title: "Find us"}
	case TypeHours:
		return &Hours{Title: "Opening hours", Entries: []OpeningHours{
			{Day: "Monday - Friday", Hours: "9:00 - 17:00"},
			{Day: "Saturday", Hours: "10:00 - 14:00"},
			{Day: "Sunday", Hours: "Closed"},
		}}
	case TypeContactBanner:
		return &ContactBanner{Headline: "Questions? Call us.", CTAText: "Contact us", CTAHref: "/contact"}
	}
	return nil
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

func titleFromKey(key string) string {
	words := strings.Fields(strings.ReplaceAll(key, "-", " "))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	if len(words) == 0 {
		return "Page"
	}
	return strings.Join(words, " ")
}
