package render

import (
	"fmt"
	"html/template"
	"net/url"
	"strings"

	"github.com/Builder-Lawyers/site-builder/internal/domain/entity"
	"github.com/Builder-Lawyers/site-builder/internal/domain/pagedata"
)

func funcMap(set *themeSet) template.FuncMap {
	return template.FuncMap{
		"section": func(s pagedata.Section, business *entity.BusinessProfile) (template.HTML, error) {
			if set == nil {
				return "", fmt.Errorf("section rendered without a theme")
			}
			return set.renderSection(s, business)
		},
		"safeURL": func(raw string) template.URL {
			u, _ := SafeURL(raw)
			return u
		},
		"embedURL": func(raw string) template.URL {
			u, err := url.Parse(strings.TrimSpace(raw))
			if err != nil || u.Scheme != "https" || u.Host == "" {
				return ""
			}
			return template.URL(u.String())
		},
		"mapsURL": func(address string) template.URL {
			return template.URL("https://www.google.com/maps/search/?api=1&query=" + url.QueryEscape(address))
		},
		"telURL": func(phone string) template.URL {
			var b strings.Builder
			for _, r := range phone {
				if (r >= '0' && r <= '9') || (r == '+' && b.Len() == 0) {
					b.WriteRune(r)
				}
			}
			if b.Len() == 0 {
				return ""
			}
			return template.URL("tel:" + b.String())
		},
		"mailtoURL": func(email string) template.URL {
			if !strings.Contains(email, "@") || strings.ContainsAny(email, " <>\"") {
				return ""
			}
			return template.URL("mailto:" + email)
		},
		"paragraphs": paragraphs,
		"inc":        func(i int) int { return i + 1 },
	}
}

var allowedSchemes = map[string]bool{"http": true, "https": true, "mailto": true, "tel": true}

// SafeURL accepts http, https, mailto and tel links plus relative references.
// Anything else (javascript:, data:, ...) is rejected and rendered as nothing.
func SafeURL(raw string) (template.URL, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", true
	}
	if strings.ContainsAny(raw, "\x00\r\n\t") {
		return "", false
	}
	// browsers read "\\" as "//", so any pair of leading slashes is a
	// scheme-relative link that leaves the site
	if len(raw) >= 2 && isSlash(raw[0]) && isSlash(raw[1]) {
		return "", false
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", false
	}
	if u.Scheme == "" {
		return template.URL(raw), true
	}
	if !allowedSchemes[strings.ToLower(u.Scheme)] {
		return "", false
	}
	if (u.Scheme == "http" || u.Scheme == "https") && u.Host == "" {
		return "", false
	}
	return template.URL(raw), true
}

func isSlash(c byte) bool { return c == '/' || c == '\\' }

// paragraphs splits text on blank lines.
func paragraphs(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	var out []string
	for _, p := range strings.Split(text, "\n\n") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func socialLabel(key string) string {
	switch strings.ToLower(key) {
	case "x", "twitter":
		return "X"
	case "linkedin":
		return "LinkedIn"
	case "youtube":
		return "YouTube"
	case "tiktok":
		return "TikTok"
	}
	if key == "" {
		return key
	}
	return strings.ToUpper(key[:1]) + key[1:]
}
