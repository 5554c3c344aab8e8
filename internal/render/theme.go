package render

import (
	"fmt"
	"html/template"
	"strings"

	"gopkg.in/yaml.v3"
)

const DefaultTheme = "classic"

type Palette struct {
	Primary    string `yaml:"primary"`
	Accent     string `yaml:"accent"`
	Background string `yaml:"background"`
	Surface    string `yaml:"surface"`
	Text       string `yaml:"text"`
	Muted      string `yaml:"muted"`
}

type Fonts struct {
	Heading string `yaml:"heading"`
	Body    string `yaml:"body"`
	Import  string `yaml:"import"`
}

type Theme struct {
	Key               string  `yaml:"key"`
	Name              string  `yaml:"name"`
	Description       string  `yaml:"description"`
	HeroLayout        string  `yaml:"heroLayout"`
	Radius            string  `yaml:"radius"`
	Spacing           string  `yaml:"spacing"`
	MaxWidth          string  `yaml:"maxWidth"`
	UppercaseHeadings bool    `yaml:"uppercaseHeadings"`
	Fonts             Fonts   `yaml:"fonts"`
	Palette           Palette `yaml:"palette"`
}

type manifest struct {
	Default string  `yaml:"default"`
	Themes  []Theme `yaml:"themes"`
}

func parseManifest(raw []byte) (*manifest, error) {
	var m manifest
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("err parsing theme manifest, %w", err)
	}
	if len(m.Themes) == 0 {
		return nil, fmt.Errorf("theme manifest has no themes")
	}
	seen := map[string]bool{}
	for _, t := range m.Themes {
		if t.Key == "" {
			return nil, fmt.Errorf("theme manifest has a theme without key")
		}
		if seen[t.Key] {
			return nil, fmt.Errorf("theme %q is defined twice", t.Key)
		}
		seen[t.Key] = true
	}
	if m.Default == "" {
		m.Default = DefaultTheme
	}
	if !seen[m.Default] {
		return nil, fmt.Errorf("default theme %q is not defined", m.Default)
	}
	return &m, nil
}

// variables renders the theme as CSS custom properties. Values come from the
// embedded manifest only.
func (t Theme) variables() string {
	headingCase := "none"
	if t.UppercaseHeadings {
		headingCase = "uppercase"
	}
	var b strings.Builder
	b.WriteString(":root{")
	for _, kv := range [][2]string{
		{"--primary", t.Palette.Primary},
		{"--accent", t.Palette.Accent},
		{"--bg", t.Palette.Background},
		{"--surface", t.Palette.Surface},
		{"--text", t.Palette.Text},
		{"--muted", t.Palette.Muted},
		{"--font-heading", t.Fonts.Heading},
		{"--font-body", t.Fonts.Body},
		{"--radius", t.Radius},
		{"--spacing", t.Spacing},
		{"--max-width", t.MaxWidth},
		{"--heading-case", headingCase},
	} {
		if kv[1] == "" {
			continue
		}
		fmt.Fprintf(&b, "%s:%s;", kv[0], kv[1])
	}
	b.WriteString("}\n")
	return b.String()
}

func (t Theme) css(base string) template.CSS {
	return template.CSS(t.variables() + base)
}
