package pagedata

import "fmt"

// CheckPublishable reports the fields that must be filled before the page can
// go live. Structural validity is Parse's job; this only looks for blanks.
func (p PageData) CheckPublishable() error {
	var errs issues
	if p.SEO.Title == "" {
		errs.add("seo.title", "required for publishing")
	}
	for i, s := range p.Sections {
		if s.Body == nil {
			errs.add(fmt.Sprintf("sections[%d]", i), "missing body")
			continue
		}
		for _, field := range s.Body.missing() {
			errs.add(fmt.Sprintf("sections[%d].%s", i, field), "required for publishing")
		}
	}
	return errs.err()
}
