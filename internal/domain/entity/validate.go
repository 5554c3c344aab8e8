package entity

import (
	"fmt"
	"regexp"

	"github.com/Builder-Lawyers/site-builder/internal/domain/consts"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9](?:[a-z0-9-]*[a-z0-9])?$`)

// reservedSlugs would shadow platform hosts under the base domain.
var reservedSlugs = map[string]bool{
	"www": true, "api": true, "app": true, "admin": true, "edge": true, "mail": true, "static": true, "assets": true,
}

// reservedPageKeys collide with the home snapshot (index.html) or with
// paths the server answers before the public page route.
var reservedPageKeys = map[consts.PageKey]bool{
	"index": true, "api": true, "metrics": true, "healthz": true,
}

// ValidateSlug checks a site slug: lowercase letters, digits and dashes,
// 3 to 63 characters, not starting or ending with a dash.
func ValidateSlug(slug string) error {
	if len(slug) < 3 || len(slug) > 63 {
		return fmt.Errorf("slug must be between 3 and 63 characters")
	}
	if !slugPattern.MatchString(slug) {
		return fmt.Errorf("slug may only contain lowercase letters, digits and dashes, and can't start or end with a dash")
	}
	if reservedSlugs[slug] {
		return fmt.Errorf("slug %q is reserved", slug)
	}
	return nil
}

// ValidateExtraPageKey checks the key of a page added next to the core pages.
func ValidateExtraPageKey(key consts.PageKey) error {
	if len(key) == 0 || len(key) > 63 {
		return fmt.Errorf("page key must be between 1 and 63 characters")
	}
	if !slugPattern.MatchString(string(key)) {
		return fmt.Errorf("page key may only contain lowercase letters, digits and dashes, and can't start or end with a dash")
	}
	if key.IsCore() {
		return fmt.Errorf("page %q already exists on every site", key)
	}
	if reservedPageKeys[key] {
		return fmt.Errorf("page key %q is reserved", key)
	}
	return nil
}
