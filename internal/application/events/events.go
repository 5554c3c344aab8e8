package events

import "github.com/google/uuid"

// SitePublished asks the outbox processor to (re)build the static snapshot of
// every published page of the site.
type SitePublished struct {
	SiteID uuid.UUID `json:"siteID"`
}

func (e SitePublished) GetType() string {
	return "SitePublished"
}

// SiteUnpublished removes the snapshot stored under Slug.
type SiteUnpublished struct {
	SiteID uuid.UUID `json:"siteID"`
	Slug   string    `json:"slug"`
}

func (e SiteUnpublished) GetType() string {
	return "SiteUnpublished"
}

// SiteDeleted removes the snapshot under Slug and every uploaded asset.
type SiteDeleted struct {
	SiteID uuid.UUID `json:"siteID"`
	Slug   string    `json:"slug"`
}

func (e SiteDeleted) GetType() string {
	return "SiteDeleted"
}
