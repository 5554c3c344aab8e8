package consts

type SiteStatus string

const (
	SiteStatusDraft     SiteStatus = "draft"
	SiteStatusPublished SiteStatus = "published"
)

type PageStatus string

const (
	PageStatusDraft     PageStatus = "draft"
	PageStatusPublished PageStatus = "published"
)

type DomainStatus string

const (
	DomainStatusPending DomainStatus = "pending"
	DomainStatusActive  DomainStatus = "active"
	DomainStatusBlocked DomainStatus = "blocked"
)

func (s DomainStatus) Valid() bool {
	switch s {
	case DomainStatusPending, DomainStatusActive, DomainStatusBlocked:
		return true
	}
	return false
}

type PageKey string

const (
	PageKeyHome    PageKey = "home"
	PageKeyAbout   PageKey = "about"
	PageKeyContact PageKey = "contact"
)

// CorePages are created with every site and can't be deleted.
var CorePages = []PageKey{PageKeyHome, PageKeyAbout, PageKeyContact}

func (k PageKey) IsCore() bool {
	for _, c := range CorePages {
		if k == c {
			return true
		}
	}
	return false
}

type OutboxStatus int

const (
	NotProcessed OutboxStatus = iota
	Processing
	Processed
	InError
)
