package entity

import (
	"time"

	"github.com/Builder-Lawyers/site-builder/internal/domain/consts"
	"github.com/Builder-Lawyers/site-builder/internal/domain/pagedata"
	"github.com/google/uuid"
)

type Site struct {
	ID        uuid.UUID
	OwnerID   uuid.UUID
	Slug      string
	Template  string
	Status    consts.SiteStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (s *Site) IsPublished() bool {
	return s.Status == consts.SiteStatusPublished
}

type BusinessProfile struct {
	SiteID      uuid.UUID
	Name        string
	Tagline     string
	Description string
	Industry    string
	Phone       string
	Email       string
	Address     string
	City        string
	Socials     map[string]string
	LogoAssetID *uuid.UUID
	UpdatedAt   time.Time
}

// Seed is the subset of the profile used to pre-fill default page content.
func (p *BusinessProfile) Seed() pagedata.Profile {
	return pagedata.Profile{
		Name:        p.Name,
		Tagline:     p.Tagline,
		Description: p.Description,
		Phone:       p.Phone,
		Email:       p.Email,
		Address:     p.Address,
	}
}

type Page struct {
	ID          uuid.UUID
	SiteID      uuid.UUID
	Key         consts.PageKey
	Title       string
	Data        pagedata.PageData
	Status      consts.PageStatus
	Position    int
	PublishedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (p *Page) IsPublished() bool {
	return p.Status == consts.PageStatusPublished
}

type Domain struct {
	ID        uuid.UUID
	SiteID    uuid.UUID
	Hostname  string
	Status    consts.DomainStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Asset struct {
	ID        uuid.UUID
	SiteID    uuid.UUID
	Path      string
	MimeType  string
	Size      int64
	CreatedAt time.Time
}
