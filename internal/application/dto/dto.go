package dto

import (
	"encoding/json"
	"time"

	"github.com/Builder-Lawyers/site-builder/internal/domain/pagedata"
	"github.com/google/uuid"
)

type ErrorResponse struct {
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

type CreateSiteRequest struct {
	Slug         string `json:"slug" validate:"required,min=3,max=63"`
	Template     string `json:"template" validate:"omitempty,max=40"`
	BusinessName string `json:"businessName" validate:"required,max=200"`
	Tagline      string `json:"tagline" validate:"max=300"`
}

type UpdateSiteRequest struct {
	Slug     *string `json:"slug" validate:"omitempty,min=3,max=63"`
	Template *string `json:"template" validate:"omitempty,max=40"`
}

type SiteResponse struct {
	ID        uuid.UUID        `json:"id"`
	Slug      string           `json:"slug"`
	Template  string           `json:"template"`
	Status    string           `json:"status"`
	URL       string           `json:"url"`
	Profile   *ProfileResponse `json:"profile,omitempty"`
	CreatedAt time.Time        `json:"createdAt"`
	UpdatedAt time.Time        `json:"updatedAt"`
}

type UpdateProfileRequest struct {
	Name        string            `json:"name" validate:"required,max=200"`
	Tagline     string            `json:"tagline" validate:"max=300"`
	Description string            `json:"description" validate:"max=5000"`
	Industry    string            `json:"industry" validate:"max=100"`
	Phone       string            `json:"phone" validate:"max=50"`
	Email       string            `json:"email" validate:"omitempty,email,max=254"`
	Address     string            `json:"address" validate:"max=300"`
	City        string            `json:"city" validate:"max=100"`
	Socials     map[string]string `json:"socials" validate:"max=20,dive,keys,min=1,max=40,endkeys,max=500"`
	LogoAssetID *uuid.UUID        `json:"logoAssetId"`
}

type ProfileResponse struct {
	Name        string            `json:"name"`
	Tagline     string            `json:"tagline"`
	Description string            `json:"description"`
	Industry    string            `json:"industry"`
	Phone       string            `json:"phone"`
	Email       string            `json:"email"`
	Address     string            `json:"address"`
	City        string            `json:"city"`
	Socials     map[string]string `json:"socials"`
	LogoAssetID *uuid.UUID        `json:"logoAssetId"`
	LogoURL     string            `json:"logoUrl,omitempty"`
}

type PageSummary struct {
	ID          uuid.UUID  `json:"id"`
	Key         string     `json:"key"`
	Title       string     `json:"title"`
	Status      string     `json:"status"`
	Position    int        `json:"position"`
	PublishedAt *time.Time `json:"publishedAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

type PageResponse struct {
	PageSummary
	Data pagedata.PageData `json:"data"`
}

type CreatePageRequest struct {
	Key   string `json:"key" validate:"required,min=1,max=63"`
	Title string `json:"title" validate:"required,max=120"`
}

type SavePageRequest struct {
	Title *string         `json:"title" validate:"omitempty,min=1,max=120"`
	Data  json.RawMessage `json:"data" validate:"required"`
}

type PublishResponse struct {
	SiteID uuid.UUID     `json:"siteId"`
	Status string        `json:"status"`
	Pages  []PageSummary `json:"pages"`
}

type ValidatePageDataResponse struct {
	Valid  bool               `json:"valid"`
	Data   *pagedata.PageData `json:"data,omitempty"`
	Errors []string           `json:"errors,omitempty"`
}

type SectionTypesResponse struct {
	Types []pagedata.SectionType `json:"types"`
}

type AddDomainRequest struct {
	Hostname string `json:"hostname" validate:"required,max=253"`
}

type SetDomainStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending active blocked"`
}

type DomainResponse struct {
	ID        uuid.UUID `json:"id"`
	Hostname  string    `json:"hostname"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type VerifyDomainResponse struct {
	Domain   DomainResponse `json:"domain"`
	Verified bool           `json:"verified"`
	Expected string         `json:"expected"`
	Observed string         `json:"observed"`
}

type CheckDomainRequest struct {
	Domain string `json:"domain" validate:"required,fqdn"`
}

type DomainAvailability struct {
	Available bool `json:"available"`
}

type AssetResponse struct {
	ID        uuid.UUID `json:"id"`
	Path      string    `json:"path"`
	URL       string    `json:"url"`
	MimeType  string    `json:"mimeType"`
	Size      int64     `json:"size"`
	CreatedAt time.Time `json:"createdAt"`
}

type GenerateContentRequest struct {
	Brief   string `json:"brief" validate:"required,min=10,max=4000"`
	PageKey string `json:"pageKey" validate:"omitempty,max=63"`
}

type GenerateContentResponse struct {
	Data pagedata.PageData `json:"data"`
}

type TemplateResponse struct {
	Key         string `json:"key"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Primary     string `json:"primary"`
	Accent      string `json:"accent"`
}
