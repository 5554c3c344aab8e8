package dto

import (
	"github.com/Builder-Lawyers/site-builder/internal/domain/entity"
	"github.com/Builder-Lawyers/site-builder/internal/render"
)

func MapSiteToResponse(site *entity.Site, url string, profile *ProfileResponse) SiteResponse {
	return SiteResponse{
		ID:        site.ID,
		Slug:      site.Slug,
		Template:  site.Template,
		Status:    string(site.Status),
		URL:       url,
		Profile:   profile,
		CreatedAt: site.CreatedAt,
		UpdatedAt: site.UpdatedAt,
	}
}

func MapProfileToResponse(p *entity.BusinessProfile, logoURL string) *ProfileResponse {
	socials := p.Socials
	if socials == nil {
		socials = map[string]string{}
	}
	return &ProfileResponse{
		Name:        p.Name,
		Tagline:     p.Tagline,
		Description: p.Description,
		Industry:    p.Industry,
		Phone:       p.Phone,
		Email:       p.Email,
		Address:     p.Address,
		City:        p.City,
		Socials:     socials,
		LogoAssetID: p.LogoAssetID,
		LogoURL:     logoURL,
	}
}

func MapPageToSummary(p *entity.Page) PageSummary {
	return PageSummary{
		ID:          p.ID,
		Key:         string(p.Key),
		Title:       p.Title,
		Status:      string(p.Status),
		Position:    p.Position,
		PublishedAt: p.PublishedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func MapPageToResponse(p *entity.Page) PageResponse {
	return PageResponse{PageSummary: MapPageToSummary(p), Data: p.Data}
}

func MapPublishResult(site *entity.Site, pages []*entity.Page) PublishResponse {
	summaries := make([]PageSummary, 0, len(pages))
	for _, p := range pages {
		summaries = append(summaries, MapPageToSummary(p))
	}
	return PublishResponse{SiteID: site.ID, Status: string(site.Status), Pages: summaries}
}

func MapDomainToResponse(d *entity.Domain) DomainResponse {
	return DomainResponse{
		ID:        d.ID,
		Hostname:  d.Hostname,
		Status:    string(d.Status),
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func MapAssetToResponse(a *entity.Asset, url string) AssetResponse {
	return AssetResponse{
		ID:        a.ID,
		Path:      a.Path,
		URL:       url,
		MimeType:  a.MimeType,
		Size:      a.Size,
		CreatedAt: a.CreatedAt,
	}
}

func MapThemeToResponse(t render.Theme) TemplateResponse {
	return TemplateResponse{
		Key:         t.Key,
		Name:        t.Name,
		Description: t.Description,
		Primary:     t.Palette.Primary,
		Accent:      t.Palette.Accent,
	}
}
