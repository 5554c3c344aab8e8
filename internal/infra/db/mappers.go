package db

import (
	"encoding/json"
	"fmt"

	"github.com/Builder-Lawyers/site-builder/internal/application/events"
	"github.com/Builder-Lawyers/site-builder/internal/domain/consts"
	"github.com/Builder-Lawyers/site-builder/internal/domain/entity"
	"github.com/Builder-Lawyers/site-builder/internal/domain/pagedata"
)

func MapSiteModelToEntity(m Site) *entity.Site {
	return &entity.Site{
		ID:        m.ID,
		OwnerID:   m.OwnerID,
		Slug:      m.Slug,
		Template:  m.Template,
		Status:    consts.SiteStatus(m.Status),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func MapProfileModelToEntity(m BusinessProfile) (*entity.BusinessProfile, error) {
	socials := map[string]string{}
	if len(m.Socials) > 0 {
		if err := json.Unmarshal(m.Socials, &socials); err != nil {
			return nil, fmt.Errorf("err unmarshalling socials of site %v, %v", m.SiteID, err)
		}
	}
	return &entity.BusinessProfile{
		SiteID:      m.SiteID,
		Name:        m.Name,
		Tagline:     m.Tagline,
		Description: m.Description,
		Industry:    m.Industry,
		Phone:       m.Phone,
		Email:       m.Email,
		Address:     m.Address,
		City:        m.City,
		Socials:     socials,
		LogoAssetID: m.LogoAssetID,
		UpdatedAt:   m.UpdatedAt,
	}, nil
}

func MapProfileEntityToModel(p *entity.BusinessProfile) (BusinessProfile, error) {
	socials := p.Socials
	if socials == nil {
		socials = map[string]string{}
	}
	raw, err := json.Marshal(socials)
	if err != nil {
		return BusinessProfile{}, fmt.Errorf("err marshalling socials, %v", err)
	}
	return BusinessProfile{
		SiteID:      p.SiteID,
		Name:        p.Name,
		Tagline:     p.Tagline,
		Description: p.Description,
		Industry:    p.Industry,
		Phone:       p.Phone,
		Email:       p.Email,
		Address:     p.Address,
		City:        p.City,
		Socials:     raw,
		LogoAssetID: p.LogoAssetID,
		UpdatedAt:   p.UpdatedAt,
	}, nil
}

// MapPageModelToEntity re-validates the stored document, so a row edited by
// hand into an invalid shape is reported instead of rendered.
func MapPageModelToEntity(m Page) (*entity.Page, error) {
	data, err := pagedata.Parse(m.Data)
	if err != nil {
		return nil, fmt.Errorf("stored data of page %s is invalid, %w", m.Key, err)
	}
	return &entity.Page{
		ID:          m.ID,
		SiteID:      m.SiteID,
		Key:         consts.PageKey(m.Key),
		Title:       m.Title,
		Data:        data,
		Status:      consts.PageStatus(m.Status),
		Position:    m.Position,
		PublishedAt: m.PublishedAt,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}, nil
}

func MapPageEntityToModel(p *entity.Page) (Page, error) {
	raw, err := json.Marshal(p.Data)
	if err != nil {
		return Page{}, fmt.Errorf("err marshalling page data, %v", err)
	}
	return Page{
		ID:          p.ID,
		SiteID:      p.SiteID,
		Key:         string(p.Key),
		Title:       p.Title,
		Data:        raw,
		Status:      string(p.Status),
		Position:    p.Position,
		PublishedAt: p.PublishedAt,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}, nil
}

func MapDomainModelToEntity(m Domain) *entity.Domain {
	return &entity.Domain{
		ID:        m.ID,
		SiteID:    m.SiteID,
		Hostname:  m.Hostname,
		Status:    consts.DomainStatus(m.Status),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func MapAssetModelToEntity(m Asset) *entity.Asset {
	return &entity.Asset{
		ID:        m.ID,
		SiteID:    m.SiteID,
		Path:      m.Path,
		MimeType:  m.MimeType,
		Size:      m.Size,
		CreatedAt: m.CreatedAt,
	}
}

func MapOutboxModelToSitePublished(m Outbox) (events.SitePublished, error) {
	var event events.SitePublished
	if err := json.Unmarshal(m.Payload, &event); err != nil {
		return event, fmt.Errorf("err unmarshalling %s payload, %v", m.Event, err)
	}
	return event, nil
}

func MapOutboxModelToSiteUnpublished(m Outbox) (events.SiteUnpublished, error) {
	var event events.SiteUnpublished
	if err := json.Unmarshal(m.Payload, &event); err != nil {
		return event, fmt.Errorf("err unmarshalling %s payload, %v", m.Event, err)
	}
	return event, nil
}

func MapOutboxModelToSiteDeleted(m Outbox) (events.SiteDeleted, error) {
	var event events.SiteDeleted
	if err := json.Unmarshal(m.Payload, &event); err != nil {
		return event, fmt.Errorf("err unmarshalling %s payload, %v", m.Event, err)
	}
	return event, nil
}
