package query

import (
	"context"

	"github.com/Builder-Lawyers/site-builder/internal/application/dto"
	"github.com/Builder-Lawyers/site-builder/internal/application/sites"
	"github.com/Builder-Lawyers/site-builder/internal/infra/auth"
	"github.com/Builder-Lawyers/site-builder/internal/infra/db/repo"
	dbs "github.com/Builder-Lawyers/site-builder/pkg/db"
	"github.com/google/uuid"
)

// SiteURL is the default public address of a site.
func SiteURL(baseDomain, slug string) string {
	return "https://" + slug + "." + baseDomain
}

type GetSite struct {
	uowFactory *dbs.UOWFactory
	urls       sites.URLResolver
	baseDomain string
}

func NewGetSite(factory *dbs.UOWFactory, urls sites.URLResolver, baseDomain string) *GetSite {
	return &GetSite{uowFactory: factory, urls: urls, baseDomain: baseDomain}
}

func (q *GetSite) Query(ctx context.Context, siteID uuid.UUID, identity *auth.Identity) (_ dto.SiteResponse, err error) {
	uow := q.uowFactory.GetUoW()
	tx, err := uow.Begin(ctx)
	if err != nil {
		return dto.SiteResponse{}, err
	}
	defer uow.Finalize(&err)

	site, err := sites.Owned(ctx, tx, siteID, identity)
	if err != nil {
		return dto.SiteResponse{}, err
	}
	profile, err := repo.NewProfileRepo(tx).GetProfile(ctx, site.ID)
	if err != nil {
		return dto.SiteResponse{}, err
	}
	logoURL, err := sites.LogoURL(ctx, tx, q.urls, profile)
	if err != nil {
		return dto.SiteResponse{}, err
	}

	return dto.MapSiteToResponse(site, SiteURL(q.baseDomain, site.Slug), dto.MapProfileToResponse(profile, logoURL)), nil
}

type ListSites struct {
	uowFactory *dbs.UOWFactory
	baseDomain string
}

func NewListSites(factory *dbs.UOWFactory, baseDomain string) *ListSites {
	return &ListSites{uowFactory: factory, baseDomain: baseDomain}
}

// Query lists the caller's sites, newest first.
func (q *ListSites) Query(ctx context.Context, identity *auth.Identity) (_ []dto.SiteResponse, err error) {
	uow := q.uowFactory.GetUoW()
	tx, err := uow.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Finalize(&err)

	list, err := repo.NewSiteRepo(tx).ListSitesByOwner(ctx, identity.UserID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SiteResponse, 0, len(list))
	for _, site := range list {
		out = append(out, dto.MapSiteToResponse(site, SiteURL(q.baseDomain, site.Slug), nil))
	}
	return out, nil
}

type GetProfile struct {
	uowFactory *dbs.UOWFactory
	urls       sites.URLResolver
}

func NewGetProfile(factory *dbs.UOWFactory, urls sites.URLResolver) *GetProfile {
	return &GetProfile{uowFactory: factory, urls: urls}
}

func (q *GetProfile) Query(ctx context.Context, siteID uuid.UUID, identity *auth.Identity) (_ *dto.ProfileResponse, err error) {
	uow := q.uowFactory.GetUoW()
	tx, err := uow.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Finalize(&err)

	site, err := sites.Owned(ctx, tx, siteID, identity)
	if err != nil {
		return nil, err
	}
	profile, err := repo.NewProfileRepo(tx).GetProfile(ctx, site.ID)
	if err != nil {
		return nil, err
	}
	logoURL, err := sites.LogoURL(ctx, tx, q.urls, profile)
	if err != nil {
		return nil, err
	}
	return dto.MapProfileToResponse(profile, logoURL), nil
}
