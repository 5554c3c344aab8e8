package site

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/Builder-Lawyers/site-builder/internal/application/errs"
	"github.com/Builder-Lawyers/site-builder/internal/application/events"
	"github.com/Builder-Lawyers/site-builder/internal/application/sites"
	"github.com/Builder-Lawyers/site-builder/internal/domain/consts"
	"github.com/Builder-Lawyers/site-builder/internal/domain/entity"
	"github.com/Builder-Lawyers/site-builder/internal/domain/pagedata"
	"github.com/Builder-Lawyers/site-builder/internal/infra/auth"
	"github.com/Builder-Lawyers/site-builder/internal/infra/db/repo"
	dbs "github.com/Builder-Lawyers/site-builder/pkg/db"
	"github.com/google/uuid"
)

type PublishSite struct {
	uowFactory *dbs.UOWFactory
}

func NewPublishSite(factory *dbs.UOWFactory) *PublishSite {
	return &PublishSite{uowFactory: factory}
}

// Execute publishes the site and every one of its pages in one transaction.
// Nothing changes unless every page passes the publish check; the problems
// of all pages are reported together. Publishing a published site again
// refreshes its snapshot.
func (c *PublishSite) Execute(ctx context.Context, siteID uuid.UUID, identity *auth.Identity) (_ *entity.Site, _ []*entity.Page, err error) {
	uow := c.uowFactory.GetUoW()
	tx, err := uow.Begin(ctx)
	if err != nil {
		return nil, nil, err
	}
	defer uow.Finalize(&err)

	site, err := sites.OwnedForUpdate(ctx, tx, siteID, identity)
	if err != nil {
		return nil, nil, err
	}

	pageRepo := repo.NewPageRepo(tx)
	pages, err := pageRepo.ListPages(ctx, site.ID)
	if err != nil {
		return nil, nil, err
	}

	var details []string
	for _, page := range pages {
		details = append(details, PublishIssues(page)...)
	}
	if len(details) > 0 {
		return nil, nil, errs.ValidationError{Err: errors.New("site has pages that are not ready to publish"), Details: details}
	}

	now := time.Now()
	for _, page := range pages {
		page.Status = consts.PageStatusPublished
		page.PublishedAt = &now
		page.UpdatedAt = now
		if err = pageRepo.UpdatePage(ctx, page); err != nil {
			return nil, nil, err
		}
	}

	site.Status = consts.SiteStatusPublished
	site.UpdatedAt = now
	if err = repo.NewSiteRepo(tx).UpdateSite(ctx, site); err != nil {
		return nil, nil, err
	}
	if err = repo.NewEventRepo(tx).InsertEvent(ctx, events.SitePublished{SiteID: site.ID}); err != nil {
		return nil, nil, err
	}

	slog.Info("site published", "siteID", site.ID, "slug", site.Slug, "pages", len(pages))
	return site, pages, nil
}

// PublishIssues lists why page can't be published, each entry prefixed with
// the page key.
func PublishIssues(page *entity.Page) []string {
	err := page.Data.CheckPublishable()
	if err == nil {
		return nil
	}
	var verr *pagedata.ValidationError
	if !errors.As(err, &verr) {
		return []string{string(page.Key) + ": " + err.Error()}
	}
	out := make([]string, 0, len(verr.Issues))
	for _, issue := range verr.Details() {
		out = append(out, string(page.Key)+": "+issue)
	}
	return out
}

type UnpublishSite struct {
	uowFactory *dbs.UOWFactory
}

func NewUnpublishSite(factory *dbs.UOWFactory) *UnpublishSite {
	return &UnpublishSite{uowFactory: factory}
}

// Execute returns the site and all its pages to draft and queues removal of
// the published snapshot.
func (c *UnpublishSite) Execute(ctx context.Context, siteID uuid.UUID, identity *auth.Identity) (_ *entity.Site, _ []*entity.Page, err error) {
	uow := c.uowFactory.GetUoW()
	tx, err := uow.Begin(ctx)
	if err != nil {
		return nil, nil, err
	}
	defer uow.Finalize(&err)

	site, err := sites.OwnedForUpdate(ctx, tx, siteID, identity)
	if err != nil {
		return nil, nil, err
	}

	pageRepo := repo.NewPageRepo(tx)
	pages, err := pageRepo.ListPages(ctx, site.ID)
	if err != nil {
		return nil, nil, err
	}

	now := time.Now()
	for _, page := range pages {
		if !page.IsPublished() {
			continue
		}
		page.Status = consts.PageStatusDraft
		page.PublishedAt = nil
		page.UpdatedAt = now
		if err = pageRepo.UpdatePage(ctx, page); err != nil {
			return nil, nil, err
		}
	}

	wasPublished := site.IsPublished()
	site.Status = consts.SiteStatusDraft
	site.UpdatedAt = now
	if err = repo.NewSiteRepo(tx).UpdateSite(ctx, site); err != nil {
		return nil, nil, err
	}
	if wasPublished {
		err = repo.NewEventRepo(tx).InsertEvent(ctx, events.SiteUnpublished{SiteID: site.ID, Slug: site.Slug})
		if err != nil {
			return nil, nil, err
		}
	}

	slog.Info("site unpublished", "siteID", site.ID, "slug", site.Slug)
	return site, pages, nil
}
