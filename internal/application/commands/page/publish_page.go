package page

import (
	"context"
	"log/slog"
	"time"

	"github.com/Builder-Lawyers/site-builder/internal/application/errs"
	"github.com/Builder-Lawyers/site-builder/internal/application/sites"
	"github.com/Builder-Lawyers/site-builder/internal/domain/consts"
	"github.com/Builder-Lawyers/site-builder/internal/domain/entity"
	"github.com/Builder-Lawyers/site-builder/internal/infra/auth"
	"github.com/Builder-Lawyers/site-builder/internal/infra/db/repo"
	dbs "github.com/Builder-Lawyers/site-builder/pkg/db"
	"github.com/google/uuid"
)

// SetPageStatus publishes or unpublishes a single page. A page of a draft
// site may be published; it goes live together with the site.
type SetPageStatus struct {
	uowFactory *dbs.UOWFactory
}

func NewSetPageStatus(factory *dbs.UOWFactory) *SetPageStatus {
	return &SetPageStatus{uowFactory: factory}
}

func (c *SetPageStatus) Execute(ctx context.Context, siteID uuid.UUID, key consts.PageKey, status consts.PageStatus, identity *auth.Identity) (_ *entity.Page, err error) {
	if status != consts.PageStatusDraft && status != consts.PageStatusPublished {
		return nil, errs.Invalidf("unknown page status %q", status)
	}

	uow := c.uowFactory.GetUoW()
	tx, err := uow.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Finalize(&err)

	site, err := sites.OwnedForUpdate(ctx, tx, siteID, identity)
	if err != nil {
		return nil, err
	}

	pageRepo := repo.NewPageRepo(tx)
	page, err := pageRepo.GetPage(ctx, site.ID, key)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	switch status {
	case consts.PageStatusPublished:
		if err = page.Data.CheckPublishable(); err != nil {
			return nil, errs.Invalid(err)
		}
		page.PublishedAt = &now
	case consts.PageStatusDraft:
		if !page.IsPublished() {
			return page, nil
		}
		page.PublishedAt = nil
	}
	page.Status = status
	page.UpdatedAt = now
	if err = pageRepo.UpdatePage(ctx, page); err != nil {
		return nil, err
	}
	if err = sites.RefreshSnapshot(ctx, tx, site); err != nil {
		return nil, err
	}

	slog.Info("page status changed", "siteID", site.ID, "page", page.Key, "status", status)
	return page, nil
}
