package page

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/Builder-Lawyers/site-builder/internal/application/dto"
	"github.com/Builder-Lawyers/site-builder/internal/application/errs"
	"github.com/Builder-Lawyers/site-builder/internal/application/sites"
	"github.com/Builder-Lawyers/site-builder/internal/domain/consts"
	"github.com/Builder-Lawyers/site-builder/internal/domain/entity"
	"github.com/Builder-Lawyers/site-builder/internal/domain/pagedata"
	"github.com/Builder-Lawyers/site-builder/internal/infra/auth"
	"github.com/Builder-Lawyers/site-builder/internal/infra/db/repo"
	dbs "github.com/Builder-Lawyers/site-builder/pkg/db"
	"github.com/google/uuid"
)

type SavePage struct {
	uowFactory *dbs.UOWFactory
}

func NewSavePage(factory *dbs.UOWFactory) *SavePage {
	return &SavePage{uowFactory: factory}
}

// Execute replaces the page document (and optionally its title). A published
// page stays published, so its new content has to pass the publish check.
func (c *SavePage) Execute(ctx context.Context, siteID uuid.UUID, key consts.PageKey, req *dto.SavePageRequest, identity *auth.Identity) (_ *entity.Page, err error) {
	data, err := pagedata.Parse(req.Data)
	if err != nil {
		return nil, errs.Invalid(err)
	}

	uow := c.uowFactory.GetUoW()
	tx, err := uow.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Finalize(&err)

	site, err := sites.Owned(ctx, tx, siteID, identity)
	if err != nil {
		return nil, err
	}

	pageRepo := repo.NewPageRepo(tx)
	page, err := pageRepo.GetPage(ctx, site.ID, key)
	if err != nil {
		return nil, err
	}

	if page.IsPublished() {
		if err = data.CheckPublishable(); err != nil {
			return nil, errs.Invalid(err)
		}
	}

	page.Data = data
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, errs.ValidationError{Details: []string{"title: must not be blank"}}
		}
		page.Title = title
	}
	page.UpdatedAt = time.Now()
	if err = pageRepo.UpdatePage(ctx, page); err != nil {
		return nil, err
	}

	if page.IsPublished() {
		if err = sites.RefreshSnapshot(ctx, tx, site); err != nil {
			return nil, err
		}
	}

	slog.Info("page saved", "siteID", site.ID, "page", page.Key, "sections", len(page.Data.Sections))
	return page, nil
}
