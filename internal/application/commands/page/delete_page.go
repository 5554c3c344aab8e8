package page

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Builder-Lawyers/site-builder/internal/application/errs"
	"github.com/Builder-Lawyers/site-builder/internal/application/sites"
	"github.com/Builder-Lawyers/site-builder/internal/domain/consts"
	"github.com/Builder-Lawyers/site-builder/internal/infra/auth"
	"github.com/Builder-Lawyers/site-builder/internal/infra/db/repo"
	dbs "github.com/Builder-Lawyers/site-builder/pkg/db"
	"github.com/google/uuid"
)

type DeletePage struct {
	uowFactory *dbs.UOWFactory
}

func NewDeletePage(factory *dbs.UOWFactory) *DeletePage {
	return &DeletePage{uowFactory: factory}
}

func (c *DeletePage) Execute(ctx context.Context, siteID uuid.UUID, key consts.PageKey, identity *auth.Identity) (err error) {
	if key.IsCore() {
		return errs.Invalidf("page %q can't be deleted", key)
	}

	uow := c.uowFactory.GetUoW()
	tx, err := uow.Begin(ctx)
	if err != nil {
		return err
	}
	defer uow.Finalize(&err)

	site, err := sites.Owned(ctx, tx, siteID, identity)
	if err != nil {
		return err
	}

	pageRepo := repo.NewPageRepo(tx)
	page, err := pageRepo.GetPage(ctx, site.ID, key)
	if err != nil {
		return err
	}
	if err = pageRepo.DeletePage(ctx, site.ID, key); err != nil {
		return fmt.Errorf("err deleting page %s, %w", key, err)
	}
	// the snapshot processor drops files of pages that are gone
	if page.IsPublished() {
		if err = sites.RefreshSnapshot(ctx, tx, site); err != nil {
			return err
		}
	}

	slog.Info("page deleted", "siteID", site.ID, "page", key)
	return nil
}
