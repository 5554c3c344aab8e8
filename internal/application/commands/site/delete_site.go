package site

import (
	"context"
	"log/slog"

	"github.com/Builder-Lawyers/site-builder/internal/application/events"
	"github.com/Builder-Lawyers/site-builder/internal/application/sites"
	"github.com/Builder-Lawyers/site-builder/internal/infra/auth"
	"github.com/Builder-Lawyers/site-builder/internal/infra/db/repo"
	dbs "github.com/Builder-Lawyers/site-builder/pkg/db"
	"github.com/google/uuid"
)

type DeleteSite struct {
	uowFactory *dbs.UOWFactory
}

func NewDeleteSite(factory *dbs.UOWFactory) *DeleteSite {
	return &DeleteSite{uowFactory: factory}
}

// Execute deletes the site with everything that belongs to it. Stored files
// are removed afterwards by the outbox processor.
func (c *DeleteSite) Execute(ctx context.Context, siteID uuid.UUID, identity *auth.Identity) (err error) {
	uow := c.uowFactory.GetUoW()
	tx, err := uow.Begin(ctx)
	if err != nil {
		return err
	}
	defer uow.Finalize(&err)

	site, err := sites.OwnedForUpdate(ctx, tx, siteID, identity)
	if err != nil {
		return err
	}
	if err = repo.NewSiteRepo(tx).DeleteSite(ctx, site.ID); err != nil {
		return err
	}
	if err = repo.NewEventRepo(tx).InsertEvent(ctx, events.SiteDeleted{SiteID: site.ID, Slug: site.Slug}); err != nil {
		return err
	}

	slog.Info("site deleted", "siteID", site.ID, "slug", site.Slug)
	return nil
}
