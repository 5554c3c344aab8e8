// Package sites holds the checks shared by every command that works on one
// site: ownership and snapshot refresh.
package sites

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Builder-Lawyers/site-builder/internal/application/errs"
	"github.com/Builder-Lawyers/site-builder/internal/application/events"
	"github.com/Builder-Lawyers/site-builder/internal/domain/entity"
	"github.com/Builder-Lawyers/site-builder/internal/infra/auth"
	"github.com/Builder-Lawyers/site-builder/internal/infra/db/repo"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Owned loads the site and checks the caller owns it.
func Owned(ctx context.Context, tx pgx.Tx, siteID uuid.UUID, identity *auth.Identity) (*entity.Site, error) {
	site, err := repo.NewSiteRepo(tx).GetSite(ctx, siteID)
	if err != nil {
		return nil, err
	}
	if err = checkOwner(site, identity); err != nil {
		return nil, err
	}
	return site, nil
}

// OwnedForUpdate is Owned with the site row locked until the transaction
// ends, serializing status changes of one site.
func OwnedForUpdate(ctx context.Context, tx pgx.Tx, siteID uuid.UUID, identity *auth.Identity) (*entity.Site, error) {
	site, err := repo.NewSiteRepo(tx).GetSiteForUpdate(ctx, siteID)
	if err != nil {
		return nil, err
	}
	if err = checkOwner(site, identity); err != nil {
		return nil, err
	}
	return site, nil
}

func checkOwner(site *entity.Site, identity *auth.Identity) error {
	if identity == nil || identity.UserID != site.OwnerID {
		return errs.PermissionsError{Err: fmt.Errorf("user requesting action, is not a site's owner")}
	}
	return nil
}

// RefreshSnapshot queues a rebuild of the published snapshot. Draft sites
// have none, so nothing is queued for them.
func RefreshSnapshot(ctx context.Context, tx pgx.Tx, site *entity.Site) error {
	if !site.IsPublished() {
		return nil
	}
	slog.Debug("queueing snapshot refresh", "siteID", site.ID)
	return repo.NewEventRepo(tx).InsertEvent(ctx, events.SitePublished{SiteID: site.ID})
}
