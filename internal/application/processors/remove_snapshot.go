package processors

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Builder-Lawyers/site-builder/internal/application/errs"
	"github.com/Builder-Lawyers/site-builder/internal/application/events"
	"github.com/Builder-Lawyers/site-builder/internal/application/sites"
	"github.com/Builder-Lawyers/site-builder/internal/infra/db/repo"
	dbs "github.com/Builder-Lawyers/site-builder/pkg/db"
	shared "github.com/Builder-Lawyers/site-builder/pkg/interfaces"
)

type RemoveSnapshot struct {
	uowFactory *dbs.UOWFactory
	store      SnapshotStore
	subdomains Subdomains
}

func NewRemoveSnapshot(factory *dbs.UOWFactory, store SnapshotStore, subdomains Subdomains) *RemoveSnapshot {
	return &RemoveSnapshot{uowFactory: factory, store: store, subdomains: subdomains}
}

// Handle takes the snapshot under the event's slug offline, unless a
// published site serves from that slug again by now.
func (c *RemoveSnapshot) Handle(ctx context.Context, event events.SiteUnpublished) (shared.UoW, error) {
	return nil, c.remove(ctx, event.Slug)
}

func (c *RemoveSnapshot) remove(ctx context.Context, slug string) error {
	live, err := c.slugIsLive(ctx, slug)
	if err != nil {
		return err
	}
	if live {
		slog.Info("slug is published again, keeping snapshot", "slug", slug)
		return nil
	}

	deleted, err := c.store.DeletePrefix(ctx, sites.SnapshotPrefix(slug))
	if err != nil {
		return errs.RetryableError{Err: err}
	}
	if err = c.subdomains.DeleteSubdomain(ctx, slug); err != nil {
		return fmt.Errorf("err deleting subdomain of %s, %w", slug, err)
	}

	slog.Info("snapshot removed", "slug", slug, "files", deleted)
	return nil
}

func (c *RemoveSnapshot) slugIsLive(ctx context.Context, slug string) (_ bool, err error) {
	uow := c.uowFactory.GetUoW()
	tx, err := uow.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer uow.Finalize(&err)

	site, err := repo.NewSiteRepo(tx).GetSiteBySlug(ctx, slug)
	var notFound errs.NotFoundError
	if errors.As(err, &notFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return site.IsPublished(), nil
}

type PurgeSite struct {
	*RemoveSnapshot
}

func NewPurgeSite(remove *RemoveSnapshot) *PurgeSite {
	return &PurgeSite{remove}
}

// Handle removes everything a deleted site left in the object store.
func (c *PurgeSite) Handle(ctx context.Context, event events.SiteDeleted) (shared.UoW, error) {
	if err := c.remove(ctx, event.Slug); err != nil {
		return nil, err
	}
	deleted, err := c.store.DeletePrefix(ctx, sites.AssetPrefix(event.SiteID))
	if err != nil {
		return nil, errs.RetryableError{Err: err}
	}
	slog.Info("site assets purged", "siteID", event.SiteID, "files", deleted)
	return nil, nil
}
