package processors

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Builder-Lawyers/site-builder/internal/application/errs"
	"github.com/Builder-Lawyers/site-builder/internal/application/events"
	"github.com/Builder-Lawyers/site-builder/internal/application/sites"
	"github.com/Builder-Lawyers/site-builder/internal/domain/entity"
	"github.com/Builder-Lawyers/site-builder/internal/infra/db/repo"
	"github.com/Builder-Lawyers/site-builder/internal/infra/metrics"
	"github.com/Builder-Lawyers/site-builder/internal/render"
	dbs "github.com/Builder-Lawyers/site-builder/pkg/db"
	shared "github.com/Builder-Lawyers/site-builder/pkg/interfaces"
)

var htmlType = "text/html; charset=utf-8"

type PublishSnapshot struct {
	uowFactory *dbs.UOWFactory
	renderer   *render.Renderer
	store      SnapshotStore
	subdomains Subdomains
}

func NewPublishSnapshot(factory *dbs.UOWFactory, renderer *render.Renderer, store SnapshotStore, subdomains Subdomains) *PublishSnapshot {
	return &PublishSnapshot{
		uowFactory: factory,
		renderer:   renderer,
		store:      store,
		subdomains: subdomains,
	}
}

type snapshot struct {
	site  *entity.Site
	files map[string][]byte
}

// Handle renders every published page of the site as it is now and uploads
// the result under sites/<slug>/, removing files of pages that are gone.
// The event carries only the site id, so replaying it is harmless.
func (c *PublishSnapshot) Handle(ctx context.Context, event events.SitePublished) (shared.UoW, error) {
	snap, err := c.build(ctx, event)
	if err != nil {
		return nil, err
	}
	if snap == nil {
		return nil, nil
	}

	prefix := sites.SnapshotPrefix(snap.site.Slug)
	for key, html := range snap.files {
		if _, err = c.store.UploadFile(ctx, key, &htmlType, bytes.NewReader(html)); err != nil {
			return nil, errs.RetryableError{Err: err}
		}
	}

	existing, err := c.store.ListFiles(ctx, prefix)
	if err != nil {
		return nil, errs.RetryableError{Err: err}
	}
	for _, key := range existing {
		if _, keep := snap.files[key]; keep || !strings.HasSuffix(key, ".html") {
			continue
		}
		if err = c.store.DeleteFile(ctx, key); err != nil {
			return nil, errs.RetryableError{Err: err}
		}
		slog.Info("removed stale page from snapshot", "key", key)
	}

	if err = c.subdomains.UpsertSubdomain(ctx, snap.site.Slug); err != nil {
		return nil, fmt.Errorf("err upserting subdomain of %s, %w", snap.site.Slug, err)
	}

	metrics.SitesPublishedTotal.Inc()
	slog.Info("snapshot published", "siteID", snap.site.ID, "slug", snap.site.Slug, "pages", len(snap.files))
	return nil, nil
}

func (c *PublishSnapshot) build(ctx context.Context, event events.SitePublished) (_ *snapshot, err error) {
	uow := c.uowFactory.GetUoW()
	tx, err := uow.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Finalize(&err)

	site, err := repo.NewSiteRepo(tx).GetSite(ctx, event.SiteID)
	var notFound errs.NotFoundError
	if errors.As(err, &notFound) {
		slog.Info("site is gone, skipping snapshot", "siteID", event.SiteID)
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if !site.IsPublished() {
		slog.Info("site is no longer published, skipping snapshot", "siteID", site.ID)
		return nil, nil
	}

	pages, err := repo.NewPageRepo(tx).ListPublishedPages(ctx, site.ID)
	if err != nil {
		return nil, err
	}
	profile, err := repo.NewProfileRepo(tx).GetProfile(ctx, site.ID)
	if err != nil {
		return nil, err
	}
	logoURL, err := sites.LogoURL(ctx, tx, c.store, profile)
	if err != nil {
		return nil, err
	}

	snap := &snapshot{site: site, files: make(map[string][]byte, len(pages))}
	for _, page := range pages {
		var buf bytes.Buffer
		err = c.renderer.Render(&buf, render.RenderInput{
			Site:    site,
			Profile: profile,
			Page:    page,
			Nav:     sites.Navigation(pages, page.Key),
			LogoURL: logoURL,
			Mode:    "snapshot",
		})
		if err != nil {
			return nil, err
		}
		snap.files[sites.SnapshotKey(site.Slug, page.Key)] = buf.Bytes()
	}
	return snap, nil
}
