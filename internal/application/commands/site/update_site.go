package site

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/Builder-Lawyers/site-builder/internal/application/dto"
	"github.com/Builder-Lawyers/site-builder/internal/application/errs"
	"github.com/Builder-Lawyers/site-builder/internal/application/events"
	"github.com/Builder-Lawyers/site-builder/internal/application/sites"
	"github.com/Builder-Lawyers/site-builder/internal/domain/entity"
	"github.com/Builder-Lawyers/site-builder/internal/infra/auth"
	"github.com/Builder-Lawyers/site-builder/internal/infra/db/repo"
	dbs "github.com/Builder-Lawyers/site-builder/pkg/db"
	"github.com/google/uuid"
)

type UpdateSite struct {
	uowFactory *dbs.UOWFactory
	templates  TemplateCatalog
}

func NewUpdateSite(factory *dbs.UOWFactory, templates TemplateCatalog) *UpdateSite {
	return &UpdateSite{uowFactory: factory, templates: templates}
}

// Execute changes the slug and/or template. A published site gets its
// snapshot rebuilt, and a slug change also drops the snapshot under the old
// slug.
func (c *UpdateSite) Execute(ctx context.Context, siteID uuid.UUID, req *dto.UpdateSiteRequest, identity *auth.Identity) (_ *entity.Site, err error) {
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

	oldSlug := site.Slug
	changed := false
	if req.Slug != nil {
		slug := strings.ToLower(strings.TrimSpace(*req.Slug))
		if slug != site.Slug {
			if err = entity.ValidateSlug(slug); err != nil {
				return nil, errs.ValidationError{Err: err, Details: []string{"slug: " + err.Error()}}
			}
			if err = checkSlugFree(ctx, tx, slug); err != nil {
				return nil, err
			}
			site.Slug = slug
			changed = true
		}
	}
	if req.Template != nil && *req.Template != site.Template {
		if !c.templates.HasTheme(*req.Template) {
			return nil, errs.Invalidf("unknown template %q", *req.Template)
		}
		site.Template = *req.Template
		changed = true
	}
	if !changed {
		return site, nil
	}

	site.UpdatedAt = time.Now()
	if err = repo.NewSiteRepo(tx).UpdateSite(ctx, site); err != nil {
		return nil, err
	}

	if site.IsPublished() && oldSlug != site.Slug {
		err = repo.NewEventRepo(tx).InsertEvent(ctx, events.SiteUnpublished{SiteID: site.ID, Slug: oldSlug})
		if err != nil {
			return nil, err
		}
	}
	if err = sites.RefreshSnapshot(ctx, tx, site); err != nil {
		return nil, err
	}

	slog.Info("site updated", "siteID", site.ID, "slug", site.Slug, "template", site.Template)
	return site, nil
}
