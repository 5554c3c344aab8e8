package query

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Builder-Lawyers/site-builder/internal/application/errs"
	"github.com/Builder-Lawyers/site-builder/internal/application/sites"
	"github.com/Builder-Lawyers/site-builder/internal/domain/consts"
	"github.com/Builder-Lawyers/site-builder/internal/domain/entity"
	"github.com/Builder-Lawyers/site-builder/internal/infra/auth"
	"github.com/Builder-Lawyers/site-builder/internal/infra/db/repo"
	"github.com/Builder-Lawyers/site-builder/internal/render"
	dbs "github.com/Builder-Lawyers/site-builder/pkg/db"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// RenderPublic serves published pages to visitors. The site is picked by the
// request host: <slug>.<base domain> or an active custom domain.
type RenderPublic struct {
	uowFactory *dbs.UOWFactory
	renderer   *render.Renderer
	urls       sites.URLResolver
	baseDomain string
}

func NewRenderPublic(factory *dbs.UOWFactory, renderer *render.Renderer, urls sites.URLResolver, baseDomain string) *RenderPublic {
	return &RenderPublic{uowFactory: factory, renderer: renderer, urls: urls, baseDomain: strings.ToLower(baseDomain)}
}

// SlugFromHost returns the slug when host is a platform subdomain.
func SlugFromHost(host, baseDomain string) (string, bool) {
	host = bareHost(host)
	slug, ok := strings.CutSuffix(host, "."+baseDomain)
	if !ok || slug == "" || strings.Contains(slug, ".") {
		return "", false
	}
	return slug, true
}

// bareHost lowercases a Host header value and drops the port.
func bareHost(host string) string {
	host = strings.ToLower(strings.TrimSpace(host))
	if i := strings.LastIndex(host, ":"); i >= 0 {
		host = host[:i]
	}
	return strings.TrimSuffix(host, ".")
}

func (q *RenderPublic) Query(ctx context.Context, host string, key consts.PageKey) (_ []byte, err error) {
	if key == "" {
		key = consts.PageKeyHome
	}

	uow := q.uowFactory.GetUoW()
	tx, err := uow.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Finalize(&err)

	site, err := q.siteForHost(ctx, tx, host)
	if err != nil {
		return nil, err
	}
	if !site.IsPublished() {
		return nil, errs.NotFoundError{Resource: "site", Err: fmt.Errorf("site %s is not published", site.Slug)}
	}

	pages, err := repo.NewPageRepo(tx).ListPublishedPages(ctx, site.ID)
	if err != nil {
		return nil, err
	}
	var page *entity.Page
	for _, p := range pages {
		if p.Key == key {
			page = p
		}
	}
	if page == nil {
		return nil, errs.NotFoundError{Resource: "page"}
	}

	return renderPage(ctx, tx, q.renderer, q.urls, render.RenderInput{
		Site: site,
		Page: page,
		Nav:  sites.Navigation(pages, page.Key),
		Mode: "public",
	})
}

func (q *RenderPublic) siteForHost(ctx context.Context, tx pgx.Tx, host string) (*entity.Site, error) {
	if slug, ok := SlugFromHost(host, q.baseDomain); ok {
		return repo.NewSiteRepo(tx).GetSiteBySlug(ctx, slug)
	}

	domain, err := repo.NewDomainRepo(tx).GetDomainByHostname(ctx, bareHost(host))
	if err != nil {
		return nil, err
	}
	if domain.Status != consts.DomainStatusActive {
		return nil, errs.NotFoundError{Resource: "site", Err: fmt.Errorf("domain %s is %s", domain.Hostname, domain.Status)}
	}
	return repo.NewSiteRepo(tx).GetSite(ctx, domain.SiteID)
}

// PreviewPage renders any page, drafts included, for the site owner. An
// optional template key previews the site in another template.
type PreviewPage struct {
	uowFactory *dbs.UOWFactory
	renderer   *render.Renderer
	urls       sites.URLResolver
}

func NewPreviewPage(factory *dbs.UOWFactory, renderer *render.Renderer, urls sites.URLResolver) *PreviewPage {
	return &PreviewPage{uowFactory: factory, renderer: renderer, urls: urls}
}

func (q *PreviewPage) Query(ctx context.Context, siteID uuid.UUID, key consts.PageKey, template string, identity *auth.Identity) (_ []byte, err error) {
	if template != "" && !q.renderer.HasTheme(template) {
		return nil, errs.Invalidf("unknown template %q", template)
	}

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
	pages, err := repo.NewPageRepo(tx).ListPages(ctx, site.ID)
	if err != nil {
		return nil, err
	}
	var page *entity.Page
	for _, p := range pages {
		if p.Key == key {
			page = p
		}
	}
	if page == nil {
		return nil, errs.NotFoundError{Resource: "page"}
	}

	return renderPage(ctx, tx, q.renderer, q.urls, render.RenderInput{
		Template: template,
		Site:     site,
		Page:     page,
		Nav:      sites.Navigation(pages, page.Key),
		Preview:  true,
		Mode:     "preview",
	})
}

func renderPage(ctx context.Context, tx pgx.Tx, renderer *render.Renderer, urls sites.URLResolver, in render.RenderInput) ([]byte, error) {
	profile, err := repo.NewProfileRepo(tx).GetProfile(ctx, in.Site.ID)
	var notFound errs.NotFoundError
	if err != nil && !errors.As(err, &notFound) {
		return nil, err
	}
	in.Profile = profile
	if in.LogoURL, err = sites.LogoURL(ctx, tx, urls, profile); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err = renderer.Render(&buf, in); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
