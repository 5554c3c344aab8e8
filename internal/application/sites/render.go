package sites

import (
	"context"
	"errors"

	"github.com/Builder-Lawyers/site-builder/internal/application/errs"
	"github.com/Builder-Lawyers/site-builder/internal/domain/consts"
	"github.com/Builder-Lawyers/site-builder/internal/domain/entity"
	"github.com/Builder-Lawyers/site-builder/internal/infra/db/repo"
	"github.com/Builder-Lawyers/site-builder/internal/render"
	"github.com/jackc/pgx/v5"
)

// URLResolver turns a stored object key into a public URL.
type URLResolver interface {
	PublicURL(key string) string
}

// PagePath is the public path of a page.
func PagePath(key consts.PageKey) string {
	if key == consts.PageKeyHome {
		return "/"
	}
	return "/" + string(key)
}

// Navigation links every page in order, marking current as active.
func Navigation(pages []*entity.Page, current consts.PageKey) []render.NavItem {
	nav := make([]render.NavItem, 0, len(pages))
	for _, p := range pages {
		nav = append(nav, render.NavItem{Title: p.Title, Href: PagePath(p.Key), Active: p.Key == current})
	}
	return nav
}

// LogoURL resolves the profile logo. A logo that can't be found renders
// without one.
func LogoURL(ctx context.Context, tx pgx.Tx, urls URLResolver, profile *entity.BusinessProfile) (string, error) {
	if profile == nil || profile.LogoAssetID == nil {
		return "", nil
	}
	asset, err := repo.NewAssetRepo(tx).GetAsset(ctx, profile.SiteID, *profile.LogoAssetID)
	var notFound errs.NotFoundError
	if errors.As(err, &notFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return urls.PublicURL(asset.Path), nil
}
