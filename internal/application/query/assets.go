package query

import (
	"context"

	"github.com/Builder-Lawyers/site-builder/internal/application/dto"
	"github.com/Builder-Lawyers/site-builder/internal/application/sites"
	"github.com/Builder-Lawyers/site-builder/internal/infra/auth"
	"github.com/Builder-Lawyers/site-builder/internal/infra/db/repo"
	dbs "github.com/Builder-Lawyers/site-builder/pkg/db"
	"github.com/google/uuid"
)

type ListAssets struct {
	uowFactory *dbs.UOWFactory
	urls       sites.URLResolver
}

func NewListAssets(factory *dbs.UOWFactory, urls sites.URLResolver) *ListAssets {
	return &ListAssets{uowFactory: factory, urls: urls}
}

func (q *ListAssets) Query(ctx context.Context, siteID uuid.UUID, identity *auth.Identity) (_ []dto.AssetResponse, err error) {
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
	assets, err := repo.NewAssetRepo(tx).ListAssets(ctx, site.ID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AssetResponse, 0, len(assets))
	for _, a := range assets {
		out = append(out, dto.MapAssetToResponse(a, q.urls.PublicURL(a.Path)))
	}
	return out, nil
}
