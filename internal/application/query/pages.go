package query

import (
	"context"

	"github.com/Builder-Lawyers/site-builder/internal/application/dto"
	"github.com/Builder-Lawyers/site-builder/internal/application/sites"
	"github.com/Builder-Lawyers/site-builder/internal/domain/consts"
	"github.com/Builder-Lawyers/site-builder/internal/infra/auth"
	"github.com/Builder-Lawyers/site-builder/internal/infra/db/repo"
	dbs "github.com/Builder-Lawyers/site-builder/pkg/db"
	"github.com/google/uuid"
)

type ListPages struct {
	uowFactory *dbs.UOWFactory
}

func NewListPages(factory *dbs.UOWFactory) *ListPages {
	return &ListPages{uowFactory: factory}
}

func (q *ListPages) Query(ctx context.Context, siteID uuid.UUID, identity *auth.Identity) (_ []dto.PageSummary, err error) {
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
	out := make([]dto.PageSummary, 0, len(pages))
	for _, p := range pages {
		out = append(out, dto.MapPageToSummary(p))
	}
	return out, nil
}

type GetPage struct {
	uowFactory *dbs.UOWFactory
}

func NewGetPage(factory *dbs.UOWFactory) *GetPage {
	return &GetPage{uowFactory: factory}
}

func (q *GetPage) Query(ctx context.Context, siteID uuid.UUID, key consts.PageKey, identity *auth.Identity) (_ dto.PageResponse, err error) {
	uow := q.uowFactory.GetUoW()
	tx, err := uow.Begin(ctx)
	if err != nil {
		return dto.PageResponse{}, err
	}
	defer uow.Finalize(&err)

	site, err := sites.Owned(ctx, tx, siteID, identity)
	if err != nil {
		return dto.PageResponse{}, err
	}
	page, err := repo.NewPageRepo(tx).GetPage(ctx, site.ID, key)
	if err != nil {
		return dto.PageResponse{}, err
	}
	return dto.MapPageToResponse(page), nil
}
