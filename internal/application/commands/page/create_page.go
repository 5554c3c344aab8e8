package page

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Builder-Lawyers/site-builder/internal/application/dto"
	"github.com/Builder-Lawyers/site-builder/internal/application/errs"
	"github.com/Builder-Lawyers/site-builder/internal/application/sites"
	"github.com/Builder-Lawyers/site-builder/internal/domain/consts"
	"github.com/Builder-Lawyers/site-builder/internal/domain/entity"
	"github.com/Builder-Lawyers/site-builder/internal/domain/pagedata"
	"github.com/Builder-Lawyers/site-builder/internal/infra/auth"
	"github.com/Builder-Lawyers/site-builder/internal/infra/db/repo"
	dbs "github.com/Builder-Lawyers/site-builder/pkg/db"
	"github.com/google/uuid"
)

type CreatePage struct {
	uowFactory *dbs.UOWFactory
}

func NewCreatePage(factory *dbs.UOWFactory) *CreatePage {
	return &CreatePage{uowFactory: factory}
}

// Execute adds a draft page after the existing ones, pre-filled from the
// business profile.
func (c *CreatePage) Execute(ctx context.Context, siteID uuid.UUID, req *dto.CreatePageRequest, identity *auth.Identity) (_ *entity.Page, err error) {
	key := consts.PageKey(strings.ToLower(strings.TrimSpace(req.Key)))
	if err = entity.ValidateExtraPageKey(key); err != nil {
		return nil, errs.ValidationError{Err: err, Details: []string{"key: " + err.Error()}}
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, errs.ValidationError{Details: []string{"title: must not be blank"}}
	}

	uow := c.uowFactory.GetUoW()
	tx, err := uow.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Finalize(&err)

	site, err := sites.Owned(ctx, tx, siteID, identity)
	if err != nil {
		return nil, err
	}

	pageRepo := repo.NewPageRepo(tx)
	_, err = pageRepo.GetPage(ctx, site.ID, key)
	var notFound errs.NotFoundError
	switch {
	case err == nil:
		return nil, errs.ConflictError{Err: fmt.Errorf("page %q already exists", key)}
	case !errors.As(err, &notFound):
		return nil, err
	}

	profile, err := repo.NewProfileRepo(tx).GetProfile(ctx, site.ID)
	if err != nil {
		return nil, err
	}
	position, err := pageRepo.NextPosition(ctx, site.ID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	page := &entity.Page{
		ID:        uuid.New(),
		SiteID:    site.ID,
		Key:       key,
		Title:     title,
		Data:      pagedata.Default(key, title, profile.Seed()),
		Status:    consts.PageStatusDraft,
		Position:  position,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err = pageRepo.InsertPage(ctx, page); err != nil {
		return nil, err
	}

	slog.Info("page created", "siteID", site.ID, "page", page.Key, "position", position)
	return page, nil
}
