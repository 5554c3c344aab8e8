package site

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Builder-Lawyers/site-builder/internal/application/dto"
	"github.com/Builder-Lawyers/site-builder/internal/application/errs"
	"github.com/Builder-Lawyers/site-builder/internal/domain/consts"
	"github.com/Builder-Lawyers/site-builder/internal/domain/entity"
	"github.com/Builder-Lawyers/site-builder/internal/domain/pagedata"
	"github.com/Builder-Lawyers/site-builder/internal/infra/auth"
	"github.com/Builder-Lawyers/site-builder/internal/infra/db/repo"
	dbs "github.com/Builder-Lawyers/site-builder/pkg/db"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// TemplateCatalog tells which template keys can be assigned to a site.
type TemplateCatalog interface {
	HasTheme(key string) bool
}

var corePageTitles = map[consts.PageKey]string{
	consts.PageKeyHome:    "Home",
	consts.PageKeyAbout:   "About",
	consts.PageKeyContact: "Contact",
}

type CreateSite struct {
	uowFactory *dbs.UOWFactory
	templates  TemplateCatalog
}

func NewCreateSite(factory *dbs.UOWFactory, templates TemplateCatalog) *CreateSite {
	return &CreateSite{uowFactory: factory, templates: templates}
}

// Execute creates a draft site with its business profile and the core pages
// filled with default content.
func (c *CreateSite) Execute(ctx context.Context, req *dto.CreateSiteRequest, identity *auth.Identity) (_ *entity.Site, err error) {
	slug := strings.ToLower(strings.TrimSpace(req.Slug))
	if err = entity.ValidateSlug(slug); err != nil {
		return nil, errs.ValidationError{Err: err, Details: []string{"slug: " + err.Error()}}
	}
	template := strings.TrimSpace(req.Template)
	if template == "" {
		template = "classic"
	}
	if !c.templates.HasTheme(template) {
		return nil, errs.Invalidf("unknown template %q", template)
	}

	uow := c.uowFactory.GetUoW()
	tx, err := uow.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Finalize(&err)

	if err = checkSlugFree(ctx, tx, slug); err != nil {
		return nil, err
	}

	now := time.Now()
	site := &entity.Site{
		ID:        uuid.New(),
		OwnerID:   identity.UserID,
		Slug:      slug,
		Template:  template,
		Status:    consts.SiteStatusDraft,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err = repo.NewSiteRepo(tx).InsertSite(ctx, site); err != nil {
		return nil, err
	}

	profile := &entity.BusinessProfile{
		SiteID:    site.ID,
		Name:      strings.TrimSpace(req.BusinessName),
		Tagline:   strings.TrimSpace(req.Tagline),
		Socials:   map[string]string{},
		UpdatedAt: now,
	}
	if err = repo.NewProfileRepo(tx).UpsertProfile(ctx, profile); err != nil {
		return nil, err
	}

	pageRepo := repo.NewPageRepo(tx)
	for i, key := range consts.CorePages {
		page := &entity.Page{
			ID:        uuid.New(),
			SiteID:    site.ID,
			Key:       key,
			Title:     corePageTitles[key],
			Data:      pagedata.Default(key, "", profile.Seed()),
			Status:    consts.PageStatusDraft,
			Position:  i,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err = pageRepo.InsertPage(ctx, page); err != nil {
			return nil, fmt.Errorf("err creating %s page, %w", key, err)
		}
	}

	slog.Info("site created", "siteID", site.ID, "slug", site.Slug, "owner", identity.UserID)
	return site, nil
}

func checkSlugFree(ctx context.Context, tx pgx.Tx, slug string) error {
	_, err := repo.NewSiteRepo(tx).GetSiteBySlug(ctx, slug)
	var notFound errs.NotFoundError
	switch {
	case errors.As(err, &notFound):
		return nil
	case err != nil:
		return err
	}
	return errs.ConflictError{Err: fmt.Errorf("slug %q is already taken", slug)}
}
