package profile

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/Builder-Lawyers/site-builder/internal/application/dto"
	"github.com/Builder-Lawyers/site-builder/internal/application/errs"
	"github.com/Builder-Lawyers/site-builder/internal/application/sites"
	"github.com/Builder-Lawyers/site-builder/internal/domain/entity"
	"github.com/Builder-Lawyers/site-builder/internal/infra/auth"
	"github.com/Builder-Lawyers/site-builder/internal/infra/db/repo"
	dbs "github.com/Builder-Lawyers/site-builder/pkg/db"
	"github.com/google/uuid"
)

type UpdateProfile struct {
	uowFactory *dbs.UOWFactory
}

func NewUpdateProfile(factory *dbs.UOWFactory) *UpdateProfile {
	return &UpdateProfile{uowFactory: factory}
}

// Execute replaces the business profile of the site.
func (c *UpdateProfile) Execute(ctx context.Context, siteID uuid.UUID, req *dto.UpdateProfileRequest, identity *auth.Identity) (_ *entity.BusinessProfile, err error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, errs.ValidationError{Details: []string{"name: must not be blank"}}
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

	if req.LogoAssetID != nil {
		_, err = repo.NewAssetRepo(tx).GetAsset(ctx, site.ID, *req.LogoAssetID)
		var notFound errs.NotFoundError
		if errors.As(err, &notFound) {
			return nil, errs.ValidationError{Err: err, Details: []string{"logoAssetId: must reference an asset of this site"}}
		}
		if err != nil {
			return nil, err
		}
	}

	socials := make(map[string]string, len(req.Socials))
	for k, v := range req.Socials {
		k, v = strings.ToLower(strings.TrimSpace(k)), strings.TrimSpace(v)
		if k == "" || v == "" {
			continue
		}
		socials[k] = v
	}

	profile := &entity.BusinessProfile{
		SiteID:      site.ID,
		Name:        name,
		Tagline:     strings.TrimSpace(req.Tagline),
		Description: strings.TrimSpace(req.Description),
		Industry:    strings.TrimSpace(req.Industry),
		Phone:       strings.TrimSpace(req.Phone),
		Email:       strings.TrimSpace(req.Email),
		Address:     strings.TrimSpace(req.Address),
		City:        strings.TrimSpace(req.City),
		Socials:     socials,
		LogoAssetID: req.LogoAssetID,
		UpdatedAt:   time.Now(),
	}
	if err = repo.NewProfileRepo(tx).UpsertProfile(ctx, profile); err != nil {
		return nil, err
	}
	if err = sites.RefreshSnapshot(ctx, tx, site); err != nil {
		return nil, err
	}

	slog.Info("business profile updated", "siteID", site.ID)
	return profile, nil
}
