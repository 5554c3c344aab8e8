package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Builder-Lawyers/site-builder/internal/application/dto"
	"github.com/Builder-Lawyers/site-builder/internal/application/errs"
	"github.com/Builder-Lawyers/site-builder/internal/application/sites"
	"github.com/Builder-Lawyers/site-builder/internal/domain/consts"
	"github.com/Builder-Lawyers/site-builder/internal/domain/entity"
	"github.com/Builder-Lawyers/site-builder/internal/infra/auth"
	"github.com/Builder-Lawyers/site-builder/internal/infra/db/repo"
	dbs "github.com/Builder-Lawyers/site-builder/pkg/db"
	"github.com/google/uuid"
)

// Verifier checks where a custom domain currently points.
type Verifier interface {
	VerifyCNAME(ctx context.Context, host string) (bool, string)
}

type AddDomain struct {
	uowFactory *dbs.UOWFactory
	baseDomain string
}

func NewAddDomain(factory *dbs.UOWFactory, baseDomain string) *AddDomain {
	return &AddDomain{uowFactory: factory, baseDomain: baseDomain}
}

func (c *AddDomain) Execute(ctx context.Context, siteID uuid.UUID, req *dto.AddDomainRequest, identity *auth.Identity) (_ *entity.Domain, err error) {
	host, err := NormalizeHostname(req.Hostname)
	if err != nil {
		return nil, errs.ValidationError{Err: err, Details: []string{"hostname: " + err.Error()}}
	}
	if underBase(host, c.baseDomain) {
		return nil, errs.ValidationError{
			Err:     fmt.Errorf("%s belongs to the platform", host),
			Details: []string{fmt.Sprintf("hostname: addresses under %s are assigned automatically", c.baseDomain)},
		}
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

	domainRepo := repo.NewDomainRepo(tx)
	_, err = domainRepo.GetDomainByHostname(ctx, host)
	var notFound errs.NotFoundError
	switch {
	case err == nil:
		return nil, errs.ConflictError{Err: fmt.Errorf("domain %s is already connected to a site", host)}
	case !errors.As(err, &notFound):
		return nil, err
	}

	now := time.Now()
	domain := &entity.Domain{
		ID:        uuid.New(),
		SiteID:    site.ID,
		Hostname:  host,
		Status:    consts.DomainStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err = domainRepo.InsertDomain(ctx, domain); err != nil {
		return nil, err
	}

	slog.Info("domain added", "siteID", site.ID, "hostname", host)
	return domain, nil
}

type VerifyDomain struct {
	uowFactory *dbs.UOWFactory
	verifier   Verifier
	edgeTarget string
}

func NewVerifyDomain(factory *dbs.UOWFactory, verifier Verifier, edgeTarget string) *VerifyDomain {
	return &VerifyDomain{uowFactory: factory, verifier: verifier, edgeTarget: edgeTarget}
}

// Execute activates a pending domain once its CNAME points at the edge.
// Blocked domains stay blocked whatever DNS says.
func (c *VerifyDomain) Execute(ctx context.Context, siteID, domainID uuid.UUID, identity *auth.Identity) (_ *dto.VerifyDomainResponse, err error) {
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
	domainRepo := repo.NewDomainRepo(tx)
	domain, err := domainRepo.GetDomain(ctx, site.ID, domainID)
	if err != nil {
		return nil, err
	}

	verified, observed := c.verifier.VerifyCNAME(ctx, domain.Hostname)
	if verified && domain.Status == consts.DomainStatusPending {
		domain.Status = consts.DomainStatusActive
		domain.UpdatedAt = time.Now()
		if err = domainRepo.SetDomainStatus(ctx, domain.ID, domain.Status, domain.UpdatedAt); err != nil {
			return nil, err
		}
		slog.Info("domain verified", "siteID", site.ID, "hostname", domain.Hostname)
	} else if !verified {
		slog.Info("domain not pointed at edge yet", "hostname", domain.Hostname, "observed", observed)
	}

	return &dto.VerifyDomainResponse{
		Domain:   dto.MapDomainToResponse(domain),
		Verified: verified,
		Expected: c.edgeTarget,
		Observed: observed,
	}, nil
}

type SetDomainStatus struct {
	uowFactory *dbs.UOWFactory
}

func NewSetDomainStatus(factory *dbs.UOWFactory) *SetDomainStatus {
	return &SetDomainStatus{uowFactory: factory}
}

func (c *SetDomainStatus) Execute(ctx context.Context, siteID, domainID uuid.UUID, status consts.DomainStatus, identity *auth.Identity) (_ *entity.Domain, err error) {
	if !status.Valid() {
		return nil, errs.Invalidf("unknown domain status %q", status)
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
	domainRepo := repo.NewDomainRepo(tx)
	domain, err := domainRepo.GetDomain(ctx, site.ID, domainID)
	if err != nil {
		return nil, err
	}
	if domain.Status == status {
		return domain, nil
	}

	domain.Status = status
	domain.UpdatedAt = time.Now()
	if err = domainRepo.SetDomainStatus(ctx, domain.ID, status, domain.UpdatedAt); err != nil {
		return nil, err
	}

	slog.Info("domain status changed", "siteID", site.ID, "hostname", domain.Hostname, "status", status)
	return domain, nil
}

type RemoveDomain struct {
	uowFactory *dbs.UOWFactory
}

func NewRemoveDomain(factory *dbs.UOWFactory) *RemoveDomain {
	return &RemoveDomain{uowFactory: factory}
}

func (c *RemoveDomain) Execute(ctx context.Context, siteID, domainID uuid.UUID, identity *auth.Identity) (err error) {
	uow := c.uowFactory.GetUoW()
	tx, err := uow.Begin(ctx)
	if err != nil {
		return err
	}
	defer uow.Finalize(&err)

	site, err := sites.Owned(ctx, tx, siteID, identity)
	if err != nil {
		return err
	}
	if err = repo.NewDomainRepo(tx).DeleteDomain(ctx, site.ID, domainID); err != nil {
		return err
	}

	slog.Info("domain removed", "siteID", site.ID, "domainID", domainID)
	return nil
}
