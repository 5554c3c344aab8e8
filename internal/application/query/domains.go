package query

import (
	"context"
	"fmt"

	"github.com/Builder-Lawyers/site-builder/internal/application/dto"
	"github.com/Builder-Lawyers/site-builder/internal/application/errs"
	"github.com/Builder-Lawyers/site-builder/internal/application/sites"
	"github.com/Builder-Lawyers/site-builder/internal/infra/auth"
	"github.com/Builder-Lawyers/site-builder/internal/infra/db/repo"
	dbs "github.com/Builder-Lawyers/site-builder/pkg/db"
	"github.com/google/uuid"
)

type ListDomains struct {
	uowFactory *dbs.UOWFactory
}

func NewListDomains(factory *dbs.UOWFactory) *ListDomains {
	return &ListDomains{uowFactory: factory}
}

func (q *ListDomains) Query(ctx context.Context, siteID uuid.UUID, identity *auth.Identity) (_ []dto.DomainResponse, err error) {
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
	domains, err := repo.NewDomainRepo(tx).ListDomains(ctx, site.ID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.DomainResponse, 0, len(domains))
	for _, d := range domains {
		out = append(out, dto.MapDomainToResponse(d))
	}
	return out, nil
}

type AvailabilityChecker interface {
	CheckAvailability(ctx context.Context, domain string) (bool, error)
}

type CheckDomain struct {
	checker AvailabilityChecker
}

func NewCheckDomain(checker AvailabilityChecker) *CheckDomain {
	return &CheckDomain{checker: checker}
}

// Query asks the registrar whether the domain can still be registered.
func (q *CheckDomain) Query(ctx context.Context, domain string) (dto.DomainAvailability, error) {
	available, err := q.checker.CheckAvailability(ctx, domain)
	if err != nil {
		return dto.DomainAvailability{}, errs.UpstreamError{Service: "domain registrar", Err: fmt.Errorf("err checking %s, %w", domain, err)}
	}
	return dto.DomainAvailability{Available: available}, nil
}
