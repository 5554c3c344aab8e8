package repo_test

import (
	"context"
	"errors"
	"log"
	"os"
	"testing"
	"time"

	"github.com/Builder-Lawyers/site-builder/internal/application/errs"
	"github.com/Builder-Lawyers/site-builder/internal/application/events"
	"github.com/Builder-Lawyers/site-builder/internal/domain/consts"
	"github.com/Builder-Lawyers/site-builder/internal/domain/entity"
	"github.com/Builder-Lawyers/site-builder/internal/domain/pagedata"
	"github.com/Builder-Lawyers/site-builder/internal/infra/db"
	"github.com/Builder-Lawyers/site-builder/internal/infra/db/repo"
	"github.com/Builder-Lawyers/site-builder/internal/testinfra"
	dbs "github.com/Builder-Lawyers/site-builder/pkg/db"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"
)

var uowFactory *dbs.UOWFactory

func TestMain(m *testing.M) {
	ctx := context.Background()

	uowFactory = dbs.NewUoWFactory(testinfra.Pool)
	code := m.Run()

	cleanup(ctx)

	os.Exit(code)
}

func begin(t *testing.T) pgx.Tx {
	t.Helper()
	uow := uowFactory.GetUoW()
	tx, err := uow.Begin(context.Background())
	require.NoError(t, err)
	t.Cleanup(func() { _ = uow.Rollback() })
	return tx
}

func newSite(slug string) *entity.Site {
	now := time.Now().Truncate(time.Microsecond)
	return &entity.Site{
		ID:        uuid.New(),
		OwnerID:   uuid.New(),
		Slug:      slug,
		Template:  "classic",
		Status:    consts.SiteStatusDraft,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestInsertAndGetSite(t *testing.T) {
	tx := begin(t)
	ctx := context.Background()
	siteRepo := repo.NewSiteRepo(tx)

	site := newSite("acme-plumbing")
	require.NoError(t, siteRepo.InsertSite(ctx, site))

	got, err := siteRepo.GetSite(ctx, site.ID)
	require.NoError(t, err)
	require.Equal(t, site.Slug, got.Slug)
	require.Equal(t, site.OwnerID, got.OwnerID)
	require.WithinDuration(t, site.CreatedAt, got.CreatedAt, time.Microsecond)

	bySlug, err := siteRepo.GetSiteBySlug(ctx, "acme-plumbing")
	require.NoError(t, err)
	require.Equal(t, site.ID, bySlug.ID)

	owned, err := siteRepo.ListSitesByOwner(ctx, site.OwnerID)
	require.NoError(t, err)
	require.Len(t, owned, 1)
}

func TestInsertSiteWithTakenSlugIsConflict(t *testing.T) {
	tx := begin(t)
	ctx := context.Background()
	siteRepo := repo.NewSiteRepo(tx)

	require.NoError(t, siteRepo.InsertSite(ctx, newSite("taken")))
	err := siteRepo.InsertSite(ctx, newSite("taken"))

	var conflict errs.ConflictError
	require.True(t, errors.As(err, &conflict), "got %v", err)
}

func TestGetMissingSiteIsNotFound(t *testing.T) {
	tx := begin(t)

	_, err := repo.NewSiteRepo(tx).GetSite(context.Background(), uuid.New())
	var notFound errs.NotFoundError
	require.True(t, errors.As(err, &notFound))
	require.Equal(t, "site", notFound.Resource)
}

func TestProfileUpsertReplacesValues(t *testing.T) {
	tx := begin(t)
	ctx := context.Background()
	site := newSite("profile-site")
	require.NoError(t, repo.NewSiteRepo(tx).InsertSite(ctx, site))

	profileRepo := repo.NewProfileRepo(tx)
	profile := &entity.BusinessProfile{SiteID: site.ID, Name: "Acme", Phone: "123", Socials: map[string]string{"instagram": "https://instagram.com/acme"}, UpdatedAt: time.Now()}
	require.NoError(t, profileRepo.UpsertProfile(ctx, profile))

	profile = &entity.BusinessProfile{SiteID: site.ID, Name: "Acme Ltd", UpdatedAt: time.Now()}
	require.NoError(t, profileRepo.UpsertProfile(ctx, profile))

	got, err := profileRepo.GetProfile(ctx, site.ID)
	require.NoError(t, err)
	require.Equal(t, "Acme Ltd", got.Name)
	require.Equal(t, "", got.Phone)
	require.Empty(t, got.Socials)
	require.Nil(t, got.LogoAssetID)
}

func TestPagesRoundTripData(t *testing.T) {
	tx := begin(t)
	ctx := context.Background()
	site := newSite("pages-site")
	require.NoError(t, repo.NewSiteRepo(tx).InsertSite(ctx, site))

	pageRepo := repo.NewPageRepo(tx)
	for i, key := range consts.CorePages {
		page := &entity.Page{
			ID:        uuid.New(),
			SiteID:    site.ID,
			Key:       key,
			Title:     string(key),
			Data:      pagedata.Default(key, "", pagedata.Profile{Name: "Acme"}),
			Status:    consts.PageStatusDraft,
			Position:  i,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}
		require.NoError(t, pageRepo.InsertPage(ctx, page))
	}

	pages, err := pageRepo.ListPages(ctx, site.ID)
	require.NoError(t, err)
	require.Len(t, pages, 3)
	require.Equal(t, consts.PageKeyHome, pages[0].Key)

	home, err := pageRepo.GetPage(ctx, site.ID, consts.PageKeyHome)
	require.NoError(t, err)
	require.Equal(t, pages[0].Data, home.Data)

	next, err := pageRepo.NextPosition(ctx, site.ID)
	require.NoError(t, err)
	require.Equal(t, 3, next)

	now := time.Now()
	home.Status = consts.PageStatusPublished
	home.PublishedAt = &now
	require.NoError(t, pageRepo.UpdatePage(ctx, home))

	published, err := pageRepo.ListPublishedPages(ctx, site.ID)
	require.NoError(t, err)
	require.Len(t, published, 1)
	require.NotNil(t, published[0].PublishedAt)

	require.NoError(t, pageRepo.DeletePage(ctx, site.ID, consts.PageKeyAbout))
	_, err = pageRepo.GetPage(ctx, site.ID, consts.PageKeyAbout)
	var notFound errs.NotFoundError
	require.True(t, errors.As(err, &notFound))
}

func TestDomainHostnameIsUnique(t *testing.T) {
	tx := begin(t)
	ctx := context.Background()
	site := newSite("domain-site")
	require.NoError(t, repo.NewSiteRepo(tx).InsertSite(ctx, site))

	domainRepo := repo.NewDomainRepo(tx)
	domain := &entity.Domain{ID: uuid.New(), SiteID: site.ID, Hostname: "www.acme.test", Status: consts.DomainStatusPending, CreatedAt: time.Now(), UpdatedAt: time.Now()}
	require.NoError(t, domainRepo.InsertDomain(ctx, domain))

	require.NoError(t, domainRepo.SetDomainStatus(ctx, domain.ID, consts.DomainStatusActive, time.Now()))
	got, err := domainRepo.GetDomainByHostname(ctx, "www.acme.test")
	require.NoError(t, err)
	require.Equal(t, consts.DomainStatusActive, got.Status)

	dup := &entity.Domain{ID: uuid.New(), SiteID: site.ID, Hostname: "www.acme.test", Status: consts.DomainStatusPending, CreatedAt: time.Now(), UpdatedAt: time.Now()}
	var conflict errs.ConflictError
	require.True(t, errors.As(domainRepo.InsertDomain(ctx, dup), &conflict))
}

func TestDeletingAssetClearsProfileLogo(t *testing.T) {
	tx := begin(t)
	ctx := context.Background()
	site := newSite("asset-site")
	require.NoError(t, repo.NewSiteRepo(tx).InsertSite(ctx, site))

	assetRepo := repo.NewAssetRepo(tx)
	asset := &entity.Asset{ID: uuid.New(), SiteID: site.ID, Path: "sites/x/assets/logo.png", MimeType: "image/png", Size: 42, CreatedAt: time.Now()}
	require.NoError(t, assetRepo.InsertAsset(ctx, asset))

	profileRepo := repo.NewProfileRepo(tx)
	require.NoError(t, profileRepo.UpsertProfile(ctx, &entity.BusinessProfile{SiteID: site.ID, Name: "Acme", LogoAssetID: &asset.ID, UpdatedAt: time.Now()}))

	require.NoError(t, assetRepo.DeleteAsset(ctx, site.ID, asset.ID))

	profile, err := profileRepo.GetProfile(ctx, site.ID)
	require.NoError(t, err)
	require.Nil(t, profile.LogoAssetID)
}

func TestInsertEventWritesOutboxRow(t *testing.T) {
	tx := begin(t)
	ctx := context.Background()

	siteID := uuid.New()
	require.NoError(t, repo.NewEventRepo(tx).InsertEvent(ctx, events.SitePublished{SiteID: siteID}))

	var outbox db.Outbox
	err := tx.QueryRow(ctx, "SELECT id, event, status, payload, created_at FROM builder.outbox ORDER BY id DESC LIMIT 1").
		Scan(&outbox.ID, &outbox.Event, &outbox.Status, &outbox.Payload, &outbox.CreatedAt)
	require.NoError(t, err)
	require.Equal(t, "SitePublished", outbox.Event)
	require.Equal(t, int(consts.NotProcessed), outbox.Status)

	event, err := db.MapOutboxModelToSitePublished(outbox)
	require.NoError(t, err)
	require.Equal(t, siteID, event.SiteID)
}

func cleanup(ctx context.Context) {
	err := testinfra.Reset(ctx)
	if err != nil {
		log.Panicf("err cleaning up repo test %v", err)
	}
}
