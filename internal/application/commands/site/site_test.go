package site_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/Builder-Lawyers/site-builder/internal/application/commands/page"
	"github.com/Builder-Lawyers/site-builder/internal/application/commands/site"
	"github.com/Builder-Lawyers/site-builder/internal/application/dto"
	"github.com/Builder-Lawyers/site-builder/internal/application/errs"
	"github.com/Builder-Lawyers/site-builder/internal/application/events"
	"github.com/Builder-Lawyers/site-builder/internal/domain/consts"
	"github.com/Builder-Lawyers/site-builder/internal/infra/auth"
	"github.com/Builder-Lawyers/site-builder/internal/infra/db/repo"
	"github.com/Builder-Lawyers/site-builder/internal/testinfra"
	dbs "github.com/Builder-Lawyers/site-builder/pkg/db"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type themes map[string]bool

func (t themes) HasTheme(key string) bool { return t[key] }

var (
	uowFactory *dbs.UOWFactory
	catalog    = themes{"classic": true, "modern": true}
)

func TestMain(m *testing.M) {
	uowFactory = dbs.NewUoWFactory(testinfra.Pool)
	code := m.Run()
	_ = testinfra.Reset(context.Background())
	os.Exit(code)
}

func owner() *auth.Identity {
	return &auth.Identity{UserID: uuid.New()}
}

func outboxEvents(t *testing.T, event string) int {
	t.Helper()
	var n int
	err := testinfra.Pool.QueryRow(context.Background(),
		"SELECT count(*) FROM builder.outbox WHERE event = $1", event).Scan(&n)
	require.NoError(t, err)
	return n
}

func TestCreateSiteAddsProfileAndCorePages(t *testing.T) {
	ctx := context.Background()
	identity := owner()

	created, err := site.NewCreateSite(uowFactory, catalog).Execute(ctx, &dto.CreateSiteRequest{
		Slug:         "  Green-Garden ",
		BusinessName: "Green Garden",
		Tagline:      "Landscaping done right",
	}, identity)
	require.NoError(t, err)
	require.Equal(t, "green-garden", created.Slug)
	require.Equal(t, "classic", created.Template)
	require.Equal(t, consts.SiteStatusDraft, created.Status)

	uow := uowFactory.GetUoW()
	tx, err := uow.Begin(ctx)
	require.NoError(t, err)
	defer uow.Rollback()

	pages, err := repo.NewPageRepo(tx).ListPages(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, pages, 3)
	for i, key := range consts.CorePages {
		require.Equal(t, key, pages[i].Key)
		require.Equal(t, consts.PageStatusDraft, pages[i].Status)
	}

	profile, err := repo.NewProfileRepo(tx).GetProfile(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, "Landscaping done right", profile.Tagline)
}

func TestCreateSiteRejectsTakenAndInvalidSlugs(t *testing.T) {
	ctx := context.Background()
	create := site.NewCreateSite(uowFactory, catalog)

	_, err := create.Execute(ctx, &dto.CreateSiteRequest{Slug: "taken-slug", BusinessName: "One"}, owner())
	require.NoError(t, err)

	_, err = create.Execute(ctx, &dto.CreateSiteRequest{Slug: "taken-slug", BusinessName: "Two"}, owner())
	var conflict errs.ConflictError
	require.ErrorAs(t, err, &conflict)

	_, err = create.Execute(ctx, &dto.CreateSiteRequest{Slug: "-bad", BusinessName: "Three"}, owner())
	var invalid errs.ValidationError
	require.ErrorAs(t, err, &invalid)
	require.Contains(t, invalid.Details[0], "slug:")

	_, err = create.Execute(ctx, &dto.CreateSiteRequest{Slug: "nice-slug", Template: "neon", BusinessName: "Four"}, owner())
	require.ErrorAs(t, err, &invalid)
}

func TestPublishReportsEveryPageProblemAndChangesNothing(t *testing.T) {
	ctx := context.Background()
	identity := owner()
	created, err := site.NewCreateSite(uowFactory, catalog).Execute(ctx, &dto.CreateSiteRequest{
		Slug: "no-details", BusinessName: "No Details",
	}, identity)
	require.NoError(t, err)

	_, _, err = site.NewPublishSite(uowFactory).Execute(ctx, created.ID, identity)
	var invalid errs.ValidationError
	require.ErrorAs(t, err, &invalid)
	require.Contains(t, invalid.Details, "contact: sections[0].phone|email|address: required for publishing")
	for _, d := range invalid.Details {
		require.Regexp(t, `^contact: `, d)
	}

	uow := uowFactory.GetUoW()
	tx, err := uow.Begin(ctx)
	require.NoError(t, err)
	defer uow.Rollback()
	got, err := repo.NewSiteRepo(tx).GetSite(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, consts.SiteStatusDraft, got.Status)
}

func TestPublishAndUnpublishSite(t *testing.T) {
	ctx := context.Background()
	identity := owner()
	created, err := site.NewCreateSite(uowFactory, catalog).Execute(ctx, &dto.CreateSiteRequest{
		Slug: "corner-bakery", BusinessName: "Corner Bakery",
	}, identity)
	require.NoError(t, err)
	fillContactPage(t, created.ID, identity)

	before := outboxEvents(t, events.SitePublished{}.GetType())
	published, pages, err := site.NewPublishSite(uowFactory).Execute(ctx, created.ID, identity)
	require.NoError(t, err)
	require.Equal(t, consts.SiteStatusPublished, published.Status)
	require.Len(t, pages, 3)
	for _, p := range pages {
		require.Equal(t, consts.PageStatusPublished, p.Status)
		require.NotNil(t, p.PublishedAt)
	}
	require.Equal(t, before+1, outboxEvents(t, events.SitePublished{}.GetType()))

	beforeUnpublish := outboxEvents(t, events.SiteUnpublished{}.GetType())
	draft, pages, err := site.NewUnpublishSite(uowFactory).Execute(ctx, created.ID, identity)
	require.NoError(t, err)
	require.Equal(t, consts.SiteStatusDraft, draft.Status)
	for _, p := range pages {
		require.Equal(t, consts.PageStatusDraft, p.Status)
		require.Nil(t, p.PublishedAt)
	}
	require.Equal(t, beforeUnpublish+1, outboxEvents(t, events.SiteUnpublished{}.GetType()))
}

func TestSlugChangeOfPublishedSiteMovesSnapshot(t *testing.T) {
	ctx := context.Background()
	identity := owner()
	created, err := site.NewCreateSite(uowFactory, catalog).Execute(ctx, &dto.CreateSiteRequest{
		Slug: "old-name", BusinessName: "Renamed Co",
	}, identity)
	require.NoError(t, err)
	fillContactPage(t, created.ID, identity)
	_, _, err = site.NewPublishSite(uowFactory).Execute(ctx, created.ID, identity)
	require.NoError(t, err)

	unpublished := outboxEvents(t, events.SiteUnpublished{}.GetType())
	newSlug, template := "new-name", "modern"
	updated, err := site.NewUpdateSite(uowFactory, catalog).Execute(ctx, created.ID, &dto.UpdateSiteRequest{
		Slug: &newSlug, Template: &template,
	}, identity)
	require.NoError(t, err)
	require.Equal(t, "new-name", updated.Slug)
	require.Equal(t, "modern", updated.Template)
	require.Equal(t, unpublished+1, outboxEvents(t, events.SiteUnpublished{}.GetType()))
}

func TestOnlyOwnerCanChangeSite(t *testing.T) {
	ctx := context.Background()
	created, err := site.NewCreateSite(uowFactory, catalog).Execute(ctx, &dto.CreateSiteRequest{
		Slug: "private-site", BusinessName: "Private",
	}, owner())
	require.NoError(t, err)

	err = site.NewDeleteSite(uowFactory).Execute(ctx, created.ID, owner())
	var perm errs.PermissionsError
	require.True(t, errors.As(err, &perm))

	_, _, err = site.NewPublishSite(uowFactory).Execute(ctx, created.ID, nil)
	require.ErrorAs(t, err, &perm)
}

func TestDeleteSiteQueuesPurge(t *testing.T) {
	ctx := context.Background()
	identity := owner()
	created, err := site.NewCreateSite(uowFactory, catalog).Execute(ctx, &dto.CreateSiteRequest{
		Slug: "short-lived", BusinessName: "Short Lived",
	}, identity)
	require.NoError(t, err)

	before := outboxEvents(t, events.SiteDeleted{}.GetType())
	require.NoError(t, site.NewDeleteSite(uowFactory).Execute(ctx, created.ID, identity))
	require.Equal(t, before+1, outboxEvents(t, events.SiteDeleted{}.GetType()))

	err = site.NewDeleteSite(uowFactory).Execute(ctx, created.ID, identity)
	var notFound errs.NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func fillContactPage(t *testing.T, siteID uuid.UUID, identity *auth.Identity) {
	t.Helper()
	doc := `{
		"seo": {"title": "Contact"},
		"sections": [
			{"type": "contact_card", "title": "Say hello", "phone": "+1 555 0100"},
			{"type": "hours", "title": "Hours", "entries": [{"day": "Mon-Fri", "hours": "8-17"}]}
		]
	}`
	_, err := page.NewSavePage(uowFactory).Execute(context.Background(), siteID, consts.PageKeyContact,
		&dto.SavePageRequest{Data: []byte(doc)}, identity)
	require.NoError(t, err)
}
