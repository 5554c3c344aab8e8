package page_test

import (
	"context"
	"os"
	"testing"

	"github.com/Builder-Lawyers/site-builder/internal/application/commands/page"
	"github.com/Builder-Lawyers/site-builder/internal/application/commands/site"
	"github.com/Builder-Lawyers/site-builder/internal/application/dto"
	"github.com/Builder-Lawyers/site-builder/internal/application/errs"
	"github.com/Builder-Lawyers/site-builder/internal/domain/consts"
	"github.com/Builder-Lawyers/site-builder/internal/domain/entity"
	"github.com/Builder-Lawyers/site-builder/internal/domain/pagedata"
	"github.com/Builder-Lawyers/site-builder/internal/infra/auth"
	"github.com/Builder-Lawyers/site-builder/internal/infra/db/repo"
	"github.com/Builder-Lawyers/site-builder/internal/testinfra"
	dbs "github.com/Builder-Lawyers/site-builder/pkg/db"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type themes map[string]bool

func (t themes) HasTheme(key string) bool { return t[key] }

var uowFactory *dbs.UOWFactory

func TestMain(m *testing.M) {
	uowFactory = dbs.NewUoWFactory(testinfra.Pool)
	code := m.Run()
	_ = testinfra.Reset(context.Background())
	os.Exit(code)
}

const (
	contactDoc = `{
		"seo": {"title": "Contact"},
		"sections": [{"type": "contact_card", "title": "Say hello", "email": "hi@example.com"}]
	}`
	noDetailsDoc = `{
		"seo": {"title": "Contact"},
		"sections": [{"type": "contact_card", "title": "Say hello"}]
	}`
)

func newSite(t *testing.T, slug string) (uuid.UUID, *auth.Identity) {
	t.Helper()
	identity := &auth.Identity{UserID: uuid.New()}
	created, err := site.NewCreateSite(uowFactory, themes{"classic": true}).Execute(context.Background(),
		&dto.CreateSiteRequest{Slug: slug, BusinessName: "Test Co"}, identity)
	require.NoError(t, err)
	return created.ID, identity
}

func loadPage(t *testing.T, siteID uuid.UUID, key consts.PageKey) (*entity.Page, error) {
	t.Helper()
	ctx := context.Background()
	uow := uowFactory.GetUoW()
	tx, err := uow.Begin(ctx)
	require.NoError(t, err)
	defer uow.Rollback()
	return repo.NewPageRepo(tx).GetPage(ctx, siteID, key)
}

func TestPublishPageRequiresPublishableContent(t *testing.T) {
	ctx := context.Background()
	siteID, identity := newSite(t, "page-publish")
	setStatus := page.NewSetPageStatus(uowFactory)

	_, err := setStatus.Execute(ctx, siteID, consts.PageKeyContact, consts.PageStatusPublished, identity)
	var invalid errs.ValidationError
	require.ErrorAs(t, err, &invalid)
	require.Contains(t, invalid.Details, "sections[0].phone|email|address: required for publishing")

	got, err := loadPage(t, siteID, consts.PageKeyContact)
	require.NoError(t, err)
	require.Equal(t, consts.PageStatusDraft, got.Status)
	require.Nil(t, got.PublishedAt)

	_, err = page.NewSavePage(uowFactory).Execute(ctx, siteID, consts.PageKeyContact,
		&dto.SavePageRequest{Data: []byte(contactDoc)}, identity)
	require.NoError(t, err)

	published, err := setStatus.Execute(ctx, siteID, consts.PageKeyContact, consts.PageStatusPublished, identity)
	require.NoError(t, err)
	require.Equal(t, consts.PageStatusPublished, published.Status)
	require.NotNil(t, published.PublishedAt)

	_, err = setStatus.Execute(ctx, siteID, consts.PageKeyContact, "archived", identity)
	require.ErrorAs(t, err, &invalid)
}

func TestSavePublishedPageKeepsItPublished(t *testing.T) {
	ctx := context.Background()
	siteID, identity := newSite(t, "page-save")
	save := page.NewSavePage(uowFactory)

	_, err := save.Execute(ctx, siteID, consts.PageKeyContact, &dto.SavePageRequest{Data: []byte(contactDoc)}, identity)
	require.NoError(t, err)
	_, err = page.NewSetPageStatus(uowFactory).Execute(ctx, siteID, consts.PageKeyContact, consts.PageStatusPublished, identity)
	require.NoError(t, err)

	// a published page can't be saved into a state that would fail publishing
	_, err = save.Execute(ctx, siteID, consts.PageKeyContact, &dto.SavePageRequest{Data: []byte(noDetailsDoc)}, identity)
	var invalid errs.ValidationError
	require.ErrorAs(t, err, &invalid)
	require.NotEmpty(t, invalid.Details)

	got, err := loadPage(t, siteID, consts.PageKeyContact)
	require.NoError(t, err)
	card, ok := got.Data.Sections[0].Body.(*pagedata.ContactCard)
	require.True(t, ok)
	require.Equal(t, "hi@example.com", card.Email)
	require.NotNil(t, got.PublishedAt)
}

func TestUnpublishPageClearsPublishedAt(t *testing.T) {
	ctx := context.Background()
	siteID, identity := newSite(t, "page-unpublish")
	setStatus := page.NewSetPageStatus(uowFactory)

	published, err := setStatus.Execute(ctx, siteID, consts.PageKeyHome, consts.PageStatusPublished, identity)
	require.NoError(t, err)
	require.NotNil(t, published.PublishedAt)

	draft, err := setStatus.Execute(ctx, siteID, consts.PageKeyHome, consts.PageStatusDraft, identity)
	require.NoError(t, err)
	require.Equal(t, consts.PageStatusDraft, draft.Status)
	require.Nil(t, draft.PublishedAt)

	got, err := loadPage(t, siteID, consts.PageKeyHome)
	require.NoError(t, err)
	require.Equal(t, consts.PageStatusDraft, got.Status)
	require.Nil(t, got.PublishedAt)
}

func TestCreateAndDeleteExtraPage(t *testing.T) {
	ctx := context.Background()
	siteID, identity := newSite(t, "page-extra")
	create := page.NewCreatePage(uowFactory)

	created, err := create.Execute(ctx, siteID, &dto.CreatePageRequest{Key: " Pricing ", Title: "Pricing"}, identity)
	require.NoError(t, err)
	require.Equal(t, consts.PageKey("pricing"), created.Key)
	require.Equal(t, consts.PageStatusDraft, created.Status)
	require.Equal(t, len(consts.CorePages), created.Position)

	_, err = create.Execute(ctx, siteID, &dto.CreatePageRequest{Key: "pricing", Title: "Again"}, identity)
	var conflict errs.ConflictError
	require.ErrorAs(t, err, &conflict)

	var invalid errs.ValidationError
	for _, key := range []string{"contact", "index", "metrics", "healthz"} {
		_, err = create.Execute(ctx, siteID, &dto.CreatePageRequest{Key: key, Title: "Nope"}, identity)
		require.ErrorAs(t, err, &invalid, key)
	}

	del := page.NewDeletePage(uowFactory)
	err = del.Execute(ctx, siteID, consts.PageKeyHome, identity)
	require.ErrorAs(t, err, &invalid)
	_, err = loadPage(t, siteID, consts.PageKeyHome)
	require.NoError(t, err)

	require.NoError(t, del.Execute(ctx, siteID, "pricing", identity))
	_, err = loadPage(t, siteID, "pricing")
	var notFound errs.NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestPageCommandsCheckOwnership(t *testing.T) {
	ctx := context.Background()
	siteID, _ := newSite(t, "page-owner")
	stranger := &auth.Identity{UserID: uuid.New()}

	_, err := page.NewSavePage(uowFactory).Execute(ctx, siteID, consts.PageKeyContact,
		&dto.SavePageRequest{Data: []byte(contactDoc)}, stranger)
	var perm errs.PermissionsError
	require.ErrorAs(t, err, &perm)

	_, err = page.NewCreatePage(uowFactory).Execute(ctx, siteID, &dto.CreatePageRequest{Key: "team", Title: "Team"}, stranger)
	require.ErrorAs(t, err, &perm)
}
