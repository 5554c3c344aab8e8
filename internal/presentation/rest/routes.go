package rest

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/oapi-codegen/runtime"
)

// ServerInterface lists every admin API operation.
type ServerInterface interface {
	ListTemplates(c *fiber.Ctx) error
	ListSectionTypes(c *fiber.Ctx) error
	DefaultSection(c *fiber.Ctx, sectionType string) error
	ValidatePageData(c *fiber.Ctx) error
	CheckDomain(c *fiber.Ctx) error

	ListSites(c *fiber.Ctx) error
	CreateSite(c *fiber.Ctx) error
	GetSite(c *fiber.Ctx, id uuid.UUID) error
	UpdateSite(c *fiber.Ctx, id uuid.UUID) error
	DeleteSite(c *fiber.Ctx, id uuid.UUID) error
	PublishSite(c *fiber.Ctx, id uuid.UUID) error
	UnpublishSite(c *fiber.Ctx, id uuid.UUID) error

	GetProfile(c *fiber.Ctx, id uuid.UUID) error
	UpdateProfile(c *fiber.Ctx, id uuid.UUID) error

	ListPages(c *fiber.Ctx, id uuid.UUID) error
	CreatePage(c *fiber.Ctx, id uuid.UUID) error
	GetPage(c *fiber.Ctx, id uuid.UUID, key string) error
	SavePage(c *fiber.Ctx, id uuid.UUID, key string) error
	DeletePage(c *fiber.Ctx, id uuid.UUID, key string) error
	PublishPage(c *fiber.Ctx, id uuid.UUID, key string) error
	UnpublishPage(c *fiber.Ctx, id uuid.UUID, key string) error
	PreviewPage(c *fiber.Ctx, id uuid.UUID, key string) error

	ListDomains(c *fiber.Ctx, id uuid.UUID) error
	AddDomain(c *fiber.Ctx, id uuid.UUID) error
	VerifyDomain(c *fiber.Ctx, id uuid.UUID, domainID uuid.UUID) error
	SetDomainStatus(c *fiber.Ctx, id uuid.UUID, domainID uuid.UUID) error
	RemoveDomain(c *fiber.Ctx, id uuid.UUID, domainID uuid.UUID) error

	ListAssets(c *fiber.Ctx, id uuid.UUID) error
	UploadAsset(c *fiber.Ctx, id uuid.UUID) error
	DeleteAsset(c *fiber.Ctx, id uuid.UUID, assetID uuid.UUID) error

	GenerateContent(c *fiber.Ctx, id uuid.UUID) error
}

type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

type pathParam struct {
	name string
	dest any
}

func bindPath(c *fiber.Ctx, params ...pathParam) error {
	for _, p := range params {
		err := runtime.BindStyledParameterWithOptions("simple", p.name, c.Params(p.name), p.dest,
			runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, fmt.Errorf("Invalid format for parameter %s: %w", p.name, err).Error())
		}
	}
	return nil
}

func (w *ServerInterfaceWrapper) site(fn func(c *fiber.Ctx, id uuid.UUID) error) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var id uuid.UUID
		if err := bindPath(c, pathParam{"id", &id}); err != nil {
			return err
		}
		return fn(c, id)
	}
}

func (w *ServerInterfaceWrapper) page(fn func(c *fiber.Ctx, id uuid.UUID, key string) error) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var id uuid.UUID
		var key string
		if err := bindPath(c, pathParam{"id", &id}, pathParam{"key", &key}); err != nil {
			return err
		}
		return fn(c, id, key)
	}
}

func (w *ServerInterfaceWrapper) child(name string, fn func(c *fiber.Ctx, id uuid.UUID, childID uuid.UUID) error) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var id, childID uuid.UUID
		if err := bindPath(c, pathParam{"id", &id}, pathParam{name, &childID}); err != nil {
			return err
		}
		return fn(c, id, childID)
	}
}

func (w *ServerInterfaceWrapper) DefaultSection(c *fiber.Ctx) error {
	var sectionType string
	if err := bindPath(c, pathParam{"type", &sectionType}); err != nil {
		return err
	}
	return w.Handler.DefaultSection(c, sectionType)
}

// RegisterHandlers mounts the API on router. Every route goes through the
// given middlewares.
func RegisterHandlers(router fiber.Router, si ServerInterface, authed ...fiber.Handler) {
	w := &ServerInterfaceWrapper{Handler: si}
	guarded := func(h fiber.Handler) []fiber.Handler {
		return append(append(make([]fiber.Handler, 0, len(authed)+1), authed...), h)
	}

	router.Get("/templates", guarded(si.ListTemplates)...)
	router.Get("/section-types", guarded(si.ListSectionTypes)...)
	router.Get("/section-types/:type/default", guarded(w.DefaultSection)...)
	router.Post("/page-data/validate", guarded(si.ValidatePageData)...)

	domains := router.Group("/domains", authed...)
	domains.Post("/check", si.CheckDomain)

	sites := router.Group("/sites", authed...)
	sites.Get("/", si.ListSites)
	sites.Post("/", si.CreateSite)
	sites.Get("/:id", w.site(si.GetSite))
	sites.Patch("/:id", w.site(si.UpdateSite))
	sites.Delete("/:id", w.site(si.DeleteSite))
	sites.Post("/:id/publish", w.site(si.PublishSite))
	sites.Post("/:id/unpublish", w.site(si.UnpublishSite))

	sites.Get("/:id/profile", w.site(si.GetProfile))
	sites.Put("/:id/profile", w.site(si.UpdateProfile))

	sites.Get("/:id/pages", w.site(si.ListPages))
	sites.Post("/:id/pages", w.site(si.CreatePage))
	sites.Get("/:id/pages/:key", w.page(si.GetPage))
	sites.Put("/:id/pages/:key", w.page(si.SavePage))
	sites.Delete("/:id/pages/:key", w.page(si.DeletePage))
	sites.Post("/:id/pages/:key/publish", w.page(si.PublishPage))
	sites.Post("/:id/pages/:key/unpublish", w.page(si.UnpublishPage))
	sites.Get("/:id/pages/:key/preview", w.page(si.PreviewPage))

	sites.Get("/:id/domains", w.site(si.ListDomains))
	sites.Post("/:id/domains", w.site(si.AddDomain))
	sites.Post("/:id/domains/:domainId/verify", w.child("domainId", si.VerifyDomain))
	sites.Put("/:id/domains/:domainId/status", w.child("domainId", si.SetDomainStatus))
	sites.Delete("/:id/domains/:domainId", w.child("domainId", si.RemoveDomain))

	sites.Get("/:id/assets", w.site(si.ListAssets))
	sites.Post("/:id/assets", w.site(si.UploadAsset))
	sites.Delete("/:id/assets/:assetId", w.child("assetId", si.DeleteAsset))

	sites.Post("/:id/ai/generate", w.site(si.GenerateContent))
}
