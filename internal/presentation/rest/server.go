package rest

import (
	"errors"
	"reflect"
	"strings"

	"github.com/Builder-Lawyers/site-builder/internal/application"
	"github.com/Builder-Lawyers/site-builder/internal/application/dto"
	"github.com/Builder-Lawyers/site-builder/internal/application/errs"
	"github.com/Builder-Lawyers/site-builder/internal/domain/consts"
	"github.com/Builder-Lawyers/site-builder/internal/domain/pagedata"
	"github.com/Builder-Lawyers/site-builder/internal/render"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

var _ ServerInterface = (*Server)(nil)

type ThemeLister interface {
	Themes() []render.Theme
}

type Server struct {
	handlers *application.Handlers
	themes   ThemeLister
	validate *validator.Validate
}

func NewServer(handlers *application.Handlers, themes ThemeLister) *Server {
	return &Server{handlers: handlers, themes: themes, validate: newValidator()}
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// parse decodes the JSON body into req and checks its validate tags.
func (s *Server) parse(c *fiber.Ctx, req any) error {
	if err := c.BodyParser(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return s.validate.Struct(req)
}

func (s *Server) ListTemplates(c *fiber.Ctx) error {
	themes := s.themes.Themes()
	resp := make([]dto.TemplateResponse, 0, len(themes))
	for _, t := range themes {
		resp = append(resp, dto.MapThemeToResponse(t))
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

func (s *Server) ListSectionTypes(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(dto.SectionTypesResponse{Types: pagedata.Types()})
}

func (s *Server) DefaultSection(c *fiber.Ctx, sectionType string) error {
	section, err := pagedata.NewSection(pagedata.SectionType(sectionType))
	if err != nil {
		return writeError(c, errs.NotFoundError{Resource: "section type", Err: err})
	}
	return c.Status(fiber.StatusOK).JSON(section)
}

// ValidatePageData parses the body as page data. With ?publish=true the
// result also has to pass the publish check.
func (s *Server) ValidatePageData(c *fiber.Ctx) error {
	data, err := pagedata.Parse(c.Body())
	if err == nil && c.QueryBool("publish") {
		err = data.CheckPublishable()
	}
	if err != nil {
		var verr *pagedata.ValidationError
		if !errors.As(err, &verr) {
			return writeError(c, fiber.NewError(fiber.StatusBadRequest, err.Error()))
		}
		return c.Status(fiber.StatusOK).JSON(dto.ValidatePageDataResponse{Valid: false, Errors: verr.Details()})
	}
	return c.Status(fiber.StatusOK).JSON(dto.ValidatePageDataResponse{Valid: true, Data: &data})
}

func (s *Server) CheckDomain(c *fiber.Ctx) error {
	var req dto.CheckDomainRequest
	if err := s.parse(c, &req); err != nil {
		return writeError(c, err)
	}
	resp, err := s.handlers.CheckDomain.Query(c.UserContext(), req.Domain)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

func (s *Server) ListSites(c *fiber.Ctx) error {
	identity, err := identityFrom(c)
	if err != nil {
		return writeError(c, err)
	}
	resp, err := s.handlers.ListSites.Query(c.UserContext(), identity)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

func (s *Server) CreateSite(c *fiber.Ctx) error {
	identity, err := identityFrom(c)
	if err != nil {
		return writeError(c, err)
	}
	var req dto.CreateSiteRequest
	if err := s.parse(c, &req); err != nil {
		return writeError(c, err)
	}

	site, err := s.handlers.CreateSite.Execute(c.UserContext(), &req, identity)
	if err != nil {
		return writeError(c, err)
	}
	resp, err := s.handlers.GetSite.Query(c.UserContext(), site.ID, identity)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

func (s *Server) GetSite(c *fiber.Ctx, id uuid.UUID) error {
	identity, err := identityFrom(c)
	if err != nil {
		return writeError(c, err)
	}
	resp, err := s.handlers.GetSite.Query(c.UserContext(), id, identity)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

func (s *Server) UpdateSite(c *fiber.Ctx, id uuid.UUID) error {
	identity, err := identityFrom(c)
	if err != nil {
		return writeError(c, err)
	}
	var req dto.UpdateSiteRequest
	if err := s.parse(c, &req); err != nil {
		return writeError(c, err)
	}

	if _, err := s.handlers.UpdateSite.Execute(c.UserContext(), id, &req, identity); err != nil {
		return writeError(c, err)
	}
	resp, err := s.handlers.GetSite.Query(c.UserContext(), id, identity)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

func (s *Server) DeleteSite(c *fiber.Ctx, id uuid.UUID) error {
	identity, err := identityFrom(c)
	if err != nil {
		return writeError(c, err)
	}
	if err := s.handlers.DeleteSite.Execute(c.UserContext(), id, identity); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) PublishSite(c *fiber.Ctx, id uuid.UUID) error {
	identity, err := identityFrom(c)
	if err != nil {
		return writeError(c, err)
	}
	site, pages, err := s.handlers.PublishSite.Execute(c.UserContext(), id, identity)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(dto.MapPublishResult(site, pages))
}

func (s *Server) UnpublishSite(c *fiber.Ctx, id uuid.UUID) error {
	identity, err := identityFrom(c)
	if err != nil {
		return writeError(c, err)
	}
	site, pages, err := s.handlers.UnpublishSite.Execute(c.UserContext(), id, identity)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(dto.MapPublishResult(site, pages))
}

func (s *Server) GetProfile(c *fiber.Ctx, id uuid.UUID) error {
	identity, err := identityFrom(c)
	if err != nil {
		return writeError(c, err)
	}
	resp, err := s.handlers.GetProfile.Query(c.UserContext(), id, identity)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

func (s *Server) UpdateProfile(c *fiber.Ctx, id uuid.UUID) error {
	identity, err := identityFrom(c)
	if err != nil {
		return writeError(c, err)
	}
	var req dto.UpdateProfileRequest
	if err := s.parse(c, &req); err != nil {
		return writeError(c, err)
	}

	if _, err := s.handlers.UpdateProfile.Execute(c.UserContext(), id, &req, identity); err != nil {
		return writeError(c, err)
	}
	resp, err := s.handlers.GetProfile.Query(c.UserContext(), id, identity)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

func (s *Server) ListPages(c *fiber.Ctx, id uuid.UUID) error {
	identity, err := identityFrom(c)
	if err != nil {
		return writeError(c, err)
	}
	resp, err := s.handlers.ListPages.Query(c.UserContext(), id, identity)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

func (s *Server) CreatePage(c *fiber.Ctx, id uuid.UUID) error {
	identity, err := identityFrom(c)
	if err != nil {
		return writeError(c, err)
	}
	var req dto.CreatePageRequest
	if err := s.parse(c, &req); err != nil {
		return writeError(c, err)
	}

	page, err := s.handlers.CreatePage.Execute(c.UserContext(), id, &req, identity)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MapPageToResponse(page))
}

func (s *Server) GetPage(c *fiber.Ctx, id uuid.UUID, key string) error {
	identity, err := identityFrom(c)
	if err != nil {
		return writeError(c, err)
	}
	resp, err := s.handlers.GetPage.Query(c.UserContext(), id, consts.PageKey(key), identity)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

func (s *Server) SavePage(c *fiber.Ctx, id uuid.UUID, key string) error {
	identity, err := identityFrom(c)
	if err != nil {
		return writeError(c, err)
	}
	var req dto.SavePageRequest
	if err := s.parse(c, &req); err != nil {
		return writeError(c, err)
	}

	page, err := s.handlers.SavePage.Execute(c.UserContext(), id, consts.PageKey(key), &req, identity)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(dto.MapPageToResponse(page))
}

func (s *Server) DeletePage(c *fiber.Ctx, id uuid.UUID, key string) error {
	identity, err := identityFrom(c)
	if err != nil {
		return writeError(c, err)
	}
	if err := s.handlers.DeletePage.Execute(c.UserContext(), id, consts.PageKey(key), identity); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) PublishPage(c *fiber.Ctx, id uuid.UUID, key string) error {
	return s.setPageStatus(c, id, key, consts.PageStatusPublished)
}

func (s *Server) UnpublishPage(c *fiber.Ctx, id uuid.UUID, key string) error {
	return s.setPageStatus(c, id, key, consts.PageStatusDraft)
}

func (s *Server) setPageStatus(c *fiber.Ctx, id uuid.UUID, key string, status consts.PageStatus) error {
	identity, err := identityFrom(c)
	if err != nil {
		return writeError(c, err)
	}
	page, err := s.handlers.SetPageStatus.Execute(c.UserContext(), id, consts.PageKey(key), status, identity)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(dto.MapPageToResponse(page))
}

func (s *Server) PreviewPage(c *fiber.Ctx, id uuid.UUID, key string) error {
	identity, err := identityFrom(c)
	if err != nil {
		return writeError(c, err)
	}
	html, err := s.handlers.PreviewPage.Query(c.UserContext(), id, consts.PageKey(key), c.Query("template"), identity)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderCacheControl, "no-store")
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Status(fiber.StatusOK).Send(html)
}

func (s *Server) ListDomains(c *fiber.Ctx, id uuid.UUID) error {
	identity, err := identityFrom(c)
	if err != nil {
		return writeError(c, err)
	}
	resp, err := s.handlers.ListDomains.Query(c.UserContext(), id, identity)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

func (s *Server) AddDomain(c *fiber.Ctx, id uuid.UUID) error {
	identity, err := identityFrom(c)
	if err != nil {
		return writeError(c, err)
	}
	var req dto.AddDomainRequest
	if err := s.parse(c, &req); err != nil {
		return writeError(c, err)
	}

	domain, err := s.handlers.AddDomain.Execute(c.UserContext(), id, &req, identity)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MapDomainToResponse(domain))
}

func (s *Server) VerifyDomain(c *fiber.Ctx, id uuid.UUID, domainID uuid.UUID) error {
	identity, err := identityFrom(c)
	if err != nil {
		return writeError(c, err)
	}
	resp, err := s.handlers.VerifyDomain.Execute(c.UserContext(), id, domainID, identity)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

func (s *Server) SetDomainStatus(c *fiber.Ctx, id uuid.UUID, domainID uuid.UUID) error {
	identity, err := identityFrom(c)
	if err != nil {
		return writeError(c, err)
	}
	var req dto.SetDomainStatusRequest
	if err := s.parse(c, &req); err != nil {
		return writeError(c, err)
	}

	domain, err := s.handlers.SetDomain.Execute(c.UserContext(), id, domainID, consts.DomainStatus(req.Status), identity)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(dto.MapDomainToResponse(domain))
}

func (s *Server) RemoveDomain(c *fiber.Ctx, id uuid.UUID, domainID uuid.UUID) error {
	identity, err := identityFrom(c)
	if err != nil {
		return writeError(c, err)
	}
	if err := s.handlers.RemoveDomain.Execute(c.UserContext(), id, domainID, identity); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) ListAssets(c *fiber.Ctx, id uuid.UUID) error {
	identity, err := identityFrom(c)
	if err != nil {
		return writeError(c, err)
	}
	resp, err := s.handlers.ListAssets.Query(c.UserContext(), id, identity)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

func (s *Server) UploadAsset(c *fiber.Ctx, id uuid.UUID) error {
	identity, err := identityFrom(c)
	if err != nil {
		return writeError(c, err)
	}
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return writeError(c, fiber.NewError(fiber.StatusBadRequest, "multipart field \"file\" is required"))
	}

	asset, url, err := s.handlers.UploadFile.Execute(c.UserContext(), id, fileHeader, identity)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MapAssetToResponse(asset, url))
}

func (s *Server) DeleteAsset(c *fiber.Ctx, id uuid.UUID, assetID uuid.UUID) error {
	identity, err := identityFrom(c)
	if err != nil {
		return writeError(c, err)
	}
	if err := s.handlers.DeleteFile.Execute(c.UserContext(), id, assetID, identity); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) GenerateContent(c *fiber.Ctx, id uuid.UUID) error {
	identity, err := identityFrom(c)
	if err != nil {
		return writeError(c, err)
	}
	var req dto.GenerateContentRequest
	if err := s.parse(c, &req); err != nil {
		return writeError(c, err)
	}

	data, err := s.handlers.Generate.Execute(c.UserContext(), id, &req, identity)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(dto.GenerateContentResponse{Data: *data})
}
