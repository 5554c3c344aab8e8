package rest

import (
	"errors"
	"strings"

	"github.com/Builder-Lawyers/site-builder/internal/application/errs"
	"github.com/Builder-Lawyers/site-builder/internal/application/query"
	"github.com/Builder-Lawyers/site-builder/internal/domain/consts"
	"github.com/gofiber/fiber/v2"
)

// Public serves published pages by Host header, for sites reached through
// the app directly instead of the static snapshot.
type Public struct {
	render *query.RenderPublic
}

func NewPublic(render *query.RenderPublic) *Public {
	return &Public{render: render}
}

func (p *Public) Register(router fiber.Router) {
	router.Get("/", p.Page)
	router.Get("/:page", p.Page)
}

func (p *Public) Page(c *fiber.Ctx) error {
	html, err := p.render.Query(c.UserContext(), c.Hostname(), pageKey(c.Params("page")))
	if err != nil {
		var notFound errs.NotFoundError
		if errors.As(err, &notFound) {
			return c.Status(fiber.StatusNotFound).Type("html").SendString("<h1>Not found</h1>")
		}
		return writeError(c, err)
	}
	c.Set(fiber.HeaderCacheControl, "public, max-age=60")
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Status(fiber.StatusOK).Send(html)
}

// pageKey maps a request path segment to a page key, accepting the
// snapshot file names too.
func pageKey(segment string) consts.PageKey {
	segment = strings.TrimSuffix(strings.Trim(segment, "/"), ".html")
	if segment == "" || segment == "index" {
		return consts.PageKeyHome
	}
	return consts.PageKey(segment)
}
