package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Builder-Lawyers/site-builder/internal/application"
	"github.com/Builder-Lawyers/site-builder/internal/application/dto"
	"github.com/Builder-Lawyers/site-builder/internal/application/errs"
	"github.com/Builder-Lawyers/site-builder/internal/domain/consts"
	"github.com/Builder-Lawyers/site-builder/internal/infra/auth"
	"github.com/Builder-Lawyers/site-builder/internal/render"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type staticIdentity struct {
	identity *auth.Identity
}

func (s staticIdentity) GetIdentity(token string) (*auth.Identity, error) {
	if token != "good" {
		return nil, auth.ErrUnauthenticated
	}
	return s.identity, nil
}

type themeList []render.Theme

func (t themeList) Themes() []render.Theme { return t }

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	server := NewServer(&application.Handlers{}, themeList{
		{Key: "classic", Name: "Classic", Palette: render.Palette{Primary: "#123456"}},
		{Key: "bold", Name: "Bold"},
	})
	RegisterHandlers(app.Group("/api"), server, RequireIdentity(staticIdentity{&auth.Identity{UserID: uuid.New()}}))
	return app
}

func do(t *testing.T, app *fiber.App, method, path, body string, headers ...string) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, out
}

func TestErrorResponseMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
		body   string
	}{
		{fmt.Errorf("wrapped: %w", auth.ErrUnauthenticated), 401, "missing or invalid access token"},
		{errs.PermissionsError{Err: errors.New("not owner")}, 403, "forbidden"},
		{errs.NotFoundError{Resource: "page"}, 404, "page not found"},
		{errs.ConflictError{Err: errors.New("slug taken")}, 409, "conflict: slug taken"},
		{errs.Invalidf("slug: too short"), 422, "slug: too short"},
		{errs.ValidationError{Details: []string{"a: b"}}, 422, "validation failed"},
		{errs.UpstreamError{Service: "ai content generation", Err: errors.New("timeout")}, 502, "ai content generation failed"},
		{fiber.NewError(fiber.StatusBadRequest, "bad body"), 400, "bad body"},
		{errors.New("pq: connection reset"), 500, "internal server error"},
	}
	for _, tc := range cases {
		status, body := errorResponse(tc.err)
		require.Equal(t, tc.status, status, tc.err.Error())
		require.Equal(t, tc.body, body.Error, tc.err.Error())
	}

	_, body := errorResponse(errs.ValidationError{Details: []string{"sections[0].headline: required"}})
	require.Equal(t, []string{"sections[0].headline: required"}, body.Details)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	app := newTestApp(t)

	resp, body := do(t, app, http.MethodGet, "/api/sites", "")
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	require.Contains(t, string(body), "missing or invalid access token")

	resp, _ = do(t, app, http.MethodGet, "/api/sites", "", fiber.HeaderAuthorization, "Bearer forged")
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp, _ = do(t, app, http.MethodPost, "/api/domains/check", `{"domain":"acme.com"}`)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	for _, path := range []string{"/api/templates", "/api/section-types", "/api/section-types/faq/default"} {
		resp, _ = do(t, app, http.MethodGet, path, "")
		require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode, path)
	}
	resp, _ = do(t, app, http.MethodPost, "/api/page-data/validate", `{"sections":[]}`)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestPathParamsAreValidated(t *testing.T) {
	app := newTestApp(t)

	resp, body := do(t, app, http.MethodGet, "/api/sites/not-a-uuid", "", fiber.HeaderAuthorization, "Bearer good")
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	require.Contains(t, string(body), "Invalid format for parameter id")
}

func TestRequestBodyValidation(t *testing.T) {
	app := newTestApp(t)

	resp, body := do(t, app, http.MethodPost, "/api/sites", `{"slug":"ab"}`, fiber.HeaderAuthorization, "Bearer good")
	require.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)

	var out dto.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &out))
	require.ElementsMatch(t, []string{"slug: failed min=3", "businessName: failed required"}, out.Details)

	resp, _ = do(t, app, http.MethodPost, "/api/sites", `{"slug":`, fiber.HeaderAuthorization, "Bearer good")
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestSectionTypesAndDefaults(t *testing.T) {
	app := newTestApp(t)

	resp, body := do(t, app, http.MethodGet, "/api/section-types", "", fiber.HeaderAuthorization, "Bearer good")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var types dto.SectionTypesResponse
	require.NoError(t, json.Unmarshal(body, &types))
	require.Len(t, types.Types, 19)

	resp, body = do(t, app, http.MethodGet, "/api/section-types/faq/default", "", fiber.HeaderAuthorization, "Bearer good")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var section map[string]any
	require.NoError(t, json.Unmarshal(body, &section))
	require.Equal(t, "faq", section["type"])
	require.NotEmpty(t, section["id"])

	resp, _ = do(t, app, http.MethodGet, "/api/section-types/carousel/default", "", fiber.HeaderAuthorization, "Bearer good")
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestValidatePageData(t *testing.T) {
	app := newTestApp(t)

	resp, body := do(t, app, http.MethodPost, "/api/page-data/validate",
		`{"seo":{"title":"Acme"},"sections":[{"type":"hero","headline":" Hi "}]}`, fiber.HeaderAuthorization, "Bearer good")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var ok dto.ValidatePageDataResponse
	require.NoError(t, json.Unmarshal(body, &ok))
	require.True(t, ok.Valid)
	require.Len(t, ok.Data.Sections, 1)

	_, body = do(t, app, http.MethodPost, "/api/page-data/validate",
		`{"sections":[{"type":"carousel"}]}`, fiber.HeaderAuthorization, "Bearer good")
	var bad dto.ValidatePageDataResponse
	require.NoError(t, json.Unmarshal(body, &bad))
	require.False(t, bad.Valid)
	require.Equal(t, []string{`sections[0].type: unknown section type "carousel"`}, bad.Errors)

	_, body = do(t, app, http.MethodPost, "/api/page-data/validate?publish=true",
		`{"sections":[{"type":"hero"}]}`, fiber.HeaderAuthorization, "Bearer good")
	var draft dto.ValidatePageDataResponse
	require.NoError(t, json.Unmarshal(body, &draft))
	require.False(t, draft.Valid)
	require.ElementsMatch(t, []string{
		"seo.title: required for publishing",
		"sections[0].headline: required for publishing",
	}, draft.Errors)
}

func TestListTemplates(t *testing.T) {
	app := newTestApp(t)

	resp, body := do(t, app, http.MethodGet, "/api/templates", "", fiber.HeaderAuthorization, "Bearer good")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var out []dto.TemplateResponse
	require.NoError(t, json.Unmarshal(body, &out))
	require.Len(t, out, 2)
	require.Equal(t, "classic", out[0].Key)
	require.Equal(t, "#123456", out[0].Primary)
}

func TestPageKeyFromPath(t *testing.T) {
	require.Equal(t, consts.PageKeyHome, pageKey(""))
	require.Equal(t, consts.PageKeyHome, pageKey("index.html"))
	require.Equal(t, consts.PageKeyAbout, pageKey("about"))
	require.Equal(t, consts.PageKey("pricing"), pageKey("pricing.html"))
}
