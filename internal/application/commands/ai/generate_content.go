package ai

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/Builder-Lawyers/site-builder/internal/application/dto"
	"github.com/Builder-Lawyers/site-builder/internal/application/errs"
	"github.com/Builder-Lawyers/site-builder/internal/application/sites"
	"github.com/Builder-Lawyers/site-builder/internal/domain/entity"
	"github.com/Builder-Lawyers/site-builder/internal/domain/pagedata"
	"github.com/Builder-Lawyers/site-builder/internal/infra/auth"
	openai "github.com/Builder-Lawyers/site-builder/internal/infra/client/openai"
	"github.com/Builder-Lawyers/site-builder/internal/infra/db/repo"
	"github.com/Builder-Lawyers/site-builder/internal/infra/metrics"
	dbs "github.com/Builder-Lawyers/site-builder/pkg/db"
	"github.com/google/uuid"
)

const service = "ai content generation"

type Generator interface {
	GenerateJSON(ctx context.Context, system, user string) (string, error)
}

var _ Generator = (*openai.OpenAIClient)(nil)

type GenerateContent struct {
	uowFactory *dbs.UOWFactory
	aiClient   Generator
}

func NewGenerateContent(factory *dbs.UOWFactory, client Generator) *GenerateContent {
	return &GenerateContent{uowFactory: factory, aiClient: client}
}

// Execute asks the model for a page document and returns it normalized.
// Nothing is saved.
func (c *GenerateContent) Execute(ctx context.Context, siteID uuid.UUID, req *dto.GenerateContentRequest, identity *auth.Identity) (*pagedata.PageData, error) {
	brief := strings.TrimSpace(req.Brief)
	if len(brief) < 10 {
		return nil, errs.ValidationError{Details: []string{"brief: must be at least 10 characters"}}
	}

	profile, err := c.loadProfile(ctx, siteID, identity)
	if err != nil {
		return nil, err
	}

	reply, err := c.aiClient.GenerateJSON(ctx, systemPrompt(), userPrompt(profile, strings.TrimSpace(req.PageKey), brief))
	if err != nil {
		metrics.AIGenerationsTotal.WithLabelValues("upstream_error").Inc()
		slog.Error("err generating content", "siteID", siteID, "err", err)
		return nil, errs.UpstreamError{Service: service, Err: err}
	}

	data, err := ParseReply(reply)
	if err != nil {
		metrics.AIGenerationsTotal.WithLabelValues("invalid_output").Inc()
		slog.Warn("model returned unusable page data", "siteID", siteID, "err", err)
		upstream := errs.UpstreamError{Service: service, Err: err}
		var verr *pagedata.ValidationError
		if errors.As(err, &verr) {
			upstream.Details = verr.Details()
		}
		return nil, upstream
	}

	metrics.AIGenerationsTotal.WithLabelValues("ok").Inc()
	slog.Info("content generated", "siteID", siteID, "sections", len(data.Sections))
	return &data, nil
}

func (c *GenerateContent) loadProfile(ctx context.Context, siteID uuid.UUID, identity *auth.Identity) (_ *entity.BusinessProfile, err error) {
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
	return repo.NewProfileRepo(tx).GetProfile(ctx, site.ID)
}

// ParseReply pulls the JSON object out of a model reply and validates it.
func ParseReply(reply string) (pagedata.PageData, error) {
	raw, ok := extractJSON(reply)
	if !ok {
		return pagedata.PageData{}, errors.New("reply holds no JSON object")
	}
	return pagedata.Parse([]byte(raw))
}

// extractJSON drops Markdown code fences and returns the text between the
// first '{' and the last '}'.
func extractJSON(reply string) (string, bool) {
	text := strings.TrimSpace(reply)
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		if i := strings.Index(text, "\n"); i >= 0 {
			text = text[i+1:]
		}
		if i := strings.LastIndex(text, "```"); i >= 0 {
			text = text[:i]
		}
	}
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end < start {
		return "", false
	}
	return text[start : end+1], true
}
