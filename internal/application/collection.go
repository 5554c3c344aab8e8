package application

import (
	"github.com/Builder-Lawyers/site-builder/internal/application/commands/ai"
	"github.com/Builder-Lawyers/site-builder/internal/application/commands/domain"
	"github.com/Builder-Lawyers/site-builder/internal/application/commands/file"
	"github.com/Builder-Lawyers/site-builder/internal/application/commands/page"
	"github.com/Builder-Lawyers/site-builder/internal/application/commands/profile"
	"github.com/Builder-Lawyers/site-builder/internal/application/commands/site"
	"github.com/Builder-Lawyers/site-builder/internal/application/processors"
	"github.com/Builder-Lawyers/site-builder/internal/application/query"
)

// Handlers serve the REST API.
type Handlers struct {
	CreateSite    *site.CreateSite
	UpdateSite    *site.UpdateSite
	DeleteSite    *site.DeleteSite
	PublishSite   *site.PublishSite
	UnpublishSite *site.UnpublishSite
	UpdateProfile *profile.UpdateProfile
	CreatePage    *page.CreatePage
	SavePage      *page.SavePage
	DeletePage    *page.DeletePage
	SetPageStatus *page.SetPageStatus
	AddDomain     *domain.AddDomain
	VerifyDomain  *domain.VerifyDomain
	SetDomain     *domain.SetDomainStatus
	RemoveDomain  *domain.RemoveDomain
	UploadFile    *file.UploadFile
	DeleteFile    *file.DeleteFile
	Generate      *ai.GenerateContent

	GetSite      *query.GetSite
	ListSites    *query.ListSites
	GetProfile   *query.GetProfile
	ListPages    *query.ListPages
	GetPage      *query.GetPage
	ListDomains  *query.ListDomains
	CheckDomain  *query.CheckDomain
	ListAssets   *query.ListAssets
	RenderPublic *query.RenderPublic
	PreviewPage  *query.PreviewPage
}

// Processors handle outbox events.
type Processors struct {
	PublishSnapshot *processors.PublishSnapshot
	RemoveSnapshot  *processors.RemoveSnapshot
	PurgeSite       *processors.PurgeSite
}
