package processors

import (
	"context"
	"io"

	"github.com/Builder-Lawyers/site-builder/internal/application/events"
	"github.com/Builder-Lawyers/site-builder/pkg/interfaces"
)

// SnapshotStore is the part of the object store the processors write to.
type SnapshotStore interface {
	UploadFile(ctx context.Context, key string, contentType *string, body io.Reader) (string, error)
	ListFiles(ctx context.Context, prefix string) ([]string, error)
	DeleteFile(ctx context.Context, key string) error
	DeletePrefix(ctx context.Context, prefix string) (int, error)
	PublicURL(key string) string
}

// Subdomains manages the <slug>.<base domain> records.
type Subdomains interface {
	UpsertSubdomain(ctx context.Context, slug string) error
	DeleteSubdomain(ctx context.Context, slug string) error
}

var (
	_ interfaces.EventHandler[events.SitePublished]   = (*PublishSnapshot)(nil)
	_ interfaces.EventHandler[events.SiteUnpublished] = (*RemoveSnapshot)(nil)
	_ interfaces.EventHandler[events.SiteDeleted]     = (*PurgeSite)(nil)
)
