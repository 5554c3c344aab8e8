package sites

import (
	"fmt"

	"github.com/Builder-Lawyers/site-builder/internal/domain/consts"
	"github.com/google/uuid"
)

// Object store layout. Snapshots are addressed by slug so the edge can map a
// host to a prefix; assets by site id so they survive slug changes.

func SnapshotPrefix(slug string) string {
	return "sites/" + slug + "/"
}

// SnapshotKey is where the rendered page is stored; home becomes index.html.
func SnapshotKey(slug string, key consts.PageKey) string {
	if key == consts.PageKeyHome {
		return SnapshotPrefix(slug) + "index.html"
	}
	return SnapshotPrefix(slug) + string(key) + ".html"
}

func AssetPrefix(siteID uuid.UUID) string {
	return fmt.Sprintf("assets/%s/", siteID)
}

func AssetKey(siteID, assetID uuid.UUID, ext string) string {
	return AssetPrefix(siteID) + assetID.String() + ext
}
