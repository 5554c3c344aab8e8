package sites_test

import (
	"strings"
	"testing"

	"github.com/Builder-Lawyers/site-builder/internal/application/sites"
	"github.com/Builder-Lawyers/site-builder/internal/domain/consts"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestSnapshotKeys(t *testing.T) {
	require.Equal(t, "sites/bakery/index.html", sites.SnapshotKey("bakery", consts.PageKeyHome))
	require.Equal(t, "sites/bakery/about.html", sites.SnapshotKey("bakery", consts.PageKeyAbout))
	require.Equal(t, "sites/bakery/pricing.html", sites.SnapshotKey("bakery", "pricing"))
}

func TestAssetKeysLiveUnderSitePrefix(t *testing.T) {
	siteID := uuid.MustParse("7f1c9c52-4f55-4bb8-9d6f-1b1d2f9e0c11")
	assetID := uuid.MustParse("0d3a6c4e-1a7b-4c1e-8f7e-3c2b1a0f9e8d")

	key := sites.AssetKey(siteID, assetID, ".png")
	require.Equal(t, "assets/7f1c9c52-4f55-4bb8-9d6f-1b1d2f9e0c11/0d3a6c4e-1a7b-4c1e-8f7e-3c2b1a0f9e8d.png", key)
	require.True(t, strings.HasPrefix(key, sites.AssetPrefix(siteID)))
	// a slug shaped like a uuid still can't reach asset keys
	require.False(t, strings.HasPrefix(key, sites.SnapshotPrefix(siteID.String())))
}
