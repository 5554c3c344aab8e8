package sites_test

import (
	"testing"

	"github.com/Builder-Lawyers/site-builder/internal/application/sites"
	"github.com/Builder-Lawyers/site-builder/internal/domain/consts"
	"github.com/Builder-Lawyers/site-builder/internal/domain/entity"
	"github.com/stretchr/testify/require"
)

func TestNavigationLinksPagesInOrder(t *testing.T) {
	pages := []*entity.Page{
		{Key: consts.PageKeyHome, Title: "Home"},
		{Key: consts.PageKeyAbout, Title: "About us"},
		{Key: "pricing", Title: "Pricing"},
	}

	nav := sites.Navigation(pages, "pricing")

	require.Len(t, nav, 3)
	require.Equal(t, "/", nav[0].Href)
	require.Equal(t, "/about", nav[1].Href)
	require.Equal(t, "About us", nav[1].Title)
	require.False(t, nav[0].Active)
	require.True(t, nav[2].Active)
}
