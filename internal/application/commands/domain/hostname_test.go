package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeHostname(t *testing.T) {
	cases := map[string]string{
		"example.com":                       "example.com",
		"  WWW.Example.COM ":                "www.example.com",
		"https://www.example.com/about?x=1": "www.example.com",
		"http://shop.example.co.uk:8080":    "shop.example.co.uk",
		"example.com.":                      "example.com",
		"user@example.com":                  "example.com",
		"my-shop.example.com#top":           "my-shop.example.com",
	}
	for in, want := range cases {
		got, err := NormalizeHostname(in)
		require.NoError(t, err, in)
		require.Equal(t, want, got, in)
	}
}

func TestNormalizeHostnameRejectsInvalid(t *testing.T) {
	for _, bad := range []string{"", "localhost", "-shop.example.com", "shop-.example.com", "sh_op.example.com", "a..b", "https://", "exa mple.com"} {
		_, err := NormalizeHostname(bad)
		require.Error(t, err, bad)
	}
}

func TestUnderBase(t *testing.T) {
	require.True(t, underBase("bakery.sites.example.com", "sites.example.com"))
	require.True(t, underBase("sites.example.com", "sites.example.com."))
	require.False(t, underBase("mysites.example.com", "sites.example.com"))
	require.False(t, underBase("example.com", "sites.example.com"))
}
