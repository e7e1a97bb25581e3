package analytics_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flashysurf/internal/domain"
	"flashysurf/internal/services/analytics"
)

func strptr(s string) *string { return &s }

func TestUTMFromQuery(t *testing.T) {
	cases := []struct {
		name  string
		query string
		want  domain.UTM
	}{
		{"both", "utm_source=google&utm_campaign=spring", domain.UTM{Source: strptr("google"), Campaign: strptr("spring")}},
		{"neither", "ref=home", domain.UTM{}},
		{"empty query", "", domain.UTM{}},
		{"present but empty", "utm_source=&utm_campaign", domain.UTM{Source: strptr(""), Campaign: strptr("")}},
		{"first wins", "utm_source=a&utm_source=b", domain.UTM{Source: strptr("a")}},
		{"decoded", "utm_campaign=black%20friday+sale", domain.UTM{Campaign: strptr("black friday sale")}},
		{"bad pair ignored", "utm_source=ok&%zz=1", domain.UTM{Source: strptr("ok")}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, analytics.UTMFromQuery(tc.query))
		})
	}
}

func TestUTMFromURL(t *testing.T) {
	utm, err := analytics.UTMFromURL("https://flashysurf.com/?utm_source=google&utm_campaign=spring#top")
	require.NoError(t, err)
	assert.Equal(t, domain.UTM{Source: strptr("google"), Campaign: strptr("spring")}, utm)

	utm, err = analytics.UTMFromURL("https://flashysurf.com/about/")
	require.NoError(t, err)
	assert.Nil(t, utm.Source)
	assert.Nil(t, utm.Campaign)

	_, err = analytics.UTMFromURL("http://[::1")
	require.Error(t, err)
}
