package analytics

import (
	"fmt"
	"net/url"

	"flashysurf/internal/domain"
)

// Query parameters read into domain.UTM.
const (
	ParamSource   = "utm_source"
	ParamCampaign = "utm_campaign"
)

// UTMFromQuery extracts attribution from a raw query string. A parameter
// that is absent stays nil; one that is present but empty becomes "". When a
// parameter repeats, the first value wins.
func UTMFromQuery(rawQuery string) domain.UTM {
	// ParseQuery keeps every well-formed pair even when it reports an error.
	q, _ := url.ParseQuery(rawQuery)
	return domain.UTM{
		Source:   first(q, ParamSource),
		Campaign: first(q, ParamCampaign),
	}
}

// UTMFromURL extracts attribution from the query of a page URL.
func UTMFromURL(raw string) (domain.UTM, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return domain.UTM{}, fmt.Errorf("parse page url: %w", err)
	}
	return UTMFromQuery(u.RawQuery), nil
}

func first(q url.Values, key string) *string {
	vs, ok := q[key]
	if !ok || len(vs) == 0 {
		return nil
	}
	v := vs[0]
	return &v
}
