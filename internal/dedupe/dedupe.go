// Package dedupe collapses near-duplicate browser visits before
// classification. Phase one groups visits by canonical URL; phase two caps
// how many representatives a single domain may contribute.
package dedupe

import (
	"net/url"
	"sort"
	"strings"

	"github.com/runnerr0/recap/internal/activity"
)

// Defaults for the per-domain and unparsable-URL caps.
const (
	DefaultMaxPerDomain  = 5
	DefaultMaxOtherTotal = 10
)

// Options tunes both dedup phases. Zero values fall back to the defaults.
type Options struct {
	MaxPerDomain  int
	MaxOtherTotal int
}

// Result carries the surviving visits plus how many inputs were collapsed.
// Invariant: Collapsed + len(Visits) == len(input).
type Result struct {
	Visits    []activity.BrowserVisit
	Collapsed int
}

// mapViewportPrefixes are map-service paths carrying an /@lat,lng,zoom
// viewport suffix. Repeated zoom/pan events on the same place must not
// count as distinct visits.
var mapViewportPrefixes = []string{"/maps/dir/", "/maps/place/"}

// CanonicalKey normalizes a URL for duplicate grouping: lower-cased host
// with the www. prefix stripped, path with the trailing slash removed,
// query string and fragment dropped. The second return is the normalized
// host, "" when the URL cannot be parsed; in that case the raw string
// itself is the key, so an unparsable URL forms its own canonical group.
func CanonicalKey(raw string) (key, host string) {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return raw, ""
	}

	host = strings.ToLower(u.Hostname())
	host = strings.TrimPrefix(host, "www.")

	path := u.EscapedPath()
	for _, prefix := range mapViewportPrefixes {
		if strings.HasPrefix(path, prefix) {
			if at := strings.Index(path, "/@"); at >= 0 {
				path = path[:at]
			}
			break
		}
	}
	path = strings.TrimSuffix(path, "/")

	return host + path, host
}

// Dedupe runs both phases over one collection window of visits.
//
// Phase one groups by canonical key and keeps one representative per
// group: the visit with the longest trimmed title, ties broken by the
// earliest timestamp (the first clean load, not a reload). Phase two
// buckets representatives by host and keeps only the most recent
// MaxPerDomain per host; unparsable URLs share a single hostless bucket
// capped at MaxOtherTotal. Output is sorted by time descending.
func Dedupe(visits []activity.BrowserVisit, opts Options) Result {
	if opts.MaxPerDomain <= 0 {
		opts.MaxPerDomain = DefaultMaxPerDomain
	}
	if opts.MaxOtherTotal <= 0 {
		opts.MaxOtherTotal = DefaultMaxOtherTotal
	}

	type group struct {
		rep  activity.BrowserVisit
		host string
	}

	groups := make(map[string]*group)
	var order []string
	for _, v := range visits {
		key, host := CanonicalKey(v.URL)
		g, ok := groups[key]
		if !ok {
			groups[key] = &group{rep: v, host: host}
			order = append(order, key)
			continue
		}
		if better(v, g.rep) {
			g.rep = v
		}
	}

	byHost := make(map[string][]activity.BrowserVisit)
	var hosts []string
	for _, key := range order {
		g := groups[key]
		if _, ok := byHost[g.host]; !ok {
			hosts = append(hosts, g.host)
		}
		byHost[g.host] = append(byHost[g.host], g.rep)
	}

	var out []activity.BrowserVisit
	for _, host := range hosts {
		bucket := byHost[host]
		sortByTimeDesc(bucket)
		limit := opts.MaxPerDomain
		if host == "" {
			limit = opts.MaxOtherTotal
		}
		if len(bucket) > limit {
			bucket = bucket[:limit]
		}
		out = append(out, bucket...)
	}

	sortByTimeDesc(out)

	return Result{Visits: out, Collapsed: len(visits) - len(out)}
}

// better reports whether candidate should replace the current group
// representative: longer trimmed title wins, equal lengths fall back to
// the earlier timestamp.
func better(candidate, current activity.BrowserVisit) bool {
	ct := len(strings.TrimSpace(candidate.Title))
	rt := len(strings.TrimSpace(current.Title))
	if ct != rt {
		return ct > rt
	}
	return candidate.Time.Before(current.Time)
}

func sortByTimeDesc(visits []activity.BrowserVisit) {
	sort.SliceStable(visits, func(i, j int) bool {
		return visits[i].Time.After(visits[j].Time)
	})
}
