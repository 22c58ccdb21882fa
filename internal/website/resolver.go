// Package website discovers a company homepage through web search when the
// business registry carries no website for it.
package website

import (
	"context"
	"net/url"
	"regexp"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/nordlink/regsync/pkg/google"
)

// blacklistHosts are hosts we never accept as a company homepage: registry
// and directory mirrors, social networks, search and map domains, press.
// Matching is by substring against the lowercased host.
var blacklistHosts = []string{
	"ariregister.rik.ee",
	"rik.ee",
	"teatmik.ee",
	"inforegister.ee",
	"mtr.mkm.ee",
	"facebook.com",
	"fb.com",
	"linkedin.com",
	"instagram.com",
	"youtube.com",
	"twitter.com",
	"x.com",
	"wikipedia.org",
	"google.com",
	"maps.google.",
	"aripaev.ee",
	".bdf",
}

// legalSuffixes are common legal-entity tokens stripped from company names
// before host matching.
var legalSuffixes = map[string]bool{
	"ou": true, "oü": true, "as": true, "uab": true,
	"gmbh": true, "ltd": true, "oy": true, "sp": true,
	"z": true, "uü": true,
}

var tokenSplit = regexp.MustCompile(`[^a-z0-9]+`)

// Resolver finds a company website via search. The zero value is not
// usable; construct with New.
type Resolver struct {
	search google.Client
	tld    string
}

// Option configures the resolver.
type Option func(*Resolver)

// WithCountryTLD overrides the country TLD preferred in scoring (".ee").
func WithCountryTLD(tld string) Option {
	return func(r *Resolver) {
		r.tld = tld
	}
}

// New creates a Resolver over the given search client.
func New(search google.Client, opts ...Option) *Resolver {
	r := &Resolver{search: search, tld: ".ee"}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Resolve searches for the company's official website and returns the best
// candidate. Any search failure degrades to "not found": a missing website
// must never fail the surrounding sync run.
func (r *Resolver) Resolve(ctx context.Context, orgName string) (string, bool) {
	if orgName == "" || r.search == nil {
		return "", false
	}

	resp, err := r.search.Search(ctx, orgName+" official website")
	if err != nil {
		zap.L().Warn("website search failed, treating as not found",
			zap.String("company", orgName),
			zap.Error(err),
		)
		return "", false
	}

	items := resp.Items
	if len(items) > 10 {
		items = items[:10]
	}

	type candidate struct {
		score int
		rank  int
		url   string
	}
	var candidates []candidate
	for i, item := range items {
		if item.Link == "" {
			continue
		}
		host := hostOf(item.Link)
		if host == "" || blacklisted(host) {
			continue
		}
		candidates = append(candidates, candidate{
			score: r.score(host, orgName),
			rank:  i,
			url:   item.Link,
		})
	}

	if len(candidates) == 0 {
		zap.L().Info("no suitable website candidate in search results",
			zap.String("company", orgName),
		)
		return "", false
	}

	// Highest score first; ties keep search rank order.
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	best := candidates[0]
	zap.L().Info("website resolved via search",
		zap.String("company", orgName),
		zap.String("url", best.url),
		zap.Int("score", best.score),
	)
	return best.url, true
}

// score prefers hosts under the country TLD (+3) and hosts containing a
// significant token of the company name (+2).
func (r *Resolver) score(host, orgName string) int {
	score := 0
	if strings.HasSuffix(host, r.tld) {
		score += 3
	}
	for _, tok := range nameTokens(orgName) {
		if strings.Contains(host, tok) {
			score += 2
			break
		}
	}
	return score
}

// nameTokens splits a company name into lowercase alphanumeric tokens,
// dropping legal-entity suffixes and tokens shorter than three characters.
func nameTokens(name string) []string {
	parts := tokenSplit.Split(strings.ToLower(name), -1)
	var tokens []string
	for _, t := range parts {
		if t == "" || legalSuffixes[t] || len(t) <= 2 {
			continue
		}
		tokens = append(tokens, t)
	}
	return tokens
}

func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Hostname() == "" {
		return ""
	}
	return strings.ToLower(u.Hostname())
}

func blacklisted(host string) bool {
	for _, b := range blacklistHosts {
		if strings.Contains(host, b) {
			return true
		}
	}
	return false
}
