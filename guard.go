package novelex

import (
	"net/url"
	"strings"
)

// Reasons a page is blocked.
const (
	BlockRedirected    = "redirected"
	BlockChallengePage = "challenge-page"
)

// challengeTitles are titles of known bot-challenge interstitials.
var challengeTitles = []string{
	"Bot Verification",
	"You are being redirected...",
	"Un instant...",
	"Just a moment...",
	"Redirecting...",
}

// Verdict is the outcome of inspecting a fetched page.
type Verdict struct {
	Blocked bool
	Reason  string
}

// Err returns an EBLOCKED error for a blocked verdict and nil otherwise.
func (v Verdict) Err() error {
	if !v.Blocked {
		return nil
	}
	return Errorf(EBLOCKED, "access blocked (%s), open the site in a browser or check whether it moved", v.Reason)
}

// Inspect decides whether a fetched page is the page that was requested
// rather than a redirect to another site or a bot-challenge interstitial.
//
// Hosts are compared without their top-level label, so a site moving
// between TLDs of the same name passes while a redirect elsewhere is
// blocked. The title must match a known challenge title exactly.
func Inspect(requestedURL, finalURL, title string) Verdict {
	if hostLabels(requestedURL) != hostLabels(finalURL) {
		return Verdict{Blocked: true, Reason: BlockRedirected}
	}
	if IsChallengeTitle(title) {
		return Verdict{Blocked: true, Reason: BlockChallengePage}
	}
	return Verdict{}
}

// IsChallengeTitle reports whether the trimmed title is a known
// bot-challenge title.
func IsChallengeTitle(title string) bool {
	title = strings.TrimSpace(title)
	for _, t := range challengeTitles {
		if title == t {
			return true
		}
	}
	return false
}

// hostLabels strips scheme and path from rawURL and drops the final
// dot-separated label of the host.
func hostLabels(rawURL string) string {
	host := rawURL
	if u, err := url.Parse(rawURL); err == nil && u.Host != "" {
		host = u.Host
	} else if _, rest, ok := strings.Cut(rawURL, "://"); ok {
		host, _, _ = strings.Cut(rest, "/")
	}

	labels := strings.Split(strings.ToLower(host), ".")
	return strings.Join(labels[:len(labels)-1], ".")
}
