package urlcheck

// Static lookup tables. All three are read-only after package init and safe
// for unsynchronized concurrent reads.

// wellKnownDomains lists major brand domains that phishers commonly dress
// up with a short bogus subdomain (e.g. "ab.google.com"). This is curated
// denylist data, not a security boundary.
var wellKnownDomains = map[string]bool{
	"google.com":     true,
	"youtube.com":    true,
	"facebook.com":   true,
	"instagram.com":  true,
	"twitter.com":    true,
	"linkedin.com":   true,
	"github.com":     true,
	"gitlab.com":     true,
	"microsoft.com":  true,
	"apple.com":      true,
	"amazon.com":     true,
	"netflix.com":    true,
	"paypal.com":     true,
	"stripe.com":     true,
	"dropbox.com":    true,
	"slack.com":      true,
	"zoom.us":        true,
	"ebay.com":       true,
	"adobe.com":      true,
	"salesforce.com": true,
}

// legitimateSubdomains are short subdomain tokens that real operators use,
// exempted from the suspicious-subdomain heuristic.
var legitimateSubdomains = map[string]bool{
	"www": true,
	"api": true,
	"cdn": true,
	"app": true,
	"dev": true,
	"my":  true,
	"go":  true,
	"m":   true,
	"en":  true,
	"ftp": true,
}

// longTLDs is the accepted set of legitimate TLDs longer than four letters.
// A bare two-label host ending in a long label outside this set is treated
// as a domain typed without its TLD.
var longTLDs = map[string]bool{
	"technology":  true,
	"photography": true,
	"solutions":   true,
	"consulting":  true,
	"marketing":   true,
	"software":    true,
	"systems":     true,
	"network":     true,
	"digital":     true,
	"online":      true,
	"agency":      true,
	"studio":      true,
	"design":      true,
	"travel":      true,
	"museum":      true,
	"global":      true,
	"email":       true,
	"store":       true,
	"cloud":       true,
	"world":       true,
	"group":       true,
	"website":     true,
}
