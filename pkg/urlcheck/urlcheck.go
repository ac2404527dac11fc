// Package urlcheck classifies user-supplied URL strings before they are
// handed to downstream network calls. It is pure string work: no DNS, no
// reachability checks, no I/O of any kind.
package urlcheck

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

const (
	maxLabelLength    = 63  // RFC 1035
	maxHostnameLength = 253 // RFC 1035

	minTLDLength = 2
	maxTLDLength = 10
)

// Result is the outcome of a full URL validation. Exactly one of
// NormalizedURL (success) or Reason (failure) is populated. Reason strings
// are stable and suitable for direct display to an end user.
type Result struct {
	Valid         bool
	NormalizedURL string
	Reason        string
}

func accept(normalized string) Result {
	return Result{Valid: true, NormalizedURL: normalized}
}

func reject(reason string) Result {
	return Result{Reason: reason}
}

// schemePattern matches an explicit URL scheme prefix. Anything with a
// scheme is parsed as-is so that non-HTTP schemes reach the protocol gate
// instead of being mangled by the https:// default.
var schemePattern = regexp.MustCompile(`^[a-z][a-z0-9+.-]*://`)

// ValidateURL decides whether input denotes a syntactically valid, publicly
// routable HTTP(S) URL with a fully-qualified domain name. On success it
// returns the normalized canonical form (lower-cased, https:// prefixed when
// the caller supplied no protocol). Gates run in order and the first failure
// wins; only one reason is ever surfaced per call.
//
// The function is total and deterministic: it never panics, performs no
// network or filesystem access, and the same input always yields the same
// result.
func ValidateURL(input string) Result {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return reject(reasonEmptyInput)
	}

	// Domains are case-insensitive; lower-casing here also canonicalizes
	// the eventual output.
	lowered := strings.ToLower(trimmed)

	hasScheme := schemePattern.MatchString(lowered)
	candidate := lowered
	if !hasScheme {
		candidate = "https://" + lowered
	}

	u, err := url.Parse(candidate)
	if err != nil {
		return reject(reasonInvalidFormat)
	}

	host := u.Hostname()
	if host == "" {
		return reject(reasonMissingDomain)
	}

	if r, ok := checkHyphens(host); !ok {
		return reject(r)
	}

	labels := strings.Split(host, ".")

	if r, ok := checkLabelCharacters(labels); !ok {
		return reject(r)
	}
	if r, ok := checkLabelLengths(labels); !ok {
		return reject(r)
	}
	if len(host) > maxHostnameLength {
		return reject(reasonDomainTooLong)
	}
	if r, ok := checkTLD(host, labels); !ok {
		return reject(r)
	}

	if hasScheme && u.Scheme != "http" && u.Scheme != "https" {
		return reject(reasonWrongScheme)
	}

	if port := u.Port(); port != "" {
		n, err := strconv.Atoi(port)
		if err != nil || n < 1 || n > 65535 {
			return reject(reasonInvalidPort)
		}
	}

	if r, ok := checkSuspiciousSubdomain(labels); !ok {
		return reject(r)
	}

	normalized := lowered
	if !hasScheme {
		normalized = "https://" + lowered
	}

	return accept(normalized)
}

// IsURLFormatValid is a cheap pre-filter for per-keystroke UI feedback. It
// is intentionally looser than ValidateURL so an in-progress URL does not
// flicker between valid and invalid while the user types.
//
// The over-approximation holds for domain-shaped input only: the character
// screen here covers the whole string, while ValidateURL polices hostname
// labels, so a full URL carrying space, @, !, #, or $ in its path, query,
// or userinfo can pass ValidateURL yet fail this check.
func IsURLFormatValid(input string) bool {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return false
	}

	lowered := strings.ToLower(trimmed)

	// Shortest plausible domain is four characters, e.g. "a.co".
	if len(lowered) < 4 {
		return false
	}
	if !strings.Contains(lowered, ".") {
		return false
	}
	if strings.ContainsAny(lowered, " @!#$") {
		return false
	}

	return true
}

// checkHyphens rejects hyphen placements that never occur in real
// registered domains: doubled hyphens and labels that start or end with one.
func checkHyphens(host string) (string, bool) {
	if strings.Contains(host, "--") {
		return reasonConsecutiveHyphens, false
	}
	for _, label := range strings.Split(host, ".") {
		if strings.HasPrefix(label, "-") || strings.HasSuffix(label, "-") {
			return reasonEdgeHyphen, false
		}
	}
	return "", true
}

// checkLabelCharacters requires every label to be built from lower-case
// letters, digits, and hyphens only. Empty labels are left to the length
// gate.
func checkLabelCharacters(labels []string) (string, bool) {
	for _, label := range labels {
		for _, r := range label {
			switch {
			case r >= 'a' && r <= 'z':
			case r >= '0' && r <= '9':
			case r == '-':
			default:
				return fmt.Sprintf("domain contains invalid character %q", r), false
			}
		}
	}
	return "", true
}

func checkLabelLengths(labels []string) (string, bool) {
	for _, label := range labels {
		if label == "" {
			return reasonEmptyLabel, false
		}
		if len(label) > maxLabelLength {
			return reasonLabelTooLong, false
		}
	}
	return "", true
}

// checkTLD applies the hand-rolled FQDN strategy: at least two labels, and
// a final label that is either in the curated long-TLD set or letters-only
// with a plausible length. A bare two-label host with a long final label
// outside the set is almost always a domain typed without its TLD
// ("www.example" instead of "www.example.com").
func checkTLD(host string, labels []string) (string, bool) {
	if len(labels) < 2 {
		return reasonMissingTLD, false
	}

	tld := labels[len(labels)-1]

	// Allowlist membership wins regardless of length; entries like
	// "photography" exceed the generic cap.
	if longTLDs[tld] {
		return "", true
	}
	if len(labels) == 2 && len(tld) > 4 {
		return fmt.Sprintf("%q looks like a domain missing its TLD (did you mean %s.com?)", host, host), false
	}
	if !isAlpha(tld) || len(tld) < minTLDLength || len(tld) > maxTLDLength {
		return reasonInvalidTLD, false
	}

	return "", true
}

// checkSuspiciousSubdomain is a heuristic anti-phishing gate, not a
// security guarantee: it only catches short, non-standard subdomains
// prefixed onto a fixed list of major brand domains, plus single-character
// second-level domains that are almost always typos.
func checkSuspiciousSubdomain(labels []string) (string, bool) {
	sub := labels[0]
	mainDomain := strings.Join(labels[1:], ".")

	if wellKnownDomains[mainDomain] && len(sub) <= 3 && !legitimateSubdomains[sub] {
		return fmt.Sprintf("suspicious subdomain %q on %s", sub, mainDomain), false
	}
	if len(labels) == 2 && len(labels[0]) <= 1 {
		return reasonDomainTooShort, false
	}

	return "", true
}

func isAlpha(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}
