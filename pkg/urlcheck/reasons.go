package urlcheck

// Rejection reasons surfaced verbatim to end users. Callers display these
// strings directly, so they are part of the package contract and must stay
// stable across releases.
const (
	reasonEmptyInput         = "empty input"
	reasonInvalidFormat      = "invalid URL format"
	reasonMissingDomain      = "missing domain"
	reasonConsecutiveHyphens = "domain contains consecutive hyphens"
	reasonEdgeHyphen         = "domain label cannot start or end with a hyphen"
	reasonEmptyLabel         = "domain contains an empty label"
	reasonLabelTooLong       = "domain label exceeds 63 characters"
	reasonDomainTooLong      = "domain name exceeds 253 characters"
	reasonMissingTLD         = "domain must include a TLD (e.g. example.com)"
	reasonInvalidTLD         = "TLD must be 2-10 letters"
	reasonWrongScheme        = "protocol must be http or https"
	reasonInvalidPort        = "invalid port"
	reasonDomainTooShort     = "domain name too short"
)
