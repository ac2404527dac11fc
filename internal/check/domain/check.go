package domain

import (
	"time"
)

// Verdict values recorded for each check.
const (
	VerdictAccepted = "accepted" // passed validation, no known threat
	VerdictFlagged  = "flagged"  // passed validation, reputation lookup reported a threat
	VerdictRejected = "rejected" // failed local validation
)

// CheckRecord is a persisted URL check verdict.
type CheckRecord struct {
	ID            int64     `json:"id" db:"id"`
	Input         string    `json:"input" db:"input"`
	NormalizedURL string    `json:"normalized_url,omitempty" db:"normalized_url"`
	Verdict       string    `json:"verdict" db:"verdict"`
	Reason        string    `json:"reason,omitempty" db:"reason"`
	ThreatType    string    `json:"threat_type,omitempty" db:"threat_type"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

// CheckRequest is the API request for a full URL check.
type CheckRequest struct {
	URL string `json:"url" binding:"required"`
}

// CheckResponse is the API response for a full URL check. Exactly one of
// NormalizedURL or Reason is populated, mirroring the classifier contract.
type CheckResponse struct {
	Input         string `json:"input"`
	Valid         bool   `json:"valid"`
	NormalizedURL string `json:"normalized_url,omitempty"`
	Reason        string `json:"reason,omitempty"`
	Verdict       string `json:"verdict"`
	ThreatType    string `json:"threat_type,omitempty"`
}

// PrecheckResponse is the API response for the cheap format check used to
// toggle UI affordances while the user is typing.
type PrecheckResponse struct {
	Input string `json:"input"`
	OK    bool   `json:"ok"`
}

// Reputation is the verdict returned by the remote safe-browsing lookup.
type Reputation struct {
	Threat     bool   `json:"threat"`
	ThreatType string `json:"threat_type,omitempty"`
}
