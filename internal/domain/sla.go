package domain

import (
	"fmt"
	"time"
)

// Tier is the urgency of an open pull request.
// Tiers are ordered: TierRecent < TierAttention < TierCritical.
type Tier int

const (
	TierRecent Tier = iota
	TierAttention
	TierCritical
)

func (t Tier) String() string {
	switch t {
	case TierRecent:
		return "RECENT"
	case TierAttention:
		return "ATTENTION"
	case TierCritical:
		return "CRITICAL"
	default:
		return fmt.Sprintf("Tier(%d)", int(t))
	}
}

// Label is the human-readable status shown in the report.
func (t Tier) Label() string {
	switch t {
	case TierAttention:
		return "⚠️ Attention"
	case TierCritical:
		return "🔥 Critical"
	default:
		return "🆕 New"
	}
}

// MarshalText encodes the tier by name so JSON output stays readable.
func (t Tier) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// SLAVerdict is the classification of a single pull request at report time.
type SLAVerdict struct {
	ElapsedDays  int  `json:"elapsed_days"`
	ElapsedHours int  `json:"elapsed_hours"`
	Tier         Tier `json:"tier"`
}

// Waiting formats the elapsed time as "<days>d <hours>h".
func (v SLAVerdict) Waiting() string {
	return fmt.Sprintf("%dd %dh", v.ElapsedDays, v.ElapsedHours)
}

// ReportRow pairs a pull request with its verdict.
type ReportRow struct {
	PullRequest PullRequestSummary `json:"pull_request"`
	Verdict     SLAVerdict         `json:"sla"`
}

// ReportSummary aggregates a report pass.
type ReportSummary struct {
	Total      int
	Recent     int
	Attention  int
	Critical   int
	MeanWait   time.Duration
	MedianWait time.Duration
}
