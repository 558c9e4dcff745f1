// Package sla classifies open pull requests into urgency tiers by how long they have waited.
package sla

import (
	"fmt"
	"time"

	"github.com/naka-gawa/pr-agent/internal/domain"
)

const (
	// DefaultAttentionDays is the first whole day at which a PR needs attention.
	DefaultAttentionDays = 1
	// DefaultCriticalDays is the first whole day at which a PR is critical.
	DefaultCriticalDays = 3

	day = 24 * time.Hour
)

// Policy holds the tier thresholds in whole elapsed days.
type Policy struct {
	AttentionDays int
	CriticalDays  int
}

// DefaultPolicy returns the 1 day / 3 days policy.
func DefaultPolicy() Policy {
	return Policy{AttentionDays: DefaultAttentionDays, CriticalDays: DefaultCriticalDays}
}

// Validate rejects thresholds that would make a tier unreachable.
func (p Policy) Validate() error {
	if p.AttentionDays < 1 {
		return fmt.Errorf("attention threshold must be at least 1 day, got %d", p.AttentionDays)
	}
	if p.CriticalDays <= p.AttentionDays {
		return fmt.Errorf("critical threshold (%d days) must be greater than attention threshold (%d days)", p.CriticalDays, p.AttentionDays)
	}
	return nil
}

// Classifier maps elapsed open time to a verdict.
type Classifier struct {
	policy Policy
}

// NewClassifier creates a Classifier. The policy is expected to be validated by the caller.
func NewClassifier(policy Policy) *Classifier {
	return &Classifier{policy: policy}
}

// Classify computes the verdict for a PR created at createdAt, as seen at now.
// A createdAt in the future (clock skew) counts as zero elapsed time.
// Only whole days affect the tier; hours are for display.
func (c *Classifier) Classify(createdAt, now time.Time) domain.SLAVerdict {
	elapsed := now.Sub(createdAt)
	if elapsed < 0 {
		elapsed = 0
	}

	days := int(elapsed / day)
	hours := int((elapsed % day) / time.Hour)

	tier := domain.TierRecent
	switch {
	case days >= c.policy.CriticalDays:
		tier = domain.TierCritical
	case days >= c.policy.AttentionDays:
		tier = domain.TierAttention
	}

	return domain.SLAVerdict{
		ElapsedDays:  days,
		ElapsedHours: hours,
		Tier:         tier,
	}
}
