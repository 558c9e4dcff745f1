package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_IsMatchesKind(t *testing.T) {
	cause := errors.New("401 Bad credentials")
	err := fmt.Errorf("listing pull requests: %w", NewUpstreamError("failed to list pull requests", cause))

	assert.ErrorIs(t, err, ErrUpstream)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrTransient)
	assert.Equal(t, "listing pull requests: failed to list pull requests: 401 Bad credentials", err.Error())
}

func TestError_MessageOnly(t *testing.T) {
	err := NewResolutionError("remote URL %q does not contain %q", "x", "github.com")

	assert.ErrorIs(t, err, ErrResolution)
	assert.Equal(t, `remote URL "x" does not contain "github.com"`, err.Error())
	assert.Nil(t, errors.Unwrap(err))
}

func TestTier(t *testing.T) {
	testCases := []struct {
		tier  Tier
		name  string
		label string
	}{
		{TierRecent, "RECENT", "🆕 New"},
		{TierAttention, "ATTENTION", "⚠️ Attention"},
		{TierCritical, "CRITICAL", "🔥 Critical"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.name, tc.tier.String())
			assert.Equal(t, tc.label, tc.tier.Label())
		})
	}
	assert.True(t, TierRecent < TierAttention && TierAttention < TierCritical)
}

func TestSLAVerdict_Waiting(t *testing.T) {
	assert.Equal(t, "4d 0h", SLAVerdict{ElapsedDays: 4}.Waiting())
	assert.Equal(t, "0d 23h", SLAVerdict{ElapsedHours: 23}.Waiting())
}

func TestRepositoryIdentity_FullName(t *testing.T) {
	id := RepositoryIdentity{Owner: "octo", Name: "Hello-World"}
	assert.Equal(t, "octo/Hello-World", id.FullName())
	assert.Equal(t, "octo/Hello-World", id.String())
}
