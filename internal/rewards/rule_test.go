package rewards

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRuleMaturesAt(t *testing.T) {
	rule := Rule{WarmupSeconds: 3600, RewardPayout: 10}
	createdAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	maturesAt, err := rule.MaturesAt(createdAt)
	require.NoError(t, err)
	assert.Equal(t, createdAt.Add(time.Hour), maturesAt)
}

func TestRuleMaturesAtZeroWarmup(t *testing.T) {
	rule := Rule{WarmupSeconds: 0}
	createdAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	maturesAt, err := rule.MaturesAt(createdAt)
	require.NoError(t, err)
	assert.Equal(t, createdAt, maturesAt)
}

func TestRuleMaturesAtOverflow(t *testing.T) {
	rule := Rule{WarmupSeconds: math.MaxInt64}
	_, err := rule.MaturesAt(time.Now())
	assert.ErrorIs(t, err, ErrNumericOverflow)

	negative := Rule{WarmupSeconds: -1}
	_, err = negative.MaturesAt(time.Now())
	assert.ErrorIs(t, err, ErrNumericOverflow)
}

func TestRulePayout(t *testing.T) {
	rule := Rule{RewardPayout: 250}

	payout, err := rule.Payout(4)
	require.NoError(t, err)
	assert.Equal(t, uint64(1000), payout)

	payout, err = rule.Payout(0)
	require.NoError(t, err)
	assert.Zero(t, payout)
}

func TestRulePayoutOverflow(t *testing.T) {
	rule := Rule{RewardPayout: math.MaxUint64}
	_, err := rule.Payout(2)
	assert.ErrorIs(t, err, ErrNumericOverflow)

	exact := Rule{RewardPayout: math.MaxUint64 / 2}
	payout, err := exact.Payout(2)
	require.NoError(t, err)
	assert.Equal(t, uint64(math.MaxUint64-1), payout)
}
