package rewards

import (
	"errors"
	"math"
	"time"
)

var ErrNumericOverflow = errors.New("reward arithmetic overflow")

// Rule governs reward accrual for a rewardable collection: how long a listing
// must stay live before its reward matures, and the payout per token.
type Rule struct {
	WarmupSeconds int64  `json:"warmup_seconds"`
	RewardPayout  uint64 `json:"reward_payout"`
}

// MaturesAt returns the instant a listing created at the given time becomes
// reward-eligible. Overflow is an explicit error, never silent wraparound.
func (r Rule) MaturesAt(createdAt time.Time) (time.Time, error) {
	if r.WarmupSeconds < 0 {
		return time.Time{}, ErrNumericOverflow
	}
	unix := createdAt.Unix()
	if unix > math.MaxInt64-r.WarmupSeconds {
		return time.Time{}, ErrNumericOverflow
	}
	return time.Unix(unix+r.WarmupSeconds, 0).UTC(), nil
}

// Payout computes the reward for a matured listing of the given token size
// with checked multiplication.
func (r Rule) Payout(tokenSize uint64) (uint64, error) {
	if r.RewardPayout == 0 || tokenSize == 0 {
		return 0, nil
	}
	if r.RewardPayout > math.MaxUint64/tokenSize {
		return 0, ErrNumericOverflow
	}
	return r.RewardPayout * tokenSize, nil
}
