// Package reward implements the multi-beneficiary reward split and the
// dynamic reward formula for the Proof of Transcoding/Storage consensus.
package reward

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidDistribution is returned when beneficiary percentages are
// malformed. A caller must never mint or assemble a block on this error.
var ErrInvalidDistribution = errors.New("invalid reward distribution")

// percentTolerance is the floating point slack allowed when checking that
// percentages sum to 100.
const percentTolerance = 0.01

// amountTolerance is the accepted rounding dust per beneficiary when
// validating that split amounts conserve the total.
const amountTolerance = 1e-6

// =============================================================================

// Percentages declares the share of a block reward each of the four
// beneficiary roles receives. The four values must sum to 100.
type Percentages struct {
	Creator  float64 `json:"creator" validate:"gte=0"`
	Miner    float64 `json:"miner" validate:"gte=0"`
	Viewer   float64 `json:"viewer" validate:"gte=0"`
	Platform float64 `json:"platform" validate:"gte=0"`
}

// Sum returns the total of the four percentages.
func (p Percentages) Sum() float64 {
	return p.Creator + p.Miner + p.Viewer + p.Platform
}

// Validate checks each percentage is non-negative and the set sums to 100
// within tolerance.
func (p Percentages) Validate() error {
	if p.Creator < 0 || p.Miner < 0 || p.Viewer < 0 || p.Platform < 0 {
		return fmt.Errorf("%w: negative percentage", ErrInvalidDistribution)
	}

	if math.Abs(p.Sum()-100.0) > percentTolerance {
		return fmt.Errorf("%w: percentages must sum to 100, got %g", ErrInvalidDistribution, p.Sum())
	}

	return nil
}

// =============================================================================

// Split holds the amounts of a total reward assigned to each beneficiary
// role, rounded to 8 decimal places.
type Split struct {
	Creator  float64 `json:"creator"`
	Miner    float64 `json:"miner"`
	Viewer   float64 `json:"viewer"`
	Platform float64 `json:"platform"`
}

// Sum returns the total of the four amounts.
func (s Split) Sum() float64 {
	return s.Creator + s.Miner + s.Viewer + s.Platform
}

// CalculateSplit distributes the total reward across the four beneficiary
// roles. Rounding dust is accepted, not redistributed.
func CalculateSplit(totalReward float64, p Percentages) (Split, error) {
	if totalReward < 0 {
		return Split{}, fmt.Errorf("%w: negative total reward %g", ErrInvalidDistribution, totalReward)
	}

	if err := p.Validate(); err != nil {
		return Split{}, err
	}

	split := Split{
		Creator:  Round8(totalReward * p.Creator / 100),
		Miner:    Round8(totalReward * p.Miner / 100),
		Viewer:   Round8(totalReward * p.Viewer / 100),
		Platform: Round8(totalReward * p.Platform / 100),
	}

	return split, nil
}

// ValidateDistribution reports whether the split amounts conserve the total
// reward within the accepted rounding dust.
func ValidateDistribution(totalReward float64, s Split) bool {
	const beneficiaries = 4
	return math.Abs(s.Sum()-totalReward) <= amountTolerance*beneficiaries
}

// =============================================================================

// Config carries the weighting constants and clamp bounds for the dynamic
// reward formula plus the beneficiary percentages. All values are
// configuration, never hardcoded by callers.
type Config struct {
	BaseSubsidy       float64     `json:"base_subsidy" validate:"gte=0"`
	RewardPerSecond   float64     `json:"reward_per_second" validate:"gte=0"`
	RewardPerProfile  float64     `json:"reward_per_profile" validate:"gte=0"`
	RewardPerReplica  float64     `json:"reward_per_replica" validate:"gte=0"`
	MinRewardPerBlock float64     `json:"min_reward_per_block" validate:"gte=0"`
	MaxRewardPerBlock float64     `json:"max_reward_per_block" validate:"gtefield=MinRewardPerBlock"`
	Percentages       Percentages `json:"percentages"`
}

// DefaultConfig returns the standard reward parameters.
func DefaultConfig() Config {
	return Config{
		BaseSubsidy:       50.0,
		RewardPerSecond:   0.1,
		RewardPerProfile:  5.0,
		RewardPerReplica:  2.0,
		MinRewardPerBlock: 10.0,
		MaxRewardPerBlock: 1000.0,
		Percentages: Percentages{
			Creator:  40.0,
			Miner:    35.0,
			Viewer:   15.0,
			Platform: 10.0,
		},
	}
}

// Dynamic computes the block reward magnitude from the characteristics of
// the validated video. The reward scales with verifiable useful work:
// longer content, more transcoded renditions and more redundant copies.
// The result is clamped to the configured bounds and rounded to 8 decimal
// places.
func Dynamic(durationSeconds int, profileCount int, replicasFound int, cfg Config) float64 {
	total := cfg.BaseSubsidy

	total += float64(durationSeconds) * cfg.RewardPerSecond
	total += float64(profileCount) * cfg.RewardPerProfile

	replicaBonus := replicasFound - 1
	if replicaBonus < 0 {
		replicaBonus = 0
	}
	total += float64(replicaBonus) * cfg.RewardPerReplica

	total = math.Min(total, cfg.MaxRewardPerBlock)
	total = math.Max(total, cfg.MinRewardPerBlock)

	return Round8(total)
}

// Round8 rounds the value to 8 decimal places, the fixed precision of all
// on-chain amounts.
func Round8(v float64) float64 {
	const shift = 1e8
	return math.Round(v*shift) / shift
}
