package database

import (
	"fmt"

	"github.com/shabareesh1383/sociora/foundation/blockchain/reward"
)

// ConsensusPoTS identifies the Proof of Transcoding/Storage consensus
// mechanism on reward records.
const ConsensusPoTS = "PROOF_OF_TRANSCODING_STORAGE"

// Set of beneficiary roles. Every block reward is split across exactly
// these four.
const (
	RoleCreator  = "creator"
	RoleMiner    = "miner"
	RoleViewer   = "viewer"
	RolePlatform = "platform"
)

// =============================================================================

// Beneficiary represents one reward recipient. Values are created fresh
// per block and never mutated afterward.
type Beneficiary struct {
	Role       string  `json:"role"`
	Address    string  `json:"address"`
	Percentage float64 `json:"percentage"`
	Amount     float64 `json:"amount"`
}

// BeneficiaryAddresses carries the hashed addresses the four roles pay
// out to for a given block.
type BeneficiaryAddresses struct {
	Creator  string
	Miner    string
	Viewer   string
	Platform string
}

// =============================================================================

// BlockReward represents the value minted and collected for one block and
// its distribution across the four beneficiary roles. Immutable after
// creation.
type BlockReward struct {
	BaseSubsidy   float64       `json:"base_subsidy"`
	FeeReward     float64       `json:"fee_reward"`
	TotalReward   float64       `json:"total_reward"`
	ConsensusType string        `json:"consensus_type"`
	Beneficiaries []Beneficiary `json:"beneficiaries"`
}

// NewBlockReward constructs the reward distribution for a block. The total
// is the base subsidy plus the collected fees, split by the configured
// percentages. The distribution is validated before it is returned: value
// is conserved or no reward exists.
func NewBlockReward(baseSubsidy float64, feeReward float64, pcts reward.Percentages, addrs BeneficiaryAddresses) (BlockReward, error) {
	totalReward := reward.Round8(baseSubsidy + feeReward)

	split, err := reward.CalculateSplit(totalReward, pcts)
	if err != nil {
		return BlockReward{}, err
	}

	br := BlockReward{
		BaseSubsidy:   baseSubsidy,
		FeeReward:     feeReward,
		TotalReward:   totalReward,
		ConsensusType: ConsensusPoTS,
		Beneficiaries: []Beneficiary{
			{Role: RoleCreator, Address: addrs.Creator, Percentage: pcts.Creator, Amount: split.Creator},
			{Role: RoleMiner, Address: addrs.Miner, Percentage: pcts.Miner, Amount: split.Miner},
			{Role: RoleViewer, Address: addrs.Viewer, Percentage: pcts.Viewer, Amount: split.Viewer},
			{Role: RolePlatform, Address: addrs.Platform, Percentage: pcts.Platform, Amount: split.Platform},
		},
	}

	if !br.ValidateDistribution() {
		return BlockReward{}, fmt.Errorf("%w: split does not conserve total %g", reward.ErrInvalidDistribution, totalReward)
	}

	return br, nil
}

// ValidateDistribution reports whether the beneficiary amounts conserve
// the total reward within the accepted rounding dust.
func (br BlockReward) ValidateDistribution() bool {
	var split reward.Split
	for _, b := range br.Beneficiaries {
		switch b.Role {
		case RoleCreator:
			split.Creator = b.Amount
		case RoleMiner:
			split.Miner = b.Amount
		case RoleViewer:
			split.Viewer = b.Amount
		case RolePlatform:
			split.Platform = b.Amount
		default:
			return false
		}
	}

	return reward.ValidateDistribution(br.TotalReward, split)
}
