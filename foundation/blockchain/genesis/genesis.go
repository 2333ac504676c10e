// Package genesis maintains access to the genesis file holding the chain
// level configuration.
package genesis

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shabareesh1383/sociora/foundation/blockchain/reward"
)

// Genesis represents the genesis file. All reward weights, clamp bounds,
// beneficiary percentages and replication minimums live here: they are
// configuration, never hardcoded.
type Genesis struct {
	Date              time.Time     `json:"date"`
	ChainID           uint16        `json:"chain_id" validate:"required"`
	Currency          string        `json:"currency" validate:"required"`
	MinReplicas       int           `json:"min_replicas" validate:"gte=1"`
	ReplicationFactor int           `json:"replication_factor" validate:"gte=1"`
	Difficulty        uint          `json:"difficulty"`
	PlatformAddress   string        `json:"platform_address" validate:"required"`
	Reward            reward.Config `json:"reward"`
}

// =============================================================================

// Load opens and consumes the genesis file, failing fast on a malformed
// configuration.
func Load(path string) (Genesis, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Genesis{}, err
	}

	var genesis Genesis
	if err := json.Unmarshal(content, &genesis); err != nil {
		return Genesis{}, err
	}

	if err := genesis.Validate(); err != nil {
		return Genesis{}, err
	}

	return genesis, nil
}

// Validate checks the structural constraints and that the beneficiary
// percentages form a valid distribution.
func (g Genesis) Validate() error {
	validate := validator.New(validator.WithRequiredStructEnabled())

	if err := validate.Struct(g); err != nil {
		return fmt.Errorf("genesis validation: %w", err)
	}

	if err := g.Reward.Percentages.Validate(); err != nil {
		return fmt.Errorf("genesis validation: %w", err)
	}

	return nil
}
