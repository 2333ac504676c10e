package genesis_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shabareesh1383/sociora/foundation/blockchain/genesis"
)

// Success and failure markers.
const (
	success = "✓"
	failed  = "✗"
)

const goodGenesis = `{
  "date": "2026-01-01T00:00:00Z",
  "chain_id": 1,
  "currency": "SOCIORA",
  "min_replicas": 2,
  "replication_factor": 3,
  "difficulty": 1,
  "platform_address": "0xplatform",
  "reward": {
    "base_subsidy": 50,
    "reward_per_second": 0.1,
    "reward_per_profile": 5,
    "reward_per_replica": 2,
    "min_reward_per_block": 10,
    "max_reward_per_block": 1000,
    "percentages": {"creator": 40, "miner": 35, "viewer": 15, "platform": 10}
  }
}`

const badGenesis = `{
  "date": "2026-01-01T00:00:00Z",
  "chain_id": 1,
  "currency": "SOCIORA",
  "min_replicas": 2,
  "replication_factor": 3,
  "difficulty": 1,
  "platform_address": "0xplatform",
  "reward": {
    "base_subsidy": 50,
    "reward_per_second": 0.1,
    "reward_per_profile": 5,
    "reward_per_replica": 2,
    "min_reward_per_block": 10,
    "max_reward_per_block": 1000,
    "percentages": {"creator": 50, "miner": 35, "viewer": 15, "platform": 10}
  }
}`

func write(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "genesis.json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("\t%s\tShould be able to write the genesis file: %v", failed, err)
	}

	return path
}

// =============================================================================

func Test_Load(t *testing.T) {
	t.Log("Given the need to load the chain configuration.")
	{
		t.Logf("\tTest 0:\tWhen loading a well formed genesis file.")
		{
			gen, err := genesis.Load(write(t, goodGenesis))
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to load the genesis file: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould be able to load the genesis file.", success)

			if gen.MinReplicas != 2 || gen.Reward.BaseSubsidy != 50 {
				t.Fatalf("\t%s\tTest 0:\tShould carry the configured values: %+v", failed, gen)
			}
			t.Logf("\t%s\tTest 0:\tShould carry the configured values.", success)
		}

		t.Logf("\tTest 1:\tWhen the percentages do not sum to 100.")
		{
			if _, err := genesis.Load(write(t, badGenesis)); err == nil {
				t.Fatalf("\t%s\tTest 1:\tShould reject the malformed distribution.", failed)
			}
			t.Logf("\t%s\tTest 1:\tShould reject the malformed distribution.", success)
		}

		t.Logf("\tTest 2:\tWhen the file does not exist.")
		{
			if _, err := genesis.Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
				t.Fatalf("\t%s\tTest 2:\tShould fail on a missing file.", failed)
			}
			t.Logf("\t%s\tTest 2:\tShould fail on a missing file.", success)
		}
	}
}
