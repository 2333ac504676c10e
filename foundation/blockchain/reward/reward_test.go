package reward_test

import (
	"errors"
	"math"
	"testing"

	"github.com/shabareesh1383/sociora/foundation/blockchain/reward"
)

// Success and failure markers.
const (
	success = "✓"
	failed  = "✗"
)

func closeTo(a float64, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

// =============================================================================

func Test_Split(t *testing.T) {
	type table struct {
		name  string
		total float64
		pcts  reward.Percentages
		split reward.Split
		fails bool
	}

	tt := []table{
		{
			name:  "standard",
			total: 129.0,
			pcts:  reward.Percentages{Creator: 40, Miner: 35, Viewer: 15, Platform: 10},
			split: reward.Split{Creator: 51.6, Miner: 45.15, Viewer: 19.35, Platform: 12.9},
		},
		{
			name:  "within tolerance",
			total: 100.0,
			pcts:  reward.Percentages{Creator: 40.005, Miner: 35, Viewer: 15, Platform: 10},
			split: reward.Split{Creator: 40.005, Miner: 35, Viewer: 15, Platform: 10},
		},
		{
			name:  "sum too high",
			total: 100.0,
			pcts:  reward.Percentages{Creator: 40.02, Miner: 35, Viewer: 15, Platform: 10},
			fails: true,
		},
		{
			name:  "sum too low",
			total: 100.0,
			pcts:  reward.Percentages{Creator: 35, Miner: 35, Viewer: 15, Platform: 10},
			fails: true,
		},
		{
			name:  "negative percentage",
			total: 100.0,
			pcts:  reward.Percentages{Creator: 110, Miner: 5, Viewer: -25, Platform: 10},
			fails: true,
		},
	}

	t.Log("Given the need to split a reward across the beneficiary roles.")
	{
		for testID, tst := range tt {
			t.Logf("\tTest %d:\tWhen splitting %g with the %s percentages.", testID, tst.total, tst.name)
			{
				f := func(t *testing.T) {
					split, err := reward.CalculateSplit(tst.total, tst.pcts)

					if tst.fails {
						if !errors.Is(err, reward.ErrInvalidDistribution) {
							t.Fatalf("\t%s\tTest %d:\tShould reject the distribution: %v", failed, testID, err)
						}
						t.Logf("\t%s\tTest %d:\tShould reject the distribution.", success, testID)
						return
					}

					if err != nil {
						t.Fatalf("\t%s\tTest %d:\tShould be able to split the reward: %v", failed, testID, err)
					}
					t.Logf("\t%s\tTest %d:\tShould be able to split the reward.", success, testID)

					if !closeTo(split.Creator, tst.split.Creator) || !closeTo(split.Miner, tst.split.Miner) ||
						!closeTo(split.Viewer, tst.split.Viewer) || !closeTo(split.Platform, tst.split.Platform) {
						t.Errorf("\t%s\tTest %d:\tShould have the expected amounts.", failed, testID)
						t.Logf("\t%s\tTest %d:\tgot: %+v", failed, testID, split)
						t.Logf("\t%s\tTest %d:\texp: %+v", failed, testID, tst.split)
					} else {
						t.Logf("\t%s\tTest %d:\tShould have the expected amounts.", success, testID)
					}

					if !reward.ValidateDistribution(tst.total, split) {
						t.Errorf("\t%s\tTest %d:\tShould conserve the total reward.", failed, testID)
					} else {
						t.Logf("\t%s\tTest %d:\tShould conserve the total reward.", success, testID)
					}
				}

				t.Run(tst.name, f)
			}
		}
	}
}

func Test_Dynamic(t *testing.T) {
	type table struct {
		name     string
		duration int
		profiles int
		replicas int
		expected float64
	}

	cfg := reward.DefaultConfig()

	tt := []table{
		{name: "standard video", duration: 600, profiles: 3, replicas: 3, expected: 129.0},
		{name: "zero inputs hold base", duration: 0, profiles: 0, replicas: 0, expected: 50.0},
		{name: "single replica no bonus", duration: 0, profiles: 0, replicas: 1, expected: 50.0},
		{name: "max clamp", duration: 100000, profiles: 10, replicas: 10, expected: 1000.0},
	}

	t.Log("Given the need to compute the dynamic block reward.")
	{
		for testID, tst := range tt {
			t.Logf("\tTest %d:\tWhen handling a %s.", testID, tst.name)
			{
				f := func(t *testing.T) {
					got := reward.Dynamic(tst.duration, tst.profiles, tst.replicas, cfg)

					if !closeTo(got, tst.expected) {
						t.Errorf("\t%s\tTest %d:\tShould have the expected reward.", failed, testID)
						t.Logf("\t%s\tTest %d:\tgot: %g", failed, testID, got)
						t.Logf("\t%s\tTest %d:\texp: %g", failed, testID, tst.expected)
					} else {
						t.Logf("\t%s\tTest %d:\tShould have the expected reward.", success, testID)
					}
				}

				t.Run(tst.name, f)
			}
		}

		t.Logf("\tTest 4:\tWhen the formula falls below the minimum.")
		{
			cfg := cfg
			cfg.BaseSubsidy = 1.0

			got := reward.Dynamic(0, 0, 0, cfg)
			if !closeTo(got, cfg.MinRewardPerBlock) {
				t.Fatalf("\t%s\tTest 4:\tShould clamp to the minimum, got %g.", failed, got)
			}
			t.Logf("\t%s\tTest 4:\tShould clamp to the minimum.", success)
		}
	}
}
