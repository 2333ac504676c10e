package mining_test

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/shabareesh1383/sociora/foundation/blockchain/database"
	"github.com/shabareesh1383/sociora/foundation/blockchain/mining"
	"github.com/shabareesh1383/sociora/foundation/blockchain/reward"
	"github.com/shabareesh1383/sociora/foundation/blockchain/signature"
	"github.com/shabareesh1383/sociora/foundation/blockchain/storagenet"
)

// Success and failure markers.
const (
	success = "✓"
	failed  = "✗"
)

func closeTo(a float64, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func testConfig() mining.Config {
	return mining.Config{
		MinReplicas:     2,
		Difficulty:      1,
		PlatformAddress: signature.HashString("platform"),
		Reward:          reward.DefaultConfig(),
	}
}

// testNetwork builds a registry with three online nodes.
func testNetwork(t *testing.T) *storagenet.Registry {
	t.Helper()

	registry := storagenet.NewRegistry()
	registry.RegisterNode("node1", "10.0.0.1", "us-east", 100_000_000, 80)
	registry.RegisterNode("node2", "10.0.0.2", "us-west", 100_000_000, 80)
	registry.RegisterNode("node3", "10.0.0.3", "eu-west", 100_000_000, 80)

	return registry
}

// =============================================================================

func Test_MineFullyAvailableVideo(t *testing.T) {
	t.Log("Given the need to mine a block for a fully available video.")
	{
		registry := testNetwork(t)
		creator := signature.HashString("creator1")
		miner := signature.HashString("miner1")

		if _, err := registry.UploadVideo("QmVid1", creator, "First", 600, 1_000_000, 0); err != nil {
			t.Fatalf("\t%s\tShould be able to upload the video: %v", failed, err)
		}
		registry.StoreReplica("QmVid1", "node1")
		registry.StoreReplica("QmVid1", "node2")
		registry.StoreReplica("QmVid1", "node3")
		registry.TranscodeVideo("QmVid1", []storagenet.TranscodingProfile{
			{FormatName: "1080p"}, {FormatName: "720p"}, {FormatName: "480p"},
		})

		t.Logf("\tTest 0:\tWhen running the full pipeline.")
		{
			block, proof, result, err := mining.Mine(context.Background(), mining.Request{
				BlockNumber:       0,
				MinerAddress:      miner,
				PreviousBlockHash: signature.ZeroHash,
				VideoCID:          "QmVid1",
				CreatorID:         creator,
			}, testConfig(), registry, nil)
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to mine the block: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould be able to mine the block.", success)

			if !result.IsValid || result.ReplicasFound != 3 || len(result.TranscodingFormats) != 3 {
				t.Fatalf("\t%s\tTest 0:\tShould validate with 3 replicas and 3 formats: %+v", failed, result)
			}
			t.Logf("\t%s\tTest 0:\tShould validate with 3 replicas and 3 formats.", success)

			// 50 base + 600*0.1 + 3*5 + (3-1)*2 = 129.
			if !closeTo(block.BlockReward.TotalReward, 129.0) {
				t.Fatalf("\t%s\tTest 0:\tShould compute a total reward of 129, got %g.", failed, block.BlockReward.TotalReward)
			}
			t.Logf("\t%s\tTest 0:\tShould compute a total reward of 129.", success)

			exp := map[string]float64{
				database.RoleCreator:  51.6,
				database.RoleMiner:    45.15,
				database.RoleViewer:   19.35,
				database.RolePlatform: 12.9,
			}
			for _, b := range block.BlockReward.Beneficiaries {
				if !closeTo(b.Amount, exp[b.Role]) {
					t.Errorf("\t%s\tTest 0:\tShould pay %s %g, got %g.", failed, b.Role, exp[b.Role], b.Amount)
				} else {
					t.Logf("\t%s\tTest 0:\tShould pay %s %g.", success, b.Role, exp[b.Role])
				}
			}

			if len(block.Transactions) != 1 || block.Transactions[0].TxType != database.TxTypeStorageProof {
				t.Fatalf("\t%s\tTest 0:\tShould carry the synthetic storage proof transaction.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould carry the synthetic storage proof transaction.", success)

			if block.VideoProofs["QmVid1"] != proof.ProofHash {
				t.Fatalf("\t%s\tTest 0:\tShould record the proof hash on the block.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould record the proof hash on the block.", success)

			if !proof.IsValid || proof.StorageReplication != 3 {
				t.Fatalf("\t%s\tTest 0:\tShould carry a valid proof with the replica count.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould carry a valid proof with the replica count.", success)
		}

		t.Logf("\tTest 1:\tWhen mining the same video twice.")
		{
			_, proof1, _, err := mining.Mine(context.Background(), mining.Request{
				MinerAddress: miner, PreviousBlockHash: signature.ZeroHash, VideoCID: "QmVid1", CreatorID: creator,
			}, testConfig(), registry, nil)
			if err != nil {
				t.Fatalf("\t%s\tTest 1:\tShould be able to mine again: %v", failed, err)
			}

			_, proof2, _, err := mining.Mine(context.Background(), mining.Request{
				MinerAddress: miner, PreviousBlockHash: signature.ZeroHash, VideoCID: "QmVid1", CreatorID: creator,
			}, testConfig(), registry, nil)
			if err != nil {
				t.Fatalf("\t%s\tTest 1:\tShould be able to mine again: %v", failed, err)
			}

			if proof1.ProofHash == proof2.ProofHash {
				t.Fatalf("\t%s\tTest 1:\tShould produce distinct proof hashes per attempt.", failed)
			}
			t.Logf("\t%s\tTest 1:\tShould produce distinct proof hashes per attempt.", success)
		}
	}
}

func Test_MineUnderReplicatedVideo(t *testing.T) {
	t.Log("Given the need to refuse mining for an under replicated video.")
	{
		registry := testNetwork(t)
		creator := signature.HashString("creator1")

		if _, err := registry.UploadVideo("QmVid2", creator, "Second", 300, 1_000_000, 0); err != nil {
			t.Fatalf("\t%s\tShould be able to upload the video: %v", failed, err)
		}
		registry.StoreReplica("QmVid2", "node1")
		registry.StoreReplica("QmVid2", "node2")
		registry.TranscodeVideo("QmVid2", []storagenet.TranscodingProfile{{FormatName: "720p"}})

		registry.OfflineNode("node1")
		registry.OfflineNode("node2")

		t.Logf("\tTest 0:\tWhen every replica is offline.")
		{
			_, _, result, err := mining.Mine(context.Background(), mining.Request{
				MinerAddress: signature.HashString("miner1"),
				VideoCID:     "QmVid2",
				CreatorID:    creator,
			}, testConfig(), registry, nil)

			var vErr *mining.ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("\t%s\tTest 0:\tShould fail with a validation error: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould fail with a validation error.", success)

			if result.IsValid || result.ReplicasFound != 0 {
				t.Fatalf("\t%s\tTest 0:\tShould report zero online replicas: %+v", failed, result)
			}
			t.Logf("\t%s\tTest 0:\tShould report zero online replicas.", success)

			if !result.StorageChecked || result.TranscodingChecked {
				t.Fatalf("\t%s\tTest 0:\tShould short-circuit before the transcoding check.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould short-circuit before the transcoding check.", success)
		}
	}
}

func Test_MineUntranscodedVideo(t *testing.T) {
	t.Log("Given the need to refuse mining for a video with no renditions.")
	{
		registry := testNetwork(t)
		creator := signature.HashString("creator1")

		if _, err := registry.UploadVideo("QmVid3", creator, "Third", 0, 1_000_000, 0); err != nil {
			t.Fatalf("\t%s\tShould be able to upload the video: %v", failed, err)
		}
		registry.StoreReplica("QmVid3", "node1")
		registry.StoreReplica("QmVid3", "node2")

		t.Logf("\tTest 0:\tWhen the video was never transcoded.")
		{
			_, _, result, err := mining.Mine(context.Background(), mining.Request{
				MinerAddress: signature.HashString("miner1"),
				VideoCID:     "QmVid3",
				CreatorID:    creator,
			}, testConfig(), registry, nil)

			var vErr *mining.ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("\t%s\tTest 0:\tShould fail with a validation error: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould fail with a validation error.", success)

			if !result.StorageChecked || !result.TranscodingChecked {
				t.Fatalf("\t%s\tTest 0:\tShould fail at the transcoding check, not earlier: %+v", failed, result)
			}
			t.Logf("\t%s\tTest 0:\tShould fail at the transcoding check, not earlier.", success)
		}

		t.Logf("\tTest 1:\tWhen the video does not exist at all.")
		{
			_, _, result, err := mining.Mine(context.Background(), mining.Request{
				MinerAddress: signature.HashString("miner1"),
				VideoCID:     "QmGhost",
				CreatorID:    creator,
			}, testConfig(), registry, nil)

			var vErr *mining.ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("\t%s\tTest 1:\tShould fail with a validation error: %v", failed, err)
			}
			t.Logf("\t%s\tTest 1:\tShould fail with a validation error.", success)

			if result.StorageChecked {
				t.Fatalf("\t%s\tTest 1:\tShould short-circuit before the storage check.", failed)
			}
			t.Logf("\t%s\tTest 1:\tShould short-circuit before the storage check.", success)
		}
	}
}

func Test_MineCancelledContext(t *testing.T) {
	t.Log("Given the need to honor cancellation during validation.")
	{
		registry := testNetwork(t)

		t.Logf("\tTest 0:\tWhen the context is already cancelled.")
		{
			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			_, _, result, err := mining.Mine(ctx, mining.Request{
				MinerAddress: signature.HashString("miner1"),
				VideoCID:     "QmVid1",
				CreatorID:    signature.HashString("creator1"),
			}, testConfig(), registry, nil)

			var vErr *mining.ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("\t%s\tTest 0:\tShould fail with a validation error: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould fail with a validation error.", success)

			if result.IsValid || result.StorageChecked {
				t.Fatalf("\t%s\tTest 0:\tShould stop before any check runs: %+v", failed, result)
			}
			t.Logf("\t%s\tTest 0:\tShould stop before any check runs.", success)
		}
	}
}
