package storagenet_test

import (
	"errors"
	"testing"

	"github.com/shabareesh1383/sociora/foundation/blockchain/storagenet"
)

// Success and failure markers.
const (
	success = "✓"
	failed  = "✗"
)

func testProfiles() []storagenet.TranscodingProfile {
	return []storagenet.TranscodingProfile{
		{FormatName: "1080p", Codec: "h264", Resolution: "1920x1080"},
		{FormatName: "720p", Codec: "h264", Resolution: "1280x720"},
	}
}

// =============================================================================

func Test_UploadVideo(t *testing.T) {
	t.Log("Given the need to register videos on the storage network.")
	{
		registry := storagenet.NewRegistry()

		t.Logf("\tTest 0:\tWhen uploading a new video.")
		{
			video, err := registry.UploadVideo("QmVid1", "creator1", "First", 600, 1_000_000, 0)
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to upload the video: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould be able to upload the video.", success)

			if video.StorageStatus != storagenet.StoragePending {
				t.Fatalf("\t%s\tTest 0:\tShould start in the PENDING storage status, got %s.", failed, video.StorageStatus)
			}
			t.Logf("\t%s\tTest 0:\tShould start in the PENDING storage status.", success)

			if video.TranscodingStatus != storagenet.TranscodingNotStarted {
				t.Fatalf("\t%s\tTest 0:\tShould start with transcoding NOT_STARTED.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould start with transcoding NOT_STARTED.", success)

			if video.ReplicationFactor != storagenet.DefaultReplicationFactor {
				t.Fatalf("\t%s\tTest 0:\tShould fall back to the default replication factor, got %d.", failed, video.ReplicationFactor)
			}
			t.Logf("\t%s\tTest 0:\tShould fall back to the default replication factor.", success)
		}

		t.Logf("\tTest 1:\tWhen uploading the same content identifier again.")
		{
			if _, err := registry.UploadVideo("QmVid1", "creator2", "Dup", 60, 1, 0); !errors.Is(err, storagenet.ErrVideoExists) {
				t.Fatalf("\t%s\tTest 1:\tShould reject the duplicate upload: %v", failed, err)
			}
			t.Logf("\t%s\tTest 1:\tShould reject the duplicate upload.", success)
		}

		t.Logf("\tTest 2:\tWhen uploading with a chain configured replication factor.")
		{
			video, err := registry.UploadVideo("QmVid2", "creator1", "Second", 60, 1, 5)
			if err != nil {
				t.Fatalf("\t%s\tTest 2:\tShould be able to upload the video: %v", failed, err)
			}

			if video.ReplicationFactor != 5 {
				t.Fatalf("\t%s\tTest 2:\tShould carry the configured factor, got %d.", failed, video.ReplicationFactor)
			}
			t.Logf("\t%s\tTest 2:\tShould carry the configured factor.", success)
		}
	}
}

func Test_StoreReplica(t *testing.T) {
	t.Log("Given the need to track replicas across storage nodes.")
	{
		registry := storagenet.NewRegistry()
		registry.RegisterNode("node1", "10.0.0.1", "us-east", 10_000_000, 80)
		registry.RegisterNode("node2", "10.0.0.2", "us-west", 10_000_000, 80)
		registry.RegisterNode("tiny", "10.0.0.3", "eu-west", 100, 80)

		if _, err := registry.UploadVideo("QmVid1", "creator1", "First", 600, 1_000_000, 0); err != nil {
			t.Fatalf("\t%s\tShould be able to upload the video: %v", failed, err)
		}

		t.Logf("\tTest 0:\tWhen storing a replica on a node with capacity.")
		{
			if !registry.StoreReplica("QmVid1", "node1") {
				t.Fatalf("\t%s\tTest 0:\tShould be able to store the replica.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould be able to store the replica.", success)

			video, _ := registry.Video("QmVid1")
			if video.StorageStatus != storagenet.StorageStored {
				t.Fatalf("\t%s\tTest 0:\tShould advance to the STORED status, got %s.", failed, video.StorageStatus)
			}
			t.Logf("\t%s\tTest 0:\tShould advance to the STORED status.", success)
		}

		t.Logf("\tTest 1:\tWhen storing the same replica twice.")
		{
			if !registry.StoreReplica("QmVid1", "node1") {
				t.Fatalf("\t%s\tTest 1:\tShould treat the duplicate store as a no-op success.", failed)
			}
			t.Logf("\t%s\tTest 1:\tShould treat the duplicate store as a no-op success.", success)

			nodes := registry.Nodes()
			if nodes["node1"].StorageUsed != 1_000_000 {
				t.Fatalf("\t%s\tTest 1:\tShould not double count storage usage, got %d.", failed, nodes["node1"].StorageUsed)
			}
			t.Logf("\t%s\tTest 1:\tShould not double count storage usage.", success)
		}

		t.Logf("\tTest 2:\tWhen storing on a node without capacity.")
		{
			if registry.StoreReplica("QmVid1", "tiny") {
				t.Fatalf("\t%s\tTest 2:\tShould reject a node without capacity.", failed)
			}
			t.Logf("\t%s\tTest 2:\tShould reject a node without capacity.", success)
		}

		t.Logf("\tTest 3:\tWhen storing against unknown videos or nodes.")
		{
			if registry.StoreReplica("QmUnknown", "node1") {
				t.Fatalf("\t%s\tTest 3:\tShould reject an unknown video.", failed)
			}
			t.Logf("\t%s\tTest 3:\tShould reject an unknown video.", success)

			if registry.StoreReplica("QmVid1", "ghost") {
				t.Fatalf("\t%s\tTest 3:\tShould reject an unknown node.", failed)
			}
			t.Logf("\t%s\tTest 3:\tShould reject an unknown node.", success)
		}
	}
}

func Test_VerifyStorage(t *testing.T) {
	t.Log("Given the need to attest storage and transcoding state.")
	{
		registry := storagenet.NewRegistry()
		registry.RegisterNode("node1", "10.0.0.1", "us-east", 10_000_000, 80)
		registry.RegisterNode("node2", "10.0.0.2", "us-west", 10_000_000, 80)

		if _, err := registry.UploadVideo("QmVid1", "creator1", "First", 600, 1_000_000, 0); err != nil {
			t.Fatalf("\t%s\tShould be able to upload the video: %v", failed, err)
		}
		registry.StoreReplica("QmVid1", "node1")
		registry.StoreReplica("QmVid1", "node2")

		t.Logf("\tTest 0:\tWhen the video has not been transcoded.")
		{
			if registry.VerifyStorage("QmVid1", 2) {
				t.Fatalf("\t%s\tTest 0:\tShould refuse to verify without transcoding.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould refuse to verify without transcoding.", success)
		}

		t.Logf("\tTest 1:\tWhen the replication and transcoding requirements hold.")
		{
			registry.TranscodeVideo("QmVid1", testProfiles())

			if !registry.VerifyStorage("QmVid1", 2) {
				t.Fatalf("\t%s\tTest 1:\tShould verify the video.", failed)
			}
			t.Logf("\t%s\tTest 1:\tShould verify the video.", success)

			video, _ := registry.Video("QmVid1")
			if video.StorageStatus != storagenet.StorageVerified {
				t.Fatalf("\t%s\tTest 1:\tShould hold the VERIFIED status, got %s.", failed, video.StorageStatus)
			}
			t.Logf("\t%s\tTest 1:\tShould hold the VERIFIED status.", success)
		}

		t.Logf("\tTest 2:\tWhen a node goes offline after verification.")
		{
			registry.OfflineNode("node2")

			video, _ := registry.Video("QmVid1")
			if video.StorageStatus != storagenet.StorageVerified {
				t.Fatalf("\t%s\tTest 2:\tShould keep the VERIFIED status.", failed)
			}
			t.Logf("\t%s\tTest 2:\tShould keep the VERIFIED status.", success)

			if got := registry.OnlineReplicas("QmVid1"); got != 1 {
				t.Fatalf("\t%s\tTest 2:\tShould count one online replica, got %d.", failed, got)
			}
			t.Logf("\t%s\tTest 2:\tShould count one online replica.", success)

			if registry.VerifyStorage("QmVid1", 2) {
				t.Fatalf("\t%s\tTest 2:\tShould refuse a fresh attestation with too few live replicas.", failed)
			}
			t.Logf("\t%s\tTest 2:\tShould refuse a fresh attestation with too few live replicas.", success)
		}

		t.Logf("\tTest 3:\tWhen reading the metadata and live count in one snapshot.")
		{
			video, online, exists := registry.VideoReplicas("QmVid1")
			if !exists {
				t.Fatalf("\t%s\tTest 3:\tShould find the video.", failed)
			}

			if online != 1 || video.StorageStatus != storagenet.StorageVerified {
				t.Fatalf("\t%s\tTest 3:\tShould return the count and the status together, got %d %s.", failed, online, video.StorageStatus)
			}
			t.Logf("\t%s\tTest 3:\tShould return the count and the status together.", success)

			if _, _, exists := registry.VideoReplicas("QmGhost"); exists {
				t.Fatalf("\t%s\tTest 3:\tShould not find an unknown video.", failed)
			}
			t.Logf("\t%s\tTest 3:\tShould not find an unknown video.", success)
		}
	}
}
