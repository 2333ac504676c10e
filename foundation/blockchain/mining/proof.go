package mining

import (
	"time"

	"github.com/google/uuid"
	"github.com/shabareesh1383/sociora/foundation/blockchain/signature"
	"github.com/shabareesh1383/sociora/foundation/blockchain/storagenet"
)

// CreateStorageProof constructs the miner's proof record from a passed
// validation. The proof hash binds the content identifier, the miner and
// a fresh random nonce, so two attempts against the same video never
// produce the same proof.
func CreateStorageProof(videoCID string, minerAddress string, result ValidationResult, video storagenet.VideoMetadata, nodes []storagenet.StorageNode) storagenet.StorageProof {
	t := time.Now()

	nonce := uuid.NewString()

	return storagenet.StorageProof{
		VideoCID:           videoCID,
		MinerAddress:       minerAddress,
		Timestamp:          signature.Now(),
		StorageNodes:       nodes,
		Profiles:           video.Profiles,
		ProofNonce:         nonce,
		ProofHash:          signature.HashString(videoCID + minerAddress + nonce),
		IsValid:            result.IsValid,
		ComputationTime:    time.Since(t),
		StorageReplication: result.ReplicasFound,
		StorageData: map[string]any{
			"storage_status":     string(video.StorageStatus),
			"transcoding_status": string(video.TranscodingStatus),
			"replication_factor": video.ReplicationFactor,
		},
	}
}
