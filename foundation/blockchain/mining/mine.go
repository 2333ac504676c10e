package mining

import (
	"context"
	"fmt"
	"time"

	"github.com/shabareesh1383/sociora/foundation/blockchain/database"
	"github.com/shabareesh1383/sociora/foundation/blockchain/reward"
	"github.com/shabareesh1383/sociora/foundation/blockchain/signature"
	"github.com/shabareesh1383/sociora/foundation/blockchain/storagenet"
)

// Config carries the chain level settings the pipeline needs: the
// replication minimum, the declared difficulty, where platform fees go
// and the reward parameters.
type Config struct {
	MinReplicas     int
	Difficulty      uint
	PlatformAddress string
	Reward          reward.Config
}

// Request carries the per-attempt inputs for mining one block against
// one target video.
type Request struct {
	BlockNumber       uint64
	MinerAddress      string
	PreviousBlockHash string
	VideoCID          string
	CreatorID         string
	PendingTxs        []database.Tx
}

// =============================================================================

// Mine runs the full Proof of Transcoding/Storage pipeline for one video
// and produces the assembled block. The pipeline either completes every
// phase or fails with no partial state: a failed attempt emits nothing
// the chain could observe.
//
// A failed validation returns a ValidationError and the caller may retry
// later. Any inconsistency past validation returns a MiningError and the
// attempt is abandoned.
func Mine(ctx context.Context, req Request, cfg Config, registry *storagenet.Registry, evHandler func(v string, args ...any)) (database.Block, storagenet.StorageProof, ValidationResult, error) {
	ev := func(v string, args ...any) {
		if evHandler != nil {
			evHandler(v, args...)
		}
	}

	ev("mining: Mine: %s: video[%s] miner[%s]", PhaseValidating, req.VideoCID, req.MinerAddress)

	result := ValidateVideoStorage(ctx, req.VideoCID, req.MinerAddress, registry, cfg.MinReplicas)
	if !result.IsValid {
		ev("mining: Mine: %s: video[%s]: %s", PhaseFailed, req.VideoCID, result.ErrorMessage)
		return database.Block{}, storagenet.StorageProof{}, result, &ValidationError{VideoCID: req.VideoCID, Result: result}
	}

	ev("mining: Mine: %s: video[%s] replicas[%d] formats[%d]", PhaseProving, req.VideoCID, result.ReplicasFound, len(result.TranscodingFormats))

	video, exists := registry.Video(req.VideoCID)
	if !exists {
		return database.Block{}, storagenet.StorageProof{}, result, &MiningError{
			Phase:    PhaseProving,
			VideoCID: req.VideoCID,
			Reason:   "video metadata disappeared after validation",
		}
	}

	proof := CreateStorageProof(req.VideoCID, req.MinerAddress, result, video, holdingNodes(registry, video))

	ev("mining: Mine: %s: video[%s] duration[%ds]", PhaseRewarding, req.VideoCID, video.DurationSeconds)

	amount := reward.Dynamic(video.DurationSeconds, len(result.TranscodingFormats), result.ReplicasFound, cfg.Reward)

	ev("mining: Mine: %s: video[%s] reward[%g]", PhaseAssembling, req.VideoCID, amount)

	proofTx, err := database.NewTx(database.TxInfo{
		TxType:                database.TxTypeStorageProof,
		SenderPublicKeyHash:   req.MinerAddress,
		ReceiverPublicKeyHash: req.CreatorID,
		CreatorID:             req.CreatorID,
		Amount:                0,
		VideoHash:             req.VideoCID,
		VideoLength:           video.DurationSeconds,
		VideoSize:             video.OriginalSizeBytes,
		StorageProof:          proof.ProofHash,
		StorageProofSignature: signature.Sign(proof.ProofHash, req.MinerAddress),
		Nonce:                 1,
		GasPrice:              0,
	})
	if err != nil {
		return database.Block{}, storagenet.StorageProof{}, result, &MiningError{
			Phase:    PhaseAssembling,
			VideoCID: req.VideoCID,
			Reason:   fmt.Sprintf("constructing proof transaction: %v", err),
		}
	}

	txs := make([]database.Tx, 0, len(req.PendingTxs)+1)
	txs = append(txs, proofTx)
	for _, tx := range req.PendingTxs {

		// Gas units are fixed at inclusion time. There is no execution
		// metering in this model, so the declared limit is consumed.
		tx.GasUnits = tx.GasLimit
		txs = append(txs, tx)
	}

	block := database.NewBlock(database.BlockInfo{
		BlockNumber:  req.BlockNumber,
		MinerAddress: req.MinerAddress,
		PreviousHash: req.PreviousBlockHash,
		Difficulty:   cfg.Difficulty,
		ProofOfWork:  uint64(time.Now().UnixNano()),
		Transactions: txs,
	})

	block.AddStorageProof(req.VideoCID, proof.ProofHash)
	block.SetMetadata("storage_proof", proof.Summary())

	addrs := database.BeneficiaryAddresses{
		Creator:  req.CreatorID,
		Miner:    req.MinerAddress,
		Viewer:   req.MinerAddress,
		Platform: cfg.PlatformAddress,
	}

	if _, err := block.GenerateReward(amount, cfg.Reward.Percentages, addrs); err != nil {
		return database.Block{}, storagenet.StorageProof{}, result, fmt.Errorf("mining block %d: %w", req.BlockNumber, err)
	}

	ev("mining: Mine: %s: blk[%d] hash[%s]", PhaseCommitted, block.BlockNumber, block.Hash())

	return block, proof, result, nil
}

// holdingNodes snapshots the online nodes currently holding a copy of
// the video, for inclusion in the proof record.
func holdingNodes(registry *storagenet.Registry, video storagenet.VideoMetadata) []storagenet.StorageNode {
	all := registry.Nodes()

	var nodes []storagenet.StorageNode
	for _, nodeID := range video.AvailableOn {
		if node, exists := all[nodeID]; exists && node.IsOnline {
			nodes = append(nodes, node)
		}
	}

	return nodes
}
