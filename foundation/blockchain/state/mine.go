package state

import (
	"context"
	"errors"

	"github.com/shabareesh1383/sociora/foundation/blockchain/database"
	"github.com/shabareesh1383/sociora/foundation/blockchain/mining"
	"github.com/shabareesh1383/sociora/foundation/blockchain/signature"
	"github.com/shabareesh1383/sociora/foundation/blockchain/storagenet"
)

// MineVideoBlock runs the Proof of Transcoding/Storage pipeline for the
// specified video and, on success, commits the assembled block to the
// chain. Attempts are serialized: two miners racing through this state
// produce blocks one at a time, and a failed attempt leaves the chain,
// the mempool and the registry untouched.
func (s *State) MineVideoBlock(ctx context.Context, videoCID string, creatorID string) (database.Block, storagenet.StorageProof, mining.ValidationResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.evHandler("state: MineVideoBlock: MINING: video[%s]", videoCID)

	latestBlock := s.db.LatestBlock()

	previousHash := signature.ZeroHash
	blockNumber := uint64(0)
	if s.db.Height() > 0 {
		previousHash = latestBlock.Hash()
		blockNumber = latestBlock.BlockNumber + 1
	}

	pending := s.mempool.PickBest(-1)

	block, proof, result, err := mining.Mine(ctx, mining.Request{
		BlockNumber:       blockNumber,
		MinerAddress:      s.minerAddress,
		PreviousBlockHash: previousHash,
		VideoCID:          videoCID,
		CreatorID:         creatorID,
		PendingTxs:        pending,
	}, mining.Config{
		MinReplicas:     s.genesis.MinReplicas,
		Difficulty:      s.genesis.Difficulty,
		PlatformAddress: s.genesis.PlatformAddress,
		Reward:          s.genesis.Reward,
	}, s.registry, s.evHandler)
	if err != nil {
		var vErr *mining.ValidationError
		if errors.As(err, &vErr) {
			s.evHandler("state: MineVideoBlock: MINING: validation failed: %s", vErr.Result.ErrorMessage)
		}
		return database.Block{}, storagenet.StorageProof{}, result, err
	}

	// Confirm the contained transactions before the block is written so
	// the committed copies carry their inclusion reference.
	blockHash := block.Hash()
	for i := range block.Transactions {
		if block.Transactions[i].Status == database.TxStatusPending {
			if err := block.Transactions[i].Confirm(blockHash, block.BlockNumber); err != nil {
				return database.Block{}, storagenet.StorageProof{}, result, err
			}
		}
	}

	if err := s.db.Write(block); err != nil {
		return database.Block{}, storagenet.StorageProof{}, result, err
	}

	// The pending transactions picked for this block are now on chain.
	for _, tx := range pending {
		s.mempool.Delete(tx)
	}

	s.evHandler("state: MineVideoBlock: MINING: committed blk[%d] txs[%d]", block.BlockNumber, len(block.Transactions))

	return block, proof, result, nil
}
