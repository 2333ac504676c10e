package state

import (
	"fmt"

	"github.com/shabareesh1383/sociora/foundation/blockchain/database"
	"github.com/shabareesh1383/sociora/foundation/blockchain/storagenet"
)

// UploadVideo registers the video on the storage network and records the
// upload as a pending VIDEO_UPLOAD transaction.
func (s *State) UploadVideo(videoCID string, creatorID string, title string, durationSeconds int, sizeBytes int64) (storagenet.VideoMetadata, error) {
	s.evHandler("state: UploadVideo: video[%s] creator[%s]", videoCID, creatorID)

	video, err := s.registry.UploadVideo(videoCID, creatorID, title, durationSeconds, sizeBytes, s.genesis.ReplicationFactor)
	if err != nil {
		return storagenet.VideoMetadata{}, err
	}

	tx, err := database.NewTx(database.TxInfo{
		TxType:              database.TxTypeVideoUpload,
		SenderPublicKeyHash: creatorID,
		CreatorID:           creatorID,
		VideoHash:           videoCID,
		VideoLength:         durationSeconds,
		VideoSize:           sizeBytes,
		Nonce:               s.nextNonce(creatorID),
		Metadata:            map[string]any{"title": title},
	})
	if err != nil {
		return storagenet.VideoMetadata{}, fmt.Errorf("upload transaction: %w", err)
	}

	s.mempool.Upsert(tx)

	return video, nil
}

// SubmitTransaction accepts a serialized transaction, reconstructs and
// verifies it, and places it in the mempool for the next block.
func (s *State) SubmitTransaction(data database.TxData) (int, error) {
	tx, err := database.ToTx(data)
	if err != nil {
		return s.mempool.Count(), err
	}

	if tx.Status != database.TxStatusPending {
		return s.mempool.Count(), fmt.Errorf("only pending transactions are accepted, got %s", tx.Status)
	}

	s.evHandler("state: SubmitTransaction: tx[%s] type[%s]", tx.TxID, tx.TxType)

	return s.mempool.Upsert(tx), nil
}
