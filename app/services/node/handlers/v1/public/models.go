package public

import (
	"github.com/shabareesh1383/sociora/foundation/blockchain/storagenet"
)

// uploadVideoRequest is the payload for registering a new video.
type uploadVideoRequest struct {
	VideoCID        string `json:"video_cid" validate:"required"`
	CreatorID       string `json:"creator_id" validate:"required"`
	Title           string `json:"title" validate:"required"`
	DurationSeconds int    `json:"duration_seconds" validate:"gte=0"`
	SizeBytes       int64  `json:"size_bytes" validate:"gte=0"`
}

// registerNodeRequest is the payload for registering a storage node.
type registerNodeRequest struct {
	NodeID          string  `json:"node_id" validate:"required"`
	Address         string  `json:"address" validate:"required"`
	Region          string  `json:"region"`
	StorageCapacity int64   `json:"storage_capacity" validate:"gt=0"`
	Reputation      float64 `json:"reputation" validate:"gte=0,lte=100"`
}

// replicateRequest is the payload for recording a replica.
type replicateRequest struct {
	VideoCID string `json:"video_cid" validate:"required"`
	NodeID   string `json:"node_id" validate:"required"`
}

// transcodeRequest is the payload for recording transcoded renditions.
type transcodeRequest struct {
	VideoCID string                          `json:"video_cid" validate:"required"`
	Profiles []storagenet.TranscodingProfile `json:"profiles" validate:"required,min=1,dive"`
}

// mineRequest is the payload for a synchronous mining attempt.
type mineRequest struct {
	VideoCID  string `json:"video_cid" validate:"required"`
	CreatorID string `json:"creator_id" validate:"required"`
}

// statusResponse reports the node's view of the chain.
type statusResponse struct {
	MinerAddress    string `json:"miner_address"`
	Height          int    `json:"height"`
	LatestBlockHash string `json:"latest_block_hash"`
	MempoolCount    int    `json:"mempool_count"`
}
