// Package storagenet maintains the in-memory registry of storage nodes
// and video metadata that the mining pipeline validates against. It
// stands in for a real decentralized storage backend: any replacement
// must expose the same operations with the same success and failure
// semantics.
package storagenet

import (
	"fmt"
	"time"
)

// StorageStatus represents the storage state of a video on the network.
type StorageStatus string

// Set of valid storage statuses. REPLICATED advances to VERIFIED only
// through explicit verification and is never silently regressed.
const (
	StorageUnknown    StorageStatus = "UNKNOWN"
	StoragePending    StorageStatus = "PENDING"
	StorageStored     StorageStatus = "STORED"
	StorageReplicated StorageStatus = "REPLICATED"
	StorageVerified   StorageStatus = "VERIFIED"
)

// TranscodingStatus represents the transcoding state of a video.
type TranscodingStatus string

// Set of valid transcoding statuses.
const (
	TranscodingNotStarted TranscodingStatus = "NOT_STARTED"
	TranscodingInProgress TranscodingStatus = "IN_PROGRESS"
	TranscodingCompleted  TranscodingStatus = "COMPLETED"
	TranscodingFailed     TranscodingStatus = "FAILED"
)

// =============================================================================

// TranscodingProfile is one output rendition of a video. Immutable value.
type TranscodingProfile struct {
	FormatName      string `json:"format_name"`
	Codec           string `json:"codec"`
	Resolution      string `json:"resolution"`
	Bitrate         string `json:"bitrate"`
	SizeBytes       int64  `json:"size_bytes"`
	DurationSeconds int    `json:"duration_seconds"`
	Hash            string `json:"hash"`
}

// StorageNode represents a miner node storing content on the network.
type StorageNode struct {
	NodeID          string  `json:"node_id"`
	Address         string  `json:"address"`
	Region          string  `json:"region"`
	StorageCapacity int64   `json:"storage_capacity"`
	StorageUsed     int64   `json:"storage_used"`
	Reputation      float64 `json:"reputation"`
	IsOnline        bool    `json:"is_online"`
}

// VideoMetadata is the complete storage and transcoding state of one
// video, keyed by its content identifier.
type VideoMetadata struct {
	VideoCID          string               `json:"video_cid"`
	CreatorID         string               `json:"creator_id"`
	Title             string               `json:"title"`
	DurationSeconds   int                  `json:"duration_seconds"`
	OriginalSizeBytes int64                `json:"original_size_bytes"`
	StorageStatus     StorageStatus        `json:"storage_status"`
	TranscodingStatus TranscodingStatus    `json:"transcoding_status"`
	UploadedAt        string               `json:"uploaded_at"`
	AvailableOn       []string             `json:"available_on_network"`
	Profiles          []TranscodingProfile `json:"transcoded_profiles"`
	ReplicationFactor int                  `json:"replication_factor"`
}

// FullyAvailable reports whether the video is verified, transcoded and
// replicated to its target factor.
func (vm VideoMetadata) FullyAvailable() bool {
	return vm.StorageStatus == StorageVerified &&
		vm.TranscodingStatus == TranscodingCompleted &&
		len(vm.AvailableOn) >= vm.ReplicationFactor
}

// clone returns a deep copy so callers can never mutate registry state
// through a returned record.
func (vm VideoMetadata) clone() VideoMetadata {
	out := vm
	out.AvailableOn = append([]string(nil), vm.AvailableOn...)
	out.Profiles = append([]TranscodingProfile(nil), vm.Profiles...)
	return out
}

// =============================================================================

// StorageProof is the evidence a miner validated storage and transcoding
// for a video. Created once by the proof construction step; immutable.
type StorageProof struct {
	VideoCID     string `json:"video_cid"`
	MinerAddress string `json:"miner_address"`
	Timestamp    string `json:"timestamp"`

	StorageNodes []StorageNode        `json:"storage_nodes"`
	Profiles     []TranscodingProfile `json:"transcoding_profiles"`

	ProofNonce string `json:"proof_nonce"`
	ProofHash  string `json:"proof_hash"`

	IsValid            bool           `json:"is_valid"`
	ComputationTime    time.Duration  `json:"computation_time"`
	StorageReplication int            `json:"storage_replication"`
	StorageData        map[string]any `json:"storage_data,omitempty"`
}

// Summary produces the compact serializable representation recorded in
// block metadata.
func (sp StorageProof) Summary() map[string]any {
	return map[string]any{
		"video_cid":            sp.VideoCID,
		"miner_address":        sp.MinerAddress,
		"timestamp":            sp.Timestamp,
		"storage_nodes":        len(sp.StorageNodes),
		"transcoding_profiles": len(sp.Profiles),
		"proof_hash":           sp.ProofHash,
		"is_valid":             sp.IsValid,
		"computation_time":     sp.ComputationTime.Seconds(),
		"storage_replication":  sp.StorageReplication,
	}
}

// String implements the fmt.Stringer interface for logging.
func (sp StorageProof) String() string {
	return fmt.Sprintf("proof[%s] video[%s] replicas[%d]", sp.ProofHash, sp.VideoCID, sp.StorageReplication)
}
