package storagenet

import (
	"errors"
	"sync"

	"github.com/shabareesh1383/sociora/foundation/blockchain/signature"
)

// ErrVideoExists is returned when a content identifier is uploaded twice.
// Re-upload is rejected rather than silently overwriting.
var ErrVideoExists = errors.New("video already registered")

// DefaultReplicationFactor is the target copy count applied to an upload
// that does not declare one.
const DefaultReplicationFactor = 3

// DefaultReputation is the starting reputation for a registered node.
const DefaultReputation = 80.0

// =============================================================================

// Registry is the single source of truth for storage nodes and video
// state. It is constructed explicitly and injected where needed; there is
// no process-wide instance. All mutating operations are serialized, and
// read operations observe a consistent snapshot.
type Registry struct {
	mu     sync.RWMutex
	videos map[string]VideoMetadata
	nodes  map[string]StorageNode
}

// NewRegistry constructs an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		videos: make(map[string]VideoMetadata),
		nodes:  make(map[string]StorageNode),
	}
}

// =============================================================================

// RegisterNode inserts or replaces a storage node record. Registration is
// last-write-wins on the node id.
func (r *Registry) RegisterNode(nodeID string, address string, region string, capacity int64, reputation float64) StorageNode {
	r.mu.Lock()
	defer r.mu.Unlock()

	node := StorageNode{
		NodeID:          nodeID,
		Address:         address,
		Region:          region,
		StorageCapacity: capacity,
		StorageUsed:     0,
		Reputation:      reputation,
		IsOnline:        true,
	}

	r.nodes[nodeID] = node

	return node
}

// UploadVideo registers a new video on the network with the target copy
// count for the chain. A non-positive replication factor falls back to
// the default. Uploading a content identifier that already exists fails
// with ErrVideoExists.
func (r *Registry) UploadVideo(videoCID string, creatorID string, title string, durationSeconds int, sizeBytes int64, replicationFactor int) (VideoMetadata, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.videos[videoCID]; exists {
		return VideoMetadata{}, ErrVideoExists
	}

	if replicationFactor <= 0 {
		replicationFactor = DefaultReplicationFactor
	}

	metadata := VideoMetadata{
		VideoCID:          videoCID,
		CreatorID:         creatorID,
		Title:             title,
		DurationSeconds:   durationSeconds,
		OriginalSizeBytes: sizeBytes,
		StorageStatus:     StoragePending,
		TranscodingStatus: TranscodingNotStarted,
		UploadedAt:        signature.Now(),
		ReplicationFactor: replicationFactor,
	}

	r.videos[videoCID] = metadata

	return metadata.clone(), nil
}

// StoreReplica records that the node holds a copy of the video. The false
// return is the expected-failure channel: unknown video or node, or a
// node without capacity. Storing the same replica twice is a no-op that
// never double-counts usage. Reaching the replication factor advances the
// storage status to REPLICATED; an already VERIFIED video is left alone.
func (r *Registry) StoreReplica(videoCID string, nodeID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	video, exists := r.videos[videoCID]
	if !exists {
		return false
	}

	node, exists := r.nodes[nodeID]
	if !exists {
		return false
	}

	var held bool
	for _, id := range video.AvailableOn {
		if id == nodeID {
			held = true
			break
		}
	}

	if !held {
		if node.StorageUsed+video.OriginalSizeBytes > node.StorageCapacity {
			return false
		}

		video.AvailableOn = append(video.AvailableOn, nodeID)
		node.StorageUsed += video.OriginalSizeBytes
		r.nodes[nodeID] = node
	}

	if video.StorageStatus == StoragePending || video.StorageStatus == StorageUnknown {
		video.StorageStatus = StorageStored
	}

	if len(video.AvailableOn) >= video.ReplicationFactor && video.StorageStatus != StorageVerified {
		video.StorageStatus = StorageReplicated
	}

	r.videos[videoCID] = video

	return true
}

// TranscodeVideo replaces the video's profile list wholesale and marks
// transcoding COMPLETED. There is no incremental or partial transcode in
// this model.
func (r *Registry) TranscodeVideo(videoCID string, profiles []TranscodingProfile) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	video, exists := r.videos[videoCID]
	if !exists {
		return false
	}

	video.Profiles = append([]TranscodingProfile(nil), profiles...)
	video.TranscodingStatus = TranscodingCompleted

	r.videos[videoCID] = video

	return true
}

// VerifyStorage checks the video is transcoded and held by at least the
// minimum number of currently online nodes, recounting liveness at call
// time. Success upgrades the storage status to VERIFIED. The upgrade is
// monotonic: a node going offline later does not revoke it. Verification
// is a point-in-time attestation; mining never trusts it and recounts
// online replicas on every attempt.
func (r *Registry) VerifyStorage(videoCID string, minReplicas int) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	video, exists := r.videos[videoCID]
	if !exists {
		return false
	}

	if r.onlineReplicas(video) < minReplicas {
		return false
	}

	if video.TranscodingStatus != TranscodingCompleted {
		return false
	}

	video.StorageStatus = StorageVerified
	r.videos[videoCID] = video

	return true
}

// OfflineNode marks a node offline. The transition is one-way: no
// operation brings a node back online in this model.
func (r *Registry) OfflineNode(nodeID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	node, exists := r.nodes[nodeID]
	if !exists {
		return false
	}

	node.IsOnline = false
	r.nodes[nodeID] = node

	return true
}

// =============================================================================

// Video returns a snapshot of the metadata for the content identifier.
func (r *Registry) Video(videoCID string) (VideoMetadata, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	video, exists := r.videos[videoCID]
	if !exists {
		return VideoMetadata{}, false
	}

	return video.clone(), true
}

// Nodes returns a snapshot of all registered storage nodes.
func (r *Registry) Nodes() map[string]StorageNode {
	r.mu.RLock()
	defer r.mu.RUnlock()

	nodes := make(map[string]StorageNode, len(r.nodes))
	for nodeID, node := range r.nodes {
		nodes[nodeID] = node
	}

	return nodes
}

// VideoReplicas returns a snapshot of the video's metadata together with
// the number of currently online nodes holding a copy. Both values are
// read under one lock so they describe the same moment.
func (r *Registry) VideoReplicas(videoCID string) (VideoMetadata, int, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	video, exists := r.videos[videoCID]
	if !exists {
		return VideoMetadata{}, 0, false
	}

	return video.clone(), r.onlineReplicas(video), true
}

// OnlineReplicas returns the number of currently online nodes holding a
// copy of the video.
func (r *Registry) OnlineReplicas(videoCID string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	video, exists := r.videos[videoCID]
	if !exists {
		return 0
	}

	return r.onlineReplicas(video)
}

// onlineReplicas counts live copies. Callers must hold the lock.
func (r *Registry) onlineReplicas(video VideoMetadata) int {
	var online int
	for _, nodeID := range video.AvailableOn {
		if node, exists := r.nodes[nodeID]; exists && node.IsOnline {
			online++
		}
	}

	return online
}
