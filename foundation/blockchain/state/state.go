// Package state is the core API for the blockchain and implements all the
// business rules and processing.
package state

import (
	"sync"

	"github.com/shabareesh1383/sociora/foundation/blockchain/database"
	"github.com/shabareesh1383/sociora/foundation/blockchain/genesis"
	"github.com/shabareesh1383/sociora/foundation/blockchain/mempool"
	"github.com/shabareesh1383/sociora/foundation/blockchain/storagenet"
)

// EventHandler defines a function that is called when events
// occur in the processing of persisting blocks.
type EventHandler func(v string, args ...any)

// Worker interface represents the behavior required to be implemented by
// any package providing support for background mining against a target
// video.
type Worker interface {
	Shutdown()
	SignalStartMining(videoCID string, creatorID string)
	SignalCancelMining()
}

// =============================================================================

// Config represents the configuration required to start
// the blockchain node.
type Config struct {
	MinerAddress string
	Genesis      genesis.Genesis
	Registry     *storagenet.Registry
	EvHandler    EventHandler
}

// State manages the blockchain database, the mempool and the storage
// network registry.
type State struct {
	mu sync.Mutex

	minerAddress string
	evHandler    EventHandler

	genesis  genesis.Genesis
	mempool  *mempool.Mempool
	db       *database.Database
	registry *storagenet.Registry
	nonces   map[string]uint

	Worker Worker
}

// New constructs a new blockchain for data management.
func New(cfg Config) (*State, error) {

	// Build a safe event handler function for use.
	ev := func(v string, args ...any) {
		if cfg.EvHandler != nil {
			cfg.EvHandler(v, args...)
		}
	}

	if err := cfg.Genesis.Validate(); err != nil {
		return nil, err
	}

	registry := cfg.Registry
	if registry == nil {
		registry = storagenet.NewRegistry()
	}

	state := State{
		minerAddress: cfg.MinerAddress,
		evHandler:    ev,

		genesis:  cfg.Genesis,
		mempool:  mempool.New(),
		db:       database.New(cfg.Genesis, ev),
		registry: registry,
		nonces:   make(map[string]uint),
	}

	// The Worker is not set here. The call to worker.Run will assign itself
	// and start everything up and running for the node.

	return &state, nil
}

// Shutdown cleanly brings the node down.
func (s *State) Shutdown() error {
	s.evHandler("state: shutdown: started")
	defer s.evHandler("state: shutdown: completed")

	// Stop all blockchain writing activity.
	if s.Worker != nil {
		s.Worker.Shutdown()
	}

	return nil
}

// =============================================================================

// Genesis returns a copy of the genesis information.
func (s *State) Genesis() genesis.Genesis {
	return s.genesis
}

// MinerAddress returns the hashed address this node mines under.
func (s *State) MinerAddress() string {
	return s.minerAddress
}

// LatestBlock returns the current head of the chain.
func (s *State) LatestBlock() database.Block {
	return s.db.LatestBlock()
}

// Height returns the number of blocks in the chain.
func (s *State) Height() int {
	return s.db.Height()
}

// GetBlock returns the block with the specified number.
func (s *State) GetBlock(num uint64) (database.Block, error) {
	return s.db.GetBlock(num)
}

// BlocksByNumber returns the blocks in the inclusive range. A zero 'to'
// means through the latest block.
func (s *State) BlocksByNumber(from uint64, to uint64) []database.Block {
	return s.db.BlocksByNumber(from, to)
}

// MempoolCount returns the current number of pending transactions.
func (s *State) MempoolCount() int {
	return s.mempool.Count()
}

// Mempool returns a copy of the pending transactions in deterministic
// order.
func (s *State) Mempool() []database.Tx {
	return s.mempool.PickBest(-1)
}

// =============================================================================

// RegisterNode adds or replaces a storage node on the network.
func (s *State) RegisterNode(nodeID string, address string, region string, capacity int64, reputation float64) storagenet.StorageNode {
	s.evHandler("state: RegisterNode: node[%s] region[%s]", nodeID, region)

	return s.registry.RegisterNode(nodeID, address, region, capacity, reputation)
}

// StoreReplica records that the node holds a copy of the video.
func (s *State) StoreReplica(videoCID string, nodeID string) bool {
	s.evHandler("state: StoreReplica: video[%s] node[%s]", videoCID, nodeID)

	return s.registry.StoreReplica(videoCID, nodeID)
}

// TranscodeVideo records the transcoded renditions for the video.
func (s *State) TranscodeVideo(videoCID string, profiles []storagenet.TranscodingProfile) bool {
	s.evHandler("state: TranscodeVideo: video[%s] profiles[%d]", videoCID, len(profiles))

	return s.registry.TranscodeVideo(videoCID, profiles)
}

// VerifyStorage attests the video's storage and transcoding state at the
// current moment.
func (s *State) VerifyStorage(videoCID string) bool {
	s.evHandler("state: VerifyStorage: video[%s]", videoCID)

	return s.registry.VerifyStorage(videoCID, s.genesis.MinReplicas)
}

// OfflineNode marks a storage node offline.
func (s *State) OfflineNode(nodeID string) bool {
	s.evHandler("state: OfflineNode: node[%s]", nodeID)

	return s.registry.OfflineNode(nodeID)
}

// Video returns a snapshot of the video's metadata.
func (s *State) Video(videoCID string) (storagenet.VideoMetadata, bool) {
	return s.registry.Video(videoCID)
}

// Nodes returns a snapshot of all registered storage nodes.
func (s *State) Nodes() map[string]storagenet.StorageNode {
	return s.registry.Nodes()
}

// OnlineReplicas returns the number of online nodes holding the video.
func (s *State) OnlineReplicas(videoCID string) int {
	return s.registry.OnlineReplicas(videoCID)
}

// =============================================================================

// nextNonce returns the next nonce for transactions this node creates on
// behalf of the sender. The mempool keys entries by sender:nonce, so two
// uploads from one creator must never share a nonce.
func (s *State) nextNonce(sender string) uint {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nonces[sender]++
	return s.nonces[sender]
}
