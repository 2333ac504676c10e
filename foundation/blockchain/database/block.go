package database

import (
	"fmt"

	"github.com/shabareesh1383/sociora/foundation/blockchain/merkle"
	"github.com/shabareesh1383/sociora/foundation/blockchain/reward"
	"github.com/shabareesh1383/sociora/foundation/blockchain/signature"
)

// BlockInfo carries the caller supplied fields for constructing a block.
type BlockInfo struct {
	BlockNumber  uint64
	MinerAddress string
	PreviousHash string
	Difficulty   uint
	ProofOfWork  uint64
	Transactions []Tx
}

// Block aggregates validated transactions, the miner's storage proofs and
// the reward distribution. The block hash commits to every field except
// itself; any mutation after hashing invalidates the cached hash so a
// stale hash can never stand.
type Block struct {
	BlockNumber  uint64            `json:"block_number"`
	Timestamp    string            `json:"timestamp"`
	MinerAddress string            `json:"miner_address"`
	PreviousHash string            `json:"previous_hash"`
	Transactions []Tx              `json:"transactions"`
	VideoProofs  map[string]string `json:"video_proofs"`
	ProofOfWork  uint64            `json:"proof_of_work"`
	Difficulty   uint              `json:"difficulty"`
	BlockReward  *BlockReward      `json:"block_reward,omitempty"`
	Metadata     map[string]any    `json:"metadata,omitempty"`

	blockHash string
}

// NewBlock constructs a new block for the specified transactions. The
// parent of the first block in a chain is the zero hash.
func NewBlock(info BlockInfo) Block {
	previousHash := info.PreviousHash
	if previousHash == "" {
		previousHash = signature.ZeroHash
	}

	return Block{
		BlockNumber:  info.BlockNumber,
		Timestamp:    signature.Now(),
		MinerAddress: info.MinerAddress,
		PreviousHash: previousHash,
		Transactions: info.Transactions,
		VideoProofs:  make(map[string]string),
		ProofOfWork:  info.ProofOfWork,
		Difficulty:   info.Difficulty,
		Metadata:     make(map[string]any),
	}
}

// =============================================================================

// blockSeal is the canonical form the block hash commits to. Transactions
// are committed by their merkle root, not full re-serialization, to bound
// the hashing cost.
type blockSeal struct {
	BlockNumber  uint64            `json:"block_number"`
	Timestamp    string            `json:"timestamp"`
	MinerAddress string            `json:"miner_address"`
	PreviousHash string            `json:"previous_hash"`
	TransRoot    string            `json:"trans_root"`
	VideoProofs  map[string]string `json:"video_proofs"`
	ProofOfWork  uint64            `json:"proof_of_work"`
	Difficulty   uint              `json:"difficulty"`
	BlockReward  *BlockReward      `json:"block_reward"`
	Metadata     map[string]any    `json:"metadata"`
}

// Hash returns the content hash of the block, computing and caching it on
// first access.
func (b *Block) Hash() string {
	if b.blockHash == "" {
		b.blockHash = b.ComputeHash()
	}

	return b.blockHash
}

// ComputeHash computes the block hash over every field except the hash
// itself. The hash is order sensitive on the transaction sequence through
// the merkle root.
func (b *Block) ComputeHash() string {
	seal := blockSeal{
		BlockNumber:  b.BlockNumber,
		Timestamp:    b.Timestamp,
		MinerAddress: b.MinerAddress,
		PreviousHash: b.PreviousHash,
		TransRoot:    b.TransRoot(),
		VideoProofs:  b.VideoProofs,
		ProofOfWork:  b.ProofOfWork,
		Difficulty:   b.Difficulty,
		BlockReward:  b.BlockReward,
		Metadata:     b.Metadata,
	}

	return signature.Hash(seal)
}

// TransRoot returns the merkle root over the ordered transaction hashes.
// A block with no transactions commits to the zero hash.
func (b *Block) TransRoot() string {
	if len(b.Transactions) == 0 {
		return signature.ZeroHash
	}

	tree, err := merkle.NewTree(b.Transactions)
	if err != nil {
		return signature.ZeroHash
	}

	return tree.RootHex()
}

// =============================================================================

// AddTransaction appends a transaction to the block and invalidates any
// previously cached hash.
func (b *Block) AddTransaction(tx Tx) {
	b.Transactions = append(b.Transactions, tx)
	b.blockHash = ""
}

// AddStorageProof records a miner's proof of storage for a video into the
// block and invalidates any previously cached hash.
func (b *Block) AddStorageProof(videoCID string, minerSignature string) {
	if b.VideoProofs == nil {
		b.VideoProofs = make(map[string]string)
	}

	b.VideoProofs[videoCID] = minerSignature
	b.blockHash = ""
}

// SetMetadata records an open key/value pair on the block and invalidates
// any previously cached hash.
func (b *Block) SetMetadata(key string, value any) {
	if b.Metadata == nil {
		b.Metadata = make(map[string]any)
	}

	b.Metadata[key] = value
	b.blockHash = ""
}

// =============================================================================

// FeeReward returns the fees collected by this block: the sum of gas price
// times gas units over the contained transactions, at 8 decimal precision.
func (b *Block) FeeReward() float64 {
	var fees float64
	for _, tx := range b.Transactions {
		fees += tx.GasPrice * float64(tx.GasUnits)
	}

	return reward.Round8(fees)
}

// GenerateReward creates the reward distribution for this block from the
// base subsidy plus the fees collected by the contained transactions. The
// reward is part of the committed state, so the cached hash is invalidated.
func (b *Block) GenerateReward(baseSubsidy float64, pcts reward.Percentages, addrs BeneficiaryAddresses) (BlockReward, error) {
	br, err := NewBlockReward(baseSubsidy, b.FeeReward(), pcts, addrs)
	if err != nil {
		return BlockReward{}, err
	}

	b.BlockReward = &br
	b.blockHash = ""

	return br, nil
}

// =============================================================================

// ValidateBlock takes a block and validates it to be included into the
// chain after the specified parent.
func (b *Block) ValidateBlock(previous *Block, evHandler func(v string, args ...any)) error {
	ev := func(v string, args ...any) {
		if evHandler != nil {
			evHandler(v, args...)
		}
	}

	ev("database: ValidateBlock: blk[%d]: check: block number is the next number", b.BlockNumber)

	nextNumber := previous.BlockNumber + 1
	if b.BlockNumber != nextNumber {
		return fmt.Errorf("this block is not the next number, got %d, exp %d", b.BlockNumber, nextNumber)
	}

	ev("database: ValidateBlock: blk[%d]: check: parent hash matches parent block", b.BlockNumber)

	if b.PreviousHash != previous.Hash() {
		return fmt.Errorf("parent block hash doesn't match our known parent, got %s, exp %s", b.PreviousHash, previous.Hash())
	}

	ev("database: ValidateBlock: blk[%d]: check: reward conserves value", b.BlockNumber)

	if b.BlockReward != nil && !b.BlockReward.ValidateDistribution() {
		return fmt.Errorf("block reward distribution does not conserve total %g", b.BlockReward.TotalReward)
	}

	return nil
}

// String implements the fmt.Stringer interface for logging.
func (b *Block) String() string {
	return fmt.Sprintf("blk[%d] txs[%d] prev[%s]", b.BlockNumber, len(b.Transactions), b.PreviousHash)
}

// =============================================================================

// BlockData is the serialized form of a block. The embedded hash is
// advisory: reconstruction recomputes it and rejects a mismatch.
type BlockData struct {
	Hash         string            `json:"hash"`
	BlockNumber  uint64            `json:"block_number"`
	Timestamp    string            `json:"timestamp"`
	MinerAddress string            `json:"miner_address"`
	PreviousHash string            `json:"previous_hash"`
	Trans        []TxData          `json:"transactions"`
	VideoProofs  map[string]string `json:"video_proofs"`
	ProofOfWork  uint64            `json:"proof_of_work"`
	Difficulty   uint              `json:"difficulty"`
	BlockReward  *BlockReward      `json:"block_reward,omitempty"`
	Metadata     map[string]any    `json:"metadata,omitempty"`
}

// NewBlockData constructs the serializable form of the block.
func NewBlockData(block Block) BlockData {
	trans := make([]TxData, len(block.Transactions))
	for i, tx := range block.Transactions {
		trans[i] = NewTxData(tx)
	}

	return BlockData{
		Hash:         block.Hash(),
		BlockNumber:  block.BlockNumber,
		Timestamp:    block.Timestamp,
		MinerAddress: block.MinerAddress,
		PreviousHash: block.PreviousHash,
		Trans:        trans,
		VideoProofs:  block.VideoProofs,
		ProofOfWork:  block.ProofOfWork,
		Difficulty:   block.Difficulty,
		BlockReward:  block.BlockReward,
		Metadata:     block.Metadata,
	}
}

// ToBlock converts the serialized form back into a block, validating the
// contained transactions and verifying the declared block hash.
func ToBlock(data BlockData) (Block, error) {
	trans := make([]Tx, len(data.Trans))
	for i, txData := range data.Trans {
		tx, err := ToTx(txData)
		if err != nil {
			return Block{}, fmt.Errorf("transaction %d: %w", i, err)
		}
		trans[i] = tx
	}

	block := Block{
		BlockNumber:  data.BlockNumber,
		Timestamp:    data.Timestamp,
		MinerAddress: data.MinerAddress,
		PreviousHash: data.PreviousHash,
		Transactions: trans,
		VideoProofs:  data.VideoProofs,
		ProofOfWork:  data.ProofOfWork,
		Difficulty:   data.Difficulty,
		BlockReward:  data.BlockReward,
		Metadata:     data.Metadata,
	}

	if data.Hash != "" && data.Hash != block.ComputeHash() {
		return Block{}, fmt.Errorf("block hash mismatch, declared %s", data.Hash)
	}

	return block, nil
}
