// Package database maintains the ledger data model: transactions, blocks,
// rewards and the in-memory chain of blocks.
package database

import (
	"fmt"
	"sync"

	"github.com/shabareesh1383/sociora/foundation/blockchain/genesis"
	"github.com/shabareesh1383/sociora/foundation/blockchain/signature"
)

// Database manages the chain of blocks. The reference behavior keeps the
// whole chain in memory; persistence belongs to an external collaborator.
type Database struct {
	mu sync.RWMutex

	genesis     genesis.Genesis
	blocks      []Block
	latestBlock Block

	evHandler func(v string, args ...any)
}

// New constructs a new database for chain management.
func New(gen genesis.Genesis, evHandler func(v string, args ...any)) *Database {
	ev := func(v string, args ...any) {
		if evHandler != nil {
			evHandler(v, args...)
		}
	}

	return &Database{
		genesis:   gen,
		evHandler: ev,
	}
}

// Genesis returns a copy of the genesis information.
func (db *Database) Genesis() genesis.Genesis {
	return db.genesis
}

// =============================================================================

// Write validates the block against the current head and appends it to
// the chain.
func (db *Database) Write(block Block) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if len(db.blocks) == 0 {
		if block.PreviousHash != signature.ZeroHash {
			return fmt.Errorf("first block must link to the zero hash, got %s", block.PreviousHash)
		}

		if block.BlockReward != nil && !block.BlockReward.ValidateDistribution() {
			return fmt.Errorf("block reward distribution does not conserve total %g", block.BlockReward.TotalReward)
		}
	} else {
		if err := block.ValidateBlock(&db.latestBlock, db.evHandler); err != nil {
			return err
		}
	}

	db.evHandler("database: Write: blk[%d]: hash[%s]", block.BlockNumber, block.Hash())

	db.blocks = append(db.blocks, block)
	db.latestBlock = block

	return nil
}

// LatestBlock returns the current head of the chain. The zero value is
// returned for an empty chain.
func (db *Database) LatestBlock() Block {
	db.mu.RLock()
	defer db.mu.RUnlock()

	return db.latestBlock
}

// Height returns the number of blocks in the chain.
func (db *Database) Height() int {
	db.mu.RLock()
	defer db.mu.RUnlock()

	return len(db.blocks)
}

// GetBlock returns the block with the specified number.
func (db *Database) GetBlock(num uint64) (Block, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	for _, block := range db.blocks {
		if block.BlockNumber == num {
			return block, nil
		}
	}

	return Block{}, fmt.Errorf("block %d not found", num)
}

// BlocksByNumber returns a copy of the blocks in the inclusive range. A
// zero 'to' means through the latest block.
func (db *Database) BlocksByNumber(from uint64, to uint64) []Block {
	db.mu.RLock()
	defer db.mu.RUnlock()

	if to == 0 {
		to = db.latestBlock.BlockNumber
	}

	var out []Block
	for _, block := range db.blocks {
		if block.BlockNumber >= from && block.BlockNumber <= to {
			out = append(out, block)
		}
	}

	return out
}
