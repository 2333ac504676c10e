// Package mempool maintains the cache of pending transactions waiting
// for block inclusion.
package mempool

import (
	"fmt"
	"sort"
	"sync"

	"github.com/shabareesh1383/sociora/foundation/blockchain/database"
)

// Mempool represents a cache of pending transactions organized by
// sender:nonce. A re-submission with the same sender and nonce replaces
// the earlier transaction.
type Mempool struct {
	mu   sync.RWMutex
	pool map[string]database.Tx
}

// New constructs a new mempool.
func New() *Mempool {
	return &Mempool{
		pool: make(map[string]database.Tx),
	}
}

// Count returns the current number of transactions in the pool.
func (mp *Mempool) Count() int {
	mp.mu.RLock()
	defer mp.mu.RUnlock()

	return len(mp.pool)
}

// Upsert adds or replaces a transaction in the mempool and returns the
// resulting pool size.
func (mp *Mempool) Upsert(tx database.Tx) int {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	mp.pool[mapKey(tx)] = tx

	return len(mp.pool)
}

// Delete removes a transaction from the mempool.
func (mp *Mempool) Delete(tx database.Tx) {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	delete(mp.pool, mapKey(tx))
}

// Truncate clears all the transactions from the pool.
func (mp *Mempool) Truncate() {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	mp.pool = make(map[string]database.Tx)
}

// PickBest returns up to howMany transactions for the next block in a
// deterministic order: oldest first, transaction id as the tie break.
// Pass -1 for the whole pool.
func (mp *Mempool) PickBest(howMany int) []database.Tx {
	mp.mu.RLock()
	txs := make([]database.Tx, 0, len(mp.pool))
	for _, tx := range mp.pool {
		txs = append(txs, tx)
	}
	mp.mu.RUnlock()

	sort.Slice(txs, func(i, j int) bool {
		if txs[i].Timestamp != txs[j].Timestamp {
			return txs[i].Timestamp < txs[j].Timestamp
		}
		return txs[i].TxID < txs[j].TxID
	})

	if howMany == -1 || howMany > len(txs) {
		howMany = len(txs)
	}

	return txs[:howMany]
}

// =============================================================================

// mapKey is used to generate the map key.
func mapKey(tx database.Tx) string {
	return fmt.Sprintf("%s:%d", tx.SenderPublicKeyHash, tx.Nonce)
}
