package mempool_test

import (
	"testing"

	"github.com/shabareesh1383/sociora/foundation/blockchain/database"
	"github.com/shabareesh1383/sociora/foundation/blockchain/mempool"
	"github.com/shabareesh1383/sociora/foundation/blockchain/signature"
)

// Success and failure markers.
const (
	success = "✓"
	failed  = "✗"
)

func newTx(t *testing.T, sender string, nonce uint, amount float64) database.Tx {
	t.Helper()

	tx, err := database.NewTx(database.TxInfo{
		TxType:              database.TxTypeInvestment,
		SenderPublicKeyHash: signature.HashString(sender),
		CreatorID:           signature.HashString("creator"),
		Amount:              amount,
		Nonce:               nonce,
	})
	if err != nil {
		t.Fatalf("\t%s\tShould be able to create a transaction: %v", failed, err)
	}

	return tx
}

// =============================================================================

func Test_Mempool(t *testing.T) {
	t.Log("Given the need to manage the pending transaction pool.")
	{
		mp := mempool.New()

		t.Logf("\tTest 0:\tWhen adding transactions from different senders.")
		{
			tx1 := newTx(t, "alice", 1, 10)
			tx2 := newTx(t, "bob", 1, 20)

			mp.Upsert(tx1)
			if count := mp.Upsert(tx2); count != 2 {
				t.Fatalf("\t%s\tTest 0:\tShould hold two transactions, got %d.", failed, count)
			}
			t.Logf("\t%s\tTest 0:\tShould hold two transactions.", success)
		}

		t.Logf("\tTest 1:\tWhen re-submitting the same sender and nonce.")
		{
			tx := newTx(t, "alice", 1, 99)

			if count := mp.Upsert(tx); count != 2 {
				t.Fatalf("\t%s\tTest 1:\tShould replace instead of grow, got %d.", failed, count)
			}
			t.Logf("\t%s\tTest 1:\tShould replace instead of grow.", success)

			var found bool
			for _, pick := range mp.PickBest(-1) {
				if pick.SenderPublicKeyHash == signature.HashString("alice") && pick.Amount == 99 {
					found = true
				}
			}
			if !found {
				t.Fatalf("\t%s\tTest 1:\tShould keep the newest transaction.", failed)
			}
			t.Logf("\t%s\tTest 1:\tShould keep the newest transaction.", success)
		}

		t.Logf("\tTest 2:\tWhen picking transactions for a block.")
		{
			picks := mp.PickBest(-1)
			if len(picks) != 2 {
				t.Fatalf("\t%s\tTest 2:\tShould pick the whole pool, got %d.", failed, len(picks))
			}
			t.Logf("\t%s\tTest 2:\tShould pick the whole pool.", success)

			again := mp.PickBest(-1)
			for i := range picks {
				if picks[i].TxID != again[i].TxID {
					t.Fatalf("\t%s\tTest 2:\tShould produce a deterministic order.", failed)
				}
			}
			t.Logf("\t%s\tTest 2:\tShould produce a deterministic order.", success)

			if len(mp.PickBest(1)) != 1 {
				t.Fatalf("\t%s\tTest 2:\tShould honor the pick limit.", failed)
			}
			t.Logf("\t%s\tTest 2:\tShould honor the pick limit.", success)
		}

		t.Logf("\tTest 3:\tWhen deleting and truncating.")
		{
			picks := mp.PickBest(-1)
			mp.Delete(picks[0])
			if mp.Count() != 1 {
				t.Fatalf("\t%s\tTest 3:\tShould hold one transaction after delete, got %d.", failed, mp.Count())
			}
			t.Logf("\t%s\tTest 3:\tShould hold one transaction after delete.", success)

			mp.Truncate()
			if mp.Count() != 0 {
				t.Fatalf("\t%s\tTest 3:\tShould be empty after truncate, got %d.", failed, mp.Count())
			}
			t.Logf("\t%s\tTest 3:\tShould be empty after truncate.", success)
		}
	}
}
