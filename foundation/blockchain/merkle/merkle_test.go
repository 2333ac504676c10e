package merkle_test

import (
	"crypto/sha256"
	"testing"

	"github.com/shabareesh1383/sociora/foundation/blockchain/merkle"
)

// Success and failure markers.
const (
	success = "✓"
	failed  = "✗"
)

// payload implements the Hashable interface for testing.
type payload struct {
	Value string
}

func (p payload) Hash() ([]byte, error) {
	h := sha256.Sum256([]byte(p.Value))
	return h[:], nil
}

func (p payload) Equals(other payload) bool {
	return p.Value == other.Value
}

// =============================================================================

func Test_Tree(t *testing.T) {
	values := []payload{{"alpha"}, {"beta"}, {"gamma"}}

	t.Log("Given the need to commit to an ordered set of values.")
	{
		t.Logf("\tTest 0:\tWhen constructing a tree over an odd number of values.")
		{
			tree, err := merkle.NewTree(values)
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to construct the tree: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould be able to construct the tree.", success)

			if err := tree.Verify(); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould verify the tree: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould verify the tree.", success)

			if len(tree.Values()) != len(values) {
				t.Fatalf("\t%s\tTest 0:\tShould return the original values without padding.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould return the original values without padding.", success)
		}

		t.Logf("\tTest 1:\tWhen proving membership of a value.")
		{
			tree, err := merkle.NewTree(values)
			if err != nil {
				t.Fatalf("\t%s\tTest 1:\tShould be able to construct the tree: %v", failed, err)
			}

			if _, _, err := tree.Proof(values[1]); err != nil {
				t.Fatalf("\t%s\tTest 1:\tShould produce a proof for a member: %v", failed, err)
			}
			t.Logf("\t%s\tTest 1:\tShould produce a proof for a member.", success)

			if err := tree.VerifyData(values[1]); err != nil {
				t.Fatalf("\t%s\tTest 1:\tShould verify the member's critical path: %v", failed, err)
			}
			t.Logf("\t%s\tTest 1:\tShould verify the member's critical path.", success)

			if _, _, err := tree.Proof(payload{"stranger"}); err == nil {
				t.Fatalf("\t%s\tTest 1:\tShould not produce a proof for a non member.", failed)
			}
			t.Logf("\t%s\tTest 1:\tShould not produce a proof for a non member.", success)
		}

		t.Logf("\tTest 2:\tWhen reordering the values.")
		{
			t1, err := merkle.NewTree(values)
			if err != nil {
				t.Fatalf("\t%s\tTest 2:\tShould be able to construct the tree: %v", failed, err)
			}

			t2, err := merkle.NewTree([]payload{{"gamma"}, {"beta"}, {"alpha"}})
			if err != nil {
				t.Fatalf("\t%s\tTest 2:\tShould be able to construct the tree: %v", failed, err)
			}

			if t1.RootHex() == t2.RootHex() {
				t.Fatalf("\t%s\tTest 2:\tShould commit to the order of the values.", failed)
			}
			t.Logf("\t%s\tTest 2:\tShould commit to the order of the values.", success)
		}
	}
}
