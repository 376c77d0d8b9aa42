package cinit

// blockPool recycles scratch Block buffers. Initializers recursively
// need arbitrarily many of them (one per union arm evaluated, one per
// nested values stream), so allocation churn would otherwise dominate.
// This is process-local, single-threaded state: no lock is needed,
// and FinalizePool resets it between compilation units.
var blockFreeList []*Block

// AcquireBlock implements get_initializer_block(): returns a fresh or
// recycled empty Block.
func AcquireBlock() *Block {
	n := len(blockFreeList)
	if n == 0 {
		return &Block{}
	}
	b := blockFreeList[n-1]
	blockFreeList = blockFreeList[:n-1]
	return b
}

// ReleaseBlock implements release_initializer_block(block): asserts
// the block has no pending expression or label, empties its code, and
// returns it to the free list.
func ReleaseBlock(b *Block) {
	if b.HasInitValue {
		panic("cinit: releasing a block with a pending initializer value")
	}
	if b.Label != "" {
		panic("cinit: releasing a labeled block")
	}
	b.Code = b.Code[:0]
	b.Expr = nil
	blockFreeList = append(blockFreeList, b)
}

// FinalizePool clears the free list. Exposed alongside the single
// public entry point, to be called once per compilation unit.
func FinalizePool() {
	blockFreeList = nil
}
