package hashsig

// MSS / Updatable MSS (§4.3, L3): a binary Merkle tree whose leaves
// are WOTS+ public-key hashes, with an online-rotating "next"
// sub-tree so the holder never has to regenerate the whole tree from
// scratch to keep signing.

import (
	"crypto/rand"
	"encoding/binary"
)

// UpdatableMSS is a many-time signing keypair built from 2^Height
// one-time WOTS+ keys. Sign (which runs update) and Reconciliate are
// the only mutators; callers must serialize them on any one keypair.
type UpdatableMSS struct {
	ctx *Context

	Height  uint32
	Caching uint32

	Pk     []byte
	PkNext []byte
	skSeed []byte

	Ctr     uint32
	CtrNext uint32

	Cache     [][]byte
	CacheNext [][]byte

	ServerSideCaching bool
}

// MerkleSignature bundles one WOTS+ signature with the authentication
// path from its leaf to the tree root (empty under server-side
// caching, §4.3).
type MerkleSignature struct {
	ctx *Context

	Index    uint32
	WotsSig  *WotsSignature
	AuthPath [][]byte
}

// NewUpdatableMSS samples a fresh secret seed from the OS CSPRNG and
// builds an UpdatableMSS of the given height and cache depth.
func NewUpdatableMSS(ctx *Context, height, caching uint32, serverSideCaching bool) (*UpdatableMSS, error) {
	skSeed := make([]byte, ctx.p.N)
	if _, err := rand.Read(skSeed); err != nil {
		return nil, wrapErrorf(err, "reading CSPRNG seed for MSS key generation")
	}
	return MSSFromSK(ctx, skSeed, height, caching, serverSideCaching)
}

// MSSFromSK deterministically derives an UpdatableMSS from skSeed.
// Building it requires deriving all 2^height leaves and folding them
// to a root: O(2^height) hash operations.
func MSSFromSK(ctx *Context, skSeed []byte, height, caching uint32, serverSideCaching bool) (*UpdatableMSS, error) {
	if caching > height {
		return nil, errorf("caching (%d) must not exceed height (%d)", caching, height)
	}
	if uint32(len(skSeed)) != ctx.p.N {
		return nil, errorf("sk_seed must be %d bytes, got %d", ctx.p.N, len(skSeed))
	}

	pad := ctx.NewScratchPad()
	numLeaves := uint32(1) << height
	leaves := make([][]byte, numLeaves)
	for i := range leaves {
		leaves[i] = calculateLeaf(ctx, pad, skSeed, uint32(i))
	}
	root, cache := calculateRootAndCache(ctx, pad, leaves, caching)

	mss := &UpdatableMSS{
		ctx:               ctx,
		Height:            height,
		Caching:           caching,
		Pk:                root,
		PkNext:            append([]byte(nil), root...),
		skSeed:            append([]byte(nil), skSeed...),
		Ctr:               0,
		CtrNext:           0,
		Cache:             cache,
		CacheNext:         append([][]byte(nil), cache...),
		ServerSideCaching: serverSideCaching,
	}
	return mss, nil
}

// calculateLeaf computes leaf(seed, i) = WOTS+.from_seed(hash2(seed,
// be_u32(i) padded to N)).pk_hash (§4.3). secret is always exactly N
// bytes by construction, so WotsFromSeed cannot fail here.
func calculateLeaf(ctx *Context, pad scratchPad, seed []byte, index uint32) []byte {
	idxBuf := make([]byte, ctx.p.N)
	binary.BigEndian.PutUint32(idxBuf[:4], index)
	secret := ctx.hash2(pad, seed, idxBuf)
	w, err := WotsFromSeed(ctx, secret)
	if err != nil {
		panic(wrapErrorf(err, "calculateLeaf: internal invariant violated"))
	}
	return w.PkHash
}

// calculateRootAndCache pair-hashes leaves up to a single root,
// snapshotting the layer of exactly 2^caching nodes along the way
// (§4.3). len(leaves) must be a power of two. When caching is 0, no
// layer of size 1 is ever "current" while the fold loop runs (it only
// runs while more than one node remains), so the returned cache is
// empty -- this mirrors the source exactly, not a bug to paper over.
func calculateRootAndCache(ctx *Context, pad scratchPad, leaves [][]byte, caching uint32) ([]byte, [][]byte) {
	if len(leaves) == 0 || len(leaves)&(len(leaves)-1) != 0 {
		panic(errorf("calculateRootAndCache: %d leaves is not a power of two", len(leaves)))
	}

	tmp := leaves
	var cache [][]byte
	for len(tmp) > 1 {
		if uint32(len(tmp)) == uint32(1)<<caching {
			cache = make([][]byte, len(tmp))
			copy(cache, tmp)
		}
		next := make([][]byte, len(tmp)/2)
		for i := range next {
			next[i] = ctx.hash2(pad, tmp[2*i], tmp[2*i+1])
		}
		tmp = next
	}
	return tmp[0], cache
}

// Sign produces a MerkleSignature over msg using the leaf at
// ctr_next, then advances ctr_next and rolls the "next" sub-tree
// forward by one leaf (§4.3).
func (mss *UpdatableMSS) Sign(msg []byte) (*MerkleSignature, error) {
	if mss.CtrNext-mss.Ctr == uint32(1)<<mss.Height {
		return nil, errorf("UpdatableMSS exhausted: ctr_next-ctr reached 2^%d, reconciliate first", mss.Height)
	}

	ctx := mss.ctx
	pad := ctx.NewScratchPad()

	var pkh []byte
	if mss.Caching == mss.Height {
		pkh = mss.Cache[mss.CtrNext-mss.Ctr]
	} else {
		pkh = calculateLeaf(ctx, pad, mss.skSeed, mss.CtrNext)
	}

	idxBuf := make([]byte, ctx.p.N)
	binary.BigEndian.PutUint32(idxBuf[:4], mss.CtrNext)
	leafSeed := ctx.hash2(pad, mss.skSeed, idxBuf)

	wotsSig := signOnce(ctx, msg, leafSeed, pkh)

	rel := mss.CtrNext - mss.Ctr
	var authPath [][]byte
	if !mss.ServerSideCaching {
		authPath = mss.authPath(pad, rel)
	}

	sig := &MerkleSignature{ctx: ctx, Index: rel, WotsSig: wotsSig, AuthPath: authPath}

	mss.CtrNext++
	mss.update(pad)

	return sig, nil
}

// authPath computes the h sibling nodes from leaf `index` to the
// root, reading from the cache where the layer has already been
// snapshotted and recomputing from sk_seed otherwise (§4.3).
func (mss *UpdatableMSS) authPath(pad scratchPad, index uint32) [][]byte {
	ctx := mss.ctx
	path := make([][]byte, mss.Height)

	for i := uint32(0); i < mss.Height; i++ {
		var leaves [][]byte
		if i >= mss.Height-mss.Caching {
			i2 := i - (mss.Height - mss.Caching)
			index2 := index >> (i - i2)
			start := (index2 - index2%(uint32(1)<<i2)) ^ (uint32(1) << i2)
			end := start + (uint32(1) << i2)
			leaves = mss.Cache[start:end]
		} else {
			start := (index - index%(uint32(1)<<i)) ^ (uint32(1) << i)
			end := start + (uint32(1) << i)
			leaves = make([][]byte, 0, end-start)
			for l := start; l < end; l++ {
				leaves = append(leaves, calculateLeaf(ctx, pad, mss.skSeed, mss.Ctr+l))
			}
		}
		root, _ := calculateRootAndCache(ctx, pad, leaves, mss.Caching)
		path[i] = root
	}
	return path
}

// update rolls the "next" view forward by one leaf: with full caching
// (caching==height) this pops the stale leaf and appends the new
// tail, otherwise it regenerates all 2^height leaves of the new
// window from scratch. Either way the window is then folded to a new
// root with 2^height-1 hash2 calls; the full-caching case derives one
// new leaf, the other case 2^height of them. This is the dominant
// cost of Sign (§4.3).
func (mss *UpdatableMSS) update(pad scratchPad) {
	ctx := mss.ctx

	var leaves [][]byte
	if mss.Caching == mss.Height {
		index := mss.CtrNext + (uint32(1)<<mss.Height) - 1
		pkh := calculateLeaf(ctx, pad, mss.skSeed, index)
		next := make([][]byte, len(mss.CacheNext)-1, len(mss.CacheNext))
		copy(next, mss.CacheNext[1:])
		next = append(next, pkh)
		mss.CacheNext = next
		leaves = mss.CacheNext
	} else {
		leaves = make([][]byte, uint32(1)<<mss.Height)
		for i := range leaves {
			leaves[i] = calculateLeaf(ctx, pad, mss.skSeed, mss.CtrNext+uint32(i))
		}
	}

	root, cache := calculateRootAndCache(ctx, pad, leaves, mss.Caching)
	if mss.Caching != mss.Height {
		mss.CacheNext = cache
	}
	mss.PkNext = root

	log.Logf("mss update: height=%d caching=%d ctr_next=%d cache_checksum=%x",
		mss.Height, mss.Caching, mss.CtrNext, cacheChecksum(mss.CacheNext))
}

// Reconciliate atomically promotes the "next" sub-tree to become the
// active public key: an O(1) pointer swap, no I/O (§3.2, §4.3).
// Signatures issued against the old Pk no longer verify afterward.
func (mss *UpdatableMSS) Reconciliate() {
	mss.Cache = mss.CacheNext
	mss.Ctr = mss.CtrNext
	mss.Pk = mss.PkNext
}

// Verify checks sig against msg and the claimed root pk. It verifies
// the inner WOTS+ signature, then folds the authentication path
// upward bit-by-bit from the index, and compares the reconstructed
// root to pk in constant time (§4.3). Under server-side caching,
// AuthPath is empty and pk is expected to be the relevant cache entry
// directly.
func (sig *MerkleSignature) Verify(msg, pk []byte) bool {
	if !sig.WotsSig.Verify(msg) {
		return false
	}
	ctx := sig.ctx
	pad := ctx.NewScratchPad()

	root := sig.WotsSig.PkHash
	for i, node := range sig.AuthPath {
		if sig.Index&(uint32(1)<<uint(i)) == 0 {
			root = ctx.hash2(pad, root, node)
		} else {
			root = ctx.hash2(pad, node, root)
		}
	}
	return constantTimeEqual(root, pk)
}
