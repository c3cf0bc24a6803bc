package hashsig

// SD-MSS (§4.4, L4): a shallow/deep composition of two UpdatableMSS
// trees sharing one secret seed, with a small fast tree consumed
// first and a large tree used as fallback once the shallow tree is
// exhausted.

import "crypto/rand"

// SDMSSKeypair composes a shallow tree (server-side caching enabled,
// exhausted first) and a deep tree (fallback, larger, client-side
// caching).
type SDMSSKeypair struct {
	ctx    *Context
	skSeed []byte

	Shallow *UpdatableMSS
	Deep    *UpdatableMSS
}

// SDMSSSignature dispatches verification to the shallow or deep
// public key depending on Deep, and carries the acknowledged-by-signer
// counters the verifier should echo back on the next Sign call.
type SDMSSSignature struct {
	Deep          bool
	NewShallowCtr uint32
	NewDeepCtr    uint32
	MerkleSig     *MerkleSignature
}

// NewSDMSSKeypair samples a fresh secret seed and builds a shallow
// tree of height/caching shallowHeight and a deep tree of height
// deepHeight with caching deepCaching.
func NewSDMSSKeypair(ctx *Context, shallowHeight, deepHeight, deepCaching uint32) (*SDMSSKeypair, error) {
	skSeed := make([]byte, ctx.p.N)
	if _, err := rand.Read(skSeed); err != nil {
		return nil, wrapErrorf(err, "reading CSPRNG seed for SD-MSS key generation")
	}
	return SDMSSFromSK(ctx, skSeed, shallowHeight, deepHeight, deepCaching)
}

// SDMSSFromSK deterministically derives an SD-MSS keypair from
// skSeed. shallow.sk_seed = H(sk_seed ∥ "shallow") and deep.sk_seed =
// H(sk_seed ∥ "deep"), both truncated to N bytes (§3.1).
func SDMSSFromSK(ctx *Context, skSeed []byte, shallowHeight, deepHeight, deepCaching uint32) (*SDMSSKeypair, error) {
	if uint32(len(skSeed)) != ctx.p.N {
		return nil, errorf("sk_seed must be %d bytes, got %d", ctx.p.N, len(skSeed))
	}
	pad := ctx.NewScratchPad()

	shallowSeed := ctx.hash2(pad, skSeed, []byte("shallow"))
	deepSeed := ctx.hash2(pad, skSeed, []byte("deep"))

	shallow, err := MSSFromSK(ctx, shallowSeed, shallowHeight, shallowHeight, true)
	if err != nil {
		return nil, wrapErrorf(err, "building shallow tree")
	}
	deep, err := MSSFromSK(ctx, deepSeed, deepHeight, deepCaching, false)
	if err != nil {
		return nil, wrapErrorf(err, "building deep tree")
	}

	return &SDMSSKeypair{
		ctx:     ctx,
		skSeed:  append([]byte(nil), skSeed...),
		Shallow: shallow,
		Deep:    deep,
	}, nil
}

// Sign signs msg, preferring the shallow subtree and falling back to
// the deep subtree once the shallow tree is used up (§4.4). The
// remote counters are the shallow/deep ctr_next values the verifier
// last acknowledged; when they match this keypair's current ctr_next,
// the corresponding subtree is reconciliated before signing.
func (kp *SDMSSKeypair) Sign(msg []byte, remoteShallowCtr, remoteDeepCtr uint32) (*SDMSSSignature, error) {
	if remoteShallowCtr == kp.Shallow.CtrNext {
		kp.Shallow.Reconciliate()
	}
	if remoteDeepCtr == kp.Deep.CtrNext {
		kp.Deep.Reconciliate()
	}

	used := kp.Shallow.CtrNext - kp.Shallow.Ctr
	capacity := uint32(1) << kp.Shallow.Height

	switch {
	case used > capacity:
		// By construction Sign never lets ctr_next-ctr exceed
		// capacity, so this is unreachable; treat as an assertion,
		// not a recoverable condition (§9: "possible source-side
		// bug", preserved here as a guard rather than logic).
		panic(errorf("SD-MSS invariant violated: shallow tree used %d > capacity %d", used, capacity))
	case used < capacity:
		sig, err := kp.Shallow.Sign(msg)
		if err != nil {
			return nil, err
		}
		return &SDMSSSignature{
			Deep:          false,
			NewShallowCtr: kp.Shallow.CtrNext,
			NewDeepCtr:    kp.Deep.CtrNext,
			MerkleSig:     sig,
		}, nil
	default:
		sig, err := kp.Deep.Sign(msg)
		if err != nil {
			return nil, err
		}
		return &SDMSSSignature{
			Deep:          true,
			NewShallowCtr: kp.Shallow.CtrNext,
			NewDeepCtr:    kp.Deep.CtrNext,
			MerkleSig:     sig,
		}, nil
	}
}

// Verify dispatches to the shallow or deep public key per sig.Deep.
func (sig *SDMSSSignature) Verify(msg, shallowPk, deepPk []byte) bool {
	if sig.Deep {
		return sig.MerkleSig.Verify(msg, deepPk)
	}
	return sig.MerkleSig.Verify(msg, shallowPk)
}
