package hashsig

// WOTS+: a Winternitz one-time signature with per-chain keys and
// masks derived from a public seed (§4.2). A Wots keypair must sign
// at most one message; nothing in this package enforces that, per
// §3.2 and §7 the caller is obliged to.

// Wots is a WOTS+ keypair derived from a secret seed.
type Wots struct {
	ctx    *Context
	PkHash []byte // H(pk_seed ∥ end_0 ∥ ... ∥ end_{L-1})
	PkSeed []byte
	skSeed []byte
}

// WotsSignature is a WOTS+ signature: the claimed public key plus one
// chain value per chain index.
type WotsSignature struct {
	ctx       *Context
	PkHash    []byte
	PkSeed    []byte
	Signature [][]byte // length L, each N bytes
}

// WotsFromSeed deterministically derives a WOTS+ keypair from skSeed,
// which must be ctx.Params().N bytes of high-entropy, secret randomness.
func WotsFromSeed(ctx *Context, skSeed []byte) (*Wots, error) {
	p := ctx.Params()
	if uint32(len(skSeed)) != p.N {
		return nil, errorf("sk_seed must be %d bytes, got %d", p.N, len(skSeed))
	}
	pad := ctx.NewScratchPad()

	pkSeed := ctx.prf(pad, skSeed, p.L)

	ends := make([]byte, p.N) // growth buffer for H(pk_seed ∥ ends...)
	concatBuf := make([]byte, p.N+p.N*p.L)
	copy(concatBuf[:p.N], pkSeed)
	for i := uint32(0); i < p.L; i++ {
		sk := ctx.prf(pad, skSeed, i)
		end := ctx.chain(pad, sk, uint16(p.W-1), i, 0, pkSeed)
		copy(concatBuf[p.N+i*p.N:], end)
	}
	ctx.hashInto(pad, concatBuf, ends)

	return &Wots{
		ctx:    ctx,
		PkHash: ends,
		PkSeed: pkSeed,
		skSeed: append([]byte(nil), skSeed...),
	}, nil
}

// Sign signs msg once, consuming the keypair's one-time security.
func (w *Wots) Sign(msg []byte) *WotsSignature {
	return signOnce(w.ctx, msg, w.skSeed, w.PkHash)
}

// signOnce signs msg under skSeed without needing a Wots keypair
// object, generating the public seed and chain secrets on the fly.
// Used directly by MSS, where the leaf seed is derived per-signature
// rather than held in a long-lived Wots value.
func signOnce(ctx *Context, msg, skSeed, pkHash []byte) *WotsSignature {
	p := ctx.Params()
	pad := ctx.NewScratchPad()

	pkSeed := ctx.prf(pad, skSeed, p.L)
	cycles := ctx.cyclesForMsg(pad, msg, pkHash)

	sig := make([][]byte, p.L)
	for i := uint32(0); i < p.L; i++ {
		sk := ctx.prf(pad, skSeed, i)
		sig[i] = ctx.chain(pad, sk, cycles[i], i, 0, pkSeed)
	}

	return &WotsSignature{
		ctx:       ctx,
		PkHash:    pkHash,
		PkSeed:    pkSeed,
		Signature: sig,
	}
}

// Verify recomputes the claimed public key hash from sig and msg and
// compares it against sig.PkHash in constant time. Verification is
// total: it never panics or errors, only returns false (§4.2, §7).
func (sig *WotsSignature) Verify(msg []byte) bool {
	ctx := sig.ctx
	p := ctx.Params()
	if uint32(len(sig.Signature)) != p.L {
		return false
	}
	pad := ctx.NewScratchPad()
	cycles := ctx.cyclesForMsg(pad, msg, sig.PkHash)

	concatBuf := make([]byte, p.N+p.N*p.L)
	copy(concatBuf[:p.N], sig.PkSeed)
	for i := uint32(0); i < p.L; i++ {
		end := ctx.chain(pad, sig.Signature[i], uint16(p.W)-1-cycles[i], i, cycles[i], sig.PkSeed)
		copy(concatBuf[p.N+i*p.N:], end)
	}
	pkHash := ctx.hash(pad, concatBuf)
	return constantTimeEqual(pkHash, sig.PkHash)
}
