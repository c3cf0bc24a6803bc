package hashsig

// Lamport OTP (§4.5): a hash-chain one-time-password scheme. The
// prover walks the chain n -> n-1 -> ... -> 1; the verifier walks it
// in the same direction and accepts at most n values per keypair.

import "crypto/rand"

// LamportProofer holds the long-lived secret and the last challenge
// it replied to.
type LamportProofer struct {
	ctx    *Context
	n      int32
	lastCh int32
	secret []byte
}

// LamportVerifier holds the expected next OTP and the last challenge
// issued.
type LamportVerifier struct {
	ctx     *Context
	lastCh  int32
	lastOTP []byte
}

// NewLamportProofer samples a fresh N-byte secret and initializes a
// chain of length n.
func NewLamportProofer(ctx *Context, n int32) (*LamportProofer, error) {
	secret := make([]byte, ctx.p.N)
	if _, err := rand.Read(secret); err != nil {
		return nil, wrapErrorf(err, "reading CSPRNG seed for Lamport OTP")
	}
	return &LamportProofer{ctx: ctx, n: n, lastCh: n, secret: secret}, nil
}

// PublicKey returns H^n(secret), the chain's anchor value.
func (p *LamportProofer) PublicKey() []byte {
	return hashChain(p.ctx, p.secret, p.n)
}

// Reply returns H^ch(secret) and records ch as the last challenge
// answered.
func (p *LamportProofer) Reply(ch int32) []byte {
	p.lastCh = ch
	return hashChain(p.ctx, p.secret, ch)
}

// NewLamportVerifier constructs a verifier expecting a chain of
// length n anchored at pk.
func NewLamportVerifier(ctx *Context, n int32, pk []byte) *LamportVerifier {
	return &LamportVerifier{ctx: ctx, lastCh: n, lastOTP: pk}
}

// NextChallenge returns the next (strictly smaller) challenge to
// issue: a pre-decrement of the last one.
func (v *LamportVerifier) NextChallenge() int32 {
	v.lastCh--
	return v.lastCh
}

// Verify accepts otp iff H(otp) equals the previously accepted value,
// compared in constant time; on acceptance otp becomes the new
// expected value.
func (v *LamportVerifier) Verify(otp []byte) bool {
	pad := v.ctx.NewScratchPad()
	h := v.ctx.hash(pad, otp)
	if !constantTimeEqual(h, v.lastOTP) {
		return false
	}
	v.lastOTP = otp
	return true
}

// hashChain applies H iteratively x times to input.
func hashChain(ctx *Context, input []byte, x int32) []byte {
	pad := ctx.NewScratchPad()
	output := append([]byte(nil), input...)
	for i := int32(0); i < x; i++ {
		output = ctx.hash(pad, output)
	}
	return output
}
