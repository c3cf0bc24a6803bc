package hashsig

// Park OTP (§4.6): a hash-chain OTP scheme dual to Lamport OTP, with
// challenges increasing monotonically and each reply carrying a
// pre-committed value (z) that binds it to the next reply.

import (
	"crypto/rand"
	"encoding/binary"
)

// ParkProofer derives its chain values from a single secret seed via
// deriveX, rather than storing the whole chain.
type ParkProofer struct {
	ctx    *Context
	seed   []byte
	lastCh int32
	currX  []byte
	nextX  []byte
}

// ParkVerifier holds the commitments from the last accepted reply.
type ParkVerifier struct {
	ctx    *Context
	lastCh int32
	lastY  []byte
	lastZ  []byte
}

// NewParkProofer samples a fresh N-byte seed and derives the first two
// chain values.
func NewParkProofer(ctx *Context) (*ParkProofer, error) {
	seed := make([]byte, ctx.p.N)
	if _, err := rand.Read(seed); err != nil {
		return nil, wrapErrorf(err, "reading CSPRNG seed for Park OTP")
	}
	pad := ctx.NewScratchPad()
	return &ParkProofer{
		ctx:    ctx,
		seed:   seed,
		lastCh: 0,
		currX:  deriveX(ctx, pad, seed, 1),
		nextX:  deriveX(ctx, pad, seed, 2),
	}, nil
}

// PublicKey returns (y0, z0) = (H(current_x), calculateZ(current_x,
// H(next_x))). It must only be called before any Reply.
func (p *ParkProofer) PublicKey() ([]byte, []byte) {
	if p.lastCh != 0 {
		panic(errorf("ParkProofer.PublicKey called after Reply: last_ch=%d", p.lastCh))
	}
	pad := p.ctx.NewScratchPad()
	y0 := p.ctx.hash(pad, p.currX)
	z0 := calculateZ(p.ctx, pad, p.currX, p.ctx.hash(pad, p.nextX))
	return y0, z0
}

// Reply answers challenge ch, advancing the chain. It records ch as
// the last challenge answered before computing anything else, the
// same order the reference implementation uses.
func (p *ParkProofer) Reply(ch int32) (x, y, z []byte) {
	p.lastCh = ch
	pad := p.ctx.NewScratchPad()

	x = p.currX
	y = p.ctx.hash(pad, p.nextX)

	p.currX = p.nextX
	p.nextX = deriveX(p.ctx, pad, p.seed, p.lastCh+2)

	nextY := p.ctx.hash(pad, p.nextX)
	z = calculateZ(p.ctx, pad, p.currX, nextY)
	return x, y, z
}

// NewParkVerifier constructs a verifier expecting the first reply to
// be challenge 1, anchored at (y0, z0) from PublicKey.
func NewParkVerifier(ctx *Context, y0, z0 []byte) *ParkVerifier {
	return &ParkVerifier{ctx: ctx, lastCh: 0, lastY: y0, lastZ: z0}
}

// NextChallenge returns the next (strictly larger) challenge to
// issue: a pre-increment of the last one.
func (v *ParkVerifier) NextChallenge() int32 {
	v.lastCh++
	return v.lastCh
}

// Verify accepts (x, y, z) iff H(x) equals the previously committed y
// and calculateZ(x, y) equals the previously committed z, both
// compared in constant time; on acceptance y and z become the new
// expected commitments.
func (v *ParkVerifier) Verify(x, y, z []byte) bool {
	pad := v.ctx.NewScratchPad()
	if !constantTimeEqual(v.ctx.hash(pad, x), v.lastY) {
		return false
	}
	if !constantTimeEqual(calculateZ(v.ctx, pad, x, y), v.lastZ) {
		return false
	}
	v.lastY = y
	v.lastZ = z
	return true
}

// deriveX computes the i-th chain anchor as a double hash of seed and
// i, H(H(seed ∥ be_i32(i))).
func deriveX(ctx *Context, pad scratchPad, seed []byte, i int32) []byte {
	buf := make([]byte, len(seed)+4)
	copy(buf, seed)
	binary.BigEndian.PutUint32(buf[len(seed):], uint32(i))
	return ctx.hash(pad, ctx.hash(pad, buf))
}

// calculateZ binds x to y: z = H(x ∥ y).
func calculateZ(ctx *Context, pad scratchPad, x, y []byte) []byte {
	return ctx.hash2(pad, x, y)
}
