package hashsig

// The hash/PRF kit (§4.1, L0 of the dependency table): H, PRF, PRF2
// and hash2, all built over either SHA-2 or SHAKE depending on
// ctx.p.Func.

import (
	"crypto/sha256"
	"crypto/sha512"
	"encoding/binary"

	"golang.org/x/crypto/sha3"
)

// Context binds a Params value to the hash operations every other
// component (WOTS+, MSS, SD-MSS) is built from. A Context has no
// mutable state of its own; scratchPad carries the reusable buffers.
type Context struct {
	p Params
}

// NewContext validates p and returns a ready-to-use Context.
func NewContext(p Params) (*Context, error) {
	if err := p.finish(); err != nil {
		return nil, wrapErrorf(err, "invalid parameters")
	}
	return &Context{p: p}, nil
}

// Params returns the parameter set this Context was built from.
func (ctx *Context) Params() Params { return ctx.p }

// scratchPad carries the hash state used across hash/PRF/chain calls
// in a single sign, verify or update: every copy shares the same
// SHAKE instance. scratchPad is passed by value, so a byte buffer
// grown by buf stays with the copy that grew it; hash2Into and
// prfInto each allocate a fresh one per call.
type scratchPad struct {
	ctx     *Context
	shake   sha3.ShakeHash
	generic []byte
}

// NewScratchPad allocates a scratchPad for repeated use with ctx. Keep
// one per goroutine; scratchPad is not safe for concurrent use.
func (ctx *Context) NewScratchPad() scratchPad {
	pad := scratchPad{ctx: ctx}
	if ctx.p.Func == SHAKE {
		if ctx.p.N <= 16 {
			pad.shake = sha3.NewShake128()
		} else {
			pad.shake = sha3.NewShake256()
		}
	}
	return pad
}

func (pad *scratchPad) buf(n int) []byte {
	if cap(pad.generic) < n {
		pad.generic = make([]byte, n)
	}
	return pad.generic[:n]
}

// hashInto computes H(in) and writes it to out, which must be
// ctx.p.N bytes.
func (ctx *Context) hashInto(pad scratchPad, in, out []byte) {
	switch ctx.p.Func {
	case SHA2:
		switch ctx.p.N {
		case 16:
			sum := sha256.Sum256(in)
			copy(out, sum[:16])
		case 32:
			sum := sha256.Sum256(in)
			copy(out, sum[:])
		case 64:
			sum := sha512.Sum512(in)
			copy(out, sum[:])
		}
	case SHAKE:
		h := pad.shake
		h.Reset()
		h.Write(in)
		h.Read(out[:ctx.p.N])
	}
}

// hash computes H(in) and returns a freshly allocated N-byte result.
func (ctx *Context) hash(pad scratchPad, in []byte) []byte {
	out := make([]byte, ctx.p.N)
	ctx.hashInto(pad, in, out)
	return out
}

// hash2Into computes hash2(a,b) = H(a ∥ b) and writes it to out.
func (ctx *Context) hash2Into(pad scratchPad, a, b, out []byte) {
	buf := pad.buf(len(a) + len(b))
	copy(buf[:len(a)], a)
	copy(buf[len(a):], b)
	ctx.hashInto(pad, buf, out)
}

// hash2 computes hash2(a,b) = H(a ∥ b).
func (ctx *Context) hash2(pad scratchPad, a, b []byte) []byte {
	out := make([]byte, ctx.p.N)
	ctx.hash2Into(pad, a, b, out)
	return out
}

// hash2NInto computes a 2N-byte extendable hash of in, used by the
// PRF2 fast path. Only meaningful for N<=16 under SHA2 (one SHA-256
// call yields exactly 32 = 2*16 bytes); SHAKE supports it for any N.
func (ctx *Context) hash2NInto(pad scratchPad, in, out []byte) {
	if ctx.p.Func == SHA2 {
		sum := sha256.Sum256(in)
		copy(out, sum[:])
		return
	}
	h := pad.shake
	h.Reset()
	h.Write(in)
	h.Read(out)
}

// xorCounterInto builds the "index → PRF input" buffer of §9: a
// copy of seed with be_u32(counter) XORed into its first four bytes,
// written into out (which must be len(seed) bytes).
func xorCounterInto(seed []byte, counter uint32, out []byte) {
	copy(out, seed)
	var cb [4]byte
	binary.BigEndian.PutUint32(cb[:], counter)
	for i := 0; i < 4 && i < len(out); i++ {
		out[i] ^= cb[i]
	}
}

// prfInto computes PRF(seed, counter) and writes it to out.
func (ctx *Context) prfInto(pad scratchPad, seed []byte, counter uint32, out []byte) {
	buf := pad.buf(len(seed))
	xorCounterInto(seed, counter, buf)
	ctx.hashInto(pad, buf, out)
}

// prf computes PRF(seed, counter).
func (ctx *Context) prf(pad scratchPad, seed []byte, counter uint32) []byte {
	out := make([]byte, ctx.p.N)
	ctx.prfInto(pad, seed, counter, out)
	return out
}

// prf2Into computes PRF2(seed, counter), the (key, mask) pair used by
// chain() (§4.1, §9): one hash invocation splits into two halves when
// N<=16, otherwise two PRF calls with counters `counter` and
// `^counter` (bitwise NOT, matching the Rust `!counter`).
func (ctx *Context) prf2Into(pad scratchPad, seed []byte, counter uint32, key, mask []byte) {
	n := ctx.p.N
	if n <= 16 {
		buf := pad.buf(int(n))
		xorCounterInto(seed, counter, buf)
		out2n := make([]byte, 2*n)
		ctx.hash2NInto(pad, buf, out2n)
		copy(key, out2n[:n])
		copy(mask, out2n[n:2*n])
		return
	}
	ctx.prfInto(pad, seed, counter, key)
	ctx.prfInto(pad, seed, ^counter, mask)
}

// prf2 computes PRF2(seed, counter).
func (ctx *Context) prf2(pad scratchPad, seed []byte, counter uint32) (key, mask []byte) {
	n := ctx.p.N
	key = make([]byte, n)
	mask = make([]byte, n)
	ctx.prf2Into(pad, seed, counter, key, mask)
	return
}
