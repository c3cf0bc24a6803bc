package hashsig

import "encoding/binary"

// baseW returns length digits in base W derived from bytes, per §4.1.
// Digit extraction proceeds from the least-significant byte of bytes:
// a residual integer is drained LOG2_W bits at a time and the next
// higher byte is folded in once the residual runs low, but the
// extracted digits are written into the result from the end backward,
// so the output is most-significant-digit first. This backward scan
// is an observable, intentional quirk (§9, "cycle vector
// orientation") and must not be "simplified" into a forward scan.
func (ctx *Context) baseW(bytes []byte, length int) []uint16 {
	logW := uint(ctx.p.LogW)
	bi := len(bytes) - 1
	b := uint32(bytes[bi])
	symbols := make([]uint16, length)
	bits := uint(8)

	for i := length - 1; i >= 0; i-- {
		symbols[i] = uint16(b % (1 << logW))
		b >>= logW
		bits -= logW
		if bits <= logW {
			bits += 8
			if bi > 0 {
				bi--
				b += uint32(bytes[bi]) << bits
			}
		}
	}
	return symbols
}

// cyclesForMsg computes the per-chain cycle counts for msg under the
// WOTS+ public key hash pkHash (§4.1). Binding pkHash into the message
// hash (rather than just hashing msg) removes the collision-resistance
// requirement on H, letting the message digest be N bytes instead of
// 2N for the same security level.
func (ctx *Context) cyclesForMsg(pad scratchPad, msg, pkHash []byte) []uint16 {
	p := ctx.p
	n := p.N

	hRaw := make([]byte, n)
	ctx.hashInto(pad, msg, hRaw)

	bound := make([]byte, 2*n)
	copy(bound[:n], pkHash)
	copy(bound[n:], hRaw)
	hBound := make([]byte, n)
	ctx.hashInto(pad, bound, hBound)

	cycles := make([]uint16, p.L)
	copy(cycles[:p.L1], ctx.baseW(hBound, int(p.L1)))

	var csum uint32
	for _, d := range cycles[:p.L1] {
		csum += uint32(p.W) - 1 - uint32(d)
	}

	// Shift so the significant bits occupy whole bytes before
	// big-endian extraction. When L2*LOG2_W is already a multiple of
	// 8 this shifts by a full 8 bits, not 0 -- see §9.
	shiftBits := uint(p.L2*uint32(p.LogW)) % 8
	csum <<= 8 - shiftBits

	l2Bytes := (p.L2*uint32(p.LogW) + 7) / 8
	var csumBuf [4]byte
	binary.BigEndian.PutUint32(csumBuf[:], csum)
	copy(cycles[p.L1:], ctx.baseW(csumBuf[4-l2Bytes:], int(p.L2)))

	return cycles
}
