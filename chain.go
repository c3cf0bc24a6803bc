package hashsig

import "github.com/templexxx/xor"

// chain applies c iterations of the keyed, masked hash function to
// input, starting at chain position start on chain chainIdx (§4.1).
// Calls must satisfy start+c <= W-1; callers enforce this, chain does
// not re-check it on every iteration for performance.
func (ctx *Context) chain(pad scratchPad, input []byte, c uint16,
	chainIdx uint32, start uint16, pkSeed []byte) []byte {
	n := ctx.p.N
	output := make([]byte, n)
	copy(output, input)

	keyBuf := make([]byte, n)
	maskBuf := make([]byte, n)
	hashIn := make([]byte, 2*n)

	for i := uint16(0); i < c; i++ {
		counter := (chainIdx << 8) | uint32(start+i)
		ctx.prf2Into(pad, pkSeed, counter, keyBuf, maskBuf)
		xor.BytesSameLen(output, output, maskBuf)
		copy(hashIn[:n], keyBuf)
		copy(hashIn[n:], output)
		ctx.hashInto(pad, hashIn, output)
	}
	return output
}
