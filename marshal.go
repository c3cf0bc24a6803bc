package hashsig

// Wire-level byte layouts (§6), for handing a signature to a verifier
// that only shares the byte format, not this package. All integers
// are big-endian; ⟨N⟩ denotes N raw bytes.

import (
	"encoding/binary"
	"io"

	"github.com/bwesterb/byteswriter"
)

// MarshalBinary encodes a WOTS+ signature as pk_hash⟨N⟩ ∥ pk_seed⟨N⟩ ∥
// sig_0⟨N⟩ … sig_{L-1}⟨N⟩.
func (sig *WotsSignature) MarshalBinary() ([]byte, error) {
	p := sig.ctx.Params()
	buf := make([]byte, 2*p.N+p.N*uint32(len(sig.Signature)))
	w := byteswriter.NewWriter(buf)
	if err := writeChunks(w, sig.PkHash, sig.PkSeed); err != nil {
		return nil, wrapErrorf(err, "marshaling WOTS+ signature")
	}
	for _, s := range sig.Signature {
		if _, err := w.Write(s); err != nil {
			return nil, wrapErrorf(err, "marshaling WOTS+ signature")
		}
	}
	return buf, nil
}

// unmarshalWotsSignature decodes a WOTS+ signature from b, which must
// hold at least ctx.Params().L chain values after the two header
// fields; the bytes after them are returned as the remainder.
func unmarshalWotsSignature(ctx *Context, b []byte) (*WotsSignature, []byte, error) {
	p := ctx.Params()
	n := int(p.N)
	need := 2*n + n*int(p.L)
	if len(b) < need {
		return nil, nil, errorf("WOTS+ signature truncated: need %d bytes, have %d", need, len(b))
	}
	sig := &WotsSignature{
		ctx:       ctx,
		PkHash:    append([]byte(nil), b[:n]...),
		PkSeed:    append([]byte(nil), b[n:2*n]...),
		Signature: make([][]byte, p.L),
	}
	off := 2 * n
	for i := range sig.Signature {
		sig.Signature[i] = append([]byte(nil), b[off:off+n]...)
		off += n
	}
	return sig, b[off:], nil
}

// MarshalBinary encodes a Merkle signature as index:u32 ∥ wots_sig ∥
// auth_path_0⟨N⟩ … auth_path_{h-1}⟨N⟩.
func (sig *MerkleSignature) MarshalBinary() ([]byte, error) {
	wotsBytes, err := sig.WotsSig.MarshalBinary()
	if err != nil {
		return nil, wrapErrorf(err, "marshaling Merkle signature")
	}
	p := sig.ctx.Params()
	buf := make([]byte, 4+len(wotsBytes)+int(p.N)*len(sig.AuthPath))
	w := byteswriter.NewWriter(buf)
	if err := binary.Write(w, binary.BigEndian, sig.Index); err != nil {
		return nil, wrapErrorf(err, "marshaling Merkle signature index")
	}
	if _, err := w.Write(wotsBytes); err != nil {
		return nil, wrapErrorf(err, "marshaling Merkle signature")
	}
	for _, node := range sig.AuthPath {
		if _, err := w.Write(node); err != nil {
			return nil, wrapErrorf(err, "marshaling Merkle signature auth path")
		}
	}
	return buf, nil
}

// UnmarshalMerkleSignature decodes a Merkle signature produced under
// ctx and with an authentication path of length height (0 under
// server-side caching).
func UnmarshalMerkleSignature(ctx *Context, height uint32, b []byte) (*MerkleSignature, error) {
	if len(b) < 4 {
		return nil, errorf("Merkle signature truncated: missing index")
	}
	index := binary.BigEndian.Uint32(b[:4])
	wotsSig, rest, err := unmarshalWotsSignature(ctx, b[4:])
	if err != nil {
		return nil, wrapErrorf(err, "unmarshaling Merkle signature")
	}
	n := int(ctx.Params().N)
	need := n * int(height)
	if len(rest) < need {
		return nil, errorf("Merkle signature truncated: need %d auth path bytes, have %d", need, len(rest))
	}
	authPath := make([][]byte, height)
	for i := range authPath {
		authPath[i] = append([]byte(nil), rest[i*n:(i+1)*n]...)
	}
	return &MerkleSignature{ctx: ctx, Index: index, WotsSig: wotsSig, AuthPath: authPath}, nil
}

// MarshalBinary encodes an SD-MSS signature as deep:u8 ∥
// new_shallow_ctr:u32 ∥ new_deep_ctr:u32 ∥ merkle_sig.
func (sig *SDMSSSignature) MarshalBinary() ([]byte, error) {
	merkleBytes, err := sig.MerkleSig.MarshalBinary()
	if err != nil {
		return nil, wrapErrorf(err, "marshaling SD-MSS signature")
	}
	buf := make([]byte, 9+len(merkleBytes))
	w := byteswriter.NewWriter(buf)
	var deep uint8
	if sig.Deep {
		deep = 1
	}
	if err := binary.Write(w, binary.BigEndian, deep); err != nil {
		return nil, wrapErrorf(err, "marshaling SD-MSS signature")
	}
	if err := binary.Write(w, binary.BigEndian, sig.NewShallowCtr); err != nil {
		return nil, wrapErrorf(err, "marshaling SD-MSS signature")
	}
	if err := binary.Write(w, binary.BigEndian, sig.NewDeepCtr); err != nil {
		return nil, wrapErrorf(err, "marshaling SD-MSS signature")
	}
	if _, err := w.Write(merkleBytes); err != nil {
		return nil, wrapErrorf(err, "marshaling SD-MSS signature")
	}
	return buf, nil
}

// UnmarshalSDMSSSignature decodes an SD-MSS signature. The shallow
// tree is always server-side-caching (sdmss.go's SDMSSFromSK builds
// it with serverSideCaching set), so its embedded Merkle
// signature always carries an empty auth path regardless of
// shallowHeight; only the deep tree's auth path is deepHeight chunks
// long.
func UnmarshalSDMSSSignature(ctx *Context, shallowHeight, deepHeight uint32, b []byte) (*SDMSSSignature, error) {
	if len(b) < 9 {
		return nil, errorf("SD-MSS signature truncated: missing header")
	}
	deep := b[0] != 0
	newShallowCtr := binary.BigEndian.Uint32(b[1:5])
	newDeepCtr := binary.BigEndian.Uint32(b[5:9])

	height := uint32(0)
	if deep {
		height = deepHeight
	}
	merkleSig, err := UnmarshalMerkleSignature(ctx, height, b[9:])
	if err != nil {
		return nil, wrapErrorf(err, "unmarshaling SD-MSS signature")
	}
	return &SDMSSSignature{
		Deep:          deep,
		NewShallowCtr: newShallowCtr,
		NewDeepCtr:    newDeepCtr,
		MerkleSig:     merkleSig,
	}, nil
}

// writeChunks writes each of chunks to w in order.
func writeChunks(w io.Writer, chunks ...[]byte) error {
	for _, c := range chunks {
		if _, err := w.Write(c); err != nil {
			return err
		}
	}
	return nil
}
