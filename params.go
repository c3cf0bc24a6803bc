package hashsig

import "fmt"

// Func selects the underlying hash primitive used by a Context.
type Func uint8

const (
	// SHA2 uses crypto/sha256 or crypto/sha512, truncated to N bytes.
	SHA2 Func = iota
	// SHAKE uses golang.org/x/crypto/sha3's SHAKE128/SHAKE256 as an
	// extendable-output function, read for exactly N bytes.
	SHAKE
)

func (f Func) String() string {
	switch f {
	case SHA2:
		return "SHA2"
	case SHAKE:
		return "SHAKE"
	default:
		return fmt.Sprintf("Func(%d)", uint8(f))
	}
}

// Params holds the compile-time constants of a hash-based signature
// instance: the digest width N, the Winternitz parameter W and the
// three chain-count derivatives L1, L2 and L.
//
// Params are small and immutable; share one Params value across every
// Wots, UpdatableMSS and SDMSS keypair that must interoperate.
type Params struct {
	N    uint32 // digest/PRF output width in bytes
	W    uint16 // Winternitz parameter, a power of two in [2,256]
	LogW uint8  // log2(W)

	L1 uint32 // number of base-w message digits
	L2 uint32 // number of base-w checksum digits
	L  uint32 // L1 + L2, total chains per WOTS+ key/signature

	Func Func
}

// regEntry is a named, pre-validated parameter set, in the spirit of
// the OID tables used by algorithm registries: a human name mapped to
// a ready-to-use Params value.
type regEntry struct {
	name string
	p    Params
}

var registry = []regEntry{
	{"WOTS-SHA2_16x16", Params{N: 16, W: 16, Func: SHA2}},
	{"WOTS-SHA2_16x4", Params{N: 16, W: 4, Func: SHA2}},
	{"WOTS-SHA2_32x16", Params{N: 32, W: 16, Func: SHA2}},
	{"WOTS-SHA2_32x256", Params{N: 32, W: 256, Func: SHA2}},
	{"WOTS-SHAKE_16x16", Params{N: 16, W: 16, Func: SHAKE}},
	{"WOTS-SHAKE_32x16", Params{N: 32, W: 16, Func: SHAKE}},
}

var registryNameLut map[string]Params

func init() {
	registryNameLut = make(map[string]Params)
	for _, entry := range registry {
		p := entry.p
		if err := p.finish(); err != nil {
			panic(wrapErrorf(err, "invalid builtin parameter set %s", entry.name))
		}
		registryNameLut[entry.name] = p
	}
}

// ListNames returns the names of the builtin, pre-validated parameter
// sets known to this package.
func ListNames() []string {
	ret := make([]string, 0, len(registry))
	for _, entry := range registry {
		ret = append(ret, entry.name)
	}
	return ret
}

// ParamsFromName looks up a builtin parameter set by name.
func ParamsFromName(name string) (Params, error) {
	p, ok := registryNameLut[name]
	if !ok {
		return Params{}, errorf("%s is not a known parameter set", name)
	}
	return p, nil
}

// NewParams validates n and w and derives L1, L2 and L, per §3 of the
// data model: L1 = ceil(8N/LogW), L2 = floor(log_W(L1*(W-1)))+1.
func NewParams(n uint32, w uint16, f Func) (Params, error) {
	p := Params{N: n, W: w, Func: f}
	if err := p.finish(); err != nil {
		return Params{}, err
	}
	return p, nil
}

func (p *Params) finish() error {
	if p.N == 0 || p.N > 64 {
		return errorf("N=%d out of range", p.N)
	}
	if p.Func == SHA2 && p.N != 16 && p.N != 32 && p.N != 64 {
		return errorf("SHA2 only supports N in {16,32,64}, got %d", p.N)
	}
	if p.W < 2 || p.W > 256 || (p.W&(p.W-1)) != 0 {
		return errorf("W=%d must be a power of two in [2,256]", p.W)
	}
	logW := uint8(0)
	for (uint16(1) << logW) != p.W {
		logW++
	}
	if logW == 0 || 8%logW != 0 {
		return errorf("W=%d: LOG2_W=%d must divide 8 for the base-w codec", p.W, logW)
	}
	p.LogW = logW

	l1 := (8*p.N + uint32(logW) - 1) / uint32(logW)
	// L2 = floor(log_W(L1*(W-1))) + 1, computed by repeated division.
	bound := l1 * uint32(p.W-1)
	l2 := uint32(1)
	for v := bound; v >= uint32(p.W); v /= uint32(p.W) {
		l2++
	}
	p.L1 = l1
	p.L2 = l2
	p.L = l1 + l2
	return nil
}

// WotsSignatureSize returns the byte size of a WOTS+ signature
// (excluding pkHash and pkSeed) under these parameters.
func (p Params) WotsSignatureSize() uint32 {
	return p.L * p.N
}

// String renders a short human-readable description of p, e.g. for
// log lines (see Logger in logging.go).
func (p Params) String() string {
	return fmt.Sprintf("N=%d,W=%d,L=%d,%s", p.N, p.W, p.L, p.Func)
}
