package hashsig

import (
	"bytes"
	"crypto/rand"
	"testing"
)

func randBytes(t *testing.T, n int) []byte {
	t.Helper()
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		t.Fatalf("rand.Read failed: %v", err)
	}
	return b
}

func TestWotsSignVerifyRoundTrip(t *testing.T) {
	for _, f := range []Func{SHA2, SHAKE} {
		ctx := mustContext(t, 32, 16, f)
		skSeed := randBytes(t, 32)
		w, err := WotsFromSeed(ctx, skSeed)
		if err != nil {
			t.Fatalf("%s: WotsFromSeed failed: %v", f, err)
		}
		msg := []byte("hello, one-time signature")
		sig := w.Sign(msg)
		if !sig.Verify(msg) {
			t.Errorf("%s: valid WOTS+ signature rejected", f)
		}
	}
}

func TestWotsVerifyRejectsTamperedMessage(t *testing.T) {
	ctx := mustContext(t, 32, 16, SHA2)
	w, err := WotsFromSeed(ctx, randBytes(t, 32))
	if err != nil {
		t.Fatalf("WotsFromSeed failed: %v", err)
	}
	sig := w.Sign([]byte("original message"))
	if sig.Verify([]byte("tampered message")) {
		t.Errorf("signature over a different message should not verify")
	}
}

func TestWotsVerifyRejectsTamperedSignature(t *testing.T) {
	ctx := mustContext(t, 32, 16, SHA2)
	w, err := WotsFromSeed(ctx, randBytes(t, 32))
	if err != nil {
		t.Fatalf("WotsFromSeed failed: %v", err)
	}
	msg := []byte("message")
	sig := w.Sign(msg)
	sig.Signature[0][0] ^= 0xff
	if sig.Verify(msg) {
		t.Errorf("tampered signature should not verify")
	}
}

func TestWotsVerifyRejectsWrongLength(t *testing.T) {
	ctx := mustContext(t, 32, 16, SHA2)
	w, err := WotsFromSeed(ctx, randBytes(t, 32))
	if err != nil {
		t.Fatalf("WotsFromSeed failed: %v", err)
	}
	msg := []byte("message")
	sig := w.Sign(msg)
	sig.Signature = sig.Signature[:len(sig.Signature)-1]
	if sig.Verify(msg) {
		t.Errorf("signature with a missing chain value should not verify")
	}
}

func TestWotsFromSeedRejectsWrongSeedLength(t *testing.T) {
	ctx := mustContext(t, 32, 16, SHA2)
	if _, err := WotsFromSeed(ctx, make([]byte, 16)); err == nil {
		t.Errorf("expected an error for a seed of the wrong length")
	}
}

func TestWotsFromSeedDeterministic(t *testing.T) {
	ctx := mustContext(t, 32, 16, SHA2)
	seed := randBytes(t, 32)
	w1, err := WotsFromSeed(ctx, seed)
	if err != nil {
		t.Fatalf("WotsFromSeed failed: %v", err)
	}
	w2, err := WotsFromSeed(ctx, seed)
	if err != nil {
		t.Fatalf("WotsFromSeed failed: %v", err)
	}
	if !bytes.Equal(w1.PkHash, w2.PkHash) {
		t.Errorf("WotsFromSeed is not deterministic: got different public keys from the same seed")
	}
}
