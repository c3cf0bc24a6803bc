package hashsig

import "testing"

func TestLamportOTPAcceptsDecreasingChallenges(t *testing.T) {
	ctx := mustContext(t, 32, 16, SHA2)
	prover, err := NewLamportProofer(ctx, 5)
	if err != nil {
		t.Fatalf("NewLamportProofer failed: %v", err)
	}
	pk := prover.PublicKey()
	verifier := NewLamportVerifier(ctx, 5, pk)

	for i := 0; i < 5; i++ {
		ch := verifier.NextChallenge()
		otp := prover.Reply(ch)
		if !verifier.Verify(otp) {
			t.Fatalf("challenge %d: valid OTP rejected", ch)
		}
	}
}

func TestLamportOTPRejectsReplay(t *testing.T) {
	ctx := mustContext(t, 32, 16, SHA2)
	prover, err := NewLamportProofer(ctx, 5)
	if err != nil {
		t.Fatalf("NewLamportProofer failed: %v", err)
	}
	pk := prover.PublicKey()
	verifier := NewLamportVerifier(ctx, 5, pk)

	ch := verifier.NextChallenge()
	otp := prover.Reply(ch)
	if !verifier.Verify(otp) {
		t.Fatalf("first OTP should be accepted")
	}
	if verifier.Verify(otp) {
		t.Errorf("replaying the same OTP should be rejected")
	}
}

func TestLamportOTPRejectsForgedOTP(t *testing.T) {
	ctx := mustContext(t, 32, 16, SHA2)
	prover, err := NewLamportProofer(ctx, 5)
	if err != nil {
		t.Fatalf("NewLamportProofer failed: %v", err)
	}
	pk := prover.PublicKey()
	verifier := NewLamportVerifier(ctx, 5, pk)

	forged := make([]byte, 32)
	if verifier.Verify(forged) {
		t.Errorf("an arbitrary forged OTP should not verify against the public key")
	}
}

func TestLamportPublicKeyIsChainHeadFromSecret(t *testing.T) {
	ctx := mustContext(t, 32, 16, SHA2)
	prover, err := NewLamportProofer(ctx, 3)
	if err != nil {
		t.Fatalf("NewLamportProofer failed: %v", err)
	}
	pk := prover.PublicKey()
	// The reply to challenge n-1 must hash forward to pk in one step.
	otp := prover.Reply(2)
	pad := ctx.NewScratchPad()
	if string(ctx.hash(pad, otp)) != string(pk) {
		t.Errorf("H(reply(n-1)) should equal the public key")
	}
}
