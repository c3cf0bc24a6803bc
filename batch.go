package hashsig

// Batch verification: independent, read-only Verify calls across many
// signatures/keypairs parallelize safely (§5 only forbids concurrent
// Sign/Update on the *same* keypair). Grounded on the background
// worker pattern in api.go's EnableSubTreePrecomputation.

import (
	"sync"

	"github.com/hashicorp/go-multierror"
)

// VerifyJob is one independent verification to run as part of a
// batch. It must not mutate any keypair; it should only call a
// *Signature.Verify method (or equivalent) and report whether the
// input was even well-formed enough to evaluate.
type VerifyJob func() (ok bool, err error)

// WotsVerifyJob wraps a WOTS+ verification as a VerifyJob.
func WotsVerifyJob(sig *WotsSignature, msg []byte) VerifyJob {
	return func() (bool, error) {
		if sig == nil {
			return false, errorf("nil WOTS+ signature")
		}
		return sig.Verify(msg), nil
	}
}

// MerkleVerifyJob wraps a Merkle signature verification as a
// VerifyJob.
func MerkleVerifyJob(sig *MerkleSignature, msg, pk []byte) VerifyJob {
	return func() (bool, error) {
		if sig == nil {
			return false, errorf("nil Merkle signature")
		}
		return sig.Verify(msg, pk), nil
	}
}

// SDMSSVerifyJob wraps an SD-MSS signature verification as a
// VerifyJob.
func SDMSSVerifyJob(sig *SDMSSSignature, msg, shallowPk, deepPk []byte) VerifyJob {
	return func() (bool, error) {
		if sig == nil {
			return false, errorf("nil SD-MSS signature")
		}
		return sig.Verify(msg, shallowPk, deepPk), nil
	}
}

// BatchVerify runs every job concurrently, one goroutine each, and
// returns the per-job accept/reject decisions in the same order as
// jobs. A job that could not even be evaluated (malformed input, not
// a failed signature check) contributes its error to the returned
// multierror rather than silently counting as a rejection.
func BatchVerify(jobs []VerifyJob) ([]bool, error) {
	results := make([]bool, len(jobs))
	errs := make([]error, len(jobs))

	var wg sync.WaitGroup
	wg.Add(len(jobs))
	for i, job := range jobs {
		go func(i int, job VerifyJob) {
			defer wg.Done()
			ok, err := job()
			results[i] = ok
			errs[i] = err
		}(i, job)
	}
	wg.Wait()

	var merr *multierror.Error
	for i, err := range errs {
		if err != nil {
			merr = multierror.Append(merr, wrapErrorf(err, "batch verify job %d", i))
		}
	}
	return results, merr.ErrorOrNil()
}
