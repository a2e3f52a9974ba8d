package errs

import cr "github.com/cockroachdb/errors"

// Failure kinds shared by every layer. Each domain sentinel carries exactly one of them
// so handlers can choose a status without knowing individual sentinels.
var (
	ErrInvalidInput         = New("invalid input")
	ErrNotFound             = New("not found")
	ErrPolicyViolation      = New("policy violation")
	ErrConflict             = New("conflict")
	ErrStorageUnavailable   = New("storage unavailable")
	ErrComputationInvariant = New("computation invariant violated")
)

// Kinded builds a sentinel error marked with the given kind.
func Kinded(msg string, kind error) error {
	return Mark(New(msg), kind)
}

var kinds = []error{
	ErrInvalidInput,
	ErrNotFound,
	ErrPolicyViolation,
	ErrConflict,
	ErrStorageUnavailable,
	ErrComputationInvariant,
}

// KindOf reports the failure kind carried by err, or nil.
func KindOf(err error) error {
	if err == nil {
		return nil
	}
	for _, k := range kinds {
		if cr.Is(err, k) {
			return k
		}
	}
	return nil
}
