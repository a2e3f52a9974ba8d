package shared

import (
	"rental-booking/internal/infra"
	"rental-booking/internal/pkg/errs"
)

var (
	ErrIdempotencyKeyReused  = errs.Kinded("idempotency key was used for a different request", errs.ErrConflict)
	ErrIdempotencyInProgress = errs.Kinded("a request with this idempotency key is still in progress", errs.ErrConflict)
	ErrPaymentProvider       = errs.Kinded("payment provider request failed", errs.ErrStorageUnavailable)
)

// StorageError marks an infrastructure failure so callers answer 503 instead of 500.
func StorageError(err error, msg string) error {
	return errs.Mark(errs.Wrap(err, msg), errs.ErrStorageUnavailable)
}

// TranslateRepoErr maps a missing row onto the domain sentinel and everything else onto StorageError.
func TranslateRepoErr(err error, notFound error, msg string) error {
	if err == nil {
		return nil
	}
	if infra.IsKind(err, infra.KindNotFound) {
		return notFound
	}
	return StorageError(err, msg)
}
