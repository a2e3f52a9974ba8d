package booking

import (
	"crypto/rand"
	"io"
	"regexp"
	"strings"

	"rental-booking/internal/pkg/caldate"
	"rental-booking/internal/pkg/errs"
)

var ErrInvalidReference = errs.Kinded("invalid booking reference", errs.ErrInvalidInput)

// No 0/O or 1/I so guests can read references over the phone.
const referenceAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

var referenceRegex = regexp.MustCompile(`^BK-\d{8}-[A-HJ-NP-Z2-9]{6}$`)

// Reference is the guest-facing booking number, e.g. BK-20261017-7XK2QM.
type Reference string

func NewReference(checkIn caldate.Date) (Reference, error) {
	return newReference(checkIn, rand.Reader)
}

func newReference(checkIn caldate.Date, r io.Reader) (Reference, error) {
	buf := make([]byte, 6)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", errs.Wrap(err, "generate booking reference")
	}
	suffix := make([]byte, len(buf))
	for i, b := range buf {
		suffix[i] = referenceAlphabet[int(b)%len(referenceAlphabet)]
	}
	return Reference("BK-" + checkIn.Time().Format("20060102") + "-" + string(suffix)), nil
}

func ParseReference(s string) (Reference, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if !referenceRegex.MatchString(s) {
		return "", ErrInvalidReference
	}
	return Reference(s), nil
}

func (r Reference) String() string {
	return string(r)
}
