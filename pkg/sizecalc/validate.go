package sizecalc

import "github.com/pkg/errors"

// ErrInvalidDimension is the cause of every error returned by ValidateDimensions
var ErrInvalidDimension = errors.New("invalid dimension")

// ValidateDimensions rejects sizes the calculations cannot handle sensibly:
// zero or negative widths and heights. name identifies the surface in the
// error message.
func ValidateDimensions(name string, width, height int) error {
	if width <= 0 || height <= 0 {
		return errors.Wrapf(ErrInvalidDimension, "%s %dx%d", name, width, height)
	}
	return nil
}
