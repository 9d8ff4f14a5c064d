package savings

import (
	"errors"
	"fmt"

	"github.com/iwvelando/roi-calculator/pkg/mathutil"
)

// ErrInvalidInput is wrapped by every input validation error.
var ErrInvalidInput = errors.New("invalid input")

// Validate reports every problem with the input. The returned error wraps
// ErrInvalidInput.
func (in Input) Validate() error {
	var errs []error
	invalid := func(format string, args ...interface{}) {
		errs = append(errs, fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...)))
	}

	if !mathutil.IsFinite(in.Revenue) || in.Revenue <= 0 {
		invalid("revenue must be a positive number, got %v", in.Revenue)
	}

	for category, fraction := range in.Expenses {
		if !category.valid() {
			invalid("unknown expense category %q", category)
			continue
		}
		if !mathutil.IsFinite(fraction) || fraction < 0 || fraction > 1 {
			invalid("expense fraction for %s must be within [0, 1], got %v", category, fraction)
		}
	}
	if total := in.Expenses.Total(); mathutil.IsFinite(total) && total > 1 {
		invalid("total expense fraction %v exceeds revenue", total)
	}

	for solution := range in.Solutions {
		if !solution.valid() {
			invalid("unknown solution %q", solution)
		}
	}

	if !in.RiskTolerance.valid() {
		invalid("unknown risk tolerance %q", in.RiskTolerance)
	}
	if !in.Industry.valid() {
		invalid("unknown industry %q", in.Industry)
	}

	return errors.Join(errs...)
}
