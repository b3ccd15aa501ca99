package engine

import (
	"fmt"
	"strings"

	"github.com/mkuiper/Crypto-Tax-Engine-Backend/internal/apperrors"
	"github.com/mkuiper/Crypto-Tax-Engine-Backend/internal/model"
)

// Method selects the order in which open lots are consumed by a disposal.
type Method string

const (
	// MethodFIFO consumes the earliest-acquired lots first.
	MethodFIFO Method = "fifo"

	// MethodLIFO consumes the latest-acquired lots first.
	MethodLIFO Method = "lifo"

	// MethodHIFO consumes the highest-cost-basis lots first, ties broken by
	// earliest acquisition date. Minimizes realized gain and is deterministic.
	MethodHIFO Method = "hifo"
)

// ParseMethod converts a user-supplied method string into a Method.
// Returns an error wrapping apperrors.ErrUnsupportedMethod for anything
// other than fifo, lifo or hifo.
func ParseMethod(s string) (Method, error) {
	switch Method(strings.ToLower(strings.TrimSpace(s))) {
	case MethodFIFO:
		return MethodFIFO, nil
	case MethodLIFO:
		return MethodLIFO, nil
	case MethodHIFO:
		return MethodHIFO, nil
	default:
		return "", fmt.Errorf("%w: %q", apperrors.ErrUnsupportedMethod, s)
	}
}

// lotBefore reports whether lot a should be consumed before lot b under the
// method. Ties fall through to false so that a stable sort preserves
// insertion order, keeping consumption deterministic for identical lots.
func (m Method) lotBefore(a, b model.Lot) bool {
	switch m {
	case MethodLIFO:
		return a.AcquisitionDate.After(b.AcquisitionDate)
	case MethodHIFO:
		if !a.CostBasisPerUnit.Equal(b.CostBasisPerUnit) {
			return a.CostBasisPerUnit.GreaterThan(b.CostBasisPerUnit)
		}
		return a.AcquisitionDate.Before(b.AcquisitionDate)
	default: // MethodFIFO
		return a.AcquisitionDate.Before(b.AcquisitionDate)
	}
}
