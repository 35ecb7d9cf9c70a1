package prim

import (
	"errors"
	"fmt"
	"math"
)

// Sentinel errors. Callers match them with errors.Is; messages returned by
// the check helpers wrap them with the offending function and argument.
var (
	// ErrDomain is returned when an argument lies outside the domain of a function.
	ErrDomain = errors.New("domain error")

	// ErrSizeMismatch is returned when the lengths of two operands differ.
	ErrSizeMismatch = errors.New("size mismatch")

	// ErrNotVector is returned when a matrix operand is neither a single row
	// nor a single column.
	ErrNotVector = errors.New("not a vector")
)

// CheckBounded reports an ErrDomain if y is outside [low, high].
// NaN never satisfies the bound.
func CheckBounded(function, name string, y, low, high float64) error {
	if !(low <= y && y <= high) {
		return fmt.Errorf("%s: %s is %v, but must be in the interval [%v, %v]: %w",
			function, name, y, low, high, ErrDomain)
	}
	return nil
}

// CheckPositiveFinite reports an ErrDomain unless y is finite and > 0.
func CheckPositiveFinite(function, name string, y float64) error {
	if !(y > 0) || math.IsInf(y, 0) {
		return fmt.Errorf("%s: %s is %v, but must be positive finite: %w",
			function, name, y, ErrDomain)
	}
	return nil
}

// CheckMatchingSizes reports an ErrSizeMismatch if n1 != n2.
func CheckMatchingSizes(function, name1 string, n1 int, name2 string, n2 int) error {
	if n1 != n2 {
		return fmt.Errorf("%s: size of %s (%d) and size of %s (%d) must match in size: %w",
			function, name1, n1, name2, n2, ErrSizeMismatch)
	}
	return nil
}

// CheckVector reports an ErrNotVector unless a rows×cols shape has a single
// row or a single column.
func CheckVector(function, name string, rows, cols int) error {
	if rows == 1 || cols == 1 {
		return nil
	}
	return fmt.Errorf("%s: %s has dimensions %dx%d, but must be a vector with 1 row or 1 column: %w",
		function, name, rows, cols, ErrNotVector)
}
