package bench

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"gonum.org/v1/gonum/floats/scalar"

	"github.com/born-ml/fastmath/internal/ndarray"
)

// ErrCheckFailed is wrapped by every Check assertion failure.
var ErrCheckFailed = errors.New("check failed")

// checkProduct is (4,3)x(2,4) of 1..12 and 1..8, dimension 0 fastest.
var checkProduct = []float32{50, 60, 114, 140, 178, 220}

// checkTolerance admits backends whose multiply sums in a different order.
const checkTolerance = 1e-5

func checkf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrCheckFailed}, args...)...)
}

// expectAll verifies that every element of a 2-D array equals want.
func expectAll(name string, a *ndarray.NDArray, want float32) error {
	shape := a.Shape()
	for y := 0; y < shape[1]; y++ {
		for x := 0; x < shape[0]; x++ {
			got, err := a.Get(x, y)
			if err != nil {
				return fmt.Errorf("%s[%d,%d]: %w", name, x, y, err)
			}
			if got != want {
				return checkf("%s[%d,%d] = %g, want %g", name, x, y, got, want)
			}
		}
	}
	return nil
}

// Check runs the conformance routine against engine: construction,
// zero-init, fill, subtract and the (4,3)x(2,4) multiply. It returns the
// product for display.
func Check(engine *ndarray.Engine) (*ndarray.NDArray, error) {
	a, err := ndarray.New(ndarray.Shape{3, 4})
	if err != nil {
		return nil, err
	}
	if a.Ndim() != 2 {
		return nil, checkf("a.Ndim() = %d, want 2", a.Ndim())
	}
	if !a.Shape().Equal(ndarray.Shape{3, 4}) {
		return nil, checkf("a.Shape() = %v, want [3 4]", a.Shape())
	}
	if a.Size() != 12 {
		return nil, checkf("a.Size() = %d, want 12", a.Size())
	}
	if err := expectAll("a", a, 0); err != nil {
		return nil, err
	}

	a.Fill(1.0)
	if err := expectAll("a", a, 1.0); err != nil {
		return nil, err
	}

	b, err := ndarray.New(a.Shape())
	if err != nil {
		return nil, err
	}
	if b.Ndim() != a.Ndim() || !b.Shape().Equal(a.Shape()) || b.Size() != a.Size() {
		return nil, checkf("b shape %v differs from a shape %v", b.Shape(), a.Shape())
	}
	b.Fill(2.0)
	if err := expectAll("b", b, 2.0); err != nil {
		return nil, err
	}

	c, err := engine.Subtract(a, b)
	if err != nil {
		return nil, fmt.Errorf("a - b: %w", err)
	}
	if err := expectAll("c", c, -1.0); err != nil {
		return nil, err
	}

	l, err := ndarray.FromValues(ndarray.Shape{4, 3}, []float32{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12})
	if err != nil {
		return nil, err
	}
	r, err := ndarray.FromValues(ndarray.Shape{2, 4}, []float32{1, 2, 3, 4, 5, 6, 7, 8})
	if err != nil {
		return nil, err
	}
	m, err := engine.Multiply(l, r)
	if err != nil {
		return nil, fmt.Errorf("l * r: %w", err)
	}
	if !m.Shape().Equal(ndarray.Shape{2, 3}) {
		return nil, checkf("m.Shape() = %v, want [2 3]", m.Shape())
	}
	for i, got := range m.Values() {
		want := checkProduct[i]
		if !scalar.EqualWithinAbsOrRel(float64(got), float64(want), checkTolerance, checkTolerance) {
			return nil, checkf("m[%d,%d] = %g, want %g", i%2, i/2, got, want)
		}
	}
	return m, nil
}

// WriteGrid prints a 2-D array one row per line, columns along dimension 0.
func WriteGrid(w io.Writer, a *ndarray.NDArray) error {
	shape := a.Shape()
	if len(shape) != 2 {
		return fmt.Errorf("write grid: %w: got %d dimensions", ndarray.ErrInvalidRank, len(shape))
	}
	var sb strings.Builder
	for y := 0; y < shape[1]; y++ {
		for x := 0; x < shape[0]; x++ {
			if x > 0 {
				sb.WriteByte(' ')
			}
			fmt.Fprintf(&sb, "%g", a.At(x, y))
		}
		sb.WriteByte('\n')
	}
	_, err := io.WriteString(w, sb.String())
	return err
}
