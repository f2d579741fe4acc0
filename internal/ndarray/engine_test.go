package ndarray

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func seq(n int) []float32 {
	out := make([]float32, n)
	for i := range out {
		out[i] = float32(i + 1)
	}
	return out
}

func randomArray(r *rand.Rand, shape Shape) *NDArray {
	a := MustNew(shape)
	for i := range a.values {
		a.values[i] = r.Float32()*2 - 1
	}
	return a
}

// Element-wise Tests

func TestSubtract_Scenario(t *testing.T) {
	a := MustNew(Shape{3, 4})
	a.Fill(1.0)
	b := MustNew(a.Shape())
	b.Fill(2.0)

	c, err := Subtract(a, b)
	require.NoError(t, err)
	assert.Equal(t, Shape{3, 4}, c.Shape())
	for y := 0; y < 4; y++ {
		for x := 0; x < 3; x++ {
			assert.Equal(t, float32(-1.0), c.At(x, y))
		}
	}
}

func TestAdd_Commutative(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	a := randomArray(r, Shape{5, 7})
	b := randomArray(r, Shape{5, 7})

	ab, err := Add(a, b)
	require.NoError(t, err)
	ba, err := Add(b, a)
	require.NoError(t, err)

	assert.Equal(t, ab.Values(), ba.Values())
	for i, v := range ab.Values() {
		assert.Equal(t, a.values[i]+b.values[i], v)
	}
}

func TestSubtract_Elementwise(t *testing.T) {
	r := rand.New(rand.NewSource(2))
	a := randomArray(r, Shape{4, 4})
	b := randomArray(r, Shape{4, 4})

	c, err := Subtract(a, b)
	require.NoError(t, err)
	for i, v := range c.Values() {
		assert.Equal(t, a.values[i]-b.values[i], v)
	}
}

func TestElementwise_DoesNotMutateOperands(t *testing.T) {
	a, err := FromValues(Shape{2, 2}, []float32{1, 2, 3, 4})
	require.NoError(t, err)
	b, err := FromValues(Shape{2, 2}, []float32{4, 3, 2, 1})
	require.NoError(t, err)

	sum, err := Add(a, b)
	require.NoError(t, err)
	diff, err := Subtract(a, b)
	require.NoError(t, err)

	assert.Equal(t, []float32{1, 2, 3, 4}, a.Values())
	assert.Equal(t, []float32{4, 3, 2, 1}, b.Values())
	assert.Equal(t, []float32{5, 5, 5, 5}, sum.Values())
	assert.Equal(t, []float32{-3, -1, 1, 3}, diff.Values())

	// Results own their buffers.
	sum.Fill(0)
	assert.Equal(t, []float32{1, 2, 3, 4}, a.Values())
}

func TestElementwise_SizeOnlyCheck(t *testing.T) {
	a, err := FromValues(Shape{2, 3}, seq(6))
	require.NoError(t, err)
	b, err := FromValues(Shape{3, 2}, seq(6))
	require.NoError(t, err)

	sum, err := Add(a, b)
	require.NoError(t, err)
	assert.Equal(t, Shape{2, 3}, sum.Shape())
	assert.Equal(t, []float32{2, 4, 6, 8, 10, 12}, sum.Values())

	flat := MustNew(Shape{6})
	diff, err := Subtract(flat, a)
	require.NoError(t, err)
	assert.Equal(t, Shape{6}, diff.Shape())
	assert.Equal(t, []float32{-1, -2, -3, -4, -5, -6}, diff.Values())
}

func TestElementwise_SizeMismatch(t *testing.T) {
	a := MustNew(Shape{3, 4})
	b := MustNew(Shape{4, 4})

	c, err := Add(a, b)
	assert.Nil(t, c)
	assert.ErrorIs(t, err, ErrShapeMismatch)

	c, err = Subtract(a, b)
	assert.Nil(t, c)
	assert.ErrorIs(t, err, ErrShapeMismatch)
}

func TestElementwise_StrictShapes(t *testing.T) {
	e := NewEngine(WithStrictShapes())
	require.True(t, e.Strict())

	a := MustNew(Shape{2, 3})
	b := MustNew(Shape{3, 2})

	_, err := e.Add(a, b)
	assert.ErrorIs(t, err, ErrShapeMismatch)
	_, err = e.Subtract(a, b)
	assert.ErrorIs(t, err, ErrShapeMismatch)

	_, err = e.Add(a, a.Clone())
	assert.NoError(t, err)
}

// Multiply Tests

func TestMultiply_Scenario(t *testing.T) {
	l := MustNew(Shape{4, 3})
	r := MustNew(Shape{2, 4})
	require.NoError(t, l.Set(seq(12)))
	require.NoError(t, r.Set(seq(8)))

	m, err := Multiply(l, r)
	require.NoError(t, err)
	assert.Equal(t, Shape{2, 3}, m.Shape())

	var want float32
	for v := 0; v < 4; v++ {
		want += l.At(v, 0) * r.At(0, v)
	}
	assert.Equal(t, float32(50), want)
	assert.Equal(t, want, m.At(0, 0))

	assert.Equal(t, []float32{50, 60, 114, 140, 178, 220}, m.Values())
}

func TestMultiply_MatchesGonum(t *testing.T) {
	r := rand.New(rand.NewSource(3))

	tests := []struct {
		m, k, n int
	}{
		{1, 1, 1},
		{3, 4, 2},
		{7, 5, 9},
		{16, 16, 16},
		{1, 8, 3},
	}

	for _, tt := range tests {
		// lhs is (k, m), rhs is (n, k) in column-count-first shapes.
		lhs := randomArray(r, Shape{tt.k, tt.m})
		rhs := randomArray(r, Shape{tt.n, tt.k})

		got, err := Multiply(lhs, rhs)
		require.NoError(t, err)
		require.Equal(t, Shape{tt.n, tt.m}, got.Shape())

		a := mat.NewDense(tt.m, tt.k, toFloat64(lhs.values))
		b := mat.NewDense(tt.k, tt.n, toFloat64(rhs.values))
		var want mat.Dense
		want.Mul(a, b)

		for row := 0; row < tt.m; row++ {
			for col := 0; col < tt.n; col++ {
				assert.InDelta(t, want.At(row, col), float64(got.At(col, row)), 1e-4,
					"m=%d k=%d n=%d at (%d,%d)", tt.m, tt.k, tt.n, row, col)
			}
		}
	}
}

func TestMultiply_OneDimensionalLHS(t *testing.T) {
	// A 1-D lhs is a single row.
	lhs, err := FromValues(Shape{3}, []float32{1, 2, 3})
	require.NoError(t, err)
	rhs, err := FromValues(Shape{2, 3}, []float32{1, 0, 0, 1, 1, 1})
	require.NoError(t, err)

	got, err := Multiply(lhs, rhs)
	require.NoError(t, err)
	assert.Equal(t, Shape{2, 1}, got.Shape())
	// result[c] = sum_v lhs[v] * rhs[c + 2v]
	assert.Equal(t, []float32{1*1 + 2*0 + 3*1, 1*0 + 2*1 + 3*1}, got.Values())
}

func TestMultiply_OneByOne(t *testing.T) {
	lhs, err := FromValues(Shape{1}, []float32{3})
	require.NoError(t, err)
	rhs, err := FromValues(Shape{1}, []float32{4})
	require.NoError(t, err)

	got, err := Multiply(lhs, rhs)
	require.NoError(t, err)
	assert.Equal(t, Shape{1, 1}, got.Shape())
	assert.Equal(t, []float32{12}, got.Values())
}

func TestMultiply_Errors(t *testing.T) {
	tests := []struct {
		name     string
		lhs, rhs Shape
		err      error
	}{
		{"lhs rank 3", Shape{2, 2, 2}, Shape{2, 2}, ErrInvalidRank},
		{"rhs rank 3", Shape{2, 2}, Shape{2, 2, 2}, ErrInvalidRank},
		{"inner mismatch", Shape{4, 3}, Shape{2, 3}, ErrDimensionMismatch},
		{"1-D rhs longer than one", Shape{3}, Shape{3}, ErrDimensionMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Multiply(MustNew(tt.lhs), MustNew(tt.rhs))
			assert.Nil(t, got)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestMultiply_DoesNotMutateOperands(t *testing.T) {
	a, err := FromValues(Shape{4, 4}, []float32{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 0, 1, 2, 3, 4, 5})
	require.NoError(t, err)
	before := a.Values()

	d, err := Multiply(a, a)
	require.NoError(t, err)
	assert.Equal(t, before, a.Values())
	assert.Equal(t, Shape{4, 4}, d.Shape())
}

func TestMultiply_ZeroInnerDimension(t *testing.T) {
	got, err := Multiply(MustNew(Shape{0, 3}), MustNew(Shape{2, 0}))
	require.NoError(t, err)
	assert.Equal(t, Shape{2, 3}, got.Shape())
	assert.Equal(t, make([]float32, 6), got.Values())
}

// Apply / Engine Tests

func TestApply(t *testing.T) {
	a, err := FromValues(Shape{2, 2}, []float32{1, 2, 3, 4})
	require.NoError(t, err)
	b, err := FromValues(Shape{2, 2}, []float32{1, 1, 1, 1})
	require.NoError(t, err)

	sum, err := Apply(OpAdd, a, b)
	require.NoError(t, err)
	assert.Equal(t, []float32{2, 3, 4, 5}, sum.Values())

	diff, err := Apply(OpSubtract, a, b)
	require.NoError(t, err)
	assert.Equal(t, []float32{0, 1, 2, 3}, diff.Values())

	prod, err := Apply(OpMultiply, a, b)
	require.NoError(t, err)
	want, err := Multiply(a, b)
	require.NoError(t, err)
	assert.True(t, want.Equal(prod))

	_, err = Apply(Op(42), a, b)
	assert.ErrorIs(t, err, ErrUnsupportedOp)
}

func TestOpString(t *testing.T) {
	assert.Equal(t, "+", OpAdd.String())
	assert.Equal(t, "-", OpSubtract.String())
	assert.Equal(t, "*", OpMultiply.String())
	assert.Equal(t, "Op(9)", Op(9).String())
}

func TestDefaultEngine(t *testing.T) {
	e := Default()
	assert.Equal(t, "reference", e.Backend().Name())
	assert.Equal(t, CPU, e.Backend().Device())
	assert.False(t, e.Strict())
}

type failingBackend struct{ reference }

var errBackend = errors.New("device lost")

func (failingBackend) Name() string                                { return "failing" }
func (failingBackend) Add(_, _, _ []float32) error                 { return errBackend }
func (failingBackend) Sub(_, _, _ []float32) error                 { return errBackend }
func (failingBackend) MatMul(_, _, _ []float32, _, _, _ int) error { return errBackend }

func TestEngine_BackendErrorsAreWrapped(t *testing.T) {
	e := NewEngine(WithBackend(failingBackend{}))
	a := MustNew(Shape{2, 2})

	for _, op := range []Op{OpAdd, OpSubtract, OpMultiply} {
		got, err := e.Apply(op, a, a)
		assert.Nil(t, got)
		assert.ErrorIs(t, err, errBackend, "op %v", op)
		assert.Contains(t, err.Error(), "failing")
	}
}

func TestDeviceString(t *testing.T) {
	assert.Equal(t, "CPU", CPU.String())
	assert.Equal(t, "WebGPU", WebGPU.String())
	assert.Equal(t, "Unknown", Device(99).String())
}

func BenchmarkMultiply(b *testing.B) {
	lhs := MustNew(Shape{64, 64})
	rhs := MustNew(Shape{64, 64})
	lhs.Fill(1)
	rhs.Fill(2)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = Multiply(lhs, rhs)
	}
}

func BenchmarkSubtract(b *testing.B) {
	lhs := MustNew(Shape{64, 64})
	rhs := MustNew(Shape{64, 64})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = Subtract(lhs, rhs)
	}
}

func toFloat64(in []float32) []float64 {
	out := make([]float64, len(in))
	for i, v := range in {
		out[i] = float64(v)
	}
	return out
}
