package common

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const matrixTol = 1e-4

func assertMat4Equal(t *testing.T, want, got []float32) {
	t.Helper()
	require.Len(t, got, 16)
	for i := range want {
		assert.InDelta(t, want[i], got[i], matrixTol, "element %d", i)
	}
}

// transformPoint applies a column-major matrix to a point with w = 1.
func transformPoint(m []float32, x, y, z float32) (float32, float32, float32, float32) {
	return m[0]*x + m[4]*y + m[8]*z + m[12],
		m[1]*x + m[5]*y + m[9]*z + m[13],
		m[2]*x + m[6]*y + m[10]*z + m[14],
		m[3]*x + m[7]*y + m[11]*z + m[15]
}

func TestIdentity(t *testing.T) {
	m := make([]float32, 16)
	for i := range m {
		m[i] = 9
	}
	Identity(m)

	x, y, z, w := transformPoint(m, 3, -2, 7)
	assert.Equal(t, float32(3), x)
	assert.Equal(t, float32(-2), y)
	assert.Equal(t, float32(7), z)
	assert.Equal(t, float32(1), w)
}

func TestMul4WithIdentity(t *testing.T) {
	identity := make([]float32, 16)
	Identity(identity)

	m := make([]float32, 16)
	BuildModelMatrix(m, 1, 2, 3, 0.4, 0.5, 0.6, 2, 2, 2)

	out := make([]float32, 16)
	Mul4(out, identity, m)
	assertMat4Equal(t, m, out)

	Mul4(out, m, identity)
	assertMat4Equal(t, m, out)
}

func TestMul4TranslationComposition(t *testing.T) {
	a := make([]float32, 16)
	b := make([]float32, 16)
	BuildModelMatrix(a, 1, 0, 0, 0, 0, 0, 1, 1, 1)
	BuildModelMatrix(b, 0, 2, 0, 0, 0, 0, 1, 1, 1)

	out := make([]float32, 16)
	Mul4(out, a, b)

	x, y, z, _ := transformPoint(out, 0, 0, 0)
	assert.InDelta(t, 1, x, matrixTol)
	assert.InDelta(t, 2, y, matrixTol)
	assert.InDelta(t, 0, z, matrixTol)
}

func TestMul4AliasesOutput(t *testing.T) {
	a := make([]float32, 16)
	b := make([]float32, 16)
	BuildModelMatrix(a, 1, 2, 3, 0.1, 0.2, 0.3, 1, 1, 1)
	BuildModelMatrix(b, -4, 5, -6, 0.4, 0.5, 0.6, 2, 1, 3)

	want := make([]float32, 16)
	Mul4(want, a, b)

	// out aliasing a must give the same result.
	aCopy := make([]float32, 16)
	copy(aCopy, a)
	Mul4(aCopy, aCopy, b)
	assertMat4Equal(t, want, aCopy)
}

func TestPerspectiveDepthRange(t *testing.T) {
	m := make([]float32, 16)
	Perspective(m, float32(math.Pi/4), 16.0/9.0, 0.1, 100)

	// A point on the near plane maps to clip depth 0.
	_, _, z, w := transformPoint(m, 0, 0, -0.1)
	assert.InDelta(t, 0, z/w, matrixTol)

	// A point on the far plane maps to clip depth 1.
	_, _, z, w = transformPoint(m, 0, 0, -100)
	assert.InDelta(t, 1, z/w, matrixTol)

	// w carries the view-space distance.
	assert.InDelta(t, 100, w, 1e-3)
}

func TestLookAtTransformsTargetOntoViewAxis(t *testing.T) {
	m := make([]float32, 16)
	LookAt(m, 0, 0, 5, 0, 0, 0, 0, 1, 0)

	// The eye maps to the origin.
	x, y, z, _ := transformPoint(m, 0, 0, 5)
	assert.InDelta(t, 0, x, matrixTol)
	assert.InDelta(t, 0, y, matrixTol)
	assert.InDelta(t, 0, z, matrixTol)

	// The target sits 5 units down the -Z view axis.
	x, y, z, _ = transformPoint(m, 0, 0, 0)
	assert.InDelta(t, 0, x, matrixTol)
	assert.InDelta(t, 0, y, matrixTol)
	assert.InDelta(t, -5, z, matrixTol)

	// World up stays up for a horizontal view.
	_, y, _, _ = transformPoint(m, 0, 1, 5)
	assert.InDelta(t, 1, y, matrixTol)
}

func TestInvert4RoundTrip(t *testing.T) {
	m := make([]float32, 16)
	BuildModelMatrix(m, 3, -1, 2, 0.3, 1.1, -0.7, 2, 0.5, 1.5)

	inv := make([]float32, 16)
	require.True(t, Invert4(inv, m))

	product := make([]float32, 16)
	Mul4(product, m, inv)

	identity := make([]float32, 16)
	Identity(identity)
	assertMat4Equal(t, identity, product)
}

func TestInvert4Singular(t *testing.T) {
	m := make([]float32, 16) // all zeros
	out := make([]float32, 16)
	out[3] = 42

	assert.False(t, Invert4(out, m))
	// Output untouched on failure.
	assert.Equal(t, float32(42), out[3])
}

func TestBuildModelMatrixTranslationAndScale(t *testing.T) {
	m := make([]float32, 16)
	BuildModelMatrix(m, 10, 20, 30, 0, 0, 0, 2, 3, 4)

	x, y, z, _ := transformPoint(m, 1, 1, 1)
	assert.InDelta(t, 12, x, matrixTol)
	assert.InDelta(t, 23, y, matrixTol)
	assert.InDelta(t, 34, z, matrixTol)
}

func TestBuildModelMatrixYawRotation(t *testing.T) {
	m := make([]float32, 16)
	BuildModelMatrix(m, 0, 0, 0, 0, float32(math.Pi/2), 0, 1, 1, 1)

	// A quarter turn around Y carries +X onto -Z.
	x, y, z, _ := transformPoint(m, 1, 0, 0)
	assert.InDelta(t, 0, x, matrixTol)
	assert.InDelta(t, 0, y, matrixTol)
	assert.InDelta(t, -1, z, matrixTol)
}

func TestCoalesce(t *testing.T) {
	assert.Equal(t, 3, Coalesce(0, 0, 3, 5))
	assert.Equal(t, "a", Coalesce("", "a"))
	assert.Zero(t, Coalesce(0, 0))
	assert.Zero(t, Coalesce[int]())
}

func TestSliceToBytes(t *testing.T) {
	assert.Nil(t, SliceToBytes[float32](nil))

	data := SliceToBytes([]float32{1})
	require.Len(t, data, 4)
	assert.Equal(t, []byte{0x00, 0x00, 0x80, 0x3f}, data)

	assert.Len(t, SliceToBytes([]uint32{1, 2, 3}), 12)
}

func TestStructToBytes(t *testing.T) {
	type block struct {
		A uint32
		B float32
	}
	data := StructToBytes(block{A: 1, B: 1.0})
	require.Len(t, data, 8)
	assert.Equal(t, []byte{0x01, 0x00, 0x00, 0x00}, data[0:4])
	assert.Equal(t, []byte{0x00, 0x00, 0x80, 0x3f}, data[4:8])
}
