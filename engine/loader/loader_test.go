package loader

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// triangleJSON describes one triangle mesh whose geometry lives in the GLB
// binary chunk: positions at view 0, uint16 indices at view 1.
const triangleJSON = `{
	"asset": {"version": "2.0"},
	"scene": 0,
	"scenes": [{"nodes": [0]}],
	"nodes": [{"name": "tri", "mesh": 0, "translation": [1, 2, 3]}],
	"meshes": [{"primitives": [{"attributes": {"POSITION": 0}, "indices": 1, "material": 0}]}],
	"materials": [{"pbrMetallicRoughness": {"baseColorFactor": [1, 0, 0, 1]}}],
	"accessors": [
		{"bufferView": 0, "componentType": 5126, "count": 3, "type": "VEC3"},
		{"bufferView": 1, "componentType": 5123, "count": 3, "type": "SCALAR"}
	],
	"bufferViews": [
		{"buffer": 0, "byteOffset": 0, "byteLength": 36},
		{"buffer": 0, "byteOffset": 36, "byteLength": 6}
	],
	"buffers": [{"byteLength": 42}]
}`

// triangleBinary packs the triangle's geometry the way the JSON above
// describes it.
func triangleBinary() []byte {
	buf := new(bytes.Buffer)
	positions := []float32{
		0, 0, 0,
		1, 0, 0,
		0, 1, 0,
	}
	binary.Write(buf, binary.LittleEndian, positions)
	binary.Write(buf, binary.LittleEndian, []uint16{0, 1, 2})
	return buf.Bytes()
}

// buildGLB wraps a JSON document and binary payload in a GLB container with
// the required 4-byte chunk alignment.
func buildGLB(t *testing.T, jsonDoc string, bin []byte) []byte {
	t.Helper()

	jsonChunk := []byte(jsonDoc)
	for len(jsonChunk)%4 != 0 {
		jsonChunk = append(jsonChunk, ' ')
	}
	binChunk := append([]byte(nil), bin...)
	for len(binChunk)%4 != 0 {
		binChunk = append(binChunk, 0)
	}

	buf := new(bytes.Buffer)
	total := 12 + 8 + len(jsonChunk) + 8 + len(binChunk)
	binary.Write(buf, binary.LittleEndian, gltfGLBHeader{Magic: gltfGLBMagic, Version: gltfGLBVersion, Length: uint32(total)})
	binary.Write(buf, binary.LittleEndian, gltfGLBChunkHeader{ChunkLength: uint32(len(jsonChunk)), ChunkType: gltfGLBChunkJSON})
	buf.Write(jsonChunk)
	binary.Write(buf, binary.LittleEndian, gltfGLBChunkHeader{ChunkLength: uint32(len(binChunk)), ChunkType: gltfGLBChunkBIN})
	buf.Write(binChunk)
	return buf.Bytes()
}

func TestLoadReaderGLBTriangle(t *testing.T) {
	glb := buildGLB(t, triangleJSON, triangleBinary())

	meshes, err := NewLoader().LoadReader("tri", bytes.NewReader(glb), true)
	require.NoError(t, err)
	require.Len(t, meshes, 1)

	mesh := meshes[0]
	assert.Equal(t, "tri", mesh.Name)
	assert.Equal(t, 3, mesh.IndexCount)

	// Three vertices interleaved at a 32-byte stride, uint32 indices.
	assert.Len(t, mesh.VertexData, 3*32)
	assert.Len(t, mesh.IndexData, 3*4)
	assert.Equal(t, uint32(0), binary.LittleEndian.Uint32(mesh.IndexData[0:4]))
	assert.Equal(t, uint32(1), binary.LittleEndian.Uint32(mesh.IndexData[4:8]))
	assert.Equal(t, uint32(2), binary.LittleEndian.Uint32(mesh.IndexData[8:12]))

	// Second vertex position starts at the stride boundary.
	x := math.Float32frombits(binary.LittleEndian.Uint32(mesh.VertexData[32:36]))
	assert.Equal(t, float32(1), x)

	// Missing normals are generated: the triangle faces +Z.
	nz := math.Float32frombits(binary.LittleEndian.Uint32(mesh.VertexData[20:24]))
	assert.Greater(t, nz, float32(0))

	// Node translation lands in the matrix translation column.
	assert.Equal(t, float32(1), mesh.Transform[12])
	assert.Equal(t, float32(2), mesh.Transform[13])
	assert.Equal(t, float32(3), mesh.Transform[14])

	assert.Equal(t, [4]float32{1, 0, 0, 1}, mesh.BaseColor)
	assert.Nil(t, mesh.Texture)
}

func TestLoadReaderEmbeddedGLTF(t *testing.T) {
	encoded := base64.StdEncoding.EncodeToString(triangleBinary())
	doc := `{
		"asset": {"version": "2.0"},
		"scene": 0,
		"scenes": [{"nodes": [0]}],
		"nodes": [{"mesh": 0}],
		"meshes": [{"name": "embedded", "primitives": [{"attributes": {"POSITION": 0}, "indices": 1}]}],
		"accessors": [
			{"bufferView": 0, "componentType": 5126, "count": 3, "type": "VEC3"},
			{"bufferView": 1, "componentType": 5123, "count": 3, "type": "SCALAR"}
		],
		"bufferViews": [
			{"buffer": 0, "byteOffset": 0, "byteLength": 36},
			{"buffer": 0, "byteOffset": 36, "byteLength": 6}
		],
		"buffers": [{"byteLength": 42, "uri": "data:application/octet-stream;base64,` + encoded + `"}]
	}`

	meshes, err := NewLoader().LoadReader("embedded", bytes.NewReader([]byte(doc)), false)
	require.NoError(t, err)
	require.Len(t, meshes, 1)

	// The nameless node falls back to the mesh name, and the untextured
	// default material applies.
	assert.Equal(t, "embedded", meshes[0].Name)
	assert.Equal(t, [4]float32{1, 1, 1, 1}, meshes[0].BaseColor)

	// Identity transform for a bare node.
	assert.Equal(t, float32(1), meshes[0].Transform[0])
	assert.Equal(t, float32(0), meshes[0].Transform[12])
}

func TestLoadReaderRejectsBadContainer(t *testing.T) {
	l := NewLoader()

	_, err := l.LoadReader("bad-magic", bytes.NewReader([]byte("not a glb file at all")), true)
	assert.Error(t, err)

	_, err = l.LoadReader("bad-version", bytes.NewReader([]byte(`{"asset": {"version": "1.0"}}`)), false)
	assert.Error(t, err)
}

func TestLoaderCachesByName(t *testing.T) {
	glb := buildGLB(t, triangleJSON, triangleBinary())
	l := NewLoader()

	assert.Nil(t, l.Get("tri"))

	first, err := l.LoadReader("tri", bytes.NewReader(glb), true)
	require.NoError(t, err)

	// A second load with a garbage reader hits the cache.
	second, err := l.LoadReader("tri", bytes.NewReader(nil), true)
	require.NoError(t, err)
	assert.Same(t, &first[0], &second[0])

	assert.NotNil(t, l.Get("tri"))
}

func TestComputeFlatNormalsAreNormalized(t *testing.T) {
	positions := [][3]float32{
		{0, 0, 0},
		{2, 0, 0},
		{0, 2, 0},
	}
	normals := computeFlatNormals(positions, []uint32{0, 1, 2})

	require.Len(t, normals, 3)
	for _, n := range normals {
		length := math.Sqrt(float64(n[0]*n[0] + n[1]*n[1] + n[2]*n[2]))
		assert.InDelta(t, 1.0, length, 1e-5)
		assert.InDelta(t, 1.0, float64(n[2]), 1e-5)
	}
}
