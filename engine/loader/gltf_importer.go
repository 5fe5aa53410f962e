package loader

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/Carmen-Shannon/oxy-postfx/common"
)

// MeshData is a single draw-ready mesh extracted from a model file: an
// interleaved vertex buffer (position, normal, uv at a 32-byte stride), a
// uint32 index buffer, the node's flattened world transform, and base color
// material data.
type MeshData struct {
	Name       string
	VertexData []byte
	IndexData  []byte
	IndexCount int
	Transform  [16]float32
	BaseColor  [4]float32
	Texture    *common.TextureStagingData
}

// gltfImporterImpl is the implementation of the gltfImporter interface.
type gltfImporterImpl struct {
	parser gltfParser
}

// gltfImporter converts a parsed glTF document into flat MeshData records.
// Internal to the loader package.
type gltfImporter interface {
	// Import extracts all meshes reachable from the document's default scene,
	// flattening node hierarchies into per-mesh world transforms.
	//
	// Returns:
	//   - []MeshData: the extracted meshes
	//   - error: error if extraction fails
	Import() ([]MeshData, error)
}

var _ gltfImporter = &gltfImporterImpl{}

// newGLTFImporter creates an importer over an already-parsed document.
//
// Parameters:
//   - parser: the parser holding the parsed document
//
// Returns:
//   - gltfImporter: a new importer instance
func newGLTFImporter(parser gltfParser) gltfImporter {
	return &gltfImporterImpl{parser: parser}
}

func (imp *gltfImporterImpl) Import() ([]MeshData, error) {
	doc := imp.parser.Document()
	if doc == nil {
		return nil, fmt.Errorf("no document loaded")
	}

	sceneIndex := 0
	if doc.Scene != nil {
		sceneIndex = *doc.Scene
	}
	if sceneIndex >= len(doc.Scenes) {
		return nil, fmt.Errorf("scene index %d out of range", sceneIndex)
	}

	var identity [16]float32
	common.Identity(identity[:])

	var meshes []MeshData
	for _, nodeIndex := range doc.Scenes[sceneIndex].Nodes {
		if err := imp.walkNode(doc, nodeIndex, identity, &meshes); err != nil {
			return nil, err
		}
	}

	return meshes, nil
}

// walkNode recursively visits a node and its children, accumulating the
// parent transform and extracting any mesh primitives attached to the node.
func (imp *gltfImporterImpl) walkNode(doc *gltfDocument, nodeIndex int, parent [16]float32, out *[]MeshData) error {
	if nodeIndex < 0 || nodeIndex >= len(doc.Nodes) {
		return fmt.Errorf("node index %d out of range", nodeIndex)
	}
	node := &doc.Nodes[nodeIndex]

	local := nodeLocalTransform(node)
	var world [16]float32
	common.Mul4(world[:], parent[:], local[:])

	if node.Mesh != nil {
		if *node.Mesh < 0 || *node.Mesh >= len(doc.Meshes) {
			return fmt.Errorf("mesh index %d out of range", *node.Mesh)
		}
		mesh := &doc.Meshes[*node.Mesh]
		for primIndex := range mesh.Primitives {
			data, err := imp.extractPrimitive(doc, mesh, primIndex, node.Name, world)
			if err != nil {
				return fmt.Errorf("mesh %q primitive %d: %w", mesh.Name, primIndex, err)
			}
			*out = append(*out, data)
		}
	}

	for _, child := range node.Children {
		if err := imp.walkNode(doc, child, world, out); err != nil {
			return err
		}
	}

	return nil
}

// extractPrimitive reads one primitive's attributes into an interleaved
// vertex buffer. Missing normals are generated flat per-triangle; missing
// texture coordinates are zero-filled.
func (imp *gltfImporterImpl) extractPrimitive(doc *gltfDocument, mesh *gltfMesh, primIndex int, nodeName string, world [16]float32) (MeshData, error) {
	prim := &mesh.Primitives[primIndex]

	posAccessor, ok := prim.Attributes["POSITION"]
	if !ok {
		return MeshData{}, fmt.Errorf("primitive has no POSITION attribute")
	}

	positions, err := imp.parser.ReadVec3Accessor(posAccessor)
	if err != nil {
		return MeshData{}, err
	}

	var indices []uint32
	if prim.Indices != nil {
		indices, err = imp.parser.ReadIndicesAccessor(*prim.Indices)
		if err != nil {
			return MeshData{}, err
		}
	} else {
		indices = make([]uint32, len(positions))
		for i := range indices {
			indices[i] = uint32(i)
		}
	}

	var normals [][3]float32
	if normalAccessor, ok := prim.Attributes["NORMAL"]; ok {
		normals, err = imp.parser.ReadVec3Accessor(normalAccessor)
		if err != nil {
			return MeshData{}, err
		}
	} else {
		normals = computeFlatNormals(positions, indices)
	}

	var uvs [][2]float32
	if uvAccessor, ok := prim.Attributes["TEXCOORD_0"]; ok {
		uvs, err = imp.parser.ReadVec2Accessor(uvAccessor)
		if err != nil {
			return MeshData{}, err
		}
	}

	interleaved := make([]float32, 0, len(positions)*8)
	for i := range positions {
		interleaved = append(interleaved, positions[i][0], positions[i][1], positions[i][2])
		if i < len(normals) {
			interleaved = append(interleaved, normals[i][0], normals[i][1], normals[i][2])
		} else {
			interleaved = append(interleaved, 0, 1, 0)
		}
		if i < len(uvs) {
			interleaved = append(interleaved, uvs[i][0], uvs[i][1])
		} else {
			interleaved = append(interleaved, 0, 0)
		}
	}

	name := nodeName
	if name == "" {
		name = mesh.Name
	}
	if primIndex > 0 {
		name = fmt.Sprintf("%s_%d", name, primIndex)
	}

	data := MeshData{
		Name:       name,
		VertexData: common.SliceToBytes(interleaved),
		IndexData:  common.SliceToBytes(indices),
		IndexCount: len(indices),
		Transform:  world,
		BaseColor:  [4]float32{1, 1, 1, 1},
	}

	if prim.Material != nil && *prim.Material >= 0 && *prim.Material < len(doc.Materials) {
		if err := imp.applyMaterial(doc, &doc.Materials[*prim.Material], &data); err != nil {
			return MeshData{}, err
		}
	}

	return data, nil
}

// applyMaterial copies the base color factor and decodes the base color
// texture, if any, into staging pixels.
func (imp *gltfImporterImpl) applyMaterial(doc *gltfDocument, mat *gltfMaterial, data *MeshData) error {
	pbr := mat.PBRMetallicRoughness
	if pbr == nil {
		return nil
	}

	if pbr.BaseColorFactor != nil {
		data.BaseColor = *pbr.BaseColorFactor
	}

	if pbr.BaseColorTexture == nil {
		return nil
	}
	texIndex := pbr.BaseColorTexture.Index
	if texIndex < 0 || texIndex >= len(doc.Textures) || doc.Textures[texIndex].Source == nil {
		return nil
	}
	imgIndex := *doc.Textures[texIndex].Source
	if imgIndex < 0 || imgIndex >= len(doc.Images) {
		return nil
	}

	staging, err := imp.decodeImage(&doc.Images[imgIndex])
	if err != nil {
		return fmt.Errorf("material %q texture: %w", mat.Name, err)
	}
	data.Texture = staging

	return nil
}

// decodeImage decodes an image referenced by URI, data URI, or buffer view
// into RGBA staging pixels.
func (imp *gltfImporterImpl) decodeImage(img *gltfImage) (*common.TextureStagingData, error) {
	var raw []byte
	var err error

	switch {
	case img.BufferView != nil:
		raw, err = imp.parser.ReadViewData(*img.BufferView)
	case strings.HasPrefix(img.URI, "data:"):
		raw, err = (&gltfParserImpl{}).loadDataURI(img.URI)
	case img.URI != "":
		raw, err = os.ReadFile(filepath.Join(imp.parser.BaseDir(), img.URI))
	default:
		return nil, fmt.Errorf("image has no URI or buffer view")
	}
	if err != nil {
		return nil, err
	}

	decoded, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := decoded.Bounds()
	rgba := image.NewRGBA(bounds)
	draw.Draw(rgba, bounds, decoded, bounds.Min, draw.Src)

	return &common.TextureStagingData{
		Pixels: rgba.Pix,
		Width:  uint32(bounds.Dx()),
		Height: uint32(bounds.Dy()),
	}, nil
}

// computeFlatNormals generates per-vertex normals by accumulating triangle
// face normals. Used when the source asset omits NORMAL data.
func computeFlatNormals(positions [][3]float32, indices []uint32) [][3]float32 {
	normals := make([][3]float32, len(positions))

	for i := 0; i+2 < len(indices); i += 3 {
		a := positions[indices[i]]
		b := positions[indices[i+1]]
		c := positions[indices[i+2]]

		e1 := [3]float32{b[0] - a[0], b[1] - a[1], b[2] - a[2]}
		e2 := [3]float32{c[0] - a[0], c[1] - a[1], c[2] - a[2]}

		n := [3]float32{
			e1[1]*e2[2] - e1[2]*e2[1],
			e1[2]*e2[0] - e1[0]*e2[2],
			e1[0]*e2[1] - e1[1]*e2[0],
		}

		for _, idx := range indices[i : i+3] {
			normals[idx][0] += n[0]
			normals[idx][1] += n[1]
			normals[idx][2] += n[2]
		}
	}

	for i := range normals {
		n := &normals[i]
		length := float32(math.Sqrt(float64(n[0]*n[0] + n[1]*n[1] + n[2]*n[2])))
		if length > 0 {
			n[0] /= length
			n[1] /= length
			n[2] /= length
		} else {
			n[1] = 1
		}
	}

	return normals
}

// nodeLocalTransform builds a node's local matrix from either its explicit
// matrix or its TRS components.
func nodeLocalTransform(node *gltfNode) [16]float32 {
	var m [16]float32

	if len(node.Matrix) == 16 {
		copy(m[:], node.Matrix)
		return m
	}

	scale := [3]float32{1, 1, 1}
	if node.Scale != nil {
		scale = *node.Scale
	}

	rotation := node.Rotation
	if rotation == ([4]float32{}) {
		rotation = [4]float32{0, 0, 0, 1}
	}

	quatToMatrix(&m, rotation)

	m[0] *= scale[0]
	m[1] *= scale[0]
	m[2] *= scale[0]
	m[4] *= scale[1]
	m[5] *= scale[1]
	m[6] *= scale[1]
	m[8] *= scale[2]
	m[9] *= scale[2]
	m[10] *= scale[2]

	m[12] = node.Translation[0]
	m[13] = node.Translation[1]
	m[14] = node.Translation[2]

	return m
}

// quatToMatrix writes a rotation matrix for the quaternion (x, y, z, w).
func quatToMatrix(m *[16]float32, q [4]float32) {
	x, y, z, w := q[0], q[1], q[2], q[3]

	xx, yy, zz := x*x, y*y, z*z
	xy, xz, yz := x*y, x*z, y*z
	wx, wy, wz := w*x, w*y, w*z

	m[0] = 1 - 2*(yy+zz)
	m[1] = 2 * (xy + wz)
	m[2] = 2 * (xz - wy)
	m[3] = 0

	m[4] = 2 * (xy - wz)
	m[5] = 1 - 2*(xx+zz)
	m[6] = 2 * (yz + wx)
	m[7] = 0

	m[8] = 2 * (xz + wy)
	m[9] = 2 * (yz - wx)
	m[10] = 1 - 2*(xx+yy)
	m[11] = 0

	m[12], m[13], m[14] = 0, 0, 0
	m[15] = 1
}
