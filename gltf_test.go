package frag3d

import (
	"encoding/base64"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"testing"
)

// testGLTF returns a document with a red triangle in a node moved to (1, 2, 3), and a child node
// drawing the same three vertices as a line primitive.
func testGLTF() []byte {
	return gltfDocument(
		`[0]`,
		`{"name": "tri", "mesh": 0, "translation": [1, 2, 3], "children": [1]},
		{"name": "lines", "mesh": 1}`,
		`{"name": "tri", "primitives": [{"attributes": {"POSITION": 0}, "indices": 1, "material": 0}]},
		{"name": "lines", "primitives": [{"attributes": {"POSITION": 0}, "mode": 1}]}`,
		"",
	)
}

// gltfDocument fills in a document around the given scene nodes, nodes, meshes and extra top level
// fields. Accessor 0 holds the corners of a unit right triangle and accessor 1 its indices.
func gltfDocument(sceneNodes, nodes, meshes, extra string) []byte {

	buf := make([]byte, 0, 44)
	for _, v := range []float32{0, 0, 0, 1, 0, 0, 0, 1, 0} {
		buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(v))
	}
	for _, i := range []uint16{0, 1, 2, 0} {
		buf = binary.LittleEndian.AppendUint16(buf, i)
	}

	return []byte(fmt.Sprintf(`{
	"asset": {"version": "2.0"},
	"scene": 0,
	"scenes": [{"nodes": %s}],
	"nodes": [%s],
	"meshes": [%s],
	"materials": [{"pbrMetallicRoughness": {"baseColorFactor": [1, 0, 0, 1]}}],
	"buffers": [{"byteLength": %d, "uri": "data:application/octet-stream;base64,%s"}],
	"bufferViews": [
		{"buffer": 0, "byteOffset": 0, "byteLength": 36},
		{"buffer": 0, "byteOffset": 36, "byteLength": 6}
	],
	"accessors": [
		{"bufferView": 0, "componentType": 5126, "count": 3, "type": "VEC3", "min": [0, 0, 0], "max": [1, 1, 0]},
		{"bufferView": 1, "componentType": 5123, "count": 3, "type": "SCALAR"}
	]%s
}`, sceneNodes, nodes, meshes, len(buf), base64.StdEncoding.EncodeToString(buf), extra))

}

func TestLoadGLTFData(t *testing.T) {

	root, err := LoadGLTFData(testGLTF(), nil)
	if err != nil {
		t.Fatal(err)
	}

	if len(root.Objects) != 1 {
		t.Fatalf("root has %d children, want 1", len(root.Objects))
	}
	node, ok := root.Objects[0].(*ObjectContainer)
	if !ok {
		t.Fatalf("node loaded as %T", root.Objects[0])
	}
	if node.ObjM != NewMat4Translate(1, 2, 3) {
		t.Errorf("node transform = %v", node.ObjM)
	}

	if len(node.Objects) != 2 {
		t.Fatalf("node has %d children, want the triangle and the child node", len(node.Objects))
	}
	tri, ok := node.Objects[0].(*TriangleFacing)
	if !ok {
		t.Fatalf("triangle loaded as %T", node.Objects[0])
	}
	if tri.Points[1] != NewVec3(1, 0, 0) {
		t.Errorf("triangle points = %v", tri.Points)
	}
	if tri.Surface.Color != NewColor(1, 0, 0, 1) {
		t.Errorf("triangle color = %v, want the material's red", tri.Surface.Color)
	}

	child, ok := node.Objects[1].(*ObjectContainer)
	if !ok || len(child.Objects) != 1 {
		t.Fatalf("child node = %#v", node.Objects[1])
	}
	segs, ok := child.Objects[0].(*LineSegments)
	if !ok || len(segs.Points) != 2 {
		t.Fatalf("line primitive loaded as %#v", child.Objects[0])
	}

}

func TestLoadGLTFEmission(t *testing.T) {

	opts := DefaultGLTFLoadOptions()
	opts.BackfaceCulling = false
	opts.EdgeLine = NewLineProp(NewColor(0, 0, 0, 1), 2)

	root, err := LoadGLTFData(testGLTF(), opts)
	if err != nil {
		t.Fatal(err)
	}

	frags := emit(root)
	counts := countTypes(frags)
	// the triangle's three edges, and the line primitive's one segment
	if counts[FragmentTriangle] != 1 || counts[FragmentLineSeg] != 4 {
		t.Fatalf("got %v", counts)
	}

	for _, f := range frags {
		if f.Type == FragmentTriangle && f.Points[0] != NewVec3(1, 2, 3) {
			t.Errorf("triangle wasn't moved by its node: %v", f.Points)
		}
		if f.Type == FragmentLineSeg && f.Line != opts.EdgeLine {
			t.Error("segment isn't drawn with the edge line")
		}
	}

}

func TestLoadGLTFErrors(t *testing.T) {

	if _, err := LoadGLTFData([]byte(`{"asset": {"version": "2.0"}}`), nil); !errors.Is(err, ErrGLTFNoScene) {
		t.Errorf("document without scenes: got %v", err)
	}

	if _, err := LoadGLTFData([]byte(`not json`), nil); err == nil {
		t.Error("expected an error decoding garbage")
	}

	cyclic := `{"asset": {"version": "2.0"}, "scenes": [{"nodes": [0]}], "nodes": [{"children": [1]}, {"children": [0]}]}`
	if _, err := LoadGLTFData([]byte(cyclic), nil); err == nil {
		t.Error("expected an error for a node graph with a cycle")
	}

	missing := filepath.Join(t.TempDir(), "missing.gltf")
	if _, err := LoadGLTFFile(missing, nil); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file: got %v", err)
	}

}

func TestLoadGLTFMalformed(t *testing.T) {

	badIndices := gltfDocument(`[0]`, `{"mesh": 0}`,
		`{"primitives": [{"attributes": {"POSITION": 0}, "indices": 7}]}`, "")
	if _, err := LoadGLTFData(badIndices, nil); err == nil {
		t.Error("expected an error for a missing index accessor")
	}

	// a light node pointing at a light that doesn't exist is ignored
	for _, light := range []string{"-1", "3"} {
		doc := gltfDocument(`[0, 1]`,
			`{"mesh": 0}, {"extensions": {"KHR_lights_punctual": {"light": `+light+`}}}`,
			`{"primitives": [{"attributes": {"POSITION": 0}, "indices": 1, "material": 0}]}`,
			`, "extensionsUsed": ["KHR_lights_punctual"],
	"extensions": {"KHR_lights_punctual": {"lights": [{"type": "directional"}]}}`)
		if _, err := LoadGLTFData(doc, nil); err != nil {
			t.Errorf("light %s: %v", light, err)
		}
	}

}

func TestLoadGLTFShading(t *testing.T) {

	// The light is turned to shine along -X, grazing the triangle, which faces +Z.
	doc := gltfDocument(`[0, 1]`,
		`{"mesh": 0}, {"rotation": [0, 0.7071067811865476, 0, 0.7071067811865476], "extensions": {"KHR_lights_punctual": {"light": 0}}}`,
		`{"primitives": [{"attributes": {"POSITION": 0}, "indices": 1, "material": 0}]}`,
		`, "extensionsUsed": ["KHR_lights_punctual"],
	"extensions": {"KHR_lights_punctual": {"lights": [{"type": "directional"}]}}`)

	opts := DefaultGLTFLoadOptions()
	root, err := LoadGLTFData(doc, opts)
	if err != nil {
		t.Fatal(err)
	}

	node := root.Objects[0].(*ObjectContainer)
	tri := node.Objects[0].(*TriangleFacing)
	if r := float64(tri.Surface.Color.R); math.Abs(r-opts.Ambient) > 1e-6 {
		t.Errorf("grazing light gives red %v, want the ambient %v", r, opts.Ambient)
	}

	opts.Shade = false
	root, err = LoadGLTFData(doc, opts)
	if err != nil {
		t.Fatal(err)
	}
	tri = root.Objects[0].(*ObjectContainer).Objects[0].(*TriangleFacing)
	if tri.Surface.Color != NewColor(1, 0, 0, 1) {
		t.Errorf("unshaded color = %v", tri.Surface.Color)
	}

}

func TestLoadGLTFFile(t *testing.T) {

	path := filepath.Join(t.TempDir(), "tri.gltf")
	if err := os.WriteFile(path, testGLTF(), 0o644); err != nil {
		t.Fatal(err)
	}

	root, err := LoadGLTFFile(path, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(root.Objects) != 1 {
		t.Errorf("root has %d children, want 1", len(root.Objects))
	}

}

func BenchmarkLoadGLTFData(b *testing.B) {
	data := testGLTF()
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))
	for i := 0; i < b.N; i++ {
		if _, err := LoadGLTFData(data, nil); err != nil {
			b.Fatal(err)
		}
	}
}
