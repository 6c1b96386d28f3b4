package frag3d

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/ext/lightspunctual"
	"github.com/qmuntal/gltf/modeler"
)

// ErrGLTFNoScene is returned when a glTF document has no scene to load.
var ErrGLTFNoScene = errors.New("gltf document has no scenes")

// GLTFLoadOptions alters how a glTF document is turned into Objects.
type GLTFLoadOptions struct {
	// BackfaceCulling loads triangles as TriangleFacing objects, so only faces turned towards the camera are drawn.
	BackfaceCulling bool
	// DefaultSurface is used for triangles of primitives without a material.
	DefaultSurface *SurfaceProp
	// EdgeLine, if set, outlines each triangle with line segments drawn in this style.
	EdgeLine *LineProp
	// Shade darkens each triangle's color by how directly it faces the directional lights of the document
	// (KHR_lights_punctual). Documents without lights are left unshaded.
	Shade bool
	// Ambient is the fraction of a surface's color left in full shadow when shading.
	Ambient float64
	// PointSize is the marker size for point primitives.
	PointSize float64
	// Parallel loads the containers with parallel emission set.
	Parallel bool
}

// DefaultGLTFLoadOptions creates an instance of GLTFLoadOptions with some sensible defaults.
func DefaultGLTFLoadOptions() *GLTFLoadOptions {
	return &GLTFLoadOptions{
		BackfaceCulling: true,
		DefaultSurface:  NewSurfaceProp(NewColor(0.8, 0.8, 0.8, 1)),
		Shade:           true,
		Ambient:         0.3,
		PointSize:       1,
	}
}

// LoadGLTFFile loads a .gltf or .glb file from the filepath given; see LoadGLTFData.
func LoadGLTFFile(path string, loadOptions *GLTFLoadOptions) (*ObjectContainer, error) {

	fileData, err := os.ReadFile(path)

	if err != nil {
		return nil, fmt.Errorf("loading gltf file: %w", err)
	}

	return LoadGLTFData(fileData, loadOptions)

}

// LoadGLTFData loads a .gltf or .glb document from the byte data given, using the provided GLTFLoadOptions
// (nil for the defaults). The default scene (or the first scene) is returned as a tree of ObjectContainers,
// one per node, holding the node's transform. Triangle primitives become Triangles (or TriangleFacings),
// line primitives LineSegments and point primitives Points, colored by their material's base color.
func LoadGLTFData(data []byte, loadOptions *GLTFLoadOptions) (*ObjectContainer, error) {

	decoder := gltf.NewDecoder(bytes.NewReader(data))

	doc := new(gltf.Document)

	if err := decoder.Decode(doc); err != nil {
		return nil, fmt.Errorf("decoding gltf: %w", err)
	}

	if loadOptions == nil {
		loadOptions = DefaultGLTFLoadOptions()
	}

	if len(doc.Scenes) == 0 {
		return nil, ErrGLTFNoScene
	}

	sceneIndex := 0
	if doc.Scene != nil && *doc.Scene < len(doc.Scenes) {
		sceneIndex = *doc.Scene
	}

	loader := &gltfLoader{
		doc:       doc,
		options:   loadOptions,
		materials: make(map[int]*SurfaceProp, len(doc.Materials)),
		visited:   make(map[int]bool, len(doc.Nodes)),
	}

	if loadOptions.Shade {
		loader.findLights(doc.Scenes[sceneIndex].Nodes, NewMat4())
	}

	root := NewObjectContainer()
	root.Parallel = loadOptions.Parallel

	for _, nodeIndex := range doc.Scenes[sceneIndex].Nodes {
		child, err := loader.loadNode(nodeIndex, NewMat4())
		if err != nil {
			return nil, err
		}
		root.AddObject(child)
	}

	return root, nil

}

type gltfLoader struct {
	doc       *gltf.Document
	options   *GLTFLoadOptions
	materials map[int]*SurfaceProp
	visited   map[int]bool

	// Directions (in world space) towards each directional light, scaled by the light's intensity.
	lights []Vec3
}

// nodeMatrix returns the local transform of a node, from its matrix or its translation, rotation and scale.
func nodeMatrix(node *gltf.Node) Mat4 {

	if node.Matrix != gltf.DefaultMatrix && node.Matrix != [16]float64{} {
		var m Mat4
		for col := 0; col < 4; col++ {
			for row := 0; row < 4; row++ {
				m[row][col] = node.Matrix[col*4+row]
			}
		}
		return m
	}

	scale := node.Scale
	if scale == [3]float64{} {
		scale = [3]float64{1, 1, 1}
	}

	rotation := node.Rotation
	if rotation == [4]float64{} {
		rotation = [4]float64{0, 0, 0, 1}
	}

	t := NewMat4Translate(node.Translation[0], node.Translation[1], node.Translation[2])
	r := quaternionMatrix(rotation[0], rotation[1], rotation[2], rotation[3])
	s := NewMat4Scale(scale[0], scale[1], scale[2])

	return t.Mult(r).Mult(s)

}

// quaternionMatrix returns the rotation matrix for a unit quaternion.
func quaternionMatrix(x, y, z, w float64) Mat4 {
	return Mat4{
		{1 - 2*(y*y+z*z), 2 * (x*y - z*w), 2 * (x*z + y*w), 0},
		{2 * (x*y + z*w), 1 - 2*(x*x+z*z), 2 * (y*z - x*w), 0},
		{2 * (x*z - y*w), 2 * (y*z + x*w), 1 - 2*(x*x+y*y), 0},
		{0, 0, 0, 1},
	}
}

// findLights collects the directional lights under the nodes given.
func (loader *gltfLoader) findLights(nodes []int, parentM Mat4) {

	lights, ok := loader.doc.Extensions[lightspunctual.ExtensionName].(lightspunctual.Lights)
	if !ok {
		return
	}

	var walk func(nodes []int, parentM Mat4, depth int)
	walk = func(nodes []int, parentM Mat4, depth int) {

		if depth > len(loader.doc.Nodes) {
			return
		}

		for _, nodeIndex := range nodes {

			if nodeIndex < 0 || nodeIndex >= len(loader.doc.Nodes) {
				continue
			}

			node := loader.doc.Nodes[nodeIndex]
			worldM := parentM.Mult(nodeMatrix(node))

			if lighting, exists := node.Extensions[lightspunctual.ExtensionName]; exists {
				if index, ok := lighting.(lightspunctual.LightIndex); ok && int(index) >= 0 && int(index) < len(lights) {
					lightData := lights[index]
					if lightData.Type == lightspunctual.TypeDirectional {
						intensity := 1.0
						if lightData.Intensity != nil {
							intensity = math.Min(float64(*lightData.Intensity), 1)
						}
						// lights shine down their local -Z axis
						origin := worldM.MultVec3(Vec3{})
						towards := worldM.MultVec3(VecZ).Sub(origin).Unit()
						loader.lights = append(loader.lights, towards.Scale(intensity))
					}
				}
			}

			walk(node.Children, worldM, depth+1)

		}

	}

	walk(nodes, parentM, 0)

}

func (loader *gltfLoader) loadNode(nodeIndex int, parentM Mat4) (*ObjectContainer, error) {

	if nodeIndex < 0 || nodeIndex >= len(loader.doc.Nodes) {
		return nil, fmt.Errorf("gltf node index %d out of range", nodeIndex)
	}
	if loader.visited[nodeIndex] {
		return nil, fmt.Errorf("gltf node %d is reachable more than once", nodeIndex)
	}
	loader.visited[nodeIndex] = true

	node := loader.doc.Nodes[nodeIndex]

	container := NewObjectContainer()
	container.ObjM = nodeMatrix(node)
	container.Parallel = loader.options.Parallel

	worldM := parentM.Mult(container.ObjM)

	if node.Mesh != nil {
		if *node.Mesh < 0 || *node.Mesh >= len(loader.doc.Meshes) {
			return nil, fmt.Errorf("gltf node %q refers to missing mesh %d", node.Name, *node.Mesh)
		}
		for _, prim := range loader.doc.Meshes[*node.Mesh].Primitives {
			if err := loader.loadPrimitive(container, prim, worldM); err != nil {
				return nil, fmt.Errorf("gltf mesh %q: %w", loader.doc.Meshes[*node.Mesh].Name, err)
			}
		}
	}

	for _, childIndex := range node.Children {
		child, err := loader.loadNode(childIndex, worldM)
		if err != nil {
			return nil, err
		}
		container.AddObject(child)
	}

	return container, nil

}

func (loader *gltfLoader) surface(prim *gltf.Primitive) *SurfaceProp {

	if prim.Material == nil || *prim.Material < 0 || *prim.Material >= len(loader.doc.Materials) {
		return loader.options.DefaultSurface
	}

	if surface, exists := loader.materials[*prim.Material]; exists {
		return surface
	}

	gltfMat := loader.doc.Materials[*prim.Material]
	color := NewColor(1, 1, 1, 1)
	if gltfMat.PBRMetallicRoughness != nil {
		factor := gltfMat.PBRMetallicRoughness.BaseColorFactorOrDefault()
		color = NewColor(float32(factor[0]), float32(factor[1]), float32(factor[2]), float32(factor[3]))
	}

	surface := NewSurfaceProp(color)
	loader.materials[*prim.Material] = surface
	return surface

}

// shaded returns the surface lit by the document's directional lights, for a triangle with the given
// world space normal.
func (loader *gltfLoader) shaded(surface *SurfaceProp, normal Vec3) *SurfaceProp {

	if !loader.options.Shade || len(loader.lights) == 0 || surface == nil {
		return surface
	}

	normal = normal.Unit()
	light := 0.0
	for _, towards := range loader.lights {
		light += math.Max(normal.Dot(towards), 0)
	}
	light = loader.options.Ambient + (1-loader.options.Ambient)*math.Min(light, 1)

	c := surface.Color
	c.R *= float32(light)
	c.G *= float32(light)
	c.B *= float32(light)
	return &SurfaceProp{Color: c, Hide: surface.Hide}

}

func (loader *gltfLoader) loadPrimitive(container *ObjectContainer, prim *gltf.Primitive, worldM Mat4) error {

	posAccessor, exists := prim.Attributes[gltf.POSITION]
	if !exists || posAccessor < 0 || posAccessor >= len(loader.doc.Accessors) {
		Logger().Warn("skipping gltf primitive without positions")
		return nil
	}

	posBuffer := [][3]float32{}
	vertPos, err := modeler.ReadPosition(loader.doc, loader.doc.Accessors[posAccessor], posBuffer)
	if err != nil {
		return err
	}

	var indices []int
	if prim.Indices != nil {
		if *prim.Indices < 0 || *prim.Indices >= len(loader.doc.Accessors) {
			return fmt.Errorf("missing index accessor %d", *prim.Indices)
		}
		indexBuffer := []uint32{}
		raw, err := modeler.ReadIndices(loader.doc, loader.doc.Accessors[*prim.Indices], indexBuffer)
		if err != nil {
			return err
		}
		indices = make([]int, len(raw))
		for i, j := range raw {
			indices[i] = int(j)
		}
	} else {
		indices = make([]int, len(vertPos))
		for i := range indices {
			indices[i] = i
		}
	}

	for _, idx := range indices {
		if idx >= len(vertPos) {
			return fmt.Errorf("index %d out of range for %d vertices", idx, len(vertPos))
		}
	}

	vert := func(i int) Vec3 {
		p := vertPos[indices[i]]
		return Vec3{float64(p[0]), float64(p[1]), float64(p[2])}
	}

	surface := loader.surface(prim)

	switch prim.Mode {

	case gltf.PrimitiveTriangles:
		var edges *LineSegments
		if loader.options.EdgeLine != nil {
			edges = &LineSegments{Line: loader.options.EdgeLine}
		}
		for i := 0; i+2 < len(indices); i += 3 {
			a, b, c := vert(i), vert(i+1), vert(i+2)
			worldNormal := worldM.MultVec3(b).Sub(worldM.MultVec3(a)).Cross(worldM.MultVec3(c).Sub(worldM.MultVec3(a)))
			s := loader.shaded(surface, worldNormal)
			if loader.options.BackfaceCulling {
				container.AddObject(NewTriangleFacing(a, b, c, s))
			} else {
				container.AddObject(NewTriangle(a, b, c, s))
			}
			if edges != nil {
				edges.Points = append(edges.Points, a, b, b, c, c, a)
			}
		}
		if edges != nil {
			container.AddObject(edges)
		}

	case gltf.PrimitiveLines:
		line := loader.lineFor(surface)
		segs := &LineSegments{Line: line}
		for i := 0; i+1 < len(indices); i += 2 {
			segs.Points = append(segs.Points, vert(i), vert(i+1))
		}
		container.AddObject(segs)

	case gltf.PrimitiveLineStrip, gltf.PrimitiveLineLoop:
		pl := NewPolyLine(loader.lineFor(surface))
		for i := range indices {
			pl.Points = append(pl.Points, vert(i))
		}
		if prim.Mode == gltf.PrimitiveLineLoop && len(indices) > 0 {
			pl.Points = append(pl.Points, vert(0))
		}
		container.AddObject(pl)

	case gltf.PrimitivePoints:
		x := make([]float64, len(indices))
		y := make([]float64, len(indices))
		z := make([]float64, len(indices))
		sizes := make([]float64, len(indices))
		for i := range indices {
			p := vert(i)
			x[i], y[i], z[i] = p.X, p.Y, p.Z
			sizes[i] = loader.options.PointSize
		}
		container.AddObject(NewPoints(x, y, z, sizes, NewMarkerCircle(12), surface, nil))

	default:
		Logger().Warn("skipping gltf primitive with unsupported mode", "mode", prim.Mode)

	}

	return nil

}

// lineFor returns the line style for line primitives: the edge line if set, otherwise the surface color.
func (loader *gltfLoader) lineFor(surface *SurfaceProp) *LineProp {
	if loader.options.EdgeLine != nil {
		return loader.options.EdgeLine
	}
	c := NewColor(1, 1, 1, 1)
	if surface != nil {
		c = surface.Color
	}
	return NewLineProp(c, 1)
}
