// Package geometry defines the sprite vertex layout and the meshes that can
// be drawn with it. Every mesh fits the unit box centered on the origin.
package geometry

import "fmt"

// Vertex is one interleaved vertex: position, texture coordinate, color.
type Vertex struct {
	Position [2]float32
	TexCoord [2]float32
	Color    [3]float32
}

// Floats per vertex and their offsets, in float32 units.
const (
	PositionOffset = 0
	TexCoordOffset = 2
	ColorOffset    = 4
	VertexFloats   = 7
	Stride         = VertexFloats * 4
)

// Shape selects a mesh.
type Shape string

const (
	ShapeQuad     Shape = "quad"
	ShapeSquare   Shape = "square"
	ShapeTriangle Shape = "triangle"
)

// Shapes lists the accepted shape names.
var Shapes = []Shape{ShapeQuad, ShapeSquare, ShapeTriangle}

// Textured reports whether the shape samples the sprite texture.
func (s Shape) Textured() bool { return s == ShapeQuad }

// Mesh is indexed triangle geometry.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint16
}

var (
	white  = [3]float32{1, 1, 1}
	orange = [3]float32{1, 0.5, 0}
)

// quadIndices splits the four corners into two triangles.
var quadIndices = []uint16{0, 3, 1, 1, 3, 2}

// Quad is a white textured quad.
func Quad() Mesh {
	return Mesh{
		Vertices: []Vertex{
			{Position: [2]float32{0.5, 0.5}, TexCoord: [2]float32{1, 1}, Color: white},
			{Position: [2]float32{0.5, -0.5}, TexCoord: [2]float32{1, 0}, Color: white},
			{Position: [2]float32{-0.5, -0.5}, TexCoord: [2]float32{0, 0}, Color: white},
			{Position: [2]float32{-0.5, 0.5}, TexCoord: [2]float32{0, 1}, Color: white},
		},
		Indices: quadIndices,
	}
}

// Square has a different color in each corner.
func Square() Mesh {
	return Mesh{
		Vertices: []Vertex{
			{Position: [2]float32{0.5, 0.5}, Color: [3]float32{1, 1, 0}},
			{Position: [2]float32{0.5, -0.5}, Color: [3]float32{0, 1, 0}},
			{Position: [2]float32{-0.5, -0.5}, Color: [3]float32{1, 0, 0}},
			{Position: [2]float32{-0.5, 0.5}, Color: [3]float32{0, 0, 1}},
		},
		Indices: quadIndices,
	}
}

// Triangle is a solid orange triangle.
func Triangle() Mesh {
	return Mesh{
		Vertices: []Vertex{
			{Position: [2]float32{-0.5, -0.5}, Color: orange},
			{Position: [2]float32{0.5, -0.5}, Color: orange},
			{Position: [2]float32{0, 0.5}, Color: orange},
		},
		Indices: []uint16{0, 1, 2},
	}
}

// ForShape returns the mesh for s.
func ForShape(s Shape) (Mesh, error) {
	switch s {
	case ShapeQuad:
		return Quad(), nil
	case ShapeSquare:
		return Square(), nil
	case ShapeTriangle:
		return Triangle(), nil
	}
	return Mesh{}, fmt.Errorf("unknown shape %q", s)
}

// Interleave flattens the vertices for upload to a vertex buffer.
func (m Mesh) Interleave() []float32 {
	out := make([]float32, 0, len(m.Vertices)*VertexFloats)
	for _, v := range m.Vertices {
		out = append(out, v.Position[:]...)
		out = append(out, v.TexCoord[:]...)
		out = append(out, v.Color[:]...)
	}
	return out
}
