// Package wireframe holds the polyhedra shown by the soundscape front end
// and projects them to 2D line segments with mathgl.
package wireframe

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/cwbudde/algo-soundscape/interact"
)

// Mesh is a wireframe: unit-radius vertices and the index pairs joining them.
type Mesh struct {
	Vertices []mgl32.Vec3
	Edges    [][2]int
}

// ForShape builds the mesh of a shape. Unknown shapes fall back to the
// icosahedron.
func ForShape(s interact.Shape) Mesh {
	switch s {
	case interact.Cube:
		return fromVertices(signs(1, 1, 1))
	case interact.Octahedron:
		return fromVertices([]mgl32.Vec3{
			{1, 0, 0}, {-1, 0, 0}, {0, 1, 0}, {0, -1, 0}, {0, 0, 1}, {0, 0, -1},
		})
	case interact.Tetrahedron:
		return fromVertices([]mgl32.Vec3{
			{1, 1, 1}, {1, -1, -1}, {-1, 1, -1}, {-1, -1, 1},
		})
	default:
		phi := float32((1 + math.Sqrt(5)) / 2)

		var v []mgl32.Vec3
		v = append(v, signs(0, 1, phi)...)
		v = append(v, signs(1, phi, 0)...)
		v = append(v, signs(phi, 0, 1)...)

		return fromVertices(dedupe(v))
	}
}

// signs expands (x, y, z) to every sign combination of its components.
func signs(x, y, z float32) []mgl32.Vec3 {
	out := make([]mgl32.Vec3, 0, 8)

	for _, sx := range [2]float32{1, -1} {
		for _, sy := range [2]float32{1, -1} {
			for _, sz := range [2]float32{1, -1} {
				out = append(out, mgl32.Vec3{sx * x, sy * y, sz * z})
			}
		}
	}

	return dedupe(out)
}

func dedupe(v []mgl32.Vec3) []mgl32.Vec3 {
	out := v[:0:0]

outer:
	for _, p := range v {
		for _, q := range out {
			if p.ApproxEqual(q) {
				continue outer
			}
		}

		out = append(out, p)
	}

	return out
}

// fromVertices scales the vertices onto the unit sphere and joins every
// pair at the shortest distance, which yields the edges of a regular
// polyhedron.
func fromVertices(v []mgl32.Vec3) Mesh {
	m := Mesh{Vertices: make([]mgl32.Vec3, len(v))}
	for i, p := range v {
		m.Vertices[i] = p.Normalize()
	}

	shortest := float32(math.Inf(1))

	for i := range m.Vertices {
		for j := i + 1; j < len(m.Vertices); j++ {
			shortest = min(shortest, m.Vertices[i].Sub(m.Vertices[j]).Len())
		}
	}

	const eps = 1e-4

	for i := range m.Vertices {
		for j := i + 1; j < len(m.Vertices); j++ {
			if m.Vertices[i].Sub(m.Vertices[j]).Len()-shortest < eps {
				m.Edges = append(m.Edges, [2]int{i, j})
			}
		}
	}

	return m
}
