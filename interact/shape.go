package interact

import "fmt"

// Shape selects the geometry shown by the scene.
type Shape int

const (
	Icosahedron Shape = iota
	Cube
	Octahedron
	Tetrahedron
)

var shapeNames = [...]string{
	Icosahedron: "icosahedron",
	Cube:        "cube",
	Octahedron:  "octahedron",
	Tetrahedron: "tetrahedron",
}

// Shapes lists all shapes in key order.
func Shapes() []Shape {
	return []Shape{Icosahedron, Cube, Octahedron, Tetrahedron}
}

// String returns the shape name, also used as its data-shape value.
func (s Shape) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Shape(%d)", int(s))
	}

	return shapeNames[s]
}

// Valid reports whether s is a declared shape.
func (s Shape) Valid() bool {
	return s >= Icosahedron && s <= Tetrahedron
}
