package wireframe

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/cwbudde/algo-soundscape/dsp/core"
	"github.com/cwbudde/algo-soundscape/interact"
)

// Camera and animation constants.
const (
	FieldOfView  = 45 // degrees
	CameraZ      = 5
	Easing       = 0.1 // fraction of the remaining rotation covered per Step
	LevelPulse   = 0.5 // extra scale at full audio level
	PositionGain = 2   // world units per unit of pointer drag
)

// Segment is a projected edge in screen pixels.
type Segment struct {
	X0, Y0, X1, Y1 float32
}

// Model is the scene state driven by the interaction mapper. It
// implements interact.Scene.
type Model struct {
	mesh   Mesh
	shape  interact.Shape
	target mgl32.Vec2 // rotation about x and y
	rot    mgl32.Vec2
	pos    mgl32.Vec2
	scale  float64
	level  float64
	points []mgl32.Vec3
}

var _ interact.Scene = (*Model)(nil)

// NewModel returns an icosahedron at unit scale.
func NewModel() *Model {
	return &Model{
		mesh:  ForShape(interact.Icosahedron),
		shape: interact.Icosahedron,
		scale: interact.DefaultScale,
	}
}

func (m *Model) SetRotation(x, y float64) { m.target = mgl32.Vec2{float32(x), float32(y)} }
func (m *Model) SetScale(s float64)       { m.scale = s }
func (m *Model) SetPosition(x, y float64) { m.pos = mgl32.Vec2{float32(x), float32(y)} }
func (m *Model) CurrentScale() float64    { return m.scale }

func (m *Model) CreateGeometry(kind interact.Shape) {
	m.shape = kind
	m.mesh = ForShape(kind)
}

// SetAudioLevel sets the pulse amount, clamped to [0, 1].
func (m *Model) SetAudioLevel(level float64) {
	m.level = core.Clamp(level, 0, 1)
}

// Shape returns the current geometry kind.
func (m *Model) Shape() interact.Shape { return m.shape }

// Mesh returns the current geometry.
func (m *Model) Mesh() Mesh { return m.mesh }

// Rotation returns the displayed rotation about x and y.
func (m *Model) Rotation() (x, y float64) {
	return float64(m.rot.X()), float64(m.rot.Y())
}

// Step advances the displayed rotation towards its target. Call once per
// frame.
func (m *Model) Step() {
	m.rot = m.rot.Add(m.target.Sub(m.rot).Mul(Easing))
}

// Segments appends the projected edges for a width x height viewport to
// dst. Edges with a vertex behind the camera are dropped.
func (m *Model) Segments(dst []Segment, width, height float32) []Segment {
	if width <= 0 || height <= 0 {
		return dst
	}

	s := float32(m.scale * (1 + LevelPulse*m.level))

	model := mgl32.Translate3D(m.pos.X()*PositionGain, m.pos.Y()*PositionGain, 0).
		Mul4(mgl32.HomogRotate3DY(m.rot.Y())).
		Mul4(mgl32.HomogRotate3DX(m.rot.X())).
		Mul4(mgl32.Scale3D(s, s, s))
	view := mgl32.LookAtV(mgl32.Vec3{0, 0, CameraZ}, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})
	proj := mgl32.Perspective(mgl32.DegToRad(FieldOfView), width/height, 0.1, 100)
	mvp := proj.Mul4(view).Mul4(model)

	m.points = m.points[:0]

	for _, v := range m.mesh.Vertices {
		clip := mvp.Mul4x1(v.Vec4(1))

		w := clip.W()
		if w <= 0 {
			// z < 0 marks a vertex behind the camera.
			m.points = append(m.points, mgl32.Vec3{0, 0, -1})
			continue
		}

		ndc := clip.Vec3().Mul(1 / w)
		m.points = append(m.points, mgl32.Vec3{
			(ndc.X() + 1) / 2 * width,
			(1 - ndc.Y()) / 2 * height,
			1,
		})
	}

	for _, e := range m.mesh.Edges {
		a, b := m.points[e[0]], m.points[e[1]]
		if a.Z() < 0 || b.Z() < 0 {
			continue
		}

		dst = append(dst, Segment{X0: a.X(), Y0: a.Y(), X1: b.X(), Y1: b.Y()})
	}

	return dst
}
