package gfx

import "github.com/go-gl/mathgl/mgl32"

// InstanceFloats is the number of float32 values per instance record.
const InstanceFloats = 11

// Instance is one per-instance record: position (3), color (4) and a 2x2
// transform in column-major order (4).
type Instance [InstanceFloats]float32

func NewInstance() *Instance {
	return &Instance{}
}

func (i *Instance) Position(p mgl32.Vec3) *Instance {
	copy(i[0:3], p[:])
	return i
}

func (i *Instance) Color(c mgl32.Vec4) *Instance {
	copy(i[3:7], c[:])
	return i
}

func (i *Instance) Matrix(m mgl32.Mat2) *Instance {
	copy(i[7:11], m[:])
	return i
}

var instanceLayout = []Attrib{
	VecF32{Location: LocationPosition, Len: 3},
	VecF32{Location: LocationColor, Len: 4},
	MatF32{Location: LocationTransform, Rows: 2, Columns: 2},
}
