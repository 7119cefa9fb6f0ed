package gfx

const floatSize = 4

// Attrib describes one shader input inside an interleaved buffer. The order of
// a slice of attributes fixes the byte layout: the stride is the sum of all
// sizes and each attribute starts where the previous one ended.
type Attrib interface {
	// ByteSize is the number of bytes the attribute occupies per element.
	ByteSize() int32
	// Locations lists the attribute locations the attribute binds.
	Locations() []uint32

	valid() bool
	bind(dev Device, stride, offset int32, divisor uint32)
}

// VecF32 is a float vector of Len components at Location.
type VecF32 struct {
	Location uint32
	Len      int32
}

func (a VecF32) ByteSize() int32 { return a.Len * floatSize }

func (a VecF32) Locations() []uint32 { return []uint32{a.Location} }

func (a VecF32) valid() bool { return a.Len > 0 && a.Len <= 4 }

func (a VecF32) bind(dev Device, stride, offset int32, divisor uint32) {
	dev.VertexAttribPointer(a.Location, a.Len, stride, offset)
	dev.VertexAttribDivisor(a.Location, divisor)
	dev.EnableVertexAttribArray(a.Location)
}

// VecI32 is an int32 vector of Len components at Location, read by the shader
// as integers.
type VecI32 struct {
	Location uint32
	Len      int32
}

func (a VecI32) ByteSize() int32 { return a.Len * floatSize }

func (a VecI32) Locations() []uint32 { return []uint32{a.Location} }

func (a VecI32) valid() bool { return a.Len > 0 && a.Len <= 4 }

func (a VecI32) bind(dev Device, stride, offset int32, divisor uint32) {
	dev.VertexAttribIPointer(a.Location, a.Len, stride, offset)
	dev.VertexAttribDivisor(a.Location, divisor)
	dev.EnableVertexAttribArray(a.Location)
}

// MatF32 is a float matrix. GLSL spreads a matrix input over consecutive
// locations, so it occupies Rows locations starting at Location, each holding
// Columns components.
type MatF32 struct {
	Location uint32
	Rows     int32
	Columns  int32
}

func (a MatF32) ByteSize() int32 { return a.Rows * a.Columns * floatSize }

func (a MatF32) valid() bool {
	return a.Rows > 0 && a.Rows <= 4 && a.Columns > 0 && a.Columns <= 4
}

func (a MatF32) Locations() []uint32 {
	out := make([]uint32, 0, a.Rows)
	for row := int32(0); row < a.Rows; row++ {
		out = append(out, a.Location+uint32(row))
	}
	return out
}

func (a MatF32) bind(dev Device, stride, offset int32, divisor uint32) {
	for row := int32(0); row < a.Rows; row++ {
		location := a.Location + uint32(row)
		dev.VertexAttribPointer(location, a.Columns, stride, offset+row*a.Columns*floatSize)
		dev.VertexAttribDivisor(location, divisor)
		dev.EnableVertexAttribArray(location)
	}
}

// Offset is unused padding of Bytes bytes.
type Offset struct {
	Bytes int32
}

func (a Offset) ByteSize() int32 { return a.Bytes }

func (a Offset) Locations() []uint32 { return nil }

func (a Offset) valid() bool { return a.Bytes >= 0 }

func (a Offset) bind(Device, int32, int32, uint32) {}

// Stride returns the byte distance between consecutive elements laid out as attribs.
func Stride(attribs []Attrib) int32 {
	var stride int32
	for _, attrib := range attribs {
		stride += attrib.ByteSize()
	}
	return stride
}

// Offsets returns the byte offset of every attribute within an element.
func Offsets(attribs []Attrib) []int32 {
	out := make([]int32, len(attribs))
	var offset int32
	for i, attrib := range attribs {
		out[i] = offset
		offset += attrib.ByteSize()
	}
	return out
}
