package gfx

import "fmt"

// VertexArray records how buffers feed shader inputs.
type VertexArray struct {
	dev    Device
	handle uint32
	// owner of every location linked so far
	linked map[uint32]Attrib
}

func (v *VertexArray) Handle() uint32 {
	return v.handle
}

func (v *VertexArray) Bind() {
	v.dev.BindVertexArray(v.handle)
}

// LinkBuffer binds attribs from buffer, advancing once per vertex.
func (v *VertexArray) LinkBuffer(buffer *Buffer, attribs ...Attrib) error {
	return v.link(buffer, attribs, 0)
}

// LinkInstanceBuffer binds attribs from buffer, advancing once per instance.
func (v *VertexArray) LinkInstanceBuffer(buffer *Buffer, attribs ...Attrib) error {
	return v.link(buffer, attribs, 1)
}

func (v *VertexArray) Close() {
	if v.handle == 0 {
		return
	}
	v.dev.DeleteVertexArray(v.handle)
	v.handle = 0
	v.linked = nil
}

func (v *VertexArray) link(buffer *Buffer, attribs []Attrib, divisor uint32) error {
	if err := v.claim(attribs); err != nil {
		return err
	}

	v.Bind()
	buffer.Bind()

	stride := Stride(attribs)
	for i, offset := range Offsets(attribs) {
		attribs[i].bind(v.dev, stride, offset, divisor)
	}
	return nil
}

func (v *VertexArray) claim(attribs []Attrib) error {
	pending := make(map[uint32]Attrib)
	for _, attrib := range attribs {
		if attrib == nil || !attrib.valid() {
			return fmt.Errorf("%w: %#v", ErrInvalidAttribute, attrib)
		}
		for _, location := range attrib.Locations() {
			if prev, ok := v.linked[location]; ok {
				return fmt.Errorf("%w: location %d used by %#v and %#v", ErrLayoutOverlap, location, prev, attrib)
			}
			if prev, ok := pending[location]; ok {
				return fmt.Errorf("%w: location %d used by %#v and %#v", ErrLayoutOverlap, location, prev, attrib)
			}
			pending[location] = attrib
		}
	}
	if v.linked == nil {
		v.linked = make(map[uint32]Attrib, len(pending))
	}
	for location, attrib := range pending {
		v.linked[location] = attrib
	}
	return nil
}
