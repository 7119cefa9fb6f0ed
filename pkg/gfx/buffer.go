package gfx

// Buffer is a GPU array of float32 values bound to the array-buffer target.
//
// Len tracks the element count of the last full allocation; Update uses it
// to choose between reallocating and overwriting in place.
type Buffer struct {
	dev    Device
	handle uint32
	length int
}

func (b *Buffer) Handle() uint32 {
	return b.handle
}

func (b *Buffer) Len() int {
	return b.length
}

func (b *Buffer) Bind() {
	b.dev.BindBuffer(b.handle)
}

// AllocateStatic uploads data for contents that will not change.
func (b *Buffer) AllocateStatic(data []float32) {
	b.allocate(data, StaticDraw)
}

// AllocateDynamic uploads data for contents that will be updated often.
func (b *Buffer) AllocateDynamic(data []float32) {
	b.allocate(data, DynamicDraw)
}

// Update reallocates the buffer when data outgrows the current allocation and
// overwrites it in place otherwise. A shrinking update leaves the old tail in
// place; readers must bound themselves by the logical length they uploaded.
func (b *Buffer) Update(data []float32) {
	if len(data) > b.length {
		b.AllocateDynamic(data)
		return
	}
	b.UpdateSlice(data, 0)
}

// UpdateSlice overwrites the buffer starting at byteOffset.
func (b *Buffer) UpdateSlice(data []float32, byteOffset int) {
	if len(data) == 0 {
		return
	}
	b.Bind()
	b.dev.BufferSubData(byteOffset, data)
}

func (b *Buffer) Close() {
	if b.handle == 0 {
		return
	}
	b.dev.DeleteBuffer(b.handle)
	b.handle = 0
	b.length = 0
}

func (b *Buffer) allocate(data []float32, usage Usage) {
	b.Bind()
	b.dev.BufferData(data, usage)
	b.length = len(data)
}
