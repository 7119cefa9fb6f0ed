package gfx

import "fmt"

const (
	// coordinates per vertex
	vertexLen = 2
	// floats reserved for instance records, enough for ~190k instances
	DefaultInstanceCapacity = 2097152
)

var vertexLayout = []Attrib{
	VecF32{Location: LocationVertex, Len: vertexLen},
}

// Mesh draws a fixed triangle list once per accumulated instance, with a
// single instanced draw call per frame.
type Mesh struct {
	dev       Device
	program   *Program
	vertices  *Buffer
	instances *Buffer
	vao       *VertexArray

	data          []float32
	vertexCount   int32
	instanceCount int32
}

type MeshOption func(*meshOptions)

type meshOptions struct {
	instanceCapacity int
}

// WithInstanceCapacity reserves room for n instance floats up front.
func WithInstanceCapacity(n int) MeshOption {
	return func(o *meshOptions) {
		if n >= 0 {
			o.instanceCapacity = n
		}
	}
}

// CreateMesh uploads vertices, a flat list of 2D triangle coordinates, and
// prepares the instance layout read by program.
func (c *Context) CreateMesh(program *Program, vertices []float32, opts ...MeshOption) (*Mesh, error) {
	if err := validateVertices(vertices); err != nil {
		return nil, err
	}
	if program == nil {
		return nil, fmt.Errorf("%w: mesh requires a program", ErrResourceUnavailable)
	}
	conf := meshOptions{instanceCapacity: DefaultInstanceCapacity}
	for _, opt := range opts {
		opt(&conf)
	}

	vertexBuffer, err := c.CreateStaticBuffer(vertices)
	if err != nil {
		return nil, err
	}
	instanceBuffer, err := c.CreateBuffer()
	if err != nil {
		vertexBuffer.Close()
		return nil, err
	}
	vao, err := c.CreateVertexArray()
	if err != nil {
		vertexBuffer.Close()
		instanceBuffer.Close()
		return nil, err
	}

	m := &Mesh{
		dev:         c.dev,
		program:     program,
		vertices:    vertexBuffer,
		instances:   instanceBuffer,
		vao:         vao,
		data:        make([]float32, 0, conf.instanceCapacity),
		vertexCount: int32(len(vertices) / vertexLen),
	}
	if err := vao.LinkBuffer(vertexBuffer, vertexLayout...); err != nil {
		m.Close()
		return nil, err
	}
	if err := vao.LinkInstanceBuffer(instanceBuffer, instanceLayout...); err != nil {
		m.Close()
		return nil, err
	}
	return m, nil
}

func validateVertices(vertices []float32) error {
	n := len(vertices)
	if n < 3 || n%3 != 0 || (n/3)%vertexLen != 0 {
		return fmt.Errorf(
			"%w: expected 3 vertices with %d coordinates for each triangle (a multiple of %d coordinates) but found %d coordinates",
			ErrInvalidGeometry, vertexLen, 3*vertexLen, n,
		)
	}
	return nil
}

// AddInstance queues one instance for the next Draw.
func (m *Mesh) AddInstance(instance *Instance) {
	m.data = append(m.data, instance[:]...)
	m.instanceCount++
}

// Pending returns the number of instances queued since the last Draw.
func (m *Mesh) Pending() int {
	return int(m.instanceCount)
}

func (m *Mesh) VertexCount() int {
	return int(m.vertexCount)
}

// Draw uploads the queued instances and draws them with one call, then
// empties the queue.
func (m *Mesh) Draw() {
	m.instances.Update(m.data)

	m.program.Use()
	m.vao.Bind()
	m.dev.DrawArraysInstanced(0, m.vertexCount, m.instanceCount)

	m.instanceCount = 0
	m.data = m.data[:0]
}

// Close releases the mesh buffers and vertex array. The program is shared and
// stays open.
func (m *Mesh) Close() {
	m.vao.Close()
	m.instances.Close()
	m.vertices.Close()
}
