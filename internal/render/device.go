package render

// ShaderKind selects which pipeline stage a shader source compiles for.
type ShaderKind uint8

const (
	VertexShader ShaderKind = iota
	FragmentShader
)

// Device is the GPU boundary the renderer draws through. Implementations
// wrap a concrete graphics binding; handles are opaque non-zero ids owned
// by the device. Any creation method may fail and failure is fatal to
// renderer initialization.
type Device interface {
	CreateBuffer() (uint32, error)
	BindBuffer(buffer uint32)
	BufferData(data []float32) error

	CreateShader(kind ShaderKind, source string) (uint32, error)
	CreateProgram(vertex, fragment uint32) (uint32, error)
	UseProgram(program uint32)

	UniformLocation(program uint32, name string) (int32, error)
	Uniform1f(location int32, value float32)

	// VertexAttribPointer describes one interleaved attribute: component
	// count per vertex, byte stride between vertices, and byte offset of
	// the first component.
	VertexAttribPointer(index uint32, size int32, stride, offset int)
	EnableVertexAttribArray(index uint32)

	Clear(r, g, b, a float32)
	DrawTriangles(first, count int32)
}
