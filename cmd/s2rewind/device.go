package main

import (
	"sync/atomic"

	"github.com/s2rewind/analyser/internal/render"
)

// headlessDevice satisfies render.Device without a GPU context. Demo mode
// uses it to run the full render loop and report frame counts; a real
// binding (GL/WebGL) slots in behind the same interface.
type headlessDevice struct {
	nextHandle uint32
	frames     atomic.Int64
}

func (d *headlessDevice) handle() uint32 {
	d.nextHandle++
	return d.nextHandle
}

func (d *headlessDevice) CreateBuffer() (uint32, error) {
	return d.handle(), nil
}

func (d *headlessDevice) BindBuffer(buffer uint32) {}

func (d *headlessDevice) BufferData(data []float32) error {
	return nil
}

func (d *headlessDevice) CreateShader(kind render.ShaderKind, source string) (uint32, error) {
	return d.handle(), nil
}

func (d *headlessDevice) CreateProgram(vertex, fragment uint32) (uint32, error) {
	return d.handle(), nil
}

func (d *headlessDevice) UseProgram(program uint32) {}

func (d *headlessDevice) UniformLocation(program uint32, name string) (int32, error) {
	return int32(d.handle()), nil
}

func (d *headlessDevice) Uniform1f(location int32, value float32) {}

func (d *headlessDevice) VertexAttribPointer(index uint32, size int32, stride, offset int) {}

func (d *headlessDevice) EnableVertexAttribArray(index uint32) {}

func (d *headlessDevice) Clear(r, g, b, a float32) {}

func (d *headlessDevice) DrawTriangles(first, count int32) {
	d.frames.Add(1)
}

// Frames returns how many draw calls the loop has issued.
func (d *headlessDevice) Frames() int64 {
	return d.frames.Load()
}
