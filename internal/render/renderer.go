// Package render owns the GPU context for one drawing surface: a single
// shader program, a static vertex buffer, and the self-repeating animation
// loop that repaints it.
package render

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/s2rewind/analyser/internal/geometry"
)

// TimeStep is added to the elapsed-time uniform on every animation
// callback. The loop is paced by callback cadence, not wall-clock time.
const TimeStep float32 = 20.0

// Vertex attribute layout within the 7-float stride.
const (
	positionAttrib     uint32 = 0
	colorAttrib        uint32 = 1
	positionComponents int32  = 3
	colorComponents    int32  = 4
	strideBytes               = geometry.VertexStride * 4
	colorOffsetBytes          = int(positionComponents) * 4
)

// State is the renderer lifecycle phase.
type State uint8

const (
	StateUninitialized State = iota
	StateInitialized
	StateRunning
)

// String returns the state name for logs.
func (s State) String() string {
	switch s {
	case StateInitialized:
		return "initialized"
	case StateRunning:
		return "running"
	default:
		return "uninitialized"
	}
}

// Renderer drives one rendering surface. Init is called exactly once;
// Start is idempotent and never spawns a second loop. All GPU calls happen
// on the loop goroutine after Start, so the Device needs no locking of its
// own.
type Renderer struct {
	dev   Device
	log   *slog.Logger
	sched Scheduler

	mu          sync.RWMutex
	state       State
	isRunning   bool
	stopChan    chan struct{}
	program     uint32
	timeLoc     int32
	vertexCount int32
	elapsed     float32
}

// Option adjusts renderer construction.
type Option func(*Renderer)

// WithLogger sets the logger used for lifecycle events.
func WithLogger(log *slog.Logger) Option {
	return func(r *Renderer) { r.log = log }
}

// WithScheduler replaces the default ticker-driven frame pacing.
func WithScheduler(s Scheduler) Option {
	return func(r *Renderer) { r.sched = s }
}

// New returns an uninitialized renderer bound to the given device.
func New(dev Device, opts ...Option) *Renderer {
	r := &Renderer{
		dev:      dev,
		log:      slog.Default(),
		stopChan: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.sched == nil {
		r.sched = NewTickerScheduler(DefaultFrameInterval)
	}
	return r
}

// Init uploads the vertex buffer, compiles and links the shader program,
// and wires the attribute layout. Any device failure aborts initialization;
// the renderer stays unusable afterwards. Calling Init twice is an error,
// not a re-initialization.
func (r *Renderer) Init(vertices []float32) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state != StateUninitialized {
		return fmt.Errorf("renderer already %s", r.state)
	}
	if len(vertices)%geometry.VertexStride != 0 {
		return fmt.Errorf("vertex buffer length %d is not a multiple of the stride", len(vertices))
	}

	buffer, err := r.dev.CreateBuffer()
	if err != nil {
		return fmt.Errorf("failed to create vertex buffer: %w", err)
	}
	r.dev.BindBuffer(buffer)
	if err := r.dev.BufferData(vertices); err != nil {
		return fmt.Errorf("failed to upload vertex data: %w", err)
	}

	vertex, err := r.dev.CreateShader(VertexShader, vertexShaderSource)
	if err != nil {
		return fmt.Errorf("failed to compile vertex shader: %w", err)
	}
	fragment, err := r.dev.CreateShader(FragmentShader, fragmentShaderSource)
	if err != nil {
		return fmt.Errorf("failed to compile fragment shader: %w", err)
	}
	program, err := r.dev.CreateProgram(vertex, fragment)
	if err != nil {
		return fmt.Errorf("failed to link shader program: %w", err)
	}
	r.dev.UseProgram(program)

	timeLoc, err := r.dev.UniformLocation(program, "u_time")
	if err != nil {
		return fmt.Errorf("failed to resolve u_time uniform: %w", err)
	}

	r.dev.VertexAttribPointer(positionAttrib, positionComponents, strideBytes, 0)
	r.dev.EnableVertexAttribArray(positionAttrib)
	r.dev.VertexAttribPointer(colorAttrib, colorComponents, strideBytes, colorOffsetBytes)
	r.dev.EnableVertexAttribArray(colorAttrib)

	r.program = program
	r.timeLoc = timeLoc
	r.vertexCount = int32(len(vertices) / geometry.VertexStride)
	r.elapsed = 0
	r.state = StateInitialized

	r.log.Debug("Renderer initialized", "vertices", r.vertexCount)
	return nil
}

// Start launches the animation loop. Starting an already running renderer
// is a no-op; starting before Init is an error. The loop stops when ctx is
// cancelled or Stop is called, checked at the top of each scheduled step.
func (r *Renderer) Start(ctx context.Context) error {
	r.mu.Lock()
	if r.state == StateUninitialized {
		r.mu.Unlock()
		return fmt.Errorf("renderer not initialized")
	}
	if r.isRunning {
		r.mu.Unlock()
		return nil
	}
	r.isRunning = true
	r.state = StateRunning
	r.stopChan = make(chan struct{})
	stop := r.stopChan
	r.mu.Unlock()

	go func() {
		defer func() {
			r.mu.Lock()
			// A restarted loop owns a fresh stop channel; only the loop
			// that still owns r.stopChan may reset the shared state.
			if r.stopChan == stop {
				r.isRunning = false
				r.state = StateInitialized
			}
			r.mu.Unlock()
		}()

		r.log.Debug("Starting render loop")
		for {
			select {
			case <-ctx.Done():
				r.log.Debug("Render loop cancelled", "reason", ctx.Err())
				return
			case <-stop:
				r.log.Debug("Render loop stopped")
				return
			case <-r.sched.Frames():
				r.step()
			}
		}
	}()

	return nil
}

// step advances the animation clock and repaints the whole vertex buffer.
func (r *Renderer) step() {
	r.mu.Lock()
	r.elapsed += TimeStep
	elapsed := r.elapsed
	count := r.vertexCount
	r.mu.Unlock()

	r.dev.Clear(0, 0, 0, 1)
	r.dev.Uniform1f(r.timeLoc, elapsed)
	r.dev.DrawTriangles(0, count)
}

// Stop asks the loop to exit. Safe to call multiple times and while
// stopped; shutdown is cooperative and bounded by one scheduling interval.
func (r *Renderer) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.isRunning {
		close(r.stopChan)
		r.isRunning = false
		r.state = StateInitialized
	}
}

// Close stops the loop and releases the frame scheduler. The renderer
// cannot be restarted afterwards.
func (r *Renderer) Close() {
	r.Stop()
	r.sched.Stop()
}

// IsRunning reports whether the animation loop is active.
func (r *Renderer) IsRunning() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.isRunning
}

// State returns the current lifecycle phase.
func (r *Renderer) State() State {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.state
}

// Elapsed returns the animation clock value pushed with the last frame.
func (r *Renderer) Elapsed() float32 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.elapsed
}
