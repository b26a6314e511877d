// Package geometry tessellates declarative 2-D shapes into the flat
// interleaved vertex buffers the render core uploads to the GPU.
package geometry

import (
	"math"

	geom "github.com/peterstace/simplefeatures/geom"

	"github.com/s2rewind/analyser/pkg/core"
)

// VertexStride is the number of floats per emitted vertex:
// x, y, z, r, g, b, a.
const VertexStride = 7

// Rect is an axis-aligned rectangle in normalized device coordinates,
// y growing upwards.
type Rect struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// Width returns the horizontal extent.
func (r Rect) Width() float64 { return r.MaxX - r.MinX }

// Height returns the vertical extent.
func (r Rect) Height() float64 { return r.MaxY - r.MinY }

// CornerRadii holds one radius per rectangle corner. Zero means a sharp
// corner.
type CornerRadii struct {
	TopLeft     float64
	TopRight    float64
	BottomLeft  float64
	BottomRight float64
}

// UniformRadii returns the same radius for all four corners.
func UniformRadii(r float64) CornerRadii {
	return CornerRadii{TopLeft: r, TopRight: r, BottomLeft: r, BottomRight: r}
}

// BuildRoundedRect tessellates a rounded rectangle into a triangle list and
// unrolls it into a flat position+color buffer. Corner arcs are flattened to
// within the given tolerance; radii too large for the rectangle are scaled
// down so opposite corners never overlap. Degenerate input produces an
// empty or degenerate buffer, never a panic.
func BuildRoundedRect(bounds Rect, radii CornerRadii, fill core.Color, tolerance float64) []float32 {
	ring := Outline(bounds, radii, tolerance)
	return unrollFan(ring, fill)
}

// BuildMapBackground returns the black, slightly rounded backdrop quad
// covering the full normalized device square.
func BuildMapBackground() []float32 {
	return BuildRoundedRect(
		Rect{MinX: -1, MinY: -1, MaxX: 1, MaxY: 1},
		UniformRadii(0.02),
		core.Color(0x00000000),
		0.1,
	)
}

// Outline returns the closed counter-clockwise boundary ring of the rounded
// rectangle. The ring starts on the bottom edge and its last point repeats
// the first.
func Outline(bounds Rect, radii CornerRadii, tolerance float64) geom.LineString {
	radii = clampRadii(bounds, radii)

	var flat []float64
	push := func(x, y float64) { flat = append(flat, x, y) }

	// Quarter arcs, counter-clockwise, one per corner. startAngle is where
	// the arc begins on the unit circle around the corner's center.
	arc := func(cx, cy, r, startAngle float64) {
		if r <= 0 {
			push(cx, cy)
			return
		}
		steps := arcSteps(r, tolerance)
		for i := 0; i <= steps; i++ {
			a := startAngle + (math.Pi/2)*float64(i)/float64(steps)
			push(cx+r*math.Cos(a), cy+r*math.Sin(a))
		}
	}

	arc(bounds.MaxX-radii.BottomRight, bounds.MinY+radii.BottomRight, radii.BottomRight, -math.Pi/2)
	arc(bounds.MaxX-radii.TopRight, bounds.MaxY-radii.TopRight, radii.TopRight, 0)
	arc(bounds.MinX+radii.TopLeft, bounds.MaxY-radii.TopLeft, radii.TopLeft, math.Pi/2)
	arc(bounds.MinX+radii.BottomLeft, bounds.MinY+radii.BottomLeft, radii.BottomLeft, math.Pi)

	// Close the ring.
	push(flat[0], flat[1])

	return geom.NewLineString(geom.NewSequence(flat, geom.DimXY))
}

// arcSteps returns how many line segments approximate a quarter arc of the
// given radius so the chord error stays within tolerance.
func arcSteps(radius, tolerance float64) int {
	if tolerance <= 0 || tolerance >= radius {
		return 1
	}
	// Max central angle per segment keeping sagitta under tolerance.
	theta := 2 * math.Acos(1-tolerance/radius)
	steps := int(math.Ceil((math.Pi / 2) / theta))
	if steps < 1 {
		return 1
	}
	return steps
}

// clampRadii scales all four radii down uniformly until no side's two
// corner radii sum to more than the side length. Negative radii are treated
// as zero.
func clampRadii(bounds Rect, radii CornerRadii) CornerRadii {
	radii.TopLeft = math.Max(radii.TopLeft, 0)
	radii.TopRight = math.Max(radii.TopRight, 0)
	radii.BottomLeft = math.Max(radii.BottomLeft, 0)
	radii.BottomRight = math.Max(radii.BottomRight, 0)

	w, h := bounds.Width(), bounds.Height()
	scale := 1.0
	for _, side := range []struct{ length, sum float64 }{
		{w, radii.TopLeft + radii.TopRight},
		{w, radii.BottomLeft + radii.BottomRight},
		{h, radii.TopLeft + radii.BottomLeft},
		{h, radii.TopRight + radii.BottomRight},
	} {
		if side.sum > side.length && side.sum > 0 {
			scale = math.Min(scale, side.length/side.sum)
		}
	}
	if scale < 1.0 {
		radii.TopLeft *= scale
		radii.TopRight *= scale
		radii.BottomLeft *= scale
		radii.BottomRight *= scale
	}
	return radii
}

// unrollFan triangulates the convex ring as a fan anchored on its first
// point and expands the triangles into the 7-float vertex layout. A rounded
// rectangle is always convex, so the fan is an exact fill with positive
// winding.
func unrollFan(ring geom.LineString, fill core.Color) []float32 {
	seq := ring.Coordinates()
	n := seq.Length() - 1 // drop the closing repeat
	if n < 3 {
		return nil
	}

	rgba := fill.Floats()
	anchor := seq.GetXY(0)

	vertices := make([]float32, 0, (n-2)*3*VertexStride)
	emit := func(x, y float64) {
		vertices = append(vertices,
			float32(x), float32(y), 0,
			rgba[0], rgba[1], rgba[2], rgba[3],
		)
	}

	for i := 1; i < n-1; i++ {
		a := seq.GetXY(i)
		b := seq.GetXY(i + 1)
		emit(anchor.X, anchor.Y)
		emit(a.X, a.Y)
		emit(b.X, b.Y)
	}
	return vertices
}
