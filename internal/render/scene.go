package render

import (
	"github.com/s2rewind/analyser/internal/geometry"
	"github.com/s2rewind/analyser/internal/palette"
	"github.com/s2rewind/analyser/pkg/core"
)

// unitCornerTolerance keeps unit markers cheap; they are tiny on screen.
const unitCornerTolerance = 0.01

// BuildScene assembles the full static vertex buffer for one frame of the
// map view: the background quad followed by one rounded marker per unit.
// Later vertices draw over earlier ones, so units always sit on top of the
// background.
func BuildScene(units []core.Unit, table *palette.Table) []float32 {
	buf := geometry.BuildMapBackground()
	for _, u := range units {
		buf = append(buf, BuildUnitMarker(u, table)...)
	}
	return buf
}

// BuildUnitMarker tessellates one unit as a fully rounded square centered
// on its map position, sized and colored by the classification table.
func BuildUnitMarker(u core.Unit, table *palette.Table) []float32 {
	size, color := table.Classify(u.Name, u.OwnerID)
	half := float64(size) / 2
	x, y := float64(u.X), float64(u.Y)
	return geometry.BuildRoundedRect(
		geometry.Rect{MinX: x - half, MinY: y - half, MaxX: x + half, MaxY: y + half},
		geometry.UniformRadii(half),
		color,
		unitCornerTolerance,
	)
}
