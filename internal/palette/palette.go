// Package palette maps entity kind names to the size and color they are
// drawn with on the map view.
package palette

import (
	"log/slog"
	"strings"

	"github.com/s2rewind/analyser/pkg/core"
)

// Palette colors, stored as packed 0xRRGGBB00. The low byte is unused;
// rendering treats everything as fully opaque.
const (
	FreyaOrange      core.Color = 0xeb790700
	FreyaGold        core.Color = 0xea9e3600
	FreyaRed         core.Color = 0xf8105300
	FreyaBlue        core.Color = 0x30b5f700
	FreyaGreen       core.Color = 0x0aeb9f00
	FreyaLightBlue   core.Color = 0x72c5dd00
	FreyaGray        core.Color = 0xb2c5c500
	FreyaPink        core.Color = 0xeaa48300
	FreyaLightGray   core.Color = 0xf4f5f800
	FreyaDarkBlue    core.Color = 0x4da7c200
	FreyaDarkGreen   core.Color = 0x37bda900
	FreyaDarkRed     core.Color = 0xae204400
	FreyaViolet      core.Color = 0xa401ed00
	FreyaWhite       core.Color = 0xfaf8fb00
	FreyaYellow      core.Color = 0xf7d45400
	FreyaLightYellow core.Color = 0xead8ad00
	FreyaLightGreen  core.Color = 0x6ec29c00
)

// DefaultUnitSize applies to every kind without an explicit size entry.
const DefaultUnitSize float32 = 0.045

type entry struct {
	size  float32
	color core.Color
}

// Known entity kinds by exact name. Resource nodes scale with their
// remaining-content tier so richer fields read bigger on the map.
var units = map[string]entry{
	"VespeneEDyser":       {DefaultUnitSize, FreyaLightGreen},
	"SpacePlatformGeyser": {DefaultUnitSize, FreyaLightGreen},
	"LabMineralField":     {0.024, FreyaLightBlue},
	"LabMineralField750":  {0.036, FreyaLightBlue},
	"MineralField":        {0.048, FreyaLightBlue},
	"MineralField450":     {0.06, FreyaLightBlue},
	"MineralField750":     {0.072, FreyaLightBlue},
	// XelNagaTower should render near-transparent; until alpha lands in the
	// palette the white entry carries that intent.
	"XelNagaTower":                  {0.072, FreyaWhite},
	"RichMineralField":              {DefaultUnitSize, FreyaGold},
	"RichMineralField750":           {DefaultUnitSize, FreyaOrange},
	"DestructibleDebris6x6":         {0.18, FreyaGray},
	"UnbuildablePlatesDestructible": {0.06, FreyaLightGray},
	"Overlord":                      {0.06, FreyaYellow},
	"SCV":                           {0.03, FreyaLightGray},
	"Drone":                         {0.03, FreyaLightGray},
	"Probe":                         {0.03, FreyaLightGray},
	"Larva":                         {0.03, FreyaLightGray},
	"Hatchery":                      {0.12, FreyaPink},
	"CommandCenter":                 {0.12, FreyaPink},
	"Nexus":                         {0.12, FreyaPink},
	"Broodling":                     {0.006, FreyaLightGray},
}

// beaconPrefix marks lobby marker objects that have no map presence.
const beaconPrefix = "Beacon"

// Table resolves entity kinds to visual attributes. The mapping itself is
// immutable static data; the logger only reports unmatched kinds.
type Table struct {
	log *slog.Logger
}

// NewTable returns a Table logging unknown kinds through the given logger.
// A nil logger falls back to slog's default.
func NewTable(log *slog.Logger) *Table {
	if log == nil {
		log = slog.Default()
	}
	return &Table{log: log}
}

// Classify returns the size and color for one entity kind. Unknown kinds
// resolve to the owner's user color after a single informational log entry;
// beacon markers skip the log entirely. The lookup never fails.
func (t *Table) Classify(kind string, ownerID int64) (float32, core.Color) {
	if e, ok := units[kind]; ok {
		return e.size, e.color
	}
	if !strings.HasPrefix(kind, beaconPrefix) {
		t.log.Info("Unknown unit name", "name", kind)
	}
	return DefaultUnitSize, UserColor(ownerID)
}

// UserColor maps a participant id to their fixed palette color. Ids outside
// the first four slots, including the unknown-owner sentinel, share a
// neutral white.
func UserColor(userID int64) core.Color {
	switch userID {
	case 0:
		return FreyaLightGreen
	case 1:
		return FreyaLightBlue
	case 2:
		return FreyaLightGray
	case 3:
		return FreyaOrange
	default:
		return FreyaWhite
	}
}
