// Package timeline converts the delta-encoded tracker event stream of one
// replay into absolute-frame economy snapshots.
package timeline

import (
	"github.com/s2rewind/analyser/pkg/core"
)

// MaxSupplyCap is the engine-imposed supply ceiling. Some replays carry
// food_made values above it (bonus supply from effects); those are clamped,
// not rejected.
const MaxSupplyCap int32 = 200

// Extract runs a single pass over the event stream, accumulating each
// event's delta into a running frame counter and emitting one snapshot per
// PlayerStats event. Every other event kind only advances the clock; that
// is the normal case, not an error.
//
// Output order equals input order and the function is pure: re-running it
// on the same stream yields an identical result.
func Extract(events []core.TrackerEvent) []core.GameSnapshot {
	var frame uint32
	var snapshots []core.GameSnapshot

	for _, evt := range events {
		frame += evt.Delta
		if evt.Kind != core.EventPlayerStats || evt.Stats == nil {
			continue
		}
		stats := evt.Stats
		snapshots = append(snapshots, core.GameSnapshot{
			Frame:        frame,
			PlayerID:     stats.PlayerID,
			Minerals:     stats.MineralsCurrent,
			Vespene:      stats.VespeneCurrent,
			SupplyUsed:   stats.FoodUsed,
			SupplyCap:    min(stats.FoodMade, MaxSupplyCap),
			ArmyMinerals: stats.MineralsUsedActiveForces,
			ArmyVespene:  stats.VespeneUsedActiveForces,
		})
	}

	return snapshots
}
