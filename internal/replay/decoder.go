package replay

import (
	"fmt"
	"time"

	"github.com/s2rewind/analyser/pkg/core"
)

// Archive is one fully decoded replay file: the tracker stream plus the
// details and message records. Decoding the container format happens
// outside this module; the processor only consumes the result.
type Archive struct {
	Details  core.ReplayDetails
	Messages []core.ChatMessage
	Events   []core.TrackerEvent
}

// Decoder turns a complete file's bytes into an Archive. Implementations
// wrap the external container parser; a decode error means that single
// file is skipped, never that processing as a whole aborts.
type Decoder interface {
	Decode(name string, data []byte) (*Archive, error)
}

// StaticDecoder is a Decoder returning canned archives by file name, used
// by the demo mode and tests. Unknown names decode to an error.
type StaticDecoder struct {
	Archives map[string]*Archive
}

func (d *StaticDecoder) Decode(name string, data []byte) (*Archive, error) {
	if a, ok := d.Archives[name]; ok {
		return a, nil
	}
	return nil, fmt.Errorf("no archive registered for %q", name)
}

// DemoArchive returns a tiny hand-written replay for the demo mode: two
// players, a short economy curve, and a handful of units.
func DemoArchive() *Archive {
	slot0, slot1 := uint8(0), uint8(1)
	return &Archive{
		Details: core.ReplayDetails{
			Title:       "Demo Map",
			MapFileName: "demo.SC2Map",
			TimeUTC:     time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
			Players: []core.PlayerDetails{
				{Name: "Alpha", Race: "Protoss", TeamID: 1, WorkingSetSlot: &slot0, Result: core.ResultWin},
				{Name: "Beta", Race: "Zerg", TeamID: 2, WorkingSetSlot: &slot1, Result: core.ResultLoss},
			},
		},
		Messages: []core.ChatMessage{
			{Delta: 160, UserID: 0, Recipient: core.RecipientAll, Text: "glhf"},
			{Delta: 32, UserID: 1, Recipient: core.RecipientAll, Text: "u2"},
		},
		Events: []core.TrackerEvent{
			{Kind: core.EventUnitBorn, UnitBorn: &core.UnitBornEvent{UnitTag: 1, UnitTypeName: "Nexus", ControlPlayerID: 1, X: -0.5, Y: -0.5}},
			{Kind: core.EventUnitBorn, UnitBorn: &core.UnitBornEvent{UnitTag: 2, UnitTypeName: "Hatchery", ControlPlayerID: 2, X: 0.5, Y: 0.5}},
			{Kind: core.EventUnitBorn, UnitBorn: &core.UnitBornEvent{UnitTag: 3, UnitTypeName: "MineralField", ControlPlayerID: 0, X: -0.4, Y: -0.6}},
			{Delta: 160, Kind: core.EventPlayerStats, Stats: &core.PlayerStatsEvent{PlayerID: 1, MineralsCurrent: 50, FoodUsed: 12, FoodMade: 15}},
			{Kind: core.EventPlayerStats, Stats: &core.PlayerStatsEvent{PlayerID: 2, MineralsCurrent: 65, FoodUsed: 13, FoodMade: 14}},
			{Delta: 160, Kind: core.EventPlayerStats, Stats: &core.PlayerStatsEvent{PlayerID: 1, MineralsCurrent: 120, FoodUsed: 19, FoodMade: 23}},
			{Kind: core.EventPlayerStats, Stats: &core.PlayerStatsEvent{PlayerID: 2, MineralsCurrent: 90, FoodUsed: 21, FoodMade: 22}},
		},
	}
}
