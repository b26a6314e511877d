package core

// TrackerEventKind tags the decoded payload carried by a TrackerEvent.
type TrackerEventKind uint8

const (
	EventUnknown TrackerEventKind = iota
	EventPlayerStats
	EventUnitBorn
	EventUnitInit
	EventUnitDied
	EventUnitPosition
	EventUpgrade
)

// TrackerEvent is one record from the replay tracker stream. Events carry no
// absolute timestamp; Delta is the number of frames elapsed since the
// previous event, so stream order is the only ordering signal.
type TrackerEvent struct {
	Delta uint32
	Kind  TrackerEventKind

	// Exactly one payload pointer is set, matching Kind. Kinds without a
	// payload we care about (upgrades, positions) leave all of them nil.
	Stats    *PlayerStatsEvent
	UnitBorn *UnitBornEvent
	UnitInit *UnitInitEvent
	UnitDied *UnitDiedEvent
}

// PlayerStatsEvent is the periodic per-player economy sample the game engine
// emits roughly every 10 seconds of game time.
type PlayerStatsEvent struct {
	PlayerID                 uint8
	MineralsCurrent          int32
	VespeneCurrent           int32
	FoodUsed                 int32
	FoodMade                 int32
	MineralsUsedActiveForces int32
	VespeneUsedActiveForces  int32
}

// UnitBornEvent marks a unit entering play fully constructed.
type UnitBornEvent struct {
	UnitTag         uint32
	UnitTypeName    string
	ControlPlayerID uint8
	X, Y            float32
}

// UnitInitEvent marks a unit starting construction (warp-in, morph).
type UnitInitEvent struct {
	UnitTag         uint32
	UnitTypeName    string
	ControlPlayerID uint8
	X, Y            float32
}

// UnitDiedEvent marks a unit leaving play.
type UnitDiedEvent struct {
	UnitTag        uint32
	X, Y           float32
	KillerPlayerID *uint8
}
