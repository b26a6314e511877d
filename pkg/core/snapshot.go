package core

// GameSnapshot is one absolute-frame sample of a player's economy and army
// value, derived from a PlayerStats tracker event. Snapshots are immutable
// once created and ordered by the position of their source event in the
// stream.
type GameSnapshot struct {
	Frame        uint32
	PlayerID     uint8
	Minerals     int32
	Vespene      int32
	SupplyUsed   int32
	SupplyCap    int32 // clamped to the engine ceiling of 200
	ArmyMinerals int32
	ArmyVespene  int32
}

// Unit is the map-view state of one game object, keyed by its tracker tag.
type Unit struct {
	Tag     uint32
	Name    string
	OwnerID int64
	X, Y    float32
}

// UnknownOwner is the sentinel owner id used when a unit's controlling
// player is not recorded (neutral resource nodes, destructibles).
const UnknownOwner int64 = 99
