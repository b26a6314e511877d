// Package model defines the database schema for persisted replays and the
// conversions from the in-memory pipeline types.
package model

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/s2rewind/analyser/pkg/core"
)

////////////////////////
// DATABASE STRUCTURES //
////////////////////////

// DatabaseModels is a list of all the structs exported here which represent
// tables in the database schema.
var DatabaseModels = []interface{}{
	&AnalyserInfo{},
	&Replay{},
	&Snapshot{},
	&Message{},
	&AnalyserPerformance{},
}

// DatabaseModelsSQLite is the model list for the local sqlite fallback. The
// schema is identical; the split exists so server-only tables can diverge
// later without touching call sites.
var DatabaseModelsSQLite = []interface{}{
	&AnalyserInfo{},
	&Replay{},
	&Snapshot{},
	&Message{},
	&AnalyserPerformance{},
}

////////////////////////
// SYSTEM MODELS
////////////////////////

// AnalyserInfo contains instance information
type AnalyserInfo struct {
	gorm.Model
	InstanceName        string `json:"instanceName" gorm:"size:127"`
	InstanceDescription string `json:"instanceDescription" gorm:"size:255"`
	InstanceWebsite     string `json:"instanceURL" gorm:"size:255"`
}

func (*AnalyserInfo) TableName() string {
	return "analyser_infos"
}

// AnalyserPerformance is the model for pipeline performance metrics
type AnalyserPerformance struct {
	Time                time.Time         `json:"time" gorm:"index:idx_time"`
	WriteQueueLengths   WriteQueueLengths `json:"writeQueueLengths" gorm:"embedded;embeddedPrefix:writequeue_"`
	LastWriteDurationMs float32           `json:"lastWriteDurationMs"`
}

func (*AnalyserPerformance) TableName() string {
	return "analyser_performances"
}

// WriteQueueLengths is the model for the storage write queue lengths
type WriteQueueLengths struct {
	Replays   uint16 `json:"replays"`
	Snapshots uint16 `json:"snapshots"`
	Messages  uint16 `json:"messages"`
}

////////////////////////
// REPLAY MODELS
////////////////////////

// Replay is one processed replay file
type Replay struct {
	gorm.Model
	ReplayID      string         `json:"replayId" gorm:"size:36;uniqueIndex"`
	Name          string         `json:"name" gorm:"size:255"`
	MapName       string         `json:"mapName" gorm:"size:255"`
	Title         string         `json:"title" gorm:"size:255"`
	IsOfficialMap bool           `json:"isOfficialMap"`
	PlayedAt      time.Time      `json:"playedAt"`
	EndFrame      uint32         `json:"endFrame"`
	Players       datatypes.JSON `json:"players"`
}

func (*Replay) TableName() string {
	return "replays"
}

// Snapshot is one per-player economy sample of a replay
type Snapshot struct {
	ID           uint   `json:"id" gorm:"primarykey"`
	ReplayID     string `json:"replayId" gorm:"size:36;index:idx_snapshot_replay_id"`
	Frame        uint32 `json:"frame"`
	PlayerID     uint8  `json:"playerId"`
	Minerals     int32  `json:"minerals"`
	Vespene      int32  `json:"vespene"`
	SupplyUsed   int32  `json:"supplyUsed"`
	SupplyCap    int32  `json:"supplyCap"`
	ArmyMinerals int32  `json:"armyMinerals"`
	ArmyVespene  int32  `json:"armyVespene"`
}

func (*Snapshot) TableName() string {
	return "snapshots"
}

// Message is one chat message of a replay
type Message struct {
	ID        uint   `json:"id" gorm:"primarykey"`
	ReplayID  string `json:"replayId" gorm:"size:36;index:idx_message_replay_id"`
	Frame     uint32 `json:"frame"`
	UserID    uint8  `json:"userId"`
	Recipient string `json:"recipient" gorm:"size:32"`
	Text      string `json:"text" gorm:"size:255"`
}

func (*Message) TableName() string {
	return "messages"
}

////////////////////////
// CONVERSIONS
////////////////////////

// PlayerJSON is the shape stored in the replay's players column.
type PlayerJSON struct {
	Name   string `json:"name"`
	Race   string `json:"race"`
	TeamID uint8  `json:"teamId"`
	Result string `json:"result"`
}

// FromProcessedReplay converts one pipeline result into its database rows.
// Chat message frames are accumulated from their deltas so rows carry
// absolute positions like snapshots do.
func FromProcessedReplay(r *core.ProcessedReplay) (Replay, []Snapshot, []Message) {
	players := make([]PlayerJSON, 0, len(r.Details.Players))
	for _, p := range r.Details.Players {
		players = append(players, PlayerJSON{
			Name:   p.Name,
			Race:   p.Race,
			TeamID: p.TeamID,
			Result: p.Result.String(),
		})
	}
	playersJSON, err := json.Marshal(players)
	if err != nil {
		playersJSON = []byte("[]")
	}

	replay := Replay{
		ReplayID:      r.ID,
		Name:          r.Name,
		MapName:       r.Details.MapName(),
		Title:         r.Details.Title,
		IsOfficialMap: r.Details.IsOfficialMap,
		PlayedAt:      r.Details.TimeUTC,
		EndFrame:      r.EndFrame(),
		Players:       datatypes.JSON(playersJSON),
	}

	snapshots := make([]Snapshot, 0, len(r.Snapshots))
	for _, s := range r.Snapshots {
		snapshots = append(snapshots, Snapshot{
			ReplayID:     r.ID,
			Frame:        s.Frame,
			PlayerID:     s.PlayerID,
			Minerals:     s.Minerals,
			Vespene:      s.Vespene,
			SupplyUsed:   s.SupplyUsed,
			SupplyCap:    s.SupplyCap,
			ArmyMinerals: s.ArmyMinerals,
			ArmyVespene:  s.ArmyVespene,
		})
	}

	messages := make([]Message, 0, len(r.Messages))
	var frame uint32
	for _, m := range r.Messages {
		frame += m.Delta
		messages = append(messages, Message{
			ReplayID:  r.ID,
			Frame:     frame,
			UserID:    m.UserID,
			Recipient: m.Recipient.String(),
			Text:      m.Text,
		})
	}

	return replay, snapshots, messages
}
