package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s2rewind/analyser/pkg/core"
)

func sampleReplay() *core.ProcessedReplay {
	return &core.ProcessedReplay{
		ID:   "11111111-2222-3333-4444-555555555555",
		Name: "game1.SC2Replay",
		Details: core.ReplayDetails{
			Title:       "Ladder Map",
			MapFileName: "ladder.SC2Map",
			TimeUTC:     time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
			Players: []core.PlayerDetails{
				{Name: "Alpha", Race: "Terran", TeamID: 1, Result: core.ResultWin},
				{Name: "Beta", Race: "Zerg", TeamID: 2, Result: core.ResultLoss},
			},
		},
		Messages: []core.ChatMessage{
			{Delta: 100, UserID: 0, Recipient: core.RecipientAll, Text: "glhf"},
			{Delta: 50, UserID: 1, Recipient: core.RecipientAllies, Text: "rush?"},
		},
		Snapshots: []core.GameSnapshot{
			{Frame: 160, PlayerID: 1, Minerals: 50, SupplyCap: 15},
			{Frame: 320, PlayerID: 2, Minerals: 75, SupplyCap: 200},
		},
	}
}

func TestFromProcessedReplay_ReplayRow(t *testing.T) {
	replay, snapshots, messages := FromProcessedReplay(sampleReplay())

	assert.Equal(t, "11111111-2222-3333-4444-555555555555", replay.ReplayID)
	assert.Equal(t, "game1.SC2Replay", replay.Name)
	assert.Equal(t, "ladder.SC2Map", replay.MapName)
	assert.Equal(t, uint32(320), replay.EndFrame)
	assert.Len(t, snapshots, 2)
	assert.Len(t, messages, 2)

	var players []PlayerJSON
	require.NoError(t, json.Unmarshal(replay.Players, &players))
	require.Len(t, players, 2)
	assert.Equal(t, "Alpha", players[0].Name)
	assert.Equal(t, "Winner", players[0].Result)
	assert.Equal(t, "Lost", players[1].Result)
}

func TestFromProcessedReplay_SnapshotRows(t *testing.T) {
	_, snapshots, _ := FromProcessedReplay(sampleReplay())

	require.Len(t, snapshots, 2)
	assert.Equal(t, "11111111-2222-3333-4444-555555555555", snapshots[0].ReplayID)
	assert.Equal(t, uint32(160), snapshots[0].Frame)
	assert.Equal(t, uint8(1), snapshots[0].PlayerID)
	assert.Equal(t, int32(50), snapshots[0].Minerals)
	assert.Equal(t, int32(200), snapshots[1].SupplyCap)
}

func TestFromProcessedReplay_MessageFramesAccumulate(t *testing.T) {
	_, _, messages := FromProcessedReplay(sampleReplay())

	require.Len(t, messages, 2)
	assert.Equal(t, uint32(100), messages[0].Frame)
	assert.Equal(t, "To All", messages[0].Recipient)
	assert.Equal(t, uint32(150), messages[1].Frame, "second frame is the delta sum")
	assert.Equal(t, "To Allies", messages[1].Recipient)
}

func TestFromProcessedReplay_Empty(t *testing.T) {
	replay, snapshots, messages := FromProcessedReplay(&core.ProcessedReplay{ID: "x"})

	assert.Equal(t, "x", replay.ReplayID)
	assert.Zero(t, replay.EndFrame)
	assert.Empty(t, snapshots)
	assert.Empty(t, messages)
	assert.JSONEq(t, "[]", string(replay.Players))
}

func TestTableNames(t *testing.T) {
	assert.Equal(t, "replays", (*Replay)(nil).TableName())
	assert.Equal(t, "snapshots", (*Snapshot)(nil).TableName())
	assert.Equal(t, "messages", (*Message)(nil).TableName())
	assert.Equal(t, "analyser_infos", (*AnalyserInfo)(nil).TableName())
	assert.Equal(t, "analyser_performances", (*AnalyserPerformance)(nil).TableName())
}
