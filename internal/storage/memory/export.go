package memory

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"

	"github.com/s2rewind/analyser/pkg/core"
)

// ReplayExport is the root JSON structure written per replay.
type ReplayExport struct {
	Version   string           `json:"version"`
	ReplayID  string           `json:"replayId"`
	Name      string           `json:"name"`
	MapName   string           `json:"mapName"`
	PlayedAt  string           `json:"playedAt"`
	EndFrame  uint32           `json:"endFrame"`
	Players   []PlayerExport   `json:"players"`
	Messages  []MessageExport  `json:"messages"`
	Snapshots []SnapshotExport `json:"snapshots"`
}

// PlayerExport is one player list entry.
type PlayerExport struct {
	Name   string `json:"name"`
	Race   string `json:"race"`
	TeamID uint8  `json:"teamId"`
	Result string `json:"result"`
}

// MessageExport is one chat message with an absolute frame.
type MessageExport struct {
	Frame     uint32 `json:"frame"`
	UserID    uint8  `json:"userId"`
	Recipient string `json:"recipient"`
	Text      string `json:"text"`
}

// SnapshotExport is one economy sample.
type SnapshotExport struct {
	Frame        uint32 `json:"frame"`
	PlayerID     uint8  `json:"playerId"`
	Minerals     int32  `json:"minerals"`
	Vespene      int32  `json:"vespene"`
	SupplyUsed   int32  `json:"supplyUsed"`
	SupplyCap    int32  `json:"supplyCap"`
	ArmyMinerals int32  `json:"armyMinerals"`
	ArmyVespene  int32  `json:"armyVespene"`
}

const exportVersion = "1"

// exportJSON writes one replay to a (optionally gzipped) JSON file and
// returns the path written.
func (b *Backend) exportJSON(r *core.ProcessedReplay) (string, error) {
	export := buildExport(r)

	name := strings.ReplaceAll(r.Name, " ", "_")
	name = strings.ReplaceAll(name, ":", "_")

	var filename string
	if b.cfg.CompressOutput {
		filename = fmt.Sprintf("%s_%s.json.gz", name, r.ID)
	} else {
		filename = fmt.Sprintf("%s_%s.json", name, r.ID)
	}

	outputPath := filepath.Join(b.cfg.OutputDir, filename)

	if err := os.MkdirAll(b.cfg.OutputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	if b.cfg.CompressOutput {
		if err := writeGzipJSON(outputPath, export); err != nil {
			return "", err
		}
	} else {
		if err := writeJSON(outputPath, export); err != nil {
			return "", err
		}
	}
	return outputPath, nil
}

func buildExport(r *core.ProcessedReplay) ReplayExport {
	export := ReplayExport{
		Version:   exportVersion,
		ReplayID:  r.ID,
		Name:      r.Name,
		MapName:   r.Details.MapName(),
		PlayedAt:  r.Details.TimeUTC.Format("2006-01-02T15:04:05Z"),
		EndFrame:  r.EndFrame(),
		Players:   make([]PlayerExport, 0, len(r.Details.Players)),
		Messages:  make([]MessageExport, 0, len(r.Messages)),
		Snapshots: make([]SnapshotExport, 0, len(r.Snapshots)),
	}

	for _, p := range r.Details.Players {
		export.Players = append(export.Players, PlayerExport{
			Name:   p.Name,
			Race:   p.Race,
			TeamID: p.TeamID,
			Result: p.Result.String(),
		})
	}

	var frame uint32
	for _, m := range r.Messages {
		frame += m.Delta
		export.Messages = append(export.Messages, MessageExport{
			Frame:     frame,
			UserID:    m.UserID,
			Recipient: m.Recipient.String(),
			Text:      m.Text,
		})
	}

	for _, s := range r.Snapshots {
		export.Snapshots = append(export.Snapshots, SnapshotExport{
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

	return export
}

func writeJSON(path string, export ReplayExport) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer file.Close()

	if err := json.NewEncoder(file).Encode(export); err != nil {
		return fmt.Errorf("failed to encode export: %w", err)
	}
	return nil
}

func writeGzipJSON(path string, export ReplayExport) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer file.Close()

	gz := gzip.NewWriter(file)
	if err := json.NewEncoder(gz).Encode(export); err != nil {
		gz.Close()
		return fmt.Errorf("failed to encode export: %w", err)
	}
	return gz.Close()
}
