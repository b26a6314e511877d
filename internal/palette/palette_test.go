package palette

import (
	"context"
	"log/slog"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/s2rewind/analyser/pkg/core"
)

// countingHandler counts emitted records so tests can assert on how often
// the table logs, without caring about formatting.
type countingHandler struct {
	records atomic.Int64
}

func (h *countingHandler) Enabled(context.Context, slog.Level) bool { return true }
func (h *countingHandler) Handle(context.Context, slog.Record) error {
	h.records.Add(1)
	return nil
}
func (h *countingHandler) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h *countingHandler) WithGroup(string) slog.Handler      { return h }

func newCountingTable() (*Table, *countingHandler) {
	h := &countingHandler{}
	return NewTable(slog.New(h)), h
}

func TestClassify_KnownKinds(t *testing.T) {
	tests := []struct {
		kind      string
		wantSize  float32
		wantColor core.Color
	}{
		{"MineralField", 0.048, FreyaLightBlue},
		{"MineralField450", 0.06, FreyaLightBlue},
		{"MineralField750", 0.072, FreyaLightBlue},
		{"LabMineralField", 0.024, FreyaLightBlue},
		{"RichMineralField", DefaultUnitSize, FreyaGold},
		{"RichMineralField750", DefaultUnitSize, FreyaOrange},
		{"VespeneEDyser", DefaultUnitSize, FreyaLightGreen},
		{"XelNagaTower", 0.072, FreyaWhite},
		{"DestructibleDebris6x6", 0.18, FreyaGray},
		{"SCV", 0.03, FreyaLightGray},
		{"Drone", 0.03, FreyaLightGray},
		{"Probe", 0.03, FreyaLightGray},
		{"Larva", 0.03, FreyaLightGray},
		{"Hatchery", 0.12, FreyaPink},
		{"CommandCenter", 0.12, FreyaPink},
		{"Nexus", 0.12, FreyaPink},
		{"Overlord", 0.06, FreyaYellow},
		{"Broodling", 0.006, FreyaLightGray},
	}

	table, handler := newCountingTable()
	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			size, color := table.Classify(tt.kind, 3)
			assert.Equal(t, tt.wantSize, size)
			assert.Equal(t, tt.wantColor, color)
		})
	}
	assert.Zero(t, handler.records.Load(), "known kinds must not log")
}

func TestClassify_OwnerDoesNotAffectKnownKinds(t *testing.T) {
	table, _ := newCountingTable()
	for _, owner := range []int64{0, 1, 2, 3, core.UnknownOwner, -1} {
		size, color := table.Classify("MineralField", owner)
		assert.Equal(t, float32(0.048), size)
		assert.Equal(t, FreyaLightBlue, color)
	}
}

func TestClassify_UnknownFallsBackToUserColor(t *testing.T) {
	table, handler := newCountingTable()

	size, color := table.Classify("TotallyUnknownUnit", 2)
	assert.Equal(t, DefaultUnitSize, size)
	assert.Equal(t, FreyaLightGray, color)
	assert.Equal(t, int64(1), handler.records.Load(), "exactly one diagnostic per unknown lookup")
}

func TestClassify_BeaconsAreSilentlyIgnored(t *testing.T) {
	table, handler := newCountingTable()

	size, color := table.Classify("BeaconArmy", 0)
	assert.Equal(t, DefaultUnitSize, size)
	assert.Equal(t, FreyaLightGreen, color)
	assert.Zero(t, handler.records.Load(), "beacon markers must not log")
}

func TestClassify_IsPure(t *testing.T) {
	table, _ := newCountingTable()
	s1, c1 := table.Classify("Nexus", 0)
	s2, c2 := table.Classify("Nexus", 0)
	assert.Equal(t, s1, s2)
	assert.Equal(t, c1, c2)
}

func TestUserColor(t *testing.T) {
	tests := []struct {
		name string
		id   int64
		want core.Color
	}{
		{"slot 0", 0, FreyaLightGreen},
		{"slot 1", 1, FreyaLightBlue},
		{"slot 2", 2, FreyaLightGray},
		{"slot 3", 3, FreyaOrange},
		{"beyond slots", 4, FreyaWhite},
		{"negative", -7, FreyaWhite},
		{"unknown owner sentinel", core.UnknownOwner, FreyaWhite},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, UserColor(tt.id))
		})
	}
}

func TestColorUnpacking(t *testing.T) {
	b := FreyaOrange.Bytes()
	assert.Equal(t, [4]uint8{0xeb, 0x79, 0x07, 0x00}, b)

	f := FreyaOrange.Floats()
	assert.InDelta(t, 0xeb/255.0, f[0], 1e-6)
	assert.InDelta(t, 0x79/255.0, f[1], 1e-6)
	assert.InDelta(t, 0x07/255.0, f[2], 1e-6)
	assert.Equal(t, float32(1.0), f[3], "alpha is always opaque")
}
