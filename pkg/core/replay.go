package core

// ProcessedReplay is the result of running one uploaded replay file through
// the pipeline: decoded details and messages plus the extracted snapshot
// timeline. Instances are append-only collection members owned by whoever
// requested processing; nothing mutates them after creation.
type ProcessedReplay struct {
	ID        string // assigned by the processor, unique per processing run
	Name      string // source file name
	Details   ReplayDetails
	Messages  []ChatMessage
	Snapshots []GameSnapshot
}

// EndFrame returns the frame of the last snapshot, or 0 for an empty
// timeline.
func (r *ProcessedReplay) EndFrame() uint32 {
	if len(r.Snapshots) == 0 {
		return 0
	}
	return r.Snapshots[len(r.Snapshots)-1].Frame
}
