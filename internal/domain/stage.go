package domain

import "github.com/hi5-laundry/api/internal/enum"

// stageOrder is the forward processing sequence. Orders only ever walk it
// left to right; picked_up is terminal.
var stageOrder = []string{
	enum.StageReceived,
	enum.StageWash,
	enum.StageDry,
	enum.StageFold,
	enum.StageReady,
	enum.StagePickedUp,
}

// NextStage returns the stage that follows s in the processing sequence.
// A terminal order stays terminal, so advancing picked_up is idempotent.
func NextStage(s string) string {
	if s == enum.StageReady {
		return enum.StagePickedUp
	}
	for i, st := range stageOrder {
		if st == s {
			if i+1 < len(stageOrder) {
				return stageOrder[i+1]
			}
			return s
		}
	}
	return s
}

// IsValidStage reports whether s is one of the known processing stages.
func IsValidStage(s string) bool {
	for _, st := range stageOrder {
		if st == s {
			return true
		}
	}
	return false
}

// IsTerminalStage reports whether s is the end of the walk.
func IsTerminalStage(s string) bool {
	return s == enum.StagePickedUp
}

// StageLabel is the customer/staff facing label. The three machine-room
// stages collapse into one coarse "In Progress" bucket; the fine-grained
// stage is kept internally for workflow advancement.
func StageLabel(s string) string {
	switch s {
	case enum.StageReceived:
		return "Received"
	case enum.StageWash, enum.StageDry, enum.StageFold:
		return "In Progress"
	case enum.StageReady:
		return "Ready for pickup"
	case enum.StagePickedUp:
		return "Picked Up"
	}
	return s
}
