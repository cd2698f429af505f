package similarity

// Level is the coarse risk bucket reported to callers
type Level string

const (
	// LevelLow means no meaningful overlap was found
	LevelLow Level = "LOW"
	// LevelMedium means partial overlap worth a human look
	LevelMedium Level = "MEDIUM"
	// LevelHigh means the idea is likely a duplicate
	LevelHigh Level = "HIGH"
)

// fixed band floors, evaluated top down
const (
	HighThreshold   = 45
	MediumThreshold = 25
)

// Assessment pairs a risk level with its caller facing message
type Assessment struct {
	Level   Level
	Message string
}

// Classify maps a score onto its band
func Classify(score int) Assessment {
	switch {
	case score >= HighThreshold:
		return Assessment{Level: LevelHigh, Message: "Critical similarity detected."}
	case score >= MediumThreshold:
		return Assessment{Level: LevelMedium, Message: "Moderate similarity."}
	default:
		return Assessment{Level: LevelLow, Message: "Idea appears unique."}
	}
}

// Valid reports whether l is one of the three known levels
func (l Level) Valid() bool {
	switch l {
	case LevelLow, LevelMedium, LevelHigh:
		return true
	}
	return false
}
