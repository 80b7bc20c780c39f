package model

// Verdict is the binary outcome of inspecting one leather image.
type Verdict int

const (
	// VerdictUnknown is reported before anything has been inspected.
	VerdictUnknown Verdict = iota
	VerdictNonDefective
	VerdictDefective
)

func (v Verdict) String() string {
	switch v {
	case VerdictDefective:
		return "Defective"
	case VerdictNonDefective:
		return "Non-Defective"
	default:
		return "-"
	}
}

// Color maps a verdict to the status understood by the actuator LED.
// Unknown has no color.
func (v Verdict) Color() string {
	switch v {
	case VerdictDefective:
		return "red"
	case VerdictNonDefective:
		return "green"
	default:
		return ""
	}
}
