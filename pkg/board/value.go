package board

import "fmt"

// Value is a signed evaluation or search score in centipawn-equivalent units. 16 bits.
// Mate scores are encoded as values close to +/-MateValue, shrinking in magnitude with
// distance from the root so that shorter mates are preferred.
type Value int16

const (
	MinValue Value = -30000
	MaxValue Value = 30000

	MateValue     Value = 29000
	MatedInMaxPly Value = -MateValue + 1000

	// ValueNone is a sentinel for "no evaluation available", distinct from any real score.
	ValueNone Value = 32002

	// ValueDraw is the nominal evaluation of a drawn position.
	ValueDraw Value = 0
)

// MateIn returns the value representing a forced mate in ply plies.
func MateIn(ply int) Value {
	return MateValue - Value(ply)
}

// MatedIn returns the value representing being forced mated in ply plies.
func MatedIn(ply int) Value {
	return -MateValue + Value(ply)
}

func (v Value) String() string {
	if v == ValueNone {
		return "none"
	}
	return fmt.Sprintf("%.2f", float64(v)/100)
}
