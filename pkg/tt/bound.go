package tt

// Bound records how a stored value relates to the true minimax value of the position it
// was computed for: an Exact score, or a Lower/Upper bound produced by an alpha-beta cutoff.
type Bound uint8

const (
	BoundNone  Bound = 0
	BoundUpper Bound = 1
	BoundLower Bound = 2
	BoundExact Bound = BoundUpper | BoundLower
)

func (b Bound) String() string {
	switch b {
	case BoundExact:
		return "Exact"
	case BoundLower:
		return "Lower"
	case BoundUpper:
		return "Upper"
	default:
		return "None"
	}
}
