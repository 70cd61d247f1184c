package board

// IsRepetition reports whether the current position repeats one fewer than ply plies back
// in the StateInfo chain (i.e. inside the search tree rooted ply plies ago), or repeats one
// that was itself already a repetition (a completed 3-fold), at any distance in the chain.
// Only positions linked into the chain are considered.
func (p *Position) IsRepetition(ply int) bool {
	return p.st.Repetition != 0 && p.st.Repetition < ply
}

// IsDraw reports whether the position is a draw by the 50-move rule or by repetition
// detectable within the last ply plies of search. Whether a rule50 >= 100 position is
// actually checkmate rather than a draw is a terminal-node distinction for the caller's
// move generator to make; this package only reports the counter having expired.
func (p *Position) IsDraw(ply int) bool {
	if p.st.Rule50 > 99 {
		return true
	}
	return p.st.Repetition != 0 && p.st.Repetition < ply
}

// UpcomingRepetition reports whether some legal move available right now would immediately
// recreate a position already seen earlier in the game, using the cuckoo table of reversible
// moves to test this in O(1) per candidate rather than replaying the whole history. ply is
// the current search ply (distance from the search root), used to decide whether a candidate
// repetition lies within the searched tree or further back in the actual game.
func (p *Position) UpcomingRepetition(ply int) bool {
	st := p.st
	end := st.Rule50
	if st.PliesFromNull < end {
		end = st.PliesFromNull
	}
	if end < 3 {
		return false
	}

	originalKey := st.Key
	occ := p.Occupied()

	stp := st.Previous
	for i := 3; i <= end; i += 2 {
		if stp == nil || stp.Previous == nil {
			return false
		}
		stp = stp.Previous.Previous

		moveKey := originalKey ^ stp.Key
		move, tableKey, found := Cuckoo.Lookup(moveKey)
		if !found || tableKey != moveKey {
			continue
		}

		s1, s2 := move.From(), move.To()
		if (Between(s1, s2) &^ BitMask(s2))&occ != 0 {
			continue
		}

		if ply > i {
			return true
		}

		// The repetition lies at or behind the search root: only a draw if that earlier
		// occurrence was itself already a repeat (mirrors updateRepetition's convention).
		if stp.Repetition != 0 {
			return true
		}
	}
	return false
}
