package board

// GenerateMoves returns every pseudo-legal move for the side to move: board content and
// piece movement patterns only, not whether the mover's own king ends up in check afterward.
// Move generation proper (ordering, staged generation for search) lives above this package;
// this is the minimal glue needed to drive perft and exercise do_move/undo_move/legal/see
// against real positions.
func (p *Position) GenerateMoves() []Move {
	us := p.sideToMove
	them := us.Opponent()
	occ := p.Occupied()
	enemy := p.byColor[them]

	var moves []Move

	for b := p.Pieces(us, Pawn); b != 0; {
		from := b.PopLSB()
		moves = p.appendPawnMoves(moves, from, us, occ, enemy)
	}
	for pt := Knight; pt <= King; pt++ {
		for b := p.Pieces(us, pt); b != 0; {
			from := b.PopLSB()
			for targets := Attacks(pt, from, occ) &^ p.byColor[us]; targets != 0; {
				to := targets.PopLSB()
				moves = append(moves, NewMove(from, to))
			}
		}
	}

	return p.appendCastlingMoves(moves, us)
}

func (p *Position) appendPawnMoves(moves []Move, from Square, us Color, occ, enemy Bitboard) []Move {
	add := func(to Square) {
		if PromotionRank(us).IsSet(to) {
			moves = append(moves,
				NewPromotionMove(from, to, Queen),
				NewPromotionMove(from, to, Rook),
				NewPromotionMove(from, to, Bishop),
				NewPromotionMove(from, to, Knight))
		} else {
			moves = append(moves, NewMove(from, to))
		}
	}

	for att := PawnAttacks(us, BitMask(from)) & enemy; att != 0; {
		add(att.PopLSB())
	}
	if ep, ok := p.EnPassant(); ok && PawnAttacks(us, BitMask(from)).IsSet(ep) {
		moves = append(moves, NewEnPassantMove(from, ep))
	}

	single := singlePush(from, us)
	if single.IsValid() && !occ.IsSet(single) {
		add(single)
		double := singlePush(single, us)
		if JumpRank(us).IsSet(double) && !occ.IsSet(double) {
			moves = append(moves, NewMove(from, double))
		}
	}
	return moves
}

func (p *Position) appendCastlingMoves(moves []Move, us Color) []Move {
	for _, right := range []CastlingRight{KingSide(us), QueenSide(us)} {
		if !p.st.CastlingRights.IsAllowed(right) {
			continue
		}
		m := NewCastlingMove(p.KingSquare(us), p.CastlingRookSquare(right))
		if p.pseudoLegalCastling(m) {
			moves = append(moves, m)
		}
	}
	return moves
}

// LegalMoves returns every fully legal move for the side to move.
func (p *Position) LegalMoves() []Move {
	var legal []Move
	for _, m := range p.GenerateMoves() {
		if p.Legal(m) {
			legal = append(legal, m)
		}
	}
	return legal
}
